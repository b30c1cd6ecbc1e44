package history

import "github.com/faizmokh/mood/internal/moodlog"

const (
	// DefaultWindow is how many recent entries the chart shows.
	DefaultWindow = 7
	// MaxValue is the top of the y axis.
	MaxValue = int(moodlog.MoodVeryHappy)

	SeriesTitle = "Mood Level"
	YAxisTitle  = "Mood Scale"
	XAxisTitle  = "Date"
)

// Point is one plotted entry.
type Point struct {
	Label string        `json:"label"`
	Value int           `json:"value"`
	Color moodlog.Color `json:"color"`
}

// ChartSeries is the data a chart renderer needs; it carries no drawing state.
type ChartSeries struct {
	Points []Point `json:"points"`
}

// Empty reports that there is nothing to chart. Callers skip chart rendering
// and show the empty-state message instead.
func (s ChartSeries) Empty() bool {
	return len(s.Points) == 0
}

// Labels returns the x axis labels in order.
func (s ChartSeries) Labels() []string {
	out := make([]string, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Label
	}
	return out
}

// Values returns the plotted values in order.
func (s ChartSeries) Values() []int {
	out := make([]int, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}

// BuildChartSeries charts the last DefaultWindow entries, oldest first.
func BuildChartSeries(log []moodlog.Entry) ChartSeries {
	return BuildChartSeriesWindow(log, DefaultWindow)
}

// BuildChartSeriesWindow charts the last n entries, oldest first. Logs shorter
// than n are charted whole without padding; n <= 0 means DefaultWindow.
func BuildChartSeriesWindow(log []moodlog.Entry, n int) ChartSeries {
	if n <= 0 {
		n = DefaultWindow
	}
	start := 0
	if len(log) > n {
		start = len(log) - n
	}

	recent := log[start:]
	points := make([]Point, 0, len(recent))
	for _, entry := range recent {
		points = append(points, Point{
			Label: ShortDate(entry.Date),
			Value: int(entry.Mood),
			Color: ColorOf(entry.Mood),
		})
	}
	return ChartSeries{Points: points}
}

var axisLabels = map[int]string{
	1: "Very Sad",
	2: "Sad",
	3: "Neutral",
	4: "Happy",
	5: "Very Happy",
}

// AxisLabel names a y axis tick; ticks off the scale get no label.
func AxisLabel(value int) string {
	return axisLabels[value]
}

// ColorOf maps a mood to its color token, gray for anything off the scale.
func ColorOf(m moodlog.Mood) moodlog.Color {
	return moodlog.KindOf(m).Color
}
