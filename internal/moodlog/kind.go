package moodlog

// Color is a named color token shared by the list and chart renderers.
type Color string

const (
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorYellow Color = "yellow"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorGray   Color = "gray"
)

var colorRGBA = map[Color]string{
	ColorRed:    "rgba(239, 68, 68, 0.8)",
	ColorOrange: "rgba(249, 115, 22, 0.8)",
	ColorYellow: "rgba(234, 179, 8, 0.8)",
	ColorBlue:   "rgba(59, 130, 246, 0.8)",
	ColorGreen:  "rgba(34, 197, 94, 0.8)",
	ColorGray:   "rgba(156, 163, 175, 0.8)",
}

var colorANSI = map[Color]string{
	ColorRed:    "196",
	ColorOrange: "208",
	ColorYellow: "220",
	ColorBlue:   "33",
	ColorGreen:  "34",
	ColorGray:   "245",
}

// RGBA returns the CSS rgba() value for chart consumers. Unknown tokens map to gray.
func (c Color) RGBA() string {
	if v, ok := colorRGBA[c]; ok {
		return v
	}
	return colorRGBA[ColorGray]
}

// ANSI returns the 256-color palette index used by terminal renderers.
func (c Color) ANSI() string {
	if v, ok := colorANSI[c]; ok {
		return v
	}
	return colorANSI[ColorGray]
}

// Kind is the static display metadata for a mood level.
type Kind struct {
	Label string
	Color Color
	Glyph string
}

// UnknownKind is used for values outside the scale.
var UnknownKind = Kind{Label: "Unknown", Color: ColorGray, Glyph: "❓"}

var kinds = map[Mood]Kind{
	MoodVerySad:   {Label: "Very sad", Color: ColorRed, Glyph: "😢"},
	MoodSad:       {Label: "Sad", Color: ColorOrange, Glyph: "😞"},
	MoodNeutral:   {Label: "Neutral", Color: ColorYellow, Glyph: "😐"},
	MoodHappy:     {Label: "Happy", Color: ColorBlue, Glyph: "😊"},
	MoodVeryHappy: {Label: "Very happy", Color: ColorGreen, Glyph: "😁"},
}

// KindOf never fails: anything off the scale gets UnknownKind.
func KindOf(m Mood) Kind {
	if k, ok := kinds[m]; ok {
		return k
	}
	return UnknownKind
}
