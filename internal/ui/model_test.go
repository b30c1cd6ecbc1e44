package ui

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/faizmokh/mood/internal/files"
	"github.com/faizmokh/mood/internal/kv"
	"github.com/faizmokh/mood/internal/moodlog"
	"github.com/faizmokh/mood/internal/newsletter"
)

type fakeSubscriber struct {
	emails []string
	err    error
}

func (f *fakeSubscriber) Subscribe(_ context.Context, email string) error {
	f.emails = append(f.emails, email)
	return f.err
}

func newTestModel(t *testing.T, backend kv.Store, sub newsletter.Subscriber) Model {
	t.Helper()
	return NewModel(context.Background(), Options{
		Store:      moodlog.NewStore(backend),
		Subscriber: sub,
		Rand:       rand.New(rand.NewSource(3)),
		Now: func() time.Time {
			return time.Date(2024, 6, 1, 21, 30, 0, 0, time.Local)
		},
		FlashFor: time.Millisecond,
	})
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, key := range keys {
		next, _ := m.Update(keyMsg(key))
		m = next.(Model)
	}
	return m
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

// drain runs cmd and feeds every resulting message back into the model.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 50 {
			t.Fatal("command chain did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			next, nc := m.Update(msg)
			m = next.(Model)
			queue = append(queue, nc)
		}
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestSubmitWithoutMoodAsksForOne(t *testing.T) {
	backend := kv.NewMemory()
	m := newTestModel(t, backend, nil)

	m, cmd := update(t, m, keyMsg("enter"))
	if cmd != nil {
		t.Fatal("submit without mood returned a command")
	}
	if m.errorLine != msgSelectMood {
		t.Fatalf("errorLine = %q, want %q", m.errorLine, msgSelectMood)
	}
	if !strings.Contains(m.View(), msgSelectMood) {
		t.Fatal("view does not show the prompt")
	}
}

func TestSubmitAppendsAndResets(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	m := newTestModel(t, backend, nil)

	m = press(t, m, "5", "n", "great day", "enter")
	if !m.saving || m.statusLine != msgSaving {
		t.Fatalf("saving = %v, statusLine = %q", m.saving, m.statusLine)
	}

	entry := moodlog.Entry{Date: "6/1/2024", Mood: moodlog.MoodVeryHappy, Note: "great day"}
	m, cmd := update(t, m, appendResultMsg{entry: entry})
	if m.selected != 0 || m.note.Value() != "" || m.saving {
		t.Fatalf("state not reset: selected=%v note=%q saving=%v", m.selected, m.note.Value(), m.saving)
	}
	if !strings.Contains(m.flash, "Very happy") {
		t.Fatalf("flash = %q", m.flash)
	}
	m = drain(t, m, cmd)
	if m.flash != "" {
		t.Fatalf("flash not cleared: %q", m.flash)
	}

	// The append command itself writes through the store.
	m = press(t, m, "3")
	next, cmd := m.Update(keyMsg("enter"))
	m = drain(t, next.(Model), cmd)
	entries, err := moodlog.NewStore(backend).LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(entries) != 1 || entries[0].Mood != moodlog.MoodNeutral || entries[0].Date != "6/1/2024" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestAppendFailureKeepsSelection(t *testing.T) {
	m := newTestModel(t, kv.NewMemory(), nil)
	m = press(t, m, "2", "enter")

	m, _ = update(t, m, appendResultMsg{err: moodlog.ErrStorage})
	if m.selected != moodlog.MoodSad {
		t.Fatalf("selected = %v, want Sad", m.selected)
	}
	if !strings.Contains(m.errorLine, "Could not save") {
		t.Fatalf("errorLine = %q", m.errorLine)
	}
}

func TestHistoryPanelLifecycle(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	m := newTestModel(t, backend, nil)

	next, cmd := m.Update(keyMsg("h"))
	m = drain(t, next.(Model), cmd)
	if m.panel != panelShown || m.chart != nil {
		t.Fatalf("panel = %v, chart = %v; want shown with no chart", m.panel, m.chart)
	}
	if !strings.Contains(m.View(), msgEmptyHistory) {
		t.Fatal("empty history message not shown")
	}

	store := moodlog.NewStore(backend)
	for _, e := range []moodlog.Entry{
		{Date: "5/31/2024", Mood: moodlog.MoodSad},
		{Date: "6/1/2024", Mood: moodlog.MoodHappy, Note: "better"},
	} {
		if err := store.Append(ctx, e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	m = press(t, m, "5")
	next, cmd = m.Update(keyMsg("enter"))
	m = drain(t, next.(Model), cmd)
	if len(m.rows) != 3 || m.rows[0].Label != "Very happy" || m.rows[2].Date != "5/31/2024" {
		t.Fatalf("rows = %+v", m.rows)
	}
	first := m.chart
	if first == nil || len(first.series.Points) != 3 {
		t.Fatalf("chart = %+v", first)
	}

	next, cmd = m.Update(storeChangedMsg{})
	m = drain(t, next.(Model), cmd)
	if !first.released || m.chart == first || m.chart == nil {
		t.Fatal("re-render did not release the previous chart")
	}
	view := m.View()
	for _, want := range []string{"better", "Mood Level", "Very Happy", "5/31"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}

	held := m.chart
	m = press(t, m, "h")
	if m.panel != panelHidden || m.chart != nil || !held.released {
		t.Fatal("hiding the panel did not release the chart")
	}
	if strings.Contains(m.View(), "Mood Level") {
		t.Fatal("chart still rendered after hiding")
	}
}

func TestHistoryLoadedAfterCloseIsIgnored(t *testing.T) {
	m := newTestModel(t, kv.NewMemory(), nil)
	m, _ = update(t, m, historyLoadedMsg{entries: []moodlog.Entry{{Date: "6/1/2024", Mood: 3}}})
	if m.rows != nil || m.chart != nil {
		t.Fatal("stale history applied to hidden panel")
	}
}

func TestCorruptHistoryShowsEmpty(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	if err := backend.Set(ctx, moodlog.DefaultKey, []byte(`{"not":"a list"}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	m := newTestModel(t, backend, nil)

	next, cmd := m.Update(keyMsg("h"))
	m = drain(t, next.(Model), cmd)
	if m.errorLine != "" || len(m.rows) != 0 {
		t.Fatalf("errorLine = %q, rows = %d", m.errorLine, len(m.rows))
	}
	if !strings.Contains(m.View(), msgEmptyHistory) {
		t.Fatal("empty history message not shown for corrupt log")
	}
}

func TestQuoteRotation(t *testing.T) {
	m := newTestModel(t, kv.NewMemory(), nil)
	before := m.quote
	m = press(t, m, "r")
	if m.quote == before {
		t.Fatal("r did not change the quote")
	}
}

func TestSubscribeFlow(t *testing.T) {
	sub := &fakeSubscriber{}
	m := newTestModel(t, kv.NewMemory(), sub)

	m = press(t, m, "s", "bad-address", "enter")
	if m.errorLine != newsletter.MsgInvalidEmail || len(sub.emails) != 0 {
		t.Fatalf("errorLine = %q, calls = %d", m.errorLine, len(sub.emails))
	}

	m.email.SetValue("reader@example.com")
	next, cmd := m.Update(keyMsg("enter"))
	m = next.(Model)
	if !m.subscribing || m.statusLine != newsletter.MsgSubscribing || m.focus != focusMood {
		t.Fatalf("subscribing = %v, statusLine = %q, focus = %v", m.subscribing, m.statusLine, m.focus)
	}

	m, flashCmd := update(t, m, cmd())
	if len(sub.emails) != 1 || sub.emails[0] != "reader@example.com" {
		t.Fatalf("subscriber calls = %v", sub.emails)
	}
	if m.flash != newsletter.SuccessMessage("reader@example.com") || m.email.Value() != "" {
		t.Fatalf("flash = %q, email = %q", m.flash, m.email.Value())
	}
	_ = drain(t, m, flashCmd)
}

func TestSubscribeFailure(t *testing.T) {
	sub := &fakeSubscriber{err: newsletter.ErrSubscribeFailed}
	m := newTestModel(t, kv.NewMemory(), sub)
	m = press(t, m, "s")
	m.email.SetValue("reader@example.com")

	next, cmd := m.Update(keyMsg("enter"))
	m = drain(t, next.(Model), cmd)
	if m.errorLine != newsletter.MsgFailed || m.subscribing {
		t.Fatalf("errorLine = %q, subscribing = %v", m.errorLine, m.subscribing)
	}
}

func TestSubscribeWithoutSubscriber(t *testing.T) {
	m := newTestModel(t, kv.NewMemory(), nil)
	m = press(t, m, "s")
	m.email.SetValue("reader@example.com")

	next, cmd := m.Update(keyMsg("enter"))
	m = drain(t, next.(Model), cmd)
	if m.errorLine != newsletter.MsgFailed {
		t.Fatalf("errorLine = %q", m.errorLine)
	}
}

func TestWatchUnsupportedOnMemory(t *testing.T) {
	m := newTestModel(t, kv.NewMemory(), nil)
	m = drain(t, m, m.Init())
	if m.changes != nil {
		t.Fatal("memory backend should not be watched")
	}
}

func TestWatchSignalReloadsShownPanel(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	if err := moodlog.NewStore(backend).Append(ctx, moodlog.Entry{Date: "6/1/2024", Mood: moodlog.MoodHappy}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	m := newTestModel(t, backend, nil)
	m.panel = panelShown

	changes := make(chan struct{}, 1)
	changes <- struct{}{}
	close(changes)

	m, cmd := update(t, m, watchStartedMsg{changes: changes})
	m = drain(t, m, cmd)
	if len(m.rows) != 1 || m.chart == nil {
		t.Fatalf("rows = %d, chart = %v", len(m.rows), m.chart)
	}
}

func TestWatchFileBackend(t *testing.T) {
	mgr, err := files.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	backend, err := kv.NewFile(mgr)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewModel(ctx, Options{Store: moodlog.NewStore(backend)})
	msg := m.Init()()
	started, ok := msg.(watchStartedMsg)
	if !ok || started.err != nil || started.changes == nil {
		t.Fatalf("Init msg = %#v", msg)
	}
}

func TestQuitReleasesChart(t *testing.T) {
	m := newTestModel(t, kv.NewMemory(), nil)
	m.panel = panelShown
	m, _ = update(t, m, historyLoadedMsg{entries: []moodlog.Entry{{Date: "6/1/2024", Mood: 3}}})
	held := m.chart

	_, cmd := update(t, m, keyMsg("q"))
	if cmd == nil || !held.released {
		t.Fatal("quit did not release the chart")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q did not quit")
	}
}

func TestErrorsFromLoadSurface(t *testing.T) {
	m := newTestModel(t, kv.NewMemory(), nil)
	m.panel = panelShown
	m, _ = update(t, m, historyLoadedMsg{err: errors.New("disk gone")})
	if !strings.Contains(m.errorLine, "disk gone") {
		t.Fatalf("errorLine = %q", m.errorLine)
	}
}

// collect runs cmd and returns the messages it produces, flattening batches.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

func TestOlderHistoryLoadDoesNotOverwriteNewer(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	if err := moodlog.NewStore(backend).Append(ctx, moodlog.Entry{Date: "5/31/2024", Mood: moodlog.MoodSad}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	m := newTestModel(t, backend, nil)

	next, cmd := m.Update(keyMsg("h"))
	m = drain(t, next.(Model), cmd)
	if len(m.rows) != 1 {
		t.Fatalf("rows after open = %d, want 1", len(m.rows))
	}

	// A reload triggered by a change signal reads the log before the submit.
	m, cmd = update(t, m, storeChangedMsg{})
	var older tea.Msg
	for _, msg := range collect(cmd) {
		if _, ok := msg.(historyLoadedMsg); ok {
			older = msg
		}
	}
	if older == nil {
		t.Fatal("change signal did not start a history load")
	}

	m = press(t, m, "5")
	next, cmd = m.Update(keyMsg("enter"))
	m = drain(t, next.(Model), cmd)
	if len(m.rows) != 2 {
		t.Fatalf("rows after submit = %d, want 2", len(m.rows))
	}
	chart := m.chart

	m, _ = update(t, m, older)
	if len(m.rows) != 2 || m.rows[0].Label != "Very happy" {
		t.Fatalf("older load replaced rows: %+v", m.rows)
	}
	if m.chart != chart || chart.released {
		t.Fatal("older load replaced the current chart")
	}
}

func TestHistoryLoadAfterReopenIgnoresEarlierLoad(t *testing.T) {
	m := newTestModel(t, kv.NewMemory(), nil)

	next, first := m.Update(keyMsg("h"))
	m = next.(Model)
	m = press(t, m, "h")
	next, second := m.Update(keyMsg("h"))
	m = next.(Model)

	stale := historyLoadedMsg{seq: collect(first)[0].(historyLoadedMsg).seq, entries: []moodlog.Entry{{Date: "1/1/2024", Mood: 1}}}
	m, _ = update(t, m, stale)
	if len(m.rows) != 0 || !m.loading {
		t.Fatalf("earlier load applied after reopen: rows = %d, loading = %v", len(m.rows), m.loading)
	}

	m = drain(t, m, second)
	if m.loading || len(m.rows) != 0 {
		t.Fatalf("current load not applied: rows = %d, loading = %v", len(m.rows), m.loading)
	}
}
