package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/faizmokh/mood/internal/history"
	"github.com/faizmokh/mood/internal/kv"
	"github.com/faizmokh/mood/internal/moodlog"
	"github.com/faizmokh/mood/internal/newsletter"
	"github.com/faizmokh/mood/internal/quote"
)

const (
	msgSelectMood   = "Please select your mood first"
	msgSaving       = "Saving..."
	msgEmptyHistory = "No entries yet. Start tracking your mood!"

	defaultFlashFor = 3 * time.Second
)

// Options carries the collaborators the TUI needs.
type Options struct {
	Store      *moodlog.Store
	Subscriber newsletter.Subscriber
	Logger     *log.Logger
	Rand       *rand.Rand
	Now        func() time.Time

	// Window is how many recent entries the chart shows.
	Window int

	// FlashFor is how long confirmations stay on screen.
	FlashFor time.Duration
}

// Model owns Bubble Tea state for the main TUI experience.
type Model struct {
	ctx        context.Context
	store      *moodlog.Store
	subscriber newsletter.Subscriber
	logger     *log.Logger
	rand       *rand.Rand
	now        func() time.Time
	window     int
	flashFor   time.Duration
	theme      theme

	selected moodlog.Mood
	note     textinput.Model
	email    textinput.Model
	focus    focus
	quote    quote.Quote

	panel   panelState
	rows    []history.DisplayRow
	chart   *chartView
	loading bool
	loadSeq int

	saving      bool
	subscribing bool
	statusLine  string
	errorLine   string
	flash       string
	flashID     int

	changes <-chan struct{}
}

type focus uint8

const (
	focusMood focus = iota
	focusNote
	focusEmail
)

type panelState uint8

const (
	panelHidden panelState = iota
	panelShown
)

type appendResultMsg struct {
	entry moodlog.Entry
	err   error
}

type historyLoadedMsg struct {
	seq     int
	entries []moodlog.Entry
	err     error
}

type subscribeResultMsg struct {
	email string
	err   error
}

type clearFlashMsg struct {
	id int
}

type watchStartedMsg struct {
	changes <-chan struct{}
	err     error
}

type storeChangedMsg struct{}

// NewModel seeds a Bubble Tea model with required collaborators.
func NewModel(ctx context.Context, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Window <= 0 {
		opts.Window = history.DefaultWindow
	}
	if opts.FlashFor <= 0 {
		opts.FlashFor = defaultFlashFor
	}

	note := textinput.New()
	note.Placeholder = "Add a note about your day (optional)"
	note.Prompt = "Note: "
	note.CharLimit = 280

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = "Email: "
	email.CharLimit = 254

	return Model{
		ctx:        ctx,
		store:      opts.Store,
		subscriber: opts.Subscriber,
		logger:     opts.Logger,
		rand:       opts.Rand,
		now:        opts.Now,
		window:     opts.Window,
		flashFor:   opts.FlashFor,
		theme:      defaultTheme(),
		note:       note,
		email:      email,
		quote:      quote.Random(opts.Rand),
	}
}

// Init starts watching the log for changes made elsewhere.
func (m Model) Init() tea.Cmd {
	return m.watchCmd()
}

// Update wires TUI state transitions from user input and async commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case appendResultMsg:
		return m.handleAppendResult(msg)
	case historyLoadedMsg:
		return m.handleHistoryLoaded(msg)
	case subscribeResultMsg:
		return m.handleSubscribeResult(msg)
	case clearFlashMsg:
		if msg.id == m.flashID {
			m.flash = ""
		}
		return m, nil
	case watchStartedMsg:
		return m.handleWatchStarted(msg)
	case storeChangedMsg:
		return m.handleStoreChanged()
	default:
		return m.updateInputs(msg)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, m.quit()
	}
	switch m.focus {
	case focusNote:
		return m.handleNoteKey(msg)
	case focusEmail:
		return m.handleEmailKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, m.quit()
	case "1", "2", "3", "4", "5":
		mood, _ := moodlog.ParseMood(msg.String())
		m.selected = mood
		m.errorLine = ""
		m.statusLine = fmt.Sprintf("Selected %s %s", moodlog.KindOf(mood).Glyph, moodlog.KindOf(mood).Label)
	case "left":
		if m.selected > moodlog.MoodVerySad {
			m.selected--
		} else if !m.selected.Valid() {
			m.selected = moodlog.MoodVerySad
		}
	case "right":
		if !m.selected.Valid() {
			m.selected = moodlog.MoodVerySad
		} else if m.selected < moodlog.MoodVeryHappy {
			m.selected++
		}
	case "n", "tab":
		m.focus = focusNote
		cmd := m.note.Focus()
		return m, cmd
	case "enter":
		return m.submit()
	case "esc":
		m.selected = 0
		m.statusLine = ""
		m.errorLine = ""
	case "h":
		return m.togglePanel()
	case "r":
		m.quote = quote.Next(m.rand, m.quote)
	case "s":
		if m.subscribing {
			return m, nil
		}
		m.focus = focusEmail
		m.errorLine = ""
		cmd := m.email.Focus()
		return m, cmd
	}
	return m, nil
}

func (m Model) handleNoteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.note.Blur()
		m.focus = focusMood
		return m.submit()
	case tea.KeyEsc, tea.KeyTab:
		m.note.Blur()
		m.focus = focusMood
		return m, nil
	}
	var cmd tea.Cmd
	m.note, cmd = m.note.Update(msg)
	return m, cmd
}

func (m Model) handleEmailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.subscribe()
	case tea.KeyEsc:
		m.email.Blur()
		m.focus = focusMood
		m.errorLine = ""
		return m, nil
	}
	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	return m, cmd
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var noteCmd, emailCmd tea.Cmd
	m.note, noteCmd = m.note.Update(msg)
	m.email, emailCmd = m.email.Update(msg)
	return m, tea.Batch(noteCmd, emailCmd)
}

func (m Model) quit() tea.Cmd {
	m.chart.release()
	return tea.Quit
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	if !m.selected.Valid() {
		m.errorLine = msgSelectMood
		m.statusLine = ""
		return m, nil
	}

	entry := moodlog.NewEntry(m.now(), m.selected, strings.TrimSpace(m.note.Value()))
	m.saving = true
	m.statusLine = msgSaving
	m.errorLine = ""
	return m, m.appendEntryCmd(entry)
}

func (m Model) handleAppendResult(msg appendResultMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	m.statusLine = ""
	if msg.err != nil {
		m.logger.Error("append failed", "err", msg.err)
		m.errorLine = fmt.Sprintf("Could not save your mood: %v", msg.err)
		return m, nil
	}

	kind := moodlog.KindOf(msg.entry.Mood)
	m.selected = 0
	m.note.Reset()
	m.errorLine = ""

	var cmds []tea.Cmd
	cmds = append(cmds, m.setFlash(fmt.Sprintf("Mood saved: %s %s", kind.Label, kind.Glyph)))
	if m.panel == panelShown {
		cmds = append(cmds, m.reloadHistory())
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) setFlash(text string) tea.Cmd {
	m.flashID++
	m.flash = text
	id := m.flashID
	return tea.Tick(m.flashFor, func(time.Time) tea.Msg {
		return clearFlashMsg{id: id}
	})
}

func (m Model) togglePanel() (tea.Model, tea.Cmd) {
	if m.panel == panelShown {
		m.panel = panelHidden
		m.loadSeq++
		m.chart.release()
		m.chart = nil
		m.rows = nil
		m.loading = false
		return m, nil
	}
	m.panel = panelShown
	cmd := m.reloadHistory()
	return m, cmd
}

// reloadHistory starts a load that supersedes any still in flight.
func (m *Model) reloadHistory() tea.Cmd {
	m.loadSeq++
	m.loading = true
	return m.loadHistoryCmd(m.loadSeq)
}

func (m Model) handleHistoryLoaded(msg historyLoadedMsg) (tea.Model, tea.Cmd) {
	// Ignore results for a closed panel or from a load a newer one replaced.
	if m.panel != panelShown || msg.seq != m.loadSeq {
		return m, nil
	}
	m.loading = false

	entries := msg.entries
	if msg.err != nil {
		if !errors.Is(msg.err, moodlog.ErrCorruptData) {
			m.logger.Error("load history failed", "err", msg.err)
			m.errorLine = fmt.Sprintf("Failed to load history: %v", msg.err)
			return m, nil
		}
		m.logger.Warn("mood log is unreadable, showing it as empty", "err", msg.err)
		entries = nil
	}

	m.rows = history.BuildDisplayList(entries)
	m.chart.release()
	m.chart = nil
	if series := history.BuildChartSeriesWindow(entries, m.window); !series.Empty() {
		m.chart = acquireChart(series)
	}
	return m, nil
}

func (m Model) subscribe() (tea.Model, tea.Cmd) {
	if m.subscribing {
		return m, nil
	}
	email, err := newsletter.ValidateEmail(m.email.Value())
	if err != nil {
		m.errorLine = newsletter.MsgInvalidEmail
		return m, nil
	}

	m.email.Blur()
	m.focus = focusMood
	m.subscribing = true
	m.errorLine = ""
	m.statusLine = newsletter.MsgSubscribing
	return m, m.subscribeCmd(email)
}

func (m Model) handleSubscribeResult(msg subscribeResultMsg) (tea.Model, tea.Cmd) {
	m.subscribing = false
	m.statusLine = ""
	if msg.err != nil {
		m.logger.Error("subscribe failed", "err", msg.err)
		m.errorLine = newsletter.StatusMessage(msg.email, msg.err)
		return m, nil
	}
	m.email.Reset()
	cmd := m.setFlash(newsletter.StatusMessage(msg.email, nil))
	return m, cmd
}

func (m Model) handleWatchStarted(msg watchStartedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, kv.ErrWatchUnsupported) {
			m.logger.Debug("backend cannot report changes; live refresh off")
		} else {
			m.logger.Warn("watch mood log", "err", msg.err)
		}
		return m, nil
	}
	m.changes = msg.changes
	return m, waitForChange(m.changes)
}

func (m Model) handleStoreChanged() (tea.Model, tea.Cmd) {
	next := waitForChange(m.changes)
	if m.panel != panelShown || m.saving {
		return m, next
	}
	m.logger.Debug("mood log changed, refreshing history")
	reload := m.reloadHistory()
	return m, tea.Batch(reload, next)
}

func (m Model) loadHistoryCmd(seq int) tea.Cmd {
	store := m.store
	ctx := m.ctx
	return func() tea.Msg {
		entries, err := store.LoadAll(ctx)
		return historyLoadedMsg{seq: seq, entries: entries, err: err}
	}
}

func (m Model) appendEntryCmd(entry moodlog.Entry) tea.Cmd {
	store := m.store
	ctx := m.ctx
	return func() tea.Msg {
		if err := store.Append(ctx, entry); err != nil {
			return appendResultMsg{entry: entry, err: err}
		}
		return appendResultMsg{entry: entry}
	}
}

func (m Model) subscribeCmd(email string) tea.Cmd {
	subscriber := m.subscriber
	ctx := m.ctx
	return func() tea.Msg {
		if subscriber == nil {
			return subscribeResultMsg{email: email, err: newsletter.ErrNotConfigured}
		}
		return subscribeResultMsg{email: email, err: subscriber.Subscribe(ctx, email)}
	}
}

func (m Model) watchCmd() tea.Cmd {
	store := m.store
	ctx := m.ctx
	return func() tea.Msg {
		changes, err := store.Changes(ctx)
		return watchStartedMsg{changes: changes, err: err}
	}
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}
