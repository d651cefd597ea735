package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/spinwheel/console"
	"github.com/nathoo/spinwheel/engine"
	"github.com/nathoo/spinwheel/engine/events"
	"github.com/nathoo/spinwheel/types"
)

// entry is one unstyled log line; styling happens at render time so the
// log can be re-wrapped on resize.
type entry struct {
	text string
	kind lineKind
}

// Model is the Bubble Tea model for the spinwheel TUI.
type Model struct {
	session *console.Session
	engine  *engine.Engine
	sched   *Scheduler
	events  *[]types.Event // filled by an engine subscription, drained in Update

	log     viewport.Model
	input   textinput.Model
	spinner spinner.Model
	history *History
	entries []entry

	anim    *animation
	display float64 // rotation currently drawn
	now     func() time.Time

	width, height int
	ready         bool
	quitting      bool
}

// logMsg appends lines to the log.
type logMsg []string

// keyHelp is appended to /help in the TUI.
var keyHelp = []string{
	"",
	"Keys: ctrl+s spin, esc cancel, PgUp/PgDn scroll, Up/Down history, ctrl+c quit",
}

// New creates a TUI model for eng, whose settle callbacks must be
// scheduled on sc.
func New(eng *engine.Engine, sc *Scheduler) Model {
	in := textinput.New()
	in.Prompt = "> "
	in.PromptStyle = styleInputPrompt
	in.CharLimit = 256
	in.Focus()

	evs := new([]types.Event)
	eng.Events.Subscribe(events.Any, func(ev types.Event) {
		*evs = append(*evs, ev)
	})

	return Model{
		session: console.NewSession(eng),
		engine:  eng,
		sched:   sc,
		events:  evs,
		input:   in,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styleSpinner)),
		history: NewHistory(100),
		display: eng.State.Rotation,
		now:     time.Now,
	}
}

// Run starts the Bubble Tea program. An empty saveDir keeps the default.
func Run(eng *engine.Engine, sc *Scheduler, saveDir string, trace bool) error {
	m := New(eng, sc)
	if saveDir != "" {
		m.session.SaveDir = saveDir
	}
	m.session.Trace = trace
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

// Init prints the title and the current items.
func (m Model) Init() tea.Cmd {
	var lines []string
	if t := m.engine.State.Title; t != "" {
		lines = append(lines, t, "")
	}
	lines = append(lines, m.engine.Step("list").Output...)
	lines = append(lines, "", "Type a command, or press ctrl+s to spin. /help for help.")
	m.takeEvents()
	return tea.Batch(textinput.Blink, func() tea.Msg { return logMsg(lines) })
}

// Update handles key presses, resizes, log output, animation frames and
// scheduled settles.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}

	case logMsg:
		m.appendLog("", msg...)
		return m, nil

	case frameMsg:
		return m.advanceFrame(time.Time(msg))

	case fireMsg:
		if m.sched.fire(msg.id) {
			m.afterSettle()
		}
		return m, m.sched.Drain()

	case spinner.TickMsg:
		if !m.engine.Spinning() {
			return m, nil // let the tick chain stop
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	logHeight := max(h-2-m.wheelPanelHeight(), 1) // status bar + input line
	if !m.ready {
		m.log = viewport.New(w, logHeight)
		m.log.KeyMap = logKeyMap()
		m.ready = true
	} else {
		m.log.Width, m.log.Height = w, logHeight
	}
	m.refreshLog()
}

// handleKey processes bound keys. Unbound keys fall through to the input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit, true
	case "enter":
		next, cmd := m.submit()
		return next, cmd, true
	case "ctrl+s":
		next, cmd := m.runCommand("spin", "")
		return next, cmd, true
	case "esc":
		if !m.engine.Spinning() {
			return m, nil, true
		}
		next, cmd := m.runCommand("cancel", "")
		return next, cmd, true
	case "up":
		if prev, ok := m.history.Prev(); ok {
			m.input.SetValue(prev)
			m.input.CursorEnd()
		}
		return m, nil, true
	case "down":
		next, ok := m.history.Next()
		if !ok {
			m.history.ResetCursor()
		}
		m.input.SetValue(next)
		m.input.CursorEnd()
		return m, nil, true
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.log, cmd = m.log.Update(msg)
		return m, cmd, true
	}
	return m, nil, false
}

// submit handles the line in the input box.
func (m Model) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if input == "" {
		return m, nil
	}
	m.history.Push(input)
	m.history.ResetCursor()

	if console.IsMeta(input) {
		return m.meta(input)
	}

	cmd, ok := m.session.Resolve(input)
	if !ok {
		m.appendSystem(input, "Nothing to repeat.")
		return m, nil
	}
	return m.runCommand(cmd, input)
}

func (m Model) meta(input string) (tea.Model, tea.Cmd) {
	reply := m.session.Meta(input, keyHelp...)
	m.appendSystem(input, reply.Lines...)
	if reply.Reloaded {
		m.anim = nil
		m.display = m.engine.State.Rotation
		m.appendLog("", m.engine.Step("list").Output...)
		m.takeEvents()
	}
	if reply.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// runCommand sends input to the engine. echo is the line shown as typed;
// key bindings pass an empty echo.
func (m Model) runCommand(input, echo string) (tea.Model, tea.Cmd) {
	wasSpinning := m.engine.Spinning()
	out := m.engine.Step(input).Output
	if evs := m.takeEvents(); m.session.Trace {
		out = append(out, console.Trace(evs)...)
	}
	m.appendLog(echo, out...)

	cmds := []tea.Cmd{m.sched.Drain()}
	if p, ok := m.engine.Phase().(engine.Spinning); ok {
		if !wasSpinning {
			m.anim = &animation{
				from:     p.Params.StartAngle,
				to:       p.Params.FinalAngle,
				start:    m.now(),
				duration: p.Params.Duration,
			}
			cmds = append(cmds, nextFrame(), m.spinner.Tick)
		}
	} else {
		// Cancelled or edited: snap to the stored rotation.
		m.anim = nil
		m.display = m.engine.State.Rotation
	}
	return m, tea.Batch(cmds...)
}

// advanceFrame moves the animation forward and schedules the next frame
// until the target angle is reached.
func (m Model) advanceFrame(t time.Time) (tea.Model, tea.Cmd) {
	if m.anim == nil {
		return m, nil
	}
	rot, done := m.anim.at(t)
	m.display = rot
	if done {
		m.anim = nil
		return m, nil
	}
	return m, nextFrame()
}

// afterSettle reports the outcome once the engine's settle has run.
func (m *Model) afterSettle() {
	evs := m.takeEvents()
	m.anim = nil
	m.display = m.engine.State.Rotation

	var lines []string
	if sel, ok := m.engine.Selected(); ok {
		lines = append(lines, console.SettledLine(sel.Label))
	}
	if m.session.Trace {
		lines = append(lines, console.Trace(evs)...)
	}
	if len(lines) > 0 {
		m.appendLog("", lines...)
	}
}

func (m *Model) takeEvents() []types.Event {
	evs := *m.events
	*m.events = nil
	return evs
}

// appendLog adds engine output, preceded by the echoed input if any.
func (m *Model) appendLog(echo string, lines ...string) {
	if echo != "" {
		m.entries = append(m.entries, entry{text: "> " + echo, kind: kindInput})
	}
	for _, l := range lines {
		m.entries = append(m.entries, entry{text: l, kind: classifyLine(l)})
	}
	m.entries = append(m.entries, entry{})
	m.refreshLog()
}

// appendSystem adds bracketed system lines.
func (m *Model) appendSystem(echo string, lines ...string) {
	m.entries = append(m.entries, entry{text: "> " + echo, kind: kindInput})
	for _, l := range lines {
		m.entries = append(m.entries, entry{text: "[" + l + "]", kind: kindSystem})
	}
	m.entries = append(m.entries, entry{})
	m.refreshLog()
}

// refreshLog re-wraps and re-styles every entry at the current width.
func (m *Model) refreshLog() {
	if !m.ready {
		return
	}
	width := max(m.width, 10)
	styled := make([]string, len(m.entries))
	for i, e := range m.entries {
		if e.text != "" {
			styled[i] = renderEntry(e, width)
		}
	}
	m.log.SetContent(strings.Join(styled, "\n"))
	m.log.GotoBottom()
}

// wheelPanelHeight is the number of rows above the log: pointer, raster
// and the banner line.
func (m Model) wheelPanelHeight() int {
	_, h := wheelSize(m.width, m.height)
	return h + 2
}

// View renders the wheel, banner, log, status bar and input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	w, h := wheelSize(m.width, m.height)
	return lipgloss.JoinVertical(lipgloss.Left,
		renderWheel(m.engine.State.Items, m.display, w, h, m.width),
		m.renderBanner(),
		m.log.View(),
		m.renderStatusBar(),
		m.input.View(),
	)
}

// logKeyMap leaves Up/Down to the input history.
func logKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}

func (m Model) String() string {
	return fmt.Sprintf("tui.Model{items: %d, display: %.1f}", len(m.engine.State.Items), m.display)
}
