// FILE: logpane/src/internal/tui/model.go
package tui

import (
	"fmt"
	"strings"
	"time"

	"logpane/src/internal/core"
	"logpane/src/internal/format"
	"logpane/src/internal/viewer"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lixenwraith/log"
)

const (
	defaultRefresh = 100 * time.Millisecond
	headerLines    = 2
	statusLines    = 1
)

// Key bindings for the level toggles, most severe first
var levelKeys = map[string]core.Level{
	"1": core.LevelError,
	"2": core.LevelWarn,
	"3": core.LevelInfo,
	"4": core.LevelDebug,
	"5": core.LevelTrace,
}

type tickMsg time.Time

// Model is a bubbletea front end for a viewer. It implements viewer.Canvas:
// key presses are queued as pending interactions and handed to the viewer on
// the next draw pass, which renders the screen into a cached string.
type Model struct {
	state   *viewer.State
	logger  *log.Logger
	styles  Styles
	refresh time.Duration

	search   textinput.Model
	viewport viewport.Model
	width    int
	height   int
	quitting bool

	// Interactions since the last draw pass
	pendingLevels core.LevelMask
	pendingQuery  *string
	flipRegex     bool
	flipCase      bool
	clear         bool
	scroll        int

	// Render buffers, reset each pass
	controls []string
	query    string
	body     strings.Builder
	status   string
	rendered string
}

var _ viewer.Canvas = (*Model)(nil)

// New creates a model drawing state. A refresh of zero uses the default.
func New(state *viewer.State, refresh time.Duration, logger *log.Logger) *Model {
	if refresh <= 0 {
		refresh = defaultRefresh
	}
	if logger == nil {
		logger = log.NewLogger()
	}

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search"
	search.CharLimit = 256
	search.Width = 32

	m := &Model{
		state:    state,
		logger:   logger,
		styles:   DefaultStyles(),
		refresh:  refresh,
		search:   search,
		viewport: viewport.New(80, 20),
		width:    80,
		height:   20 + headerLines + statusLines,
	}
	m.redraw()
	return m
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tickMsg:
		cmd = m.tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerLines-statusLines, 1)

	case tea.KeyMsg:
		if m.search.Focused() {
			cmd = m.updateSearch(msg)
		} else {
			cmd = m.handleKey(msg)
		}
		if m.quitting {
			m.logger.Debug("msg", "Viewer closed",
				"component", "tui",
				"viewer_id", m.state.ID())
			return m, tea.Quit
		}
	}

	m.redraw()
	return m, cmd
}

func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.search.Blur()
		return nil
	case tea.KeyCtrlC:
		m.quitting = true
		return nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		m.pendingQuery = &after
	}
	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if l, ok := levelKeys[key]; ok {
		m.pendingLevels = m.pendingLevels.Toggle(l)
		return nil
	}

	switch key {
	case "q", "ctrl+c":
		m.quitting = true
	case "/":
		return m.search.Focus()
	case "r":
		m.flipRegex = !m.flipRegex
	case "c":
		m.flipCase = !m.flipCase
	case "x":
		m.clear = true
	case "up", "k":
		m.scroll++
	case "down", "j":
		m.scroll--
	case "pgup":
		m.scroll += m.viewport.Height
	case "pgdown":
		m.scroll -= m.viewport.Height
	case "end", "G":
		m.state.SetStickToBottom(true)
		m.scroll = 0
	}
	return nil
}

// redraw runs one viewer pass and caches the screen
func (m *Model) redraw() {
	m.controls = m.controls[:0]
	m.query = ""
	m.body.Reset()
	m.status = ""

	m.state.Draw(m)

	m.pendingLevels = 0
	m.pendingQuery = nil
	m.flipRegex = false
	m.flipCase = false
	m.clear = false
	m.scroll = 0

	m.viewport.SetContent(m.body.String())
	m.rendered = lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(m.controls, " "),
		m.query,
		m.viewport.View(),
		m.status,
	)
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return m.rendered
}

// LevelToggle implements viewer.Canvas
func (m *Model) LevelToggle(level core.Level, enabled bool) bool {
	toggled := m.pendingLevels.Has(level)
	if toggled {
		enabled = !enabled
	}

	label := level.String()
	if enabled {
		label = m.styles.level(level).Render(label)
	} else {
		label = m.styles.Off.Render(label)
	}
	m.controls = append(m.controls, label)
	return toggled
}

// SearchBox implements viewer.Canvas
func (m *Model) SearchBox(query string) (string, bool) {
	if m.pendingQuery != nil {
		query = *m.pendingQuery
	} else if !m.search.Focused() && m.search.Value() != query {
		m.search.SetValue(query)
	}
	m.query = m.search.View()
	return query, m.pendingQuery != nil
}

// RegexSwitch implements viewer.Canvas
func (m *Model) RegexSwitch(enabled bool) bool {
	m.controls = append(m.controls, m.switchLabel(".*", enabled != m.flipRegex))
	return m.flipRegex
}

// CaseSwitch implements viewer.Canvas
func (m *Model) CaseSwitch(sensitive bool) bool {
	m.controls = append(m.controls, m.switchLabel("Aa", sensitive != m.flipCase))
	return m.flipCase
}

func (m *Model) switchLabel(label string, on bool) string {
	if on {
		return m.styles.Switch.Render("[" + label + "]")
	}
	return m.styles.Off.Render("[" + label + "]")
}

// ClearButton implements viewer.Canvas
func (m *Model) ClearButton() bool {
	return m.clear
}

// Scroll implements viewer.Canvas
func (m *Model) Scroll() int {
	return m.scroll
}

// Rows implements viewer.Canvas. Only the rows inside the window are
// rendered.
func (m *Model) Rows(frame *viewer.Frame) {
	height := max(m.viewport.Height, 1)
	end := max(len(frame.Rows)-frame.Scroll, 0)
	start := max(end-height, 0)

	mode, startTime := m.state.TimeFormat()
	for i := start; i < end; i++ {
		r := &frame.Rows[i]
		m.body.WriteString(m.styles.Time.Render(format.FormatTime(r.Time, mode, startTime)))
		m.body.WriteByte(' ')
		m.body.WriteString(m.styles.level(r.Level).Render(fmt.Sprintf("%-5s", r.Level.String())))
		m.body.WriteByte(' ')
		if frame.MaxTargetLen > 0 {
			m.body.WriteString(m.styles.Target.Render(fmt.Sprintf("%-*s", frame.MaxTargetLen, r.Target)))
			m.body.WriteByte(' ')
		}
		m.body.WriteString(r.Message)
		if i < end-1 {
			m.body.WriteByte('\n')
		}
	}

	status := fmt.Sprintf("%d/%d rows  matched %d  dropped %d  evicted %d",
		frame.Displayed, frame.Total, frame.Matched, frame.Dropped, frame.Evicted)
	if !frame.StickToBottom {
		status += fmt.Sprintf("  scrolled %d", frame.Scroll)
	}
	m.status = m.styles.Status.Render(status)
	if frame.FilterErr != nil {
		m.status = lipgloss.JoinVertical(lipgloss.Left, m.status, m.styles.Error.Render(frame.FilterErr.Error()))
	}
}
