package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/addressbook/internal/contacts"
)

// helpBarHeight is the number of lines reserved for the help bar at the bottom.
const helpBarHeight = 1

// borderChrome is the number of lines consumed by top + bottom borders.
const borderChrome = 2

// Model is the root Bubble Tea model for the dashboard TUI.
// It manages a two-pane layout with mode-based content and focus management.
type Model struct {
	mode     Mode
	focus    Focus
	width    int
	height   int
	viewport viewport.Model
	help     help.Model
	spinner  spinner.Model
	browse   browseState
	loader   BookLoader
	now      func() time.Time
	window   int
}

// ModelOption configures optional Model dependencies.
type ModelOption func(*Model)

// WithClock sets the time source for the birthdays pane.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) { m.now = now }
}

// WithBirthdayWindow sets how many days ahead the birthdays pane looks.
func WithBirthdayWindow(days int) ModelOption {
	return func(m *Model) { m.window = days }
}

// NewModel creates a dashboard Model in contacts mode with left-pane focus.
// The book is fetched from loader when the program starts.
func NewModel(loader BookLoader, opts ...ModelOption) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	m := Model{
		mode:     ModeContacts,
		focus:    PaneLeft,
		viewport: viewport.New(0, 0),
		help:     help.New(),
		spinner:  s,
		browse:   newBrowseState(),
		loader:   loader,
		now:      time.Now,
		window:   contacts.DefaultBirthdayWindow,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the spinner and the initial book load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadBook(m.loader))
}

// Update handles incoming messages with mode-based routing.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		_, rightWidth := PaneWidths(msg.Width)
		m.viewport.Width = max(rightWidth-borderChrome, 0)
		m.viewport.Height = m.contentHeight()
		m.refreshDetail()
		return m, nil

	case spinner.TickMsg:
		if !m.browse.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case BookMsg:
		m.browse, _ = m.browse.Update(msg)
		m.refreshDetail()
		return m, nil

	case RefreshMsg:
		return m, tea.Batch(m.spinner.Tick, loadBook(m.loader))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey processes key messages with global and pane-specific routing.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.focus == PaneLeft {
			m.focus = PaneRight
		} else {
			m.focus = PaneLeft
		}
		return m, nil
	case "b":
		if m.mode == ModeContacts {
			m.mode = ModeBirthdays
		} else {
			m.mode = ModeContacts
		}
		m.refreshDetail()
		return m, nil
	}

	if m.focus == PaneRight {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	before := m.browse.cursor
	var cmd tea.Cmd
	m.browse, cmd = m.browse.Update(msg)
	if m.browse.cursor != before {
		m.refreshDetail()
	}
	return m, cmd
}

// refreshDetail rebuilds the right pane content for the current mode and
// selection.
func (m *Model) refreshDetail() {
	var content string
	switch m.mode {
	case ModeBirthdays:
		content = RenderUpcoming(m.browse.book, m.now(), m.window)
	default:
		content = RenderDetail(m.browse.Selected())
	}
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

// contentHeight returns the usable height for pane content,
// accounting for border chrome and the help bar.
func (m Model) contentHeight() int {
	return max(m.height-borderChrome-helpBarHeight, 1)
}

// View renders the two-pane layout with help bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	leftWidth, rightWidth := PaneWidths(m.width)
	contentHeight := m.contentHeight()

	var leftStyle, rightStyle lipgloss.Style
	if m.focus == PaneLeft {
		leftStyle = FocusedBorder()
		rightStyle = UnfocusedBorder()
	} else {
		leftStyle = UnfocusedBorder()
		rightStyle = FocusedBorder()
	}

	leftStyle = leftStyle.
		Width(leftWidth - borderChrome).
		Height(contentHeight)
	rightStyle = rightStyle.
		Width(rightWidth - borderChrome).
		Height(contentHeight)

	leftPane := leftStyle.Render(m.browse.View(m.spinner.View()))
	rightPane := rightStyle.Render(m.viewport.View())
	panes := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
	helpView := m.help.View(HelpBindings(m.mode))

	return lipgloss.JoinVertical(lipgloss.Left, panes, helpView)
}
