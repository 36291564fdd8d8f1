package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"rstr/internal/config"
	"rstr/internal/eventbus"
	"rstr/internal/store"
	"rstr/internal/ui/views"
)

// chromeRows is the vertical space reserved for the header, scan line,
// scroll indicators, status bar and help footer.
const chromeRows = 8

// Model represents the UI state
type Model struct {
	bus     eventbus.EventBus
	config  *config.Config
	store   store.ResultStore
	pattern string

	width  int
	height int
	keys   keyMap
	help   help.Model

	navigator *Navigator
	renderer  *views.Renderer
	pager     *PagerOps

	scanning      bool
	currentPath   string
	filesScanned  int
	statusMessage string
}

// NewModel creates a new UI model
func NewModel(cfg *config.Config, resultStore store.ResultStore, bus eventbus.EventBus, pattern string) *Model {
	styles := views.NewStyles(cfg.UISettings.HighlightColor, cfg.UISettings.SelectionColor)

	return &Model{
		bus:       bus,
		config:    cfg,
		store:     resultStore,
		pattern:   pattern,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		navigator: NewNavigator(),
		renderer:  views.NewRenderer(styles),
		pager:     NewPagerOps(),
		scanning:  true,
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.pager.SetProgram(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.navigator.SetViewportHeight(msg.Height - chromeRows)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case EventMsg:
		m.handleEvent(msg.Event)

	case tickMsg:
		// Keep the spinner animating while the scan runs
		if m.scanning {
			return m, tick()
		}

	case pagerDoneMsg:
		if msg.err != nil {
			log.Printf("Pager failed for %s: %v", msg.path, msg.err)
			m.statusMessage = fmt.Sprintf("Failed to open %s: %v", msg.path, msg.err)
		}
	}

	return m, nil
}

// handleKey maps a key event to a navigation transition
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Keep the navigator in sync with the streaming result count
	m.navigator.SetLength(m.store.Len())

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.navigator.MoveUp()

	case key.Matches(msg, m.keys.Down):
		m.navigator.MoveDown()

	case key.Matches(msg, m.keys.PageUp):
		m.navigator.PageUp()

	case key.Matches(msg, m.keys.PageDown):
		m.navigator.PageDown()

	case key.Matches(msg, m.keys.Top):
		m.navigator.MoveToStart()

	case key.Matches(msg, m.keys.Bottom):
		m.navigator.MoveToEnd()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.OpenPager):
		if m.navigator.HasSelection() {
			if match, ok := m.store.Get(m.navigator.SelectedIndex()); ok {
				m.statusMessage = ""
				return m, m.openPagerCmd(match.FilePath)
			}
		}
	}

	return m, nil
}

// handleEvent processes domain events forwarded from the scan worker
func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.ScanStartedEvent:
		m.scanning = true

	case eventbus.MatchFoundEvent:
		// The store was appended before the event was forwarded; only
		// the navigator bound needs refreshing here.
		m.navigator.SetLength(m.store.Len())

	case eventbus.ScanProgressEvent:
		m.currentPath = e.CurrentPath
		m.filesScanned = e.FilesScanned

	case eventbus.ScanCompletedEvent:
		m.scanning = false
		m.currentPath = ""
		m.filesScanned = e.FilesScanned
		m.navigator.SetLength(m.store.Len())

	case eventbus.ErrorEvent:
		log.Printf("Scan error: %s: %v", e.Message, e.Err)
		m.statusMessage = e.Message
	}
}

// View renders the current frame
func (m *Model) View() string {
	offset := m.navigator.ViewportOffset()
	window := m.store.Slice(offset, offset+m.navigator.ViewportHeight())

	return m.renderer.Render(views.ViewState{
		Width:           m.width,
		Height:          m.height,
		Pattern:         m.pattern,
		Window:          window,
		WindowStart:     offset,
		Total:           m.store.Len(),
		FileCount:       m.store.FileCount(),
		SelectedIndex:   m.navigator.SelectedIndex(),
		ViewportHeight:  m.navigator.ViewportHeight(),
		Scanning:        m.scanning,
		CurrentPath:     m.currentPath,
		FilesScanned:    m.filesScanned,
		StatusMessage:   m.statusMessage,
		ShowLineNumbers: m.config.UISettings.ShowLineNumbers,
		HelpView:        m.help.View(m.keys),
	})
}

// openPagerCmd opens the matched file in the ov pager off the update loop
func (m *Model) openPagerCmd(path string) tea.Cmd {
	return func() tea.Msg {
		return pagerDoneMsg{path: path, err: m.pager.OpenFile(path)}
	}
}

// tick schedules the next spinner frame
func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
