// Package ui provides the terminal host using Bubble Tea.
package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/frame"
	"github.com/litescript/ls-orrery/internal/geom"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/state"
)

// footerRows is the number of terminal rows below the canvas.
const footerRows = 2

// Msg types for Bubble Tea
type (
	// FrameTickMsg triggers a frame.
	FrameTickMsg time.Time

	// CatalogLoadedMsg carries the finished catalog load.
	CatalogLoadedMsg struct {
		Outcome state.LoadOutcome
	}

	// copyResultMsg reports a clipboard write.
	copyResultMsg struct {
		name string
		err  error
	}
)

// Config holds terminal host configuration.
type Config struct {
	Frame frame.Config

	// FPS is the frame rate of the tick loop.
	FPS int

	// ScrollStep is the number of rows moved per wheel notch.
	ScrollStep int
}

// DefaultConfig returns the frame configuration scaled for terminal cells.
// One cell is one pixel wide and two pixels tall.
func DefaultConfig() Config {
	fc := frame.DefaultConfig()
	fc.MinWidth = 40
	fc.CreditsMinHeight = 40
	fc.TextSize = 1
	fc.TitleSize = 1
	fc.BoxWidth = 24
	fc.BoxHeight = 6
	fc.Margin = 2
	fc.StrokeWeight = 1
	fc.Stars = 60

	return Config{
		Frame:      fc,
		FPS:        30,
		ScrollStep: 3,
	}
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	app    *state.App
	driver *frame.Driver
	canvas *Canvas
	log    *logging.Logger
	cfg    Config

	// Terminal state
	width  int
	height int
	ready  bool
	scroll int // first visible canvas row

	// Pointer state. latched keeps a press visible to the next frame even
	// if the release arrives before the tick.
	mouseX  int
	mouseY  int
	pressed bool
	latched bool

	// Used to reset scrolling when the screen changes.
	lastMode     state.ViewMode
	lastSelected string

	statusMsg string

	copyText func(string) error
}

// New creates a new root UI model.
func New(app *state.App, cfg Config, log *logging.Logger) Model {
	if log == nil {
		log = logging.Discard()
	}
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultConfig().FPS
	}
	return Model{
		app:      app,
		driver:   frame.New(app, cfg.Frame, log.Named("frame")),
		canvas:   NewCanvas(),
		log:      log,
		cfg:      cfg,
		mouseX:   -1,
		mouseY:   -1,
		copyText: clipboard.WriteAll,
	}
}

// Driver returns the frame driver.
func (m Model) Driver() *frame.Driver {
	return m.driver
}

// Canvas returns the terminal surface.
func (m Model) Canvas() *Canvas {
	return m.canvas
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return frameTickCmd(m.cfg.FPS)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "s":
			m.request(state.ModeScale)
		case "2", "d":
			m.request(state.ModeDistance)
		case "3", "c":
			m.request(state.ModeCredits)

		case "esc", "backspace", "m":
			m.driver.Back()

		case "up", "k":
			m.scrollBy(-1)
		case "down", "j":
			m.scrollBy(1)
		case "pgup":
			m.scrollBy(-m.viewRows())
		case "pgdown", " ":
			m.scrollBy(m.viewRows())
		case "home", "g":
			m.scroll = 0
		case "end", "G":
			m.scroll = m.maxScroll()

		case "y":
			if cmd := m.copySelected(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.runFrame()

	case FrameTickMsg:
		cmds = append(cmds, frameTickCmd(m.cfg.FPS))
		if m.ready {
			m.runFrame()
		}

	case CatalogLoadedMsg:
		m.applyCatalog(msg.Outcome)

	case copyResultMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Copy failed: %v", msg.err)
			m.log.Warn("clipboard: %v", msg.err)
		} else {
			m.statusMsg = fmt.Sprintf("Copied %s details to clipboard", msg.name)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) request(mode state.ViewMode) {
	if err := m.driver.Request(mode); err != nil {
		switch {
		case errors.Is(err, state.ErrNotReady):
			m.statusMsg = "Planet data is still loading"
		case errors.Is(err, state.ErrInvalidTransition):
			m.statusMsg = "Return to the menu first (esc)"
		default:
			m.statusMsg = err.Error()
		}
		return
	}
	m.statusMsg = ""
}

func (m *Model) applyCatalog(out state.LoadOutcome) {
	if err := m.app.SetCatalog(out); err != nil {
		m.log.Warn("catalog from %s ignored: %v", out.Origin, err)
		return
	}
	if out.Err != nil {
		m.log.Error("catalog load from %s failed: %v", out.Origin, out.Err)
		return
	}
	m.log.Info("catalog loaded from %s: %d planets in %s",
		out.Origin, out.Catalog.Len(), out.Duration.Round(time.Millisecond))
	for _, w := range out.Warnings {
		m.log.Warn("catalog: %s", w)
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBy(-m.cfg.ScrollStep)
		return
	case tea.MouseButtonWheelDown:
		m.scrollBy(m.cfg.ScrollStep)
		return
	}

	m.mouseX, m.mouseY = msg.X, msg.Y
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.pressed = true
			m.latched = true
		}
	case tea.MouseActionRelease:
		m.pressed = false
	}
}

// pointer converts the mouse cell to surface pixels. Rows below the
// canvas are outside the surface.
func (m Model) pointer() frame.Pointer {
	ptr := frame.Pointer{
		Pos:  geom.Pt(-1, -1),
		Down: m.pressed || m.latched,
	}
	if m.mouseX < 0 || m.mouseY < 0 || m.mouseY >= m.viewRows() {
		return ptr
	}
	ptr.Pos = geom.Pt(float64(m.mouseX)+0.5, float64((m.mouseY+m.scroll)*2+1))
	return ptr
}

func (m Model) viewRows() int {
	rows := m.height - footerRows
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m Model) maxScroll() int {
	n := m.canvas.Rows() - m.viewRows()
	if n < 0 {
		return 0
	}
	return n
}

func (m *Model) scrollBy(n int) {
	m.scroll += n
	m.clampScroll()
}

func (m *Model) clampScroll() {
	if m.scroll > m.maxScroll() {
		m.scroll = m.maxScroll()
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// runFrame draws one frame to the canvas.
func (m *Model) runFrame() {
	vp := frame.Viewport{
		Width:  float64(m.width),
		Height: float64(m.viewRows() * 2),
	}
	m.driver.Frame(m.canvas, vp, m.pointer())
	m.latched = false

	mode := m.driver.Mode()
	selected := ""
	if p := m.driver.Selected(); p != nil {
		selected = p.Name
	}
	if mode != m.lastMode || selected != m.lastSelected {
		m.scroll = 0
		m.lastMode = mode
		m.lastSelected = selected
	}
	m.clampScroll()
}

func (m Model) copySelected() tea.Cmd {
	p := m.driver.Selected()
	if p == nil {
		return nil
	}
	text := p.Details()
	write := m.copyText
	return func() tea.Msg {
		return copyResultMsg{name: p.Name, err: write(text)}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	body := m.canvas.Render(m.scroll, m.viewRows(), m.width)
	return body + "\n" + m.renderFooter()
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)

	info := m.driver.Info()

	var status string
	st := m.app.Status()
	switch {
	case st.Err != nil:
		status = errorStyle.Render("ERROR: " + st.Err.Error())
	case st.Loaded:
		status = dimStyle.Render(fmt.Sprintf("%d planets (%s)", st.Planets, st.Origin))
	default:
		status = dimStyle.Render("Loading planet data...")
	}

	mode := accentStyle.Render("▶ " + info.Mode.String())
	if p := m.driver.Selected(); p != nil {
		mode += accentStyle.Render(" / " + p.Name)
	}

	line1 := "  " + mode + "  " + dimStyle.Render("|") + "  " + status
	if info.Cursor == frame.CursorPointer {
		line1 += "  " + accentStyle.Render("☛ "+info.Hovered)
	}

	var help string
	switch {
	case m.driver.Selected() != nil:
		help = "y: copy | esc: back | q: quit"
	case info.Mode == state.ModeUninitialized:
		help = "1: scale | 2: distance | 3: credits | click a button | q: quit"
	case info.Mode == state.ModeScale:
		help = "click a planet | ↑↓/wheel: scroll | esc: menu | q: quit"
	default:
		help = "↑↓: scroll | esc: menu | q: quit"
	}
	line2 := "  " + dimStyle.Render(help)
	if m.statusMsg != "" {
		line2 += "  " + dimStyle.Render("·") + "  " + m.statusMsg
	}

	clip := lipgloss.NewStyle().MaxWidth(m.width)
	return strings.Join([]string{clip.Render(line1), clip.Render(line2)}, "\n")
}

func frameTickCmd(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return FrameTickMsg(t)
	})
}
