// Package ui implements the terminal document viewer. It drives the same
// viewport engine as the browser preview, with terminal cells standing in for
// pixels: the content size is the document's line/column extent and the
// viewport size tracks the terminal window.
package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/recera/viewpane/internal/content"
	"github.com/recera/viewpane/pkg/surface"
	"github.com/recera/viewpane/pkg/viewport"
)

// frameMsg drives periodic redraws so the indicator auto-hide becomes
// visible without further input.
type frameMsg time.Time

// measuredMsg signals that the settle delay elapsed and the content size can
// be captured.
type measuredMsg struct{}

// Model is the terminal viewer state.
type Model struct {
	path  string
	lines []string

	contentW float64
	contentH float64

	width  int
	height int

	surf       *surface.MemorySurface
	engine     *viewport.Engine
	dispatcher *viewport.Dispatcher
	measurer   *content.Measurer
	measured   bool
	quitting   bool
}

// NewModel creates a viewer model for the given document text.
func NewModel(path, text string, cfg *viewport.Config) Model {
	lines := strings.Split(strings.ReplaceAll(text, "\t", "    "), "\n")
	maxW := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > maxW {
			maxW = n
		}
	}

	surf := surface.NewMemorySurface(0, 0)
	engine := viewport.NewEngine(surf, cfg)
	return Model{
		path:       path,
		lines:      lines,
		contentW:   float64(maxW),
		contentH:   float64(len(lines)),
		surf:       surf,
		engine:     engine,
		dispatcher: viewport.NewDispatcher(engine),
		measurer:   content.NewMeasurer(engine.Config().SettleDelay),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return frameTick()
}

func frameTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// scheduleMeasure arms the settle-delay capture and returns a command that
// delivers measuredMsg once it fires, keeping the engine mutation on the
// update loop.
func (m Model) scheduleMeasure() tea.Cmd {
	done := make(chan struct{})
	m.measurer.Schedule(func() { close(done) })
	return func() tea.Msg {
		<-done
		return measuredMsg{}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		return m, frameTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// The bottom row is the status bar; everything above is viewport.
		m.surf.SetViewportSize(float64(msg.Width), float64(msg.Height-1))
		if !m.measured {
			m.measured = true
			return m, m.scheduleMeasure()
		}
		return m, nil

	case measuredMsg:
		m.engine.SetContentSize(m.contentW, m.contentH)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, DefaultKeyMap.ZoomIn):
		m.dispatcher.KeyDown(viewport.KeyEvent{Key: viewport.KeyPlus, Ctrl: true})
	case key.Matches(msg, DefaultKeyMap.ZoomOut):
		m.dispatcher.KeyDown(viewport.KeyEvent{Key: viewport.KeyMinus, Ctrl: true})
	case key.Matches(msg, DefaultKeyMap.Reset):
		m.dispatcher.KeyDown(viewport.KeyEvent{Key: viewport.KeyZero, Ctrl: true})
	case key.Matches(msg, DefaultKeyMap.FitWidth):
		m.engine.FitToWidth()
	case key.Matches(msg, DefaultKeyMap.Up):
		m.dispatcher.KeyDown(viewport.KeyEvent{Key: viewport.KeyArrowUp})
	case key.Matches(msg, DefaultKeyMap.Down):
		m.dispatcher.KeyDown(viewport.KeyEvent{Key: viewport.KeyArrowDown})
	case key.Matches(msg, DefaultKeyMap.Left):
		m.dispatcher.KeyDown(viewport.KeyEvent{Key: viewport.KeyArrowLeft})
	case key.Matches(msg, DefaultKeyMap.Right):
		m.dispatcher.KeyDown(viewport.KeyEvent{Key: viewport.KeyArrowRight})
	case key.Matches(msg, DefaultKeyMap.PageUp):
		m.dispatcher.KeyDown(viewport.KeyEvent{Key: viewport.KeyPageUp})
	case key.Matches(msg, DefaultKeyMap.PageDown):
		m.dispatcher.KeyDown(viewport.KeyEvent{Key: viewport.KeyPageDown})
	case key.Matches(msg, DefaultKeyMap.Home):
		m.dispatcher.KeyDown(viewport.KeyEvent{Key: viewport.KeyHome})
	case key.Matches(msg, DefaultKeyMap.End):
		m.dispatcher.KeyDown(viewport.KeyEvent{Key: viewport.KeyEnd})
	}
	return m, nil
}

// wheelStep is the pan distance of one wheel notch, in cells.
const wheelStep = 3

func (m *Model) handleMouse(msg tea.MouseMsg) {
	x, y := float64(msg.X), float64(msg.Y)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.dispatcher.Wheel(viewport.WheelEvent{X: x, Y: y, DeltaY: -wheelStep, Ctrl: msg.Ctrl, Shift: msg.Shift})
		return
	case tea.MouseButtonWheelDown:
		m.dispatcher.Wheel(viewport.WheelEvent{X: x, Y: y, DeltaY: wheelStep, Ctrl: msg.Ctrl, Shift: msg.Shift})
		return
	case tea.MouseButtonWheelLeft:
		m.dispatcher.Wheel(viewport.WheelEvent{X: x, Y: y, DeltaX: -wheelStep})
		return
	case tea.MouseButtonWheelRight:
		m.dispatcher.Wheel(viewport.WheelEvent{X: x, Y: y, DeltaX: wheelStep})
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		m.dispatcher.MouseDown(viewport.MouseEvent{
			X: x, Y: y,
			Button: mapButton(msg.Button),
			Target: m.target(msg.X, msg.Y),
		})
	case tea.MouseActionMotion:
		m.dispatcher.MouseMove(viewport.MouseEvent{X: x, Y: y})
	case tea.MouseActionRelease:
		btn := mapButton(msg.Button)
		if msg.Button == tea.MouseButtonNone {
			// Some terminals do not report which button was released; end
			// whatever session is active.
			switch m.dispatcher.Session().Kind {
			case viewport.SessionMiddleDrag:
				btn = viewport.MouseMiddle
			case viewport.SessionThumbDrag:
				btn = viewport.MouseLeft
			}
		}
		m.dispatcher.MouseUp(viewport.MouseEvent{X: x, Y: y, Button: btn})
	}
}

func mapButton(b tea.MouseButton) viewport.MouseButton {
	switch b {
	case tea.MouseButtonMiddle:
		return viewport.MouseMiddle
	case tea.MouseButtonRight:
		return viewport.MouseRight
	default:
		return viewport.MouseLeft
	}
}

// target classifies a mouse position: the rightmost column hosts the vertical
// indicator, the last viewport row hosts the horizontal one.
func (m *Model) target(x, y int) viewport.MouseTarget {
	view := m.engine.Indicators().View()
	viewportRows := m.height - 1

	if x == m.width-1 && y < viewportRows {
		t := view.Vertical
		if float64(y) >= t.Position && float64(y) < t.Position+t.Extent {
			return viewport.TargetThumbVertical
		}
		return viewport.TargetTrackVertical
	}
	if y == viewportRows-1 {
		t := view.Horizontal
		if float64(x) >= t.Position && float64(x) < t.Position+t.Extent {
			return viewport.TargetThumbHorizontal
		}
		return viewport.TargetTrackHorizontal
	}
	return viewport.TargetContent
}
