package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cneill/drum/pkg/dispatch"
)

// layoutBounds caches where the clickable parts of the last rendered view landed.
type layoutBounds struct {
	powerX, powerY, powerWidth int
	volumeX, volumeY           int
	gridTop                    int
}

type Opts struct {
	Columns int
	Styles  *Styles
}

// Model is the bubbletea front end for a Dispatcher. It keeps no playback state of its own: every update and render
// reads straight from the Dispatcher.
type Model struct {
	Dispatcher *dispatch.Dispatcher
	Styles     *Styles

	columns  int
	padIDs   []string
	lastHit  string
	showHelp bool
	quitting bool
	bounds   *layoutBounds
}

func NewModel(disp *dispatch.Dispatcher, opts *Opts) Model {
	if opts == nil {
		opts = &Opts{}
	}

	columns := opts.Columns
	if columns <= 0 {
		columns = 3
	}

	styles := opts.Styles
	if styles == nil {
		styles = DefaultStyles()
	}

	pads := disp.Registry().Pads()
	padIDs := make([]string, 0, len(pads))

	for _, p := range pads {
		padIDs = append(padIDs, p.ID)
	}

	return Model{
		Dispatcher: disp,
		Styles:     styles,
		columns:    columns,
		padIDs:     padIDs,
		bounds:     &layoutBounds{},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m = m.handleClick(msg.X, msg.Y)
		}
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Named bindings can never collide with a single-character pad key.
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "ctrl+p", "tab":
		m.Dispatcher.TogglePower()
		return m, nil

	case "up", "right":
		m.Dispatcher.AdjustVolume(volumeStep)
		return m, nil

	case "down", "left":
		m.Dispatcher.AdjustVolume(-volumeStep)
		return m, nil
	}

	// Printable keys that arrive in one read come as a single message; each rune is its own press.
	if msg.Type == tea.KeyRunes && !msg.Alt && len(msg.Runes) > 1 {
		for _, r := range msg.Runes {
			m = m.pressKey(string(r))
		}

		return m, nil
	}

	return m.pressKey(msg.String()), nil
}

// pressKey plays the pad bound to key, falling back to the single-character shortcuts when nothing is bound and the
// power is on.
func (m Model) pressKey(key string) Model {
	result := m.Dispatcher.KeyTrigger(key)
	if result.Pad != nil {
		m.lastHit = result.Pad.ID
		return m
	}

	if result.SuppressDefault {
		return m
	}

	switch key {
	case "+", "=":
		m.Dispatcher.AdjustVolume(volumeStep)
	case "-", "_":
		m.Dispatcher.AdjustVolume(-volumeStep)
	case "?":
		m.showHelp = !m.showHelp
	}

	return m
}

func (m Model) handleClick(x, y int) Model {
	switch {
	case y == m.bounds.powerY && x >= m.bounds.powerX && x < m.bounds.powerX+m.bounds.powerWidth:
		m.Dispatcher.TogglePower()

	case y == m.bounds.volumeY && x >= m.bounds.volumeX && x < m.bounds.volumeX+volumeBarWidth:
		m.Dispatcher.SetVolume((x - m.bounds.volumeX) * dispatch.MaxVolume / (volumeBarWidth - 1))

	default:
		if padID, ok := m.hitTest(x, y); ok && m.Dispatcher.PointerTrigger(padID) {
			m.lastHit = padID
		}
	}

	return m
}

// hitTest maps a screen position to the pad drawn there.
func (m Model) hitTest(x, y int) (string, bool) {
	relY := y - m.bounds.gridTop
	if relY < 0 || x < 0 || x%padStride >= padWidth {
		return "", false
	}

	row, col := relY/padHeight, x/padStride
	if col >= m.columns {
		return "", false
	}

	idx := row*m.columns + col
	if idx >= len(m.padIDs) {
		return "", false
	}

	return m.padIDs[idx], true
}

func (m Model) Quitting() bool { return m.quitting }
