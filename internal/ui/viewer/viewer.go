package viewer

import (
	"image"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"

	"github.com/idursun/layerview/internal/config"
	"github.com/idursun/layerview/internal/layer"
	"github.com/idursun/layerview/internal/navigation"
	"github.com/idursun/layerview/internal/readout"
	"github.com/idursun/layerview/internal/signal"
	"github.com/idursun/layerview/internal/ui/common"
	"github.com/idursun/layerview/internal/ui/layout"
	"github.com/idursun/layerview/internal/ui/render"
)

// ramp shades image values from low to high.
const ramp = " .:-=+*#%@"

type (
	pressMsg struct {
		model *Model
		x, y  int
	}
	scrollMsg struct {
		model *Model
		delta int
	}
	linkClickedMsg struct{ model *Model }
)

func (p pressMsg) SetDragStart(x, y int) tea.Msg {
	p.x, p.y = x, y
	return p
}

func (s scrollMsg) SetDelta(delta int, horizontal bool) tea.Msg {
	if horizontal {
		return nil
	}
	s.delta = delta
	return s
}

var (
	_ common.ImmediateModel = (*Model)(nil)
	_ help.KeyMap           = (*Model)(nil)
)

// Target is a layer group together with the position it is viewed at.
type Target struct {
	Group    *layer.ListSpecification
	Position *navigation.LinkedPosition
}

// Model is the slice view. It samples every target at its position whenever
// the position or the group's layers change, and moves the active target's
// position from keys and clicks.
type Model struct {
	*common.ViewNode
	targets   []Target
	active    int
	step      float32
	grid      cellbuf.Rectangle
	keymap    config.KeyMappings[key.Binding]
	styles    styles
	disposers signal.Disposers
}

type styles struct {
	border   lipgloss.Style
	title    lipgloss.Style
	selected lipgloss.Style
	text     lipgloss.Style
}

func New(targets []Target) *Model {
	step := config.Current.UI.ViewerStep
	if step <= 0 {
		step = 1
	}
	m := &Model{
		ViewNode: common.NewViewNode(0, 0),
		targets:  targets,
		step:     step,
		keymap:   config.Current.GetKeyMap(),
		styles: styles{
			border:   common.DefaultPalette.GetBorder("panel border", lipgloss.RoundedBorder()),
			title:    common.DefaultPalette.Get("panel title"),
			selected: common.DefaultPalette.Get("row selected"),
			text:     lipgloss.NewStyle(),
		},
	}
	for _, t := range targets {
		m.disposers.Add(t.Position.Value.Changed.Add(func() { m.sample(t) }))
		m.disposers.Add(t.Group.Layers.Changed.Add(func() { m.sample(t) }))
		m.sample(t)
	}
	return m
}

func (m *Model) sample(t Target) {
	readout.Update(t.Group.SelectedValues, t.Position.Value.Value(), t.Group)
}

func (m *Model) Dispose() {
	m.disposers.Dispose()
}

// SetActive makes the target of group the one moved by keys and clicks.
func (m *Model) SetActive(group *layer.ListSpecification) {
	for i, t := range m.targets {
		if t.Group == group {
			m.active = i
			return
		}
	}
}

// Active returns the target moved by keys and clicks.
func (m *Model) Active() (Target, bool) {
	if m.active >= len(m.targets) {
		return Target{}, false
	}
	return m.targets[m.active], true
}

// Describe is the active position and its link mode.
func (m *Model) Describe() string {
	t, ok := m.Active()
	if !ok {
		return ""
	}
	return t.Position.Value.Value().String() + " [" + t.Position.Link.Value().String() + "]"
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Accepts reports whether the key moves the position or changes its link.
func (m *Model) Accepts(msg tea.KeyMsg) bool {
	v := m.keymap.Viewer
	return key.Matches(msg, v.Left, v.Right, v.Up, v.Down, v.ZUp, v.ZDown, v.CycleLink)
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	t, ok := m.Active()
	if !ok {
		return nil
	}
	switch msg := msg.(type) {
	case pressMsg:
		if msg.model == m {
			center := m.center()
			return m.move(t, float32(msg.x-center.X), float32(msg.y-center.Y), 0)
		}
	case scrollMsg:
		if msg.model == m && msg.delta != 0 {
			dz := float32(1)
			if msg.delta < 0 {
				dz = -1
			}
			return m.move(t, 0, 0, dz*m.step)
		}
	case linkClickedMsg:
		if msg.model == m {
			t.Position.Link.Set(t.Position.Link.Value().Next())
		}
	case tea.KeyMsg:
		v := m.keymap.Viewer
		s := m.step
		switch {
		case key.Matches(msg, v.Left):
			return m.move(t, -s, 0, 0)
		case key.Matches(msg, v.Right):
			return m.move(t, s, 0, 0)
		case key.Matches(msg, v.Up):
			return m.move(t, 0, -s, 0)
		case key.Matches(msg, v.Down):
			return m.move(t, 0, s, 0)
		case key.Matches(msg, v.ZUp):
			return m.move(t, 0, 0, s)
		case key.Matches(msg, v.ZDown):
			return m.move(t, 0, 0, -s)
		case key.Matches(msg, v.CycleLink):
			t.Position.Link.Set(t.Position.Link.Value().Next())
		}
	}
	return nil
}

func (m *Model) move(t Target, dx, dy, dz float32) tea.Cmd {
	if dx == 0 && dy == 0 && dz == 0 {
		return nil
	}
	t.Position.Move(dx, dy, dz)
	return func() tea.Msg { return common.PositionChangedMsg{} }
}

func (m *Model) center() image.Point {
	return image.Pt(m.grid.Min.X+m.grid.Dx()/2, m.grid.Min.Y+m.grid.Dy()/2)
}

// shownLayer is the topmost visible initialised layer the slice can shade.
func shownLayer(group *layer.ListSpecification) *layer.UserLayer {
	for _, l := range group.Layers.Layers() {
		if !l.Visible() || l.UserLayer == nil {
			continue
		}
		switch l.UserLayer.Type {
		case layer.TypeImage, layer.TypeSegmentation, layer.TypeSegmentationWithGraph:
			return l.UserLayer
		}
	}
	return nil
}

// cell returns the glyph for pos and whether it shows a selected segment.
func cell(u *layer.UserLayer, pos navigation.Position) (rune, bool) {
	if u == nil {
		return ' ', false
	}
	if u.Segments != nil {
		root := u.Segments.Equivalences.Get(readout.SegmentAt(pos))
		if u.Segments.RootSegments.Has(root) {
			return '█', true
		}
		return '·', false
	}
	v, ok := readout.Sample(u, pos)
	f, isFloat := v.(float64)
	if !ok || !isFloat {
		return ' ', false
	}
	i := int(math.Round((math.Max(-100, math.Min(100, f)) + 100) / 200 * float64(len(ramp)-1)))
	return rune(ramp[i]), false
}

func (m *Model) ViewRect(dl *render.DisplayContext, box layout.Box) {
	m.SetFrame(box.R)
	t, ok := m.Active()
	if !ok || box.R.Dx() < 3 || box.R.Dy() < 3 {
		return
	}
	dl.AddDraw(box.R, m.styles.border.Width(box.R.Dx()-2).Height(box.R.Dy()-2).Render(""), render.ZBase)
	dl.Text(box.R.Min.X+2, box.R.Min.Y, render.ZBase).
		Clip(box.R.Dx()-4).
		Styled(" "+t.Group.Name+" "+t.Position.Value.Value().String()+" ", m.styles.title).
		Clickable("["+t.Position.Link.Value().String()+"]", m.styles.title.Underline(true), linkClickedMsg{model: m}).
		Done()

	m.grid = box.Inset(1).R
	center := m.center()
	pos := t.Position.Value.Value()
	u := shownLayer(t.Group)
	for y := m.grid.Min.Y; y < m.grid.Max.Y; y++ {
		var b strings.Builder
		for x := m.grid.Min.X; x < m.grid.Max.X; x++ {
			if x == center.X && y == center.Y {
				b.WriteRune('+')
				continue
			}
			p := pos.Add(float32(x-center.X), float32(y-center.Y), 0)
			r, selected := cell(u, p)
			if selected {
				b.WriteString(m.styles.selected.Render(string(r)))
			} else {
				b.WriteRune(r)
			}
		}
		dl.AddDraw(cellbuf.Rect(m.grid.Min.X, y, m.grid.Dx(), 1), b.String(), render.ZBase)
	}
	dl.AddInteraction(m.grid, pressMsg{model: m}, render.InteractionDrag, render.ZBase)
	dl.AddInteraction(m.grid, scrollMsg{model: m}, render.InteractionScroll, render.ZBase)
}

func (m *Model) ShortHelp() []key.Binding {
	v := m.keymap.Viewer
	return []key.Binding{v.Left, v.Right, v.Up, v.Down, v.ZUp, v.ZDown, v.CycleLink}
}

func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp()}
}
