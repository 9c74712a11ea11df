package details

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idursun/layerview/internal/config"
	"github.com/idursun/layerview/internal/layer"
	"github.com/idursun/layerview/internal/navigation"
	"github.com/idursun/layerview/internal/readout"
	"github.com/idursun/layerview/internal/segments"
	"github.com/idursun/layerview/internal/ui/common"
	"github.com/idursun/layerview/internal/ui/flash"
	"github.com/idursun/layerview/internal/ui/layout"
	"github.com/idursun/layerview/internal/ui/render"
)

const resetTimestampMessage = "Resetting Timestamp deselects selected segments."

type (
	closeClickedMsg struct{ model *Model }
	rootClickedMsg  struct {
		model *Model
		root  segments.ID
	}
	undoMsg struct {
		model *Model
		undo  func()
	}
	scrollMsg struct {
		model *Model
		delta int
	}
)

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

// Model shows the layer held by the selected layer state. Segment commands
// act on the segment under the position returned by position.
type Model struct {
	selected *layer.SelectedLayerState
	position func() navigation.Position
	now      func() time.Time
	scroll   int
	keymap   config.KeyMappings[key.Binding]
	styles   styles
}

type styles struct {
	border lipgloss.Style
	title  lipgloss.Style
	key    lipgloss.Style
	text   lipgloss.Style
	close  lipgloss.Style
}

func New(selected *layer.SelectedLayerState, position func() navigation.Position, now func() time.Time) *Model {
	if now == nil {
		now = time.Now
	}
	m := &Model{
		selected: selected,
		position: position,
		now:      now,
		keymap:   config.Current.GetKeyMap(),
		styles: styles{
			border: common.DefaultPalette.GetBorder("panel border", lipgloss.RoundedBorder()),
			title:  common.DefaultPalette.Get("details title").Bold(true),
			key:    common.DefaultPalette.Get("details key"),
			text:   lipgloss.NewStyle(),
			close:  common.DefaultPalette.Get("row close"),
		},
	}
	selected.Changed.Add(func() { m.scroll = 0 })
	return m
}

func (m *Model) Visible() bool {
	return m.selected.Visible()
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Accepts reports whether the key is one of the detail view's own bindings.
func (m *Model) Accepts(msg tea.KeyMsg) bool {
	if !m.Visible() {
		return false
	}
	return key.Matches(msg, m.keymap.Details.Select, m.keymap.Details.Merge, m.keymap.Details.Timestamp, m.keymap.Cancel)
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case closeClickedMsg:
		if msg.model == m {
			m.selected.Hide()
		}
	case rootClickedMsg:
		if msg.model == m {
			m.deselect(msg.root)
		}
	case undoMsg:
		if msg.model == m {
			msg.undo()
		}
	case scrollMsg:
		if msg.model == m {
			m.scroll = max(m.scroll+msg.delta, 0)
		}
	case tea.KeyMsg:
		if !m.Visible() {
			return nil
		}
		switch {
		case key.Matches(msg, m.keymap.Details.Select):
			return m.selectAtPosition()
		case key.Matches(msg, m.keymap.Details.Merge):
			return m.mergeRecent()
		case key.Matches(msg, m.keymap.Details.Timestamp):
			return m.toggleTimestamp()
		case key.Matches(msg, m.keymap.Cancel):
			m.selected.Hide()
		}
	}
	return nil
}

func (m *Model) segmentState() (*layer.ManagedLayer, *segments.VisibleState) {
	l := m.selected.Layer()
	if l == nil || l.UserLayer == nil || l.UserLayer.Segments == nil {
		return l, nil
	}
	return l, l.UserLayer.Segments
}

func (m *Model) selectAtPosition() tea.Cmd {
	l, state := m.segmentState()
	if state == nil || m.position == nil {
		return nil
	}
	root := state.Select(readout.SegmentAt(m.position()))
	slog.Debug("segment selected", "layer", l.Name, "root", root.String())
	l.Changed.Dispatch()
	return nil
}

func (m *Model) mergeRecent() tea.Cmd {
	l, state := m.segmentState()
	if state == nil {
		return nil
	}
	roots := state.RootSegments.Slice()
	if len(roots) < 2 {
		return flash.Cmd(flash.AddMessage{Text: "Select two segments to merge."})
	}
	a, b := roots[len(roots)-2], roots[len(roots)-1]
	root, ok := state.Merge(a, b)
	if !ok {
		return flash.Cmd(flash.AddMessage{Text: fmt.Sprintf("Segments %s and %s cannot be merged.", a, b)})
	}
	slog.Debug("segments merged", "layer", l.Name, "a", a.String(), "b", b.String(), "root", root.String())
	l.Changed.Dispatch()
	return nil
}

func (m *Model) deselect(root segments.ID) {
	l, state := m.segmentState()
	if state == nil {
		return
	}
	state.Deselect(root)
	l.Changed.Dispatch()
}

// toggleTimestamp pins a time-aware layer to the current time, or returns
// it to its current state.
func (m *Model) toggleTimestamp() tea.Cmd {
	l := m.selected.Layer()
	if l == nil || l.UserLayer == nil || l.UserLayer.Timestamp == nil {
		return nil
	}
	u := l.UserLayer
	if u.Timestamp.Value() == "" {
		u.Timestamp.Set(strconv.FormatInt(m.now().Unix(), 10))
		return nil
	}
	undo := u.ResetTimestamp()
	return flash.Cmd(flash.AddMessage{
		Text:        resetTimestampMessage,
		ActionLabel: "Undo?",
		Action:      undoMsg{model: m, undo: undo},
	})
}

type line struct {
	label string
	value string
	root  *segments.ID
}

func (m *Model) lines(l *layer.ManagedLayer) []line {
	lines := []line{
		{label: "name", value: l.Name},
		{label: "type", value: l.Type()},
		{label: "visible", value: strconv.FormatBool(l.Visible())},
	}
	u := l.UserLayer
	if u == nil {
		return append(lines, line{label: "state", value: "not initialised"})
	}
	if u.Source != "" {
		lines = append(lines, line{label: "source", value: u.Source})
	}
	if u.Type == layer.TypeAnnotation {
		lines = append(lines, line{label: "color", value: u.AnnotationColor})
	}
	if u.Timestamp != nil {
		ts := u.Timestamp.Value()
		if ts == "" {
			ts = "current"
		}
		lines = append(lines, line{label: "timestamp", value: ts})
	}
	if u.Segments == nil {
		return lines
	}
	lines = append(lines, line{label: "roots", value: strconv.Itoa(u.Segments.RootSegments.Len())})
	segments.ForEachRootSegment(u.Segments, func(root segments.ID) {
		id := root
		lines = append(lines, line{value: "  " + root.String() + "  " + segments.ObjectKey(root), root: &id})
	})
	lines = append(lines, line{label: "visible 3d", value: strconv.Itoa(u.Segments.VisibleSegments3D.Len())})
	segments.ForEachVisibleSegment3D(u.Segments, func(id, root segments.ID) {
		lines = append(lines, line{value: fmt.Sprintf("  %s → %s  %s", id, root, segments.ObjectKey(id))})
	})
	return lines
}

func (m *Model) ViewRect(dl *render.DisplayContext, box layout.Box) {
	l := m.selected.Layer()
	if !m.Visible() || box.R.Dx() < 4 || box.R.Dy() < 3 {
		return
	}
	dl.AddDraw(box.R, m.styles.border.Width(box.R.Dx()-2).Height(box.R.Dy()-2).Render(""), render.ZDetails)
	dl.Text(box.R.Min.X+2, box.R.Min.Y, render.ZDetails).
		Clip(box.R.Dx()-6).
		Styled(" "+l.Name+" ", m.styles.title).
		Done()
	dl.Text(box.R.Max.X-3, box.R.Min.Y, render.ZDetails).
		Clickable("×", m.styles.close, closeClickedMsg{model: m}).
		Done()

	content := box.Inset(1)
	dl.AddInteraction(content.R, scrollMsg{model: m}, render.InteractionScroll, render.ZDetails)
	lines := m.lines(l)
	m.scroll = max(min(m.scroll, len(lines)-content.R.Dy()), 0)
	visible := lines[m.scroll:]
	if len(visible) > content.R.Dy() {
		visible = visible[:content.R.Dy()]
	}
	for i, rowBox := range content.Rows(len(visible)) {
		ln := visible[i]
		tb := dl.Text(rowBox.R.Min.X, rowBox.R.Min.Y, render.ZDetails).Clip(rowBox.R.Dx())
		if ln.label != "" {
			tb.Styled(fmt.Sprintf("%-10s ", ln.label), m.styles.key)
		}
		if ln.root != nil {
			tb.Clickable(ln.value, m.styles.text, rootClickedMsg{model: m, root: *ln.root})
		} else {
			tb.Styled(ln.value, m.styles.text)
		}
		tb.Done()
	}
}

func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keymap.Details.Select,
		m.keymap.Details.Merge,
		m.keymap.Details.Timestamp,
		m.keymap.Cancel,
	}
}

func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp()}
}
