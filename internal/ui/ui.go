package ui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/cellbuf"

	"github.com/idursun/layerview/internal/config"
	"github.com/idursun/layerview/internal/layer"
	"github.com/idursun/layerview/internal/navigation"
	"github.com/idursun/layerview/internal/ui/common"
	"github.com/idursun/layerview/internal/ui/details"
	"github.com/idursun/layerview/internal/ui/flash"
	"github.com/idursun/layerview/internal/ui/layerdialog"
	"github.com/idursun/layerview/internal/ui/layerpanel"
	"github.com/idursun/layerview/internal/ui/layout"
	"github.com/idursun/layerview/internal/ui/render"
	"github.com/idursun/layerview/internal/ui/status"
	"github.com/idursun/layerview/internal/ui/viewer"
)

// dragRoute is where the pointer of an active layer drag currently is.
type dragRoute struct {
	target   common.DropTarget
	group    any
	accepted bool
}

type Model struct {
	panels         []*layerpanel.Panel
	focus          int
	display        *common.Display
	selected       *layer.SelectedLayerState
	viewer         *viewer.Model
	details        *details.Model
	status         *status.Model
	flash          *flash.Model
	stacked        common.ImmediateModel
	keyMap         config.KeyMappings[key.Binding]
	displayContext *render.DisplayContext
	mainSplit      *split
	sideSplit      *split
	width          int
	height         int

	captured        common.Draggable
	awaitingCapture bool
	pendingRelease  *tea.MouseMsg
	route           dragRoute
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("layerview"), m.flash.Init(), m.viewer.Init()}
	for _, p := range m.panels {
		cmds = append(cmds, p.Init())
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	cmd := m.update(msg)
	return tea.Batch(cmd, m.scheduledFrames())
}

// scheduledFrames collects the frame requests the panels made while
// handling the last message.
func (m *Model) scheduledFrames() tea.Cmd {
	var cmds []tea.Cmd
	for _, p := range m.panels {
		if cmd := p.ScheduledFrame(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return nil
	case tea.FocusMsg:
		return tea.EnableMouseCellMotion
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case common.PointerCaptureMsg:
		return m.capture(msg.Target)
	case SplitDragMsg:
		return tea.Batch(msg.Split.DragMove(msg.X, msg.Y), m.capture(msg.Split))
	case layerpanel.FocusRequestMsg:
		m.focusPanel(msg.Panel)
		return nil
	case common.ShowLayerDialogMsg:
		dialog := layerdialog.New(msg.Group, msg.Layer)
		m.stacked = dialog
		return dialog.Init()
	case common.LayerDialogClosedMsg:
		m.stacked = nil
		if msg.Saved && msg.Layer != nil {
			slog.Info("layer saved", "group", msg.Group.Name, "layer", msg.Layer.Name)
		}
		return nil
	case common.ToggleHelpMsg:
		return m.status.Update(msg)
	case flash.Intent:
		return m.flash.Update(msg)
	}

	cmds := []tea.Cmd{m.flash.Update(msg), m.viewer.Update(msg), m.details.Update(msg)}
	for _, p := range m.panels {
		cmds = append(cmds, p.Update(msg))
	}
	if m.stacked != nil {
		cmds = append(cmds, m.stacked.Update(msg))
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.stacked != nil {
		return m.stacked.Update(msg)
	}
	switch {
	case key.Matches(msg, m.keyMap.Cancel) && m.status.Expanded():
		return m.status.Update(common.CloseViewMsg{})
	case key.Matches(msg, m.keyMap.Quit):
		return tea.Quit
	case key.Matches(msg, m.keyMap.Help):
		return common.ToggleHelp
	case key.Matches(msg, m.keyMap.NextPanel):
		if len(m.panels) > 0 {
			m.focusPanel(m.panels[(m.focus+1)%len(m.panels)])
		}
		return nil
	case m.details.Accepts(msg):
		return m.details.Update(msg)
	case m.viewer.Accepts(msg):
		return m.viewer.Update(msg)
	case key.Matches(msg, m.keyMap.Cancel) && m.flash.Any():
		return m.flash.Update(flash.DismissOldest{})
	}
	if p := m.focusedPanel(); p != nil {
		return p.Update(msg)
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.captured != nil {
		switch msg.Action {
		case tea.MouseActionMotion:
			return m.dragMove(msg)
		case tea.MouseActionRelease:
			return m.release(msg)
		}
		return nil
	}
	switch msg.Action {
	case tea.MouseActionRelease:
		// the capture requested by the press may still be on its way
		if m.awaitingCapture {
			release := msg
			m.pendingRelease = &release
		}
		return nil
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.awaitingCapture = true
			m.pendingRelease = nil
		}
	}
	if m.displayContext == nil {
		return nil
	}
	if interactionMsg, handled := m.displayContext.ProcessMouseEvent(msg); handled && interactionMsg != nil {
		return func() tea.Msg { return interactionMsg }
	}
	return nil
}

// capture routes pointer motion and the next release to target. A release
// that arrived before the capture is delivered right away.
func (m *Model) capture(target common.Draggable) tea.Cmd {
	m.captured = target
	m.awaitingCapture = false
	if release := m.pendingRelease; release != nil {
		m.pendingRelease = nil
		return m.release(*release)
	}
	return nil
}

func dragEvent(captured common.Draggable, msg tea.MouseMsg) common.DragEvent {
	return common.DragEvent{
		Drag: captured.ActiveDrag(),
		X:    msg.X,
		Y:    msg.Y,
		Mods: render.Modifiers{Ctrl: msg.Ctrl, Alt: msg.Alt, Shift: msg.Shift},
	}
}

func (m *Model) dragMove(msg tea.MouseMsg) tea.Cmd {
	cmd := m.captured.DragMove(msg.X, msg.Y)
	e := dragEvent(m.captured, msg)
	if e.Drag == nil || m.displayContext == nil {
		return cmd
	}

	var next dragRoute
	if zone, ok := m.displayContext.DropZoneAt(e.X, e.Y); ok {
		next.target, _ = zone.Target.(common.DropTarget)
		next.group = zone.Group
	}
	if m.route.group != nil && m.route.group != next.group {
		if leaver, ok := m.route.group.(common.DragLeaver); ok {
			leaver.DragLeave(e)
		}
	}
	switch {
	case next.target == nil:
	case next.target != m.route.target:
		next.accepted = next.target.DragEnter(e)
	default:
		next.accepted = next.target.DragOver(e)
	}
	m.route = next
	return cmd
}

func (m *Model) release(msg tea.MouseMsg) tea.Cmd {
	captured := m.captured
	m.captured = nil
	route := m.route
	m.route = dragRoute{}
	if captured == nil {
		return nil
	}
	if e := dragEvent(captured, msg); e.Drag != nil {
		switch {
		case route.target != nil && route.accepted:
			route.target.Drop(e)
		case route.group != nil:
			if leaver, ok := route.group.(common.DragLeaver); ok {
				leaver.DragLeave(e)
			}
		}
	}
	return captured.DragEnd(msg.X, msg.Y)
}

func (m *Model) focusedPanel() *layerpanel.Panel {
	if m.focus < len(m.panels) {
		return m.panels[m.focus]
	}
	return nil
}

func (m *Model) focusPanel(target *layerpanel.Panel) {
	for i, p := range m.panels {
		focused := p == target
		p.SetFocused(focused)
		if focused {
			m.focus = i
			m.viewer.SetActive(p.Group())
		}
	}
}

func (m *Model) updateStatus() {
	m.status.SetPosition(m.viewer.Describe())
	switch {
	case m.stacked != nil:
		m.status.SetMode("layer")
		if keyMap, ok := m.stacked.(help.KeyMap); ok {
			m.status.SetHelp(keyMap)
		}
	case m.details.Visible():
		m.status.SetMode("details")
		m.status.SetHelp(m.details)
	default:
		if p := m.focusedPanel(); p != nil {
			m.status.SetMode(p.Group().Name)
			m.status.SetHelp(p)
		}
	}
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	m.display.BeginFrame()
	m.displayContext = render.NewDisplayContext()
	m.updateStatus()

	box := layout.NewBox(cellbuf.Rect(0, 0, m.width, m.height))
	content, statusBox := box.CutBottom(1)
	m.mainSplit.ViewRect(m.displayContext, content)
	m.status.ViewRect(m.displayContext, statusBox)
	if m.stacked != nil {
		m.stacked.ViewRect(m.displayContext, content)
	}
	m.flash.ViewRect(m.displayContext, content)

	screen := cellbuf.NewBuffer(m.width, m.height)
	m.displayContext.Render(screen)
	return strings.ReplaceAll(cellbuf.Render(screen), "\r", "")
}

// Close releases the listeners of every view.
func (m *Model) Close() {
	for _, p := range m.panels {
		p.Dispose()
	}
	m.viewer.Dispose()
}

// panelColumn stacks the panels of all groups.
type panelColumn struct {
	ui *Model
}

func (c panelColumn) Init() tea.Cmd           { return nil }
func (c panelColumn) Update(tea.Msg) tea.Cmd { return nil }

func (c panelColumn) ViewRect(dl *render.DisplayContext, box layout.Box) {
	specs := make([]layout.Spec, len(c.ui.panels))
	for i := range specs {
		specs[i] = layout.Fill(1)
	}
	for i, b := range box.V(specs...) {
		c.ui.panels[i].ViewRect(dl, b)
	}
}

var _ tea.Model = (*wrapper)(nil)

type (
	frameTickMsg struct{}
	wrapper      struct {
		ui                 *Model
		scheduledNextFrame bool
		render             bool
		cachedFrame        string
	}
)

func (w *wrapper) Init() tea.Cmd {
	return w.ui.Init()
}

func (w *wrapper) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(frameTickMsg); ok {
		w.render = true
		w.scheduledNextFrame = false
		return w, nil
	}
	cmd := w.ui.Update(msg)
	if !w.scheduledNextFrame {
		w.scheduledNextFrame = true
		return w, tea.Batch(cmd, tea.Tick(common.FrameInterval, func(time.Time) tea.Msg {
			return frameTickMsg{}
		}))
	}
	return w, cmd
}

func (w *wrapper) View() string {
	if w.render {
		w.cachedFrame = w.ui.View()
		w.render = false
	}
	return w.cachedFrame
}

// NewUI builds one panel per target, all sharing the frame clock, the
// selected layer state and the detail view.
func NewUI(targets []viewer.Target, now func() time.Time) *Model {
	if now == nil {
		now = time.Now
	}
	m := &Model{
		display:  common.NewDisplay(),
		selected: &layer.SelectedLayerState{},
		status:   status.New(),
		flash:    flash.New(),
		keyMap:   config.Current.GetKeyMap(),
	}
	m.viewer = viewer.New(targets)
	m.details = details.New(m.selected, m.activePosition, now)
	for _, t := range targets {
		m.panels = append(m.panels, layerpanel.New(layerpanel.Options{
			Group:         t.Group,
			Display:       m.display,
			Position:      t.Position,
			SelectedLayer: m.selected,
			LayoutSpec:    func() any { return m.viewer.Describe() },
			Now:           now,
		}))
	}
	if len(m.panels) > 0 {
		m.focusPanel(m.panels[0])
	}

	ui := config.Current.UI
	m.sideSplit = newSplit(newSplitState(ui.DetailsPercent), true, m.viewer, m.details)
	m.mainSplit = newSplit(newSplitState(ui.SplitPercent), false, panelColumn{ui: m}, m.sideSplit)
	return m
}

// activePosition is where the detail view looks up segments.
func (m *Model) activePosition() navigation.Position {
	if t, ok := m.viewer.Active(); ok {
		return t.Position.Value.Value()
	}
	return navigation.Position{}
}

// New returns the program model for targets and the function that releases
// it once the program has exited.
func New(targets []viewer.Target) (tea.Model, func()) {
	w := &wrapper{ui: NewUI(targets, nil)}
	return w, w.ui.Close
}
