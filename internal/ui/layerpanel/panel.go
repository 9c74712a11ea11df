package layerpanel

import (
	"container/list"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idursun/layerview/internal/config"
	"github.com/idursun/layerview/internal/dnd"
	"github.com/idursun/layerview/internal/layer"
	"github.com/idursun/layerview/internal/navigation"
	"github.com/idursun/layerview/internal/signal"
	"github.com/idursun/layerview/internal/ui/common"
	"github.com/idursun/layerview/internal/ui/layout"
	"github.com/idursun/layerview/internal/ui/render"
)

// Options wires a panel to the state it presents.
type Options struct {
	Group   *layer.ListSpecification
	Display *common.Display
	// Position is the navigation state of the group. Nil hides the position
	// line.
	Position      *navigation.LinkedPosition
	SelectedLayer *layer.SelectedLayerState
	// LayoutSpec returns the viewer layout carried along with a drag.
	LayoutSpec func() any
	Now        func() time.Time
}

type panelStyles struct {
	border        lipgloss.Style
	focusedBorder lipgloss.Style
	title         lipgloss.Style
	add           lipgloss.Style
	position      lipgloss.Style
	dropHint      lipgloss.Style
	rows          rowStyles
}

// Panel lists the layers of one group, one row per layer. Changes to the
// group or its sampled values only mark the panel dirty; rows are brought up to
// date at most once per frame.
type Panel struct {
	*common.ViewNode
	id            string
	group         *layer.ListSpecification
	display       *common.Display
	position      *navigation.LinkedPosition
	selectedLayer *layer.SelectedLayerState
	layoutSpec    func() any
	now           func() time.Time
	keyMap        config.KeyMappings[key.Binding]
	doubleClick   time.Duration
	styles        panelStyles

	rows           map[*layer.ManagedLayer]*row
	children       *list.List
	insertionPoint *list.Element

	layerUpdateNeeded bool
	valueUpdateNeeded bool
	frameRequested    bool
	// reorders counts rows moved by updateLayers.
	reorders int

	dropLayers *dnd.DropLayers
	addDrop    *dropHandler
	zoneDrop   *dropHandler

	tracker   common.DragTracker
	pressed   *row
	pressMods render.Modifiers
	drag      *dnd.Drag

	positionVisible bool
	focused         bool
	cursor          int
	scroll          int

	disposers signal.Disposers
	disposed  bool
}

var (
	_ common.ImmediateModel = (*Panel)(nil)
	_ common.Draggable      = (*Panel)(nil)
	_ common.DragLeaver     = (*Panel)(nil)
	_ common.Focusable      = (*Panel)(nil)
)

func New(opts Options) *Panel {
	p := &Panel{
		ViewNode:      common.NewViewNode(0, 0),
		group:         opts.Group,
		display:       opts.Display,
		position:      opts.Position,
		selectedLayer: opts.SelectedLayer,
		layoutSpec:    opts.LayoutSpec,
		now:           opts.Now,
		keyMap:        config.Current.GetKeyMap(),
		doubleClick:   config.Current.UI.DoubleClickInterval(),
		rows:          make(map[*layer.ManagedLayer]*row),
		children:      list.New(),
		styles: panelStyles{
			border:        common.DefaultPalette.GetBorder("panel border", lipgloss.RoundedBorder()),
			focusedBorder: common.DefaultPalette.GetBorder("panel focused border", lipgloss.RoundedBorder()),
			title:         common.DefaultPalette.Get("panel title").Bold(true),
			add:           common.DefaultPalette.Get("add button"),
			position:      common.DefaultPalette.Get("status"),
			dropHint:      lipgloss.NewStyle().Background(common.DefaultPalette.Get("drop hint").GetForeground()),
			rows:          newRowStyles(),
		},
	}
	if p.display == nil {
		p.display = common.NewDisplay()
	}
	if p.selectedLayer == nil {
		p.selectedLayer = &layer.SelectedLayerState{}
	}
	if p.now == nil {
		p.now = time.Now
	}
	p.id = fmt.Sprintf("layerpanel-%p", p)
	p.insertionPoint = p.children.PushBack(nil)
	p.addDrop = &dropHandler{panel: p}
	p.zoneDrop = &dropHandler{panel: p}

	p.disposers.Add(p.group.SelectedValues.Changed.Add(p.handleLayerValuesChanged))
	p.disposers.Add(p.group.Layers.Changed.Add(p.handleLayersChanged))
	p.disposers.Add(p.selectedLayer.Changed.Add(p.handleLayersChanged))
	p.disposers.Add(p.display.UpdateStarted.Add(p.updateLayers))
	if p.position != nil {
		p.disposers.Add(p.position.Link.Changed.Add(p.updatePositionVisibility))
		p.updatePositionVisibility()
	}

	p.layerUpdateNeeded = true
	p.update()
	return p
}

func (p *Panel) Group() *layer.ListSpecification {
	return p.group
}

func (p *Panel) IsFocused() bool {
	return p.focused
}

func (p *Panel) SetFocused(focused bool) {
	p.focused = focused
}

func (p *Panel) updatePositionVisibility() {
	p.positionVisible = p.position.Link.Value() != navigation.Linked
}

func (p *Panel) handleLayersChanged() {
	p.layerUpdateNeeded = true
	p.handleLayerValuesChanged()
}

func (p *Panel) handleLayerValuesChanged() {
	if !p.valueUpdateNeeded {
		p.valueUpdateNeeded = true
		p.scheduleUpdate()
	}
}

func (p *Panel) scheduleUpdate() {
	if p.disposed {
		return
	}
	p.frameRequested = true
}

// ScheduledFrame returns the command that delivers the pending update on the
// next frame, once per request. A frame still in flight absorbs the request.
func (p *Panel) ScheduledFrame() tea.Cmd {
	if !p.frameRequested || p.disposed {
		return nil
	}
	p.frameRequested = false
	if common.Pending(p.id) {
		return nil
	}
	return common.AnimationFrame(p.id, frameMsg{panel: p})
}

func (p *Panel) update() {
	if p.disposed {
		return
	}
	p.valueUpdateNeeded = false
	p.updateLayers()
	values := p.group.SelectedValues
	for e := p.insertionPoint.Next(); e != nil; e = e.Next() {
		e.Value.(*row).updateValue(values)
	}
}

// updateLayers reconciles the rows with the group: one row per layer, in
// group order, with stale rows disposed.
func (p *Panel) updateLayers() {
	if !p.layerUpdateNeeded || p.disposed {
		return
	}
	p.layerUpdateNeeded = false
	present := make(map[*layer.ManagedLayer]bool, p.group.Layers.Len())
	next := p.insertionPoint.Next()
	for i, l := range p.group.Layers.Layers() {
		present[l] = true
		r, ok := p.rows[l]
		if !ok {
			r = newRow(p, l)
			p.rows[l] = r
		} else if r.user != l.UserLayer {
			r.bind()
		}
		r.number = i + 1
		r.update()
		switch {
		case r.elem == nil && next == nil:
			r.elem = p.children.PushBack(r)
		case r.elem == nil:
			r.elem = p.children.InsertBefore(r, next)
		case r.elem != next && next == nil:
			p.children.MoveToBack(r.elem)
			p.reorders++
		case r.elem != next:
			p.children.MoveBefore(r.elem, next)
			p.reorders++
		}
		next = r.elem.Next()
	}
	for l, r := range p.rows {
		if !present[l] {
			delete(p.rows, l)
			r.dispose()
		}
	}
	if n := p.group.Layers.Len(); p.cursor >= n {
		p.cursor = max(n-1, 0)
	}
}

// orderedRows returns the rows in display order.
func (p *Panel) orderedRows() []*row {
	rows := make([]*row, 0, p.children.Len()-1)
	for e := p.insertionPoint.Next(); e != nil; e = e.Next() {
		rows = append(rows, e.Value.(*row))
	}
	return rows
}

func (p *Panel) Init() tea.Cmd {
	return nil
}

func (p *Panel) Update(msg tea.Msg) tea.Cmd {
	if p.disposed {
		return nil
	}
	switch msg := msg.(type) {
	case frameMsg:
		if msg.panel == p {
			p.update()
		}
	case rowPressMsg:
		if msg.row.panel == p {
			return p.press(msg)
		}
	case resetTimestampMsg:
		if msg.row.panel == p {
			return msg.row.resetTimestamp()
		}
	case closeRowMsg:
		if msg.row.panel == p {
			msg.row.close()
		}
	case undoMsg:
		if msg.panel == p {
			msg.undo()
		}
	case addLayerMsg:
		if msg.panel == p {
			if msg.mods.Ctrl || msg.mods.Alt || msg.context {
				p.addAnnotationLayer()
				return nil
			}
			return common.ShowLayerDialog(p.group, nil)
		}
	case cycleLinkMsg:
		if msg.panel == p && p.position != nil {
			p.position.Link.Set(p.position.Link.Value().Next())
		}
	case scrollMsg:
		if msg.panel == p {
			p.scroll = max(p.scroll+msg.delta, 0)
		}
	case tea.KeyMsg:
		if p.focused {
			return p.handleKey(msg)
		}
	}
	return nil
}

func (p *Panel) press(msg rowPressMsg) tea.Cmd {
	r := msg.row
	if r.disposed {
		return nil
	}
	if i := p.group.Layers.IndexOf(r.layer); i >= 0 {
		p.cursor = i
	}
	focus := func() tea.Msg { return FocusRequestMsg{Panel: p} }
	if msg.context {
		p.selectedLayer.Show(r.layer)
		return focus
	}
	p.pressed = r
	p.pressMods = msg.mods
	p.tracker.Press(msg.x, msg.y)
	return tea.Batch(focus, common.CapturePointer(p))
}

func (p *Panel) DragMove(x, y int) tea.Cmd {
	if p.disposed || p.pressed == nil || !p.tracker.Move(x, y) {
		return nil
	}
	r := p.pressed
	if r.disposed {
		return nil
	}
	d, err := dnd.Start(p.group, []*layer.ManagedLayer{r.layer}, p.currentLayoutSpec())
	if err != nil {
		slog.Warn("starting layer drag", "layer", r.layer.Name, "err", err)
		return nil
	}
	slog.Debug("layer drag started", "group", p.group.Name, "layer", r.layer.Name)
	p.drag = d
	return nil
}

func (p *Panel) DragEnd(x, y int) tea.Cmd {
	r := p.pressed
	p.pressed = nil
	dragging := p.tracker.Release()
	if d := p.drag; d != nil {
		p.drag = nil
		d.End()
		return nil
	}
	if dragging || r == nil || p.disposed {
		return nil
	}
	return r.click(p.pressMods)
}

func (p *Panel) ActiveDrag() *dnd.Drag {
	return p.drag
}

// DragLeave tears down a drop session the drag left without dropping.
func (p *Panel) DragLeave(common.DragEvent) {
	if p.dropLayers == nil {
		return
	}
	p.dropLayers.Destroy(nil)
	p.dropLayers = nil
}

func (p *Panel) currentLayoutSpec() any {
	if p.layoutSpec == nil {
		return nil
	}
	return p.layoutSpec()
}

func (p *Panel) addAnnotationLayer() {
	l, err := p.group.NewLayer(layer.Spec{Type: layer.TypeAnnotation})
	if err != nil {
		slog.Error("adding annotation layer", "group", p.group.Name, "err", err)
		return
	}
	p.group.Add(l, -1)
}

func (p *Panel) cursorLayer() *layer.ManagedLayer {
	if p.cursor < 0 || p.cursor >= p.group.Layers.Len() {
		return nil
	}
	return p.group.Layers.At(p.cursor)
}

func (p *Panel) handleKey(msg tea.KeyMsg) tea.Cmd {
	km := p.keyMap
	switch {
	case key.Matches(msg, km.Up):
		p.cursor = max(p.cursor-1, 0)
		return nil
	case key.Matches(msg, km.Down):
		p.cursor = max(min(p.cursor+1, p.group.Layers.Len()-1), 0)
		return nil
	case key.Matches(msg, km.Panel.Add):
		return common.ShowLayerDialog(p.group, nil)
	case key.Matches(msg, km.Panel.AddAnnotation):
		p.addAnnotationLayer()
		return nil
	}
	l := p.cursorLayer()
	if l == nil {
		return nil
	}
	switch {
	case key.Matches(msg, km.Panel.ToggleVisible):
		l.SetVisible(!l.Visible())
	case key.Matches(msg, km.Panel.Details):
		p.selectedLayer.Show(l)
	case key.Matches(msg, km.Panel.Edit):
		return common.ShowLayerDialog(p.group, l)
	case key.Matches(msg, km.Panel.Delete):
		p.group.Remove(l)
		p.selectedLayer.Forget(l)
	case key.Matches(msg, km.Panel.MoveUp):
		p.moveLayer(l, -1)
	case key.Matches(msg, km.Panel.MoveDown):
		p.moveLayer(l, 1)
	}
	return nil
}

// moveLayer moves l past its neighbour by dropping a one-layer drag on it.
func (p *Panel) moveLayer(l *layer.ManagedLayer, delta int) {
	if p.dropLayers != nil {
		return
	}
	layers := p.group.Layers
	i := layers.IndexOf(l)
	j := i + delta
	if i < 0 || j < 0 || j >= layers.Len() {
		return
	}
	d, err := dnd.Start(p.group, []*layer.ManagedLayer{l}, p.currentLayoutSpec())
	if err != nil {
		slog.Warn("moving layer", "layer", l.Name, "err", err)
		return
	}
	d.DropEffect = dnd.EffectMove
	target := &dropHandler{panel: p, layer: layers.At(j)}
	if target.Drop(common.DragEvent{Drag: d}) {
		p.cursor = j
	}
	d.End()
}

func (p *Panel) ShortHelp() []key.Binding {
	km := p.keyMap
	return []key.Binding{km.Up, km.Down, km.Panel.ToggleVisible, km.Panel.Details, km.Panel.MoveUp, km.Panel.MoveDown, km.Panel.Add, km.Panel.Edit, km.Panel.Delete}
}

func (p *Panel) FullHelp() [][]key.Binding {
	return [][]key.Binding{p.ShortHelp(), {p.keyMap.Panel.AddAnnotation}}
}

// Dispose releases every row and subscription and cancels a pending frame.
func (p *Panel) Dispose() {
	if p.disposed {
		return
	}
	p.disposed = true
	p.frameRequested = false
	common.CancelDebounce(p.id)
	for _, r := range p.rows {
		r.dispose()
	}
	p.rows = nil
	p.addDrop.disposed = true
	p.zoneDrop.disposed = true
	p.disposers.Dispose()
}

func (p *Panel) ViewRect(dl *render.DisplayContext, box layout.Box) {
	if p.disposed || box.R.Dx() < 3 || box.R.Dy() < 3 {
		return
	}
	p.SetFrame(box.R)

	border := p.styles.border
	if p.focused {
		border = p.styles.focusedBorder
	}
	dl.AddDraw(box.R, border.Width(box.R.Dx()-2).Height(box.R.Dy()-2).Render(""), render.ZBase)
	dl.Text(box.R.Min.X+2, box.R.Min.Y, render.ZBase).
		Clip(box.R.Dx()-4).
		Styled(" "+p.group.Name+" ", p.styles.title).
		Done()
	dl.AddDropZone(box.R, nil, p, render.ZBase)

	content := box.Inset(1)
	if p.positionVisible && p.position != nil {
		var positionBox layout.Box
		content, positionBox = content.CutBottom(1)
		p.drawPosition(dl, positionBox)
	}
	dl.AddInteraction(content.R, scrollMsg{panel: p}, render.InteractionScroll, render.ZBase)

	rows := p.orderedRows()
	capacity := max(content.R.Dy()-1, 0)
	p.clampScroll(len(rows), capacity)
	shown := min(len(rows)-p.scroll, capacity)
	rowsBox, rest := content.CutTop(shown)
	numberWidth := len(strconv.Itoa(len(rows)))
	for i, rowBox := range rowsBox.Rows(shown) {
		index := p.scroll + i
		r := rows[index]
		r.draw(dl, rowBox.R, numberWidth, p.styles.rows, p.focused && index == p.cursor)
		if p.dropLayers != nil && p.dropLayers.Has(r.layer) {
			dl.AddEffect(render.HighlightEffect{Rect: rowBox.R, Style: p.styles.dropHint, Z: render.ZDropHint})
		}
	}

	addBox, zoneBox := rest.CutTop(1)
	if !addBox.Empty() {
		dl.Text(addBox.R.Min.X, addBox.R.Min.Y, render.ZRowControls).
			Clip(addBox.R.Dx()).
			Interactive("+", p.styles.add, addLayerMsg{panel: p}, render.InteractionClick|render.InteractionContext).
			Done()
		dl.AddDropZone(addBox.R, p.addDrop, p, render.ZBase)
	}
	if !zoneBox.Empty() {
		dl.AddDropZone(zoneBox.R, p.zoneDrop, p, render.ZBase)
	}
}

func (p *Panel) clampScroll(n, capacity int) {
	if p.focused {
		if p.cursor < p.scroll {
			p.scroll = p.cursor
		} else if capacity > 0 && p.cursor >= p.scroll+capacity {
			p.scroll = p.cursor - capacity + 1
		}
	}
	p.scroll = max(min(p.scroll, n-capacity), 0)
}

func (p *Panel) drawPosition(dl *render.DisplayContext, box layout.Box) {
	pos := p.position.Value.Value()
	link := p.position.Link.Value()
	dl.Text(box.R.Min.X, box.R.Min.Y, render.ZRowControls).
		Clip(box.R.Dx()).
		Styled(pos.String()+" ", p.styles.position).
		Interactive("["+link.String()+"]", p.styles.position.Underline(true), cycleLinkMsg{panel: p}, render.InteractionClick).
		Done()
}
