package render

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/cellbuf"
)

// Draw is rendered content placed at a rectangle. Lower Z draws first.
type Draw struct {
	Rect    cellbuf.Rectangle
	Content string
	Z       int
}

// DropZone is a region that takes part in drag and drop while a drag is in
// progress. Group identifies the widget owning the zone; moving between
// zones of the same group is not a leave of that group.
type DropZone struct {
	Rect   cellbuf.Rectangle
	Target any
	Group  any
	Z      int
}

// DisplayContext collects the draws, effects, interactions and drop zones of
// one frame. Everything is replayed in Z then insertion order.
type DisplayContext struct {
	draws         []drawOp
	effects       []effectOp
	interactions  []interactionOp
	dropZones     []dropZoneOp
	windows       []windowOp
	orderCounter  int
	windowCounter int
	parent        *DisplayContext
	windowID      int
}

func NewDisplayContext() *DisplayContext {
	return &DisplayContext{
		draws:        make([]drawOp, 0, 32),
		effects:      make([]effectOp, 0, 8),
		interactions: make([]interactionOp, 0, 32),
	}
}

// Window opens a modal scope. While a window exists, only interactions added
// through it receive input inside its rect, and nothing else receives input.
func (dl *DisplayContext) Window(rect cellbuf.Rectangle, z int) *DisplayContext {
	root := dl.root()
	root.windowCounter++
	id := root.windowCounter
	root.windows = append(root.windows, windowOp{
		ID:    id,
		Rect:  rect,
		Z:     z,
		Order: root.nextOrder(),
	})
	return &DisplayContext{parent: root, windowID: id}
}

func (dl *DisplayContext) root() *DisplayContext {
	if dl.parent == nil {
		return dl
	}
	return dl.parent
}

func (dl *DisplayContext) nextOrder() int {
	root := dl.root()
	root.orderCounter++
	return root.orderCounter
}

func (dl *DisplayContext) currentWindowID() int {
	if dl.parent == nil {
		return 0
	}
	return dl.windowID
}

func (dl *DisplayContext) AddDraw(rect cellbuf.Rectangle, content string, z int) {
	root := dl.root()
	root.draws = append(root.draws, drawOp{
		Draw:  Draw{Rect: rect, Content: content, Z: z},
		order: dl.nextOrder(),
	})
}

func (dl *DisplayContext) AddEffect(effect Effect) {
	root := dl.root()
	root.effects = append(root.effects, effectOp{
		effect: effect,
		order:  dl.nextOrder(),
		z:      effect.GetZ(),
	})
}

func (dl *DisplayContext) AddReverse(rect cellbuf.Rectangle, z int) {
	dl.AddEffect(AttrEffect{Rect: rect, Attr: AttrReverse, Z: z})
}

func (dl *DisplayContext) AddDim(rect cellbuf.Rectangle, z int) {
	dl.AddEffect(AttrEffect{Rect: rect, Attr: AttrFaint, Z: z})
}

func (dl *DisplayContext) AddInteraction(rect cellbuf.Rectangle, msg tea.Msg, typ InteractionType, z int) {
	root := dl.root()
	root.interactions = append(root.interactions, interactionOp{
		InteractionOp: InteractionOp{Rect: rect, Msg: msg, Type: typ, Z: z},
		windowID:      dl.currentWindowID(),
		order:         dl.nextOrder(),
	})
}

// AddDropZone registers rect as a drop target of group for this frame.
func (dl *DisplayContext) AddDropZone(rect cellbuf.Rectangle, target any, group any, z int) {
	root := dl.root()
	root.dropZones = append(root.dropZones, dropZoneOp{
		DropZone: DropZone{Rect: rect, Target: target, Group: group, Z: z},
		order:    dl.nextOrder(),
	})
}

// DropZoneAt returns the topmost drop zone containing (x, y).
func (dl *DisplayContext) DropZoneAt(x, y int) (DropZone, bool) {
	root := dl.root()
	var (
		best  dropZoneOp
		found bool
	)
	for _, zone := range root.dropZones {
		if !contains(zone.Rect, x, y) {
			continue
		}
		if !found || zone.Z > best.Z || (zone.Z == best.Z && zone.order > best.order) {
			best = zone
			found = true
		}
	}
	return best.DropZone, found
}

func (dl *DisplayContext) Clear() {
	root := dl.root()
	root.draws = root.draws[:0]
	root.effects = root.effects[:0]
	root.interactions = root.interactions[:0]
	root.dropZones = root.dropZones[:0]
	root.windows = root.windows[:0]
	root.orderCounter = 0
	root.windowCounter = 0
}

// Render replays draws and effects into buf, sorted by Z then insertion
// order. Draws and effects share one ordering, so an effect only touches what
// was drawn before it.
func (dl *DisplayContext) Render(buf *cellbuf.Buffer) {
	root := dl.root()
	ops := make([]renderOp, 0, len(root.draws)+len(root.effects))
	for _, op := range root.draws {
		draw := op.Draw
		ops = append(ops, renderOp{z: op.Z, order: op.order, draw: &draw})
	}
	for _, op := range root.effects {
		ops = append(ops, renderOp{z: op.z, order: op.order, effect: op.effect})
	}
	sort.SliceStable(ops, func(i, j int) bool {
		if ops[i].z != ops[j].z {
			return ops[i].z < ops[j].z
		}
		return ops[i].order < ops[j].order
	})
	for _, op := range ops {
		if op.draw != nil {
			cellbuf.SetContentRect(buf, op.draw.Content, op.draw.Rect)
			continue
		}
		op.effect.Apply(buf)
	}
}

func (dl *DisplayContext) RenderToString(width, height int) string {
	buf := cellbuf.NewBuffer(width, height)
	dl.Render(buf)
	return cellbuf.Render(buf)
}

func (dl *DisplayContext) DrawList() []Draw {
	root := dl.root()
	result := make([]Draw, len(root.draws))
	for i, op := range root.draws {
		result[i] = op.Draw
	}
	return result
}

// InteractionsList returns interactions highest Z first.
func (dl *DisplayContext) InteractionsList() []InteractionOp {
	sorted := sortedInteractions(dl.root().interactions)
	result := make([]InteractionOp, len(sorted))
	for i, op := range sorted {
		result[i] = op.InteractionOp
	}
	return result
}

// ProcessMouseEvent routes a mouse press through the window stack. The
// boolean reports whether the event landed on something that owns it.
func (dl *DisplayContext) ProcessMouseEvent(msg tea.MouseMsg) (tea.Msg, bool) {
	root := dl.root()
	return ProcessMouseEventWithWindows(root.interactions, root.windows, msg)
}

// HasWindows reports whether a modal window is open in this frame.
func (dl *DisplayContext) HasWindows() bool {
	return len(dl.root().windows) > 0
}

type drawOp struct {
	Draw
	order int
}

type effectOp struct {
	effect Effect
	order  int
	z      int
}

type interactionOp struct {
	InteractionOp
	windowID int
	order    int
}

type dropZoneOp struct {
	DropZone
	order int
}

type renderOp struct {
	z      int
	order  int
	draw   *Draw
	effect Effect
}

type windowOp struct {
	ID    int
	Rect  cellbuf.Rectangle
	Z     int
	Order int
}

func contains(r cellbuf.Rectangle, x, y int) bool {
	return x >= r.Min.X && x < r.Max.X && y >= r.Min.Y && y < r.Max.Y
}
