package navigation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/idursun/layerview/internal/signal"
)

// Position is a point in voxel coordinates.
type Position [3]float32

func (p Position) Add(dx, dy, dz float32) Position {
	return Position{p[0] + dx, p[1] + dy, p[2] + dz}
}

func (p Position) String() string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.FormatFloat(float64(v), 'f', -1, 32)
	}
	return strings.Join(parts, ", ")
}

type LinkType int

const (
	Linked LinkType = iota
	Relative
	Unlinked
)

func (l LinkType) String() string {
	switch l {
	case Linked:
		return "linked"
	case Relative:
		return "relative"
	case Unlinked:
		return "unlinked"
	}
	return fmt.Sprintf("LinkType(%d)", int(l))
}

// Next cycles linked -> relative -> unlinked -> linked.
func (l LinkType) Next() LinkType {
	return (l + 1) % 3
}

// LinkedPosition is the position of a layer group viewer together with how it
// follows the viewer-wide position.
type LinkedPosition struct {
	Value *signal.Watchable[Position]
	Link  *signal.Watchable[LinkType]

	peer        *Watchable
	offset      Position
	disposePeer func()
}

// Watchable is the position type shared between viewers.
type Watchable = signal.Watchable[Position]

// NewLinkedPosition follows peer according to link. A nil peer yields a
// standalone, unlinked position.
func NewLinkedPosition(peer *Watchable, link LinkType) *LinkedPosition {
	lp := &LinkedPosition{
		Value: signal.NewWatchable(Position{}),
		Link:  signal.NewWatchable(link),
		peer:  peer,
	}
	if peer == nil {
		lp.Link.Set(Unlinked)
		return lp
	}
	lp.Value.Set(peer.Value())
	lp.disposePeer = peer.Changed.Add(lp.follow)
	lp.Link.Changed.Add(func() {
		lp.offset = Position{}
		lp.follow()
	})
	return lp
}

func (lp *LinkedPosition) follow() {
	switch lp.Link.Value() {
	case Linked:
		lp.Value.Set(lp.peer.Value())
	case Relative:
		p := lp.peer.Value()
		lp.Value.Set(p.Add(lp.offset[0], lp.offset[1], lp.offset[2]))
	}
}

// Move moves this viewer's position. A linked position moves the peer too; a
// relative one changes its offset from the peer.
func (lp *LinkedPosition) Move(dx, dy, dz float32) {
	if lp.peer == nil || lp.Link.Value() == Unlinked {
		lp.Value.Set(lp.Value.Value().Add(dx, dy, dz))
		return
	}
	if lp.Link.Value() == Relative {
		lp.offset = lp.offset.Add(dx, dy, dz)
		lp.follow()
		return
	}
	lp.peer.Set(lp.peer.Value().Add(dx, dy, dz))
}

func (lp *LinkedPosition) Dispose() {
	if lp.disposePeer != nil {
		lp.disposePeer()
		lp.disposePeer = nil
	}
}
