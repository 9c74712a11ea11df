package layerpanel

import (
	"container/list"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"

	"github.com/idursun/layerview/internal/layer"
	"github.com/idursun/layerview/internal/readout"
	"github.com/idursun/layerview/internal/signal"
	"github.com/idursun/layerview/internal/ui/common"
	"github.com/idursun/layerview/internal/ui/flash"
	"github.com/idursun/layerview/internal/ui/render"
	"github.com/rivo/uniseg"
)

const (
	colorGlyph = "■"
	staleGlyph = "🕘"
	closeGlyph = "×"
)

const resetTimestampMessage = "Resetting Timestamp deselects selected segments."

// row is the presentation state of one layer. Its fields mirror what was last
// written for the layer, so a frame only draws and never recomputes.
type row struct {
	panel *Panel
	layer *layer.ManagedLayer
	elem  *list.Element
	drop  *dropHandler

	number   int
	label    string
	visible  bool
	selected bool
	color    string

	user          *layer.UserLayer
	timeDisplaced bool
	unbindTime    func()

	valueText   string
	valueWidth  int
	valueWrites int

	lastClick time.Time
	disposed  bool
	disposers signal.Disposers
}

func newRow(p *Panel, l *layer.ManagedLayer) *row {
	r := &row{panel: p, layer: l}
	r.drop = &dropHandler{panel: p, layer: l}
	r.disposers.Add(func() { r.drop.disposed = true })
	r.bind()
	return r
}

// bind follows the live layer behind the row. A layer re-initialised from a
// new spec keeps its row but gets a new timestamp to watch.
func (r *row) bind() {
	if r.unbindTime != nil {
		r.unbindTime()
		r.unbindTime = nil
	}
	r.user = r.layer.UserLayer
	r.color = ""
	r.timeDisplaced = false
	if r.user == nil {
		return
	}
	if r.user.Type == layer.TypeAnnotation {
		r.color = r.user.AnnotationColor
	}
	if ts := r.user.Timestamp; ts != nil {
		r.timeDisplaced = ts.Value() != ""
		r.unbindTime = ts.Changed.Add(func() {
			r.timeDisplaced = ts.Value() != ""
		})
	}
}

// update re-reads the state that the layer signals report.
func (r *row) update() {
	if r.disposed {
		return
	}
	r.label = r.layer.Name
	r.visible = r.layer.Visible()
	r.selected = r.panel.selectedLayer.Layer() == r.layer
}

// updateValue writes the sampled value text. It reports whether anything was
// written.
func (r *row) updateValue(values *layer.SelectedValues) bool {
	text := ""
	if r.user != nil {
		if value, ok := values.Get(r.user); ok {
			text = readout.FormatValue(value)
		}
	}
	if text == r.valueText {
		return false
	}
	r.valueText = text
	if width := uniseg.StringWidth(text); width > r.valueWidth {
		r.valueWidth = width
	}
	r.valueWrites++
	return true
}

func (r *row) dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	if r.unbindTime != nil {
		r.unbindTime()
		r.unbindTime = nil
	}
	r.disposers.Dispose()
	if r.elem != nil {
		r.panel.children.Remove(r.elem)
		r.elem = nil
	}
}

type rowStyles struct {
	number   lipgloss.Style
	name     lipgloss.Style
	selected lipgloss.Style
	value    lipgloss.Style
	stale    lipgloss.Style
	close    lipgloss.Style
}

func newRowStyles() rowStyles {
	return rowStyles{
		number:   common.DefaultPalette.Get("row number"),
		name:     lipgloss.NewStyle(),
		selected: common.DefaultPalette.Get("row selected").Bold(true),
		value:    common.DefaultPalette.Get("row value"),
		stale:    common.DefaultPalette.Get("row stale"),
		close:    common.DefaultPalette.Get("row close"),
	}
}

// draw lays the row out on one line: color, number, name, value, stale
// indicator and close control.
func (r *row) draw(dl *render.DisplayContext, rect cellbuf.Rectangle, numberWidth int, styles rowStyles, focused bool) {
	width := rect.Dx()
	x, y := rect.Min.X, rect.Min.Y

	right := 2
	if r.timeDisplaced {
		right += uniseg.StringWidth(staleGlyph) + 1
	}
	valueWidth := min(r.valueWidth, max(width/3, 0))
	if valueWidth > 0 {
		right += valueWidth + 1
	}
	nameWidth := width - 2 - numberWidth - 1 - right
	if nameWidth < 1 {
		nameWidth = 1
	}

	colorStyle := lipgloss.NewStyle()
	if r.color != "" {
		colorStyle = colorStyle.Foreground(lipgloss.Color(r.color))
	}
	nameStyle := styles.name
	if r.selected {
		nameStyle = styles.selected
	}

	tb := dl.Text(x, y, render.ZRowControls).Clip(width)
	if r.color != "" {
		tb.Interactive(colorGlyph, colorStyle, swallowMsg{}, render.InteractionClick)
	} else {
		tb.Space(1)
	}
	tb.Space(1).
		Styled(padLeft(strconv.Itoa(r.number), numberWidth), styles.number).
		Space(1).
		Styled(padRight(r.label, nameWidth), nameStyle)
	if valueWidth > 0 {
		tb.Space(1).Styled(padRight(r.valueText, valueWidth), styles.value)
	}
	if r.timeDisplaced {
		tb.Space(1).Interactive(staleGlyph, styles.stale, resetTimestampMsg{row: r}, render.InteractionClick)
	}
	tb.Space(1).Interactive(closeGlyph, styles.close, closeRowMsg{row: r}, render.InteractionClick)
	tb.Done()

	if !r.visible {
		dl.AddDim(rect, render.ZRowControls)
	}
	if focused {
		dl.AddReverse(rect, render.ZRowControls)
	}
	dl.AddInteraction(rect, rowPressMsg{row: r}, render.InteractionDrag|render.InteractionContext, render.ZBase)
	dl.AddDropZone(rect, r.drop, r.panel, render.ZBase)
}

// click handles a press and release on the same row. Every click toggles
// visibility; the second of a double click also opens the layer dialog.
func (r *row) click(mods render.Modifiers) tea.Cmd {
	if r.disposed {
		return nil
	}
	p := r.panel
	if mods.Ctrl {
		p.selectedLayer.Show(r.layer)
		return nil
	}
	r.layer.SetVisible(!r.layer.Visible())
	now := p.now()
	double := !r.lastClick.IsZero() && now.Sub(r.lastClick) <= p.doubleClick
	if double {
		r.lastClick = time.Time{}
		return common.ShowLayerDialog(p.group, r.layer)
	}
	r.lastClick = now
	return nil
}

func (r *row) resetTimestamp() tea.Cmd {
	if r.disposed || r.user == nil || r.user.Timestamp == nil {
		return nil
	}
	undo := r.user.ResetTimestamp()
	return flash.Cmd(flash.AddMessage{
		Text:        resetTimestampMessage,
		ActionLabel: "Undo?",
		Action:      undoMsg{panel: r.panel, undo: undo},
	})
}

func (r *row) close() {
	if r.disposed {
		return
	}
	p := r.panel
	p.group.Remove(r.layer)
	p.selectedLayer.Forget(r.layer)
}

func padLeft(s string, width int) string {
	if w := uniseg.StringWidth(s); w < width {
		return spaces(width-w) + s
	}
	return s
}

func padRight(s string, width int) string {
	w := uniseg.StringWidth(s)
	if w > width {
		return truncate(s, width)
	}
	return s + spaces(width-w)
}

// truncate shortens s, which is wider than width, to width cells ending in an
// ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	out := make([]byte, 0, len(s))
	used := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > width-1 {
			out = append(out, "…"...)
			used++
			break
		}
		out = append(out, cluster...)
		used += w
	}
	return string(out) + spaces(width-used)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
