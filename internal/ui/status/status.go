package status

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"

	"github.com/idursun/layerview/internal/config"
	"github.com/idursun/layerview/internal/ui/common"
	"github.com/idursun/layerview/internal/ui/layout"
	"github.com/idursun/layerview/internal/ui/render"
)

var _ common.ImmediateModel = (*Model)(nil)

// Model is the bottom line: the active mode, the key help of the focused
// view and, when expanded, every binding of that view above the line.
type Model struct {
	keyMap    help.KeyMap
	mode      string
	position  string
	expanded  bool
	truncated bool
	styles    styles
}

type styles struct {
	shortcut lipgloss.Style
	dimmed   lipgloss.Style
	text     lipgloss.Style
	title    lipgloss.Style
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg.(type) {
	case common.ToggleHelpMsg:
		m.ToggleExpanded()
	case common.CloseViewMsg:
		m.expanded = false
	}
	return nil
}

func (m *Model) ViewRect(dl *render.DisplayContext, box layout.Box) {
	width := box.R.Dx()
	modeWidth := max(10, len(m.mode)+2)
	mode := m.styles.title.Width(modeWidth).Render(" ", m.mode)
	position := ""
	if m.position != "" {
		position = m.styles.dimmed.Render(" " + m.position + " ")
	}

	available := max(0, width-modeWidth-1-lipgloss.Width(position))
	helpBar := m.renderHelpBar(available)
	line := lipgloss.JoinHorizontal(lipgloss.Left, mode, m.styles.text.Render(" "), helpBar, position)
	dl.AddDraw(box.R, line, render.ZBase)
	m.renderExpanded(dl, box, width)
}

func (m *Model) renderHelpBar(width int) string {
	if m.keyMap == nil || m.expanded {
		return lipgloss.PlaceHorizontal(width, lipgloss.Left, "")
	}
	content, truncated := m.helpView(m.keyMap, width)
	m.truncated = truncated
	return lipgloss.PlaceHorizontal(width, lipgloss.Left, content)
}

func (m *Model) renderExpanded(dl *render.DisplayContext, box layout.Box, width int) {
	if !m.expanded || m.keyMap == nil {
		return
	}
	entries, entryWidth := m.collectHelpEntries(m.keyMap)
	lines := buildHelpGrid(entries, entryWidth, max(0, width-4))
	startY := box.R.Min.Y - len(lines)
	if startY-1 >= 0 {
		label := m.styles.title.Render("  " + m.mode + "  ")
		border := label + m.styles.dimmed.Render(strings.Repeat("─", max(0, width-lipgloss.Width(label))))
		dl.AddDraw(cellbuf.Rect(box.R.Min.X, startY-1, width, 1), border, render.ZOverlay)
	}
	for i, line := range lines {
		y := startY + i
		if y < 0 {
			continue
		}
		padding := max(0, width-lipgloss.Width(line)-2)
		dl.AddDraw(cellbuf.Rect(box.R.Min.X, y, width, 1), m.styles.text.Render("  "+line+strings.Repeat(" ", padding)), render.ZOverlay)
	}
}

func (m *Model) entry(key, desc string) string {
	return m.styles.shortcut.Render(key) + m.styles.dimmed.PaddingLeft(1).Render(desc)
}

func (m *Model) collectHelpEntries(keyMap help.KeyMap) ([]string, int) {
	var entries []string
	widest := 0
	add := func(entry string) {
		entries = append(entries, entry)
		widest = max(widest, lipgloss.Width(entry))
	}
	for _, group := range keyMap.FullHelp() {
		for _, binding := range group {
			if !binding.Enabled() {
				continue
			}
			h := binding.Help()
			add(m.entry(h.Key, h.Desc))
		}
	}
	add(m.entry(config.Current.GetKeyMap().Help.Help().Key+"/esc", "close help"))
	return entries, widest
}

// buildHelpGrid lays entries out row by row in as many columns as fit.
func buildHelpGrid(entries []string, entryWidth, maxWidth int) []string {
	numCols := max(maxWidth/(entryWidth+2), 1)
	colWidth := maxWidth / numCols
	numRows := (len(entries) + numCols - 1) / numCols

	var lines []string
	for row := range numRows {
		var line strings.Builder
		for col := range numCols {
			idx := row*numCols + col
			if idx >= len(entries) {
				break
			}
			line.WriteString(entries[idx])
			if col < numCols-1 {
				line.WriteString(strings.Repeat(" ", max(0, colWidth-lipgloss.Width(entries[idx]))))
			}
		}
		lines = append(lines, line.String())
	}
	return lines
}

func (m *Model) helpView(keyMap help.KeyMap, maxWidth int) (string, bool) {
	separator := m.styles.dimmed.Render(" • ")
	moreHint := separator + m.entry(config.Current.GetKeyMap().Help.Help().Key, "more")
	separatorWidth, moreWidth := lipgloss.Width(separator), lipgloss.Width(moreHint)

	shortHelp := keyMap.ShortHelp()
	var entries []string
	width := 0
	for i, binding := range shortHelp {
		if !binding.Enabled() {
			continue
		}
		h := binding.Help()
		entry := m.entry(h.Key, h.Desc)
		added := lipgloss.Width(entry)
		if len(entries) > 0 {
			added += separatorWidth
		}
		reserved := 0
		if i < len(shortHelp)-1 {
			reserved = moreWidth
		}
		if maxWidth > 0 && width+added+reserved > maxWidth {
			return strings.Join(entries, separator) + moreHint, true
		}
		entries = append(entries, entry)
		width += added
	}
	return strings.Join(entries, separator), false
}

func (m *Model) SetHelp(keyMap help.KeyMap) {
	if m.keyMap != keyMap {
		m.expanded = false
	}
	m.keyMap = keyMap
}

func (m *Model) SetMode(mode string) {
	m.mode = mode
}

func (m *Model) Mode() string {
	return m.mode
}

// SetPosition shows the viewer position at the right end of the line.
func (m *Model) SetPosition(position string) {
	m.position = position
}

func (m *Model) Expanded() bool {
	return m.expanded
}

// Truncated reports whether the last rendered help line did not fit.
func (m *Model) Truncated() bool {
	return m.truncated
}

func (m *Model) ToggleExpanded() {
	m.expanded = !m.expanded
}

func New() *Model {
	return &Model{
		styles: styles{
			shortcut: common.DefaultPalette.Get("status shortcut"),
			dimmed:   common.DefaultPalette.Get("status"),
			text:     lipgloss.NewStyle(),
			title:    common.DefaultPalette.Get("status title").Bold(true),
		},
	}
}
