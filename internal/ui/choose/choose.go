package choose

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
	"github.com/sahilm/fuzzy"

	"github.com/idursun/layerview/internal/config"
	"github.com/idursun/layerview/internal/ui/common"
	"github.com/idursun/layerview/internal/ui/layout"
	"github.com/idursun/layerview/internal/ui/render"
)

type SelectedMsg struct {
	Value string
}

type CancelledMsg struct{}

type optionClickedMsg struct {
	model *Model
	index int
}

var (
	_ common.ImmediateModel = (*Model)(nil)
	_ help.KeyMap           = (*Model)(nil)
)

// Model picks one of a fixed set of options. Typing filters the options
// fuzzily; an empty filter shows all of them in order.
type Model struct {
	options  []string
	matches  fuzzy.Matches
	filter   textinput.Model
	selected int
	title    string
	keymap   config.KeyMappings[key.Binding]
	styles   styles
}

type styles struct {
	border   lipgloss.Style
	text     lipgloss.Style
	title    lipgloss.Style
	matched  lipgloss.Style
	selected lipgloss.Style
}

func New(options []string) *Model {
	return NewWithTitle(options, "")
}

func NewWithTitle(options []string, title string) *Model {
	filter := textinput.New()
	filter.Prompt = "> "
	filter.Placeholder = "filter"
	filter.Focus()
	m := &Model{
		options: options,
		filter:  filter,
		title:   title,
		keymap:  config.Current.GetKeyMap(),
		styles: styles{
			border:   common.DefaultPalette.GetBorder("dialog border", lipgloss.RoundedBorder()),
			text:     lipgloss.NewStyle(),
			title:    common.DefaultPalette.Get("dialog title").Bold(true),
			matched:  lipgloss.NewStyle().Underline(true),
			selected: lipgloss.NewStyle().Reverse(true),
		},
	}
	m.search()
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.filter.Focus()
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case optionClickedMsg:
		if msg.model == m {
			m.selected = msg.index
			return m.selectCurrent()
		}
	case tea.KeyMsg:
		switch {
		case msg.Type == tea.KeyUp || msg.Type == tea.KeyCtrlP:
			m.move(-1)
		case msg.Type == tea.KeyDown || msg.Type == tea.KeyCtrlN:
			m.move(1)
		case key.Matches(msg, m.keymap.Apply):
			return m.selectCurrent()
		case key.Matches(msg, m.keymap.Cancel):
			return newCmd(CancelledMsg{})
		default:
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.search()
			return cmd
		}
	case common.CloseViewMsg:
		return newCmd(CancelledMsg{})
	}
	return nil
}

func (m *Model) search() {
	pattern := strings.TrimSpace(m.filter.Value())
	if pattern == "" {
		m.matches = make(fuzzy.Matches, len(m.options))
		for i, option := range m.options {
			m.matches[i] = fuzzy.Match{Str: option, Index: i}
		}
	} else {
		m.matches = fuzzy.Find(pattern, m.options)
	}
	m.selected = max(min(m.selected, len(m.matches)-1), 0)
}

func (m *Model) move(delta int) {
	if len(m.matches) == 0 {
		return
	}
	m.selected = max(min(m.selected+delta, len(m.matches)-1), 0)
}

func (m *Model) selectCurrent() tea.Cmd {
	if len(m.matches) == 0 {
		return nil
	}
	return newCmd(SelectedMsg{Value: m.matches[m.selected].Str})
}

func (m *Model) renderMatch(match fuzzy.Match, style lipgloss.Style) string {
	if len(match.MatchedIndexes) == 0 {
		return style.Render(match.Str)
	}
	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, i := range match.MatchedIndexes {
		matched[i] = true
	}
	var b strings.Builder
	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(style.Inherit(m.styles.matched).Render(string(r)))
		} else {
			b.WriteString(style.Render(string(r)))
		}
	}
	return b.String()
}

func (m *Model) ViewRect(dl *render.DisplayContext, box layout.Box) {
	var rows []string
	if m.title != "" {
		rows = append(rows, m.styles.title.Render(m.title))
	}
	rows = append(rows, m.filter.View())
	for i, match := range m.matches {
		style := m.styles.text
		if i == m.selected {
			style = m.styles.selected
		}
		rows = append(rows, "  "+m.renderMatch(match, style))
	}
	if len(m.matches) == 0 {
		rows = append(rows, m.styles.text.Faint(true).Render("  no match"))
	}

	content := lipgloss.JoinVertical(0, rows...)
	content = m.styles.border.Padding(0, 1).Render(content)
	w, h := lipgloss.Size(content)

	pw, ph := box.R.Dx(), box.R.Dy()
	sx := box.R.Min.X + max((pw-w)/2, 0)
	sy := box.R.Min.Y + max((ph-h)/2, 0)
	frame := cellbuf.Rect(sx, sy, w, h)
	window := dl.Window(frame, render.ZDialogs)
	window.AddDraw(frame, content, render.ZDialogs)

	// border, padding, title and filter come before the options
	top := sy + 2
	if m.title != "" {
		top++
	}
	for i := range m.matches {
		rect := cellbuf.Rect(sx+2, top+i, w-4, 1)
		window.AddInteraction(rect, optionClickedMsg{model: m, index: i}, render.InteractionClick, render.ZDialogs)
	}
}

func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keymap.Up,
		m.keymap.Down,
		m.keymap.Apply,
		m.keymap.Cancel,
	}
}

func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp()}
}

func newCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
