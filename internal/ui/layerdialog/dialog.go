package layerdialog

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idursun/layerview/internal/config"
	"github.com/idursun/layerview/internal/layer"
	"github.com/idursun/layerview/internal/ui/choose"
	"github.com/idursun/layerview/internal/ui/common"
	"github.com/idursun/layerview/internal/ui/layout"
	"github.com/idursun/layerview/internal/ui/render"
)

const (
	maxWidth  = 64
	maxHeight = 22
)

type (
	saveClickedMsg   struct{ model *Model }
	cancelClickedMsg struct{ model *Model }
)

var (
	_ common.ImmediateModel = (*Model)(nil)
	_ help.KeyMap           = (*Model)(nil)
)

// Model edits the spec of a layer as TOML. Without a layer it first asks for
// the type of the layer to add.
type Model struct {
	group  *layer.ListSpecification
	layer  *layer.ManagedLayer
	picker *choose.Model
	editor textarea.Model
	err    error
	keymap config.KeyMappings[key.Binding]
	styles styles
}

type styles struct {
	border lipgloss.Style
	title  lipgloss.Style
	error  lipgloss.Style
	button lipgloss.Style
}

func New(group *layer.ListSpecification, l *layer.ManagedLayer) *Model {
	editor := textarea.New()
	editor.ShowLineNumbers = false
	editor.Prompt = ""
	editor.CharLimit = 0
	m := &Model{
		group:  group,
		layer:  l,
		editor: editor,
		keymap: config.Current.GetKeyMap(),
		styles: styles{
			border: common.DefaultPalette.GetBorder("dialog border", lipgloss.RoundedBorder()),
			title:  common.DefaultPalette.Get("dialog title").Bold(true),
			error:  common.DefaultPalette.Get("dialog error"),
			button: lipgloss.NewStyle().Reverse(true).Padding(0, 1),
		},
	}
	if l == nil {
		m.picker = choose.NewWithTitle(layer.Types, "Add layer to "+group.Name)
		return m
	}
	m.edit(l.Spec())
	return m
}

func (m *Model) edit(spec layer.Spec) {
	text, err := spec.Encode()
	if err != nil {
		m.err = err
	}
	m.editor.SetValue(text)
	m.editor.Focus()
}

func (m *Model) Init() tea.Cmd {
	if m.picker != nil {
		return m.picker.Init()
	}
	return textarea.Blink
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case choose.SelectedMsg:
		if m.picker == nil {
			return nil
		}
		m.picker = nil
		m.edit(layer.Spec{Name: m.group.UniqueName(msg.Value), Type: msg.Value})
		return textarea.Blink
	case choose.CancelledMsg:
		return m.close(false)
	case saveClickedMsg:
		if msg.model == m {
			return m.save()
		}
	case cancelClickedMsg:
		if msg.model == m {
			return m.close(false)
		}
	case common.CloseViewMsg:
		return m.close(false)
	case tea.KeyMsg:
		if m.picker != nil {
			return m.picker.Update(msg)
		}
		switch {
		case key.Matches(msg, m.keymap.Save):
			return m.save()
		case key.Matches(msg, m.keymap.Cancel):
			return m.close(false)
		}
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return cmd
	default:
		if m.picker != nil {
			return m.picker.Update(msg)
		}
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return cmd
	}
	return nil
}

// save applies the edited spec. Errors keep the dialog open.
func (m *Model) save() tea.Cmd {
	spec, err := layer.DecodeSpec(m.editor.Value())
	if err != nil {
		m.err = err
		return nil
	}
	if m.layer == nil {
		l, err := m.group.NewLayer(spec)
		if err != nil {
			m.err = err
			return nil
		}
		m.group.Add(l, -1)
		m.layer = l
		slog.Debug("layer added", "group", m.group.Name, "layer", l.Name, "type", spec.Type)
		return m.close(true)
	}
	spec.Name = m.group.UniqueName(spec.Name, m.layer)
	if err := m.group.InitializeLayerFromSpec(m.layer, spec); err != nil {
		m.err = err
		return nil
	}
	slog.Debug("layer updated", "group", m.group.Name, "layer", m.layer.Name)
	return m.close(true)
}

func (m *Model) close(saved bool) tea.Cmd {
	msg := common.LayerDialogClosedMsg{Group: m.group, Layer: m.layer, Saved: saved}
	return func() tea.Msg { return msg }
}

func (m *Model) Err() error {
	return m.err
}

func (m *Model) title() string {
	if m.layer == nil {
		return fmt.Sprintf("New layer in %s", m.group.Name)
	}
	return fmt.Sprintf("Edit %s", m.layer.Name)
}

func (m *Model) ViewRect(dl *render.DisplayContext, box layout.Box) {
	if m.picker != nil {
		m.picker.ViewRect(dl, box)
		return
	}
	frame := box.Center(min(maxWidth, box.R.Dx()-2), min(maxHeight, box.R.Dy()-2))
	if frame.Empty() {
		return
	}
	window := dl.Window(frame.R, render.ZDialogs)
	inner := frame.Inset(1)
	window.AddDraw(frame.R, m.styles.border.Width(inner.R.Dx()).Height(inner.R.Dy()).Render(""), render.ZDialogs)
	window.Text(frame.R.Min.X+2, frame.R.Min.Y, render.ZDialogs).
		Clip(frame.R.Dx()-4).
		Styled(" "+m.title()+" ", m.styles.title).
		Done()

	content, buttons := inner.CutBottom(1)
	if m.err != nil {
		var errBox layout.Box
		content, errBox = content.CutBottom(1)
		window.Text(errBox.R.Min.X, errBox.R.Min.Y, render.ZDialogs).
			Clip(errBox.R.Dx()).
			Styled(m.err.Error(), m.styles.error).
			Done()
	}
	m.editor.SetWidth(content.R.Dx())
	m.editor.SetHeight(content.R.Dy())
	window.AddDraw(content.R, m.editor.View(), render.ZDialogs)

	window.Text(buttons.R.Min.X, buttons.R.Min.Y, render.ZDialogs).
		Clickable("save", m.styles.button, saveClickedMsg{model: m}).
		Space(1).
		Clickable("cancel", m.styles.button, cancelClickedMsg{model: m}).
		Done()
}

func (m *Model) ShortHelp() []key.Binding {
	if m.picker != nil {
		return m.picker.ShortHelp()
	}
	return []key.Binding{m.keymap.Save, m.keymap.Cancel}
}

func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp()}
}
