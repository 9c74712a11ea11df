package flash

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"

	"github.com/idursun/layerview/internal/ui/common"
	"github.com/idursun/layerview/internal/ui/layout"
	"github.com/idursun/layerview/internal/ui/render"
)

const expiringMessageTimeout = 4 * time.Second

type Intent interface {
	apply(*Model) tea.Cmd
}

// Cmd wraps a flash intent into a Tea command.
func Cmd(intent Intent) tea.Cmd {
	return func() tea.Msg {
		return intent
	}
}

type expireMessageMsg struct {
	id uint64
}

// actionClickedMsg is sent when the action label of a message is clicked.
type actionClickedMsg struct {
	id uint64
}

type flashMessage struct {
	text        string
	error       error
	actionLabel string
	action      tea.Msg
	id          uint64
}

type FlashMessageView struct {
	// Content might contain ANSI colour codes
	Content string
	Rect    cellbuf.Rectangle
	// Action is the clickable area of the action label, empty if none.
	Action cellbuf.Rectangle
	id     uint64
}

type Model struct {
	*common.ViewNode
	messages     []flashMessage
	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	actionStyle  lipgloss.Style
	currentId    uint64
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case Intent:
		return msg.apply(m)
	case expireMessageMsg:
		m.remove(msg.id)
		return nil
	case actionClickedMsg:
		for _, message := range m.messages {
			if message.id != msg.id {
				continue
			}
			m.remove(msg.id)
			if message.action == nil {
				return nil
			}
			action := message.action
			return func() tea.Msg { return action }
		}
	}
	return nil
}

// View lays the messages out from the bottom right corner upwards.
func (m *Model) View() []FlashMessageView {
	if len(m.messages) == 0 {
		return nil
	}

	y := m.Height
	var messageBoxes []FlashMessageView
	for _, message := range m.messages {
		var content string
		if message.error != nil {
			content = m.errorStyle.Render(message.error.Error())
		} else {
			body := message.text
			if message.actionLabel != "" {
				body += " " + m.actionStyle.Render(message.actionLabel)
			}
			content = m.successStyle.Render(body)
		}
		w, h := lipgloss.Size(content)
		y -= h
		view := FlashMessageView{
			Content: content,
			Rect:    cellbuf.Rect(m.Width-w, y, w, h),
			id:      message.id,
		}
		if message.error == nil && message.actionLabel != "" {
			// border and right padding
			labelWidth := lipgloss.Width(message.actionLabel)
			view.Action = cellbuf.Rect(m.Width-labelWidth-2, y+1, labelWidth, 1)
		}
		messageBoxes = append(messageBoxes, view)
	}
	return messageBoxes
}

func (m *Model) ViewRect(dl *render.DisplayContext, box layout.Box) {
	m.SetFrame(box.R)
	for _, view := range m.View() {
		rect := view.Rect.Add(box.R.Min)
		dl.AddDraw(rect, view.Content, render.ZOverlay)
		if !view.Action.Empty() {
			dl.AddInteraction(view.Action.Add(box.R.Min), actionClickedMsg{id: view.id}, render.InteractionClick, render.ZOverlay)
		}
	}
}

func (m *Model) add(text string, error error) uint64 {
	text = strings.TrimSpace(text)
	if text == "" && error == nil {
		return 0
	}

	msg := flashMessage{
		id:    m.nextId(),
		text:  text,
		error: error,
	}

	m.messages = append(m.messages, msg)
	return msg.id
}

func (m *Model) remove(id uint64) {
	for i, message := range m.messages {
		if message.id == id {
			m.messages = append(m.messages[:i], m.messages[i+1:]...)
			return
		}
	}
}

func (m *Model) Any() bool {
	return len(m.messages) > 0
}

func (m *Model) DeleteOldest() {
	m.messages = m.messages[1:]
}

func (m *Model) nextId() uint64 {
	m.currentId = m.currentId + 1
	return m.currentId
}

// AddMessage adds a flash message with optional error; non-error messages expire.
// When ActionLabel is set, clicking it dismisses the message and delivers
// Action to the program.
type AddMessage struct {
	Text        string
	Err         error
	NoTimeout   bool
	ActionLabel string
	Action      tea.Msg
}

func (a AddMessage) apply(m *Model) tea.Cmd {
	id := m.add(a.Text, a.Err)
	if id == 0 {
		return nil
	}
	if a.ActionLabel != "" {
		last := &m.messages[len(m.messages)-1]
		last.actionLabel = a.ActionLabel
		last.action = a.Action
	}
	if a.Err == nil && !a.NoTimeout {
		return tea.Tick(expiringMessageTimeout, func(t time.Time) tea.Msg {
			return expireMessageMsg{id: id}
		})
	}
	return nil
}

// DismissOldest removes the oldest flash message if present.
type DismissOldest struct{}

func (DismissOldest) apply(m *Model) tea.Cmd {
	if len(m.messages) == 0 {
		return nil
	}
	m.DeleteOldest()
	return nil
}

func New() *Model {
	fg := lipgloss.NewStyle().GetForeground()
	successStyle := common.DefaultPalette.GetBorder("flash border", lipgloss.NormalBorder()).Foreground(fg).PaddingLeft(1).PaddingRight(1)
	errorStyle := common.DefaultPalette.GetBorder("flash error", lipgloss.NormalBorder()).Foreground(fg).PaddingLeft(1).PaddingRight(1)
	return &Model{
		ViewNode:     common.NewViewNode(0, 0),
		messages:     make([]flashMessage, 0),
		successStyle: successStyle,
		errorStyle:   errorStyle,
		actionStyle:  common.DefaultPalette.Get("flash action").Underline(true),
	}
}
