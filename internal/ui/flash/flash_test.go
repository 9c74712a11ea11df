package flash

import (
	"errors"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idursun/layerview/internal/ui/layout"
	"github.com/idursun/layerview/internal/ui/render"
)

type undoMsg struct{}

func plain(m *Model) *Model {
	m.successStyle = lipgloss.NewStyle()
	m.errorStyle = lipgloss.NewStyle()
	m.actionStyle = lipgloss.NewStyle()
	return m
}

func TestAdd_IgnoresEmptyMessages(t *testing.T) {
	m := New()

	id := m.add("   ", nil)

	assert.Zero(t, id)
	assert.Empty(t, m.messages)
}

func TestAddMessage_SchedulesExpiry(t *testing.T) {
	m := plain(New())

	cmd := m.Update(AddMessage{Text: "  saved  "})

	assert.NotNil(t, cmd)
	if assert.Len(t, m.messages, 1) {
		assert.Equal(t, "saved", m.messages[0].text)
		assert.Nil(t, m.messages[0].error)
	}
}

func TestAddMessage_ErrorsDoNotExpire(t *testing.T) {
	m := plain(New())

	cmd := m.Update(AddMessage{Err: errors.New("boom")})

	assert.Nil(t, cmd)
	if assert.Len(t, m.messages, 1) {
		assert.EqualError(t, m.messages[0].error, "boom")
	}
}

func TestUpdate_ExpiresMessages(t *testing.T) {
	m := plain(New())

	first := m.add("first", nil)
	m.add("second", nil)

	m.Update(expireMessageMsg{id: first})

	if assert.Len(t, m.messages, 1) {
		assert.Equal(t, "second", m.messages[0].text)
	}
}

func TestView_StacksFromBottomRight(t *testing.T) {
	m := plain(New())
	m.SetFrame(cellbuf.Rect(0, 0, 10, 3))

	m.add("abc", nil)
	m.add("de", nil)

	views := m.View()

	if assert.Len(t, views, 2) {
		w0, _ := lipgloss.Size(views[0].Content)
		w1, _ := lipgloss.Size(views[1].Content)
		assert.Equal(t, "abc", views[0].Content)
		assert.Equal(t, "de", views[1].Content)
		assert.Equal(t, m.Width-w0, views[0].Rect.Min.X)
		assert.Equal(t, m.Width-w1, views[1].Rect.Min.X)
		assert.Equal(t, 2, views[0].Rect.Min.Y)
		assert.Equal(t, 1, views[1].Rect.Min.Y)
	}
}

func TestAction_ClickDeliversActionAndDismisses(t *testing.T) {
	m := New()
	m.Update(AddMessage{Text: "Resetting", ActionLabel: "Undo?", Action: undoMsg{}})

	dl := render.NewDisplayContext()
	m.ViewRect(dl, layout.NewBox(cellbuf.Rect(0, 0, 40, 10)))

	interactions := dl.InteractionsList()
	require.Len(t, interactions, 1)
	assert.Equal(t, 5, interactions[0].Rect.Dx())

	cmd := m.Update(interactions[0].Msg)
	require.NotNil(t, cmd)
	assert.Equal(t, undoMsg{}, cmd())
	assert.False(t, m.Any())
}

func TestDismissOldest_RemovesFirstMessage(t *testing.T) {
	m := plain(New())

	m.add("first", nil)
	m.add("second", nil)
	assert.True(t, m.Any())

	m.Update(DismissOldest{})

	if assert.Len(t, m.messages, 1) {
		assert.Equal(t, "second", m.messages[0].text)
	}
}
