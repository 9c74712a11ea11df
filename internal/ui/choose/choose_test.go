package choose

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idursun/layerview/test"
)

var types = []string{"annotation", "image", "segmentation", "segmentation_with_graph", "vector_field"}

func TestNewWithTitle(t *testing.T) {
	model := NewWithTitle(types, "Layer type")

	assert.NotEmpty(t, model.title)
	assert.Len(t, model.matches, len(types))
}

func TestModel_View(t *testing.T) {
	title := "Layer type"
	model := NewWithTitle(types, title)
	test.SimulateModel(model, model.Init())
	output := test.RenderImmediate(model, 80, 20)
	require.NotEmpty(t, output)

	assert.Contains(t, output, title)
	for _, option := range types {
		assert.Contains(t, output, option)
	}
}

func TestModel_FilterNarrowsOptions(t *testing.T) {
	model := New(types)

	test.SimulateModel(model, test.Type("vec"))

	require.NotEmpty(t, model.matches)
	assert.Equal(t, "vector_field", model.matches[0].Str)
}

func TestModel_SelectsHighlightedOption(t *testing.T) {
	model := New(types)
	var selected []string

	test.SimulateModel(model, tea.Sequence(test.Press(tea.KeyDown), test.Press(tea.KeyEnter)), func(msg tea.Msg) {
		if s, ok := msg.(SelectedMsg); ok {
			selected = append(selected, s.Value)
		}
	})

	assert.Equal(t, []string{"image"}, selected)
}

func TestModel_EscapeCancels(t *testing.T) {
	model := New(types)
	cancelled := false

	test.SimulateModel(model, test.Press(tea.KeyEsc), func(msg tea.Msg) {
		_, cancelled = msg.(CancelledMsg)
	})

	assert.True(t, cancelled)
}

func TestModel_ClickSelectsOption(t *testing.T) {
	model := New(types)
	output := test.RenderImmediate(model, 60, 20)
	require.Contains(t, output, "segmentation")

	cmd := model.Update(optionClickedMsg{model: model, index: 2})

	require.NotNil(t, cmd)
	assert.Equal(t, SelectedMsg{Value: "segmentation"}, cmd())
}
