package common

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestPalette_UpdateAndGet(t *testing.T) {
	p := NewPalette()
	p.Update(map[string]string{"row value": "6"})

	assert.Equal(t, lipgloss.Color("6"), p.Get("row value").GetForeground())
	assert.Equal(t, lipgloss.NoColor{}, p.Get("missing").GetForeground())
}

func TestPalette_GetBorder(t *testing.T) {
	p := NewPalette()
	p.Update(map[string]string{"dialog border": "#00ff00"})

	style := p.GetBorder("dialog border", lipgloss.RoundedBorder())
	assert.Equal(t, lipgloss.RoundedBorder(), style.GetBorderStyle())
	assert.Equal(t, lipgloss.Color("#00ff00"), style.GetBorderTopForeground())
}
