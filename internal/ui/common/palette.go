package common

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette maps style names used by the views to styles.
type Palette struct {
	styles map[string]lipgloss.Style
}

// DefaultPalette is the palette the views read their styles from.
var DefaultPalette = NewPalette()

func NewPalette() *Palette {
	return &Palette{styles: make(map[string]lipgloss.Style)}
}

// Update sets the foreground of each named style. Values are lipgloss colors:
// ANSI numbers or hex strings.
func (p *Palette) Update(colors map[string]string) {
	for name, color := range colors {
		p.styles[name] = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
}

// Get returns the style called name, or an empty style.
func (p *Palette) Get(name string) lipgloss.Style {
	if style, ok := p.styles[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// GetBorder returns a bordered style whose border takes the foreground of
// the style called name.
func (p *Palette) GetBorder(name string, border lipgloss.Border) lipgloss.Style {
	style := lipgloss.NewStyle().Border(border)
	if named, ok := p.styles[name]; ok {
		style = style.BorderForeground(named.GetForeground())
	}
	return style
}
