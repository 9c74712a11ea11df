package config

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keys []string

// KeyMappings is the key layout of the application. It is decoded with
// T = keys and turned into bindings by GetKeyMap.
type KeyMappings[T any] struct {
	Up        T                  `toml:"up"`
	Down      T                  `toml:"down"`
	Apply     T                  `toml:"apply"`
	Cancel    T                  `toml:"cancel"`
	Quit      T                  `toml:"quit"`
	Help      T                  `toml:"help"`
	NextPanel T                  `toml:"next_panel"`
	Save      T                  `toml:"save"`
	Panel     PanelModeKeys[T]   `toml:"panel"`
	Details   DetailsModeKeys[T] `toml:"details"`
	Viewer    ViewerModeKeys[T]  `toml:"viewer"`
}

type PanelModeKeys[T any] struct {
	ToggleVisible T `toml:"toggle_visible"`
	Details       T `toml:"details"`
	Delete        T `toml:"delete"`
	MoveUp        T `toml:"move_up"`
	MoveDown      T `toml:"move_down"`
	Add           T `toml:"add"`
	AddAnnotation T `toml:"add_annotation"`
	Edit          T `toml:"edit"`
}

type DetailsModeKeys[T any] struct {
	Select    T `toml:"select"`
	Merge     T `toml:"merge"`
	Timestamp T `toml:"timestamp"`
}

type ViewerModeKeys[T any] struct {
	Left      T `toml:"left"`
	Right     T `toml:"right"`
	Up        T `toml:"up"`
	Down      T `toml:"down"`
	ZUp       T `toml:"z_up"`
	ZDown     T `toml:"z_down"`
	CycleLink T `toml:"cycle_link"`
}

func (c *Config) GetKeyMap() KeyMappings[key.Binding] {
	k := c.Keys
	return KeyMappings[key.Binding]{
		Up:        binding(k.Up, "up"),
		Down:      binding(k.Down, "down"),
		Apply:     binding(k.Apply, "apply"),
		Cancel:    binding(k.Cancel, "cancel"),
		Quit:      binding(k.Quit, "quit"),
		Help:      binding(k.Help, "help"),
		NextPanel: binding(k.NextPanel, "next panel"),
		Save:      binding(k.Save, "save"),
		Panel: PanelModeKeys[key.Binding]{
			ToggleVisible: binding(k.Panel.ToggleVisible, "toggle visible"),
			Details:       binding(k.Panel.Details, "details"),
			Delete:        binding(k.Panel.Delete, "delete"),
			MoveUp:        binding(k.Panel.MoveUp, "move up"),
			MoveDown:      binding(k.Panel.MoveDown, "move down"),
			Add:           binding(k.Panel.Add, "add layer"),
			AddAnnotation: binding(k.Panel.AddAnnotation, "add annotation"),
			Edit:          binding(k.Panel.Edit, "edit spec"),
		},
		Details: DetailsModeKeys[key.Binding]{
			Select:    binding(k.Details.Select, "select segment"),
			Merge:     binding(k.Details.Merge, "merge"),
			Timestamp: binding(k.Details.Timestamp, "timestamp"),
		},
		Viewer: ViewerModeKeys[key.Binding]{
			Left:      binding(k.Viewer.Left, "x-"),
			Right:     binding(k.Viewer.Right, "x+"),
			Up:        binding(k.Viewer.Up, "y-"),
			Down:      binding(k.Viewer.Down, "y+"),
			ZUp:       binding(k.Viewer.ZUp, "z+"),
			ZDown:     binding(k.Viewer.ZDown, "z-"),
			CycleLink: binding(k.Viewer.CycleLink, "link"),
		},
	}
}

func binding(k keys, desc string) key.Binding {
	if len(k) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(key.WithKeys(k...), key.WithHelp(helpKey(k[0]), desc))
}

func helpKey(k string) string {
	switch k {
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "left":
		return "←"
	case "right":
		return "→"
	}
	return strings.ReplaceAll(k, "shift+", "⇧")
}
