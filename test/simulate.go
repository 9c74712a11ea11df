package test

import (
	"reflect"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

type updater interface {
	Update(tea.Msg) tea.Cmd
}

// SimulateModel runs first and feeds every message it produces back into
// model until no commands are left. Observers see each message before the
// model does.
func SimulateModel[T updater](model T, first tea.Cmd, observers ...func(tea.Msg)) {
	drain(first, func(msg tea.Msg) tea.Cmd {
		for _, observe := range observers {
			observe(msg)
		}
		return model.Update(msg)
	})
}

// Collect runs cmd and returns the messages it produces, batches flattened.
func Collect(cmd tea.Cmd) []tea.Msg {
	var msgs []tea.Msg
	drain(cmd, func(msg tea.Msg) tea.Cmd {
		msgs = append(msgs, msg)
		return nil
	})
	return msgs
}

// Type is a sequence of key presses, one per rune.
func Type(runes string) tea.Cmd {
	var cmds []tea.Cmd
	for _, r := range runes {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		cmds = append(cmds, func() tea.Msg { return msg })
	}
	return tea.Sequence(cmds...)
}

func Press(key tea.KeyType) tea.Cmd {
	return func() tea.Msg {
		return tea.KeyMsg{Type: key}
	}
}

func drain(first tea.Cmd, apply func(tea.Msg) tea.Cmd) {
	queue := []tea.Cmd{first}
	for len(queue) > 0 {
		cmd := queue[0]
		queue = queue[1:]
		if cmd == nil {
			continue
		}
		switch msg := cmd().(type) {
		case nil, cursor.BlinkMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			if cmds, ok := cmdSlice(msg); ok {
				queue = append(queue, cmds...)
				continue
			}
			queue = append(queue, apply(msg))
		}
	}
}

var cmdType = reflect.TypeOf((tea.Cmd)(nil))

// cmdSlice unwraps unexported command lists such as the one tea.Sequence
// produces.
func cmdSlice(msg tea.Msg) ([]tea.Cmd, bool) {
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Slice || !v.Type().Elem().AssignableTo(cmdType) {
		return nil, false
	}
	cmds := make([]tea.Cmd, v.Len())
	for i := range cmds {
		cmds[i] = v.Index(i).Interface().(tea.Cmd)
	}
	return cmds, true
}
