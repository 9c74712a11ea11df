package common

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// debounced is one waiting call. settled receives true when the timer fires
// and false when a newer call or CancelDebounce replaced it.
type debounced struct {
	timer   *time.Timer
	settled chan bool
}

func (d *debounced) settle(fired bool) {
	select {
	case d.settled <- fired:
	default:
	}
}

// stop must be called with debounceMu held and d already removed from the
// pending map.
func (d *debounced) stop() {
	if d.timer.Stop() {
		d.settle(false)
	}
}

var (
	debounceMu sync.Mutex
	pending    = map[string]*debounced{}
)

// Debounce waits for duration before running cmd. A newer call with the same
// identifier supersedes the waiting one, whose command then resolves to nil.
func Debounce(identifier string, duration time.Duration, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	d := &debounced{settled: make(chan bool, 1)}

	debounceMu.Lock()
	if previous, ok := pending[identifier]; ok {
		delete(pending, identifier)
		previous.stop()
	}
	pending[identifier] = d
	d.timer = time.AfterFunc(duration, func() {
		debounceMu.Lock()
		current := pending[identifier] == d
		if current {
			delete(pending, identifier)
		}
		debounceMu.Unlock()
		d.settle(current)
	})
	debounceMu.Unlock()

	return func() tea.Msg {
		if !<-d.settled {
			return nil
		}
		return cmd()
	}
}

// CancelDebounce drops the call waiting under identifier. Its command
// resolves to nil.
func CancelDebounce(identifier string) {
	debounceMu.Lock()
	defer debounceMu.Unlock()
	if d, ok := pending[identifier]; ok {
		delete(pending, identifier)
		d.stop()
	}
}

// Pending reports whether a call is waiting under identifier.
func Pending(identifier string) bool {
	debounceMu.Lock()
	defer debounceMu.Unlock()
	_, ok := pending[identifier]
	return ok
}
