package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignal_DispatchCallsHandlersInOrder(t *testing.T) {
	var s Signal
	var calls []int
	s.Add(func() { calls = append(calls, 1) })
	s.Add(func() { calls = append(calls, 2) })

	s.Dispatch()

	assert.Equal(t, []int{1, 2}, calls)
}

func TestSignal_RemovedHandlerIsNotCalled(t *testing.T) {
	var s Signal
	called := 0
	remove := s.Add(func() { called++ })
	remove()
	remove()

	s.Dispatch()

	assert.Zero(t, called)
	assert.Zero(t, s.Len())
}

func TestSignal_HandlerRemovedDuringDispatchIsSkipped(t *testing.T) {
	var s Signal
	var removeSecond func()
	secondCalled := false
	s.Add(func() { removeSecond() })
	removeSecond = s.Add(func() { secondCalled = true })

	s.Dispatch()

	assert.False(t, secondCalled)
}

func TestWatchable_SetDispatchesOnlyOnChange(t *testing.T) {
	w := NewWatchable("")
	changes := 0
	w.Changed.Add(func() { changes++ })

	w.Set("")
	w.Set("2024-01-01")
	w.Set("2024-01-01")

	assert.Equal(t, 1, changes)
	assert.Equal(t, "2024-01-01", w.Value())
}

func TestDisposers_RunInReverseOrder(t *testing.T) {
	var d Disposers
	var order []int
	d.Add(func() { order = append(order, 1) })
	d.Add(nil)
	d.Add(func() { order = append(order, 2) })

	d.Dispose()
	d.Dispose()

	assert.Equal(t, []int{2, 1}, order)
}
