package browser

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before a search runs.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer delivers the last value triggered once no new value has arrived for
// its delay. With distinct set, a settled value equal to the previously emitted
// one is dropped.
type Debouncer[T comparable] struct {
	delay    time.Duration
	distinct bool
	emit     func(T)

	// emitMu is held from the sequence check through emit, so values reach
	// emit in the order they were triggered.
	emitMu sync.Mutex

	mu         sync.Mutex
	timer      *time.Timer
	seq        uint64
	pending    T
	hasPending bool
	last       T
	hasLast    bool
	stopped    bool
}

// NewDebouncer returns a debouncer calling emit on its own goroutine.
func NewDebouncer[T comparable](delay time.Duration, distinct bool, emit func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: max(delay, 0), distinct: distinct, emit: emit}
}

// Trigger records v and restarts the quiet period.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.pending, d.hasPending = v, true
	d.timer = time.AfterFunc(d.delay, func() { d.fire(seq) })
}

// Flush emits the pending value now instead of waiting out the delay.
// It reports whether anything was pending.
func (d *Debouncer[T]) Flush() bool {
	d.emitMu.Lock()
	defer d.emitMu.Unlock()

	d.mu.Lock()
	if d.stopped || !d.hasPending {
		d.mu.Unlock()
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	v, ok := d.settleLocked()
	d.mu.Unlock()
	if ok {
		d.emit(v)
	}
	return true
}

// Stop drops any pending value; later triggers are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.hasPending = false
	if d.timer != nil {
		d.timer.Stop()
	}
}

func (d *Debouncer[T]) fire(seq uint64) {
	d.emitMu.Lock()
	defer d.emitMu.Unlock()

	d.mu.Lock()
	if d.stopped || seq != d.seq || !d.hasPending {
		d.mu.Unlock()
		return
	}
	v, ok := d.settleLocked()
	d.mu.Unlock()
	if ok {
		d.emit(v)
	}
}

// settleLocked takes the pending value and applies the distinct filter.
func (d *Debouncer[T]) settleLocked() (T, bool) {
	v := d.pending
	var zero T
	d.pending, d.hasPending = zero, false
	if d.distinct && d.hasLast && d.last == v {
		return zero, false
	}
	d.last, d.hasLast = v, true
	return v, true
}
