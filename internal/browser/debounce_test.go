package browser

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder[T any] struct {
	mu  sync.Mutex
	got []T
}

func (r *recorder[T]) emit(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, v)
}

func (r *recorder[T]) values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.got...)
}

func TestDebouncerEmitsLastValueOnce(t *testing.T) {
	rec := &recorder[string]{}
	d := NewDebouncer(30*time.Millisecond, false, rec.emit)
	defer d.Stop()

	for _, v := range []string{"a", "ab", "abc"} {
		d.Trigger(v)
	}

	require.Eventually(t, func() bool { return len(rec.values()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []string{"abc"}, rec.values())
}

func TestDebouncerDistinct(t *testing.T) {
	rec := &recorder[int]{}
	d := NewDebouncer(time.Millisecond, true, rec.emit)
	defer d.Stop()

	d.Trigger(1)
	require.Eventually(t, func() bool { return len(rec.values()) == 1 }, time.Second, 2*time.Millisecond)

	d.Trigger(1)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, []int{1}, rec.values(), "repeat of the last emitted value is dropped")

	d.Trigger(2)
	require.Eventually(t, func() bool { return len(rec.values()) == 2 }, time.Second, 2*time.Millisecond)
	assert.Equal(t, []int{1, 2}, rec.values())
}

func TestDebouncerWithoutDistinctRepeats(t *testing.T) {
	rec := &recorder[int]{}
	d := NewDebouncer(time.Millisecond, false, rec.emit)
	defer d.Stop()

	d.Trigger(7)
	require.Eventually(t, func() bool { return len(rec.values()) == 1 }, time.Second, 2*time.Millisecond)
	d.Trigger(7)
	require.Eventually(t, func() bool { return len(rec.values()) == 2 }, time.Second, 2*time.Millisecond)
}

func TestDebouncerFlush(t *testing.T) {
	rec := &recorder[string]{}
	d := NewDebouncer(time.Hour, false, rec.emit)
	defer d.Stop()

	assert.False(t, d.Flush(), "nothing pending")
	d.Trigger("now")
	assert.True(t, d.Flush())
	assert.Equal(t, []string{"now"}, rec.values())
	assert.False(t, d.Flush())
}

func TestDebouncerStop(t *testing.T) {
	rec := &recorder[string]{}
	d := NewDebouncer(20*time.Millisecond, false, rec.emit)

	d.Trigger("dropped")
	d.Stop()
	d.Trigger("ignored")
	time.Sleep(60 * time.Millisecond)

	assert.Empty(t, rec.values())
	assert.False(t, d.Flush())
}

func TestDebouncerFlushWaitsForEarlierEmit(t *testing.T) {
	rec := &recorder[string]{}
	started := make(chan struct{})
	release := make(chan struct{})
	d := NewDebouncer(time.Hour, false, func(v string) {
		rec.emit(v)
		if v == "a" {
			close(started)
			<-release
		}
	})
	defer d.Stop()

	d.Trigger("a")
	first := make(chan bool, 1)
	go func() { first <- d.Flush() }()
	<-started

	d.Trigger("b")
	second := make(chan bool, 1)
	go func() { second <- d.Flush() }()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, []string{"a"}, rec.values(), "later value waits for the running emit")

	close(release)
	assert.True(t, <-first)
	assert.True(t, <-second)
	assert.Equal(t, []string{"a", "b"}, rec.values())
}
