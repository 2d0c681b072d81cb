package boing

import (
	"testing"
	"time"
)

// fakeClock is a manually advanced Clock.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestTimerQueueRunsDueInOrder(t *testing.T) {
	clock := newFakeClock()
	q := NewTimerQueue(clock)

	var got []string
	q.AfterFunc(30*time.Millisecond, func() { got = append(got, "c") })
	q.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	q.AfterFunc(20*time.Millisecond, func() { got = append(got, "b") })
	q.AfterFunc(10*time.Millisecond, func() { got = append(got, "a2") })

	if n := q.RunDue(); n != 0 {
		t.Fatalf("RunDue before any deadline fired %d", n)
	}

	clock.Advance(20 * time.Millisecond)
	if n := q.RunDue(); n != 3 {
		t.Fatalf("RunDue fired %d, want 3", n)
	}
	want := []string{"a", "a2", "b"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if q.Len() != 1 {
		t.Errorf("Len = %d, want 1", q.Len())
	}
}

func TestTimerQueueDefersCallbacksQueuedDuringRun(t *testing.T) {
	clock := newFakeClock()
	q := NewTimerQueue(clock)

	calls := 0
	var reschedule func()
	reschedule = func() {
		calls++
		q.AfterFunc(0, reschedule)
	}
	q.AfterFunc(0, reschedule)

	q.RunDue()
	if calls != 1 {
		t.Fatalf("calls = %d after first RunDue, want 1", calls)
	}
	if q.Len() != 1 {
		t.Fatalf("Len = %d, want 1 rescheduled timer", q.Len())
	}
	q.RunDue()
	if calls != 2 {
		t.Errorf("calls = %d after second RunDue, want 2", calls)
	}
}

func TestTimerQueueClear(t *testing.T) {
	clock := newFakeClock()
	q := NewTimerQueue(clock)
	fired := false
	q.AfterFunc(time.Millisecond, func() { fired = true })
	q.Clear()

	clock.Advance(time.Second)
	if n := q.RunDue(); n != 0 || fired {
		t.Errorf("cleared timer fired (n=%d)", n)
	}
	if q.Len() != 0 {
		t.Errorf("Len = %d, want 0", q.Len())
	}
}
