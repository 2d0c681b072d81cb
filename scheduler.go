package boing

import "time"

// Clock reports the current time. Elapsed time is always measured with
// time.Time.Sub, which uses the monotonic reading when present.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Scheduler runs fn once, no earlier than d from now, on the host's loop.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

type timer struct {
	due time.Time
	seq uint64
	fn  func()
}

// TimerQueue is a single-threaded cooperative Scheduler. Callbacks only run
// inside RunDue, so they never run concurrently with each other or with the
// code that calls RunDue. It is not safe for concurrent use.
type TimerQueue struct {
	clock  Clock
	timers []timer
	seq    uint64
}

// NewTimerQueue creates an empty queue reading time from clock.
func NewTimerQueue(clock Clock) *TimerQueue {
	return &TimerQueue{clock: clock}
}

// AfterFunc queues fn to run at now+d.
func (q *TimerQueue) AfterFunc(d time.Duration, fn func()) {
	q.seq++
	q.timers = append(q.timers, timer{due: q.clock.Now().Add(d), seq: q.seq, fn: fn})
}

// Len returns the number of pending callbacks.
func (q *TimerQueue) Len() int { return len(q.timers) }

// RunDue fires every callback that is due, earliest first and in scheduling
// order for equal due times. Callbacks queued while RunDue is running wait
// for the next call. It returns the number of callbacks fired.
func (q *TimerQueue) RunDue() int {
	now := q.clock.Now()
	limit := q.seq
	fired := 0
	for {
		i := q.next(now, limit)
		if i < 0 {
			return fired
		}
		t := q.timers[i]
		copy(q.timers[i:], q.timers[i+1:])
		q.timers[len(q.timers)-1] = timer{}
		q.timers = q.timers[:len(q.timers)-1]

		t.fn()
		fired++
	}
}

// next returns the index of the earliest due timer with seq <= limit, or -1.
func (q *TimerQueue) next(now time.Time, limit uint64) int {
	best := -1
	for i := range q.timers {
		t := &q.timers[i]
		if t.seq > limit || t.due.After(now) {
			continue
		}
		if best < 0 || t.due.Before(q.timers[best].due) ||
			(t.due.Equal(q.timers[best].due) && t.seq < q.timers[best].seq) {
			best = i
		}
	}
	return best
}

// Clear drops every pending callback.
func (q *TimerQueue) Clear() {
	clear(q.timers)
	q.timers = q.timers[:0]
}
