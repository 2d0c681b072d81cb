package boing

import (
	"image"
	"math"
	"time"
)

// AnimatorOptions wires an Animator to its collaborators. Nil fields get
// no-op implementations, except Clock (SystemClock) and Scheduler (a
// TimerQueue on Clock, reachable through Animator.Queue).
type AnimatorOptions struct {
	Clock     Clock
	Scheduler Scheduler
	Sink      FrameSink
	Sound     Sound
}

// Animator is the press/release state machine.
//
// A phase entry starts a new session. Every scheduled tick carries the
// session it was scheduled under and does nothing if the animator has moved
// on, so two animation loops never fight over the displayed frame. The frame
// shown on a tick is floor(elapsed*fps), never a per-tick counter, which
// keeps the speed right when ticks arrive late or are coalesced.
type Animator struct {
	clock Clock
	sched Scheduler
	queue *TimerQueue
	sink  FrameSink
	sound Sound

	timing TimingConfig
	frames *FrameCache

	phase      Phase
	session    uint64
	phaseStart time.Time
	frame      int
	held       bool
	current    *image.NRGBA
}

// NewAnimator creates an idle animator showing frames.Resting.
func NewAnimator(frames *FrameCache, timing TimingConfig, opts AnimatorOptions) *Animator {
	a := &Animator{
		clock: opts.Clock,
		sched: opts.Scheduler,
		sink:  opts.Sink,
		sound: opts.Sound,
	}
	if a.clock == nil {
		a.clock = SystemClock{}
	}
	if a.sched == nil {
		a.queue = NewTimerQueue(a.clock)
		a.sched = a.queue
	} else if q, ok := a.sched.(*TimerQueue); ok {
		a.queue = q
	}
	if a.sink == nil {
		a.sink = nopSink{}
	}
	if a.sound == nil {
		a.sound = silentSound{}
	}
	a.Reset(frames, timing)
	return a
}

// Reset swaps in a new frame cache and timing. The current session is
// invalidated, the animator goes idle and shows the resting image.
func (a *Animator) Reset(frames *FrameCache, timing TimingConfig) {
	a.frames = frames
	a.timing = timing.normalized()
	a.session++
	a.phase = PhaseIdle
	a.phaseStart = a.clock.Now()
	a.frame = 0
	a.held = false
	a.show(frames.Resting)
}

// SetSound replaces the sound cue. Nil silences the animator.
func (a *Animator) SetSound(s Sound) {
	if s == nil {
		s = silentSound{}
	}
	a.sound = s
}

// Phase returns the current phase.
func (a *Animator) Phase() Phase { return a.phase }

// Session returns the live session token.
func (a *Animator) Session() uint64 { return a.session }

// Held reports whether a key or button is currently held.
func (a *Animator) Held() bool { return a.held }

// Frame returns the frame index chosen by the most recent tick.
func (a *Animator) Frame() int { return a.frame }

// CurrentFrame returns the image most recently handed to the sink.
func (a *Animator) CurrentFrame() *image.NRGBA { return a.current }

// Timing returns the active timing config.
func (a *Animator) Timing() TimingConfig { return a.timing }

// Frames returns the active frame cache.
func (a *Animator) Frames() *FrameCache { return a.frames }

// Queue returns the animator's own TimerQueue, or nil when the Scheduler
// passed in is not a *TimerQueue.
func (a *Animator) Queue() *TimerQueue { return a.queue }

// TriggerPress starts the press phase. It is ignored while a key or button
// is already held and while the cooldown since the last phase entry has not
// elapsed. A press accepted mid-animation replaces the running phase.
func (a *Animator) TriggerPress() {
	if a.held {
		return
	}
	now := a.clock.Now()
	if now.Sub(a.phaseStart) < a.cooldown() {
		return
	}
	a.held = true
	a.begin(PhasePressing, now)
	a.PlaySound()
	a.tick(a.session)
}

// TriggerRelease ends a hold. While pressing it only clears the held flag;
// the press phase then chains into the release phase when it completes.
// From any other phase it starts the release phase. It is ignored when
// nothing is held.
func (a *Animator) TriggerRelease() {
	if !a.held {
		return
	}
	a.held = false
	if a.phase == PhasePressing {
		return
	}
	a.PlayRelease()
}

// PlayRelease unconditionally starts the release phase.
func (a *Animator) PlayRelease() {
	a.begin(PhaseReleasing, a.clock.Now())
	a.tick(a.session)
}

// PlaySound plays the sound cue, stopping earlier playback first unless echo
// is allowed.
func (a *Animator) PlaySound() {
	if !a.timing.Echo {
		a.sound.Stop()
	}
	a.sound.Play()
}

func (a *Animator) begin(p Phase, now time.Time) {
	a.session++
	a.phase = p
	a.phaseStart = now
	a.frame = 0
}

func (a *Animator) tick(session uint64) {
	if session != a.session {
		return
	}
	switch a.phase {
	case PhasePressing:
		a.tickPress(session)
	case PhaseReleasing:
		a.tickRelease(session)
	}
}

func (a *Animator) tickPress(session uint64) {
	seq := a.frames.Press
	a.frame = a.elapsedFrame()
	if a.frame >= seq.Len() {
		last := seq.Last()
		if last == nil {
			last = a.frames.Active
		}
		a.show(last)
		a.phase = PhaseIdle
		if !a.held {
			a.PlayRelease()
		}
		return
	}
	a.show(seq[a.frame])
	a.schedule(session)
}

func (a *Animator) tickRelease(session uint64) {
	seq := a.frames.Release
	a.frame = a.elapsedFrame()
	if a.frame >= seq.Len() {
		a.show(a.frames.Resting)
		a.phase = PhaseIdle
		return
	}
	a.show(seq[a.frame])
	a.schedule(session)
}

// schedule queues the next tick at twice the frame rate.
func (a *Animator) schedule(session uint64) {
	a.sched.AfterFunc(a.TickInterval(), func() { a.tick(session) })
}

// TickInterval is half a frame: ticks run at twice the frame rate so the
// displayed frame tracks the wall clock closely.
func (a *Animator) TickInterval() time.Duration {
	return time.Second / time.Duration(2*a.timing.FPS)
}

func (a *Animator) elapsedFrame() int {
	elapsed := a.clock.Now().Sub(a.phaseStart).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return int(math.Floor(elapsed * float64(a.timing.FPS)))
}

func (a *Animator) cooldown() time.Duration {
	return time.Duration(a.timing.Cooldown * float64(time.Second))
}

func (a *Animator) show(img *image.NRGBA) {
	if img == nil {
		return
	}
	a.current = img
	a.sink.ShowFrame(img)
}
