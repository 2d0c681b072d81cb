package boing

import (
	"image"
	"image/color"
	"testing"
	"time"
)

type countingFocuser struct{ n int }

func (f *countingFocuser) Focus() { f.n++ }

func newTestWidget(t *testing.T) (*Widget, *fakeClock, *TimerQueue, *recordingSound, *countingFocuser) {
	t.Helper()
	clock := newFakeClock()
	q := NewTimerQueue(clock)
	snd := &recordingSound{}
	focus := &countingFocuser{}
	w := NewWidget(WidgetOptions{
		Asset:         testAsset(),
		Timing:        DefaultTiming(),
		Sound:         snd,
		Clock:         clock,
		Scheduler:     q,
		Focuser:       focus,
		ScreenshotDir: t.TempDir(),
	})
	return w, clock, q, snd, focus
}

func runFor(q *TimerQueue, clock *fakeClock, d time.Duration) {
	const step = time.Second / 120
	for ; d > 0; d -= step {
		clock.Advance(step)
		q.RunDue()
	}
}

func TestNewWidgetPlaysWelcome(t *testing.T) {
	w, clock, q, snd, _ := newTestWidget(t)

	if w.Phase() != PhaseReleasing {
		t.Fatalf("Phase = %v, want releasing", w.Phase())
	}
	if len(snd.calls) != 2 || snd.calls[1] != "play" {
		t.Errorf("sound calls = %v, want stop,play", snd.calls)
	}
	if w.Canvas() != (Canvas{Width: 16, Height: 16}) {
		t.Errorf("Canvas = %+v, want 16x16", w.Canvas())
	}

	runFor(q, clock, 1100*time.Millisecond)
	if w.Phase() != PhaseIdle || w.CurrentFrame() != w.Asset().Resting {
		t.Error("welcome should settle on the resting image")
	}
}

func TestNewWidgetDefaults(t *testing.T) {
	w := NewWidget(WidgetOptions{Timing: DefaultTiming()})
	if w.Asset() == nil || w.Asset().Resting.Bounds().Dx() != placeholderSize {
		t.Error("nil asset should use the placeholder")
	}
	if w.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q", w.ScreenshotDir)
	}
}

func TestWidgetSummon(t *testing.T) {
	w, clock, q, snd, focus := newTestWidget(t)
	runFor(q, clock, 2*time.Second)
	calls := len(snd.calls)

	w.Summon()
	if focus.n != 1 {
		t.Errorf("Focus calls = %d, want 1", focus.n)
	}
	if w.Phase() != PhaseReleasing {
		t.Errorf("Phase = %v, want releasing", w.Phase())
	}
	if len(snd.calls) != calls+2 {
		t.Errorf("Summon should stop and replay the sound, calls = %v", snd.calls[calls:])
	}
}

func TestWidgetReload(t *testing.T) {
	w, clock, q, _, _ := newTestWidget(t)
	runFor(q, clock, 100*time.Millisecond)
	w.TriggerPress()
	session := w.Animator().Session()

	big := &Asset{Resting: solidImage(20, 12, color.NRGBA{B: 0xFF, A: 0xFF})}
	big.Active = big.Resting
	timing := DefaultTiming()
	timing.PressDuration = 0.5
	newSound := &recordingSound{}
	w.Reload(big, timing, newSound)

	if w.Canvas() != (Canvas{Width: 40, Height: 24}) {
		t.Errorf("Canvas = %+v, want 40x24", w.Canvas())
	}
	if w.Frames().Press.Len() != 30 {
		t.Errorf("press frames = %d, want 30", w.Frames().Press.Len())
	}
	if w.Phase() != PhaseIdle || w.Animator().Session() <= session {
		t.Error("Reload should invalidate the running session")
	}
	if w.CurrentFrame() != big.Resting {
		t.Error("Reload should show the new resting image")
	}

	runFor(q, clock, 100*time.Millisecond)
	w.TriggerPress()
	if len(newSound.calls) == 0 {
		t.Error("press after Reload should use the new sound")
	}
}

func TestWidgetScreenshot(t *testing.T) {
	w, _, _, _, _ := newTestWidget(t)
	path, err := w.Screenshot("welcome frame")
	if err != nil {
		t.Fatalf("Screenshot: %v", err)
	}
	img := decodePNG(t, path)
	if img.Bounds() != image.Rect(0, 0, 16, 16) {
		t.Errorf("screenshot bounds = %v, want 16x16", img.Bounds())
	}
}

func TestNewWidgetDebugLogsFrames(t *testing.T) {
	w := NewWidget(WidgetOptions{Asset: testAsset(), Timing: DefaultTiming(), Debug: true})
	if w.Frames().Press.Len() != 15 {
		t.Errorf("press frames = %d, want 15", w.Frames().Press.Len())
	}
}
