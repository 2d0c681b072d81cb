package boing

import (
	"image"
	"log"
)

// WidgetOptions configures a Widget. Asset nil uses PlaceholderAsset; nil
// collaborators get no-op implementations.
type WidgetOptions struct {
	Asset  *Asset
	Timing TimingConfig
	Sound  Sound

	Clock     Clock
	Scheduler Scheduler
	Sink      FrameSink
	Mover     WindowMover
	Focuser   Focuser

	// Debug logs frame cache build statistics.
	Debug bool

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
}

// Widget owns one sprite's asset, timing, frame cache, animator and input
// controller. There is no global state; every widget is independent.
type Widget struct {
	asset   *Asset
	frames  *FrameCache
	anim    *Animator
	input   *Controller
	canvas  Canvas
	focuser Focuser
	debug   bool

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
}

// NewWidget builds the frame cache, wires the animator and controller, and
// plays the welcome: the sound plus a release animation.
func NewWidget(opts WidgetOptions) *Widget {
	if opts.Asset == nil {
		opts.Asset = PlaceholderAsset()
	}
	if opts.Focuser == nil {
		opts.Focuser = nopWindow{}
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = "screenshots"
	}

	w := &Widget{
		asset:         opts.Asset,
		focuser:       opts.Focuser,
		debug:         opts.Debug,
		ScreenshotDir: opts.ScreenshotDir,
	}
	w.frames = w.buildFrames(opts.Asset, opts.Timing)
	w.canvas = NewCanvas(opts.Asset.Resting)
	w.anim = NewAnimator(w.frames, opts.Timing, AnimatorOptions{
		Clock:     opts.Clock,
		Scheduler: opts.Scheduler,
		Sink:      opts.Sink,
		Sound:     opts.Sound,
	})
	w.input = NewController(w.anim, opts.Mover)

	w.anim.PlaySound()
	w.anim.PlayRelease()
	return w
}

func (w *Widget) buildFrames(asset *Asset, timing TimingConfig) *FrameCache {
	frames := NewFrameCache(asset, timing)
	if w.debug {
		debugLogFrames(frames)
	}
	return frames
}

// Summon brings the window to the front and replays the release animation
// with its sound.
func (w *Widget) Summon() {
	w.focuser.Focus()
	w.anim.PlaySound()
	w.anim.PlayRelease()
}

// TriggerPress presses the sprite as if a key went down.
func (w *Widget) TriggerPress() { w.anim.TriggerPress() }

// TriggerRelease releases the sprite as if a key went up.
func (w *Widget) TriggerRelease() { w.anim.TriggerRelease() }

// CurrentFrame returns the frame currently on display.
func (w *Widget) CurrentFrame() *image.NRGBA { return w.anim.CurrentFrame() }

// Phase returns the animator's phase.
func (w *Widget) Phase() Phase { return w.anim.Phase() }

// Canvas returns the window canvas for the current asset.
func (w *Widget) Canvas() Canvas { return w.canvas }

// Asset returns the current asset.
func (w *Widget) Asset() *Asset { return w.asset }

// Frames returns the current frame cache.
func (w *Widget) Frames() *FrameCache { return w.frames }

// Animator returns the widget's state machine.
func (w *Widget) Animator() *Animator { return w.anim }

// Input returns the widget's input controller.
func (w *Widget) Input() *Controller { return w.input }

// Reload swaps the asset and timing. The running session is invalidated and
// the cache rebuilt; ticks still in flight for the old session do nothing.
// A nil sound keeps the current one.
func (w *Widget) Reload(asset *Asset, timing TimingConfig, sound Sound) {
	if asset == nil {
		asset = PlaceholderAsset()
	}
	w.asset = asset
	w.frames = w.buildFrames(asset, timing)
	w.canvas = NewCanvas(asset.Resting)
	if sound != nil {
		w.anim.SetSound(sound)
	}
	w.anim.Reset(w.frames, timing)
	log.Printf("[boing] reloaded: canvas %dx%d, %d press / %d release frames",
		w.canvas.Width, w.canvas.Height, w.frames.Press.Len(), w.frames.Release.Len())
}
