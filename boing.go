package boing

import "image"

// Phase is the animation's current named mode.
type Phase uint8

const (
	PhaseIdle      Phase = iota // at rest, or holding the fully pressed pose
	PhasePressing               // playing the press sequence
	PhaseReleasing              // playing the release (recoil) sequence
)

// String returns the lower-case name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePressing:
		return "pressing"
	case PhaseReleasing:
		return "releasing"
	default:
		return "unknown"
	}
}

// FrameSink receives the frame to display. Hosts blit the frame bottom-center
// inside the widget's [Canvas].
type FrameSink interface {
	ShowFrame(frame *image.NRGBA)
}

// WindowMover reads and sets the widget's absolute screen position.
type WindowMover interface {
	WindowPosition() image.Point
	SetWindowPosition(p image.Point)
}

// Focuser brings the widget window to the front.
type Focuser interface {
	Focus()
}

// Sound is a fire-and-forget sound cue. Implementations must never block and
// must swallow playback failures.
type Sound interface {
	Play()
	Stop()
}

// silentSound is used when no sound could be loaded.
type silentSound struct{}

func (silentSound) Play() {}
func (silentSound) Stop() {}

type nopSink struct{}

func (nopSink) ShowFrame(*image.NRGBA) {}

type nopWindow struct{}

func (nopWindow) WindowPosition() image.Point   { return image.Point{} }
func (nopWindow) SetWindowPosition(image.Point) {}
func (nopWindow) Focus()                        {}
