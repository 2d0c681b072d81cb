package boing

import (
	"image"
	"math"
	"sync"
	"time"

	"golang.org/x/image/draw"
)

// maxFrameDim caps a deformed frame's side so a runaway curve cannot
// allocate an enormous image.
const maxFrameDim = 1 << 14

// FrameSequence is an ordered list of deformed frames, one per discrete time
// step of a phase. A sequence is immutable once built.
type FrameSequence []*image.NRGBA

// Len returns the number of frames.
func (s FrameSequence) Len() int { return len(s) }

// At returns frame i, or nil if i is out of range.
func (s FrameSequence) At(i int) *image.NRGBA {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}

// Last returns the final frame, or nil for an empty sequence.
func (s FrameSequence) Last() *image.NRGBA {
	return s.At(len(s) - 1)
}

// FrameCount returns the number of frames a phase of the given duration has
// at fps frames per second: round(duration*fps). Non-positive inputs yield 0.
func FrameCount(duration float64, fps int) int {
	if fps <= 0 || !(duration > 0) {
		return 0
	}
	return int(math.Round(duration * float64(fps)))
}

// BuildSequence samples curve at t = frame/frameCount for every frame in
// [0, frameCount), resizes src by the resulting factors with bilinear
// filtering, and thresholds each result. frameCount <= 0 yields an empty
// sequence, which makes the phase complete instantly.
func BuildSequence(src *image.NRGBA, curve Curve, frameCount int) FrameSequence {
	if frameCount <= 0 || src == nil {
		return FrameSequence{}
	}

	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	seq := make(FrameSequence, 0, frameCount)
	for frame := 0; frame < frameCount; frame++ {
		t := float64(frame) / float64(frameCount)
		xs, ys := curve(t)
		resized := Resize(src, scaledDim(w, xs), scaledDim(h, ys))
		seq = append(seq, Threshold(resized, DefaultAlphaCutoff))
	}
	return seq
}

// scaledDim returns round(n*scale) clamped to [1, maxFrameDim].
func scaledDim(n int, scale float64) int {
	d := math.Round(float64(n) * scale)
	switch {
	case math.IsNaN(d), d < 1:
		return 1
	case d > maxFrameDim:
		return maxFrameDim
	default:
		return int(d)
	}
}

// Resize scales src to w x h with bilinear filtering. Dimensions below 1 are
// clamped to 1.
func Resize(src image.Image, w, h int) *image.NRGBA {
	w = max(w, 1)
	h = max(h, 1)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// FrameCache holds every frame the animator can display for one
// (asset, timing) pair. It never evicts; a new cache is built when the asset
// or the timing changes.
type FrameCache struct {
	Resting *image.NRGBA  // shown when idle after a release
	Active  *image.NRGBA  // source of both deformed sequences
	Press   FrameSequence // deforms Active with the press curve
	Release FrameSequence // deforms Active back to rest

	// BuildTime is how long NewFrameCache took.
	BuildTime time.Duration
}

// NewFrameCache builds the press and release sequences for asset under
// timing. Both sequences are generated in parallel; the call returns once
// both are complete.
func NewFrameCache(asset *Asset, timing TimingConfig) *FrameCache {
	timing = timing.normalized()
	pressCurve, releaseCurve := timing.Easing.Curves()

	c := &FrameCache{Resting: asset.Resting, Active: asset.Active}
	if c.Active == nil {
		c.Active = c.Resting
	}

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.Press = BuildSequence(c.Active, pressCurve, FrameCount(timing.PressDuration, timing.FPS))
	}()
	go func() {
		defer wg.Done()
		c.Release = BuildSequence(c.Active, releaseCurve, FrameCount(timing.ReleaseDuration, timing.FPS))
	}()
	wg.Wait()
	c.BuildTime = time.Since(start)
	return c
}
