package boing

import (
	"image"
	"math"
)

type syntheticKind uint8

const (
	syntheticPointerDown syntheticKind = iota
	syntheticPointerMove
	syntheticPointerUp
	syntheticKeyDown
	syntheticKeyUp
)

// syntheticEvent is a single injected input event. Positions are window-local,
// like real cursor positions.
type syntheticEvent struct {
	kind syntheticKind
	pos  image.Point
}

func (c *Controller) inject(kind syntheticKind, x, y int) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{kind: kind, pos: image.Pt(x, y)})
}

// InjectPress queues a left button press at (x, y). The event is consumed on
// the next Poll.
func (c *Controller) InjectPress(x, y int) { c.inject(syntheticPointerDown, x, y) }

// InjectMove queues a pointer move to (x, y) with the button held.
func (c *Controller) InjectMove(x, y int) { c.inject(syntheticPointerMove, x, y) }

// InjectRelease queues a left button release.
func (c *Controller) InjectRelease(x, y int) { c.inject(syntheticPointerUp, x, y) }

// InjectKeyDown queues a key press.
func (c *Controller) InjectKeyDown() { c.inject(syntheticKeyDown, 0, 0) }

// InjectKeyUp queues a key release.
func (c *Controller) InjectKeyUp() { c.inject(syntheticKeyUp, 0, 0) }

// InjectClick queues a press followed by a release at the same position.
// Consumes two polls.
func (c *Controller) InjectClick(x, y int) {
	c.InjectPress(x, y)
	c.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 moves stepping
// linearly toward and ending on (toX, toY), and a release. The sequence
// consumes frames polls; the minimum is 2.
func (c *Controller) InjectDrag(fromX, fromY, toX, toY, frames int) {
	if frames < 2 {
		frames = 2
	}
	c.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := fromX + int(math.Round(float64(toX-fromX)*t))
		y := fromY + int(math.Round(float64(toY-fromY)*t))
		c.InjectMove(x, y)
	}
	c.InjectRelease(toX, toY)
}

// Pending returns the number of queued synthetic events.
func (c *Controller) Pending() int { return len(c.injectQueue) }

// processInjected pops and dispatches one synthetic event. It reports whether
// an event was consumed.
func (c *Controller) processInjected() bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	evt := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]

	switch evt.kind {
	case syntheticPointerDown:
		c.PointerDown(evt.pos)
	case syntheticPointerMove:
		c.PointerMove(evt.pos)
	case syntheticPointerUp:
		c.PointerUp()
	case syntheticKeyDown:
		c.KeyDown()
	case syntheticKeyUp:
		c.KeyUp()
	}
	c.lastCursor = evt.pos
	return true
}
