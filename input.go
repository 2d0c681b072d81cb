package boing

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DragState tracks a window drag. Offset is the pointer position, relative to
// the window's top-left corner, captured when the drag was armed.
type DragState struct {
	Dragging bool
	Offset   image.Point
}

// InputSource is one frame of polled input. ebitenInput reads Ebitengine's
// global input state; tests supply their own.
type InputSource interface {
	CursorPosition() (x, y int)
	IsMouseButtonJustPressed(b ebiten.MouseButton) bool
	IsMouseButtonJustReleased(b ebiten.MouseButton) bool
	AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key
	AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key
}

type ebitenInput struct{}

func (ebitenInput) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (ebitenInput) IsMouseButtonJustPressed(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(b)
}

func (ebitenInput) IsMouseButtonJustReleased(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustReleased(b)
}

func (ebitenInput) AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustPressedKeys(keys)
}

func (ebitenInput) AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustReleasedKeys(keys)
}

// Controller translates pointer and key events into animator triggers and
// window drags.
type Controller struct {
	anim  *Animator
	mover WindowMover
	drag  DragState

	// OnContextMenu is called with the cursor position on a right click.
	OnContextMenu func(local image.Point)

	lastCursor  image.Point
	keys        []ebiten.Key
	injectQueue []syntheticEvent
}

// NewController creates a controller driving anim and moving the window
// through mover.
func NewController(anim *Animator, mover WindowMover) *Controller {
	if mover == nil {
		mover = nopWindow{}
	}
	return &Controller{anim: anim, mover: mover}
}

// Drag returns the current drag state.
func (c *Controller) Drag() DragState { return c.drag }

// PointerDown handles a left button press at local (window) coordinates. A
// press that lands while the sprite is recoiling also arms a drag.
func (c *Controller) PointerDown(local image.Point) {
	if c.anim.Phase() == PhaseReleasing {
		c.drag = DragState{Dragging: true, Offset: local}
	}
	c.anim.TriggerPress()
}

// PointerMove moves the window while a drag is armed so the pointer keeps
// its grab offset.
func (c *Controller) PointerMove(local image.Point) {
	if !c.drag.Dragging {
		return
	}
	c.mover.SetWindowPosition(c.mover.WindowPosition().Add(local.Sub(c.drag.Offset)))
}

// PointerUp disarms any drag and releases.
func (c *Controller) PointerUp() {
	c.drag = DragState{}
	c.anim.TriggerRelease()
}

// KeyDown presses.
func (c *Controller) KeyDown() { c.anim.TriggerPress() }

// KeyUp releases.
func (c *Controller) KeyUp() { c.anim.TriggerRelease() }

// Poll reads one frame of input from src and dispatches it. A queued
// synthetic event, if any, replaces real input for the frame.
func (c *Controller) Poll(src InputSource) {
	if c.processInjected() {
		return
	}

	x, y := src.CursorPosition()
	cursor := image.Pt(x, y)

	if src.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		c.PointerDown(cursor)
	} else if cursor != c.lastCursor {
		c.PointerMove(cursor)
	}
	c.lastCursor = cursor

	if src.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		c.PointerUp()
	}
	if src.IsMouseButtonJustPressed(ebiten.MouseButtonRight) && c.OnContextMenu != nil {
		c.OnContextMenu(cursor)
	}

	c.keys = src.AppendJustPressedKeys(c.keys[:0])
	for range c.keys {
		c.KeyDown()
	}
	c.keys = src.AppendJustReleasedKeys(c.keys[:0])
	for range c.keys {
		c.KeyUp()
	}
}
