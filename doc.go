// Package boing is a squash-and-stretch desktop sprite for [Ebitengine].
//
// A boing widget is a borderless, always-on-top window showing a single
// sprite. Pressing a mouse button or a key squashes the sprite, releasing it
// lets the sprite spring back, and a short sound plays on every accepted
// press. While the sprite is still recoiling, a second press grabs it and
// dragging moves the whole window.
//
// # Quick start
//
// The simplest way to get going is [Run], which loads the YAML config,
// the character assets, and opens the window:
//
//	if err := boing.Run(boing.RunConfig{ConfigPath: "config.yml"}); err != nil {
//		log.Fatal(err)
//	}
//
// # Animation core
//
// The core is host independent. [NewFrameCache] precomputes every deformed
// frame of the press and release phases by sampling an easing [Curve],
// resizing the sprite with bilinear filtering, and binarizing the alpha with
// [Threshold]. An [Animator] owns the Idle/Pressing/Releasing state machine;
// it derives the displayed frame from elapsed monotonic time, so late or
// coalesced ticks never slow the animation down. Ticks are scheduled through
// a [Scheduler] and carry the session that scheduled them; a tick from an
// older session is dropped.
//
// A [Controller] turns pointer and key events into animator triggers and
// window drags. [Widget] bundles the pieces and exposes the outward entry
// points: [Widget.Summon], [Widget.TriggerPress], [Widget.TriggerRelease]
// and [Widget.CurrentFrame].
//
// # Characters
//
// A character is a directory holding a config.yml, the sprite image(s) and a
// sound. Missing files never stop the widget from starting: a placeholder
// image is generated and the sound is skipped.
//
// Edits to the config or the character directory are picked up while the
// widget runs when [RunConfig.Watch] is set; a right click reloads by hand.
//
// # Scripted input
//
// [LoadTestScript] parses a JSON list of press, drag, key, wait and
// screenshot steps. Pass the runner as [RunConfig.Script] and the host
// replays it one step per frame, which makes visual checks repeatable.
//
// [Ebitengine]: https://ebitengine.org
package boing
