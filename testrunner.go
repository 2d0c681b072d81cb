package boing

import (
	"encoding/json"
	"fmt"
	"log"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	FromX  int    `json:"fromX,omitempty"`
	FromY  int    `json:"fromY,omitempty"`
	ToX    int    `json:"toX,omitempty"`
	ToY    int    `json:"toY,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

// TestRunner sequences injected input and screenshots across frames for
// automated visual checks of a widget. Call Step once per frame before the
// controller polls input.
type TestRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON input script. Supported actions: press,
// move, release, click, drag, keydown, keyup, summon, wait, screenshot.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame.
func (r *TestRunner) Step(w *Widget) {
	if r.done {
		return
	}
	in := w.Input()
	if in.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		if _, err := w.Screenshot(st.Label); err != nil {
			log.Printf("[boing] test script: %v", err)
		}
	case "press":
		in.InjectPress(st.X, st.Y)
	case "move":
		in.InjectMove(st.X, st.Y)
	case "release":
		in.InjectRelease(st.X, st.Y)
	case "click":
		in.InjectClick(st.X, st.Y)
	case "drag":
		in.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "keydown":
		in.InjectKeyDown()
	case "keyup":
		in.InjectKeyUp()
	case "summon":
		w.Summon()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	default:
		log.Printf("[boing] test script: unknown action %q", st.Action)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && in.Pending() == 0 {
		r.done = true
	}
}
