package koipond

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string `yaml:"action"`
	Label  string `yaml:"label,omitempty"`
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
	Frames int    `yaml:"frames,omitempty"`
}

// testScript is the top-level structure for a test script.
type testScript struct {
	Steps []testStep `yaml:"steps"`
}

// testHost is the part of the host a TestRunner drives.
type testHost interface {
	Screenshot(label string)
	Resize(w, h int)
	Unmount()
}

// TestRunner sequences resizes, screenshots and unmounts across frames for
// automated visual testing.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a test script. Scripts are YAML; JSON is accepted as
// well since it is a subset.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "wait", "screenshot", "unmount":
		case "resize":
			if st.Width <= 0 || st.Height <= 0 {
				return nil, fmt.Errorf("parse test script: step %d: resize needs a positive width and height", i)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *TestRunner) step(h testHost) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		if r.waitCount == 0 && r.cursor >= len(r.steps) {
			r.done = true
		}
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
		h.Screenshot(st.Label)
	case "resize":
		h.Resize(st.Width, st.Height)
	case "unmount":
		h.Unmount()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
