package scrollfx

import (
	"encoding/json"
	"fmt"
	"time"
)

// scenarioStep is a single action in a scenario script.
type scenarioStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Card   int     `json:"card,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scenarioScript is the top-level JSON structure for a scenario.
type scenarioScript struct {
	Steps []scenarioStep `json:"steps"`
}

// Scenario sequences page events across frames: scrolling, resizing,
// pointer tilt and screenshots. The preview host replays scenarios for
// visual checks; tests replay them headlessly.
type Scenario struct {
	steps      []scenarioStep
	cursor     int
	waitCount  int
	done       bool
	screenshot func(label string)
}

// LoadScenario parses a JSON scenario.
func LoadScenario(jsonData []byte) (*Scenario, error) {
	var script scenarioScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse scenario: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "scroll", "scrollBy", "resize", "hover", "move", "leave", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse scenario: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Scenario{steps: script.Steps}, nil
}

// SetScreenshotFunc sets the handler for "screenshot" steps. Without one
// they are skipped.
func (s *Scenario) SetScreenshotFunc(fn func(label string)) {
	s.screenshot = fn
}

// Done reports whether every step has run.
func (s *Scenario) Done() bool {
	return s.done
}

// Step executes the scenario for one host frame: either one action or one
// frame of waiting.
func (s *Scenario) Step(page *VirtualPage, eng *Engine) {
	if s.done {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "scroll":
		page.ScrollTo(st.Y)
	case "scrollBy":
		page.ScrollBy(st.DY)
	case "resize":
		page.Resize(st.Width, st.Height)
	case "hover":
		eng.PointerEnter(st.Card)
	case "move":
		eng.PointerMove(st.Card, st.X, st.Y)
	case "leave":
		eng.PointerLeave(st.Card)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		if s.screenshot != nil {
			s.screenshot(st.Label)
		}
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 {
		s.done = true
	}
}

// RunScenario replays s against a headless page, advancing sched by one
// frame of length frame after every scenario step. It stops when the
// scenario is done or maxFrames have elapsed and returns the frame count.
func RunScenario(s *Scenario, page *VirtualPage, eng *Engine, sched *ManualScheduler, frame time.Duration, maxFrames int) int {
	n := 0
	for ; n < maxFrames && !s.Done(); n++ {
		s.Step(page, eng)
		sched.Step(frame)
	}
	return n
}
