package canvas

import (
	"encoding/json"
	"fmt"
)

// scenarioStep represents a single action in a JSON-scripted test scenario.
// Grounded on testrunner.go's testStep: a flat action-tagged struct
// unmarshaled straight off the wire, no polymorphic step types.
type scenarioStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	W      float64 `json:"w,omitempty"`
	H      float64 `json:"h,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	ID     string  `json:"id,omitempty"`
	Label  string  `json:"label,omitempty"`
}

// scenarioScript is the top-level JSON structure for a test scenario.
type scenarioScript struct {
	Steps []scenarioStep `json:"steps"`
}

// Scenario sequences document operations for scripted tests: create
// blocks, move them, and undo/redo, without a pointer event layer in
// between; callers inspect the outcome through Block and the Document. Grounded on testrunner.go's TestRunner,
// generalized from frame-stepped input injection to direct document calls
// since the canvas engine has no render loop of its own.
type Scenario struct {
	steps  []scenarioStep
	blocks map[string]*Block
}

// LoadScenario parses a JSON scenario script.
func LoadScenario(jsonData []byte) (*Scenario, error) {
	var script scenarioScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse scenario: no steps")
	}
	return &Scenario{steps: script.Steps, blocks: make(map[string]*Block)}, nil
}

// Run executes every step against doc in order. Recognized actions:
// "createBlock" (x,y,w,h,id), "move" (id,toX,toY), "undo", "redo". Returns
// an error naming the first unrecognized action or failed operation.
func (s *Scenario) Run(doc *Document) error {
	for i, st := range s.steps {
		if err := s.runStep(doc, st); err != nil {
			return fmt.Errorf("scenario step %d (%s): %w", i, st.Action, err)
		}
	}
	return nil
}

func (s *Scenario) runStep(doc *Document, st scenarioStep) error {
	switch st.Action {
	case "createBlock":
		b := doc.CreateBlock(SceneRect{X: st.X, Y: st.Y, Width: st.W, Height: st.H}, true)
		if st.ID != "" {
			s.blocks[st.ID] = b
		}
		return nil

	case "move":
		b, ok := s.blocks[st.ID]
		if !ok {
			return fmt.Errorf("unknown block id %q", st.ID)
		}
		cmd := &MoveItemCommand{ItemID: b.id, From: b.Bounds.TopLeft(), To: ScenePoint{st.ToX, st.ToY}}
		if !doc.Commands().Do(doc, cmd) {
			return fmt.Errorf("move rejected for block %q", st.ID)
		}
		return nil

	case "undo":
		if !doc.Commands().Undo(doc) {
			return fmt.Errorf("undo had nothing to undo")
		}
		return nil

	case "redo":
		if !doc.Commands().Redo(doc) {
			return fmt.Errorf("redo had nothing to redo")
		}
		return nil

	default:
		return fmt.Errorf("unrecognized action %q", st.Action)
	}
}

// Block returns the block registered under id by a prior createBlock step.
func (s *Scenario) Block(id string) (*Block, bool) {
	b, ok := s.blocks[id]
	return b, ok
}
