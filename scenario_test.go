package canvas

import "testing"

func TestScenarioRunsCreateMoveUndoRedo(t *testing.T) {
	script := []byte(`{"steps":[
		{"action":"createBlock","id":"b1","x":0,"y":0,"w":16,"h":16},
		{"action":"move","id":"b1","toX":80,"toY":0},
		{"action":"undo"},
		{"action":"redo"}
	]}`)

	sc, err := LoadScenario(script)
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}

	doc := NewDocument(8)
	if err := sc.Run(doc); err != nil {
		t.Fatalf("Run: %v", err)
	}

	b, ok := sc.Block("b1")
	if !ok {
		t.Fatal("expected block b1 registered")
	}
	if b.Bounds.X != 80 {
		t.Errorf("Bounds.X = %v, want 80 after move/undo/redo", b.Bounds.X)
	}
}

func TestScenarioUndoWithNothingToUndoErrors(t *testing.T) {
	script := []byte(`{"steps":[{"action":"undo"}]}`)
	sc, err := LoadScenario(script)
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	doc := NewDocument(8)
	if err := sc.Run(doc); err == nil {
		t.Fatal("expected an error undoing with an empty undo stack")
	}
}

func TestScenarioUnrecognizedActionErrors(t *testing.T) {
	script := []byte(`{"steps":[{"action":"fly"}]}`)
	sc, err := LoadScenario(script)
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	doc := NewDocument(8)
	if err := sc.Run(doc); err == nil {
		t.Fatal("expected an error for an unrecognized action")
	}
}

func TestLoadScenarioRejectsEmptySteps(t *testing.T) {
	if _, err := LoadScenario([]byte(`{"steps":[]}`)); err == nil {
		t.Fatal("expected an error for a scenario with no steps")
	}
}

func TestScenarioMoveUnknownBlockIdErrors(t *testing.T) {
	script := []byte(`{"steps":[{"action":"move","id":"ghost","toX":1,"toY":1}]}`)
	sc, err := LoadScenario(script)
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	doc := NewDocument(8)
	if err := sc.Run(doc); err == nil {
		t.Fatal("expected an error moving an unregistered block id")
	}
}
