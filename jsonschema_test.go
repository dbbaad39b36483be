package canvas

import "testing"

func TestMarshalUnmarshalRoundTripsBlocksWiresAndPorts(t *testing.T) {
	doc := NewDocument(8)
	a := doc.CreateBlock(SceneRect{X: 0, Y: 0, Width: 32, Height: 32}, true)
	a.Label = "alpha"
	a.SpecId = "spec-a"
	b := doc.CreateBlock(SceneRect{X: 200, Y: 0, Width: 32, Height: 32}, true)
	pa := a.AddPort(SideRight, 0.5, RoleProducer, "out")
	pb := b.AddPort(SideLeft, 0.5, RoleConsumer, "in")
	w := doc.CreateWire(AttachedEndpoint(PortRef{ItemID: a.id, PortID: pa}), AttachedEndpoint(PortRef{ItemID: b.id, PortID: pb}))
	w.ArrowPolicy = ArrowEnd
	w.ColorOverride = "#ff0000"

	view := &ViewState{Zoom: 1.5, PanX: 10, PanY: -5}

	data, err := MarshalJSON(doc, view)
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	doc2 := NewDocument(8)
	view2 := &ViewState{}
	if err := UnmarshalJSON(data, doc2, view2); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}

	if view2.Zoom != 1.5 || view2.PanX != 10 || view2.PanY != -5 {
		t.Errorf("view2 = %+v, want Zoom=1.5 Pan=(10,-5)", view2)
	}
	if len(doc2.Items()) != len(doc.Items()) {
		t.Fatalf("len(Items()) = %d, want %d", len(doc2.Items()), len(doc.Items()))
	}

	a2, ok := doc2.FindItem(a.id).(*Block)
	if !ok {
		t.Fatal("expected block a to round-trip by id")
	}
	if a2.Label != "alpha" || a2.SpecId != "spec-a" {
		t.Errorf("a2 = %+v, want Label=alpha SpecId=spec-a", a2)
	}

	var w2 *Wire
	for _, item := range doc2.Items() {
		if ww, ok := item.(*Wire); ok {
			w2 = ww
		}
	}
	if w2 == nil {
		t.Fatal("expected the wire to round-trip")
	}
	if w2.ArrowPolicy != ArrowEnd || w2.ColorOverride != "#ff0000" {
		t.Errorf("w2 = %+v, want ArrowEnd/#ff0000", w2)
	}
	if !w2.A.IsAttached() || w2.A.Attached.ItemID != a.id {
		t.Errorf("w2.A = %+v, want attached to block %v", w2.A, a.id)
	}
}

func TestUnmarshalRejectsUnsupportedSchemaVersion(t *testing.T) {
	doc := NewDocument(8)
	err := UnmarshalJSON([]byte(`{"schemaVersion":999,"view":{"zoom":1,"pan":{"x":0,"y":0}},"items":[]}`), doc, nil)
	if err == nil {
		t.Fatal("expected an error for an unsupported schema version")
	}
}

func TestUnmarshalAccumulatesErrorsAcrossBadItems(t *testing.T) {
	doc := NewDocument(8)
	data := `{"schemaVersion":1,"view":{"zoom":1,"pan":{"x":0,"y":0}},"items":[
		{"type":"block","id":"not-a-uuid"},
		{"type":"mystery"}
	]}`
	err := UnmarshalJSON([]byte(data), doc, nil)
	if err == nil {
		t.Fatal("expected an accumulated error for malformed items")
	}
}

func TestUnmarshalFreeEndpointRoundTrips(t *testing.T) {
	doc := NewDocument(8)
	w := doc.CreateWire(FreeEndpoint(ScenePoint{X: 1, Y: 2}), FreeEndpoint(ScenePoint{X: 3, Y: 4}))
	_ = w

	data, err := MarshalJSON(doc, nil)
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	doc2 := NewDocument(8)
	if err := UnmarshalJSON(data, doc2, nil); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	w2, ok := doc2.Items()[0].(*Wire)
	if !ok {
		t.Fatal("expected a wire item")
	}
	if w2.A.IsAttached() || w2.A.Free != (ScenePoint{X: 1, Y: 2}) {
		t.Errorf("w2.A = %+v, want free endpoint (1,2)", w2.A)
	}
}
