package canvas

import "testing"

func TestWireColorForNotHubInvolved(t *testing.T) {
	if _, ok := DefaultStyle.WireColorFor(RoleProducer, false); ok {
		t.Fatal("expected ok=false when no hub is involved")
	}
}

func TestWireColorForHubProducerSideIsRed(t *testing.T) {
	color, ok := DefaultStyle.WireColorFor(RoleProducer, true)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if color != DefaultStyle.LinkProducer {
		t.Errorf("color = %q, want producer color %q", color, DefaultStyle.LinkProducer)
	}
}

func TestWireColorForHubConsumerSideIsGreen(t *testing.T) {
	color, ok := DefaultStyle.WireColorFor(RoleConsumer, true)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if color != DefaultStyle.LinkConsumer {
		t.Errorf("color = %q, want consumer color %q", color, DefaultStyle.LinkConsumer)
	}
}

func TestDefaultStylePaletteBitExact(t *testing.T) {
	want := map[string]string{
		"Background":     "#121316",
		"BlockOutline":   "#2EC27E",
		"BlockFill":      "#0E1B18",
		"BlockText":      "#B8C2CC",
		"BlockSelection": "#5DA9FF",
		"WireColor":      "#8D99A8",
		"DynamicPort":    "#D2B36A",
		"LinkProducer":   "#E55353",
		"LinkConsumer":   "#5CCB7A",
	}
	got := map[string]string{
		"Background":     DefaultStyle.Background,
		"BlockOutline":   DefaultStyle.BlockOutline,
		"BlockFill":      DefaultStyle.BlockFill,
		"BlockText":      DefaultStyle.BlockText,
		"BlockSelection": DefaultStyle.BlockSelection,
		"WireColor":      DefaultStyle.WireColor,
		"DynamicPort":    DefaultStyle.DynamicPort,
		"LinkProducer":   DefaultStyle.LinkProducer,
		"LinkConsumer":   DefaultStyle.LinkConsumer,
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}
