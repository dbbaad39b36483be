package canvas

import (
	"encoding/json"
	"fmt"
)

// jsonDocument is the schema v1 document envelope.
type jsonDocument struct {
	SchemaVersion int             `json:"schemaVersion"`
	View          jsonView        `json:"view"`
	Metadata      json.RawMessage `json:"metadata,omitempty"`
	Items         []json.RawMessage `json:"items"`
}

type jsonView struct {
	Zoom float64 `json:"zoom"`
	Pan  jsonXY  `json:"pan"`
}

type jsonXY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type jsonEdgeInsets struct {
	L float64 `json:"l"`
	T float64 `json:"t"`
	R float64 `json:"r"`
	B float64 `json:"b"`
}

type jsonBlockStyle struct {
	Outline string `json:"outline,omitempty"`
	Fill    string `json:"fill,omitempty"`
	Label   string `json:"label,omitempty"`
}

type jsonSymbolStyle struct {
	TextColor string  `json:"textColor,omitempty"`
	PointSize float64 `json:"pointSize,omitempty"`
	Bold      bool    `json:"bold,omitempty"`
}

type jsonContent struct {
	Type   string          `json:"type"`
	Symbol string          `json:"symbol,omitempty"`
	Style  jsonSymbolStyle `json:"style,omitempty"`
}

type jsonPort struct {
	ID   string `json:"id"`
	Side string `json:"side"`
	Role string `json:"role"`
	T    float64 `json:"t"`
	Name string `json:"name,omitempty"`
}

type jsonBlock struct {
	Type                     string          `json:"type"`
	ID                       string          `json:"id"`
	Bounds                   jsonBounds      `json:"bounds"`
	Movable                  bool            `json:"movable"`
	Deletable                bool            `json:"deletable"`
	Label                    string          `json:"label,omitempty"`
	SpecID                   string          `json:"specId,omitempty"`
	ShowPorts                bool            `json:"showPorts"`
	AllowMultiplePorts       bool            `json:"allowMultiplePorts"`
	AutoOppositeProducerPort bool            `json:"autoOppositeProducerPort"`
	ShowPortLabels           bool            `json:"showPortLabels"`
	AutoPortLayout           bool            `json:"autoPortLayout"`
	PortSnapStep             float64         `json:"portSnapStep"`
	IsLinkHub                bool            `json:"isLinkHub"`
	KeepoutMargin            float64         `json:"keepoutMargin"`
	ContentPadding           jsonEdgeInsets  `json:"contentPadding"`
	CornerRadius             float64         `json:"cornerRadius"`
	AutoPortRole             *string         `json:"autoPortRole,omitempty"`
	Style                    *jsonBlockStyle `json:"style,omitempty"`
	Content                  *jsonContent    `json:"content,omitempty"`
	Ports                    []jsonPort      `json:"ports"`
}

type jsonBounds struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type jsonEndpoint struct {
	Free     *jsonXY       `json:"free,omitempty"`
	Attached *jsonPortRef  `json:"attached,omitempty"`
}

type jsonPortRef struct {
	ItemID string `json:"itemId"`
	PortID string `json:"portId"`
}

type jsonWire struct {
	Type          string        `json:"type"`
	ID            string        `json:"id"`
	A             jsonEndpoint  `json:"a"`
	B             jsonEndpoint  `json:"b"`
	ArrowPolicy   string        `json:"arrowPolicy"`
	ColorOverride string        `json:"colorOverride,omitempty"`
	RouteOverride []jsonXYInt   `json:"routeOverride,omitempty"`
}

type jsonXYInt struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// MarshalJSON serializes doc to the schema v1 document envelope.
func MarshalJSON(doc *Document, view *ViewState) ([]byte, error) {
	jd := jsonDocument{SchemaVersion: SchemaVersion}
	if view != nil {
		jd.View = jsonView{Zoom: view.Zoom, Pan: jsonXY{view.PanX, view.PanY}}
	} else {
		jd.View = jsonView{Zoom: 1}
	}

	for _, item := range doc.Items() {
		var raw json.RawMessage
		var err error
		switch v := item.(type) {
		case *Block:
			raw, err = json.Marshal(blockToJSON(v))
		case *Wire:
			raw, err = json.Marshal(wireToJSON(v))
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("marshal item %s: %w", item.ID(), err)
		}
		jd.Items = append(jd.Items, raw)
	}

	return json.Marshal(jd)
}

func blockToJSON(b *Block) jsonBlock {
	jb := jsonBlock{
		Type:                     "block",
		ID:                       b.id.String(),
		Bounds:                   jsonBounds{b.Bounds.X, b.Bounds.Y, b.Bounds.Width, b.Bounds.Height},
		Movable:                  b.Movable,
		Deletable:                b.Deletable,
		Label:                    b.Label,
		SpecID:                   b.SpecId,
		ShowPorts:                b.ShowPorts,
		AllowMultiplePorts:       b.AllowMultiplePorts,
		AutoOppositeProducerPort: b.AutoOppositeProducerPort,
		ShowPortLabels:           b.ShowPortLabels,
		AutoPortLayout:           b.AutoPortLayout,
		PortSnapStep:             b.PortSnapStep,
		IsLinkHub:                b.IsLinkHub,
		KeepoutMargin:            b.KeepoutMargin,
		ContentPadding:           jsonEdgeInsets{b.ContentPadding.Left, b.ContentPadding.Top, b.ContentPadding.Right, b.ContentPadding.Bottom},
		CornerRadius:             b.CornerRadius,
	}
	if b.AutoPortRole != nil {
		s := b.AutoPortRole.String()
		jb.AutoPortRole = &s
	}
	if b.Style != (BlockStyle{}) {
		jb.Style = &jsonBlockStyle{Outline: b.Style.Outline, Fill: b.Style.Fill, Label: b.Style.Label}
	}
	if sym, ok := b.Content.(*SymbolContent); ok {
		jb.Content = &jsonContent{
			Type:   "symbol",
			Symbol: sym.Symbol,
			Style: jsonSymbolStyle{
				TextColor: sym.Style.TextColor,
				PointSize: sym.Style.PointSize,
				Bold:      sym.Style.Bold,
			},
		}
	}
	for _, p := range b.ports {
		jb.Ports = append(jb.Ports, jsonPort{
			ID: p.ID.String(), Side: p.Side.String(), Role: p.Role.String(), T: p.T, Name: p.Name,
		})
	}
	return jb
}

func wireToJSON(w *Wire) jsonWire {
	jw := jsonWire{
		Type:          "wire",
		ID:            w.id.String(),
		A:             endpointToJSON(w.A),
		B:             endpointToJSON(w.B),
		ArrowPolicy:   w.ArrowPolicy.String(),
		ColorOverride: w.ColorOverride,
	}
	for _, c := range w.RouteOverride {
		jw.RouteOverride = append(jw.RouteOverride, jsonXYInt{c.X, c.Y})
	}
	return jw
}

func endpointToJSON(e Endpoint) jsonEndpoint {
	if e.IsAttached() {
		return jsonEndpoint{Attached: &jsonPortRef{ItemID: e.Attached.ItemID.String(), PortID: e.Attached.PortID.String()}}
	}
	return jsonEndpoint{Free: &jsonXY{e.Free.X, e.Free.Y}}
}

// UnmarshalJSON resets doc and loads it from a schema v1 document: blocks
// first (building an id map), then wires, with all parse errors
// accumulated before any failure is reported.
func UnmarshalJSON(data []byte, doc *Document, view *ViewState) error {
	var jd jsonDocument
	if err := json.Unmarshal(data, &jd); err != nil {
		return fmt.Errorf("parse document: %w", err)
	}
	if jd.SchemaVersion != SchemaVersion {
		return fmt.Errorf("unsupported schemaVersion %d", jd.SchemaVersion)
	}

	type rawItem struct {
		Type string `json:"type"`
	}
	var errs []error
	var blockSpecs []jsonBlock
	var wireSpecs []jsonWire

	for i, raw := range jd.Items {
		var tag rawItem
		if err := json.Unmarshal(raw, &tag); err != nil {
			errs = append(errs, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		switch tag.Type {
		case "block":
			var jb jsonBlock
			if err := json.Unmarshal(raw, &jb); err != nil {
				errs = append(errs, fmt.Errorf("item %d: %w", i, err))
				continue
			}
			blockSpecs = append(blockSpecs, jb)
		case "wire":
			var jw jsonWire
			if err := json.Unmarshal(raw, &jw); err != nil {
				errs = append(errs, fmt.Errorf("item %d: %w", i, err))
				continue
			}
			wireSpecs = append(wireSpecs, jw)
		default:
			errs = append(errs, fmt.Errorf("item %d: unknown type %q", i, tag.Type))
		}
	}
	if len(errs) > 0 {
		return joinErrors(errs)
	}

	doc.Reset(DefaultFabricStep)
	if view != nil {
		view.Zoom = jd.View.Zoom
		view.PanX, view.PanY = jd.View.Pan.X, jd.View.Pan.Y
	}

	for _, jb := range blockSpecs {
		block, err := blockFromJSON(jb)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		doc.InsertItem(len(doc.items), block)
	}
	if len(errs) > 0 {
		return joinErrors(errs)
	}

	for _, jw := range wireSpecs {
		wire, err := wireFromJSON(jw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		doc.InsertItem(len(doc.items), wire)
	}
	if len(errs) > 0 {
		return joinErrors(errs)
	}

	for _, item := range doc.Items() {
		if b, ok := item.(*Block); ok {
			normalizePairedPortNames(b)
		}
	}
	return nil
}

func joinErrors(errs []error) error {
	msg := fmt.Sprintf("%d error(s) parsing document", len(errs))
	for _, e := range errs {
		msg += "; " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}

func blockFromJSON(jb jsonBlock) (*Block, error) {
	id, err := ParseObjectId(jb.ID)
	if err != nil {
		return nil, fmt.Errorf("block %q: bad id: %w", jb.ID, err)
	}
	b := NewBlock(id, SceneRect{jb.Bounds.X, jb.Bounds.Y, jb.Bounds.W, jb.Bounds.H}, jb.PortSnapStep)
	b.Movable = jb.Movable
	b.Deletable = jb.Deletable
	b.Label = jb.Label
	b.SpecId = jb.SpecID
	b.ShowPorts = jb.ShowPorts
	b.AllowMultiplePorts = jb.AllowMultiplePorts
	b.AutoOppositeProducerPort = jb.AutoOppositeProducerPort
	b.ShowPortLabels = jb.ShowPortLabels
	b.AutoPortLayout = jb.AutoPortLayout
	b.IsLinkHub = jb.IsLinkHub
	b.KeepoutMargin = jb.KeepoutMargin
	b.ContentPadding = EdgeInsets{jb.ContentPadding.L, jb.ContentPadding.T, jb.ContentPadding.R, jb.ContentPadding.B}
	b.CornerRadius = jb.CornerRadius
	if jb.AutoPortRole != nil {
		role := ParsePortRole(*jb.AutoPortRole)
		b.AutoPortRole = &role
	}
	if jb.Style != nil {
		b.Style = BlockStyle{Outline: jb.Style.Outline, Fill: jb.Style.Fill, Label: jb.Style.Label}
	}
	if jb.Content != nil && jb.Content.Type == "symbol" {
		b.Content = &SymbolContent{
			Symbol: jb.Content.Symbol,
			Style: SymbolStyle{
				TextColor: jb.Content.Style.TextColor,
				PointSize: jb.Content.Style.PointSize,
				Bold:      jb.Content.Style.Bold,
			},
		}
	}
	for _, jp := range jb.Ports {
		pid, err := ParsePortId(jp.ID)
		if err != nil {
			return nil, fmt.Errorf("block %q port %q: bad id: %w", jb.ID, jp.ID, err)
		}
		port := &CanvasPort{ID: pid, Role: ParsePortRole(jp.Role), Side: ParseSide(jp.Side), T: jp.T, Name: jp.Name, block: b}
		b.ports = append(b.ports, port)
	}
	return b, nil
}

func wireFromJSON(jw jsonWire) (*Wire, error) {
	id, err := ParseObjectId(jw.ID)
	if err != nil {
		return nil, fmt.Errorf("wire %q: bad id: %w", jw.ID, err)
	}
	a, err := endpointFromJSON(jw.A)
	if err != nil {
		return nil, fmt.Errorf("wire %q endpoint a: %w", jw.ID, err)
	}
	b, err := endpointFromJSON(jw.B)
	if err != nil {
		return nil, fmt.Errorf("wire %q endpoint b: %w", jw.ID, err)
	}
	w := NewWire(id, a, b)
	w.ArrowPolicy = ParseArrowPolicy(jw.ArrowPolicy)
	w.ColorOverride = jw.ColorOverride
	if len(jw.RouteOverride) > 0 {
		path := make([]FabricCoord, len(jw.RouteOverride))
		for i, c := range jw.RouteOverride {
			path[i] = FabricCoord{X: c.X, Y: c.Y}
		}
		w.RouteOverride = path
	}
	return w, nil
}

func endpointFromJSON(je jsonEndpoint) (Endpoint, error) {
	if je.Attached != nil {
		itemID, err := ParseObjectId(je.Attached.ItemID)
		if err != nil {
			return Endpoint{}, fmt.Errorf("bad itemId: %w", err)
		}
		portID, err := ParsePortId(je.Attached.PortID)
		if err != nil {
			return Endpoint{}, fmt.Errorf("bad portId: %w", err)
		}
		return AttachedEndpoint(PortRef{ItemID: itemID, PortID: portID}), nil
	}
	if je.Free != nil {
		return FreeEndpoint(ScenePoint{je.Free.X, je.Free.Y}), nil
	}
	return Endpoint{}, fmt.Errorf("endpoint has neither free nor attached")
}
