package canvas

// BlockContent is the polymorphic capability set for a block's optional
// drawable payload: a leaf text label, a symbol glyph (used by link hubs),
// or a container that lays out child content. Grounded on node.go's
// NodeType-tagged Node (one flat struct carrying fields for every variant)
// generalized here to a small interface since content nests (a container
// holds other BlockContent values) where willow's Node already has that
// shape via its children slice.
type BlockContent interface {
	// Measure returns the content's preferred size given the available
	// width/height inside the block's padded content rect.
	Measure(availW, availH float64) (w, h float64)
	// Layout arranges the content (and any children) within rect, a
	// sub-rectangle of the block already reduced by ContentPadding.
	Layout(rect SceneRect)
	// Clone returns a deep copy suitable for CreateItemCommand re-apply and
	// command-manager undo snapshots.
	Clone() BlockContent
	contentKind() string
}

// LeafTextContent is a single line (or pre-wrapped block) of label text.
// Real glyph shaping/rasterization is a host/painting concern;
// the core only tracks the string and the laid-out rect for hit-testing
// and measurement.
type LeafTextContent struct {
	Text string
	rect SceneRect
}

func (c *LeafTextContent) Measure(availW, availH float64) (float64, float64) {
	// Without real font metrics the core estimates width from rune count
	// at a nominal 8px advance and a single 16px line height; hosts that
	// need true metrics measure their own font and can overwrite rect
	// directly via Layout.
	return float64(len([]rune(c.Text))) * 8, 16
}

func (c *LeafTextContent) Layout(rect SceneRect) { c.rect = rect }

func (c *LeafTextContent) Clone() BlockContent {
	cp := *c
	return &cp
}

func (c *LeafTextContent) contentKind() string { return "leaf" }

// SymbolStyle controls the glyph painted by a SymbolContent.
type SymbolStyle struct {
	TextColor string
	PointSize float64
	Bold      bool
}

// SymbolContent renders a single short glyph, used by freshly minted link
// hub blocks.
type SymbolContent struct {
	Symbol string
	Style  SymbolStyle
	rect   SceneRect
}

func (c *SymbolContent) Measure(availW, availH float64) (float64, float64) {
	size := c.Style.PointSize
	if size <= 0 {
		size = 14
	}
	return size, size
}

func (c *SymbolContent) Layout(rect SceneRect) { c.rect = rect }

func (c *SymbolContent) Clone() BlockContent {
	cp := *c
	return &cp
}

func (c *SymbolContent) contentKind() string { return "symbol" }

// ContainerDirection controls how a ContainerContent arranges its children.
type ContainerDirection uint8

const (
	ContainerVertical ContainerDirection = iota
	ContainerHorizontal
	ContainerGrid
)

// ContainerContent lays out child content vertically, horizontally, or in a
// fixed-column grid, with padding and inter-child gap.
type ContainerContent struct {
	Direction ContainerDirection
	Padding   EdgeInsets
	Gap       float64
	Columns   int // used only when Direction == ContainerGrid
	Children  []BlockContent

	rect SceneRect
}

// EdgeInsets is a four-sided padding/margin value.
type EdgeInsets struct {
	Left, Top, Right, Bottom float64
}

func (c *ContainerContent) Measure(availW, availH float64) (float64, float64) {
	innerW := availW - c.Padding.Left - c.Padding.Right
	innerH := availH - c.Padding.Top - c.Padding.Bottom
	if innerW < 0 {
		innerW = 0
	}
	if innerH < 0 {
		innerH = 0
	}
	switch c.Direction {
	case ContainerHorizontal:
		var totalW, maxH float64
		for i, ch := range c.Children {
			w, h := ch.Measure(innerW, innerH)
			totalW += w
			if i > 0 {
				totalW += c.Gap
			}
			if h > maxH {
				maxH = h
			}
		}
		return totalW + c.Padding.Left + c.Padding.Right, maxH + c.Padding.Top + c.Padding.Bottom
	case ContainerGrid:
		cols := c.Columns
		if cols < 1 {
			cols = 1
		}
		rows := (len(c.Children) + cols - 1) / cols
		cellW := innerW / float64(cols)
		var maxCellH float64
		for _, ch := range c.Children {
			_, h := ch.Measure(cellW, innerH)
			if h > maxCellH {
				maxCellH = h
			}
		}
		return innerW + c.Padding.Left + c.Padding.Right,
			float64(rows)*maxCellH + float64(rows-1)*c.Gap + c.Padding.Top + c.Padding.Bottom
	default: // ContainerVertical
		var totalH, maxW float64
		for i, ch := range c.Children {
			w, h := ch.Measure(innerW, innerH)
			totalH += h
			if i > 0 {
				totalH += c.Gap
			}
			if w > maxW {
				maxW = w
			}
		}
		return maxW + c.Padding.Left + c.Padding.Right, totalH + c.Padding.Top + c.Padding.Bottom
	}
}

func (c *ContainerContent) Layout(rect SceneRect) {
	c.rect = rect
	inner := SceneRect{
		X:      rect.X + c.Padding.Left,
		Y:      rect.Y + c.Padding.Top,
		Width:  rect.Width - c.Padding.Left - c.Padding.Right,
		Height: rect.Height - c.Padding.Top - c.Padding.Bottom,
	}
	switch c.Direction {
	case ContainerHorizontal:
		x := inner.X
		for _, ch := range c.Children {
			w, _ := ch.Measure(inner.Width, inner.Height)
			ch.Layout(SceneRect{X: x, Y: inner.Y, Width: w, Height: inner.Height})
			x += w + c.Gap
		}
	case ContainerGrid:
		cols := c.Columns
		if cols < 1 {
			cols = 1
		}
		cellW := inner.Width / float64(cols)
		rows := (len(c.Children) + cols - 1) / cols
		var cellH float64
		if rows > 0 {
			cellH = (inner.Height - c.Gap*float64(rows-1)) / float64(rows)
		}
		for i, ch := range c.Children {
			row := i / cols
			col := i % cols
			x := inner.X + float64(col)*cellW
			y := inner.Y + float64(row)*(cellH+c.Gap)
			ch.Layout(SceneRect{X: x, Y: y, Width: cellW, Height: cellH})
		}
	default: // ContainerVertical
		y := inner.Y
		for _, ch := range c.Children {
			_, h := ch.Measure(inner.Width, inner.Height)
			ch.Layout(SceneRect{X: inner.X, Y: y, Width: inner.Width, Height: h})
			y += h + c.Gap
		}
	}
}

func (c *ContainerContent) Clone() BlockContent {
	cp := &ContainerContent{Direction: c.Direction, Padding: c.Padding, Gap: c.Gap, Columns: c.Columns, rect: c.rect}
	cp.Children = make([]BlockContent, len(c.Children))
	for i, ch := range c.Children {
		cp.Children[i] = ch.Clone()
	}
	return cp
}

func (c *ContainerContent) contentKind() string { return "container" }
