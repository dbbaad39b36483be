package canvas

// Selection holds the canvas's selection state: a set of selected item ids,
// an optional single selected port, and a marquee-gathered set of port
// refs. Grounded on node.go's parent/children bookkeeping style (plain maps
// and slices, no external set library), applied here to selection sets.
type Selection struct {
	items      map[ObjectId]bool
	port       *PortRef
	marqueePorts map[PortRef]bool

	listeners []func()
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{
		items:        make(map[ObjectId]bool),
		marqueePorts: make(map[PortRef]bool),
	}
}

// OnChanged registers a listener invoked whenever the selection actually
// changes (canonicalized: setting an already-empty selection to empty is
// not a change).
func (s *Selection) OnChanged(fn func()) {
	s.listeners = append(s.listeners, fn)
}

func (s *Selection) emit() {
	for _, fn := range s.listeners {
		fn()
	}
}

// Items returns the selected item ids in no particular order.
func (s *Selection) Items() []ObjectId {
	out := make([]ObjectId, 0, len(s.items))
	for id := range s.items {
		out = append(out, id)
	}
	return out
}

// HasItem reports whether id is selected.
func (s *Selection) HasItem(id ObjectId) bool { return s.items[id] }

// Port returns the single selected port, if any.
func (s *Selection) Port() (PortRef, bool) {
	if s.port == nil {
		return PortRef{}, false
	}
	return *s.port, true
}

// MarqueePorts returns the marquee-gathered port set.
func (s *Selection) MarqueePorts() []PortRef {
	out := make([]PortRef, 0, len(s.marqueePorts))
	for ref := range s.marqueePorts {
		out = append(out, ref)
	}
	return out
}

// SetItems replaces the item selection wholesale, implicitly clearing any
// single-port selection.
func (s *Selection) SetItems(ids []ObjectId) {
	next := make(map[ObjectId]bool, len(ids))
	for _, id := range ids {
		next[id] = true
	}
	if mapsEqualObjectId(s.items, next) && s.port == nil {
		return
	}
	s.items = next
	s.port = nil
	s.emit()
}

// Clear empties the item selection and the single-port selection. A no-op
// (no event) if both are already empty.
func (s *Selection) Clear() {
	if len(s.items) == 0 && s.port == nil {
		return
	}
	s.items = make(map[ObjectId]bool)
	s.port = nil
	s.emit()
}

// ToggleItem flips the membership of id in the selection, clearing any
// single-port selection.
func (s *Selection) ToggleItem(id ObjectId) {
	next := make(map[ObjectId]bool, len(s.items))
	for k := range s.items {
		next[k] = true
	}
	if next[id] {
		delete(next, id)
	} else {
		next[id] = true
	}
	s.items = next
	s.port = nil
	s.emit()
}

// AddItem adds id to the selection if not already present.
func (s *Selection) AddItem(id ObjectId) {
	if s.items[id] {
		return
	}
	s.items[id] = true
	s.port = nil
	s.emit()
}

// SetPort sets the single-port selection, implicitly clearing item
// selection.
func (s *Selection) SetPort(ref PortRef) {
	if s.port != nil && *s.port == ref && len(s.items) == 0 {
		return
	}
	r := ref
	s.port = &r
	s.items = make(map[ObjectId]bool)
	s.emit()
}

// SetMarqueePorts replaces the marquee port set wholesale.
func (s *Selection) SetMarqueePorts(refs []PortRef) {
	next := make(map[PortRef]bool, len(refs))
	for _, r := range refs {
		next[r] = true
	}
	if mapsEqualPortRef(s.marqueePorts, next) {
		return
	}
	s.marqueePorts = next
	s.emit()
}

// ClearMarqueePorts empties the marquee port set. A no-op if already empty.
func (s *Selection) ClearMarqueePorts() {
	if len(s.marqueePorts) == 0 {
		return
	}
	s.marqueePorts = make(map[PortRef]bool)
	s.emit()
}

func mapsEqualObjectId(a, b map[ObjectId]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func mapsEqualPortRef(a, b map[PortRef]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
