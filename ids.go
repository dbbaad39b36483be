package canvas

import (
	"github.com/google/uuid"
)

// Strong id types. Each wraps a 128-bit uuid.UUID so the four kinds are
// distinct at the type level and cannot be accidentally interchanged, while
// still being cheap to compare, hash (as a map key), and round-trip to text.
// Grounded on node.go's nextNodeID counter, generalized to globally unique,
// textually-round-trippable ids — a process-local counter cannot give the
// same-process-or-not uniqueness a serialized document needs, so this draws
// on google/uuid instead.

// BlockId identifies a Block within a Document.
type BlockId uuid.UUID

// PortId identifies a CanvasPort on a Block.
type PortId uuid.UUID

// LinkId identifies a DesignLink in a DesignState.
type LinkId uuid.UUID

// ObjectId identifies any CanvasItem (Block or Wire) within a Document.
type ObjectId uuid.UUID

// NilBlockId, NilPortId, NilLinkId, NilObjectId are the null sentinels.
var (
	NilBlockId  = BlockId{}
	NilPortId   = PortId{}
	NilLinkId   = LinkId{}
	NilObjectId = ObjectId{}
)

// NewBlockId draws a fresh, process-wide-unique BlockId.
func NewBlockId() BlockId { return BlockId(uuid.New()) }

// NewPortId draws a fresh, process-wide-unique PortId.
func NewPortId() PortId { return PortId(uuid.New()) }

// NewLinkId draws a fresh, process-wide-unique LinkId.
func NewLinkId() LinkId { return LinkId(uuid.New()) }

// NewObjectId draws a fresh, process-wide-unique ObjectId.
func NewObjectId() ObjectId { return ObjectId(uuid.New()) }

// IsNil reports whether id is the null sentinel.
func (id BlockId) IsNil() bool { return id == NilBlockId }
func (id PortId) IsNil() bool  { return id == NilPortId }
func (id LinkId) IsNil() bool  { return id == NilLinkId }
func (id ObjectId) IsNil() bool { return id == NilObjectId }

func (id BlockId) String() string  { return uuid.UUID(id).String() }
func (id PortId) String() string   { return uuid.UUID(id).String() }
func (id LinkId) String() string   { return uuid.UUID(id).String() }
func (id ObjectId) String() string { return uuid.UUID(id).String() }

// Compare gives BlockId a total order (lexical on the underlying bytes),
// used for deterministic sorting (e.g. context-menu multi-delete).
func (id BlockId) Compare(o BlockId) int { return compareBytes(id[:], o[:]) }
func (id PortId) Compare(o PortId) int   { return compareBytes(id[:], o[:]) }
func (id LinkId) Compare(o LinkId) int   { return compareBytes(id[:], o[:]) }
func (id ObjectId) Compare(o ObjectId) int { return compareBytes(id[:], o[:]) }

func compareBytes(a, b []byte) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// ParseBlockId parses a textual BlockId, failing on a malformed string.
func ParseBlockId(s string) (BlockId, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return NilBlockId, err
	}
	return BlockId(u), nil
}

// ParsePortId parses a textual PortId, failing on a malformed string.
func ParsePortId(s string) (PortId, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return NilPortId, err
	}
	return PortId(u), nil
}

// ParseLinkId parses a textual LinkId, failing on a malformed string.
func ParseLinkId(s string) (LinkId, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return NilLinkId, err
	}
	return LinkId(u), nil
}

// ParseObjectId parses a textual ObjectId, failing on a malformed string.
func ParseObjectId(s string) (ObjectId, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return NilObjectId, err
	}
	return ObjectId(u), nil
}
