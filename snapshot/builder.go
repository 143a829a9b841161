package snapshot

import (
	"github.com/teeworlds-community/ddnetdemo/endian"
	"github.com/teeworlds-community/ddnetdemo/errs"
	"github.com/teeworlds-community/ddnetdemo/protocol"
)

var be = endian.GetBigEndianEngine()

// exItemWords is the fixed payload width, in 32-bit words, of an EX item:
// a 16-byte UUID packed as four big-endian words.
const exItemWords = 4

// Builder accumulates the items of one snapshot under construction. It
// is scratch memory: call Reset between snapshots rather than
// constructing a new Builder each time.
//
// When an item's wire type falls in the UUID namespace (≥ 256), Builder
// transparently emits an EX item (wire type 0) the first time that type
// appears in the current snapshot, assigning it an internal id counting
// down from protocol.MaxType, and substitutes that internal id as the
// wire type of this and all later items of the same extended type. The
// mapping does not persist across snapshots: Reset clears it, and every
// snapshot re-emits its own EX items.
type Builder struct {
	items        []Item
	dataSize     int
	extendedIDs  map[int32]int32
	nextInternal int32
	warn         func(string)
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	b := &Builder{}
	b.Reset()

	return b
}

// SetWarnFunc installs a callback invoked when an extended type has no
// entry in the UUID registry (see package protocol); its UUID slot is
// zeroed and warn, if non-nil, is called with a description. The
// default is a no-op.
func (b *Builder) SetWarnFunc(warn func(string)) {
	b.warn = warn
}

// Reset clears the builder for a new snapshot.
func (b *Builder) Reset() {
	b.items = b.items[:0]
	b.dataSize = 0
	b.extendedIDs = make(map[int32]int32)
	b.nextInternal = protocol.MaxType
}

// Add reserves a new item of the given wire type, id, and payload size
// (in 32-bit words), returning zeroed scratch memory for the caller to
// fill in place. If wireType falls in the UUID namespace, Add first
// splices in an EX item (on the type's first appearance in this
// snapshot) and uses the assigned internal id as the item's actual wire
// type.
//
// Add fails with errs.ErrTooManyItems or errs.ErrItemTooLarge when doing
// so would exceed MaxItems or MaxDataSize; any EX item speculatively
// added during this call is rolled back so the builder's state is
// unaffected by a failed Add.
func (b *Builder) Add(wireType, id int32, size int) ([]int32, error) {
	itemsBefore := len(b.items)
	dataBefore := b.dataSize

	actualType := wireType
	exJustCreated := false
	if protocol.IsExtended(protocol.ObjType(wireType)) {
		internal, ok := b.extendedIDs[wireType]
		if !ok {
			var err error
			internal, err = b.emitEXItem(wireType)
			if err != nil {
				return nil, err
			}
			b.extendedIDs[wireType] = internal
			exJustCreated = true
		}
		actualType = internal
	}

	data, err := b.reserve(actualType, id, size)
	if err != nil {
		b.items = b.items[:itemsBefore]
		b.dataSize = dataBefore
		if exJustCreated {
			delete(b.extendedIDs, wireType)
			b.nextInternal++
		}

		return nil, err
	}

	return data, nil
}

// emitEXItem assigns a fresh internal id to wireType, appends its EX
// item, and returns the internal id. On failure (ceiling exceeded) no
// state is retained.
func (b *Builder) emitEXItem(wireType int32) (int32, error) {
	internal := b.nextInternal

	var uuidWords [exItemWords]int32
	if u, ok := protocol.UUIDFor(protocol.ObjType(wireType)); ok {
		for w := 0; w < exItemWords; w++ {
			uuidWords[w] = int32(be.Uint32(u[w*4 : w*4+4])) //nolint:gosec
		}
	} else if b.warn != nil {
		b.warn("snapshot: no uuid registry entry for extended type")
	}

	if _, err := b.reserve(int32(protocol.ObjEx), internal, exItemWords); err != nil {
		return 0, err
	}
	copy(b.items[len(b.items)-1].Data, uuidWords[:])

	b.nextInternal--

	return internal, nil
}

// reserve is the shared item-append path used by both Add and
// emitEXItem: it enforces the item-count and data-size ceilings and
// appends a zeroed item.
func (b *Builder) reserve(wireType, id int32, size int) ([]int32, error) {
	if len(b.items) >= MaxItems {
		return nil, errs.ErrTooManyItems
	}

	added := (itemHeaderWords + size) * 4
	if b.dataSize+added > MaxDataSize {
		return nil, errs.ErrItemTooLarge
	}

	data := make([]int32, size)
	b.items = append(b.items, Item{Key: NewKey(wireType, id), Data: data})
	b.dataSize += added

	return data, nil
}

// Finish materializes the accumulated items into a Snapshot in
// insertion order. It does not reset the builder; call Reset before
// reusing it for the next snapshot.
func (b *Builder) Finish() Snapshot {
	items := make([]Item, len(b.items))
	copy(items, b.items)

	return Snapshot{Items: items}
}
