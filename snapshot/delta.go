package snapshot

import (
	"github.com/teeworlds-community/ddnetdemo/errs"
	"github.com/teeworlds-community/ddnetdemo/protocol"
)

// ComputeDelta produces the flat int32 word sequence describing how to
// transform from into to: a counters triple {num_deleted, num_updates,
// num_temp=0}, then num_deleted deleted keys, then the update records.
//
// Each update record is [type, id, size?, payload...] where size? is
// present only when type has no entry in the protocol's known-size
// table (vanilla types with a fixed width omit it; extended items,
// whose wire type is always an internal id outside that table, always
// carry it). An item present in both snapshots whose payload is
// unchanged contributes no update record at all, though its key is also
// not recorded as deleted.
func ComputeDelta(from, to Snapshot) []int32 {
	var deleted []int32
	for _, it := range from.Items {
		if _, ok := to.Find(it.Key.Type(), it.Key.ID()); !ok {
			deleted = append(deleted, int32(it.Key))
		}
	}

	var updates []int32
	numUpdates := int32(0)
	for _, it := range to.Items {
		fromItem, ok := from.Find(it.Key.Type(), it.Key.ID())
		if !ok {
			updates = appendUpdateRecord(updates, it.Key, it.Data)
			numUpdates++

			continue
		}

		diff := make([]int32, len(it.Data))
		changed := false
		for w := range it.Data {
			var fromWord int32
			if w < len(fromItem.Data) {
				fromWord = fromItem.Data[w]
			}
			diff[w] = int32(uint32(it.Data[w]) - uint32(fromWord)) //nolint:gosec
			if diff[w] != 0 {
				changed = true
			}
		}
		if len(it.Data) != len(fromItem.Data) {
			changed = true
		}
		if !changed {
			continue
		}

		updates = appendUpdateRecord(updates, it.Key, diff)
		numUpdates++
	}

	words := make([]int32, 0, 3+len(deleted)+len(updates))
	words = append(words, int32(len(deleted)), numUpdates, 0)
	words = append(words, deleted...)
	words = append(words, updates...)

	return words
}

func appendUpdateRecord(dst []int32, key Key, payload []int32) []int32 {
	dst = append(dst, key.Type(), key.ID())
	if _, known := protocol.KnownSize(protocol.ObjType(key.Type())); !known {
		dst = append(dst, int32(len(payload))) //nolint:gosec
	}
	dst = append(dst, payload...)

	return dst
}

// ApplyDelta materializes the snapshot produced by applying deltaWords
// (as produced by ComputeDelta) to from. It is transactional: a
// malformed delta returns an error and leaves from untouched.
func ApplyDelta(from Snapshot, deltaWords []int32) (Snapshot, error) {
	if len(deltaWords) < 3 {
		return Snapshot{}, errs.ErrDeltaTruncated
	}

	numDeleted := deltaWords[0]
	numUpdates := deltaWords[1]
	if numDeleted < 0 || numUpdates < 0 {
		return Snapshot{}, errs.ErrCorrupt
	}

	rest := deltaWords[3:]
	if int(numDeleted) > len(rest) {
		return Snapshot{}, errs.ErrDeltaTruncated
	}
	deletedKeys := make(map[Key]struct{}, numDeleted)
	for i := int32(0); i < numDeleted; i++ {
		deletedKeys[Key(uint32(rest[i]))] = struct{}{} //nolint:gosec
	}
	rest = rest[numDeleted:]

	type update struct {
		key     Key
		payload []int32
	}
	updates := make([]update, 0, numUpdates)
	updateKeys := make(map[Key]struct{}, numUpdates)

	for i := int32(0); i < numUpdates; i++ {
		if len(rest) < 2 {
			return Snapshot{}, errs.ErrDeltaTruncated
		}
		wireType := rest[0]
		id := rest[1]
		rest = rest[2:]

		size, known := protocol.KnownSize(protocol.ObjType(wireType))
		if !known {
			if len(rest) < 1 {
				return Snapshot{}, errs.ErrDeltaTruncated
			}
			size = int(rest[0])
			rest = rest[1:]
			if size < 0 {
				return Snapshot{}, errs.ErrCorrupt
			}
		}
		if size > len(rest) {
			return Snapshot{}, errs.ErrDeltaTruncated
		}

		payload := make([]int32, size)
		copy(payload, rest[:size])
		rest = rest[size:]

		key := NewKey(wireType, id)
		updates = append(updates, update{key: key, payload: payload})
		updateKeys[key] = struct{}{}
	}

	// Items here carry keys already resolved to their final wire form
	// (an internal id for extended items, never the logical UUID-namespace
	// type), so they are assembled directly rather than through Builder:
	// Builder.Add's EX-item splicing is for constructing a fresh snapshot
	// from logical types, and would misfire on an already-resolved
	// internal id, which is itself ≥ protocol.UUIDOffset.
	items := make([]Item, 0, len(from.Items)+len(updates))
	dataSize := 0

	for _, it := range from.Items {
		if _, del := deletedKeys[it.Key]; del {
			continue
		}
		if _, upd := updateKeys[it.Key]; upd {
			continue
		}

		if len(items) >= MaxItems {
			return Snapshot{}, errs.ErrTooManyItems
		}
		dataSize += (itemHeaderWords + len(it.Data)) * 4
		if dataSize > MaxDataSize {
			return Snapshot{}, errs.ErrItemTooLarge
		}

		data := make([]int32, len(it.Data))
		copy(data, it.Data)
		items = append(items, Item{Key: it.Key, Data: data})
	}

	for _, u := range updates {
		fromItem, hasFrom := from.Find(u.key.Type(), u.key.ID())

		if len(items) >= MaxItems {
			return Snapshot{}, errs.ErrTooManyItems
		}
		dataSize += (itemHeaderWords + len(u.payload)) * 4
		if dataSize > MaxDataSize {
			return Snapshot{}, errs.ErrItemTooLarge
		}

		data := make([]int32, len(u.payload))
		for w := range u.payload {
			var fromWord int32
			if hasFrom && w < len(fromItem.Data) {
				fromWord = fromItem.Data[w]
			}
			data[w] = int32(uint32(fromWord) + uint32(u.payload[w])) //nolint:gosec
		}
		items = append(items, Item{Key: u.key, Data: data})
	}

	return Snapshot{Items: items}, nil
}
