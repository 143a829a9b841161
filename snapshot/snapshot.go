package snapshot

import "github.com/teeworlds-community/ddnetdemo/errs"

const (
	// MaxItems is the maximum number of items a single snapshot may
	// contain.
	MaxItems = 1024

	// MaxDataSize is the maximum total byte size of a snapshot's data
	// region (the item records, excluding the flat header and offset
	// table), large enough for any legal frame.
	MaxDataSize = 256 * 1024

	// itemHeaderWords is the fixed word width of an item record's key
	// field, preceding its payload.
	itemHeaderWords = 1
)

// Snapshot is an immutable, ordered sequence of items. It is produced by
// Builder.Finish and consumed by the delta engine and the demo writer;
// callers never mutate one directly.
type Snapshot struct {
	Items []Item
}

// ItemAt returns the item at index, and whether index was in range.
func (s Snapshot) ItemAt(index int) (Item, bool) {
	if index < 0 || index >= len(s.Items) {
		return Item{}, false
	}

	return s.Items[index], true
}

// Find performs a linear scan for the item with the given wire type and
// id. Snapshot item counts are small (≤ MaxItems), so a linear scan is
// both simpler and, in practice, faster than a map for typical sizes.
func (s Snapshot) Find(wireType, id int32) (Item, bool) {
	key := NewKey(wireType, id)
	for _, it := range s.Items {
		if it.Key == key {
			return it, true
		}
	}

	return Item{}, false
}

// ItemSize returns the payload word count of the item at index.
func (s Snapshot) ItemSize(index int) int {
	it, ok := s.ItemAt(index)
	if !ok {
		return 0
	}

	return len(it.Data)
}

// FlatWords serializes the snapshot into the wire-level flat int32 word
// sequence: {data_size, num_items} followed by num_items byte offsets
// into the data region, followed by the data region itself (each item
// as its key word followed by its payload words). This is the exact
// representation the data codec's variable-length integer packer
// operates over before Huffman compression.
func (s Snapshot) FlatWords() ([]int32, error) {
	if len(s.Items) > MaxItems {
		return nil, errs.ErrTooManyItems
	}

	dataSize := 0
	offsets := make([]int32, len(s.Items))
	for i, it := range s.Items {
		offsets[i] = int32(dataSize) //nolint:gosec
		dataSize += (itemHeaderWords + len(it.Data)) * 4
	}
	if dataSize > MaxDataSize {
		return nil, errs.ErrItemTooLarge
	}

	words := make([]int32, 0, 2+len(s.Items)+dataSize/4)
	words = append(words, int32(dataSize), int32(len(s.Items))) //nolint:gosec
	words = append(words, offsets...)
	for _, it := range s.Items {
		words = append(words, int32(it.Key))
		words = append(words, it.Data...)
	}

	return words, nil
}

// ParseFlatWords decodes a Snapshot from its flat word representation
// (the inverse of FlatWords).
func ParseFlatWords(words []int32) (Snapshot, error) {
	if len(words) < 2 {
		return Snapshot{}, errs.ErrTruncated
	}

	dataSize := words[0]
	numItems := words[1]
	if dataSize < 0 || numItems < 0 || int(numItems) > MaxItems {
		return Snapshot{}, errs.ErrCorrupt
	}

	rest := words[2:]
	if int(numItems) > len(rest) {
		return Snapshot{}, errs.ErrTruncated
	}
	offsets := rest[:numItems]
	dataWords := rest[numItems:]

	if int(dataSize) > len(dataWords)*4 {
		return Snapshot{}, errs.ErrTruncated
	}

	items := make([]Item, numItems)
	for i := range items {
		start := offsets[i]
		var end int32
		if i == int(numItems)-1 {
			end = dataSize
		} else {
			end = offsets[i+1]
		}
		if start < 0 || end < start || end > dataSize {
			return Snapshot{}, errs.ErrCorrupt
		}

		wordStart := start / 4
		wordEnd := end / 4
		if int(wordEnd) > len(dataWords) || wordEnd < wordStart+itemHeaderWords {
			return Snapshot{}, errs.ErrCorrupt
		}

		key := Key(uint32(dataWords[wordStart])) //nolint:gosec
		payload := dataWords[wordStart+itemHeaderWords : wordEnd]
		data := make([]int32, len(payload))
		copy(data, payload)

		items[i] = Item{Key: key, Data: data}
	}

	return Snapshot{Items: items}, nil
}
