package demo

import (
	"github.com/teeworlds-community/ddnetdemo/compress"
	"github.com/teeworlds-community/ddnetdemo/format"
	"github.com/teeworlds-community/ddnetdemo/section"
	"github.com/teeworlds-community/ddnetdemo/snapshot"
)

// maxChunkWords bounds the decoded word count of any single data chunk
// payload; it is large enough for a full snapshot at MaxItems/MaxDataSize
// and exists only to give the codec's scratch buffers a finite size.
const maxChunkWords = 2 + snapshot.MaxItems + snapshot.MaxDataSize/4

// Record is one value yielded by (*Reader).Next: a tick marker or a
// decoded data chunk. Kind determines which of the remaining fields are
// meaningful.
type Record struct {
	Kind format.RecordKind

	// Tick and Keyframe are set for RecordTickMarker.
	Tick     int32
	Keyframe bool

	// Snapshot is set for RecordSnapshot: the decoded full snapshot,
	// already recorded as the reader's new reference.
	Snapshot snapshot.Snapshot

	// Delta is set for RecordDelta: the snapshot obtained by applying
	// the delta to the reader's prior reference snapshot.
	Delta snapshot.Snapshot

	// Message is set for RecordMessage: the opaque payload bytes.
	Message []byte
}

// writeDataChunk compresses words through codec and frames the result
// behind a section.DataChunkHeader of the given type, appending to dst.
func writeDataChunk(dst []byte, codec compress.Codec, typ format.ChunkType, words []int32) ([]byte, error) {
	payload, err := codec.Compress(nil, words)
	if err != nil {
		return dst, err
	}

	dst = section.AppendDataChunkHeader(dst, section.DataChunkHeader{Type: typ, Size: len(payload)})
	dst = append(dst, payload...)

	return dst, nil
}

// writeRawMessageChunk frames an already-packed message payload. Message
// bytes are opaque to the chunk codec, but the data codec operates on
// int32 words: the payload is reinterpreted four bytes per word
// (little-endian), zero-padded up to a word boundary, matching the
// reference writer's treatment of a message buffer as raw struct memory
// cast to an int array.
func writeRawMessageChunk(dst []byte, codec compress.Codec, payload []byte) ([]byte, error) {
	words := bytesToWords(payload)
	compressed, err := codec.Compress(nil, words)
	if err != nil {
		return dst, err
	}

	dst = section.AppendDataChunkHeader(dst, section.DataChunkHeader{Type: format.ChunkMessage, Size: len(compressed)})
	dst = append(dst, compressed...)

	return dst, nil
}

// readDataChunk decompresses a data chunk payload into its int32 words,
// bounded to at most maxWords.
func readDataChunk(codec compress.Codec, payload []byte, maxWords int) ([]int32, error) {
	words, err := codec.Decompress(nil, payload, maxWords)
	if err != nil {
		return nil, err
	}

	return words, nil
}

// bytesToWords packs a byte payload four bytes per int32 word,
// little-endian, zero-padding the final word if payload's length is not
// a multiple of 4. The padding is never trimmed back out on read: it
// mirrors the reference writer exactly, which relies on the message's
// own internal framing to ignore trailing zero bytes.
func bytesToWords(payload []byte) []int32 {
	n := (len(payload) + 3) / 4
	words := make([]int32, n)
	for i := 0; i < n; i++ {
		var b [4]byte
		copy(b[:], payload[i*4:])
		words[i] = int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24) //nolint:gosec
	}

	return words
}

// wordsToBytes inverts bytesToWords, producing 4*len(words) bytes.
func wordsToBytes(words []int32) []byte {
	out := make([]byte, len(words)*4)
	for i, w := range words {
		u := uint32(w) //nolint:gosec
		out[i*4] = byte(u)
		out[i*4+1] = byte(u >> 8)
		out[i*4+2] = byte(u >> 16)
		out[i*4+3] = byte(u >> 24)
	}

	return out
}
