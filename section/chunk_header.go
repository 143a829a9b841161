package section

import (
	"github.com/teeworlds-community/ddnetdemo/errs"
	"github.com/teeworlds-community/ddnetdemo/format"
)

// Chunk header flag bits, matching the wire format exactly.
const (
	flagTickMarker     = 0x80
	flagKeyframe       = 0x40
	flagTickCompressed = 0x20

	maskTickDelta = 0x1f
	maskDataType  = 0x60
	maskDataSize  = 0x1f

	// sizeClass8 and sizeClass16 are the two reserved low-5-bit values
	// signaling that the real size follows in 1 or 2 extra bytes.
	sizeClass8  = 30
	sizeClass16 = 31
)

// TickMarker is the chunk-stream record announcing the tick that every
// following data chunk belongs to, until the next marker.
type TickMarker struct {
	// Tick is the absolute tick number.
	Tick int32
	// Keyframe reports whether the snapshot chunk(s) under this marker
	// is a full keyframe rather than a delta.
	Keyframe bool
}

// AppendTickMarker appends the on-disk encoding of m to dst.
//
// lastTick is the previous marker's tick (or -1 if none yet); tickCompression
// reports whether the file version allows the compact delta form. The
// compact 1-byte form is used only when a previous marker exists, the
// delta fits in 5 unsigned bits, the marker is not a keyframe, and
// tickCompression is true; otherwise the 5-byte absolute form is used.
func AppendTickMarker(dst []byte, m TickMarker, lastTick int32, hasLastTick bool, tickCompression bool) []byte {
	delta := int64(m.Tick) - int64(lastTick)
	if hasLastTick && !m.Keyframe && tickCompression && delta >= 0 && delta <= maskTickDelta {
		b := byte(flagTickMarker) | byte(flagTickCompressed) | byte(delta)

		return append(dst, b)
	}

	b := byte(flagTickMarker)
	if m.Keyframe {
		b |= flagKeyframe
	}
	dst = append(dst, b)
	dst = be.AppendUint32(dst, uint32(m.Tick)) //nolint:gosec

	return dst
}

// ParseTickMarker parses a tick marker from the front of data, given the
// previous marker's tick and whether this file version allows the
// compact form. It returns the marker and the number of bytes consumed.
func ParseTickMarker(data []byte, lastTick int32, hasLastTick bool, tickCompression bool) (TickMarker, int, error) {
	if len(data) == 0 {
		return TickMarker{}, 0, errs.ErrTruncated
	}

	b := data[0]
	if b&flagTickMarker == 0 {
		return TickMarker{}, 0, errs.ErrInvalidChunkHeader
	}

	keyframe := b&flagKeyframe != 0

	if tickCompression && b&flagTickCompressed != 0 {
		if !hasLastTick {
			return TickMarker{}, 0, errs.ErrCorrupt
		}
		delta := int32(b & maskTickDelta)

		return TickMarker{Tick: lastTick + delta, Keyframe: keyframe}, 1, nil
	}

	if len(data) < 5 {
		return TickMarker{}, 0, errs.ErrTruncated
	}
	tick := be.Uint32(data[1:5])

	return TickMarker{Tick: int32(tick), Keyframe: keyframe}, 5, nil //nolint:gosec
}

// DataChunkHeader is the 1/2/3-byte header preceding a snapshot, delta,
// or message chunk's compressed payload.
type DataChunkHeader struct {
	Type format.ChunkType
	Size int
}

// AppendDataChunkHeader appends the on-disk encoding of h to dst.
func AppendDataChunkHeader(dst []byte, h DataChunkHeader) []byte {
	first := byte(h.Type&0x3) << 5

	switch {
	case h.Size < sizeClass8:
		first |= byte(h.Size)

		return append(dst, first)
	case h.Size < 256:
		first |= sizeClass8

		return append(dst, first, byte(h.Size))
	default:
		first |= sizeClass16

		return append(dst, first, byte(h.Size), byte(h.Size>>8))
	}
}

// ParseDataChunkHeader parses a data chunk header from the front of
// data, returning the header and the number of bytes consumed.
func ParseDataChunkHeader(data []byte) (DataChunkHeader, int, error) {
	if len(data) == 0 {
		return DataChunkHeader{}, 0, errs.ErrTruncated
	}

	b := data[0]
	if b&flagTickMarker != 0 {
		return DataChunkHeader{}, 0, errs.ErrInvalidChunkHeader
	}

	typ := format.ChunkType((b & maskDataType) >> 5)
	sizeField := int(b & maskDataSize)

	switch {
	case sizeField < sizeClass8:
		return DataChunkHeader{Type: typ, Size: sizeField}, 1, nil
	case sizeField == sizeClass8:
		if len(data) < 2 {
			return DataChunkHeader{}, 0, errs.ErrTruncated
		}

		return DataChunkHeader{Type: typ, Size: int(data[1])}, 2, nil
	default:
		if len(data) < 3 {
			return DataChunkHeader{}, 0, errs.ErrTruncated
		}

		return DataChunkHeader{Type: typ, Size: int(data[1]) | int(data[2])<<8}, 3, nil
	}
}
