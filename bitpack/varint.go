// Package bitpack implements the variable-length signed integer codec used
// throughout the demo wire format: every 32-bit integer that crosses the
// wire (snapshot item payloads, delta differences, message fields) is first
// packed through this codec before the Huffman stage compresses the
// resulting byte stream.
//
// Encoding: the first byte carries a continuation bit (bit 7), a sign bit
// (bit 6), and the low 6 magnitude bits (bits 5-0). Negative values are
// bitwise-inverted before their magnitude is packed, so the sign bit alone
// distinguishes sign without a separate zig-zag multiply. Subsequent bytes
// each carry a continuation bit and 7 more magnitude bits, for a maximum
// of 5 bytes (1 + 4), the last of which only needs 4 further bits to cover
// a full 32-bit magnitude.
package bitpack

import (
	"github.com/teeworlds-community/ddnetdemo/errs"
)

// MaxEncodedLen is the maximum number of bytes a single packed integer can
// occupy.
const MaxEncodedLen = 5

// continuation byte shift/mask tables for bytes 2-5, mirroring the fixed
// shift amounts used by the reference packer (6, 13, 20, 27).
var unpackShifts = [4]uint{6, 13, 20, 27}
var unpackMasks = [4]int32{0x7F, 0x7F, 0x7F, 0x0F}

// Pack appends the variable-length encoding of v to dst and returns the
// extended slice.
func Pack(dst []byte, v int32) []byte {
	var first byte
	u := v
	if u < 0 {
		first |= 0x40
		u = ^u
	}
	first |= byte(u) & 0x3F
	u >>= 6

	if u == 0 {
		return append(dst, first)
	}

	first |= 0x80
	dst = append(dst, first)

	for u != 0 {
		b := byte(u) & 0x7F
		u >>= 7
		if u != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
	}

	return dst
}

// Unpack decodes one variable-length integer from the front of src,
// returning the value and the number of bytes consumed.
func Unpack(src []byte) (int32, int, error) {
	if len(src) == 0 {
		return 0, 0, errs.ErrVarintTruncated
	}

	sign := int32(src[0]>>6) & 1
	val := int32(src[0]) & 0x3F
	n := 1

	cont := src[0]&0x80 != 0
	for i := 0; cont && i < len(unpackMasks); i++ {
		if n >= len(src) {
			return 0, 0, errs.ErrVarintTruncated
		}
		b := src[n]
		val |= (int32(b) & unpackMasks[i]) << unpackShifts[i]
		n++
		cont = b&0x80 != 0
	}

	if cont {
		// A 6th continuation bit would run past the 32-bit magnitude
		// the format can represent.
		return 0, 0, errs.ErrVarintTooManyCont
	}

	val ^= -sign

	return val, n, nil
}

// PackInts appends the variable-length encoding of every value in vs to
// dst and returns the extended slice.
func PackInts(dst []byte, vs []int32) []byte {
	for _, v := range vs {
		dst = Pack(dst, v)
	}

	return dst
}

// UnpackInts decodes count variable-length integers from src, appending
// them to dst and returning the extended slice.
func UnpackInts(dst []int32, src []byte, count int) ([]int32, error) {
	for i := 0; i < count; i++ {
		v, n, err := Unpack(src)
		if err != nil {
			return dst, err
		}
		dst = append(dst, v)
		src = src[n:]
	}

	return dst, nil
}
