package section

import (
	"github.com/teeworlds-community/ddnetdemo/endian"
	"github.com/teeworlds-community/ddnetdemo/errs"
)

// be is the byte order every multi-byte header field is written and
// read with.
var be = endian.GetBigEndianEngine()

// Header is the demo file's fixed-layout leading structure: magic,
// version, net-version string, map name, map size (backfilled once the
// map blob is known), map CRC-32, demo type, length in seconds
// (backfilled by finish), and a local timestamp. All multi-byte fields
// are big-endian.
//
// Layout (176 bytes total):
//
//	offset  size  field
//	0       7     magic "TWDEMO\x00"
//	7       1     version
//	8       64    net-version string, NUL-padded
//	72      64    map name, NUL-padded
//	136     4     map size (backfilled)
//	140     4     map CRC-32
//	144     8     demo type, NUL-padded
//	152     4     length in seconds (backfilled)
//	156     20    local timestamp "YYYY-MM-DD HH-MM-SS"
type Header struct {
	Version    uint8
	NetVersion string
	MapName    string
	MapSize    uint32
	MapCRC     uint32
	DemoType   string
	LengthSecs uint32
	Timestamp  string
}

// Bytes serializes the header into a HeaderSize-byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	copy(b[0:MagicSize], Magic)
	b[7] = h.Version
	putPaddedString(b[8:72], h.NetVersion)
	putPaddedString(b[72:136], h.MapName)
	be.PutUint32(b[136:140], h.MapSize)
	be.PutUint32(b[140:144], h.MapCRC)
	putPaddedString(b[144:152], h.DemoType)
	be.PutUint32(b[152:156], h.LengthSecs)
	putPaddedString(b[156:176], h.Timestamp)

	return b
}

// ParseHeader parses a Header from the first HeaderSize bytes of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	if string(data[0:MagicSize]) != Magic {
		return Header{}, errs.ErrInvalidMagic
	}

	h := Header{
		Version:    data[7],
		NetVersion: trimPaddedString(data[8:72]),
		MapName:    trimPaddedString(data[72:136]),
		MapSize:    be.Uint32(data[136:140]),
		MapCRC:     be.Uint32(data[140:144]),
		DemoType:   trimPaddedString(data[144:152]),
		LengthSecs: be.Uint32(data[152:156]),
		Timestamp:  trimPaddedString(data[156:176]),
	}

	return h, nil
}

func putPaddedString(dst []byte, s string) {
	n := copy(dst, s)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}

func trimPaddedString(src []byte) string {
	n := 0
	for n < len(src) && src[n] != 0 {
		n++
	}

	return string(src[:n])
}
