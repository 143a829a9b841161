// Package section implements the demo file's fixed-layout wire
// structures: the file header, the timeline marker table, the optional
// SHA-256 extension marker, and the chunk/tick-marker byte headers that
// frame every record in the stream. Each structure has a serializer
// (a Bytes() []byte method, or an AppendXxx function for the chunk and
// tick-marker headers) and a parser (a ParseXxx function, or
// ProbeSHA256Extension for the optional extension marker).
//
// All multi-byte integers in the file header and marker table are
// big-endian; everything downstream of the chunk stream (snapshot/delta
// payloads) is little-endian by convention of the varint codec, which is
// byte-oriented and endian-agnostic by construction.
package section

const (
	// HeaderSize is the fixed size, in bytes, of the demo file header:
	// magic(7) + version(1) + net-version(64) + map name(64) +
	// map size(4) + map crc(4) + demo type(8) + length(4) +
	// timestamp(20) = 176 bytes.
	HeaderSize = 176

	// MagicSize is the length of the fixed magic string at offset 0.
	MagicSize = 7
	// Magic is the literal magic bytes every demo file begins with.
	Magic = "TWDEMO\x00"

	// NetVersionSize is the fixed width of the NUL-padded net-version
	// string field.
	NetVersionSize = 64
	// MapNameSize is the fixed width of the NUL-padded map name field.
	MapNameSize = 64
	// DemoTypeSize is the fixed width of the NUL-padded demo type field.
	DemoTypeSize = 8
	// TimestampSize is the fixed width of the local timestamp field,
	// formatted "YYYY-MM-DD HH-MM-SS".
	TimestampSize = 20

	// CurrentVersion is the version byte this module emits when writing.
	CurrentVersion = 6
	// TickCompressionVersion is the minimum file version whose tick
	// markers may use the compact tick-delta form. Files below this
	// version always carry absolute 5-byte tick markers.
	TickCompressionVersion = 5

	// MarkerTableMinVersion is the minimum file version that carries a
	// timeline marker table at all. Older files have none.
	MarkerTableMinVersion = 4

	// NetVersionString is the net-version field this module emits.
	NetVersionString = "0.6 626fce9a778df4d4"

	// MaxMarkers is the fixed capacity of the timeline marker table.
	MaxMarkers = 64

	// MarkerCountSize is the width of the marker-count field preceding
	// the marker table.
	MarkerCountSize = 4
	// MarkerTableSize is the total byte size of the marker table,
	// including the leading count field.
	MarkerTableSize = MarkerCountSize + MaxMarkers*4

	// SHA256MarkerSize is the size of the optional SHA-256 extension's
	// UUID tag; it is followed by SHA256DigestSize bytes of digest.
	SHA256MarkerSize = 16
	// SHA256DigestSize is the size of the SHA-256 digest that follows
	// the extension UUID, when present.
	SHA256DigestSize = 32

	// ServerTickRate is the fixed default simulation rate, in ticks per
	// second, used for keyframe cadence and the backfilled length field.
	ServerTickRate = 50
)
