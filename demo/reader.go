package demo

import (
	"io"

	"github.com/teeworlds-community/ddnetdemo/compress"
	"github.com/teeworlds-community/ddnetdemo/errs"
	"github.com/teeworlds-community/ddnetdemo/format"
	"github.com/teeworlds-community/ddnetdemo/internal/options"
	"github.com/teeworlds-community/ddnetdemo/section"
	"github.com/teeworlds-community/ddnetdemo/snapshot"
)

type readerState uint8

const (
	readerIdle readerState = iota
	readerOpen
)

// ReaderConfig holds the values ReaderOption mutates.
type ReaderConfig struct {
	maxChunkWords int
}

// ReaderOption configures optional Reader behavior.
type ReaderOption = options.Option[*ReaderConfig]

// WithMaxChunkWords overrides the maximum decoded word count the reader
// will accept for a single data chunk, bounding the allocation a
// maliciously large chunk size field can trigger. Default: maxChunkWords
// (a full snapshot at MaxItems/MaxDataSize).
func WithMaxChunkWords(n int) ReaderOption {
	return options.New(func(c *ReaderConfig) error {
		if n <= 0 {
			return errs.ErrLimitExceeded
		}
		c.maxChunkWords = n

		return nil
	})
}

// Info is the parsed header/marker/sha256-extension state exposed by
// (*Reader).Info after Open.
type Info struct {
	Version    uint8
	NetVersion string
	MapName    string
	MapSize    uint32
	MapCRC     uint32
	DemoType   string
	LengthSecs uint32
	Timestamp  string
	Markers    []int32
	HasSHA256  bool
	MapSHA256  [32]byte
}

// Reader parses a demo file from a caller-supplied stream. It is NOT
// thread-safe: each Reader is used by a single goroutine at a time.
type Reader struct {
	r     io.ReadSeeker
	codec compress.Codec
	state readerState

	maxChunkWords int

	info Info

	currentTick    int32
	hasCurrentTick bool

	lastSnapshot    snapshot.Snapshot
	hasLastSnapshot bool
}

// NewReader returns an idle Reader ready for Open.
func NewReader(opts ...ReaderOption) (*Reader, error) {
	cfg := &ReaderConfig{maxChunkWords: maxChunkWords}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Reader{
		codec:         compress.NewDataCodec(),
		state:         readerIdle,
		maxChunkWords: cfg.maxChunkWords,
	}, nil
}

// Open validates the magic, parses the header, the timeline marker
// table (file versions >= section.MarkerTableMinVersion), probes for
// the SHA-256 extension marker, and skips the declared map blob. r must
// support Seek so the SHA-256 probe can rewind when the marker is
// absent.
func (rd *Reader) Open(r io.ReadSeeker) error {
	if rd.state != readerIdle {
		return errs.ErrInvalidState
	}

	headerBuf := make([]byte, section.HeaderSize)
	if _, err := io.ReadFull(r, headerBuf); err != nil {
		return errs.ErrTruncated
	}
	hdr, err := section.ParseHeader(headerBuf)
	if err != nil {
		return err
	}

	info := Info{
		Version:    hdr.Version,
		NetVersion: hdr.NetVersion,
		MapName:    hdr.MapName,
		MapSize:    hdr.MapSize,
		MapCRC:     hdr.MapCRC,
		DemoType:   hdr.DemoType,
		LengthSecs: hdr.LengthSecs,
		Timestamp:  hdr.Timestamp,
	}

	if hdr.Version >= section.MarkerTableMinVersion {
		markerBuf := make([]byte, section.MarkerTableSize)
		if _, err := io.ReadFull(r, markerBuf); err != nil {
			return errs.ErrTruncated
		}
		markers, err := section.ParseTimelineMarkers(markerBuf)
		if err != nil {
			return err
		}
		info.Markers = markers.Ticks
	}

	probeBuf := make([]byte, section.SHA256MarkerSize+section.SHA256DigestSize)
	n, readErr := io.ReadFull(r, probeBuf)
	if readErr != nil && readErr != io.ErrUnexpectedEOF && readErr != io.EOF {
		return errs.ErrIO
	}
	if ext, _, ok := section.ProbeSHA256Extension(probeBuf[:n]); ok {
		info.HasSHA256 = true
		info.MapSHA256 = ext.Digest
	} else if _, err := r.Seek(-int64(n), io.SeekCurrent); err != nil {
		return errs.ErrIO
	}

	if info.MapSize > 0 {
		if _, err := r.Seek(int64(info.MapSize), io.SeekCurrent); err != nil {
			return errs.ErrIO
		}
	}

	rd.r = r
	rd.info = info
	rd.state = readerOpen
	rd.hasCurrentTick = false
	rd.hasLastSnapshot = false

	return nil
}

// Info returns the header/marker/sha256 state parsed by Open.
func (rd *Reader) Info() Info {
	return rd.info
}

// Next yields the next record in the chunk stream, or io.EOF once the
// stream is exhausted. Unknown data-chunk types are silently skipped.
func (rd *Reader) Next() (Record, error) {
	if rd.state != readerOpen {
		return Record{}, errs.ErrInvalidState
	}

	for {
		var headerByte [1]byte
		if _, err := io.ReadFull(rd.r, headerByte[:]); err != nil {
			if err == io.EOF {
				return Record{}, io.EOF
			}

			return Record{}, errs.ErrIO
		}

		if headerByte[0]&0x80 != 0 {
			return rd.readTickMarker(headerByte[0])
		}

		hdr, err := rd.readDataChunkHeader(headerByte[0])
		if err != nil {
			return Record{}, err
		}

		payload := make([]byte, hdr.Size)
		if hdr.Size > 0 {
			if _, err := io.ReadFull(rd.r, payload); err != nil {
				return Record{}, errs.ErrTruncated
			}
		}

		if hdr.Type != format.ChunkSnapshot && hdr.Type != format.ChunkDelta && hdr.Type != format.ChunkMessage {
			continue
		}

		words, err := readDataChunk(rd.codec, payload, rd.maxChunkWords)
		if err != nil {
			return Record{}, err
		}

		switch hdr.Type {
		case format.ChunkSnapshot:
			snap, err := snapshot.ParseFlatWords(words)
			if err != nil {
				return Record{}, err
			}
			rd.lastSnapshot = snap
			rd.hasLastSnapshot = true

			return Record{Kind: format.RecordSnapshot, Tick: rd.tickOrZero(), Snapshot: snap}, nil
		case format.ChunkDelta:
			to, err := snapshot.ApplyDelta(rd.lastSnapshot, words)
			if err != nil {
				return Record{}, err
			}
			rd.lastSnapshot = to
			rd.hasLastSnapshot = true

			return Record{Kind: format.RecordDelta, Tick: rd.tickOrZero(), Delta: to}, nil
		case format.ChunkMessage:
			return Record{Kind: format.RecordMessage, Tick: rd.tickOrZero(), Message: wordsToBytes(words)}, nil
		default:
			continue
		}
	}
}

func (rd *Reader) tickOrZero() int32 {
	if !rd.hasCurrentTick {
		return 0
	}

	return rd.currentTick
}

func (rd *Reader) readTickMarker(first byte) (Record, error) {
	rest := make([]byte, 0, 4)
	if rd.info.Version < section.TickCompressionVersion || first&0x20 == 0 {
		var buf [4]byte
		if _, err := io.ReadFull(rd.r, buf[:]); err != nil {
			return Record{}, errs.ErrTruncated
		}
		rest = buf[:]
	}

	full := append([]byte{first}, rest...)
	m, _, err := section.ParseTickMarker(full, rd.currentTick, rd.hasCurrentTick, rd.info.Version >= section.TickCompressionVersion)
	if err != nil {
		return Record{}, err
	}

	rd.currentTick = m.Tick
	rd.hasCurrentTick = true

	return Record{Kind: format.RecordTickMarker, Tick: m.Tick, Keyframe: m.Keyframe}, nil
}

func (rd *Reader) readDataChunkHeader(first byte) (section.DataChunkHeader, error) {
	typ := format.ChunkType((first & 0x60) >> 5)
	sizeField := int(first & 0x1f)

	switch {
	case sizeField < 30:
		return section.DataChunkHeader{Type: typ, Size: sizeField}, nil
	case sizeField == 30:
		var b [1]byte
		if _, err := io.ReadFull(rd.r, b[:]); err != nil {
			return section.DataChunkHeader{}, errs.ErrTruncated
		}

		return section.DataChunkHeader{Type: typ, Size: int(b[0])}, nil
	default:
		var b [2]byte
		if _, err := io.ReadFull(rd.r, b[:]); err != nil {
			return section.DataChunkHeader{}, errs.ErrTruncated
		}

		return section.DataChunkHeader{Type: typ, Size: int(b[0]) | int(b[1])<<8}, nil
	}
}

// UnpackDelta applies deltaWords (a decoded delta payload) against the
// reader's current reference snapshot and returns the result. It does
// not change the reference. Next has already applied every delta chunk
// it returns and made the result the new reference, so UnpackDelta is
// not a way to recompute a Record's Delta field: use that field
// directly. UnpackDelta fails with errs.ErrInvalidState until a snapshot
// or delta has been read.
func (rd *Reader) UnpackDelta(deltaWords []int32) (snapshot.Snapshot, error) {
	if !rd.hasLastSnapshot {
		return snapshot.Snapshot{}, errs.ErrInvalidState
	}

	return snapshot.ApplyDelta(rd.lastSnapshot, deltaWords)
}
