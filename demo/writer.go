package demo

import (
	"io"
	"time"

	"github.com/teeworlds-community/ddnetdemo/compress"
	"github.com/teeworlds-community/ddnetdemo/endian"
	"github.com/teeworlds-community/ddnetdemo/errs"
	"github.com/teeworlds-community/ddnetdemo/format"
	"github.com/teeworlds-community/ddnetdemo/internal/options"
	"github.com/teeworlds-community/ddnetdemo/section"
	"github.com/teeworlds-community/ddnetdemo/snapshot"
)

// be is the byte order the backfilled header fields are written with,
// matching section.Header's own field layout.
var be = endian.GetBigEndianEngine()

// writerState is the lifecycle state of a Writer, enforced on every
// exported method.
type writerState uint8

const (
	writerIdle writerState = iota
	writerOpen
	writerMapEmbedded
	writerStreaming
	writerFinished
)

// WriterConfig holds the values WriterOption mutates; it exists so
// options can be validated and applied before the Writer's immutable
// fields (tick rate, marker capacity) are set.
type WriterConfig struct {
	tickRate   int32
	maxMarkers int
}

// WriterOption configures optional Writer behavior. A Writer built with
// no options uses the format's own defaults (50 Hz server tick rate, 64
// timeline markers).
type WriterOption = options.Option[*WriterConfig]

// WithTickRate overrides the server tick rate used for keyframe cadence
// and the backfilled length field. Default: section.ServerTickRate.
func WithTickRate(rate int32) WriterOption {
	return options.NoError(func(c *WriterConfig) { c.tickRate = rate })
}

// WithMaxMarkers overrides the timeline marker capacity. It cannot
// exceed section.MaxMarkers, the table's fixed on-disk width. Default:
// section.MaxMarkers.
func WithMaxMarkers(n int) WriterOption {
	return options.New(func(c *WriterConfig) error {
		if n < 0 || n > section.MaxMarkers {
			return errs.ErrLimitExceeded
		}
		c.maxMarkers = n

		return nil
	})
}

// Writer produces a demo file onto a caller-supplied stream. It is NOT
// thread-safe: each Writer is used by a single goroutine at a time, and
// it is not reusable past Finish.
//
// The underlying stream must support Seek: Begin and WriteMap reserve
// header fields that are backfilled in place once their values are
// known (map size, then length and the marker table at Finish), exactly
// as the reference writer seeks its FILE* backwards to patch them.
type Writer struct {
	w     io.WriteSeeker
	codec compress.Codec
	state writerState

	tickRate   int32
	maxMarkers int

	markers []int32

	// w2Bytes is reused scratch memory for each chunk's framed bytes.
	w2Bytes []byte

	lastSnapshot    snapshot.Snapshot
	hasLastSnapshot bool

	lastKeyframeTick int32
	hasLastKeyframe  bool

	lastTickMarker    int32
	hasLastTickMarker bool

	firstTick    int32
	hasFirstTick bool
}

// NewWriter returns an idle Writer ready for Begin.
func NewWriter(opts ...WriterOption) (*Writer, error) {
	cfg := &WriterConfig{tickRate: section.ServerTickRate, maxMarkers: section.MaxMarkers}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Writer{
		codec:      compress.NewDataCodec(),
		state:      writerIdle,
		tickRate:   cfg.tickRate,
		maxMarkers: cfg.maxMarkers,
	}, nil
}

// Begin writes the file header (with placeholders for map size, length,
// and the marker table) and an all-zero marker block, transitioning to
// the Open state. w must support Seek so later calls can backfill those
// placeholders.
func (wr *Writer) Begin(w io.WriteSeeker, mapName string, mapCRC uint32, demoType string) error {
	if wr.state != writerIdle {
		return errs.ErrInvalidState
	}

	hdr := section.Header{
		Version:    section.CurrentVersion,
		NetVersion: section.NetVersionString,
		MapName:    mapName,
		MapSize:    0,
		MapCRC:     mapCRC,
		DemoType:   demoType,
		LengthSecs: 0,
		Timestamp:  time.Now().Format("2006-01-02 15-04-05"),
	}

	if _, err := w.Write(hdr.Bytes()); err != nil {
		return errs.ErrIO
	}

	empty := section.TimelineMarkers{}
	if _, err := w.Write(empty.Bytes()); err != nil {
		return errs.ErrIO
	}

	wr.w = w
	wr.state = writerOpen
	wr.lastTickMarker = -1
	wr.hasLastTickMarker = false
	wr.firstTick = -1
	wr.hasFirstTick = false
	wr.lastKeyframeTick = -1
	wr.hasLastKeyframe = false
	wr.hasLastSnapshot = false
	wr.markers = wr.markers[:0]

	return nil
}

// WriteMap backfills the header's map size field, then emits the
// SHA-256 extension marker and the map bytes themselves, transitioning
// to MapEmbedded. sha256 must be exactly 32 bytes.
func (wr *Writer) WriteMap(sha256 [32]byte, mapBytes []byte) error {
	if wr.state != writerOpen {
		return errs.ErrInvalidState
	}

	mapSize := uint32(len(mapBytes)) //nolint:gosec
	if err := wr.backfillMapSize(mapSize); err != nil {
		return err
	}

	ext := section.SHA256Extension{Digest: sha256}
	if _, err := wr.w.Write(ext.Bytes()); err != nil {
		return errs.ErrIO
	}
	if len(mapBytes) > 0 {
		if _, err := wr.w.Write(mapBytes); err != nil {
			return errs.ErrIO
		}
	}

	wr.state = writerMapEmbedded

	return nil
}

func (wr *Writer) backfillMapSize(size uint32) error {
	pos, err := wr.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return errs.ErrIO
	}

	buf := be.AppendUint32(nil, size)

	if _, err := wr.w.Seek(mapSizeOffset, io.SeekStart); err != nil {
		return errs.ErrIO
	}
	if _, err := wr.w.Write(buf); err != nil {
		return errs.ErrIO
	}
	if _, err := wr.w.Seek(pos, io.SeekStart); err != nil {
		return errs.ErrIO
	}

	return nil
}

const mapSizeOffset = 136 // offset of Header.MapSize, see section.Header

// WriteSnapshot writes a full keyframe or, if the cadence allows, a
// delta against the last written snapshot. A zero-difference delta is
// suppressed (no data chunk is emitted), though the tick marker still
// fires. Transitions to Streaming on first call.
func (wr *Writer) WriteSnapshot(tick int32, snap snapshot.Snapshot) error {
	if wr.state != writerMapEmbedded && wr.state != writerStreaming {
		return errs.ErrInvalidState
	}
	wr.state = writerStreaming

	keyframe := !wr.hasLastKeyframe || tick-wr.lastKeyframeTick > 5*wr.tickRate

	if err := wr.writeTickMarker(tick, keyframe); err != nil {
		return err
	}

	if keyframe {
		words, err := snap.FlatWords()
		if err != nil {
			return err
		}

		var werr error
		wr.w2Bytes, werr = writeDataChunk(wr.w2Bytes[:0], wr.codec, format.ChunkSnapshot, words)
		if werr != nil {
			return werr
		}
		if _, err := wr.w.Write(wr.w2Bytes); err != nil {
			return errs.ErrIO
		}

		wr.lastKeyframeTick = tick
		wr.hasLastKeyframe = true
	} else {
		deltaWords := snapshot.ComputeDelta(wr.lastSnapshot, snap)
		// deltaWords always carries the 3-word counters header; a
		// delta with nothing to say is exactly that header with both
		// counts zero.
		if deltaWords[0] != 0 || deltaWords[1] != 0 {
			var werr error
			wr.w2Bytes, werr = writeDataChunk(wr.w2Bytes[:0], wr.codec, format.ChunkDelta, deltaWords)
			if werr != nil {
				return werr
			}
			if _, err := wr.w.Write(wr.w2Bytes); err != nil {
				return errs.ErrIO
			}
		}
	}

	wr.lastSnapshot = snap
	wr.hasLastSnapshot = true

	return nil
}

// WriteMessage writes an opaque message payload as a data chunk. A
// reader attributes a message to the most recent tick marker, so
// WriteMessage first emits a (non-keyframe) tick marker for tick when no
// marker has been written yet or the last one was for a different tick;
// when the last marker already matches tick, no new marker is written.
func (wr *Writer) WriteMessage(tick int32, payload []byte) error {
	if wr.state != writerMapEmbedded && wr.state != writerStreaming {
		return errs.ErrInvalidState
	}
	wr.state = writerStreaming

	if !wr.hasLastTickMarker || wr.lastTickMarker != tick {
		if err := wr.writeTickMarker(tick, false); err != nil {
			return err
		}
	}

	var err error
	wr.w2Bytes, err = writeRawMessageChunk(wr.w2Bytes[:0], wr.codec, payload)
	if err != nil {
		return err
	}
	if _, err := wr.w.Write(wr.w2Bytes); err != nil {
		return errs.ErrIO
	}

	return nil
}

// AddMarker records tick as a timeline marker, surfaced in the finished
// file's marker table (capped at the configured marker capacity; excess
// calls are silently ignored, matching the reference writer).
func (wr *Writer) AddMarker(tick int32) error {
	if wr.state != writerMapEmbedded && wr.state != writerStreaming {
		return errs.ErrInvalidState
	}

	if len(wr.markers) < wr.maxMarkers {
		wr.markers = append(wr.markers, tick)
	}

	return nil
}

func (wr *Writer) writeTickMarker(tick int32, keyframe bool) error {
	b := section.AppendTickMarker(nil, section.TickMarker{Tick: tick, Keyframe: keyframe},
		wr.lastTickMarker, wr.hasLastTickMarker, true)
	if _, err := wr.w.Write(b); err != nil {
		return errs.ErrIO
	}

	wr.lastTickMarker = tick
	wr.hasLastTickMarker = true
	if !wr.hasFirstTick {
		wr.firstTick = tick
		wr.hasFirstTick = true
	}

	return nil
}

// Finish backfills the length field and rewrites the timeline marker
// table with the recorded markers, transitioning to Finished. It does
// not close the caller's stream.
func (wr *Writer) Finish() error {
	if wr.state != writerMapEmbedded && wr.state != writerStreaming {
		return errs.ErrInvalidState
	}

	length := uint32(0)
	if wr.hasFirstTick {
		length = uint32((wr.lastTickMarker - wr.firstTick) / wr.tickRate) //nolint:gosec
	}

	if _, err := wr.w.Seek(lengthOffset, io.SeekStart); err != nil {
		return errs.ErrIO
	}
	if _, err := wr.w.Write(be.AppendUint32(nil, length)); err != nil {
		return errs.ErrIO
	}

	markers := section.TimelineMarkers{Ticks: wr.markers}
	if _, err := wr.w.Seek(section.HeaderSize, io.SeekStart); err != nil {
		return errs.ErrIO
	}
	if _, err := wr.w.Write(markers.Bytes()); err != nil {
		return errs.ErrIO
	}

	if _, err := wr.w.Seek(0, io.SeekEnd); err != nil {
		return errs.ErrIO
	}

	wr.state = writerFinished

	return nil
}

const lengthOffset = 152 // offset of Header.LengthSecs, see section.Header
