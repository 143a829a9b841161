// Package ddnetdemo provides a library for reading and writing DDNet 0.6
// demo (replay) files: the tick-stamped stream of game-state snapshots,
// deltas, and messages that a DDNet server or client records during a
// session.
//
// A demo file is a fixed-size header, a timeline marker table, an
// optional SHA-256 map digest, the embedded map file, and then a stream
// of chunks: tick markers, compressed full snapshots, compressed deltas
// against the previous snapshot, and opaque messages. Snapshot and
// delta payloads are packed with a fixed two-stage codec (a
// variable-length integer pass, then a static canonical Huffman pass)
// so that a file produced by this module's Writer is byte-compatible
// with existing DDNet demo players.
//
// # Basic usage
//
// Writing a demo:
//
//	w, _ := ddnetdemo.NewWriter()
//	_ = w.Begin(f, "ctf5", mapCRC, "client")
//	_ = w.WriteMap(mapSHA256, mapBytes)
//	_ = w.WriteSnapshot(tick, snap)
//	_ = w.Finish()
//
// Reading a demo:
//
//	r, _ := ddnetdemo.NewReader()
//	_ = r.Open(f)
//	for {
//	    rec, err := r.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    // handle rec.Kind (format.RecordTickMarker/RecordSnapshot/
//	    // RecordDelta/RecordMessage)
//	}
//
// # Package structure
//
// This package is a thin convenience wrapper around demo.Writer and
// demo.Reader. For direct control over options, or to use the lower
// layers independently (bitpack, huffman, compress, snapshot, section,
// protocol), import those packages directly.
package ddnetdemo

import (
	"github.com/teeworlds-community/ddnetdemo/demo"
	"github.com/teeworlds-community/ddnetdemo/section"
)

// Default tick rate and marker capacity, re-exported for callers that
// want to reference them without importing section directly.
const (
	DefaultTickRate   = section.ServerTickRate
	DefaultMaxMarkers = section.MaxMarkers
)

// NewWriter returns an idle demo.Writer ready for Begin.
func NewWriter(opts ...demo.WriterOption) (*demo.Writer, error) {
	return demo.NewWriter(opts...)
}

// NewReader returns an idle demo.Reader ready for Open.
func NewReader(opts ...demo.ReaderOption) (*demo.Reader, error) {
	return demo.NewReader(opts...)
}
