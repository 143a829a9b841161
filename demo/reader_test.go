package demo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teeworlds-community/ddnetdemo/section"
)

// TestReaderOpenReadsMarkerTableAtMinVersion guards against an off-by-
// one on the marker-table version gate: version 4 is the minimum
// version that carries a timeline marker table (section/const.go), so
// Open must read it rather than mistaking it for the SHA-256 probe or
// chunk stream.
func TestReaderOpenReadsMarkerTableAtMinVersion(t *testing.T) {
	buf := &seekBuffer{}

	hdr := section.Header{
		Version:    section.MarkerTableMinVersion,
		NetVersion: section.NetVersionString,
		MapName:    "ctf5",
		DemoType:   "client",
		Timestamp:  "2026-07-30 12-00-00",
	}
	_, err := buf.Write(hdr.Bytes())
	require.NoError(t, err)

	markers := section.TimelineMarkers{Ticks: []int32{5, 100}}
	_, err = buf.Write(markers.Bytes())
	require.NoError(t, err)

	buf.pos = 0
	r, err := NewReader()
	require.NoError(t, err)
	require.NoError(t, r.Open(buf))
	require.Equal(t, []int32{5, 100}, r.Info().Markers)
}

// TestReaderOpenSkipsMarkerTableBelowMinVersion confirms older files
// that predate the marker table (version < MarkerTableMinVersion) are
// not misread as having one.
func TestReaderOpenSkipsMarkerTableBelowMinVersion(t *testing.T) {
	buf := &seekBuffer{}

	hdr := section.Header{
		Version:    section.MarkerTableMinVersion - 1,
		NetVersion: section.NetVersionString,
		MapName:    "ctf5",
		DemoType:   "client",
		Timestamp:  "2026-07-30 12-00-00",
	}
	_, err := buf.Write(hdr.Bytes())
	require.NoError(t, err)

	buf.pos = 0
	r, err := NewReader()
	require.NoError(t, err)
	require.NoError(t, r.Open(buf))
	require.Empty(t, r.Info().Markers)
}
