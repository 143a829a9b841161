package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunkTypeString(t *testing.T) {
	require.Equal(t, "Snapshot", ChunkSnapshot.String())
	require.Equal(t, "Message", ChunkMessage.String())
	require.Equal(t, "Delta", ChunkDelta.String())
	require.Equal(t, "Unknown", ChunkType(0).String())
}

func TestRecordKindString(t *testing.T) {
	require.Equal(t, "TickMarker", RecordTickMarker.String())
	require.Equal(t, "Snapshot", RecordSnapshot.String())
	require.Equal(t, "Delta", RecordDelta.String())
	require.Equal(t, "Message", RecordMessage.String())
	require.Equal(t, "Unknown", RecordKind(99).String())
}
