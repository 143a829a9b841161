package section

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimelineMarkersRoundTrip(t *testing.T) {
	m := TimelineMarkers{Ticks: []int32{5, 100, 9999}}

	b := m.Bytes()
	require.Len(t, b, MarkerTableSize)

	got, err := ParseTimelineMarkers(b)
	require.NoError(t, err)
	require.Equal(t, m.Ticks, got.Ticks)
}

func TestTimelineMarkersEmpty(t *testing.T) {
	m := TimelineMarkers{}
	got, err := ParseTimelineMarkers(m.Bytes())
	require.NoError(t, err)
	require.Empty(t, got.Ticks)
}

func TestParseTimelineMarkersTruncated(t *testing.T) {
	_, err := ParseTimelineMarkers(make([]byte, MarkerTableSize-1))
	require.Error(t, err)
}

func TestParseTimelineMarkersInvalidCount(t *testing.T) {
	b := make([]byte, MarkerTableSize)
	be.PutUint32(b[0:4], MaxMarkers+1)
	_, err := ParseTimelineMarkers(b)
	require.Error(t, err)
}
