package section

import (
	"github.com/teeworlds-community/ddnetdemo/errs"
)

// TimelineMarkers is the fixed-capacity table of tick positions recorded
// for UI seeking. It immediately follows the file header on disk: a
// 4-byte count followed by MaxMarkers 4-byte tick slots, unused slots
// zeroed.
type TimelineMarkers struct {
	Ticks []int32
}

// Bytes serializes the marker table into its fixed MarkerTableSize-byte
// on-disk form. Only up to MaxMarkers entries are written; callers must
// enforce the limit when recording markers (see demo.Writer.AddMarker).
func (m TimelineMarkers) Bytes() []byte {
	b := make([]byte, MarkerTableSize)
	be.PutUint32(b[0:4], uint32(len(m.Ticks))) //nolint:gosec
	for i, t := range m.Ticks {
		if i >= MaxMarkers {
			break
		}
		be.PutUint32(b[4+i*4:8+i*4], uint32(t)) //nolint:gosec
	}

	return b
}

// ParseTimelineMarkers parses a TimelineMarkers table from the front of
// data.
func ParseTimelineMarkers(data []byte) (TimelineMarkers, error) {
	if len(data) < MarkerTableSize {
		return TimelineMarkers{}, errs.ErrTruncated
	}

	count := be.Uint32(data[0:4])
	if count > MaxMarkers {
		return TimelineMarkers{}, errs.ErrInvalidMarkerCount
	}

	ticks := make([]int32, count)
	for i := range ticks {
		ticks[i] = int32(be.Uint32(data[4+i*4 : 8+i*4])) //nolint:gosec
	}

	return TimelineMarkers{Ticks: ticks}, nil
}
