package snapshot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyRoundTrip(t *testing.T) {
	cases := []struct {
		wireType, id int32
	}{
		{0, 0},
		{1, 42},
		{0x7FFF, 0xFFFF},
		{9, 12345},
	}

	for _, c := range cases {
		k := NewKey(c.wireType, c.id)
		require.Equal(t, c.wireType, k.Type())
		require.Equal(t, c.id, k.ID())
	}
}
