package snapshot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teeworlds-community/ddnetdemo/protocol"
)

func TestComputeApplyDeltaIdentityOnNoChange(t *testing.T) {
	snap := buildSnapshot(t, addItem(int32(protocol.ObjFlag), 1, []int32{1, 2, 3}))

	delta := ComputeDelta(snap, snap)
	require.Equal(t, int32(0), delta[0], "no deleted keys")
	require.Equal(t, int32(0), delta[1], "no updates")

	got, err := ApplyDelta(snap, delta)
	require.NoError(t, err)
	require.Equal(t, snap.Items, got.Items)
}

func TestComputeApplyDeltaFieldChange(t *testing.T) {
	from := buildSnapshot(t, addItem(int32(protocol.ObjFlag), 1, []int32{1, 2, 3}))
	to := buildSnapshot(t, addItem(int32(protocol.ObjFlag), 1, []int32{1, 5, 3}))

	delta := ComputeDelta(from, to)
	require.Equal(t, int32(0), delta[0])
	require.Equal(t, int32(1), delta[1])

	got, err := ApplyDelta(from, delta)
	require.NoError(t, err)
	require.Equal(t, to.Items, got.Items)
}

func TestComputeApplyDeltaNewAndDeletedItems(t *testing.T) {
	from := buildSnapshot(t,
		addItem(int32(protocol.ObjFlag), 1, []int32{1}),
		addItem(int32(protocol.ObjFlag), 2, []int32{2}),
	)
	to := buildSnapshot(t,
		addItem(int32(protocol.ObjFlag), 1, []int32{1}),
		addItem(int32(protocol.ObjFlag), 3, []int32{3}),
	)

	delta := ComputeDelta(from, to)
	require.Equal(t, int32(1), delta[0], "item id 2 deleted")
	require.Equal(t, int32(1), delta[1], "item id 3 added")

	got, err := ApplyDelta(from, delta)
	require.NoError(t, err)
	require.ElementsMatch(t, to.Items, got.Items)
}

func TestComputeApplyDeltaExtendedTypeCarriesSizeWord(t *testing.T) {
	from := buildSnapshot(t)
	to := buildSnapshot(t, addItem(int32(protocol.ObjDDNetCharacter), 1, []int32{1, 2, 3}))

	delta := ComputeDelta(from, to)
	got, err := ApplyDelta(from, delta)
	require.NoError(t, err)
	require.ElementsMatch(t, to.Items, got.Items)
}

func TestApplyDeltaTruncated(t *testing.T) {
	from := buildSnapshot(t, addItem(int32(protocol.ObjFlag), 1, []int32{1}))

	_, err := ApplyDelta(from, []int32{1})
	require.Error(t, err)
}

func TestApplyDeltaWrappingDiff(t *testing.T) {
	from := buildSnapshot(t, addItem(int32(protocol.ObjFlag), 1, []int32{2147483647}))
	to := buildSnapshot(t, addItem(int32(protocol.ObjFlag), 1, []int32{-2147483648}))

	delta := ComputeDelta(from, to)
	got, err := ApplyDelta(from, delta)
	require.NoError(t, err)
	require.Equal(t, to.Items, got.Items)
}
