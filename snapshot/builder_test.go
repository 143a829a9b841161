package snapshot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teeworlds-community/ddnetdemo/errs"
	"github.com/teeworlds-community/ddnetdemo/protocol"
)

func TestBuilderAddVanillaItem(t *testing.T) {
	b := NewBuilder()
	data, err := b.Add(int32(protocol.ObjFlag), 3, 3)
	require.NoError(t, err)
	copy(data, []int32{1, 2, 3})

	snap := b.Finish()
	require.Len(t, snap.Items, 1)

	it, ok := snap.Find(int32(protocol.ObjFlag), 3)
	require.True(t, ok)
	require.Equal(t, []int32{1, 2, 3}, it.Data)
}

func TestBuilderSplicesEXItemForExtendedType(t *testing.T) {
	b := NewBuilder()

	_, err := b.Add(int32(protocol.ObjDDNetCharacter), 1, 5)
	require.NoError(t, err)
	_, err = b.Add(int32(protocol.ObjDDNetCharacter), 2, 5)
	require.NoError(t, err)

	snap := b.Finish()
	// One EX item (the UUID splice) plus the two character items.
	require.Len(t, snap.Items, 3)

	exItem, ok := snap.ItemAt(0)
	require.True(t, ok)
	require.Equal(t, int32(protocol.ObjEx), exItem.Key.Type())
	require.Equal(t, int32(protocol.MaxType), exItem.Key.ID())
	require.Len(t, exItem.Data, 4)

	internalType := exItem.Key.ID()
	for _, id := range []int32{1, 2} {
		it, ok := snap.Find(internalType, id)
		require.True(t, ok)
		require.Len(t, it.Data, 5)
	}

	// The items appear with the same substituted internal wire type, not
	// the logical extended type.
	_, ok = snap.Find(int32(protocol.ObjDDNetCharacter), 1)
	require.False(t, ok)
}

func TestBuilderSplicesOneEXItemPerExtendedTypePerSnapshot(t *testing.T) {
	b := NewBuilder()

	_, err := b.Add(int32(protocol.ObjDDNetCharacter), 1, 1)
	require.NoError(t, err)
	_, err = b.Add(int32(protocol.ObjDDNetLaser), 1, 1)
	require.NoError(t, err)
	_, err = b.Add(int32(protocol.ObjDDNetCharacter), 2, 1)
	require.NoError(t, err)

	snap := b.Finish()
	// Two EX items (one per distinct extended type) plus three data items.
	exCount := 0
	for _, it := range snap.Items {
		if it.Key.Type() == int32(protocol.ObjEx) {
			exCount++
		}
	}
	require.Equal(t, 2, exCount)
	require.Len(t, snap.Items, 5)
}

func TestBuilderResetClearsExtendedIDMapping(t *testing.T) {
	b := NewBuilder()

	_, err := b.Add(int32(protocol.ObjDDNetCharacter), 1, 1)
	require.NoError(t, err)
	first := b.Finish()

	b.Reset()

	_, err = b.Add(int32(protocol.ObjDDNetCharacter), 1, 1)
	require.NoError(t, err)
	second := b.Finish()

	firstEX, _ := first.ItemAt(0)
	secondEX, _ := second.ItemAt(0)
	require.Equal(t, firstEX.Key, secondEX.Key, "internal id assignment restarts from MaxType after Reset")
}

func TestBuilderAddRejectsTooManyItems(t *testing.T) {
	b := NewBuilder()
	for i := 0; i < MaxItems; i++ {
		_, err := b.Add(int32(protocol.ObjFlag), int32(i), 0)
		require.NoError(t, err)
	}

	_, err := b.Add(int32(protocol.ObjFlag), int32(MaxItems), 0)
	require.ErrorIs(t, err, errs.ErrTooManyItems)
}

func TestBuilderAddRejectsOversizedData(t *testing.T) {
	b := NewBuilder()
	_, err := b.Add(int32(protocol.ObjFlag), 0, MaxDataSize)
	require.ErrorIs(t, err, errs.ErrItemTooLarge)

	// A failed Add must not leave partial state behind.
	snap := b.Finish()
	require.Empty(t, snap.Items)
}

func TestBuilderWarnFuncCalledForUnregisteredExtendedType(t *testing.T) {
	b := NewBuilder()
	var warned string
	b.SetWarnFunc(func(msg string) { warned = msg })

	const unregistered = protocol.ObjType(protocol.UUIDOffset + 1000)
	_, err := b.Add(int32(unregistered), 1, 1)
	require.NoError(t, err)
	require.NotEmpty(t, warned)
}
