package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKnownSizeVanillaTypes(t *testing.T) {
	size, ok := KnownSize(ObjFlag)
	require.True(t, ok)
	require.Equal(t, 3, size)

	size, ok = KnownSize(ObjCharacter)
	require.True(t, ok)
	require.Equal(t, 22, size, "dd_netobj_character_core (15) + 7 own fields")
}

func TestKnownSizeExtendedTypesAbsent(t *testing.T) {
	_, ok := KnownSize(ObjDDNetCharacter)
	require.False(t, ok, "extended types never have a fixed size entry")
}

func TestIsExtended(t *testing.T) {
	require.False(t, IsExtended(ObjFlag))
	require.False(t, IsExtended(EventDamageInd))
	require.True(t, IsExtended(ObjDDNetCharacter))
	require.True(t, IsExtended(ObjType(UUIDOffset)))
	require.False(t, IsExtended(ObjType(UUIDOffset-1)))
}

func TestUUIDForRoundTrip(t *testing.T) {
	u, ok := UUIDFor(ObjDDNetCharacter)
	require.True(t, ok)

	typ, ok := TypeForUUID(u)
	require.True(t, ok)
	require.Equal(t, ObjDDNetCharacter, typ)
}

func TestUUIDForUnregisteredType(t *testing.T) {
	_, ok := UUIDFor(ObjType(UUIDOffset + 9999))
	require.False(t, ok)
}

func TestTypeForUUIDUnknown(t *testing.T) {
	_, ok := TypeForUUID(UUID{0xff})
	require.False(t, ok)
}

func TestLaserSubtypeConstantsAreDistinct(t *testing.T) {
	require.Equal(t, LaserType(4), LaserDragger)
	require.Equal(t, LaserType(5), LaserGun)
	require.Equal(t, LaserGunType(2), LaserGunFreeze)
	require.Equal(t, EntityClass(10), EntityClassPickup)
	require.Equal(t, LaserFlag(1), LaserFlagNoPredict)
}
