package protocol

// UUID is a 16-byte identifier, transmitted on the wire as four
// big-endian 32-bit words (see package snapshot's EX item payload
// encoding).
type UUID [16]byte

// registryEntry pairs a logical extended type with its compile-time
// UUID, mirroring the original format's static uuid table.
type registryEntry struct {
	typ  ObjType
	uuid UUID
}

// registry is the fixed UUID ↔ extended-type table. Order matches the
// extended type enumeration; it is not semantically significant since
// lookups are by type or by UUID, never by position.
var registry = []registryEntry{
	{ObjMyOwnObject, UUID{0x0d, 0xc7, 0x7a, 0x02, 0xbf, 0xee, 0x3a, 0x53, 0xac, 0x8e, 0x0b, 0xb0, 0x24, 0x1b, 0xd7, 0x22}},
	{ObjDDNetCharacter, UUID{0x76, 0xce, 0x45, 0x5b, 0xf9, 0xeb, 0x3a, 0x48, 0xad, 0xd7, 0xe0, 0x4b, 0x94, 0x1d, 0x04, 0x5c}},
	{ObjDDNetPlayer, UUID{0x22, 0xca, 0x93, 0x8d, 0x13, 0x80, 0x3e, 0x2b, 0x9e, 0x7b, 0xd2, 0x55, 0x8e, 0xa6, 0xbe, 0x11}},
	{ObjGameInfoEx, UUID{0x93, 0x3d, 0xea, 0x6a, 0xda, 0x79, 0x30, 0xea, 0xa9, 0x8f, 0x8a, 0xf0, 0x36, 0x89, 0xa9, 0x45}},
	{ObjDDRaceProjectile, UUID{0x0e, 0x6d, 0xb8, 0x5c, 0x2b, 0x61, 0x38, 0x6f, 0xbb, 0xf2, 0xd0, 0xd0, 0x47, 0x1b, 0x92, 0x72}},
	{ObjDDNetLaser, UUID{0x29, 0xde, 0x68, 0xa2, 0x69, 0x28, 0x31, 0xb8, 0x83, 0x60, 0xa2, 0x30, 0x7e, 0x0d, 0x84, 0x4f}},
	{ObjDDNetProjectile, UUID{0x65, 0x50, 0xfb, 0xce, 0xf3, 0x17, 0x3b, 0x31, 0x8f, 0xfe, 0xd2, 0xb3, 0x7f, 0x3a, 0xb4, 0x0e}},
	{ObjDDNetPickup, UUID{0xea, 0x5e, 0x4a, 0x51, 0x58, 0xfb, 0x36, 0x84, 0x96, 0xe4, 0xe0, 0xd2, 0x67, 0xf4, 0xca, 0x65}},
	{ObjDDNetSpectatorInfo, UUID{0xd1, 0x33, 0x07, 0xb2, 0x9a, 0x19, 0x37, 0xcb, 0x8f, 0x8c, 0x07, 0xc7, 0x18, 0x52, 0x18, 0x83}},
	{EventBirthday, UUID{0x1f, 0xd3, 0x57, 0x46, 0x62, 0x63, 0x35, 0x8c, 0xb4, 0xd6, 0x6e, 0xf6, 0x0e, 0x0e, 0xfa, 0xaa}},
	{EventFinish, UUID{0x68, 0xbf, 0x89, 0x39, 0xef, 0x55, 0x38, 0x78, 0x90, 0x82, 0x13, 0x52, 0x7e, 0xb0, 0xa5, 0x97}},
	{ObjMyOwnEvent, UUID{0x0c, 0x4f, 0xd2, 0x7d, 0x47, 0xe3, 0x38, 0x71, 0xa2, 0x26, 0x9f, 0x41, 0x74, 0x86, 0xa3, 0x11}},
	{ObjSpecChar, UUID{0x4b, 0x80, 0x1c, 0x74, 0xe2, 0x4c, 0x3c, 0xe0, 0xb9, 0x2c, 0xb7, 0x54, 0xd0, 0x2c, 0xfc, 0x8a}},
	{ObjSwitchState, UUID{0xec, 0x15, 0xe6, 0x69, 0xce, 0x11, 0x33, 0x67, 0xae, 0x8e, 0xb9, 0x0e, 0x5b, 0x27, 0xb9, 0xd5}},
	{ObjEntityEx, UUID{0x2d, 0xe9, 0xae, 0xc3, 0x32, 0xe4, 0x39, 0x86, 0x8f, 0x7e, 0xe7, 0x45, 0x9d, 0xa7, 0xf5, 0x35}},
	{EventMapSoundWorld, UUID{0x54, 0xec, 0xad, 0x2e, 0xbf, 0xad, 0x3b, 0xe5, 0x89, 0x03, 0x62, 0x1b, 0xa0, 0x52, 0x45, 0x8e}},
}

var (
	typeToUUID = make(map[ObjType]UUID, len(registry))
	uuidToType = make(map[UUID]ObjType, len(registry))
)

func init() {
	for _, e := range registry {
		typeToUUID[e.typ] = e.uuid
		uuidToType[e.uuid] = e.typ
	}
}

// UUIDFor returns the registered UUID for an extended logical type, and
// whether it has an entry at all. An implementation that hits false
// embeds a zeroed UUID slot per the format's documented fallback and
// should warn its caller (see snapshot.Builder's warn hook).
func UUIDFor(t ObjType) (UUID, bool) {
	u, ok := typeToUUID[t]

	return u, ok
}

// TypeForUUID reverses UUIDFor: given a UUID read from an EX item, it
// returns the registered logical type, if any.
func TypeForUUID(u UUID) (ObjType, bool) {
	t, ok := uuidToType[u]

	return t, ok
}

// SHA256ExtensionUUID identifies the optional SHA-256 extension marker
// that may follow the timeline marker table in a demo file header.
var SHA256ExtensionUUID = UUID{0x6b, 0xe6, 0xda, 0x4a, 0xce, 0xbd, 0x38, 0x0c, 0x9b, 0x5b, 0x12, 0x89, 0xc8, 0x42, 0xd7, 0x80}
