// Package protocol carries the fixed DDNet 0.6 network object/event type
// identifiers, their known wire-payload sizes, and the UUID registry used
// to splice extended (UUID-namespace) types into the snapshot's 16-bit
// wire type field. None of this package attaches behavior to the game
// semantics of these types - only their identities and fixed widths,
// which the snapshot delta engine needs to decide whether an update
// carries an explicit size word.
package protocol

// MaxType is the largest representable wire type id (15 bits). Extended
// items are assigned internal ids counting down from this value.
const MaxType = 0x7FFF

// UUIDOffset is the first logical type id in the UUID namespace; any
// type at or above this value cannot be carried directly in a snapshot
// item's 16-bit wire type field and must go through an EX item instead.
const UUIDOffset = 256

// ObjType identifies a vanilla (non-extended) network object or event
// type. NETOBJTYPE and NETEVENTTYPE share one numbering space on the
// wire, exactly as the original protocol does.
type ObjType int32

// Vanilla object/event types, wire type 0-20. EX (0) is reserved for the
// UUID-splice mechanism and never appears as a "real" item's size-table
// entry.
const (
	ObjEx ObjType = iota
	ObjPlayerInput
	ObjProjectile
	ObjLaser
	ObjPickup
	ObjFlag
	ObjGameInfo
	ObjGameData
	ObjCharacterCore
	ObjCharacter
	ObjPlayerInfo
	ObjClientInfo
	ObjSpectatorInfo
	EventCommon
	EventExplosion
	EventSpawn
	EventHammerHit
	EventDeath
	EventSoundGlobal
	EventSoundWorld
	EventDamageInd
	numVanillaTypes
)

// Extended (UUID-namespace) logical types, numbered from UUIDOffset.
// Their wire representation never uses these numbers directly: a
// snapshot builder assigns a per-snapshot internal id (MaxType minus a
// small counter) the first time one appears, see package snapshot.
const (
	ObjMyOwnObject ObjType = UUIDOffset + iota
	ObjDDNetCharacter
	ObjDDNetPlayer
	ObjGameInfoEx
	ObjDDRaceProjectile
	ObjDDNetLaser
	ObjDDNetProjectile
	ObjDDNetPickup
	ObjDDNetSpectatorInfo
	EventBirthday
	EventFinish
	ObjMyOwnEvent
	ObjSpecChar
	ObjSwitchState
	ObjEntityEx
	EventMapSoundWorld
)

// knownSizes maps a vanilla wire type to its fixed payload size in 32-bit
// words. Extended types are deliberately absent: their wire type is
// always the per-snapshot internal id, which is outside this table, so
// the delta engine always transmits an explicit size word for them (see
// package snapshot).
var knownSizes = map[ObjType]int{
	ObjPlayerInput:    10,
	ObjProjectile:     6,
	ObjLaser:          5,
	ObjPickup:         4,
	ObjFlag:           3,
	ObjGameInfo:       8,
	ObjGameData:       4,
	ObjCharacterCore:  15,
	ObjCharacter:      22,
	ObjPlayerInfo:     5,
	ObjClientInfo:     17,
	ObjSpectatorInfo:  3,
	EventCommon:       2,
	EventExplosion:    2,
	EventSpawn:        2,
	EventHammerHit:    2,
	EventDeath:        3,
	EventSoundGlobal:  3,
	EventSoundWorld:   3,
	EventDamageInd:    3,
}

// KnownSize reports the fixed payload size (in 32-bit words) for a
// vanilla wire type, and whether one is registered at all. Extended
// types and unrecognized vanilla ids report false, in which case the
// delta engine must transmit an explicit size word.
func KnownSize(t ObjType) (int, bool) {
	n, ok := knownSizes[t]

	return n, ok
}

// IsExtended reports whether t lives in the UUID namespace and therefore
// cannot be carried directly as a snapshot item's wire type.
func IsExtended(t ObjType) bool {
	return t >= UUIDOffset
}
