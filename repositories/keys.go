package repositories

import (
	"encoding/binary"
	"fmt"
	"local-echo/domain"
)

// Key segments are joined with NUL: room and event identifiers may contain
// ':' but never NUL, so a room prefix can't match another room's keys.
//
//	echo  {room} {index}   -> local echo record, sorted by display index
//	eid   {room} {event}   -> display index
//	evt   {event} {room}   -> rooms holding an echo of the event
//	queue {room} {index}   -> event id, membership of the sending queue
//	tomb  {room} {event}   -> deleted id, expires with TTL
//	member {room} {user}   -> room member record
const sep = "\x00"

var displayIndexSequenceKey = []byte("seq" + sep + "display_index")

func echoPrefix(roomID domain.RoomID) []byte {
	return []byte("echo" + sep + string(roomID) + sep)
}

// %020d covers the whole uint64 range, keeping lexicographic order numeric.
func echoKey(roomID domain.RoomID, displayIndex uint64) []byte {
	return append(echoPrefix(roomID), fmt.Sprintf("%020d", displayIndex)...)
}

func eventIndexKey(roomID domain.RoomID, eventID string) []byte {
	return []byte("eid" + sep + string(roomID) + sep + eventID)
}

func eventRoomPrefix(eventID string) []byte {
	return []byte("evt" + sep + eventID + sep)
}

func eventRoomKey(eventID string, roomID domain.RoomID) []byte {
	return append(eventRoomPrefix(eventID), roomID...)
}

func queuePrefix(roomID domain.RoomID) []byte {
	return []byte("queue" + sep + string(roomID) + sep)
}

func queueKey(roomID domain.RoomID, displayIndex uint64) []byte {
	return append(queuePrefix(roomID), fmt.Sprintf("%020d", displayIndex)...)
}

func tombstoneKey(roomID domain.RoomID, eventID string) []byte {
	return []byte("tomb" + sep + string(roomID) + sep + eventID)
}

func memberPrefix(roomID domain.RoomID) []byte {
	return []byte("member" + sep + string(roomID) + sep)
}

func memberKey(roomID domain.RoomID, userID string) []byte {
	return append(memberPrefix(roomID), userID...)
}

// seekLast positions a reverse iterator after every key of the prefix.
func seekLast(prefix []byte) []byte {
	return append(append([]byte(nil), prefix...), 0xFF)
}

func encodeIndex(displayIndex uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, displayIndex)
}

func decodeIndex(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("display index: expected 8 bytes, got %d", len(b))
	}
	return binary.BigEndian.Uint64(b), nil
}
