package repositories

import (
	"fmt"
	"strings"
)

// RecordKind names the family a raw badger key belongs to.
type RecordKind string

const (
	KindEcho      RecordKind = "ECHO"
	KindIndex     RecordKind = "INDEX"
	KindEventRoom RecordKind = "EVENT_ROOM"
	KindQueue     RecordKind = "QUEUE"
	KindTombstone RecordKind = "TOMBSTONE"
	KindMember    RecordKind = "MEMBER"
	KindSequence  RecordKind = "SEQUENCE"
	KindUnknown   RecordKind = "UNKNOWN"
)

// DescribeRecord decodes a raw key/value pair for inspection tools.
// It never fails: undecodable values are reported in the detail.
func DescribeRecord(key string, val []byte) (RecordKind, string) {
	segments := strings.Split(key, sep)
	switch segments[0] {
	case "echo":
		echo, err := decodeEcho(val)
		if err != nil {
			return KindEcho, "Error: " + err.Error()
		}
		return KindEcho, fmt.Sprintf("%s %s #%d from %s",
			echo.EventID(), echo.SendState, echo.DisplayIndex, echo.Event.SenderID)
	case "eid":
		idx, err := decodeIndex(val)
		if err != nil {
			return KindIndex, "Error: " + err.Error()
		}
		return KindIndex, fmt.Sprintf("display index %d", idx)
	case "evt":
		return KindEventRoom, "echoed in room " + string(val)
	case "queue":
		return KindQueue, "queued " + string(val)
	case "tomb":
		return KindTombstone, "deleted " + strings.Join(segments[1:], " ")
	case "member":
		member, err := decodeMember(val)
		if err != nil {
			return KindMember, "Error: " + err.Error()
		}
		name := ""
		if member.DisplayName != nil {
			name = *member.DisplayName
		}
		return KindMember, fmt.Sprintf("%s %s %q", member.UserID, member.Membership, name)
	case "seq":
		return KindSequence, strings.Join(segments[1:], " ")
	default:
		return KindUnknown, fmt.Sprintf("%d bytes", len(val))
	}
}

// PrintableKey replaces the segment separator so keys can be displayed.
func PrintableKey(key string) string {
	return strings.ReplaceAll(key, sep, "|")
}
