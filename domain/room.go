package domain

// RoomID identifies a conversation.
type RoomID string

func (r RoomID) String() string {
	return string(r)
}
