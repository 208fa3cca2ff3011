package domain

// LocalEcho is the optimistic, persisted stand-in of an outgoing Event.
// It is keyed by (RoomID, EventID) and owns its Event until deletion.
type LocalEcho struct {
	Event                 Event
	SendState             SendState
	DisplayIndex          uint64
	SenderDisplayName     *string
	SenderAvatarURL       *string
	UniqueDisplayNameFlag bool
}

func (l LocalEcho) RoomID() RoomID { return l.Event.RoomID }

func (l LocalEcho) EventID() string { return l.Event.EventID }
