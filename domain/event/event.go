// Package event defines the lifecycle notifications published by the
// local echo coordinator once a unit of work has committed.
package event

import (
	"local-echo/domain"
)

type DomainEvent interface {
	RoomID() domain.RoomID
}

// LocalEchoCreated is published exactly once per echo, after its creation
// is durable and before downstream processors see the event.
type LocalEchoCreated struct {
	Echo domain.LocalEcho
}

func (l LocalEchoCreated) RoomID() domain.RoomID {
	return l.Echo.RoomID()
}

type SendStateUpdated struct {
	Echo     domain.LocalEcho
	Previous domain.SendState
}

func (s SendStateUpdated) RoomID() domain.RoomID {
	return s.Echo.RoomID()
}

type LocalEchoDeleted struct {
	Room    domain.RoomID
	EventID string
}

func (l LocalEchoDeleted) RoomID() domain.RoomID {
	return l.Room
}
