package runtime

import (
	"context"
	"local-echo/domain"
	"local-echo/domain/event"
	"testing"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

type Sink struct {
	name string
}

func (s Sink) Consume(ctx context.Context, e event.DomainEvent) error {
	return nil
}

const (
	roomID    domain.RoomID = "!room:example.org"
	otherRoom domain.RoomID = "!other:example.org"
)

func TestRegistry_Subscribe_One_Room_One_Subscriber(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	sink := Sink{name: "timeline"}

	// Given nobody watches any room
	req.Empty(registry.Rooms())

	// When a subscriber watches a room
	registry.Subscribe(uuid.NewString(), roomID, sink)

	// Then
	req.Equal([]domain.RoomID{roomID}, registry.Rooms())
	req.Equal([]any{sink}, lo.ToAnySlice(registry.GetSinksForRoom(roomID)))
	req.Nil(registry.GetSinksForRoom(otherRoom))
}

func TestRegistry_Subscribe_One_Room_Multiple_Subscribers(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	sink1, sink2 := Sink{name: "first"}, Sink{name: "second"}

	registry.Subscribe(uuid.NewString(), roomID, sink1)
	registry.Subscribe(uuid.NewString(), roomID, sink2)

	req.ElementsMatch([]any{sink1, sink2}, lo.ToAnySlice(registry.GetSinksForRoom(roomID)))
}

func TestRegistry_Subscribe_Again_Replaces_The_Sink(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	subscriberID := uuid.NewString()

	registry.Subscribe(subscriberID, roomID, Sink{name: "stale"})
	registry.Subscribe(subscriberID, roomID, Sink{name: "fresh"})

	req.Equal([]any{Sink{name: "fresh"}}, lo.ToAnySlice(registry.GetSinksForRoom(roomID)))
}

func TestRegistry_Subscriber_Watching_Two_Rooms(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	subscriberID := uuid.NewString()
	lobby, other := Sink{name: "lobby view"}, Sink{name: "other view"}

	// Given one subscriber with a sink per room
	registry.Subscribe(subscriberID, roomID, lobby)
	registry.Subscribe(subscriberID, otherRoom, other)
	req.Equal([]any{lobby}, lo.ToAnySlice(registry.GetSinksForRoom(roomID)))
	req.Equal([]any{other}, lo.ToAnySlice(registry.GetSinksForRoom(otherRoom)))

	// When it leaves the first room
	registry.Unsubscribe(subscriberID, roomID)

	// Then it still watches the other one
	req.Nil(registry.GetSinksForRoom(roomID))
	req.Equal([]any{other}, lo.ToAnySlice(registry.GetSinksForRoom(otherRoom)))
	req.Equal([]domain.RoomID{otherRoom}, registry.Rooms())
}

func TestRegistry_Unsubscribe(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	subscriber1, subscriber2 := uuid.NewString(), uuid.NewString()
	sink2 := Sink{name: "second"}

	registry.Subscribe(subscriber1, roomID, Sink{name: "first"})
	registry.Subscribe(subscriber2, roomID, sink2)

	// When the first subscriber leaves
	registry.Unsubscribe(subscriber1, roomID)

	// Then only the second one is reached
	req.Equal([]any{sink2}, lo.ToAnySlice(registry.GetSinksForRoom(roomID)))

	// When the last one leaves the room disappears
	registry.Unsubscribe(subscriber2, roomID)
	req.Empty(registry.Rooms())
	req.Nil(registry.GetSinksForRoom(roomID))

	// Leaving a room never watched is harmless
	registry.Unsubscribe(subscriber2, otherRoom)
}
