package runtime

import (
	"local-echo/contract"
	"local-echo/domain"
	"sync"

	"github.com/samber/lo"
)

// Registry keeps the sinks that watch a given room, typically the open
// timeline views. Room-agnostic sinks are wired on the fan-out itself.
//
// Subscriptions are scoped to a room: the same subscriber may watch several
// rooms, each with its own sink, and leaving one room keeps the others.
type Registry struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]map[string]contract.EventSink // room -> subscriber -> sink
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[domain.RoomID]map[string]contract.EventSink)}
}

// GetSinksForRoom returns nil if nobody watches the room.
func (r *Registry) GetSinksForRoom(roomID domain.RoomID) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subscribers, ok := r.rooms[roomID]
	if !ok {
		return nil
	}
	return lo.Values(subscribers)
}

// Subscribe attaches the sink to the room, replacing the one the subscriber
// already had there.
func (r *Registry) Subscribe(subscriberID string, roomID domain.RoomID, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subscribers, ok := r.rooms[roomID]
	if !ok {
		subscribers = make(map[string]contract.EventSink)
		r.rooms[roomID] = subscribers
	}
	subscribers[subscriberID] = sink
}

// Unsubscribe detaches a subscriber from one room and drops the room once
// nobody watches it.
func (r *Registry) Unsubscribe(subscriberID string, roomID domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subscribers, ok := r.rooms[roomID]
	if !ok {
		return
	}
	delete(subscribers, subscriberID)
	if len(subscribers) == 0 {
		delete(r.rooms, roomID)
	}
}

// Rooms lists the rooms somebody watches.
func (r *Registry) Rooms() []domain.RoomID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Keys(r.rooms)
}
