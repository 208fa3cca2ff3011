// Package projection builds local views from lifecycle notifications
// and from the local echo store.
// Does not emit events or interact with UI directly.
package projection

import (
	"context"
	"local-echo/domain"
	"local-echo/domain/event"
	"sort"
	"sync"

	"github.com/samber/lo"
)

// Timeline holds the local echoes of each room in display order,
// oldest first, as a timeline view would render them.
type Timeline struct {
	mu     sync.RWMutex
	echoes map[domain.RoomID][]domain.LocalEcho
}

func NewTimeline() *Timeline {
	return &Timeline{echoes: make(map[domain.RoomID][]domain.LocalEcho)}
}

func (t *Timeline) Consume(_ context.Context, e event.DomainEvent) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch evt := e.(type) {
	case event.LocalEchoCreated:
		t.upsert(evt.Echo)
	case event.SendStateUpdated:
		t.upsert(evt.Echo)
	case event.LocalEchoDeleted:
		t.echoes[evt.Room] = lo.Reject(t.echoes[evt.Room], func(item domain.LocalEcho, _ int) bool {
			return item.EventID() == evt.EventID
		})
	}
	return nil
}

func (t *Timeline) upsert(echo domain.LocalEcho) {
	roomID := echo.RoomID()
	echoes := t.echoes[roomID]
	_, index, found := lo.FindIndexOf(echoes, func(item domain.LocalEcho) bool {
		return item.EventID() == echo.EventID()
	})
	if found {
		echoes[index] = echo
		return
	}
	echoes = append(echoes, echo)
	sort.Slice(echoes, func(i, j int) bool { return echoes[i].DisplayIndex < echoes[j].DisplayIndex })
	t.echoes[roomID] = echoes
}

// Echoes returns a copy of the room's local echoes, oldest first.
func (t *Timeline) Echoes(roomID domain.RoomID) []domain.LocalEcho {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]domain.LocalEcho(nil), t.echoes[roomID]...)
}
