//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"local-echo/domain"
	"local-echo/domain/event"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink receives lifecycle notifications from the bus.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// Notifier is a fire-and-forget publisher. No acknowledgment is expected.
type Notifier interface {
	Publish(e event.DomainEvent)
}

// LocalEventProcessor can process events created locally for a room,
// e.g. hand them to the sending pipeline.
type LocalEventProcessor interface {
	ProcessLocalEvents(ctx context.Context, roomID domain.RoomID, events []domain.Event) error
}

// SummaryUpdater schedules a recomputation of a room summary.
// Trigger must not wait for the recomputation.
type SummaryUpdater interface {
	Trigger(roomID domain.RoomID)
}

type MembershipResolver interface {
	// GetLastMember returns nil when the user has no known membership.
	GetLastMember(roomID domain.RoomID, userID string) (*domain.RoomMember, error)
	IsUniqueDisplayName(roomID domain.RoomID, displayName string) (bool, error)
}

// IRegistry routes notifications of a room to the sinks watching it.
type IRegistry interface {
	GetSinksForRoom(roomID domain.RoomID) []EventSink
	Subscribe(subscriberID string, roomID domain.RoomID, sink EventSink)
	Unsubscribe(subscriberID string, roomID domain.RoomID)
}
