package workers

import (
	"context"
	"fmt"
	"local-echo/contract"
	"local-echo/domain/event"
	"log/slog"
	"sync/atomic"
	"time"
)

// EventFanout broadcasts lifecycle notifications to in-process sinks.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// durability, or retries. EventFanout is not a message broker.
// Publish never blocks the caller: when the buffer is full the event is
// dropped and logged.
//
// EventFanout is safe for concurrent use by multiple goroutines.
type EventFanout struct {
	log         *slog.Logger
	events      chan event.DomainEvent
	registry    contract.IRegistry
	sinks       []contract.EventSink
	sinkTimeout time.Duration
	dropped     atomic.Int64
}

// NewEventFanout delivers every event to the permanent sinks, then to the
// sinks the registry holds for the event's room. registry may be nil.
func NewEventFanout(log *slog.Logger, bufferSize int, sinkTimeout time.Duration, registry contract.IRegistry, sinks ...contract.EventSink) *EventFanout {
	return &EventFanout{
		log:         log,
		events:      make(chan event.DomainEvent, bufferSize),
		registry:    registry,
		sinks:       sinks,
		sinkTimeout: sinkTimeout,
	}
}

func (w *EventFanout) Publish(evt event.DomainEvent) {
	select {
	case w.events <- evt:
	default:
		w.dropped.Add(1)
		attrs := append([]any{"room_id", evt.RoomID()}, describe(evt)...)
		if _, created := evt.(event.LocalEchoCreated); created {
			// Nobody will be told about this echo before the next reload.
			w.log.Error("Notification buffer full, creation notice dropped", attrs...)
			return
		}
		w.log.Warn("Notification buffer full, event dropped", attrs...)
	}
}

// Dropped counts the events Publish discarded since start.
func (w *EventFanout) Dropped() int64 {
	return w.dropped.Load()
}

func describe(evt event.DomainEvent) []any {
	switch e := evt.(type) {
	case event.LocalEchoCreated:
		return []any{"notification", "created", "event_id", e.Echo.EventID()}
	case event.SendStateUpdated:
		return []any{"notification", "send_state", "event_id", e.Echo.EventID(), "state", e.Echo.SendState}
	case event.LocalEchoDeleted:
		return []any{"notification", "deleted", "event_id", e.EventID}
	default:
		return []any{"notification", fmt.Sprintf("%T", evt)}
	}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt := <-w.events:
			w.Fanout(ctx, evt)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping notification fan-out")
			return nil
		}
	}
}

// Drain delivers the events still buffered and returns once the buffer is
// empty. It must not run concurrently with Run.
func (w *EventFanout) Drain(ctx context.Context) int {
	drained := 0
	for {
		select {
		case evt := <-w.events:
			w.Fanout(ctx, evt)
			drained++
		default:
			return drained
		}
	}
}

// Fanout hands the event to every sink, one after the other, so that each
// sink observes notifications in publication order.
func (w *EventFanout) Fanout(ctx context.Context, evt event.DomainEvent) {
	for _, sink := range w.sinks {
		w.consume(ctx, sink, evt)
	}
	if w.registry == nil {
		return
	}
	for _, sink := range w.registry.GetSinksForRoom(evt.RoomID()) {
		w.consume(ctx, sink, evt)
	}
}

func (w *EventFanout) consume(ctx context.Context, sink contract.EventSink, evt event.DomainEvent) {
	sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
	defer cancel()
	if err := sink.Consume(sinkCtx, evt); err != nil {
		w.log.Warn("Sink failed to consume event", append([]any{"room_id", evt.RoomID(), "error", err}, describe(evt)...)...)
	}
}
