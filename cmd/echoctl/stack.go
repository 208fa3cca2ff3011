package main

import (
	"context"
	"fmt"
	"io"
	"local-echo/contract"
	"local-echo/domain"
	"local-echo/domain/event"
	"local-echo/internal"
	"local-echo/projection"
	"local-echo/repositories"
	"local-echo/resend"
	"local-echo/runtime"
	"local-echo/runtime/workers"
	"local-echo/services"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

const subscriberID = "echoctl"

// stack is the echo core as a client process would assemble it.
type stack struct {
	log        *slog.Logger
	out        io.Writer
	config     internal.Config
	db         *badger.DB
	members    *repositories.MemberRepository
	echoes     *repositories.LocalEchoRepository
	service    *services.LocalEchoService
	summaries  *projection.SummaryProjector
	registry   *runtime.Registry
	fanout     *workers.EventFanout
	supervisor *workers.Supervisor
	cancel     context.CancelFunc
	done       chan struct{}
}

func newStack(log *slog.Logger, db *badger.DB, config internal.Config, out io.Writer) (*stack, error) {
	members := repositories.NewMemberRepository(db, log)
	echoes, err := repositories.NewLocalEchoRepository(db, log, members, config.LocalEchoOptions())
	if err != nil {
		return nil, fmt.Errorf("local echo store: %w", err)
	}
	registry := runtime.NewRegistry()
	fanout := workers.NewEventFanout(log, config.NotificationBufferSize, config.SinkTimeout, registry)
	summaries := projection.NewSummaryProjector(log, echoes)
	service := services.NewLocalEchoService(log, echoes, resend.NewFilter(log), fanout, summaries,
		handOffLogger{log: log})

	return &stack{
		log:        log,
		out:        &lockedWriter{w: out},
		config:     config,
		db:         db,
		members:    members,
		echoes:     echoes,
		service:    service,
		summaries:  summaries,
		registry:   registry,
		fanout:     fanout,
		supervisor: workers.NewSupervisor(log),
		done:       make(chan struct{}),
	}, nil
}

func (s *stack) start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.supervisor.Add(s.fanout, s.summaries)
	go func() {
		defer close(s.done)
		s.supervisor.Run(ctx)
	}()
}

// stop waits for the workers, then delivers the notifications they left
// in the buffer.
func (s *stack) stop() {
	s.cancel()
	s.supervisor.Stop()
	<-s.done
	if n := s.fanout.Drain(context.Background()); n > 0 {
		s.log.Debug("Delivered buffered notifications", "count", n)
	}
}

func (s *stack) close() {
	for _, roomID := range s.registry.Rooms() {
		s.registry.Unsubscribe(subscriberID, roomID)
	}
	if err := s.echoes.Close(); err != nil {
		s.log.Warn("Failed to release display index sequence", "error", err)
	}
}

// watch prints the notifications of the room on the command output.
func (s *stack) watch(roomID domain.RoomID) {
	s.registry.Subscribe(subscriberID, roomID, notificationPrinter{out: s.out})
}

// lockedWriter serializes the command output with the notifications the
// fan-out worker prints.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

type notificationPrinter struct {
	out io.Writer
}

func (p notificationPrinter) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.LocalEchoCreated:
		_, err := fmt.Fprintf(p.out, "+ %s %s #%d\n",
			evt.Echo.EventID(), stateLabel(evt.Echo.SendState), evt.Echo.DisplayIndex)
		return err
	case event.SendStateUpdated:
		_, err := fmt.Fprintf(p.out, "~ %s %s -> %s\n",
			evt.Echo.EventID(), stateLabel(evt.Previous), stateLabel(evt.Echo.SendState))
		return err
	case event.LocalEchoDeleted:
		_, err := fmt.Fprintf(p.out, "- %s\n", evt.EventID)
		return err
	default:
		return nil
	}
}

// handOffLogger stands in for the sending pipeline: echoctl only records
// echoes, it never talks to a homeserver.
type handOffLogger struct {
	log *slog.Logger
}

var _ contract.LocalEventProcessor = handOffLogger{}

func (h handOffLogger) ProcessLocalEvents(_ context.Context, roomID domain.RoomID, events []domain.Event) error {
	for _, evt := range events {
		h.log.Info("Local event ready for sending", "room_id", roomID, "event_id", evt.EventID, "type", evt.Type)
	}
	return nil
}
