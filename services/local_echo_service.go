//go:generate go run go.uber.org/mock/mockgen -source=local_echo_service.go -destination=../mocks/mock_local_echo_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"local-echo/contract"
	"local-echo/domain"
	"local-echo/domain/event"
	"local-echo/errors"
	"local-echo/repositories"
	"log/slog"

	"github.com/samber/lo"
)

type ILocalEchoService interface {
	CreateLocalEcho(ctx context.Context, evt domain.Event) (domain.LocalEcho, error)
	UpdateSendState(ctx context.Context, eventID string, state domain.SendState) error
	UpdateSendStates(ctx context.Context, roomID domain.RoomID, eventIDs []string, state domain.SendState) error
	DeleteFailedEcho(ctx context.Context, roomID domain.RoomID, eventID string) error
	CancelAllFailedEchoes(ctx context.Context, roomID domain.RoomID) (int, error)
	ClearSendingQueue(ctx context.Context, roomID domain.RoomID) error
	GetResendableFailedEchoes(ctx context.Context, roomID domain.RoomID) ([]domain.Event, error)
	GetLocalEcho(ctx context.Context, roomID domain.RoomID, eventID string) (domain.LocalEcho, error)
	GetSendingQueue(ctx context.Context, roomID domain.RoomID) ([]domain.LocalEcho, error)
}

// ResendFilter keeps the failed echoes that can be sent again as is.
type ResendFilter interface {
	Eligible(echoes []domain.LocalEcho) []domain.LocalEcho
}

// LocalEchoService coordinates the store with the rest of the client:
// every committed mutation is followed by a notification and a summary
// recomputation, and created events are handed to the processors.
type LocalEchoService struct {
	log        *slog.Logger
	repository repositories.ILocalEchoRepository
	filter     ResendFilter
	notifier   contract.Notifier
	summary    contract.SummaryUpdater
	processors []contract.LocalEventProcessor
}

func NewLocalEchoService(
	log *slog.Logger,
	repository repositories.ILocalEchoRepository,
	filter ResendFilter,
	notifier contract.Notifier,
	summary contract.SummaryUpdater,
	processors ...contract.LocalEventProcessor,
) *LocalEchoService {
	return &LocalEchoService{
		log:        log,
		repository: repository,
		filter:     filter,
		notifier:   notifier,
		summary:    summary,
		processors: processors,
	}
}

// CreateLocalEcho persists the echo, then publishes LocalEchoCreated, then
// hands the event to the processors. The summary is only triggered, a
// processor can't rely on it being up to date.
func (s *LocalEchoService) CreateLocalEcho(ctx context.Context, evt domain.Event) (domain.LocalEcho, error) {
	echo, err := s.repository.Create(evt)
	if err != nil {
		return domain.LocalEcho{}, err
	}
	s.log.Debug("Local echo created",
		"room_id", echo.RoomID(), "event_id", echo.EventID(), "display_index", echo.DisplayIndex)

	s.summary.Trigger(echo.RoomID())
	s.notifier.Publish(event.LocalEchoCreated{Echo: echo})
	s.process(ctx, echo.RoomID(), []domain.Event{echo.Event})
	return echo, nil
}

// process runs after the commit: a failing processor is logged and
// never undoes the echo.
func (s *LocalEchoService) process(ctx context.Context, roomID domain.RoomID, events []domain.Event) {
	for _, processor := range s.processors {
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.log.Error("Local event processor panicked",
						"room_id", roomID, "error", fmt.Errorf("%w: %v", errors.ErrWorkerPanic, r))
				}
			}()
			if err := processor.ProcessLocalEvents(ctx, roomID, events); err != nil {
				s.log.Error("Local event processor failed", "room_id", roomID, "error", err)
			}
		}()
	}
}

func (s *LocalEchoService) UpdateSendState(_ context.Context, eventID string, state domain.SendState) error {
	changes, err := s.repository.UpdateSendState(eventID, state)
	if err != nil {
		return err
	}
	s.publishChanges(changes)
	return nil
}

// UpdateSendStates applies the transition to all events in one unit of work.
func (s *LocalEchoService) UpdateSendStates(_ context.Context, roomID domain.RoomID, eventIDs []string, state domain.SendState) error {
	changes, err := s.repository.UpdateSendStates(roomID, eventIDs, state)
	if err != nil {
		return err
	}
	s.publishChanges(changes)
	return nil
}

func (s *LocalEchoService) publishChanges(changes []repositories.StateChange) {
	for _, change := range changes {
		s.notifier.Publish(event.SendStateUpdated{Echo: change.Echo, Previous: change.Previous})
	}
	rooms := lo.Uniq(lo.Map(changes, func(item repositories.StateChange, _ int) domain.RoomID {
		return item.Echo.RoomID()
	}))
	for _, roomID := range rooms {
		s.summary.Trigger(roomID)
	}
}

// DeleteFailedEcho abandons a failed send. The caller must make sure the
// event is not in flight anymore.
func (s *LocalEchoService) DeleteFailedEcho(_ context.Context, roomID domain.RoomID, eventID string) error {
	deleted, err := s.repository.DeleteFailed(roomID, eventID)
	if err != nil || !deleted {
		return err
	}
	s.notifier.Publish(event.LocalEchoDeleted{Room: roomID, EventID: eventID})
	s.summary.Trigger(roomID)
	return nil
}

// CancelAllFailedEchoes deletes every failed echo of the room and returns
// how many were removed.
func (s *LocalEchoService) CancelAllFailedEchoes(_ context.Context, roomID domain.RoomID) (int, error) {
	removed, err := s.repository.DeleteAllFailed(roomID)
	if err != nil {
		return 0, err
	}
	for _, echo := range removed {
		s.notifier.Publish(event.LocalEchoDeleted{Room: roomID, EventID: echo.EventID()})
	}
	if len(removed) > 0 {
		s.summary.Trigger(roomID)
	}
	return len(removed), nil
}

// ClearSendingQueue marks every queued echo UNDELIVERED, e.g. on logout or
// when the connection is lost. Nothing leaves the queue.
func (s *LocalEchoService) ClearSendingQueue(_ context.Context, roomID domain.RoomID) error {
	changes, err := s.repository.ClearSendingQueue(roomID)
	if err != nil {
		return err
	}
	s.publishChanges(changes)
	return nil
}

// GetResendableFailedEchoes returns the failed events that can be resent as
// they are, most recent first.
func (s *LocalEchoService) GetResendableFailedEchoes(_ context.Context, roomID domain.RoomID) ([]domain.Event, error) {
	failed, err := s.repository.EchoesWithStates(roomID, domain.FailedSendStates...)
	if err != nil {
		return nil, err
	}
	return lo.Map(s.filter.Eligible(failed), func(item domain.LocalEcho, _ int) domain.Event {
		return item.Event
	}), nil
}

func (s *LocalEchoService) GetLocalEcho(_ context.Context, roomID domain.RoomID, eventID string) (domain.LocalEcho, error) {
	return s.repository.Get(roomID, eventID)
}

func (s *LocalEchoService) GetSendingQueue(_ context.Context, roomID domain.RoomID) ([]domain.LocalEcho, error) {
	return s.repository.SendingQueue(roomID)
}
