package projection

import (
	"context"
	"local-echo/domain"
	"local-echo/repositories"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"
)

// RoomSummary is the part of a room summary derived from local echoes.
type RoomSummary struct {
	RoomID      domain.RoomID
	QueueLength int
	FailedCount int

	// PendingCount is the queued echoes that have not left the device.
	PendingCount int
	// SentCount is the queued echoes acknowledged but not yet synced.
	SentCount int

	// LatestEcho is the newest queued echo, used as the room preview.
	LatestEcho *domain.LocalEcho
	UpdatedAt  time.Time
}

// SummaryProjector recomputes room summaries in the background.
// Triggers for the same room are coalesced until the worker picks them up.
type SummaryProjector struct {
	log        *slog.Logger
	repository repositories.ILocalEchoRepository

	mu        sync.Mutex
	pending   map[domain.RoomID]struct{}
	summaries map[domain.RoomID]RoomSummary
	wake      chan struct{}
}

func NewSummaryProjector(log *slog.Logger, repository repositories.ILocalEchoRepository) *SummaryProjector {
	return &SummaryProjector{
		log:        log,
		repository: repository,
		pending:    make(map[domain.RoomID]struct{}),
		summaries:  make(map[domain.RoomID]RoomSummary),
		wake:       make(chan struct{}, 1),
	}
}

// Trigger never blocks.
func (p *SummaryProjector) Trigger(roomID domain.RoomID) {
	p.mu.Lock()
	p.pending[roomID] = struct{}{}
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *SummaryProjector) Run(ctx context.Context) error {
	for {
		select {
		case <-p.wake:
			p.flush()
		case <-ctx.Done():
			p.log.Debug("Context done, stopping summary recomputation")
			return nil
		}
	}
}

func (p *SummaryProjector) flush() {
	p.mu.Lock()
	rooms := p.pending
	p.pending = make(map[domain.RoomID]struct{})
	p.mu.Unlock()

	for roomID := range rooms {
		if _, err := p.Recompute(roomID); err != nil {
			p.log.Error("Room summary recomputation failed", "room_id", roomID, "error", err)
		}
	}
}

// Recompute reads the store synchronously and records the new summary.
func (p *SummaryProjector) Recompute(roomID domain.RoomID) (RoomSummary, error) {
	queue, err := p.repository.SendingQueue(roomID)
	if err != nil {
		return RoomSummary{}, err
	}
	failed, err := p.repository.EchoesWithStates(roomID, domain.FailedSendStates...)
	if err != nil {
		return RoomSummary{}, err
	}
	summary := RoomSummary{
		RoomID:      roomID,
		QueueLength:  len(queue),
		PendingCount: lo.CountBy(queue, func(item domain.LocalEcho) bool { return item.SendState.IsSending() }),
		SentCount:    lo.CountBy(queue, func(item domain.LocalEcho) bool { return item.SendState.IsSent() }),
		FailedCount:  len(failed),
		UpdatedAt:    time.Now(),
	}
	if len(queue) > 0 {
		latest := queue[0]
		summary.LatestEcho = &latest
	}

	p.mu.Lock()
	p.summaries[roomID] = summary
	p.mu.Unlock()
	return summary, nil
}

func (p *SummaryProjector) Get(roomID domain.RoomID) (RoomSummary, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	summary, ok := p.summaries[roomID]
	return summary, ok
}
