package workers

import (
	"context"
	"local-echo/domain/event"
	"local-echo/mocks"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSupervisor_Restarts_Until_Worker_Succeeds(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	worker := mocks.NewMockWorker(ctrl)

	// Given a worker that panics, then fails, then finishes
	gomock.InOrder(
		worker.EXPECT().Run(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
			panic("projection crashed")
		}),
		worker.EXPECT().Run(gomock.Any()).Return(context.DeadlineExceeded),
		worker.EXPECT().Run(gomock.Any()).Return(nil),
	)

	done := make(chan struct{})
	go func() {
		NewSupervisor(slog.Default()).Add(worker).Run(context.Background())
		close(done)
	}()

	// Then the supervisor returns once the third run succeeded
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		req.Fail("Supervisor should have stopped after worker success")
	}
}

func TestSupervisor_Runs_Fanout_Until_Stopped(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockEventSink(ctrl)
	fanout := NewEventFanout(slog.Default(), 4, time.Second, nil, sink)

	deleted := event.LocalEchoDeleted{Room: "!room:example.org", EventID: "$local.1"}
	delivered := make(chan struct{})
	sink.EXPECT().Consume(gomock.Any(), deleted).DoAndReturn(func(ctx context.Context, e event.DomainEvent) error {
		close(delivered)
		return nil
	})

	sup := NewSupervisor(slog.Default())
	done := make(chan struct{})
	go func() {
		sup.Add(fanout).Run(context.Background())
		close(done)
	}()

	// When a notification is published to the supervised fan-out
	fanout.Publish(deleted)
	select {
	case <-delivered:
	case <-time.After(time.Second):
		req.Fail("Supervised fan-out did not deliver")
	}

	// Then Stop cancels the worker and Run returns
	req.Eventually(func() bool {
		sup.Stop()
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestSupervisor_Stop_Before_Run_Is_Harmless(t *testing.T) {
	require.NotPanics(t, NewSupervisor(slog.Default()).Stop)
}
