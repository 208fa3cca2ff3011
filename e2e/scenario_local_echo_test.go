package e2e

import (
	"context"
	"local-echo/domain"
	"local-echo/domain/event"
	"local-echo/errors"
	"sync"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

const (
	roomID  domain.RoomID = "!lobby:example.org"
	otherID domain.RoomID = "!other:example.org"
	alice                 = "@alice:example.org"
)

type testLocalEchoSuite struct {
	BaseStackSuite
}

func TestLocalEchoSuite(t *testing.T) {
	suite.Run(t, &testLocalEchoSuite{})
}

func (s *testLocalEchoSuite) eventIDs(echoes []domain.LocalEcho) []string {
	return lo.Map(echoes, func(item domain.LocalEcho, _ int) string { return item.EventID() })
}

func (s *testLocalEchoSuite) TestResendOnlyKeepsTextAfterFailure() {
	text := TextEvent(roomID, alice, "hello")
	image := MessageEvent(roomID, alice, domain.MsgTypeImage, "cat.png")

	s.Step("Create a text and an image echo", func(ctx context.Context) {
		for _, evt := range []domain.Event{text, image} {
			echo, err := s.Service.CreateLocalEcho(ctx, evt)
			s.Require().NoError(err)
			s.Require().Equal(domain.SendStateUnsent, echo.SendState)
		}
	})

	s.Step("Both sends start then fail", func(ctx context.Context) {
		ids := []string{text.EventID, image.EventID}
		s.Require().NoError(s.Service.UpdateSendStates(ctx, roomID, ids, domain.SendStateSending))
		s.Require().NoError(s.Service.UpdateSendStates(ctx, roomID, ids, domain.SendStateHasFailed))
	})

	s.Step("Only the text is resendable", func(ctx context.Context) {
		events, err := s.Service.GetResendableFailedEchoes(ctx, roomID)
		s.Require().NoError(err)
		s.Require().Equal([]string{text.EventID}, lo.Map(events, func(item domain.Event, _ int) string {
			return item.EventID
		}))
	})
}

func (s *testLocalEchoSuite) TestSyncedIsNeverDowngradedBySent() {
	evt := TextEvent(roomID, alice, "racing")

	s.Step("Create and send the echo", func(ctx context.Context) {
		_, err := s.Service.CreateLocalEcho(ctx, evt)
		s.Require().NoError(err)
		s.Require().NoError(s.Service.UpdateSendState(ctx, evt.EventID, domain.SendStateSending))
	})

	s.Step("Sync confirms before the send acknowledgment", func(ctx context.Context) {
		s.Require().NoError(s.Service.UpdateSendState(ctx, evt.EventID, domain.SendStateSynced))
		s.Require().NoError(s.Service.UpdateSendState(ctx, evt.EventID, domain.SendStateSent))
	})

	s.Step("The echo stays SYNCED and left the queue", func(ctx context.Context) {
		echo, err := s.Service.GetLocalEcho(ctx, roomID, evt.EventID)
		s.Require().NoError(err)
		s.Require().Equal(domain.SendStateSynced, echo.SendState)

		queue, err := s.Service.GetSendingQueue(ctx, roomID)
		s.Require().NoError(err)
		s.Require().Empty(queue)
	})
}

func (s *testLocalEchoSuite) TestClearSendingQueueMarksEverythingUndelivered() {
	first := TextEvent(roomID, alice, "one")
	second := TextEvent(roomID, alice, "two")

	s.Step("Queue two echoes, one of them in flight", func(ctx context.Context) {
		_, err := s.Service.CreateLocalEcho(ctx, first)
		s.Require().NoError(err)
		_, err = s.Service.CreateLocalEcho(ctx, second)
		s.Require().NoError(err)
		s.Require().NoError(s.Service.UpdateSendState(ctx, first.EventID, domain.SendStateSending))
	})

	s.Step("The connection is lost", func(ctx context.Context) {
		s.Require().NoError(s.Service.ClearSendingQueue(ctx, roomID))
	})

	s.Step("Both echoes are UNDELIVERED and still queued, newest first", func(ctx context.Context) {
		queue, err := s.Service.GetSendingQueue(ctx, roomID)
		s.Require().NoError(err)
		s.Require().Equal([]string{second.EventID, first.EventID}, s.eventIDs(queue))
		for _, echo := range queue {
			s.Require().Equal(domain.SendStateUndelivered, echo.SendState)
		}
	})
}

func (s *testLocalEchoSuite) TestTimelineAndSummaryFollowTheLifecycle() {
	kept := TextEvent(roomID, alice, "kept")
	abandoned := TextEvent(roomID, alice, "abandoned")

	s.Step("Create two echoes", func(ctx context.Context) {
		_, err := s.Service.CreateLocalEcho(ctx, kept)
		s.Require().NoError(err)
		_, err = s.Service.CreateLocalEcho(ctx, abandoned)
		s.Require().NoError(err)

		s.Require().Eventually(func() bool {
			return len(s.Timeline.Echoes(roomID)) == 2
		}, time.Second, 10*time.Millisecond)
		s.DumpTimeline(roomID)
		s.Require().Equal([]string{kept.EventID, abandoned.EventID}, s.eventIDs(s.Timeline.Echoes(roomID)))
	})

	s.Step("The second one fails and is abandoned", func(ctx context.Context) {
		s.Require().NoError(s.Service.UpdateSendState(ctx, abandoned.EventID, domain.SendStateUndelivered))
		s.Require().NoError(s.Service.DeleteFailedEcho(ctx, roomID, abandoned.EventID))

		s.Require().Eventually(func() bool {
			return len(s.Timeline.Echoes(roomID)) == 1
		}, time.Second, 10*time.Millisecond)
		s.DumpTimeline(roomID)
	})

	s.Step("The summary only counts the remaining echo", func(ctx context.Context) {
		s.Require().Eventually(func() bool {
			summary, ok := s.Summaries.Get(roomID)
			return ok && summary.QueueLength == 1 && summary.FailedCount == 0 &&
				summary.LatestEcho != nil && summary.LatestEcho.EventID() == kept.EventID
		}, time.Second, 10*time.Millisecond)
	})

	s.Step("Processors received both created events", func(ctx context.Context) {
		s.Require().Equal([]string{kept.EventID, abandoned.EventID},
			lo.Map(s.Processor.Events(), func(item domain.Event, _ int) string { return item.EventID }))
	})
}

func (s *testLocalEchoSuite) TestDeletedEchoIsNeverResurrected() {
	evt := TextEvent(roomID, alice, "gone")

	s.Step("Create, fail and delete", func(ctx context.Context) {
		_, err := s.Service.CreateLocalEcho(ctx, evt)
		s.Require().NoError(err)
		s.Require().NoError(s.Service.UpdateSendState(ctx, evt.EventID, domain.SendStateHasFailed))
		s.Require().NoError(s.Service.DeleteFailedEcho(ctx, roomID, evt.EventID))
		s.Require().NoError(s.Service.DeleteFailedEcho(ctx, roomID, evt.EventID))
	})

	s.Step("Late updates and re-creation are refused", func(ctx context.Context) {
		s.Require().NoError(s.Service.UpdateSendState(ctx, evt.EventID, domain.SendStateSent))
		_, err := s.Service.GetLocalEcho(ctx, roomID, evt.EventID)
		s.Require().ErrorIs(err, errors.ErrEchoNotFound)

		_, err = s.Service.CreateLocalEcho(ctx, evt)
		s.Require().ErrorIs(err, errors.ErrEchoAlreadyExists)
	})
}

func (s *testLocalEchoSuite) TestConcurrentCreationsGetDistinctIndexes() {
	const writers = 40
	echoes := make([]domain.LocalEcho, writers)

	s.Step("Create echoes from concurrent writers", func(ctx context.Context) {
		var wg sync.WaitGroup
		errs := make([]error, writers)
		for i := range writers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				echoes[i], errs[i] = s.Service.CreateLocalEcho(ctx, TextEvent(roomID, alice, "burst"))
			}()
		}
		wg.Wait()
		for _, err := range errs {
			s.Require().NoError(err)
		}
	})

	s.Step("Indexes are unique and the queue holds every echo", func(ctx context.Context) {
		indexes := lo.Map(echoes, func(item domain.LocalEcho, _ int) uint64 { return item.DisplayIndex })
		s.Require().Len(lo.Uniq(indexes), writers)

		queue, err := s.Service.GetSendingQueue(ctx, roomID)
		s.Require().NoError(err)
		s.Require().Len(queue, writers)
		for i := 1; i < len(queue); i++ {
			s.Require().Greater(queue[i-1].DisplayIndex, queue[i].DisplayIndex)
		}
	})
}

func (s *testLocalEchoSuite) TestSenderMetadataIsCapturedAtCreation() {
	s.Step("Two members share a display name", func(ctx context.Context) {
		s.Require().NoError(s.Members.SaveMember(roomID, domain.RoomMember{
			UserID: alice, DisplayName: lo.ToPtr("Sam"), AvatarURL: lo.ToPtr("mxc://example.org/alice"),
			Membership: domain.MembershipJoin,
		}))
		s.Require().NoError(s.Members.SaveMember(roomID, domain.RoomMember{
			UserID: "@sam:example.org", DisplayName: lo.ToPtr("Sam"), Membership: domain.MembershipJoin,
		}))
	})

	s.Step("The echo carries the ambiguous name", func(ctx context.Context) {
		echo, err := s.Service.CreateLocalEcho(ctx, TextEvent(roomID, alice, "hi"))
		s.Require().NoError(err)
		s.Require().Equal(lo.ToPtr("Sam"), echo.SenderDisplayName)
		s.Require().Equal(lo.ToPtr("mxc://example.org/alice"), echo.SenderAvatarURL)
		s.Require().False(echo.UniqueDisplayNameFlag)
	})

	s.Step("A stranger gets no metadata", func(ctx context.Context) {
		echo, err := s.Service.CreateLocalEcho(ctx, TextEvent(roomID, "@stranger:example.org", "hi"))
		s.Require().NoError(err)
		s.Require().Nil(echo.SenderDisplayName)
		s.Require().Nil(echo.SenderAvatarURL)
	})
}

type channelSink chan event.DomainEvent

func (c channelSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case c <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *testLocalEchoSuite) TestRoomWatchersOnlySeeTheirRoom() {
	sink := make(channelSink, 8)
	s.Registry.Subscribe("timeline-view", otherID, sink)
	defer s.Registry.Unsubscribe("timeline-view", otherID)

	s.Step("Echoes are created in two rooms", func(ctx context.Context) {
		_, err := s.Service.CreateLocalEcho(ctx, TextEvent(roomID, alice, "lobby"))
		s.Require().NoError(err)
		_, err = s.Service.CreateLocalEcho(ctx, TextEvent(otherID, alice, "other"))
		s.Require().NoError(err)
	})

	s.Step("The watcher only receives the other room", func(ctx context.Context) {
		select {
		case e := <-sink:
			s.Require().Equal(otherID, e.RoomID())
			s.Require().IsType(event.LocalEchoCreated{}, e)
		case <-ctx.Done():
			s.Fail("No notification received")
		}
		s.Require().Never(func() bool { return len(sink) > 0 }, 100*time.Millisecond, 10*time.Millisecond)
	})
}
