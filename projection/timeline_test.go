package projection

import (
	"context"
	"local-echo/domain"
	"local-echo/domain/event"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

const roomID domain.RoomID = "!room:example.org"

func echo(eventID string, index uint64, state domain.SendState) domain.LocalEcho {
	return domain.LocalEcho{
		Event:        domain.Event{EventID: eventID, RoomID: roomID, SenderID: "@alice:example.org"},
		SendState:    state,
		DisplayIndex: index,
	}
}

func TestTimeline_Consume_Lifecycle(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()
	ctx := context.Background()

	// Given two echoes notified out of order
	req.NoError(timeline.Consume(ctx, event.LocalEchoCreated{Echo: echo("$b", 2, domain.SendStateUnsent)}))
	req.NoError(timeline.Consume(ctx, event.LocalEchoCreated{Echo: echo("$a", 1, domain.SendStateUnsent)}))

	// Then they are displayed in creation order
	ids := lo.Map(timeline.Echoes(roomID), func(item domain.LocalEcho, _ int) string { return item.EventID() })
	req.Equal([]string{"$a", "$b"}, ids)

	// When the first one fails
	req.NoError(timeline.Consume(ctx, event.SendStateUpdated{
		Echo:     echo("$a", 1, domain.SendStateHasFailed),
		Previous: domain.SendStateUnsent,
	}))
	req.Equal(domain.SendStateHasFailed, timeline.Echoes(roomID)[0].SendState)

	// And is abandoned
	req.NoError(timeline.Consume(ctx, event.LocalEchoDeleted{Room: roomID, EventID: "$a"}))
	req.Len(timeline.Echoes(roomID), 1)
	req.Equal("$b", timeline.Echoes(roomID)[0].EventID())
}

func TestTimeline_Created_Twice_Is_Not_Duplicated(t *testing.T) {
	timeline := NewTimeline()
	ctx := context.Background()

	require.NoError(t, timeline.Consume(ctx, event.LocalEchoCreated{Echo: echo("$a", 1, domain.SendStateUnsent)}))
	require.NoError(t, timeline.Consume(ctx, event.LocalEchoCreated{Echo: echo("$a", 1, domain.SendStateUnsent)}))

	require.Len(t, timeline.Echoes(roomID), 1)
}
