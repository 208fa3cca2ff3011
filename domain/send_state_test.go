package domain

import (
	"local-echo/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendState_Synced_Is_Sticky_Against_Sent(t *testing.T) {
	req := require.New(t)

	req.False(SendStateSynced.CanTransitionTo(SendStateSent))
	req.True(SendStateSynced.CanTransitionTo(SendStateHasFailed))
	req.True(SendStateSent.CanTransitionTo(SendStateSynced))
}

func TestSendState_Last_Writer_Wins(t *testing.T) {
	req := require.New(t)
	states := []SendState{
		SendStateUnsent, SendStateSending, SendStateSent,
		SendStateUndelivered, SendStateHasFailed,
	}
	for _, from := range states {
		for _, to := range states {
			req.True(from.CanTransitionTo(to), "%s -> %s", from, to)
		}
		req.False(from.CanTransitionTo(SendStateUnknown))
	}
}

func TestSendState_Predicates(t *testing.T) {
	req := require.New(t)

	req.True(SendStateUndelivered.IsFailed())
	req.True(SendStateHasFailed.IsFailed())
	req.False(SendStateSending.IsFailed())

	req.True(SendStateUnsent.IsSending())
	req.True(SendStateSending.IsSending())
	req.False(SendStateSent.IsSending())

	req.True(SendStateSynced.IsSent())
	req.False(SendStateHasFailed.IsSent())
}

func TestParseSendState(t *testing.T) {
	req := require.New(t)

	state, err := ParseSendState(" has_failed ")
	req.NoError(err)
	req.Equal(SendStateHasFailed, state)

	_, err = ParseSendState("UNKNOWN")
	req.ErrorIs(err, errors.ErrUnknownSendState)

	_, err = ParseSendState("delivered")
	req.ErrorIs(err, errors.ErrUnknownSendState)
}
