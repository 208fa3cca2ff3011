package domain

import (
	"fmt"
	"local-echo/errors"
	"strings"
)

// SendState is the delivery stage of a local echo.
type SendState uint8

const (
	SendStateUnknown SendState = iota
	SendStateUnsent
	SendStateSending
	SendStateSent
	SendStateSynced
	SendStateUndelivered
	SendStateHasFailed
)

var sendStateNames = map[SendState]string{
	SendStateUnknown:     "UNKNOWN",
	SendStateUnsent:      "UNSENT",
	SendStateSending:     "SENDING",
	SendStateSent:        "SENT",
	SendStateSynced:      "SYNCED",
	SendStateUndelivered: "UNDELIVERED",
	SendStateHasFailed:   "HAS_FAILED",
}

// FailedSendStates lists every state a send can end up in after a failure.
var FailedSendStates = []SendState{SendStateUndelivered, SendStateHasFailed}

func (s SendState) String() string {
	if name, ok := sendStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SendState(%d)", uint8(s))
}

func ParseSendState(s string) (SendState, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for state, name := range sendStateNames {
		if name == upper && state != SendStateUnknown {
			return state, nil
		}
	}
	return SendStateUnknown, fmt.Errorf("%w: %q", errors.ErrUnknownSendState, s)
}

func (s SendState) IsFailed() bool {
	return s == SendStateUndelivered || s == SendStateHasFailed
}

// IsSending is true while the event has not left the device.
func (s SendState) IsSending() bool {
	return s == SendStateUnsent || s == SendStateSending
}

func (s SendState) IsSent() bool {
	return s == SendStateSent || s == SendStateSynced
}

// CanTransitionTo applies the only guard of the machine: SYNCED is
// server-confirmed and a late SENT must not downgrade it.
// Any other move is last-writer-wins.
func (s SendState) CanTransitionTo(next SendState) bool {
	if next == SendStateUnknown {
		return false
	}
	return !(s == SendStateSynced && next == SendStateSent)
}
