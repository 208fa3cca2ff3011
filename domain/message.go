// Package domain contains core concepts of the local echo system.
// This file defines outgoing Events and their validation rules.
// Events are immutable once they enter the store.
package domain

import (
	"fmt"
	"local-echo/errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const localEventIDPrefix = "$local."

var validate = validator.New()

// Event is the payload of an outgoing chat event.
// Content is the raw JSON body as handed over by the caller.
type Event struct {
	EventID        string `validate:"required"`
	RoomID         RoomID `validate:"required"`
	SenderID       string `validate:"required"`
	Type           string
	Content        []byte
	Redacts        string
	OriginServerTS int64

	// Decrypted view, set by the crypto layer when the event is encrypted.
	DecryptedType    string
	DecryptedContent []byte
}

// ClearType returns the decrypted type when known, the wire type otherwise.
func (e Event) ClearType() string {
	if e.DecryptedType != "" {
		return e.DecryptedType
	}
	return e.Type
}

func (e Event) ClearContent() []byte {
	if e.DecryptedType != "" {
		return e.DecryptedContent
	}
	return e.Content
}

// Validate rejects events that miss an identifier, a sender or a room.
func (e Event) Validate() error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("%w: %s", errors.ErrInvalidEvent, err.Error())
	}
	return nil
}

// NewLocalEventID returns a transaction-scoped identifier for an event
// that has not been acknowledged by the server yet.
func NewLocalEventID() string {
	return localEventIDPrefix + uuid.NewString()
}

func IsLocalEventID(eventID string) bool {
	return len(eventID) > len(localEventIDPrefix) && eventID[:len(localEventIDPrefix)] == localEventIDPrefix
}
