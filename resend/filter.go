// Package resend decides which failed local echoes can be sent again
// without any out-of-band work from the caller.
package resend

import (
	"local-echo/domain"
	"local-echo/errors"
	"log/slog"

	"github.com/samber/lo"
)

// Filter classifies failed echoes. It never mutates what it is given.
type Filter struct {
	log *slog.Logger
}

func NewFilter(log *slog.Logger) *Filter {
	return &Filter{log: log}
}

// Eligible keeps the echoes whose content can be resent as is, preserving
// the input order.
func (f *Filter) Eligible(echoes []domain.LocalEcho) []domain.LocalEcho {
	return lo.Filter(echoes, func(echo domain.LocalEcho, _ int) bool {
		return f.IsEligible(echo.Event)
	})
}

// IsEligible accepts inline content only. Attachments would need to be
// uploaded again, which the caller has to drive.
//
// Each considered type is parsed into its own shape: messages need a
// msgtype, reactions an annotation target and key, redactions the redacted
// id. A reaction or redaction carrying a message body instead is rejected.
func (f *Filter) IsEligible(evt domain.Event) bool {
	switch evt.ClearType() {
	case domain.EventTypeMessage, domain.EventTypeReaction, domain.EventTypeRedaction:
	default:
		f.unsupported(evt, "event type")
		return false
	}

	content, ok := domain.DecodeContent(evt)
	if !ok {
		f.unsupported(evt, "content shape")
		return false
	}

	switch c := content.(type) {
	case domain.MessageContent:
		switch c.MsgType {
		case domain.MsgTypeText, domain.MsgTypeEmote, domain.MsgTypeNotice, domain.MsgTypeLocation:
			return true
		case domain.MsgTypeFile, domain.MsgTypeImage, domain.MsgTypeVideo, domain.MsgTypeAudio:
			f.log.Debug("Attachment needs a new upload, not resent automatically",
				"room_id", evt.RoomID, "event_id", evt.EventID, "msgtype", c.MsgType)
			return false
		default:
			f.unsupported(evt, "msgtype", "msgtype", c.MsgType)
			return false
		}
	case domain.ReactionContent, domain.RedactionContent:
		return true
	}
	f.unsupported(evt, "content shape")
	return false
}

func (f *Filter) unsupported(evt domain.Event, reason string, attrs ...any) {
	attrs = append([]any{
		"room_id", evt.RoomID,
		"event_id", evt.EventID,
		"type", evt.ClearType(),
		"reason", reason,
		"error", errors.ErrUnsupportedContent,
	}, attrs...)
	f.log.Warn("Unsupported event to resend", attrs...)
}
