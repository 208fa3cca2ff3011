package domain

import "github.com/tidwall/gjson"

const (
	EventTypeMessage   = "m.room.message"
	EventTypeReaction  = "m.reaction"
	EventTypeRedaction = "m.room.redaction"
	EventTypeEncrypted = "m.room.encrypted"
)

const (
	MsgTypeText     = "m.text"
	MsgTypeEmote    = "m.emote"
	MsgTypeNotice   = "m.notice"
	MsgTypeLocation = "m.location"
	MsgTypeFile     = "m.file"
	MsgTypeImage    = "m.image"
	MsgTypeVideo    = "m.video"
	MsgTypeAudio    = "m.audio"
)

const RelTypeAnnotation = "m.annotation"

// Content is the decoded body of an event. Only the shapes below exist:
// MessageContent, ReactionContent and RedactionContent.
type Content interface {
	isContent()
}

type MessageContent struct {
	MsgType string
	Body    string
}

type ReactionContent struct {
	RelatesTo string
	Key       string
}

type RedactionContent struct {
	Redacts string
	Reason  string
}

func (MessageContent) isContent()   {}
func (ReactionContent) isContent()  {}
func (RedactionContent) isContent() {}

// DecodeContent reads the clear content of an event into its typed shape.
// The boolean is false when the type is unknown or the body does not match
// the shape expected for that type.
func DecodeContent(e Event) (Content, bool) {
	raw := e.ClearContent()
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return nil, false
	}
	body := gjson.ParseBytes(raw)
	if !body.IsObject() {
		return nil, false
	}

	switch e.ClearType() {
	case EventTypeMessage:
		msgType := body.Get("msgtype")
		if msgType.Type != gjson.String || msgType.String() == "" {
			return nil, false
		}
		return MessageContent{MsgType: msgType.String(), Body: body.Get("body").String()}, true
	case EventTypeReaction:
		relation := body.Get("m\\.relates_to")
		if relation.Get("rel_type").String() != RelTypeAnnotation {
			return nil, false
		}
		target, key := relation.Get("event_id").String(), relation.Get("key").String()
		if target == "" || key == "" {
			return nil, false
		}
		return ReactionContent{RelatesTo: target, Key: key}, true
	case EventTypeRedaction:
		redacts := body.Get("redacts").String()
		if redacts == "" {
			redacts = e.Redacts
		}
		if redacts == "" {
			return nil, false
		}
		return RedactionContent{Redacts: redacts, Reason: body.Get("reason").String()}, true
	}
	return nil, false
}
