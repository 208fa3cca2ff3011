package repositories

import (
	"fmt"
	"local-echo/domain"

	"github.com/samber/lo"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the on-disk local echo record.
// Never renumber: records written by older builds must stay readable.
const (
	echoFieldEventID          protowire.Number = 1
	echoFieldRoomID           protowire.Number = 2
	echoFieldSenderID         protowire.Number = 3
	echoFieldType             protowire.Number = 4
	echoFieldContent          protowire.Number = 5
	echoFieldRedacts          protowire.Number = 6
	echoFieldOriginServerTS   protowire.Number = 7
	echoFieldDecryptedType    protowire.Number = 8
	echoFieldDecryptedContent protowire.Number = 9
	echoFieldSendState        protowire.Number = 10
	echoFieldDisplayIndex     protowire.Number = 11
	echoFieldDisplayName      protowire.Number = 12
	echoFieldAvatarURL        protowire.Number = 13
	echoFieldUniqueName       protowire.Number = 14
)

const (
	memberFieldUserID      protowire.Number = 1
	memberFieldDisplayName protowire.Number = 2
	memberFieldAvatarURL   protowire.Number = 3
	memberFieldMembership  protowire.Number = 4
)

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

// appendOptional writes the field whenever the pointer is set, even for "".
func appendOptional(b []byte, num protowire.Number, v *string) []byte {
	if v == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, *v)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func encodeEcho(echo domain.LocalEcho) []byte {
	evt := echo.Event
	var b []byte
	b = appendString(b, echoFieldEventID, evt.EventID)
	b = appendString(b, echoFieldRoomID, string(evt.RoomID))
	b = appendString(b, echoFieldSenderID, evt.SenderID)
	b = appendString(b, echoFieldType, evt.Type)
	b = appendBytes(b, echoFieldContent, evt.Content)
	b = appendString(b, echoFieldRedacts, evt.Redacts)
	b = appendVarint(b, echoFieldOriginServerTS, uint64(evt.OriginServerTS))
	b = appendString(b, echoFieldDecryptedType, evt.DecryptedType)
	b = appendBytes(b, echoFieldDecryptedContent, evt.DecryptedContent)
	b = appendVarint(b, echoFieldSendState, uint64(echo.SendState))
	b = appendVarint(b, echoFieldDisplayIndex, echo.DisplayIndex)
	b = appendOptional(b, echoFieldDisplayName, echo.SenderDisplayName)
	b = appendOptional(b, echoFieldAvatarURL, echo.SenderAvatarURL)
	b = appendVarint(b, echoFieldUniqueName, protowire.EncodeBool(echo.UniqueDisplayNameFlag))
	return b
}

// decodeEcho copies every byte it keeps: badger values are only valid
// inside the transaction that read them.
func decodeEcho(b []byte) (domain.LocalEcho, error) {
	var echo domain.LocalEcho
	err := consumeFields(b, func(num protowire.Number, raw []byte, varint uint64) {
		switch num {
		case echoFieldEventID:
			echo.Event.EventID = string(raw)
		case echoFieldRoomID:
			echo.Event.RoomID = domain.RoomID(raw)
		case echoFieldSenderID:
			echo.Event.SenderID = string(raw)
		case echoFieldType:
			echo.Event.Type = string(raw)
		case echoFieldContent:
			echo.Event.Content = append([]byte(nil), raw...)
		case echoFieldRedacts:
			echo.Event.Redacts = string(raw)
		case echoFieldOriginServerTS:
			echo.Event.OriginServerTS = int64(varint)
		case echoFieldDecryptedType:
			echo.Event.DecryptedType = string(raw)
		case echoFieldDecryptedContent:
			echo.Event.DecryptedContent = append([]byte(nil), raw...)
		case echoFieldSendState:
			echo.SendState = domain.SendState(varint)
		case echoFieldDisplayIndex:
			echo.DisplayIndex = varint
		case echoFieldDisplayName:
			echo.SenderDisplayName = lo.ToPtr(string(raw))
		case echoFieldAvatarURL:
			echo.SenderAvatarURL = lo.ToPtr(string(raw))
		case echoFieldUniqueName:
			echo.UniqueDisplayNameFlag = protowire.DecodeBool(varint)
		}
	})
	return echo, err
}

func encodeMember(member domain.RoomMember) []byte {
	var b []byte
	b = appendString(b, memberFieldUserID, member.UserID)
	b = appendOptional(b, memberFieldDisplayName, member.DisplayName)
	b = appendOptional(b, memberFieldAvatarURL, member.AvatarURL)
	b = appendString(b, memberFieldMembership, string(member.Membership))
	return b
}

func decodeMember(b []byte) (domain.RoomMember, error) {
	var member domain.RoomMember
	err := consumeFields(b, func(num protowire.Number, raw []byte, _ uint64) {
		switch num {
		case memberFieldUserID:
			member.UserID = string(raw)
		case memberFieldDisplayName:
			member.DisplayName = lo.ToPtr(string(raw))
		case memberFieldAvatarURL:
			member.AvatarURL = lo.ToPtr(string(raw))
		case memberFieldMembership:
			member.Membership = domain.Membership(raw)
		}
	})
	return member, err
}

// consumeFields walks a record and hands every known wire value to fn.
// Unknown wire types are skipped so that newer fields never break a read.
func consumeFields(b []byte, fn func(num protowire.Number, raw []byte, varint uint64)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("record tag: %w", protowire.ParseError(n))
		}
		b = b[n:]
		switch typ {
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return fmt.Errorf("record field %d: %w", num, protowire.ParseError(n))
			}
			fn(num, v, 0)
			b = b[n:]
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return fmt.Errorf("record field %d: %w", num, protowire.ParseError(n))
			}
			fn(num, nil, v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return fmt.Errorf("record field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return nil
}
