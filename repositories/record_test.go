package repositories

import (
	"local-echo/domain"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestEchoRecord_Keeps_Every_Field(t *testing.T) {
	req := require.New(t)
	echo := domain.LocalEcho{
		Event: domain.Event{
			EventID:          "$local.1",
			RoomID:           "!room:example.org",
			SenderID:         "@alice:example.org",
			Type:             domain.EventTypeEncrypted,
			Content:          []byte(`{"ciphertext":"abc"}`),
			Redacts:          "$target",
			OriginServerTS:   1700000000000,
			DecryptedType:    domain.EventTypeMessage,
			DecryptedContent: []byte(`{"msgtype":"m.text","body":"hi"}`),
		},
		SendState:             domain.SendStateHasFailed,
		DisplayIndex:          42,
		SenderDisplayName:     lo.ToPtr(""),
		UniqueDisplayNameFlag: true,
	}

	decoded, err := decodeEcho(encodeEcho(echo))

	req.NoError(err)
	req.Equal(echo, decoded)
	req.Nil(decoded.SenderAvatarURL)
}

func TestEchoRecord_Skips_Unknown_Fields(t *testing.T) {
	req := require.New(t)
	b := encodeEcho(domain.LocalEcho{Event: domain.Event{EventID: "$local.1"}, SendState: domain.SendStateSent})
	b = protowire.AppendTag(b, 99, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, 7)

	decoded, err := decodeEcho(b)

	req.NoError(err)
	req.Equal("$local.1", decoded.EventID())
	req.Equal(domain.SendStateSent, decoded.SendState)
}

func TestEchoRecord_Truncated(t *testing.T) {
	b := encodeEcho(domain.LocalEcho{Event: domain.Event{EventID: "$local.1"}})

	_, err := decodeEcho(b[:len(b)-3])

	require.Error(t, err)
}
