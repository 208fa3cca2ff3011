package main

import (
	"bytes"
	"local-echo/domain"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

const room = "!room:example.org"

func setupEnv(t *testing.T) {
	t.Setenv("BADGER_FILEPATH", t.TempDir())
	t.Setenv("LOG_LEVEL", "ERROR")
}

func runCommand(t *testing.T, args ...string) (int, string, error) {
	t.Helper()
	var out bytes.Buffer
	code, err := run(args, &out)
	return code, out.String(), err
}

func TestRun_Rejects_Unknown_Command(t *testing.T) {
	setupEnv(t)

	code, out, err := runCommand(t, "promote")

	require.Equal(t, exitUsage, code)
	require.ErrorIs(t, err, errUsage)
	require.Contains(t, out, "usage: echoctl")
}

func TestRun_Rejects_Missing_Configuration(t *testing.T) {
	t.Setenv("BADGER_FILEPATH", "")
	require.NoError(t, os.Unsetenv("BADGER_FILEPATH"))

	code, _, err := runCommand(t, "queue", "-room", room)

	require.Equal(t, exitConfig, code)
	require.Error(t, err)
}

func TestRun_Send_Then_Queue(t *testing.T) {
	req := require.New(t)
	setupEnv(t)

	// Given a text echo created through the CLI
	code, out, err := runCommand(t, "send", "-room", room, "-sender", "@alice:example.org", "-id", "$local.1", "hello", "world")
	req.NoError(err)
	req.Equal(exitOK, code)
	req.Contains(out, "+ $local.1")

	// Then the sending queue shows it
	code, out, err = runCommand(t, "queue", "-room", room)
	req.NoError(err)
	req.Equal(exitOK, code)
	req.Contains(out, "$local.1")
	req.Contains(out, "[m.text] hello world")
	req.Contains(out, "UNSENT")
}

func TestRun_Send_Without_Sender_Is_Invalid(t *testing.T) {
	setupEnv(t)

	code, _, err := runCommand(t, "send", "-room", room, "hello")

	require.Equal(t, exitRuntime, code)
	require.Error(t, err)
}

func TestRun_Resend_Keeps_Text_And_Skips_Media(t *testing.T) {
	req := require.New(t)
	setupEnv(t)

	for _, args := range [][]string{
		{"send", "-room", room, "-sender", "@alice:example.org", "-id", "$text", "hello"},
		{"send", "-room", room, "-sender", "@alice:example.org", "-id", "$image", "-msgtype", "m.image", "cat.png"},
		{"state", "-room", room, "-event", "$text,$image", "-state", "HAS_FAILED"},
	} {
		code, _, err := runCommand(t, args...)
		req.NoError(err)
		req.Equal(exitOK, code)
	}

	_, out, err := runCommand(t, "resend", "-room", room)
	req.NoError(err)
	req.Contains(out, "$text")
	req.NotContains(out, "$image")

	_, out, err = runCommand(t, "cancel", "-room", room)
	req.NoError(err)
	req.Contains(out, "2 failed echoes canceled")
}

func TestRun_State_Requires_A_Known_State(t *testing.T) {
	setupEnv(t)

	code, out, err := runCommand(t, "state", "-event", "$local.1", "-state", "DELIVERED")

	require.Equal(t, exitUsage, code)
	require.ErrorIs(t, err, errUsage)
	require.Contains(t, out, "usage: echoctl state")
}

func TestRun_Inspect_Describes_Records(t *testing.T) {
	req := require.New(t)
	setupEnv(t)

	_, _, err := runCommand(t, "member", "-room", room, "-user", "@alice:example.org", "-name", "Alice")
	req.NoError(err)
	_, _, err = runCommand(t, "send", "-room", room, "-sender", "@alice:example.org", "-id", "$local.1", "hi")
	req.NoError(err)

	_, out, err := runCommand(t, "inspect", "-prefix", "echo|")
	req.NoError(err)
	req.Contains(out, "ECHO")
	req.Contains(out, "$local.1")
	req.NotContains(out, "MEMBER")
}

func TestBuildContent_Matches_Decoded_Shapes(t *testing.T) {
	req := require.New(t)

	reaction, err := buildContent(domain.EventTypeReaction, "", "", "$target", "👍", "")
	req.NoError(err)
	content, ok := domain.DecodeContent(domain.Event{Type: domain.EventTypeReaction, Content: reaction})
	req.True(ok)
	req.Equal(domain.ReactionContent{RelatesTo: "$target", Key: "👍"}, content)

	redaction, err := buildContent(domain.EventTypeRedaction, "", "spam", "", "", "$target")
	req.NoError(err)
	content, ok = domain.DecodeContent(domain.Event{Type: domain.EventTypeRedaction, Content: redaction})
	req.True(ok)
	req.Equal(domain.RedactionContent{Redacts: "$target", Reason: "spam"}, content)

	message, err := buildContent(domain.EventTypeMessage, domain.MsgTypeEmote, "waves", "", "", "")
	req.NoError(err)
	content, ok = domain.DecodeContent(domain.Event{Type: domain.EventTypeMessage, Content: message})
	req.True(ok)
	req.Equal(domain.MessageContent{MsgType: domain.MsgTypeEmote, Body: "waves"}, content)
}

func TestRun_Summary_Counts_Pending_And_Sent(t *testing.T) {
	req := require.New(t)
	setupEnv(t)

	for _, args := range [][]string{
		{"send", "-room", room, "-sender", "@alice:example.org", "-id", "$local.1", "one"},
		{"send", "-room", room, "-sender", "@alice:example.org", "-id", "$local.2", "two"},
		{"state", "-event", "$local.1", "-state", "SENT"},
	} {
		_, _, err := runCommand(t, args...)
		req.NoError(err)
	}

	_, out, err := runCommand(t, "summary", "-room", room)
	req.NoError(err)
	req.Contains(out, "PENDING")
	req.Regexp(room+`\s+2\s+1\s+1\s+0\s+\[m.text\] two`, out)
}
