package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"local-echo/domain"
	"local-echo/errors"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
	"github.com/samber/lo"
	"github.com/tidwall/sjson"
)

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, s *stack, args []string) error
}

var commands = map[string]command{}

func register(cmd command) {
	commands[cmd.name] = cmd
}

func init() {
	register(command{name: "send", usage: "-room R -sender S [-type T] [-msgtype M] [-relates-to E -key K] [-redacts E] [-id ID] BODY", run: sendCommand})
	register(command{name: "state", usage: "-state S -event E[,E...] [-room R]", run: stateCommand})
	register(command{name: "delete", usage: "-room R -event E", run: deleteCommand})
	register(command{name: "cancel", usage: "-room R", run: cancelCommand})
	register(command{name: "clear", usage: "-room R", run: clearCommand})
	register(command{name: "queue", usage: "-room R", run: queueCommand})
	register(command{name: "failed", usage: "-room R", run: failedCommand})
	register(command{name: "resend", usage: "-room R", run: resendCommand})
	register(command{name: "member", usage: "-room R [-user U -name N -avatar A -membership M]", run: memberCommand})
	register(command{name: "summary", usage: "-room R", run: summaryCommand})
	register(command{name: "inspect", usage: "[-prefix P] [-serve]", run: inspectCommand})
}

func printUsage(out io.Writer) {
	names := lo.Keys(commands)
	sort.Strings(names)
	fmt.Fprintln(out, "usage: echoctl <command> [flags]")
	for _, name := range names {
		fmt.Fprintf(out, "  %-8s %s\n", name, commands[name].usage)
	}
}

func newFlagSet(s *stack, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(s.out)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	return nil
}

func requireRoom(room string) (domain.RoomID, error) {
	if room == "" {
		return "", fmt.Errorf("%w: -room is required", errUsage)
	}
	return domain.RoomID(room), nil
}

func sendCommand(ctx context.Context, s *stack, args []string) error {
	fs := newFlagSet(s, "send")
	room := fs.String("room", "", "room id")
	sender := fs.String("sender", "", "sender user id")
	eventType := fs.String("type", domain.EventTypeMessage, "event type")
	msgType := fs.String("msgtype", domain.MsgTypeText, "message type")
	relatesTo := fs.String("relates-to", "", "annotated event id (reactions)")
	key := fs.String("key", "", "reaction key")
	redacts := fs.String("redacts", "", "redacted event id")
	eventID := fs.String("id", "", "event id, generated when empty")
	if err := parse(fs, args); err != nil {
		return err
	}
	roomID, err := requireRoom(*room)
	if err != nil {
		return err
	}

	if *eventID != "" && !domain.IsLocalEventID(*eventID) {
		s.log.Warn("Event id is not a local transaction id", "event_id", *eventID)
	}
	content, err := buildContent(*eventType, *msgType, strings.Join(fs.Args(), " "), *relatesTo, *key, *redacts)
	if err != nil {
		return err
	}
	evt := domain.Event{
		EventID:  lo.Ternary(*eventID == "", domain.NewLocalEventID(), *eventID),
		RoomID:   roomID,
		SenderID: *sender,
		Type:     *eventType,
		Content:  content,
		Redacts:  *redacts,
	}

	s.watch(roomID)
	echo, err := s.service.CreateLocalEcho(ctx, evt)
	if err != nil {
		return err
	}
	renderEchoes(s.out, []domain.LocalEcho{echo})
	return nil
}

// buildContent writes the content shape each event type is decoded with.
func buildContent(eventType, msgType, body, relatesTo, key, redacts string) ([]byte, error) {
	content := []byte("{}")
	var fields [][2]string
	switch eventType {
	case domain.EventTypeReaction:
		fields = [][2]string{
			{"m\\.relates_to.rel_type", domain.RelTypeAnnotation},
			{"m\\.relates_to.event_id", relatesTo},
			{"m\\.relates_to.key", key},
		}
	case domain.EventTypeRedaction:
		fields = [][2]string{{"redacts", redacts}}
		if body != "" {
			fields = append(fields, [2]string{"reason", body})
		}
	default:
		fields = [][2]string{{"msgtype", msgType}, {"body", body}}
	}
	for _, field := range fields {
		var err error
		if content, err = sjson.SetBytes(content, field[0], field[1]); err != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrInvalidPayload, err)
		}
	}
	return content, nil
}

func stateCommand(ctx context.Context, s *stack, args []string) error {
	fs := newFlagSet(s, "state")
	room := fs.String("room", "", "room id, required for several events")
	events := fs.String("event", "", "comma separated event ids")
	stateName := fs.String("state", "", "UNSENT, SENDING, SENT, SYNCED, UNDELIVERED or HAS_FAILED")
	if err := parse(fs, args); err != nil {
		return err
	}
	state, err := domain.ParseSendState(*stateName)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	ids := lo.Compact(lo.Map(strings.Split(*events, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	}))
	if len(ids) == 0 {
		return fmt.Errorf("%w: -event is required", errUsage)
	}
	if *room != "" {
		s.watch(domain.RoomID(*room))
	}

	if len(ids) == 1 && *room == "" {
		return s.service.UpdateSendState(ctx, ids[0], state)
	}
	roomID, err := requireRoom(*room)
	if err != nil {
		return err
	}
	return s.service.UpdateSendStates(ctx, roomID, ids, state)
}

func deleteCommand(ctx context.Context, s *stack, args []string) error {
	fs := newFlagSet(s, "delete")
	room := fs.String("room", "", "room id")
	eventID := fs.String("event", "", "event id")
	if err := parse(fs, args); err != nil {
		return err
	}
	roomID, err := requireRoom(*room)
	if err != nil {
		return err
	}
	if *eventID == "" {
		return fmt.Errorf("%w: -event is required", errUsage)
	}
	s.watch(roomID)
	return s.service.DeleteFailedEcho(ctx, roomID, *eventID)
}

func roomCommand(s *stack, name string, args []string) (domain.RoomID, error) {
	fs := newFlagSet(s, name)
	room := fs.String("room", "", "room id")
	if err := parse(fs, args); err != nil {
		return "", err
	}
	roomID, err := requireRoom(*room)
	if err != nil {
		return "", err
	}
	s.watch(roomID)
	return roomID, nil
}

func cancelCommand(ctx context.Context, s *stack, args []string) error {
	roomID, err := roomCommand(s, "cancel", args)
	if err != nil {
		return err
	}
	count, err := s.service.CancelAllFailedEchoes(ctx, roomID)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%d failed echoes canceled\n", count)
	return nil
}

func clearCommand(ctx context.Context, s *stack, args []string) error {
	roomID, err := roomCommand(s, "clear", args)
	if err != nil {
		return err
	}
	return s.service.ClearSendingQueue(ctx, roomID)
}

func queueCommand(ctx context.Context, s *stack, args []string) error {
	roomID, err := roomCommand(s, "queue", args)
	if err != nil {
		return err
	}
	queue, err := s.service.GetSendingQueue(ctx, roomID)
	if err != nil {
		return err
	}
	renderEchoes(s.out, queue)
	return nil
}

func failedCommand(_ context.Context, s *stack, args []string) error {
	roomID, err := roomCommand(s, "failed", args)
	if err != nil {
		return err
	}
	failed, err := s.echoes.EchoesWithStates(roomID, domain.FailedSendStates...)
	if err != nil {
		return err
	}
	renderEchoes(s.out, failed)
	return nil
}

func resendCommand(ctx context.Context, s *stack, args []string) error {
	roomID, err := roomCommand(s, "resend", args)
	if err != nil {
		return err
	}
	events, err := s.service.GetResendableFailedEchoes(ctx, roomID)
	if err != nil {
		return err
	}
	renderEvents(s.out, events)
	return nil
}

func memberCommand(_ context.Context, s *stack, args []string) error {
	fs := newFlagSet(s, "member")
	room := fs.String("room", "", "room id")
	user := fs.String("user", "", "user id, lists the members when empty")
	name := fs.String("name", "", "display name")
	avatar := fs.String("avatar", "", "avatar url")
	membership := fs.String("membership", string(domain.MembershipJoin), "join, invite, leave or ban")
	if err := parse(fs, args); err != nil {
		return err
	}
	roomID, err := requireRoom(*room)
	if err != nil {
		return err
	}

	if *user != "" {
		member := domain.RoomMember{
			UserID:      *user,
			DisplayName: lo.EmptyableToPtr(*name),
			AvatarURL:   lo.EmptyableToPtr(*avatar),
			Membership:  domain.Membership(*membership),
		}
		if err := s.members.SaveMember(roomID, member); err != nil {
			return err
		}
	}
	members, err := s.members.Members(roomID)
	if err != nil {
		return err
	}
	renderMembers(s.out, members)
	return nil
}

func summaryCommand(_ context.Context, s *stack, args []string) error {
	roomID, err := roomCommand(s, "summary", args)
	if err != nil {
		return err
	}
	summary, err := s.summaries.Recompute(roomID)
	if err != nil {
		return err
	}
	renderSummary(s.out, summary)
	return nil
}

func inspectCommand(ctx context.Context, s *stack, args []string) error {
	fs := newFlagSet(s, "inspect")
	prefix := fs.String("prefix", "", "raw key prefix, segments separated by |")
	serve := fs.Bool("serve", false, "serve the debug inspector until interrupted")
	if err := parse(fs, args); err != nil {
		return err
	}

	if *serve {
		endpoint := "/inspect"
		s.log.Info("Debug Badger inspector available",
			"url", fmt.Sprintf("http://localhost:%d%s", s.config.DebugPort, endpoint))
		database.StartDebugServer(s.db, s.config.DebugPort, endpoint, EchoMapper)
		<-ctx.Done()
		return nil
	}

	rawPrefix := []byte(strings.ReplaceAll(*prefix, "|", "\x00"))
	var rows []database.InspectRow
	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(rawPrefix); it.ValidForPrefix(rawPrefix); it.Next() {
			item := it.Item()
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			keys = append(keys, string(item.KeyCopy(nil)))
			rows = append(rows, EchoMapper(string(item.Key()), val))
		}
		return nil
	})
	if err != nil {
		return err
	}
	renderRecords(s.out, keys, rows)
	return nil
}
