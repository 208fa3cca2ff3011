package e2e

import (
	"context"
	"fmt"
	"local-echo/domain"
	"local-echo/projection"
	"local-echo/repositories"
	"local-echo/resend"
	"local-echo/runtime"
	"local-echo/runtime/workers"
	"local-echo/services"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

// BaseStackSuite runs the whole echo core in process, on a real badger
// store, with the background workers supervised as a client would run them.
type BaseStackSuite struct {
	suite.Suite
	Config Config

	DB        *badger.DB
	Members   *repositories.MemberRepository
	Echoes    *repositories.LocalEchoRepository
	Service   *services.LocalEchoService
	Timeline  *projection.Timeline
	Summaries *projection.SummaryProjector
	Registry  *runtime.Registry
	Processor *RecordingProcessor

	supervisor *workers.Supervisor
	cancel     context.CancelFunc
	done       chan struct{}
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseStackSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
}

// SetupTest starts a fresh stack on an empty store
func (s *BaseStackSuite) SetupTest() {
	log := logs.GetLoggerFromString(s.Config.LogLevel)
	dir := s.T().TempDir()
	if s.Config.BadgerDir != "" {
		dir = filepath.Join(s.Config.BadgerDir, strings.ReplaceAll(s.T().Name(), "/", "_"))
	}

	db, err := badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR))
	s.Require().NoError(err)
	s.DB = db

	s.Members = repositories.NewMemberRepository(db, log)
	s.Echoes, err = repositories.NewLocalEchoRepository(db, log, s.Members, repositories.DefaultLocalEchoOptions())
	s.Require().NoError(err)

	s.Timeline = projection.NewTimeline()
	s.Registry = runtime.NewRegistry()
	s.Summaries = projection.NewSummaryProjector(log, s.Echoes)
	s.Processor = &RecordingProcessor{}
	fanout := workers.NewEventFanout(log, 256, time.Second, s.Registry, s.Timeline)
	s.Service = services.NewLocalEchoService(log, s.Echoes, resend.NewFilter(log), fanout, s.Summaries, s.Processor)

	s.supervisor = workers.NewSupervisor(log)
	s.supervisor.Add(fanout, s.Summaries)
	var ctx context.Context
	ctx, s.cancel = context.WithCancel(context.Background())
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		s.supervisor.Run(ctx)
	}()
}

func (s *BaseStackSuite) TearDownTest() {
	s.cancel()
	<-s.done
	s.Require().NoError(s.Echoes.Close())
	s.Require().NoError(s.DB.Close())
}

// Step prints a colorized header and runs one step of a scenario
func (s *BaseStackSuite) Step(name string, fn func(ctx context.Context)) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	fn(ctx)
}

// DumpTimeline logs what a timeline view of the room would render
func (s *BaseStackSuite) DumpTimeline(roomID domain.RoomID) {
	if !s.Config.DumpTimeline {
		return
	}
	for _, echo := range s.Timeline.Echoes(roomID) {
		s.T().Logf("    #%d %s %s", echo.DisplayIndex, echo.EventID(), echo.SendState)
	}
}

// TextEvent builds a plain text message of the sender
func TextEvent(roomID domain.RoomID, senderID, body string) domain.Event {
	return MessageEvent(roomID, senderID, domain.MsgTypeText, body)
}

func MessageEvent(roomID domain.RoomID, senderID, msgType, body string) domain.Event {
	return domain.Event{
		EventID:  domain.NewLocalEventID(),
		RoomID:   roomID,
		SenderID: senderID,
		Type:     domain.EventTypeMessage,
		Content:  []byte(fmt.Sprintf(`{"msgtype":%q,"body":%q}`, msgType, body)),
	}
}

// RecordingProcessor keeps every event handed over after creation
type RecordingProcessor struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *RecordingProcessor) ProcessLocalEvents(_ context.Context, _ domain.RoomID, events []domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *RecordingProcessor) Events() []domain.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.Event(nil), p.events...)
}
