package internal

import (
	"fmt"
	"local-echo/repositories"
	"time"
)

type Config struct {
	BadgerFilepath         string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel               string        `env:"LOG_LEVEL,default=INFO"`
	DisplayIndexBandwidth  uint64        `env:"DISPLAY_INDEX_BANDWIDTH,default=100"`
	ConflictRetries        int           `env:"CONFLICT_RETRIES,default=3"`
	TombstoneTTL           time.Duration `env:"TOMBSTONE_TTL,default=24h"`
	NotificationBufferSize int           `env:"NOTIFICATION_BUFFER_SIZE,default=256"`
	SinkTimeout            time.Duration `env:"SINK_TIMEOUT,default=2s"`
	// DebugPort exposes the badger inspector when the log level is DEBUG.
	DebugPort int `env:"DEBUG_PORT,default=8081"`
}

func (c Config) Validate() error {
	if c.DisplayIndexBandwidth == 0 {
		return fmt.Errorf("DISPLAY_INDEX_BANDWIDTH must be positive, got %d", c.DisplayIndexBandwidth)
	}
	if c.ConflictRetries < 1 {
		return fmt.Errorf("CONFLICT_RETRIES must be at least 1, got %d", c.ConflictRetries)
	}
	if c.NotificationBufferSize < 1 {
		return fmt.Errorf("NOTIFICATION_BUFFER_SIZE must be at least 1, got %d", c.NotificationBufferSize)
	}
	return nil
}

func (c Config) LocalEchoOptions() repositories.LocalEchoOptions {
	return repositories.LocalEchoOptions{
		SequenceBandwidth: c.DisplayIndexBandwidth,
		ConflictRetries:   c.ConflictRetries,
		TombstoneTTL:      c.TombstoneTTL,
	}
}
