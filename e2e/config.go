package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_BADGER_DIR keeps the store on disk after the run, a temporary
	// directory is used when empty
	BadgerDir string `envconfig:"E2E_BADGER_DIR"`
	// E2E_LOG_LEVEL sets the level of the echo core loggers
	LogLevel string `envconfig:"E2E_LOG_LEVEL" default:"ERROR"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
	// E2E_DUMP_TIMELINE logs the local timeline after every step
	DumpTimeline bool `envconfig:"E2E_DUMP_TIMELINE" default:"false"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
