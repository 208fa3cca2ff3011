package internal

import (
	"testing"
	"time"

	"github.com/Netflix/go-env"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	req := require.New(t)
	t.Setenv("BADGER_FILEPATH", "/tmp/echoes")

	var config Config
	_, err := env.UnmarshalFromEnviron(&config)

	req.NoError(err)
	req.NoError(config.Validate())
	req.Equal("/tmp/echoes", config.BadgerFilepath)
	req.Equal(uint64(100), config.DisplayIndexBandwidth)
	req.Equal(24*time.Hour, config.TombstoneTTL)

	options := config.LocalEchoOptions()
	req.Equal(uint64(100), options.SequenceBandwidth)
	req.Equal(3, options.ConflictRetries)
	req.Equal(24*time.Hour, options.TombstoneTTL)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{DisplayIndexBandwidth: 10, ConflictRetries: 1, NotificationBufferSize: 1}
	require.NoError(t, valid.Validate())

	for name, mutate := range map[string]func(c *Config){
		"no bandwidth":   func(c *Config) { c.DisplayIndexBandwidth = 0 },
		"no retry":       func(c *Config) { c.ConflictRetries = 0 },
		"no buffer size": func(c *Config) { c.NotificationBufferSize = 0 },
	} {
		t.Run(name, func(t *testing.T) {
			config := valid
			mutate(&config)
			require.Error(t, config.Validate())
		})
	}
}
