package env

import (
	"fmt"
	"os"
	"strconv"

	"gacha_backend/internal/config"

	"github.com/rs/zerolog"
)

const (
	logLevelEnvName  = "LOG_LEVEL"
	logPrettyEnvName = "LOG_PRETTY"
)

type logConfig struct {
	level  zerolog.Level
	pretty bool
}

func NewLogConfig() (config.LogConfig, error) {
	cfg := &logConfig{level: zerolog.InfoLevel}

	if raw := os.Getenv(logLevelEnvName); len(raw) != 0 {
		lvl, err := zerolog.ParseLevel(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		cfg.level = lvl
	}

	if raw := os.Getenv(logPrettyEnvName); len(raw) != 0 {
		pretty, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", logPrettyEnvName, err)
		}
		cfg.pretty = pretty
	}

	return cfg, nil
}

func (l *logConfig) Level() zerolog.Level {
	return l.level
}

func (l *logConfig) Pretty() bool {
	return l.pretty
}
