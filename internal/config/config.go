package config

import (
	"time"

	"gacha_backend/pkg/sampler"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type GachaConfig interface {
	Table() *sampler.Table
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type SessionConfig interface {
	SecretKey() []byte
	TTL() time.Duration
	SecureCookie() bool
}

type UploadConfig interface {
	Dir() string
	MaxBytes() int64
	DefaultAvatar() string
}

type LogConfig interface {
	Level() zerolog.Level
	Pretty() bool
}
