package env

import (
	"fmt"
	"os"
	"strconv"

	"gacha_backend/internal/config"
)

const (
	uploadDirEnvName      = "UPLOAD_DIR"
	uploadMaxBytesEnvName = "UPLOAD_MAX_BYTES"
	defaultAvatarEnvName  = "DEFAULT_AVATAR"

	defaultUploadDir      = "static/profiles"
	defaultUploadMaxBytes = 5 << 20 // 5 МБ
	defaultAvatarName     = "default_profile.svg"
)

type uploadConfig struct {
	dir           string
	maxBytes      int64
	defaultAvatar string
}

func NewUploadConfig() (config.UploadConfig, error) {
	cfg := &uploadConfig{
		dir:           defaultUploadDir,
		maxBytes:      defaultUploadMaxBytes,
		defaultAvatar: defaultAvatarName,
	}

	if dir := os.Getenv(uploadDirEnvName); len(dir) != 0 {
		cfg.dir = dir
	}

	if raw := os.Getenv(uploadMaxBytesEnvName); len(raw) != 0 {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid %s %q", uploadMaxBytesEnvName, raw)
		}
		cfg.maxBytes = n
	}

	if name := os.Getenv(defaultAvatarEnvName); len(name) != 0 {
		cfg.defaultAvatar = name
	}

	return cfg, nil
}

func (u *uploadConfig) Dir() string {
	return u.dir
}

func (u *uploadConfig) MaxBytes() int64 {
	return u.maxBytes
}

func (u *uploadConfig) DefaultAvatar() string {
	return u.defaultAvatar
}
