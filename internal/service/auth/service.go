package auth

import (
	"time"

	"gacha_backend/internal/config"
	"gacha_backend/internal/repository"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type serv struct {
	txManager     trm.Manager
	accountRepo   repository.AccountRepository
	sessionRepo   repository.SessionRepository
	sessionCfg    config.SessionConfig
	defaultAvatar string
	now           func() time.Time
}

func NewService(
	txManager trm.Manager,
	accountRepo repository.AccountRepository,
	sessionRepo repository.SessionRepository,
	sessionCfg config.SessionConfig,
	defaultAvatar string,
) *serv {
	return &serv{
		txManager:     txManager,
		accountRepo:   accountRepo,
		sessionRepo:   sessionRepo,
		sessionCfg:    sessionCfg,
		defaultAvatar: defaultAvatar,
		now:           time.Now,
	}
}
