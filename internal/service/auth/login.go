package auth

import (
	"context"
	"errors"

	"gacha_backend/internal/model"
	"gacha_backend/pkg/pass"
	"gacha_backend/pkg/token"

	"github.com/rs/zerolog/log"
)

func (s *serv) Login(ctx context.Context, username, password string) (*model.AuthData, error) {
	// Получение аккаунта из бд по логину
	account, err := s.accountRepo.GetAccountByUsername(ctx, username)
	if errors.Is(err, model.ErrAccountNotFound) {
		return nil, model.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	// Верификация пароля
	if !pass.VerifyPassword(account.Password, password) {
		return nil, model.ErrInvalidCredentials
	}

	session := &model.Session{
		ID:        token.NewSessionID(),
		AccountID: account.ID,
		ExpiresAt: s.now().Add(s.sessionCfg.TTL()),
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Убрать истекшие сессии
		n, err := s.sessionRepo.DeleteExpiredSessions(txCtx)
		if err != nil {
			return err
		}
		if n > 0 {
			log.Debug().Int64("count", n).Msg("expired sessions removed")
		}

		// 2. Создать сессию
		return s.sessionRepo.CreateSession(txCtx, session)
	})
	if err != nil {
		return nil, err
	}

	// Подписать cookie
	sessionToken, err := token.GenerateSessionToken(session, s.sessionCfg.SecretKey())
	if err != nil {
		return nil, err
	}

	return &model.AuthData{
		SessionToken: sessionToken,
		ExpiresAt:    session.ExpiresAt,
	}, nil
}
