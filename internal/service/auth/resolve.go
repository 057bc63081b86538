package auth

import (
	"context"
	"fmt"

	"gacha_backend/internal/model"
	"gacha_backend/pkg/token"
)

// Resolve возвращает ID аккаунта по cookie сессии
func (s *serv) Resolve(ctx context.Context, sessionToken string) (int, error) {
	if sessionToken == "" {
		return 0, model.ErrSessionNotFound
	}

	// Проверка подписи и срока действия
	sessionID, claimedID, err := token.VerifySessionToken(sessionToken, s.sessionCfg.SecretKey())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", model.ErrSessionNotFound, err)
	}

	// Сессия должна существовать на сервере
	accountID, err := s.sessionRepo.GetAccountIDBySessionID(ctx, sessionID)
	if err != nil {
		return 0, err
	}

	if accountID != claimedID {
		return 0, fmt.Errorf("%w: account mismatch", model.ErrSessionNotFound)
	}

	return accountID, nil
}
