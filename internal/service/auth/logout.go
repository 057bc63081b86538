package auth

import (
	"context"

	"gacha_backend/pkg/token"
)

// Logout удаляет серверную сессию. Невалидная cookie ошибкой не считается.
func (s *serv) Logout(ctx context.Context, sessionToken string) error {
	sessionID, _, err := token.VerifySessionToken(sessionToken, s.sessionCfg.SecretKey())
	if err != nil {
		return nil
	}

	return s.sessionRepo.DeleteSession(ctx, sessionID)
}
