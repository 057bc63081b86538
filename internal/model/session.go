package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Session struct {
	ID        string
	AccountID int
	ExpiresAt time.Time
}

// AuthData - результат входа: подписанная cookie и время её истечения
type AuthData struct {
	SessionToken string
	ExpiresAt    time.Time
}

// SessionClaims - содержимое подписанной cookie сессии.
// ID (jti) - идентификатор серверной сессии, Subject - ID аккаунта.
type SessionClaims struct {
	jwt.RegisteredClaims
}
