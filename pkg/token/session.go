package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gacha_backend/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// NewSessionID генерирует идентификатор серверной сессии
func NewSessionID() string {
	return uuid.NewString()
}

// GenerateSessionToken подписывает cookie сессии (HS256)
func GenerateSessionToken(session *model.Session, secretKey []byte) (string, error) {
	claims := model.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   strconv.Itoa(session.AccountID),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secretKey)
}

// VerifySessionToken проверяет подпись и срок действия, возвращает ID сессии и ID аккаунта
func VerifySessionToken(tokenStr string, secretKey []byte) (sessionID string, accountID int, err error) {
	token, err := jwt.ParseWithClaims(tokenStr, &model.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		_, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, errors.New("unexpected token signing method")
		}

		return secretKey, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return "", 0, fmt.Errorf("invalid token: %v", err)
	}

	claims, ok := token.Claims.(*model.SessionClaims)
	if !ok {
		return "", 0, errors.New("invalid token claims")
	}

	if claims.ID == "" {
		return "", 0, errors.New("token has no session id")
	}

	accountID, err = strconv.Atoi(claims.Subject)
	if err != nil {
		return "", 0, fmt.Errorf("invalid token subject: %w", err)
	}

	return claims.ID, accountID, nil
}
