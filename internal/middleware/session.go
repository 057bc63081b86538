package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gacha_backend/internal/model"
	"gacha_backend/pkg/resp"

	"github.com/rs/zerolog/log"
)

// SessionCookieName - cookie с подписанным токеном сессии
const SessionCookieName = "session_id"

type ctxKey int

const accountIDKey ctxKey = iota

// SessionResolver определяет аккаунт по токену сессии
type SessionResolver interface {
	Resolve(ctx context.Context, sessionToken string) (accountID int, err error)
}

// SessionGate пропускает только запросы с действующей сессией.
// Иначе cookie стирается, а клиент уходит на /login.
// Сбой хранилища сессию не отменяет: ответ 500, cookie остается.
func SessionGate(resolver SessionResolver, secureCookie bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(SessionCookieName)
			if err != nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			accountID, err := resolver.Resolve(r.Context(), c.Value)
			switch {
			case errors.Is(err, model.ErrSessionNotFound):
				log.Ctx(r.Context()).Debug().Err(err).Msg("session rejected")
				RejectSession(w, r, secureCookie)
				return
			case err != nil:
				log.Ctx(r.Context()).Error().Err(err).Msg("resolve session")
				resp.WriteText(w, http.StatusInternalServerError, "internal server error")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAccountID(r.Context(), accountID)))
		})
	}
}

// RejectSession стирает cookie и перенаправляет на /login
func RejectSession(w http.ResponseWriter, r *http.Request, secureCookie bool) {
	ClearSessionCookie(w, secureCookie)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func WithAccountID(ctx context.Context, accountID int) context.Context {
	return context.WithValue(ctx, accountIDKey, accountID)
}

// AccountIDFromContext - ID аккаунта, положенный SessionGate
func AccountIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(accountIDKey).(int)
	return id, ok
}

// SetSessionCookie устанавливает cookie с токеном сессии
func SetSessionCookie(w http.ResponseWriter, sessionToken string, expiresAt time.Time, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionToken,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie удаляет cookie с токеном сессии
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
