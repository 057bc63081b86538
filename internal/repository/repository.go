package repository

import (
	"context"

	"gacha_backend/internal/model"
)

type AccountRepository interface {
	CreateAccount(ctx context.Context, account *model.Account) (id int, err error)
	GetAccount(ctx context.Context, id int) (*model.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*model.Account, error)

	UpdateBalance(ctx context.Context, id int, balance int) error
	// TryDebit списывает amount только если баланс не уйдёт в минус.
	// ok == false - списания не было (денег не хватает или аккаунта нет).
	TryDebit(ctx context.Context, id int, amount int) (balance int, ok bool, err error)
	AddBalance(ctx context.Context, id int, amount int) (balance int, err error)

	UpdateProfile(ctx context.Context, id int, nickname, bio string, avatar *string) error
}

type SessionRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetAccountIDBySessionID(ctx context.Context, sessionID string) (int, error)
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

type DrawStatsRepository interface {
	Record(kind model.DrawKind, labels []string)
	Snapshot() model.DrawStats
}
