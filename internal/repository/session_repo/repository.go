package session_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gacha_backend/internal/model"
	"gacha_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

const (
	table        = "sessions"
	colSessionID = "session_id"
	colAccountID = "account_id"
	colExpiresAt = "expires_at"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type repo struct {
	dbc    trmpgx.Tr
	getter *trmpgx.CtxGetter
	now    func() time.Time
}

func NewSessionRepository(dbc trmpgx.Tr) repository.SessionRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
		now:    time.Now,
	}
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// CreateSession - создает сессию в БД
// Принимает model.Session - (ID, AccountID, ExpiresAt)
func (r *repo) CreateSession(ctx context.Context, session *model.Session) error {
	query := psql.Insert(table).
		Columns(colSessionID, colAccountID, colExpiresAt).
		Values(session.ID, session.AccountID, session.ExpiresAt)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	return nil
}

// GetAccountIDBySessionID - ID аккаунта по живой (не истекшей) сессии
func (r *repo) GetAccountIDBySessionID(ctx context.Context, sessionID string) (int, error) {
	query := psql.Select(colAccountID).
		From(table).
		Where(sq.Eq{colSessionID: sessionID}).
		Where(sq.Gt{colExpiresAt: r.now()})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var accountID int
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrSessionNotFound
		}
		return 0, fmt.Errorf("get session: %w", err)
	}

	return accountID, nil
}

// DeleteSession - удаляет сессию из БД.
// Отсутствие сессии ошибкой не считается
func (r *repo) DeleteSession(ctx context.Context, sessionID string) error {
	query := psql.Delete(table).
		Where(sq.Eq{colSessionID: sessionID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// DeleteExpiredSessions - чистит истекшие сессии, возвращает число удаленных
func (r *repo) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	query := psql.Delete(table).
		Where(sq.LtOrEq{colExpiresAt: r.now()})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	res, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}

	return res.RowsAffected(), nil
}
