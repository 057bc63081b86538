package account_repo

import (
	"context"
	"errors"
	"fmt"

	"gacha_backend/internal/model"
	"gacha_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	table           = "accounts"
	colID           = "id"
	colUsername     = "username"
	colPasswordHash = "password_hash"
	colBalance      = "balance"
	colNickname     = "nickname"
	colBio          = "bio"
	colAvatar       = "avatar"
	colCreatedAt    = "created_at"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type repo struct {
	dbc    trmpgx.Tr
	getter *trmpgx.CtxGetter
}

func NewAccountRepository(dbc trmpgx.Tr) repository.AccountRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// conn - текущая транзакция из контекста или пул
func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// CreateAccount - создает аккаунт в БД.
// Возвращает ID созданного аккаунта или model.ErrDuplicateUsername
func (r *repo) CreateAccount(ctx context.Context, account *model.Account) (int, error) {
	query := psql.Insert(table).
		Columns(colUsername, colPasswordHash, colBalance, colNickname, colBio, colAvatar).
		Values(account.Username, account.Password, account.Balance, account.Nickname, account.Bio, account.Avatar).
		Suffix("RETURNING " + colID)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, model.ErrDuplicateUsername
		}
		return 0, fmt.Errorf("create account: %w", err)
	}

	return id, nil
}

// GetAccount - аккаунт по ID
func (r *repo) GetAccount(ctx context.Context, id int) (*model.Account, error) {
	return r.getOne(ctx, sq.Eq{colID: id})
}

// GetAccountByUsername - аккаунт по логину
func (r *repo) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	return r.getOne(ctx, sq.Eq{colUsername: username})
}

func (r *repo) getOne(ctx context.Context, where sq.Eq) (*model.Account, error) {
	query := psql.Select(colID, colUsername, colPasswordHash, colBalance, colNickname, colBio, colAvatar, colCreatedAt).
		From(table).
		Where(where)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var a model.Account
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).
		Scan(&a.ID, &a.Username, &a.Password, &a.Balance, &a.Nickname, &a.Bio, &a.Avatar, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	return &a, nil
}

// UpdateBalance - записывает новый баланс
func (r *repo) UpdateBalance(ctx context.Context, id int, balance int) error {
	query := psql.Update(table).
		Set(colBalance, balance).
		Where(sq.Eq{colID: id})

	return r.execOne(ctx, query)
}

// TryDebit - условное списание одним запросом.
// Проверка баланса и списание атомарны: UPDATE ... WHERE balance >= amount
func (r *repo) TryDebit(ctx context.Context, id int, amount int) (int, bool, error) {
	query := psql.Update(table).
		Set(colBalance, sq.Expr(colBalance+" - ?", amount)).
		Where(sq.Eq{colID: id}).
		Where(sq.GtOrEq{colBalance: amount}).
		Suffix("RETURNING " + colBalance)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, false, err
	}

	var balance int
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("debit balance: %w", err)
	}

	return balance, true, nil
}

// AddBalance - атомарное начисление, возвращает новый баланс
func (r *repo) AddBalance(ctx context.Context, id int, amount int) (int, error) {
	query := psql.Update(table).
		Set(colBalance, sq.Expr(colBalance+" + ?", amount)).
		Where(sq.Eq{colID: id}).
		Suffix("RETURNING " + colBalance)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var balance int
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrAccountNotFound
		}
		return 0, fmt.Errorf("add balance: %w", err)
	}

	return balance, nil
}

// UpdateProfile - обновляет ник и описание. Аватар меняется только если передан.
func (r *repo) UpdateProfile(ctx context.Context, id int, nickname, bio string, avatar *string) error {
	query := psql.Update(table).
		Set(colNickname, nickname).
		Set(colBio, bio).
		Where(sq.Eq{colID: id})

	if avatar != nil {
		query = query.Set(colAvatar, *avatar)
	}

	return r.execOne(ctx, query)
}

// execOne выполняет UPDATE и ждет ровно одну затронутую строку
func (r *repo) execOne(ctx context.Context, query sq.UpdateBuilder) error {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}

	if res.RowsAffected() == 0 {
		return model.ErrAccountNotFound
	}

	return nil
}
