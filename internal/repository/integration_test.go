package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gacha_backend/internal/model"
	"gacha_backend/internal/repository"
	"gacha_backend/internal/repository/account_repo"
	"gacha_backend/internal/repository/session_repo"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NOTE: тесты требуют запущенный PostgreSQL (PG_DSN). Без него пропускаются.

func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		t.Skip("Database not configured: PG_DSN not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, pool.Ping(ctx))
	require.NoError(t, repository.Migrate(ctx, pool))

	return pool
}

func newAccount(t *testing.T, repo repository.AccountRepository, balance int) *model.Account {
	t.Helper()

	acc := &model.Account{
		Username: fmt.Sprintf("user_%s", uuid.NewString()[:8]),
		Password: "hash",
		Balance:  balance,
		Nickname: "nick",
		Avatar:   "default_profile.svg",
	}
	id, err := repo.CreateAccount(context.Background(), acc)
	require.NoError(t, err)
	acc.ID = id

	return acc
}

func TestAccountRepository_CreateAndGet(t *testing.T) {
	pool := setupDB(t)
	repo := account_repo.NewAccountRepository(pool)
	ctx := context.Background()

	acc := newAccount(t, repo, model.StartingBalance)

	got, err := repo.GetAccount(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, acc.Username, got.Username)
	assert.Equal(t, model.StartingBalance, got.Balance)
	assert.Equal(t, "default_profile.svg", got.Avatar)

	byName, err := repo.GetAccountByUsername(ctx, acc.Username)
	require.NoError(t, err)
	assert.Equal(t, acc.ID, byName.ID)

	_, err = repo.GetAccount(ctx, -1)
	assert.ErrorIs(t, err, model.ErrAccountNotFound)
}

func TestAccountRepository_DuplicateUsername(t *testing.T) {
	pool := setupDB(t)
	repo := account_repo.NewAccountRepository(pool)
	ctx := context.Background()

	acc := newAccount(t, repo, 100)

	_, err := repo.CreateAccount(ctx, &model.Account{
		Username: acc.Username,
		Password: "other",
		Balance:  5,
		Avatar:   "x.png",
	})
	require.ErrorIs(t, err, model.ErrDuplicateUsername)

	got, err := repo.GetAccount(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash", got.Password)
	assert.Equal(t, 100, got.Balance)
}

func TestAccountRepository_TryDebit(t *testing.T) {
	pool := setupDB(t)
	repo := account_repo.NewAccountRepository(pool)
	ctx := context.Background()

	acc := newAccount(t, repo, 10)

	balance, ok, err := repo.TryDebit(ctx, acc.ID, 10)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, balance)

	_, ok, err = repo.TryDebit(ctx, acc.ID, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = repo.TryDebit(ctx, -1, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAccountRepository_TryDebitConcurrent(t *testing.T) {
	pool := setupDB(t)
	repo := account_repo.NewAccountRepository(pool)
	ctx := context.Background()

	acc := newAccount(t, repo, 90)

	const workers = 20
	results := make(chan bool, workers)
	for i := 0; i < workers; i++ {
		go func() {
			_, ok, err := repo.TryDebit(ctx, acc.ID, 10)
			assert.NoError(t, err)
			results <- ok
		}()
	}

	succeeded := 0
	for i := 0; i < workers; i++ {
		if <-results {
			succeeded++
		}
	}
	assert.Equal(t, 9, succeeded)

	got, err := repo.GetAccount(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Balance)
}

func TestAccountRepository_AddBalanceAndProfile(t *testing.T) {
	pool := setupDB(t)
	repo := account_repo.NewAccountRepository(pool)
	ctx := context.Background()

	acc := newAccount(t, repo, 7)

	balance, err := repo.AddBalance(ctx, acc.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 8, balance)

	_, err = repo.AddBalance(ctx, -1, 1)
	assert.ErrorIs(t, err, model.ErrAccountNotFound)

	require.NoError(t, repo.UpdateProfile(ctx, acc.ID, "new nick", "hello", nil))
	got, err := repo.GetAccount(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "new nick", got.Nickname)
	assert.Equal(t, "hello", got.Bio)
	assert.Equal(t, "default_profile.svg", got.Avatar)

	avatar := acc.Username + "_me.png"
	require.NoError(t, repo.UpdateProfile(ctx, acc.ID, "n", "b", &avatar))
	got, err = repo.GetAccount(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, avatar, got.Avatar)

	require.NoError(t, repo.UpdateBalance(ctx, acc.ID, 42))
	got, err = repo.GetAccount(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, got.Balance)

	assert.ErrorIs(t, repo.UpdateProfile(ctx, -1, "n", "b", nil), model.ErrAccountNotFound)
}

func TestAccountRepository_RollbackInsideTransaction(t *testing.T) {
	pool := setupDB(t)
	repo := account_repo.NewAccountRepository(pool)
	ctx := context.Background()

	txManager, err := manager.New(trmpgx.NewDefaultFactory(pool))
	require.NoError(t, err)

	acc := newAccount(t, repo, 50)

	err = txManager.Do(ctx, func(ctx context.Context) error {
		_, ok, err := repo.TryDebit(ctx, acc.ID, 10)
		require.NoError(t, err)
		require.True(t, ok)
		return fmt.Errorf("abort")
	})
	require.Error(t, err)

	got, err := repo.GetAccount(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.Balance)
}

func TestSessionRepository(t *testing.T) {
	pool := setupDB(t)
	accounts := account_repo.NewAccountRepository(pool)
	sessions := session_repo.NewSessionRepository(pool)
	ctx := context.Background()

	acc := newAccount(t, accounts, 100)

	live := &model.Session{ID: uuid.NewString(), AccountID: acc.ID, ExpiresAt: time.Now().Add(time.Hour)}
	expired := &model.Session{ID: uuid.NewString(), AccountID: acc.ID, ExpiresAt: time.Now().Add(-time.Hour)}
	require.NoError(t, sessions.CreateSession(ctx, live))
	require.NoError(t, sessions.CreateSession(ctx, expired))

	id, err := sessions.GetAccountIDBySessionID(ctx, live.ID)
	require.NoError(t, err)
	assert.Equal(t, acc.ID, id)

	_, err = sessions.GetAccountIDBySessionID(ctx, expired.ID)
	assert.ErrorIs(t, err, model.ErrSessionNotFound)

	n, err := sessions.DeleteExpiredSessions(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(1))

	require.NoError(t, sessions.DeleteSession(ctx, live.ID))
	_, err = sessions.GetAccountIDBySessionID(ctx, live.ID)
	assert.ErrorIs(t, err, model.ErrSessionNotFound)

	// повторное удаление не ошибка
	require.NoError(t, sessions.DeleteSession(ctx, live.ID))
}
