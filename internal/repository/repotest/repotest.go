// Package repotest содержит in-memory реализации репозиториев для тестов сервисов и хендлеров.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"gacha_backend/internal/model"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

// TxManager выполняет функцию без настоящей транзакции
type TxManager struct {
	mtx   sync.Mutex
	Calls int
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mtx.Lock()
	m.Calls++
	m.mtx.Unlock()
	return fn(ctx)
}

func (m *TxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

// Accounts - хранилище аккаунтов в памяти. Err, если задан, возвращается из всех методов.
type Accounts struct {
	mtx      sync.Mutex
	accounts map[int]model.Account
	nextID   int

	Err error
}

func NewAccounts() *Accounts {
	return &Accounts{accounts: make(map[int]model.Account)}
}

// Put кладет аккаунт как есть и возвращает его ID
func (a *Accounts) Put(acc model.Account) int {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	a.nextID++
	acc.ID = a.nextID
	a.accounts[acc.ID] = acc
	return acc.ID
}

// Balance - баланс без проверок, для assert'ов
func (a *Accounts) Balance(id int) int {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	return a.accounts[id].Balance
}

func (a *Accounts) Delete(id int) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	delete(a.accounts, id)
}

func (a *Accounts) CreateAccount(_ context.Context, account *model.Account) (int, error) {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	if a.Err != nil {
		return 0, a.Err
	}
	for _, acc := range a.accounts {
		if acc.Username == account.Username {
			return 0, model.ErrDuplicateUsername
		}
	}

	a.nextID++
	acc := *account
	acc.ID = a.nextID
	acc.CreatedAt = time.Now()
	a.accounts[acc.ID] = acc
	return acc.ID, nil
}

func (a *Accounts) GetAccount(_ context.Context, id int) (*model.Account, error) {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	if a.Err != nil {
		return nil, a.Err
	}
	acc, ok := a.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return &acc, nil
}

func (a *Accounts) GetAccountByUsername(_ context.Context, username string) (*model.Account, error) {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	if a.Err != nil {
		return nil, a.Err
	}
	for _, acc := range a.accounts {
		if acc.Username == username {
			return &acc, nil
		}
	}
	return nil, model.ErrAccountNotFound
}

func (a *Accounts) UpdateBalance(_ context.Context, id int, balance int) error {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	if a.Err != nil {
		return a.Err
	}
	acc, ok := a.accounts[id]
	if !ok {
		return model.ErrAccountNotFound
	}
	acc.Balance = balance
	a.accounts[id] = acc
	return nil
}

func (a *Accounts) TryDebit(_ context.Context, id int, amount int) (int, bool, error) {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	if a.Err != nil {
		return 0, false, a.Err
	}
	acc, ok := a.accounts[id]
	if !ok || acc.Balance < amount {
		return 0, false, nil
	}
	acc.Balance -= amount
	a.accounts[id] = acc
	return acc.Balance, true, nil
}

func (a *Accounts) AddBalance(_ context.Context, id int, amount int) (int, error) {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	if a.Err != nil {
		return 0, a.Err
	}
	acc, ok := a.accounts[id]
	if !ok {
		return 0, model.ErrAccountNotFound
	}
	acc.Balance += amount
	a.accounts[id] = acc
	return acc.Balance, nil
}

func (a *Accounts) UpdateProfile(_ context.Context, id int, nickname, bio string, avatar *string) error {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	if a.Err != nil {
		return a.Err
	}
	acc, ok := a.accounts[id]
	if !ok {
		return model.ErrAccountNotFound
	}
	acc.Nickname = nickname
	acc.Bio = bio
	if avatar != nil {
		acc.Avatar = *avatar
	}
	a.accounts[id] = acc
	return nil
}

// Sessions - хранилище сессий в памяти
type Sessions struct {
	mtx      sync.Mutex
	sessions map[string]model.Session
	Now      func() time.Time

	Err error
}

func NewSessions() *Sessions {
	return &Sessions{
		sessions: make(map[string]model.Session),
		Now:      time.Now,
	}
}

// IDs - идентификаторы всех сессий, отсортированные
func (s *Sessions) IDs() []string {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Sessions) CreateSession(_ context.Context, session *model.Session) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.Err != nil {
		return s.Err
	}
	s.sessions[session.ID] = *session
	return nil
}

func (s *Sessions) GetAccountIDBySessionID(_ context.Context, sessionID string) (int, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.Err != nil {
		return 0, s.Err
	}
	sess, ok := s.sessions[sessionID]
	if !ok || !sess.ExpiresAt.After(s.Now()) {
		return 0, model.ErrSessionNotFound
	}
	return sess.AccountID, nil
}

func (s *Sessions) DeleteSession(_ context.Context, sessionID string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.Err != nil {
		return s.Err
	}
	delete(s.sessions, sessionID)
	return nil
}

func (s *Sessions) DeleteExpiredSessions(_ context.Context) (int64, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.Err != nil {
		return 0, s.Err
	}
	var n int64
	for id, sess := range s.sessions {
		if !sess.ExpiresAt.After(s.Now()) {
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}
