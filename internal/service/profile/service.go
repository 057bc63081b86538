package profile

import (
	"gacha_backend/internal/repository"
	"gacha_backend/pkg/upload"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type serv struct {
	txManager   trm.Manager
	accountRepo repository.AccountRepository
	store       *upload.Store
}

func NewService(txManager trm.Manager, accountRepo repository.AccountRepository, store *upload.Store) *serv {
	return &serv{
		txManager:   txManager,
		accountRepo: accountRepo,
		store:       store,
	}
}
