package gacha

import (
	"gacha_backend/internal/repository"
	"gacha_backend/pkg/sampler"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type serv struct {
	txManager   trm.Manager
	sampler     *sampler.Sampler
	accountRepo repository.AccountRepository
	statsRepo   repository.DrawStatsRepository
}

func NewService(
	txManager trm.Manager,
	smp *sampler.Sampler,
	accountRepo repository.AccountRepository,
	statsRepo repository.DrawStatsRepository,
) *serv {
	return &serv{
		txManager:   txManager,
		sampler:     smp,
		accountRepo: accountRepo,
		statsRepo:   statsRepo,
	}
}
