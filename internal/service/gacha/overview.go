package gacha

import (
	"context"

	"gacha_backend/internal/model"
)

func (s *serv) Overview(ctx context.Context, accountID int) (*model.Account, error) {
	return s.accountRepo.GetAccount(ctx, accountID)
}

func (s *serv) Stats() model.DrawStats {
	return s.statsRepo.Snapshot()
}
