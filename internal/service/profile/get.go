package profile

import (
	"context"

	"gacha_backend/internal/model"
)

func (s *serv) Get(ctx context.Context, accountID int) (*model.Account, error) {
	return s.accountRepo.GetAccount(ctx, accountID)
}
