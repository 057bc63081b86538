package gacha

import (
	"context"
	"errors"

	"gacha_backend/internal/model"

	"github.com/rs/zerolog/log"
)

// Earn начисляет EarnAmount. Для несуществующего аккаунта ничего не делает.
func (s *serv) Earn(ctx context.Context, accountID int) error {
	balance, err := s.accountRepo.AddBalance(ctx, accountID, model.EarnAmount)
	if errors.Is(err, model.ErrAccountNotFound) {
		log.Ctx(ctx).Debug().Int("account_id", accountID).Msg("earn for unknown account ignored")
		return nil
	}
	if err != nil {
		return err
	}

	log.Ctx(ctx).Debug().Int("account_id", accountID).Int("balance", balance).Msg("gold earned")
	return nil
}
