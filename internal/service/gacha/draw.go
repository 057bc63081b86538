package gacha

import (
	"context"

	"gacha_backend/internal/model"

	"github.com/rs/zerolog/log"
)

// Draw списывает стоимость и разыгрывает метки. Списание фиксируется до розыгрыша,
// при нехватке средств баланс не меняется.
func (s *serv) Draw(ctx context.Context, accountID int, kind string) (*model.DrawResult, error) {
	drawKind, err := model.ParseDrawKind(kind)
	if err != nil {
		return nil, err
	}

	var balance int
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Условное списание
		newBalance, ok, err := s.accountRepo.TryDebit(txCtx, accountID, drawKind.Cost())
		if err != nil {
			return err
		}
		if ok {
			balance = newBalance
			return nil
		}

		// 2. Списание не прошло: аккаунта нет или не хватает средств
		if _, err := s.accountRepo.GetAccount(txCtx, accountID); err != nil {
			return err
		}
		return model.ErrInsufficientFunds
	})
	if err != nil {
		return nil, err
	}

	// 3. Розыгрыш после коммита
	labels := s.sampler.DrawN(drawKind.Repeats())
	s.statsRepo.Record(drawKind, labels)

	log.Ctx(ctx).Info().
		Int("account_id", accountID).
		Str("kind", string(drawKind)).
		Strs("labels", labels).
		Int("balance", balance).
		Msg("draw")

	return &model.DrawResult{
		Kind:    drawKind,
		Labels:  labels,
		Balance: balance,
	}, nil
}
