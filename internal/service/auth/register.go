package auth

import (
	"context"

	"gacha_backend/internal/model"
	"gacha_backend/pkg/pass"
)

func (s *serv) Register(ctx context.Context, account *model.NewAccount) (int, error) {
	// bcrypt молча не принимает пароли длиннее 72 байт
	if pass.IsTooLong(account.Password) {
		return 0, model.ErrPasswordTooLong
	}

	// Хэширование пароля пользователя
	passwordHash, err := pass.HashPassword(account.Password)
	if err != nil {
		return 0, err
	}

	nickname := account.Nickname
	if nickname == "" {
		nickname = account.Username
	}

	// Создать аккаунт со стартовым балансом
	return s.accountRepo.CreateAccount(ctx, &model.Account{
		Username: account.Username,
		Password: passwordHash,
		Balance:  model.StartingBalance,
		Nickname: nickname,
		Avatar:   s.defaultAvatar,
	})
}
