package profile

import (
	"context"
	"errors"
	"fmt"

	"gacha_backend/internal/model"
	"gacha_backend/pkg/upload"

	"github.com/rs/zerolog/log"
)

// Update меняет ник и описание, при наличии загрузки заменяет аватар.
// Файл пишется до обновления записи и удаляется, если запись обновить не удалось.
func (s *serv) Update(ctx context.Context, accountID int, upd model.ProfileUpdate) error {
	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Владелец нужен для имени файла
		account, err := s.accountRepo.GetAccount(txCtx, accountID)
		if err != nil {
			return err
		}

		// 2. Сохранение аватара
		var avatar *string
		if upd.Avatar != nil {
			name, err := s.store.Save(account.ID, upd.Avatar.Filename, upd.Avatar.Content)
			if err != nil {
				return avatarError(err)
			}
			avatar = &name
		}

		// 3. Обновление записи
		err = s.accountRepo.UpdateProfile(txCtx, accountID, upd.Nickname, upd.Bio, avatar)
		if err != nil && avatar != nil && *avatar != account.Avatar {
			if rmErr := s.store.Remove(*avatar); rmErr != nil {
				log.Ctx(txCtx).Error().Err(rmErr).Str("file", *avatar).Msg("remove orphan avatar")
			}
		}
		return err
	})
}

func avatarError(err error) error {
	switch {
	case errors.Is(err, upload.ErrEmptyFilename),
		errors.Is(err, upload.ErrExtensionNotAllowed),
		errors.Is(err, upload.ErrTooLarge):
		return fmt.Errorf("%w: %v", model.ErrInvalidAvatar, err)
	default:
		return err
	}
}
