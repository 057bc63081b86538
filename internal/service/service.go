package service

import (
	"context"

	"gacha_backend/internal/model"
)

type GachaService interface {
	Draw(ctx context.Context, accountID int, kind string) (*model.DrawResult, error)
	Earn(ctx context.Context, accountID int) error
	Overview(ctx context.Context, accountID int) (*model.Account, error)
	Stats() model.DrawStats
}

type AuthService interface {
	Register(ctx context.Context, account *model.NewAccount) (id int, err error)
	Login(ctx context.Context, username, password string) (*model.AuthData, error)
	Logout(ctx context.Context, sessionToken string) error
	Resolve(ctx context.Context, sessionToken string) (accountID int, err error)
}

type ProfileService interface {
	Get(ctx context.Context, accountID int) (*model.Account, error)
	Update(ctx context.Context, accountID int, upd model.ProfileUpdate) error
}
