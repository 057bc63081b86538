package model

import "time"

const (
	// StartingBalance - баланс нового аккаунта
	StartingBalance = 100
	// EarnAmount - сколько начисляется за одно нажатие "заработать"
	EarnAmount = 1
)

type Account struct {
	ID        int
	Username  string
	Password  string // хэш пароля
	Balance   int
	Nickname  string
	Bio       string
	Avatar    string // имя файла аватара в каталоге загрузок
	CreatedAt time.Time
}

// NewAccount - регистрационные данные пользователя
type NewAccount struct {
	Username string
	Password string
	Nickname string
}

// ProfileUpdate - изменения профиля. Avatar == nil - аватар не меняется.
type ProfileUpdate struct {
	Nickname string
	Bio      string
	Avatar   *AvatarUpload
}

type AvatarUpload struct {
	Filename string
	Size     int64
	Content  []byte
}
