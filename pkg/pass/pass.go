package pass

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword возвращает bcrypt-хэш пароля
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword сравнивает хэш из БД с введенным паролем
func VerifyPassword(hash string, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// IsTooLong - bcrypt не принимает пароли длиннее 72 байт
func IsTooLong(password string) bool {
	_, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return errors.Is(err, bcrypt.ErrPasswordTooLong)
}
