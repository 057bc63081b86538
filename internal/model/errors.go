package model

import "errors"

var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidDrawKind    = errors.New("invalid draw kind")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountNotFound    = errors.New("account not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidAvatar      = errors.New("invalid avatar file")
	ErrPasswordTooLong    = errors.New("password is too long")
)
