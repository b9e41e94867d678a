package auth

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверных email или пароле
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken возвращается для поддельного, просроченного или чужого токена
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth: internal error")
)
