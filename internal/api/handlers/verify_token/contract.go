package verify_token

import "github.com/abhi96256/Appoinment/internal/service/auth"

type TokenVerifier interface {
	Verify(token string) (*auth.User, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
