package login

import "github.com/abhi96256/Appoinment/internal/service/auth"

type AuthService interface {
	Login(email, password string) (*auth.LoginResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
