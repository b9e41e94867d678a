package auth

import "github.com/golang-jwt/jwt/v4"

// RoleAdmin единственная роль в системе
const RoleAdmin = "admin"

// adminUserID идентификатор администратора из конфигурации
const adminUserID int64 = 1

// User данные пользователя из токена
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResponse ответ на успешный вход
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Claims полезная нагрузка JWT
type Claims struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}
