package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// Config параметры аутентификации администратора
type Config struct {
	Secret        string
	TokenTTL      time.Duration
	AdminEmail    string
	PasswordHash  string // bcrypt; имеет приоритет над Password
	AdminPassword string
}

// Service выдает и проверяет JWT администратора
type Service struct {
	secret       []byte
	ttl          time.Duration
	adminEmail   string
	passwordHash []byte
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает сервис аутентификации.
// Если задан только открытый пароль, он хешируется bcrypt при старте
func NewService(cfg Config, logger Logger) (*Service, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("%w: jwt secret is empty", ErrInternal)
	}

	hash := []byte(cfg.PasswordHash)
	if len(hash) == 0 {
		if cfg.AdminPassword == "" {
			return nil, fmt.Errorf("%w: admin password is not configured", ErrInternal)
		}
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("%w: hash admin password: %v", ErrInternal, err)
		}
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Service{
		secret:       []byte(cfg.Secret),
		ttl:          ttl,
		adminEmail:   cfg.AdminEmail,
		passwordHash: hash,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}, nil
}

// WithTimeProvider позволяет установить кастомный TimeProvider (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Login проверяет учетные данные администратора и выдает токен
func (s *Service) Login(email, password string) (*LoginResponse, error) {
	email = strings.TrimSpace(email)

	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(email)), []byte(strings.ToLower(s.adminEmail))) == 1
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !emailOK || passErr != nil {
		s.logger.Warn("Login: invalid credentials for email=%s", email)
		return nil, ErrInvalidCredentials
	}

	user := User{ID: adminUserID, Email: s.adminEmail, Role: RoleAdmin}

	token, err := s.issue(user)
	if err != nil {
		s.logger.Error("Login: failed to sign token: %v", err)
		return nil, fmt.Errorf("%w: Login - sign token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: admin %s logged in", user.Email)
	return &LoginResponse{Token: token, User: user}, nil
}

// Verify проверяет подпись, срок действия и роль токена
func (s *Service) Verify(token string) (*User, error) {
	claims := &Claims{}

	// срок действия проверяется ниже по timeProvider
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(s.timeProvider.Now()) {
		return nil, ErrInvalidToken
	}

	if claims.Role != RoleAdmin {
		return nil, ErrInvalidToken
	}

	return &User{ID: claims.ID, Email: claims.Email, Role: claims.Role}, nil
}

func (s *Service) issue(user User) (string, error) {
	now := s.timeProvider.Now()

	claims := Claims{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
