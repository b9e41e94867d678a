package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhi96256/Appoinment/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func newTestService(t *testing.T, clock *fixedClock) *Service {
	t.Helper()
	svc, err := NewService(Config{
		Secret:        "test-secret",
		TokenTTL:      24 * time.Hour,
		AdminEmail:    "admin@example.com",
		AdminPassword: "admin123",
	}, logger.NewNop())
	require.NoError(t, err)
	return svc.WithTimeProvider(clock)
}

func TestLoginAndVerify(t *testing.T) {
	clock := &fixedClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	svc := newTestService(t, clock)

	resp, err := svc.Login("Admin@Example.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, User{ID: 1, Email: "admin@example.com", Role: RoleAdmin}, resp.User)
	assert.NotEmpty(t, resp.Token)

	user, err := svc.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User, *user)

	// через 24 часа токен истекает
	clock.now = clock.now.Add(24 * time.Hour)
	_, err = svc.Verify(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := newTestService(t, &fixedClock{now: time.Now()})

	_, err := svc.Login("admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("other@example.com", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerify_Rejects(t *testing.T) {
	clock := &fixedClock{now: time.Now()}
	svc := newTestService(t, clock)

	_, err := svc.Verify("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ID: 1, Email: "admin@example.com", Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour))},
	})
	signed, err := foreign.SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	customer := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ID: 2, Email: "c@example.com", Role: "customer",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour))},
	})
	signed, err = customer.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewService_PasswordHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	svc, err := NewService(Config{Secret: "x", AdminEmail: "a@b.c", PasswordHash: string(hash), AdminPassword: "ignored"}, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, svc.ttl)

	_, err = svc.Login("a@b.c", "s3cret")
	assert.NoError(t, err)
	_, err = svc.Login("a@b.c", "ignored")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = NewService(Config{AdminEmail: "a@b.c", AdminPassword: "p"}, logger.NewNop())
	assert.ErrorIs(t, err, ErrInternal)
}
