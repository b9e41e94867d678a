package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/abhi96256/Appoinment/internal/api/handlers"
	"github.com/abhi96256/Appoinment/internal/service/auth"
)

const (
	msgTokenRequired = "Access token required"
	msgInvalidToken  = "Invalid or expired token"
)

type userKey struct{}

// WithUser кладет пользователя в контекст
func WithUser(ctx context.Context, user *auth.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser извлекает пользователя, установленного AdminAuth
func GetUser(ctx context.Context) (*auth.User, bool) {
	user, ok := ctx.Value(userKey{}).(*auth.User)
	return user, ok && user != nil
}

// BearerToken извлекает токен из заголовка Authorization: Bearer <token>
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// AdminAuth пропускает только запросы с действующим JWT администратора.
// Нет токена: 401, недействительный токен: 403
func AdminAuth(verifier TokenVerifier, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				logger.Warn("%s %s - Missing access token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgTokenRequired)
				return
			}

			user, err := verifier.Verify(token)
			if err != nil {
				logger.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondForbidden(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}
