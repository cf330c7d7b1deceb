package middleware

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/tutorhub/tutor-server-go/internal/errors"
	"github.com/tutorhub/tutor-server-go/internal/httputil"
	"github.com/tutorhub/tutor-server-go/internal/model"
)

type contextKey string

const UserContextKey contextKey = "user"

func GetUser(ctx context.Context) *model.User {
	if user, ok := ctx.Value(UserContextKey).(*model.User); ok {
		return user
	}
	return nil
}

// SessionVerifier resolves a session token to its account.
type SessionVerifier interface {
	VerifySession(ctx context.Context, sessionToken string) (*model.User, error)
}

type AuthMiddleware struct {
	sessions SessionVerifier
}

func NewAuthMiddleware(sessions SessionVerifier) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := ExtractBearerToken(r)
		if !ok {
			httputil.WriteError(w, apperrors.InvalidToken("Missing authorization header"))
			return
		}

		user, err := m.sessions.VerifySession(r.Context(), token)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ExtractBearerToken reads the Authorization header, strips the Bearer
// prefix and trims whitespace.
func ExtractBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer")), true
}
