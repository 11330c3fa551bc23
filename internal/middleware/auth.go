package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/JosephKS10/blog-backend/internal/auth"
	"github.com/JosephKS10/blog-backend/internal/logger"
)

type contextKey string

const UserIDKey contextKey = "user_id"

const (
	ReasonMissingToken = "Authorization token required"
	ReasonInvalidToken = "Invalid token"
)

type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// Decision is the outcome of checking a request. Exactly one of UserID and
// Reason is set.
type Decision struct {
	UserID string
	Reason string
}

func (d Decision) Authorized() bool {
	return d.Reason == ""
}

type AuthMiddleware struct {
	tokens TokenValidator
	log    *logger.Logger
}

func NewAuthMiddleware(tokens TokenValidator, log *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		log:    log,
	}
}

// Check inspects the Authorization header without side effects.
func (m *AuthMiddleware) Check(r *http.Request) Decision {
	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return Decision{Reason: ReasonMissingToken}
	}

	claims, err := m.tokens.ValidateToken(token)
	if err != nil {
		m.log.Debug("Rejected token on %s: %v", r.URL.Path, err)
		return Decision{Reason: ReasonInvalidToken}
	}

	return Decision{UserID: claims.UserID}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision := m.Check(r)
		if !decision.Authorized() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": decision.Reason})
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, decision.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// bearerToken accepts "Bearer <token>" with any casing of the scheme.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
