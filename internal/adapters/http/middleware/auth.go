package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"

	"sangha/internal/domain/account"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const identityContextKey contextKey = "identity"

// tokenTTL matches the original deployment's 7-day bearer tokens.
const tokenTTL = 7 * 24 * time.Hour

// Identity is the authenticated caller extracted from a bearer token.
type Identity struct {
	AccountID string
	Email     string
	Role      string
}

// IsAdmin returns true if the identity carries the admin role.
// INVARIANT: Identity fields are not mutated
func (i Identity) IsAdmin() bool {
	return i.Role == account.RoleAdmin
}

// claims is the JWT payload: standard claims plus the caller's role so the
// role gate does not need a directory read per request.
type claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.StandardClaims
}

// Token errors
var (
	ErrTokenInvalid = errors.New("token is invalid")
)

// TokenManager issues and verifies HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

// NewTokenManager creates a TokenManager with the given signing secret.
// PRE: secret is non-empty
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret), now: time.Now}
}

// Issue signs a token for an account, expiring after seven days.
// POST: Returns a compact JWS string
func (tm *TokenManager) Issue(acct account.Account) (string, error) {
	now := tm.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: acct.Email,
		Role:  acct.Role,
		StandardClaims: jwt.StandardClaims{
			Subject:   acct.ID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(tokenTTL).Unix(),
		},
	})
	return token.SignedString(tm.secret)
}

// Verify parses and validates a token string.
// POST: Returns the embedded identity, or ErrTokenInvalid for any failure
func (tm *TokenManager) Verify(tokenString string) (Identity, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return tm.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrTokenInvalid
	}
	return Identity{AccountID: c.Subject, Email: c.Email, Role: c.Role}, nil
}

// Auth returns middleware that extracts the bearer token and sets the
// identity in context. It does NOT block unauthenticated requests — use
// RequireAuth or RequireAdmin for that.
func Auth(tm *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if strings.HasPrefix(header, "Bearer ") {
				if identity, err := tm.Verify(strings.TrimPrefix(header, "Bearer ")); err == nil {
					ctx := context.WithValue(r.Context(), identityContextKey, identity)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth returns middleware that blocks unauthenticated requests.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetIdentityFromContext(r.Context()); !ok {
			writeJSONError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin returns middleware that blocks callers without the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentityFromContext(r.Context())
		if !ok {
			writeJSONError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !identity.IsAdmin() {
			writeJSONError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetIdentityFromContext retrieves the authenticated identity, if any.
func GetIdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(Identity)
	return identity, ok
}

// WithIdentity returns a context carrying the identity. Intended for tests.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
