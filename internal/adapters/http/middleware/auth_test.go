package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sangha/internal/domain/account"
)

func testAccount() account.Account {
	return account.Account{
		ID:    "u-1",
		Email: "radha@example.org",
		Role:  account.RoleMember,
	}
}

// TestTokenManager_IssueAndVerify tests the sign-verify round trip.
func TestTokenManager_IssueAndVerify(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, err := tm.Issue(testAccount())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	identity, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if identity.AccountID != "u-1" || identity.Email != "radha@example.org" || identity.Role != account.RoleMember {
		t.Errorf("identity = %+v", identity)
	}
	if identity.IsAdmin() {
		t.Error("member identity reports admin")
	}
}

// TestTokenManager_WrongSecret verifies a token signed elsewhere is rejected.
func TestTokenManager_WrongSecret(t *testing.T) {
	other := NewTokenManager("other-secret")
	token, err := other.Issue(testAccount())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tm := NewTokenManager("test-secret")
	if _, err := tm.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("Verify = %v, want ErrTokenInvalid", err)
	}
}

// TestTokenManager_Garbage verifies malformed input is rejected.
func TestTokenManager_Garbage(t *testing.T) {
	tm := NewTokenManager("test-secret")
	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := tm.Verify(input); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("Verify(%q) = %v, want ErrTokenInvalid", input, err)
		}
	}
}

// TestTokenManager_Expired verifies tokens die after seven days.
func TestTokenManager_Expired(t *testing.T) {
	tm := &TokenManager{
		secret: []byte("test-secret"),
		now:    func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) },
	}
	token, err := tm.Issue(testAccount())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	verifier := NewTokenManager("test-secret")
	if _, err := verifier.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("Verify of expired token = %v, want ErrTokenInvalid", err)
	}
}

// okHandler records whether the inner handler ran.
func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

// TestAuth_SetsIdentity verifies the bearer extraction path.
func TestAuth_SetsIdentity(t *testing.T) {
	tm := NewTokenManager("test-secret")
	token, err := tm.Issue(testAccount())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	var got Identity
	var ok bool
	handler := Auth(tm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetIdentityFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !ok {
		t.Fatal("identity not set in context")
	}
	if got.AccountID != "u-1" {
		t.Errorf("AccountID = %q", got.AccountID)
	}
}

// TestAuth_PassesThroughWithoutToken verifies Auth never blocks on its own.
func TestAuth_PassesThroughWithoutToken(t *testing.T) {
	tm := NewTokenManager("test-secret")
	var called bool
	handler := Auth(tm)(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Error("inner handler was not called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

// TestRequireAuth tests the authentication gate.
func TestRequireAuth(t *testing.T) {
	var called bool
	handler := RequireAuth(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", rec.Code)
	}
	if called {
		t.Error("inner handler ran for anonymous request")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithIdentity(req.Context(), Identity{AccountID: "u-1", Role: account.RoleMember}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !called {
		t.Errorf("authenticated status = %d, called = %v", rec.Code, called)
	}
}

// TestRequireAdmin tests the role gate's three outcomes.
func TestRequireAdmin(t *testing.T) {
	var called bool
	handler := RequireAdmin(okHandler(&called))

	// Anonymous: 401.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", rec.Code)
	}

	// Member: 403.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithIdentity(req.Context(), Identity{AccountID: "u-1", Role: account.RoleMember}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("member status = %d, want 403", rec.Code)
	}
	if called {
		t.Error("inner handler ran for non-admin")
	}

	// Admin: 200.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithIdentity(req.Context(), Identity{AccountID: "admin-1", Role: account.RoleAdmin}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !called {
		t.Errorf("admin status = %d, called = %v", rec.Code, called)
	}
}
