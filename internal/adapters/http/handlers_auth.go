package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"sangha/internal/adapters/http/middleware"
	"sangha/internal/application/orchestrators"
	"sangha/internal/application/projections"
	"sangha/internal/domain/account"
)

// userJSON is the outward shape of an account. The password hash never
// crosses this boundary.
type userJSON struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	Email                  string    `json:"email"`
	Phone                  string    `json:"phone,omitempty"`
	Role                   string    `json:"role"`
	NotificationPreference string    `json:"notificationPreference"`
	CreatedAt              time.Time `json:"createdAt"`
}

func toUserJSON(a account.Account) userJSON {
	return userJSON{
		ID:                     a.ID,
		Name:                   a.Name,
		Email:                  a.Email,
		Phone:                  a.Phone,
		Role:                   a.Role,
		NotificationPreference: a.NotificationPreference,
		CreatedAt:              a.CreatedAt,
	}
}

// handleRegister handles POST /api/auth/register.
func handleRegister(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name                   string `json:"name"`
		Email                  string `json:"email"`
		Password               string `json:"password"`
		Phone                  string `json:"phone"`
		NotificationPreference string `json:"notificationPreference"`
	}
	if err := strictDecode(r, &input); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	acct, err := orchestrators.ExecuteRegister(r.Context(), orchestrators.RegisterInput{
		Name:                   input.Name,
		Email:                  input.Email,
		Password:               input.Password,
		Phone:                  input.Phone,
		NotificationPreference: input.NotificationPreference,
	}, registerDeps())
	if err != nil {
		respondError(w, err)
		return
	}

	issueTokenResponse(w, http.StatusCreated, "User registered successfully", acct)
}

// handleRegisterAdmin handles POST /api/auth/admin/register.
func handleRegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Phone    string `json:"phone"`
	}
	if err := strictDecode(r, &input); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	acct, err := orchestrators.ExecuteRegisterAdmin(r.Context(), orchestrators.RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Phone:    input.Phone,
	}, registerDeps())
	if err != nil {
		respondError(w, err)
		return
	}

	issueTokenResponse(w, http.StatusCreated, "Admin registered successfully", acct)
}

// handleLogin handles POST /api/auth/login.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := strictDecode(r, &input); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	acct, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	}, orchestrators.LoginDeps{AccountStore: stores.AccountStore})
	if err != nil {
		respondError(w, err)
		return
	}

	issueTokenResponse(w, http.StatusOK, "Login successful", acct)
}

// handleMe handles GET /api/auth/me.
func handleMe(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentityFromContext(r.Context())
	acct, err := stores.AccountStore.GetByID(r.Context(), identity.AccountID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserJSON(acct))
}

// handleUpdateProfile handles PUT /api/auth/profile.
func handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentityFromContext(r.Context())

	var input struct {
		Name                   string `json:"name"`
		Phone                  string `json:"phone"`
		NotificationPreference string `json:"notificationPreference"`
	}
	if err := strictDecode(r, &input); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	acct, err := orchestrators.ExecuteUpdateProfile(r.Context(), orchestrators.UpdateProfileInput{
		AccountID:              identity.AccountID,
		Name:                   input.Name,
		Phone:                  input.Phone,
		NotificationPreference: input.NotificationPreference,
	}, orchestrators.UpdateProfileDeps{AccountStore: stores.AccountStore})
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"user":    toUserJSON(acct),
	})
}

// handleListUsers handles GET /api/auth/admin/users.
func handleListUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := stores.AccountStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	users := make([]userJSON, 0, len(accounts))
	for _, a := range accounts {
		users = append(users, toUserJSON(a))
	}
	writeJSON(w, http.StatusOK, users)
}

// handleUserStats handles GET /api/auth/admin/stats.
func handleUserStats(w http.ResponseWriter, r *http.Request) {
	stats, err := projections.QueryGetUserStats(r.Context(), projections.GetUserStatsDeps{
		AccountStore: stores.AccountStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// handleUpdateRole handles PUT /api/auth/admin/users/{userId}/role.
func handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentityFromContext(r.Context())

	var input struct {
		Role string `json:"role"`
	}
	if err := strictDecode(r, &input); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	acct, err := orchestrators.ExecuteUpdateRole(r.Context(), orchestrators.UpdateRoleInput{
		ActorID:  identity.AccountID,
		TargetID: chi.URLParam(r, "userId"),
		Role:     input.Role,
	}, orchestrators.UpdateRoleDeps{AccountStore: stores.AccountStore})
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "User role updated successfully",
		"user":    toUserJSON(acct),
	})
}

// handleDeleteUser handles DELETE /api/auth/admin/users/{userId}.
func handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentityFromContext(r.Context())

	err := orchestrators.ExecuteDeleteUser(r.Context(), orchestrators.DeleteUserInput{
		ActorID:  identity.AccountID,
		TargetID: chi.URLParam(r, "userId"),
	}, orchestrators.DeleteUserDeps{
		AccountStore:  stores.AccountStore,
		InterestStore: stores.InterestStore,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "User deleted successfully")
}

func registerDeps() orchestrators.RegisterDeps {
	return orchestrators.RegisterDeps{
		AccountStore: stores.AccountStore,
		GenerateID:   generateID,
		Now:          timeNow,
	}
}

func issueTokenResponse(w http.ResponseWriter, status int, message string, acct account.Account) {
	token, err := tokens.Issue(acct)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, status, map[string]any{
		"message": message,
		"token":   token,
		"user":    toUserJSON(acct),
	})
}
