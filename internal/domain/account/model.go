package account

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength  = 100
	MaxEmailLength = 254
)

// Role constants
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Notification cadence preferences
const (
	NotifyInstant = "instant"
	NotifyDaily   = "daily"
	NotifyWeekly  = "weekly"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleAdmin, RoleMember}

// ValidNotificationPreferences contains all valid cadence values.
var ValidNotificationPreferences = []string{NotifyInstant, NotifyDaily, NotifyWeekly}

// Domain errors
var (
	ErrEmptyName          = errors.New("name cannot be empty")
	ErrEmptyEmail         = errors.New("email cannot be empty")
	ErrInvalidEmail       = errors.New("email must contain '@'")
	ErrInvalidRole        = errors.New("role must be one of: admin, member")
	ErrInvalidPreference  = errors.New("notification preference must be one of: instant, daily, weekly")
	ErrEmptyPassword      = errors.New("password cannot be empty")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrWrongPassword      = errors.New("incorrect password")
	ErrSelfDemotion       = errors.New("cannot demote yourself")
	ErrSelfDeletion       = errors.New("cannot delete yourself")
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("user already exists")
)

// Account holds identity, contact, and notification settings for one user.
type Account struct {
	ID                     string
	Name                   string
	Email                  string
	PasswordHash           string
	Phone                  string
	Role                   string
	NotificationPreference string
	CreatedAt              time.Time
}

// Validate checks if the Account has valid data.
// PRE: Account struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if len(a.Name) > MaxNameLength {
		return errors.New("name cannot exceed 100 characters")
	}
	if strings.TrimSpace(a.Email) == "" {
		return ErrEmptyEmail
	}
	if len(a.Email) > MaxEmailLength {
		return errors.New("email cannot exceed 254 characters")
	}
	if !strings.Contains(a.Email, "@") {
		return ErrInvalidEmail
	}
	if !IsValidRole(a.Role) {
		return ErrInvalidRole
	}
	if !isValidPreference(a.NotificationPreference) {
		return ErrInvalidPreference
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt with cost 12.
// PRE: plaintext is non-empty and >= 8 characters
// POST: PasswordHash is set to bcrypt hash
func (a *Account) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	if len(plaintext) < 8 {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// PRE: PasswordHash is set
// INVARIANT: Account fields are not mutated
func (a *Account) CheckPassword(plaintext string) error {
	if a.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// IsAdmin returns true if the account has admin role.
// INVARIANT: Account fields are not mutated
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsValidRole reports whether role is one of the known role values.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

func isValidPreference(pref string) bool {
	for _, p := range ValidNotificationPreferences {
		if p == pref {
			return true
		}
	}
	return false
}
