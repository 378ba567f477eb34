package event

import (
	"errors"
	"strings"
	"time"
)

// Category constants — the closed set of event categories.
const (
	CategoryKirtan   = "kirtan"
	CategoryFestival = "festival"
	CategoryStudy    = "study"
	CategorySeva     = "seva"
	CategoryOther    = "other"
)

// ValidCategories contains all valid category values.
var ValidCategories = []string{CategoryKirtan, CategoryFestival, CategoryStudy, CategorySeva, CategoryOther}

// Max length constants for user-editable fields.
const (
	MaxTitleLength    = 200
	MaxLocationLength = 300
)

// Domain errors
var (
	ErrEmptyTitle      = errors.New("title is required")
	ErrEmptyDate       = errors.New("date is required")
	ErrEmptyTime       = errors.New("time is required")
	ErrEmptyLocation   = errors.New("location is required")
	ErrInvalidCategory = errors.New("category must be one of: kirtan, festival, study, seva, other")
	ErrNotFound        = errors.New("event not found")
)

// Event holds one scheduled gathering. InterestedCount is a denormalized
// aggregate owned by the interest ledger: only ledger transitions write it,
// always in the same transaction as the ledger row itself.
type Event struct {
	ID              string
	Title           string
	Description     string
	Date            time.Time // calendar date of the event
	Time            string    // free-text start time, e.g. "18:30"
	Location        string
	Category        string
	Image           string // optional image URL
	MaxParticipants int    // 0 means unlimited
	CreatedBy       string // admin account ID
	Active          bool
	InterestedCount int
	CreatedAt       time.Time
}

// Validate checks if the Event has valid data.
// PRE: Event struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if len(e.Title) > MaxTitleLength {
		return errors.New("title cannot exceed 200 characters")
	}
	if e.Date.IsZero() {
		return ErrEmptyDate
	}
	if strings.TrimSpace(e.Time) == "" {
		return ErrEmptyTime
	}
	if strings.TrimSpace(e.Location) == "" {
		return ErrEmptyLocation
	}
	if len(e.Location) > MaxLocationLength {
		return errors.New("location cannot exceed 300 characters")
	}
	if !IsValidCategory(e.Category) {
		return ErrInvalidCategory
	}
	return nil
}

// LongDate formats the event date as a long human-readable calendar date,
// e.g. "Saturday, 14 March 2026".
// INVARIANT: Event fields are not mutated
func (e *Event) LongDate() string {
	return e.Date.Format("Monday, 2 January 2006")
}

// IsValidCategory reports whether category is one of the known values.
func IsValidCategory(category string) bool {
	for _, c := range ValidCategories {
		if c == category {
			return true
		}
	}
	return false
}
