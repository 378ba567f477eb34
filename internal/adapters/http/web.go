package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"sangha/internal/adapters/email"
	"sangha/internal/adapters/http/middleware"
	accountStore "sangha/internal/adapters/storage/account"
	eventStore "sangha/internal/adapters/storage/event"
	interestStore "sangha/internal/adapters/storage/interest"
	notificationStore "sangha/internal/adapters/storage/notification"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore      accountStore.Store
	EventStore        eventStore.Store
	InterestStore     interestStore.Store
	NotificationStore notificationStore.Store
}

// Options carries the non-storage wiring for the router.
type Options struct {
	TokenManager *middleware.TokenManager
	EmailSender  email.Sender
	EmailFrom    string
	EmailReplyTo string
	SendTimeout  time.Duration
	LoginLimiter *middleware.RateLimiter
}

// Global stores instance (set by NewRouter)
var stores *Stores

// Global token manager instance (set by NewRouter)
var tokens *middleware.TokenManager

// Global email configuration (set by NewRouter)
var emailSender email.Sender
var emailFromAddress string
var emailReplyTo string
var sendTimeout time.Duration

// timeNow is a variable for testability.
var timeNow = time.Now

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// NewRouter wires HTTP handlers for the app.
func NewRouter(s *Stores, opts Options) http.Handler {
	stores = s
	tokens = opts.TokenManager
	emailSender = opts.EmailSender
	emailFromAddress = opts.EmailFrom
	emailReplyTo = opts.EmailReplyTo
	sendTimeout = opts.SendTimeout

	r := chi.NewRouter()
	r.Use(middleware.Auth(tokens))

	r.Get("/api/health", handleHealth)

	r.Route("/api/auth", func(r chi.Router) {
		if opts.LoginLimiter != nil {
			r.With(opts.LoginLimiter.Middleware()).Post("/register", handleRegister)
			r.With(opts.LoginLimiter.Middleware()).Post("/login", handleLogin)
			r.With(opts.LoginLimiter.Middleware()).Post("/admin/register", handleRegisterAdmin)
		} else {
			r.Post("/register", handleRegister)
			r.Post("/login", handleLogin)
			r.Post("/admin/register", handleRegisterAdmin)
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/me", handleMe)
			r.Put("/profile", handleUpdateProfile)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/admin/users", handleListUsers)
			r.Get("/admin/stats", handleUserStats)
			r.Put("/admin/users/{userId}/role", handleUpdateRole)
			r.Delete("/admin/users/{userId}", handleDeleteUser)
		})
	})

	r.Route("/api/events", func(r chi.Router) {
		r.Get("/", handleListEvents)
		r.Get("/category/{category}", handleListEventsByCategory)
		r.Get("/{id}", handleGetEvent)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Post("/", handleCreateEvent)
			r.Put("/{id}", handleUpdateEvent)
			r.Delete("/{id}", handleDeleteEvent)
		})
	})

	r.Route("/api/event-interests", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/{eventId}/interested", handleMarkInterested)
		r.Delete("/{eventId}/interested", handleRemoveInterest)
		r.Get("/{eventId}/check-interest", handleCheckInterest)
		r.Get("/user/interested", handleUserInterestedEvents)

		r.With(middleware.RequireAdmin).Get("/{eventId}/interested-users", handleInterestedUsers)
	})

	r.Route("/api/email", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/users", handleUserDirectory)
		r.Post("/events/{eventId}/send-notification", handleSendNotification)
		r.Get("/events/{eventId}/notifications", handleNotificationHistory)
		r.Post("/send-broadcast", handleSendBroadcast)
	})

	return r
}

// handleHealth reports service liveness.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "Sangha event management API is running",
		"timestamp": timeNow().UTC().Format(time.RFC3339),
	})
}
