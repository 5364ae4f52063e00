package handler

import (
	"encoding/json"
	"net/http"

	"github.com/wadjakorntonsri/go-smartlink/pkg/config"
	"github.com/wadjakorntonsri/go-smartlink/pkg/ports"
)

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, resolver ports.ResolverService, links ports.LinkService) http.Handler {
	// Initialize Handlers
	rh := NewResolveHandler(resolver, cfg.SettleDelay)
	ah := NewAdminHandler(links)

	// Initialize Middleware
	mw := NewMiddleware(cfg)

	// Initialize Auth Handler
	authHandler := NewAuthHandler(cfg)

	// Setup Router
	mux := http.NewServeMux()

	// Public Routes
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		res := map[string]string{
			"message": "ok",
		}
		_ = json.NewEncoder(w).Encode(&res)
		w.WriteHeader(http.StatusOK)
	})

	// Resolution surface
	mux.HandleFunc("GET /open", rh.InlineRedirect)
	mux.HandleFunc("GET /open/{id}", rh.Resolve)
	mux.HandleFunc("POST /open/{id}/password", rh.PasswordSubmit)
	mux.HandleFunc("GET /unavailable/{id}", rh.Unavailable)

	// Record store boundary
	mux.HandleFunc("GET /links/{id}", rh.Lookup)
	mux.HandleFunc("POST /links/{id}/scan", rh.Scan)

	// Auth
	mux.HandleFunc("GET /auth/google/login", authHandler.Login)
	mux.HandleFunc("GET /auth/google/callback", authHandler.Callback)
	mux.HandleFunc("GET /auth/logout", authHandler.Logout)

	// Protected Routes (management API)
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("POST /api/v1/links", ah.Create)
	protectedMux.HandleFunc("GET /api/v1/links", ah.List)
	protectedMux.HandleFunc("GET /api/v1/links/{id}", ah.Get)
	protectedMux.HandleFunc("PUT /api/v1/links/{id}", ah.Update)
	protectedMux.HandleFunc("DELETE /api/v1/links/{id}", ah.Delete)

	// Apply Middleware to Protected Routes
	mux.Handle("/api/v1/", mw.AuthMiddleware(protectedMux))

	return mux
}
