// Package httpapi exposes the account flows and public listing reads as a
// JSON API.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"domiva/account"
	"domiva/config"
	"domiva/listing"
	"domiva/profile"
	"domiva/ratelimit"
)

// Server wires the domain services into HTTP handlers. Each request gets its
// own account client so sessions ride exclusively on bearer tokens.
type Server struct {
	accounts *account.Service
	profiles *profile.Service
	listings *listing.Service
	limiter  *ratelimit.Limiter
	rates    config.RateLimitConfig
	origins  []string
}

// NewServer creates the HTTP layer over the domain services.
func NewServer(accounts *account.Service, profiles *profile.Service, listings *listing.Service,
	limiter *ratelimit.Limiter, rates config.RateLimitConfig, origins []string) *Server {
	return &Server{
		accounts: accounts,
		profiles: profiles,
		listings: listings,
		limiter:  limiter,
		rates:    rates,
		origins:  origins,
	}
}

// Routes configures the router.
func (s *Server) Routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.RequestID)
	r.Use(SecurityHeaders)
	r.Use(ScreenContentType)

	origins := s.origins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(Throttle(s.limiter, "http", s.rates.HTTP))

		r.Route("/auth", func(r chi.Router) {
			r.With(Throttle(s.limiter, "registration", s.rates.Registration)).Post("/registar", s.handleRegister)
			r.With(Throttle(s.limiter, "login", s.rates.Login)).Post("/login", s.handleLogin)
			r.Post("/logout", s.handleLogout)
			r.With(Throttle(s.limiter, "reset", s.rates.Reset)).Post("/recuperar", s.handleResetRequest)
			r.With(Throttle(s.limiter, "reset", s.rates.Reset)).Post("/redefinir", s.handleResetComplete)
			r.Post("/reenviar-verificacao", s.handleResendVerification)
		})

		r.Get("/perfil", s.handleProfile)
		r.Get("/listings/destaques", s.handleFeaturedListings)
		r.Get("/stats", s.handleStats)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// client builds the per-request account client, resuming the session when
// the request carries a bearer token.
func (s *Server) client(r *http.Request) *account.Client {
	client := account.NewClient(s.accounts, s.profiles)
	if token := bearerToken(r); token != "" {
		_ = client.ResumeSession(r.Context(), token)
	}
	return client
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
