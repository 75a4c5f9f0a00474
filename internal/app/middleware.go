package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/davisxavier1984/papprefeito/internal/auth"
	"github.com/davisxavier1984/papprefeito/internal/config"
	"github.com/davisxavier1984/papprefeito/pkg/user"
)

// publicPaths can be reached without a session token.
var publicPaths = map[string]bool{
	"/api/auth/login":   true,
	"/api/auth/refresh": true,
}

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Host},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Resolve the bearer token into the request user. API routes other than
	// the public ones require a valid session; everything else (frontend
	// assets) passes through.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !strings.HasPrefix(req.URL.Path, "/api/") || publicPaths[req.URL.Path] {
				next.ServeHTTP(w, req)
				return
			}

			token := auth.BearerToken(req)
			if token == "" {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}

			authenticated, err := deps.AuthService.Authenticate(req.Context(), token)
			if err != nil {
				if errors.Is(err, auth.ErrInvalidToken) {
					http.Error(w, err.Error(), http.StatusUnauthorized)
					return
				}
				log.Errorf("failed to authenticate request: %v", err)
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			ctx := user.WithUser(req.Context(), authenticated)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}
