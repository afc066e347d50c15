package api

import (
	"net/http"
	"time"

	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/api/handler"
	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/api/middleware"
	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/app/service"
	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	assetService *service.AssetService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies the bearer token from "Authorization: Bearer T" and puts the
	// claims in context; enforcement happens in middleware.Authenticator on
	// the protected routes only.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		// Auth routes (public)
		authHandler := handler.NewAuthHandler(authService)
		api.Route("/auth", authHandler.RegisterRoutes)

		// Asset routes (authenticated)
		assetHandler := handler.NewAssetHandler(assetService)
		api.Route("/assets", func(assets chi.Router) {
			assets.Use(middleware.Authenticator)
			assetHandler.RegisterRoutes(assets)
		})
	})

	return r
}
