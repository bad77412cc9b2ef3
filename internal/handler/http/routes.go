// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/imperial-command/internal/policy"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// compressionLevel is the gzip level of JSON responses.
const compressionLevel = 5

// Init builds the router. Every route shares tracing, access logging,
// recovery, security headers, CORS and the per-IP rate limit; /api routes
// additionally run under the request timeout.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	if h.cfg.TrustProxy {
		router.Use(middleware.RealIP)
	}
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SetHeader("X-Content-Type-Options", "nosniff"))
	router.Use(middleware.SetHeader("X-Frame-Options", "DENY"))
	router.Use(h.withCORS())
	router.Use(h.withRateLimit)

	// routes outside the request timeout
	router.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	router.Get("/api/realtime", h.realtime)

	router.Group(func(r chi.Router) {
		if h.cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(h.cfg.RequestTimeout))
		}
		r.Use(middleware.Compress(compressionLevel, "application/json"))

		// routes without authorization
		r.Post("/api/login", h.login)
		r.Post("/api/register", h.register)
		r.Get("/api/health", h.health)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/api/user/me", h.me)
			r.Put("/api/user/profile", h.updateProfile)
			r.Put("/api/user/password", h.changePassword)
			r.Patch("/api/user/theme", h.updateTheme)
			r.Post("/api/user/avatar", h.uploadAvatar)
			r.Get("/api/avatars/{name}", h.getAvatar)

			r.Get("/api/modules", h.listModules)
			r.Put("/api/modules/{id}/start-stop", h.toggleModule)
			r.Patch("/api/modules/{id}/settings", h.updateModuleSettings)

			r.Post("/api/apikeys", h.createAPIKey)
			r.Get("/api/apikeys", h.listAPIKeys)
			r.Delete("/api/apikeys/{service}", h.deleteAPIKey)

			r.With(h.requirePermission(policy.ResourceInstagram)).Group(func(r chi.Router) {
				r.Post("/api/instagram/account", h.instagramAccount)
				r.Get("/api/instagram/stats", h.instagramStats)
				r.Get("/api/instagram/posts", h.instagramPosts)
				r.Post("/api/instagram/generate", h.instagramGenerate)
				r.Patch("/api/instagram/proxy", h.instagramProxy)
			})

			r.With(h.requirePermission(policy.ResourceYouTube)).Group(func(r chi.Router) {
				r.Post("/api/youtube/download", h.youtubeDownload)
				r.Get("/api/youtube/history", h.youtubeHistory)
			})

			r.With(h.requirePermission(policy.ResourceStatistics)).Get("/api/stats/{module}", h.getStats)

			// administration
			r.Group(func(r chi.Router) {
				r.Use(h.requireAdmin)

				r.Get("/api/users", h.listUsers)
				r.Post("/api/users", h.createUser)
				r.Post("/api/users/create", h.createUser)
				r.Get("/api/users/{id}", h.getUser)
				r.Put("/api/users/{id}", h.updateUser)
				r.Delete("/api/users/{id}", h.deleteUser)

				r.Get("/api/system/status", h.systemStatus)
				r.Patch("/api/system/maintenance", h.setMaintenance)
				r.Get("/api/system/logs", h.systemLogs)
			})
		})
	})

	router.NotFound(routeNotFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func (h *Handler) withCORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", traceIDHeader},
		ExposedHeaders:   []string{traceIDHeader, headerRateLimitLimit, headerRateLimitRemaining, headerRateLimitReset, headerRetryAfter},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
