package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mkalinin/gopherkeeper/internal/middleware"
)

// NewRouter constructs the HTTP handler serving the GopherKeeper API.
//
// Routes:
//
//	POST   /api/register  → authHandler.Register
//	POST   /api/login     → authHandler.Login
//	GET    /api/data      → dataHandler.List    (bearer auth)
//	POST   /api/data      → dataHandler.Upsert  (bearer auth)
//	DELETE /api/data      → dataHandler.Delete  (bearer auth)
//
// Requests with a body must carry Content-Type: application/json.
func NewRouter(
	authHandler *AuthHandler,
	dataHandler *DataHandler,
	jwtSecret string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(jwtSecret))
			r.Get("/data", dataHandler.List)
			r.Post("/data", dataHandler.Upsert)
			r.Delete("/data", dataHandler.Delete)
		})
	})

	return r
}
