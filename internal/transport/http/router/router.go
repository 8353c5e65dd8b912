// Package router assembles the HTTP API: routes, auth gate and the global
// middleware chain.
package router

import (
	"net/http"

	"github.com/unais-08/blogs-fullstack/internal/auth"
	"github.com/unais-08/blogs-fullstack/internal/ratelimit"
	"github.com/unais-08/blogs-fullstack/internal/service"
	"github.com/unais-08/blogs-fullstack/internal/transport/http/handlers"
	"github.com/unais-08/blogs-fullstack/internal/transport/http/middleware"
	"github.com/unais-08/blogs-fullstack/internal/transport/http/response"
	"go.uber.org/zap"
)

const maxBodyBytes = 10 << 20

type Deps struct {
	Log        *zap.Logger
	Production bool
	CORSOrigin string

	AuthService *service.AuthService
	BlogService *service.BlogService
	Tokens      middleware.TokenVerifier
	Denylist    auth.Denylist

	GlobalLimiter *ratelimit.Limiter
	AuthLimiter   *ratelimit.Limiter

	// DB is pinged by /health; nil skips the check.
	DB handlers.Pinger
}

func New(d Deps) http.Handler {
	errs := response.NewWriter(d.Log, d.Production)

	authHandler := handlers.NewAuthHandler(d.AuthService, errs)
	blogHandler := handlers.NewBlogHandler(d.BlogService, errs)
	healthHandler := handlers.NewHealthHandler(d.DB, d.Log)

	requireAuth := middleware.Auth(d.Tokens, d.Denylist, errs)
	authLimit := middleware.RateLimit(d.AuthLimiter, middleware.RateLimitOptions{
		Message:        "Too many authentication attempts, please try again later",
		SkipSuccessful: true,
	}, errs, d.Log)

	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.Handle("POST /api/auth/register", authLimit(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /api/auth/login", authLimit(http.HandlerFunc(authHandler.Login)))
	mux.HandleFunc("GET /api/blogs", blogHandler.List)
	mux.HandleFunc("GET /api/blogs/{id}", blogHandler.Get)

	// Protected
	mux.Handle("GET /api/auth/profile", requireAuth(http.HandlerFunc(authHandler.Profile)))
	mux.Handle("POST /api/auth/logout", requireAuth(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("POST /api/blogs", requireAuth(http.HandlerFunc(blogHandler.Create)))
	mux.Handle("GET /api/blogs/my/blogs", requireAuth(http.HandlerFunc(blogHandler.ListMine)))

	mux.HandleFunc("/", handlers.NotFound)

	return middleware.Chain(mux,
		middleware.Logging(d.Log),
		middleware.Recover(d.Log),
		middleware.SecurityHeaders,
		middleware.CORS(d.CORSOrigin),
		middleware.BodyLimit(maxBodyBytes),
		middleware.RateLimit(d.GlobalLimiter, middleware.RateLimitOptions{
			Message: "Too many requests, please try again later",
		}, errs, d.Log),
	)
}
