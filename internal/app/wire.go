package app

import (
	"log/slog"
	"net/http"
	"net/netip"
	"time"

	"github.com/courtside/platform/internal/auth"
	"github.com/courtside/platform/internal/cache"
	"github.com/courtside/platform/internal/guard"
	"github.com/courtside/platform/internal/handler"
	"github.com/courtside/platform/internal/infra"
	"github.com/courtside/platform/internal/metrics"
	"github.com/courtside/platform/internal/repository"
	"github.com/courtside/platform/internal/service"
	"github.com/go-chi/chi/v5"
)

// RouterDeps holds all dependencies needed by NewRouter. The client handles
// (DB, Cache, Events) are owned by the caller, which closes them at shutdown.
type RouterDeps struct {
	DB       repository.DBTX
	DBHealth infra.Pinger
	Cache    *cache.Accessor
	Resolver auth.IdentityResolver
	Events   service.EventPublisher
	Metrics  *metrics.Metrics
	Logger   *slog.Logger

	UsersCacheTTL      time.Duration
	CORSAllowedOrigins []string
	// CreateRateLimit caps POST requests per caller per minute; zero disables it.
	CreateRateLimit int
	// TrustedProxies may set X-Forwarded-For for rate limiting purposes.
	TrustedProxies []netip.Prefix

	// Repository overrides; nil selects the pgx implementations.
	Courts repository.CourtRepository
	Users  repository.UserRepository
	Games  repository.GameRepository
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Repositories
	courtRepo := deps.Courts
	if courtRepo == nil {
		courtRepo = repository.NewCourtRepository()
	}
	userRepo := deps.Users
	if userRepo == nil {
		userRepo = repository.NewUserRepository()
	}
	gameRepo := deps.Games
	if gameRepo == nil {
		gameRepo = repository.NewGameRepository()
	}

	// Without a cache every users read goes to the database.
	accessor := deps.Cache
	var cacheHealth infra.Pinger
	if accessor == nil {
		accessor = cache.New(cache.NopStore{}, logger)
	} else {
		cacheHealth = accessor
	}

	// Services
	userSvc := service.NewUserService(deps.DB, userRepo, accessor, deps.UsersCacheTTL, deps.Events, logger)
	gameSvc := service.NewGameService(deps.DB, gameRepo, courtRepo, deps.Events, logger)

	// Handlers
	courtHandler := handler.NewCourtHandler(courtRepo, deps.DB, logger)
	userHandler := handler.NewUserHandler(userSvc, logger)
	gameHandler := handler.NewGameHandler(gameSvc, logger)

	limitCreates := func(next http.Handler) http.Handler { return next }
	if deps.CreateRateLimit > 0 {
		limitCreates = handler.RateLimit(guard.NewRateLimiter(deps.CreateRateLimit, time.Minute), deps.TrustedProxies)
	}
	requireIdentity := auth.RequireIdentity(deps.Resolver, logger)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(deps.Metrics.Instrument)
	r.Use(handler.CORS(deps.CORSAllowedOrigins))
	r.Use(handler.JSONContentType)

	// Health and metrics (no auth)
	if deps.DBHealth != nil {
		r.Get("/health", handler.HealthHandler(deps.DBHealth, cacheHealth, logger))
	}
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/users", userHandler.List)
		r.With(limitCreates).Post("/users", userHandler.Create)

		// Identity-gated routes
		r.Group(func(r chi.Router) {
			r.Use(requireIdentity)

			r.Get("/courts", courtHandler.GetCourts)
			r.Get("/games", gameHandler.List)
			r.With(limitCreates).Post("/games", gameHandler.Create)
		})
	})

	return r
}
