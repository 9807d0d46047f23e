// Package main is the entrypoint for the cartshop API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/cartshop/cartshop/internal/config"
	"github.com/cartshop/cartshop/internal/handler"
	"github.com/cartshop/cartshop/internal/metrics"
	"github.com/cartshop/cartshop/internal/middleware"
	"github.com/cartshop/cartshop/internal/repository"
	"github.com/cartshop/cartshop/internal/server"
	"github.com/cartshop/cartshop/internal/service"
	"github.com/cartshop/cartshop/internal/session"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Apply schema migrations
	if err := repository.Migrate(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
		logger.Error(
			"failed to apply migrations",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
		)
		os.Exit(1)
	}

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// Initialize session store
	sessions, err := session.New(ctx, cfg.RedisURL, cfg.SessionTTL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer sessions.Close()
	logger.Info("connected to Redis")

	// Initialize services
	recorder := metrics.NewNoop()
	catalogService := service.NewCatalogService(repo, recorder)
	cartService := service.NewCartService(repo, recorder)
	authService, err := service.NewAuthService(repo, recorder)
	if err != nil {
		logger.Error("failed to initialize auth service", "error", err)
		os.Exit(1)
	}

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, sessions)
	productHandler := handler.NewProductHandler(catalogService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	authHandler := handler.NewAuthHandler(
		authService,
		sessions,
		cfg.SessionCookieName,
		cfg.IsProduction(),
		cfg.SessionTTL,
		logger,
	)

	// Setup router
	r := setupRouter(h, healthHandler, productHandler, cartHandler, authHandler, repo, sessions, cfg, logger)

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	authHandler *handler.AuthHandler,
	repo *repository.Repository,
	sessions *session.Store,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment: cfg.IsDevelopment(),
	}))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	if origins := cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsCfg := middleware.DefaultCORSConfig()
		corsCfg.AllowedOrigins = origins
		r.Use(middleware.CORS(corsCfg))
	}

	// Health endpoints (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	// Root endpoint
	r.Get("/", h.Hello)

	// Session middleware configuration
	sessionCfg := middleware.SessionConfig{
		Logger:     logger,
		Sessions:   sessions,
		Repository: repo,
		CookieName: cfg.SessionCookieName,
	}
	requireUser := middleware.RequireUser(sessionCfg)

	// Login rate limit configuration
	rateLimitCfg := middleware.RateLimitConfig{
		Logger:   logger,
		Sessions: sessions,
		Enabled:  cfg.LoginRateLimitEnabled,
		RPS:      cfg.LoginRateLimitRPS,
		Burst:    cfg.LoginRateLimitBurst,
	}

	// Authentication
	r.With(middleware.LoginRateLimit(rateLimitCfg)).Post("/login", authHandler.Login)
	r.With(requireUser).Post("/logout", authHandler.Logout)

	// Product catalog: reads are public, mutations require a session
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", productHandler.List)
		r.Get("/{id}", productHandler.Get)
		r.With(requireUser).Post("/add", productHandler.Add)
		r.With(requireUser).Put("/update/{id}", productHandler.Update)
		r.With(requireUser).Delete("/delete/{id}", productHandler.Delete)
	})

	// Cart: always tied to the session identity
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(requireUser)
		r.Get("/", cartHandler.List)
		r.Post("/add/{productId}", cartHandler.Add)
		r.Delete("/remove/{productId}", cartHandler.Remove)
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
