// Main entry point of the GrantFlow API. It loads configuration, connects
// to PostgreSQL and runs migrations, wires the services and handlers,
// configures the HTTP router and middleware, and starts the server with
// graceful shutdown.
//
// @title GrantFlow API
// @version 1.0
// @description API for GrantFlow: authentication, organization management, and AI-assisted grant application drafting.
// @contact.name API Support
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/grantflow-go/apperror"
	"github.com/user/grantflow-go/auth"
	"github.com/user/grantflow-go/config"
	"github.com/user/grantflow-go/db"
	_ "github.com/user/grantflow-go/docs" // generated Swagger spec, registered via init
	"github.com/user/grantflow-go/genai"
	"github.com/user/grantflow-go/logger"
	"github.com/user/grantflow-go/metrics"
	"github.com/user/grantflow-go/middleware"
	"github.com/user/grantflow-go/organizations"
)

const migrationsPath = "./db/migrations"

func main() {
	// .env is a development convenience; in production the variables are
	// set directly.
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: .env file not loaded: %v\n", err)
	}

	log := logger.SetupDefault(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		log.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DB, migrationsPath); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Metrics registry and collector.
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Services and handlers. Dependencies are injected by hand, straight
	// down the stack.
	tokenService := auth.NewTokenService(cfg.Auth)
	authService := auth.NewService(auth.NewPostgresUserStore(pool), tokenService, log)
	authHandlers := auth.NewHandlers(authService)

	orgService := organizations.NewService(organizations.NewPostgresStore(pool))
	orgHandlers := organizations.NewHandlers(orgService)

	geminiClient := genai.NewClient(cfg.Gemini, log)
	genService := genai.NewService(geminiClient, log, collector)
	genHandlers := genai.NewHandlers(genService)

	rateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig(), log)
	defer rateLimiter.Stop()

	r := chi.NewRouter()

	// Global middleware. Chi requires all of it registered before any
	// route.
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Timeout(90 * time.Second))
	r.Use(collector.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Single recovery layer: a panic escaping a handler becomes a
	// structured 500.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Error("panic recovered", "panic", rvr, "path", req.URL.Path)
					auth.WriteError(w, req, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(w, req)
		})
	})

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Hello":"API"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Method(http.MethodGet, "/metrics", metrics.Handler(registry))

	// Credential routes are rate limited per client IP.
	r.Route("/auth", func(r chi.Router) {
		r.Use(rateLimiter.Middleware())
		r.Post("/register", authHandlers.HandleRegister())
		r.Post("/login", authHandlers.HandleLogin())
		r.Post("/refresh", authHandlers.HandleRefreshToken())
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(tokenService))
		r.Get("/user/me", authHandlers.HandleCurrentUser())
	})

	r.Route("/organizations", func(r chi.Router) {
		r.Use(auth.Middleware(tokenService))
		orgHandlers.RegisterRoutes(r)
	})

	// Generation routes. The v1 prefix mirrors the frontend's existing
	// paths; the two unprefixed routes predate it.
	r.Post("/api/v1/generate-grant-application", genHandlers.HandleGenerateApplication())
	r.Post("/api/v1/generate-answers", genHandlers.HandleGenerateAnswers())
	r.Get("/api/v1/validate-api-key", genHandlers.HandleValidateAPIKey())
	r.Post("/generate-grant-template", genHandlers.HandleGenerateTemplate())
	r.Post("/edit-answer", genHandlers.HandleEditAnswer())

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		// Generation calls can legitimately run for tens of seconds, so
		// the write timeout sits above the provider timeout.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped gracefully")
}
