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
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hireflow/hireflow-backend/internal/auth/jwt"
	"github.com/hireflow/hireflow-backend/internal/cvparsing/events"
	"github.com/hireflow/hireflow-backend/internal/cvparsing/handler"
	"github.com/hireflow/hireflow-backend/internal/cvparsing/repository"
	"github.com/hireflow/hireflow-backend/internal/cvparsing/service"
	"github.com/hireflow/hireflow-backend/pkg/config"
	"github.com/hireflow/hireflow-backend/pkg/database"
	"github.com/hireflow/hireflow-backend/pkg/httputil"
	"github.com/hireflow/hireflow-backend/pkg/i18n"
	"github.com/hireflow/hireflow-backend/pkg/logger"
	"github.com/hireflow/hireflow-backend/pkg/messaging"
)

const serviceName = "cvparse-service"

func main() {
	// Load configuration
	cfg, err := config.LoadWithValidation(serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(serviceName, cfg.Server.Environment)
	log.Info().Msg("starting CV Parse Service")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	svc := service.NewFromConfig(&cfg.Parser, log)
	health := map[string]func(context.Context) map[string]string{}

	// Audit trail (optional)
	var history handler.HistoryLister
	if cfg.Parser.AuditEnabled {
		db, err := database.New(&cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()

		auditRepo := repository.NewAuditRepository(db)
		if err := auditRepo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to prepare audit schema")
		}
		svc.WithAuditor(auditRepo)
		history = auditRepo
		health["database"] = db.Health
	}

	// Parse events (optional)
	if cfg.Parser.EventsEnabled {
		rmq, err := messaging.New(&cfg.RabbitMQ, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		defer rmq.Close()
		go rmq.Watch(ctx)

		publisher, err := events.NewCVEventPublisher(rmq, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create event publisher")
		}
		svc.WithPublisher(publisher)
		health["rabbitmq"] = func(context.Context) map[string]string { return rmq.Health() }
	}

	jwtManager := jwt.NewManager(&cfg.JWT)
	cvHandler := handler.NewHandler(svc, history, cfg.Parser.MaxUploadBytes, log)

	// Create router
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(i18n.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status := map[string]interface{}{
			"status":  "healthy",
			"service": serviceName,
		}
		for name, check := range health {
			status[name] = check(r.Context())
		}
		httputil.JSON(w, http.StatusOK, status)
	})

	// Protected API endpoints
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtManager.Middleware(log))
		cvHandler.Routes(r)
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	stop()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
