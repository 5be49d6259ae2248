package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/interviewly/interview-server-go/internal/config"
	"github.com/interviewly/interview-server-go/internal/database"
	"github.com/interviewly/interview-server-go/internal/genai"
	"github.com/interviewly/interview-server-go/internal/handler"
	"github.com/interviewly/interview-server-go/internal/httputil"
	"github.com/interviewly/interview-server-go/internal/jobs"
	"github.com/interviewly/interview-server-go/internal/middleware"
	"github.com/interviewly/interview-server-go/internal/redis"
	"github.com/interviewly/interview-server-go/internal/repository"
	"github.com/interviewly/interview-server-go/internal/service"
	"github.com/interviewly/interview-server-go/internal/storage"
	"github.com/interviewly/interview-server-go/internal/token"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	db, err := database.Connect(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
		defer cancel()
		if err := db.Close(ctx); err != nil {
			log.Error().Err(err).Msg("failed to close mongodb connection")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping mongodb")
	}
	cancel()
	log.Info().Msg("mongodb connected")

	startupCtx, startupCancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	userRepo, err := repository.NewUserMongoRepository(startupCtx, db.Database())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize user repository")
	}
	sessionRepo, err := repository.NewSessionMongoRepository(startupCtx, db.Database())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize session repository")
	}
	startupCancel()

	genaiClient, err := genai.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AnalysisTimeout())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create genai client")
	}
	defer genaiClient.Close()

	mediaStore, err := storage.NewS3Store(context.Background(), storage.Options{
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Endpoint:        cfg.S3Endpoint,
		BaseURL:         cfg.S3BaseURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create s3 store")
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Msg("redis connected")
	}

	issuer := token.NewIssuer(cfg.TokenSecret, config.AccessTokenTTL)
	validate := validator.New()

	authService := service.NewAuthService(userRepo, issuer)
	interviewService := service.NewInterviewService(sessionRepo, genaiClient, mediaStore, genaiClient)

	authMiddleware := middleware.NewAuthMiddleware(issuer)
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(0)

	authHandler := handler.NewAuthHandler(authService, validate, authMiddleware.Handler)
	interviewHandler := handler.NewInterviewHandler(interviewService, validate)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(bodyLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{
			"message": "AI Mock Interview Platform",
		})
	})

	r.Mount("/auth", authHandler.Routes())

	r.Route("/interview", func(r chi.Router) {
		r.Use(authMiddleware.Handler)
		if redisClient != nil {
			r.Use(middleware.NewRateLimitMiddleware(redisClient.Client, cfg.RateLimitPerMin).Handler)
		}
		r.Mount("/", interviewHandler.Routes())
	})

	if ttl := cfg.PendingSessionTTL(); ttl > 0 {
		cleanupJob := jobs.NewCleanupJob(sessionRepo, ttl, config.CleanupJobInterval)
		cleanupJob.Start()
		defer cleanupJob.Stop()
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: config.ServerReadHeaderTimeout,
		IdleTimeout:       config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
