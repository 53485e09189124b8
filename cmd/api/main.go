package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"paths-api/internal/config"
	"paths-api/internal/db"
	"paths-api/internal/email"
	apihttp "paths-api/internal/http"
	"paths-api/internal/media"
	"paths-api/internal/repository"
	"paths-api/internal/service"
	"paths-api/internal/simulation"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	profileRepo := repository.NewPgProfileRepository(pool)
	decisionRepo := repository.NewPgDecisionRepository(pool)
	simRepo := repository.NewPgSimulationRepository(pool)
	mediaRepo := repository.NewPgMediaRepository(pool)
	analyticsRepo := repository.NewPgAnalyticsRepository(pool)

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	var (
		otpLimiter  service.OTPRateLimiter
		tokenStore  service.RefreshTokenStore
		quota       service.SimulationQuota
		redisClient *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			otpLimiter = service.NewRedisOTPRateLimiter(redisClient, 10*time.Minute, 3)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
			quota = service.NewRedisSimulationQuota(redisClient)
		}
		cancel()
	}
	if otpLimiter == nil {
		otpLimiter = service.NewOTPRateLimiter(10*time.Minute, 3)
	}
	if quota == nil {
		quota = service.NewMemorySimulationQuota()
	}

	jwtSvc := service.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	src := simulation.NewTimeSource()
	generator := simulation.NewGenerator(src)
	scorer := simulation.NewScorer(src)

	userSvc := service.NewUserService(logger, userRepo, emailSender, otpLimiter)
	decisionSvc := service.NewDecisionService(decisionRepo)
	simSvc := service.NewSimulationService(logger, decisionRepo, profileRepo, simRepo, analyticsRepo, generator, scorer, quota)
	defer simSvc.Close()

	mediaClient := media.NewHTTPClient(cfg.MediaBaseURL, cfg.MediaAPIToken)
	mediaSvc := service.NewMediaService(logger, mediaClient, mediaRepo, analyticsRepo, simSvc, profileRepo)

	userHandler := apihttp.NewUserHandler(logger, userSvc, jwtSvc)
	decisionHandler := apihttp.NewDecisionHandler(logger, decisionSvc)
	simHandler := apihttp.NewSimulationHandler(logger, simSvc, simRepo, profileRepo)
	mediaHandler := apihttp.NewMediaHandler(logger, mediaSvc)
	router := apihttp.NewRouter(logger, jwtSvc, userHandler, decisionHandler, simHandler, mediaHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
