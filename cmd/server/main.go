package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/rentfolio/backend/api/handler"
	"github.com/rentfolio/backend/internal/config"
	"github.com/rentfolio/backend/internal/infrastructure/journal"
	"github.com/rentfolio/backend/internal/infrastructure/monitor"
	pgInfra "github.com/rentfolio/backend/internal/infrastructure/postgres"
	redisInfra "github.com/rentfolio/backend/internal/infrastructure/redis"
	"github.com/rentfolio/backend/internal/middleware"
	"github.com/rentfolio/backend/internal/router"
	"github.com/rentfolio/backend/internal/services"
	"github.com/rentfolio/backend/internal/services/lifecycle"
	"github.com/rentfolio/backend/pkg/httpcontext"
	"github.com/rentfolio/backend/pkg/logger"
	"github.com/rentfolio/backend/pkg/mailer"
	"github.com/rentfolio/backend/repository/postgres"
	redisRepo "github.com/rentfolio/backend/repository/redis"
	authUC "github.com/rentfolio/backend/usecase/auth"
	portfolioUC "github.com/rentfolio/backend/usecase/portfolio"
	rentbookUC "github.com/rentfolio/backend/usecase/rentbook"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	journalStore, err := journal.Open(cfg.Journal.Path, "journal")
	if err != nil {
		zapLogger.Fatal("failed to open payment journal", zap.Error(err))
	}
	manager.Register("journal", func(ctx context.Context) error {
		return journalStore.Close()
	})

	mon := monitor.New(pool, redisClient, journalStore, cfg.Monitor.Interval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	uow := postgres.NewUnitOfWork(pool)
	propertyRepo := postgres.NewPropertyRepository(pool)
	tenantRepo := postgres.NewTenantRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.JWT.SessionTTL)
	tokenCache := redisRepo.NewTokenCache(redisClient)

	journalProcessor := services.NewJournalProcessor(
		journalStore,
		mon,
		paymentRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Journal.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Journal.MaxRetry,
		},
	)
	journalProcessor.Start()
	manager.Register("journal_processor", func(ctx context.Context) error {
		journalProcessor.Stop(ctx)
		return nil
	})

	journalBridge := services.NewJournalBridge(journalProcessor)

	smtpMailer := mailer.New(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		From:     cfg.SMTP.From,
		Password: cfg.SMTP.Password,
	})

	authUseCase := authUC.New(profileRepo, sessionRepo, tokenCache, smtpMailer, authUC.Config{
		JWTSecret:  cfg.JWT.Secret,
		JWTIssuer:  cfg.JWT.Issuer,
		SessionTTL: cfg.JWT.SessionTTL,
		TokenTTL:   cfg.JWT.TokenTTL,
	}, zapLogger)
	portfolioUseCase := portfolioUC.New(uow, propertyRepo, tenantRepo, paymentRepo, zapLogger)
	rentbookUseCase := rentbookUC.New(paymentRepo, tenantRepo, propertyRepo, journalBridge, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:      apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Property:  apiHandler.NewPropertyHandler(portfolioUseCase, ctxAdapter, zapLogger),
		Tenant:    apiHandler.NewTenantHandler(portfolioUseCase, ctxAdapter, zapLogger),
		Payment:   apiHandler.NewPaymentHandler(rentbookUseCase, ctxAdapter, zapLogger),
		Dashboard: apiHandler.NewDashboardHandler(rentbookUseCase, ctxAdapter, zapLogger),
		Health:    apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, sessionRepo, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
