package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/tasknote/backend/api/handler"
	"github.com/tasknote/backend/internal/config"
	"github.com/tasknote/backend/internal/infrastructure/monitor"
	pgInfra "github.com/tasknote/backend/internal/infrastructure/postgres"
	"github.com/tasknote/backend/internal/middleware"
	"github.com/tasknote/backend/internal/router"
	"github.com/tasknote/backend/internal/services/lifecycle"
	"github.com/tasknote/backend/pkg/httpcontext"
	"github.com/tasknote/backend/pkg/logger"
	pgRepo "github.com/tasknote/backend/repository/postgres"
	authUC "github.com/tasknote/backend/usecase/auth"
	taskUC "github.com/tasknote/backend/usecase/task"
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

	mon := monitor.New(pool, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := pgRepo.NewUserRepository(pool)
	sessionRepo := pgRepo.NewSessionRepository(pool)
	taskRepo := pgRepo.NewTaskRepository(pool)

	authUseCase := authUC.New(userRepo, sessionRepo, cfg.SessionTTL(), zapLogger)
	taskUseCase := taskUC.New(taskRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth: apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, apiHandler.CookieSettings{
			Name:   cfg.Session.CookieName,
			TTL:    cfg.SessionTTL(),
			Secure: cfg.Session.SecureCookie,
		}),
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.SessionAuth(authUseCase, cfg.Session.CookieName, cfg.Context.RequestTimeout, zapLogger)
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
