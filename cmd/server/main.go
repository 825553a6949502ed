package main

import (
	"context"
	"log"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/Laaxxmm/Pomodoro/api/handler"
	"github.com/Laaxxmm/Pomodoro/internal/config"
	"github.com/Laaxxmm/Pomodoro/internal/infrastructure/buffer"
	"github.com/Laaxxmm/Pomodoro/internal/infrastructure/monitor"
	pgInfra "github.com/Laaxxmm/Pomodoro/internal/infrastructure/postgres"
	redisInfra "github.com/Laaxxmm/Pomodoro/internal/infrastructure/redis"
	"github.com/Laaxxmm/Pomodoro/internal/middleware"
	"github.com/Laaxxmm/Pomodoro/internal/oracle"
	"github.com/Laaxxmm/Pomodoro/internal/router"
	"github.com/Laaxxmm/Pomodoro/internal/services"
	"github.com/Laaxxmm/Pomodoro/internal/services/lifecycle"
	"github.com/Laaxxmm/Pomodoro/pkg/clock"
	"github.com/Laaxxmm/Pomodoro/pkg/httpcontext"
	"github.com/Laaxxmm/Pomodoro/pkg/logger"
	"github.com/Laaxxmm/Pomodoro/repository/postgres"
	redisRepo "github.com/Laaxxmm/Pomodoro/repository/redis"
	plannerUC "github.com/Laaxxmm/Pomodoro/usecase/planner"
	pomodoroUC "github.com/Laaxxmm/Pomodoro/usecase/pomodoro"
	settingsUC "github.com/Laaxxmm/Pomodoro/usecase/settings"
	statsUC "github.com/Laaxxmm/Pomodoro/usecase/stats"
	taskUC "github.com/Laaxxmm/Pomodoro/usecase/task"
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

	var redisClient *redislib.Client
	if cfg.Redis.Enabled {
		redisClient, err = redisInfra.NewClient(cfg.Redis)
		if err != nil {
			// The cache is optional; the plan repository works without it.
			zapLogger.Warn("redis unavailable, plan cache disabled", zap.Error(err))
			redisClient = nil
		} else {
			manager.Register("redis", func(ctx context.Context) error {
				return redisClient.Close()
			})
		}
	}

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "retry")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	taskRepo := postgres.NewTaskRepository(pool)
	planRepo := redisRepo.NewPlanCache(postgres.NewPlanRepository(pool), redisClient)
	sessionRepo := postgres.NewSessionRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		taskRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  cfg.Buffer.BatchSize,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	var rankOracle plannerUC.Oracle
	if client := oracle.New(oracle.Config{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.Model,
		Timeout: cfg.OpenAI.Timeout,
	}, zapLogger); client != nil {
		rankOracle = client
	}

	sysClock := clock.System()
	bufferBridge := services.NewBufferBridge(bufferProcessor)

	plannerUseCase := plannerUC.New(taskRepo, planRepo, settingsRepo, rankOracle, bufferBridge, sysClock, zapLogger)
	taskUseCase := taskUC.New(taskRepo, sysClock, zapLogger)
	pomodoroUseCase := pomodoroUC.New(sessionRepo, taskRepo, sysClock, zapLogger)
	settingsUseCase := settingsUC.New(settingsRepo, zapLogger)
	statsUseCase := statsUC.New(taskRepo, sessionRepo, sysClock, zapLogger)

	if cfg.Rollover.Enabled {
		scheduler := services.NewRolloverScheduler(plannerUseCase, cfg.Rollover.CronSpec, zapLogger)
		if err := scheduler.Start(); err != nil {
			zapLogger.Fatal("rollover scheduler failed", zap.Error(err))
		}
		manager.Register("rollover_scheduler", func(ctx context.Context) error {
			scheduler.Stop(ctx)
			return nil
		})
	}

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Task:     apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Planner:  apiHandler.NewPlannerHandler(plannerUseCase, ctxAdapter, zapLogger),
		Pomodoro: apiHandler.NewPomodoroHandler(pomodoroUseCase, ctxAdapter, zapLogger),
		Settings: apiHandler.NewSettingsHandler(settingsUseCase, statsUseCase, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, rankOracle != nil, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
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
