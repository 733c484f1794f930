// Package app 负责组装并运行整个服务：配置、日志、追踪、存储、调度器、事件消费与 HTTP.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yeisme/folio/pkg/api"
	"github.com/yeisme/folio/pkg/configs"
	ctxPkg "github.com/yeisme/folio/pkg/context"
	"github.com/yeisme/folio/pkg/internal/jobs"
	"github.com/yeisme/folio/pkg/internal/mq"
	"github.com/yeisme/folio/pkg/internal/router"
	"github.com/yeisme/folio/pkg/internal/service"
	"github.com/yeisme/folio/pkg/internal/storage"
	"github.com/yeisme/folio/pkg/log"
	"github.com/yeisme/folio/pkg/metrics"
	"github.com/yeisme/folio/pkg/scheduler"
	"github.com/yeisme/folio/pkg/tracing"
)

// App 已组装的服务.
type App struct {
	Engine *gin.Engine

	config    *configs.AppConfig
	manager   *storage.Manager
	scheduler *scheduler.Scheduler
	consumer  *mq.Consumer
	server    *api.Server
	logger    *zerolog.Logger
}

// NewApp 读取配置并初始化全部组件.
func NewApp(configPath string) (*App, error) {
	if err := configs.InitConfig(configPath); err != nil {
		return nil, fmt.Errorf("init config: %w", err)
	}

	config := configs.GetConfig()

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	// 初始化追踪
	if err := tracing.InitTracer(config.Tracing); err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	// 初始化监控
	if err := metrics.InitMetrics(config.Metrics); err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	manager, err := storage.Init(context.Background())
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	sched, err := scheduler.NewScheduler()
	if err != nil {
		_ = manager.Close()
		return nil, fmt.Errorf("init scheduler: %w", err)
	}

	if err := jobs.RegisterCronJobs(sched, manager, config); err != nil {
		_ = manager.Close()
		return nil, fmt.Errorf("register jobs: %w", err)
	}

	deps := service.DepsFromContext(ctxPkg.WithStorageManager(context.Background(), manager))
	consumer := mq.NewConsumer(manager.GetMQClient(), service.NewGalleryServiceWith(deps))

	engine := router.Setup(gin.New(), config, manager, sched)

	return &App{
		Engine:    engine,
		config:    config,
		manager:   manager,
		scheduler: sched,
		consumer:  consumer,
		server:    api.NewServer(config.Server, engine),
		logger:    log.With("app"),
	}, nil
}

// Run 启动调度器与事件消费并开始监听，ctx 结束后按依赖逆序关闭.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.consumer.Start(ctx); err != nil {
		_ = a.manager.Close()
		return fmt.Errorf("start consumer: %w", err)
	}

	a.scheduler.Start()

	runErr := a.server.Run(ctx)

	cancel()
	a.shutdown()

	return runErr
}

func (a *App) shutdown() {
	a.consumer.Wait()

	if err := a.scheduler.Stop(); err != nil {
		a.logger.Warn().Err(err).Msg("scheduler stop")
	}

	if err := a.manager.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("storage close")
	}

	if err := tracing.ShutdownTracer(context.Background()); err != nil {
		a.logger.Warn().Err(err).Msg("tracer shutdown")
	}

	a.logger.Info().Msg("bye")
}
