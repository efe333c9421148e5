package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fadilmartias/job-portal/internal/cache"
	"github.com/fadilmartias/job-portal/internal/cache/redis"
	"github.com/fadilmartias/job-portal/internal/config"
	"github.com/fadilmartias/job-portal/internal/database"
	"github.com/fadilmartias/job-portal/internal/domain/fiber/handler"
	"github.com/fadilmartias/job-portal/internal/logger"
	"github.com/fadilmartias/job-portal/internal/middleware"
	"github.com/fadilmartias/job-portal/internal/repository"
	"github.com/fadilmartias/job-portal/internal/telemetry"
	"github.com/fadilmartias/job-portal/internal/usecase"
	"github.com/fadilmartias/job-portal/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const readinessTimeout = 2 * time.Second

func newCache(cacheConfig *config.CacheConfig, logger *zap.Logger) cache.Cache {
	if !cacheConfig.Enabled() {
		logger.Info("REDIS_ADDR not set, job cache disabled")
		return cache.Noop{}
	}
	return redis.New(cache.Options{
		DefaultTTL:    cacheConfig.TTL,
		RedisURL:      cacheConfig.Addr,
		RedisPassword: cacheConfig.Password,
		RedisDB:       cacheConfig.DB,
	})
}

func asJobRepositoryInterface(r *repository.JobRepository) repository.JobRepositoryInterface {
	return r
}

func newJobHandler(uc *usecase.JobUsecase, appConfig *config.AppConfig, logger *zap.Logger) *handler.JobHandler {
	return handler.NewJobHandler(uc, logger, appConfig.RateLimitMax, appConfig.RateLimitWindow)
}

func newFiberApp(appConfig *config.AppConfig, uc *usecase.JobUsecase, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return util.ErrorResponse(c, logger, err)
		},
	})

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(middleware.CORS(appConfig.AllowedOrigins))
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New(healthcheck.Config{
		ReadinessProbe: func(c *fiber.Ctx) bool {
			ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
			defer cancel()
			if err := uc.Ready(ctx); err != nil {
				logger.Warn("readiness check failed", zap.Error(err))
				return false
			}
			return true
		},
	}))

	return app
}

type serverParams struct {
	fx.In

	Lifecycle     fx.Lifecycle
	App           *fiber.App
	AppConfig     *config.AppConfig
	DBConfig      *config.DBConfig
	TelemetryConf *config.TelemetryConfig
	Logger        *zap.Logger
	DB            *gorm.DB
	Cache         cache.Cache
	JobRepo       *repository.JobRepository
	JobHandler    *handler.JobHandler
}

type schemaInitializer interface {
	EnsureSchema(ctx context.Context) error
}

// initSchema migrates and seeds the jobs table. Failure is logged, not
// fatal: requests answer 500 and /readyz reports unavailable until the
// database is back.
func initSchema(ctx context.Context, cancel context.CancelFunc, repo schemaInitializer, logger *zap.Logger) {
	defer cancel()
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("database initialization failed", zap.Error(err))
		return
	}
	logger.Info("database initialized")
}

func registerServer(p serverParams) {
	handler.NewHealthHandler().RegisterRoutes(p.App)
	p.JobHandler.RegisterRoutes(p.App)

	var (
		shutdownTracer func(context.Context) error
		cancelSchema   context.CancelFunc
	)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			shutdown, err := telemetry.InitTracer(ctx, p.TelemetryConf.ServiceName, p.TelemetryConf.CollectorURL)
			if err != nil {
				p.Logger.Warn("tracing disabled", zap.Error(err))
				shutdown = func(context.Context) error { return nil }
			}
			shutdownTracer = shutdown

			go func() {
				p.Logger.Info("server listening", zap.String("addr", p.AppConfig.ListenAddr()))
				if err := p.App.Listen(p.AppConfig.ListenAddr()); err != nil {
					p.Logger.Error("server stopped", zap.Error(err))
				}
			}()

			// Schema setup runs detached from the start context so a slow or
			// unreachable database never delays or aborts startup.
			schemaCtx, cancel := context.WithTimeout(context.Background(), p.DBConfig.SchemaTimeout)
			cancelSchema = cancel
			go initSchema(schemaCtx, cancel, p.JobRepo, p.Logger)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancelSchema != nil {
				cancelSchema()
			}
			if err := p.App.ShutdownWithContext(ctx); err != nil {
				p.Logger.Error("server shutdown", zap.Error(err))
			}
			if err := p.Cache.Close(); err != nil {
				p.Logger.Warn("cache close", zap.Error(err))
			}
			if err := database.Close(p.DB); err != nil {
				p.Logger.Warn("database close", zap.Error(err))
			}
			if shutdownTracer != nil {
				if err := shutdownTracer(ctx); err != nil {
					p.Logger.Warn("tracer shutdown", zap.Error(err))
				}
			}
			_ = p.Logger.Sync()
			return nil
		},
	})
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	app := fx.New(
		fx.Provide(
			config.LoadAppConfig,
			config.LoadDBConfig,
			config.LoadCacheConfig,
			config.LoadTelemetryConfig,
			logger.New,
			database.Open,
			repository.NewJobRepository,
			asJobRepositoryInterface,
			newCache,
			usecase.NewJobUsecase,
			newJobHandler,
			newFiberApp,
		),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		fx.Invoke(registerServer),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}
