package internal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"docvault-api/config"
	"docvault-api/internal/application/ports"
	"docvault-api/internal/application/services"
	"docvault-api/internal/infrastructure/cognito"
	"docvault-api/internal/infrastructure/db/postgres"
	"docvault-api/internal/infrastructure/db/postgres/document"
	"docvault-api/internal/infrastructure/db/postgres/transaction"
	"docvault-api/internal/infrastructure/db/postgres/user"
	"docvault-api/internal/infrastructure/jwt"
	"docvault-api/internal/infrastructure/metrics"
	"docvault-api/internal/infrastructure/minio"
	"docvault-api/internal/infrastructure/mq"
	"docvault-api/internal/infrastructure/s3"
	"docvault-api/internal/infrastructure/tracing"
	"docvault-api/internal/interface/api/rest"
	"docvault-api/internal/interface/api/rest/middleware"
	"docvault-api/pkg/rmqconsumer"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	logger       *zap.Logger
	cfg          config.Config
	db           *pgxpool.Pool
	store        ports.ObjectStore
	identity     ports.IdentityProvider
	tracer       *tracing.Provider
	httpSrv      *http.Server
	router       *gin.Engine
	mCounter     *prometheus.CounterVec
	mOutcomes    *prometheus.CounterVec
	mStepSeconds *prometheus.HistogramVec
	mq           ports.RabbitMQ
	mqConsumer   ports.RMQConsumer
}

// Bootstrap builds the logger and loads the configuration. A missing .env
// file is not an error; the process environment is used as is.
func Bootstrap() (*zap.Logger, config.Config, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("cannot initialize zap logger: %w", err)
	}

	if err = godotenv.Load(".env"); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, config.Config{}, fmt.Errorf("error loading .env file: %w", err)
		}
		logger.Info("no .env file, using process environment")
	}

	return logger, config.Load(), nil
}

func NewApp(ctx context.Context, logger *zap.Logger, cfg config.Config) (*App, error) {
	// tracing
	tracer, err := tracing.New(ctx, logger, cfg.App.Name, cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}

	// metrics
	mCounter := metrics.NewCounter()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))

	// httpServer
	httpSrv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		return nil, fmt.Errorf("DB config error: %w", err)
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// object store
	if err = cfg.ValidateStorage(); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("storage config error: %w", err)
	}
	store, err := newObjectStore(ctx, logger, cfg.Storage)
	if err != nil {
		dbPool.Close()
		return nil, err
	}

	// identity provider
	identity, err := cognito.New(ctx, logger, cfg.Cognito)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to init cognito client: %w", err)
	}

	// rabbitMQ
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("RabbitMQ config error: %w", err)
	}
	rbMQ := mq.New(cfg.MQ, logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to connect to rabbitMQ: %w", err)
	}
	if err = rbMQ.Init(); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed init rabbitMQ: %w", err)
	}
	// rmqConsumer
	rmqConsumer := rmqconsumer.New(cfg.MQ, logger, rbMQ.GetConn(), mq.RoutingKeys)
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to connect rabbitMQ consumer: %w", err)
	}
	if err = rmqConsumer.Init(); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to init rabbitMQ consumer: %w", err)
	}

	return &App{
		logger:       logger,
		cfg:          cfg,
		db:           dbPool,
		store:        store,
		identity:     identity,
		tracer:       tracer,
		httpSrv:      httpSrv,
		router:       r,
		mCounter:     mCounter,
		mOutcomes:    metrics.NewUploadOutcomeCounter(),
		mStepSeconds: metrics.NewSagaStepHistogram(),
		mq:           rbMQ,
		mqConsumer:   rmqConsumer,
	}, nil
}

func newObjectStore(ctx context.Context, logger *zap.Logger, cfg config.Storage) (ports.ObjectStore, error) {
	switch cfg.Driver {
	case config.StorageDriverMinio:
		c, err := minio.New(logger, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to minio: %w", err)
		}
		if err = c.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("failed to ensure minio bucket: %w", err)
		}
		return c, nil
	default:
		c, err := s3.New(ctx, logger, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to S3: %w", err)
		}
		return c, nil
	}
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		_ = a.mq.GetConn().Close()
	}
	if a.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.tracer.Shutdown(ctx); err != nil {
			a.logger.Warn("tracer shutdown error", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.cfg.App.Host+":"+a.cfg.App.Port))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		a.mq.PublisherWorker(ctx)
		return nil
	})

	g.Go(func() error {
		a.mqConsumer.DeliveryWorker(ctx)
		return nil
	})

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// repos
	userRepo := user.NewRepository(a.db)
	documentRepo := document.NewRepository(a.db)
	transactionRepo := transaction.NewRepository(a.db)

	// services
	jwtService := jwt.New(a.cfg.App.JWTSecret)
	coordinator := services.NewUploadCoordinator(a.store, documentRepo, a.logger,
		services.WithStepTimeout(a.cfg.Upload.StepTimeout),
		services.WithOutcomeCounter(a.mOutcomes),
		services.WithStepHistogram(a.mStepSeconds),
	)
	documentService := services.NewDocumentService(a.store, documentRepo, coordinator, a.mq, a.logger, a.mCounter)
	userService := services.NewUserService(userRepo, a.identity, a.mq, a.logger, a.mCounter)
	transactionService := services.NewTransactionService(transactionRepo)

	// controllers
	rest.NewDocumentController(a.router, documentService, a.logger, jwtService, a.cfg.Upload.MaxFileBytes)
	rest.NewUserController(a.router, userService, a.logger, jwtService)
	rest.NewTransactionController(a.router, transactionService, a.logger)

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) Logger() *zap.Logger { return a.logger }

// Migrate applies the database migrations and exits.
func Migrate(ctx context.Context, logger *zap.Logger, cfg config.Config) error {
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		return fmt.Errorf("DB config error: %w", err)
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbPool.Close()

	return postgres.Migrate(ctx, logger, dbPool)
}
