package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DRSN-tech/product-catalog/internal/cfg"
	v1Grpc "github.com/DRSN-tech/product-catalog/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/product-catalog/internal/delivery/v1/http"
	"github.com/DRSN-tech/product-catalog/internal/infrastructure/identity"
	"github.com/DRSN-tech/product-catalog/internal/infrastructure/kafka"
	minioInfra "github.com/DRSN-tech/product-catalog/internal/infrastructure/minio"
	s3Repo "github.com/DRSN-tech/product-catalog/internal/repository/minio"
	"github.com/DRSN-tech/product-catalog/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/product-catalog/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/product-catalog/internal/repository/redis"
	redisConv "github.com/DRSN-tech/product-catalog/internal/repository/redis/converter"
	"github.com/DRSN-tech/product-catalog/internal/usecase"
	"github.com/DRSN-tech/product-catalog/pkg/clients"
	"github.com/DRSN-tech/product-catalog/pkg/closer"
	"github.com/DRSN-tech/product-catalog/pkg/e"
	"github.com/DRSN-tech/product-catalog/pkg/logger"
	"github.com/DRSN-tech/product-catalog/pkg/postgres"
	"github.com/DRSN-tech/product-catalog/pkg/tr"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	initTimeout         = 10 * time.Second
	shutdownTimeout     = 15 * time.Second
	forcedCloseTimeout  = 3 * time.Second
	topicTimeout        = 10 * time.Second
	healthCheckInterval = 5 * time.Second
)

// App собирает зависимости каталога и управляет их жизненным циклом.
type App struct {
	cfg    *cfg.Config
	logger logger.Logger
	closer *closer.Closer

	db          *postgres.PgDatabase
	productUC   *usecase.ProductUseCase
	imagesInfra *minioInfra.MinioInfrastructure
	worker      *kafka.OutboxWorker
	grpcSrv     *v1Grpc.GRPCServer
	httpSrv     *v1Http.Server

	// cleanupCtx отменяется только после WaitForCleanup, фоновые удаления изображений его переживают.
	cleanupCtx context.Context
}

// NewApp подключается к внешним сервисам и собирает граф зависимостей.
// При ошибке уже открытые ресурсы закрываются.
func NewApp(cfg *cfg.Config, log logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(log, forcedCloseTimeout),
	}

	if err := a.init(); err != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if closeErr := a.closer.Close(ctx); closeErr != nil {
			log.Errorf(closeErr, "failed to release resources after init error")
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a, nil
}

func (a *App) init() error {
	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	db, err := a.initPGDB(ctx)
	if err != nil {
		return err
	}
	a.db = db

	redisClient := clients.NewRedisClient(a.cfg.Redis)
	a.closer.Add("redis", redisClient.Close)
	if err := redisClient.Ping(ctx); err != nil {
		a.logger.Errorf(err, "failed to connect to redis")
		return e.Wrap(whereami.WhereAmI(), err)
	}

	minioClient, err := clients.NewMinIOClient(a.cfg.Minio)
	if err != nil {
		a.logger.Errorf(err, "failed to initialize minio client")
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if err := clients.EnsureBucket(ctx, minioClient, a.cfg.Minio.BucketName); err != nil {
		a.logger.Errorf(err, "failed to initialize MinIO bucket")
		return e.Wrap(whereami.WhereAmI(), err)
	}

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	a.cleanupCtx = cleanupCtx
	a.imagesInfra = minioInfra.NewMinioInfrastructure(
		s3Repo.NewImageRepo(minioClient),
		a.cfg.Minio.BucketName,
		a.cfg.Minio.MaxImageSize,
		a.logger,
		cleanupCtx,
	)
	a.closer.Add("minio cleanup", func(ctx context.Context) error {
		defer cleanupCancel()
		return a.imagesInfra.WaitForCleanup(ctx)
	})

	producer := kafka.NewProducer(a.logger, a.cfg.Kafka)
	a.closer.Add("kafka producer", func(context.Context) error {
		return producer.Close()
	})
	topicCtx, topicCancel := context.WithTimeout(context.Background(), topicTimeout)
	defer topicCancel()
	if err := producer.EnsureTopic(topicCtx); err != nil {
		// Топик может создаваться брокером автоматически или администратором.
		a.logger.Warnf("failed to ensure kafka topic %s: %v", a.cfg.Kafka.Topic, err)
	}

	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.OutboxEventConverter{})
	userRepo := pgdb.NewUserRepo(db.Pool, pgdbConv.UserConverter{})
	cacheRepo := redis.NewCacheRepo(redisClient, redisConv.ProductConverter{}, a.cfg.Redis, a.logger)

	a.productUC = usecase.NewProductUC(
		pgdb.NewCatalogStore(db.Pool),
		tr.NewManager(db.Pool),
		outboxRepo,
		cacheRepo,
		a.imagesInfra,
		kafka.NewProtoEncoder(),
		identity.NewProvider(userRepo),
		a.logger,
	)

	a.worker = kafka.NewOutboxWorker(
		outboxRepo,
		a.logger,
		producer,
		db.Dsn,
		pgdb.OutboxChannel,
		a.cfg.Outbox.BatchSize,
		a.cfg.Outbox.PollInterval,
	)

	a.grpcSrv = v1Grpc.NewGRPCServer(a.cfg.Grpc, a.logger)

	r := chi.NewRouter()
	v1Http.NewRouter(r, a.logger).Init(v1Http.RouterDeps{
		ProductUC:    a.productUC,
		Verifier:     identity.NewTokenVerifier(a.cfg.Auth.JWTSecret, a.cfg.Auth.Issuer, a.cfg.Auth.Leeway),
		DB:           db,
		SwaggerURL:   a.cfg.Http.SwaggerURL,
		MaxImageSize: a.cfg.Minio.MaxImageSize,
	})
	a.httpSrv = v1Http.NewServer(r, a.cfg.Http)

	return nil
}

func (a *App) initPGDB(ctx context.Context) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(ctx, a.cfg.Db)
	if err != nil {
		a.logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add("postgres", func(context.Context) error {
		db.Close()
		return nil
	})

	if err := db.Ping(ctx); err != nil {
		a.logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(a.logger); err != nil {
		a.logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

// Run запускает фоновые процессы и серверы, ждёт сигнала остановки или падения сервера
// и закрывает ресурсы в обратном порядке.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.worker.Start(ctx)
	a.closer.Add("outbox worker", a.worker.Stop)

	go a.grpcSrv.WatchHealth(ctx, a.db, healthCheckInterval)

	errCh := make(chan error, 2)

	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			errCh <- e.Wrap("gRPC server", err)
		}
	}()
	a.closer.Add("grpc server", a.grpcSrv.Stop)

	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil {
			errCh <- e.Wrap("HTTP server", err)
		}
	}()
	a.closer.Add("http server", a.httpSrv.Stop)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "server fatal error")
	case <-ctx.Done():
		a.logger.Infof("received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
	}

	a.logger.Infof("application shutdown complete")
	a.logger.Sync()

	return appErr
}
