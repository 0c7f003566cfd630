package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"jobmatch/internal/app"
	"jobmatch/internal/config"
	"jobmatch/internal/database"
	apphttp "jobmatch/internal/http"
	"jobmatch/internal/http/handlers"
	"jobmatch/internal/http/metrics"
	httpmw "jobmatch/internal/http/middleware"
	"jobmatch/internal/http/response"
	"jobmatch/internal/observability"
	"jobmatch/internal/repository/collection"
	"jobmatch/internal/storage"
	"jobmatch/internal/storage/memory"
	mongostore "jobmatch/internal/storage/mongo"
	pgstore "jobmatch/internal/storage/postgres"
	redisstore "jobmatch/internal/storage/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := observability.NewLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("api stopped with error", "err", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *observability.Logger) error {
	ctx := context.Background()

	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		client, err := database.NewRedis(cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		redisClient = client
	}

	store, closeStore, err := openStore(ctx, cfg, redisClient, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	users := collection.NewUserRepository(store, logger)
	companies := collection.NewCompanyRepository(store, logger)
	applications := collection.NewApplicationRepository(store, logger)
	proposals := collection.NewProposalRepository(store, logger)
	jobs := collection.NewVacancyRepository(store, logger)
	admins := collection.NewAdminRepository(store, logger)

	members := app.NewMemberNumberGenerator()
	normalizer := app.NewNormalizer(users, companies, members, logger)
	views := app.NewViewService(app.NewSnapshotLoader(normalizer, applications, proposals, jobs))
	console := app.NewConsole(
		app.NewPipelineService(users, applications, proposals, members, logger),
		views,
		app.NewSelectionService(views, users, applications, proposals, logger),
		app.NewResumeService(users, applications, logger),
		normalizer,
		app.NewAdminService(admins, cfg.AdminLogin, cfg.AdminPassword, logger),
		logger,
	)
	if err := console.Bootstrap(ctx); err != nil {
		return fmt.Errorf("bootstrap console: %w", err)
	}

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RateLimitBackend == config.BackendRedis && redisClient != nil {
		limiter = httpmw.NewRedisLimiter(redisClient, cfg.RedisKeyPrefix, logger)
	}

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		PipelineHandler:  handlers.NewPipelineHandler(console, collector),
		ViewHandler:      handlers.NewViewHandler(console),
		SelectionHandler: handlers.NewSelectionHandler(console, collector),
		RecordHandler:    handlers.NewRecordHandler(console, collector),
		UserHandler:      handlers.NewUserHandler(console),
		MetricsHandler:   metrics.NewHandler(collector),
		Metrics:          collector,
		Logger:           logger,
		AdminAPIKey:      cfg.AdminAPIKey,
		Limiter:          limiter,
		BulkDeletePerMin: cfg.BulkDeletePerMin,
		RequestTimeout:   cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("admin API started", "addr", server.Addr, "storage", cfg.StorageBackend, "rate_limit", cfg.RateLimitBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config, redisClient *goredis.Client, logger *observability.Logger) (storage.Store, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		db, err := database.NewPostgres(database.PostgresConfig{
			DSN:             cfg.PostgresDSN,
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxIdle:     cfg.DBConnMaxIdle,
			ConnMaxLifetime: cfg.DBConnMaxLife,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		store := pgstore.NewStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		existing, err := store.LoadMany(ctx, storage.Collections)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info("postgres collection store ready", "collections_present", len(existing))
		return store, func() { _ = db.Close() }, nil
	case config.BackendRedis:
		if redisClient == nil {
			return nil, nil, errors.New("redis backend selected without REDIS_URL")
		}
		return redisstore.NewStore(redisClient, cfg.RedisKeyPrefix), func() {}, nil
	case config.BackendMongo:
		db, err := database.NewMongo(cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = db.Client().Disconnect(ctx)
		}
		return mongostore.NewStore(db), closeFn, nil
	default:
		logger.Warn("using in-memory storage; data is lost on restart")
		return memory.NewStore(), func() {}, nil
	}
}
