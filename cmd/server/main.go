package main

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-repair-service/config"
	"github.com/fekuna/omnipos-repair-service/internal/database/postgres"
	"github.com/fekuna/omnipos-repair-service/internal/event"
	"github.com/fekuna/omnipos-repair-service/internal/health"
	"github.com/fekuna/omnipos-repair-service/internal/i18n"
	"github.com/fekuna/omnipos-repair-service/internal/inventory"
	"github.com/fekuna/omnipos-repair-service/internal/job"
	"github.com/fekuna/omnipos-repair-service/internal/localstore"
	"github.com/fekuna/omnipos-repair-service/internal/lock"
	"github.com/fekuna/omnipos-repair-service/internal/logger"
	"github.com/fekuna/omnipos-repair-service/internal/model"
	"github.com/fekuna/omnipos-repair-service/internal/refresher"
	"github.com/fekuna/omnipos-repair-service/internal/sale"
	"github.com/fekuna/omnipos-repair-service/internal/server"
	"github.com/fekuna/omnipos-repair-service/internal/storage"
	"github.com/fekuna/omnipos-repair-service/internal/warranty"

	dashH "github.com/fekuna/omnipos-repair-service/internal/dashboard/handler"
	dashUCPkg "github.com/fekuna/omnipos-repair-service/internal/dashboard/usecase"

	invH "github.com/fekuna/omnipos-repair-service/internal/inventory/handler"
	invListenerPkg "github.com/fekuna/omnipos-repair-service/internal/inventory/listener"
	invRepoPkg "github.com/fekuna/omnipos-repair-service/internal/inventory/repository"
	invUCPkg "github.com/fekuna/omnipos-repair-service/internal/inventory/usecase"

	jobH "github.com/fekuna/omnipos-repair-service/internal/job/handler"
	jobRepoPkg "github.com/fekuna/omnipos-repair-service/internal/job/repository"
	jobUCPkg "github.com/fekuna/omnipos-repair-service/internal/job/usecase"

	saleH "github.com/fekuna/omnipos-repair-service/internal/sale/handler"
	saleRepoPkg "github.com/fekuna/omnipos-repair-service/internal/sale/repository"
	saleUCPkg "github.com/fekuna/omnipos-repair-service/internal/sale/usecase"

	warH "github.com/fekuna/omnipos-repair-service/internal/warranty/handler"
	warRepoPkg "github.com/fekuna/omnipos-repair-service/internal/warranty/repository"
	warUCPkg "github.com/fekuna/omnipos-repair-service/internal/warranty/usecase"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.IsDevelopment() {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Connect to the remote database. Without it every collection runs local-only.
	var db *sqlx.DB
	if cfg.Postgres.Enabled {
		conn, err := postgres.NewPostgres(ctx, &postgres.Config{
			Host:            cfg.Postgres.Host,
			Port:            cfg.Postgres.Port,
			User:            cfg.Postgres.User,
			Password:        cfg.Postgres.Password,
			DBName:          cfg.Postgres.DBName,
			SSLMode:         cfg.Postgres.SSLMode,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
			ConnectTimeout:  time.Duration(cfg.Postgres.ConnectTimeout) * time.Second,
		})
		if err != nil {
			appLogger.Warn("Could not connect to database, running local-only", zap.Error(err))
		} else {
			db = conn
			defer db.Close()
			appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))
		}
	}

	// 4. Open the local store
	store, redisClient, err := openLocalStore(ctx, cfg)
	if err != nil {
		appLogger.Fatal("Could not open local store", zap.String("driver", cfg.LocalStore.Driver), zap.Error(err))
	}
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}
	appLogger.Info("Local store ready", zap.String("driver", cfg.LocalStore.Driver))

	// 5. Stock adjustment lock
	var locker lock.Locker = lock.NewLocal()
	if redisClient != nil {
		locker = lock.NewRedis(redisClient, time.Duration(cfg.Redis.LockTTL)*time.Second, appLogger)
	}

	// 6. Initialize Kafka
	var publisher event.Publisher = event.NewNopPublisher()
	var stockReader event.Reader
	if cfg.Kafka.Enabled {
		publisher = event.NewKafkaPublisher(&event.KafkaConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.EventsTopic,
		}, appLogger)
		stockReader = event.NewKafkaReader(&event.KafkaConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.StockTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer stockReader.Close()
		appLogger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.EventsTopic))
	}
	defer publisher.Close()

	// 7. Initialize i18n
	translator, err := i18n.New(cfg.I18n.DefaultLang)
	if err != nil {
		appLogger.Fatal("Could not load locales", zap.Error(err))
	}

	// 8. Initialize Repositories
	syncCfg := storage.Config{TrustEmptyRemote: cfg.Sync.TrustEmptyRemote}

	var invRemote storage.Repository[model.InventoryItem, model.InventoryPatch]
	var jobRemote storage.Repository[model.Job, model.JobPatch]
	var warRemote storage.Repository[model.Warranty, model.WarrantyPatch]
	var saleRemote storage.Repository[model.DailySale, storage.NoPatch]
	if db != nil {
		invRemote = invRepoPkg.NewPGRepository(db)
		jobRemote = jobRepoPkg.NewPGRepository(db)
		warRemote = warRepoPkg.NewPGRepository(db)
		saleRemote = saleRepoPkg.NewPGRepository(db)
	}

	invRepo := storage.NewFallbackRepository(invRemote, storage.NewLocalRepository(store, inventory.Schema, appLogger), appLogger, syncCfg)
	jobRepo := storage.NewFallbackRepository(jobRemote, storage.NewLocalRepository(store, job.Schema, appLogger), appLogger, syncCfg)
	warRepo := storage.NewFallbackRepository(warRemote, storage.NewLocalRepository(store, warranty.Schema, appLogger), appLogger, syncCfg)
	saleRepo := storage.NewFallbackRepository(saleRemote, storage.NewLocalRepository(store, sale.Schema, appLogger), appLogger, syncCfg)

	// 9. Initialize UseCases
	invUC := invUCPkg.NewInventoryUseCase(invRepo, locker, appLogger)
	saleUC := saleUCPkg.NewSaleUseCase(saleRepo, publisher, appLogger)
	warUC := warUCPkg.NewWarrantyUseCase(warRepo, publisher, appLogger)
	jobUC := jobUCPkg.NewJobUseCase(jobRepo, invUC, saleUC, warUC, publisher, translator, appLogger)
	dashUC := dashUCPkg.NewDashboardUseCase(invUC, jobUC, warUC, saleUC)

	// 10. Start Listener
	if stockReader != nil {
		invListener := invListenerPkg.NewInventoryListener(stockReader, invUC, appLogger)
		go invListener.Start(ctx)
	}

	// 11. Start the mirror refresher
	refresh := refresher.New(refresher.Config{
		RefreshSchedule: cfg.Sync.RefreshSchedule,
		ReportSchedule:  cfg.Sync.ReportSchedule,
		RunImmediately:  db != nil,
	}, invUC, jobUC, warUC, saleUC, appLogger)
	if err := refresh.Start(); err != nil {
		appLogger.Fatal("Could not start refresher", zap.Error(err))
	}
	defer refresh.Stop()

	// 12. Start the health checker and servers
	var pinger health.Pinger
	if db != nil {
		pinger = db
	}
	checker := health.NewChecker(pinger, cfg.Sync.HealthInterval, appLogger)
	go checker.Run(ctx)

	router := server.NewRouter(server.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		Development:  cfg.IsDevelopment(),
	}, checker, appLogger,
		invH.NewInventoryHandler(invUC, appLogger),
		jobH.NewJobHandler(jobUC, translator, appLogger),
		warH.NewWarrantyHandler(warUC, translator, appLogger),
		saleH.NewSaleHandler(saleUC, appLogger),
		dashH.NewDashboardHandler(dashUC, appLogger),
	)

	httpServer := &http.Server{
		Addr:              normalizePort(cfg.Server.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve HTTP", zap.Error(err))
		}
	}()

	grpcPort := normalizePort(cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", grpcPort)
	if err != nil {
		appLogger.Fatal("failed to listen", zap.String("port", grpcPort), zap.Error(err))
	}
	grpcServer := grpc.NewServer()
	checker.Register(grpcServer)
	reflection.Register(grpcServer)
	go func() {
		appLogger.Info("Starting gRPC health server", zap.String("port", grpcPort))
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve gRPC", zap.Error(err))
		}
	}()

	// 13. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP shutdown", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

// openLocalStore returns the configured store and, for the redis driver, the
// client so it can be shared with the lock. The "none" driver yields a nil
// store: reads come back empty and writes are dropped.
func openLocalStore(ctx context.Context, cfg *config.Config) (localstore.Store, *redis.Client, error) {
	switch cfg.LocalStore.Driver {
	case "sqlite":
		s, err := localstore.OpenSQLite(cfg.LocalStore.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	case "redis":
		s, err := localstore.NewRedisStore(ctx, &localstore.RedisConfig{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Client, nil
	case "memory":
		return localstore.NewMemoryStore(), nil, nil
	case "none":
		return nil, nil, nil
	}
	return nil, nil, errors.New("unknown local store driver " + cfg.LocalStore.Driver)
}

func normalizePort(port string) string {
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
