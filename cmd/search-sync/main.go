package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-catalog/internal/adapter"
	"github.com/feral-file/ff-catalog/internal/config"
	"github.com/feral-file/ff-catalog/internal/logger"
	"github.com/feral-file/ff-catalog/internal/search"
	"github.com/feral-file/ff-catalog/internal/store"
	"github.com/feral-file/ff-catalog/internal/worker"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	config.ChdirRepoRoot()
	cfg, err := config.LoadSearchSyncConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Service:         "catalog-search-sync",
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	// Cancel the sync on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load AWS config", zap.Error(err))
	}

	dataStore := openStore(ctx, cfg.Store, cfg.Database, cfg.AWS, awsCfg, adapter.NewClock())

	index, err := search.NewElasticIndex(search.Config{
		URL:       cfg.Search.URL,
		Username:  cfg.Search.Username,
		Password:  cfg.Search.Password,
		IndexName: cfg.Search.IndexName,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create search client", zap.Error(err))
	}

	pool := worker.NewPool(cfg.Worker.WorkerPoolSize)
	defer pool.StopAndWait()

	start := time.Now()
	written, err := search.NewSyncer(dataStore.Collections, index, pool, cfg.BatchSize).Run(ctx)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.Int("written", written))
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}

	logger.InfoCtx(ctx, "Search sync completed",
		zap.Int("collections", written),
		zap.Duration("duration", time.Since(start)))
}

func openStore(ctx context.Context, storeCfg config.StoreConfig, dbCfg config.DatabaseConfig, awsValues config.AWSConfig, awsCfg aws.Config, clock adapter.Clock) *store.Store {
	names := storeCfg.TableNames()

	if storeCfg.Backend == config.STORE_BACKEND_DYNAMODB {
		return store.NewDynamoStore(adapter.NewDynamoDBClient(awsCfg, awsValues.DynamoDBEndpoint), names, clock)
	}

	db, err := gorm.Open(postgres.Open(dbCfg.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", dbCfg.Host))
	}
	if err := store.ConfigureConnectionPool(db, dbCfg.MaxOpenConns, dbCfg.MaxIdleConns, dbCfg.ConnMaxLifetime, dbCfg.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	return store.NewPGStore(db, names, clock)
}
