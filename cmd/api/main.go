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
	"github.com/feral-file/ff-catalog/internal/api/server"
	"github.com/feral-file/ff-catalog/internal/api/shared/executor"
	"github.com/feral-file/ff-catalog/internal/auth"
	"github.com/feral-file/ff-catalog/internal/blob"
	"github.com/feral-file/ff-catalog/internal/catalog"
	"github.com/feral-file/ff-catalog/internal/config"
	"github.com/feral-file/ff-catalog/internal/ingest"
	"github.com/feral-file/ff-catalog/internal/logger"
	"github.com/feral-file/ff-catalog/internal/pinning"
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
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Service:         "catalog-api",
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting catalog API")

	clock := adapter.NewClock()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load AWS config", zap.Error(err))
	}

	dataStore := openStore(ctx, cfg.Store, cfg.Database, cfg.AWS, awsCfg, clock)

	s3Client, presigner := adapter.NewS3Client(awsCfg, cfg.AWS.S3Endpoint)
	blobs := blob.NewS3Store(s3Client, presigner)

	var pinner pinning.Pinner
	switch cfg.Pinning.Provider {
	case config.PINNING_PROVIDER_IPFS:
		pinner = pinning.NewIPFSPinner(adapter.NewIPFSShell(cfg.Pinning.IPFSNodeURL))
	default:
		pinner = pinning.NewPinataPinner(adapter.NewHTTPClient(cfg.Pinning.HTTPTimeout), cfg.Pinning.PinataURL, cfg.Pinning.PinataJWT)
	}
	logger.InfoCtx(ctx, "Pinning provider configured", zap.String("provider", cfg.Pinning.Provider))

	index, err := search.NewElasticIndex(search.Config{
		URL:        cfg.Search.URL,
		Username:   cfg.Search.Username,
		Password:   cfg.Search.Password,
		IndexName:  cfg.Search.IndexName,
		MaxResults: cfg.Search.MaxResults,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create search client", zap.Error(err))
	}

	verifier, err := auth.NewJWTVerifier(cfg.Auth.JWTPublicKey, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create JWT verifier", zap.Error(err))
	}

	pool := worker.NewPool(cfg.Worker.WorkerPoolSize)
	defer pool.StopAndWait()

	pipeline := ingest.NewPipeline(ingest.Config{
		UploadBucket:   cfg.Assets.UploadBucket,
		MetadataBucket: cfg.Assets.MetadataBucket,
		PresignTTL:     cfg.Assets.PresignTTL,
	}, dataStore.Assets, blobs, pinner, pool)

	engine := catalog.New(dataStore, pipeline, index, pool, clock)
	exec := executor.NewExecutor(engine,
		auth.NewAPIKeys(cfg.Auth.APIKeys),
		verifier,
		auth.NewEIP712WalletVerifier(cfg.Auth.WalletDomainName))

	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}, exec)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}

func openStore(ctx context.Context, storeCfg config.StoreConfig, dbCfg config.DatabaseConfig, awsValues config.AWSConfig, awsCfg aws.Config, clock adapter.Clock) *store.Store {
	names := storeCfg.TableNames()

	if storeCfg.Backend == config.STORE_BACKEND_DYNAMODB {
		logger.InfoCtx(ctx, "Using DynamoDB store", zap.String("region", awsValues.Region))
		return store.NewDynamoStore(adapter.NewDynamoDBClient(awsCfg, awsValues.DynamoDBEndpoint), names, clock)
	}

	db, err := gorm.Open(postgres.Open(dbCfg.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", dbCfg.Host))
	}
	if err := store.ConfigureConnectionPool(db, dbCfg.MaxOpenConns, dbCfg.MaxIdleConns, dbCfg.ConnMaxLifetime, dbCfg.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", dbCfg.MaxOpenConns),
		zap.Int("max_idle_conns", dbCfg.MaxIdleConns),
	)
	return store.NewPGStore(db, names, clock)
}
