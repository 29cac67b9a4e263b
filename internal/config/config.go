package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-catalog/internal/store"
)

const (
	STORE_BACKEND_POSTGRES = "postgres"
	STORE_BACKEND_DYNAMODB = "dynamodb"

	PINNING_PROVIDER_PINATA = "pinata"
	PINNING_PROVIDER_IPFS   = "ipfs"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// TablesConfig holds physical table names. Empty names use the defaults.
type TablesConfig struct {
	Collections     string `mapstructure:"collections"`
	NFTs            string `mapstructure:"nfts"`
	Assets          string `mapstructure:"assets"`
	CollectionLikes string `mapstructure:"collection_likes"`
	NFTLikes        string `mapstructure:"nft_likes"`
	Wallets         string `mapstructure:"wallets"`
	Users           string `mapstructure:"users"`
}

// StoreConfig selects the persistence backend
type StoreConfig struct {
	Backend string       `mapstructure:"backend"` // postgres or dynamodb
	Tables  TablesConfig `mapstructure:"tables"`
}

// AWSConfig holds AWS client configuration. Endpoints are only set for
// local emulators.
type AWSConfig struct {
	Region           string `mapstructure:"region"`
	DynamoDBEndpoint string `mapstructure:"dynamodb_endpoint"`
	S3Endpoint       string `mapstructure:"s3_endpoint"`
}

// AssetsConfig holds asset storage configuration
type AssetsConfig struct {
	UploadBucket   string        `mapstructure:"upload_bucket"`
	MetadataBucket string        `mapstructure:"metadata_bucket"`
	PresignTTL     time.Duration `mapstructure:"presign_ttl"`
}

// PinningConfig selects and configures the pinning service
type PinningConfig struct {
	Provider    string        `mapstructure:"provider"` // pinata or ipfs
	PinataURL   string        `mapstructure:"pinata_url"`
	PinataJWT   string        `mapstructure:"pinata_jwt"`
	IPFSNodeURL string        `mapstructure:"ipfs_node_url"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

// SearchConfig holds Elasticsearch configuration
type SearchConfig struct {
	URL        string `mapstructure:"url"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	IndexName  string `mapstructure:"index_name"`
	MaxResults int    `mapstructure:"max_results"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey     string   `mapstructure:"jwt_public_key"`
	APIKeys          []string `mapstructure:"api_keys"`
	WalletDomainName string   `mapstructure:"wallet_domain_name"`
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	WorkerPoolSize int `mapstructure:"pool_size"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
	Store      StoreConfig    `mapstructure:"store"`
	AWS        AWSConfig      `mapstructure:"aws"`
	Assets     AssetsConfig   `mapstructure:"assets"`
	Pinning    PinningConfig  `mapstructure:"pinning"`
	Search     SearchConfig   `mapstructure:"search"`
	Auth       AuthConfig     `mapstructure:"auth"`
	Worker     WorkerConfig   `mapstructure:"worker"`
}

// SearchSyncConfig holds configuration for the search index synchronization job
type SearchSyncConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Store      StoreConfig    `mapstructure:"store"`
	AWS        AWSConfig      `mapstructure:"aws"`
	Search     SearchConfig   `mapstructure:"search"`
	Worker     WorkerConfig   `mapstructure:"worker"`
	BatchSize  int            `mapstructure:"batch_size"`
}

func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("assets.presign_ttl", "15m")
	v.SetDefault("pinning.provider", PINNING_PROVIDER_PINATA)
	v.SetDefault("pinning.pinata_url", "https://api.pinata.cloud")
	v.SetDefault("pinning.http_timeout", "60s")
	setCommonDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Store.validate(config.Database); err != nil {
		return nil, err
	}
	switch config.Pinning.Provider {
	case PINNING_PROVIDER_PINATA:
		if config.Pinning.PinataJWT == "" {
			return nil, errors.New("pinning.pinata_jwt is required for the pinata provider")
		}
	case PINNING_PROVIDER_IPFS:
		if config.Pinning.IPFSNodeURL == "" {
			return nil, errors.New("pinning.ipfs_node_url is required for the ipfs provider")
		}
	default:
		return nil, fmt.Errorf("unsupported pinning provider: %q", config.Pinning.Provider)
	}

	return &config, nil
}

func LoadSearchSyncConfig(configFile string, envPath string) (*SearchSyncConfig, error) {
	v := configureViper("search-sync", configFile, envPath)

	v.SetDefault("batch_size", 200)
	setCommonDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config SearchSyncConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Store.validate(config.Database); err != nil {
		return nil, err
	}
	if config.Search.URL == "" {
		return nil, errors.New("search.url is required")
	}

	return &config, nil
}

func setCommonDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("store.backend", STORE_BACKEND_POSTGRES)
	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("search.index_name", "collection")
	v.SetDefault("search.max_results", 10)
	v.SetDefault("worker.pool_size", 20)
}

// readConfig reads the config file. A missing file is not an error since
// every key can come from the environment.
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

func (c StoreConfig) validate(db DatabaseConfig) error {
	switch c.Backend {
	case STORE_BACKEND_POSTGRES:
		if db.Host == "" {
			return errors.New("database.host is required")
		}
		if db.DBName == "" {
			return errors.New("database.dbname is required")
		}
	case STORE_BACKEND_DYNAMODB:
	default:
		return fmt.Errorf("unsupported store backend: %q", c.Backend)
	}
	return nil
}

// TableNames returns the configured table names, defaulted where empty
func (c StoreConfig) TableNames() store.TableNames {
	return store.TableNames{
		Collections:     c.Tables.Collections,
		NFTs:            c.Tables.NFTs,
		Assets:          c.Tables.Assets,
		CollectionLikes: c.Tables.CollectionLikes,
		NFTLikes:        c.Tables.NFTLikes,
		Wallets:         c.Tables.Wallets,
		Users:           c.Tables.Users,
	}.WithDefaults()
}

func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Store
		"store.backend",
		"store.tables.collections",
		"store.tables.nfts",
		"store.tables.assets",
		"store.tables.collection_likes",
		"store.tables.nft_likes",
		"store.tables.wallets",
		"store.tables.users",
		// AWS
		"aws.region",
		"aws.dynamodb_endpoint",
		"aws.s3_endpoint",
		// Assets
		"assets.upload_bucket",
		"assets.metadata_bucket",
		"assets.presign_ttl",
		// Pinning
		"pinning.provider",
		"pinning.pinata_url",
		"pinning.pinata_jwt",
		"pinning.ipfs_node_url",
		"pinning.http_timeout",
		// Search
		"search.url",
		"search.username",
		"search.password",
		"search.index_name",
		"search.max_results",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		"auth.wallet_domain_name",
		// Worker
		"worker.pool_size",
		"batch_size",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for n := 0; n < 5; n++ {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
