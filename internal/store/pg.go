package store

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/feral-file/ff-catalog/internal/adapter"
	"github.com/feral-file/ff-catalog/internal/store/schema"
)

type gormFactory struct {
	db *gorm.DB
}

func (f gormFactory) collections(spec TableSpec) Table[schema.Collection] {
	return NewGormTable[schema.Collection](f.db.Table(spec.Name), spec)
}

func (f gormFactory) nfts(spec TableSpec) Table[schema.NFT] {
	return NewGormTable[schema.NFT](f.db.Table(spec.Name), spec)
}

func (f gormFactory) assets(spec TableSpec) Table[schema.Asset] {
	return NewGormTable[schema.Asset](f.db.Table(spec.Name), spec)
}

func (f gormFactory) collectionLikes(spec TableSpec) Table[schema.CollectionLike] {
	return NewGormTable[schema.CollectionLike](f.db.Table(spec.Name), spec)
}

func (f gormFactory) nftLikes(spec TableSpec) Table[schema.NFTLike] {
	return NewGormTable[schema.NFTLike](f.db.Table(spec.Name), spec)
}

func (f gormFactory) wallets(spec TableSpec) Table[schema.Wallet] {
	return NewGormTable[schema.Wallet](f.db.Table(spec.Name), spec)
}

func (f gormFactory) users(spec TableSpec) Table[schema.User] {
	return NewGormTable[schema.User](f.db.Table(spec.Name), spec)
}

// NewPGStore creates a store backed by PostgreSQL
func NewPGStore(db *gorm.DB, names TableNames, clock adapter.Clock) *Store {
	return newStore(gormFactory{db: db}, names, clock)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// If any of the pool settings are 0, defaults are used:
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and keeps MaxIdleConns within MaxOpenConns
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns <= 0 {
		maxOpenConns = 20
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}
