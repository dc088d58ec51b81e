package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/atlas-lingua/portal-service/internal/repositories"
	"github.com/atlas-lingua/portal-service/internal/repositories/casdoor"
)

// RepositoryConfig holds everything needed to build the data-access layer.
type RepositoryConfig struct {
	DB            *gorm.DB
	RedisClient   *redis.Client
	CasdoorConfig casdoor.CasdoorConfig
}

type portalRepository struct {
	db       *gorm.DB
	kv       repositories.KVStore
	identity repositories.IdentityProvider
}

func NewRepository(config RepositoryConfig) repositories.Repository {
	return &portalRepository{
		db:       config.DB,
		kv:       NewKVStore(config.DB),
		identity: casdoor.NewIdentityProvider(config.CasdoorConfig, config.RedisClient),
	}
}

func (r *portalRepository) KV() repositories.KVStore {
	return r.kv
}

func (r *portalRepository) Identity() repositories.IdentityProvider {
	return r.identity
}

func (r *portalRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (r *portalRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// RepositoryManager owns initialization (schema migration) and shutdown of the
// data-access layer.
type RepositoryManager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

func NewRepositoryManager(config RepositoryConfig) *RepositoryManager {
	return &RepositoryManager{config: config}
}

func (m *RepositoryManager) Initialize() error {
	if err := Migrate(m.config.DB); err != nil {
		return fmt.Errorf("migrate kv schema: %w", err)
	}
	m.repo = NewRepository(m.config)
	return nil
}

func (m *RepositoryManager) GetRepository() repositories.Repository {
	return m.repo
}

func (m *RepositoryManager) Shutdown(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}
	return m.repo.Close()
}
