package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/atlas-lingua/portal-service/internal/repositories"
)

// KVRecord is the single relational table emulating a schemaless map. Values
// are opaque JSON; key conventions (prefixes) are the only schema.
type KVRecord struct {
	Key       string         `gorm:"column:key;primaryKey;size:512"`
	Value     datatypes.JSON `gorm:"column:value;type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (KVRecord) TableName() string {
	return "kv_records"
}

type kvStore struct {
	db *gorm.DB
}

func NewKVStore(db *gorm.DB) repositories.KVStore {
	return &kvStore{db: db}
}

// Migrate creates the kv_records table when it does not exist.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&KVRecord{})
}

func (s *kvStore) Get(ctx context.Context, key string, dest any) error {
	var record KVRecord
	if err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repositories.ErrKeyNotFound
		}
		return fmt.Errorf("kv get: %w", err)
	}

	if err := json.Unmarshal(record.Value, dest); err != nil {
		return fmt.Errorf("kv get: decode value: %w", err)
	}
	return nil
}

func (s *kvStore) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set: encode value: %w", err)
	}

	record := KVRecord{Key: key, Value: datatypes.JSON(data)}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("kv set: %w", err)
	}
	return nil
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&KVRecord{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("kv delete: %w", err)
	}
	return nil
}

func (s *kvStore) GetByPrefix(ctx context.Context, prefix string) ([]json.RawMessage, error) {
	var records []KVRecord
	pattern := escapeLike(prefix) + "%"
	err := s.db.WithContext(ctx).
		Where("key LIKE ?", pattern).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("kv scan %q: %w", prefix, err)
	}

	values := make([]json.RawMessage, 0, len(records))
	for _, r := range records {
		values = append(values, json.RawMessage(r.Value))
	}
	return values, nil
}

// escapeLike escapes LIKE metacharacters so a prefix containing "%" or "_"
// matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
