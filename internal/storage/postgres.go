package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlobRecord is one key-value row.
type BlobRecord struct {
	Key       string         `gorm:"primaryKey;size:100"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (BlobRecord) TableName() string {
	return "blobs"
}

type PostgresStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewPostgresStore migrates the blobs table and returns the store.
func NewPostgresStore(db *gorm.DB, logger *slog.Logger) (*PostgresStore, error) {
	if err := db.AutoMigrate(&BlobRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate blobs table: %w", err)
	}
	return &PostgresStore{db: db, logger: logger}, nil
}

func (p *PostgresStore) Load(ctx context.Context, key string) (json.RawMessage, error) {
	var rec BlobRecord
	if err := p.db.WithContext(ctx).First(&rec, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmptyList, nil
		}
		return nil, fmt.Errorf("failed to load blob %q: %w", key, err)
	}
	return sanitize(rec.Value, key, p.logger), nil
}

func (p *PostgresStore) Save(ctx context.Context, key string, value json.RawMessage) error {
	rec := BlobRecord{
		Key:       key,
		Value:     datatypes.JSON(value),
		UpdatedAt: time.Now(),
	}
	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to save blob %q: %w", key, err)
	}
	return nil
}

func (p *PostgresStore) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
