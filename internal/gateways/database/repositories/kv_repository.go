package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/disgoorg/card-binder/internal/domain/collection"
	"github.com/disgoorg/card-binder/internal/gateways/database/models"
	"github.com/disgoorg/card-binder/internal/logger"
)

const defaultTimeout = 10 * time.Second

// KVRepository implements collection.Repository on the kv_entries table.
type KVRepository struct {
	db *bun.DB
}

func NewKVRepository(db *bun.DB) *KVRepository {
	return &KVRepository{db: db}
}

func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	op := logger.NewStoreOp("select", key)
	entry := new(models.KVEntry)
	err := r.db.NewSelect().
		Model(entry).
		Where("key = ?", key).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		op.Log(nil, 0)
		return nil, collection.ErrNotFound
	}
	op.Log(err, len(entry.Value))
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return entry.Value, nil
}

func (r *KVRepository) Put(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	op := logger.NewStoreOp("upsert", key)
	entry := &models.KVEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	_, err := r.db.NewInsert().
		Model(entry).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	op.Log(err, len(value))
	if err != nil {
		return fmt.Errorf("failed to upsert %s: %w", key, err)
	}
	return nil
}
