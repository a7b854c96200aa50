package collection

import (
	"context"
	"errors"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

var (
	// ErrNotFound is returned by a Repository when the key holds no value.
	ErrNotFound     = errors.New("key not found")
	ErrPersist      = errors.New("failed to persist collection")
	ErrCardNotFound = errors.New("card not found")
	ErrInvalidCard  = errors.New("invalid card")
)

// Repository is the key-value storage the collection is persisted to.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
