package models

import (
	"time"

	"github.com/uptrace/bun"
)

type KVEntry struct {
	bun.BaseModel `bun:"table:kv_entries,alias:kv"`

	Key       string    `bun:"key,pk,type:text"`
	Value     []byte    `bun:"value,notnull,type:bytea"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
