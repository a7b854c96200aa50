package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/disgoorg/card-binder/internal/domain/collection"
)

func TestFile_GetMissing(t *testing.T) {
	f := NewFile(t.TempDir())
	if _, err := f.Get(context.Background(), "tcg-collection"); !errors.Is(err, collection.ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestFile_PutGet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	f := NewFile(dir)
	ctx := context.Background()

	if err := f.Put(ctx, "tcg-collection", []byte(`{"MTG":[]}`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := f.Put(ctx, "tcg-collection", []byte(`{"Pokemon":[]}`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := f.Get(ctx, "tcg-collection")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != `{"Pokemon":[]}` {
		t.Errorf("Get() = %s", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want 1", len(entries))
	}
}

func TestFile_KeyIsSanitized(t *testing.T) {
	dir := t.TempDir()
	f := NewFile(dir)
	if err := f.Put(context.Background(), "../escape", []byte("x")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".._escape.json")); err != nil {
		t.Errorf("expected sanitized file inside dir: %v", err)
	}
}

func TestFile_StoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := NewFile(t.TempDir())

	store := collection.Load(ctx, f)
	if _, err := store.RemoveCard(ctx, "MTG", "1"); err != nil {
		t.Fatalf("RemoveCard() error = %v", err)
	}

	reloaded := collection.Load(ctx, f)
	if got := len(reloaded.ListCards("MTG")); got != 1 {
		t.Errorf("reloaded MTG has %d cards, want 1", got)
	}
}
