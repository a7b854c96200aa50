package collection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/disgoorg/card-binder/internal/domain/tcg"
)

const DefaultKey = "tcg-collection"

type Option func(*Store)

// WithKey overrides the storage key the collection is persisted under.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithNow overrides the time source used for id assignment.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store holds the owned cards of every game in memory and rewrites the whole
// mapping to the repository on every mutation.
type Store struct {
	mu    sync.Mutex
	repo  Repository
	key   string
	now   func() time.Time
	cards Collection
}

// Load reads the persisted collection once. Absent or malformed data falls
// back to the seed collection; Load never fails.
func Load(ctx context.Context, repo Repository, opts ...Option) *Store {
	s := &Store{
		repo: repo,
		key:  DefaultKey,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cards = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) Collection {
	data, err := s.repo.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			slog.Warn("Failed to read collection, using seed",
				slog.String("type", "store"),
				slog.String("key", s.key),
				slog.Any("error", err))
		}
		return Seed()
	}

	c, err := Decode(data)
	if err != nil {
		slog.Warn("Persisted collection is malformed, using seed",
			slog.String("type", "store"),
			slog.String("key", s.key),
			slog.Any("error", err))
		return Seed()
	}

	slog.Info("Collection loaded",
		slog.String("type", "store"),
		slog.String("key", s.key),
		slog.Int("cards", c.count()))
	return c
}

// AddCard appends record under game with a freshly assigned id and persists
// the whole mapping. It returns the updated list for game. When the write
// fails the in-memory collection is left untouched.
func (s *Store) AddCard(ctx context.Context, game tcg.Game, record tcg.CardRecord) ([]tcg.CardRecord, error) {
	if !game.Valid() {
		return nil, fmt.Errorf("%w: %w: %q", ErrInvalidCard, tcg.ErrUnknownGame, game)
	}
	if record.Attributes == nil {
		record.Attributes = tcg.NewAttributes(game)
	}
	if err := record.Validate(game); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCard, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cards.Clone()
	record = record.Clone()
	record.ID = nextID(s.now(), next[game])
	next[game] = append(next[game], record)

	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.cards = next

	slog.Info("Card added",
		slog.String("type", "store"),
		slog.String("game", string(game)),
		slog.String("id", record.ID),
		slog.String("card", record.Name))
	return cloneList(next[game]), nil
}

// RemoveCard deletes the card with id from game and persists the mapping.
func (s *Store) RemoveCard(ctx context.Context, game tcg.Game, id string) ([]tcg.CardRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cards.Clone()
	cards := next[game]
	idx := -1
	for i, card := range cards {
		if card.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s %q", ErrCardNotFound, game, id)
	}
	next[game] = append(cards[:idx], cards[idx+1:]...)

	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.cards = next
	return cloneList(next[game]), nil
}

// ListCards returns the ordered cards of game; never nil.
func (s *Store) ListCards(game tcg.Game) []tcg.CardRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneList(s.cards[game])
}

// Snapshot returns a deep copy of the whole collection.
func (s *Store) Snapshot() Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cards.Clone()
}

func (s *Store) persist(ctx context.Context, c Collection) error {
	start := time.Now()
	data, err := Encode(c)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := s.repo.Put(ctx, s.key, data); err != nil {
		slog.Error("Failed to persist collection",
			slog.String("type", "store"),
			slog.String("key", s.key),
			slog.Duration("took", time.Since(start)),
			slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	slog.Debug("Collection persisted",
		slog.String("type", "store"),
		slog.String("key", s.key),
		slog.Int("bytes", len(data)),
		slog.Duration("took", time.Since(start)))
	return nil
}

func (c Collection) count() int {
	n := 0
	for _, cards := range c {
		n += len(cards)
	}
	return n
}

func cloneList(cards []tcg.CardRecord) []tcg.CardRecord {
	out := make([]tcg.CardRecord, len(cards))
	for i, card := range cards {
		out[i] = card.Clone()
	}
	return out
}
