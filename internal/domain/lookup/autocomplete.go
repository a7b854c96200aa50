package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/disgoorg/card-binder/internal/clock"
	"github.com/disgoorg/card-binder/internal/domain/tcg"
)

const (
	MinQueryLength = 3
	DebounceDelay  = 300 * time.Millisecond
)

// Lookup is the part of Client the autocomplete needs.
type Lookup interface {
	Supports(game tcg.Game) bool
	Suggest(ctx context.Context, game tcg.Game, query string) ([]string, error)
	Fetch(ctx context.Context, game tcg.Game, name string) (*ExternalCard, error)
}

// State is a point-in-time view of an Autocomplete.
type State struct {
	Game        tcg.Game `json:"game"`
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
	Notice      string   `json:"notice,omitempty"`
	Loading     bool     `json:"loading"`
}

// Autocomplete debounces name queries for one form. Only the response of the
// newest query is applied.
type Autocomplete struct {
	ctx    context.Context
	lookup Lookup
	clock  clock.Clock

	mu          sync.Mutex
	game        tcg.Game
	query       string
	suggestions []string
	notice      string
	loading     bool
	generation  uint64
	timer       clock.Timer
	onChange    func(State)
}

type AutocompleteOption func(*Autocomplete)

func WithClock(c clock.Clock) AutocompleteOption {
	return func(a *Autocomplete) { a.clock = c }
}

// WithContext sets the context queries run under.
func WithContext(ctx context.Context) AutocompleteOption {
	return func(a *Autocomplete) { a.ctx = ctx }
}

// OnChange registers a callback invoked after suggestions change.
func OnChange(f func(State)) AutocompleteOption {
	return func(a *Autocomplete) { a.onChange = f }
}

func NewAutocomplete(lookup Lookup, game tcg.Game, opts ...AutocompleteOption) *Autocomplete {
	a := &Autocomplete{
		ctx:    context.Background(),
		lookup: lookup,
		clock:  clock.Real{},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.setGame(game)
	return a
}

func Notice(game tcg.Game) string {
	return fmt.Sprintf("Card lookup is not available for %s", game)
}

// SetGame switches games and clears the query and suggestions.
func (a *Autocomplete) SetGame(game tcg.Game) {
	a.mu.Lock()
	a.setGame(game)
	a.query = ""
	st := a.state()
	a.mu.Unlock()
	a.notify(st)
}

func (a *Autocomplete) setGame(game tcg.Game) {
	a.cancel()
	a.game = game
	a.suggestions = nil
	a.loading = false
	a.notice = ""
	if !a.lookup.Supports(game) {
		a.notice = Notice(game)
	}
}

// cancel stops the pending query and invalidates any in flight. Callers hold mu.
func (a *Autocomplete) cancel() {
	a.generation++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// Stop cancels any pending or in-flight query.
func (a *Autocomplete) Stop() {
	a.mu.Lock()
	a.cancel()
	a.loading = false
	a.mu.Unlock()
}

// Type records the current text of the name input.
func (a *Autocomplete) Type(value string) {
	a.mu.Lock()
	a.cancel()
	a.query = value

	query := strings.TrimSpace(value)
	switch {
	case !a.lookup.Supports(a.game):
		a.suggestions = nil
		a.loading = false
		a.notice = Notice(a.game)
	case utf8.RuneCountInString(query) < MinQueryLength:
		a.suggestions = nil
		a.loading = false
	default:
		gen, game := a.generation, a.game
		a.timer = a.clock.AfterFunc(DebounceDelay, func() {
			a.run(gen, game, query)
		})
	}
	st := a.state()
	a.mu.Unlock()
	a.notify(st)
}

func (a *Autocomplete) run(gen uint64, game tcg.Game, query string) {
	a.mu.Lock()
	if gen != a.generation {
		a.mu.Unlock()
		return
	}
	a.timer = nil
	a.loading = true
	a.mu.Unlock()

	suggestions, err := a.lookup.Suggest(a.ctx, game, query)

	a.mu.Lock()
	if gen != a.generation {
		a.mu.Unlock()
		slog.Debug("Discarded stale suggestions",
			slog.String("type", "lookup"),
			slog.String("query", query),
		)
		return
	}
	a.loading = false
	if err != nil {
		slog.Error("Failed to fetch suggestions",
			slog.String("type", "lookup"),
			slog.String("game", game.String()),
			slog.String("query", query),
			slog.Any("error", err),
		)
		a.suggestions = nil
	} else {
		a.suggestions = suggestions
	}
	st := a.state()
	a.mu.Unlock()
	a.notify(st)
}

// Select fetches the full record for a chosen suggestion, bypassing the
// debounce. The first printing is selected.
func (a *Autocomplete) Select(ctx context.Context, name string) (*Selection, error) {
	a.mu.Lock()
	a.cancel()
	a.query = name
	a.suggestions = nil
	a.loading = false
	game := a.game
	st := a.state()
	a.mu.Unlock()
	a.notify(st)

	if !a.lookup.Supports(game) {
		return nil, ErrNoEndpoint
	}

	card, err := a.lookup.Fetch(ctx, game, name)
	if err != nil {
		slog.Error("Failed to fetch card",
			slog.String("type", "lookup"),
			slog.String("game", game.String()),
			slog.String("card", name),
			slog.Any("error", err),
		)
		return nil, err
	}
	return NewSelection(card)
}

func (a *Autocomplete) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state()
}

func (a *Autocomplete) state() State {
	return State{
		Game:        a.game,
		Query:       a.query,
		Suggestions: append([]string{}, a.suggestions...),
		Notice:      a.notice,
		Loading:     a.loading,
	}
}

func (a *Autocomplete) notify(st State) {
	if a.onChange != nil {
		a.onChange(st)
	}
}

// Selection is a looked up card with one printing chosen.
type Selection struct {
	Card    *ExternalCard
	current int
}

func NewSelection(card *ExternalCard) (*Selection, error) {
	if card == nil || len(card.Printings) == 0 {
		return nil, ErrNoPrintings
	}
	return &Selection{Card: card}, nil
}

func (s *Selection) Index() int { return s.current }

func (s *Selection) Current() Printing { return s.Card.Printings[s.current] }

// Prefill maps the current printing for the card's game.
func (s *Selection) Prefill() Prefill {
	return FilterPrefill(s.Card.Game, MapPrinting(s.Current()))
}

// Choose switches to printing i without any network access.
func (s *Selection) Choose(i int) (Prefill, error) {
	if i < 0 || i >= len(s.Card.Printings) {
		return Prefill{}, fmt.Errorf("%w: %d of %d", ErrPrintingRange, i, len(s.Card.Printings))
	}
	s.current = i
	return s.Prefill(), nil
}
