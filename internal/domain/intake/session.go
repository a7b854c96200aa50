package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/disgoorg/card-binder/internal/domain/collection"
	"github.com/disgoorg/card-binder/internal/domain/lookup"
	"github.com/disgoorg/card-binder/internal/domain/tcg"
	"github.com/disgoorg/card-binder/internal/notify"
)

// Session is one add-card screen: the form, its name autocomplete and the
// current lookup selection.
type Session struct {
	ID string

	mu        sync.Mutex
	form      *Form
	auto      *lookup.Autocomplete
	selection *lookup.Selection
	store     CardAdder
	notifier  notify.Notifier
}

type PrintingView struct {
	Index    int    `json:"index"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type SessionView struct {
	ID        string         `json:"id"`
	Form      View           `json:"form"`
	Lookup    lookup.State   `json:"lookup"`
	Printings []PrintingView `json:"printings"`
}

func NewSession(id string, game tcg.Game, store CardAdder, lk lookup.Lookup, notifier notify.Notifier, opts ...lookup.AutocompleteOption) (*Session, error) {
	form, err := NewForm(game)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:       id,
		form:     form,
		auto:     lookup.NewAutocomplete(lk, game, opts...),
		store:    store,
		notifier: notifier,
	}, nil
}

func (s *Session) SelectGame(game tcg.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.form.SelectGame(game); err != nil {
		return err
	}
	s.auto.SetGame(game)
	s.selection = nil
	return nil
}

// TypeName updates the card name and feeds the autocomplete.
func (s *Session) TypeName(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.SetName(value)
	s.selection = nil
	s.auto.Type(value)
}

// Update runs fn against the form under the session lock.
func (s *Session) Update(fn func(f *Form) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.form)
}

// SelectSuggestion fetches the chosen card and pre-fills the form from its
// first printing. A failed lookup leaves the form usable.
func (s *Session) SelectSuggestion(ctx context.Context, name string) (lookup.Prefill, error) {
	s.mu.Lock()
	s.form.SetName(name)
	game := s.form.Game()
	s.mu.Unlock()

	sel, err := s.auto.Select(ctx, name)
	if err != nil {
		if !errors.Is(err, lookup.ErrNoEndpoint) {
			notify.Send(ctx, s.notifier, notify.Error("Card lookup failed", fmt.Sprintf("Could not load details for %s", name)))
		}
		return lookup.Prefill{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.form.Game() != game {
		return lookup.Prefill{}, fmt.Errorf("game changed to %s during lookup", s.form.Game())
	}
	s.selection = sel
	pre := sel.Prefill()
	s.form.ApplyPrefill(pre)
	return pre, nil
}

// ChoosePrinting re-applies the mapping for another printing of the selected card.
func (s *Session) ChoosePrinting(i int) (lookup.Prefill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selection == nil {
		return lookup.Prefill{}, ErrNoSelection
	}
	pre, err := s.selection.Choose(i)
	if err != nil {
		return lookup.Prefill{}, err
	}
	s.form.ApplyPrefill(pre)
	return pre, nil
}

// Submit adds the card to the collection and returns the stored record.
func (s *Session) Submit(ctx context.Context) (tcg.CardRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game := s.form.Game()
	cards, err := s.form.Submit(ctx, s.store)
	if err != nil {
		var verr ValidationErrors
		switch {
		case errors.As(err, &verr):
			notify.Send(ctx, s.notifier, notify.Error("Missing information", verr.Error()))
		case errors.Is(err, collection.ErrPersist):
			notify.Send(ctx, s.notifier, notify.Error("Failed to add card", "Your collection could not be saved. Please try again."))
		default:
			notify.Send(ctx, s.notifier, notify.Error("Failed to add card", err.Error()))
		}
		return tcg.CardRecord{}, err
	}

	s.selection = nil
	s.auto.SetGame(game)
	rec := cards[len(cards)-1]

	slog.Info("Card added",
		slog.String("type", "store"),
		slog.String("game", game.String()),
		slog.String("card_id", rec.ID),
	)
	notify.Send(ctx, s.notifier, notify.Success("Card Added", fmt.Sprintf("%s has been added to your collection", rec.Name)))
	return rec, nil
}

// Close stops the session's pending lookups.
func (s *Session) Close() {
	s.auto.Stop()
}

func (s *Session) Lookup() lookup.State {
	return s.auto.State()
}

func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := SessionView{
		ID:        s.ID,
		Form:      s.form.View(),
		Lookup:    s.auto.State(),
		Printings: []PrintingView{},
	}
	if s.selection != nil {
		for i, p := range s.selection.Card.Printings {
			v.Printings = append(v.Printings, PrintingView{Index: i, Label: p.Label, Selected: i == s.selection.Index()})
		}
	}
	return v
}
