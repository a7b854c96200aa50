package lookup

//go:generate mockgen -source=provider.go -destination=mock/provider.go -package=mock

import (
	"context"
	"errors"

	"github.com/disgoorg/card-binder/internal/domain/tcg"
)

var (
	ErrNoEndpoint      = errors.New("card lookup is not available for this game")
	ErrCardNotFound    = errors.New("card not found")
	ErrNoPrintings     = errors.New("card has no printings")
	ErrPrintingRange   = errors.New("printing index out of range")
	ErrUnexpectedReply = errors.New("unexpected response from card database")
)

// Provider talks to one external card database.
type Provider interface {
	Game() tcg.Game
	// Suggest returns card names matching the partial query.
	Suggest(ctx context.Context, query string) ([]string, error)
	// Fetch returns the canonical record for name with every known printing.
	Fetch(ctx context.Context, name string) (*ExternalCard, error)
}

// ExternalCard is a looked up card. It is shared through the cache and must
// not be modified.
type ExternalCard struct {
	Game      tcg.Game   `json:"game"`
	Name      string     `json:"name"`
	Printings []Printing `json:"printings"`
}

// Printing is one edition of a card. Exactly one of the raw fields is set,
// matching the game of the owning card.
type Printing struct {
	Label   string          `json:"label"`
	MTG     *MTGCard        `json:"mtg,omitempty"`
	Pokemon *PokemonCard    `json:"pokemon,omitempty"`
	YuGiOh  *YuGiOhPrinting `json:"yugioh,omitempty"`
}

// Prefill is the subset of a printing that populates the intake form.
type Prefill struct {
	Name   string            `json:"name"`
	Rarity string            `json:"rarity,omitempty"`
	Image  string            `json:"image,omitempty"`
	Values map[string]string `json:"values,omitempty"`
}
