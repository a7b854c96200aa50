package lookup

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/disgoorg/card-binder/internal/domain/tcg"
)

const DefaultPokemonTCGURL = "https://api.pokemontcg.io"

type PokemonTCG struct {
	src httpSource
}

func NewPokemonTCG(baseURL string, client *http.Client) *PokemonTCG {
	return &PokemonTCG{src: newHTTPSource(baseURL, client)}
}

func (p *PokemonTCG) Game() tcg.Game { return tcg.GamePokemon }

func (p *PokemonTCG) search(ctx context.Context, q string) ([]PokemonCard, error) {
	var resp struct {
		Data []PokemonCard `json:"data"`
	}
	if err := p.src.getJSON(ctx, "/v2/cards", url.Values{"q": {q}}, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (p *PokemonTCG) Suggest(ctx context.Context, query string) ([]string, error) {
	cards, err := p.search(ctx, "name:"+query+"*")
	if errors.Is(err, ErrCardNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pokemontcg search: %w", err)
	}
	names := make([]string, 0, len(cards))
	for _, c := range cards {
		names = append(names, c.Name)
	}
	return names, nil
}

// Fetch treats every card sharing the exact name as a printing; the first
// one is canonical.
func (p *PokemonTCG) Fetch(ctx context.Context, name string) (*ExternalCard, error) {
	cards, err := p.search(ctx, fmt.Sprintf("name:%q", name))
	if err != nil {
		return nil, fmt.Errorf("pokemontcg card %q: %w", name, err)
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("pokemontcg card %q: %w", name, ErrCardNotFound)
	}

	ext := &ExternalCard{Game: tcg.GamePokemon, Name: cards[0].Name}
	for i := range cards {
		c := cards[i]
		label := c.Set.Name
		if label == "" {
			label = c.ID
		}
		ext.Printings = append(ext.Printings, Printing{Label: label, Pokemon: &c})
	}
	return ext, nil
}
