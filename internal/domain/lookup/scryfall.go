package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/disgoorg/card-binder/internal/domain/tcg"
)

const DefaultScryfallURL = "https://api.scryfall.com"

type Scryfall struct {
	src httpSource
}

func NewScryfall(baseURL string, client *http.Client) *Scryfall {
	return &Scryfall{src: newHTTPSource(baseURL, client)}
}

func (p *Scryfall) Game() tcg.Game { return tcg.GameMTG }

func (p *Scryfall) Suggest(ctx context.Context, query string) ([]string, error) {
	var resp struct {
		Data []string `json:"data"`
	}
	err := p.src.getJSON(ctx, "/cards/autocomplete", url.Values{"q": {query}}, &resp)
	if errors.Is(err, ErrCardNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scryfall autocomplete: %w", err)
	}
	return resp.Data, nil
}

func (p *Scryfall) Fetch(ctx context.Context, name string) (*ExternalCard, error) {
	var card MTGCard
	if err := p.src.getJSON(ctx, "/cards/named", url.Values{"fuzzy": {name}}, &card); err != nil {
		return nil, fmt.Errorf("scryfall named %q: %w", name, err)
	}

	prints, err := p.prints(ctx, card.Name)
	if err != nil || len(prints) == 0 {
		if err != nil {
			slog.Warn("Failed to enumerate printings",
				slog.String("type", "lookup"),
				slog.String("card", card.Name),
				slog.Any("error", err),
			)
		}
		prints = []MTGCard{card}
	}

	ext := &ExternalCard{Game: tcg.GameMTG, Name: card.Name}
	for i := range prints {
		c := prints[i]
		ext.Printings = append(ext.Printings, Printing{Label: mtgLabel(c), MTG: &c})
	}
	return ext, nil
}

func (p *Scryfall) prints(ctx context.Context, name string) ([]MTGCard, error) {
	var resp struct {
		Data []MTGCard `json:"data"`
	}
	query := url.Values{
		"q":      {fmt.Sprintf("!%q", name)},
		"unique": {"prints"},
	}
	if err := p.src.getJSON(ctx, "/cards/search", query, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func mtgLabel(c MTGCard) string {
	switch {
	case c.SetName != "" && c.CollectorNumber != "":
		return fmt.Sprintf("%s #%s", c.SetName, c.CollectorNumber)
	case c.SetName != "":
		return c.SetName
	default:
		return c.Name
	}
}
