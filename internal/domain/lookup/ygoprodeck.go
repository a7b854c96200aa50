package lookup

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/disgoorg/card-binder/internal/domain/tcg"
)

const DefaultYGOProDeckURL = "https://db.ygoprodeck.com"

type YGOProDeck struct {
	src httpSource
}

func NewYGOProDeck(baseURL string, client *http.Client) *YGOProDeck {
	return &YGOProDeck{src: newHTTPSource(baseURL, client)}
}

func (p *YGOProDeck) Game() tcg.Game { return tcg.GameYuGiOh }

func (p *YGOProDeck) cardinfo(ctx context.Context, query url.Values) ([]YuGiOhCard, error) {
	var resp struct {
		Data []YuGiOhCard `json:"data"`
	}
	if err := p.src.getJSON(ctx, "/api/v7/cardinfo.php", query, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (p *YGOProDeck) Suggest(ctx context.Context, query string) ([]string, error) {
	cards, err := p.cardinfo(ctx, url.Values{"fname": {query}})
	if errors.Is(err, ErrCardNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ygoprodeck search: %w", err)
	}

	seen := make(map[string]struct{}, len(cards))
	names := make([]string, 0, len(cards))
	for _, c := range cards {
		if _, ok := seen[c.Name]; ok {
			continue
		}
		seen[c.Name] = struct{}{}
		names = append(names, c.Name)
	}
	return names, nil
}

func (p *YGOProDeck) Fetch(ctx context.Context, name string) (*ExternalCard, error) {
	cards, err := p.cardinfo(ctx, url.Values{"name": {name}})
	if err != nil {
		return nil, fmt.Errorf("ygoprodeck card %q: %w", name, err)
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("ygoprodeck card %q: %w", name, ErrCardNotFound)
	}

	card := cards[0]
	return &ExternalCard{Game: tcg.GameYuGiOh, Name: card.Name, Printings: yugiohPrintings(card)}, nil
}

// yugiohPrintings pairs card_sets and card_images by index. Sets without a
// matching image reuse the first image.
func yugiohPrintings(card YuGiOhCard) []Printing {
	n := max(len(card.CardSets), len(card.CardImages), 1)
	printings := make([]Printing, 0, n)
	for i := 0; i < n; i++ {
		p := &YuGiOhPrinting{Card: card}
		label := card.Name
		if i < len(card.CardSets) {
			set := card.CardSets[i]
			p.Set = &set
			label = fmt.Sprintf("%s (%s)", set.SetName, set.SetCode)
		}
		switch {
		case i < len(card.CardImages):
			img := card.CardImages[i]
			p.Image = &img
		case len(card.CardImages) > 0:
			img := card.CardImages[0]
			p.Image = &img
		}
		printings = append(printings, Printing{Label: label, YuGiOh: p})
	}
	return printings
}
