package collection

import (
	"encoding/json"
	"fmt"

	"github.com/disgoorg/card-binder/internal/domain/tcg"
)

// Collection maps every supported game to its ordered list of owned cards.
type Collection map[tcg.Game][]tcg.CardRecord

// NewCollection returns a collection with an empty list for every game.
func NewCollection() Collection {
	c := make(Collection, len(tcg.Games))
	for _, g := range tcg.Games {
		c[g] = []tcg.CardRecord{}
	}
	return c
}

// Clone deep copies c, filling missing games with empty lists.
func (c Collection) Clone() Collection {
	out := NewCollection()
	for g, cards := range c {
		list := make([]tcg.CardRecord, len(cards))
		for i, card := range cards {
			list[i] = card.Clone()
		}
		out[g] = list
	}
	return out
}

// Encode serializes the whole mapping in the persisted layout.
func Encode(c Collection) ([]byte, error) {
	out := make(map[string][]tcg.CardRecord, len(tcg.Games))
	for _, g := range tcg.Games {
		cards := c[g]
		if cards == nil {
			cards = []tcg.CardRecord{}
		}
		out[string(g)] = cards
	}
	return json.Marshal(out)
}

// Decode parses the persisted layout. Unknown games, invalid records and
// duplicate ids within a game are reported as errors.
func Decode(data []byte) (Collection, error) {
	var raw map[string][]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode collection: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("failed to decode collection: not an object")
	}

	c := NewCollection()
	for key, items := range raw {
		game := tcg.Game(key)
		if !game.Valid() {
			return nil, fmt.Errorf("%w: %q", tcg.ErrUnknownGame, key)
		}

		seen := make(map[string]bool, len(items))
		cards := make([]tcg.CardRecord, 0, len(items))
		for i, item := range items {
			card, err := tcg.DecodeRecord(game, item)
			if err != nil {
				return nil, fmt.Errorf("%s card %d: %w", game, i, err)
			}
			if card.ID == "" || seen[card.ID] {
				return nil, fmt.Errorf("%s card %d: missing or duplicate id %q", game, i, card.ID)
			}
			if err := card.Validate(game); err != nil {
				return nil, fmt.Errorf("%s card %d: %w", game, i, err)
			}
			seen[card.ID] = true
			cards = append(cards, card)
		}
		c[game] = cards
	}
	return c, nil
}
