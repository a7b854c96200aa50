package tcg

import (
	"encoding/json"
	"fmt"
)

// Attributes is the game-specific part of a card record. Each game has exactly
// one implementation; the set is closed.
type Attributes interface {
	Game() Game
	isAttributes()
}

type MTGAttributes struct {
	ColorIdentity string `json:"colorIdentity,omitempty"`
	CardType      string `json:"cardType,omitempty"`
	ManaCost      string `json:"manaCost,omitempty"`
}

type PokemonAttributes struct {
	PokemonType string `json:"pokemonType,omitempty"`
	HP          string `json:"hp,omitempty"`
	Stage       string `json:"stage,omitempty"`
}

type YuGiOhAttributes struct {
	CardType    string `json:"cardType,omitempty"`
	MonsterType string `json:"monsterType,omitempty"`
	Attribute   string `json:"attribute,omitempty"`
	Level       string `json:"level,omitempty"`
}

type OnePieceAttributes struct {
	Color    string `json:"color,omitempty"`
	CardType string `json:"cardType,omitempty"`
	Cost     string `json:"cost,omitempty"`
}

type FleshAndBloodAttributes struct {
	Class      string `json:"class,omitempty"`
	CardType   string `json:"cardType,omitempty"`
	PitchValue string `json:"pitValue,omitempty"`
}

func (*MTGAttributes) Game() Game           { return GameMTG }
func (*PokemonAttributes) Game() Game       { return GamePokemon }
func (*YuGiOhAttributes) Game() Game        { return GameYuGiOh }
func (*OnePieceAttributes) Game() Game      { return GameOnePiece }
func (*FleshAndBloodAttributes) Game() Game { return GameFleshAndBlood }

func (*MTGAttributes) isAttributes()           {}
func (*PokemonAttributes) isAttributes()       {}
func (*YuGiOhAttributes) isAttributes()        {}
func (*OnePieceAttributes) isAttributes()      {}
func (*FleshAndBloodAttributes) isAttributes() {}

// NewAttributes returns the empty attribute record for game, or nil for an unknown game.
func NewAttributes(game Game) Attributes {
	switch game {
	case GameMTG:
		return &MTGAttributes{}
	case GamePokemon:
		return &PokemonAttributes{}
	case GameYuGiOh:
		return &YuGiOhAttributes{}
	case GameOnePiece:
		return &OnePieceAttributes{}
	case GameFleshAndBlood:
		return &FleshAndBloodAttributes{}
	}
	return nil
}

// BuildAttributes validates values against the field table of game and returns
// the typed record. Empty values are treated as unset.
func BuildAttributes(game Game, values map[string]string) (Attributes, error) {
	attrs := NewAttributes(game)
	if attrs == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, game)
	}

	clean := make(map[string]string, len(values))
	for name, value := range values {
		field, ok := LookupField(game, name)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no field %q", ErrUnknownField, game, name)
		}
		if !field.Allows(value) {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidOption, name, value)
		}
		if value != "" {
			clean[name] = value
		}
	}

	raw, err := json.Marshal(clean)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, attrs); err != nil {
		return nil, fmt.Errorf("failed to build %s attributes: %w", game, err)
	}
	return attrs, nil
}

// AttributeValues flattens attrs into field name -> value, omitting empty values.
func AttributeValues(attrs Attributes) map[string]string {
	out := map[string]string{}
	if attrs == nil {
		return out
	}
	raw, err := json.Marshal(attrs)
	if err != nil {
		return out
	}
	_ = json.Unmarshal(raw, &out)
	return out
}
