package tcg

import (
	"fmt"
	"strings"
)

type Game string

const (
	GameMTG           Game = "MTG"
	GamePokemon       Game = "Pokemon"
	GameYuGiOh        Game = "Yu-Gi-Oh"
	GameOnePiece      Game = "One Piece"
	GameFleshAndBlood Game = "Flesh and Blood"
)

// Games lists the supported games in display order.
var Games = []Game{GameMTG, GamePokemon, GameYuGiOh, GameOnePiece, GameFleshAndBlood}

var gameAliases = map[string]Game{
	"mtg":             GameMTG,
	"magic":           GameMTG,
	"pokemon":         GamePokemon,
	"yu-gi-oh":        GameYuGiOh,
	"yugioh":          GameYuGiOh,
	"ygo":             GameYuGiOh,
	"one piece":       GameOnePiece,
	"onepiece":        GameOnePiece,
	"one-piece":       GameOnePiece,
	"flesh and blood": GameFleshAndBlood,
	"fleshandblood":   GameFleshAndBlood,
	"fab":             GameFleshAndBlood,
}

func ParseGame(s string) (Game, error) {
	if g, ok := gameAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return g, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGame, s)
}

func (g Game) Valid() bool {
	for _, known := range Games {
		if g == known {
			return true
		}
	}
	return false
}

// Slug is the URL friendly form used by the API and CLI.
func (g Game) Slug() string {
	switch g {
	case GameMTG:
		return "mtg"
	case GamePokemon:
		return "pokemon"
	case GameYuGiOh:
		return "yugioh"
	case GameOnePiece:
		return "onepiece"
	case GameFleshAndBlood:
		return "fab"
	}
	return strings.ToLower(string(g))
}

func (g Game) String() string {
	return string(g)
}
