package collection

import "github.com/disgoorg/card-binder/internal/domain/tcg"

// Seed is the collection a first visit starts with.
func Seed() Collection {
	c := NewCollection()
	c[tcg.GameMTG] = []tcg.CardRecord{
		{
			ID:         "1",
			Name:       "Jace, the Mind Sculptor",
			Rarity:     "Mythic Rare",
			Condition:  tcg.ConditionNearMint,
			Copies:     1,
			Language:   tcg.DefaultLanguage,
			Attributes: &tcg.MTGAttributes{ColorIdentity: "Blue", CardType: "Planeswalker", ManaCost: "{2}{U}{U}"},
		},
		{
			ID:         "2",
			Name:       "Lightning Bolt",
			Rarity:     "Common",
			Condition:  tcg.ConditionNearMint,
			Copies:     1,
			Language:   tcg.DefaultLanguage,
			Attributes: &tcg.MTGAttributes{ColorIdentity: "Red", CardType: "Instant", ManaCost: "{R}"},
		},
	}
	c[tcg.GamePokemon] = []tcg.CardRecord{
		{
			ID:         "3",
			Name:       "Charizard",
			Rarity:     "Holo Rare",
			Condition:  tcg.ConditionNearMint,
			Copies:     1,
			Language:   tcg.DefaultLanguage,
			Attributes: &tcg.PokemonAttributes{PokemonType: "Fire", HP: "120", Stage: "Stage 2"},
		},
	}
	return c
}
