package tcg

type FieldKind string

const (
	FieldText   FieldKind = "text"
	FieldChoice FieldKind = "choice"
)

// Field describes one game-specific input on the intake form.
type Field struct {
	Name    string    `json:"name"`
	Label   string    `json:"label"`
	Kind    FieldKind `json:"kind"`
	Options []string  `json:"options,omitempty"`
}

func (f Field) Allows(value string) bool {
	if f.Kind != FieldChoice || value == "" {
		return true
	}
	for _, opt := range f.Options {
		if opt == value {
			return true
		}
	}
	return false
}

var gameFields = map[Game][]Field{
	GameMTG: {
		{Name: "colorIdentity", Label: "Color Identity", Kind: FieldChoice, Options: []string{"White", "Blue", "Black", "Red", "Green", "Colorless", "Multicolor"}},
		{Name: "cardType", Label: "Card Type", Kind: FieldChoice, Options: []string{"Creature", "Instant", "Sorcery", "Artifact", "Enchantment", "Planeswalker", "Land"}},
		{Name: "manaCost", Label: "Mana Cost", Kind: FieldText},
	},
	GamePokemon: {
		{Name: "pokemonType", Label: "Pokémon Type", Kind: FieldChoice, Options: []string{"Normal", "Fire", "Water", "Grass", "Electric", "Fighting", "Psychic", "Darkness", "Metal", "Fairy", "Dragon"}},
		{Name: "hp", Label: "HP", Kind: FieldText},
		{Name: "stage", Label: "Evolution Stage", Kind: FieldChoice, Options: []string{"Basic", "Stage 1", "Stage 2", "V", "VMAX", "VSTAR", "GX", "EX"}},
	},
	GameYuGiOh: {
		{Name: "cardType", Label: "Card Type", Kind: FieldChoice, Options: []string{"Monster", "Spell", "Trap"}},
		{Name: "monsterType", Label: "Monster Type", Kind: FieldChoice, Options: []string{"Normal", "Effect", "Fusion", "Ritual", "Synchro", "Xyz", "Pendulum", "Link"}},
		{Name: "attribute", Label: "Attribute", Kind: FieldChoice, Options: []string{"DARK", "LIGHT", "EARTH", "WATER", "FIRE", "WIND", "DIVINE"}},
		{Name: "level", Label: "Level/Rank", Kind: FieldText},
	},
	GameOnePiece: {
		{Name: "color", Label: "Color", Kind: FieldChoice, Options: []string{"Red", "Green", "Blue", "Purple", "Black", "Yellow"}},
		{Name: "cardType", Label: "Card Type", Kind: FieldChoice, Options: []string{"Leader", "Character", "Event", "Stage", "Don!!"}},
		{Name: "cost", Label: "Cost", Kind: FieldText},
	},
	GameFleshAndBlood: {
		{Name: "class", Label: "Class", Kind: FieldChoice, Options: []string{"Ninja", "Warrior", "Brute", "Guardian", "Wizard", "Ranger", "Mechanologist", "Runeblade", "Generic"}},
		{Name: "cardType", Label: "Card Type", Kind: FieldChoice, Options: []string{"Attack", "Defense", "Attack Reaction", "Defense Reaction", "Instant", "Action", "Equipment"}},
		{Name: "pitValue", Label: "Pitch Value", Kind: FieldChoice, Options: []string{"1 (Red)", "2 (Yellow)", "3 (Blue)"}},
	},
}

// Fields returns a copy of the ordered field descriptors for game.
func Fields(game Game) []Field {
	fields := gameFields[game]
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// LookupField finds the descriptor for name within game.
func LookupField(game Game, name string) (Field, bool) {
	for _, f := range gameFields[game] {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Languages offered by the intake form.
var Languages = []string{"English", "Japanese", "German", "French", "Italian", "Spanish", "Portuguese", "Korean", "Chinese"}

const DefaultLanguage = "English"
