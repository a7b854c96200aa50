package lookup

import (
	"strconv"
	"strings"

	"github.com/disgoorg/card-binder/internal/domain/tcg"
)

// MapPrinting converts a printing into form values. It is the only place
// external shapes are translated, for both the first selection and later
// printing switches.
func MapPrinting(p Printing) Prefill {
	var pre Prefill
	switch {
	case p.MTG != nil:
		pre = mapMTG(*p.MTG)
	case p.Pokemon != nil:
		pre = mapPokemon(*p.Pokemon)
	case p.YuGiOh != nil:
		pre = mapYuGiOh(*p.YuGiOh)
	}
	for k, v := range pre.Values {
		if v == "" {
			delete(pre.Values, k)
		}
	}
	return pre
}

var mappedFields = map[tcg.Game][]string{
	tcg.GameMTG:     {"colorIdentity", "cardType", "manaCost"},
	tcg.GamePokemon: {"pokemonType", "hp", "stage"},
	tcg.GameYuGiOh:  {"cardType", "monsterType", "attribute", "level"},
}

// MappedFields lists the game values MapPrinting owns for game. A new
// prefill replaces all of them, including the ones it leaves empty.
func MappedFields(game tcg.Game) []string {
	return append([]string(nil), mappedFields[game]...)
}

var mtgColors = map[string]string{
	"W": "White",
	"U": "Blue",
	"B": "Black",
	"R": "Red",
	"G": "Green",
}

// checked in order so "Artifact Creature" maps to Creature.
var mtgTypePriority = []string{"Planeswalker", "Creature", "Instant", "Sorcery", "Land", "Artifact", "Enchantment"}

var mtgRarities = map[string]string{
	"common":   "Common",
	"uncommon": "Uncommon",
	"rare":     "Rare",
	"mythic":   "Mythic Rare",
	"special":  "Special",
	"bonus":    "Bonus",
}

func mapMTG(c MTGCard) Prefill {
	typeLine, manaCost := c.TypeLine, c.ManaCost
	if len(c.CardFaces) > 0 {
		if typeLine == "" {
			typeLine = c.CardFaces[0].TypeLine
		}
		if manaCost == "" {
			manaCost = c.CardFaces[0].ManaCost
		}
	}

	return Prefill{
		Name:   c.Name,
		Rarity: mtgRarity(c.Rarity),
		Image:  mtgImage(c),
		Values: map[string]string{
			"colorIdentity": mtgColorIdentity(c.ColorIdentity),
			"cardType":      firstMatch(mainTypes(typeLine), mtgTypePriority),
			"manaCost":      manaCost,
		},
	}
}

func mtgRarity(r string) string {
	if v, ok := mtgRarities[strings.ToLower(r)]; ok {
		return v
	}
	return r
}

func mtgImage(c MTGCard) string {
	uris := c.ImageURIs
	if uris == nil && len(c.CardFaces) > 0 {
		uris = c.CardFaces[0].ImageURIs
	}
	if uris == nil {
		return ""
	}
	if uris.Normal != "" {
		return uris.Normal
	}
	if uris.Large != "" {
		return uris.Large
	}
	return uris.Small
}

func mtgColorIdentity(colors []string) string {
	switch len(colors) {
	case 0:
		return "Colorless"
	case 1:
		return mtgColors[strings.ToUpper(colors[0])]
	default:
		return "Multicolor"
	}
}

// mainTypes returns the words of a type line before the subtype dash.
func mainTypes(typeLine string) []string {
	if i := strings.Index(typeLine, "—"); i >= 0 {
		typeLine = typeLine[:i]
	}
	if i := strings.Index(typeLine, "//"); i >= 0 {
		typeLine = typeLine[:i]
	}
	return strings.Fields(typeLine)
}

var pokemonTypes = map[string]string{
	"Colorless": "Normal",
	"Lightning": "Electric",
}

var pokemonStagePriority = []string{"VMAX", "VSTAR", "GX", "EX", "V", "Stage 2", "Stage 1", "Basic"}

func mapPokemon(c PokemonCard) Prefill {
	image := c.Images.Large
	if image == "" {
		image = c.Images.Small
	}

	var pokemonType string
	if len(c.Types) > 0 {
		pokemonType = c.Types[0]
		if v, ok := pokemonTypes[pokemonType]; ok {
			pokemonType = v
		}
	}

	return Prefill{
		Name:   c.Name,
		Rarity: c.Rarity,
		Image:  image,
		Values: map[string]string{
			"pokemonType": pokemonType,
			"hp":          c.HP,
			"stage":       firstMatch(c.Subtypes, pokemonStagePriority),
		},
	}
}

var yugiohMonsterPriority = []string{"Link", "Xyz", "Synchro", "Fusion", "Ritual", "Pendulum", "Effect", "Normal"}

func mapYuGiOh(p YuGiOhPrinting) Prefill {
	c := p.Card
	pre := Prefill{Name: c.Name, Values: map[string]string{}}
	if p.Set != nil {
		pre.Rarity = p.Set.SetRarity
	}
	if p.Image != nil {
		pre.Image = p.Image.ImageURL
	}

	words := strings.Fields(c.Type)
	switch {
	case containsFold(words, "Spell"):
		pre.Values["cardType"] = "Spell"
	case containsFold(words, "Trap"):
		pre.Values["cardType"] = "Trap"
	default:
		pre.Values["cardType"] = "Monster"
		pre.Values["monsterType"] = firstMatch(append(words, c.FrameType), yugiohMonsterPriority)
		pre.Values["attribute"] = strings.ToUpper(c.Attribute)
		if c.Level > 0 {
			pre.Values["level"] = strconv.Itoa(c.Level)
		}
	}
	return pre
}

// firstMatch returns the first entry of priority present in values,
// compared case-insensitively.
func firstMatch(values, priority []string) string {
	for _, want := range priority {
		if containsFold(values, want) {
			return want
		}
	}
	return ""
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}

// FilterPrefill drops values the game's field set would reject.
func FilterPrefill(game tcg.Game, pre Prefill) Prefill {
	out := pre
	out.Values = make(map[string]string, len(pre.Values))
	for name, v := range pre.Values {
		f, ok := tcg.LookupField(game, name)
		if ok && f.Allows(v) {
			out.Values[name] = v
		}
	}
	return out
}
