package lookup

type MTGImageURIs struct {
	Small  string `json:"small"`
	Normal string `json:"normal"`
	Large  string `json:"large"`
}

type MTGCardFace struct {
	Name      string        `json:"name"`
	ManaCost  string        `json:"mana_cost"`
	TypeLine  string        `json:"type_line"`
	ImageURIs *MTGImageURIs `json:"image_uris,omitempty"`
}

type MTGCard struct {
	Name            string        `json:"name"`
	Rarity          string        `json:"rarity"`
	TypeLine        string        `json:"type_line"`
	ManaCost        string        `json:"mana_cost"`
	ColorIdentity   []string      `json:"color_identity"`
	Set             string        `json:"set"`
	SetName         string        `json:"set_name"`
	CollectorNumber string        `json:"collector_number"`
	ImageURIs       *MTGImageURIs `json:"image_uris,omitempty"`
	CardFaces       []MTGCardFace `json:"card_faces,omitempty"`
}

type PokemonSet struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PokemonImages struct {
	Small string `json:"small"`
	Large string `json:"large"`
}

type PokemonCard struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Supertype string        `json:"supertype"`
	Subtypes  []string      `json:"subtypes"`
	HP        string        `json:"hp"`
	Types     []string      `json:"types"`
	Rarity    string        `json:"rarity"`
	Set       PokemonSet    `json:"set"`
	Images    PokemonImages `json:"images"`
}

type YuGiOhSet struct {
	SetName   string `json:"set_name"`
	SetCode   string `json:"set_code"`
	SetRarity string `json:"set_rarity"`
}

type YuGiOhImage struct {
	ID            int    `json:"id"`
	ImageURL      string `json:"image_url"`
	ImageURLSmall string `json:"image_url_small"`
}

type YuGiOhCard struct {
	ID         int           `json:"id"`
	Name       string        `json:"name"`
	Type       string        `json:"type"`
	FrameType  string        `json:"frameType"`
	Race       string        `json:"race"`
	Attribute  string        `json:"attribute"`
	Level      int           `json:"level"`
	CardSets   []YuGiOhSet   `json:"card_sets"`
	CardImages []YuGiOhImage `json:"card_images"`
}

// YuGiOhPrinting pairs the card with one of its set and image entries.
type YuGiOhPrinting struct {
	Card  YuGiOhCard   `json:"card"`
	Set   *YuGiOhSet   `json:"set,omitempty"`
	Image *YuGiOhImage `json:"image,omitempty"`
}
