package market

import (
	"fmt"

	"github.com/disgoorg/card-binder/internal/domain/tcg"
)

// DefaultMaxDistanceKm is the travel distance a new profile starts with.
const DefaultMaxDistanceKm = 25

type Listing struct {
	ID          string           `json:"id"`
	CardName    string           `json:"cardName"`
	Game        tcg.Game         `json:"game"`
	Condition   tcg.Condition    `json:"condition"`
	Grading     *tcg.GradingInfo `json:"grading,omitempty"`
	PriceCents  int64            `json:"priceCents"`
	Seller      string           `json:"seller"`
	Description string           `json:"description"`
	Location    string           `json:"location"`
	DistanceKm  float64          `json:"distanceKm"`
	Image       string           `json:"image,omitempty"`
}

// Price renders the price the way listings show it, e.g. "$10,000".
func (l Listing) Price() string {
	return FormatCents(l.PriceCents)
}

// ListingDetails renders l for the details view. Listings always show a
// description row, falling back to a placeholder.
func ListingDetails(l Listing) []tcg.DetailField {
	fields := []tcg.DetailField{
		{Label: "Card Name", Value: l.CardName},
		{Label: "Game", Value: l.Game.String()},
		{Label: "Condition", Value: l.Condition.String(), Highlight: true},
	}
	if l.Grading != nil {
		fields = append(fields, tcg.DetailField{Label: "Grading", Value: l.Grading.Label()})
	}

	description := l.Description
	if description == "" {
		description = "No description provided."
	}
	return append(fields,
		tcg.DetailField{Label: "Price", Value: l.Price()},
		tcg.DetailField{Label: "Seller", Value: l.Seller},
		tcg.DetailField{Label: "Location", Value: l.Location},
		tcg.DetailField{Label: "Distance", Value: fmt.Sprintf("%.1f km", l.DistanceKm)},
		tcg.DetailField{Label: "Description", Value: description},
	)
}

func FormatCents(cents int64) string {
	dollars, rest := cents/100, cents%100
	s := groupThousands(dollars)
	if rest != 0 {
		s += fmt.Sprintf(".%02d", rest)
	}
	return "$" + s
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return string(out)
}

var listings = []Listing{
	{
		ID:          "1",
		CardName:    "Black Lotus",
		Game:        tcg.GameMTG,
		Condition:   tcg.ConditionNearMint,
		Grading:     &tcg.GradingInfo{Company: tcg.CompanyPSA, Grade: "9"},
		PriceCents:  10_000_00,
		Seller:      "Morgan Lee",
		Description: "Alpha printing, graded PSA 9. Kept sleeved in a top loader since grading.",
		Location:    "Brooklyn, NY",
		DistanceKm:  4.2,
	},
	{
		ID:          "2",
		CardName:    "Charizard",
		Game:        tcg.GamePokemon,
		Condition:   tcg.ConditionLightlyPlayed,
		PriceCents:  250_00,
		Seller:      "Alex Thompson",
		Description: "Base Set holo. Light whitening on the back edges, front is clean.",
		Location:    "Jersey City, NJ",
		DistanceKm:  12.5,
	},
}

// Listings returns a copy of the sample listings.
func Listings() []Listing {
	out := make([]Listing, len(listings))
	for i, l := range listings {
		if l.Grading != nil {
			g := *l.Grading
			l.Grading = &g
		}
		out[i] = l
	}
	return out
}

func ByID(id string) (Listing, bool) {
	for _, l := range Listings() {
		if l.ID == id {
			return l, true
		}
	}
	return Listing{}, false
}
