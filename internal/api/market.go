package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/disgoorg/card-binder/internal/domain/market"
	"github.com/disgoorg/card-binder/internal/domain/tcg"
)

// listListings serves GET /api/market?q=&game=&condition=&distance=&maxPrice=.
func (s *Server) listListings(c *fiber.Ctx) error {
	f := market.Filter{Query: c.Query("q")}

	if g := c.Query("game"); g != "" {
		game, err := tcg.ParseGame(g)
		if err != nil {
			return SendBadRequest(c, err.Error())
		}
		f.Game = game
	}
	if cond := c.Query("condition"); cond != "" {
		parsed, err := tcg.ParseCondition(cond)
		if err != nil {
			return SendBadRequest(c, err.Error())
		}
		f.MinCondition = &parsed
	}
	if d := c.Query("distance"); d != "" {
		km, err := strconv.ParseFloat(d, 64)
		if err != nil || km < 0 {
			return SendBadRequest(c, "distance must be a positive number of kilometres")
		}
		f.MaxDistanceKm = km
	}
	if p := c.Query("maxPrice"); p != "" {
		cents, err := strconv.ParseInt(p, 10, 64)
		if err != nil || cents < 0 {
			return SendBadRequest(c, "maxPrice must be a positive amount in cents")
		}
		f.MaxPriceCents = cents
	}

	return SendSuccess(c, market.Search(f), "")
}

type listingDetails struct {
	Listing market.Listing    `json:"listing"`
	Fields  []tcg.DetailField `json:"fields"`
}

func (s *Server) getListing(c *fiber.Ctx) error {
	l, ok := market.ByID(c.Params("id"))
	if !ok {
		return SendNotFound(c, "Listing not found")
	}
	return SendSuccess(c, listingDetails{Listing: l, Fields: market.ListingDetails(l)}, "")
}
