package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/disgoorg/card-binder/internal/domain/collection"
	"github.com/disgoorg/card-binder/internal/domain/tcg"
)

type cardDetails struct {
	Card   tcg.CardRecord    `json:"card"`
	Fields []tcg.DetailField `json:"fields"`
}

func gameParam(c *fiber.Ctx) (tcg.Game, error) {
	return tcg.ParseGame(c.Params("game"))
}

func (s *Server) listCards(c *fiber.Ctx) error {
	game, err := gameParam(c)
	if err != nil {
		return SendNotFound(c, err.Error())
	}
	return SendSuccess(c, s.deps.Store.ListCards(game), "")
}

func (s *Server) cardDetails(c *fiber.Ctx) error {
	game, err := gameParam(c)
	if err != nil {
		return SendNotFound(c, err.Error())
	}
	id := c.Params("id")
	for _, card := range s.deps.Store.ListCards(game) {
		if card.ID == id {
			return SendSuccess(c, cardDetails{Card: card, Fields: tcg.Details(game, card)}, "")
		}
	}
	return SendNotFound(c, "Card not found")
}

// addCard stores a complete record sent as the flat collection JSON.
func (s *Server) addCard(c *fiber.Ctx) error {
	game, err := gameParam(c)
	if err != nil {
		return SendNotFound(c, err.Error())
	}
	record, err := tcg.DecodeRecord(game, c.Body())
	if err != nil {
		return SendBadRequest(c, err.Error())
	}
	cards, err := s.deps.Store.AddCard(c.UserContext(), game, record)
	if err != nil {
		return storeError(c, err)
	}
	return SendCreated(c, cards, "Card added")
}

func (s *Server) removeCard(c *fiber.Ctx) error {
	game, err := gameParam(c)
	if err != nil {
		return SendNotFound(c, err.Error())
	}
	cards, err := s.deps.Store.RemoveCard(c.UserContext(), game, c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	return SendSuccess(c, cards, "Card removed")
}

func storeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, collection.ErrCardNotFound):
		return SendNotFound(c, err.Error())
	case errors.Is(err, collection.ErrInvalidCard):
		return SendUnprocessableEntity(c, err.Error(), nil)
	case errors.Is(err, collection.ErrPersist):
		return SendInternalServerError(c, "Your collection could not be saved. Please try again.")
	}
	return err
}
