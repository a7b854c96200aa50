package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/disgoorg/card-binder/internal/domain/chat"
	"github.com/disgoorg/card-binder/internal/domain/market"
)

type startRequest struct {
	Contact   string `json:"contact"`
	ListingID string `json:"listingId"`
}

type messageRequest struct {
	Text string `json:"text"`
}

func (s *Server) listConversations(c *fiber.Ctx) error {
	return SendSuccess(c, s.deps.Inbox.List(), "")
}

func (s *Server) startConversation(c *fiber.Ctx) error {
	var req startRequest
	if err := c.BodyParser(&req); err != nil {
		return SendBadRequest(c, "Invalid request body")
	}

	var listing *market.Listing
	if req.ListingID != "" {
		l, ok := market.ByID(req.ListingID)
		if !ok {
			return SendNotFound(c, chat.ErrListingNotFound.Error())
		}
		listing = &l
	}

	conv, err := s.deps.Inbox.Start(req.Contact, listing)
	if err != nil {
		return SendBadRequest(c, err.Error())
	}
	return SendCreated(c, conv, "Conversation started")
}

func (s *Server) getConversation(c *fiber.Ctx) error {
	conv, err := s.deps.Inbox.Get(c.Params("id"))
	if err != nil {
		return SendNotFound(c, err.Error())
	}
	return SendSuccess(c, conv, "")
}

func (s *Server) sendMessage(c *fiber.Ctx) error {
	var req messageRequest
	if err := c.BodyParser(&req); err != nil {
		return SendBadRequest(c, "Invalid request body")
	}

	msg, err := s.deps.Inbox.Send(c.Params("id"), req.Text)
	switch {
	case errors.Is(err, chat.ErrConversationNotFound):
		return SendNotFound(c, err.Error())
	case errors.Is(err, chat.ErrEmptyMessage):
		return SendUnprocessableEntity(c, err.Error(), nil)
	case err != nil:
		return err
	}
	return SendCreated(c, msg, "Message sent")
}
