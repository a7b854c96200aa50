package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/disgoorg/card-binder/internal/domain/collection"
	"github.com/disgoorg/card-binder/internal/domain/intake"
	"github.com/disgoorg/card-binder/internal/domain/lookup"
	"github.com/disgoorg/card-binder/internal/domain/tcg"
)

type gameRequest struct {
	Game string `json:"game"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type fieldsRequest struct {
	Values map[string]string `json:"values"`
}

// baseRequest carries the shared fields. Absent keys are left unchanged.
type baseRequest struct {
	Rarity            *string `json:"rarity"`
	Image             *string `json:"image"`
	Language          *string `json:"language"`
	IsFoil            *bool   `json:"isFoil"`
	Description       *string `json:"description"`
	Condition         *string `json:"condition"`
	ConditionPosition *int    `json:"conditionPosition"`
}

type copiesRequest struct {
	// Action is increment, decrement or set.
	Action string `json:"action"`
	Text   string `json:"text"`
}

type gradingRequest struct {
	Graded    *bool             `json:"graded"`
	Company   *string           `json:"company"`
	Grade     *string           `json:"grade"`
	SubGrades map[string]string `json:"subGrades"`
}

type printingRequest struct {
	Index int `json:"index"`
}

type submitResponse struct {
	Card    tcg.CardRecord     `json:"card"`
	Session intake.SessionView `json:"session"`
}

func onSessionEvicted(_, value interface{}) {
	if sess, ok := value.(*intake.Session); ok {
		sess.Close()
	}
}

func (s *Server) session(c *fiber.Ctx) (*intake.Session, bool) {
	v, ok := s.sessions.Get(c.Params("id"))
	if !ok {
		return nil, false
	}
	return v.(*intake.Session), true
}

func (s *Server) createSession(c *fiber.Ctx) error {
	var req gameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return SendBadRequest(c, "Invalid request body")
		}
	}
	game := tcg.GameMTG
	if req.Game != "" {
		g, err := tcg.ParseGame(req.Game)
		if err != nil {
			return SendBadRequest(c, err.Error())
		}
		game = g
	}

	id := uuid.NewString()
	sess, err := intake.NewSession(id, game, s.deps.Store, s.deps.Lookup, s.deps.Notifier,
		lookup.WithClock(s.deps.Clock),
		lookup.WithContext(s.ctx),
		lookup.OnChange(func(st lookup.State) {
			if st.Loading {
				return
			}
			slog.Debug("Suggestions updated",
				slog.String("type", "lookup"),
				slog.String("session", id),
				slog.String("game", st.Game.String()),
				slog.String("query", st.Query),
				slog.Int("count", len(st.Suggestions)),
			)
		}),
	)
	if err != nil {
		return err
	}
	s.sessions.Add(sess.ID, sess)
	return SendCreated(c, sess.View(), "Intake session created")
}

func (s *Server) getSession(c *fiber.Ctx) error {
	sess, ok := s.session(c)
	if !ok {
		return SendNotFound(c, "Intake session not found")
	}
	return SendSuccess(c, sess.View(), "")
}

func (s *Server) sessionGame(c *fiber.Ctx) error {
	sess, ok := s.session(c)
	if !ok {
		return SendNotFound(c, "Intake session not found")
	}
	var req gameRequest
	if err := c.BodyParser(&req); err != nil {
		return SendBadRequest(c, "Invalid request body")
	}
	game, err := tcg.ParseGame(req.Game)
	if err != nil {
		return SendBadRequest(c, err.Error())
	}
	if err := sess.SelectGame(game); err != nil {
		return SendBadRequest(c, err.Error())
	}
	return SendSuccess(c, sess.View(), "")
}

func (s *Server) sessionName(c *fiber.Ctx) error {
	sess, ok := s.session(c)
	if !ok {
		return SendNotFound(c, "Intake session not found")
	}
	var req nameRequest
	if err := c.BodyParser(&req); err != nil {
		return SendBadRequest(c, "Invalid request body")
	}
	sess.TypeName(req.Name)
	return SendSuccess(c, sess.View(), "")
}

func (s *Server) sessionFields(c *fiber.Ctx) error {
	sess, ok := s.session(c)
	if !ok {
		return SendNotFound(c, "Intake session not found")
	}
	var req fieldsRequest
	if err := c.BodyParser(&req); err != nil {
		return SendBadRequest(c, "Invalid request body")
	}

	details := map[string]string{}
	_ = sess.Update(func(f *intake.Form) error {
		for name, value := range req.Values {
			if err := f.SetField(name, value); err != nil {
				details[name] = err.Error()
			}
		}
		return nil
	})
	if len(details) > 0 {
		return SendUnprocessableEntity(c, "Some fields were not accepted", details)
	}
	return SendSuccess(c, sess.View(), "")
}

func (s *Server) sessionBase(c *fiber.Ctx) error {
	sess, ok := s.session(c)
	if !ok {
		return SendNotFound(c, "Intake session not found")
	}
	var req baseRequest
	if err := c.BodyParser(&req); err != nil {
		return SendBadRequest(c, "Invalid request body")
	}

	details := map[string]string{}
	_ = sess.Update(func(f *intake.Form) error {
		if req.Rarity != nil {
			f.SetRarity(*req.Rarity)
		}
		if req.Image != nil {
			f.SetImage(*req.Image)
		}
		if req.IsFoil != nil {
			f.SetFoil(*req.IsFoil)
		}
		if req.Language != nil {
			if err := f.SetLanguage(*req.Language); err != nil {
				details["language"] = err.Error()
			}
		}
		if req.Description != nil {
			if err := f.SetDescription(*req.Description); err != nil {
				details["description"] = err.Error()
			}
		}
		if req.ConditionPosition != nil {
			f.Condition().SetPosition(*req.ConditionPosition)
		}
		if req.Condition != nil {
			cond, err := tcg.ParseCondition(*req.Condition)
			if err == nil {
				err = f.Condition().Set(cond)
			}
			if err != nil {
				details["condition"] = err.Error()
			}
		}
		return nil
	})
	if len(details) > 0 {
		return SendUnprocessableEntity(c, "Some fields were not accepted", details)
	}
	return SendSuccess(c, sess.View(), "")
}

func (s *Server) sessionCopies(c *fiber.Ctx) error {
	sess, ok := s.session(c)
	if !ok {
		return SendNotFound(c, "Intake session not found")
	}
	var req copiesRequest
	if err := c.BodyParser(&req); err != nil {
		return SendBadRequest(c, "Invalid request body")
	}

	err := sess.Update(func(f *intake.Form) error {
		switch req.Action {
		case "increment":
			f.Copies().Increment()
		case "decrement":
			f.Copies().Decrement()
		case "set":
			// Non-numeric text leaves the value as it was.
			f.Copies().SetText(req.Text)
		default:
			return fiber.NewError(fiber.StatusBadRequest, "action must be increment, decrement or set")
		}
		return nil
	})
	if err != nil {
		return err
	}
	return SendSuccess(c, sess.View(), "")
}

func (s *Server) sessionGrading(c *fiber.Ctx) error {
	sess, ok := s.session(c)
	if !ok {
		return SendNotFound(c, "Intake session not found")
	}
	var req gradingRequest
	if err := c.BodyParser(&req); err != nil {
		return SendBadRequest(c, "Invalid request body")
	}

	details := map[string]string{}
	_ = sess.Update(func(f *intake.Form) error {
		if req.Graded != nil {
			f.SetGraded(*req.Graded)
		}
		if req.Company != nil {
			if err := f.SetGradingCompany(tcg.GradingCompany(*req.Company)); err != nil {
				details["company"] = err.Error()
				return nil
			}
		}
		if req.Grade != nil {
			if err := f.SetGrade(*req.Grade); err != nil {
				details["grade"] = err.Error()
			}
		}
		for name, value := range req.SubGrades {
			if err := f.SetSubGrade(name, value); err != nil {
				details[name] = err.Error()
			}
		}
		return nil
	})
	if len(details) > 0 {
		return SendUnprocessableEntity(c, "Grading was not accepted", details)
	}
	return SendSuccess(c, sess.View(), "")
}

func (s *Server) selectSuggestion(c *fiber.Ctx) error {
	sess, ok := s.session(c)
	if !ok {
		return SendNotFound(c, "Intake session not found")
	}
	var req nameRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return SendBadRequest(c, "A card name is required")
	}

	if _, err := sess.SelectSuggestion(c.UserContext(), req.Name); err != nil {
		switch {
		case errors.Is(err, lookup.ErrNoEndpoint):
			return SendUnprocessableEntity(c, lookup.Notice(sess.Lookup().Game), nil)
		case errors.Is(err, lookup.ErrCardNotFound), errors.Is(err, lookup.ErrNoPrintings):
			return SendNotFound(c, err.Error())
		}
		return SendBadGateway(c, err.Error())
	}
	return SendSuccess(c, sess.View(), "")
}

func (s *Server) selectPrinting(c *fiber.Ctx) error {
	sess, ok := s.session(c)
	if !ok {
		return SendNotFound(c, "Intake session not found")
	}
	var req printingRequest
	if err := c.BodyParser(&req); err != nil {
		return SendBadRequest(c, "Invalid request body")
	}

	if _, err := sess.ChoosePrinting(req.Index); err != nil {
		switch {
		case errors.Is(err, intake.ErrNoSelection):
			return SendConflict(c, err.Error())
		case errors.Is(err, lookup.ErrPrintingRange):
			return SendBadRequest(c, err.Error())
		}
		return err
	}
	return SendSuccess(c, sess.View(), "")
}

func (s *Server) submitSession(c *fiber.Ctx) error {
	sess, ok := s.session(c)
	if !ok {
		return SendNotFound(c, "Intake session not found")
	}

	rec, err := sess.Submit(c.UserContext())
	if err != nil {
		var verr intake.ValidationErrors
		switch {
		case errors.As(err, &verr):
			details := make(map[string]string, len(verr))
			for _, e := range verr {
				details[e.Field] = e.Message
			}
			return SendUnprocessableEntity(c, "Missing information", details)
		case errors.Is(err, collection.ErrPersist):
			return SendInternalServerError(c, "Your collection could not be saved. Please try again.")
		case errors.Is(err, collection.ErrInvalidCard):
			return SendUnprocessableEntity(c, err.Error(), nil)
		}
		return err
	}
	return SendCreated(c, submitResponse{Card: rec, Session: sess.View()}, "Card Added")
}
