package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/disgoorg/card-binder/internal/domain/tcg"
	"github.com/disgoorg/card-binder/internal/logger"
)

type gameInfo struct {
	Name            tcg.Game    `json:"name"`
	Slug            string      `json:"slug"`
	Fields          []tcg.Field `json:"fields"`
	LookupSupported bool        `json:"lookupSupported"`
}

type conditionInfo struct {
	Position int    `json:"position"`
	Code     string `json:"code"`
	Label    string `json:"label"`
}

type companyInfo struct {
	Name         tcg.GradingCompany `json:"name"`
	GradeScale   []string           `json:"gradeScale"`
	HasSubGrades bool               `json:"hasSubGrades"`
}

type catalog struct {
	Games         []gameInfo      `json:"games"`
	Conditions    []conditionInfo `json:"conditions"`
	Languages     []string        `json:"languages"`
	Companies     []companyInfo   `json:"gradingCompanies"`
	SubGradeScale []string        `json:"subGradeScale"`
}

func (s *Server) health(c *fiber.Ctx) error {
	return SendSuccess(c, fiber.Map{
		"status":  "healthy",
		"version": s.deps.Version,
		"logs":    logger.Counters(),
	}, "Health check successful")
}

func (s *Server) listGames(c *fiber.Ctx) error {
	out := catalog{
		Languages:     append([]string{}, tcg.Languages...),
		SubGradeScale: tcg.SubGradeScale(),
	}
	for _, g := range tcg.Games {
		out.Games = append(out.Games, gameInfo{
			Name:            g,
			Slug:            g.Slug(),
			Fields:          tcg.Fields(g),
			LookupSupported: s.deps.Lookup.Supports(g),
		})
	}
	for i, cond := range tcg.Conditions {
		out.Conditions = append(out.Conditions, conditionInfo{Position: i, Code: cond.Code(), Label: cond.String()})
	}
	for _, co := range tcg.GradingCompanies {
		out.Companies = append(out.Companies, companyInfo{
			Name:         co,
			GradeScale:   co.GradeScale(),
			HasSubGrades: co.HasSubGrades(),
		})
	}
	return SendSuccess(c, out, "")
}

// listNotifications drains the toast feed.
func (s *Server) listNotifications(c *fiber.Ctx) error {
	return SendSuccess(c, s.deps.Feed.Drain(), "")
}
