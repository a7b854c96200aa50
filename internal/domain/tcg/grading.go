package tcg

import (
	"fmt"
	"strconv"
)

type GradingCompany string

const (
	CompanyPSA GradingCompany = "PSA"
	CompanyBGS GradingCompany = "BGS"
	CompanyCGC GradingCompany = "CGC"
	CompanySGC GradingCompany = "SGC"
)

var GradingCompanies = []GradingCompany{CompanyPSA, CompanyBGS, CompanyCGC, CompanySGC}

// GradingInfo is present on a record only when the card is graded.
type GradingInfo struct {
	Company   GradingCompany `json:"company"`
	Grade     string         `json:"grade"`
	SubGrades *SubGrades     `json:"subGrades,omitempty"`
}

// SubGrades are the four Beckett sub-scores. Other companies do not issue them.
type SubGrades struct {
	Centering string `json:"centering,omitempty"`
	Corners   string `json:"corners,omitempty"`
	Edges     string `json:"edges,omitempty"`
	Surface   string `json:"surface,omitempty"`
}

func (s *SubGrades) Empty() bool {
	return s == nil || (s.Centering == "" && s.Corners == "" && s.Edges == "" && s.Surface == "")
}

func (c GradingCompany) Valid() bool {
	for _, known := range GradingCompanies {
		if c == known {
			return true
		}
	}
	return false
}

// HasSubGrades reports whether the company scores sub-categories.
func (c GradingCompany) HasSubGrades() bool {
	return c == CompanyBGS
}

// GradeScale lists the grades the company awards, lowest first. PSA only awards
// whole grades; the others award half grades.
func (c GradingCompany) GradeScale() []string {
	step := 0.5
	if c == CompanyPSA {
		step = 1
	}
	var out []string
	for g := 1.0; g <= 10; g += step {
		out = append(out, strconv.FormatFloat(g, 'f', -1, 64))
	}
	return out
}

// SubGradeScale is the 1..10 half-point scale used for each Beckett sub-score.
func SubGradeScale() []string {
	return CompanyBGS.GradeScale()
}

func (c GradingCompany) allowsGrade(grade string) bool {
	for _, g := range c.GradeScale() {
		if g == grade {
			return true
		}
	}
	return false
}

// Validate checks company, grade and sub-grades against the company scales.
func (g *GradingInfo) Validate() error {
	if !g.Company.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCompany, g.Company)
	}
	if !g.Company.allowsGrade(g.Grade) {
		return fmt.Errorf("%w: %s %q", ErrInvalidGrade, g.Company, g.Grade)
	}
	if g.SubGrades.Empty() {
		return nil
	}
	if !g.Company.HasSubGrades() {
		return fmt.Errorf("%w: %s", ErrNoSubGrades, g.Company)
	}
	for _, sub := range []string{g.SubGrades.Centering, g.SubGrades.Corners, g.SubGrades.Edges, g.SubGrades.Surface} {
		if sub != "" && !CompanyBGS.allowsGrade(sub) {
			return fmt.Errorf("%w: sub-grade %q", ErrInvalidGrade, sub)
		}
	}
	return nil
}

// Label renders the grading the way listings show it, e.g. "PSA 9".
func (g *GradingInfo) Label() string {
	if g == nil {
		return ""
	}
	return fmt.Sprintf("%s %s", g.Company, g.Grade)
}
