package intake

import "github.com/disgoorg/card-binder/internal/domain/tcg"

// View is a serializable snapshot of a form for rendering.
type View struct {
	Game              tcg.Game          `json:"game"`
	Fields            []tcg.Field       `json:"fields"`
	Name              string            `json:"name"`
	Rarity            string            `json:"rarity"`
	Image             string            `json:"image,omitempty"`
	Language          string            `json:"language"`
	IsFoil            bool              `json:"isFoil"`
	Description       string            `json:"description"`
	Condition         tcg.Condition     `json:"condition"`
	ConditionPosition int               `json:"conditionPosition"`
	Copies            *int              `json:"copies"`
	CopiesMin         int               `json:"copiesMin"`
	CopiesMax         int               `json:"copiesMax"`
	Graded            bool              `json:"graded"`
	Grading           *tcg.GradingInfo  `json:"grading,omitempty"`
	GradeScale        []string          `json:"gradeScale,omitempty"`
	Values            map[string]string `json:"values"`
}

func (f *Form) View() View {
	v := View{
		Game:              f.game,
		Fields:            tcg.Fields(f.game),
		Name:              f.name,
		Rarity:            f.rarity,
		Image:             f.image,
		Language:          f.language,
		IsFoil:            f.foil,
		Description:       f.description,
		Condition:         f.condition.Condition(),
		ConditionPosition: f.condition.Position(),
		CopiesMin:         f.copies.Min(),
		CopiesMax:         f.copies.Max(),
		Graded:            f.graded,
		Values:            f.Values(),
	}
	if n, ok := f.copies.Value(); ok {
		v.Copies = &n
	}
	if f.graded {
		g := f.grading
		if g.SubGrades != nil {
			sub := *g.SubGrades
			g.SubGrades = &sub
		}
		v.Grading = &g
		if g.Company.Valid() {
			v.GradeScale = g.Company.GradeScale()
		}
	}
	return v
}
