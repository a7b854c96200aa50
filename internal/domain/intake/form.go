package intake

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/disgoorg/card-binder/internal/domain/lookup"
	"github.com/disgoorg/card-binder/internal/domain/tcg"
)

// CardAdder is the part of the collection store a form submits to.
type CardAdder interface {
	AddCard(ctx context.Context, game tcg.Game, record tcg.CardRecord) ([]tcg.CardRecord, error)
}

// Form holds the state of one add-card form. It is not safe for concurrent use.
type Form struct {
	game        tcg.Game
	name        string
	rarity      string
	image       string
	language    string
	foil        bool
	description string
	condition   *ConditionSelector
	copies      *Stepper
	graded      bool
	grading     tcg.GradingInfo
	values      map[string]string
}

func NewForm(game tcg.Game) (*Form, error) {
	if !game.Valid() {
		return nil, fmt.Errorf("%w: %q", tcg.ErrUnknownGame, game)
	}
	f := &Form{game: game}
	f.Reset()
	return f, nil
}

// Reset clears every field except the selected game.
func (f *Form) Reset() {
	f.name = ""
	f.rarity = ""
	f.image = ""
	f.language = tcg.DefaultLanguage
	f.foil = false
	f.description = ""
	f.condition = NewConditionSelector()
	f.copies = NewCopiesStepper()
	f.graded = false
	f.grading = tcg.GradingInfo{}
	f.values = map[string]string{}
}

func (f *Form) Game() tcg.Game { return f.game }

// SelectGame switches games, discarding every game-specific value.
func (f *Form) SelectGame(game tcg.Game) error {
	if !game.Valid() {
		return fmt.Errorf("%w: %q", tcg.ErrUnknownGame, game)
	}
	f.game = game
	f.values = map[string]string{}
	return nil
}

func (f *Form) Name() string { return f.name }

func (f *Form) SetName(name string) { f.name = name }

func (f *Form) SetRarity(rarity string) { f.rarity = strings.TrimSpace(rarity) }

func (f *Form) SetImage(image string) { f.image = strings.TrimSpace(image) }

func (f *Form) SetFoil(foil bool) { f.foil = foil }

func (f *Form) SetLanguage(lang string) error {
	for _, l := range tcg.Languages {
		if strings.EqualFold(l, lang) {
			f.language = l
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
}

// SetDescription rejects text over the limit and keeps the previous value.
func (f *Form) SetDescription(text string) error {
	if utf8.RuneCountInString(text) > tcg.MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	f.description = text
	return nil
}

func (f *Form) Condition() *ConditionSelector { return f.condition }

func (f *Form) Copies() *Stepper { return f.copies }

// SetField sets a game-specific value. An empty value clears the field.
func (f *Form) SetField(name, value string) error {
	field, ok := tcg.LookupField(f.game, name)
	if !ok {
		return fmt.Errorf("%w: %s has no field %q", tcg.ErrUnknownField, f.game, name)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		delete(f.values, name)
		return nil
	}
	if !field.Allows(value) {
		return fmt.Errorf("%w: %q for %s", tcg.ErrInvalidOption, value, field.Label)
	}
	f.values[name] = value
	return nil
}

func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

func (f *Form) Graded() bool { return f.graded }

// SetGraded toggles the graded flag. Turning it off discards grading values
// so turning it back on starts empty.
func (f *Form) SetGraded(graded bool) {
	f.graded = graded
	if !graded {
		f.grading = tcg.GradingInfo{}
	}
}

// SetGradingCompany picks the company. A grade or sub-grades the new company
// does not award are cleared.
func (f *Form) SetGradingCompany(company tcg.GradingCompany) error {
	if !f.graded {
		return ErrNotGraded
	}
	if !company.Valid() {
		return fmt.Errorf("%w: %q", tcg.ErrUnknownCompany, company)
	}
	f.grading.Company = company
	if f.grading.Grade != "" && !contains(company.GradeScale(), f.grading.Grade) {
		f.grading.Grade = ""
	}
	if !company.HasSubGrades() {
		f.grading.SubGrades = nil
	}
	return nil
}

func (f *Form) SetGrade(grade string) error {
	if !f.graded {
		return ErrNotGraded
	}
	if !f.grading.Company.Valid() {
		return fmt.Errorf("%w: pick a grading company first", tcg.ErrUnknownCompany)
	}
	grade = strings.TrimSpace(grade)
	if grade != "" && !contains(f.grading.Company.GradeScale(), grade) {
		return fmt.Errorf("%w: %s %q", tcg.ErrInvalidGrade, f.grading.Company, grade)
	}
	f.grading.Grade = grade
	return nil
}

// SetSubGrade sets one of centering, corners, edges or surface.
func (f *Form) SetSubGrade(name, value string) error {
	if !f.graded {
		return ErrNotGraded
	}
	if !f.grading.Company.HasSubGrades() {
		return fmt.Errorf("%w: %s", tcg.ErrNoSubGrades, f.grading.Company)
	}
	value = strings.TrimSpace(value)
	if value != "" && !contains(tcg.SubGradeScale(), value) {
		return fmt.Errorf("%w: sub-grade %q", tcg.ErrInvalidGrade, value)
	}

	sub := tcg.SubGrades{}
	if f.grading.SubGrades != nil {
		sub = *f.grading.SubGrades
	}
	switch strings.ToLower(name) {
	case "centering":
		sub.Centering = value
	case "corners":
		sub.Corners = value
	case "edges":
		sub.Edges = value
	case "surface":
		sub.Surface = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSubGrade, name)
	}
	f.grading.SubGrades = &sub
	if sub.Empty() {
		f.grading.SubGrades = nil
	}
	return nil
}

// ApplyPrefill copies looked up values into the form. Values left over from
// an earlier card or printing are cleared first. Game-specific values the
// field set rejects are skipped.
func (f *Form) ApplyPrefill(p lookup.Prefill) {
	if p.Name != "" {
		f.name = p.Name
	}
	f.rarity = p.Rarity
	f.image = p.Image
	for _, name := range lookup.MappedFields(f.game) {
		delete(f.values, name)
	}
	for name, v := range lookup.FilterPrefill(f.game, p).Values {
		f.values[name] = v
	}
}

func (f *Form) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(f.name) == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "Card name is required"})
	}
	if _, ok := f.copies.Value(); !ok {
		errs = append(errs, ValidationError{Field: "copies", Message: "Number of copies is required"})
	}
	if f.graded {
		if !f.grading.Company.Valid() {
			errs = append(errs, ValidationError{Field: "gradingCompany", Message: "Grading company is required"})
		}
		if f.grading.Grade == "" {
			errs = append(errs, ValidationError{Field: "grade", Message: "Grade is required"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Build assembles the card record. Grading is attached only for graded cards.
func (f *Form) Build() (tcg.CardRecord, error) {
	if err := f.Validate(); err != nil {
		return tcg.CardRecord{}, err
	}
	attrs, err := tcg.BuildAttributes(f.game, f.values)
	if err != nil {
		return tcg.CardRecord{}, err
	}
	copies, _ := f.copies.Value()

	rec := tcg.CardRecord{
		Name:        strings.TrimSpace(f.name),
		Rarity:      f.rarity,
		Condition:   f.condition.Condition(),
		Copies:      copies,
		Language:    f.language,
		IsFoil:      f.foil,
		Description: f.description,
		Image:       f.image,
		Attributes:  attrs,
	}
	if f.graded {
		grading := f.grading
		if grading.SubGrades != nil {
			sub := *grading.SubGrades
			grading.SubGrades = &sub
		}
		rec.GradingInfo = &grading
	}
	return rec, nil
}

// Submit adds the built record to store and resets the form on success. The
// returned list is the game's collection after the add.
func (f *Form) Submit(ctx context.Context, store CardAdder) ([]tcg.CardRecord, error) {
	rec, err := f.Build()
	if err != nil {
		return nil, err
	}
	cards, err := store.AddCard(ctx, f.game, rec)
	if err != nil {
		return nil, err
	}
	f.Reset()
	return cards, nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
