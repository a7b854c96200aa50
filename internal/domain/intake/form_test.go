package intake

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/disgoorg/card-binder/internal/domain/lookup"
	"github.com/disgoorg/card-binder/internal/domain/tcg"
)

func TestStepper(t *testing.T) {
	tests := []struct {
		name  string
		steps func(s *Stepper)
		want  int
		set   bool
	}{
		{name: "default", steps: func(s *Stepper) {}, want: 1, set: true},
		{name: "decrement at min", steps: func(s *Stepper) { s.Decrement(); s.Decrement() }, want: 1, set: true},
		{name: "increment at max", steps: func(s *Stepper) { s.Set(999); s.Increment() }, want: 999, set: true},
		{name: "text above max clamps", steps: func(s *Stepper) { s.SetText("5000") }, want: 999, set: true},
		{name: "text below min clamps", steps: func(s *Stepper) { s.SetText("-4") }, want: 1, set: true},
		{name: "huge text clamps to max", steps: func(s *Stepper) { s.Set(5); s.SetText("99999999999999999999") }, want: 999, set: true},
		{name: "huge negative text clamps to min", steps: func(s *Stepper) { s.Set(5); s.SetText("-99999999999999999999") }, want: 1, set: true},
		{name: "non numeric ignored", steps: func(s *Stepper) { s.SetText("12"); s.SetText("abc") }, want: 12, set: true},
		{name: "empty allowed", steps: func(s *Stepper) { s.SetText("") }, want: 0, set: false},
		{name: "increment from empty", steps: func(s *Stepper) { s.SetText(""); s.Increment() }, want: 1, set: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewCopiesStepper()
			tt.steps(s)
			got, set := s.Value()
			if got != tt.want || set != tt.set {
				t.Errorf("Value() = %d, %v, want %d, %v", got, set, tt.want, tt.set)
			}
		})
	}
}

func TestConditionSelector(t *testing.T) {
	c := NewConditionSelector()
	if c.Condition() != tcg.ConditionNearMint || c.Position() != 4 {
		t.Fatalf("default = %v at %d", c.Condition(), c.Position())
	}
	c.SetPosition(-2)
	if c.Condition() != tcg.ConditionDamaged {
		t.Errorf("SetPosition(-2) = %v", c.Condition())
	}
	c.SetPosition(3)
	if c.Condition() != tcg.ConditionLightlyPlayed {
		t.Errorf("SetPosition(3) = %v", c.Condition())
	}
}

func newForm(t *testing.T, game tcg.Game) *Form {
	f, err := NewForm(game)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestForm_SelectGameClearsGameValues(t *testing.T) {
	f := newForm(t, tcg.GameMTG)
	f.SetName("Lightning Bolt")
	f.SetRarity("Common")
	if err := f.SetField("cardType", "Instant"); err != nil {
		t.Fatal(err)
	}

	if err := f.SelectGame(tcg.GameYuGiOh); err != nil {
		t.Fatal(err)
	}
	if len(f.Values()) != 0 {
		t.Errorf("Values() after game switch = %v", f.Values())
	}
	if f.Name() != "Lightning Bolt" {
		t.Errorf("Name() = %q, base fields should survive", f.Name())
	}

	if err := f.SetField("manaCost", "{R}"); !errors.Is(err, tcg.ErrUnknownField) {
		t.Errorf("SetField(manaCost) on Yu-Gi-Oh error = %v", err)
	}
	if err := f.SetField("cardType", "Instant"); !errors.Is(err, tcg.ErrInvalidOption) {
		t.Errorf("SetField(cardType, Instant) on Yu-Gi-Oh error = %v", err)
	}
}

func TestForm_GradedToggleDiscards(t *testing.T) {
	f := newForm(t, tcg.GamePokemon)

	if err := f.SetGradingCompany(tcg.CompanyPSA); !errors.Is(err, ErrNotGraded) {
		t.Fatalf("SetGradingCompany() before graded error = %v", err)
	}

	f.SetGraded(true)
	if err := f.SetGradingCompany(tcg.CompanyBGS); err != nil {
		t.Fatal(err)
	}
	if err := f.SetGrade("9.5"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSubGrade("corners", "9"); err != nil {
		t.Fatal(err)
	}

	f.SetGraded(false)
	f.SetGraded(true)
	v := f.View()
	if v.Grading == nil || v.Grading.Company != "" || v.Grading.Grade != "" || v.Grading.SubGrades != nil {
		t.Errorf("grading after toggle = %+v", v.Grading)
	}

	f.SetGraded(false)
	f.SetName("Charizard")
	rec, err := f.Build()
	if err != nil {
		t.Fatal(err)
	}
	if rec.GradingInfo != nil {
		t.Errorf("ungraded record has grading %+v", rec.GradingInfo)
	}
}

func TestForm_GradingRules(t *testing.T) {
	f := newForm(t, tcg.GameMTG)
	f.SetGraded(true)
	if err := f.SetGrade("9"); !errors.Is(err, tcg.ErrUnknownCompany) {
		t.Errorf("SetGrade() without company error = %v", err)
	}
	if err := f.SetGradingCompany(tcg.CompanyPSA); err != nil {
		t.Fatal(err)
	}
	if err := f.SetGrade("9.5"); !errors.Is(err, tcg.ErrInvalidGrade) {
		t.Errorf("SetGrade(9.5) for PSA error = %v", err)
	}
	if err := f.SetSubGrade("centering", "9"); !errors.Is(err, tcg.ErrNoSubGrades) {
		t.Errorf("SetSubGrade() for PSA error = %v", err)
	}
	if err := f.SetGrade("9"); err != nil {
		t.Fatal(err)
	}

	f.SetName("Black Lotus")
	rec, err := f.Build()
	if err != nil {
		t.Fatal(err)
	}
	want := &tcg.GradingInfo{Company: tcg.CompanyPSA, Grade: "9"}
	if !reflect.DeepEqual(rec.GradingInfo, want) {
		t.Errorf("GradingInfo = %+v, want %+v", rec.GradingInfo, want)
	}
}

func TestForm_DescriptionLimit(t *testing.T) {
	f := newForm(t, tcg.GameMTG)
	full := strings.Repeat("é", tcg.MaxDescriptionLength)
	if err := f.SetDescription(full); err != nil {
		t.Fatalf("SetDescription(128 runes) error = %v", err)
	}
	if err := f.SetDescription(full + "x"); !errors.Is(err, ErrDescriptionTooLong) {
		t.Errorf("SetDescription(129 runes) error = %v", err)
	}
	if f.View().Description != full {
		t.Error("rejected input replaced the description")
	}
}

func TestForm_Validate(t *testing.T) {
	f := newForm(t, tcg.GameMTG)
	f.Copies().SetText("")
	f.SetGraded(true)

	err := f.Validate()
	var verr ValidationErrors
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() error = %v", err)
	}
	var fields []string
	for _, e := range verr {
		fields = append(fields, e.Field)
	}
	want := []string{"name", "copies", "gradingCompany", "grade"}
	if !reflect.DeepEqual(fields, want) {
		t.Errorf("invalid fields = %v, want %v", fields, want)
	}
}

func TestForm_ApplyPrefillSkipsInvalidValues(t *testing.T) {
	f := newForm(t, tcg.GamePokemon)
	f.ApplyPrefill(lookup.Prefill{
		Name:   "Mewtwo",
		Rarity: "Rare Holo",
		Image:  "https://images.pokemontcg.io/base1/10_hires.png",
		Values: map[string]string{"pokemonType": "Psychic", "stage": "Mega"},
	})

	v := f.View()
	if v.Name != "Mewtwo" || v.Rarity != "Rare Holo" || v.Image == "" {
		t.Errorf("View() = %+v", v)
	}
	if !reflect.DeepEqual(v.Values, map[string]string{"pokemonType": "Psychic"}) {
		t.Errorf("Values = %v", v.Values)
	}
}

func TestForm_ApplyPrefillReplacesMappedValues(t *testing.T) {
	f := newForm(t, tcg.GameYuGiOh)
	f.ApplyPrefill(lookup.Prefill{
		Name:   "Dark Magician",
		Values: map[string]string{"cardType": "Monster", "monsterType": "Normal", "level": "7", "attribute": "DARK"},
	})
	f.ApplyPrefill(lookup.Prefill{
		Name:   "Monster Reborn",
		Values: map[string]string{"cardType": "Spell"},
	})

	if got := f.View().Values; !reflect.DeepEqual(got, map[string]string{"cardType": "Spell"}) {
		t.Errorf("Values = %v", got)
	}
}

type adderFunc func(ctx context.Context, game tcg.Game, rec tcg.CardRecord) ([]tcg.CardRecord, error)

func (f adderFunc) AddCard(ctx context.Context, game tcg.Game, rec tcg.CardRecord) ([]tcg.CardRecord, error) {
	return f(ctx, game, rec)
}

func TestForm_SubmitResetsKeepingGame(t *testing.T) {
	f := newForm(t, tcg.GameFleshAndBlood)
	f.SetName("Command and Conquer")
	if err := f.SetField("pitValue", "1 (Red)"); err != nil {
		t.Fatal(err)
	}
	f.Copies().Set(4)

	var got tcg.CardRecord
	store := adderFunc(func(_ context.Context, game tcg.Game, rec tcg.CardRecord) ([]tcg.CardRecord, error) {
		if game != tcg.GameFleshAndBlood {
			t.Errorf("game = %s", game)
		}
		got = rec
		rec.ID = "10"
		return []tcg.CardRecord{rec}, nil
	})

	if _, err := f.Submit(context.Background(), store); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if got.Copies != 4 || got.Condition != tcg.ConditionNearMint || got.Language != "English" {
		t.Errorf("submitted record = %+v", got)
	}
	if attrs, ok := got.Attributes.(*tcg.FleshAndBloodAttributes); !ok || attrs.PitchValue != "1 (Red)" {
		t.Errorf("Attributes = %#v", got.Attributes)
	}
	if f.Game() != tcg.GameFleshAndBlood || f.Name() != "" || len(f.Values()) != 0 {
		t.Errorf("form after submit = %+v", f.View())
	}
}

func TestForm_SubmitFailureKeepsForm(t *testing.T) {
	f := newForm(t, tcg.GameMTG)
	f.SetName("Lightning Bolt")
	fail := errors.New("disk full")
	store := adderFunc(func(context.Context, tcg.Game, tcg.CardRecord) ([]tcg.CardRecord, error) {
		return nil, fail
	})

	if _, err := f.Submit(context.Background(), store); !errors.Is(err, fail) {
		t.Fatalf("Submit() error = %v", err)
	}
	if f.Name() != "Lightning Bolt" {
		t.Errorf("form was reset after a failed submit")
	}
}
