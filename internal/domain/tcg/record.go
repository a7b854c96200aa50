package tcg

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const MaxDescriptionLength = 128

// CardRecord is one owned card. The JSON form is a flat object: the base keys
// below plus the keys of the game-specific attributes.
type CardRecord struct {
	ID          string
	Name        string
	Rarity      string
	Condition   Condition
	Copies      int
	Language    string
	IsFoil      bool
	Description string
	GradingInfo *GradingInfo
	Image       string
	Attributes  Attributes
}

type recordJSON struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Rarity      string       `json:"rarity,omitempty"`
	Condition   Condition    `json:"condition"`
	Copies      int          `json:"copies"`
	Language    string       `json:"language,omitempty"`
	IsFoil      bool         `json:"isFoil"`
	Description string       `json:"description,omitempty"`
	GradingInfo *GradingInfo `json:"gradingInfo,omitempty"`
	Image       string       `json:"image,omitempty"`
}

func (r CardRecord) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(recordJSON{
		ID:          r.ID,
		Name:        r.Name,
		Rarity:      r.Rarity,
		Condition:   r.Condition,
		Copies:      r.Copies,
		Language:    r.Language,
		IsFoil:      r.IsFoil,
		Description: r.Description,
		GradingInfo: r.GradingInfo,
		Image:       r.Image,
	})
	if err != nil || r.Attributes == nil {
		return base, err
	}

	merged := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	extra, err := json.Marshal(r.Attributes)
	if err != nil {
		return nil, err
	}
	var attrs map[string]json.RawMessage
	if err := json.Unmarshal(extra, &attrs); err != nil {
		return nil, err
	}
	for k, v := range attrs {
		if _, taken := merged[k]; !taken {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// DecodeRecord parses the flat JSON form of a record owned by game.
func DecodeRecord(game Game, data []byte) (CardRecord, error) {
	attrs := NewAttributes(game)
	if attrs == nil {
		return CardRecord{}, fmt.Errorf("%w: %q", ErrUnknownGame, game)
	}

	base := recordJSON{Condition: DefaultCondition}
	if err := json.Unmarshal(data, &base); err != nil {
		return CardRecord{}, fmt.Errorf("failed to decode %s record: %w", game, err)
	}
	if err := json.Unmarshal(data, attrs); err != nil {
		return CardRecord{}, fmt.Errorf("failed to decode %s attributes: %w", game, err)
	}

	return CardRecord{
		ID:          base.ID,
		Name:        base.Name,
		Rarity:      base.Rarity,
		Condition:   base.Condition,
		Copies:      base.Copies,
		Language:    base.Language,
		IsFoil:      base.IsFoil,
		Description: base.Description,
		GradingInfo: base.GradingInfo,
		Image:       base.Image,
		Attributes:  attrs,
	}, nil
}

// Validate checks the invariants a record must hold to be stored under game.
func (r CardRecord) Validate(game Game) error {
	var errs []error
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if r.Copies < 1 {
		errs = append(errs, fmt.Errorf("copies must be at least 1, got %d", r.Copies))
	}
	if !r.Condition.Valid() {
		errs = append(errs, fmt.Errorf("%w: %d", ErrUnknownCondition, int(r.Condition)))
	}
	if utf8.RuneCountInString(r.Description) > MaxDescriptionLength {
		errs = append(errs, fmt.Errorf("description exceeds %d characters", MaxDescriptionLength))
	}
	if r.Attributes != nil && r.Attributes.Game() != game {
		errs = append(errs, fmt.Errorf("%w: %s attributes on %s card", ErrAttributesGame, r.Attributes.Game(), game))
	}
	if r.GradingInfo != nil {
		if err := r.GradingInfo.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Clone returns a deep copy of r.
func (r CardRecord) Clone() CardRecord {
	out := r
	if r.GradingInfo != nil {
		g := *r.GradingInfo
		if r.GradingInfo.SubGrades != nil {
			s := *r.GradingInfo.SubGrades
			g.SubGrades = &s
		}
		out.GradingInfo = &g
	}
	if r.Attributes != nil {
		out.Attributes = cloneAttributes(r.Attributes)
	}
	return out
}

func cloneAttributes(attrs Attributes) Attributes {
	out := NewAttributes(attrs.Game())
	raw, err := json.Marshal(attrs)
	if err != nil || json.Unmarshal(raw, out) != nil {
		return attrs
	}
	return out
}
