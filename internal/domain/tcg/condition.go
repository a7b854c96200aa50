package tcg

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Condition is a position on the wear scale, Damaged (worst) to Near Mint (best).
type Condition int

const (
	ConditionDamaged Condition = iota
	ConditionHeavilyPlayed
	ConditionModeratelyPlayed
	ConditionLightlyPlayed
	ConditionNearMint
)

const DefaultCondition = ConditionNearMint

// Conditions is the scale ordered worst to best.
var Conditions = []Condition{
	ConditionDamaged,
	ConditionHeavilyPlayed,
	ConditionModeratelyPlayed,
	ConditionLightlyPlayed,
	ConditionNearMint,
}

var conditionInfo = [...]struct {
	code  string
	label string
}{
	{"DMG", "Damaged"},
	{"HP", "Heavily Played"},
	{"MP", "Moderately Played"},
	{"LP", "Lightly Played"},
	{"NM", "Near Mint"},
}

// ConditionAt maps a selector position onto the scale, clamping out of range positions.
func ConditionAt(pos int) Condition {
	return Condition(max(0, min(pos, len(conditionInfo)-1)))
}

func ParseCondition(s string) (Condition, error) {
	s = strings.TrimSpace(s)
	for i, info := range conditionInfo {
		if strings.EqualFold(s, info.code) || strings.EqualFold(s, info.label) {
			return Condition(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCondition, s)
}

func (c Condition) Valid() bool {
	return c >= ConditionDamaged && c <= ConditionNearMint
}

func (c Condition) Code() string {
	if !c.Valid() {
		return ""
	}
	return conditionInfo[c].code
}

func (c Condition) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Condition(%d)", int(c))
	}
	return conditionInfo[c].label
}

// Label is the "NM (Near Mint)" form shown next to the selector.
func (c Condition) Label() string {
	return fmt.Sprintf("%s (%s)", c.Code(), c.String())
}

func (c Condition) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCondition, int(c))
	}
	return json.Marshal(c.String())
}

func (c *Condition) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCondition(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
