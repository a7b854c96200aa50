package tcg

import "strconv"

// DetailField is one label/value row of the card details view.
type DetailField struct {
	Label     string `json:"label"`
	Value     string `json:"value"`
	Highlight bool   `json:"highlight,omitempty"`
}

// Details renders record for the details view: base fields first, then the
// game-specific fields in form order. A description row comes last when the
// card has one.
func Details(game Game, record CardRecord) []DetailField {
	fields := []DetailField{
		{Label: "Card Name", Value: record.Name},
		{Label: "Rarity", Value: dash(record.Rarity)},
		{Label: "Condition", Value: record.Condition.String(), Highlight: true},
		{Label: "Copies", Value: strconv.Itoa(record.Copies)},
		{Label: "Language", Value: dash(record.Language)},
		{Label: "Foil", Value: yesNo(record.IsFoil)},
	}
	if record.GradingInfo != nil {
		fields = append(fields, DetailField{Label: "Grading", Value: record.GradingInfo.Label()})
		if sub := record.GradingInfo.SubGrades; !sub.Empty() {
			fields = append(fields,
				DetailField{Label: "Centering", Value: dash(sub.Centering)},
				DetailField{Label: "Corners", Value: dash(sub.Corners)},
				DetailField{Label: "Edges", Value: dash(sub.Edges)},
				DetailField{Label: "Surface", Value: dash(sub.Surface)},
			)
		}
	}

	values := AttributeValues(record.Attributes)
	for _, f := range gameFields[game] {
		fields = append(fields, DetailField{Label: f.Label, Value: dash(values[f.Name])})
	}
	if record.Description != "" {
		fields = append(fields, DetailField{Label: "Description", Value: record.Description})
	}
	return fields
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
