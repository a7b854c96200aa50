package tcg

import "errors"

var (
	ErrUnknownGame      = errors.New("unknown game")
	ErrUnknownCondition = errors.New("unknown condition")
	ErrUnknownField     = errors.New("unknown field")
	ErrInvalidOption    = errors.New("value is not one of the field options")
	ErrAttributesGame   = errors.New("attributes do not belong to game")
	ErrUnknownCompany   = errors.New("unknown grading company")
	ErrInvalidGrade     = errors.New("grade is not on the company scale")
	ErrNoSubGrades      = errors.New("grading company does not issue sub-grades")
)
