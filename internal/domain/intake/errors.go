package intake

import (
	"errors"
	"strings"
)

var (
	ErrDescriptionTooLong = errors.New("description is limited to 128 characters")
	ErrNotGraded          = errors.New("card is not marked as graded")
	ErrUnknownSubGrade    = errors.New("unknown sub-grade")
	ErrUnknownLanguage    = errors.New("unknown language")
	ErrNoSelection        = errors.New("no card selected")
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors lists every problem found with a form.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}
