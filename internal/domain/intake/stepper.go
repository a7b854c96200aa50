package intake

import (
	"errors"
	"strconv"
	"strings"
)

const (
	DefaultMinCopies = 1
	DefaultMaxCopies = 999
)

// Stepper is a bounded integer input. Out of range entries are clamped, not
// rejected. An empty stepper is allowed while editing but fails validation.
type Stepper struct {
	min, max int
	value    int
	empty    bool
}

func NewStepper(min, max, initial int) *Stepper {
	if max < min {
		max = min
	}
	s := &Stepper{min: min, max: max}
	s.Set(initial)
	return s
}

func NewCopiesStepper() *Stepper {
	return NewStepper(DefaultMinCopies, DefaultMaxCopies, DefaultMinCopies)
}

func (s *Stepper) Min() int { return s.min }
func (s *Stepper) Max() int { return s.max }

// Value returns the current value and whether one is set.
func (s *Stepper) Value() (int, bool) {
	return s.value, !s.empty
}

func (s *Stepper) Set(n int) {
	s.value = max(s.min, min(n, s.max))
	s.empty = false
}

func (s *Stepper) Increment() {
	if s.empty {
		s.Set(s.min)
		return
	}
	s.Set(s.value + 1)
}

func (s *Stepper) Decrement() {
	if s.empty {
		s.Set(s.min)
		return
	}
	s.Set(s.value - 1)
}

// SetText applies raw text input. Empty text clears the value, numbers are
// clamped and anything else is ignored. It reports whether the input was
// accepted.
func (s *Stepper) SetText(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		s.empty = true
		s.value = 0
		return true
	}
	n, err := strconv.Atoi(text)
	switch {
	case errors.Is(err, strconv.ErrRange):
		// too large for an int, still a number
		if strings.HasPrefix(text, "-") {
			n = s.min
		} else {
			n = s.max
		}
	case err != nil:
		return false
	}
	s.Set(n)
	return true
}

func (s *Stepper) Reset() {
	s.Set(s.min)
}
