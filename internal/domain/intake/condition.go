package intake

import "github.com/disgoorg/card-binder/internal/domain/tcg"

// ConditionSelector is a five position slider over the wear scale.
type ConditionSelector struct {
	pos int
}

func NewConditionSelector() *ConditionSelector {
	return &ConditionSelector{pos: int(tcg.DefaultCondition)}
}

func (c *ConditionSelector) Position() int { return c.pos }

func (c *ConditionSelector) Condition() tcg.Condition { return tcg.ConditionAt(c.pos) }

// SetPosition moves the slider, clamping to the ends of the scale.
func (c *ConditionSelector) SetPosition(pos int) {
	c.pos = int(tcg.ConditionAt(pos))
}

func (c *ConditionSelector) Set(cond tcg.Condition) error {
	if !cond.Valid() {
		return tcg.ErrUnknownCondition
	}
	c.pos = int(cond)
	return nil
}

func (c *ConditionSelector) Reset() {
	c.pos = int(tcg.DefaultCondition)
}
