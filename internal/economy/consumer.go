package economy

// ResourceConsumer is a timed requirement: RequiredAmount units of Required
// must arrive within Delay turns, or the consumer is destroyed for good.
type ResourceConsumer struct {
	Required       ResourceType `json:"required"`
	RequiredAmount int          `json:"required_amount"`
	Delay          int          `json:"delay"`

	TurnsLeft      int  `json:"turns_left"`
	AmountConsumed int  `json:"amount_consumed"`
	Destroyed      bool `json:"destroyed"`
}

// NewResourceConsumer creates a consumer at the start of its first cycle.
func NewResourceConsumer(required ResourceType, amount, delay int) *ResourceConsumer {
	c := &ResourceConsumer{
		Required:       required,
		RequiredAmount: amount,
		Delay:          delay,
	}
	c.reset()
	return c
}

// Consume accepts one unit of r. It reports false when the consumer is
// destroyed or needs a different resource. Over-delivery is accepted.
func (c *ResourceConsumer) Consume(r ResourceType) bool {
	if c.Destroyed || r != c.Required {
		return false
	}
	c.AmountConsumed++
	return true
}

// Satisfied reports whether the current cycle's requirement has been met.
func (c *ResourceConsumer) Satisfied() bool {
	return c.AmountConsumed >= c.RequiredAmount
}

// EndTurn advances the cycle by one turn. When the cycle runs out the
// consumer is destroyed unless satisfied; the counters start over either way.
func (c *ResourceConsumer) EndTurn() {
	if c.Destroyed {
		return
	}

	c.TurnsLeft--
	if c.TurnsLeft > 0 {
		return
	}

	if !c.Satisfied() {
		c.Destroyed = true
	}
	c.reset()
}

func (c *ResourceConsumer) reset() {
	c.TurnsLeft = c.Delay
	c.AmountConsumed = 0
}
