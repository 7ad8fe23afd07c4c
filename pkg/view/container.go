package view

// Container holds the entry slots of one panel in render order.
type Container struct {
	name  string
	slots []*Slot
}

// NewContainer allocates n slots.
func NewContainer(name string, n int) *Container {
	if n < 0 {
		n = 0
	}
	c := &Container{name: name, slots: make([]*Slot, n)}
	for i := range c.slots {
		c.slots[i] = NewSlot(i)
	}
	return c
}

// Name returns the container identifier.
func (c *Container) Name() string { return c.name }

// Len returns the number of slots.
func (c *Container) Len() int { return len(c.slots) }

// Slot returns slot i, or nil when out of range.
func (c *Container) Slot(i int) *Slot {
	if i < 0 || i >= len(c.slots) {
		return nil
	}
	return c.slots[i]
}

// Slots returns the slots in order.
func (c *Container) Slots() []*Slot {
	out := make([]*Slot, len(c.slots))
	copy(out, c.slots)
	return out
}

// Markup renders every slot in order. The first error aborts.
func (c *Container) Markup() ([]string, error) {
	out := make([]string, 0, len(c.slots))
	for _, slot := range c.slots {
		html, err := slot.Markup()
		if err != nil {
			return nil, err
		}
		out = append(out, html)
	}
	return out, nil
}

// Unbind detaches every slot.
func (c *Container) Unbind() {
	for _, slot := range c.slots {
		slot.Unbind()
	}
}
