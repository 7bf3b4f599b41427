package rng

// Counter wraps a Source and records how many values were drawn from it.
type Counter struct {
	src   Source
	draws int
}

// NewCounter wraps src.
func NewCounter(src Source) *Counter {
	return &Counter{src: src}
}

// Float64 draws from the wrapped source.
func (c *Counter) Float64() float64 {
	c.draws++
	return c.src()
}

// Draws returns the number of values drawn so far.
func (c *Counter) Draws() int {
	return c.draws
}
