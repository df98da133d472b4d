// Package combination enumerates bitmasks of a fixed Hamming weight.
// The block-code decoder uses it to walk every candidate error pattern
// up to the code's correction capability.
package combination

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Combination produces, on successive calls to Next, every mask of
// length bits with exactly weight bits set. Masks appear in the
// lexicographic order of their bit-position vectors, where position 0
// is the mask's MSB (bit length-1 of T). After the last combination,
// Next returns 0 indefinitely.
type Combination[T constraints.Unsigned] struct {
	length int
	x      []int
	done   bool
}

// New creates an enumerator of weight-bit masks over the low length
// bits of T.
func New[T constraints.Unsigned](length, weight int) (*Combination[T], error) {
	width := typeWidth[T]()
	if length < 1 || length > width {
		return nil, fmt.Errorf("combination: length %d out of range for a %d-bit type", length, width)
	}
	if weight < 0 || weight > length {
		return nil, fmt.Errorf("combination: weight %d out of range for length %d", weight, length)
	}
	c := &Combination[T]{
		length: length,
		x:      make([]int, weight),
	}
	for i := range c.x {
		c.x[i] = i
	}
	// Weight zero is the empty enumeration.
	if weight == 0 {
		c.done = true
	}
	return c, nil
}

// Next returns the next mask, or 0 once the enumeration is exhausted.
func (c *Combination[T]) Next() T {
	if c.done {
		return 0
	}

	result := c.currentMask()

	// Advance the position array: find the rightmost position not yet
	// at its maximum, bump it, and restack the positions to its right.
	for i := len(c.x) - 1; i >= 0; i-- {
		if c.x[i] == c.length-(len(c.x)-i) {
			if i == 0 {
				c.done = true
				break
			}
			c.x[i] = c.x[i-1] + 2
			for j := i + 1; j < len(c.x); j++ {
				c.x[j] = c.x[j-1] + 1
			}
		} else {
			c.x[i]++
			break
		}
	}

	return result
}

func (c *Combination[T]) currentMask() T {
	var result T
	for _, pos := range c.x {
		result |= 1 << (c.length - pos - 1)
	}
	return result
}

func typeWidth[T constraints.Unsigned]() int {
	width := 0
	for v := ^T(0); v != 0; v >>= 8 {
		width += 8
	}
	return width
}
