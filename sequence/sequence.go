// Package sequence provides a cyclic cursor over a fixed list of small
// integers. Its main use is as a puncturing matrix for the
// convolutional encoder: zero entries drop an output bit, non-zero
// entries keep it.
package sequence

import "errors"

// Sequence is a cyclic cursor over a fixed list of values. The zero
// value is not usable; construct with New.
type Sequence struct {
	numbers []uint8
	index   int
}

// New creates a Sequence over a copy of numbers, reset so that the
// first call to Next returns numbers[0].
func New(numbers []uint8) (*Sequence, error) {
	if len(numbers) == 0 {
		return nil, errors.New("sequence: need at least one element")
	}
	s := &Sequence{numbers: append([]uint8(nil), numbers...)}
	s.Reset()
	return s, nil
}

// Count returns the number of elements in the sequence.
func (s *Sequence) Count() int {
	return len(s.numbers)
}

// Zeroes returns the number of zero elements.
func (s *Sequence) Zeroes() int {
	n := 0
	for _, v := range s.numbers {
		if v == 0 {
			n++
		}
	}
	return n
}

// NonZeroes returns the number of non-zero elements.
func (s *Sequence) NonZeroes() int {
	return len(s.numbers) - s.Zeroes()
}

// Current returns the element under the cursor.
func (s *Sequence) Current() uint8 {
	return s.numbers[s.index]
}

// Next advances the cursor, wrapping after the last element, and
// returns the new current element.
func (s *Sequence) Next() uint8 {
	s.index++
	if s.index == len(s.numbers) {
		s.index = 0
	}
	return s.Current()
}

// Reset places the cursor so that the next call to Next returns the
// first element.
func (s *Sequence) Reset() {
	s.index = len(s.numbers) - 1
}
