// Package conv implements convolutional coding: a streaming encoder
// with arbitrary generator polynomials and optional puncturing, and a
// hard-decision Viterbi decoder with a bounded traceback window.
//
// A polynomial of width W is a tap mask where bit i taps position i of
// the shift register; the encoder writes the newest input bit into bit
// K-1 and shifts right. Interoperating with the textbook
// oldest-tap-is-MSB convention requires bit-reversing the polynomials,
// shifted right by one.
package conv

import (
	"errors"
	"fmt"

	"github.com/kf4mot/gofec/bit"
	"github.com/kf4mot/gofec/sequence"
)

// Encoder produces convolutional code from a stream of input bytes.
// Output bits are written MSB first and OR-merged into the output
// buffer, so the buffer must be zeroed before the first Reset.
//
// The usual call sequence is Reset, any number of Encode calls, then
// one Flush. After Flush the encoder is spent until the next Reset.
type Encoder struct {
	constraintLength int
	polynomials      []uint32
	puncturing       *sequence.Sequence

	shiftReg  uint32
	out       []byte
	outAddr   int
	outBitPos int
}

// NewEncoder creates a non-punctured convolutional encoder with the
// given constraint length and generator polynomials. Each polynomial
// corresponds to one output bit per input bit, so the code rate is the
// reciprocal of the number of polynomials.
func NewEncoder(constraintLength int, polynomials []uint32) (*Encoder, error) {
	punct, err := sequence.New([]uint8{1})
	if err != nil {
		return nil, err
	}
	return NewPuncturedEncoder(constraintLength, polynomials, punct)
}

// NewPuncturedEncoder creates a convolutional encoder that drops
// output bits wherever the puncturing sequence yields zero.
func NewPuncturedEncoder(constraintLength int, polynomials []uint32, puncturing *sequence.Sequence) (*Encoder, error) {
	if constraintLength < 2 || constraintLength > 32 {
		return nil, fmt.Errorf("conv: constraint length %d out of range [2, 32]", constraintLength)
	}
	if len(polynomials) < 2 {
		return nil, fmt.Errorf("conv: need at least two polynomials, got %d", len(polynomials))
	}
	if puncturing == nil {
		return nil, errors.New("conv: puncturing sequence must not be nil")
	}
	return &Encoder{
		constraintLength: constraintLength,
		polynomials:      append([]uint32(nil), polynomials...),
		puncturing:       puncturing,
	}, nil
}

// Reset re-initialises the encoder and targets it at a new output
// buffer. The buffer must be zeroed.
func (e *Encoder) Reset(output []byte) {
	e.puncturing.Reset()
	e.shiftReg = 0
	e.out = output
	e.outAddr = 0
	e.outBitPos = 7
}

// CalculateOutputSize returns the number of output bytes needed to
// encode and flush inputSize bytes of input.
func (e *Encoder) CalculateOutputSize(inputSize int) int {
	// Non-punctured output bits: one bit per polynomial for every
	// input bit plus the flush cycles.
	outputBits := (inputSize*8 + e.constraintLength) * len(e.polynomials)

	t := outputBits * e.puncturing.NonZeroes()
	puncturedBits := t / e.puncturing.Count()
	if t%e.puncturing.Count() != 0 {
		puncturedBits++
	}

	return (puncturedBits + 7) / 8
}

// Encode consumes input bits MSB first and appends the encoded bits at
// the output cursor. It may be called repeatedly; the result equals a
// single call on the concatenated input.
func (e *Encoder) Encode(input []byte) {
	if e.out == nil {
		panic("conv: encoder used before Reset")
	}
	for _, b := range input {
		for inBitPos := 7; inBitPos >= 0; inBitPos-- {
			e.shiftReg >>= 1
			e.shiftReg |= uint32((b>>uint(inBitPos))&1) << (e.constraintLength - 1)
			e.produceOutput()
		}
	}
}

// Flush runs the tail cycles that drain the shift register. The
// encoder is spent afterwards; call Reset before reusing it.
func (e *Encoder) Flush() {
	for i := 0; i < e.constraintLength; i++ {
		e.shiftReg >>= 1
		e.produceOutput()
	}
}

func (e *Encoder) produceOutput() {
	for _, poly := range e.polynomials {
		// Zero in the puncturing sequence drops this output bit.
		if e.puncturing.Next() == 0 {
			continue
		}

		if e.outBitPos == 7 {
			e.out[e.outAddr] = 0
		}
		e.out[e.outAddr] |= bit.Parity(uint64(e.shiftReg&poly)) << uint(e.outBitPos)

		if e.outBitPos == 0 {
			e.outAddr++
			e.outBitPos = 7
		} else {
			e.outBitPos--
		}
	}
}
