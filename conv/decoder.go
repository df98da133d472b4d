package conv

import (
	"fmt"
	"log"
	"math"

	"github.com/kf4mot/gofec/bit"
)

// maxMetric is the saturating "infinity" for accumulated error
// metrics. A state carrying it is unreachable and skipped.
const maxMetric = math.MaxUint32

// state is one trellis node: the encoder shift-register contents it
// represents are implied by its index within the step.
type state struct {
	// Accumulated error metric along the best path leading here.
	metric uint32
	// Presumed encoder input bit that led to this state.
	presumedInputBit byte
	// Index of the predecessor state in the previous step, -1 if none.
	prev int32
}

// step holds every possible state for one trellis step.
type step struct {
	states       []state
	lowestMetric uint32
	lowestState  int32
}

func (s *step) reset() {
	s.lowestMetric = maxMetric
	s.lowestState = -1
	for i := range s.states {
		s.states[i] = state{metric: maxMetric, prev: -1}
	}
}

// Decoder decodes convolutional code with the Viterbi algorithm over
// hard bits. It keeps a sliding window of depth trellis steps; once
// the window fills, each consumed step emits one decoded bit found by
// tracing depth-1 back-pointers from the current best state.
//
// Decoded bits are OR-merged MSB first into the output buffer, which
// the caller must zero before Reset. The usual call sequence is Reset,
// any number of Decode calls, then one Flush.
type Decoder struct {
	depth            int
	constraintLength int
	polynomials      []uint32

	window    []step
	windowPos int
	stepCount int
	traceback []byte

	out       []byte
	outAddr   int
	outBitPos int
}

// NewDecoder creates a Viterbi decoder matching an encoder with the
// given constraint length and polynomials. depth is the traceback
// window size in trellis steps; at least 2, and about five times the
// constraint length for reliable decoding.
func NewDecoder(depth, constraintLength int, polynomials []uint32) (*Decoder, error) {
	if depth < 2 {
		return nil, fmt.Errorf("conv: depth %d must be at least 2", depth)
	}
	if constraintLength < 2 || constraintLength > 24 {
		return nil, fmt.Errorf("conv: constraint length %d out of range [2, 24]", constraintLength)
	}
	if len(polynomials) < 2 {
		return nil, fmt.Errorf("conv: need at least two polynomials, got %d", len(polynomials))
	}

	stateCount := 1 << (constraintLength - 1)
	d := &Decoder{
		depth:            depth,
		constraintLength: constraintLength,
		polynomials:      append([]uint32(nil), polynomials...),
		window:           make([]step, depth),
		traceback:        make([]byte, depth-1),
	}
	for i := range d.window {
		d.window[i].states = make([]state, stateCount)
	}
	return d, nil
}

// Reset re-initialises the decoder and targets it at a new output
// buffer. The buffer must be zeroed.
func (d *Decoder) Reset(output []byte) {
	log.Printf("[DEBUG] conv: decoder reset, depth %d, %d states", d.depth, len(d.window[0].states))
	for i := range d.window {
		d.window[i].reset()
	}

	// The encoder starts in the zero state, so only that state is
	// reachable at step zero.
	d.window[0].states[0].metric = 0
	d.window[0].lowestMetric = 0
	d.window[0].lowestState = 0

	d.windowPos = 0
	d.stepCount = 0
	d.out = output
	d.outAddr = 0
	d.outBitPos = 7
}

// CalculateOutputSize returns the number of output bytes to reserve
// for decoding inputSize bytes of encoded input, including the bytes
// covering the encoder's flush tail.
func (d *Decoder) CalculateOutputSize(inputSize int) int {
	tailBits := d.constraintLength * len(d.polynomials)
	tailBytes := (tailBits + 7) / 8
	return (inputSize-tailBytes)/len(d.polynomials) + tailBytes
}

// Decode consumes encoded bits MSB first, one trellis step per
// polynomial-count bits, and emits decoded bits once the traceback
// window has filled. It may be called repeatedly.
func (d *Decoder) Decode(input []byte) {
	if d.out == nil {
		panic("conv: decoder used before Reset")
	}
	if len(input) == 0 {
		return
	}

	inAddr := 0
	inBitPos := 7

	for inAddr < len(input) {
		// Collect one step's worth of received bits, first-read bit in
		// the highest position. The input may run out mid-step when
		// the output count does not divide the bit count.
		var receivedBits uint32
		for o := 0; o < len(d.polynomials) && inAddr < len(input); o++ {
			receivedBits <<= 1
			receivedBits |= uint32(input[inAddr]>>uint(inBitPos)) & 1

			if inBitPos == 0 {
				inAddr++
				inBitPos = 7
			} else {
				inBitPos--
			}
		}

		d.step(receivedBits)
	}
}

// step advances the trellis by one step for the given received bits.
func (d *Decoder) step(receivedBits uint32) {
	nextWindowPos := d.windowPos + 1
	if nextWindowPos == d.depth {
		nextWindowPos = 0
	}

	current := &d.window[d.windowPos]
	next := &d.window[nextWindowPos]
	for i := range current.states {
		// States at infinity are unreachable, skip them.
		if current.states[i].metric == maxMetric {
			continue
		}
		d.updateMetric(current, next, int32(i), receivedBits, 0)
		d.updateMetric(current, next, int32(i), receivedBits, 1)
	}

	if d.stepCount > d.depth-2 {
		// The window is full: trace back depth-1 states from the best
		// state of the new step and emit that state's input bit.
		slot, idx := nextWindowPos, next.lowestState
		for i := 0; i < d.depth-1; i++ {
			idx = d.window[slot].states[idx].prev
			slot--
			if slot < 0 {
				slot = d.depth - 1
			}
		}
		d.emitBit(d.window[slot].states[idx].presumedInputBit)
	}

	// Reset the slot after the next one so its back-pointers can never
	// leak into the following step.
	afterNextWindowPos := nextWindowPos + 1
	if afterNextWindowPos == d.depth {
		afterNextWindowPos = 0
	}
	d.window[afterNextWindowPos].reset()

	d.windowPos = nextWindowPos
	d.stepCount++
}

// updateMetric scores the transition out of state currentIdx under the
// presumed input bit and records it in the next step when it is at
// least as good as what is stored there.
func (d *Decoder) updateMetric(current, next *step, currentIdx int32, receivedBits uint32, presumedInputBit byte) {
	nextSR := uint32(currentIdx) | uint32(presumedInputBit)<<(d.constraintLength-1)
	nextIdx := nextSR >> 1

	distance := uint32(bit.HammingDistance(uint64(d.encoderOutput(nextSR)), uint64(receivedBits)))

	oldMetric := current.states[currentIdx].metric
	metric := oldMetric + distance
	if metric < oldMetric {
		metric = maxMetric
	}

	nextState := &next.states[nextIdx]
	if nextState.metric >= metric {
		nextState.metric = metric
		nextState.presumedInputBit = presumedInputBit
		nextState.prev = currentIdx

		if metric < next.lowestMetric {
			next.lowestMetric = metric
			next.lowestState = int32(nextIdx)
		}
	}
}

// encoderOutput reconstructs the encoder's output bits for a given
// shift register value.
func (d *Decoder) encoderOutput(shiftReg uint32) uint32 {
	var output uint32
	for _, poly := range d.polynomials {
		output <<= 1
		output |= uint32(bit.Parity(uint64(shiftReg & poly)))
	}
	return output
}

// Flush drains the remaining window contents: the best path of the
// last step is traced back and its input bits are emitted in forward
// order. The decoder is spent afterwards; call Reset before reusing it.
func (d *Decoder) Flush() {
	tracebackDepth := d.stepCount
	if tracebackDepth > d.depth-1 {
		tracebackDepth = d.depth - 1
	}

	remaining := d.traceback[:tracebackDepth]
	slot, idx := d.windowPos, d.window[d.windowPos].lowestState
	for i := tracebackDepth; i > 0; i-- {
		remaining[i-1] = d.window[slot].states[idx].presumedInputBit
		idx = d.window[slot].states[idx].prev
		slot--
		if slot < 0 {
			slot = d.depth - 1
		}
	}

	for _, b := range remaining {
		d.emitBit(b)
	}
}

func (d *Decoder) emitBit(b byte) {
	d.out[d.outAddr] |= b << uint(d.outBitPos)
	if d.outBitPos == 0 {
		d.outAddr++
		d.outBitPos = 7
	} else {
		d.outBitPos--
	}
}
