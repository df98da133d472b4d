// Package bitpack streams fixed-width bit fields over a byte buffer.
// Blocks are packed contiguously MSB-first with no gaps; the caller
// sizes the buffer to hold ceil(blocks*width/8) bytes.
package bitpack

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Packer writes successive blockBits-wide values into a byte slice.
type Packer[T constraints.Unsigned] struct {
	out       []byte
	blockBits int
	pos       int
	shift     int // bits already used in out[pos]
}

// NewPacker creates a packer writing blockBits-wide blocks into out.
// The output must be zeroed by the caller; bits are OR-merged.
func NewPacker[T constraints.Unsigned](out []byte, blockBits int) (*Packer[T], error) {
	if err := checkWidth[T](blockBits); err != nil {
		return nil, err
	}
	return &Packer[T]{out: out, blockBits: blockBits}, nil
}

// Pack appends the low blockBits bits of block to the stream, most
// significant bit first.
func (p *Packer[T]) Pack(block T) {
	remaining := p.blockBits
	for remaining > 0 {
		take := 8 - p.shift
		if take > remaining {
			take = remaining
		}
		chunk := byte(block>>(remaining-take)) & byte(1<<take-1)
		p.out[p.pos] |= chunk << (8 - p.shift - take)
		p.shift += take
		if p.shift == 8 {
			p.pos++
			p.shift = 0
		}
		remaining -= take
	}
}

// BitsWritten returns the total number of bits packed so far.
func (p *Packer[T]) BitsWritten() int {
	return p.pos*8 + p.shift
}

// Unpacker reads successive blockBits-wide values from a byte slice.
type Unpacker[T constraints.Unsigned] struct {
	in        []byte
	blockBits int
	pos       int
	shift     int
}

// NewUnpacker creates an unpacker reading blockBits-wide blocks from in.
func NewUnpacker[T constraints.Unsigned](in []byte, blockBits int) (*Unpacker[T], error) {
	if err := checkWidth[T](blockBits); err != nil {
		return nil, err
	}
	return &Unpacker[T]{in: in, blockBits: blockBits}, nil
}

// Unpack reads the next block from the stream and returns it masked to
// blockBits bits.
func (u *Unpacker[T]) Unpack() T {
	var block T
	remaining := u.blockBits
	for remaining > 0 {
		take := 8 - u.shift
		if take > remaining {
			take = remaining
		}
		chunk := (u.in[u.pos] >> (8 - u.shift - take)) & byte(1<<take-1)
		block = block<<take | T(chunk)
		u.shift += take
		if u.shift == 8 {
			u.pos++
			u.shift = 0
		}
		remaining -= take
	}
	return block
}

func checkWidth[T constraints.Unsigned](blockBits int) error {
	width := 0
	for v := ^T(0); v != 0; v >>= 8 {
		width += 8
	}
	if blockBits < 1 || blockBits > width {
		return fmt.Errorf("bitpack: block width %d out of range for a %d-bit type", blockBits, width)
	}
	return nil
}
