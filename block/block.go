// Package block implements linear block codes over GF(2), driven by a
// generator, parity-check and decode matrix. Decoding is syndrome
// based: a non-zero syndrome triggers a scan over every error pattern
// up to the code's correction capability.
//
// The generic engine works with any consistent matrix triple; see
// NewGolay and NewHamming for ready-made codes.
package block

import (
	"fmt"

	"github.com/kf4mot/gofec/binmat"
	"github.com/kf4mot/gofec/combination"
)

// Code is a linear block code. Matrix shapes follow the storage
// convention of the matrix engine: every dimension is rounded up to a
// multiple of 8, with unused rows and columns zero.
type Code struct {
	maxErrors    int
	codewordBits int
	generator    binmat.Matrix
	parityCheck  binmat.Matrix
	decoder      binmat.Matrix

	// Error patterns of weight 1..maxErrors with their syndromes,
	// ordered by weight then enumeration order, built once at
	// construction so decoding allocates nothing.
	syndromeTable []maskSyndrome
}

type maskSyndrome struct {
	mask     uint64
	syndrome uint64
}

// New creates a block code from its matrices.
//
// The generator maps a source block (column vector of generator.Cols
// bits) to a codeword of generator.Rows bits; the parity check maps a
// codeword to a syndrome; the decoder maps a codeword back to a source
// block. codewordBits is the effective codeword width, bounding the
// error patterns tried during correction, and maxErrors the number of
// bit errors the code can correct.
func New(maxErrors, codewordBits int, generator, parityCheck, decoder binmat.Matrix) (*Code, error) {
	if maxErrors < 0 {
		return nil, fmt.Errorf("block: maxErrors must not be negative, got %d", maxErrors)
	}
	if codewordBits < 1 || codewordBits > generator.Rows() {
		return nil, fmt.Errorf("block: codeword width %d out of range for a %d-row generator", codewordBits, generator.Rows())
	}
	if parityCheck.Cols() != generator.Rows() {
		return nil, fmt.Errorf("block: parity check has %d columns, want %d", parityCheck.Cols(), generator.Rows())
	}
	if decoder.Cols() != generator.Rows() || decoder.Rows() != generator.Cols() {
		return nil, fmt.Errorf("block: decoder is %dx%d, want %dx%d",
			decoder.Rows(), decoder.Cols(), generator.Cols(), generator.Rows())
	}
	c := &Code{
		maxErrors:    maxErrors,
		codewordBits: codewordBits,
		generator:    generator,
		parityCheck:  parityCheck,
		decoder:      decoder,
	}
	for weight := 1; weight <= maxErrors; weight++ {
		comb, err := combination.New[uint64](codewordBits, weight)
		if err != nil {
			return nil, err
		}
		for mask := comb.Next(); mask != 0; mask = comb.Next() {
			c.syndromeTable = append(c.syndromeTable, maskSyndrome{mask: mask, syndrome: c.parityCheck.MulVec(mask)})
		}
	}
	return c, nil
}

// Encode maps a source block to its codeword.
func (c *Code) Encode(src uint64) uint64 {
	return c.generator.MulVec(src)
}

// Syndrome returns the parity-check product of a codeword; zero iff
// the codeword is in the code.
func (c *Code) Syndrome(codeword uint64) uint64 {
	return c.parityCheck.MulVec(codeword)
}

// Decode maps a codeword back to its source block, correcting up to
// the code's maximum number of bit errors. It returns (0, false) when
// no error pattern of weight 1..maxErrors reproduces the syndrome or
// no consistent correction exists. A heavier error whose syndrome
// matches such a pattern is corrected to a different codeword and
// reported as ok.
func (c *Code) Decode(codeword uint64) (uint64, bool) {
	syndrome := c.Syndrome(codeword)
	if syndrome != 0 {
		fixed, ok := c.fixCodeword(codeword, syndrome)
		if !ok {
			return 0, false
		}
		codeword = fixed
	}
	return c.decoder.MulVec(codeword), true
}

// fixCodeword scans the error patterns of weight 1..maxErrors until
// one reproduces the observed syndrome.
func (c *Code) fixCodeword(codeword, syndrome uint64) (uint64, bool) {
	for _, entry := range c.syndromeTable {
		if entry.syndrome != syndrome {
			continue
		}
		result := codeword ^ entry.mask
		if c.Syndrome(result) != 0 {
			// The pattern matches the syndrome but does not yield a
			// valid codeword: unfixable.
			return 0, false
		}
		return result, true
	}
	return 0, false
}
