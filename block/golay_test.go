package block

import (
	"testing"

	"github.com/kf4mot/gofec/combination"
)

func TestGolayRoundTrip(t *testing.T) {
	c := NewGolay()
	for src := uint64(0); src <= 0xFFF; src++ {
		coded := c.Encode(src)
		if coded>>24 != 0 {
			t.Fatalf("Encode(%#03x) = %#x exceeds 24 bits", src, coded)
		}
		if coded>>12&0xFFF != src {
			t.Fatalf("Encode(%#03x) = %#x does not carry the data bits", src, coded)
		}
		decoded, ok := c.Decode(coded)
		if !ok || decoded != src {
			t.Fatalf("Decode(Encode(%#03x)) = (%#x, %v)", src, decoded, ok)
		}
	}
}

// errorSweep corrupts every codeword with every error mask of the
// given weight and expects full correction. stride subsamples the
// source space.
func errorSweep(t *testing.T, c *Code, weight int, stride uint64) {
	t.Helper()
	for src := uint64(0); src <= 0xFFF; src += stride {
		coded := c.Encode(src)
		comb, err := combination.New[uint64](24, weight)
		if err != nil {
			t.Fatal(err)
		}
		for mask := comb.Next(); mask != 0; mask = comb.Next() {
			decoded, ok := c.Decode(coded ^ mask)
			if !ok || decoded != src {
				t.Fatalf("weight %d: Decode(%#06x ^ %#06x) = (%#x, %v), want (%#03x, true)",
					weight, coded, mask, decoded, ok, src)
			}
		}
	}
}

func TestGolayOneBitErrors(t *testing.T) {
	errorSweep(t, NewGolay(), 1, 1)
}

func TestGolayTwoBitErrors(t *testing.T) {
	stride := uint64(1)
	if testing.Short() {
		stride = 16
	}
	errorSweep(t, NewGolay(), 2, stride)
}

func TestGolayThreeBitErrors(t *testing.T) {
	stride := uint64(1)
	if testing.Short() {
		stride = 64
	}
	errorSweep(t, NewGolay(), 3, stride)
}

func TestGolayUncorrectable(t *testing.T) {
	c := NewGolay()
	// Golay has minimum distance 8, so a weight-4 error can never
	// match any error pattern of weight at most 3: the decoder must
	// report failure rather than mis-correct.
	for _, src := range []uint64{0x000, 0x5A5, 0xFFF, 0x123} {
		coded := c.Encode(src)
		for _, mask := range []uint64{0b1111, 0xF00000, 0x111100} {
			decoded, ok := c.Decode(coded ^ mask)
			if ok || decoded != 0 {
				t.Errorf("Decode(%#06x ^ %#06x) = (%#x, %v), want (0, false)", coded, mask, decoded, ok)
			}
		}
	}
}
