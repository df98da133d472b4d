package conv

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/icza/gog"
)

func decodeAll(d *Decoder, input []byte) []byte {
	out := make([]byte, d.CalculateOutputSize(len(input)))
	d.Reset(out)
	d.Decode(input)
	d.Flush()
	return out
}

func TestDecoderKnownVector(t *testing.T) {
	dec := gog.Must(NewDecoder(15, 3, []uint32{7, 5}))

	encoded := []byte{0x38, 0x67, 0xE2, 0xCE, 0xC0}
	got := decodeAll(dec, encoded)

	want := []byte{0x5C, 0xA2}
	if !bytes.Equal(got[:len(want)], want) {
		t.Errorf("Decode(%#v) = %#v, want prefix %#v", encoded, got, want)
	}
}

func TestDecoderValidation(t *testing.T) {
	if _, err := NewDecoder(1, 3, []uint32{7, 5}); err == nil {
		t.Error("depth below 2 should fail")
	}
	if _, err := NewDecoder(15, 1, []uint32{7, 5}); err == nil {
		t.Error("constraint length below 2 should fail")
	}
	if _, err := NewDecoder(15, 3, []uint32{7}); err == nil {
		t.Error("a single polynomial should fail")
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"Hello!",
		"Good morning, Captain! Are we awesome yet?",
		"a",
	}
	enc := gog.Must(NewEncoder(7, []uint32{0x5B, 0x79}))
	dec := gog.Must(NewDecoder(35, 7, []uint32{0x5B, 0x79}))

	for _, in := range inputs {
		encoded := encodeAll(enc, []byte(in))
		decoded := decodeAll(dec, encoded)
		if !bytes.Equal(decoded[:len(in)], []byte(in)) {
			t.Errorf("round trip of %q = %q", in, decoded[:len(in)])
		}
	}
}

func TestDecoderStreaming(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	input := make([]byte, 32)
	rng.Read(input)

	enc := gog.Must(NewEncoder(7, []uint32{0x5B, 0x79}))
	encoded := encodeAll(enc, input)

	dec := gog.Must(NewDecoder(35, 7, []uint32{0x5B, 0x79}))
	want := decodeAll(dec, encoded)

	for _, split := range []int{1, 13, len(encoded) / 2, len(encoded) - 1} {
		out := make([]byte, dec.CalculateOutputSize(len(encoded)))
		dec.Reset(out)
		dec.Decode(encoded[:split])
		dec.Decode(encoded[split:])
		dec.Flush()
		if !bytes.Equal(out, want) {
			t.Errorf("split at %d produced a different stream", split)
		}
	}
}

// flipBits flips count distinct bits of the buffer at random positions.
func flipBits(rng *rand.Rand, buf []byte, count int) {
	flipped := map[int]bool{}
	for len(flipped) < count {
		pos := rng.Intn(len(buf) * 8)
		if flipped[pos] {
			continue
		}
		flipped[pos] = true
		buf[pos/8] ^= 1 << uint(7-pos%8)
	}
}

func TestErrorCorrection(t *testing.T) {
	rng := rand.New(rand.NewSource(1701))

	enc := gog.Must(NewEncoder(7, []uint32{0x5B, 0x79}))
	dec := gog.Must(NewDecoder(35, 7, []uint32{0x5B, 0x79}))

	inputs := [][]byte{
		[]byte("Hello world, are we cool yet?"),
		[]byte("0123456789012345678901234567890123456789012345678901234567890123"),
		[]byte("The quick brown fox jumps over the lazy dog."),
	}

	for _, input := range inputs {
		clean := encodeAll(enc, input)

		for errorCount := 1; errorCount <= 3; errorCount++ {
			for trial := 0; trial < 100; trial++ {
				corrupted := append([]byte(nil), clean...)
				flipBits(rng, corrupted, errorCount)

				decoded := decodeAll(dec, corrupted)
				if !bytes.Equal(decoded[:len(input)], input) {
					t.Fatalf("%d-bit error, trial %d: decode failed for %q", errorCount, trial, input)
				}
			}
		}
	}
}

func TestDecoderOutputSize(t *testing.T) {
	dec := gog.Must(NewDecoder(35, 7, []uint32{0x5B, 0x79}))
	// K=7, n=2: the tail occupies ceil(14/8) = 2 bytes.
	tests := []struct{ in, want int }{
		{130, 66},
		{14, 8},
	}
	for _, tt := range tests {
		if got := dec.CalculateOutputSize(tt.in); got != tt.want {
			t.Errorf("CalculateOutputSize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
