package block

import "github.com/kf4mot/gofec/binmat"

// Hamming(7,4) matrices in 8-bit padded form. The codeword occupies
// the low 7 bits of a byte; the source block its low 4 bits.
var (
	hammingGenerator = binmat.FromBytes(8, 8, []byte{
		0,
		0b00001101,
		0b00001011,
		0b00001000,
		0b00000111,
		0b00000100,
		0b00000010,
		0b00000001,
	})

	hammingParityCheck = binmat.FromBytes(8, 8, []byte{
		0,
		0,
		0,
		0,
		0,
		0b01010101,
		0b00110011,
		0b00001111,
	})

	hammingDecoder = binmat.FromBytes(8, 8, []byte{
		0,
		0,
		0,
		0,
		0b00010000,
		0b00000100,
		0b00000010,
		0b00000001,
	})
)

// NewHamming creates the Hamming(7,4) code, which corrects a single
// bit error per codeword.
func NewHamming() *Code {
	code, err := New(1, 7, hammingGenerator, hammingParityCheck, hammingDecoder)
	if err != nil {
		panic(err)
	}
	return code
}
