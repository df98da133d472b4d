package block

import "github.com/kf4mot/gofec/binmat"

// Golay(24,12) matrices, stored in 32/16-bit padded form. The codeword
// is data<<12|parity with the data bits in positions 23..12.
var (
	golayGenerator = binmat.FromBytes(32, 16, []byte{
		0, 0,
		0, 0,
		0, 0,
		0, 0,
		0, 0,
		0, 0,
		0, 0,
		0, 0,
		0b00001000, 0b00000000,
		0b00000100, 0b00000000,
		0b00000010, 0b00000000,
		0b00000001, 0b00000000,
		0b00000000, 0b10000000,
		0b00000000, 0b01000000,
		0b00000000, 0b00100000,
		0b00000000, 0b00010000,
		0b00000000, 0b00001000,
		0b00000000, 0b00000100,
		0b00000000, 0b00000010,
		0b00000000, 0b00000001,
		0b00001001, 0b11110001,
		0b00000100, 0b11111010,
		0b00000010, 0b01111101,
		0b00001001, 0b00111110,
		0b00001100, 0b10011101,
		0b00001110, 0b01001110,
		0b00001111, 0b00100101,
		0b00001111, 0b10010010,
		0b00000111, 0b11001001,
		0b00000011, 0b11100110,
		0b00000101, 0b01010111,
		0b00001010, 0b10101011,
	})

	golayParityCheck = binmat.FromBytes(16, 32, []byte{
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0b10011111, 0b00011000, 0b00000000,
		0, 0b01001111, 0b10100100, 0b00000000,
		0, 0b00100111, 0b11010010, 0b00000000,
		0, 0b10010011, 0b11100001, 0b00000000,
		0, 0b11001001, 0b11010000, 0b10000000,
		0, 0b11100100, 0b11100000, 0b01000000,
		0, 0b11110010, 0b01010000, 0b00100000,
		0, 0b11111001, 0b00100000, 0b00010000,
		0, 0b01111100, 0b10010000, 0b00001000,
		0, 0b00111110, 0b01100000, 0b00000100,
		0, 0b01010101, 0b01110000, 0b00000010,
		0, 0b10101010, 0b10110000, 0b00000001,
	})

	golayDecoder = binmat.FromBytes(16, 32, []byte{
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0b10000000, 0b00000000, 0,
		0, 0b01000000, 0b00000000, 0,
		0, 0b00100000, 0b00000000, 0,
		0, 0b00010000, 0b00000000, 0,
		0, 0b00001000, 0b00000000, 0,
		0, 0b00000100, 0b00000000, 0,
		0, 0b00000010, 0b00000000, 0,
		0, 0b00000001, 0b00000000, 0,
		0, 0b00000000, 0b10000000, 0,
		0, 0b00000000, 0b01000000, 0,
		0, 0b00000000, 0b00100000, 0,
		0, 0b00000000, 0b00010000, 0,
	})
)

// NewGolay creates the binary Golay(24,12) code, which corrects up to
// three bit errors per codeword. Source blocks use the low 12 bits of
// the input; codewords occupy 24 bits.
func NewGolay() *Code {
	code, err := New(3, 24, golayGenerator, golayParityCheck, golayDecoder)
	if err != nil {
		panic(err)
	}
	return code
}
