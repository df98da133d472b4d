// Package crc implements a parameter-driven, table-free CRC for 16 and
// 32 bit widths. The checksum is computed bit-serially, so no table
// memory is needed; use a table-driven implementation instead when
// throughput matters.
package crc

import (
	"fmt"

	"github.com/kf4mot/gofec/bit"
)

// Params describes a CRC algorithm in the usual catalogue form.
type Params struct {
	Width  int // 16 or 32
	Poly   uint32
	Init   uint32
	RefIn  bool
	RefOut bool
	XorOut uint32
	Check  uint32 // checksum of the ASCII string "123456789"
	Name   string
}

// Predefined CRC algorithms.
var (
	CRC16Buypass = Params{Width: 16, Poly: 0x8005, Init: 0x0000, RefIn: false, RefOut: false, XorOut: 0x0000, Check: 0xFEE8, Name: "CRC-16/BUYPASS"}
	CRC16Arc     = Params{Width: 16, Poly: 0x8005, Init: 0x0000, RefIn: true, RefOut: true, XorOut: 0x0000, Check: 0xBB3D, Name: "CRC-16/ARC"}
	CRC16Usb     = Params{Width: 16, Poly: 0x8005, Init: 0xFFFF, RefIn: true, RefOut: true, XorOut: 0xFFFF, Check: 0xB4C8, Name: "CRC-16/USB"}
	CRC32IsoHdlc = Params{Width: 32, Poly: 0x04C11DB7, Init: 0xFFFFFFFF, RefIn: true, RefOut: true, XorOut: 0xFFFFFFFF, Check: 0xCBF43926, Name: "CRC-32/ISO-HDLC"}
	CRC32Posix   = Params{Width: 32, Poly: 0x04C11DB7, Init: 0x00000000, RefIn: false, RefOut: false, XorOut: 0xFFFFFFFF, Check: 0x765E7680, Name: "CRC-32/POSIX"}
	CRC32C       = Params{Width: 32, Poly: 0x1EDC6F41, Init: 0xFFFFFFFF, RefIn: true, RefOut: true, XorOut: 0xFFFFFFFF, Check: 0xE3069283, Name: "CRC-32C"}
)

// Checksum computes the CRC of input under p. The empty input yields 0,
// regardless of parameters.
func Checksum(input []byte, p Params) uint32 {
	if p.Width != 16 && p.Width != 32 {
		panic(fmt.Sprintf("crc: unsupported width %d", p.Width))
	}
	if len(input) == 0 {
		return 0
	}

	widthMask := uint32(1)<<(p.Width-1)<<1 - 1
	topBit := uint32(1) << (p.Width - 1)
	out := p.Init

	for _, b := range input {
		if p.RefIn {
			b = bit.Reverse8(b)
		}
		out ^= uint32(b) << (p.Width - 8)
		for i := 0; i < 8; i++ {
			carry := out & topBit
			out = (out << 1) & widthMask
			if carry != 0 {
				out ^= p.Poly
			}
		}
	}

	if p.RefOut {
		out = bit.Reverse32(out) >> (32 - p.Width)
	}

	return (out ^ p.XorOut) & widthMask
}
