// Package qd provides the physical layer codecs of the Roland QuickDisk:
// MFM bit coding, the bit order lookup table, CRC-16 and block framing.
package qd

import "github.com/hansbonini/s10tools/pkg/common"

// MFM stands for "Modified Frequency Modulation".
// A flux reversal happens at every data '1' and, between two data '0's,
// at the clock position:
//
//	Data     : 0 c 0 c 1 c 1 c 1 c 0 c 1 c 1 c 1 c 1 c 0 c 0 c 0
//	Cells      0 1 0 0 1 0 1 0 1 0 0 0 1 0 1 0 1 0 1 0 0 1 0 1 0
//	Decoding :  | 0 | 1 | 1 | 1 | 0 | 1 | 1 | 1 | 1 | 0 | 0 | 0 |
//
// Bit 0 of a buffer is the most significant bit of its first byte.

// GetBit returns bit i of data, MSB first
func GetBit(data []byte, i int) byte {
	return (data[i>>3] >> (7 - uint(i&7))) & 0x01
}

// SetBit sets bit i of data to v (0 or 1) without touching its neighbours
func SetBit(data []byte, i int, v byte) {
	mask := byte(0x80) >> uint(i&7)
	if v != 0 {
		data[i>>3] |= mask
	} else {
		data[i>>3] &^= mask
	}
}

// BitRing is a caller-owned buffer read and written as a circular array of
// Len bits. The codec keeps no position: every call takes a cursor and
// returns the advanced one.
type BitRing struct {
	Data []byte
	Len  int
}

// NewBitRing wraps data, using all of its bits
func NewBitRing(data []byte) BitRing {
	return BitRing{Data: data, Len: len(data) * 8}
}

// wrap maps any cursor onto [0, Len)
func (r BitRing) wrap(cursor int) int {
	cursor %= r.Len
	if cursor < 0 {
		cursor += r.Len
	}
	return cursor
}

// Bit returns the bit at cursor modulo Len
func (r BitRing) Bit(cursor int) byte {
	return GetBit(r.Data, r.wrap(cursor))
}

// SetBit writes the bit at cursor modulo Len
func (r BitRing) SetBit(cursor int, v byte) {
	SetBit(r.Data, r.wrap(cursor), v)
}

// Decode demodulates n bits from the ring into dst, starting at cursor.
// Each output bit consumes one clock/data pair; only (0,1) decodes as 1.
// It returns the cursor following the last pair read.
func (r BitRing) Decode(dst []byte, n int, cursor int) int {
	cursor = r.wrap(cursor)
	for i := 0; i < n; i++ {
		clock := r.Bit(cursor)
		cursor = r.wrap(cursor + 1)
		data := r.Bit(cursor)
		cursor = r.wrap(cursor + 1)

		if clock == 0 && data == 1 {
			SetBit(dst, i, 1)
		} else {
			SetBit(dst, i, 0)
		}
	}
	return cursor
}

// Encode modulates the first n bits of src into the ring starting at cursor
// and returns the cursor following the last pair written. The previous data
// bit is read back from the ring, so consecutive calls join seamlessly.
func (r BitRing) Encode(src []byte, n int, cursor int) int {
	cursor = r.wrap(cursor)
	prev := r.Bit(cursor - 1)

	for i := 0; i < n; i++ {
		var clock, data byte
		switch {
		case GetBit(src, i) == 1:
			clock, data = 0, 1
		case prev == 1:
			clock, data = 0, 0
		default:
			clock, data = 1, 0
		}
		prev = data

		r.SetBit(cursor, clock)
		cursor = r.wrap(cursor + 1)
		r.SetBit(cursor, data)
		cursor = r.wrap(cursor + 1)
	}
	return cursor
}

// DecodeMFM decodes dstBits bits from an MFM buffer of srcBits bits.
// See BitRing.Decode.
func DecodeMFM(src []byte, srcBits int, dst []byte, dstBits int, cursor int) int {
	return BitRing{Data: src, Len: srcBits}.Decode(dst, dstBits, cursor)
}

// EncodeMFM encodes srcBits bits of src into an MFM buffer of dstBits bits.
// See BitRing.Encode.
func EncodeMFM(dst []byte, dstBits int, src []byte, srcBits int, cursor int) int {
	return BitRing{Data: dst, Len: dstBits}.Encode(src, srcBits, cursor)
}

// Validate checks that Len is positive and fits in Data
func (r BitRing) Validate() error {
	if r.Len <= 0 || r.Len > len(r.Data)*8 {
		return common.FormatErrorString(common.ErrInvalidBitLength, "%d bits in a %d byte buffer", r.Len, len(r.Data))
	}
	return nil
}
