package qd

import (
	"github.com/hansbonini/s10tools/pkg/common"
)

// CRC-16 parameters used by the QuickDisk format
const (
	CRCPolynomial   = 0x8005
	CRCInitialValue = 0x0000
	CRCNibbleBits   = 4
	maxCRCTableBits = 8
)

// CRCTable is a table-driven CRC-16 lookup split into high and low byte planes
type CRCTable struct {
	Polynomial uint16
	Bits       uint
	High       []byte
	Low        []byte
}

// BuildCRCTable computes the 2^bits entries for polynomial. Entry i is i
// placed at the top of the register and shifted bits times, XORing the
// polynomial whenever a set bit leaves the top.
func BuildCRCTable(polynomial uint16, bits uint) (*CRCTable, error) {
	if bits == 0 || bits > maxCRCTableBits {
		return nil, common.FormatErrorString(common.ErrUnsupportedCRCTableWidth, "%d bits", bits)
	}

	count := 1 << bits
	table := &CRCTable{
		Polynomial: polynomial,
		Bits:       bits,
		High:       make([]byte, count),
		Low:        make([]byte, count),
	}
	for i := 0; i < count; i++ {
		value := uint16(i) << (16 - bits)
		for j := uint(0); j < bits; j++ {
			if value&0x8000 != 0 {
				value = value<<1 ^ polynomial
			} else {
				value <<= 1
			}
		}
		table.High[i] = byte(value >> 8)
		table.Low[i] = byte(value)
	}
	common.LogDebug(common.DebugCRCTable, polynomial, table.High, table.Low)
	return table, nil
}

// nibbleTable is the default 4-bit table, built once
var nibbleTable = mustBuildCRCTable(CRCPolynomial, CRCNibbleBits)

func mustBuildCRCTable(polynomial uint16, bits uint) *CRCTable {
	table, err := BuildCRCTable(polynomial, bits)
	if err != nil {
		panic(err)
	}
	return table
}

// CRC16 is the accumulator register as a high/low byte pair
type CRC16 struct {
	High byte
	Low  byte
}

// NewCRC16 loads the register with an initial value
func NewCRC16(initial uint16) CRC16 {
	return CRC16{High: byte(initial >> 8), Low: byte(initial)}
}

// Value returns the register as a 16-bit word
func (c CRC16) Value() uint16 {
	return uint16(c.High)<<8 | uint16(c.Low)
}

// Bytes returns the register in the order it is appended to a block
func (c CRC16) Bytes() []byte {
	return []byte{c.High, c.Low}
}

func (c CRC16) updateNibble(nibble byte, table *CRCTable) CRC16 {
	t := (c.High >> 4) ^ (nibble & 0x0F)
	high := c.High<<4 | c.Low>>4
	low := c.Low << 4
	return CRC16{High: high ^ table.High[t], Low: low ^ table.Low[t]}
}

// Update feeds one byte, high nibble first, through a 4-bit table
func (c CRC16) Update(b byte, table *CRCTable) CRC16 {
	c = c.updateNibble(b>>4, table)
	return c.updateNibble(b&0x0F, table)
}

// UpdateBytes feeds every byte of data
func (c CRC16) UpdateBytes(data []byte, table *CRCTable) CRC16 {
	for _, b := range data {
		c = c.Update(b, table)
	}
	return c
}

// CheckCRC returns the CRC of data with the default polynomial and initial
// value. Zero means a match when the CRC was appended to data.
func CheckCRC(data []byte) uint16 {
	return CheckCRCWithInit(data, CRCInitialValue)
}

// CheckCRCWithInit is CheckCRC with a caller-chosen initial register
func CheckCRCWithInit(data []byte, initial uint16) uint16 {
	return NewCRC16(initial).UpdateBytes(data, nibbleTable).Value()
}

// BlockCRC is the CRC as stored on disk: every byte passes through the bit
// order table before accumulation and the result bytes are mapped back.
func BlockCRC(data []byte) CRC16 {
	crc := NewCRC16(CRCInitialValue)
	for _, b := range data {
		crc = crc.Update(InvertByte(b), nibbleTable)
	}
	common.LogDebug(common.DebugBlockCRC, len(data), crc.Value())
	return CRC16{High: InvertByte(crc.High), Low: InvertByte(crc.Low)}
}
