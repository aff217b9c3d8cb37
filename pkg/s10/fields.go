package s10

import "github.com/hansbonini/s10tools/pkg/common"

// Offsets inside one wave parameter block, relative to the first tone name byte
const (
	ToneNameOffset      = 0x00
	StructureOffset     = 0x09
	DestinationOffset   = 0x0A
	SampleRateOffset    = 0x0B
	LoopScanOffset      = 0x0C
	RecKeyOffset        = 0x0D
	AddressFieldsOffset = 0x11

	// A second block packed into the same frame starts this far after the first
	WaveParamBlockWidth = 0x49

	// Bytes consumed by DecodeAddressFields, overflow bytes included
	AddressFieldsSpan = 24
)

// Loop/scan byte bit groups
const (
	loopModeMask = 0x0C
	scanModeMask = 0x03
)

// packedField locates one 18-bit address field inside the address area.
// Four low nibbles give bits 0-15, two bits of a shared overflow byte give 16-17.
type packedField struct {
	nibbles       [4]int // byte index of nibble 0..3
	overflow      int
	overflowMask  byte
	overflowShift uint
}

// Hardware register layout, reproduced from reference captures. Do not reorder.
var (
	startAddressField = packedField{
		nibbles: [4]int{2, 3, 0, 1}, overflow: 21, overflowMask: 0x0C, overflowShift: 14,
	}
	manualLoopLengthField = packedField{
		nibbles: [4]int{6, 7, 4, 5}, overflow: 20, overflowMask: 0x0C, overflowShift: 14,
	}
	manualEndAddressField = packedField{
		nibbles: [4]int{10, 11, 8, 9}, overflow: 20, overflowMask: 0x03, overflowShift: 16,
	}
	autoLoopLengthField = packedField{
		nibbles: [4]int{14, 15, 12, 13}, overflow: 23, overflowMask: 0x0C, overflowShift: 14,
	}
	autoEndAddressField = packedField{
		nibbles: [4]int{18, 19, 16, 17}, overflow: 23, overflowMask: 0x03, overflowShift: 16,
	}
)

func (f packedField) assemble(area []byte) uint32 {
	var value uint32
	for i, pos := range f.nibbles {
		value |= uint32(area[pos]&0x0F) << (4 * uint(i))
	}
	return value | uint32(area[f.overflow]&f.overflowMask)<<f.overflowShift
}

// AddressFields are the decoded start, loop and end values of one bank
type AddressFields struct {
	StartAddress     uint32
	ManualLoopLength uint32
	ManualEndAddress uint32
	AutoLoopLength   uint32
	AutoEndAddress   uint32
}

// wrap16 subtracts 65536 once when the value no longer fits 16 bits.
func wrap16(value uint32) uint32 {
	if value > 0xFFFF {
		return value - 0x10000
	}
	return value
}

// decrement clamps at zero
func decrement(value uint32) uint32 {
	if value == 0 {
		return 0
	}
	return value - 1
}

// relative clamps at zero when end lies before start
func relative(end, start uint32) uint32 {
	if end < start {
		return 0
	}
	return end - start
}

// DecodeAddressFields decodes the five packed address fields.
// area starts at AddressFieldsOffset and holds AddressFieldsSpan bytes;
// shorter input is treated as zero padded.
func DecodeAddressFields(area []byte) AddressFields {
	padded := make([]byte, AddressFieldsSpan)
	copy(padded, area)

	start := wrap16(startAddressField.assemble(padded))
	return AddressFields{
		StartAddress:     start,
		ManualLoopLength: decrement(manualLoopLengthField.assemble(padded)),
		ManualEndAddress: relative(wrap16(manualEndAddressField.assemble(padded)), start),
		AutoLoopLength:   decrement(autoLoopLengthField.assemble(padded)),
		AutoEndAddress:   relative(wrap16(autoEndAddressField.assemble(padded)), start),
	}
}

// DecodeToneName filters raw name bytes to the file-safe set and trims the right side
func DecodeToneName(raw []byte) string {
	name := make([]byte, 0, ToneNameLength)
	for i := 0; i < ToneNameLength && i < len(raw); i++ {
		name = append(name, common.FileSafeByte(raw[i]))
	}
	return common.TrimTrailingSpace(string(name))
}

// DecodeSampleRate maps the rate bit to a frequency in Hz
func DecodeSampleRate(b byte) int {
	if b&0x01 != 0 {
		return SampleRate15K
	}
	return SampleRate30K
}

// DecodeLoopMode returns the loop mode in bits 2-3, false for the unused code
func DecodeLoopMode(b byte) (LoopMode, bool) {
	switch b & loopModeMask {
	case 0x00:
		return LoopOneShot, true
	case 0x04:
		return LoopManual, true
	case 0x08:
		return LoopAuto, true
	default:
		return LoopOneShot, false
	}
}

// DecodeScanMode returns the scan mode in bits 0-1, false for the unused code
func DecodeScanMode(b byte) (ScanMode, bool) {
	switch b & scanModeMask {
	case 0x00:
		return ScanForward, true
	case 0x01:
		return ScanAlternate, true
	case 0x02:
		return ScanBackward, true
	default:
		return ScanForward, false
	}
}

// DecodeRecKey joins the low nibbles of two consecutive bytes
func DecodeRecKey(lo, hi byte) uint8 {
	return (lo & 0x0F) | (hi&0x0F)<<4
}

// DecodeSampleWord rebuilds one 16-bit sample from a pair of wave data bytes
func DecodeSampleWord(prev, cur byte) uint16 {
	return uint16(prev&0x7F)<<9 | uint16(cur&0x7C)<<2
}
