package qd

import (
	"github.com/hansbonini/s10tools/pkg/common"
	"github.com/hansbonini/s10tools/pkg/s10"
)

// Block framing bytes
var (
	SyncPre  = []byte{0x16, 0x16, 0x16, 0x16, 0x16, 0x16, 0x16}
	SyncMark = []byte{0xA5}
	SyncPost = []byte{0x16, 0x16, 0x16, 0x16, 0x16, 0x16, 0x16}
)

// Block layouts. Sizes exclude the sync mark and the two CRC bytes.
const (
	FormatBlockWord = 0x02

	ParamBlockSize      = 0x46 - 3
	ParamToneNameOffset = 0x04
	ParamIDOffset       = 0x1D
	ParamID             = "Roland S10"

	WaveBlockSize   = 0xC0A6 - 3
	WaveDataOffset  = 0xEF - 8
	WaveDataSamples = 32722
)

// PrepareBlock frames payload as written on disk:
// pre-sync, sync mark, payload, CRC (high, low), post-sync.
// The CRC covers the sync mark and the payload.
func PrepareBlock(payload []byte) []byte {
	body := make([]byte, 0, len(SyncMark)+len(payload))
	body = append(body, SyncMark...)
	body = append(body, payload...)
	crc := BlockCRC(body)

	block := make([]byte, 0, len(SyncPre)+len(body)+2+len(SyncPost))
	block = append(block, SyncPre...)
	block = append(block, body...)
	block = append(block, crc.Bytes()...)
	block = append(block, SyncPost...)
	return block
}

// VerifyBlock checks the CRC of a block produced by PrepareBlock
func VerifyBlock(block []byte) bool {
	start := len(SyncPre)
	end := len(block) - len(SyncPost)
	if end-start < len(SyncMark)+2 {
		return false
	}
	return BlockCRC(block[start:end]).Value() == 0
}

// BuildFormatBlock returns the framed format block
func BuildFormatBlock() []byte {
	return PrepareBlock([]byte{FormatBlockWord})
}

// BuildParamBlock returns the framed parameter block of bank
func BuildParamBlock(sample *s10.Sample, bank int) []byte {
	data := make([]byte, ParamBlockSize)
	data[0x01] = 0x40
	data[0x03] = 0x01

	name := sample.Banks[bank].ToneName
	for i := 0; i < s10.ToneNameLength; i++ {
		if i < len(name) {
			data[ParamToneNameOffset+i] = name[i]
		} else {
			data[ParamToneNameOffset+i] = ' '
		}
	}
	data[ParamToneNameOffset+s10.ToneNameLength] = '\r'
	for i := 1; i <= 7; i++ {
		data[ParamToneNameOffset+s10.ToneNameLength+i] = ' '
	}

	data[0x17] = 0xA0
	data[0x18] = 0xC0
	copy(data[ParamIDOffset:], ParamID)

	return PrepareBlock(data)
}

// BuildWaveBlock returns the framed wave block of bank. Samples are cut to
// 12 bits and each pair is squeezed into three bytes.
func BuildWaveBlock(sample *s10.Sample, bank int) []byte {
	data := make([]byte, WaveBlockSize)
	memory := sample.BankMemory(bank)

	word := func(i int) uint16 {
		return (uint16(memory[2*i]) | uint16(memory[2*i+1])<<8) >> 4
	}

	for i := 0; i < WaveDataSamples/2; i++ {
		val1 := word(2 * i)
		val2 := word(2*i + 1)

		out := data[WaveDataOffset+3*i:]
		out[0] = byte(val1 >> 4)
		out[1] = byte(val2 >> 4)
		out[2] = byte(val1&0x0F) | byte(val2&0x0F)<<4
	}

	return PrepareBlock(data)
}

// BankBlocks holds the framed blocks of one bank in disk order
type BankBlocks struct {
	Bank   int
	Blocks [][]byte
}

// BuildBankBlocks builds format, parameter and wave blocks for every bank
// covered by the sample's sampling structure.
func BuildBankBlocks(sample *s10.Sample) []BankBlocks {
	structure, _ := s10.LookupSamplingStructure(0)
	if sample.HasGlobalStructure {
		structure = sample.GlobalStructure
	} else {
		common.LogWarn(common.WarnNoWaveforms)
	}

	first := int(structure.BankOffset)
	last := first + int(structure.Length)*int(structure.Loops)

	banks := make([]BankBlocks, 0, last-first)
	for bank := first; bank < last && bank < s10.BankCount; bank++ {
		banks = append(banks, BankBlocks{
			Bank: bank,
			Blocks: [][]byte{
				BuildFormatBlock(),
				BuildParamBlock(sample, bank),
				BuildWaveBlock(sample, bank),
			},
		})
	}
	return banks
}
