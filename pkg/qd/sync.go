package qd

import (
	"bytes"
	"io"

	"github.com/dgryski/go-bitstream"
	"github.com/hansbonini/s10tools/pkg/common"
)

// SyncWord is the MFM image of the block preamble that precedes each block
var SyncWord = []byte{
	0x94, 0x4A, 0x94, 0x4A, 0x94, 0x4A, 0x94, 0x4A,
	0x94, 0x4A, 0x94, 0x4A, 0x94, 0x4A, 0x44, 0x91,
}

// SearchBits returns the first bit offset at or after from where word
// appears in data, or -1.
func SearchBits(data, word []byte, from int) int {
	dataBits := len(data) * 8
	wordBits := len(word) * 8
	if from < 0 {
		from = 0
	}

	for offset := from; offset+wordBits <= dataBits; offset++ {
		match := true
		for i := 0; i < wordBits; i++ {
			if GetBit(data, offset+i) != GetBit(word, i) {
				match = false
				break
			}
		}
		if match {
			return offset
		}
	}
	return -1
}

// Realign drops the first offset bits of data and packs the rest from bit 0.
// The last byte is zero padded.
func Realign(data []byte, offset int) ([]byte, error) {
	if offset <= 0 {
		return append([]byte(nil), data...), nil
	}
	total := len(data)*8 - offset
	if total <= 0 {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	reader := bitstream.NewReader(bytes.NewReader(data))
	writer := bitstream.NewWriter(&buf)

	for skipped := 0; skipped < offset; {
		n := offset - skipped
		if n > 64 {
			n = 64
		}
		if _, err := reader.ReadBits(n); err != nil {
			return nil, err
		}
		skipped += n
	}

	for i := 0; i < total; i++ {
		bit, err := reader.ReadBit()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := writer.WriteBit(bit); err != nil {
			return nil, err
		}
	}
	if err := writer.Flush(bitstream.Zero); err != nil {
		return nil, err
	}

	common.LogDebug(common.DebugRealigned, len(data), offset)
	return buf.Bytes(), nil
}

// Sync locates the block-th sync word (1-based) and returns data realigned
// so that it starts on that word, along with its bit offset in data.
func Sync(data []byte, block int) ([]byte, int, error) {
	if block < 1 {
		block = 1
	}

	offset := -1
	for i := 0; i < block; i++ {
		next := SearchBits(data, SyncWord, offset+1)
		if next < 0 {
			if i > 0 {
				common.LogWarn(common.WarnSyncBlockIncomplete, i, block)
			}
			return nil, -1, common.FormatErrorString(common.ErrSyncWordNotFound, "block %d", i+1)
		}
		offset = next
		common.LogDebug(common.DebugSyncFound, i+1, offset)
	}

	aligned, err := Realign(data, offset)
	if err != nil {
		return nil, -1, err
	}
	return aligned, offset, nil
}
