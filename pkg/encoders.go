// Package pkg provides the file level workflows of s10tools.
// This file contains the QuickDisk stream encoder: MFM modulation, sync
// alignment, bit order inversion and CRC checks on whole files.
package pkg

import (
	"github.com/hansbonini/s10tools/pkg/common"
	"github.com/hansbonini/s10tools/pkg/qd"
)

// QDFileProcessor implements the QDStreamProcessor interface
type QDFileProcessor struct{}

// NewQDProcessor creates a new QuickDisk stream processor instance
func NewQDProcessor() *QDFileProcessor {
	return &QDFileProcessor{}
}

// Encode turns a plain byte file into its raw MFM track image
func (p *QDFileProcessor) Encode(inputFile, outputFile string) error {
	data, err := common.ReadInputFile(inputFile)
	if err != nil {
		return err
	}
	return p.write(outputFile, qd.EncodeStream(data))
}

// Decode turns a raw MFM capture back into plain bytes. With block > 0 the
// capture is aligned on that sync word first; cursor is the first bit read.
func (p *QDFileProcessor) Decode(inputFile, outputFile string, block, cursor int) error {
	raw, err := common.ReadInputFile(inputFile)
	if err != nil {
		return err
	}
	data, err := qd.DecodeStream(raw, block, cursor)
	if err != nil {
		return err
	}
	return p.write(outputFile, data)
}

// Sync realigns a raw MFM capture so it starts on the block-th sync word
func (p *QDFileProcessor) Sync(inputFile, outputFile string, block int) error {
	raw, err := common.ReadInputFile(inputFile)
	if err != nil {
		return err
	}
	aligned, _, err := qd.Sync(raw, block)
	if err != nil {
		return err
	}
	return p.write(outputFile, aligned)
}

// Invert maps every byte of a file through the bit order table
func (p *QDFileProcessor) Invert(inputFile, outputFile string) error {
	data, err := common.ReadInputFile(inputFile)
	if err != nil {
		return err
	}
	qd.InvertBits(data)
	return p.write(outputFile, data)
}

// CheckCRC computes the CRC-16 of a file. A file ending in its own CRC
// yields zero; anything else is returned with an error.
func (p *QDFileProcessor) CheckCRC(inputFile string, initial uint16) (uint16, error) {
	data, err := common.ReadInputFile(inputFile)
	if err != nil {
		return 0, err
	}

	crc := qd.CheckCRCWithInit(data, initial)
	if crc != 0 {
		common.LogWarn(common.WarnCRCMismatch, crc)
		return crc, common.FormatErrorString(common.ErrCRCMismatch, "0x%04X", crc)
	}
	common.LogInfo(common.InfoCRCValid)
	return crc, nil
}

func (p *QDFileProcessor) write(outputFile string, data []byte) error {
	if err := common.WriteOutputFile(outputFile, data); err != nil {
		return err
	}
	common.LogInfo(common.InfoStreamWritten, len(data), outputFile)
	return nil
}
