package pkg

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/hansbonini/s10tools/pkg/common"
	"github.com/hansbonini/s10tools/pkg/s10"
)

// SyxFileProcessor combines decoder and exporter functionality
type SyxFileProcessor struct {
	*SyxFileDecoder
	*SampleFileExporter

	// ExportBlocks also writes the QuickDisk block files when set
	WithBlocks bool
}

// NewSyxProcessor creates a new SysEx processor with both decoder and exporter
func NewSyxProcessor() *SyxFileProcessor {
	return &SyxFileProcessor{
		SyxFileDecoder:     NewSyxDecoder(),
		SampleFileExporter: NewSampleExporter(),
	}
}

// Process decodes inputFile and writes the YAML description, the WAV
// files and optionally the QuickDisk blocks to outputDir. A dump that
// overruns the sample memory is still exported, then reported.
func (p *SyxFileProcessor) Process(inputFile, outputDir string) error {
	common.LogInfo(common.InfoProcessing, inputFile)

	file, err := os.Open(inputFile)
	if err != nil {
		return common.FormatError(common.ErrFailedToReadInput, err)
	}
	defer file.Close()

	sample, decodeErr := p.Decode(file)
	if decodeErr != nil && !errors.Is(decodeErr, s10.ErrMemoryExhausted) {
		return decodeErr
	}
	stats := p.Stats()
	common.LogInfo(common.InfoFinalPosition, stats.FinalPosition)

	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return common.FormatError(common.ErrFailedToCreateOutputDir, err)
	}

	waveforms, err := p.ExportWaveforms(sample, outputDir)
	if err != nil {
		return err
	}

	doc := NewSampleDocument(filepath.Base(inputFile), sample, stats)
	doc.Waveforms = waveforms
	if err := p.ExportYAMLFile(doc, filepath.Join(outputDir, SampleYAMLName)); err != nil {
		return err
	}

	if p.WithBlocks {
		if err := p.ExportBlocks(sample, outputDir); err != nil {
			return err
		}
	}

	return decodeErr
}
