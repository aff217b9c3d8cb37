// Package pkg provides the file level workflows of s10tools.
// This file contains exporters for converting a decoded S-10 sample to
// YAML descriptions, WAV files and QuickDisk block files.
package pkg

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hansbonini/s10tools/pkg/common"
	"github.com/hansbonini/s10tools/pkg/qd"
	"github.com/hansbonini/s10tools/pkg/s10"
	"gopkg.in/yaml.v3"
)

// Output layout
const (
	SampleYAMLName = "sample.yaml"
	WavesDirName   = "waves"
	BlocksDirName  = "blocks"
	wavBitDepth    = 16
)

// SampleFileExporter implements the SampleExporter interface
type SampleFileExporter struct{}

// NewSampleExporter creates a new sample exporter instance
func NewSampleExporter() *SampleFileExporter {
	return &SampleFileExporter{}
}

// NewSampleDocument builds the YAML view of a decoded sample
func NewSampleDocument(source string, sample *s10.Sample, stats s10.Stats) *SampleDocument {
	doc := &SampleDocument{
		Source: source,
		Banks:  make([]BankDocument, 0, s10.BankCount),
		Stats: StatsDocument{
			Frames:          stats.Frames,
			Accepted:        stats.Accepted(),
			Rejected:        stats.Rejected,
			StraySymbols:    stats.StraySymbols,
			WaveParamBlocks: stats.WaveParamBlocks,
			WaveDataBytes:   stats.WaveDataBytes,
			FinalPosition:   stats.FinalPosition,
			MemoryExhausted: stats.MemoryExhausted,
		},
	}
	if sample.HasGlobalStructure {
		structure := sample.GlobalStructure
		doc.Structure = &structure
	}
	for i, bank := range sample.Banks {
		doc.Banks = append(doc.Banks, BankDocument{Index: i + 1, Bank: bank})
	}
	return doc
}

// ExportToYAML writes doc with two-space indentation
func (e *SampleFileExporter) ExportToYAML(doc *SampleDocument, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)

	if err := encoder.Encode(doc); err != nil {
		return common.FormatError(common.ErrFailedToEncodeYAML, err)
	}
	return encoder.Close()
}

// ExportYAMLFile writes doc to path
func (e *SampleFileExporter) ExportYAMLFile(doc *SampleDocument, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return common.FormatError(common.ErrFailedToCreateOutputDir, err)
	}
	file, err := os.Create(path)
	if err != nil {
		return common.FormatError(common.ErrFailedToCreateOutputFile, err)
	}
	defer file.Close()

	if err := e.ExportToYAML(doc, file); err != nil {
		return err
	}
	common.LogInfo(common.InfoYAMLExported, path)
	return nil
}

// ExportWaveforms writes one mono 16-bit WAV file per waveform of the
// sample's sampling structure and returns what was written.
func (e *SampleFileExporter) ExportWaveforms(sample *s10.Sample, outputDir string) ([]WaveformDocument, error) {
	wavesDir := filepath.Join(outputDir, WavesDirName)
	if err := os.MkdirAll(wavesDir, 0o750); err != nil {
		return nil, common.FormatError(common.ErrFailedToCreateOutputDir, err)
	}
	if !sample.HasGlobalStructure {
		common.LogWarn(common.WarnNoWaveforms)
	}

	waveforms := sample.Waveforms()
	docs := make([]WaveformDocument, 0, len(waveforms))
	for _, waveform := range waveforms {
		common.LogDebug(common.DebugWaveformBuilt, waveform.Name, waveform.Banks)

		path := filepath.Join(wavesDir, e.waveFileName(sample, waveform))
		if err := e.writeWave(path, waveform); err != nil {
			return nil, err
		}
		common.LogInfo(common.InfoWaveExported, waveform.Name, len(waveform.PCM)/2, waveform.SampleRate, path)

		docs = append(docs, WaveformDocument{
			Name:       waveform.Name,
			Banks:      bankNumbers(waveform.Banks),
			SampleRate: waveform.SampleRate,
			File:       filepath.ToSlash(filepath.Join(WavesDirName, filepath.Base(path))),
		})
	}
	return docs, nil
}

// waveFileName combines the waveform name with the tone name of its first bank
func (e *SampleFileExporter) waveFileName(sample *s10.Sample, waveform s10.Waveform) string {
	name := waveform.Name
	if len(waveform.Banks) > 0 {
		if tone := sample.Banks[waveform.Banks[0]].ToneName; tone != "" {
			name += "_" + tone
		}
	}
	safe := []byte(name)
	for i := range safe {
		if !common.IsFileSafe(safe[i]) {
			safe[i] = '_'
		}
	}
	return strings.TrimSpace(string(safe)) + ".wav"
}

// writeWave encodes the little-endian PCM of waveform as a WAV file
func (e *SampleFileExporter) writeWave(path string, waveform s10.Waveform) error {
	file, err := os.Create(path)
	if err != nil {
		return common.FormatError(common.ErrFailedToCreateOutputFile, err)
	}
	defer file.Close()

	samples := make([]int, len(waveform.PCM)/2)
	for i := range samples {
		samples[i] = int(int16(binary.LittleEndian.Uint16(waveform.PCM[2*i:])))
	}

	encoder := wav.NewEncoder(file, waveform.SampleRate, wavBitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Data:           samples,
		Format:         &audio.Format{SampleRate: waveform.SampleRate, NumChannels: 1},
		SourceBitDepth: wavBitDepth,
	}
	if err := encoder.Write(buf); err != nil {
		return common.FormatError(common.ErrFailedToWriteWave, err)
	}
	if err := encoder.Close(); err != nil {
		return common.FormatError(common.ErrFailedToWriteWave, err)
	}
	return nil
}

// ExportBlocks writes the QuickDisk blocks of every bank in the sampling
// structure as bank-N_block-M.bin files.
func (e *SampleFileExporter) ExportBlocks(sample *s10.Sample, outputDir string) error {
	blocksDir := filepath.Join(outputDir, BlocksDirName)
	if err := os.MkdirAll(blocksDir, 0o750); err != nil {
		return common.FormatError(common.ErrFailedToCreateOutputDir, err)
	}

	banks := qd.BuildBankBlocks(sample)
	written := 0
	for _, bank := range banks {
		for i, block := range bank.Blocks {
			path := filepath.Join(blocksDir, fmt.Sprintf("bank-%d_block-%d.bin", bank.Bank+1, i))
			if err := os.WriteFile(path, block, 0o600); err != nil {
				return common.FormatError(common.ErrFailedToWriteBlock, err)
			}
			written++
		}
	}

	common.LogInfo(common.InfoBlocksExported, written, len(banks), blocksDir)
	return nil
}

func bankNumbers(banks []int) []int {
	numbers := make([]int, len(banks))
	for i, bank := range banks {
		numbers[i] = bank + 1
	}
	return numbers
}
