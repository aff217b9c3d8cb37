package pkg

import (
	"io"

	"github.com/hansbonini/s10tools/pkg/s10"
)

// BankDocument is the YAML view of one bank
type BankDocument struct {
	Index int      `yaml:"bank"`
	Bank  s10.Bank `yaml:",inline"`
}

// StatsDocument is the YAML view of a decoding run
type StatsDocument struct {
	Frames          int    `yaml:"frames"`
	Accepted        int    `yaml:"accepted"`
	Rejected        int    `yaml:"rejected"`
	StraySymbols    int    `yaml:"stray_symbols"`
	WaveParamBlocks int    `yaml:"wave_param_blocks"`
	WaveDataBytes   int    `yaml:"wave_data_bytes"`
	FinalPosition   uint32 `yaml:"final_position"`
	MemoryExhausted bool   `yaml:"memory_exhausted"`
}

// WaveformDocument names the WAV file written for one waveform
type WaveformDocument struct {
	Name       string `yaml:"name"`
	Banks      []int  `yaml:"banks,flow"`
	SampleRate int    `yaml:"sample_rate"`
	File       string `yaml:"file,omitempty"`
}

// SampleDocument is the complete YAML description of a decoded dump
type SampleDocument struct {
	Source    string                 `yaml:"source,omitempty"`
	Structure *s10.SamplingStructure `yaml:"sampling_structure,omitempty"`
	Banks     []BankDocument         `yaml:"banks"`
	Waveforms []WaveformDocument     `yaml:"waveforms"`
	Stats     StatsDocument          `yaml:"stats"`
}

// FrameListing is one line of a dump listing
type FrameListing struct {
	Offset     int
	Terminated bool
	Info       s10.FrameInfo
	Err        error
}

// SyxDecoder defines methods for decoding S-10 SysEx dumps
type SyxDecoder interface {
	Decode(reader io.Reader) (*s10.Sample, error)
	Stats() s10.Stats
	ListFrames(reader io.Reader) ([]FrameListing, error)
}

// SampleExporter defines methods for exporting a decoded sample
type SampleExporter interface {
	ExportToYAML(doc *SampleDocument, writer io.Writer) error
	ExportWaveforms(sample *s10.Sample, outputDir string) ([]WaveformDocument, error)
	ExportBlocks(sample *s10.Sample, outputDir string) error
}

// SyxProcessor combines decoder and exporter functionality
type SyxProcessor interface {
	SyxDecoder
	SampleExporter
	Process(inputFile string, outputDir string) error
}

// QDStreamProcessor defines the QuickDisk stream operations on files
type QDStreamProcessor interface {
	Encode(inputFile, outputFile string) error
	Decode(inputFile, outputFile string, block, cursor int) error
	Sync(inputFile, outputFile string, block int) error
	Invert(inputFile, outputFile string) error
	CheckCRC(inputFile string, initial uint16) (uint16, error)
}
