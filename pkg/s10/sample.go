// Package s10 decodes Roland S-10 SysEx dumps into a sample description.
// This file contains the sample store: bank parameters, sampling structures
// and the flat wave memory shared by all banks.
package s10

import "strings"

// Sample memory and bank layout of the S-10
const (
	MemorySize     = 256 * 1024 // Wave memory in bytes
	BankCount      = 4
	BankMemorySize = MemorySize / BankCount
	ToneNameLength = 9

	SampleRate30K        = 30000
	SampleRate15K        = 15000
	DefaultSampleRate    = SampleRate30K
	MaxSamplingStructure = 10
)

// SamplingStructure describes how banks combine into playable waveforms
type SamplingStructure struct {
	Index      uint8  `yaml:"index"`
	Name       string `yaml:"name"`
	BankOffset uint8  `yaml:"bank_offset"`
	Length     uint8  `yaml:"length"`
	Loops      uint8  `yaml:"loops"`
}

// samplingStructures is indexed by the structure number sent by the device.
var samplingStructures = [MaxSamplingStructure + 1]SamplingStructure{
	{0, "A", 0, 1, 1},
	{1, "B", 1, 1, 1},
	{2, "C", 2, 1, 1},
	{3, "D", 3, 1, 1},
	{4, "AB", 0, 2, 1},
	{5, "CD", 2, 2, 1},
	{6, "ABCD", 0, 4, 1},
	{7, "A-B", 0, 1, 2},
	{8, "C-D", 2, 1, 2},
	{9, "AB-CD", 0, 2, 2},
	{10, "A-B-C-D", 0, 1, 4},
}

// LookupSamplingStructure returns the structure for index, or false when
// index is above MaxSamplingStructure.
func LookupSamplingStructure(index uint8) (SamplingStructure, bool) {
	if index > MaxSamplingStructure {
		return SamplingStructure{}, false
	}
	return samplingStructures[index], true
}

// LoopMode is the playback looping policy of a bank
type LoopMode uint8

const (
	LoopOneShot LoopMode = iota
	LoopManual
	LoopAuto
)

func (m LoopMode) String() string {
	switch m {
	case LoopOneShot:
		return "1 shot"
	case LoopManual:
		return "Manual"
	case LoopAuto:
		return "Auto"
	default:
		return "unknown"
	}
}

// MarshalYAML encodes the mode by name
func (m LoopMode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

// ScanMode is the traversal direction of a bank's waveform
type ScanMode uint8

const (
	ScanForward ScanMode = iota
	ScanAlternate
	ScanBackward
)

func (m ScanMode) String() string {
	switch m {
	case ScanForward:
		return "Forward"
	case ScanAlternate:
		return "Alternate"
	case ScanBackward:
		return "Backward"
	default:
		return "unknown"
	}
}

// MarshalYAML encodes the mode by name
func (m ScanMode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

// Bank holds the wave parameters of one of the four banks.
// ManualEndAddress and AutoEndAddress are relative to StartAddress.
type Bank struct {
	ToneName          string            `yaml:"tone_name"`
	SamplingStructure SamplingStructure `yaml:"sampling_structure"`
	LoopMode          LoopMode          `yaml:"loop_mode"`
	ScanMode          ScanMode          `yaml:"scan_mode"`
	RecKey            uint8             `yaml:"rec_key"`
	StartAddress      uint32            `yaml:"start_address"`
	ManualLoopLength  uint32            `yaml:"manual_loop_length"`
	ManualEndAddress  uint32            `yaml:"manual_end_address"`
	AutoLoopLength    uint32            `yaml:"auto_loop_length"`
	AutoEndAddress    uint32            `yaml:"auto_end_address"`
	SampleRate        int               `yaml:"sample_rate"`
}

// Sample is the complete description decoded from one dump
type Sample struct {
	GlobalStructure    SamplingStructure
	HasGlobalStructure bool
	Banks              [BankCount]Bank
	Memory             []byte
}

// NewSample returns a sample with every bank at its power-on defaults
func NewSample() *Sample {
	sample := &Sample{
		Memory: make([]byte, MemorySize),
	}
	for i := range sample.Banks {
		sample.Banks[i] = Bank{
			ToneName:          "",
			SamplingStructure: samplingStructures[0],
			SampleRate:        DefaultSampleRate,
		}
	}
	return sample
}

// BankMemory returns the slice of wave memory owned by bank
func (s *Sample) BankMemory(bank int) []byte {
	start := bank * BankMemorySize
	return s.Memory[start : start+BankMemorySize]
}

// Waveform is one playable waveform: one or more consecutive banks joined
type Waveform struct {
	Name       string
	Banks      []int
	SampleRate int
	PCM        []byte // 16-bit little-endian samples
}

// Waveforms splits the global sampling structure into its waveforms.
// Without a decoded structure the first table entry (bank A) is used.
func (s *Sample) Waveforms() []Waveform {
	structure := samplingStructures[0]
	if s.HasGlobalStructure {
		structure = s.GlobalStructure
	}

	names := strings.Split(structure.Name, "-")
	waveforms := make([]Waveform, 0, structure.Loops)
	for loop := 0; loop < int(structure.Loops); loop++ {
		first := int(structure.BankOffset) + loop*int(structure.Length)
		waveform := Waveform{
			SampleRate: s.Banks[first].SampleRate,
			PCM:        make([]byte, 0, int(structure.Length)*BankMemorySize),
		}
		if loop < len(names) {
			waveform.Name = names[loop]
		}
		for bank := first; bank < first+int(structure.Length); bank++ {
			waveform.Banks = append(waveform.Banks, bank)
			waveform.PCM = append(waveform.PCM, s.BankMemory(bank)...)
		}
		waveforms = append(waveforms, waveform)
	}
	return waveforms
}
