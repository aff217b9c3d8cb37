package s10

import (
	"errors"

	"github.com/hansbonini/s10tools/pkg/common"
)

// ErrMemoryExhausted is returned together with the partial sample when a
// wave data frame addresses memory past MemorySize.
var ErrMemoryExhausted = errors.New(common.ErrSampleMemoryExhausted)

// Stats summarizes one decoding run
type Stats struct {
	Frames          int
	Rejected        int
	StraySymbols    int
	WaveParamBlocks int
	WaveDataBytes   int
	FinalPosition   uint32
	MemoryExhausted bool
}

// Accepted returns the number of frames that passed header validation
func (s Stats) Accepted() int {
	return s.Frames - s.Rejected - s.StraySymbols
}

// Decoder converts a SysEx byte stream into a Sample
type Decoder struct {
	stats Stats
}

// NewDecoder creates a new SysEx decoder instance
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Stats returns the statistics of the last Decode call
func (d *Decoder) Stats() Stats {
	return d.stats
}

// scanner holds the frame state of one pass over the stream
type scanner struct {
	data   []byte
	sample *Sample
	stats  *Stats

	active  bool
	counter int
	command Command
	target  AddressTarget

	blockOffset int // 0 or WaveParamBlockWidth
	bank        int
	toneName    [ToneNameLength]byte

	position uint32
	toggle   int
}

// Decode scans data for S-10 SysEx frames and builds the sample description.
// Bad frames and fields are skipped. When wave data overruns the sample
// memory the scan stops and the partial sample is returned with
// ErrMemoryExhausted.
func (d *Decoder) Decode(data []byte) (*Sample, error) {
	d.stats = Stats{}
	s := &scanner{
		data:   data,
		sample: NewSample(),
		stats:  &d.stats,
	}

	for x := 0; x < len(data); x++ {
		if err := s.step(x); err != nil {
			d.stats.FinalPosition = s.position
			return s.sample, err
		}
	}

	d.stats.FinalPosition = s.position
	common.LogDebug(common.InfoFinalPosition, s.position)
	return s.sample, nil
}

// byteAt reads data past the current position, zero beyond the end
func (s *scanner) byteAt(i int) byte {
	if i < 0 || i >= len(s.data) {
		return 0
	}
	return s.data[i]
}

func (s *scanner) window(start, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = s.byteAt(start + i)
	}
	return out
}

func (s *scanner) reject() {
	s.active = false
	s.stats.Rejected++
}

func (s *scanner) step(x int) error {
	b := s.data[x]

	switch b {
	case SysexStart:
		common.LogDebug(common.DebugSysexStart, x)
		s.counter = 0
		s.active = true
		s.stats.Frames++
		return nil
	case SysexStop:
		if s.active {
			common.LogDebug(common.DebugSysexStop, x, s.counter)
		}
		s.active = false
		return nil
	}

	if !s.active {
		return nil
	}

	switch {
	case s.counter == 0:
		if b != RolandID {
			common.LogWarn(common.WarnWrongVendor, b, x)
			s.reject()
		} else {
			common.LogDebug(common.DebugVendorFound)
		}
	case s.counter == 1:
		if b > MaxChannel {
			common.LogWarn(common.WarnWrongChannel, b, x)
			s.reject()
		} else {
			common.LogDebug(common.DebugChannel, int(b)+1)
		}
	case s.counter == 2:
		if b != S10ModelID {
			common.LogWarn(common.WarnWrongModel, b, x)
			s.reject()
		} else {
			common.LogDebug(common.DebugModelFound)
		}
	case s.counter == 3:
		s.beginCommand(b)
	case s.counter == 4 && s.command == CommandDataSet:
		s.beginAddress(x)
	case s.counter >= HeaderLength:
		if err := s.payload(x); err != nil {
			return err
		}
		if !s.active {
			// frame abandoned inside the payload; the counter no longer matters
			return nil
		}
	}

	s.counter++
	return nil
}

func (s *scanner) beginCommand(b byte) {
	command, ok := ParseCommand(b)
	s.command = command
	s.target = AddressTarget{}
	if !ok {
		common.LogDebug(common.DebugCommandRejected, b)
		return
	}
	common.LogDebug(common.DebugCommand, command)
}

func (s *scanner) beginAddress(x int) {
	if x+2 >= len(s.data) {
		common.LogWarn(common.WarnTruncatedFrame, x)
		s.reject()
		return
	}
	b0, b1, b2 := s.data[x], s.data[x+1], s.data[x+2]
	common.LogDebug(common.DebugAddress, b0, b1, b2)

	s.target = ClassifyAddress(b0, b1, b2)
	s.blockOffset = 0
	s.toggle = 0

	switch s.target.Kind {
	case ParamWave:
		s.bank = s.target.Bank
		common.LogDebug(common.DebugWaveParamBlock, s.target.Bank+1)
	case ParamPerformance:
		common.LogDebug(common.DebugPerformanceParam)
	case ParamWaveData:
		s.position = s.target.Position
		common.LogDebug(common.DebugWaveDataBank, s.target.Bank+1, s.position)
	case ParamNone:
	}
}

func (s *scanner) payload(x int) error {
	switch s.target.Kind {
	case ParamWave:
		s.waveParam(x)
	case ParamWaveData:
		return s.waveData(x)
	case ParamPerformance, ParamNone:
	}
	return nil
}

func (s *scanner) waveParam(x int) {
	if s.counter == HeaderLength+WaveParamBlockWidth {
		if s.byteAt(x+1) == SysexStop {
			common.LogWarn(common.WarnStraySymbol, x)
			s.active = false
			s.stats.StraySymbols++
			return
		}
		s.blockOffset = WaveParamBlockWidth
		common.LogDebug(common.DebugSecondBlock, s.blockOffset)
	}

	offset := s.counter - HeaderLength - s.blockOffset
	b := s.data[x]

	if offset == ToneNameOffset {
		s.stats.WaveParamBlocks++
		// the destination byte is read first; everything below depends on it
		dest := int(s.byteAt(x + DestinationOffset))
		common.LogDebug(common.DebugDestinationBank, dest+1)
		if dest >= BankCount {
			common.LogWarn(common.WarnBadBank, dest, x+DestinationOffset)
			s.reject()
			return
		}
		s.bank = dest
	}

	bank := &s.sample.Banks[s.bank]

	switch {
	case offset >= ToneNameOffset && offset < ToneNameOffset+ToneNameLength:
		s.toneName[offset-ToneNameOffset] = b
		if offset == ToneNameOffset+ToneNameLength-1 {
			bank.ToneName = DecodeToneName(s.toneName[:])
			common.LogDebug(common.DebugToneName, bank.ToneName)
		}
	case offset == StructureOffset:
		structure, ok := LookupSamplingStructure(b)
		if !ok {
			common.LogWarn(common.WarnBadStructure, b, x)
			return
		}
		bank.SamplingStructure = structure
		if !s.sample.HasGlobalStructure {
			s.sample.GlobalStructure = structure
			s.sample.HasGlobalStructure = true
		}
		common.LogDebug(common.DebugSamplingStructure, structure.Index, structure.Name)
	case offset == SampleRateOffset:
		bank.SampleRate = DecodeSampleRate(b)
		common.LogDebug(common.DebugSampleRate, bank.SampleRate)
	case offset == LoopScanOffset:
		if mode, ok := DecodeLoopMode(b); ok {
			bank.LoopMode = mode
			common.LogDebug(common.DebugLoopMode, mode)
		} else {
			common.LogWarn(common.WarnBadLoopMode, b&loopModeMask, x)
		}
		if mode, ok := DecodeScanMode(b); ok {
			bank.ScanMode = mode
			common.LogDebug(common.DebugScanMode, mode)
		} else {
			common.LogWarn(common.WarnBadScanMode, b&scanModeMask, x)
		}
	case offset == RecKeyOffset:
		bank.RecKey = DecodeRecKey(b, s.byteAt(x+1))
		common.LogDebug(common.DebugRecKey, bank.RecKey)
	case offset == AddressFieldsOffset:
		fields := DecodeAddressFields(s.window(x, AddressFieldsSpan))
		bank.StartAddress = fields.StartAddress
		bank.ManualLoopLength = fields.ManualLoopLength
		bank.ManualEndAddress = fields.ManualEndAddress
		bank.AutoLoopLength = fields.AutoLoopLength
		bank.AutoEndAddress = fields.AutoEndAddress
		common.LogDebug(common.DebugAddresses, fields.StartAddress, fields.ManualLoopLength,
			fields.ManualEndAddress, fields.AutoLoopLength, fields.AutoEndAddress)
	}
}

func (s *scanner) waveData(x int) error {
	s.toggle++
	if s.toggle%2 != 0 {
		return nil
	}

	if s.position+1 >= MemorySize {
		common.LogWarn(common.WarnMemoryExhausted, s.position)
		s.stats.MemoryExhausted = true
		return ErrMemoryExhausted
	}

	word := DecodeSampleWord(s.data[x-1], s.data[x])
	s.sample.Memory[s.position] = byte(word)
	s.sample.Memory[s.position+1] = byte(word >> 8)
	s.position += 2
	s.stats.WaveDataBytes += 2
	return nil
}
