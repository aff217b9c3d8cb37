package s10

import "fmt"

// SysEx framing and header constants of the S-10
const (
	SysexStart = 0xF0
	SysexStop  = 0xF7

	RolandID   = 0x41
	S10ModelID = 0x10
	MaxChannel = 0x0F

	// Payload bytes before the first data byte: vendor, channel, model, command, 3 address bytes
	HeaderLength = 7
)

// Command is the Roland command-ID carried in the fourth header byte
type Command uint8

const (
	CommandRequest     Command = 0x11 // RQ1
	CommandDataSet     Command = 0x12 // DT1
	CommandWantToSend  Command = 0x40 // WSD
	CommandRequestData Command = 0x41 // RQD
	CommandData        Command = 0x42 // DAT
	CommandAcknowledge Command = 0x43 // ACK
	CommandEndOfData   Command = 0x45 // EOD
	CommandError       Command = 0x4E // ERR
	CommandReject      Command = 0x4F // RJC
)

// ParseCommand returns false for codes outside the Roland command set
func ParseCommand(b byte) (Command, bool) {
	switch c := Command(b); c {
	case CommandRequest, CommandDataSet, CommandWantToSend, CommandRequestData,
		CommandData, CommandAcknowledge, CommandEndOfData, CommandError, CommandReject:
		return c, true
	default:
		return c, false
	}
}

func (c Command) String() string {
	switch c {
	case CommandRequest:
		return "Request (one way)"
	case CommandDataSet:
		return "Data set (one way)"
	case CommandWantToSend:
		return "Want to send data"
	case CommandRequestData:
		return "Request data"
	case CommandData:
		return "Data set"
	case CommandAcknowledge:
		return "Acknowledge"
	case CommandEndOfData:
		return "End of data"
	case CommandError:
		return "Communication error"
	case CommandReject:
		return "Rejection"
	default:
		return fmt.Sprintf("Unknown (0x%02X)", uint8(c))
	}
}

// ParamKind is the memory area selected by a DT1 address
type ParamKind uint8

const (
	ParamNone ParamKind = iota
	ParamWave
	ParamPerformance
	ParamWaveData
)

func (k ParamKind) String() string {
	switch k {
	case ParamNone:
		return "none"
	case ParamWave:
		return "wave parameter"
	case ParamPerformance:
		return "performance parameter"
	case ParamWaveData:
		return "wave data"
	default:
		return "unknown"
	}
}

// Address map
const (
	waveDataFirst   = 0x02
	waveDataLast    = 0x11
	waveDataPerBank = 4

	performanceHigh = 0x01
	performanceMid  = 0x08
)

// waveParamRanges holds the inclusive address window of each bank's parameter block.
var waveParamRanges = [BankCount][2]uint32{
	{0x010000, 0x010048},
	{0x010049, 0x010111},
	{0x010112, 0x01015A},
	{0x01015B, 0x010224},
}

// AddressTarget is what a three byte DT1 address selects
type AddressTarget struct {
	Kind     ParamKind
	Bank     int    // bank of a wave parameter or wave data address
	Position uint32 // byte offset into wave memory for wave data
}

// ClassifyAddress decodes a big-endian three byte DT1 address
func ClassifyAddress(b0, b1, b2 byte) AddressTarget {
	address := uint32(b0)<<16 | uint32(b1)<<8 | uint32(b2)

	switch {
	case b0 >= waveDataFirst && b0 <= waveDataLast:
		return AddressTarget{
			Kind:     ParamWaveData,
			Bank:     int(b0-waveDataFirst) / waveDataPerBank,
			Position: DataPosition(b0, b1, b2),
		}
	case b0 == performanceHigh && b1 == performanceMid:
		return AddressTarget{Kind: ParamPerformance}
	}

	for bank, window := range waveParamRanges {
		if address >= window[0] && address <= window[1] {
			return AddressTarget{Kind: ParamWave, Bank: bank}
		}
	}
	return AddressTarget{Kind: ParamNone}
}

// DataPosition converts a wave data address to a byte offset in wave memory
func DataPosition(b0, b1, b2 byte) uint32 {
	return uint32(b0-waveDataFirst)<<14 + uint32(b1)<<7 + uint32(b2)
}
