package s10

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

// Frame is one SysEx message cut out of a raw dump
type Frame struct {
	Offset     int          // position of the start marker in the dump
	Message    midi.Message // F0 ... F7
	Terminated bool         // false when the dump ended or restarted before F7
}

// SplitFrames cuts data into SysEx messages. Bytes outside F0..F7 are dropped;
// an unterminated frame is closed with F7 so it stays a valid message.
func SplitFrames(data []byte) []Frame {
	var frames []Frame
	start := -1

	closeFrame := func(end int, terminated bool) {
		raw := make([]byte, 0, end-start+1)
		raw = append(raw, data[start:end]...)
		raw = append(raw, SysexStop)
		frames = append(frames, Frame{Offset: start, Message: midi.Message(raw), Terminated: terminated})
	}

	for i, b := range data {
		switch b {
		case SysexStart:
			if start >= 0 {
				closeFrame(i, false)
			}
			start = i
		case SysexStop:
			if start >= 0 {
				closeFrame(i, true)
				start = -1
			}
		}
	}
	if start >= 0 {
		closeFrame(len(data), false)
	}
	return frames
}

// FrameInfo is the decoded header of one frame
type FrameInfo struct {
	Vendor      byte
	Channel     byte
	Model       byte
	Command     Command
	KnownCmd    bool
	Target      AddressTarget
	PayloadSize int
}

// Valid reports whether the header names an S-10 on a legal channel
func (f FrameInfo) Valid() bool {
	return f.Vendor == RolandID && f.Model == S10ModelID && f.Channel <= MaxChannel
}

func (f FrameInfo) String() string {
	if !f.Valid() {
		return fmt.Sprintf("vendor=0x%02X model=0x%02X channel=%d (ignored)", f.Vendor, f.Model, f.Channel)
	}
	text := fmt.Sprintf("channel=%d command=%s", int(f.Channel)+1, f.Command)
	if f.Command == CommandDataSet {
		text += fmt.Sprintf(" target=%s", f.Target.Kind)
		switch f.Target.Kind {
		case ParamWave:
			text += fmt.Sprintf(" bank=%d", f.Target.Bank+1)
		case ParamWaveData:
			text += fmt.Sprintf(" bank=%d position=0x%05X", f.Target.Bank+1, f.Target.Position)
		case ParamPerformance, ParamNone:
		}
	}
	return text + fmt.Sprintf(" payload=%d", f.PayloadSize)
}

// InspectFrame decodes the header of a SysEx message without touching a sample
func InspectFrame(msg midi.Message) (FrameInfo, error) {
	var body []byte
	if !msg.GetSysEx(&body) {
		return FrameInfo{}, fmt.Errorf("not a SysEx message: % X", []byte(msg))
	}
	if len(body) < 4 {
		return FrameInfo{}, fmt.Errorf("SysEx header too short: %d bytes", len(body))
	}

	info := FrameInfo{
		Vendor:  body[0],
		Channel: body[1],
		Model:   body[2],
	}
	info.Command, info.KnownCmd = ParseCommand(body[3])
	info.PayloadSize = len(body) - 4

	if info.Command == CommandDataSet && len(body) >= HeaderLength {
		info.Target = ClassifyAddress(body[4], body[5], body[6])
		info.PayloadSize = len(body) - HeaderLength
	}
	return info, nil
}
