// Package pkg provides tests for SysEx dump decoders
package pkg

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/hansbonini/s10tools/pkg/s10"
)

// paramFrame builds a DT1 frame carrying one wave parameter block for bank 0
func paramFrame(name string, structure byte) []byte {
	block := make([]byte, s10.WaveParamBlockWidth)
	copy(block[s10.ToneNameOffset:], name+strings.Repeat(" ", s10.ToneNameLength-len(name)))
	block[s10.StructureOffset] = structure
	return dataFrame([3]byte{0x01, 0x00, 0x00}, block)
}

// dataFrame wraps payload in an S-10 DT1 frame on channel 1
func dataFrame(address [3]byte, payload []byte) []byte {
	frame := []byte{s10.SysexStart, s10.RolandID, 0x00, s10.S10ModelID, byte(s10.CommandDataSet)}
	frame = append(frame, address[:]...)
	frame = append(frame, payload...)
	return append(frame, s10.SysexStop)
}

// testDump is a two bank dump with structure A-B and a few wave data pairs
func testDump() []byte {
	dump := paramFrame("PIANO", 7)
	dump = append(dump, dataFrame([3]byte{0x02, 0x00, 0x00}, []byte{0x55, 0x2A, 0x40, 0x00})...)
	return dump
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("read failed")
}

func TestNewSyxDecoder(t *testing.T) {
	decoder := NewSyxDecoder()
	if decoder == nil {
		t.Error("NewSyxDecoder() returned nil")
	}
}

func TestSyxFileDecoder_Decode(t *testing.T) {
	decoder := NewSyxDecoder()
	sample, err := decoder.Decode(bytes.NewReader(testDump()))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}

	if sample.Banks[0].ToneName != "PIANO" {
		t.Errorf("ToneName = %q, want PIANO", sample.Banks[0].ToneName)
	}
	if !sample.HasGlobalStructure || sample.GlobalStructure.Name != "A-B" {
		t.Errorf("GlobalStructure = %+v, want A-B", sample.GlobalStructure)
	}

	stats := decoder.Stats()
	if stats.Frames != 2 || stats.WaveDataBytes != 4 || stats.FinalPosition != 4 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestSyxFileDecoder_DecodeMemoryExhausted(t *testing.T) {
	dump := dataFrame([3]byte{0x11, 0x7F, 0x7E}, []byte{0x7F, 0x7C, 0x01, 0x04})

	sample, err := NewSyxDecoder().Decode(bytes.NewReader(dump))
	if !errors.Is(err, s10.ErrMemoryExhausted) {
		t.Fatalf("Decode() error = %v, want ErrMemoryExhausted", err)
	}
	if sample == nil {
		t.Error("Decode() should return the partial sample")
	}
}

func TestSyxFileDecoder_DecodeReadError(t *testing.T) {
	sample, err := NewSyxDecoder().Decode(failingReader{})
	if err == nil {
		t.Fatal("Decode() should fail on a read error")
	}
	if sample != nil {
		t.Error("Decode() should not return a sample on a read error")
	}
}

func TestSyxFileDecoder_ListFrames(t *testing.T) {
	dump := testDump()
	dump = append(dump, s10.SysexStart, 0x43, 0x00, 0x00, s10.SysexStop)
	dump = append(dump, s10.SysexStart, s10.RolandID, 0x00)

	listing, err := NewSyxDecoder().ListFrames(bytes.NewReader(dump))
	if err != nil {
		t.Fatalf("ListFrames() failed: %v", err)
	}
	if len(listing) != 4 {
		t.Fatalf("len(ListFrames()) = %d, want 4", len(listing))
	}

	first := listing[0]
	if first.Offset != 0 || !first.Terminated || first.Err != nil {
		t.Errorf("frame 0 = %+v", first)
	}
	if !first.Info.Valid() || first.Info.Command != s10.CommandDataSet {
		t.Errorf("frame 0 info = %+v", first.Info)
	}
	if listing[2].Info.Valid() {
		t.Errorf("frame 2 should not be an S-10 frame: %+v", listing[2].Info)
	}
	if listing[3].Terminated {
		t.Error("frame 3 should be unterminated")
	}
}
