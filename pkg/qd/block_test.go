package qd

import (
	"bytes"
	"testing"

	"github.com/hansbonini/s10tools/pkg/s10"
)

// payloadOf strips framing and CRC from a block built by PrepareBlock
func payloadOf(block []byte) []byte {
	start := len(SyncPre) + len(SyncMark)
	return block[start : len(block)-2-len(SyncPost)]
}

func TestPrepareBlock(t *testing.T) {
	block := PrepareBlock([]byte{0x02})

	if len(block) != len(SyncPre)+len(SyncMark)+1+2+len(SyncPost) {
		t.Fatalf("len(PrepareBlock()) = %d", len(block))
	}
	if !bytes.HasPrefix(block, append(append([]byte(nil), SyncPre...), SyncMark...)) {
		t.Errorf("block does not start with pre-sync and mark: % X", block)
	}
	if !bytes.HasSuffix(block, SyncPost) {
		t.Errorf("block does not end with post-sync: % X", block)
	}

	crc := BlockCRC([]byte{0xA5, 0x02})
	if !bytes.Equal(block[9:11], crc.Bytes()) {
		t.Errorf("CRC bytes = % X, want % X", block[9:11], crc.Bytes())
	}
	if !VerifyBlock(block) {
		t.Error("VerifyBlock() = false on a fresh block")
	}
}

func TestVerifyBlock_Corrupted(t *testing.T) {
	block := PrepareBlock([]byte("payload"))
	block[len(SyncPre)+3] ^= 0x10
	if VerifyBlock(block) {
		t.Error("VerifyBlock() = true on a corrupted block")
	}
	if VerifyBlock([]byte{0x16, 0x16}) {
		t.Error("VerifyBlock() = true on a truncated block")
	}
}

func TestBuildFormatBlock(t *testing.T) {
	block := BuildFormatBlock()
	if !bytes.Equal(payloadOf(block), []byte{FormatBlockWord}) {
		t.Errorf("format payload = % X", payloadOf(block))
	}
}

func TestBuildParamBlock(t *testing.T) {
	sample := s10.NewSample()
	sample.Banks[1].ToneName = "PIANO"

	block := BuildParamBlock(sample, 1)
	if !VerifyBlock(block) {
		t.Fatal("VerifyBlock() = false")
	}

	data := payloadOf(block)
	if len(data) != ParamBlockSize {
		t.Fatalf("len(payload) = %d, want %d", len(data), ParamBlockSize)
	}
	if got := string(data[ParamToneNameOffset : ParamToneNameOffset+s10.ToneNameLength]); got != "PIANO    " {
		t.Errorf("tone name = %q", got)
	}
	if data[ParamToneNameOffset+s10.ToneNameLength] != '\r' {
		t.Errorf("tone name terminator = 0x%02X, want CR", data[ParamToneNameOffset+s10.ToneNameLength])
	}
	if got := string(data[ParamIDOffset : ParamIDOffset+len(ParamID)]); got != ParamID {
		t.Errorf("ID = %q, want %q", got, ParamID)
	}
	if data[0x01] != 0x40 || data[0x03] != 0x01 || data[0x17] != 0xA0 || data[0x18] != 0xC0 {
		t.Errorf("fixed bytes = % X", data[:0x19])
	}
}

func TestBuildWaveBlock(t *testing.T) {
	sample := s10.NewSample()
	mem := sample.BankMemory(2)
	// 0xABC0 and 0x1230, little-endian
	copy(mem, []byte{0xC0, 0xAB, 0x30, 0x12})

	block := BuildWaveBlock(sample, 2)
	if !VerifyBlock(block) {
		t.Fatal("VerifyBlock() = false")
	}

	data := payloadOf(block)
	if len(data) != WaveBlockSize {
		t.Fatalf("len(payload) = %d, want %d", len(data), WaveBlockSize)
	}
	if got := data[WaveDataOffset : WaveDataOffset+3]; !bytes.Equal(got, []byte{0xAB, 0x12, 0x3C}) {
		t.Errorf("first sample pair = % X, want AB 12 3C", got)
	}
	if end := WaveDataOffset + 3*WaveDataSamples/2; end > len(data) {
		t.Errorf("wave data ends at %d past payload of %d", end, len(data))
	}
}

func TestBuildBankBlocks(t *testing.T) {
	t.Run("structure AB-CD", func(t *testing.T) {
		sample := s10.NewSample()
		sample.GlobalStructure, _ = s10.LookupSamplingStructure(9)
		sample.HasGlobalStructure = true

		banks := BuildBankBlocks(sample)
		if len(banks) != s10.BankCount {
			t.Fatalf("len(BuildBankBlocks()) = %d, want %d", len(banks), s10.BankCount)
		}
		for i, bank := range banks {
			if bank.Bank != i || len(bank.Blocks) != 3 {
				t.Errorf("bank %d: %d blocks for bank %d", i, len(bank.Blocks), bank.Bank)
			}
			for j, block := range bank.Blocks {
				if !VerifyBlock(block) {
					t.Errorf("bank %d block %d fails CRC", i, j)
				}
			}
		}
	})

	t.Run("structure D", func(t *testing.T) {
		sample := s10.NewSample()
		sample.GlobalStructure, _ = s10.LookupSamplingStructure(3)
		sample.HasGlobalStructure = true

		banks := BuildBankBlocks(sample)
		if len(banks) != 1 || banks[0].Bank != 3 {
			t.Errorf("BuildBankBlocks() = %d banks, want bank D only", len(banks))
		}
	})

	t.Run("no structure", func(t *testing.T) {
		banks := BuildBankBlocks(s10.NewSample())
		if len(banks) != 1 || banks[0].Bank != 0 {
			t.Errorf("BuildBankBlocks() = %d banks, want bank A only", len(banks))
		}
	})
}
