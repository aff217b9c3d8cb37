package pkg

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hansbonini/s10tools/pkg/qd"
)

func TestQDFileProcessor_EncodeDecode(t *testing.T) {
	dir := t.TempDir()
	plain := []byte("Roland S10 \x00\x16\xA5\xFF")
	input := filepath.Join(dir, "plain.bin")
	encoded := filepath.Join(dir, "track.raw")
	decoded := filepath.Join(dir, "decoded.bin")
	if err := os.WriteFile(input, plain, 0o600); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	processor := NewQDProcessor()
	if err := processor.Encode(input, encoded); err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	raw, _ := os.ReadFile(encoded)
	if len(raw) != 2*len(plain) {
		t.Errorf("encoded size = %d, want %d", len(raw), 2*len(plain))
	}

	if err := processor.Decode(encoded, decoded, 0, 0); err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	got, _ := os.ReadFile(decoded)
	if !bytes.Equal(got, plain) {
		t.Errorf("decoded = % X, want % X", got, plain)
	}
}

func TestQDFileProcessor_SyncAndDecodeBlock(t *testing.T) {
	dir := t.TempDir()
	block := qd.BuildFormatBlock()
	raw := qd.EncodeStream(append([]byte{0x00, 0x00, 0x00}, block...))
	input := filepath.Join(dir, "track.raw")
	if err := os.WriteFile(input, raw, 0o600); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	processor := NewQDProcessor()
	output := filepath.Join(dir, "block.bin")
	if err := processor.Decode(input, output, 1, 0); err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	got, _ := os.ReadFile(output)
	if !bytes.Equal(got, block) {
		t.Errorf("decoded block = % X, want % X", got, block)
	}

	// sync works on a capture already in MFM bit order
	mfm := append([]byte(nil), raw...)
	qd.InvertBits(mfm)
	mfmPath := filepath.Join(dir, "track.mfm")
	if err := os.WriteFile(mfmPath, mfm, 0o600); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}
	aligned := filepath.Join(dir, "aligned.mfm")
	if err := processor.Sync(mfmPath, aligned, 1); err != nil {
		t.Fatalf("Sync() failed: %v", err)
	}
	got, _ = os.ReadFile(aligned)
	if !bytes.HasPrefix(got, qd.SyncWord) {
		t.Errorf("aligned capture = % X", got[:len(qd.SyncWord)])
	}

	if err := processor.Sync(input, aligned, 2); err == nil {
		t.Error("Sync(2) should fail with a single block")
	}
}

func TestQDFileProcessor_Invert(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.bin")
	output := filepath.Join(dir, "out.bin")
	if err := os.WriteFile(input, []byte{0x01, 0x16}, 0o600); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	if err := NewQDProcessor().Invert(input, output); err != nil {
		t.Fatalf("Invert() failed: %v", err)
	}
	got, _ := os.ReadFile(output)
	if !bytes.Equal(got, []byte{0x80, 0x68}) {
		t.Errorf("Invert() = % X, want 80 68", got)
	}
}

func TestQDFileProcessor_CheckCRC(t *testing.T) {
	dir := t.TempDir()
	data := []byte("123456789")

	testCases := []struct {
		name    string
		content []byte
		initial uint16
		want    uint16
		wantErr bool
	}{
		{"with CRC", append(append([]byte(nil), data...), 0xFE, 0xE8), 0x0000, 0x0000, false},
		{"without CRC", data, 0x0000, 0xFEE8, true},
		{"with CRC and init", []byte{0x12, 0x34}, 0x1234, 0x0000, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".bin")
			if err := os.WriteFile(path, tc.content, 0o600); err != nil {
				t.Fatalf("failed to write input: %v", err)
			}
			got, err := NewQDProcessor().CheckCRC(path, tc.initial)
			if (err != nil) != tc.wantErr {
				t.Errorf("CheckCRC() error = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("CheckCRC() = 0x%04X, want 0x%04X", got, tc.want)
			}
		})
	}
}

func TestQDFileProcessor_MissingInput(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.bin")
	processor := NewQDProcessor()

	if err := processor.Encode(missing, missing+".out"); err == nil {
		t.Error("Encode() should fail on a missing input")
	}
	if _, err := processor.CheckCRC(missing, 0); err == nil {
		t.Error("CheckCRC() should fail on a missing input")
	}
}
