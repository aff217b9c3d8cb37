package qd

import (
	"bytes"
	"testing"
)

// shifted returns prefix zero bits followed by the bits of data
func shifted(data []byte, prefix int) []byte {
	out := make([]byte, (prefix+len(data)*8+7)/8)
	for i := 0; i < len(data)*8; i++ {
		SetBit(out, prefix+i, GetBit(data, i))
	}
	return out
}

func TestSearchBits(t *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		word     []byte
		from     int
		expected int
	}{
		{"at start", []byte{0x94, 0x4A, 0x00}, []byte{0x94, 0x4A}, 0, 0},
		{"byte aligned", []byte{0x00, 0x94, 0x4A}, []byte{0x94, 0x4A}, 0, 8},
		{"bit shifted", shifted([]byte{0x94, 0x4A}, 5), []byte{0x94, 0x4A}, 0, 5},
		{"from skips match", []byte{0x94, 0x4A, 0x94, 0x4A}, []byte{0x94, 0x4A}, 1, 16},
		{"negative from", []byte{0x94}, []byte{0x94}, -3, 0},
		{"absent", []byte{0x00, 0x00}, []byte{0x94}, 0, -1},
		{"word longer than data", []byte{0x94}, []byte{0x94, 0x4A}, 0, -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SearchBits(tc.data, tc.word, tc.from); got != tc.expected {
				t.Errorf("SearchBits() = %d, want %d", got, tc.expected)
			}
		})
	}
}

func TestRealign(t *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		offset   int
		expected []byte
	}{
		{"no shift", []byte{0xB3, 0x55}, 0, []byte{0xB3, 0x55}},
		{"three bits", []byte{0xB3, 0x55}, 3, []byte{0x9A, 0xA8}},
		{"whole byte", []byte{0xB3, 0x55}, 8, []byte{0x55}},
		{"more than 64 bits", append(make([]byte, 9), 0x80), 71, []byte{0x40, 0x00}},
		{"everything", []byte{0xB3}, 8, []byte{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Realign(tc.data, tc.offset)
			if err != nil {
				t.Fatalf("Realign() failed: %v", err)
			}
			if !bytes.Equal(got, tc.expected) {
				t.Errorf("Realign() = % X, want % X", got, tc.expected)
			}
		})
	}
}

func TestRealign_DoesNotAlias(t *testing.T) {
	data := []byte{0x12, 0x34}
	got, _ := Realign(data, 0)
	got[0] = 0xFF
	if data[0] != 0x12 {
		t.Error("Realign(0) should return a copy")
	}
}

func TestSync(t *testing.T) {
	payload := []byte{0xDE, 0xAD}
	stream := append(append([]byte(nil), SyncWord...), payload...)
	stream = append(stream, SyncWord...)
	stream = append(stream, 0xBE, 0xEF)
	data := shifted(stream, 13)

	aligned, offset, err := Sync(data, 1)
	if err != nil {
		t.Fatalf("Sync(1) failed: %v", err)
	}
	if offset != 13 {
		t.Errorf("Sync(1) offset = %d, want 13", offset)
	}
	if !bytes.HasPrefix(aligned, append(append([]byte(nil), SyncWord...), payload...)) {
		t.Errorf("Sync(1) = % X", aligned)
	}

	aligned, offset, err = Sync(data, 2)
	if err != nil {
		t.Fatalf("Sync(2) failed: %v", err)
	}
	if want := 13 + (len(SyncWord)+len(payload))*8; offset != want {
		t.Errorf("Sync(2) offset = %d, want %d", offset, want)
	}
	if !bytes.HasPrefix(aligned, append(append([]byte(nil), SyncWord...), 0xBE, 0xEF)) {
		t.Errorf("Sync(2) = % X", aligned)
	}

	if _, _, err := Sync(data, 3); err == nil {
		t.Error("Sync(3) should fail with only two sync words")
	}
	if _, _, err := Sync([]byte{0x00, 0x01}, 1); err == nil {
		t.Error("Sync() should fail without a sync word")
	}
}
