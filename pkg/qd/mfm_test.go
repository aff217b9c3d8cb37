package qd

import (
	"bytes"
	"testing"
)

func TestSetBitGetBit(t *testing.T) {
	for _, fill := range []byte{0x00, 0xFF, 0xA5} {
		for i := 0; i < 24; i++ {
			for _, v := range []byte{0, 1} {
				buf := []byte{fill, fill, fill}
				SetBit(buf, i, v)
				if got := GetBit(buf, i); got != v {
					t.Fatalf("fill 0x%02X: GetBit(%d) = %d after SetBit(%d)", fill, i, got, v)
				}
				ref := []byte{fill, fill, fill}
				for j := 0; j < 24; j++ {
					if j != i && GetBit(buf, j) != GetBit(ref, j) {
						t.Fatalf("fill 0x%02X: SetBit(%d) changed bit %d", fill, i, j)
					}
				}
			}
		}
	}
}

func TestGetBit_MSBFirst(t *testing.T) {
	buf := []byte{0x80, 0x01}
	if GetBit(buf, 0) != 1 || GetBit(buf, 7) != 0 || GetBit(buf, 15) != 1 {
		t.Errorf("GetBit() is not MSB first on % X", buf)
	}
}

func TestMFM_EncodeKnownPattern(t *testing.T) {
	// 0x16 after a 0 bit: 0 0 0 1 0 1 1 0 -> 10 10 10 01 00 01 01 00
	ring := NewBitRing(make([]byte, 2))
	end := ring.Encode([]byte{0x16}, 8, 0)
	if end != 0 {
		t.Errorf("Encode() cursor = %d, want 0 after a full wrap", end)
	}
	if !bytes.Equal(ring.Data, []byte{0xA9, 0x14}) {
		t.Errorf("Encode(0x16) = % X, want A9 14", ring.Data)
	}
}

func TestMFM_RoundTrip(t *testing.T) {
	src := []byte{0x16, 0xA5, 0x00, 0xFF, 0x3C, 0x81}

	testCases := []struct {
		name    string
		ringLen int
		bits    int
		cursor  int
	}{
		{"aligned", 128, 48, 0},
		{"odd cursor", 128, 48, 13},
		{"crosses wrap", 100, 48, 70},
		{"cursor past length", 100, 40, 250},
		{"negative cursor", 128, 32, -6},
		{"partial byte", 64, 11, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ring := BitRing{Data: make([]byte, (tc.ringLen+7)/8), Len: tc.ringLen}
			if err := ring.Validate(); err != nil {
				t.Fatalf("Validate() failed: %v", err)
			}

			end := ring.Encode(src, tc.bits, tc.cursor)
			if want := ring.wrap(tc.cursor + 2*tc.bits); end != want {
				t.Errorf("Encode() cursor = %d, want %d", end, want)
			}

			dst := make([]byte, len(src))
			ring.Decode(dst, tc.bits, tc.cursor)
			for i := 0; i < tc.bits; i++ {
				if GetBit(dst, i) != GetBit(src, i) {
					t.Fatalf("bit %d = %d, want %d", i, GetBit(dst, i), GetBit(src, i))
				}
			}
		})
	}
}

func TestMFM_ConsecutiveCalls(t *testing.T) {
	ring := NewBitRing(make([]byte, 8))
	cursor := ring.Encode([]byte{0x16}, 8, 0)
	cursor = ring.Encode([]byte{0xA5}, 8, cursor)
	ring.Encode([]byte{0x00, 0x00}, 16, cursor)

	whole := NewBitRing(make([]byte, 8))
	whole.Encode([]byte{0x16, 0xA5, 0x00, 0x00}, 32, 0)

	if !bytes.Equal(ring.Data, whole.Data) {
		t.Errorf("split encode = % X, whole encode = % X", ring.Data, whole.Data)
	}
}

func TestMFM_NoAdjacentOnes(t *testing.T) {
	ring := NewBitRing(make([]byte, 16))
	ring.Encode([]byte{0xFF, 0x00, 0xAA, 0x55, 0x0F, 0xF0, 0x81, 0x7E}, 64, 0)
	for i := 1; i < ring.Len; i++ {
		if ring.Bit(i-1) == 1 && ring.Bit(i) == 1 {
			t.Fatalf("flux reversals at cells %d and %d", i-1, i)
		}
	}
}

func TestEncodeMFM_DecodeMFM(t *testing.T) {
	src := []byte{0xDE, 0xAD}
	mfm := make([]byte, 4)
	EncodeMFM(mfm, 32, src, 16, 0)

	dst := make([]byte, 2)
	if end := DecodeMFM(mfm, 32, dst, 16, 0); end != 0 {
		t.Errorf("DecodeMFM() cursor = %d, want 0", end)
	}
	if !bytes.Equal(dst, src) {
		t.Errorf("DecodeMFM() = % X, want % X", dst, src)
	}
}

func TestBitRing_Validate(t *testing.T) {
	if err := (BitRing{Data: make([]byte, 2), Len: 17}).Validate(); err == nil {
		t.Error("Validate() should reject a length past the buffer")
	}
	if err := (BitRing{Data: nil, Len: 0}).Validate(); err == nil {
		t.Error("Validate() should reject an empty ring")
	}
}
