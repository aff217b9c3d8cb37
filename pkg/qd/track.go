package qd

import "github.com/hansbonini/s10tools/pkg/common"

// Track timing of a QuickDisk side
const (
	BitMS     = 0.004916 // duration of one MFM cell
	LeadInMS  = 500
	WindowMS  = 5500
	TotalMS   = 8000
	BlockSize = 512
)

// MSToBytes converts a duration to the number of whole bytes it holds
func MSToBytes(ms float64) int {
	return int(ms / BitMS / 8)
}

// TimeToBitOffset converts a time in milliseconds to a bit offset for a
// track recorded at cellsPerSecond cells.
func TimeToBitOffset(cellsPerSecond uint32, ms uint32) uint32 {
	return uint32(float64(cellsPerSecond) * (float64(ms) / 1000))
}

// TrackGeometry is the byte layout of one track and its read/write window
type TrackGeometry struct {
	LeadIn      int // bytes before the window opens
	Window      int // bytes inside the read/write window
	Total       int // bytes in the whole track
	ImageBlocks int // 512 byte blocks, including image and track headers
}

// DefaultTrackGeometry returns the geometry for the standard timings
func DefaultTrackGeometry() TrackGeometry {
	total := MSToBytes(TotalMS)
	return TrackGeometry{
		LeadIn:      MSToBytes(LeadInMS),
		Window:      MSToBytes(WindowMS),
		Total:       total,
		ImageBlocks: (total+BlockSize-1)/BlockSize + 2,
	}
}

// WindowEnd returns the byte offset where the read/write window closes
func (g TrackGeometry) WindowEnd() int {
	return g.LeadIn + g.Window
}

// EncodeStream turns plain bytes into the raw track representation:
// bit order inversion, MFM modulation, bit order inversion.
func EncodeStream(data []byte) []byte {
	if len(data) == 0 {
		return []byte{}
	}
	plain := append([]byte(nil), data...)
	InvertBits(plain)

	ring := NewBitRing(make([]byte, 2*len(plain)))
	end := ring.Encode(plain, len(plain)*8, 0)
	common.LogDebug(common.DebugMFMEncoded, len(plain)*8, 0, end)

	InvertBits(ring.Data)
	return ring.Data
}

// DecodeStream reverses EncodeStream on a raw capture. With block > 0 the
// capture is first aligned on the block-th sync word. Decoding starts at
// bit cursor of the (aligned) capture and wraps around its end.
func DecodeStream(raw []byte, block int, cursor int) ([]byte, error) {
	mfm := append([]byte(nil), raw...)
	InvertBits(mfm)

	if block > 0 {
		aligned, _, err := Sync(mfm, block)
		if err != nil {
			return nil, err
		}
		mfm = aligned
	}

	ring := NewBitRing(mfm)
	if err := ring.Validate(); err != nil {
		return nil, err
	}
	out := make([]byte, len(mfm)/2)
	end := ring.Decode(out, len(out)*8, cursor)
	common.LogDebug(common.DebugMFMDecoded, len(out)*8, cursor, end)

	InvertBits(out)
	return out, nil
}
