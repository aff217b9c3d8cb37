package pkg

import (
	"errors"
	"io"

	"github.com/hansbonini/s10tools/pkg/common"
	"github.com/hansbonini/s10tools/pkg/s10"
)

// SyxFileDecoder implements the SyxDecoder interface
type SyxFileDecoder struct {
	decoder *s10.Decoder
}

// NewSyxDecoder creates a new SysEx dump decoder instance
func NewSyxDecoder() *SyxFileDecoder {
	return &SyxFileDecoder{decoder: s10.NewDecoder()}
}

// Decode reads a complete dump and decodes it. A memory overrun still
// returns the partial sample together with s10.ErrMemoryExhausted.
func (d *SyxFileDecoder) Decode(reader io.Reader) (*s10.Sample, error) {
	data, err := common.ReadAllBytes(reader)
	if err != nil {
		return nil, err
	}

	sample, err := d.decoder.Decode(data)
	stats := d.decoder.Stats()
	common.LogInfo(common.InfoSysexDecoded, stats.Frames, stats.Accepted(), stats.Rejected+stats.StraySymbols)

	if err != nil {
		if errors.Is(err, s10.ErrMemoryExhausted) {
			return sample, err
		}
		return nil, common.FormatError(common.ErrFailedToDecodeSysex, err)
	}
	return sample, nil
}

// Stats returns the statistics of the last Decode call
func (d *SyxFileDecoder) Stats() s10.Stats {
	return d.decoder.Stats()
}

// ListFrames cuts a dump into SysEx messages and decodes each header
func (d *SyxFileDecoder) ListFrames(reader io.Reader) ([]FrameListing, error) {
	data, err := common.ReadAllBytes(reader)
	if err != nil {
		return nil, err
	}

	frames := s10.SplitFrames(data)
	listing := make([]FrameListing, 0, len(frames))
	for _, frame := range frames {
		info, err := s10.InspectFrame(frame.Message)
		if err == nil && !frame.Terminated {
			common.LogWarn(common.WarnTruncatedFrame, frame.Offset)
		}
		listing = append(listing, FrameListing{
			Offset:     frame.Offset,
			Terminated: frame.Terminated,
			Info:       info,
			Err:        err,
		})
	}
	return listing, nil
}
