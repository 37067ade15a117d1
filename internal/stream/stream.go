package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"layeh.com/gopus"
)

const (
	// Channels is the channel count expected from PCM sources.
	Channels = 2
	// SampleRate is the sample rate expected from PCM sources.
	SampleRate = 48000
	// FrameSize is samples per channel per frame, 20ms at 48kHz.
	FrameSize = 960
)

// ErrHalted is returned by Send when the stop channel closes before the
// source drains.
var ErrHalted = errors.New("stream halted")

// Send reads s16le PCM from src, encodes 20ms opus frames and pushes them
// to send until the source drains, the stop channel closes, or a read or
// encode error occurs. volume is sampled per frame so gain changes apply
// mid-stream.
func Send(src io.Reader, volume func() float64, stop <-chan struct{}, send chan<- []byte) error {
	encoder, err := gopus.NewEncoder(SampleRate, Channels, gopus.Audio)
	if err != nil {
		return fmt.Errorf("encoder error: %w", err)
	}

	pcmBuf := make([]byte, FrameSize*Channels*2)
	intBuf := make([]int16, FrameSize*Channels)

	for {
		select {
		case <-stop:
			return ErrHalted
		default:
		}

		if _, err := io.ReadFull(src, pcmBuf); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			return fmt.Errorf("read error: %w", err)
		}

		gain := volume()
		for i := range intBuf {
			sample := int16(binary.LittleEndian.Uint16(pcmBuf[i*2 : i*2+2]))
			if gain != 1.0 {
				sample = scaleSample(sample, gain)
			}
			intBuf[i] = sample
		}

		opus, err := encoder.Encode(intBuf, FrameSize, len(pcmBuf))
		if err != nil {
			return fmt.Errorf("encode error: %w", err)
		}

		select {
		case <-stop:
			return ErrHalted
		case send <- opus:
		}
	}
}

func scaleSample(s int16, gain float64) int16 {
	v := float64(s) * gain
	switch {
	case v > 32767:
		return 32767
	case v < -32768:
		return -32768
	default:
		return int16(v)
	}
}
