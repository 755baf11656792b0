// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package tether

import (
	"fmt"
	"time"

	"github.com/voltaiclabs/portscope/pkg/ucsi"
)

// Decoder implements the tether frame decoder state machine
type Decoder struct {
	state       int
	buffer      []byte // decoded kind/length/payload bytes, CRC input
	bufferIndex int
	escapeNext  bool
	frame       *Frame
	expectLen   int    // payload bytes the current frame still owes
	rawBuffer   []byte // Accumulate raw bytes including framing
}

// NewDecoder creates a new frame decoder
func NewDecoder() *Decoder {
	return &Decoder{
		state:     stateIdle,
		buffer:    make([]byte, MaxFrameSize),
		rawBuffer: make([]byte, 0, MaxFrameSize*2),
	}
}

// Reset resets the decoder state to idle
func (d *Decoder) Reset() {
	d.state = stateIdle
	d.bufferIndex = 0
	d.escapeNext = false
	d.frame = nil
	d.expectLen = 0
	d.rawBuffer = d.rawBuffer[:0]
}

// GetRawBytes returns the accumulated raw bytes since the last frame
func (d *Decoder) GetRawBytes() []byte {
	return d.rawBuffer
}

// DecodeByte processes a single byte through the decoder state machine
// Returns a completed frame, or nil if the frame is incomplete
// Returns an error if decoding fails
func (d *Decoder) DecodeByte(b byte) (*Frame, error) {
	// Always accumulate raw bytes for verification
	d.rawBuffer = append(d.rawBuffer, b)

	// Handle byte stuffing
	if b == EscByte && !d.escapeNext {
		d.escapeNext = true
		return nil, nil
	}

	originalB := b
	if d.escapeNext {
		b ^= EscXor
		d.escapeNext = false
	}

	// Handle framing bytes
	if originalB == StartByte && !d.escapeNext {
		d.Reset()
		d.rawBuffer = append(d.rawBuffer[:0], originalB)
		d.state = stateKind
		return nil, nil
	}

	if originalB == EndByte && !d.escapeNext {
		if d.state == stateCRC2 {
			// Frame complete - validate CRC
			frame := d.frame
			calculatedCRC := CalculateCRC(d.buffer[:d.bufferIndex])

			if frame.crc != calculatedCRC {
				err := &CrcError{Want: calculatedCRC, Got: frame.crc}
				d.Reset()
				return nil, err
			}

			frame.timestamp = time.Now()

			d.Reset()
			return frame, nil
		}
		state := d.state
		d.Reset()
		return nil, &FramingError{Reason: fmt.Sprintf("unexpected END byte in state %d", state)}
	}

	// State machine
	switch d.state {
	case stateIdle:
		// Waiting for START byte
		return nil, nil

	case stateKind:
		switch b {
		case FrameCommand:
			d.expectLen = ucsi.CommandLen
		case FrameCci:
			d.expectLen = ucsi.CciLen
		case FrameResponse:
			d.expectLen = -1 // length byte follows
		default:
			d.Reset()
			return nil, &FramingError{Reason: fmt.Sprintf("unknown frame kind 0x%02X", b)}
		}
		d.frame = &Frame{kind: b}
		d.buffer[d.bufferIndex] = b
		d.bufferIndex++
		if d.expectLen < 0 {
			d.state = stateLength
		} else {
			d.frame.payload = make([]byte, 0, d.expectLen)
			d.state = statePayload
		}
		return nil, nil

	case stateLength:
		if b == 0 || b > MaxPayloadSize {
			d.Reset()
			return nil, &FramingError{Reason: fmt.Sprintf("invalid response length %d", b)}
		}
		d.expectLen = int(b)
		d.frame.payload = make([]byte, 0, d.expectLen)
		d.buffer[d.bufferIndex] = b
		d.bufferIndex++
		d.state = statePayload
		return nil, nil

	case statePayload:
		if d.bufferIndex >= MaxFrameSize {
			d.Reset()
			return nil, &FramingError{Reason: "frame exceeds max size"}
		}
		d.frame.payload = append(d.frame.payload, b)
		d.buffer[d.bufferIndex] = b
		d.bufferIndex++
		if len(d.frame.payload) >= d.expectLen {
			d.state = stateCRC1
		}
		return nil, nil

	case stateCRC1:
		d.frame.crc = uint16(b) << 8
		d.state = stateCRC2
		return nil, nil

	case stateCRC2:
		d.frame.crc |= uint16(b)
		// Wait for END byte
		return nil, nil

	default:
		d.Reset()
		return nil, &FramingError{Reason: fmt.Sprintf("invalid state %d", d.state)}
	}
}

// Decode runs a full byte slice through the decoder and returns every
// frame it completes, dropping bytes that fail to decode.
func (d *Decoder) Decode(data []byte) []*Frame {
	var frames []*Frame
	for _, b := range data {
		if f, err := d.DecodeByte(b); err == nil && f != nil {
			frames = append(frames, f)
		}
	}
	return frames
}
