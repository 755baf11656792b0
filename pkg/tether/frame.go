// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package tether

import (
	"fmt"
	"time"

	"github.com/voltaiclabs/portscope/pkg/ucsi"
)

// Frame represents a decoded tether frame
type Frame struct {
	kind      uint8
	payload   []byte
	crc       uint16
	timestamp time.Time
}

// NewFrame creates a frame of the given kind, validating the payload
// length the kind requires.
func NewFrame(kind uint8, payload []byte) (*Frame, error) {
	switch kind {
	case FrameCommand:
		if len(payload) != ucsi.CommandLen {
			return nil, fmt.Errorf("command frame payload must be %d bytes, got %d", ucsi.CommandLen, len(payload))
		}
	case FrameCci:
		if len(payload) != ucsi.CciLen {
			return nil, fmt.Errorf("CCI frame payload must be %d bytes, got %d", ucsi.CciLen, len(payload))
		}
	case FrameResponse:
		if len(payload) == 0 || len(payload) > MaxPayloadSize {
			return nil, fmt.Errorf("response frame payload must be 1-%d bytes, got %d", MaxPayloadSize, len(payload))
		}
	default:
		return nil, fmt.Errorf("unknown frame kind 0x%02X", kind)
	}
	return &Frame{
		kind:      kind,
		payload:   payload,
		timestamp: time.Now(),
	}, nil
}

// Kind returns the frame kind
func (f *Frame) Kind() uint8 {
	return f.kind
}

// Payload returns the frame's payload bytes
func (f *Frame) Payload() []byte {
	return f.payload
}

// CRC returns the frame's CRC value
func (f *Frame) CRC() uint16 {
	return f.crc
}

// Timestamp returns the frame's decode timestamp
func (f *Frame) Timestamp() time.Time {
	return f.timestamp
}

// KindName returns a printable name for a frame kind byte.
func KindName(kind uint8) string {
	switch kind {
	case FrameCommand:
		return "COMMAND"
	case FrameCci:
		return "CCI"
	case FrameResponse:
		return "RESPONSE"
	default:
		return fmt.Sprintf("UNKNOWN(0x%02X)", kind)
	}
}

// CrcError reports a frame whose transmitted CRC did not match the
// checksum of its decoded contents.
type CrcError struct {
	Want uint16 // calculated
	Got  uint16 // transmitted
}

func (e *CrcError) Error() string {
	return fmt.Sprintf("CRC mismatch: expected 0x%04X, got 0x%04X", e.Want, e.Got)
}

// FramingError reports a byte sequence that violates the frame
// structure: bad kind, bad length, or a misplaced framing byte.
type FramingError struct {
	Reason string
}

func (e *FramingError) Error() string {
	return "framing error: " + e.Reason
}
