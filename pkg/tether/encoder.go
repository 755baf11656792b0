// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package tether

import "fmt"

// Encode encodes a frame to wire format: framing bytes around the
// byte-stuffed kind, optional length, payload and big-endian CRC.
func Encode(f *Frame) []byte {
	data := make([]byte, 0, MaxFrameSize)
	data = append(data, f.kind)
	if f.kind == FrameResponse {
		data = append(data, uint8(len(f.payload)))
	}
	data = append(data, f.payload...)

	crc := CalculateCRC(data)
	data = append(data, byte(crc>>8), byte(crc&0xFF))

	stuffed := stuffBytes(data)

	wire := make([]byte, 0, len(stuffed)+2)
	wire = append(wire, StartByte)
	wire = append(wire, stuffed...)
	wire = append(wire, EndByte)
	return wire
}

// EncodeFrame builds and encodes a frame in one step.
func EncodeFrame(kind uint8, payload []byte) ([]byte, error) {
	f, err := NewFrame(kind, payload)
	if err != nil {
		return nil, err
	}
	return Encode(f), nil
}

// stuffBytes applies byte stuffing to escape special bytes.
// Special bytes (START, END, ESC) are replaced with ESC + (byte XOR EscXor).
func stuffBytes(data []byte) []byte {
	result := make([]byte, 0, len(data)*2)
	for _, b := range data {
		if b == StartByte || b == EndByte || b == EscByte {
			result = append(result, EscByte, b^EscXor)
		} else {
			result = append(result, b)
		}
	}
	return result
}

// UnstuffBytes removes byte stuffing from escaped data.
// This is the inverse of stuffBytes.
func UnstuffBytes(data []byte) ([]byte, error) {
	result := make([]byte, 0, len(data))
	escapeNext := false
	for _, b := range data {
		if escapeNext {
			result = append(result, b^EscXor)
			escapeNext = false
		} else if b == EscByte {
			escapeNext = true
		} else {
			result = append(result, b)
		}
	}
	if escapeNext {
		return nil, fmt.Errorf("incomplete escape sequence at end of data")
	}
	return result, nil
}
