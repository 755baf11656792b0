// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

// Package tether implements the wire framing used to stream UCSI
// mailbox traffic over a byte transport such as a PD controller's
// debug serial port. Each frame carries one command write, one CCI
// register write, or one response mailbox image, protected by a CRC
// and byte stuffing so frames resynchronize after line noise.
package tether

// Protocol framing bytes
const (
	StartByte = 0x7E
	EndByte   = 0x7F
	EscByte   = 0x7D
	EscXor    = 0x20
)

// Frame kinds
const (
	FrameCommand  = 0x01 // 8-byte command mailbox write
	FrameCci      = 0x02 // 4-byte CCI register write
	FrameResponse = 0x03 // variable response mailbox, length prefixed
)

// Frame size limits. The response payload is bounded by the largest
// UCSI response mailbox.
const (
	MaxPayloadSize = 19
	MaxFrameSize   = 24 // kind + length + payload + CRC, before stuffing
)

// CRC-16-CCITT configuration
const (
	crcPolynomial = 0x1021
	crcInitial    = 0xFFFF
)

// Decoder states
const (
	stateIdle = iota
	stateKind
	stateLength
	statePayload
	stateCRC1
	stateCRC2
)
