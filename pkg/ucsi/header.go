// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package ucsi

// CommandHeader is the first two bytes of every command mailbox write:
// the opcode and a data-length byte. The data length is carried but not
// authoritative for framing; the command mailbox is a fixed 8 bytes.
//
// A CommandHeader can only hold a validated opcode. Construct it with
// NewCommandHeader or DecodeCommandHeader; once built it is trusted
// everywhere without re-validation.
type CommandHeader struct {
	command CommandType
	dataLen uint8
}

// NewCommandHeader builds a header from a known opcode.
func NewCommandHeader(command CommandType, dataLen uint8) CommandHeader {
	return CommandHeader{command: command, dataLen: dataLen}
}

// DecodeCommandHeader validates the opcode byte of a raw command
// mailbox and returns the header. Unknown opcodes fail with
// UnexpectedVariantError.
func DecodeCommandHeader(b []byte) (CommandHeader, error) {
	if len(b) < 2 {
		return CommandHeader{}, &ShortBufferError{Type: "CommandHeader", Got: len(b), Want: 2}
	}
	ct, err := CommandTypeFromByte(b[0])
	if err != nil {
		return CommandHeader{}, err
	}
	return CommandHeader{command: ct, dataLen: b[1]}, nil
}

// Command returns the validated opcode.
func (h CommandHeader) Command() CommandType {
	return h.command
}

// DataLen returns the data-length byte as seen on the wire.
func (h CommandHeader) DataLen() uint8 {
	return h.dataLen
}

// encode writes the header into the first two bytes of a command
// mailbox buffer.
func (h CommandHeader) encode(b []byte) {
	b[0] = byte(h.command)
	b[1] = h.dataLen
}
