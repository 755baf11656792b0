// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package ucsi

import (
	"fmt"
	"strings"
)

// UnexpectedVariantError is returned when a wire field decodes to a
// value outside its closed set: an unknown opcode, recipient,
// source-capability type, power-operation mode, and so on. It is always
// recoverable; the host rejects the single malformed command.
type UnexpectedVariantError struct {
	Type    string   // name of the offending field type
	Found   uint32   // raw value seen on the wire
	Allowed []uint32 // the closed set of legal values
}

func (e *UnexpectedVariantError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "unexpected %s value 0x%02X (allowed:", e.Type, e.Found)
	for _, v := range e.Allowed {
		fmt.Fprintf(&sb, " 0x%02X", v)
	}
	sb.WriteString(")")
	return sb.String()
}

// ShortBufferError is returned when an encode or decode target slice is
// smaller than the fixed wire size of the type involved.
type ShortBufferError struct {
	Type string
	Got  int
	Want int
}

func (e *ShortBufferError) Error() string {
	return fmt.Sprintf("%s needs %d bytes, got %d", e.Type, e.Want, e.Got)
}

// UnsupportedCommandError is returned when a syntactically valid opcode
// has no argument or response layout in this implementation. Distinct
// from UnexpectedVariantError: the opcode is in the table, the codec
// just cannot interpret its payload.
type UnsupportedCommandError struct {
	Command CommandType
}

func (e *UnsupportedCommandError) Error() string {
	return fmt.Sprintf("no codec for command %s", CommandTypeName(e.Command))
}

// ExecError enumerates domain failures surfaced from command execution.
// Execution itself is the host's business; the enumeration exists so
// execution failures can flow through response paths without panics.
type ExecError uint8

// Execution error values
const (
	ExecErrInvalidPort ExecError = iota
	ExecErrInvalidParams
	ExecErrBusy
	ExecErrTimeout
	ExecErrOvercurrent
	ExecErrDeadBattery
	ExecErrUnsupported
)

func (e ExecError) Error() string {
	switch e {
	case ExecErrInvalidPort:
		return "invalid port"
	case ExecErrInvalidParams:
		return "invalid parameters"
	case ExecErrBusy:
		return "busy"
	case ExecErrTimeout:
		return "timeout"
	case ExecErrOvercurrent:
		return "overcurrent"
	case ExecErrDeadBattery:
		return "dead battery"
	case ExecErrUnsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("exec error %d", uint8(e))
	}
}
