// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package ucsi

import "encoding/binary"

// The three role-configuration commands share a 16-bit argument word
// with the connector number packed into its low seven bits (protocol
// quirk: not the dedicated connector byte) and command-specific flags
// above it.

// SetCcom configures a connector's CC operation mode.
type SetCcom struct {
	Rp       bool // source-only (Rp)
	Rd       bool // sink-only (Rd)
	Drp      bool // dual-role
	Disabled bool
}

func (SetCcom) CommandType() CommandType { return CmdSetCcom }

func (s SetCcom) encodeArgs(connector byte, args []byte) error {
	w := uint16(connector)
	w |= flagBit(s.Rp, 7) | flagBit(s.Rd, 8) | flagBit(s.Drp, 9) | flagBit(s.Disabled, 10)
	binary.LittleEndian.PutUint16(args, w)
	return nil
}

func decodeSetCcom(args []byte) (LpmOperation, byte) {
	w := binary.LittleEndian.Uint16(args)
	op := SetCcom{
		Rp:       w&(1<<7) != 0,
		Rd:       w&(1<<8) != 0,
		Drp:      w&(1<<9) != 0,
		Disabled: w&(1<<10) != 0,
	}
	return op, byte(w)
}

// SetUor requests a USB data-role change.
type SetUor struct {
	Dfp        bool
	Ufp        bool
	AcceptSwap bool // accept partner-initiated role swaps
}

func (SetUor) CommandType() CommandType { return CmdSetUor }

func (s SetUor) encodeArgs(connector byte, args []byte) error {
	w := uint16(connector)
	w |= flagBit(s.Dfp, 7) | flagBit(s.Ufp, 8) | flagBit(s.AcceptSwap, 9)
	binary.LittleEndian.PutUint16(args, w)
	return nil
}

func decodeSetUor(args []byte) (LpmOperation, byte) {
	w := binary.LittleEndian.Uint16(args)
	op := SetUor{
		Dfp:        w&(1<<7) != 0,
		Ufp:        w&(1<<8) != 0,
		AcceptSwap: w&(1<<9) != 0,
	}
	return op, byte(w)
}

// SetPdr requests a power-role change.
type SetPdr struct {
	SwapToSource bool
	SwapToSink   bool
	AcceptSwap   bool
}

func (SetPdr) CommandType() CommandType { return CmdSetPdr }

func (s SetPdr) encodeArgs(connector byte, args []byte) error {
	w := uint16(connector)
	w |= flagBit(s.SwapToSource, 7) | flagBit(s.SwapToSink, 8) | flagBit(s.AcceptSwap, 9)
	binary.LittleEndian.PutUint16(args, w)
	return nil
}

func decodeSetPdr(args []byte) (LpmOperation, byte) {
	w := binary.LittleEndian.Uint16(args)
	op := SetPdr{
		SwapToSource: w&(1<<7) != 0,
		SwapToSink:   w&(1<<8) != 0,
		AcceptSwap:   w&(1<<9) != 0,
	}
	return op, byte(w)
}

func flagBit(v bool, bit uint) uint16 {
	if v {
		return 1 << bit
	}
	return 0
}
