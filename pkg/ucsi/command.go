// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package ucsi

import "encoding/binary"

// Command is a decoded command mailbox write: either a PPM-level
// directive (no connector) or an LPM command addressed to one
// connector. The type parameter fixes which port addressing scheme the
// surrounding integration uses.
type Command[P PortID] interface {
	CommandType() CommandType
}

// Ack is the acknowledgment byte of ACK_CC_CI.
type Ack uint8

// Ack bits
const (
	ackConnectorChangeBit = 0
	ackCommandCompleteBit = 1
)

// ConnectorChangeAck reports whether the OPM is acknowledging a
// connector-change indication.
func (a Ack) ConnectorChangeAck() bool { return a&(1<<ackConnectorChangeBit) != 0 }

// CommandCompleteAck reports whether the OPM is acknowledging a
// command-complete indication.
func (a Ack) CommandCompleteAck() bool { return a&(1<<ackCommandCompleteBit) != 0 }

// NewAck builds an Ack from its two flags.
func NewAck(connectorChange, commandComplete bool) Ack {
	var a Ack
	if connectorChange {
		a |= 1 << ackConnectorChangeBit
	}
	if commandComplete {
		a |= 1 << ackCommandCompleteBit
	}
	return a
}

// PPM-level commands. These address the PPM itself and carry no
// connector number.

// PpmReset resets the PPM to its power-on state from any protocol
// state.
type PpmReset struct{}

// Cancel aborts the command currently being processed.
type Cancel struct{}

// AckCcCi acknowledges command-complete and/or connector-change
// indications.
type AckCcCi struct {
	Ack Ack
}

// SetNotificationEnable selects which asynchronous notifications the
// PPM may raise. It is the only command (besides PPM_RESET) accepted
// before notifications have been enabled.
type SetNotificationEnable struct {
	Enable NotificationEnable
}

// GetCapability requests the PPM capability record.
type GetCapability struct{}

func (PpmReset) CommandType() CommandType              { return CmdPpmReset }
func (Cancel) CommandType() CommandType                { return CmdCancel }
func (AckCcCi) CommandType() CommandType               { return CmdAckCcCi }
func (SetNotificationEnable) CommandType() CommandType { return CmdSetNotificationEnable }
func (GetCapability) CommandType() CommandType         { return CmdGetCapability }

// EncodeCommand writes a command into an 8-byte command mailbox image.
// The buffer must hold CommandLen bytes; unused argument bytes are
// zeroed.
func EncodeCommand[P PortID](cmd Command[P], b []byte) (int, error) {
	if len(b) < CommandLen {
		return 0, &ShortBufferError{Type: "Command", Got: len(b), Want: CommandLen}
	}
	for i := range b[:CommandLen] {
		b[i] = 0
	}
	NewCommandHeader(cmd.CommandType(), 0).encode(b)
	args := b[commandArgOffset:CommandLen]

	switch c := cmd.(type) {
	case PpmReset, Cancel, GetCapability:
		// header only
	case AckCcCi:
		args[0] = byte(c.Ack)
	case SetNotificationEnable:
		binary.LittleEndian.PutUint32(args, uint32(c.Enable))
	case LpmCommand[P]:
		if err := c.encodeArgs(args); err != nil {
			return 0, err
		}
	default:
		return 0, &UnsupportedCommandError{Command: cmd.CommandType()}
	}
	return CommandLen, nil
}

// DecodeCommand parses an 8-byte command mailbox image. Decoding is
// two-phase: the header is parsed without context, then the opcode it
// carries selects the one argument layout legal for that command.
func DecodeCommand[P PortID](b []byte) (Command[P], error) {
	if len(b) < CommandLen {
		return nil, &ShortBufferError{Type: "Command", Got: len(b), Want: CommandLen}
	}
	header, err := DecodeCommandHeader(b)
	if err != nil {
		return nil, err
	}
	args := b[commandArgOffset:CommandLen]

	switch header.Command() {
	case CmdPpmReset:
		return PpmReset{}, nil
	case CmdCancel:
		return Cancel{}, nil
	case CmdAckCcCi:
		return AckCcCi{Ack: Ack(args[0])}, nil
	case CmdSetNotificationEnable:
		return SetNotificationEnable{
			Enable: NotificationEnable(binary.LittleEndian.Uint32(args)),
		}, nil
	case CmdGetCapability:
		return GetCapability{}, nil
	default:
		return decodeLpmCommand[P](header, args)
	}
}
