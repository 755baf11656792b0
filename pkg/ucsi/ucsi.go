// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

// Package ucsi implements the USB Type-C Connector System Software
// Interface (UCSI) command/response protocol between an OS Policy
// Manager (OPM) and a Platform Policy Manager (PPM).
//
// The package covers the wire framing of the 8-byte command mailbox and
// the variable-length response mailbox, the 4-byte CCI status register,
// the opcode-dispatched command/response codec, and the PPM state
// machine that governs command admission, busy reporting, and
// acknowledgment sequencing.
//
// All multi-byte fields are little-endian. The codec is purely
// functional over byte slices; the only stateful type is StateMachine.
package ucsi

// Mailbox sizes
const (
	CommandLen       = 8  // command mailbox, fixed
	CciLen           = 4  // CCI status register
	ResponseLen      = 16 // standard response mailbox
	MaxResponseLen   = 19 // GET_CONNECTOR_STATUS exceeds the standard mailbox
	commandArgOffset = 2  // arguments start after opcode + data-length bytes
)

// CommandType identifies a UCSI command opcode. The numeric values are
// wire-visible and must not be renumbered, including the reserved gaps
// at 0x17 and 0x20.
type CommandType uint8

// UCSI command opcodes
const (
	CmdPpmReset               CommandType = 0x01
	CmdCancel                 CommandType = 0x02
	CmdConnectorReset         CommandType = 0x03
	CmdAckCcCi                CommandType = 0x04
	CmdSetNotificationEnable  CommandType = 0x05
	CmdGetCapability          CommandType = 0x06
	CmdGetConnectorCapability CommandType = 0x07
	CmdSetCcom                CommandType = 0x08
	CmdSetUor                 CommandType = 0x09
	CmdSetPdm                 CommandType = 0x0A
	CmdSetPdr                 CommandType = 0x0B
	CmdGetAlternateModes      CommandType = 0x0C
	CmdGetCamSupported        CommandType = 0x0D
	CmdGetCurrentCam          CommandType = 0x0E
	CmdSetNewCam              CommandType = 0x0F
	CmdGetPdos                CommandType = 0x10
	CmdGetCableProperty       CommandType = 0x11
	CmdGetConnectorStatus     CommandType = 0x12
	CmdGetErrorStatus         CommandType = 0x13
	CmdSetPowerLevel          CommandType = 0x14
	CmdGetPdMessage           CommandType = 0x15
	CmdGetAttentionVdo        CommandType = 0x16
	CmdGetCamCs               CommandType = 0x18
	CmdLpmFwUpdateRequest     CommandType = 0x19
	CmdSecurityRequest        CommandType = 0x1A
	CmdSetRetimerMode         CommandType = 0x1B
	CmdSetSinkPath            CommandType = 0x1C
	CmdSetPdos                CommandType = 0x1D
	CmdReadPowerLevel         CommandType = 0x1E
	CmdChunkingSupport        CommandType = 0x1F
	CmdSetUsb                 CommandType = 0x21
	CmdGetLpmPpmInfo          CommandType = 0x22
)

// commandTypes is the closed opcode set, in wire order. Used for
// validation and for error reporting.
var commandTypes = []CommandType{
	CmdPpmReset, CmdCancel, CmdConnectorReset, CmdAckCcCi,
	CmdSetNotificationEnable, CmdGetCapability, CmdGetConnectorCapability,
	CmdSetCcom, CmdSetUor, CmdSetPdm, CmdSetPdr, CmdGetAlternateModes,
	CmdGetCamSupported, CmdGetCurrentCam, CmdSetNewCam, CmdGetPdos,
	CmdGetCableProperty, CmdGetConnectorStatus, CmdGetErrorStatus,
	CmdSetPowerLevel, CmdGetPdMessage, CmdGetAttentionVdo, CmdGetCamCs,
	CmdLpmFwUpdateRequest, CmdSecurityRequest, CmdSetRetimerMode,
	CmdSetSinkPath, CmdSetPdos, CmdReadPowerLevel, CmdChunkingSupport,
	CmdSetUsb, CmdGetLpmPpmInfo,
}

// CommandTypeFromByte validates a raw opcode byte against the opcode
// table. Unknown values are a recoverable decode error, never a panic.
func CommandTypeFromByte(b byte) (CommandType, error) {
	ct := CommandType(b)
	if ct.valid() {
		return ct, nil
	}
	return 0, &UnexpectedVariantError{
		Type:    "CommandType",
		Found:   uint32(b),
		Allowed: commandTypeValues(),
	}
}

func (c CommandType) valid() bool {
	return c >= CmdPpmReset && c <= CmdGetLpmPpmInfo &&
		c != 0x17 && c != 0x20
}

// HasResponse reports whether a command populates the response mailbox
// on completion.
func (c CommandType) HasResponse() bool {
	switch c {
	case CmdPpmReset, CmdCancel, CmdConnectorReset, CmdAckCcCi,
		CmdSetNotificationEnable, CmdSetCcom, CmdSetUor, CmdSetPdr,
		CmdSetNewCam:
		return false
	default:
		return true
	}
}

// IsPpmCommand reports whether the opcode addresses the PPM itself
// rather than a connector.
func (c CommandType) IsPpmCommand() bool {
	switch c {
	case CmdPpmReset, CmdCancel, CmdAckCcCi, CmdSetNotificationEnable,
		CmdGetCapability:
		return true
	default:
		return false
	}
}

func commandTypeValues() []uint32 {
	vals := make([]uint32, len(commandTypes))
	for i, ct := range commandTypes {
		vals[i] = uint32(ct)
	}
	return vals
}
