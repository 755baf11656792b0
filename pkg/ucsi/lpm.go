// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package ucsi

// LpmCommand is a command addressed to one connector's Local Policy
// Manager. The connector number travels in a 7-bit field whose exact
// placement varies by command: most commands use the byte immediately
// after the header, but a few pack it into the low bits of their own
// argument bitfield. Each operation owns its placement.
type LpmCommand[P PortID] struct {
	Port P
	Op   LpmOperation
}

// NewLpmCommand builds an LPM command for one connector.
func NewLpmCommand[P PortID](port P, op LpmOperation) LpmCommand[P] {
	return LpmCommand[P]{Port: P(byte(port) & connectorNumberMask), Op: op}
}

// CommandType returns the opcode of the wrapped operation.
func (c LpmCommand[P]) CommandType() CommandType {
	return c.Op.CommandType()
}

// LpmOperation is one per-connector command's arguments. Implementations
// encode themselves into the 6 argument bytes of the command mailbox,
// including the connector number at the command's own placement.
type LpmOperation interface {
	CommandType() CommandType
	encodeArgs(connector byte, args []byte) error
}

func (c LpmCommand[P]) encodeArgs(args []byte) error {
	return c.Op.encodeArgs(byte(c.Port)&connectorNumberMask, args)
}

// decodeLpmCommand is phase two of command decode for connector
// commands: the opcode from the header selects the single argument
// layout legal for it. Opcodes in the table with no layout here decode
// to UnsupportedCommandError.
func decodeLpmCommand[P PortID](h CommandHeader, args []byte) (Command[P], error) {
	var (
		op        LpmOperation
		connector byte
		err       error
	)
	switch h.Command() {
	case CmdConnectorReset:
		op, connector, err = decodeConnectorReset(args)
	case CmdGetConnectorCapability:
		op, connector = GetConnectorCapability{}, args[0]
	case CmdGetConnectorStatus:
		op, connector = GetConnectorStatus{}, args[0]
	case CmdGetCableProperty:
		op, connector = GetCableProperty{}, args[0]
	case CmdGetErrorStatus:
		op, connector = GetErrorStatus{}, args[0]
	case CmdGetCamSupported:
		op, connector = GetCamSupported{}, args[0]
	case CmdGetCurrentCam:
		op, connector = GetCurrentCam{}, args[0]
	case CmdGetAlternateModes:
		op, connector, err = decodeGetAlternateModes(args)
	case CmdGetPdos:
		op, connector, err = decodeGetPdos(args)
	case CmdSetCcom:
		op, connector = decodeSetCcom(args)
	case CmdSetUor:
		op, connector = decodeSetUor(args)
	case CmdSetPdr:
		op, connector = decodeSetPdr(args)
	case CmdSetNewCam:
		op, connector = decodeSetNewCam(args)
	case CmdSetPowerLevel:
		op, connector, err = decodeSetPowerLevel(args)
	default:
		return nil, &UnsupportedCommandError{Command: h.Command()}
	}
	if err != nil {
		return nil, err
	}
	return LpmCommand[P]{Port: P(connector & connectorNumberMask), Op: op}, nil
}

// ConnectorReset resets one connector. Hard selects a USB-PD hard
// reset instead of a data reset; the flag rides bit 7 of the connector
// number byte.
type ConnectorReset struct {
	Hard bool
}

func (ConnectorReset) CommandType() CommandType { return CmdConnectorReset }

func (r ConnectorReset) encodeArgs(connector byte, args []byte) error {
	args[0] = connector
	if r.Hard {
		args[0] |= 0x80
	}
	return nil
}

func decodeConnectorReset(args []byte) (LpmOperation, byte, error) {
	return ConnectorReset{Hard: args[0]&0x80 != 0}, args[0], nil
}

// GetConnectorCapability requests a connector's capability record.
type GetConnectorCapability struct{}

// GetConnectorStatus requests a connector's full status record.
type GetConnectorStatus struct{}

// GetCableProperty requests the attached cable's properties.
type GetCableProperty struct{}

// GetErrorStatus requests detail for a command that completed with the
// CCI error flag set.
type GetErrorStatus struct{}

// GetCamSupported requests the bitmap of alternate modes a connector
// supports.
type GetCamSupported struct{}

// GetCurrentCam requests the currently active alternate mode(s).
type GetCurrentCam struct{}

func (GetConnectorCapability) CommandType() CommandType { return CmdGetConnectorCapability }
func (GetConnectorStatus) CommandType() CommandType     { return CmdGetConnectorStatus }
func (GetCableProperty) CommandType() CommandType       { return CmdGetCableProperty }
func (GetErrorStatus) CommandType() CommandType         { return CmdGetErrorStatus }
func (GetCamSupported) CommandType() CommandType        { return CmdGetCamSupported }
func (GetCurrentCam) CommandType() CommandType          { return CmdGetCurrentCam }

func encodeConnectorOnly(connector byte, args []byte) error {
	args[0] = connector
	return nil
}

func (GetConnectorCapability) encodeArgs(c byte, args []byte) error { return encodeConnectorOnly(c, args) }
func (GetConnectorStatus) encodeArgs(c byte, args []byte) error     { return encodeConnectorOnly(c, args) }
func (GetCableProperty) encodeArgs(c byte, args []byte) error       { return encodeConnectorOnly(c, args) }
func (GetErrorStatus) encodeArgs(c byte, args []byte) error         { return encodeConnectorOnly(c, args) }
func (GetCamSupported) encodeArgs(c byte, args []byte) error        { return encodeConnectorOnly(c, args) }
func (GetCurrentCam) encodeArgs(c byte, args []byte) error          { return encodeConnectorOnly(c, args) }
