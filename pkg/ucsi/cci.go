// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package ucsi

import "encoding/binary"

// Cci is the 4-byte Command Completion/Connector-change Indicator
// register written by the PPM after every command and on asynchronous
// events. It is a report, not a request: accessors are pure bit
// operations with no validation, and the state machine, not this type,
// is responsible for only ever emitting legal flag combinations.
type Cci[P PortID] uint32

// CCI bit positions
const (
	cciEomBit            = 0
	cciConnectorShift    = 1
	cciConnectorMask     = 0x7F
	cciDataLenShift      = 8
	cciDataLenMask       = 0xFF
	cciVendorMessageBit  = 16
	cciSecurityReqBit    = 23
	cciFwUpdateReqBit    = 24
	cciNotSupportedBit   = 25
	cciCancelCompleteBit = 26
	cciResetCompleteBit  = 27
	cciBusyBit           = 28
	cciAckCommandBit     = 29
	cciErrorBit          = 30
	cciCmdCompleteBit    = 31
)

func (c Cci[P]) bit(n uint) bool { return c&(1<<n) != 0 }

func (c *Cci[P]) setBit(n uint, v bool) {
	if v {
		*c |= 1 << n
	} else {
		*c &^= 1 << n
	}
}

// Eom reports the end-of-message flag (multi-chunk responses).
func (c Cci[P]) Eom() bool { return c.bit(cciEomBit) }
func (c *Cci[P]) SetEom(v bool) { c.setBit(cciEomBit, v) }

// ConnectorChange returns the connector that observed an asynchronous
// change, or zero if none.
func (c Cci[P]) ConnectorChange() P {
	return P((c >> cciConnectorShift) & cciConnectorMask)
}

func (c *Cci[P]) SetConnectorChange(port P) {
	*c &^= cciConnectorMask << cciConnectorShift
	*c |= Cci[P](byte(port)&cciConnectorMask) << cciConnectorShift
}

// DataLen returns the number of valid bytes in the response mailbox.
func (c Cci[P]) DataLen() uint8 {
	return uint8((c >> cciDataLenShift) & cciDataLenMask)
}

func (c *Cci[P]) SetDataLen(n uint8) {
	*c &^= cciDataLenMask << cciDataLenShift
	*c |= Cci[P](n) << cciDataLenShift
}

func (c Cci[P]) VendorMessage() bool { return c.bit(cciVendorMessageBit) }
func (c *Cci[P]) SetVendorMessage(v bool) { c.setBit(cciVendorMessageBit, v) }
func (c Cci[P]) SecurityRequest() bool { return c.bit(cciSecurityReqBit) }
func (c *Cci[P]) SetSecurityRequest(v bool) { c.setBit(cciSecurityReqBit, v) }
func (c Cci[P]) FwUpdateRequest() bool { return c.bit(cciFwUpdateReqBit) }
func (c *Cci[P]) SetFwUpdateRequest(v bool) { c.setBit(cciFwUpdateReqBit, v) }
func (c Cci[P]) NotSupported() bool { return c.bit(cciNotSupportedBit) }
func (c *Cci[P]) SetNotSupported(v bool) { c.setBit(cciNotSupportedBit, v) }
func (c Cci[P]) CancelComplete() bool { return c.bit(cciCancelCompleteBit) }
func (c *Cci[P]) SetCancelComplete(v bool) { c.setBit(cciCancelCompleteBit, v) }
func (c Cci[P]) ResetComplete() bool { return c.bit(cciResetCompleteBit) }
func (c *Cci[P]) SetResetComplete(v bool) { c.setBit(cciResetCompleteBit, v) }
func (c Cci[P]) Busy() bool { return c.bit(cciBusyBit) }
func (c *Cci[P]) SetBusy(v bool) { c.setBit(cciBusyBit, v) }
func (c Cci[P]) AckCommand() bool { return c.bit(cciAckCommandBit) }
func (c *Cci[P]) SetAckCommand(v bool) { c.setBit(cciAckCommandBit, v) }
func (c Cci[P]) Error() bool { return c.bit(cciErrorBit) }
func (c *Cci[P]) SetError(v bool) { c.setBit(cciErrorBit, v) }
func (c Cci[P]) CmdComplete() bool { return c.bit(cciCmdCompleteBit) }
func (c *Cci[P]) SetCmdComplete(v bool) { c.setBit(cciCmdCompleteBit, v) }

// NewCommandCompleteCci builds the canonical successful-completion
// report, carrying the response length.
func NewCommandCompleteCci[P PortID](dataLen uint8) Cci[P] {
	var c Cci[P]
	c.SetCmdComplete(true)
	c.SetDataLen(dataLen)
	return c
}

// NewBusyCci builds the canonical busy report.
func NewBusyCci[P PortID]() Cci[P] {
	var c Cci[P]
	c.SetBusy(true)
	return c
}

// NewResetCompleteCci builds the canonical PPM-reset-complete report.
func NewResetCompleteCci[P PortID]() Cci[P] {
	var c Cci[P]
	c.SetResetComplete(true)
	return c
}

// NewErrorCci builds the canonical completed-with-error report. The
// OPM reads the detail via GET_ERROR_STATUS.
func NewErrorCci[P PortID]() Cci[P] {
	var c Cci[P]
	c.SetCmdComplete(true)
	c.SetError(true)
	return c
}

// Encode writes the register into b, which must hold CciLen bytes.
func (c Cci[P]) Encode(b []byte) (int, error) {
	if len(b) < CciLen {
		return 0, &ShortBufferError{Type: "Cci", Got: len(b), Want: CciLen}
	}
	binary.LittleEndian.PutUint32(b, uint32(c))
	return CciLen, nil
}

// DecodeCci reads a CCI register image from b.
func DecodeCci[P PortID](b []byte) (Cci[P], error) {
	if len(b) < CciLen {
		return 0, &ShortBufferError{Type: "Cci", Got: len(b), Want: CciLen}
	}
	return Cci[P](binary.LittleEndian.Uint32(b)), nil
}
