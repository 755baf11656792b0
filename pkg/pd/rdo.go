// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package pd

// A request data object carries no discriminant of its own: its layout
// follows the kind of the source PDO it requests against. RDOForPDO
// performs that context-dependent classification; the concrete
// accessor types below share the common upper-bit flags and differ in
// the low 21 bits.

// RDO is a decoded request data object of one of the four layouts.
type RDO interface {
	// ObjectPosition returns the 1-based position of the requested
	// PDO in the source capability message.
	ObjectPosition() uint8
	// CapabilityMismatch returns true if the sink could not find a
	// PDO meeting its power needs.
	CapabilityMismatch() bool
}

// RDOForPDO classifies a raw request data object against the source
// PDO it requests. EPR AVS requests use the PPS layout.
func RDOForPDO(raw uint32, pdo PDO) (RDO, error) {
	switch pdo.Kind() {
	case KindFixed, KindVariable:
		return FixedVarRDO(raw), nil
	case KindBattery:
		return BatteryRDO(raw), nil
	default:
		apdo, err := pdo.APDOKind()
		if err != nil {
			return nil, err
		}
		if apdo == APDOSprAvs {
			return AvsRDO(raw), nil
		}
		return PpsRDO(raw), nil
	}
}

// rdoObjectPosition extracts the common object position field.
func rdoObjectPosition(raw uint32) uint8 { return uint8(raw >> 28) }

// Common RDO flag bits.
const (
	rdoMismatchBit  = 26
	rdoUsbCommBit   = 25
	rdoNoSuspendBit = 24
	rdoUnchunkedBit = 23
	rdoEprBit       = 22
)

// FixedVarRDO represents a request against a fixed or variable supply
// PDO.
type FixedVarRDO uint32

// ObjectPosition returns the 1-based requested PDO position.
func (o FixedVarRDO) ObjectPosition() uint8 { return rdoObjectPosition(uint32(o)) }

// SetObjectPosition sets the requested PDO position.
func (o *FixedVarRDO) SetObjectPosition(p uint8) {
	*o = (*o &^ (0b1111 << 28)) | FixedVarRDO(p&0b1111)<<28
}

// CapabilityMismatch returns true if the capability mismatch flag is set.
func (o FixedVarRDO) CapabilityMismatch() bool { return o&(1<<rdoMismatchBit) != 0 }

// UsbCommCapable returns true if the sink is USB communications capable.
func (o FixedVarRDO) UsbCommCapable() bool { return o&(1<<rdoUsbCommBit) != 0 }

// NoUsbSuspend returns true if the no USB suspend flag is set.
func (o FixedVarRDO) NoUsbSuspend() bool { return o&(1<<rdoNoSuspendBit) != 0 }

// UnchunkedExtended returns true if unchunked extended messages are supported.
func (o FixedVarRDO) UnchunkedExtended() bool { return o&(1<<rdoUnchunkedBit) != 0 }

// EprCapable returns true if the sink is EPR mode capable.
func (o FixedVarRDO) EprCapable() bool { return o&(1<<rdoEprBit) != 0 }

// OperatingCurrent returns the operating current in milliamps.
func (o FixedVarRDO) OperatingCurrent() uint16 {
	return uint16(o>>10&(1<<10-1)) * 10
}

// SetOperatingCurrent sets the operating current, rounded to the
// nearest 10 mA.
func (o *FixedVarRDO) SetOperatingCurrent(ma uint16) {
	*o = (*o &^ ((1<<10 - 1) << 10)) | FixedVarRDO(ma/10&(1<<10-1))<<10
}

// MaxOperatingCurrent returns the maximum operating current in
// milliamps.
func (o FixedVarRDO) MaxOperatingCurrent() uint16 {
	return uint16(o&(1<<10-1)) * 10
}

// SetMaxOperatingCurrent sets the maximum operating current, rounded
// to the nearest 10 mA.
func (o *FixedVarRDO) SetMaxOperatingCurrent(ma uint16) {
	*o = (*o &^ (1<<10 - 1)) | FixedVarRDO(ma/10)&(1<<10-1)
}

// BatteryRDO represents a request against a battery PDO.
type BatteryRDO uint32

// ObjectPosition returns the 1-based requested PDO position.
func (o BatteryRDO) ObjectPosition() uint8 { return rdoObjectPosition(uint32(o)) }

// SetObjectPosition sets the requested PDO position.
func (o *BatteryRDO) SetObjectPosition(p uint8) {
	*o = (*o &^ (0b1111 << 28)) | BatteryRDO(p&0b1111)<<28
}

// CapabilityMismatch returns true if the capability mismatch flag is set.
func (o BatteryRDO) CapabilityMismatch() bool { return o&(1<<rdoMismatchBit) != 0 }

// UsbCommCapable returns true if the sink is USB communications capable.
func (o BatteryRDO) UsbCommCapable() bool { return o&(1<<rdoUsbCommBit) != 0 }

// NoUsbSuspend returns true if the no USB suspend flag is set.
func (o BatteryRDO) NoUsbSuspend() bool { return o&(1<<rdoNoSuspendBit) != 0 }

// UnchunkedExtended returns true if unchunked extended messages are supported.
func (o BatteryRDO) UnchunkedExtended() bool { return o&(1<<rdoUnchunkedBit) != 0 }

// EprCapable returns true if the sink is EPR mode capable.
func (o BatteryRDO) EprCapable() bool { return o&(1<<rdoEprBit) != 0 }

// OperatingPower returns the operating power in milliwatts.
func (o BatteryRDO) OperatingPower() uint32 {
	return uint32(o>>10&(1<<10-1)) * 250
}

// SetOperatingPower sets the operating power, rounded to the nearest
// 250 mW.
func (o *BatteryRDO) SetOperatingPower(mw uint32) {
	*o = (*o &^ ((1<<10 - 1) << 10)) | BatteryRDO(mw/250&(1<<10-1))<<10
}

// MaxOperatingPower returns the maximum operating power in milliwatts.
func (o BatteryRDO) MaxOperatingPower() uint32 {
	return uint32(o&(1<<10-1)) * 250
}

// SetMaxOperatingPower sets the maximum operating power, rounded to
// the nearest 250 mW.
func (o *BatteryRDO) SetMaxOperatingPower(mw uint32) {
	*o = (*o &^ (1<<10 - 1)) | BatteryRDO(mw/250)&(1<<10-1)
}

// PpsRDO represents a request against a PPS or EPR AVS APDO.
type PpsRDO uint32

// ObjectPosition returns the 1-based requested PDO position.
func (o PpsRDO) ObjectPosition() uint8 { return rdoObjectPosition(uint32(o)) }

// SetObjectPosition sets the requested PDO position.
func (o *PpsRDO) SetObjectPosition(p uint8) {
	*o = (*o &^ (0b1111 << 28)) | PpsRDO(p&0b1111)<<28
}

// CapabilityMismatch returns true if the capability mismatch flag is set.
func (o PpsRDO) CapabilityMismatch() bool { return o&(1<<rdoMismatchBit) != 0 }

// UsbCommCapable returns true if the sink is USB communications capable.
func (o PpsRDO) UsbCommCapable() bool { return o&(1<<rdoUsbCommBit) != 0 }

// NoUsbSuspend returns true if the no USB suspend flag is set.
func (o PpsRDO) NoUsbSuspend() bool { return o&(1<<rdoNoSuspendBit) != 0 }

// UnchunkedExtended returns true if unchunked extended messages are supported.
func (o PpsRDO) UnchunkedExtended() bool { return o&(1<<rdoUnchunkedBit) != 0 }

// EprCapable returns true if the sink is EPR mode capable.
func (o PpsRDO) EprCapable() bool { return o&(1<<rdoEprBit) != 0 }

// OutputVoltage returns the requested output voltage in millivolts.
func (o PpsRDO) OutputVoltage() uint16 {
	return uint16(o>>9&(1<<12-1)) * 20
}

// SetOutputVoltage sets the requested output voltage, rounded to the
// nearest 20 mV.
func (o *PpsRDO) SetOutputVoltage(mv uint16) {
	*o = (*o &^ ((1<<12 - 1) << 9)) | PpsRDO(mv/20&(1<<12-1))<<9
}

// OperatingCurrent returns the operating current in milliamps.
func (o PpsRDO) OperatingCurrent() uint16 {
	return uint16(o&(1<<7-1)) * 50
}

// SetOperatingCurrent sets the operating current, rounded to the
// nearest 50 mA.
func (o *PpsRDO) SetOperatingCurrent(ma uint16) {
	*o = (*o &^ (1<<7 - 1)) | PpsRDO(ma/50)&(1<<7-1)
}

// AvsRDO represents a request against an SPR AVS APDO. It shares the
// PPS layout.
type AvsRDO uint32

// ObjectPosition returns the 1-based requested PDO position.
func (o AvsRDO) ObjectPosition() uint8 { return rdoObjectPosition(uint32(o)) }

// SetObjectPosition sets the requested PDO position.
func (o *AvsRDO) SetObjectPosition(p uint8) {
	*o = (*o &^ (0b1111 << 28)) | AvsRDO(p&0b1111)<<28
}

// CapabilityMismatch returns true if the capability mismatch flag is set.
func (o AvsRDO) CapabilityMismatch() bool { return o&(1<<rdoMismatchBit) != 0 }

// UsbCommCapable returns true if the sink is USB communications capable.
func (o AvsRDO) UsbCommCapable() bool { return o&(1<<rdoUsbCommBit) != 0 }

// NoUsbSuspend returns true if the no USB suspend flag is set.
func (o AvsRDO) NoUsbSuspend() bool { return o&(1<<rdoNoSuspendBit) != 0 }

// UnchunkedExtended returns true if unchunked extended messages are supported.
func (o AvsRDO) UnchunkedExtended() bool { return o&(1<<rdoUnchunkedBit) != 0 }

// EprCapable returns true if the sink is EPR mode capable.
func (o AvsRDO) EprCapable() bool { return o&(1<<rdoEprBit) != 0 }

// OutputVoltage returns the requested output voltage in millivolts.
func (o AvsRDO) OutputVoltage() uint16 {
	return uint16(o>>9&(1<<12-1)) * 20
}

// SetOutputVoltage sets the requested output voltage, rounded to the
// nearest 20 mV.
func (o *AvsRDO) SetOutputVoltage(mv uint16) {
	*o = (*o &^ ((1<<12 - 1) << 9)) | AvsRDO(mv/20&(1<<12-1))<<9
}

// OperatingCurrent returns the operating current in milliamps.
func (o AvsRDO) OperatingCurrent() uint16 {
	return uint16(o&(1<<7-1)) * 50
}

// SetOperatingCurrent sets the operating current, rounded to the
// nearest 50 mA.
func (o *AvsRDO) SetOperatingCurrent(ma uint16) {
	*o = (*o &^ (1<<7 - 1)) | AvsRDO(ma/50)&(1<<7-1)
}
