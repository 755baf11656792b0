// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package pd

// SourceFixedPDO represents a source fixed supply power data object.
type SourceFixedPDO uint32

// NewSourceFixedPDO returns a blank source fixed supply PDO.
func NewSourceFixedPDO() SourceFixedPDO {
	return 0 // kind bits 00
}

// DualRolePower returns true if the source is dual-role power capable.
func (o SourceFixedPDO) DualRolePower() bool { return o&(1<<29) != 0 }

// UsbSuspendSupported returns true if USB suspend is supported.
func (o SourceFixedPDO) UsbSuspendSupported() bool { return o&(1<<28) != 0 }

// UnconstrainedPower returns true if the source has unconstrained power.
func (o SourceFixedPDO) UnconstrainedPower() bool { return o&(1<<27) != 0 }

// UsbCommsCapable returns true if the source is USB communications capable.
func (o SourceFixedPDO) UsbCommsCapable() bool { return o&(1<<26) != 0 }

// DualRoleData returns true if the source is dual-role data capable.
func (o SourceFixedPDO) DualRoleData() bool { return o&(1<<25) != 0 }

// UnchunkedExtended returns true if unchunked extended messages are supported.
func (o SourceFixedPDO) UnchunkedExtended() bool { return o&(1<<24) != 0 }

// EprCapable returns true if the source is EPR mode capable.
func (o SourceFixedPDO) EprCapable() bool { return o&(1<<23) != 0 }

// SetDualRolePower sets the dual-role power flag.
func (o *SourceFixedPDO) SetDualRolePower(v bool) { o.setBit(29, v) }

// SetUsbSuspendSupported sets the USB suspend supported flag.
func (o *SourceFixedPDO) SetUsbSuspendSupported(v bool) { o.setBit(28, v) }

// SetUnconstrainedPower sets the unconstrained power flag.
func (o *SourceFixedPDO) SetUnconstrainedPower(v bool) { o.setBit(27, v) }

// SetUsbCommsCapable sets the USB communications capable flag.
func (o *SourceFixedPDO) SetUsbCommsCapable(v bool) { o.setBit(26, v) }

// SetDualRoleData sets the dual-role data flag.
func (o *SourceFixedPDO) SetDualRoleData(v bool) { o.setBit(25, v) }

// SetUnchunkedExtended sets the unchunked extended messages flag.
func (o *SourceFixedPDO) SetUnchunkedExtended(v bool) { o.setBit(24, v) }

// SetEprCapable sets the EPR mode capable flag.
func (o *SourceFixedPDO) SetEprCapable(v bool) { o.setBit(23, v) }

func (o *SourceFixedPDO) setBit(n uint, v bool) {
	if v {
		*o |= 1 << n
	} else {
		*o &^= 1 << n
	}
}

// PeakCurrent returns the peak current capability.
func (o SourceFixedPDO) PeakCurrent() PeakCurrent {
	return PeakCurrent(o >> 20 & 0b11)
}

// SetPeakCurrent sets the peak current capability.
func (o *SourceFixedPDO) SetPeakCurrent(p PeakCurrent) {
	*o = (*o &^ (0b11 << 20)) | SourceFixedPDO(p&0b11)<<20
}

// Voltage returns the supply voltage in millivolts.
func (o SourceFixedPDO) Voltage() uint16 {
	return uint16(o>>10&(1<<10-1)) * 50
}

// SetVoltage sets the supply voltage, rounded to the nearest 50 mV.
func (o *SourceFixedPDO) SetVoltage(mv uint16) {
	*o = (*o &^ ((1<<10 - 1) << 10)) | SourceFixedPDO(mv/50&(1<<10-1))<<10
}

// MaxCurrent returns the maximum current in milliamps.
func (o SourceFixedPDO) MaxCurrent() uint16 {
	return uint16(o&(1<<10-1)) * 10
}

// SetMaxCurrent sets the maximum current, rounded to the nearest 10 mA.
func (o *SourceFixedPDO) SetMaxCurrent(ma uint16) {
	*o = (*o &^ (1<<10 - 1)) | SourceFixedPDO(ma/10)&(1<<10-1)
}

// SourceBatteryPDO represents a source battery power data object.
type SourceBatteryPDO uint32

// NewSourceBatteryPDO returns a blank source battery PDO.
func NewSourceBatteryPDO() SourceBatteryPDO {
	return SourceBatteryPDO(KindBattery) << 30
}

// MaxVoltage returns the maximum voltage in millivolts.
func (o SourceBatteryPDO) MaxVoltage() uint16 {
	return uint16(o>>20&(1<<10-1)) * 50
}

// SetMaxVoltage sets the maximum voltage, rounded to the nearest 50 mV.
func (o *SourceBatteryPDO) SetMaxVoltage(mv uint16) {
	*o = (*o &^ ((1<<10 - 1) << 20)) | SourceBatteryPDO(mv/50&(1<<10-1))<<20
}

// MinVoltage returns the minimum voltage in millivolts.
func (o SourceBatteryPDO) MinVoltage() uint16 {
	return uint16(o>>10&(1<<10-1)) * 50
}

// SetMinVoltage sets the minimum voltage, rounded to the nearest 50 mV.
func (o *SourceBatteryPDO) SetMinVoltage(mv uint16) {
	*o = (*o &^ ((1<<10 - 1) << 10)) | SourceBatteryPDO(mv/50&(1<<10-1))<<10
}

// MaxPower returns the maximum power in milliwatts.
func (o SourceBatteryPDO) MaxPower() uint32 {
	return uint32(o&(1<<10-1)) * 250
}

// SetMaxPower sets the maximum power, rounded to the nearest 250 mW.
func (o *SourceBatteryPDO) SetMaxPower(mw uint32) {
	*o = (*o &^ (1<<10 - 1)) | SourceBatteryPDO(mw/250)&(1<<10-1)
}

// SourceVariablePDO represents a source variable supply power data
// object.
type SourceVariablePDO uint32

// NewSourceVariablePDO returns a blank source variable supply PDO.
func NewSourceVariablePDO() SourceVariablePDO {
	return SourceVariablePDO(KindVariable) << 30
}

// MaxVoltage returns the maximum voltage in millivolts.
func (o SourceVariablePDO) MaxVoltage() uint16 {
	return uint16(o>>20&(1<<10-1)) * 50
}

// SetMaxVoltage sets the maximum voltage, rounded to the nearest 50 mV.
func (o *SourceVariablePDO) SetMaxVoltage(mv uint16) {
	*o = (*o &^ ((1<<10 - 1) << 20)) | SourceVariablePDO(mv/50&(1<<10-1))<<20
}

// MinVoltage returns the minimum voltage in millivolts.
func (o SourceVariablePDO) MinVoltage() uint16 {
	return uint16(o>>10&(1<<10-1)) * 50
}

// SetMinVoltage sets the minimum voltage, rounded to the nearest 50 mV.
func (o *SourceVariablePDO) SetMinVoltage(mv uint16) {
	*o = (*o &^ ((1<<10 - 1) << 10)) | SourceVariablePDO(mv/50&(1<<10-1))<<10
}

// MaxCurrent returns the maximum current in milliamps.
func (o SourceVariablePDO) MaxCurrent() uint16 {
	return uint16(o&(1<<10-1)) * 10
}

// SetMaxCurrent sets the maximum current, rounded to the nearest 10 mA.
func (o *SourceVariablePDO) SetMaxCurrent(ma uint16) {
	*o = (*o &^ (1<<10 - 1)) | SourceVariablePDO(ma/10)&(1<<10-1)
}

// SprPpsPDO represents an SPR programmable power supply APDO. The
// layout is shared between the source and sink capability messages.
type SprPpsPDO uint32

// NewSprPpsPDO returns a blank SPR PPS APDO.
func NewSprPpsPDO() SprPpsPDO {
	return SprPpsPDO(KindAugmented)<<30 | SprPpsPDO(APDOSprPps)<<28
}

// PowerLimited returns true if the PPS power limited flag is set.
// The flag exists only in source capabilities.
func (o SprPpsPDO) PowerLimited() bool { return o&(1<<27) != 0 }

// SetPowerLimited sets the PPS power limited flag.
func (o *SprPpsPDO) SetPowerLimited(v bool) {
	if v {
		*o |= 1 << 27
	} else {
		*o &^= 1 << 27
	}
}

// MaxVoltage returns the maximum voltage in millivolts.
func (o SprPpsPDO) MaxVoltage() uint16 {
	return uint16(o>>17&(1<<8-1)) * 100
}

// SetMaxVoltage sets the maximum voltage, rounded to the nearest 100 mV.
func (o *SprPpsPDO) SetMaxVoltage(mv uint16) {
	*o = (*o &^ ((1<<8 - 1) << 17)) | SprPpsPDO(mv/100&(1<<8-1))<<17
}

// MinVoltage returns the minimum voltage in millivolts.
func (o SprPpsPDO) MinVoltage() uint16 {
	return uint16(o>>8&(1<<8-1)) * 100
}

// SetMinVoltage sets the minimum voltage, rounded to the nearest 100 mV.
func (o *SprPpsPDO) SetMinVoltage(mv uint16) {
	*o = (*o &^ ((1<<8 - 1) << 8)) | SprPpsPDO(mv/100&(1<<8-1))<<8
}

// MaxCurrent returns the maximum current in milliamps.
func (o SprPpsPDO) MaxCurrent() uint16 {
	return uint16(o&(1<<7-1)) * 50
}

// SetMaxCurrent sets the maximum current, rounded to the nearest 50 mA.
func (o *SprPpsPDO) SetMaxCurrent(ma uint16) {
	*o = (*o &^ (1<<7 - 1)) | SprPpsPDO(ma/50)&(1<<7-1)
}

// EprAvsPDO represents an EPR adjustable voltage supply APDO. The
// layout is shared between the source and sink capability messages.
type EprAvsPDO uint32

// NewEprAvsPDO returns a blank EPR AVS APDO.
func NewEprAvsPDO() EprAvsPDO {
	return EprAvsPDO(KindAugmented)<<30 | EprAvsPDO(APDOEprAvs)<<28
}

// PeakCurrent returns the peak current capability.
func (o EprAvsPDO) PeakCurrent() PeakCurrent {
	return PeakCurrent(o >> 26 & 0b11)
}

// SetPeakCurrent sets the peak current capability.
func (o *EprAvsPDO) SetPeakCurrent(p PeakCurrent) {
	*o = (*o &^ (0b11 << 26)) | EprAvsPDO(p&0b11)<<26
}

// MaxVoltage returns the maximum voltage in millivolts.
func (o EprAvsPDO) MaxVoltage() uint16 {
	return uint16(o>>17&(1<<9-1)) * 100
}

// SetMaxVoltage sets the maximum voltage, rounded to the nearest 100 mV.
func (o *EprAvsPDO) SetMaxVoltage(mv uint16) {
	*o = (*o &^ ((1<<9 - 1) << 17)) | EprAvsPDO(mv/100&(1<<9-1))<<17
}

// MinVoltage returns the minimum voltage in millivolts.
func (o EprAvsPDO) MinVoltage() uint16 {
	return uint16(o>>8&(1<<8-1)) * 100
}

// SetMinVoltage sets the minimum voltage, rounded to the nearest 100 mV.
func (o *EprAvsPDO) SetMinVoltage(mv uint16) {
	*o = (*o &^ ((1<<8 - 1) << 8)) | EprAvsPDO(mv/100&(1<<8-1))<<8
}

// Pdp returns the PD power rating in milliwatts.
func (o EprAvsPDO) Pdp() uint32 {
	return uint32(o&(1<<8-1)) * 1000
}

// SetPdp sets the PD power rating, rounded to the nearest watt.
func (o *EprAvsPDO) SetPdp(mw uint32) {
	*o = (*o &^ (1<<8 - 1)) | EprAvsPDO(mw/1000)&(1<<8-1)
}

// SprAvsPDO represents an SPR adjustable voltage supply APDO. The
// layout is shared between the source and sink capability messages.
type SprAvsPDO uint32

// NewSprAvsPDO returns a blank SPR AVS APDO.
func NewSprAvsPDO() SprAvsPDO {
	return SprAvsPDO(KindAugmented)<<30 | SprAvsPDO(APDOSprAvs)<<28
}

// PeakCurrent returns the peak current capability.
func (o SprAvsPDO) PeakCurrent() PeakCurrent {
	return PeakCurrent(o >> 26 & 0b11)
}

// SetPeakCurrent sets the peak current capability.
func (o *SprAvsPDO) SetPeakCurrent(p PeakCurrent) {
	*o = (*o &^ (0b11 << 26)) | SprAvsPDO(p&0b11)<<26
}

// MaxCurrent15V returns the maximum current of the 9-15 V range in
// milliamps.
func (o SprAvsPDO) MaxCurrent15V() uint16 {
	return uint16(o>>10&(1<<10-1)) * 10
}

// SetMaxCurrent15V sets the 9-15 V range maximum current, rounded to
// the nearest 10 mA.
func (o *SprAvsPDO) SetMaxCurrent15V(ma uint16) {
	*o = (*o &^ ((1<<10 - 1) << 10)) | SprAvsPDO(ma/10&(1<<10-1))<<10
}

// MaxCurrent20V returns the maximum current of the 15-20 V range in
// milliamps. Zero means the range is not offered.
func (o SprAvsPDO) MaxCurrent20V() uint16 {
	return uint16(o&(1<<10-1)) * 10
}

// SetMaxCurrent20V sets the 15-20 V range maximum current, rounded to
// the nearest 10 mA.
func (o *SprAvsPDO) SetMaxCurrent20V(ma uint16) {
	*o = (*o &^ (1<<10 - 1)) | SprAvsPDO(ma/10)&(1<<10-1)
}

// MaxVoltage returns the highest voltage the SPR AVS range reaches in
// millivolts: 20 V when the 15-20 V range is offered, otherwise 15 V.
func (o SprAvsPDO) MaxVoltage() uint16 {
	if o.MaxCurrent20V() > 0 {
		return 20000
	}
	return 15000
}

// MinVoltage returns the lowest voltage of the selected SPR AVS range
// in millivolts: 15 V when the 15-20 V range is offered, otherwise 9 V.
func (o SprAvsPDO) MinVoltage() uint16 {
	if o.MaxCurrent20V() > 0 {
		return 15000
	}
	return 9000
}
