// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package pd

// FrsRequiredCurrent is the fast role swap current a sink requires
// from the new source.
type FrsRequiredCurrent uint8

// Fast role swap current requirements.
const (
	FrsNotSupported FrsRequiredCurrent = 0b00
	FrsDefaultUsb   FrsRequiredCurrent = 0b01
	Frs1A5          FrsRequiredCurrent = 0b10
	Frs3A           FrsRequiredCurrent = 0b11
)

// SinkFixedPDO represents a sink fixed supply power data object.
type SinkFixedPDO uint32

// NewSinkFixedPDO returns a blank sink fixed supply PDO.
func NewSinkFixedPDO() SinkFixedPDO {
	return 0 // kind bits 00
}

// DualRolePower returns true if the sink is dual-role power capable.
func (o SinkFixedPDO) DualRolePower() bool { return o&(1<<29) != 0 }

// HigherCapability returns true if the sink needs more than vSafe5V to
// provide full functionality.
func (o SinkFixedPDO) HigherCapability() bool { return o&(1<<28) != 0 }

// UnconstrainedPower returns true if the sink has unconstrained power.
func (o SinkFixedPDO) UnconstrainedPower() bool { return o&(1<<27) != 0 }

// UsbCommsCapable returns true if the sink is USB communications capable.
func (o SinkFixedPDO) UsbCommsCapable() bool { return o&(1<<26) != 0 }

// DualRoleData returns true if the sink is dual-role data capable.
func (o SinkFixedPDO) DualRoleData() bool { return o&(1<<25) != 0 }

// SetDualRolePower sets the dual-role power flag.
func (o *SinkFixedPDO) SetDualRolePower(v bool) { o.setBit(29, v) }

// SetHigherCapability sets the higher capability flag.
func (o *SinkFixedPDO) SetHigherCapability(v bool) { o.setBit(28, v) }

// SetUnconstrainedPower sets the unconstrained power flag.
func (o *SinkFixedPDO) SetUnconstrainedPower(v bool) { o.setBit(27, v) }

// SetUsbCommsCapable sets the USB communications capable flag.
func (o *SinkFixedPDO) SetUsbCommsCapable(v bool) { o.setBit(26, v) }

// SetDualRoleData sets the dual-role data flag.
func (o *SinkFixedPDO) SetDualRoleData(v bool) { o.setBit(25, v) }

func (o *SinkFixedPDO) setBit(n uint, v bool) {
	if v {
		*o |= 1 << n
	} else {
		*o &^= 1 << n
	}
}

// FrsRequiredCurrent returns the fast role swap current requirement.
func (o SinkFixedPDO) FrsRequiredCurrent() FrsRequiredCurrent {
	return FrsRequiredCurrent(o >> 23 & 0b11)
}

// SetFrsRequiredCurrent sets the fast role swap current requirement.
func (o *SinkFixedPDO) SetFrsRequiredCurrent(c FrsRequiredCurrent) {
	*o = (*o &^ (0b11 << 23)) | SinkFixedPDO(c&0b11)<<23
}

// Voltage returns the supply voltage in millivolts.
func (o SinkFixedPDO) Voltage() uint16 {
	return uint16(o>>10&(1<<10-1)) * 50
}

// SetVoltage sets the supply voltage, rounded to the nearest 50 mV.
func (o *SinkFixedPDO) SetVoltage(mv uint16) {
	*o = (*o &^ ((1<<10 - 1) << 10)) | SinkFixedPDO(mv/50&(1<<10-1))<<10
}

// OperationalCurrent returns the operational current in milliamps.
func (o SinkFixedPDO) OperationalCurrent() uint16 {
	return uint16(o&(1<<10-1)) * 10
}

// SetOperationalCurrent sets the operational current, rounded to the
// nearest 10 mA.
func (o *SinkFixedPDO) SetOperationalCurrent(ma uint16) {
	*o = (*o &^ (1<<10 - 1)) | SinkFixedPDO(ma/10)&(1<<10-1)
}

// SinkBatteryPDO represents a sink battery power data object.
type SinkBatteryPDO uint32

// NewSinkBatteryPDO returns a blank sink battery PDO.
func NewSinkBatteryPDO() SinkBatteryPDO {
	return SinkBatteryPDO(KindBattery) << 30
}

// MaxVoltage returns the maximum voltage in millivolts.
func (o SinkBatteryPDO) MaxVoltage() uint16 {
	return uint16(o>>20&(1<<10-1)) * 50
}

// SetMaxVoltage sets the maximum voltage, rounded to the nearest 50 mV.
func (o *SinkBatteryPDO) SetMaxVoltage(mv uint16) {
	*o = (*o &^ ((1<<10 - 1) << 20)) | SinkBatteryPDO(mv/50&(1<<10-1))<<20
}

// MinVoltage returns the minimum voltage in millivolts.
func (o SinkBatteryPDO) MinVoltage() uint16 {
	return uint16(o>>10&(1<<10-1)) * 50
}

// SetMinVoltage sets the minimum voltage, rounded to the nearest 50 mV.
func (o *SinkBatteryPDO) SetMinVoltage(mv uint16) {
	*o = (*o &^ ((1<<10 - 1) << 10)) | SinkBatteryPDO(mv/50&(1<<10-1))<<10
}

// OperationalPower returns the operational power in milliwatts.
func (o SinkBatteryPDO) OperationalPower() uint32 {
	return uint32(o&(1<<10-1)) * 250
}

// SetOperationalPower sets the operational power, rounded to the
// nearest 250 mW.
func (o *SinkBatteryPDO) SetOperationalPower(mw uint32) {
	*o = (*o &^ (1<<10 - 1)) | SinkBatteryPDO(mw/250)&(1<<10-1)
}

// SinkVariablePDO represents a sink variable supply power data object.
type SinkVariablePDO uint32

// NewSinkVariablePDO returns a blank sink variable supply PDO.
func NewSinkVariablePDO() SinkVariablePDO {
	return SinkVariablePDO(KindVariable) << 30
}

// MaxVoltage returns the maximum voltage in millivolts.
func (o SinkVariablePDO) MaxVoltage() uint16 {
	return uint16(o>>20&(1<<10-1)) * 50
}

// SetMaxVoltage sets the maximum voltage, rounded to the nearest 50 mV.
func (o *SinkVariablePDO) SetMaxVoltage(mv uint16) {
	*o = (*o &^ ((1<<10 - 1) << 20)) | SinkVariablePDO(mv/50&(1<<10-1))<<20
}

// MinVoltage returns the minimum voltage in millivolts.
func (o SinkVariablePDO) MinVoltage() uint16 {
	return uint16(o>>10&(1<<10-1)) * 50
}

// SetMinVoltage sets the minimum voltage, rounded to the nearest 50 mV.
func (o *SinkVariablePDO) SetMinVoltage(mv uint16) {
	*o = (*o &^ ((1<<10 - 1) << 10)) | SinkVariablePDO(mv/50&(1<<10-1))<<10
}

// OperationalCurrent returns the operational current in milliamps.
func (o SinkVariablePDO) OperationalCurrent() uint16 {
	return uint16(o&(1<<10-1)) * 10
}

// SetOperationalCurrent sets the operational current, rounded to the
// nearest 10 mA.
func (o *SinkVariablePDO) SetOperationalCurrent(ma uint16) {
	*o = (*o &^ (1<<10 - 1)) | SinkVariablePDO(ma/10)&(1<<10-1)
}
