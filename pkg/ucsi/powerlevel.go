// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package ucsi

// TypeCCurrent is the Rp advertisement selected by SET_POWER_LEVEL.
type TypeCCurrent uint8

// Type-C current values
const (
	TypeCCurrentPpmDefault TypeCCurrent = 0
	TypeCCurrent3A         TypeCCurrent = 1
	TypeCCurrent1_5A       TypeCCurrent = 2
	TypeCCurrentUsbDefault TypeCCurrent = 3
)

// TypeCCurrentFromByte validates a raw Type-C current field.
func TypeCCurrentFromByte(b byte) (TypeCCurrent, error) {
	if b > byte(TypeCCurrentUsbDefault) {
		return 0, &UnexpectedVariantError{
			Type:    "TypeCCurrent",
			Found:   uint32(b),
			Allowed: []uint32{0, 1, 2, 3},
		}
	}
	return TypeCCurrent(b), nil
}

// SetPowerLevel constrains a connector's negotiated power. Engineering
// values are held in mW/mA/mV; the wire stores them scaled. LsbControl
// selects the coarse or fine unit pair for max power and output
// voltage: 1000 mW / 25 mV when set, 500 mW / 20 mV when clear.
type SetPowerLevel struct {
	SourceRole         bool // constrain the source role instead of sink
	LsbControl         bool
	MaxPowerMw         uint32
	TypeCCurrent       TypeCCurrent
	OperatingCurrentMa uint16
	OutputVoltageMv    uint32
}

// SET_POWER_LEVEL unit scales
const (
	splPowerCoarseMw   = 500
	splPowerFineMw     = 1000
	splCurrentUnitMa   = 50
	splVoltageCoarseMv = 20
	splVoltageFineMv   = 25
)

// SET_POWER_LEVEL 48-bit argument layout
const (
	splRoleBit       = 7
	splMaxPowerShift = 8
	splCurrentShift  = 16
	splCurrentMask   = 0x07
	splLsbControlBit = 19
	splOpCurShift    = 20
	splVoltageShift  = 30
	splVoltageMask   = 0xFFF
)

func (SetPowerLevel) CommandType() CommandType { return CmdSetPowerLevel }

func (s SetPowerLevel) powerUnit() uint32 {
	if s.LsbControl {
		return splPowerFineMw
	}
	return splPowerCoarseMw
}

func (s SetPowerLevel) voltageUnit() uint32 {
	if s.LsbControl {
		return splVoltageFineMv
	}
	return splVoltageCoarseMv
}

func (s SetPowerLevel) encodeArgs(connector byte, args []byte) error {
	w := uint64(connector)
	if s.SourceRole {
		w |= 1 << splRoleBit
	}
	w |= (uint64(s.MaxPowerMw/s.powerUnit()) & 0xFF) << splMaxPowerShift
	w |= uint64(s.TypeCCurrent&splCurrentMask) << splCurrentShift
	if s.LsbControl {
		w |= 1 << splLsbControlBit
	}
	w |= (uint64(s.OperatingCurrentMa/splCurrentUnitMa) & 0xFF) << splOpCurShift
	w |= (uint64(s.OutputVoltageMv/s.voltageUnit()) & splVoltageMask) << splVoltageShift
	for i := 0; i < 6; i++ {
		args[i] = byte(w >> (8 * i))
	}
	return nil
}

func decodeSetPowerLevel(args []byte) (LpmOperation, byte, error) {
	var w uint64
	for i := 0; i < 6; i++ {
		w |= uint64(args[i]) << (8 * i)
	}
	current, err := TypeCCurrentFromByte(byte(w>>splCurrentShift) & splCurrentMask)
	if err != nil {
		return nil, 0, err
	}
	op := SetPowerLevel{
		SourceRole:         w&(1<<splRoleBit) != 0,
		LsbControl:         w&(1<<splLsbControlBit) != 0,
		TypeCCurrent:       current,
		OperatingCurrentMa: uint16(byte(w>>splOpCurShift)) * splCurrentUnitMa,
	}
	op.MaxPowerMw = uint32(byte(w>>splMaxPowerShift)) * op.powerUnit()
	op.OutputVoltageMv = uint32(w>>splVoltageShift&splVoltageMask) * op.voltageUnit()
	return op, byte(w), nil
}
