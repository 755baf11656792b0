// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package ucsi

import "encoding/binary"

// PowerSource describes where the PPM's power comes from.
type PowerSource uint8

// PowerSource bits
const (
	powerSourceAcBit       = 0
	powerSourceOtherBit    = 2
	powerSourceUsesVbusBit = 6
)

func (p PowerSource) AcSupply() bool { return p&(1<<powerSourceAcBit) != 0 }
func (p PowerSource) Other() bool    { return p&(1<<powerSourceOtherBit) != 0 }
func (p PowerSource) UsesVbus() bool { return p&(1<<powerSourceUsesVbusBit) != 0 }

// NewPowerSource builds a PowerSource from its flags.
func NewPowerSource(acSupply, other, usesVbus bool) PowerSource {
	var p PowerSource
	if acSupply {
		p |= 1 << powerSourceAcBit
	}
	if other {
		p |= 1 << powerSourceOtherBit
	}
	if usesVbus {
		p |= 1 << powerSourceUsesVbusBit
	}
	return p
}

// CapabilityAttributes is the 32-bit attributes field of the
// GET_CAPABILITY response.
type CapabilityAttributes uint32

// Attribute bit positions
const (
	attrDisabledStateBit   = 0
	attrBatteryChargingBit = 1
	attrUsbPdBit           = 2
	attrTypeCCurrentBit    = 6
	attrPowerSourceShift   = 8
)

func (a CapabilityAttributes) DisabledStateSupport() bool { return a&(1<<attrDisabledStateBit) != 0 }
func (a CapabilityAttributes) BatteryCharging() bool      { return a&(1<<attrBatteryChargingBit) != 0 }
func (a CapabilityAttributes) UsbPowerDelivery() bool     { return a&(1<<attrUsbPdBit) != 0 }
func (a CapabilityAttributes) UsbTypeCCurrent() bool      { return a&(1<<attrTypeCCurrentBit) != 0 }

func (a CapabilityAttributes) PowerSource() PowerSource {
	return PowerSource(a >> attrPowerSourceShift)
}

func (a *CapabilityAttributes) SetPowerSource(p PowerSource) {
	*a &^= 0xFF << attrPowerSourceShift
	*a |= CapabilityAttributes(p) << attrPowerSourceShift
}

func (a *CapabilityAttributes) SetDisabledStateSupport(v bool) { a.setBit(attrDisabledStateBit, v) }
func (a *CapabilityAttributes) SetBatteryCharging(v bool)      { a.setBit(attrBatteryChargingBit, v) }
func (a *CapabilityAttributes) SetUsbPowerDelivery(v bool)     { a.setBit(attrUsbPdBit, v) }
func (a *CapabilityAttributes) SetUsbTypeCCurrent(v bool)      { a.setBit(attrTypeCCurrentBit, v) }

func (a *CapabilityAttributes) setBit(n uint, v bool) {
	if v {
		*a |= 1 << n
	} else {
		*a &^= 1 << n
	}
}

// OptionalFeatures is the 24-bit optional-features bitmap of the
// GET_CAPABILITY response (stored in the low bits of a uint32).
type OptionalFeatures uint32

// Optional feature bit positions
const (
	FeatureSetCcom              = 0
	FeatureSetPowerLevel        = 1
	FeatureAltModeDetails       = 2
	FeatureAltModeOverride      = 3
	FeaturePdoDetails           = 4
	FeatureCableDetails         = 5
	FeatureExternalSupplyNotify = 6
	FeaturePdResetNotify        = 7
	FeatureGetPdMessage         = 8
)

// Bit reports whether feature bit n is advertised.
func (f OptionalFeatures) Bit(n uint) bool { return f&(1<<n) != 0 }

// WithBit returns a copy with feature bit n set or cleared.
func (f OptionalFeatures) WithBit(n uint, v bool) OptionalFeatures {
	if v {
		return f | 1<<n
	}
	return f &^ (1 << n)
}

// CapabilityData is the 16-byte GET_CAPABILITY response.
type CapabilityData struct {
	Attributes      CapabilityAttributes
	NumConnectors   uint8
	Features        OptionalFeatures
	NumAltModes     uint8
	BcdBcVersion    uint16
	BcdPdVersion    uint16
	BcdTypeCVersion uint16
}

func (CapabilityData) CommandType() CommandType { return CmdGetCapability }

func (d CapabilityData) encode(b []byte) int {
	binary.LittleEndian.PutUint32(b[0:], uint32(d.Attributes))
	b[4] = d.NumConnectors
	b[5] = byte(d.Features)
	b[6] = byte(d.Features >> 8)
	b[7] = byte(d.Features >> 16)
	b[8] = d.NumAltModes
	b[9] = 0 // reserved
	binary.LittleEndian.PutUint16(b[10:], d.BcdBcVersion)
	binary.LittleEndian.PutUint16(b[12:], d.BcdPdVersion)
	binary.LittleEndian.PutUint16(b[14:], d.BcdTypeCVersion)
	return ResponseLen
}

func decodeCapabilityData(b []byte) (CapabilityData, error) {
	if len(b) < ResponseLen {
		return CapabilityData{}, &ShortBufferError{
			Type: "CapabilityData", Got: len(b), Want: ResponseLen,
		}
	}
	return CapabilityData{
		Attributes:      CapabilityAttributes(binary.LittleEndian.Uint32(b[0:])),
		NumConnectors:   b[4],
		Features:        OptionalFeatures(uint32(b[5]) | uint32(b[6])<<8 | uint32(b[7])<<16),
		NumAltModes:     b[8],
		BcdBcVersion:    binary.LittleEndian.Uint16(b[10:]),
		BcdPdVersion:    binary.LittleEndian.Uint16(b[12:]),
		BcdTypeCVersion: binary.LittleEndian.Uint16(b[14:]),
	}, nil
}
