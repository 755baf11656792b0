// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package ucsi

// SpeedUnit scales the cable speed field.
type SpeedUnit uint8

// Speed exponent values
const (
	SpeedBps  SpeedUnit = 0
	SpeedKbps SpeedUnit = 1
	SpeedMbps SpeedUnit = 2
	SpeedGbps SpeedUnit = 3
)

// CableSpeed is the 16-bit supported-speed field: a 14-bit value with
// a 2-bit unit exponent below it.
type CableSpeed uint16

// NewCableSpeed builds a speed field from value and unit.
func NewCableSpeed(value uint16, unit SpeedUnit) CableSpeed {
	return CableSpeed(value)<<2 | CableSpeed(unit&0x03)
}

func (s CableSpeed) Unit() SpeedUnit { return SpeedUnit(s & 0x03) }
func (s CableSpeed) Value() uint16   { return uint16(s >> 2) }

// PlugEndType identifies the far-end plug of the cable.
type PlugEndType uint8

// Plug end types
const (
	PlugTypeA     PlugEndType = 0
	PlugTypeB     PlugEndType = 1
	PlugTypeC     PlugEndType = 2
	PlugTypeOther PlugEndType = 3
)

// Cable current-capability unit
const cableCurrentUnitMa = 50

// CablePropertyData is the 5-byte GET_CABLE_PROPERTY response.
type CablePropertyData struct {
	Speed                SpeedUnit
	SpeedValue           uint16
	CurrentCapabilityMa  uint16
	VbusInCable          bool
	ActiveCable          bool
	Directionality       bool // directionality is configurable
	PlugEndType          PlugEndType
	AltModeSupport       bool
	CablePdMajorRevision uint8 // two-bit field
	LatencyExponent      uint8 // four-bit field
}

const cablePropertyDataLen = 5

// Cable property bit offsets
const (
	cpSpeedOff      = 0 // width 16 (unit 1:0, value 15:2)
	cpCurrentOff    = 16
	cpVbusOff       = 24
	cpActiveOff     = 25
	cpDirectionOff  = 26
	cpPlugEndOff    = 27
	cpAltModeOff    = 29
	cpPdRevisionOff = 30
	cpLatencyOff    = 32
)

func (CablePropertyData) CommandType() CommandType { return CmdGetCableProperty }

func (d CablePropertyData) encode(b []byte) int {
	for i := range b[:cablePropertyDataLen] {
		b[i] = 0
	}
	putBits(b, cpSpeedOff, 16, uint32(NewCableSpeed(d.SpeedValue, d.Speed)))
	putBits(b, cpCurrentOff, 8, uint32(d.CurrentCapabilityMa/cableCurrentUnitMa))
	putBits(b, cpVbusOff, 1, boolBit(d.VbusInCable))
	putBits(b, cpActiveOff, 1, boolBit(d.ActiveCable))
	putBits(b, cpDirectionOff, 1, boolBit(d.Directionality))
	putBits(b, cpPlugEndOff, 2, uint32(d.PlugEndType))
	putBits(b, cpAltModeOff, 1, boolBit(d.AltModeSupport))
	putBits(b, cpPdRevisionOff, 2, uint32(d.CablePdMajorRevision))
	putBits(b, cpLatencyOff, 4, uint32(d.LatencyExponent))
	return cablePropertyDataLen
}

func decodeCablePropertyData(b []byte) (CablePropertyData, error) {
	if len(b) < cablePropertyDataLen {
		return CablePropertyData{}, &ShortBufferError{
			Type: "CablePropertyData", Got: len(b), Want: cablePropertyDataLen,
		}
	}
	speed := CableSpeed(getBits(b, cpSpeedOff, 16))
	return CablePropertyData{
		Speed:                speed.Unit(),
		SpeedValue:           speed.Value(),
		CurrentCapabilityMa:  uint16(getBits(b, cpCurrentOff, 8)) * cableCurrentUnitMa,
		VbusInCable:          getBits(b, cpVbusOff, 1) != 0,
		ActiveCable:          getBits(b, cpActiveOff, 1) != 0,
		Directionality:       getBits(b, cpDirectionOff, 1) != 0,
		PlugEndType:          PlugEndType(getBits(b, cpPlugEndOff, 2)),
		AltModeSupport:       getBits(b, cpAltModeOff, 1) != 0,
		CablePdMajorRevision: uint8(getBits(b, cpPdRevisionOff, 2)),
		LatencyExponent:      uint8(getBits(b, cpLatencyOff, 4)),
	}, nil
}
