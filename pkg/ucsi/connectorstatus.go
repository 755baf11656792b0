// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package ucsi

// GET_CONNECTOR_STATUS returns the one response that exceeds the
// standard 16-byte mailbox: a 19-byte, 145-bit packed record. Fields
// are addressed by absolute bit offset below; getBits/putBits do the
// cross-byte extraction.

// ConnectorStatusChange is the 16-bit change bitmap at the head of the
// status record. Bits 0, 4 and 10 are reserved.
type ConnectorStatusChange uint16

// Status change bit positions
const (
	ChangeExternalSupply       = 1
	ChangePowerOpMode          = 2
	ChangeAttention            = 3
	ChangeProviderCaps         = 5
	ChangeNegotiatedPowerLevel = 6
	ChangePdResetComplete      = 7
	ChangeSupportedCam         = 8
	ChangeBatteryCharging      = 9
	ChangeConnectorPartner     = 11
	ChangePowerDirection       = 12
	ChangeSinkPathStatus       = 13
	ChangeConnect              = 14
	ChangeError                = 15
)

// Bit reports whether change bit n is set.
func (c ConnectorStatusChange) Bit(n uint) bool { return c&(1<<n) != 0 }

// WithBit returns a copy with change bit n set or cleared.
func (c ConnectorStatusChange) WithBit(n uint, v bool) ConnectorStatusChange {
	if v {
		return c | 1<<n
	}
	return c &^ (1 << n)
}

// PowerOperationMode is how the connector is currently delivering
// power.
type PowerOperationMode uint8

// Power operation modes
const (
	PowerOpUsbDefault PowerOperationMode = 1
	PowerOpBc         PowerOperationMode = 2
	PowerOpPd         PowerOperationMode = 3
	PowerOpTypeC1_5A  PowerOperationMode = 4
	PowerOpTypeC3A    PowerOperationMode = 5
	PowerOpTypeC5A    PowerOperationMode = 6
)

// PowerOperationModeFromByte validates a raw power-operation-mode
// field.
func PowerOperationModeFromByte(b byte) (PowerOperationMode, error) {
	if b < byte(PowerOpUsbDefault) || b > byte(PowerOpTypeC5A) {
		return 0, &UnexpectedVariantError{
			Type:    "PowerOperationMode",
			Found:   uint32(b),
			Allowed: []uint32{1, 2, 3, 4, 5, 6},
		}
	}
	return PowerOperationMode(b), nil
}

// PowerDirection is which way power flows at the connector.
type PowerDirection uint8

// Power directions
const (
	PowerDirectionSink   PowerDirection = 0
	PowerDirectionSource PowerDirection = 1
)

// ConnectorPartnerType identifies what is attached.
type ConnectorPartnerType uint8

// Partner types
const (
	PartnerDfpAttached           ConnectorPartnerType = 1
	PartnerUfpAttached           ConnectorPartnerType = 2
	PartnerPoweredCableNoUfp     ConnectorPartnerType = 3
	PartnerPoweredCableUfp       ConnectorPartnerType = 4
	PartnerDebugAccessory        ConnectorPartnerType = 5
	PartnerAudioAdapterAccessory ConnectorPartnerType = 6
)

// ConnectorPartnerTypeFromByte validates a raw partner-type field.
func ConnectorPartnerTypeFromByte(b byte) (ConnectorPartnerType, error) {
	if b < byte(PartnerDfpAttached) || b > byte(PartnerAudioAdapterAccessory) {
		return 0, &UnexpectedVariantError{
			Type:    "ConnectorPartnerType",
			Found:   uint32(b),
			Allowed: []uint32{1, 2, 3, 4, 5, 6},
		}
	}
	return ConnectorPartnerType(b), nil
}

// ConnectorPartnerFlags describes the partner's capabilities.
type ConnectorPartnerFlags uint8

// Partner flag bits
const (
	PartnerFlagUsb      = 0
	PartnerFlagAltMode  = 1
	PartnerFlagUsb4Gen3 = 2
	PartnerFlagUsb4Gen4 = 3
)

// Bit reports whether partner flag n is set.
func (f ConnectorPartnerFlags) Bit(n uint) bool { return f&(1<<n) != 0 }

// BatteryChargingStatus is the coarse charge rate while sinking. All
// four two-bit values are legal.
type BatteryChargingStatus uint8

// Battery charging states
const (
	ChargingNot      BatteryChargingStatus = 0
	ChargingNominal  BatteryChargingStatus = 1
	ChargingSlow     BatteryChargingStatus = 2
	ChargingVerySlow BatteryChargingStatus = 3
)

// ProviderCapsReasons is the bitmap of reasons the provider caps are
// limited; zero means unlimited.
type ProviderCapsReasons uint8

// Provider caps limitation bits
const (
	CapsLimitPowerBudgetLowered = 0
	CapsLimitReachingBudget     = 1
)

// Bit reports whether limitation reason n is set.
func (r ProviderCapsReasons) Bit(n uint) bool { return r&(1<<n) != 0 }

// PlugOrientation is which CC line the plug landed on.
type PlugOrientation uint8

// Plug orientations
const (
	OrientationCC1 PlugOrientation = 0 // straight
	OrientationCC2 PlugOrientation = 1 // flipped
)

// Power reading scale units: the scale fields count in 5 mA / 5 mV
// steps.
const (
	currentScaleUnitMa = 5
	voltageScaleUnitMv = 5
)

// PowerReading is the live VBUS measurement block, present only when
// the power-reading-ready bit is set. Values are engineering units;
// the raw record stores them divided by the scales.
type PowerReading struct {
	ScaleMa          uint8
	PeakCurrentMa    uint32
	AvgCurrentMa     uint32
	ScaleMv          uint8
	VoltageReadingMv uint32
}

// ConnectionStatus is the per-attachment portion of the status record,
// meaningful only while something is connected.
type ConnectionStatus struct {
	PowerOpMode    PowerOperationMode
	PowerDirection PowerDirection
	PartnerFlags   ConnectorPartnerFlags
	PartnerType    ConnectorPartnerType

	// Rdo is the raw request data object of the active PD contract.
	// It is stored undecoded: RDO structure depends on the paired
	// PDO's kind, context this layer does not have. Zero when no
	// contract exists; only populated in PD mode.
	Rdo uint32

	// BatteryCharging is only meaningful while PowerDirection is
	// sink.
	BatteryCharging BatteryChargingStatus

	// ProviderCapsLimited is zero when the provider is unconstrained.
	ProviderCapsLimited ProviderCapsReasons

	// BcdPdVersion is the negotiated PD revision, PD mode only.
	BcdPdVersion uint16

	Orientation PlugOrientation
	SinkPath    bool
}

// ConnectorStatusData is the 19-byte GET_CONNECTOR_STATUS response.
// Connection is nil while nothing is attached; PowerReading is nil
// unless the measurement block is valid.
type ConnectorStatusData struct {
	StatusChange             ConnectorStatusChange
	Connection               *ConnectionStatus
	ReverseCurrentProtection bool
	PowerReading             *PowerReading
}

const connectorStatusDataLen = 19

func (ConnectorStatusData) CommandType() CommandType { return CmdGetConnectorStatus }

// Status record bit offsets
const (
	csStatusChangeOff   = 0 // width 16
	csPowerOpModeOff    = 16
	csConnectOff        = 19
	csPowerDirectionOff = 20
	csPartnerFlagsOff   = 21
	csPartnerTypeOff    = 29
	csRdoOff            = 32
	csBatteryOff        = 64
	csCapsLimitedOff    = 66
	csBcdPdVersionOff   = 70
	csOrientationOff    = 86
	csSinkPathOff       = 87
	csRcpOff            = 88
	csReadingReadyOff   = 89
	csCurrentScaleOff   = 90
	csPeakCurrentOff    = 93
	csAvgCurrentOff     = 109
	csVoltageScaleOff   = 125
	csVoltageOff        = 129
)

func (d ConnectorStatusData) encode(b []byte) int {
	for i := range b[:connectorStatusDataLen] {
		b[i] = 0
	}
	putBits(b, csStatusChangeOff, 16, uint32(d.StatusChange))
	if c := d.Connection; c != nil {
		putBits(b, csPowerOpModeOff, 3, uint32(c.PowerOpMode))
		putBits(b, csConnectOff, 1, 1)
		putBits(b, csPowerDirectionOff, 1, uint32(c.PowerDirection))
		putBits(b, csPartnerFlagsOff, 8, uint32(c.PartnerFlags))
		putBits(b, csPartnerTypeOff, 3, uint32(c.PartnerType))
		putBits(b, csRdoOff, 32, c.Rdo)
		putBits(b, csBatteryOff, 2, uint32(c.BatteryCharging))
		putBits(b, csCapsLimitedOff, 4, uint32(c.ProviderCapsLimited))
		putBits(b, csBcdPdVersionOff, 16, uint32(c.BcdPdVersion))
		putBits(b, csOrientationOff, 1, uint32(c.Orientation))
		putBits(b, csSinkPathOff, 1, boolBit(c.SinkPath))
	}
	putBits(b, csRcpOff, 1, boolBit(d.ReverseCurrentProtection))
	if r := d.PowerReading; r != nil && r.ScaleMa != 0 && r.ScaleMv != 0 {
		putBits(b, csReadingReadyOff, 1, 1)
		putBits(b, csCurrentScaleOff, 3, uint32(r.ScaleMa)/currentScaleUnitMa)
		putBits(b, csPeakCurrentOff, 16, r.PeakCurrentMa/uint32(r.ScaleMa))
		putBits(b, csAvgCurrentOff, 16, r.AvgCurrentMa/uint32(r.ScaleMa))
		putBits(b, csVoltageScaleOff, 4, uint32(r.ScaleMv)/voltageScaleUnitMv)
		putBits(b, csVoltageOff, 16, r.VoltageReadingMv/uint32(r.ScaleMv))
	}
	return connectorStatusDataLen
}

// DecodeConnectorStatusData parses the 19-byte status record.
// Conditional fields follow the record's own presence flags: the
// connection block requires the connect bit, the RDO and PD version
// require PD mode, battery charging requires sink direction, and the
// power reading requires the ready bit.
func DecodeConnectorStatusData(b []byte) (ConnectorStatusData, error) {
	if len(b) < connectorStatusDataLen {
		return ConnectorStatusData{}, &ShortBufferError{
			Type: "ConnectorStatusData", Got: len(b), Want: connectorStatusDataLen,
		}
	}
	d := ConnectorStatusData{
		StatusChange:             ConnectorStatusChange(getBits(b, csStatusChangeOff, 16)),
		ReverseCurrentProtection: getBits(b, csRcpOff, 1) != 0,
	}

	if getBits(b, csConnectOff, 1) != 0 {
		mode, err := PowerOperationModeFromByte(byte(getBits(b, csPowerOpModeOff, 3)))
		if err != nil {
			return ConnectorStatusData{}, err
		}
		partner, err := ConnectorPartnerTypeFromByte(byte(getBits(b, csPartnerTypeOff, 3)))
		if err != nil {
			return ConnectorStatusData{}, err
		}
		c := &ConnectionStatus{
			PowerOpMode:         mode,
			PowerDirection:      PowerDirection(getBits(b, csPowerDirectionOff, 1)),
			PartnerFlags:        ConnectorPartnerFlags(getBits(b, csPartnerFlagsOff, 8)),
			PartnerType:         partner,
			ProviderCapsLimited: ProviderCapsReasons(getBits(b, csCapsLimitedOff, 4)),
			Orientation:         PlugOrientation(getBits(b, csOrientationOff, 1)),
			SinkPath:            getBits(b, csSinkPathOff, 1) != 0,
		}
		if c.PowerOpMode == PowerOpPd {
			c.Rdo = getBits(b, csRdoOff, 32)
			c.BcdPdVersion = uint16(getBits(b, csBcdPdVersionOff, 16))
		}
		if c.PowerDirection == PowerDirectionSink {
			c.BatteryCharging = BatteryChargingStatus(getBits(b, csBatteryOff, 2))
		}
		d.Connection = c
	}

	if getBits(b, csReadingReadyOff, 1) != 0 {
		scaleMa := uint8(getBits(b, csCurrentScaleOff, 3)) * currentScaleUnitMa
		scaleMv := uint8(getBits(b, csVoltageScaleOff, 4)) * voltageScaleUnitMv
		d.PowerReading = &PowerReading{
			ScaleMa:          scaleMa,
			PeakCurrentMa:    getBits(b, csPeakCurrentOff, 16) * uint32(scaleMa),
			AvgCurrentMa:     getBits(b, csAvgCurrentOff, 16) * uint32(scaleMa),
			ScaleMv:          scaleMv,
			VoltageReadingMv: getBits(b, csVoltageOff, 16) * uint32(scaleMv),
		}
	}
	return d, nil
}

// getBits extracts width bits starting at absolute bit offset low from
// a little-endian packed record.
func getBits(b []byte, low, width uint) uint32 {
	var v uint32
	for i := uint(0); i < width; i++ {
		bit := low + i
		if b[bit/8]&(1<<(bit%8)) != 0 {
			v |= 1 << i
		}
	}
	return v
}

// putBits stores the low width bits of v at absolute bit offset low.
func putBits(b []byte, low, width uint, v uint32) {
	for i := uint(0); i < width; i++ {
		bit := low + i
		if v&(1<<i) != 0 {
			b[bit/8] |= 1 << (bit % 8)
		} else {
			b[bit/8] &^= 1 << (bit % 8)
		}
	}
}

func boolBit(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}
