// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package ucsi

import "encoding/binary"

// OperationModeFlags is the operation-mode byte of the
// GET_CONNECTOR_CAPABILITY response.
type OperationModeFlags uint8

// Operation mode bits
const (
	OpModeRpOnly         = 0
	OpModeRdOnly         = 1
	OpModeDrp            = 2
	OpModeAnalogAudio    = 3
	OpModeDebugAccessory = 4
	OpModeUsb2           = 5
	OpModeUsb3           = 6
	OpModeAlternateMode  = 7
)

// Bit reports whether operation-mode bit n is set.
func (f OperationModeFlags) Bit(n uint) bool { return f&(1<<n) != 0 }

// WithBit returns a copy with operation-mode bit n set or cleared.
func (f OperationModeFlags) WithBit(n uint, v bool) OperationModeFlags {
	if v {
		return f | 1<<n
	}
	return f &^ (1 << n)
}

// ConnectorCapabilityData is the 2-byte GET_CONNECTOR_CAPABILITY
// response.
type ConnectorCapabilityData struct {
	OperationMode OperationModeFlags
	Provider      bool
	Consumer      bool
	SwapToDfp     bool
	SwapToUfp     bool
	SwapToSrc     bool
	SwapToSnk     bool
}

const connectorCapabilityDataLen = 2

func (ConnectorCapabilityData) CommandType() CommandType { return CmdGetConnectorCapability }

func (d ConnectorCapabilityData) encode(b []byte) int {
	w := uint16(d.OperationMode)
	w |= flagBit(d.Provider, 8) | flagBit(d.Consumer, 9)
	w |= flagBit(d.SwapToDfp, 10) | flagBit(d.SwapToUfp, 11)
	w |= flagBit(d.SwapToSrc, 12) | flagBit(d.SwapToSnk, 13)
	binary.LittleEndian.PutUint16(b, w)
	return connectorCapabilityDataLen
}

func decodeConnectorCapabilityData(b []byte) (ConnectorCapabilityData, error) {
	if len(b) < connectorCapabilityDataLen {
		return ConnectorCapabilityData{}, &ShortBufferError{
			Type: "ConnectorCapabilityData", Got: len(b), Want: connectorCapabilityDataLen,
		}
	}
	w := binary.LittleEndian.Uint16(b)
	return ConnectorCapabilityData{
		OperationMode: OperationModeFlags(w),
		Provider:      w&(1<<8) != 0,
		Consumer:      w&(1<<9) != 0,
		SwapToDfp:     w&(1<<10) != 0,
		SwapToUfp:     w&(1<<11) != 0,
		SwapToSrc:     w&(1<<12) != 0,
		SwapToSnk:     w&(1<<13) != 0,
	}, nil
}
