// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package ucsi

// LocalPortID identifies a connector within a single PD controller.
// It is only meaningful relative to that controller.
type LocalPortID uint8

// GlobalPortID identifies a connector uniquely across all controllers
// managed by one PPM.
type GlobalPortID uint8

// PortID constrains the protocol types that are generic over port
// addressing. Local and global ids are deliberately distinct types:
// mapping between them is owned by the host and must be explicit.
type PortID interface {
	LocalPortID | GlobalPortID
}

// connectorNumberMask covers the 7-bit connector number field shared by
// most LPM commands. Bit 7 of the same byte is reused by several
// commands as a command-specific flag and must not leak into the
// connector number.
const connectorNumberMask = 0x7F

// connectorByte packs a port id and the bit-7 flag into the shared
// connector number byte.
func connectorByte[P PortID](port P, flag bool) byte {
	b := byte(port) & connectorNumberMask
	if flag {
		b |= 0x80
	}
	return b
}

// splitConnectorByte is the inverse of connectorByte.
func splitConnectorByte[P PortID](b byte) (P, bool) {
	return P(b & connectorNumberMask), b&0x80 != 0
}
