// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

// Package pd decodes USB Power Delivery data objects: source and sink
// PDOs, request data objects, and alert data objects. Each object is a
// thin accessor type over its raw 32-bit wire value; getters return
// engineering units (mV, mA, mW) and setters round to the wire unit.
package pd

import "fmt"

// PDO is a generic power data object. Based on its kind, convert it to
// the specific source or sink PDO type to extract fields.
type PDO uint32

// PDOKind is the top-level power data object kind, bits 31:30.
type PDOKind uint8

// Power data object kinds.
const (
	KindFixed     PDOKind = 0b00
	KindBattery   PDOKind = 0b01
	KindVariable  PDOKind = 0b10
	KindAugmented PDOKind = 0b11
)

// Kind returns the power data object kind.
func (o PDO) Kind() PDOKind {
	return PDOKind(o >> 30)
}

// APDOKind is the augmented power data object kind, bits 29:28,
// meaningful only when Kind is KindAugmented.
type APDOKind uint8

// Augmented power data object kinds.
const (
	APDOSprPps APDOKind = 0b00
	APDOEprAvs APDOKind = 0b01
	APDOSprAvs APDOKind = 0b10
)

// APDOKind returns the augmented kind of the object. It returns an
// error when the object is not augmented or carries the reserved
// augmented kind value.
func (o PDO) APDOKind() (APDOKind, error) {
	if o.Kind() != KindAugmented {
		return 0, &KindError{Want: "augmented PDO", Raw: uint32(o)}
	}
	k := APDOKind(o >> 28 & 0b11)
	if k > APDOSprAvs {
		return 0, &KindError{Want: "valid APDO kind", Raw: uint32(o)}
	}
	return k, nil
}

// KindError reports a data object whose kind bits do not match the
// interpretation asked of it.
type KindError struct {
	Want string
	Raw  uint32
}

func (e *KindError) Error() string {
	return fmt.Sprintf("pd: expected %s, got 0x%08X", e.Want, e.Raw)
}

// PeakCurrent is the fixed-supply peak current capability, named for
// the 10 ms at 50% duty cycle overload values.
type PeakCurrent uint8

// Peak current capabilities.
const (
	Peak100Pct PeakCurrent = 0b00
	Peak110Pct PeakCurrent = 0b01
	Peak125Pct PeakCurrent = 0b10
	Peak150Pct PeakCurrent = 0b11
)
