// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package ucsi

import "encoding/binary"

// SourceCapabilityType selects which source capability set GET_PDOS
// returns.
type SourceCapabilityType uint8

// Source capability set values
const (
	CapabilityCurrent    SourceCapabilityType = 0 // as currently negotiated
	CapabilityAdvertised SourceCapabilityType = 1
	CapabilityMaximum    SourceCapabilityType = 2
)

// SourceCapabilityTypeFromByte validates a raw capability-type field.
func SourceCapabilityTypeFromByte(b byte) (SourceCapabilityType, error) {
	if b > byte(CapabilityMaximum) {
		return 0, &UnexpectedVariantError{
			Type:    "SourceCapabilityType",
			Found:   uint32(b),
			Allowed: []uint32{0, 1, 2},
		}
	}
	return SourceCapabilityType(b), nil
}

// MaxPdos is the largest number of PDOs one GET_PDOS response carries.
const MaxPdos = 4

// GetPdos requests a window of a port's (or its partner's) power data
// objects. Protocol quirk: the connector number is packed into the low
// bits of the argument word rather than the dedicated byte. The wire
// count field is stored biased (0 means one PDO); Count here is the
// actual 1..4 value.
type GetPdos struct {
	Partner    bool // partner's PDOs instead of the port's own
	Offset     uint8
	Count      uint8 // 1..MaxPdos
	Source     bool // source capabilities instead of sink
	Capability SourceCapabilityType
}

// GET_PDOS argument word layout
const (
	gpPartnerBit      = 7
	gpOffsetShift     = 8
	gpCountShift      = 16
	gpCountMask       = 0x03
	gpSourceBit       = 18
	gpCapabilityShift = 19
	gpCapabilityMask  = 0x03
)

func (GetPdos) CommandType() CommandType { return CmdGetPdos }

func (g GetPdos) encodeArgs(connector byte, args []byte) error {
	if g.Count < 1 || g.Count > MaxPdos {
		return ExecErrInvalidParams
	}
	w := uint32(connector)
	if g.Partner {
		w |= 1 << gpPartnerBit
	}
	w |= uint32(g.Offset) << gpOffsetShift
	w |= uint32(g.Count-1) << gpCountShift
	if g.Source {
		w |= 1 << gpSourceBit
	}
	w |= uint32(g.Capability) << gpCapabilityShift
	binary.LittleEndian.PutUint32(args, w)
	return nil
}

func decodeGetPdos(args []byte) (LpmOperation, byte, error) {
	w := binary.LittleEndian.Uint32(args)
	capability, err := SourceCapabilityTypeFromByte(byte(w>>gpCapabilityShift) & gpCapabilityMask)
	if err != nil {
		return nil, 0, err
	}
	op := GetPdos{
		Partner:    w&(1<<gpPartnerBit) != 0,
		Offset:     uint8(w >> gpOffsetShift),
		Count:      uint8(w>>gpCountShift)&gpCountMask + 1,
		Source:     w&(1<<gpSourceBit) != 0,
		Capability: capability,
	}
	return op, byte(w), nil
}

// PdosData is the GET_PDOS response: up to four raw 32-bit PDOs. The
// PDO internals are deliberately left undecoded at this layer; their
// structure depends on PD-contract context this protocol does not
// carry. A zero value terminates a short set.
type PdosData struct {
	Pdos [MaxPdos]uint32
}

func (PdosData) CommandType() CommandType { return CmdGetPdos }

// Valid returns the PDOs before the first zero terminator.
func (d PdosData) Valid() []uint32 {
	for i, pdo := range d.Pdos {
		if pdo == 0 {
			return d.Pdos[:i]
		}
	}
	return d.Pdos[:]
}

func (d PdosData) encode(b []byte) int {
	for i, pdo := range d.Pdos {
		binary.LittleEndian.PutUint32(b[i*4:], pdo)
	}
	return MaxPdos * 4
}

func decodePdosData(b []byte) (PdosData, error) {
	if len(b) < MaxPdos*4 {
		return PdosData{}, &ShortBufferError{Type: "PdosData", Got: len(b), Want: MaxPdos * 4}
	}
	var d PdosData
	for i := range d.Pdos {
		d.Pdos[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return d, nil
}
