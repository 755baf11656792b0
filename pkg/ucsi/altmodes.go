// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package ucsi

import "encoding/binary"

// Recipient selects which PD message addressing tier an alternate-mode
// query targets: the connector itself or one of the SOP* cable/partner
// tiers.
type Recipient uint8

// Recipient values
const (
	RecipientConnector      Recipient = 0
	RecipientSop            Recipient = 1
	RecipientSopPrime       Recipient = 2
	RecipientSopDoublePrime Recipient = 3
)

// RecipientFromByte validates a raw recipient field.
func RecipientFromByte(b byte) (Recipient, error) {
	if b > byte(RecipientSopDoublePrime) {
		return 0, &UnexpectedVariantError{
			Type:    "Recipient",
			Found:   uint32(b),
			Allowed: []uint32{0, 1, 2, 3},
		}
	}
	return Recipient(b), nil
}

// GetAlternateModes requests a window of the alternate modes supported
// by a recipient. Protocol quirk: the connector number is not in the
// dedicated byte after the header but at bits 14:8 of the argument
// word, after the recipient field.
type GetAlternateModes struct {
	Recipient  Recipient
	ModeOffset uint8
	NumModes   uint8 // two-bit field on the wire
}

// GET_ALTERNATE_MODES argument word layout
const (
	gamRecipientMask  = 0x07
	gamConnectorShift = 8
	gamOffsetShift    = 16
	gamNumModesShift  = 24
	gamNumModesMask   = 0x03
)

func (GetAlternateModes) CommandType() CommandType { return CmdGetAlternateModes }

func (g GetAlternateModes) encodeArgs(connector byte, args []byte) error {
	w := uint32(g.Recipient) & gamRecipientMask
	w |= uint32(connector) << gamConnectorShift
	w |= uint32(g.ModeOffset) << gamOffsetShift
	w |= uint32(g.NumModes&gamNumModesMask) << gamNumModesShift
	binary.LittleEndian.PutUint32(args, w)
	return nil
}

func decodeGetAlternateModes(args []byte) (LpmOperation, byte, error) {
	w := binary.LittleEndian.Uint32(args)
	recipient, err := RecipientFromByte(byte(w & gamRecipientMask))
	if err != nil {
		return nil, 0, err
	}
	op := GetAlternateModes{
		Recipient:  recipient,
		ModeOffset: uint8(w >> gamOffsetShift),
		NumModes:   uint8(w>>gamNumModesShift) & gamNumModesMask,
	}
	return op, byte(w >> gamConnectorShift), nil
}

// SetNewCam enters or exits an alternate mode on a connector. The
// enter flag rides bit 7 of the connector number byte.
type SetNewCam struct {
	Enter      bool
	ModeOffset uint8
	AmSpecific uint32
}

func (SetNewCam) CommandType() CommandType { return CmdSetNewCam }

func (s SetNewCam) encodeArgs(connector byte, args []byte) error {
	args[0] = connector
	if s.Enter {
		args[0] |= 0x80
	}
	args[1] = s.ModeOffset
	binary.LittleEndian.PutUint32(args[2:], s.AmSpecific)
	return nil
}

func decodeSetNewCam(args []byte) (LpmOperation, byte) {
	op := SetNewCam{
		Enter:      args[0]&0x80 != 0,
		ModeOffset: args[1],
		AmSpecific: binary.LittleEndian.Uint32(args[2:]),
	}
	return op, args[0]
}

// AltMode is one alternate-mode descriptor: a standard or vendor ID
// plus the mode's VDO.
type AltMode struct {
	Svid uint16
	Mid  uint32
}

// AlternateModesData is the GET_ALTERNATE_MODES response: two
// descriptor slots, a zero SVID marking an empty slot.
type AlternateModesData struct {
	Modes [2]AltMode
}

const alternateModesDataLen = 12

func (AlternateModesData) CommandType() CommandType { return CmdGetAlternateModes }

func (d AlternateModesData) encode(b []byte) int {
	for i, m := range d.Modes {
		binary.LittleEndian.PutUint16(b[i*6:], m.Svid)
		binary.LittleEndian.PutUint32(b[i*6+2:], m.Mid)
	}
	return alternateModesDataLen
}

func decodeAlternateModesData(b []byte) (AlternateModesData, error) {
	if len(b) < alternateModesDataLen {
		return AlternateModesData{}, &ShortBufferError{
			Type: "AlternateModesData", Got: len(b), Want: alternateModesDataLen,
		}
	}
	var d AlternateModesData
	for i := range d.Modes {
		d.Modes[i].Svid = binary.LittleEndian.Uint16(b[i*6:])
		d.Modes[i].Mid = binary.LittleEndian.Uint32(b[i*6+2:])
	}
	return d, nil
}

// MaxAltModes is the width of the GET_CAM_SUPPORTED bitmap.
const MaxAltModes = 8

// CamSupportedData is the GET_CAM_SUPPORTED response: one bit per
// alternate mode the connector supports, indexed by the mode's
// position in the PPM's alternate-mode table.
type CamSupportedData struct {
	Bitmap uint8
}

func (CamSupportedData) CommandType() CommandType { return CmdGetCamSupported }

// Supported reports whether the alternate mode at index is supported.
func (d CamSupportedData) Supported(index int) (bool, error) {
	if index < 0 || index >= MaxAltModes {
		return false, ExecErrInvalidParams
	}
	return d.Bitmap&(1<<index) != 0, nil
}

// SetSupported marks the alternate mode at index supported or not.
func (d *CamSupportedData) SetSupported(index int, v bool) error {
	if index < 0 || index >= MaxAltModes {
		return ExecErrInvalidParams
	}
	if v {
		d.Bitmap |= 1 << index
	} else {
		d.Bitmap &^= 1 << index
	}
	return nil
}

func (d CamSupportedData) encode(b []byte) int {
	b[0] = d.Bitmap
	return 1
}

// CurrentCamData is the GET_CURRENT_CAM response: the offsets of the
// currently active alternate modes, one byte per active mode, 0xFF in
// unused slots.
type CurrentCamData struct {
	Cam [ResponseLen]uint8
}

func (CurrentCamData) CommandType() CommandType { return CmdGetCurrentCam }

func (d CurrentCamData) encode(b []byte) int {
	copy(b, d.Cam[:])
	return ResponseLen
}

func decodeCurrentCamData(b []byte) (CurrentCamData, error) {
	if len(b) < ResponseLen {
		return CurrentCamData{}, &ShortBufferError{
			Type: "CurrentCamData", Got: len(b), Want: ResponseLen,
		}
	}
	var d CurrentCamData
	copy(d.Cam[:], b[:ResponseLen])
	return d, nil
}

func decodeCamSupportedData(b []byte) (CamSupportedData, error) {
	if len(b) < 1 {
		return CamSupportedData{}, &ShortBufferError{
			Type: "CamSupportedData", Got: len(b), Want: 1,
		}
	}
	return CamSupportedData{Bitmap: b[0]}, nil
}
