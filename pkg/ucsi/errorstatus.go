// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package ucsi

import "encoding/binary"

// ErrorInformation is the 16-bit error bitmap of the GET_ERROR_STATUS
// response.
type ErrorInformation uint16

// Error information bit positions
const (
	ErrInfoUnrecognizedCommand      = 0
	ErrInfoInvalidConnector         = 1
	ErrInfoInvalidCommandArgs       = 2
	ErrInfoIncompatiblePartner      = 3
	ErrInfoCcCommunication          = 4
	ErrInfoDeadBattery              = 5
	ErrInfoContractFailure          = 6
	ErrInfoOvercurrent              = 7
	ErrInfoUndefined                = 8
	ErrInfoPartnerRejectedSwap      = 9
	ErrInfoHardReset                = 10
	ErrInfoPpmPolicyConflict        = 11
	ErrInfoSwapRejected             = 12
	ErrInfoReverseCurrentProtection = 13
	ErrInfoSinkPathRejected         = 14
)

// Bit reports whether error bit n is set.
func (e ErrorInformation) Bit(n uint) bool { return e&(1<<n) != 0 }

// WithBit returns a copy with error bit n set or cleared.
func (e ErrorInformation) WithBit(n uint, v bool) ErrorInformation {
	if v {
		return e | 1<<n
	}
	return e &^ (1 << n)
}

// ErrorStatusData is the 16-byte GET_ERROR_STATUS response: the error
// bitmap followed by 14 vendor-defined bytes.
type ErrorStatusData struct {
	Information ErrorInformation
	VendorData  [14]byte
}

func (ErrorStatusData) CommandType() CommandType { return CmdGetErrorStatus }

func (d ErrorStatusData) encode(b []byte) int {
	binary.LittleEndian.PutUint16(b, uint16(d.Information))
	copy(b[2:], d.VendorData[:])
	return ResponseLen
}

func decodeErrorStatusData(b []byte) (ErrorStatusData, error) {
	if len(b) < ResponseLen {
		return ErrorStatusData{}, &ShortBufferError{
			Type: "ErrorStatusData", Got: len(b), Want: ResponseLen,
		}
	}
	d := ErrorStatusData{Information: ErrorInformation(binary.LittleEndian.Uint16(b))}
	copy(d.VendorData[:], b[2:ResponseLen])
	return d, nil
}
