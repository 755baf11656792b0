// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package ucsi

// ResponseData is a decoded response mailbox image. Unlike commands,
// responses carry no discriminant of their own: the wire bytes are
// only interpretable against the CommandType of the command they
// answer, which the host must remember and supply to DecodeResponse.
type ResponseData interface {
	CommandType() CommandType
	encode(b []byte) int
}

// ResponseDataLen returns the fixed wire length of a command's
// response, or 0 if the command has none (or no codec exists for it).
func ResponseDataLen(ct CommandType) int {
	switch ct {
	case CmdGetCapability:
		return ResponseLen
	case CmdGetConnectorCapability:
		return connectorCapabilityDataLen
	case CmdGetConnectorStatus:
		return connectorStatusDataLen
	case CmdGetCableProperty:
		return cablePropertyDataLen
	case CmdGetErrorStatus:
		return ResponseLen
	case CmdGetPdos:
		return MaxPdos * 4
	case CmdGetAlternateModes:
		return alternateModesDataLen
	case CmdGetCamSupported:
		return 1
	case CmdGetCurrentCam:
		return ResponseLen
	default:
		return 0
	}
}

// EncodeResponse writes a response into the response mailbox image.
func EncodeResponse(data ResponseData, b []byte) (int, error) {
	need := ResponseDataLen(data.CommandType())
	if need == 0 {
		return 0, &UnsupportedCommandError{Command: data.CommandType()}
	}
	if len(b) < need {
		return 0, &ShortBufferError{Type: "ResponseData", Got: len(b), Want: need}
	}
	return data.encode(b), nil
}

// DecodeResponse parses a response mailbox image in the context of the
// command it answers. Commands without a response (or without a codec)
// fail with UnsupportedCommandError.
func DecodeResponse(ct CommandType, b []byte) (ResponseData, error) {
	var (
		data ResponseData
		err  error
	)
	switch ct {
	case CmdGetCapability:
		data, err = decodeCapabilityData(b)
	case CmdGetConnectorCapability:
		data, err = decodeConnectorCapabilityData(b)
	case CmdGetConnectorStatus:
		data, err = DecodeConnectorStatusData(b)
	case CmdGetCableProperty:
		data, err = decodeCablePropertyData(b)
	case CmdGetErrorStatus:
		data, err = decodeErrorStatusData(b)
	case CmdGetPdos:
		data, err = decodePdosData(b)
	case CmdGetAlternateModes:
		data, err = decodeAlternateModesData(b)
	case CmdGetCamSupported:
		data, err = decodeCamSupportedData(b)
	case CmdGetCurrentCam:
		data, err = decodeCurrentCamData(b)
	default:
		return nil, &UnsupportedCommandError{Command: ct}
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}
