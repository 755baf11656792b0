// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package ucsi

import (
	"bytes"
	"errors"
	"testing"
)

// ============================================================
// Capability Response Tests
// ============================================================

func TestCapabilityDataVector(t *testing.T) {
	var attrs CapabilityAttributes
	attrs.SetDisabledStateSupport(true)
	attrs.SetBatteryCharging(true)
	attrs.SetUsbTypeCCurrent(true)

	d := CapabilityData{
		Attributes:      attrs,
		NumConnectors:   2,
		Features:        0xFF,
		NumAltModes:     3,
		BcdBcVersion:    0x0120,
		BcdPdVersion:    0x0300,
		BcdTypeCVersion: 0x0200,
	}

	var b [ResponseLen]byte
	n, err := EncodeResponse(d, b[:])
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if n != ResponseLen {
		t.Fatalf("encode length = %d", n)
	}

	want := []byte{
		0x43, 0x00, 0x00, 0x00, // attributes
		0x02,             // connectors
		0xFF, 0x00, 0x00, // optional features
		0x03, 0x00, // alt modes, reserved
		0x20, 0x01, // bcdBC 1.2
		0x00, 0x03, // bcdPD 3.0
		0x00, 0x02, // bcdTypeC 2.0
	}
	if !bytes.Equal(b[:], want) {
		t.Errorf("wire image:\n got  % X\n want % X", b[:], want)
	}

	got, err := DecodeResponse(CmdGetCapability, b[:])
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got != d {
		t.Errorf("round trip mismatch:\n got  %#v\n want %#v", got, d)
	}
}

func TestCapabilityAttributesAccessors(t *testing.T) {
	var attrs CapabilityAttributes
	attrs.SetUsbPowerDelivery(true)
	attrs.SetPowerSource(NewPowerSource(true, false, true))

	if !attrs.UsbPowerDelivery() {
		t.Error("usb pd flag lost")
	}
	if attrs.DisabledStateSupport() {
		t.Error("disabled state flag should be clear")
	}
	src := attrs.PowerSource()
	if !src.AcSupply() || src.Other() || !src.UsesVbus() {
		t.Errorf("power source = %08b", uint8(src))
	}
}

// ============================================================
// Connector Capability Response Tests
// ============================================================

func TestConnectorCapabilityVector(t *testing.T) {
	d, err := DecodeResponse(CmdGetConnectorCapability, []byte{0xA1, 0x3F})
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	ccap, ok := d.(ConnectorCapabilityData)
	if !ok {
		t.Fatalf("decoded %T", d)
	}

	mode := ccap.OperationMode
	if !mode.Bit(OpModeRpOnly) || !mode.Bit(OpModeUsb2) || !mode.Bit(OpModeAlternateMode) {
		t.Errorf("operation mode = %08b", uint8(mode))
	}
	if mode.Bit(OpModeDrp) || mode.Bit(OpModeUsb3) {
		t.Errorf("operation mode = %08b, unexpected bits", uint8(mode))
	}
	for _, flag := range []struct {
		name string
		v    bool
	}{
		{"provider", ccap.Provider},
		{"consumer", ccap.Consumer},
		{"swap_to_dfp", ccap.SwapToDfp},
		{"swap_to_ufp", ccap.SwapToUfp},
		{"swap_to_src", ccap.SwapToSrc},
		{"swap_to_snk", ccap.SwapToSnk},
	} {
		if !flag.v {
			t.Errorf("%s should be set", flag.name)
		}
	}

	var b [connectorCapabilityDataLen]byte
	if _, err := EncodeResponse(ccap, b[:]); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if b != [2]byte{0xA1, 0x3F} {
		t.Errorf("re-encode = % X", b)
	}
}

// ============================================================
// Remaining Response Codec Tests
// ============================================================

func TestErrorStatusRoundTrip(t *testing.T) {
	d := ErrorStatusData{
		Information: ErrorInformation(0).
			WithBit(ErrInfoInvalidConnector, true).
			WithBit(ErrInfoPartnerRejectedSwap, true),
	}
	copy(d.VendorData[:], []byte{0xDE, 0xAD, 0xBE, 0xEF})

	var b [ResponseLen]byte
	if _, err := EncodeResponse(d, b[:]); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	got, err := DecodeResponse(CmdGetErrorStatus, b[:])
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got != d {
		t.Errorf("round trip mismatch: %#v", got)
	}
	if !got.(ErrorStatusData).Information.Bit(ErrInfoInvalidConnector) {
		t.Error("invalid connector bit lost")
	}
}

func TestPdosDataValid(t *testing.T) {
	tests := []struct {
		name string
		pdos [MaxPdos]uint32
		want int
	}{
		{"empty", [MaxPdos]uint32{}, 0},
		{"partial", [MaxPdos]uint32{0x0A01912C, 0x0002D12C, 0, 0}, 2},
		{"full", [MaxPdos]uint32{1, 2, 3, 4}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := PdosData{Pdos: tt.pdos}
			if got := len(d.Valid()); got != tt.want {
				t.Errorf("valid count = %d, want %d", got, tt.want)
			}

			var b [MaxPdos * 4]byte
			if _, err := EncodeResponse(d, b[:]); err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			got, err := DecodeResponse(CmdGetPdos, b[:])
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if got != d {
				t.Errorf("round trip mismatch: %#v", got)
			}
		})
	}
}

func TestAlternateModesDataRoundTrip(t *testing.T) {
	d := AlternateModesData{
		Modes: [2]AltMode{
			{Svid: 0xFF01, Mid: 0x00000405}, // DisplayPort
			{},
		},
	}
	var b [alternateModesDataLen]byte
	if _, err := EncodeResponse(d, b[:]); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	got, err := DecodeResponse(CmdGetAlternateModes, b[:])
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got != d {
		t.Errorf("round trip mismatch: %#v", got)
	}
}

func TestCamSupportedData(t *testing.T) {
	var d CamSupportedData
	if err := d.SetSupported(3, true); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := d.SetSupported(MaxAltModes, true); err == nil {
		t.Error("out-of-range index should fail")
	}
	ok, err := d.Supported(3)
	if err != nil || !ok {
		t.Errorf("mode 3 = %v, %v", ok, err)
	}
	if d.Bitmap != 0x08 {
		t.Errorf("bitmap = 0x%02X", d.Bitmap)
	}
}

func TestCablePropertyRoundTrip(t *testing.T) {
	d := CablePropertyData{
		Speed:                SpeedGbps,
		SpeedValue:           10,
		CurrentCapabilityMa:  5000,
		VbusInCable:          true,
		ActiveCable:          true,
		PlugEndType:          PlugTypeC,
		AltModeSupport:       true,
		CablePdMajorRevision: 3,
		LatencyExponent:      4,
	}
	var b [cablePropertyDataLen]byte
	if _, err := EncodeResponse(d, b[:]); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	got, err := DecodeResponse(CmdGetCableProperty, b[:])
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got != d {
		t.Errorf("round trip mismatch:\n got  %#v\n want %#v", got, d)
	}
}

func TestCurrentCamRoundTrip(t *testing.T) {
	d := CurrentCamData{}
	for i := range d.Cam {
		d.Cam[i] = 0xFF
	}
	d.Cam[0] = 2

	var b [ResponseLen]byte
	if _, err := EncodeResponse(d, b[:]); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	got, err := DecodeResponse(CmdGetCurrentCam, b[:])
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got != d {
		t.Errorf("round trip mismatch: %#v", got)
	}
}

// ============================================================
// Response Codec Error Tests
// ============================================================

func TestDecodeResponseUnsupported(t *testing.T) {
	for _, ct := range []CommandType{CmdPpmReset, CmdSetUor, CmdGetPdMessage} {
		_, err := DecodeResponse(ct, make([]byte, ResponseLen))
		var unsupported *UnsupportedCommandError
		if !errors.As(err, &unsupported) {
			t.Errorf("%s: error = %v, want UnsupportedCommandError", CommandTypeName(ct), err)
		}
	}
}

func TestDecodeResponseShortBuffer(t *testing.T) {
	_, err := DecodeResponse(CmdGetCapability, make([]byte, 4))
	var short *ShortBufferError
	if !errors.As(err, &short) {
		t.Fatalf("error = %v, want ShortBufferError", err)
	}
	if short.Want != ResponseLen {
		t.Errorf("want = %d", short.Want)
	}
}

func TestResponseDataLen(t *testing.T) {
	tests := []struct {
		ct   CommandType
		want int
	}{
		{CmdGetCapability, 16},
		{CmdGetConnectorCapability, 2},
		{CmdGetConnectorStatus, 19},
		{CmdGetCableProperty, 5},
		{CmdGetErrorStatus, 16},
		{CmdGetPdos, 16},
		{CmdGetAlternateModes, 12},
		{CmdGetCamSupported, 1},
		{CmdGetCurrentCam, 16},
		{CmdPpmReset, 0},
		{CmdSetNewCam, 0},
	}
	for _, tt := range tests {
		if got := ResponseDataLen(tt.ct); got != tt.want {
			t.Errorf("%s: len = %d, want %d", CommandTypeName(tt.ct), got, tt.want)
		}
	}
}
