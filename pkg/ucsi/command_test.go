// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package ucsi

import (
	"errors"
	"reflect"
	"testing"
)

// ============================================================
// Command Codec Round-Trip Tests
// ============================================================

func roundTripCommand(t *testing.T, cmd Command[GlobalPortID]) Command[GlobalPortID] {
	t.Helper()
	var b [CommandLen]byte
	n, err := EncodeCommand[GlobalPortID](cmd, b[:])
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if n != CommandLen {
		t.Fatalf("encode length = %d", n)
	}
	got, err := DecodeCommand[GlobalPortID](b[:])
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return got
}

func TestCommandRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command[GlobalPortID]
	}{
		{"ppm_reset", PpmReset{}},
		{"cancel", Cancel{}},
		{"get_capability", GetCapability{}},
		{"ack_both", AckCcCi{Ack: NewAck(true, true)}},
		{"ack_connector_only", AckCcCi{Ack: NewAck(true, false)}},
		{"set_notification_enable", SetNotificationEnable{
			Enable: NotificationEnable(0).WithBit(NotifyCmdComplete, true).WithBit(NotifySinkPathChange, true),
		}},
		{"connector_reset_hard", NewLpmCommand[GlobalPortID](3, ConnectorReset{Hard: true})},
		{"connector_reset_data", NewLpmCommand[GlobalPortID](127, ConnectorReset{})},
		{"get_connector_capability", NewLpmCommand[GlobalPortID](0, GetConnectorCapability{})},
		{"get_connector_status", NewLpmCommand[GlobalPortID](9, GetConnectorStatus{})},
		{"get_cable_property", NewLpmCommand[GlobalPortID](1, GetCableProperty{})},
		{"get_error_status", NewLpmCommand[GlobalPortID](2, GetErrorStatus{})},
		{"get_cam_supported", NewLpmCommand[GlobalPortID](4, GetCamSupported{})},
		{"get_current_cam", NewLpmCommand[GlobalPortID](5, GetCurrentCam{})},
		{"get_alternate_modes", NewLpmCommand[GlobalPortID](6, GetAlternateModes{
			Recipient: RecipientSopPrime, ModeOffset: 2, NumModes: 3,
		})},
		{"get_pdos", NewLpmCommand[GlobalPortID](3, GetPdos{
			Partner: true, Offset: 4, Count: 1, Source: true, Capability: CapabilityMaximum,
		})},
		{"set_ccom", NewLpmCommand[GlobalPortID](7, SetCcom{Drp: true})},
		{"set_uor", NewLpmCommand[GlobalPortID](8, SetUor{Dfp: true, AcceptSwap: true})},
		{"set_pdr", NewLpmCommand[GlobalPortID](9, SetPdr{SwapToSink: true})},
		{"set_new_cam", NewLpmCommand[GlobalPortID](3, SetNewCam{
			Enter: true, ModeOffset: 1, AmSpecific: 0x12345678,
		})},
		{"set_power_level", NewLpmCommand[GlobalPortID](2, SetPowerLevel{
			SourceRole: true, LsbControl: true, MaxPowerMw: 45000,
			TypeCCurrent: TypeCCurrent3A, OperatingCurrentMa: 3000, OutputVoltageMv: 20000,
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roundTripCommand(t, tt.cmd)
			if !reflect.DeepEqual(got, tt.cmd) {
				t.Errorf("round trip mismatch:\n got  %#v\n want %#v", got, tt.cmd)
			}
		})
	}
}

// ============================================================
// Wire Image Tests
// ============================================================

func TestGetPdosWireImage(t *testing.T) {
	cmd := NewLpmCommand[GlobalPortID](3, GetPdos{
		Partner: true, Offset: 4, Count: 1, Source: true, Capability: CapabilityMaximum,
	})
	var b [CommandLen]byte
	if _, err := EncodeCommand[GlobalPortID](cmd, b[:]); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	want := [CommandLen]byte{0x10, 0x00, 0x83, 0x04, 0x14, 0x00, 0x00, 0x00}
	if b != want {
		t.Errorf("wire image = % X, want % X", b, want)
	}
}

func TestSetNewCamWireImage(t *testing.T) {
	cmd := NewLpmCommand[GlobalPortID](3, SetNewCam{
		Enter: true, ModeOffset: 1, AmSpecific: 0x12345678,
	})
	var b [CommandLen]byte
	if _, err := EncodeCommand[GlobalPortID](cmd, b[:]); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	want := [CommandLen]byte{0x0F, 0x00, 0x83, 0x01, 0x78, 0x56, 0x34, 0x12}
	if b != want {
		t.Errorf("wire image = % X, want % X", b, want)
	}
}

func TestAlternateModesConnectorPlacement(t *testing.T) {
	// GET_ALTERNATE_MODES carries the connector at bits 14:8 of its
	// argument word, not in the dedicated byte.
	cmd := NewLpmCommand[GlobalPortID](5, GetAlternateModes{Recipient: RecipientSop})
	var b [CommandLen]byte
	if _, err := EncodeCommand[GlobalPortID](cmd, b[:]); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if b[2] != 0x01 {
		t.Errorf("recipient byte = 0x%02X, want 0x01", b[2])
	}
	if b[3] != 0x05 {
		t.Errorf("connector byte = 0x%02X, want 0x05", b[3])
	}
}

// ============================================================
// Connector Number Boundary Tests
// ============================================================

func TestConnectorNumberBoundary(t *testing.T) {
	for _, port := range []GlobalPortID{0, 127} {
		cmd := roundTripCommand(t, NewLpmCommand(port, GetConnectorStatus{}))
		lpm, ok := cmd.(LpmCommand[GlobalPortID])
		if !ok {
			t.Fatalf("decoded %T", cmd)
		}
		if lpm.Port != port {
			t.Errorf("port = %d, want %d", lpm.Port, port)
		}
	}

	// Bit 7 side-channel flags must not corrupt the connector number
	cmd := roundTripCommand(t, NewLpmCommand[GlobalPortID](127, ConnectorReset{Hard: true}))
	lpm := cmd.(LpmCommand[GlobalPortID])
	if lpm.Port != 127 {
		t.Errorf("port = %d, want 127", lpm.Port)
	}
	if !lpm.Op.(ConnectorReset).Hard {
		t.Error("hard flag lost")
	}
}

// ============================================================
// Decode Error Tests
// ============================================================

func TestDecodeCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		b    []byte
	}{
		{"unknown_opcode", []byte{0x23, 0, 0, 0, 0, 0, 0, 0}},
		{"reserved_opcode", []byte{0x20, 0, 0, 0, 0, 0, 0, 0}},
		{"bad_recipient", []byte{0x0C, 0, 0x07, 0, 0, 0, 0, 0}},
		{"bad_capability_type", []byte{0x10, 0, 0x00, 0x00, 0x18, 0, 0, 0}},
		{"bad_type_c_current", []byte{0x14, 0, 0x00, 0x00, 0x07, 0, 0, 0}},
		{"short_buffer", []byte{0x01, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeCommand[GlobalPortID](tt.b); err == nil {
				t.Error("decode should fail")
			}
		})
	}
}

func TestDecodeCommandUnsupported(t *testing.T) {
	// Valid opcode, no argument layout
	b := []byte{byte(CmdSetSinkPath), 0, 0x01, 0, 0, 0, 0, 0}
	_, err := DecodeCommand[GlobalPortID](b)
	var unsupported *UnsupportedCommandError
	if !errors.As(err, &unsupported) {
		t.Fatalf("error = %v, want UnsupportedCommandError", err)
	}
	if unsupported.Command != CmdSetSinkPath {
		t.Errorf("command = %s", CommandTypeName(unsupported.Command))
	}
}

func TestGetPdosCountValidation(t *testing.T) {
	var b [CommandLen]byte
	for _, count := range []uint8{0, 5} {
		cmd := NewLpmCommand[GlobalPortID](1, GetPdos{Count: count})
		if _, err := EncodeCommand[GlobalPortID](cmd, b[:]); err == nil {
			t.Errorf("count %d should fail encode", count)
		}
	}
}
