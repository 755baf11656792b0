// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltaic Labs

package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/voltaiclabs/portscope/pkg/tether"
	"github.com/voltaiclabs/portscope/pkg/ucsi"
)

// ============================================================
// Helpers
// ============================================================

func commandFrame(t *testing.T, cmd ucsi.Command[ucsi.GlobalPortID]) *tether.Frame {
	t.Helper()
	var image [ucsi.CommandLen]byte
	if _, err := ucsi.EncodeCommand[ucsi.GlobalPortID](cmd, image[:]); err != nil {
		t.Fatalf("EncodeCommand failed: %v", err)
	}
	f, err := tether.NewFrame(tether.FrameCommand, image[:])
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	return f
}

func responseFrame(t *testing.T, data ucsi.ResponseData) *tether.Frame {
	t.Helper()
	var image [ucsi.MaxResponseLen]byte
	n, err := ucsi.EncodeResponse(data, image[:])
	if err != nil {
		t.Fatalf("EncodeResponse failed: %v", err)
	}
	f, err := tether.NewFrame(tether.FrameResponse, image[:n])
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	return f
}

// ============================================================
// Session Tests
// ============================================================

func TestSessionDescribeConversation(t *testing.T) {
	sess := &session{}

	// Command with a response establishes the decode context.
	got := sess.Describe(commandFrame(t, ucsi.GetCapability{}))
	if got != "CMD  GET_CAPABILITY" {
		t.Errorf("command text = %q", got)
	}

	// CCI frames decode standalone.
	cci := ucsi.NewCommandCompleteCci[ucsi.GlobalPortID](ucsi.ResponseLen)
	var image [ucsi.CciLen]byte
	if _, err := cci.Encode(image[:]); err != nil {
		t.Fatalf("Cci.Encode failed: %v", err)
	}
	f, err := tether.NewFrame(tether.FrameCci, image[:])
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	got = sess.Describe(f)
	if !strings.Contains(got, "CMD_COMPLETE") {
		t.Errorf("CCI text = %q, want CMD_COMPLETE flag", got)
	}

	// The response decodes against the remembered command.
	got = sess.Describe(responseFrame(t, ucsi.CapabilityData{
		NumConnectors: 2,
		NumAltModes:   1,
	}))
	if !strings.HasPrefix(got, "GET_CAPABILITY response") {
		t.Errorf("response text = %q", got)
	}
	if !strings.Contains(got, "connectors: 2") {
		t.Errorf("response text = %q, want connector count", got)
	}

	// The context is consumed: a second response has nothing to
	// decode against.
	got = sess.Describe(responseFrame(t, ucsi.CapabilityData{}))
	if !strings.Contains(got, "no command context") {
		t.Errorf("second response text = %q", got)
	}
}

func TestSessionCommandWithoutResponseClearsContext(t *testing.T) {
	sess := &session{}

	sess.Describe(commandFrame(t, ucsi.GetCapability{}))
	sess.Describe(commandFrame(t, ucsi.PpmReset{}))

	got := sess.Describe(responseFrame(t, ucsi.CapabilityData{}))
	if !strings.Contains(got, "no command context") {
		t.Errorf("response text = %q, want no context after PPM_RESET", got)
	}
}

func TestSessionDescribePdos(t *testing.T) {
	sess := &session{}

	sess.Describe(commandFrame(t, ucsi.LpmCommand[ucsi.GlobalPortID]{
		Port: 1,
		Op: ucsi.GetPdos{
			Partner:    true,
			Count:      2,
			Source:     true,
			Capability: ucsi.CapabilityAdvertised,
		},
	}))

	got := sess.Describe(responseFrame(t, ucsi.PdosData{
		Pdos: [ucsi.MaxPdos]uint32{0x0001912C, 0},
	}))
	if !strings.Contains(got, "fixed 5000mV 3000mA") {
		t.Errorf("PDO annotation missing: %q", got)
	}
}

// ============================================================
// Decode Helper Tests
// ============================================================

func TestParseHexBytes(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []byte
		wantErr bool
	}{
		{"spaced", []string{"06", "00", "ff"}, []byte{0x06, 0x00, 0xFF}, false},
		{"joined", []string{"0600ff"}, []byte{0x06, 0x00, 0xFF}, false},
		{"colons", []string{"06:00:ff"}, []byte{0x06, 0x00, 0xFF}, false},
		{"prefixed", []string{"0x06", "0X00"}, []byte{0x06, 0x00}, false},
		{"bad_hex", []string{"zz"}, nil, true},
		{"odd_length", []string{"060"}, nil, true},
		{"empty", []string{""}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseHexBytes(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %x", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %x, want %x", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("byte %d: got 0x%02X, want 0x%02X", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLookupCommandType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ucsi.CommandType
		wantErr bool
	}{
		{"by_name", "GET_CAPABILITY", ucsi.CmdGetCapability, false},
		{"lowercase_name", "get_connector_status", ucsi.CmdGetConnectorStatus, false},
		{"by_opcode", "0x06", ucsi.CmdGetCapability, false},
		{"bare_opcode", "12", ucsi.CmdGetConnectorStatus, false},
		{"unknown_name", "GET_NOTHING", 0, true},
		{"reserved_opcode", "0x00", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lookupCommandType(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// ============================================================
// Replay Pacing Tests
// ============================================================

func TestReplayDelay(t *testing.T) {
	tests := []struct {
		name   string
		prevUs int64
		curUs  int64
		speed  float64
		want   time.Duration
	}{
		{"first_frame", 0, 1000, 1.0, 0},
		{"normal", 1000, 3000, 1.0, 2 * time.Millisecond},
		{"double_speed", 1000, 3000, 2.0, time.Millisecond},
		{"half_speed", 1000, 2000, 0.5, 2 * time.Millisecond},
		{"backwards_clock", 3000, 1000, 1.0, 0},
		{"zero_speed", 1000, 3000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := replayDelay(tt.prevUs, tt.curUs, tt.speed); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// ============================================================
// Monitor Rendering Tests
// ============================================================

func TestDescribeConnector(t *testing.T) {
	if got := describeConnector(ucsi.ConnectorStatusData{}); got != "not connected" {
		t.Errorf("empty status = %q", got)
	}

	full := ucsi.ConnectorStatusData{
		Connection: &ucsi.ConnectionStatus{
			PowerOpMode:    ucsi.PowerOpPd,
			PowerDirection: ucsi.PowerDirectionSink,
			Rdo:            0x1300B12C,
		},
		PowerReading: &ucsi.PowerReading{
			ScaleMa:          5,
			ScaleMv:          5,
			AvgCurrentMa:     900,
			VoltageReadingMv: 5000,
		},
	}
	got := describeConnector(full)
	for _, want := range []string{"connected", "sink", "rdo=0x1300B12C", "vbus=5000mV", "avg=900mA"} {
		if !strings.Contains(got, want) {
			t.Errorf("describeConnector = %q, missing %q", got, want)
		}
	}
}
