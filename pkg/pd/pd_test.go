// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package pd

import (
	"errors"
	"testing"
)

// ============================================================
// PDO Classification Tests
// ============================================================

func TestPDOKind(t *testing.T) {
	tests := []struct {
		name string
		raw  uint32
		want PDOKind
	}{
		{"fixed", 0x0A01912C, KindFixed},
		{"battery", 0x4A01912C, KindBattery},
		{"variable", 0x8A01912C, KindVariable},
		{"augmented", 0xC0DC1F64, KindAugmented},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PDO(tt.raw).Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAPDOKind(t *testing.T) {
	tests := []struct {
		name string
		raw  uint32
		want APDOKind
	}{
		{"spr_pps", 0xC0DC1F64, APDOSprPps},
		{"epr_avs", 0xD0DC1F64, APDOEprAvs},
		{"spr_avs", 0xE0DC1F64, APDOSprAvs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PDO(tt.raw).APDOKind()
			if err != nil {
				t.Fatalf("APDOKind() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("APDOKind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAPDOKindErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  uint32
	}{
		{"not_augmented", 0x0A01912C},
		{"reserved_kind", 0xF0DC1F64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PDO(tt.raw).APDOKind()
			var kindErr *KindError
			if !errors.As(err, &kindErr) {
				t.Fatalf("APDOKind() err = %v, want KindError", err)
			}
			if kindErr.Raw != tt.raw {
				t.Errorf("KindError.Raw = 0x%08X, want 0x%08X", kindErr.Raw, tt.raw)
			}
		})
	}
}

// ============================================================
// Source PDO Tests
// ============================================================

func TestSourceFixedPDO(t *testing.T) {
	o := NewSourceFixedPDO()
	o.SetDualRolePower(true)
	o.SetUsbCommsCapable(true)
	o.SetEprCapable(true)
	o.SetPeakCurrent(Peak125Pct)
	o.SetVoltage(5000)
	o.SetMaxCurrent(3000)

	if PDO(o).Kind() != KindFixed {
		t.Errorf("Kind() = %v, want KindFixed", PDO(o).Kind())
	}
	if !o.DualRolePower() || !o.UsbCommsCapable() || !o.EprCapable() {
		t.Error("set flags not readable")
	}
	if o.UsbSuspendSupported() || o.UnconstrainedPower() || o.DualRoleData() || o.UnchunkedExtended() {
		t.Error("unset flags readable")
	}
	if got := o.PeakCurrent(); got != Peak125Pct {
		t.Errorf("PeakCurrent() = %v, want Peak125Pct", got)
	}
	if got := o.Voltage(); got != 5000 {
		t.Errorf("Voltage() = %d, want 5000", got)
	}
	if got := o.MaxCurrent(); got != 3000 {
		t.Errorf("MaxCurrent() = %d, want 3000", got)
	}

	// 5 V = 100 units at bit 10, 3 A = 300 units at bit 0.
	want := SourceFixedPDO(1<<29 | 1<<26 | 1<<23 | uint32(Peak125Pct)<<20 | 100<<10 | 300)
	if o != want {
		t.Errorf("raw = 0x%08X, want 0x%08X", uint32(o), uint32(want))
	}
}

func TestSourceFixedPDORounding(t *testing.T) {
	var o SourceFixedPDO
	o.SetVoltage(5049)
	o.SetMaxCurrent(1234)
	if got := o.Voltage(); got != 5000 {
		t.Errorf("Voltage() = %d, want 5000", got)
	}
	if got := o.MaxCurrent(); got != 1230 {
		t.Errorf("MaxCurrent() = %d, want 1230", got)
	}
}

func TestSourceBatteryPDO(t *testing.T) {
	o := NewSourceBatteryPDO()
	o.SetMaxVoltage(21000)
	o.SetMinVoltage(4750)
	o.SetMaxPower(45000)

	if PDO(o).Kind() != KindBattery {
		t.Errorf("Kind() = %v, want KindBattery", PDO(o).Kind())
	}
	if got := o.MaxVoltage(); got != 21000 {
		t.Errorf("MaxVoltage() = %d, want 21000", got)
	}
	if got := o.MinVoltage(); got != 4750 {
		t.Errorf("MinVoltage() = %d, want 4750", got)
	}
	if got := o.MaxPower(); got != 45000 {
		t.Errorf("MaxPower() = %d, want 45000", got)
	}
}

func TestSourceVariablePDO(t *testing.T) {
	o := NewSourceVariablePDO()
	o.SetMaxVoltage(20000)
	o.SetMinVoltage(5000)
	o.SetMaxCurrent(2250)

	if PDO(o).Kind() != KindVariable {
		t.Errorf("Kind() = %v, want KindVariable", PDO(o).Kind())
	}
	if got := o.MaxVoltage(); got != 20000 {
		t.Errorf("MaxVoltage() = %d, want 20000", got)
	}
	if got := o.MinVoltage(); got != 5000 {
		t.Errorf("MinVoltage() = %d, want 5000", got)
	}
	if got := o.MaxCurrent(); got != 2250 {
		t.Errorf("MaxCurrent() = %d, want 2250", got)
	}
}

func TestSprPpsPDO(t *testing.T) {
	o := NewSprPpsPDO()
	o.SetPowerLimited(true)
	o.SetMaxVoltage(21000)
	o.SetMinVoltage(3300)
	o.SetMaxCurrent(5000)

	if kind, err := PDO(o).APDOKind(); err != nil || kind != APDOSprPps {
		t.Fatalf("APDOKind() = %v, %v; want APDOSprPps", kind, err)
	}
	if !o.PowerLimited() {
		t.Error("PowerLimited() = false, want true")
	}
	if got := o.MaxVoltage(); got != 21000 {
		t.Errorf("MaxVoltage() = %d, want 21000", got)
	}
	if got := o.MinVoltage(); got != 3300 {
		t.Errorf("MinVoltage() = %d, want 3300", got)
	}
	if got := o.MaxCurrent(); got != 5000 {
		t.Errorf("MaxCurrent() = %d, want 5000", got)
	}
}

func TestEprAvsPDO(t *testing.T) {
	o := NewEprAvsPDO()
	o.SetPeakCurrent(Peak110Pct)
	o.SetMaxVoltage(28000)
	o.SetMinVoltage(15000)
	o.SetPdp(140000)

	if kind, err := PDO(o).APDOKind(); err != nil || kind != APDOEprAvs {
		t.Fatalf("APDOKind() = %v, %v; want APDOEprAvs", kind, err)
	}
	if got := o.PeakCurrent(); got != Peak110Pct {
		t.Errorf("PeakCurrent() = %v, want Peak110Pct", got)
	}
	// 28 V needs the 9-bit voltage field (280 units).
	if got := o.MaxVoltage(); got != 28000 {
		t.Errorf("MaxVoltage() = %d, want 28000", got)
	}
	if got := o.MinVoltage(); got != 15000 {
		t.Errorf("MinVoltage() = %d, want 15000", got)
	}
	if got := o.Pdp(); got != 140000 {
		t.Errorf("Pdp() = %d, want 140000", got)
	}
}

func TestSprAvsPDO(t *testing.T) {
	o := NewSprAvsPDO()
	o.SetPeakCurrent(Peak150Pct)
	o.SetMaxCurrent15V(3000)
	o.SetMaxCurrent20V(2250)

	if kind, err := PDO(o).APDOKind(); err != nil || kind != APDOSprAvs {
		t.Fatalf("APDOKind() = %v, %v; want APDOSprAvs", kind, err)
	}
	if got := o.MaxCurrent15V(); got != 3000 {
		t.Errorf("MaxCurrent15V() = %d, want 3000", got)
	}
	if got := o.MaxCurrent20V(); got != 2250 {
		t.Errorf("MaxCurrent20V() = %d, want 2250", got)
	}
	if got := o.MaxVoltage(); got != 20000 {
		t.Errorf("MaxVoltage() = %d, want 20000", got)
	}
	if got := o.MinVoltage(); got != 15000 {
		t.Errorf("MinVoltage() = %d, want 15000", got)
	}

	// Without the 15-20 V range the object spans 9-15 V.
	o.SetMaxCurrent20V(0)
	if got := o.MaxVoltage(); got != 15000 {
		t.Errorf("MaxVoltage() = %d, want 15000", got)
	}
	if got := o.MinVoltage(); got != 9000 {
		t.Errorf("MinVoltage() = %d, want 9000", got)
	}
}

// ============================================================
// Sink PDO Tests
// ============================================================

func TestSinkFixedPDO(t *testing.T) {
	o := NewSinkFixedPDO()
	o.SetDualRolePower(true)
	o.SetHigherCapability(true)
	o.SetFrsRequiredCurrent(Frs1A5)
	o.SetVoltage(5000)
	o.SetOperationalCurrent(1500)

	if !o.DualRolePower() || !o.HigherCapability() {
		t.Error("set flags not readable")
	}
	if o.UnconstrainedPower() || o.UsbCommsCapable() || o.DualRoleData() {
		t.Error("unset flags readable")
	}
	if got := o.FrsRequiredCurrent(); got != Frs1A5 {
		t.Errorf("FrsRequiredCurrent() = %v, want Frs1A5", got)
	}
	if got := o.Voltage(); got != 5000 {
		t.Errorf("Voltage() = %d, want 5000", got)
	}
	if got := o.OperationalCurrent(); got != 1500 {
		t.Errorf("OperationalCurrent() = %d, want 1500", got)
	}
}

func TestSinkBatteryPDO(t *testing.T) {
	o := NewSinkBatteryPDO()
	o.SetMaxVoltage(12000)
	o.SetMinVoltage(9000)
	o.SetOperationalPower(27000)

	if PDO(o).Kind() != KindBattery {
		t.Errorf("Kind() = %v, want KindBattery", PDO(o).Kind())
	}
	if got := o.MaxVoltage(); got != 12000 {
		t.Errorf("MaxVoltage() = %d, want 12000", got)
	}
	if got := o.MinVoltage(); got != 9000 {
		t.Errorf("MinVoltage() = %d, want 9000", got)
	}
	if got := o.OperationalPower(); got != 27000 {
		t.Errorf("OperationalPower() = %d, want 27000", got)
	}
}

func TestSinkVariablePDO(t *testing.T) {
	o := NewSinkVariablePDO()
	o.SetMaxVoltage(20000)
	o.SetMinVoltage(5000)
	o.SetOperationalCurrent(900)

	if PDO(o).Kind() != KindVariable {
		t.Errorf("Kind() = %v, want KindVariable", PDO(o).Kind())
	}
	if got := o.OperationalCurrent(); got != 900 {
		t.Errorf("OperationalCurrent() = %d, want 900", got)
	}
}

// ============================================================
// RDO Tests
// ============================================================

func TestRDOForPDO(t *testing.T) {
	tests := []struct {
		name string
		pdo  uint32
		want string
	}{
		{"fixed", 0x0A01912C, "FixedVarRDO"},
		{"variable", 0x8A01912C, "FixedVarRDO"},
		{"battery", 0x4A01912C, "BatteryRDO"},
		{"spr_pps", 0xC0DC1F64, "PpsRDO"},
		{"epr_avs", 0xD0DC1F64, "PpsRDO"},
		{"spr_avs", 0xE0DC1F64, "AvsRDO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rdo, err := RDOForPDO(0x1300012C, PDO(tt.pdo))
			if err != nil {
				t.Fatalf("RDOForPDO() error: %v", err)
			}
			var got string
			switch rdo.(type) {
			case FixedVarRDO:
				got = "FixedVarRDO"
			case BatteryRDO:
				got = "BatteryRDO"
			case PpsRDO:
				got = "PpsRDO"
			case AvsRDO:
				got = "AvsRDO"
			default:
				t.Fatalf("RDOForPDO() returned %T", rdo)
			}
			if got != tt.want {
				t.Errorf("RDOForPDO() = %s, want %s", got, tt.want)
			}
			if pos := rdo.ObjectPosition(); pos != 1 {
				t.Errorf("ObjectPosition() = %d, want 1", pos)
			}
		})
	}
}

func TestRDOForPDOReservedAPDO(t *testing.T) {
	_, err := RDOForPDO(0x1300012C, PDO(0xF0DC1F64))
	var kindErr *KindError
	if !errors.As(err, &kindErr) {
		t.Fatalf("RDOForPDO() err = %v, want KindError", err)
	}
}

func TestFixedVarRDO(t *testing.T) {
	var o FixedVarRDO
	o.SetObjectPosition(3)
	o.SetOperatingCurrent(1500)
	o.SetMaxOperatingCurrent(3000)

	if got := o.ObjectPosition(); got != 3 {
		t.Errorf("ObjectPosition() = %d, want 3", got)
	}
	if o.CapabilityMismatch() {
		t.Error("CapabilityMismatch() = true, want false")
	}
	if got := o.OperatingCurrent(); got != 1500 {
		t.Errorf("OperatingCurrent() = %d, want 1500", got)
	}
	if got := o.MaxOperatingCurrent(); got != 3000 {
		t.Errorf("MaxOperatingCurrent() = %d, want 3000", got)
	}

	mismatch := FixedVarRDO(uint32(o) | 1<<rdoMismatchBit)
	if !mismatch.CapabilityMismatch() {
		t.Error("CapabilityMismatch() = false, want true")
	}
}

func TestBatteryRDO(t *testing.T) {
	var o BatteryRDO
	o.SetObjectPosition(2)
	o.SetOperatingPower(15000)
	o.SetMaxOperatingPower(27000)

	if got := o.ObjectPosition(); got != 2 {
		t.Errorf("ObjectPosition() = %d, want 2", got)
	}
	if got := o.OperatingPower(); got != 15000 {
		t.Errorf("OperatingPower() = %d, want 15000", got)
	}
	if got := o.MaxOperatingPower(); got != 27000 {
		t.Errorf("MaxOperatingPower() = %d, want 27000", got)
	}
}

func TestPpsRDO(t *testing.T) {
	var o PpsRDO
	o.SetObjectPosition(4)
	o.SetOutputVoltage(9000)
	o.SetOperatingCurrent(2500)

	if got := o.ObjectPosition(); got != 4 {
		t.Errorf("ObjectPosition() = %d, want 4", got)
	}
	if got := o.OutputVoltage(); got != 9000 {
		t.Errorf("OutputVoltage() = %d, want 9000", got)
	}
	if got := o.OperatingCurrent(); got != 2500 {
		t.Errorf("OperatingCurrent() = %d, want 2500", got)
	}
}

func TestPpsRDORounding(t *testing.T) {
	var o PpsRDO
	o.SetOutputVoltage(9015)
	o.SetOperatingCurrent(2525)
	if got := o.OutputVoltage(); got != 9000 {
		t.Errorf("OutputVoltage() = %d, want 9000", got)
	}
	if got := o.OperatingCurrent(); got != 2500 {
		t.Errorf("OperatingCurrent() = %d, want 2500", got)
	}
}
