// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package pd

import "fmt"

// AlertKind identifies the event an alert data object reports.
type AlertKind uint8

// Alert kinds. The extended kinds share one alert-type wire value and
// are distinguished by the extended alert type field.
const (
	AlertBatteryStatusChange AlertKind = iota
	AlertOcp
	AlertOtp
	AlertOperatingConditionChange
	AlertSourceInputChange
	AlertOvp
	AlertPowerStateChange
	AlertPowerButtonPress
	AlertPowerButtonRelease
	AlertControllerInitiatedWake
)

func (k AlertKind) String() string {
	switch k {
	case AlertBatteryStatusChange:
		return "BatteryStatusChange"
	case AlertOcp:
		return "Ocp"
	case AlertOtp:
		return "Otp"
	case AlertOperatingConditionChange:
		return "OperatingConditionChange"
	case AlertSourceInputChange:
		return "SourceInputChange"
	case AlertOvp:
		return "Ovp"
	case AlertPowerStateChange:
		return "PowerStateChange"
	case AlertPowerButtonPress:
		return "PowerButtonPress"
	case AlertPowerButtonRelease:
		return "PowerButtonRelease"
	case AlertControllerInitiatedWake:
		return "ControllerInitiatedWake"
	default:
		return fmt.Sprintf("AlertKind(%d)", uint8(k))
	}
}

// InvalidAlertError reports an ADO whose alert type (or extended alert
// type) is not a known value. It carries the complete undecoded ADO.
type InvalidAlertError struct {
	Raw uint32
}

func (e *InvalidAlertError) Error() string {
	return fmt.Sprintf("pd: invalid alert data object 0x%08X", e.Raw)
}

// MaxBatteryIndex is the highest battery index an alert can report.
const MaxBatteryIndex = 3

// BatteryStatusChange is the per-battery change bitmap of a battery
// status change alert: fixed batteries in the high nibble, hot
// swappable batteries in the low nibble.
type BatteryStatusChange uint8

// FixedBattery reports whether the fixed battery at index changed.
func (b BatteryStatusChange) FixedBattery(index int) (bool, error) {
	if index < 0 || index > MaxBatteryIndex {
		return false, fmt.Errorf("pd: battery index %d out of range", index)
	}
	return b&(1<<(4+index)) != 0, nil
}

// HotSwappableBattery reports whether the hot swappable battery at
// index changed.
func (b BatteryStatusChange) HotSwappableBattery(index int) (bool, error) {
	if index < 0 || index > MaxBatteryIndex {
		return false, fmt.Errorf("pd: battery index %d out of range", index)
	}
	return b&(1<<index) != 0, nil
}

// Alert is a decoded alert data object. BatteryChange is only
// meaningful when Kind is AlertBatteryStatusChange.
type Alert struct {
	Kind          AlertKind
	BatteryChange BatteryStatusChange
}

// ADO alert-type wire values, bits 31:24.
const (
	adoTypeBatteryStatusChange     = 0x02
	adoTypeOcp                     = 0x04
	adoTypeOtp                     = 0x08
	adoTypeOperatingCondition      = 0x10
	adoTypeSourceInputChange       = 0x20
	adoTypeOvp                     = 0x40
	adoTypeExtended                = 0x80
	adoExtPowerStateChange         = 0x01
	adoExtPowerButtonPress         = 0x02
	adoExtPowerButtonRelease       = 0x03
	adoExtControllerInitiatedWake  = 0x04
)

// DecodeAlert parses a raw 32-bit alert data object. Unknown alert
// types and unknown extended alert types fail with InvalidAlertError.
func DecodeAlert(raw uint32) (Alert, error) {
	switch uint8(raw >> 24) {
	case adoTypeBatteryStatusChange:
		return Alert{
			Kind:          AlertBatteryStatusChange,
			BatteryChange: BatteryStatusChange(raw >> 16),
		}, nil
	case adoTypeOcp:
		return Alert{Kind: AlertOcp}, nil
	case adoTypeOtp:
		return Alert{Kind: AlertOtp}, nil
	case adoTypeOperatingCondition:
		return Alert{Kind: AlertOperatingConditionChange}, nil
	case adoTypeSourceInputChange:
		return Alert{Kind: AlertSourceInputChange}, nil
	case adoTypeOvp:
		return Alert{Kind: AlertOvp}, nil
	case adoTypeExtended:
		switch raw & 0x0F {
		case adoExtPowerStateChange:
			return Alert{Kind: AlertPowerStateChange}, nil
		case adoExtPowerButtonPress:
			return Alert{Kind: AlertPowerButtonPress}, nil
		case adoExtPowerButtonRelease:
			return Alert{Kind: AlertPowerButtonRelease}, nil
		case adoExtControllerInitiatedWake:
			return Alert{Kind: AlertControllerInitiatedWake}, nil
		default:
			return Alert{}, &InvalidAlertError{Raw: raw}
		}
	default:
		return Alert{}, &InvalidAlertError{Raw: raw}
	}
}
