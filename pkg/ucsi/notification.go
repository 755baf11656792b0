// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package ucsi

// NotificationEnable is the 32-bit event mask carried by
// SET_NOTIFICATION_ENABLE. Each bit enables one class of asynchronous
// notification from the PPM to the OPM.
type NotificationEnable uint32

// Notification bit positions
const (
	NotifyCmdComplete            = 0
	NotifyExternalSupplyChange   = 1
	NotifyPowerOpModeChange      = 2
	NotifyAttention              = 3
	NotifyFwUpdateRequest        = 4
	NotifyProviderCapsChange     = 5
	NotifyPowerLevelChange       = 6
	NotifyPdResetComplete        = 7
	NotifyCamChange              = 8
	NotifyBatteryChargingChange  = 9
	NotifySecurityRequest        = 10
	NotifyConnectorPartnerChange = 11
	NotifyPowerDirectionChange   = 12
	NotifySetRetimerMode         = 13
	NotifyConnectChange          = 14
	NotifyError                  = 15
	NotifySinkPathChange         = 16
)

// Bit reports whether notification bit n is enabled.
func (n NotificationEnable) Bit(bit uint) bool {
	return n&(1<<bit) != 0
}

// WithBit returns a copy of the mask with bit set or cleared.
func (n NotificationEnable) WithBit(bit uint, v bool) NotificationEnable {
	if v {
		return n | 1<<bit
	}
	return n &^ (1 << bit)
}

// IsEmpty reports whether no notifications are enabled.
func (n NotificationEnable) IsEmpty() bool {
	return n == 0
}

// Union returns the mask with every bit enabled in either operand.
func (n NotificationEnable) Union(o NotificationEnable) NotificationEnable {
	return n | o
}

// Intersection returns the mask with only the bits enabled in both
// operands.
func (n NotificationEnable) Intersection(o NotificationEnable) NotificationEnable {
	return n & o
}
