// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package ucsi

import (
	"fmt"
	"strings"
)

// CommandTypeName returns the UCSI specification name for an opcode.
func CommandTypeName(ct CommandType) string {
	switch ct {
	case CmdPpmReset:
		return "PPM_RESET"
	case CmdCancel:
		return "CANCEL"
	case CmdConnectorReset:
		return "CONNECTOR_RESET"
	case CmdAckCcCi:
		return "ACK_CC_CI"
	case CmdSetNotificationEnable:
		return "SET_NOTIFICATION_ENABLE"
	case CmdGetCapability:
		return "GET_CAPABILITY"
	case CmdGetConnectorCapability:
		return "GET_CONNECTOR_CAPABILITY"
	case CmdSetCcom:
		return "SET_CCOM"
	case CmdSetUor:
		return "SET_UOR"
	case CmdSetPdm:
		return "SET_PDM"
	case CmdSetPdr:
		return "SET_PDR"
	case CmdGetAlternateModes:
		return "GET_ALTERNATE_MODES"
	case CmdGetCamSupported:
		return "GET_CAM_SUPPORTED"
	case CmdGetCurrentCam:
		return "GET_CURRENT_CAM"
	case CmdSetNewCam:
		return "SET_NEW_CAM"
	case CmdGetPdos:
		return "GET_PDOS"
	case CmdGetCableProperty:
		return "GET_CABLE_PROPERTY"
	case CmdGetConnectorStatus:
		return "GET_CONNECTOR_STATUS"
	case CmdGetErrorStatus:
		return "GET_ERROR_STATUS"
	case CmdSetPowerLevel:
		return "SET_POWER_LEVEL"
	case CmdGetPdMessage:
		return "GET_PD_MESSAGE"
	case CmdGetAttentionVdo:
		return "GET_ATTENTION_VDO"
	case CmdGetCamCs:
		return "GET_CAM_CS"
	case CmdLpmFwUpdateRequest:
		return "LPM_FW_UPDATE_REQUEST"
	case CmdSecurityRequest:
		return "SECURITY_REQUEST"
	case CmdSetRetimerMode:
		return "SET_RETIMER_MODE"
	case CmdSetSinkPath:
		return "SET_SINK_PATH"
	case CmdSetPdos:
		return "SET_PDOS"
	case CmdReadPowerLevel:
		return "READ_POWER_LEVEL"
	case CmdChunkingSupport:
		return "CHUNKING_SUPPORT"
	case CmdSetUsb:
		return "SET_USB"
	case CmdGetLpmPpmInfo:
		return "GET_LPM_PPM_INFO"
	default:
		return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(ct))
	}
}

// FormatCommand renders a decoded command on one line.
func FormatCommand[P PortID](cmd Command[P]) string {
	switch c := cmd.(type) {
	case PpmReset:
		return "PPM_RESET"
	case Cancel:
		return "CANCEL"
	case GetCapability:
		return "GET_CAPABILITY"
	case AckCcCi:
		return fmt.Sprintf("ACK_CC_CI connector_change=%t command_complete=%t",
			c.Ack.ConnectorChangeAck(), c.Ack.CommandCompleteAck())
	case SetNotificationEnable:
		return fmt.Sprintf("SET_NOTIFICATION_ENABLE mask=0x%08X", uint32(c.Enable))
	case LpmCommand[P]:
		return fmt.Sprintf("%s connector=%d %s",
			CommandTypeName(c.CommandType()), byte(c.Port), formatLpmOp(c.Op))
	default:
		return CommandTypeName(cmd.CommandType())
	}
}

func formatLpmOp(op LpmOperation) string {
	switch o := op.(type) {
	case ConnectorReset:
		if o.Hard {
			return "hard"
		}
		return "data"
	case GetAlternateModes:
		return fmt.Sprintf("recipient=%d offset=%d num=%d", o.Recipient, o.ModeOffset, o.NumModes)
	case GetPdos:
		return fmt.Sprintf("partner=%t offset=%d count=%d source=%t capability=%d",
			o.Partner, o.Offset, o.Count, o.Source, o.Capability)
	case SetCcom:
		return fmt.Sprintf("rp=%t rd=%t drp=%t disabled=%t", o.Rp, o.Rd, o.Drp, o.Disabled)
	case SetUor:
		return fmt.Sprintf("dfp=%t ufp=%t accept_swap=%t", o.Dfp, o.Ufp, o.AcceptSwap)
	case SetPdr:
		return fmt.Sprintf("swap_to_source=%t swap_to_sink=%t accept_swap=%t",
			o.SwapToSource, o.SwapToSink, o.AcceptSwap)
	case SetNewCam:
		return fmt.Sprintf("enter=%t offset=%d am_specific=0x%08X", o.Enter, o.ModeOffset, o.AmSpecific)
	case SetPowerLevel:
		return fmt.Sprintf("source=%t max_power=%dmW current=%dmA voltage=%dmV",
			o.SourceRole, o.MaxPowerMw, o.OperatingCurrentMa, o.OutputVoltageMv)
	default:
		return ""
	}
}

// FormatCci renders a CCI register on one line, listing only the set
// flags.
func FormatCci[P PortID](c Cci[P]) string {
	var flags []string
	if c.CmdComplete() {
		flags = append(flags, "CMD_COMPLETE")
	}
	if c.Error() {
		flags = append(flags, "ERROR")
	}
	if c.Busy() {
		flags = append(flags, "BUSY")
	}
	if c.AckCommand() {
		flags = append(flags, "ACK_COMMAND")
	}
	if c.ResetComplete() {
		flags = append(flags, "RESET_COMPLETE")
	}
	if c.CancelComplete() {
		flags = append(flags, "CANCEL_COMPLETE")
	}
	if c.NotSupported() {
		flags = append(flags, "NOT_SUPPORTED")
	}
	if c.FwUpdateRequest() {
		flags = append(flags, "FW_UPDATE_REQUEST")
	}
	if c.SecurityRequest() {
		flags = append(flags, "SECURITY_REQUEST")
	}
	if c.VendorMessage() {
		flags = append(flags, "VENDOR_MESSAGE")
	}
	if c.Eom() {
		flags = append(flags, "EOM")
	}
	if len(flags) == 0 {
		flags = append(flags, "NONE")
	}
	s := fmt.Sprintf("CCI [%s]", strings.Join(flags, "|"))
	if n := c.ConnectorChange(); byte(n) != 0 {
		s += fmt.Sprintf(" connector_change=%d", byte(n))
	}
	if n := c.DataLen(); n != 0 {
		s += fmt.Sprintf(" data_len=%d", n)
	}
	return s
}

// FormatResponse renders a decoded response in a compact
// field-per-line block.
func FormatResponse(data ResponseData) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s response\n", CommandTypeName(data.CommandType()))
	switch d := data.(type) {
	case CapabilityData:
		fmt.Fprintf(&sb, "  attributes: 0x%08X\n", uint32(d.Attributes))
		fmt.Fprintf(&sb, "  connectors: %d\n", d.NumConnectors)
		fmt.Fprintf(&sb, "  features: 0x%06X\n", uint32(d.Features))
		fmt.Fprintf(&sb, "  alt_modes: %d\n", d.NumAltModes)
		fmt.Fprintf(&sb, "  bcdBC: %04X bcdPD: %04X bcdTypeC: %04X\n",
			d.BcdBcVersion, d.BcdPdVersion, d.BcdTypeCVersion)
	case ConnectorCapabilityData:
		fmt.Fprintf(&sb, "  operation_mode: 0x%02X provider=%t consumer=%t\n",
			uint8(d.OperationMode), d.Provider, d.Consumer)
	case ConnectorStatusData:
		fmt.Fprintf(&sb, "  status_change: 0x%04X\n", uint16(d.StatusChange))
		if c := d.Connection; c != nil {
			fmt.Fprintf(&sb, "  connected: op_mode=%d direction=%d partner_type=%d\n",
				c.PowerOpMode, c.PowerDirection, c.PartnerType)
			if c.Rdo != 0 {
				fmt.Fprintf(&sb, "  rdo: 0x%08X\n", c.Rdo)
			}
		} else {
			fmt.Fprintf(&sb, "  connected: no\n")
		}
		if r := d.PowerReading; r != nil {
			fmt.Fprintf(&sb, "  power: peak=%dmA avg=%dmA vbus=%dmV\n",
				r.PeakCurrentMa, r.AvgCurrentMa, r.VoltageReadingMv)
		}
	case CablePropertyData:
		fmt.Fprintf(&sb, "  active=%t current=%dmA plug_end=%d\n",
			d.ActiveCable, d.CurrentCapabilityMa, d.PlugEndType)
	case ErrorStatusData:
		fmt.Fprintf(&sb, "  information: 0x%04X\n", uint16(d.Information))
	case PdosData:
		for i, pdo := range d.Valid() {
			fmt.Fprintf(&sb, "  pdo[%d]: 0x%08X\n", i, pdo)
		}
	case AlternateModesData:
		for i, m := range d.Modes {
			if m.Svid != 0 {
				fmt.Fprintf(&sb, "  mode[%d]: svid=0x%04X mid=0x%08X\n", i, m.Svid, m.Mid)
			}
		}
	case CamSupportedData:
		fmt.Fprintf(&sb, "  bitmap: 0x%02X\n", d.Bitmap)
	case CurrentCamData:
		fmt.Fprintf(&sb, "  cam: % X\n", d.Cam)
	}
	return sb.String()
}
