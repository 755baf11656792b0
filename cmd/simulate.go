// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltaic Labs

package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/voltaiclabs/portscope/pkg/pd"
	"github.com/voltaiclabs/portscope/pkg/tether"
	"github.com/voltaiclabs/portscope/pkg/ucsi"
)

var simulateConnectors int

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Host a simulated platform policy manager",
	Long: `Answer mailbox commands on the connection like a PD controller would.

Commands are run through the full platform policy manager admission state
machine: completions must be acknowledged, notifications gate delivery, and
PPM_RESET recovers from any state. Connector 1 reports a PD sink contract
with a fixed and a PPS source capability; other connectors report nothing
attached.

Useful as the far end for watch, probe and capture during development.`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().IntVar(&simulateConnectors, "connectors", 2, "Number of connectors to report")
}

// simulator holds the policy manager state behind the link.
type simulator struct {
	conn Connection
	sm   *ucsi.StateMachine[ucsi.GlobalPortID]
}

func runSimulate(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Printf("Portscope - PPM Simulator\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Connectors: %d\n", simulateConnectors)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	sim := &simulator{
		conn: conn,
		sm:   ucsi.NewStateMachine[ucsi.GlobalPortID](),
	}

	decoder := tether.NewDecoder()
	buf := make([]byte, 128)

	for {
		n, err := conn.Read(buf)
		if err != nil {
			if err == ErrConnectionClosed {
				log.Printf("Connection closed")
				return nil
			}
			log.Printf("Read error: %v", err)
			continue
		}

		for i := 0; i < n; i++ {
			frame, err := decoder.DecodeByte(buf[i])
			if err != nil {
				log.Printf("Frame error: %v", err)
				continue
			}
			if frame == nil || frame.Kind() != tether.FrameCommand {
				continue
			}
			if err := sim.handleCommand(frame.Payload()); err != nil {
				log.Printf("Command error: %v", err)
			}
		}
	}
}

// handleCommand feeds one command mailbox image through the admission
// machine and performs whatever side effect it instructs.
func (s *simulator) handleCommand(image []byte) error {
	cmd, err := ucsi.DecodeCommand[ucsi.GlobalPortID](image)
	if err != nil {
		fmt.Printf("<- undecodable command: %v\n", err)
		return s.sendCci(ucsi.NewErrorCci[ucsi.GlobalPortID]())
	}
	fmt.Printf("<- %s\n", ucsi.FormatCommand[ucsi.GlobalPortID](cmd))

	out, err := s.sm.Consume(ucsi.CommandInput[ucsi.GlobalPortID]{Command: cmd})
	if err != nil {
		// Protocol violation: report and carry on, state unchanged.
		fmt.Printf("   rejected: %v\n", err)
		return s.sendCci(ucsi.NewErrorCci[ucsi.GlobalPortID]())
	}

	switch out {
	case ucsi.OutputResetComplete:
		return s.sendCci(ucsi.NewResetCompleteCci[ucsi.GlobalPortID]())

	case ucsi.OutputExecuteCommand:
		dataLen, err := s.execute(cmd)
		if err != nil {
			return err
		}
		out, err = s.sm.Consume(ucsi.CommandCompleted{})
		if err != nil {
			return err
		}
		if out == ucsi.OutputNotifyCommandComplete {
			return s.sendCci(ucsi.NewCommandCompleteCci[ucsi.GlobalPortID](uint8(dataLen)))
		}
		return nil

	case ucsi.OutputAckComplete:
		var cci ucsi.Cci[ucsi.GlobalPortID]
		cci.SetAckCommand(true)
		return s.sendCci(cci)

	case ucsi.OutputNotifyCommandComplete:
		// Cancel resolved while a command was in flight.
		var cci ucsi.Cci[ucsi.GlobalPortID]
		cci.SetCmdComplete(true)
		cci.SetCancelComplete(true)
		return s.sendCci(cci)
	}
	return nil
}

// execute produces the canned response for a command and sends it.
// Returns the response data length for the completion CCI.
func (s *simulator) execute(cmd ucsi.Command[ucsi.GlobalPortID]) (int, error) {
	ct := cmd.CommandType()
	if !ct.HasResponse() {
		return 0, nil
	}

	data := s.responseFor(cmd)
	if data == nil {
		return 0, s.sendCci(ucsi.NewErrorCci[ucsi.GlobalPortID]())
	}

	buf := make([]byte, ucsi.MaxResponseLen)
	n, err := ucsi.EncodeResponse(data, buf)
	if err != nil {
		return 0, err
	}
	wire, err := tether.EncodeFrame(tether.FrameResponse, buf[:n])
	if err != nil {
		return 0, err
	}
	if _, err := s.conn.Write(wire); err != nil {
		return 0, err
	}
	return n, nil
}

// responseFor builds the canned response data for one command, or nil
// when the simulator cannot answer it.
func (s *simulator) responseFor(cmd ucsi.Command[ucsi.GlobalPortID]) ucsi.ResponseData {
	switch c := cmd.(type) {
	case ucsi.GetCapability:
		var attrs ucsi.CapabilityAttributes
		attrs.SetBatteryCharging(true)
		attrs.SetUsbPowerDelivery(true)
		attrs.SetUsbTypeCCurrent(true)
		attrs.SetPowerSource(ucsi.NewPowerSource(true, false, true))
		return ucsi.CapabilityData{
			Attributes:      attrs,
			NumConnectors:   uint8(simulateConnectors),
			Features:        0xFF,
			NumAltModes:     1,
			BcdBcVersion:    0x0120,
			BcdPdVersion:    0x0300,
			BcdTypeCVersion: 0x0200,
		}

	case ucsi.LpmCommand[ucsi.GlobalPortID]:
		return s.lpmResponseFor(c)
	}
	return nil
}

func (s *simulator) lpmResponseFor(c ucsi.LpmCommand[ucsi.GlobalPortID]) ucsi.ResponseData {
	attached := byte(c.Port) == 1

	switch op := c.Op.(type) {
	case ucsi.GetConnectorCapability:
		return ucsi.ConnectorCapabilityData{
			OperationMode: 1<<ucsi.OpModeRpOnly | 1<<ucsi.OpModeUsb2 | 1<<ucsi.OpModeUsb3,
			Consumer:      true,
			SwapToUfp:     true,
			SwapToSnk:     true,
		}

	case ucsi.GetConnectorStatus:
		if !attached {
			return ucsi.ConnectorStatusData{}
		}
		return ucsi.ConnectorStatusData{
			Connection: &ucsi.ConnectionStatus{
				PowerOpMode:     ucsi.PowerOpPd,
				PowerDirection:  ucsi.PowerDirectionSink,
				PartnerFlags:    1 << ucsi.PartnerFlagUsb,
				PartnerType:     ucsi.PartnerDfpAttached,
				Rdo:             0x1300B12C,
				BatteryCharging: ucsi.ChargingNominal,
				BcdPdVersion:    0x0300,
				SinkPath:        true,
			},
			PowerReading: &ucsi.PowerReading{
				ScaleMa:          5,
				PeakCurrentMa:    1500,
				AvgCurrentMa:     900,
				ScaleMv:          5,
				VoltageReadingMv: 5000,
			},
		}

	case ucsi.GetPdos:
		if !attached || !op.Partner {
			return ucsi.PdosData{}
		}
		fixed := pd.NewSourceFixedPDO()
		fixed.SetVoltage(5000)
		fixed.SetMaxCurrent(3000)
		fixed.SetDualRoleData(true)
		pps := pd.NewSprPpsPDO()
		pps.SetMinVoltage(3300)
		pps.SetMaxVoltage(11000)
		pps.SetMaxCurrent(3000)
		return ucsi.PdosData{Pdos: [4]uint32{uint32(fixed), uint32(pps)}}

	case ucsi.GetCableProperty:
		return ucsi.CablePropertyData{
			Speed:               ucsi.SpeedGbps,
			SpeedValue:          10,
			CurrentCapabilityMa: 5000,
			PlugEndType:         ucsi.PlugTypeC,
		}

	case ucsi.GetErrorStatus:
		return ucsi.ErrorStatusData{}

	case ucsi.GetAlternateModes:
		if op.Recipient != ucsi.RecipientConnector {
			return ucsi.AlternateModesData{}
		}
		return ucsi.AlternateModesData{
			Modes: [2]ucsi.AltMode{{Svid: 0xFF01, Mid: 0x00000045}},
		}

	case ucsi.GetCamSupported:
		return ucsi.CamSupportedData{Bitmap: 0x01}

	case ucsi.GetCurrentCam:
		return ucsi.CurrentCamData{}
	}
	return nil
}

func (s *simulator) sendCci(cci ucsi.Cci[ucsi.GlobalPortID]) error {
	var image [ucsi.CciLen]byte
	if _, err := cci.Encode(image[:]); err != nil {
		return err
	}
	wire, err := tether.EncodeFrame(tether.FrameCci, image[:])
	if err != nil {
		return err
	}
	fmt.Printf("-> %s\n", ucsi.FormatCci(cci))
	_, err = s.conn.Write(wire)
	return err
}
