// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltaic Labs

package cmd

import (
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/voltaiclabs/portscope/pkg/tether"
	"github.com/voltaiclabs/portscope/pkg/ucsi"
)

var (
	showAll       bool
	statsInterval int
	useTUI        bool
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Monitor connector status with link statistics",
	Long: `Track per-connector status, link errors and frame statistics.

This command follows the mailbox conversation and maintains a live table of
every connector's last reported status: attachment, power operation mode,
direction, contract and VBUS readings. Link-level CRC and framing errors are
highlighted as they occur.

By default, only errors are displayed in the event log. Use --show-all to log
valid frames too.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().BoolVar(&showAll, "show-all", false, "Show all frames (not just errors)")
	monitorCmd.Flags().IntVar(&statsInterval, "stats-interval", 10, "Statistics update interval (seconds)")
	monitorCmd.Flags().BoolVar(&useTUI, "tui", true, "Use terminal UI (false for text mode)")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	if useTUI {
		return runMonitorTUI(conn, connInfo)
	}
	return runMonitorText(conn, connInfo)
}

// connectorUpdate carries a freshly decoded connector status.
type connectorUpdate struct {
	connector uint8
	status    ucsi.ConnectorStatusData
}

// monitorReader decodes the byte stream and reports frames, errors and
// connector status updates through the given callbacks.
type monitorReader struct {
	decoder *tether.Decoder
	stats   *tether.Statistics
	sess    *session

	// Pending GET_CONNECTOR_STATUS context: which connector the next
	// response frame describes.
	statusPending bool
	statusPort    uint8

	onFrame  func(text string, isError bool)
	onStatus func(connectorUpdate)
}

func newMonitorReader(stats *tether.Statistics, onFrame func(string, bool), onStatus func(connectorUpdate)) *monitorReader {
	return &monitorReader{
		decoder:  tether.NewDecoder(),
		stats:    stats,
		sess:     &session{},
		onFrame:  onFrame,
		onStatus: onStatus,
	}
}

// feed processes one raw byte from the transport.
func (r *monitorReader) feed(b byte) {
	r.stats.CountByte()
	frame, err := r.decoder.DecodeByte(b)
	if err != nil {
		r.stats.Update(nil, err)
		r.onFrame(fmt.Sprintf("LINK ERROR: %v", err), true)
		return
	}
	if frame == nil {
		return
	}
	r.stats.Update(frame, nil)

	// Track which connector the next status response describes.
	if frame.Kind() == tether.FrameCommand {
		r.statusPending = false
		if cmd, err := ucsi.DecodeCommand[ucsi.GlobalPortID](frame.Payload()); err == nil {
			if lpm, ok := cmd.(ucsi.LpmCommand[ucsi.GlobalPortID]); ok {
				if _, isStatus := lpm.Op.(ucsi.GetConnectorStatus); isStatus {
					r.statusPending = true
					r.statusPort = byte(lpm.Port)
				}
			}
		}
	}
	if frame.Kind() == tether.FrameResponse && r.statusPending {
		r.statusPending = false
		if status, err := ucsi.DecodeConnectorStatusData(frame.Payload()); err == nil {
			r.onStatus(connectorUpdate{connector: r.statusPort, status: status})
		}
	}

	r.onFrame(r.sess.Describe(frame), false)
}

// runMonitorText runs the monitor in plain text mode.
func runMonitorText(conn Connection, connInfo string) error {
	fmt.Printf("Portscope - Monitor\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Statistics interval: %d seconds\n", statsInterval)
	if showAll {
		fmt.Printf("Mode: All frames\n\n")
	} else {
		fmt.Printf("Mode: Errors only\n\n")
	}

	reader := newMonitorReader(tether.NewStatistics(),
		func(text string, isError bool) {
			if isError {
				timestamp := time.Now().Format("15:04:05.000")
				fmt.Printf("[%s] \033[1;31m%s\033[0m\n", timestamp, text)
			} else if showAll {
				fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05.000"), text)
			}
		},
		func(u connectorUpdate) {
			fmt.Printf("  connector %d: %s\n", u.connector, describeConnector(u.status))
		},
	)

	lastStats := time.Now()
	buf := make([]byte, 128)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			if err == ErrConnectionClosed {
				fmt.Print(reader.stats.String())
				return nil
			}
			log.Printf("Read error: %v", err)
			continue
		}
		for i := 0; i < n; i++ {
			reader.feed(buf[i])
		}
		if time.Since(lastStats) >= time.Duration(statsInterval)*time.Second {
			fmt.Print(reader.stats.String())
			lastStats = time.Now()
		}
	}
}

// describeConnector renders one connector's status on one line.
func describeConnector(d ucsi.ConnectorStatusData) string {
	c := d.Connection
	if c == nil {
		return "not connected"
	}
	s := fmt.Sprintf("connected op_mode=%d", c.PowerOpMode)
	if c.PowerDirection == ucsi.PowerDirectionSink {
		s += " sink"
	} else {
		s += " source"
	}
	if c.Rdo != 0 {
		s += fmt.Sprintf(" rdo=0x%08X", c.Rdo)
	}
	if r := d.PowerReading; r != nil {
		s += fmt.Sprintf(" vbus=%dmV avg=%dmA", r.VoltageReadingMv, r.AvgCurrentMa)
	}
	return s
}

// runMonitorTUI runs the monitor in TUI mode.
func runMonitorTUI(conn Connection, connInfo string) error {
	stats := tether.NewStatistics()
	m := initialMonitorModel(connInfo, showAll, stats)
	p := tea.NewProgram(m)

	reader := newMonitorReader(stats,
		func(text string, isError bool) {
			p.Send(frameMsg{text: text, isError: isError})
		},
		func(u connectorUpdate) {
			p.Send(u)
		},
	)

	// Transport reader goroutine
	go func() {
		buf := make([]byte, 128)
		for {
			n, err := conn.Read(buf)
			if err != nil {
				if err != ErrConnectionClosed {
					log.Printf("Read error: %v", err)
				}
				return
			}
			for i := 0; i < n; i++ {
				reader.feed(buf[i])
			}
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}
	return nil
}
