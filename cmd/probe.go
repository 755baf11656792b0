// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltaic Labs

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/voltaiclabs/portscope/pkg/tether"
	"github.com/voltaiclabs/portscope/pkg/ucsi"
)

var probeTimeout int

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Probe the connection with a GET_CAPABILITY command",
	Long: `Send GET_CAPABILITY over the connection and wait for the response.

This command issues the one UCSI command every platform policy manager must
answer, then waits for the CCI completion and capability data. It verifies
end-to-end connectivity and that the far side speaks the mailbox protocol.

Exit codes:
  0 - Capability response received before timeout
  1 - Timeout reached without a response
  2 - Connection error`,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().IntVar(&probeTimeout, "timeout", 10, "Timeout in seconds to wait for the response")
}

func runProbe(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	fmt.Printf("Portscope - Probe\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Timeout: %d seconds\n", probeTimeout)
	fmt.Printf("Sending GET_CAPABILITY...\n\n")

	var image [ucsi.CommandLen]byte
	if _, err := ucsi.EncodeCommand[ucsi.GlobalPortID](ucsi.GetCapability{}, image[:]); err != nil {
		return fmt.Errorf("encode command: %v", err)
	}
	wire, err := tether.EncodeFrame(tether.FrameCommand, image[:])
	if err != nil {
		return fmt.Errorf("frame command: %v", err)
	}
	if _, err := conn.Write(wire); err != nil {
		fmt.Fprintf(os.Stderr, "Write error: %v\n", err)
		os.Exit(2)
	}

	decoder := tether.NewDecoder()
	buf := make([]byte, 128)

	responseCh := make(chan *tether.Frame, 1)
	errCh := make(chan error, 1)

	// Reader goroutine
	go func() {
		invalidBytes := 0
		for {
			n, err := conn.Read(buf)
			if err != nil {
				errCh <- err
				return
			}

			for i := 0; i < n; i++ {
				frame, decodeErr := decoder.DecodeByte(buf[i])
				if decodeErr != nil {
					// Ignore decode errors, just count invalid bytes
					invalidBytes++
					continue
				}
				if frame == nil {
					continue
				}
				if frame.Kind() == tether.FrameCci {
					if cci, err := ucsi.DecodeCci[ucsi.GlobalPortID](frame.Payload()); err == nil {
						fmt.Printf("  %s\n", ucsi.FormatCci(cci))
					}
					continue
				}
				if frame.Kind() == tether.FrameResponse {
					if invalidBytes > 0 {
						fmt.Printf("(skipped %d invalid bytes before sync)\n", invalidBytes)
					}
					responseCh <- frame
					return
				}
			}
		}
	}()

	select {
	case frame := <-responseCh:
		data, err := ucsi.DecodeResponse(ucsi.CmdGetCapability, frame.Payload())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Undecodable capability response: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("SUCCESS: Received capability response\n")
		fmt.Print(ucsi.FormatResponse(data))
		os.Exit(0)

	case err := <-errCh:
		fmt.Fprintf(os.Stderr, "Read error: %v\n", err)
		os.Exit(2)

	case <-time.After(time.Duration(probeTimeout) * time.Second):
		fmt.Fprintf(os.Stderr, "TIMEOUT: No response within %d seconds\n", probeTimeout)
		os.Exit(1)
	}

	return nil
}
