// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltaic Labs

package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"
	"github.com/voltaiclabs/portscope/pkg/tether"
)

// traceRecord is one captured frame in a trace file. Trace files are a
// plain CBOR stream of these records.
type traceRecord struct {
	TimeUs  int64  `cbor:"1,keyasint"` // capture time, unix microseconds
	Kind    uint8  `cbor:"2,keyasint"`
	Payload []byte `cbor:"3,keyasint"`
}

var captureQuiet bool

var captureCmd = &cobra.Command{
	Use:   "capture <file>",
	Short: "Capture mailbox traffic to a trace file",
	Long: `Record decoded frames from a live connection into a CBOR trace file.

Each valid frame is stored with a microsecond timestamp so a later replay can
reproduce the original pacing. Frames that fail CRC or framing checks are
counted but not recorded. Stop the capture with Ctrl+C; statistics are printed
on exit.`,
	Args: cobra.ExactArgs(1),
	RunE: runCapture,
}

func init() {
	rootCmd.AddCommand(captureCmd)
	captureCmd.Flags().BoolVarP(&captureQuiet, "quiet", "q", false, "Suppress per-frame output")
}

func runCapture(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	out, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("failed to create trace file: %v", err)
	}
	defer out.Close()

	fmt.Printf("Portscope - Capture\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Trace file: %s\n", args[0])
	fmt.Printf("Press Ctrl+C to stop\n\n")

	enc := cbor.NewEncoder(out)
	decoder := tether.NewDecoder()
	stats := tether.NewStatistics()
	sess := &session{}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	frameCh := make(chan *tether.Frame, 16)
	errCh := make(chan error, 1)

	// Reader goroutine
	go func() {
		buf := make([]byte, 128)
		for {
			n, err := conn.Read(buf)
			if err != nil {
				errCh <- err
				return
			}
			for i := 0; i < n; i++ {
				stats.CountByte()
				frame, decodeErr := decoder.DecodeByte(buf[i])
				if decodeErr != nil {
					stats.Update(nil, decodeErr)
					continue
				}
				if frame != nil {
					stats.Update(frame, nil)
					frameCh <- frame
				}
			}
		}
	}()

	for {
		select {
		case frame := <-frameCh:
			rec := traceRecord{
				TimeUs:  frame.Timestamp().UnixMicro(),
				Kind:    frame.Kind(),
				Payload: frame.Payload(),
			}
			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("failed to write trace record: %v", err)
			}
			if !captureQuiet {
				fmt.Printf("[%s] %s\n",
					frame.Timestamp().Format("15:04:05.000"), sess.Describe(frame))
			}

		case err := <-errCh:
			if err != ErrConnectionClosed {
				log.Printf("Read error: %v", err)
			}
			fmt.Print(stats.String())
			return nil

		case <-sigCh:
			fmt.Println()
			fmt.Print(stats.String())
			return nil
		}
	}
}

// replayDelay computes the pacing delay between two trace records at a
// given speed multiplier.
func replayDelay(prevUs, curUs int64, speed float64) time.Duration {
	if prevUs == 0 || curUs <= prevUs || speed <= 0 {
		return 0
	}
	return time.Duration(float64(curUs-prevUs) / speed * float64(time.Microsecond))
}
