// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltaic Labs

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"
	"github.com/voltaiclabs/portscope/pkg/tether"
)

var (
	replaySpeed  float64
	replayAsFast bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Replay a captured trace file",
	Long: `Decode and display the frames of a CBOR trace file recorded by capture.

By default frames are paced by their recorded timestamps; --speed scales the
pacing and --fast disables it entirely. Responses are decoded in the context
of the commands in the trace, exactly as during live watching.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Replay speed multiplier")
	replayCmd.Flags().BoolVar(&replayAsFast, "fast", false, "Replay without pacing")
}

func runReplay(cmd *cobra.Command, args []string) error {
	in, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open trace file: %v", err)
	}
	defer in.Close()

	dec := cbor.NewDecoder(in)
	sess := &session{}
	var prevUs int64
	var count int

	for {
		var rec traceRecord
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("corrupt trace record after %d frames: %v", count, err)
		}

		frame, err := tether.NewFrame(rec.Kind, rec.Payload)
		if err != nil {
			return fmt.Errorf("invalid frame in trace after %d frames: %v", count, err)
		}

		if !replayAsFast {
			time.Sleep(replayDelay(prevUs, rec.TimeUs, replaySpeed))
		}
		prevUs = rec.TimeUs

		ts := time.UnixMicro(rec.TimeUs)
		fmt.Printf("[%s] %s\n", ts.Format("15:04:05.000"), sess.Describe(frame))
		count++
	}

	fmt.Printf("\nReplayed %d frames\n", count)
	return nil
}
