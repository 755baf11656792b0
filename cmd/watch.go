// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltaic Labs

package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/voltaiclabs/portscope/pkg/tether"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Display decoded mailbox traffic in human-readable format",
	Long: `Continuously decode and display UCSI mailbox frames as they arrive.

Each command, CCI write and response is shown with a timestamp and its decoded
fields. Responses are decoded in the context of the command that requested
them, mirroring how the policy manager itself reads the mailbox.

Supports both serial and WebSocket connections.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	// Open connection (serial or WebSocket)
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Printf("Portscope - Mailbox Watch\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	decoder := tether.NewDecoder()
	sess := &session{}
	buf := make([]byte, 128)

	for {
		n, err := conn.Read(buf)
		if err != nil {
			// For WebSocket connections, a read error usually means
			// the connection is permanently closed - exit gracefully
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
				fmt.Printf("[ERROR] %v\n", err)
				continue
			}
			if frame != nil {
				fmt.Printf("[%s] %s\n",
					frame.Timestamp().Format("15:04:05.000"), sess.Describe(frame))
			}
		}
	}
}
