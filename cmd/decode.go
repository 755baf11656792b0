// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltaic Labs

package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/voltaiclabs/portscope/pkg/ucsi"
)

var decodeResponseTo string

var decodeCmd = &cobra.Command{
	Use:   "decode <command|cci|response> <hex bytes>",
	Short: "Decode a mailbox image from hex",
	Long: `Decode a single command, CCI or response mailbox image given as hex.

Hex bytes may be separated by spaces or colons and may carry 0x prefixes:

  portscope decode command 06 00 00 00 00 00 00 00
  portscope decode cci 0x000000A0
  portscope decode response --to GET_CAPABILITY 4300000002ff00000300200100030002

Response mailboxes carry no opcode, so --to names the command the response
answers (by name or opcode byte). Commands and CCI images decode standalone.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringVar(&decodeResponseTo, "to", "", "Command the response answers (name or opcode byte)")
}

func runDecode(cmd *cobra.Command, args []string) error {
	data, err := parseHexBytes(args[1:])
	if err != nil {
		return err
	}

	switch strings.ToLower(args[0]) {
	case "command":
		c, err := ucsi.DecodeCommand[ucsi.GlobalPortID](data)
		if err != nil {
			return fmt.Errorf("decode command: %v", err)
		}
		fmt.Println(ucsi.FormatCommand[ucsi.GlobalPortID](c))
		return nil

	case "cci":
		c, err := ucsi.DecodeCci[ucsi.GlobalPortID](data)
		if err != nil {
			return fmt.Errorf("decode CCI: %v", err)
		}
		fmt.Println(ucsi.FormatCci(c))
		return nil

	case "response":
		if decodeResponseTo == "" {
			return fmt.Errorf("response decoding requires --to")
		}
		ct, err := lookupCommandType(decodeResponseTo)
		if err != nil {
			return err
		}
		d, err := ucsi.DecodeResponse(ct, data)
		if err != nil {
			return fmt.Errorf("decode %s response: %v", ucsi.CommandTypeName(ct), err)
		}
		fmt.Print(ucsi.FormatResponse(d))
		return nil

	default:
		return fmt.Errorf("unknown image type %q (use command, cci or response)", args[0])
	}
}

// parseHexBytes joins the arguments and parses them as hex, tolerating
// 0x prefixes, spaces and colon separators.
func parseHexBytes(args []string) ([]byte, error) {
	s := strings.Join(args, "")
	s = strings.ReplaceAll(s, ":", "")
	s = strings.ReplaceAll(s, "0x", "")
	s = strings.ReplaceAll(s, "0X", "")
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %v", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no hex bytes given")
	}
	return data, nil
}

// lookupCommandType resolves a command name like GET_CAPABILITY or an
// opcode byte like 0x06.
func lookupCommandType(s string) (ucsi.CommandType, error) {
	if v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 8); err == nil {
		return ucsi.CommandTypeFromByte(byte(v))
	}
	name := strings.ToUpper(s)
	for b := 1; b < 0x30; b++ {
		if ct, err := ucsi.CommandTypeFromByte(byte(b)); err == nil && ucsi.CommandTypeName(ct) == name {
			return ct, nil
		}
	}
	return 0, fmt.Errorf("unknown command %q", s)
}
