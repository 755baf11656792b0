// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltaic Labs

package cmd

import (
	"fmt"
	"strings"

	"github.com/voltaiclabs/portscope/pkg/pd"
	"github.com/voltaiclabs/portscope/pkg/tether"
	"github.com/voltaiclabs/portscope/pkg/ucsi"
)

// session tracks the mailbox conversation so response frames can be
// decoded. A response mailbox carries no opcode of its own; its layout
// is selected by the most recent command that expects data.
type session struct {
	pending     ucsi.CommandType
	havePending bool
}

// Describe renders one tether frame as display text, updating the
// command context as a side effect.
func (s *session) Describe(f *tether.Frame) string {
	switch f.Kind() {
	case tether.FrameCommand:
		cmd, err := ucsi.DecodeCommand[ucsi.GlobalPortID](f.Payload())
		if err != nil {
			s.havePending = false
			return fmt.Sprintf("COMMAND undecodable: %v", err)
		}
		ct := cmd.CommandType()
		if ct.HasResponse() {
			s.pending = ct
			s.havePending = true
		} else {
			s.havePending = false
		}
		return fmt.Sprintf("CMD  %s", ucsi.FormatCommand[ucsi.GlobalPortID](cmd))

	case tether.FrameCci:
		cci, err := ucsi.DecodeCci[ucsi.GlobalPortID](f.Payload())
		if err != nil {
			return fmt.Sprintf("CCI undecodable: %v", err)
		}
		return ucsi.FormatCci(cci)

	case tether.FrameResponse:
		if !s.havePending {
			return fmt.Sprintf("RSP  (no command context) % X", f.Payload())
		}
		ct := s.pending
		s.havePending = false
		data, err := ucsi.DecodeResponse(ct, f.Payload())
		if err != nil {
			return fmt.Sprintf("RSP  %s undecodable: %v", ucsi.CommandTypeName(ct), err)
		}
		out := strings.TrimRight(ucsi.FormatResponse(data), "\n")
		if pdos, ok := data.(ucsi.PdosData); ok {
			out += describePdos(pdos)
		}
		return out

	default:
		return fmt.Sprintf("%s % X", tether.KindName(f.Kind()), f.Payload())
	}
}

// describePdos annotates raw PDO words with their power data object
// kind and voltage/current range.
func describePdos(data ucsi.PdosData) string {
	var sb strings.Builder
	for i, raw := range data.Valid() {
		obj := pd.PDO(raw)
		switch obj.Kind() {
		case pd.KindFixed:
			f := pd.SourceFixedPDO(raw)
			fmt.Fprintf(&sb, "\n    pdo[%d]: fixed %dmV %dmA", i, f.Voltage(), f.MaxCurrent())
		case pd.KindBattery:
			b := pd.SourceBatteryPDO(raw)
			fmt.Fprintf(&sb, "\n    pdo[%d]: battery %d-%dmV %dmW", i, b.MinVoltage(), b.MaxVoltage(), b.MaxPower())
		case pd.KindVariable:
			v := pd.SourceVariablePDO(raw)
			fmt.Fprintf(&sb, "\n    pdo[%d]: variable %d-%dmV %dmA", i, v.MinVoltage(), v.MaxVoltage(), v.MaxCurrent())
		case pd.KindAugmented:
			kind, err := obj.APDOKind()
			if err != nil {
				fmt.Fprintf(&sb, "\n    pdo[%d]: invalid APDO", i)
				continue
			}
			switch kind {
			case pd.APDOSprPps:
				p := pd.SprPpsPDO(raw)
				fmt.Fprintf(&sb, "\n    pdo[%d]: pps %d-%dmV %dmA", i, p.MinVoltage(), p.MaxVoltage(), p.MaxCurrent())
			case pd.APDOEprAvs:
				a := pd.EprAvsPDO(raw)
				fmt.Fprintf(&sb, "\n    pdo[%d]: epr-avs %d-%dmV %dmW", i, a.MinVoltage(), a.MaxVoltage(), a.Pdp())
			case pd.APDOSprAvs:
				a := pd.SprAvsPDO(raw)
				fmt.Fprintf(&sb, "\n    pdo[%d]: spr-avs %d-%dmV %dmA", i, a.MinVoltage(), a.MaxVoltage(), a.MaxCurrent15V())
			}
		}
	}
	return sb.String()
}
