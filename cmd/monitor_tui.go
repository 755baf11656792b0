// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltaic Labs

package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/voltaiclabs/portscope/pkg/tether"
	"github.com/voltaiclabs/portscope/pkg/ucsi"
)

// Event log entry
type eventLogEntry struct {
	timestamp time.Time
	message   string
	isError   bool
}

// Latest status per connector
type connectorState struct {
	timestamp time.Time
	status    ucsi.ConnectorStatusData
}

// TUI model
type monitorModel struct {
	connInfo      string
	showAll       bool
	stats         *tether.Statistics
	eventLog      []eventLogEntry
	maxLogEntries int
	connectors    map[uint8]connectorState
	connTable     table.Model
	width         int
	height        int
	quitting      bool
}

// Messages
type tickMsg time.Time
type frameMsg struct {
	text    string
	isError bool
}

func initialMonitorModel(connInfo string, showAll bool, stats *tether.Statistics) monitorModel {
	columns := []table.Column{
		{Title: "Conn", Width: 4},
		{Title: "State", Width: 10},
		{Title: "Mode", Width: 12},
		{Title: "Role", Width: 6},
		{Title: "RDO", Width: 10},
		{Title: "VBUS", Width: 8},
		{Title: "Current", Width: 8},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(4),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	ts.Selected = lipgloss.NewStyle()
	t.SetStyles(ts)

	return monitorModel{
		connInfo:      connInfo,
		showAll:       showAll,
		stats:         stats,
		eventLog:      make([]eventLogEntry, 0),
		maxLogEntries: 100,
		connectors:    make(map[uint8]connectorState),
		connTable:     t,
		width:         80,
		height:        24,
	}
}

func (m monitorModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		tea.EnterAltScreen,
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		// Update statistics rates
		m.stats.CalculateRates()
		return m, tickCmd()

	case frameMsg:
		if msg.isError {
			m.addLogEntry(msg.text, true)
		} else if m.showAll {
			m.addLogEntry(msg.text, false)
		}

	case connectorUpdate:
		m.connectors[msg.connector] = connectorState{
			timestamp: time.Now(),
			status:    msg.status,
		}
		m.refreshTable()
	}

	return m, nil
}

func (m *monitorModel) addLogEntry(message string, isError bool) {
	entry := eventLogEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	}
	m.eventLog = append(m.eventLog, entry)

	// Keep only last N entries
	if len(m.eventLog) > m.maxLogEntries {
		m.eventLog = m.eventLog[len(m.eventLog)-m.maxLogEntries:]
	}
}

func opModeName(mode ucsi.PowerOperationMode) string {
	switch mode {
	case ucsi.PowerOpUsbDefault:
		return "USB default"
	case ucsi.PowerOpBc:
		return "BC"
	case ucsi.PowerOpPd:
		return "PD"
	case ucsi.PowerOpTypeC1_5A:
		return "Type-C 1.5A"
	case ucsi.PowerOpTypeC3A:
		return "Type-C 3A"
	case ucsi.PowerOpTypeC5A:
		return "Type-C 5A"
	}
	return fmt.Sprintf("mode %d", mode)
}

// refreshTable rebuilds the connector table rows from the latest
// per-connector status, lowest connector number first.
func (m *monitorModel) refreshTable() {
	nums := make([]int, 0, len(m.connectors))
	for n := range m.connectors {
		nums = append(nums, int(n))
	}
	sort.Ints(nums)

	rows := make([]table.Row, 0, len(nums))
	for _, n := range nums {
		st := m.connectors[uint8(n)].status
		row := table.Row{fmt.Sprintf("%d", n), "detached", "-", "-", "-", "-", "-"}
		if c := st.Connection; c != nil {
			row[1] = "attached"
			row[2] = opModeName(c.PowerOpMode)
			if c.PowerDirection == ucsi.PowerDirectionSink {
				row[3] = "sink"
			} else {
				row[3] = "source"
			}
			if c.Rdo != 0 {
				row[4] = fmt.Sprintf("0x%08X", c.Rdo)
			}
		}
		if r := st.PowerReading; r != nil {
			row[5] = fmt.Sprintf("%d mV", r.VoltageReadingMv)
			row[6] = fmt.Sprintf("%d mA", r.AvgCurrentMa)
		}
		rows = append(rows, row)
	}

	m.connTable.SetRows(rows)
	height := len(rows)
	if height < 1 {
		height = 1
	}
	m.connTable.SetHeight(height)
}

func (m monitorModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	// Styles
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	statsLabelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	statsValueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	// Header
	var s strings.Builder
	s.WriteString(titleStyle.Render("PORTSCOPE - CONNECTOR MONITOR"))
	s.WriteString("\n")
	s.WriteString(headerStyle.Render(fmt.Sprintf("Connection: %s | Mode: %s | Press 'q' to quit",
		m.connInfo, func() string {
			if m.showAll {
				return "All frames"
			}
			return "Errors only"
		}())))
	s.WriteString("\n\n")

	// Statistics
	m.stats.CalculateRates()
	var validPercent, errorPercent float64
	if m.stats.TotalFrames > 0 {
		validPercent = float64(m.stats.ValidFrames) * 100.0 / float64(m.stats.TotalFrames)
		totalErrors := m.stats.CRCErrors + m.stats.FramingErrors
		errorPercent = float64(totalErrors) * 100.0 / float64(m.stats.TotalFrames)
	}

	statsContent := strings.Builder{}
	statsContent.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		statsLabelStyle.Render("Total:"), statsValueStyle.Render(fmt.Sprintf("%d", m.stats.TotalFrames)),
		statsLabelStyle.Render("Valid:"), statsValueStyle.Render(fmt.Sprintf("%d (%.1f%%)", m.stats.ValidFrames, validPercent)),
		statsLabelStyle.Render("Errors:"), errorStyle.Render(fmt.Sprintf("%d (%.1f%%)", m.stats.CRCErrors+m.stats.FramingErrors, errorPercent)),
	))

	statsContent.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		statsLabelStyle.Render("Commands:"), statsValueStyle.Render(fmt.Sprintf("%d", m.stats.CommandFrames)),
		statsLabelStyle.Render("CCI:"), statsValueStyle.Render(fmt.Sprintf("%d", m.stats.CciFrames)),
		statsLabelStyle.Render("Responses:"), statsValueStyle.Render(fmt.Sprintf("%d", m.stats.ResponseFrames)),
	))

	if m.stats.CRCErrors > 0 || m.stats.FramingErrors > 0 {
		statsContent.WriteString(fmt.Sprintf("%s %s   %s %s\n",
			statsLabelStyle.Render("CRC Errors:"), errorStyle.Render(fmt.Sprintf("%d", m.stats.CRCErrors)),
			statsLabelStyle.Render("Framing Errors:"), errorStyle.Render(fmt.Sprintf("%d", m.stats.FramingErrors)),
		))
	}

	statsContent.WriteString(fmt.Sprintf("%s %s   %s %s",
		statsLabelStyle.Render("Frame Rate:"), statsValueStyle.Render(fmt.Sprintf("%.1f frames/s", m.stats.FrameRate)),
		statsLabelStyle.Render("Error Rate:"), func() string {
			if m.stats.ErrorRate > 0 {
				return errorStyle.Render(fmt.Sprintf("%.1f err/s", m.stats.ErrorRate))
			}
			return statsValueStyle.Render(fmt.Sprintf("%.1f err/s", m.stats.ErrorRate))
		}(),
	))

	s.WriteString(boxStyle.Render(statsContent.String()))
	s.WriteString("\n\n")

	// Connector table (only shown once status traffic is seen)
	if len(m.connectors) > 0 {
		s.WriteString(statsLabelStyle.Render("Connectors:"))
		s.WriteString("\n")
		s.WriteString(boxStyle.Render(m.connTable.View()))
		s.WriteString("\n\n")
	} else {
		s.WriteString(warningStyle.Render("Waiting for connector status traffic..."))
		s.WriteString("\n\n")
	}

	// Event log
	s.WriteString(statsLabelStyle.Render("Recent Events:"))
	s.WriteString("\n")

	// Calculate how many log entries we can show
	logHeight := m.height - 18 - len(m.connectors)
	if logHeight < 5 {
		logHeight = 5
	}

	logContent := strings.Builder{}
	startIdx := len(m.eventLog) - logHeight
	if startIdx < 0 {
		startIdx = 0
	}

	if len(m.eventLog) == 0 {
		logContent.WriteString(headerStyle.Render("  (no events yet)"))
	} else {
		for i := startIdx; i < len(m.eventLog); i++ {
			entry := m.eventLog[i]
			timestamp := entry.timestamp.Format("01/02/06 15:04:05.000")
			if entry.isError {
				logContent.WriteString(fmt.Sprintf("%s %s\n",
					headerStyle.Render(timestamp),
					errorStyle.Render("✗ "+entry.message),
				))
			} else {
				logContent.WriteString(fmt.Sprintf("%s %s\n",
					headerStyle.Render(timestamp),
					warningStyle.Render("ℹ "+entry.message),
				))
			}
		}
	}

	s.WriteString(boxStyle.Width(m.width - 4).Render(logContent.String()))

	return s.String()
}
