// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltaic Labs

package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/voltaiclabs/portscope/pkg/tether"
	"github.com/voltaiclabs/portscope/pkg/ucsi"
)

//////////////////////////////////////////////////////////////
// Constants
//////////////////////////////////////////////////////////////

const (
	maxConnectorNumber = 0x7F
)

// Focus states
const (
	focusCommandList = iota
	focusConnectorInput
	focusSendButton
)

//////////////////////////////////////////////////////////////
// Types
//////////////////////////////////////////////////////////////

// paletteEntry is one sendable command in the palette.
type paletteEntry struct {
	name           string
	desc           string
	needsConnector bool
	build          func(connector ucsi.GlobalPortID) ucsi.Command[ucsi.GlobalPortID]
}

// Implement list.Item interface
func (e paletteEntry) Title() string       { return e.name }
func (e paletteEntry) Description() string { return e.desc }
func (e paletteEntry) FilterValue() string { return e.name }

// consolePalette is the command set offered by the console.
var consolePalette = []paletteEntry{
	{
		name: "GET_CAPABILITY",
		desc: "PPM capability record",
		build: func(_ ucsi.GlobalPortID) ucsi.Command[ucsi.GlobalPortID] {
			return ucsi.GetCapability{}
		},
	},
	{
		name:           "GET_CONNECTOR_STATUS",
		desc:           "connection, contract and VBUS readings",
		needsConnector: true,
		build: func(c ucsi.GlobalPortID) ucsi.Command[ucsi.GlobalPortID] {
			return ucsi.LpmCommand[ucsi.GlobalPortID]{Port: c, Op: ucsi.GetConnectorStatus{}}
		},
	},
	{
		name:           "GET_CONNECTOR_CAPABILITY",
		desc:           "connector roles and swap support",
		needsConnector: true,
		build: func(c ucsi.GlobalPortID) ucsi.Command[ucsi.GlobalPortID] {
			return ucsi.LpmCommand[ucsi.GlobalPortID]{Port: c, Op: ucsi.GetConnectorCapability{}}
		},
	},
	{
		name:           "GET_CABLE_PROPERTY",
		desc:           "attached cable speed and current rating",
		needsConnector: true,
		build: func(c ucsi.GlobalPortID) ucsi.Command[ucsi.GlobalPortID] {
			return ucsi.LpmCommand[ucsi.GlobalPortID]{Port: c, Op: ucsi.GetCableProperty{}}
		},
	},
	{
		name:           "GET_ERROR_STATUS",
		desc:           "details for the last ERROR indication",
		needsConnector: true,
		build: func(c ucsi.GlobalPortID) ucsi.Command[ucsi.GlobalPortID] {
			return ucsi.LpmCommand[ucsi.GlobalPortID]{Port: c, Op: ucsi.GetErrorStatus{}}
		},
	},
	{
		name:           "GET_PDOS",
		desc:           "partner source capabilities",
		needsConnector: true,
		build: func(c ucsi.GlobalPortID) ucsi.Command[ucsi.GlobalPortID] {
			return ucsi.LpmCommand[ucsi.GlobalPortID]{Port: c, Op: ucsi.GetPdos{
				Partner:    true,
				Count:      ucsi.MaxPdos,
				Source:     true,
				Capability: ucsi.CapabilityAdvertised,
			}}
		},
	},
	{
		name:           "GET_ALTERNATE_MODES",
		desc:           "first alternate mode for the connector",
		needsConnector: true,
		build: func(c ucsi.GlobalPortID) ucsi.Command[ucsi.GlobalPortID] {
			return ucsi.LpmCommand[ucsi.GlobalPortID]{Port: c, Op: ucsi.GetAlternateModes{
				Recipient: ucsi.RecipientConnector,
				NumModes:  1,
			}}
		},
	},
	{
		name:           "GET_CAM_SUPPORTED",
		desc:           "supported alternate mode bitmap",
		needsConnector: true,
		build: func(c ucsi.GlobalPortID) ucsi.Command[ucsi.GlobalPortID] {
			return ucsi.LpmCommand[ucsi.GlobalPortID]{Port: c, Op: ucsi.GetCamSupported{}}
		},
	},
	{
		name:           "GET_CURRENT_CAM",
		desc:           "currently entered alternate mode",
		needsConnector: true,
		build: func(c ucsi.GlobalPortID) ucsi.Command[ucsi.GlobalPortID] {
			return ucsi.LpmCommand[ucsi.GlobalPortID]{Port: c, Op: ucsi.GetCurrentCam{}}
		},
	},
	{
		name: "SET_NOTIFICATION_ENABLE",
		desc: "enable the usual notification set",
		build: func(_ ucsi.GlobalPortID) ucsi.Command[ucsi.GlobalPortID] {
			var enable ucsi.NotificationEnable
			enable = enable.
				WithBit(ucsi.NotifyCmdComplete, true).
				WithBit(ucsi.NotifyConnectChange, true).
				WithBit(ucsi.NotifyConnectorPartnerChange, true).
				WithBit(ucsi.NotifyPowerOpModeChange, true).
				WithBit(ucsi.NotifyError, true)
			return ucsi.SetNotificationEnable{Enable: enable}
		},
	},
	{
		name: "ACK_CC_CI",
		desc: "acknowledge command complete",
		build: func(_ ucsi.GlobalPortID) ucsi.Command[ucsi.GlobalPortID] {
			return ucsi.AckCcCi{Ack: ucsi.NewAck(false, true)}
		},
	},
	{
		name:           "CONNECTOR_RESET",
		desc:           "data reset of one connector",
		needsConnector: true,
		build: func(c ucsi.GlobalPortID) ucsi.Command[ucsi.GlobalPortID] {
			return ucsi.LpmCommand[ucsi.GlobalPortID]{Port: c, Op: ucsi.ConnectorReset{}}
		},
	},
	{
		name: "CANCEL",
		desc: "abort the command in flight",
		build: func(_ ucsi.GlobalPortID) ucsi.Command[ucsi.GlobalPortID] {
			return ucsi.Cancel{}
		},
	},
	{
		name: "PPM_RESET",
		desc: "reset the PPM to idle",
		build: func(_ ucsi.GlobalPortID) ucsi.Command[ucsi.GlobalPortID] {
			return ucsi.PpmReset{}
		},
	},
}

// consoleModel is the Bubble Tea model for the console TUI
type consoleModel struct {
	// Connection manager (for sending commands and reconnection)
	connMgr  *connectionManager
	connInfo string

	// Command palette
	cmdList list.Model

	// Monitoring
	stats         *tether.Statistics
	eventLog      []eventLogEntry
	maxLogEntries int

	// Connector addressing
	connInput    textinput.Model
	focusedField int

	// UI state
	width          int
	height         int
	synchronized   bool
	quitting       bool
	connectionLost bool
}

//////////////////////////////////////////////////////////////
// Messages
//////////////////////////////////////////////////////////////

type consoleTickMsg time.Time

type consoleDataMsg struct {
	text      string
	isError   bool
	frame     *tether.Frame
	decodeErr error
}

type consoleSyncMsg struct {
	invalidBytes int
}

type consoleBatchMsg struct {
	messages []consoleDataMsg
	syncMsg  *consoleSyncMsg
}

type connectionLostMsg struct{}

type reconnectedMsg struct {
	connInfo string
}

//////////////////////////////////////////////////////////////
// Model Initialization
//////////////////////////////////////////////////////////////

func initialConsoleModel(connMgr *connectionManager, connInfo string) consoleModel {
	// Initialize text input for the connector number
	ti := textinput.New()
	ti.Placeholder = "1"
	ti.CharLimit = 3
	ti.Width = 5

	// Initialize command palette
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	delegate.SetHeight(2)
	items := make([]list.Item, len(consolePalette))
	for i, e := range consolePalette {
		items[i] = e
	}
	cmdList := list.New(items, delegate, 34, 12)
	cmdList.Title = "Commands"
	cmdList.SetShowStatusBar(false)
	cmdList.SetShowHelp(false)
	cmdList.SetFilteringEnabled(false)

	return consoleModel{
		connMgr:       connMgr,
		connInfo:      connInfo,
		cmdList:       cmdList,
		stats:         tether.NewStatistics(),
		eventLog:      make([]eventLogEntry, 0),
		maxLogEntries: 100,
		connInput:     ti,
		focusedField:  focusCommandList,
		width:         80,
		height:        24,
	}
}

//////////////////////////////////////////////////////////////
// Bubble Tea Interface
//////////////////////////////////////////////////////////////

func (m consoleModel) Init() tea.Cmd {
	return consoleTickCmd()
}

func consoleTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return consoleTickMsg(t)
	})
}

func (m consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateListSize()

	case consoleTickMsg:
		m.stats.CalculateRates()
		return m, consoleTickCmd()

	case consoleSyncMsg:
		m.synchronized = true
		if msg.invalidBytes > 0 {
			m.addLogEntry(fmt.Sprintf("Synchronized after skipping %d invalid bytes", msg.invalidBytes), false)
		} else {
			m.addLogEntry("Synchronized", false)
		}

	case consoleBatchMsg:
		if msg.syncMsg != nil {
			m.synchronized = true
			if msg.syncMsg.invalidBytes > 0 {
				m.addLogEntry(fmt.Sprintf("Synchronized after skipping %d invalid bytes", msg.syncMsg.invalidBytes), false)
			} else {
				m.addLogEntry("Synchronized", false)
			}
		}
		for _, data := range msg.messages {
			m.processConsoleData(data)
		}

	case connectionLostMsg:
		m.connectionLost = true
		m.addLogEntry("Connection lost - reconnecting...", true)

	case reconnectedMsg:
		m.connectionLost = false
		m.connInfo = msg.connInfo
		m.addLogEntry("Reconnected", false)
	}

	// Update child components
	var cmd tea.Cmd
	if m.focusedField == focusConnectorInput {
		m.connInput, cmd = m.connInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.focusedField == focusCommandList {
		m.cmdList, cmd = m.cmdList.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *consoleModel) processConsoleData(data consoleDataMsg) {
	if data.decodeErr != nil {
		m.stats.Update(nil, data.decodeErr)
		m.addLogEntry(data.text, true)
		return
	}
	if data.frame != nil {
		m.stats.Update(data.frame, nil)
		m.addLogEntry(data.text, false)
	}
}

func (m *consoleModel) updateListSize() {
	height := m.height - 14
	if height < 6 {
		height = 6
	}
	m.cmdList.SetSize(34, height)
}

func (m *consoleModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.focusedField == focusConnectorInput && msg.String() == "q" {
			break // "q" is a valid character while typing
		}
		m.quitting = true
		return m, tea.Quit

	case "tab":
		return m.cycleFocus(1), nil

	case "shift+tab":
		return m.cycleFocus(-1), nil

	case "enter":
		return m.handleEnter()

	case "up", "k", "down", "j":
		if m.focusedField == focusCommandList {
			m.cmdList, _ = m.cmdList.Update(msg)
			return m, nil
		}
	}

	// Pass through to focused component
	if m.focusedField == focusConnectorInput {
		var cmd tea.Cmd
		m.connInput, cmd = m.connInput.Update(msg)
		return m, cmd
	}
	if m.focusedField == focusCommandList {
		var cmd tea.Cmd
		m.cmdList, cmd = m.cmdList.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *consoleModel) cycleFocus(delta int) *consoleModel {
	maxFocus := focusSendButton
	m.focusedField = (m.focusedField + delta + maxFocus + 1) % (maxFocus + 1)

	// Skip the connector field for commands that don't take one
	if m.focusedField == focusConnectorInput && !m.selectedEntry().needsConnector {
		m.focusedField = (m.focusedField + delta + maxFocus + 1) % (maxFocus + 1)
	}

	if m.focusedField == focusConnectorInput {
		m.connInput.Focus()
	} else {
		m.connInput.Blur()
	}

	return m
}

func (m consoleModel) selectedEntry() paletteEntry {
	if item, ok := m.cmdList.SelectedItem().(paletteEntry); ok {
		return item
	}
	return consolePalette[0]
}

func (m *consoleModel) handleEnter() (tea.Model, tea.Cmd) {
	// Don't allow sends while the connection is down
	if m.connectionLost {
		m.addLogEntry("Cannot send command: connection lost", true)
		return m, nil
	}

	return m.sendSelectedCommand()
}

// connectorNumber parses the connector field, defaulting to the
// placeholder value when empty.
func (m consoleModel) connectorNumber() (ucsi.GlobalPortID, error) {
	val := m.connInput.Value()
	if val == "" {
		val = m.connInput.Placeholder
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 1 || n > maxConnectorNumber {
		return 0, fmt.Errorf("invalid connector number %q", val)
	}
	return ucsi.GlobalPortID(n), nil
}

func (m *consoleModel) sendSelectedCommand() (tea.Model, tea.Cmd) {
	entry := m.selectedEntry()

	var connector ucsi.GlobalPortID
	if entry.needsConnector {
		var err error
		connector, err = m.connectorNumber()
		if err != nil {
			m.addLogEntry(err.Error(), true)
			return m, nil
		}
	}

	cmd := entry.build(connector)
	var image [ucsi.CommandLen]byte
	if _, err := ucsi.EncodeCommand[ucsi.GlobalPortID](cmd, image[:]); err != nil {
		m.addLogEntry(fmt.Sprintf("encode failed: %v", err), true)
		return m, nil
	}

	conn := m.connMgr.getConn()
	if conn == nil {
		m.addLogEntry("Cannot send command: no connection", true)
		return m, nil
	}
	wire, err := tether.EncodeFrame(tether.FrameCommand, image[:])
	if err != nil {
		m.addLogEntry(fmt.Sprintf("frame command: %v", err), true)
		return m, nil
	}
	if _, err := conn.Write(wire); err != nil {
		m.addLogEntry(fmt.Sprintf("write failed: %v", err), true)
		return m, nil
	}

	m.addLogEntry("-> "+ucsi.FormatCommand[ucsi.GlobalPortID](cmd), false)
	return m, nil
}

func (m *consoleModel) addLogEntry(message string, isError bool) {
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

//////////////////////////////////////////////////////////////
// View
//////////////////////////////////////////////////////////////

func (m consoleModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	var s strings.Builder

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

	focusedBoxStyle := boxStyle.
		BorderForeground(lipgloss.Color("12"))

	buttonStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("12")).
		Padding(0, 2)

	focusedButtonStyle := buttonStyle.
		Background(lipgloss.Color("10"))

	// Header
	s.WriteString(titleStyle.Render("PORTSCOPE CONSOLE"))
	s.WriteString(" ")
	connStatus := m.connInfo
	if m.connectionLost {
		connStatus = warningStyle.Render("RECONNECTING...")
	}
	s.WriteString(headerStyle.Render(fmt.Sprintf("| %s | q=quit Tab=switch Enter=send", connStatus)))
	s.WriteString("\n\n")

	// Layout: left panel (palette) | right panel (send controls)
	leftWidth := 34
	rightWidth := m.width - leftWidth - 6
	if rightWidth < 20 {
		rightWidth = 20
	}

	listStyle := boxStyle.Width(leftWidth)
	if m.focusedField == focusCommandList {
		listStyle = focusedBoxStyle.Width(leftWidth)
	}
	palettePanel := listStyle.Render(m.cmdList.View())

	sendContent := m.renderSendPanel(statsLabelStyle, statsValueStyle, headerStyle, buttonStyle, focusedButtonStyle)
	sendPanel := boxStyle.Width(rightWidth).Render(sendContent)

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, palettePanel, " ", sendPanel))
	s.WriteString("\n\n")

	// Statistics bar
	s.WriteString(m.renderStatisticsBar(statsLabelStyle, statsValueStyle, errorStyle, boxStyle))
	s.WriteString("\n\n")

	// Event log
	s.WriteString(m.renderEventLog(statsLabelStyle, headerStyle, errorStyle, warningStyle, boxStyle))

	return s.String()
}

func (m consoleModel) renderSendPanel(statsLabelStyle, statsValueStyle, headerStyle, buttonStyle, focusedButtonStyle lipgloss.Style) string {
	var s strings.Builder

	entry := m.selectedEntry()
	s.WriteString(fmt.Sprintf("%s %s\n", statsLabelStyle.Render("Selected:"), statsValueStyle.Render(entry.name)))
	s.WriteString(headerStyle.Render(entry.desc))
	s.WriteString("\n\n")

	if entry.needsConnector {
		s.WriteString(statsLabelStyle.Render("Connector: "))
		if m.focusedField == focusConnectorInput {
			s.WriteString(m.connInput.View())
		} else {
			val := m.connInput.Value()
			if val == "" {
				val = m.connInput.Placeholder
			}
			s.WriteString(fmt.Sprintf("[%s]", val))
		}
		s.WriteString("\n\n")
	}

	btnText := "[ Send ]"
	if m.focusedField == focusSendButton {
		s.WriteString(focusedButtonStyle.Render(btnText))
	} else {
		s.WriteString(buttonStyle.Render(btnText))
	}

	return s.String()
}

func (m consoleModel) renderStatisticsBar(statsLabelStyle, statsValueStyle, errorStyle, boxStyle lipgloss.Style) string {
	m.stats.CalculateRates()
	var validPercent, errorPercent float64
	if m.stats.TotalFrames > 0 {
		validPercent = float64(m.stats.ValidFrames) * 100.0 / float64(m.stats.TotalFrames)
		totalErrors := m.stats.CRCErrors + m.stats.FramingErrors
		errorPercent = float64(totalErrors) * 100.0 / float64(m.stats.TotalFrames)
	}

	content := fmt.Sprintf("%s %s  %s %s  %s %s  %s %s",
		statsLabelStyle.Render("Total:"), statsValueStyle.Render(fmt.Sprintf("%d", m.stats.TotalFrames)),
		statsLabelStyle.Render("Valid:"), statsValueStyle.Render(fmt.Sprintf("%.1f%%", validPercent)),
		statsLabelStyle.Render("Errors:"), func() string {
			if errorPercent > 0 {
				return errorStyle.Render(fmt.Sprintf("%.1f%%", errorPercent))
			}
			return statsValueStyle.Render("0.0%")
		}(),
		statsLabelStyle.Render("Rate:"), statsValueStyle.Render(fmt.Sprintf("%.1f frames/s", m.stats.FrameRate)),
	)

	return boxStyle.Width(m.width - 4).Render(content)
}

func (m consoleModel) renderEventLog(statsLabelStyle, headerStyle, errorStyle, warningStyle, boxStyle lipgloss.Style) string {
	var s strings.Builder

	s.WriteString(statsLabelStyle.Render("Recent Events:"))
	s.WriteString("\n")

	logHeight := m.height - 20
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
			timestamp := entry.timestamp.Format("15:04:05.000")
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
