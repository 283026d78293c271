// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Konstantin Vogel

package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/konstantinvogel/hass-thz/pkg/thz"
)

var tuiInterval time.Duration

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive dashboard for the heat pump",
	Long: `Live terminal dashboard showing the unit's sensors and actuator states.

Polls the global status register and renders temperatures, ventilation,
pump and compressor states, exchange statistics and an event log.

Keys: 'r' forces an immediate poll, 'q' quits.`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().DurationVarP(&tuiInterval, "interval", "i", 10*time.Second, "Poll interval")
	rootCmd.AddCommand(tuiCmd)
}

// Event log entry
type eventLogEntry struct {
	timestamp time.Time
	message   string
	isError   bool
}

// TUI model
type tuiModel struct {
	sess     *thz.Session
	connInfo string
	interval time.Duration

	lastRecord  *thz.Record
	lastTime    *thz.Record
	eventLog    []eventLogEntry
	maxLog      int
	width       int
	height      int
	quitting    bool
	pollPending bool
}

// Messages
type tuiTickMsg time.Time
type pollResultMsg struct {
	status *thz.Record
	clock  *thz.Record
	err    error
}

func initialTUIModel(sess *thz.Session, connInfo string, interval time.Duration) tuiModel {
	return tuiModel{
		sess:     sess,
		connInfo: connInfo,
		interval: interval,
		eventLog: make([]eventLogEntry, 0),
		maxLog:   100,
		width:    80,
		height:   24,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return tea.Batch(
		m.pollCmd(),
		tuiTickCmd(m.interval),
		tea.EnterAltScreen,
	)
}

func tuiTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tuiTickMsg(t)
	})
}

// pollCmd reads the status and clock registers off the UI goroutine.
func (m tuiModel) pollCmd() tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		status, err := sess.ReadRegister(ctx, "FB")
		if err != nil {
			return pollResultMsg{err: err}
		}
		// Clock failures are cosmetic, keep the status.
		clock, _ := sess.ReadRegister(ctx, "FC")
		return pollResultMsg{status: status, clock: clock}
	}
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "r":
			if !m.pollPending {
				m.pollPending = true
				return m, m.pollCmd()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tuiTickMsg:
		cmds := []tea.Cmd{tuiTickCmd(m.interval)}
		if !m.pollPending {
			m.pollPending = true
			cmds = append(cmds, m.pollCmd())
		}
		return m, tea.Batch(cmds...)

	case pollResultMsg:
		m.pollPending = false
		if msg.err != nil {
			m.addLogEntry(fmt.Sprintf("POLL FAILED: %v", msg.err), true)
		} else {
			m.lastRecord = msg.status
			m.lastTime = msg.clock
			m.addLogEntry("status updated", false)
		}
	}

	return m, nil
}

func (m *tuiModel) addLogEntry(message string, isError bool) {
	entry := eventLogEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	}
	m.eventLog = append(m.eventLog, entry)

	if len(m.eventLog) > m.maxLog {
		m.eventLog = m.eventLog[len(m.eventLog)-m.maxLog:]
	}
}

// fieldFloat pulls a numeric field out of the last record, NaN-safe display
// is handled by the caller checking ok.
func fieldFloat(rec *thz.Record, name string) (float64, bool) {
	if rec == nil {
		return 0, false
	}
	v, err := rec.Value(name)
	if err != nil {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

func fieldBool(rec *thz.Record, name string) (bool, bool) {
	if rec == nil {
		return false, false
	}
	v, err := rec.Value(name)
	if err != nil {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

func (m tuiModel) View() string {
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

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
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
	s.WriteString(titleStyle.Render("THZCTL - HEAT PUMP DASHBOARD"))
	s.WriteString("\n")
	s.WriteString(headerStyle.Render(fmt.Sprintf("%s | Firmware: %s | 'r' refresh, 'q' quit",
		m.connInfo, m.sess.Firmware())))
	s.WriteString("\n\n")

	if m.lastRecord == nil {
		s.WriteString(warningStyle.Render("⏳ Waiting for first poll..."))
		s.WriteString("\n\n")
	} else {
		// Temperatures
		tempContent := strings.Builder{}
		tempRows := []struct{ label, field string }{
			{"Outside:", "outsideTemp"},
			{"Inside:", "insideTemp"},
			{"Flow:", "flowTemp"},
			{"Return:", "returnTemp"},
			{"Hot water:", "dhwTemp"},
			{"Evaporator:", "evaporatorTemp"},
			{"Condenser:", "condenserTemp"},
			{"Dew point:", "dewPoint"},
		}
		for _, row := range tempRows {
			if v, ok := fieldFloat(m.lastRecord, row.field); ok {
				tempContent.WriteString(fmt.Sprintf("%s %s\n",
					labelStyle.Render(fmt.Sprintf("%-11s", row.label)),
					valueStyle.Render(fmt.Sprintf("%6.1f°C", v)),
				))
			}
		}
		if v, ok := fieldFloat(m.lastRecord, "relHumidity"); ok {
			tempContent.WriteString(fmt.Sprintf("%s %s\n",
				labelStyle.Render(fmt.Sprintf("%-11s", "Humidity:")),
				valueStyle.Render(fmt.Sprintf("%6.1f%%", v)),
			))
		}

		// Actuators
		actContent := strings.Builder{}
		actRows := []struct{ label, field string }{
			{"Compressor:", "compressor"},
			{"Heating pump:", "heatingCircuitPump"},
			{"DHW pump:", "dhwPump"},
			{"Solar pump:", "solarPump"},
			{"Booster 1:", "boosterStage1"},
			{"Booster 2:", "boosterStage2"},
			{"Booster 3:", "boosterStage3"},
			{"Diverter:", "diverterValve"},
		}
		for _, row := range actRows {
			if v, ok := fieldBool(m.lastRecord, row.field); ok {
				state := headerStyle.Render("off")
				if v {
					state = valueStyle.Render("ON")
				}
				actContent.WriteString(fmt.Sprintf("%s %s\n",
					labelStyle.Render(fmt.Sprintf("%-13s", row.label)), state))
			}
		}
		for _, row := range []struct{ label, field string }{
			{"Fan in:", "inputVentilatorSpeed"},
			{"Fan out:", "outputVentilatorSpeed"},
		} {
			if v, ok := fieldFloat(m.lastRecord, row.field); ok {
				actContent.WriteString(fmt.Sprintf("%s %s\n",
					labelStyle.Render(fmt.Sprintf("%-13s", row.label)),
					valueStyle.Render(fmt.Sprintf("%.0f rpm", v)),
				))
			}
		}

		s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			boxStyle.Render(tempContent.String()),
			" ",
			boxStyle.Render(actContent.String()),
		))
		s.WriteString("\n\n")
	}

	// Statistics
	stats := m.sess.Statistics().Snapshot()
	statsContent := fmt.Sprintf("%s %s   %s %s   %s %s   %s %s",
		labelStyle.Render("Exchanges:"), valueStyle.Render(fmt.Sprintf("%d", stats.Exchanges)),
		labelStyle.Render("Checksum:"), errorStyle.Render(fmt.Sprintf("%d", stats.ChecksumErrors)),
		labelStyle.Render("Timeouts:"), errorStyle.Render(fmt.Sprintf("%d", stats.Timeouts)),
		labelStyle.Render("Retries:"), warningStyle.Render(fmt.Sprintf("%d", stats.Retries)),
	)
	s.WriteString(boxStyle.Render(statsContent))
	s.WriteString("\n\n")

	// Event log
	s.WriteString(labelStyle.Render("Recent Events:"))
	s.WriteString("\n")

	logHeight := m.height - 22
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
					headerStyle.Render("ℹ "+entry.message),
				))
			}
		}
	}

	s.WriteString(boxStyle.Width(m.width - 4).Render(logContent.String()))

	return s.String()
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	sess, conn, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	defer sess.Close()

	connInfo := cfg.Connection.Port
	if cfg.Connection.URL != "" {
		connInfo = cfg.Connection.URL
	} else if cfg.Connection.Host != "" {
		connInfo = fmt.Sprintf("%s:%d", cfg.Connection.Host, cfg.Connection.TCPPort)
	}

	p := tea.NewProgram(initialTUIModel(sess, connInfo, tuiInterval))
	_, err = p.Run()
	return err
}
