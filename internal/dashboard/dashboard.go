// Package dashboard renders a live terminal view of the tracking log:
// today's worked time, goal progress, and the day's start/stop timeline.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hardliner66/timetracking/internal/event"
	"github.com/hardliner66/timetracking/internal/settings"
	"github.com/hardliner66/timetracking/internal/store"
	"github.com/hardliner66/timetracking/internal/track"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4A90E2")).
			Padding(0, 1).
			MarginBottom(1)

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	stoppedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F7DC6F")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2).
			MarginBottom(1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second*30, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type model struct {
	st       store.Store
	settings *settings.Settings
	events   []event.TrackingEvent
	width    int
	height   int
}

// Run starts the dashboard over the given store.
func Run(st store.Store, set *settings.Settings, events []event.TrackingEvent) error {
	m := model{st: st, settings: set, events: events}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m model) Init() tea.Cmd {
	return tickCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		if events, err := m.st.Load(); err == nil {
			m.events = events
		}
		return m, tickCmd()
	}
	return m, nil
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	now := time.Now()
	header := headerStyle.Width(m.width).Render(
		fmt.Sprintf("Time Tracking - %s", now.Format("Jan 2, 2006 15:04:05")),
	)

	today, err := track.FilterEvents(m.events, "", "", "", now)
	if err != nil {
		return "could not filter events: " + err.Error()
	}
	worked := track.WorkTime(m.settings, today, true, now)
	hours, minutes, _ := track.SplitDuration(worked)

	goal := m.settings.TimeGoal.Daily
	goalMinutes := goal.Hours*60 + goal.Minutes
	workedMinutes := int(hours*60 + minutes)

	leftColWidth := m.width/2 - 3
	rightColWidth := m.width/2 - 3

	workedBox := boxStyle.Width(leftColWidth).Render(fmt.Sprintf(
		"WORKED TODAY\n\n%s",
		activeStyle.Render(humanDuration(workedMinutes)),
	))

	goalPct := 0
	if goalMinutes > 0 {
		goalPct = (workedMinutes * 100) / goalMinutes
	}
	barWidth := leftColWidth - 10
	if barWidth < 20 {
		barWidth = 20
	}
	progressBox := boxStyle.Width(leftColWidth).Render(fmt.Sprintf(
		"DAILY GOAL PROGRESS\n\n%s %d%%\n%s",
		progressBar(goalPct, barWidth),
		goalPct,
		progressStyle.Render(fmt.Sprintf("goal %s", humanDuration(goalMinutes))),
	))

	remainingBox := boxStyle.Width(leftColWidth).Render(fmt.Sprintf(
		"REMAINING\n\n%s",
		progressStyle.Render(m.remainingLine(worked, now)),
	))

	statusBox := boxStyle.Width(leftColWidth).Render(fmt.Sprintf(
		"LIVE STATUS\n\n%s",
		m.statusLine(now),
	))

	timelineBox := m.timelineBox(today, now, rightColWidth, m.height-8)

	left := lipgloss.JoinVertical(lipgloss.Left, workedBox, progressBox, remainingBox, statusBox)
	content := lipgloss.JoinHorizontal(lipgloss.Top, left, timelineBox)

	footer := footerStyle.Width(m.width).
		Render("Press 'q' or Ctrl+C to quit - Updates every 30 seconds")

	full := lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
	if h := lipgloss.Height(full); h < m.height {
		full += strings.Repeat("\n", m.height-h-1)
	}
	return full
}

func (m model) remainingLine(worked time.Duration, now time.Time) string {
	remaining, err := track.RemainingWork(m.settings, m.events, "", worked, true, now)
	if err != nil {
		return "unknown"
	}
	hours, minutes, _ := track.SplitDuration(remaining)
	return humanDuration(int(hours*60 + minutes))
}

func (m model) statusLine(now time.Time) string {
	if len(m.events) == 0 {
		return stoppedStyle.Render("NO EVENTS")
	}
	last := m.events[len(m.events)-1]
	since := last.Time(true).Local().Format("15:04")
	if last.IsStart() {
		line := fmt.Sprintf("TRACKING since %s", since)
		if description, ok := last.Description(); ok {
			line += fmt.Sprintf(" (%s)", description)
		}
		return activeStyle.Render(line)
	}
	return stoppedStyle.Render(fmt.Sprintf("STOPPED since %s", since))
}

// timelineBox lists today's paired start/stop spans, an open span running
// until now.
func (m model) timelineBox(today []event.TrackingEvent, now time.Time, width, maxHeight int) string {
	type span struct {
		start       time.Time
		end         time.Time
		open        bool
		description string
	}

	var spans []span
	i := 0
	for {
		for i < len(today) && !today[i].IsStart() {
			i++
		}
		if i >= len(today) {
			break
		}
		start := today[i]
		i++
		for i < len(today) && !today[i].IsStop() {
			i++
		}
		description, _ := start.Description()
		if i < len(today) {
			spans = append(spans, span{
				start:       start.Time(true).Local(),
				end:         today[i].Time(true).Local(),
				description: description,
			})
			i++
		} else {
			spans = append(spans, span{
				start:       start.Time(true).Local(),
				end:         now,
				open:        true,
				description: description,
			})
			break
		}
	}

	maxEntries := maxHeight - 6
	if maxEntries < 5 {
		maxEntries = 5
	}
	first := 0
	if len(spans) > maxEntries {
		first = len(spans) - maxEntries
	}

	timeline := "TODAY'S TIMELINE\n\n"
	if len(spans) == 0 {
		timeline += "no tracked time yet"
	}
	for _, s := range spans[first:] {
		minutes := int(s.end.Sub(s.start).Minutes())
		label := s.description
		if label == "" {
			label = "work"
		}
		if s.open {
			label = activeStyle.Render(label + " (running)")
		}
		timeline += fmt.Sprintf("%s-%s %s (%s)\n",
			s.start.Format("15:04"), s.end.Format("15:04"),
			label, humanDuration(minutes))
	}
	return boxStyle.Width(width).Height(maxHeight).Render(timeline)
}

func progressBar(percentage, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	filled := (percentage * width) / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return activeStyle.Render(bar)
}

func humanDuration(mins int) string {
	h := mins / 60
	m := mins % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%d hr %d mins", h, m)
	case h > 0:
		if h == 1 {
			return "1 hr"
		}
		return fmt.Sprintf("%d hrs", h)
	case m == 1:
		return "1 min"
	default:
		return fmt.Sprintf("%d mins", m)
	}
}
