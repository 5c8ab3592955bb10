package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stackbox-go/stackbox"
	"github.com/stackbox-go/stackbox/trace"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	placedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	droppedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	movedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D3D3D3"))

	counterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const eventBacklog = 256

// feedObserver forwards lifecycle events into the TUI without blocking
// the workload goroutine.
type feedObserver struct {
	ch chan stackbox.Event
}

func (o *feedObserver) OnSlotEvent(e stackbox.Event) {
	select {
	case o.ch <- e:
	default:
	}
}

type watchModel struct {
	viewport viewport.Model
	feed     *feedObserver
	counters *trace.Counters
	rng      *rand.Rand
	lines    []string
	rate     time.Duration
	paused   bool
	ready    bool
}

type eventMsg stackbox.Event

type stepMsg time.Time

func newWatchModel(rate time.Duration, seed int64) *watchModel {
	return &watchModel{
		feed:     &feedObserver{ch: make(chan stackbox.Event, eventBacklog)},
		counters: &trace.Counters{},
		rng:      rand.New(rand.NewSource(seed)),
		rate:     rate,
	}
}

func (m *watchModel) Init() tea.Cmd {
	stackbox.Subscribe(m.feed)
	stackbox.Subscribe(m.counters)
	return tea.Batch(m.waitForEvent, m.stepTick())
}

func (m *watchModel) waitForEvent() tea.Msg {
	return eventMsg(<-m.feed.ch)
}

func (m *watchModel) stepTick() tea.Cmd {
	return tea.Tick(m.rate, func(t time.Time) tea.Msg {
		return stepMsg(t)
	})
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			stackbox.Unsubscribe(m.feed)
			stackbox.Unsubscribe(m.counters)
			return m, tea.Quit

		case " ":
			m.paused = !m.paused
			if !m.paused {
				return m, m.stepTick()
			}

		case "up", "k":
			m.viewport.ScrollUp(1)

		case "down", "j":
			m.viewport.ScrollDown(1)
		}

	case tea.WindowSizeMsg:
		headerHeight := 2
		footerHeight := 4
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.viewport.SetContent(strings.Join(m.lines, "\n"))

	case eventMsg:
		m.lines = append(m.lines, formatEvent(stackbox.Event(msg)))
		if len(m.lines) > eventBacklog {
			m.lines = m.lines[len(m.lines)-eventBacklog:]
		}
		if m.ready {
			m.viewport.SetContent(strings.Join(m.lines, "\n"))
			m.viewport.GotoBottom()
		}
		return m, m.waitForEvent

	case stepMsg:
		if m.paused {
			return m, nil
		}
		step(m.rng)
		return m, m.stepTick()
	}

	return m, nil
}

func formatEvent(e stackbox.Event) string {
	label := fmt.Sprintf("%-10s", e.Type)
	switch e.Type {
	case stackbox.EventPlaced, stackbox.EventReplaced:
		label = placedStyle.Render(label)
	case stackbox.EventDropped:
		label = droppedStyle.Render(label)
	case stackbox.EventMovedOut, stackbox.EventWidened, stackbox.EventLeaked:
		label = movedStyle.Render(label)
	}
	return fmt.Sprintf("%s slot=%#x %s", label, uintptr(e.Slot), typeStyle.Render(e.GoType))
}

func (m *watchModel) View() string {
	if !m.ready {
		return "Starting workload..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("slotwatch"))
	if m.paused {
		b.WriteString(helpStyle.Render("  (paused)"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")

	t := m.counters.Snapshot()
	b.WriteString(fmt.Sprintf(
		"placed %s  dropped %s  moved %s  widened %s  leaked %s  replaced %s  live %s\n",
		counterStyle.Render(fmt.Sprint(t.Placed)),
		counterStyle.Render(fmt.Sprint(t.Dropped)),
		counterStyle.Render(fmt.Sprint(t.MovedOut)),
		counterStyle.Render(fmt.Sprint(t.Widened)),
		counterStyle.Render(fmt.Sprint(t.Leaked)),
		counterStyle.Render(fmt.Sprint(t.Replaced)),
		counterStyle.Render(fmt.Sprint(t.Live())),
	))
	b.WriteString(helpStyle.Render("space pause • ↑/↓ scroll • q quit"))

	return b.String()
}

func runInteractive(rate time.Duration, seed int64) error {
	p := tea.NewProgram(newWatchModel(rate, seed), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
