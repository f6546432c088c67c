package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var dashboardKinds = []string{"detail", "small", "medium", "bar"}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type recordLoadedMsg struct {
	date string
	rec  DailyRecord
	err  error
}

// dashboardModel browses one day at a time and shows it as any widget kind.
type dashboardModel struct {
	store   *recordStore
	opts    widgetOptions
	date    time.Time
	kind    int
	rec     *DailyRecord
	err     error
	loading bool
	width   int
}

func newDashboard(store *recordStore, opts widgetOptions, date time.Time) dashboardModel {
	return dashboardModel{
		store:   store,
		opts:    opts,
		date:    date,
		loading: true,
	}
}

func (m dashboardModel) dateString() string {
	return m.date.Format(dateLayout)
}

func (m dashboardModel) load() tea.Cmd {
	store, date := m.store, m.dateString()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		rec, err := store.Get(ctx, date)
		return recordLoadedMsg{date: date, rec: rec, err: err}
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.load()
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case recordLoadedMsg:
		// Ignore answers for a date the user already moved away from.
		if msg.date != m.dateString() {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		m.rec = nil
		if msg.err == nil {
			rec := msg.rec
			m.rec = &rec
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.kind = (m.kind + 1) % len(dashboardKinds)
		case "shift+tab":
			m.kind = (m.kind + len(dashboardKinds) - 1) % len(dashboardKinds)
		case "p":
			m.opts.Privacy = !m.opts.Privacy
		case "left", "h":
			return m.moveDate(-1)
		case "right", "l":
			return m.moveDate(1)
		}
	}
	return m, nil
}

func (m dashboardModel) moveDate(days int) (tea.Model, tea.Cmd) {
	m.date = m.date.AddDate(0, 0, days)
	m.loading = true
	m.rec = nil
	m.err = nil
	return m, m.load()
}

func (m dashboardModel) View() string {
	kind := dashboardKinds[m.kind]
	privacy := ""
	if m.opts.Privacy {
		privacy = " · private"
	}
	header := headerStyle.Render(fmt.Sprintf("%s · %s%s", m.dateString(), kind, privacy))

	var body string
	switch {
	case m.loading:
		body = "Loading…"
	case errors.Is(m.err, errRecordNotFound):
		body = helpStyle.Render("No record for this day.")
	case m.err != nil:
		body = errorStyle.Render("Error: " + m.err.Error())
	default:
		widget, _ := buildWidget(kind, *m.rec, m.opts)
		text, err := newRenderer(m.columns()).render(widget)
		if err != nil {
			text = errorStyle.Render("Error: " + err.Error())
		}
		body = text
	}

	help := helpStyle.Render("←/→ day · tab widget · p privacy · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", help) + "\n"
}

// columns leaves room for labels and the box border.
func (m dashboardModel) columns() int {
	if m.width <= 0 {
		return defaultWidth
	}
	cols := m.width - 30
	if cols < 10 {
		cols = 10
	}
	if cols > 60 {
		cols = 60
	}
	return cols
}

func runDashboard(store *recordStore, opts widgetOptions, date time.Time) error {
	p := tea.NewProgram(newDashboard(store, opts, date), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
