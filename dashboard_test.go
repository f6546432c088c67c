package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestDashboard(t *testing.T) dashboardModel {
	t.Helper()
	store, _ := newDirStore(t)
	for _, date := range []string{"2026-10-16", "2026-10-17"} {
		if err := store.Put(context.Background(), sampleRecord(date)); err != nil {
			t.Fatal(err)
		}
	}
	return newDashboard(store, testOpts, time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC))
}

func update(m dashboardModel, msg tea.Msg) (dashboardModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(dashboardModel), cmd
}

func TestDashboardLoad(t *testing.T) {
	m := newTestDashboard(t)
	if !strings.Contains(m.View(), "Loading") {
		t.Error("expected loading state before the first record arrives")
	}

	msg := m.Init()()
	loaded, ok := msg.(recordLoadedMsg)
	if !ok {
		t.Fatalf("Init command returned %T", msg)
	}
	if loaded.err != nil || loaded.rec.Date != "2026-10-17" {
		t.Fatalf("loaded = %+v", loaded)
	}

	m, _ = update(m, loaded)
	view := m.View()
	for _, want := range []string{"2026-10-17 · detail", "Nutrition", "Resting"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestDashboardKeys(t *testing.T) {
	m := newTestDashboard(t)
	m, _ = update(m, m.Init()())

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyTab})
	if dashboardKinds[m.kind] != "small" {
		t.Errorf("tab: kind = %s, want small", dashboardKinds[m.kind])
	}
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if dashboardKinds[m.kind] != "bar" {
		t.Errorf("shift+tab wrap: kind = %s, want bar", dashboardKinds[m.kind])
	}

	m, _ = update(m, runeKey("p"))
	if !m.opts.Privacy || !strings.Contains(m.View(), "private") {
		t.Error("p should turn privacy on")
	}
	if strings.Contains(m.View(), "1700") {
		t.Error("private view shows values")
	}

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.dateString() != "2026-10-16" || !m.loading || cmd == nil {
		t.Fatalf("left: date = %s loading = %v", m.dateString(), m.loading)
	}
	m, _ = update(m, cmd())
	if m.rec == nil || m.rec.Date != "2026-10-16" {
		t.Errorf("record after moving = %+v", m.rec)
	}

	if _, cmd := update(m, runeKey("q")); cmd == nil {
		t.Error("q should quit")
	}
}

func TestDashboardIgnoresStaleLoads(t *testing.T) {
	m := newTestDashboard(t)
	stale := m.Init()()

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = update(m, stale)
	if !m.loading || m.rec != nil {
		t.Error("stale load should be ignored")
	}

	m, _ = update(m, cmd())
	if m.loading || !errors.Is(m.err, errRecordNotFound) {
		t.Errorf("err = %v, want errRecordNotFound", m.err)
	}
	if !strings.Contains(m.View(), "No record") {
		t.Errorf("view:\n%s", m.View())
	}
}

func TestDashboardColumns(t *testing.T) {
	m := newTestDashboard(t)
	if m.columns() != defaultWidth {
		t.Errorf("columns without size = %d", m.columns())
	}
	m, _ = update(m, tea.WindowSizeMsg{Width: 70, Height: 40})
	if m.columns() != 40 {
		t.Errorf("columns at width 70 = %d, want 40", m.columns())
	}
	m, _ = update(m, tea.WindowSizeMsg{Width: 20})
	if m.columns() != 10 {
		t.Errorf("columns at width 20 = %d, want 10", m.columns())
	}
}
