package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

const (
	barChar      = "█"
	hiddenValue  = "•••"
	defaultWidth = 30
)

type colorPair struct {
	start, end string
}

var palette = map[Style]colorPair{
	StyleIntake:        {"#A8E063", "#56AB2F"},
	StyleConsumption:   {"#FFB347", "#FF7F00"},
	StyleIngestible:    {"#B39DDB", "#5D3FD3"},
	StyleProtein:       {"#FFCC80", "#FB8C00"},
	StyleCarbohydrates: {"#81D4FA", "#0288D1"},
	StyleFat:           {"#CE93D8", "#8E24AA"},
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	unitStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	flameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
)

// renderer draws widget view models for a terminal. Columns is the width
// available to rings and bars.
type renderer struct {
	Columns int
}

func newRenderer(columns int) renderer {
	if columns <= 0 {
		columns = defaultWidth
	}
	return renderer{Columns: columns}
}

func (r renderer) ring(ring Ring) string {
	colors := palette[ring.Style]
	bar := progress.New(
		progress.WithGradient(colors.start, colors.end),
		progress.WithWidth(r.Columns),
		progress.WithoutPercentage(),
	)
	percent := fmt.Sprintf("%4.0f%%", ring.Ratio*100)
	return fmt.Sprintf("%s %s %s", labelStyle.Width(14).Render(ring.Label), bar.ViewAs(ring.Fill), percent)
}

func (r renderer) value(v Value) string {
	amount := hiddenValue
	if !v.Redacted && v.Amount != nil {
		amount = fmt.Sprintf("%.0f", *v.Amount)
	}
	number := lipgloss.NewStyle().Foreground(lipgloss.Color(palette[v.Style].end)).Bold(true)
	return fmt.Sprintf("%s %s %s",
		labelStyle.Width(14).Render(v.Label),
		number.Render(amount),
		unitStyle.Render(v.Unit))
}

// barCells scales a bar width onto the renderer's columns.
func (r renderer) barCells(width, maxWidth float64) int {
	if maxWidth <= 0 || width <= 0 {
		return 0
	}
	cells := int(math.Round(width / maxWidth * float64(r.Columns)))
	if cells > r.Columns {
		cells = r.Columns
	}
	return cells
}

func (r renderer) bar(b Bar, maxWidth float64) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(palette[b.Style].end))
	if b.Faded {
		style = style.Faint(true)
	}
	cells := r.barCells(b.Width, maxWidth)
	return fmt.Sprintf("%s %s", labelStyle.Width(14).Render(b.Label), style.Render(strings.Repeat(barChar, cells)))
}

func (r renderer) icon(i Icon) string {
	if i == IconWarning {
		return warnStyle.Render("▲ over")
	}
	return flameStyle.Render("♨ under")
}

func (r renderer) values(vs ...Value) []string {
	lines := make([]string, 0, len(vs))
	for _, v := range vs {
		lines = append(lines, r.value(v))
	}
	return lines
}

func (r renderer) box(title string, lines ...string) string {
	body := append([]string{titleStyle.Render(title)}, lines...)
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}

func (r renderer) detail(d DetailView) string {
	calorie := append([]string{r.ring(d.Calorie.Ring)},
		r.values(d.Calorie.Resting, d.Calorie.Active, d.Calorie.Dietary, d.Calorie.Ingestible)...)

	var nutrition []string
	for _, ring := range d.Nutrition.Rings {
		nutrition = append(nutrition, r.ring(ring))
	}
	nutrition = append(nutrition, r.values(d.Nutrition.Protein, d.Nutrition.Carbohydrates, d.Nutrition.Fat)...)

	return lipgloss.JoinVertical(lipgloss.Left,
		r.box("Calorie "+d.Date, calorie...),
		r.box("Nutrition", nutrition...),
	)
}

func (r renderer) small(w SmallWidget) string {
	return r.box("Calories "+w.Date, r.ring(w.Ring), r.icon(w.Icon), r.value(w.Ingestible))
}

func (r renderer) medium(w MediumWidget) string {
	lines := append([]string{r.ring(w.Ring), r.icon(w.Icon)},
		r.values(w.Expenditure, w.Dietary, w.Ingestible)...)
	return r.box("Calories "+w.Date, lines...)
}

func (r renderer) barChart(w BarChartWidget) string {
	lines := append([]string{r.bar(w.Expenditure, w.MaxWidth), r.bar(w.Intake, w.MaxWidth)},
		r.values(w.Values...)...)
	return r.box("Calories "+w.Date, lines...)
}

// render draws any widget view model built by buildWidget.
func (r renderer) render(widget any) (string, error) {
	switch w := widget.(type) {
	case DetailView:
		return r.detail(w), nil
	case SmallWidget:
		return r.small(w), nil
	case MediumWidget:
		return r.medium(w), nil
	case BarChartWidget:
		return r.barChart(w), nil
	}
	return "", fmt.Errorf("cannot render %T", widget)
}
