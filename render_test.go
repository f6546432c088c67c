package main

import (
	"strings"
	"testing"
)

func TestRenderBarChartCells(t *testing.T) {
	rec := sampleRecord("2026-10-17")
	rec.Energy = NewEnergyReading(2800, 200, 1600)
	r := newRenderer(30)

	out, err := r.render(buildBarChart(rec, testOpts))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// 90 of 90 -> 30 cells, 48 of 90 -> 16 cells.
	if got := strings.Count(out, barChar); got != 46 {
		t.Errorf("bar cells = %d, want 46:\n%s", got, out)
	}
	for _, want := range []string{"Expenditure", "Dietary", "3000", "1600", "1400"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderPrivacyHidesNumbers(t *testing.T) {
	opts := testOpts
	opts.Privacy = true
	r := newRenderer(30)

	out, err := r.render(buildBarChart(sampleRecord("2026-10-17"), opts))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := strings.Count(out, barChar); got != 60 {
		t.Errorf("private bar cells = %d, want 60", got)
	}
	if strings.Contains(out, "1700") || strings.Contains(out, "1600") {
		t.Errorf("private output shows values:\n%s", out)
	}
	if !strings.Contains(out, hiddenValue) {
		t.Errorf("private output missing %q placeholder", hiddenValue)
	}
}

func TestRenderDetail(t *testing.T) {
	out, err := newRenderer(20).render(buildDetail(sampleRecord("2026-10-17"), testOpts))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"Calorie 2026-10-17", "Nutrition",
		"Resting", "Active", "Ingestible",
		"Protein", "Carbohydrates", "Fat",
		"94%", "50%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("detail missing %q:\n%s", want, out)
		}
	}
}

func TestRenderIcons(t *testing.T) {
	rec := sampleRecord("2026-10-17")
	r := newRenderer(10)

	out, _ := r.render(buildSmall(rec, testOpts))
	if !strings.Contains(out, "under") {
		t.Errorf("expected flame status:\n%s", out)
	}

	rec.Energy = NewEnergyReading(1500, 200, 4000)
	out, _ = r.render(buildSmall(rec, testOpts))
	if !strings.Contains(out, "over") || !strings.Contains(out, "-2300") {
		t.Errorf("expected warning status and negative ingestible:\n%s", out)
	}
}

func TestRenderUnknown(t *testing.T) {
	if _, err := newRenderer(10).render(struct{}{}); err == nil {
		t.Error("expected error for unknown widget")
	}
}

func TestBarCells(t *testing.T) {
	r := newRenderer(30)
	tests := []struct {
		width, maxWidth float64
		want            int
	}{
		{90, 90, 30},
		{45, 90, 15},
		{0, 90, 0},
		{10, 0, 0},
		{200, 90, 30},
	}
	for _, tt := range tests {
		if got := r.barCells(tt.width, tt.maxWidth); got != tt.want {
			t.Errorf("barCells(%v, %v) = %d, want %d", tt.width, tt.maxWidth, got, tt.want)
		}
	}
	if newRenderer(0).Columns != defaultWidth {
		t.Error("zero columns should fall back to the default width")
	}
}
