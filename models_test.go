package main

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func sampleRecord(date string) DailyRecord {
	return DailyRecord{
		Date:   date,
		Energy: NewEnergyReading(1500, 200, 1600),
		Nutrition: MacroNutrientReading{
			Protein:       30,
			Carbohydrates: 200,
			FatTotal:      20,
		},
	}
}

func TestNewEnergyReading(t *testing.T) {
	e := NewEnergyReading(1500, 200, 4000)

	if got := e.TotalExpenditure(); got != 1700 {
		t.Errorf("TotalExpenditure() = %v, want 1700", got)
	}
	if e.Ingestible != -2300 {
		t.Errorf("Ingestible = %v, want -2300", e.Ingestible)
	}
}

func TestEnergyReadingValidate(t *testing.T) {
	tests := []struct {
		name    string
		energy  EnergyReading
		wantErr bool
	}{
		{name: "valid", energy: NewEnergyReading(1500, 200, 1600)},
		{name: "negative ingestible is valid", energy: NewEnergyReading(1500, 200, 4000)},
		{name: "all zero", energy: EnergyReading{}},
		{name: "negative resting", energy: EnergyReading{Resting: -1}, wantErr: true},
		{name: "negative active", energy: EnergyReading{Active: -1}, wantErr: true},
		{name: "negative dietary", energy: EnergyReading{Dietary: -0.5}, wantErr: true},
		{name: "NaN dietary", energy: EnergyReading{Dietary: math.NaN()}, wantErr: true},
		{name: "infinite ingestible", energy: EnergyReading{Ingestible: math.Inf(-1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.energy.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errInvalidRecord) {
				t.Errorf("Validate() error = %v, want errInvalidRecord", err)
			}
		})
	}
}

func TestMacroNutrientGoalValidate(t *testing.T) {
	if err := (MacroNutrientGoal{Protein: 60, Carbohydrates: 300, FatTotal: 65}).Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
	for _, g := range []MacroNutrientGoal{
		{Protein: 0, Carbohydrates: 300, FatTotal: 65},
		{Protein: 60, Carbohydrates: -1, FatTotal: 65},
		{Protein: 60, Carbohydrates: 300, FatTotal: math.NaN()},
	} {
		if err := g.Validate(); err == nil {
			t.Errorf("Validate(%+v) expected error", g)
		}
	}
}

func TestDailyRecordValidate(t *testing.T) {
	if err := sampleRecord("2026-10-17").Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}

	bad := sampleRecord("17/10/2026")
	if err := bad.Validate(); !errors.Is(err, errInvalidRecord) {
		t.Errorf("Validate() with bad date = %v, want errInvalidRecord", err)
	}

	bad = sampleRecord("2026-10-17")
	bad.Nutrition.FatTotal = -3
	if err := bad.Validate(); !errors.Is(err, errInvalidRecord) {
		t.Errorf("Validate() with negative fat = %v, want errInvalidRecord", err)
	}
}

func TestRecordInput(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantIngestible float64
	}{
		{
			name:           "ingestible derived",
			body:           `{"date":"2026-10-17","energy":{"resting":1500,"active":200,"dietary":1600}}`,
			wantIngestible: 100,
		},
		{
			name:           "ingestible kept when given",
			body:           `{"date":"2026-10-17","energy":{"resting":1500,"active":200,"dietary":1600,"ingestible":-250}}`,
			wantIngestible: -250,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in recordInput
			if err := json.Unmarshal([]byte(tt.body), &in); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			rec := in.record()
			if rec.Energy.Ingestible != tt.wantIngestible {
				t.Errorf("Ingestible = %v, want %v", rec.Energy.Ingestible, tt.wantIngestible)
			}
			if rec.Energy.TotalExpenditure() != 1700 {
				t.Errorf("TotalExpenditure() = %v, want 1700", rec.Energy.TotalExpenditure())
			}
		})
	}
}
