package main

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const dateLayout = "2006-01-02"

var (
	errRecordNotFound = errors.New("record not found")
	errInvalidRecord  = errors.New("invalid record")
)

// EnergyReading is one day's calorie snapshot in kcal.
// Ingestible is what remains of the allowance; negative means over it.
type EnergyReading struct {
	Resting    float64 `json:"resting"`
	Active     float64 `json:"active"`
	Dietary    float64 `json:"dietary"`
	Ingestible float64 `json:"ingestible"`
}

// NewEnergyReading derives Ingestible from expenditure minus intake.
func NewEnergyReading(resting, active, dietary float64) EnergyReading {
	return EnergyReading{
		Resting:    resting,
		Active:     active,
		Dietary:    dietary,
		Ingestible: resting + active - dietary,
	}
}

func (e EnergyReading) TotalExpenditure() float64 {
	return e.Resting + e.Active
}

func (e EnergyReading) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"resting", e.Resting},
		{"active", e.Active},
		{"dietary", e.Dietary},
	} {
		if err := nonNegative(f.name, f.value); err != nil {
			return err
		}
	}
	if math.IsNaN(e.Ingestible) || math.IsInf(e.Ingestible, 0) {
		return fmt.Errorf("%w: ingestible is not a finite number", errInvalidRecord)
	}
	return nil
}

// MacroNutrientReading holds consumed grams.
type MacroNutrientReading struct {
	Protein       float64 `json:"protein_g"`
	Carbohydrates float64 `json:"carbohydrates_g"`
	FatTotal      float64 `json:"fat_total_g"`
}

func (n MacroNutrientReading) Validate() error {
	if err := nonNegative("protein_g", n.Protein); err != nil {
		return err
	}
	if err := nonNegative("carbohydrates_g", n.Carbohydrates); err != nil {
		return err
	}
	return nonNegative("fat_total_g", n.FatTotal)
}

// MacroNutrientGoal holds target grams. All targets must be positive since
// they divide the readings.
type MacroNutrientGoal struct {
	Protein       float64 `json:"protein_g"`
	Carbohydrates float64 `json:"carbohydrates_g"`
	FatTotal      float64 `json:"fat_total_g"`
}

func (g MacroNutrientGoal) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"protein_g", g.Protein},
		{"carbohydrates_g", g.Carbohydrates},
		{"fat_total_g", g.FatTotal},
	} {
		if !(f.value > 0) || math.IsInf(f.value, 0) {
			return fmt.Errorf("goal %s must be positive, got %v", f.name, f.value)
		}
	}
	return nil
}

// DailyRecord is the unit stored per date.
type DailyRecord struct {
	Date      string               `json:"date"`
	Energy    EnergyReading        `json:"energy"`
	Nutrition MacroNutrientReading `json:"nutrition"`
}

func (r DailyRecord) Validate() error {
	if _, err := time.Parse(dateLayout, r.Date); err != nil {
		return fmt.Errorf("%w: date %q: %v", errInvalidRecord, r.Date, err)
	}
	if err := r.Energy.Validate(); err != nil {
		return err
	}
	return r.Nutrition.Validate()
}

// recordInput is the POST body. Ingestible may be omitted, in which case it
// is derived from the other energy values.
type recordInput struct {
	Date   string `json:"date"`
	Energy struct {
		Resting    float64  `json:"resting"`
		Active     float64  `json:"active"`
		Dietary    float64  `json:"dietary"`
		Ingestible *float64 `json:"ingestible"`
	} `json:"energy"`
	Nutrition MacroNutrientReading `json:"nutrition"`
}

func (in recordInput) record() DailyRecord {
	energy := NewEnergyReading(in.Energy.Resting, in.Energy.Active, in.Energy.Dietary)
	if in.Energy.Ingestible != nil {
		energy.Ingestible = *in.Energy.Ingestible
	}
	return DailyRecord{
		Date:      in.Date,
		Energy:    energy,
		Nutrition: in.Nutrition,
	}
}

func nonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s is not a finite number", errInvalidRecord, name)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %v", errInvalidRecord, name, v)
	}
	return nil
}
