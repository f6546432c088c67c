package main

import (
	"fmt"
	"sort"

	"calories-api/gauge"
)

// Style names a colour pair; renderers decide what the colours are.
type Style int

const (
	StyleIntake Style = iota
	StyleConsumption
	StyleIngestible
	StyleProtein
	StyleCarbohydrates
	StyleFat
)

var styleNames = map[Style]string{
	StyleIntake:        "intake",
	StyleConsumption:   "consumption",
	StyleIngestible:    "ingestible",
	StyleProtein:       "protein",
	StyleCarbohydrates: "carbohydrates",
	StyleFat:           "fat",
}

func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

func (s Style) MarshalText() ([]byte, error) {
	name, ok := styleNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown style %d", int(s))
	}
	return []byte(name), nil
}

func (s *Style) UnmarshalText(b []byte) error {
	for k, name := range styleNames {
		if name == string(b) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown style %q", b)
}

// Icon is the status glyph of the ring widgets.
type Icon string

const (
	IconFlame   Icon = "flame"
	IconWarning Icon = "warning"
)

func statusIcon(e EnergyReading) Icon {
	if e.Ingestible >= 0 {
		return IconFlame
	}
	return IconWarning
}

// Ring is one circular progress indicator. Ratio is unclamped; Fill is the
// portion of a full turn that gets drawn.
type Ring struct {
	Label     string  `json:"label"`
	Ratio     float64 `json:"ratio"`
	Fill      float64 `json:"fill"`
	Style     Style   `json:"style"`
	LineWidth float64 `json:"line_width,omitempty"`
}

func newRing(label string, numerator, denominator float64, style Style, lineWidth float64) Ring {
	ratio := gauge.RingRatio(numerator, denominator)
	return Ring{
		Label:     label,
		Ratio:     ratio,
		Fill:      gauge.ClampUnit(ratio),
		Style:     style,
		LineWidth: lineWidth,
	}
}

// Value is a labelled number. Redacted values carry no number.
type Value struct {
	Label    string   `json:"label"`
	Amount   *float64 `json:"amount,omitempty"`
	Unit     string   `json:"unit"`
	Style    Style    `json:"style"`
	Redacted bool     `json:"redacted,omitempty"`
}

func newValue(label string, amount float64, unit string, style Style, redact bool) Value {
	v := Value{Label: label, Unit: unit, Style: style, Redacted: redact}
	if !redact {
		v.Amount = &amount
	}
	return v
}

// Bar is one horizontal bar of the bar-chart widget.
type Bar struct {
	Label string  `json:"label"`
	Width float64 `json:"width"`
	Style Style   `json:"style"`
	Faded bool    `json:"faded,omitempty"`
}

// CalorieSection is the calorie half of the detail view.
type CalorieSection struct {
	Ring       Ring  `json:"ring"`
	Resting    Value `json:"resting"`
	Active     Value `json:"active"`
	Dietary    Value `json:"dietary"`
	Ingestible Value `json:"ingestible"`
}

// NutritionSection shows three concentric rings against the goal.
type NutritionSection struct {
	Rings         [3]Ring `json:"rings"`
	Protein       Value   `json:"protein"`
	Carbohydrates Value   `json:"carbohydrates"`
	Fat           Value   `json:"fat"`
}

type DetailView struct {
	Date      string           `json:"date"`
	Calorie   CalorieSection   `json:"calorie"`
	Nutrition NutritionSection `json:"nutrition"`
}

type SmallWidget struct {
	Date       string `json:"date"`
	Ring       Ring   `json:"ring"`
	Icon       Icon   `json:"icon"`
	Ingestible Value  `json:"ingestible"`
}

type MediumWidget struct {
	Date        string `json:"date"`
	Ring        Ring   `json:"ring"`
	Icon        Icon   `json:"icon"`
	Expenditure Value  `json:"expenditure"`
	Dietary     Value  `json:"dietary"`
	Ingestible  Value  `json:"ingestible"`
}

type BarChartWidget struct {
	Date        string  `json:"date"`
	MaxWidth    float64 `json:"max_width"`
	Expenditure Bar     `json:"expenditure_bar"`
	Intake      Bar     `json:"intake_bar"`
	Values      []Value `json:"values"`
}

// widgetOptions is what the host supplies besides the record itself.
type widgetOptions struct {
	Goal    MacroNutrientGoal
	Bars    gauge.BarSizer
	Privacy bool
}

func energyRing(e EnergyReading, lineWidth float64) Ring {
	return newRing("Dietary", e.Dietary, e.TotalExpenditure(), StyleIntake, lineWidth)
}

func buildDetail(r DailyRecord, opts widgetOptions) DetailView {
	e, n, g := r.Energy, r.Nutrition, opts.Goal
	return DetailView{
		Date: r.Date,
		Calorie: CalorieSection{
			Ring:       energyRing(e, 20),
			Resting:    newValue("Resting", e.Resting, "kcal", StyleConsumption, opts.Privacy),
			Active:     newValue("Active", e.Active, "kcal", StyleConsumption, opts.Privacy),
			Dietary:    newValue("Dietary", e.Dietary, "kcal", StyleIntake, opts.Privacy),
			Ingestible: newValue("Ingestible", e.Ingestible, "kcal", StyleIngestible, opts.Privacy),
		},
		Nutrition: NutritionSection{
			Rings: [3]Ring{
				newRing("Protein", n.Protein, g.Protein, StyleProtein, 20),
				newRing("Carbohydrates", n.Carbohydrates, g.Carbohydrates, StyleCarbohydrates, 30),
				newRing("Fat", n.FatTotal, g.FatTotal, StyleFat, 50),
			},
			Protein:       newValue("Protein", n.Protein, "g", StyleProtein, opts.Privacy),
			Carbohydrates: newValue("Carbohydrates", n.Carbohydrates, "g", StyleCarbohydrates, opts.Privacy),
			Fat:           newValue("Fat", n.FatTotal, "g", StyleFat, opts.Privacy),
		},
	}
}

func buildSmall(r DailyRecord, opts widgetOptions) SmallWidget {
	return SmallWidget{
		Date:       r.Date,
		Ring:       energyRing(r.Energy, 0),
		Icon:       statusIcon(r.Energy),
		Ingestible: newValue("Ingestible", r.Energy.Ingestible, "kcal", StyleIngestible, opts.Privacy),
	}
}

func energyValues(e EnergyReading, privacy bool) (expenditure, dietary, ingestible Value) {
	return newValue("Expenditure", e.TotalExpenditure(), "kcal", StyleConsumption, privacy),
		newValue("Dietary", e.Dietary, "kcal", StyleIntake, privacy),
		newValue("Ingestible", e.Ingestible, "kcal", StyleIngestible, privacy)
}

func buildMedium(r DailyRecord, opts widgetOptions) MediumWidget {
	expenditure, dietary, ingestible := energyValues(r.Energy, opts.Privacy)
	return MediumWidget{
		Date:        r.Date,
		Ring:        energyRing(r.Energy, 0),
		Icon:        statusIcon(r.Energy),
		Expenditure: expenditure,
		Dietary:     dietary,
		Ingestible:  ingestible,
	}
}

func buildBarChart(r DailyRecord, opts widgetOptions) BarChartWidget {
	w := BarChartWidget{Date: r.Date, MaxWidth: opts.Bars.MaxWidth}

	// Under privacy both bars are drawn full width and faded so the
	// proportion between them is not revealed.
	if opts.Privacy {
		w.Expenditure = Bar{Label: "Expenditure", Width: opts.Bars.MaxWidth, Style: StyleConsumption, Faded: true}
		w.Intake = Bar{Label: "Dietary", Width: opts.Bars.MaxWidth, Style: StyleIntake, Faded: true}
	} else {
		expenditure, intake := opts.Bars.Extents(r.Energy.TotalExpenditure(), r.Energy.Dietary)
		w.Expenditure = Bar{Label: "Expenditure", Width: expenditure, Style: StyleConsumption}
		w.Intake = Bar{Label: "Dietary", Width: intake, Style: StyleIntake}
	}

	expenditure, dietary, ingestible := energyValues(r.Energy, opts.Privacy)
	w.Values = []Value{expenditure, dietary, ingestible}
	return w
}

// widgetBuilders maps widget kinds to their builders.
var widgetBuilders = map[string]func(DailyRecord, widgetOptions) any{
	"detail": func(r DailyRecord, o widgetOptions) any { return buildDetail(r, o) },
	"small":  func(r DailyRecord, o widgetOptions) any { return buildSmall(r, o) },
	"medium": func(r DailyRecord, o widgetOptions) any { return buildMedium(r, o) },
	"bar":    func(r DailyRecord, o widgetOptions) any { return buildBarChart(r, o) },
}

func widgetKinds() []string {
	kinds := make([]string, 0, len(widgetBuilders))
	for k := range widgetBuilders {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// buildWidget returns the view model for kind, or false for an unknown kind.
func buildWidget(kind string, r DailyRecord, opts widgetOptions) (any, bool) {
	build, ok := widgetBuilders[kind]
	if !ok {
		return nil, false
	}
	return build(r, opts), true
}
