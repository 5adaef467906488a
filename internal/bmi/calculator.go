package bmi

import (
	"math"

	"github.com/shopspring/decimal"
)

// 年龄/性别修正系数，按原样保留。
const (
	teenAgeBelow  = 18
	elderAgeAbove = 60
	teenFactor    = 1.1
	elderFactor   = 0.9
	femaleFactor  = 0.95
)

const displayDecimal = 1

// Input bounds applied by Clamp.
const (
	MinAge      = 1
	MaxAge      = 120
	MinWeightKg = 1.0
	MaxWeightKg = 300.0
	MinHeightM  = 0.5
	MaxHeightM  = 3.0
)

var (
	thresholdHealthy    = decimal.NewFromFloat(18.5)
	thresholdOverweight = decimal.NewFromInt(25)
	thresholdObese      = decimal.NewFromInt(30)
)

// DefaultMeasurement mirrors the initial values of the input form.
func DefaultMeasurement() Measurement {
	return Measurement{Age: 25, Gender: GenderMale, WeightKg: 70, HeightM: 1.75}
}

// Clamp pulls every numeric field into its form range. NaN is left alone so
// Compute can reject it.
func (m Measurement) Clamp() Measurement {
	m.Age = clampInt(m.Age, MinAge, MaxAge)
	m.WeightKg = clampFloat(m.WeightKg, MinWeightKg, MaxWeightKg)
	m.HeightM = clampFloat(m.HeightM, MinHeightM, MaxHeightM)
	return m
}

// Compute runs the calculator on m as-is (no clamping).
func (m Measurement) Compute() (Result, error) {
	return Compute(m.WeightKg, m.HeightM, m.Age, m.Gender)
}

// Compute returns the adjusted BMI, its category and the category advice.
func Compute(weightKg, heightM float64, age int, gender Gender) (Result, error) {
	if err := checkPositive("height_m", heightM); err != nil {
		return Result{}, err
	}
	if err := checkPositive("weight_kg", weightKg); err != nil {
		return Result{}, err
	}
	base := weightKg / (heightM * heightM)
	if math.IsInf(base, 0) || math.IsNaN(base) {
		return Result{}, &InvalidInputError{Field: "height_m", Value: heightM, Reason: "bmi is not finite"}
	}
	adjusted := base
	switch {
	case age < teenAgeBelow:
		adjusted *= teenFactor
	case age > elderAgeAbove:
		adjusted *= elderFactor
	}
	if gender == GenderFemale {
		adjusted *= femaleFactor
	}
	cat := Classify(adjusted)
	info, _ := Lookup(cat)
	return Result{
		BaseBMI:     base,
		AdjustedBMI: adjusted,
		Category:    cat,
		Label:       info.Label,
		Color:       info.Color,
		Tips:        info.Tips,
	}, nil
}

// Classify maps an adjusted BMI onto the half-open bands
// (<18.5, [18.5,25), [25,30), >=30). NaN falls through to Obese.
func Classify(adjusted float64) Category {
	switch {
	case math.IsNaN(adjusted), math.IsInf(adjusted, 1):
		return CategoryObese
	case math.IsInf(adjusted, -1):
		return CategoryUnderweight
	}
	v := decimal.NewFromFloat(adjusted)
	switch {
	case v.LessThan(thresholdHealthy):
		return CategoryUnderweight
	case v.LessThan(thresholdOverweight):
		return CategoryHealthy
	case v.LessThan(thresholdObese):
		return CategoryOverweight
	default:
		return CategoryObese
	}
}

// Display formats the adjusted BMI for the result highlight, e.g. "22.9".
func (r Result) Display() string {
	return decimal.NewFromFloat(r.AdjustedBMI).StringFixed(displayDecimal)
}

// Headline is the category line shown under the BMI value.
func (r Result) Headline() string {
	info, ok := Lookup(r.Category)
	if !ok || info.Icon == "" {
		return r.Label
	}
	return r.Label + " " + info.Icon
}

func checkPositive(field string, v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return &InvalidInputError{Field: field, Value: v, Reason: "must be a finite number"}
	case v <= 0:
		return &InvalidInputError{Field: field, Value: v, Reason: "must be greater than zero"}
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return math.Min(math.Max(v, lo), hi)
}
