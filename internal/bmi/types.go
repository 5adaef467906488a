package bmi

import (
	"fmt"
	"strings"
)

// Gender 是输入表单的性别选项。
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Genders returns the selectable options in form order.
func Genders() []Gender {
	return []Gender{GenderMale, GenderFemale, GenderOther}
}

// ParseGender accepts the option names case-insensitively.
func ParseGender(raw string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "male":
		return GenderMale, nil
	case "female":
		return GenderFemale, nil
	case "other":
		return GenderOther, nil
	default:
		return "", fmt.Errorf("unknown gender %q", raw)
	}
}

// Category is one of the four classification bands.
type Category string

const (
	CategoryUnderweight Category = "Underweight"
	CategoryHealthy     Category = "Healthy"
	CategoryOverweight  Category = "Overweight"
	CategoryObese       Category = "Obese"
)

// TipsPerCategory is fixed; every band carries exactly this many tips.
const TipsPerCategory = 5

// Tips 固定长度，按值复制，调用方拿不到查找表的引用。
type Tips [TipsPerCategory]string

// Measurement 是一次提交的输入，计算后不保留。
type Measurement struct {
	Age      int     `json:"age"`
	Gender   Gender  `json:"gender"`
	WeightKg float64 `json:"weight_kg"`
	HeightM  float64 `json:"height_m"`
}

// Result is the outcome of one calculation. It is a plain value and never
// changes after Compute returns it.
type Result struct {
	BaseBMI     float64  `json:"base_bmi" yaml:"base_bmi"`
	AdjustedBMI float64  `json:"adjusted_bmi" yaml:"adjusted_bmi"`
	Category    Category `json:"category" yaml:"category"`
	Label       string   `json:"label" yaml:"label"`
	Color       string   `json:"color" yaml:"color"`
	Tips        Tips     `json:"tips" yaml:"tips"`
}

// InvalidInputError reports a value outside the domain where BMI is defined.
type InvalidInputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s=%v: %s", e.Field, e.Value, e.Reason)
}
