package calchttp

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"bmicalc/internal/bmi"
)

// parseForm reads the four form fields. Range limits are applied later by
// the session's clamp, here only the number syntax is checked.
func parseForm(get func(string) string) (bmi.Measurement, error) {
	ageRaw, err := parseNumber("age", get("age"))
	if err != nil {
		return bmi.Measurement{}, err
	}
	age, err := wholeAge(ageRaw)
	if err != nil {
		return bmi.Measurement{}, err
	}
	gender, err := bmi.ParseGender(get("gender"))
	if err != nil {
		return bmi.Measurement{}, err
	}
	weight, err := parseNumber("weight_kg", get("weight_kg"))
	if err != nil {
		return bmi.Measurement{}, err
	}
	height, err := parseNumber("height_m", get("height_m"))
	if err != nil {
		return bmi.Measurement{}, err
	}
	return bmi.Measurement{
		Age:      age,
		Gender:   gender,
		WeightKg: weight,
		HeightM:  height,
	}, nil
}

func parseNumber(field, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", field)
	}
	return v, nil
}

// wholeAge rejects fractional ages and bounds the rest to the age range
// before the int conversion, so huge values cannot overflow.
func wholeAge(v float64) (int, error) {
	if math.IsNaN(v) || v != math.Trunc(v) {
		return 0, fmt.Errorf("age must be a whole number")
	}
	switch {
	case v > bmi.MaxAge:
		return bmi.MaxAge, nil
	case v < bmi.MinAge:
		return bmi.MinAge, nil
	}
	return int(v), nil
}
