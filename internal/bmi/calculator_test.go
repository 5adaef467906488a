package bmi

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_Examples(t *testing.T) {
	t.Run("adult male healthy", func(t *testing.T) {
		res, err := Compute(70, 1.75, 25, GenderMale)
		require.NoError(t, err)
		assert.InDelta(t, 22.857, res.BaseBMI, 0.001)
		assert.Equal(t, res.BaseBMI, res.AdjustedBMI)
		assert.Equal(t, CategoryHealthy, res.Category)
		assert.Equal(t, "22.9", res.Display())
	})

	t.Run("teen female healthy", func(t *testing.T) {
		res, err := Compute(70, 1.75, 16, GenderFemale)
		require.NoError(t, err)
		assert.InDelta(t, 22.857*1.1*0.95, res.AdjustedBMI, 0.01)
		assert.Equal(t, CategoryHealthy, res.Category)
	})

	t.Run("elderly male obese", func(t *testing.T) {
		res, err := Compute(100, 1.6, 65, GenderMale)
		require.NoError(t, err)
		assert.InDelta(t, 35.156, res.AdjustedBMI, 0.001)
		assert.Equal(t, CategoryObese, res.Category)
		assert.Equal(t, "#e74c3c", res.Color)
		assert.Equal(t, "Obese", res.Label)
	})
}

func TestCompute_AgeBoundaries(t *testing.T) {
	cases := []struct {
		age  int
		want float64
	}{
		{age: 17, want: 22},
		{age: 18, want: 20},
		{age: 60, want: 20},
		{age: 61, want: 18},
	}
	for _, tc := range cases {
		res, err := Compute(20, 1, tc.age, GenderMale)
		require.NoError(t, err)
		assert.InDelta(t, tc.want, res.AdjustedBMI, 1e-9, "age=%d", tc.age)
	}
}

func TestCompute_GenderAdjustment(t *testing.T) {
	female, err := Compute(20, 1, 30, GenderFemale)
	require.NoError(t, err)
	assert.InDelta(t, 19.0, female.AdjustedBMI, 1e-9)

	other, err := Compute(20, 1, 30, GenderOther)
	require.NoError(t, err)
	assert.Equal(t, 20.0, other.AdjustedBMI)
}

func TestClassify_HalfOpenBands(t *testing.T) {
	cases := []struct {
		v    float64
		want Category
	}{
		{18.49, CategoryUnderweight},
		{18.5, CategoryHealthy},
		{24.99, CategoryHealthy},
		{25, CategoryOverweight},
		{29.999, CategoryOverweight},
		{30, CategoryObese},
		{45, CategoryObese},
		{math.NaN(), CategoryObese},
		{math.Inf(-1), CategoryUnderweight},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.v), "v=%v", tc.v)
	}
}

func TestCompute_ExactThresholds(t *testing.T) {
	for w, want := range map[float64]Category{
		18.5: CategoryHealthy,
		25:   CategoryOverweight,
		30:   CategoryObese,
	} {
		res, err := Compute(w, 1, 30, GenderMale)
		require.NoError(t, err)
		assert.Equal(t, w, res.AdjustedBMI)
		assert.Equal(t, want, res.Category)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	a, err := Compute(82.5, 1.81, 44, GenderOther)
	require.NoError(t, err)
	b, err := Compute(82.5, 1.81, 44, GenderOther)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCompute_InvalidInput(t *testing.T) {
	cases := []struct {
		name   string
		weight float64
		height float64
		field  string
	}{
		{"zero height", 70, 0, "height_m"},
		{"negative height", 70, -1.7, "height_m"},
		{"nan height", 70, math.NaN(), "height_m"},
		{"inf weight", math.Inf(1), 1.7, "weight_kg"},
		{"zero weight", 0, 1.7, "weight_kg"},
		{"tiny height", 70, 1e-200, "height_m"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compute(tc.weight, tc.height, 30, GenderMale)
			var invalid *InvalidInputError
			require.True(t, errors.As(err, &invalid), "got %v", err)
			assert.Equal(t, tc.field, invalid.Field)
		})
	}
}

func TestMeasurement_Clamp(t *testing.T) {
	m := Measurement{Age: 0, Gender: GenderFemale, WeightKg: 500, HeightM: 0.1}.Clamp()
	assert.Equal(t, MinAge, m.Age)
	assert.Equal(t, MaxWeightKg, m.WeightKg)
	assert.Equal(t, MinHeightM, m.HeightM)
	assert.Equal(t, GenderFemale, m.Gender)

	m = Measurement{Age: 200, WeightKg: -3, HeightM: 9}.Clamp()
	assert.Equal(t, MaxAge, m.Age)
	assert.Equal(t, MinWeightKg, m.WeightKg)
	assert.Equal(t, MaxHeightM, m.HeightM)

	def := DefaultMeasurement()
	assert.Equal(t, def, def.Clamp())
}

func TestMeasurement_ClampedIsTotal(t *testing.T) {
	for _, m := range []Measurement{
		{Age: 1, Gender: GenderMale, WeightKg: 1, HeightM: 3},
		{Age: 120, Gender: GenderFemale, WeightKg: 300, HeightM: 0.5},
		{Age: -5, Gender: GenderOther, WeightKg: 0, HeightM: 0},
	} {
		_, err := m.Clamp().Compute()
		assert.NoError(t, err, "%+v", m)
	}
}

func TestParseGender(t *testing.T) {
	g, err := ParseGender(" female ")
	require.NoError(t, err)
	assert.Equal(t, GenderFemale, g)

	_, err = ParseGender("robot")
	assert.Error(t, err)
}

func TestCategories_Table(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 4)
	wantColors := []string{"#3498db", "#2ecc71", "#f1c40f", "#e74c3c"}
	for i, info := range cats {
		assert.Equal(t, wantColors[i], info.Color)
		for _, tip := range info.Tips {
			assert.NotEmpty(t, tip)
		}
	}

	cats[0].Color = "#000000"
	info, ok := Lookup(CategoryUnderweight)
	require.True(t, ok)
	assert.Equal(t, "#3498db", info.Color)

	_, ok = Lookup(Category("Unknown"))
	assert.False(t, ok)
}

func TestResult_TipsAreCopies(t *testing.T) {
	res, err := Compute(50, 1.8, 30, GenderMale)
	require.NoError(t, err)
	require.Equal(t, CategoryUnderweight, res.Category)
	res.Tips[0] = "changed"

	again, err := Compute(50, 1.8, 30, GenderMale)
	require.NoError(t, err)
	assert.NotEqual(t, "changed", again.Tips[0])
	assert.Equal(t, "Underweight 🏋️", again.Headline())
}
