package calchttp

import (
	"math"
	"net/url"
	"testing"

	"bmicalc/internal/bmi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWholeAge(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{17, 17},
		{18, 18},
		{0, bmi.MinAge},
		{-5, bmi.MinAge},
		{1e20, bmi.MaxAge},
		{-1e20, bmi.MinAge},
		{math.Inf(1), bmi.MaxAge},
	}
	for _, tc := range cases {
		got, err := wholeAge(tc.in)
		require.NoError(t, err, "age %v", tc.in)
		assert.Equal(t, tc.want, got, "age %v", tc.in)
	}
	for _, bad := range []float64{17.6, 0.5, math.NaN()} {
		_, err := wholeAge(bad)
		assert.Error(t, err, "age %v", bad)
	}
}

func TestParseForm_AgeMatchesPayload(t *testing.T) {
	form := url.Values{"age": {"1e20"}, "gender": {"Male"}, "weight_kg": {"70"}, "height_m": {"1.75"}}
	fromForm, err := parseForm(form.Get)
	require.NoError(t, err)
	fromJSON, err := parseCalculatePayload([]byte(`{"age":1e20,"gender":"Male","weight_kg":70,"height_m":1.75}`))
	require.NoError(t, err)
	assert.Equal(t, fromForm, fromJSON)
	assert.Equal(t, bmi.MaxAge, fromJSON.Age)
}
