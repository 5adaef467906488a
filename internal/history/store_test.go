package history

import (
	"bytes"
	"strings"
	"testing"

	"bmicalc/internal/bmi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func mustCompute(t *testing.T, w, h float64, age int, g bmi.Gender) bmi.Result {
	t.Helper()
	res, err := bmi.Compute(w, h, age, g)
	require.NoError(t, err)
	return res
}

func TestStore_AppendKeepsOrder(t *testing.T) {
	s := NewStore()
	_, ok := s.Latest()
	assert.False(t, ok)
	assert.Empty(t, s.All())

	weights := []float64{50, 70, 85, 110}
	for _, w := range weights {
		s.Append(mustCompute(t, w, 1.75, 30, bmi.GenderMale))
	}
	all := s.All()
	require.Len(t, all, len(weights))
	assert.Equal(t, len(weights), s.Len())
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].AdjustedBMI, all[i].AdjustedBMI)
	}
	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, all[len(all)-1], latest)
}

func TestStore_AllReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Append(mustCompute(t, 70, 1.75, 30, bmi.GenderMale))
	all := s.All()
	all[0].AdjustedBMI = 99
	assert.NotEqual(t, 99.0, s.All()[0].AdjustedBMI)
}

func TestStore_DuplicatesKept(t *testing.T) {
	s := NewStore()
	r := mustCompute(t, 70, 1.75, 30, bmi.GenderMale)
	s.Append(r)
	s.Append(r)
	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, all[0], all[1])
}

func TestRows(t *testing.T) {
	s := NewStore()
	s.Append(mustCompute(t, 50, 1.8, 30, bmi.GenderMale))
	s.Append(mustCompute(t, 100, 1.6, 65, bmi.GenderMale))
	rows := s.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Index)
	assert.Equal(t, bmi.CategoryUnderweight, rows[0].Category)
	assert.Equal(t, 2, rows[1].Index)
	assert.Equal(t, bmi.CategoryObese, rows[1].Category)
}

func TestExport(t *testing.T) {
	rows := []Row{
		{Index: 1, BMI: 22.857142, Category: bmi.CategoryHealthy, Color: "#2ecc71"},
		{Index: 2, BMI: 35.15625, Category: bmi.CategoryObese, Color: "#e74c3c"},
	}

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Export(&buf, rows, FormatCSV))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "calculation,bmi,category", lines[0])
		assert.Equal(t, "1,22.86,Healthy", lines[1])
		assert.Equal(t, "2,35.16,Obese", lines[2])
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Export(&buf, rows, FormatYAML))
		var decoded []Row
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, 22.86, decoded[0].BMI)
		assert.Equal(t, bmi.CategoryObese, decoded[1].Category)
	})

	t.Run("json empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Export(&buf, nil, FormatJSON))
		assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseFormat("xml")
		assert.Error(t, err)
		f, err := ParseFormat("YML")
		require.NoError(t, err)
		assert.Equal(t, FormatYAML, f)
	})
}
