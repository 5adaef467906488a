package session

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"bmicalc/internal/bmi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestSession_SubmitAppendsInOrder(t *testing.T) {
	m := NewManager(Options{})
	s := m.Create()

	inputs := []bmi.Measurement{
		{Age: 25, Gender: bmi.GenderMale, WeightKg: 70, HeightM: 1.75},
		{Age: 16, Gender: bmi.GenderFemale, WeightKg: 70, HeightM: 1.75},
		{Age: 65, Gender: bmi.GenderMale, WeightKg: 100, HeightM: 1.6},
	}
	for _, in := range inputs {
		_, err := s.Submit(in)
		require.NoError(t, err)
	}
	hist := s.History()
	require.Len(t, hist, 3)
	assert.Equal(t, bmi.CategoryHealthy, hist[0].Category)
	assert.Equal(t, bmi.CategoryHealthy, hist[1].Category)
	assert.Equal(t, bmi.CategoryObese, hist[2].Category)

	rows := s.Rows()
	assert.Equal(t, 3, rows[2].Index)
	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, hist[2], latest)
}

func TestSession_SubmitClampsInput(t *testing.T) {
	s := NewManager(Options{}).Create()
	res, err := s.Submit(bmi.Measurement{Age: 30, Gender: bmi.GenderMale, WeightKg: 1000, HeightM: 0})
	require.NoError(t, err)
	assert.InDelta(t, 300/(0.5*0.5), res.AdjustedBMI, 1e-9)
}

func TestSession_FailedSubmitLeavesHistory(t *testing.T) {
	s := NewManager(Options{}).Create()
	_, err := s.Submit(bmi.DefaultMeasurement())
	require.NoError(t, err)

	_, err = s.Submit(bmi.Measurement{Age: 30, Gender: bmi.GenderMale, WeightKg: 70, HeightM: math.NaN()})
	var invalid *bmi.InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, 1, s.Len())
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m := NewManager(Options{})
	a := m.Create()
	b := m.Create()
	assert.NotEqual(t, a.ID(), b.ID())

	_, err := a.Submit(bmi.DefaultMeasurement())
	require.NoError(t, err)
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 0, b.Len())

	got, ok := m.Get(a.ID())
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestManager_SweepEndsIdleSessions(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	m := NewManager(Options{IdleTTL: 10 * time.Minute, Now: clock.Now})

	idle := m.Create()
	active := m.Create()

	clock.Advance(8 * time.Minute)
	_, ok := m.Get(active.ID())
	require.True(t, ok)

	clock.Advance(5 * time.Minute)
	assert.Equal(t, 1, m.Sweep(clock.Now()))
	assert.Equal(t, 1, m.Len())

	_, ok = m.Get(idle.ID())
	assert.False(t, ok)

	s, created := m.GetOrCreate(idle.ID())
	assert.True(t, created)
	assert.NotEqual(t, idle.ID(), s.ID())
	assert.Equal(t, 0, s.Len())
}

func TestManager_RunStopsOnCancel(t *testing.T) {
	m := NewManager(Options{SweepInterval: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
