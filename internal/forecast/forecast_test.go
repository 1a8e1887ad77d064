package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearFitOnIncreasingSeries(t *testing.T) {
	proj, err := Project([]float64{100, 200, 300, 400, 500}, ModeLinear)
	require.NoError(t, err)

	require.Len(t, proj.Fitted, 5)
	require.Len(t, proj.Future, Horizon)

	// A perfectly linear series should be reproduced almost exactly.
	for i, want := range []float64{100, 200, 300, 400, 500} {
		assert.InDelta(t, want, proj.Fitted[i].Value, 1e-6)
	}

	// Non-declining trend must be flagged as growing.
	first := proj.Fitted[0].Value
	last := proj.Fitted[len(proj.Fitted)-1].Value
	assert.GreaterOrEqual(t, last, first)
	assert.True(t, proj.Growing)

	// Extrapolation continues past the observed indices.
	assert.Equal(t, 5, proj.Future[0].Index)
	assert.InDelta(t, 600, proj.Future[0].Value, 1e-6)
}

func TestDecliningSeries(t *testing.T) {
	proj, err := Project([]float64{500, 400, 300, 200}, ModeLinear)
	require.NoError(t, err)
	assert.False(t, proj.Growing)
}

func TestInsufficientData(t *testing.T) {
	_, err := Project([]float64{42}, ModeLinear)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = Project(nil, ModeSmoothed)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestSmoothedFitReproducesCubic(t *testing.T) {
	// y = x^3 - 2x + 1 sampled at x = 0..5
	values := []float64{1, 0, 5, 22, 57, 116}
	proj, err := Project(values, ModeSmoothed)
	require.NoError(t, err)

	for i, want := range values {
		assert.InDelta(t, want, proj.Fitted[i].Value, 1e-6)
	}
	require.Len(t, proj.Future, Horizon)
	// x=6: 216 - 12 + 1
	assert.InDelta(t, 205, proj.Future[0].Value, 1e-6)
}

func TestSmoothedDegreeCappedOnShortSeries(t *testing.T) {
	// Two points cannot support a cubic; the fit degrades to a line
	// instead of failing.
	proj, err := Project([]float64{10, 30}, ModeSmoothed)
	require.NoError(t, err)
	assert.InDelta(t, 10, proj.Fitted[0].Value, 1e-6)
	assert.InDelta(t, 30, proj.Fitted[1].Value, 1e-6)
	assert.InDelta(t, 50, proj.Future[0].Value, 1e-6)
}
