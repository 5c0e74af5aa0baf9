package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6}

	sma, err := CalculateSMA(values, 3)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, sma, 1e-9)

	_, err = CalculateSMA(values, 7)
	assert.Error(t, err, "fewer points than period")

	_, err = CalculateSMA(values, 0)
	assert.Error(t, err)
}

func TestCalculateChangePercent(t *testing.T) {
	cp, err := CalculateChangePercent([]float64{100, 95, 104.5})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, cp, 1e-9)

	_, err = CalculateChangePercent([]float64{100})
	assert.Error(t, err)
}

func TestCalculateRSI_RollingMeans(t *testing.T) {
	// 7 gains of +1 and 7 losses of -0.5 in the window:
	// avg gain 0.5, avg loss 0.25, rs=2, rsi = 100 - 100/3.
	closes := []float64{100}
	for i := 0; i < 7; i++ {
		closes = append(closes, closes[len(closes)-1]+1)
		closes = append(closes, closes[len(closes)-1]-0.5)
	}
	rsi, err := CalculateRSI(closes, 14)
	require.NoError(t, err)
	assert.InDelta(t, 100.0-100.0/3.0, rsi, 1e-9)
}

func TestCalculateRSI_ZeroLossClampsTo100(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i) // monotonically rising
	}
	rsi, err := CalculateRSI(closes, 14)
	require.NoError(t, err)
	assert.Equal(t, 100.0, rsi)
}

func TestCalculateRSI_AlwaysWithinBounds(t *testing.T) {
	series := [][]float64{
		{10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0.9, 0.8, 0.7, 0.6, 0.5}, // all losses
		{5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5},            // flat
		{3, 7, 2, 9, 4, 8, 1, 6, 5, 7, 3, 9, 2, 8, 4, 6},
	}
	for _, closes := range series {
		rsi, err := CalculateRSI(closes, 14)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, rsi, 0.0)
		assert.LessOrEqual(t, rsi, 100.0)
		assert.False(t, math.IsNaN(rsi))
	}
}

func TestCalculateRSI_InsufficientData(t *testing.T) {
	_, err := CalculateRSI([]float64{1, 2, 3}, 14)
	assert.Error(t, err)
}

func TestEMASeries_IncludeSeedWeights(t *testing.T) {
	// For span 3, alpha=0.5: ema([a b]) at b = (b + 0.5a) / 1.5.
	s := emaSeries([]float64{4, 10}, 3)
	assert.InDelta(t, 4.0, s[0], 1e-9)
	assert.InDelta(t, (10.0+0.5*4.0)/1.5, s[1], 1e-9)

	// Third point: (c + 0.5b + 0.25a) / 1.75.
	s = emaSeries([]float64{4, 10, 7}, 3)
	assert.InDelta(t, (7.0+0.5*10.0+0.25*4.0)/1.75, s[2], 1e-9)
}

func TestCalculateEMA_DiffersFromRecursiveEarlyOn(t *testing.T) {
	// The recursive update for [4,10] with alpha=0.5 yields 7;
	// the include-seed form yields 8.
	ema, err := CalculateEMA([]float64{4, 10}, 3)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, ema, 1e-9)
}

func TestCalculateMACD_Deterministic(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + 10*math.Sin(float64(i)/5)
	}

	a, err := CalculateMACD(closes)
	require.NoError(t, err)
	b, err := CalculateMACD(closes)
	require.NoError(t, err)

	assert.Equal(t, a, b, "pure function of the series")
	assert.InDelta(t, a.MACD-a.Signal, a.Histogram, 1e-12)
}

func TestCalculateMACD_FlatSeriesIsZero(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 250
	}
	res, err := CalculateMACD(closes)
	require.NoError(t, err)
	assert.InDelta(t, 0, res.MACD, 1e-9)
	assert.InDelta(t, 0, res.Signal, 1e-9)
	assert.InDelta(t, 0, res.Histogram, 1e-9)
}

func TestCalculateMACD_InsufficientData(t *testing.T) {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = float64(i)
	}
	_, err := CalculateMACD(closes)
	assert.Error(t, err)
}
