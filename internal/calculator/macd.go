package calculator

import "errors"

// MACDResult holds the latest-point MACD values.
type MACDResult struct {
	MACD      float64
	Signal    float64
	Histogram float64
}

// emaSeries computes the exponential moving average at every point using the
// include-seed convention: each output is a weighted average of the whole
// history so far with weights (1-alpha)^k, alpha = 2/(span+1). This is the
// finite-series weighted form, not the recursive update; the two diverge early
// in the series and downstream scores depend on this exact convention.
func emaSeries(values []float64, span int) []float64 {
	alpha := 2.0 / (float64(span) + 1.0)
	decay := 1.0 - alpha

	out := make([]float64, len(values))
	var num, den float64
	for i, v := range values {
		num = num*decay + v
		den = den*decay + 1.0
		out[i] = num / den
	}
	return out
}

// CalculateEMA returns the include-seed EMA of the series at the latest point.
func CalculateEMA(values []float64, span int) (float64, error) {
	if span <= 0 {
		return 0, errors.New("span must be positive")
	}
	if len(values) == 0 {
		return 0, errors.New("no data for EMA calculation")
	}
	s := emaSeries(values, span)
	return s[len(s)-1], nil
}

// CalculateMACD computes MACD(12,26) with a 9-span signal line, all using the
// include-seed EMA convention, evaluated at the latest point. Requires at
// least 26 closes so the slow EMA covers a full span.
func CalculateMACD(closes []float64) (MACDResult, error) {
	if len(closes) < 26 {
		return MACDResult{}, errors.New("not enough data for MACD calculation")
	}

	fast := emaSeries(closes, 12)
	slow := emaSeries(closes, 26)

	macd := make([]float64, len(closes))
	for i := range closes {
		macd[i] = fast[i] - slow[i]
	}
	signal := emaSeries(macd, 9)

	last := len(closes) - 1
	return MACDResult{
		MACD:      macd[last],
		Signal:    signal[last],
		Histogram: macd[last] - signal[last],
	}, nil
}
