package calculator

import "errors"

// CalculateSMA computes the simple moving average of the last `period` values.
func CalculateSMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), nil
}

// CalculateChangePercent returns the latest-point percentage change
// (last close vs. previous close). Requires at least 2 values.
func CalculateChangePercent(closes []float64) (float64, error) {
	if len(closes) < 2 {
		return 0, errors.New("not enough data for change percent")
	}
	prev := closes[len(closes)-2]
	if prev == 0 {
		return 0, errors.New("previous close is zero")
	}
	return (closes[len(closes)-1] - prev) / prev * 100, nil
}
