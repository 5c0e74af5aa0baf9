package calculator

import "errors"

// CalculateRSI computes RSI using simple rolling means of gains and losses
// over the last `period` deltas (not Wilder smoothing). Requires at least
// period+1 closes. When the average loss is zero the ratio is unbounded and
// the RSI is clamped to exactly 100; the result is always within [0, 100].
func CalculateRSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) < period+1 {
		return 0, errors.New("not enough data for RSI calculation")
	}

	var gains, losses float64
	for i := len(closes) - period; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}
