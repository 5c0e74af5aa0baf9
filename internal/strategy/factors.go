package strategy

import "TwseScreener/internal/model"

// priceInRange is the shared price-band gate.
func priceInRange(r model.StockRecord, c Criteria) bool {
	return r.Price >= c.MinPrice && r.Price <= c.MaxPrice
}

// Technical favors instruments trading above trend on expanding volume,
// avoiding the overbought zone. Max score 100.
var Technical = Strategy{
	Name: "technical",
	Cap:  10,
	Eligible: func(r model.StockRecord, c Criteria) bool {
		return r.Price > r.MA20 &&
			r.Volume > r.AvgVolume20 &&
			r.RSI < 70 &&
			r.Volume > c.MinVolume &&
			priceInRange(r, c)
	},
	Score: func(r model.StockRecord, _ Criteria) float64 {
		score := 0.0
		if r.Price > r.MA20 {
			score += 30
		}
		if r.Volume > r.AvgVolume20 {
			score += 25
		}
		if r.RSI < 30 {
			score += 25 // oversold zone
		} else if r.RSI < 50 {
			score += 15
		}
		if r.MACDHist > 0 {
			score += 20
		}
		return score
	},
}

// Fundamental is a value-tilted rubric over valuation ratios. A zero P/E or
// P/B means the source had no data and never counts as reasonable valuation.
var Fundamental = Strategy{
	Name: "fundamental",
	Cap:  10,
	Eligible: func(r model.StockRecord, c Criteria) bool {
		return r.PERatio > 0 && r.PERatio < 25 &&
			r.PBRatio > 0 && r.PBRatio < 2 &&
			r.MarketCap > c.MinMarketCap &&
			priceInRange(r, c) &&
			r.Volume > c.MinVolume
	},
	Score: func(r model.StockRecord, _ Criteria) float64 {
		score := 0.0
		switch {
		case r.PERatio < 15:
			score += 30
		case r.PERatio < 20:
			score += 20
		default:
			score += 10
		}
		switch {
		case r.PBRatio < 1.5:
			score += 25
		case r.PBRatio < 2:
			score += 15
		default:
			score += 5
		}
		switch {
		case r.DividendYield > 4:
			score += 25
		case r.DividendYield > 2:
			score += 15
		}
		if r.ROE > 15 {
			score += 20
		}
		return score
	},
}

// Hybrid blends the technical trend gate with a looser valuation gate,
// weighting both sides evenly.
var Hybrid = Strategy{
	Name: "hybrid",
	Cap:  10,
	Eligible: func(r model.StockRecord, c Criteria) bool {
		return r.Price > r.MA20 &&
			r.PERatio > 0 && r.PERatio < 30 &&
			r.Volume > c.MinVolume &&
			priceInRange(r, c) &&
			r.MarketCap > c.MinMarketCap
	},
	Score: func(r model.StockRecord, _ Criteria) float64 {
		score := 0.0
		if r.Price > r.MA20 {
			score += 25
		}
		if r.RSI < 50 {
			score += 15
		}
		if r.MACDHist > 0 {
			score += 10
		}
		if r.PERatio < 20 {
			score += 20
		}
		if r.ROE > 10 {
			score += 15
		}
		if r.DividendYield > 3 {
			score += 15
		}
		return score
	},
}

// HighDividend ranks eligible payers by yield with a cheapness bonus. The
// gate already guarantees P/E < 25, so the (25 − P/E) bonus always applies.
var HighDividend = Strategy{
	Name: "high_dividend",
	Cap:  5,
	Eligible: func(r model.StockRecord, c Criteria) bool {
		return r.DividendYield > 4 &&
			r.PERatio > 0 && r.PERatio < 25 &&
			r.Volume > c.MinVolume
	},
	Score: func(r model.StockRecord, _ Criteria) float64 {
		return r.DividendYield*2 + (25 - r.PERatio)
	},
}

// Growth ranks high-ROE large caps; the gate guarantees P/E < 30, so the
// (30 − P/E) bonus always applies.
var Growth = Strategy{
	Name: "growth",
	Cap:  5,
	Eligible: func(r model.StockRecord, c Criteria) bool {
		return r.ROE > 15 &&
			r.PERatio > 0 && r.PERatio < 30 &&
			r.MarketCap > c.GrowthMinMarketCap &&
			r.Volume > c.MinVolume
	},
	Score: func(r model.StockRecord, _ Criteria) float64 {
		return r.ROE + (30 - r.PERatio)
	},
}

// Value ranks cheap dividend payers on combined P/E, P/B, and yield distance.
var Value = Strategy{
	Name: "value",
	Cap:  5,
	Eligible: func(r model.StockRecord, c Criteria) bool {
		return r.PERatio > 0 && r.PERatio < 15 &&
			r.PBRatio > 0 && r.PBRatio < 1.5 &&
			r.DividendYield > 3 &&
			r.Volume > c.MinVolume
	},
	Score: func(r model.StockRecord, _ Criteria) float64 {
		return (15 - r.PERatio) + (1.5-r.PBRatio)*10 + r.DividendYield
	},
}
