package strategy

import (
	"math"
	"sort"

	"TwseScreener/internal/model"
)

// Criteria holds the screening thresholds shared by all strategies.
type Criteria struct {
	MinVolume          float64
	MinPrice           float64
	MaxPrice           float64
	MinMarketCap       float64
	GrowthMinMarketCap float64
}

// DefaultCriteria mirrors the standard TWSE screening thresholds.
func DefaultCriteria() Criteria {
	return Criteria{
		MinVolume:          1000,
		MinPrice:           10,
		MaxPrice:           500,
		MinMarketCap:       10_000_000_000,
		GrowthMinMarketCap: 50_000_000_000,
	}
}

// Strategy couples an eligibility gate with a scoring rubric and a result cap.
// Gates are all-or-nothing: failing any single condition excludes the
// instrument no matter how high its would-be score.
type Strategy struct {
	Name     string
	Cap      int
	Eligible func(r model.StockRecord, c Criteria) bool
	Score    func(r model.StockRecord, c Criteria) float64
}

// Results holds the ranked output of all four strategies.
type Results struct {
	Technical   []model.ScoredStock
	Fundamental []model.ScoredStock
	Hybrid      []model.ScoredStock
	Thematic    model.ThematicPicks
}

// Analyze runs every strategy over the same input collection. Strategies are
// pure and independent; the input is never mutated and an instrument may
// appear in several lists with different scores. An empty input yields empty
// lists, not an error.
func Analyze(records []model.StockRecord, c Criteria) Results {
	return Results{
		Technical:   evaluate(Technical, records, c),
		Fundamental: evaluate(Fundamental, records, c),
		Hybrid:      evaluate(Hybrid, records, c),
		Thematic: model.ThematicPicks{
			HighDividend: evaluate(HighDividend, records, c),
			Growth:       evaluate(Growth, records, c),
			Value:        evaluate(Value, records, c),
		},
	}
}

// evaluate applies one strategy: gate, score, rank descending with ties kept
// in input order, cap.
func evaluate(s Strategy, records []model.StockRecord, c Criteria) []model.ScoredStock {
	scored := make([]model.ScoredStock, 0, len(records))
	for _, r := range records {
		if !s.Eligible(r, c) {
			continue
		}
		scored = append(scored, model.ScoredStock{
			StockRecord:   r,
			StrategyScore: round2(s.Score(r, c)),
			Strategy:      s.Name,
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].StrategyScore > scored[j].StrategyScore
	})
	if len(scored) > s.Cap {
		scored = scored[:s.Cap]
	}
	return scored
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
