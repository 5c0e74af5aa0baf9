package collector

import (
	"context"
	"time"

	"TwseScreener/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars         map[string][]model.Bar
	Fundamentals map[string]model.Fundamentals
	HistoryErr   map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(_ context.Context, symbol string, days int) ([]model.Bar, error) {
	if err, ok := m.HistoryErr[symbol]; ok {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	return GenerateBars(100, 5000, days), nil
}

func (m *MockFetcher) FetchFundamentals(_ context.Context, symbol string) (model.Fundamentals, error) {
	if f, ok := m.Fundamentals[symbol]; ok {
		return f, nil
	}
	return model.Fundamentals{Name: symbol}, nil
}

// GenerateBars produces a gently trending series of daily bars for tests.
func GenerateBars(basePrice, baseVolume float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: baseVolume,
		}
	}
	return bars
}
