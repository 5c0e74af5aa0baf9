package model

import "time"

// Bar represents a single daily price bar.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Fundamentals holds the valuation snapshot for one instrument.
// Fields the upstream source lacks are zero, never NaN.
type Fundamentals struct {
	Name          string
	PERatio       float64
	PBRatio       float64
	DividendYield float64 // percent
	MarketCap     float64
	ROE           float64 // percent
}
