package model

// StockRecord is the normalized per-instrument snapshot the strategies score.
// All numeric fields are finite; ratios the source lacks default to 0.
type StockRecord struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_percent"`
	MA20          float64 `json:"ma20"`
	RSI           float64 `json:"rsi"`
	MACD          float64 `json:"macd"`
	MACDSignal    float64 `json:"macd_signal"`
	MACDHist      float64 `json:"macd_hist"`
	Volume        float64 `json:"volume"`
	AvgVolume20   float64 `json:"avg_volume_20"`
	PERatio       float64 `json:"pe_ratio"`
	PBRatio       float64 `json:"pb_ratio"`
	DividendYield float64 `json:"dividend_yield"`
	MarketCap     float64 `json:"market_cap"`
	ROE           float64 `json:"roe"`
}

// ScoredStock is a StockRecord plus the score one strategy assigned it.
// The same instrument may carry different scores under different strategies.
type ScoredStock struct {
	StockRecord
	StrategyScore float64 `json:"strategy_score"`
	Strategy      string  `json:"strategy"`
}
