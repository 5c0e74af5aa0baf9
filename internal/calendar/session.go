package calendar

import "time"

// SessionStatus describes where a wall-clock time falls in the TWSE session.
type SessionStatus string

const (
	SessionRegular    SessionStatus = "regular_trading"     // 09:00–13:30
	SessionAfterHours SessionStatus = "after_hours_trading" // 14:00–14:30
	SessionClosed     SessionStatus = "market_closed"
)

// Session returns the market session for t. It only inspects the clock;
// callers must gate on IsTradingDay separately.
func Session(t time.Time) SessionStatus {
	minutes := t.Hour()*60 + t.Minute()
	switch {
	case minutes >= 9*60 && minutes <= 13*60+30:
		return SessionRegular
	case minutes >= 14*60 && minutes <= 14*60+30:
		return SessionAfterHours
	default:
		return SessionClosed
	}
}
