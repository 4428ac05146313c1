package models

// TradingPlan is a daily trading intention. It has no relationship to
// Account rows; it is purely a planning record.
type TradingPlan struct {
	ID             int64   `json:"id"`
	UserID         int64   `json:"user_id"`
	Day            string  `json:"day"`
	AccountBalance float64 `json:"account_balance"`
	DailyTarget    float64 `json:"daily_target"`
	RequiredLots   float64 `json:"required_lots"`
	RoundedLots    float64 `json:"rounded_lots"`
	RiskAmount     float64 `json:"risk_amount"`     // Risk ($)
	RiskPercentage float64 `json:"risk_percentage"` // Risk (%)
	SLPips         float64 `json:"sl_pips"`
	TPPips         float64 `json:"tp_pips"`
	Status         bool    `json:"status"` // false = pending, true = done
	Reason         string  `json:"reason,omitempty"`
	PlanDate       string  `json:"plan_date"` // YYYY-MM-DD
}

// TradingPlanPayload is the request body for creating or replacing a plan.
// Like accounts, plan updates are full overwrites.
type TradingPlanPayload struct {
	Day            string  `json:"day"`
	AccountBalance float64 `json:"account_balance"`
	DailyTarget    float64 `json:"daily_target"`
	RequiredLots   float64 `json:"required_lots"`
	RoundedLots    float64 `json:"rounded_lots"`
	RiskAmount     float64 `json:"risk_amount"`
	RiskPercentage float64 `json:"risk_percentage"`
	SLPips         float64 `json:"sl_pips"`
	TPPips         float64 `json:"tp_pips"`
	Status         bool    `json:"status"`
	Reason         string  `json:"reason"`
	PlanDate       string  `json:"plan_date"`
}
