package models

// TradingResult is the enumerated outcome of one trading day. The values
// are display strings and are stored verbatim in the database.
type TradingResult string

const (
	ResultLossOverall   TradingResult = "Loss Overall"
	ResultProfitOverall TradingResult = "Profit Overall"
	ResultLiquidated    TradingResult = "Liquidated"
	ResultBreakeven     TradingResult = "Breakeven"
	ResultNoTrade       TradingResult = "No Trade"
	ResultNoResult      TradingResult = "No Result"
)

// IsValid reports whether r is one of the known result values.
func (r TradingResult) IsValid() bool {
	switch r {
	case ResultLossOverall, ResultProfitOverall, ResultLiquidated,
		ResultBreakeven, ResultNoTrade, ResultNoResult:
		return true
	}
	return false
}

// TradingDailyBook is one day's realized trading result for one account.
// StartingBalance is stamped by the server from the account's balance at
// creation time and is never client-supplied.
type TradingDailyBook struct {
	ID              int64         `json:"id"`
	UserID          int64         `json:"user_id"`
	AccountID       int64         `json:"account_id"`
	Date            string        `json:"date"` // YYYY-MM-DD
	StartingBalance float64       `json:"starting_balance"`
	EndingBalance   float64       `json:"ending_balance"`
	Sentiment       string        `json:"sentiment,omitempty"`
	Withdraw        float64       `json:"withdraw"`
	Summary         string        `json:"summary,omitempty"`
	Result          TradingResult `json:"result"`
	Remarks         string        `json:"remarks,omitempty"`
}

// TradingDailyBookCreate is the request body for creating a book entry.
// There is no starting balance field on purpose.
type TradingDailyBookCreate struct {
	AccountID     int64         `json:"account_id"`
	Date          string        `json:"date"`
	EndingBalance float64       `json:"ending_balance"`
	Sentiment     string        `json:"sentiment"`
	Withdraw      float64       `json:"withdraw"`
	Summary       string        `json:"summary"`
	Result        TradingResult `json:"result"`
	Remarks       string        `json:"remarks"`
}

// TradingDailyBookPatch is the merge-patch body for updating a book entry.
// Only non-nil fields are applied; this is the one partial-update contract
// in the API, unlike the full-overwrite account and plan updates.
type TradingDailyBookPatch struct {
	AccountID     *int64         `json:"account_id"`
	Date          *string        `json:"date"`
	EndingBalance *float64       `json:"ending_balance"`
	Sentiment     *string        `json:"sentiment"`
	Withdraw      *float64       `json:"withdraw"`
	Summary       *string        `json:"summary"`
	Result        *TradingResult `json:"result"`
	Remarks       *string        `json:"remarks"`
}

// Apply returns a copy of base with every supplied patch field overwritten.
// StartingBalance is intentionally not patchable.
func (p TradingDailyBookPatch) Apply(base TradingDailyBook) TradingDailyBook {
	out := base
	if p.AccountID != nil {
		out.AccountID = *p.AccountID
	}
	if p.Date != nil {
		out.Date = *p.Date
	}
	if p.EndingBalance != nil {
		out.EndingBalance = *p.EndingBalance
	}
	if p.Sentiment != nil {
		out.Sentiment = *p.Sentiment
	}
	if p.Withdraw != nil {
		out.Withdraw = *p.Withdraw
	}
	if p.Summary != nil {
		out.Summary = *p.Summary
	}
	if p.Result != nil {
		out.Result = *p.Result
	}
	if p.Remarks != nil {
		out.Remarks = *p.Remarks
	}
	return out
}
