package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTradingResultIsValid(t *testing.T) {
	valid := []TradingResult{
		ResultLossOverall, ResultProfitOverall, ResultLiquidated,
		ResultBreakeven, ResultNoTrade, ResultNoResult,
	}
	for _, r := range valid {
		assert.True(t, r.IsValid(), "expected %q to be valid", r)
	}

	assert.False(t, TradingResult("").IsValid())
	assert.False(t, TradingResult("profit overall").IsValid(), "values are case sensitive display strings")
	assert.False(t, TradingResult("Won").IsValid())
}

func TestTradingDailyBookPatchApply(t *testing.T) {
	base := TradingDailyBook{
		ID:              7,
		UserID:          1,
		AccountID:       3,
		Date:            "2024-05-01",
		StartingBalance: 1000,
		EndingBalance:   1200,
		Sentiment:       "calm",
		Withdraw:        0,
		Summary:         "two trades",
		Result:          ResultProfitOverall,
		Remarks:         "",
	}

	t.Run("empty patch is identity", func(t *testing.T) {
		assert.Equal(t, base, TradingDailyBookPatch{}.Apply(base))
	})

	t.Run("every supplied field overwrites", func(t *testing.T) {
		accountID := int64(9)
		date := "2024-05-02"
		ending := 900.0
		sentiment := "anxious"
		withdraw := 50.0
		summary := "one loss"
		result := ResultLossOverall
		remarks := "overtraded"

		patched := TradingDailyBookPatch{
			AccountID:     &accountID,
			Date:          &date,
			EndingBalance: &ending,
			Sentiment:     &sentiment,
			Withdraw:      &withdraw,
			Summary:       &summary,
			Result:        &result,
			Remarks:       &remarks,
		}.Apply(base)

		assert.Equal(t, accountID, patched.AccountID)
		assert.Equal(t, date, patched.Date)
		assert.Equal(t, ending, patched.EndingBalance)
		assert.Equal(t, sentiment, patched.Sentiment)
		assert.Equal(t, withdraw, patched.Withdraw)
		assert.Equal(t, summary, patched.Summary)
		assert.Equal(t, result, patched.Result)
		assert.Equal(t, remarks, patched.Remarks)

		// Identity and the stamped starting balance are never patchable.
		assert.Equal(t, base.ID, patched.ID)
		assert.Equal(t, base.UserID, patched.UserID)
		assert.Equal(t, base.StartingBalance, patched.StartingBalance)
	})

	t.Run("zero values are applied when supplied", func(t *testing.T) {
		ending := 0.0
		patched := TradingDailyBookPatch{EndingBalance: &ending}.Apply(base)
		assert.Equal(t, 0.0, patched.EndingBalance)
	})
}
