package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/tradingjournal/backend/src/models"
)

func planPayload() models.TradingPlanPayload {
	return models.TradingPlanPayload{
		Day:            "Monday",
		AccountBalance: 10000,
		DailyTarget:    200,
		RequiredLots:   1.25,
		RoundedLots:    1.0,
		RiskAmount:     100,
		RiskPercentage: 1,
		SLPips:         20,
		TPPips:         40,
		Status:         false,
		Reason:         "NFP week",
		PlanDate:       "2024-05-06",
	}
}

func TestTradingPlanCRUD(t *testing.T) {
	db := newTestDB(t)
	svc := NewTradingPlanService(db)
	userID := newTestUser(t, db, "alice")

	created, err := svc.Create(userID, planPayload())
	require.NoError(t, err)
	assert.Equal(t, "Monday", created.Day)
	assert.Equal(t, 1.25, created.RequiredLots)
	assert.False(t, created.Status)

	got, err := svc.Get(userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	// Full overwrite update.
	payload := planPayload()
	payload.Day = "Tuesday"
	payload.DailyTarget = 300
	payload.Reason = ""
	updated, err := svc.Update(userID, created.ID, payload)
	require.NoError(t, err)
	assert.Equal(t, "Tuesday", updated.Day)
	assert.Equal(t, 300.0, updated.DailyTarget)
	assert.Empty(t, updated.Reason)

	list, err := svc.List(userID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.Delete(userID, created.ID))
	_, err = svc.Get(userID, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTradingPlanToggleStatusTwiceRoundTrips(t *testing.T) {
	db := newTestDB(t)
	svc := NewTradingPlanService(db)
	userID := newTestUser(t, db, "alice")

	created, err := svc.Create(userID, planPayload())
	require.NoError(t, err)
	require.False(t, created.Status)

	once, err := svc.ToggleStatus(userID, created.ID)
	require.NoError(t, err)
	assert.True(t, once.Status)

	// Only the status flag changes.
	assert.Equal(t, created.Day, once.Day)
	assert.Equal(t, created.DailyTarget, once.DailyTarget)
	assert.Equal(t, created.PlanDate, once.PlanDate)

	twice, err := svc.ToggleStatus(userID, created.ID)
	require.NoError(t, err)
	assert.False(t, twice.Status)
}

func TestTradingPlanOwnershipIsolation(t *testing.T) {
	db := newTestDB(t)
	svc := NewTradingPlanService(db)
	alice := newTestUser(t, db, "alice")
	bob := newTestUser(t, db, "bob")

	plan, err := svc.Create(alice, planPayload())
	require.NoError(t, err)

	_, err = svc.Get(bob, plan.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.ToggleStatus(bob, plan.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(bob, plan.ID, planPayload())
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(bob, plan.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
