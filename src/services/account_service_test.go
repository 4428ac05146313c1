package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/tradingjournal/backend/src/models"
)

func TestAccountCRUD(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, newProjectionCache())
	userID := newTestUser(t, db, "alice")

	created, err := svc.Create(userID, models.AccountPayload{
		Name: "FTMO-1", Purpose: "prop challenge", Broker: "FTMO", Balance: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, "FTMO-1", created.Name)
	assert.Equal(t, 1000.0, created.Balance)
	assert.Equal(t, userID, created.UserID)

	got, err := svc.Get(userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	list, err := svc.List(userID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// Update is a full overwrite: every field is replaced.
	updated, err := svc.Update(userID, created.ID, models.AccountPayload{
		Name: "FTMO-1b", Purpose: "funded", Broker: "FTMO", Balance: 2500,
	})
	require.NoError(t, err)
	assert.Equal(t, "FTMO-1b", updated.Name)
	assert.Equal(t, "funded", updated.Purpose)
	assert.Equal(t, 2500.0, updated.Balance)

	require.NoError(t, svc.Delete(userID, created.ID))
	_, err = svc.Get(userID, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountOwnershipIsolation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, newProjectionCache())
	alice := newTestUser(t, db, "alice")
	bob := newTestUser(t, db, "bob")

	account, err := svc.Create(alice, models.AccountPayload{Name: "Private", Balance: 500})
	require.NoError(t, err)

	// The owner can read it; anyone else gets not-found, never forbidden.
	_, err = svc.Get(alice, account.ID)
	require.NoError(t, err)

	_, err = svc.Get(bob, account.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(bob, account.ID, models.AccountPayload{Name: "Hijacked", Balance: 0})
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(bob, account.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := svc.List(bob)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAccountDeleteCascadesBooks(t *testing.T) {
	db := newTestDB(t)
	pc := newProjectionCache()
	accounts := NewAccountService(db, pc)
	books := NewTradingDailyBookService(db, pc)
	userID := newTestUser(t, db, "alice")

	account, err := accounts.Create(userID, models.AccountPayload{Name: "A", Balance: 1000})
	require.NoError(t, err)

	_, err = books.Create(userID, models.TradingDailyBookCreate{
		AccountID: account.ID, Date: "2024-05-01", EndingBalance: 1100,
	})
	require.NoError(t, err)

	require.NoError(t, accounts.Delete(userID, account.ID))

	remaining, err := books.List(userID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestAccountGetMissing(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, newProjectionCache())
	userID := newTestUser(t, db, "alice")

	_, err := svc.Get(userID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
