package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/tradingjournal/backend/src/models"
)

func setupBookTest(t *testing.T) (AccountService, TradingDailyBookService, int64) {
	t.Helper()
	db := newTestDB(t)
	pc := newProjectionCache()
	accounts := NewAccountService(db, pc)
	books := NewTradingDailyBookService(db, pc)
	userID := newTestUser(t, db, "alice")
	return accounts, books, userID
}

func TestBookCreateStampsStartingBalanceAndPropagates(t *testing.T) {
	accounts, books, userID := setupBookTest(t)

	account, err := accounts.Create(userID, models.AccountPayload{Name: "FTMO-1", Balance: 1000})
	require.NoError(t, err)

	book, err := books.Create(userID, models.TradingDailyBookCreate{
		AccountID:     account.ID,
		Date:          "2024-05-01",
		EndingBalance: 1200,
	})
	require.NoError(t, err)

	// Starting balance is the account balance before the write, not the
	// request's ending balance.
	assert.Equal(t, 1000.0, book.StartingBalance)
	assert.Equal(t, 1200.0, book.EndingBalance)
	assert.Equal(t, models.ResultNoResult, book.Result)
	assert.Equal(t, 0.0, book.Withdraw)

	after, err := accounts.Get(userID, account.ID)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, after.Balance)
}

func TestBookCreateRejectsForeignAccount(t *testing.T) {
	db := newTestDB(t)
	pc := newProjectionCache()
	accounts := NewAccountService(db, pc)
	books := NewTradingDailyBookService(db, pc)
	alice := newTestUser(t, db, "alice")
	bob := newTestUser(t, db, "bob")

	account, err := accounts.Create(alice, models.AccountPayload{Name: "A", Balance: 1000})
	require.NoError(t, err)

	_, err = books.Create(bob, models.TradingDailyBookCreate{
		AccountID: account.ID, Date: "2024-05-01", EndingBalance: 900,
	})
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.ErrorIs(t, err, ErrNotFound)

	// The rejected write must not have touched the account.
	after, err := accounts.Get(alice, account.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, after.Balance)
}

func TestBookUpdateEndingBalancePropagates(t *testing.T) {
	accounts, books, userID := setupBookTest(t)

	account, err := accounts.Create(userID, models.AccountPayload{Name: "FTMO-1", Balance: 1000})
	require.NoError(t, err)

	book, err := books.Create(userID, models.TradingDailyBookCreate{
		AccountID: account.ID, Date: "2024-05-01", EndingBalance: 1200,
	})
	require.NoError(t, err)

	newBalance := 1150.0
	updated, err := books.Update(userID, book.ID, models.TradingDailyBookPatch{
		EndingBalance: &newBalance,
	})
	require.NoError(t, err)

	assert.Equal(t, 1150.0, updated.EndingBalance)
	// Starting balance is never recomputed on update.
	assert.Equal(t, 1000.0, updated.StartingBalance)

	after, err := accounts.Get(userID, account.ID)
	require.NoError(t, err)
	assert.Equal(t, 1150.0, after.Balance)
}

func TestBookUpdatePartialFieldsOnly(t *testing.T) {
	accounts, books, userID := setupBookTest(t)

	account, err := accounts.Create(userID, models.AccountPayload{Name: "A", Balance: 1000})
	require.NoError(t, err)

	book, err := books.Create(userID, models.TradingDailyBookCreate{
		AccountID:     account.ID,
		Date:          "2024-05-01",
		EndingBalance: 1200,
		Sentiment:     "calm",
		Summary:       "two trades",
		Result:        models.ResultProfitOverall,
	})
	require.NoError(t, err)

	remarks := "late entry on the second trade"
	updated, err := books.Update(userID, book.ID, models.TradingDailyBookPatch{
		Remarks: &remarks,
	})
	require.NoError(t, err)

	// Untouched fields survive the merge patch.
	assert.Equal(t, "calm", updated.Sentiment)
	assert.Equal(t, "two trades", updated.Summary)
	assert.Equal(t, models.ResultProfitOverall, updated.Result)
	assert.Equal(t, 1200.0, updated.EndingBalance)
	assert.Equal(t, remarks, updated.Remarks)

	// No balance-affecting field changed, so the account is untouched.
	after, err := accounts.Get(userID, account.ID)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, after.Balance)
}

func TestBookUpdateAccountReassignment(t *testing.T) {
	accounts, books, userID := setupBookTest(t)

	first, err := accounts.Create(userID, models.AccountPayload{Name: "First", Balance: 1000})
	require.NoError(t, err)
	second, err := accounts.Create(userID, models.AccountPayload{Name: "Second", Balance: 5000})
	require.NoError(t, err)

	book, err := books.Create(userID, models.TradingDailyBookCreate{
		AccountID: first.ID, Date: "2024-05-01", EndingBalance: 1200,
	})
	require.NoError(t, err)

	// Reassign the entry to the second account without touching the
	// ending balance: the second account receives the entry's ending
	// balance, the first keeps its post-create value.
	updated, err := books.Update(userID, book.ID, models.TradingDailyBookPatch{
		AccountID: &second.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, second.ID, updated.AccountID)

	firstAfter, err := accounts.Get(userID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, firstAfter.Balance)

	secondAfter, err := accounts.Get(userID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, secondAfter.Balance)
}

func TestBookUpdateReassignmentToForeignAccountFails(t *testing.T) {
	db := newTestDB(t)
	pc := newProjectionCache()
	accounts := NewAccountService(db, pc)
	books := NewTradingDailyBookService(db, pc)
	alice := newTestUser(t, db, "alice")
	bob := newTestUser(t, db, "bob")

	mine, err := accounts.Create(alice, models.AccountPayload{Name: "Mine", Balance: 1000})
	require.NoError(t, err)
	theirs, err := accounts.Create(bob, models.AccountPayload{Name: "Theirs", Balance: 9000})
	require.NoError(t, err)

	book, err := books.Create(alice, models.TradingDailyBookCreate{
		AccountID: mine.ID, Date: "2024-05-01", EndingBalance: 1100,
	})
	require.NoError(t, err)

	_, err = books.Update(alice, book.ID, models.TradingDailyBookPatch{
		AccountID: &theirs.ID,
	})
	assert.ErrorIs(t, err, ErrNewAccountNotFound)

	// Failed update must leave the entry and both accounts untouched.
	unchanged, err := books.Get(alice, book.ID)
	require.NoError(t, err)
	assert.Equal(t, mine.ID, unchanged.AccountID)

	theirsAfter, err := accounts.Get(bob, theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, 9000.0, theirsAfter.Balance)
}

func TestBookListOrderedByDateDescending(t *testing.T) {
	accounts, books, userID := setupBookTest(t)

	account, err := accounts.Create(userID, models.AccountPayload{Name: "A", Balance: 1000})
	require.NoError(t, err)

	for _, date := range []string{"2024-01-01", "2024-03-01", "2024-02-01"} {
		_, err := books.Create(userID, models.TradingDailyBookCreate{
			AccountID: account.ID, Date: date, EndingBalance: 1000,
		})
		require.NoError(t, err)
	}

	list, err := books.List(userID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2024-03-01", list[0].Date)
	assert.Equal(t, "2024-02-01", list[1].Date)
	assert.Equal(t, "2024-01-01", list[2].Date)
}

func TestBookDeleteDoesNotRevertBalance(t *testing.T) {
	accounts, books, userID := setupBookTest(t)

	account, err := accounts.Create(userID, models.AccountPayload{Name: "A", Balance: 1000})
	require.NoError(t, err)

	book, err := books.Create(userID, models.TradingDailyBookCreate{
		AccountID: account.ID, Date: "2024-05-01", EndingBalance: 1200,
	})
	require.NoError(t, err)

	require.NoError(t, books.Delete(userID, book.ID))

	// Deleting the entry does not undo the propagation side effect.
	after, err := accounts.Get(userID, account.ID)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, after.Balance)
}

func TestBookOwnershipIsolation(t *testing.T) {
	db := newTestDB(t)
	pc := newProjectionCache()
	accounts := NewAccountService(db, pc)
	books := NewTradingDailyBookService(db, pc)
	alice := newTestUser(t, db, "alice")
	bob := newTestUser(t, db, "bob")

	account, err := accounts.Create(alice, models.AccountPayload{Name: "A", Balance: 1000})
	require.NoError(t, err)
	book, err := books.Create(alice, models.TradingDailyBookCreate{
		AccountID: account.ID, Date: "2024-05-01", EndingBalance: 1100,
	})
	require.NoError(t, err)

	_, err = books.Get(bob, book.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = books.Delete(bob, book.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := books.List(bob)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// Scenario from the bookkeeping flow: balance 1000 -> entry ending 1200 ->
// patch ending to 1150. Starting balance stays at the value captured at
// creation time throughout.
func TestBookBalancePropagationScenario(t *testing.T) {
	accounts, books, userID := setupBookTest(t)

	account, err := accounts.Create(userID, models.AccountPayload{
		Name: "FTMO-1", Purpose: "challenge", Broker: "FTMO", Balance: 1000,
	})
	require.NoError(t, err)

	book, err := books.Create(userID, models.TradingDailyBookCreate{
		AccountID: account.ID, Date: "2024-05-01", EndingBalance: 1200,
	})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, book.StartingBalance)

	afterCreate, err := accounts.Get(userID, account.ID)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, afterCreate.Balance)

	ending := 1150.0
	updated, err := books.Update(userID, book.ID, models.TradingDailyBookPatch{EndingBalance: &ending})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, updated.StartingBalance)

	afterUpdate, err := accounts.Get(userID, account.ID)
	require.NoError(t, err)
	assert.Equal(t, 1150.0, afterUpdate.Balance)
}

func TestListAccountsWithBalanceReflectsWrites(t *testing.T) {
	accounts, books, userID := setupBookTest(t)

	account, err := accounts.Create(userID, models.AccountPayload{Name: "A", Balance: 1000})
	require.NoError(t, err)

	projection, err := books.ListAccountsWithBalance(userID)
	require.NoError(t, err)
	require.Len(t, projection, 1)
	assert.Equal(t, 1000.0, projection[0].Balance)
	assert.Equal(t, "A", projection[0].Name)

	// A book write moves the balance and must invalidate the cached
	// projection.
	_, err = books.Create(userID, models.TradingDailyBookCreate{
		AccountID: account.ID, Date: "2024-05-01", EndingBalance: 1300,
	})
	require.NoError(t, err)

	projection, err = books.ListAccountsWithBalance(userID)
	require.NoError(t, err)
	require.Len(t, projection, 1)
	assert.Equal(t, 1300.0, projection[0].Balance)
}
