package services

import (
	"database/sql"
	"errors"

	"github.com/patrickmn/go-cache"
	"github.com/username/tradingjournal/backend/src/logger"
	"github.com/username/tradingjournal/backend/src/models"
)

type tradingDailyBookService struct {
	db    *sql.DB
	cache *cache.Cache
}

// NewTradingDailyBookService returns a TradingDailyBookService backed by
// db. The cache is the shared accounts-with-balance projection cache;
// every write that can move an account balance invalidates it.
func NewTradingDailyBookService(db *sql.DB, c *cache.Cache) TradingDailyBookService {
	return &tradingDailyBookService{db: db, cache: c}
}

func (s *tradingDailyBookService) invalidateProjection(userID int64) {
	if s.cache != nil {
		s.cache.Delete(accountsCacheKey(userID))
	}
}

const bookColumns = `id, user_id, account_id, date, starting_balance, ending_balance,
	sentiment, withdraw, summary, result, remarks`

func scanBook(scan func(dest ...any) error) (models.TradingDailyBook, error) {
	var b models.TradingDailyBook
	var sentiment, summary, remarks sql.NullString
	err := scan(
		&b.ID, &b.UserID, &b.AccountID, &b.Date, &b.StartingBalance, &b.EndingBalance,
		&sentiment, &b.Withdraw, &summary, &b.Result, &remarks,
	)
	b.Sentiment = sentiment.String
	b.Summary = summary.String
	b.Remarks = remarks.String
	return b, err
}

// List returns the user's book entries, most recent date first.
func (s *tradingDailyBookService) List(userID int64) ([]models.TradingDailyBook, error) {
	rows, err := s.db.Query(`
	SELECT `+bookColumns+` FROM trading_daily_books
	WHERE user_id = ? ORDER BY date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []models.TradingDailyBook{}
	for rows.Next() {
		b, err := scanBook(rows.Scan)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// ListAccountsWithBalance returns the (id, name, balance) projection of
// the user's accounts for the entry-creation dropdown. The result is
// cached per user and invalidated by any balance-moving write.
func (s *tradingDailyBookService) ListAccountsWithBalance(userID int64) ([]models.AccountWithBalance, error) {
	key := accountsCacheKey(userID)
	if s.cache != nil {
		if cached, found := s.cache.Get(key); found {
			if accounts, ok := cached.([]models.AccountWithBalance); ok {
				return accounts, nil
			}
		}
	}

	rows, err := s.db.Query(`SELECT id, name, balance FROM accounts WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []models.AccountWithBalance{}
	for rows.Next() {
		var a models.AccountWithBalance
		if err := rows.Scan(&a.ID, &a.Name, &a.Balance); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(key, accounts, cache.DefaultExpiration)
	}
	return accounts, nil
}

func (s *tradingDailyBookService) Get(userID, bookID int64) (*models.TradingDailyBook, error) {
	row := s.db.QueryRow(`
	SELECT `+bookColumns+` FROM trading_daily_books
	WHERE id = ? AND user_id = ?`, bookID, userID)
	b, err := scanBook(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Create inserts a new book entry and propagates its ending balance to the
// referenced account. The entry's starting balance is stamped from the
// account's balance at this moment; any client-supplied value is ignored
// by construction. Both writes commit atomically or not at all.
func (s *tradingDailyBookService) Create(userID int64, payload models.TradingDailyBookCreate) (*models.TradingDailyBook, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.L.Error("Error rolling back book create transaction", "userID", userID, "rollbackError", rbErr)
			}
		}
	}()

	var startingBalance float64
	err = tx.QueryRow(`SELECT balance FROM accounts WHERE id = ? AND user_id = ?`,
		payload.AccountID, userID).Scan(&startingBalance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	result := payload.Result
	if result == "" {
		result = models.ResultNoResult
	}

	res, err := tx.Exec(`
	INSERT INTO trading_daily_books (user_id, account_id, date, starting_balance, ending_balance,
		sentiment, withdraw, summary, result, remarks)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, payload.AccountID, payload.Date, startingBalance, payload.EndingBalance,
		payload.Sentiment, payload.Withdraw, payload.Summary, result, payload.Remarks,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	if _, err = tx.Exec(`UPDATE accounts SET balance = ? WHERE id = ?`,
		payload.EndingBalance, payload.AccountID); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	s.invalidateProjection(userID)
	logger.L.Info("Daily book entry created", "userID", userID, "bookID", id,
		"accountID", payload.AccountID, "endingBalance", payload.EndingBalance)

	return s.Get(userID, id)
}

// Update applies a merge patch to a book entry. The starting balance is
// never recomputed here. When the ending balance changes or the entry is
// reassigned to another account, the account now referenced by the entry
// receives the authoritative ending balance. The previously referenced
// account keeps whatever balance it had; it is not reverted or recomputed
// from its remaining entries.
func (s *tradingDailyBookService) Update(userID, bookID int64, patch models.TradingDailyBookPatch) (*models.TradingDailyBook, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.L.Error("Error rolling back book update transaction", "userID", userID, "bookID", bookID, "rollbackError", rbErr)
			}
		}
	}()

	row := tx.QueryRow(`
	SELECT `+bookColumns+` FROM trading_daily_books
	WHERE id = ? AND user_id = ?`, bookID, userID)
	existing, err := scanBook(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	accountChanging := patch.AccountID != nil && *patch.AccountID != existing.AccountID
	balanceChanging := patch.EndingBalance != nil && *patch.EndingBalance != existing.EndingBalance

	if accountChanging {
		var id int64
		err = tx.QueryRow(`SELECT id FROM accounts WHERE id = ? AND user_id = ?`,
			*patch.AccountID, userID).Scan(&id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNewAccountNotFound
			}
			return nil, err
		}
	}

	updated := patch.Apply(existing)

	if _, err = tx.Exec(`
	UPDATE trading_daily_books SET account_id = ?, date = ?, ending_balance = ?,
		sentiment = ?, withdraw = ?, summary = ?, result = ?, remarks = ?
	WHERE id = ? AND user_id = ?`,
		updated.AccountID, updated.Date, updated.EndingBalance,
		updated.Sentiment, updated.Withdraw, updated.Summary, updated.Result, updated.Remarks,
		bookID, userID,
	); err != nil {
		return nil, err
	}

	if balanceChanging || accountChanging {
		if _, err = tx.Exec(`UPDATE accounts SET balance = ? WHERE id = ?`,
			updated.EndingBalance, updated.AccountID); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	s.invalidateProjection(userID)
	logger.L.Info("Daily book entry updated", "userID", userID, "bookID", bookID,
		"accountChanged", accountChanging, "balanceChanged", balanceChanging)

	return s.Get(userID, bookID)
}

// Delete removes a book entry. The referenced account's balance is left
// as-is; the propagation side effect is not undone.
func (s *tradingDailyBookService) Delete(userID, bookID int64) error {
	res, err := s.db.Exec(`DELETE FROM trading_daily_books WHERE id = ? AND user_id = ?`, bookID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	s.invalidateProjection(userID)
	logger.L.Info("Daily book entry deleted", "userID", userID, "bookID", bookID)
	return nil
}
