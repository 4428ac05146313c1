package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/patrickmn/go-cache"
	"github.com/username/tradingjournal/backend/src/logger"
	"github.com/username/tradingjournal/backend/src/models"
)

type accountService struct {
	db    *sql.DB
	cache *cache.Cache
}

// NewAccountService returns an AccountService backed by db. The cache
// holds the per-user accounts-with-balance projection and is shared with
// the daily book service; any write here invalidates it.
func NewAccountService(db *sql.DB, c *cache.Cache) AccountService {
	return &accountService{db: db, cache: c}
}

func accountsCacheKey(userID int64) string {
	return fmt.Sprintf("accounts_with_balance:%d", userID)
}

func (s *accountService) invalidateProjection(userID int64) {
	if s.cache != nil {
		s.cache.Delete(accountsCacheKey(userID))
	}
}

const accountColumns = `id, user_id, name, purpose, broker, balance`

func (s *accountService) List(userID int64) ([]models.Account, error) {
	rows, err := s.db.Query(`SELECT `+accountColumns+` FROM accounts WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Purpose, &a.Broker, &a.Balance); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (s *accountService) Get(userID, accountID int64) (*models.Account, error) {
	row := s.db.QueryRow(`SELECT `+accountColumns+` FROM accounts WHERE id = ? AND user_id = ?`, accountID, userID)
	var a models.Account
	err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Purpose, &a.Broker, &a.Balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *accountService) Create(userID int64, payload models.AccountPayload) (*models.Account, error) {
	res, err := s.db.Exec(`
	INSERT INTO accounts (user_id, name, purpose, broker, balance)
	VALUES (?, ?, ?, ?, ?)`,
		userID, payload.Name, payload.Purpose, payload.Broker, payload.Balance,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	s.invalidateProjection(userID)
	logger.L.Info("Account created", "userID", userID, "accountID", id)
	return &models.Account{
		ID:      id,
		UserID:  userID,
		Name:    payload.Name,
		Purpose: payload.Purpose,
		Broker:  payload.Broker,
		Balance: payload.Balance,
	}, nil
}

func (s *accountService) Update(userID, accountID int64, payload models.AccountPayload) (*models.Account, error) {
	res, err := s.db.Exec(`
	UPDATE accounts SET name = ?, purpose = ?, broker = ?, balance = ?
	WHERE id = ? AND user_id = ?`,
		payload.Name, payload.Purpose, payload.Broker, payload.Balance,
		accountID, userID,
	)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	s.invalidateProjection(userID)
	return s.Get(userID, accountID)
}

// Delete removes an account and all daily book entries that reference it.
// The schema cascades the child delete via foreign keys; the explicit
// statement inside the transaction keeps the behavior independent of the
// foreign_keys pragma.
func (s *accountService) Delete(userID, accountID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.L.Error("Error rolling back account delete transaction", "userID", userID, "accountID", accountID, "rollbackError", rbErr)
			}
		}
	}()

	var exists int64
	err = tx.QueryRow(`SELECT id FROM accounts WHERE id = ? AND user_id = ?`, accountID, userID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if _, err = tx.Exec(`DELETE FROM trading_daily_books WHERE account_id = ?`, accountID); err != nil {
		return err
	}
	if _, err = tx.Exec(`DELETE FROM accounts WHERE id = ? AND user_id = ?`, accountID, userID); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return err
	}
	committed = true
	s.invalidateProjection(userID)
	logger.L.Info("Account deleted", "userID", userID, "accountID", accountID)
	return nil
}
