package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/tradingjournal/backend/src/models"
)

// Common service errors. Absent rows and rows owned by another user are
// deliberately indistinguishable to callers: both surface as not-found.
var (
	ErrNotFound           = errors.New("record not found")
	ErrAccountNotFound    = fmt.Errorf("%w: account not found or does not belong to you", ErrNotFound)
	ErrNewAccountNotFound = fmt.Errorf("%w: new account not found or does not belong to you", ErrNotFound)
)

// Cache settings for the accounts-with-balance projection.
const (
	DefaultCacheExpiration = 5 * time.Minute
	CacheCleanupInterval   = 10 * time.Minute
)

// AccountService is ownership-scoped CRUD over brokerage accounts.
// Update is a full-field overwrite.
type AccountService interface {
	List(userID int64) ([]models.Account, error)
	Get(userID, accountID int64) (*models.Account, error)
	Create(userID int64, payload models.AccountPayload) (*models.Account, error)
	Update(userID, accountID int64, payload models.AccountPayload) (*models.Account, error)
	Delete(userID, accountID int64) error
}

// TradingPlanService is ownership-scoped CRUD over daily trading plans,
// plus the pending/done status toggle. Update is a full-field overwrite.
type TradingPlanService interface {
	List(userID int64) ([]models.TradingPlan, error)
	Get(userID, planID int64) (*models.TradingPlan, error)
	Create(userID int64, payload models.TradingPlanPayload) (*models.TradingPlan, error)
	Update(userID, planID int64, payload models.TradingPlanPayload) (*models.TradingPlan, error)
	Delete(userID, planID int64) error
	ToggleStatus(userID, planID int64) (*models.TradingPlan, error)
}

// TradingDailyBookService is ownership-scoped CRUD over daily book entries.
// It owns the balance-propagation rule: creating an entry stamps the
// account's current balance as the entry's starting balance and then
// overwrites the account's balance with the entry's ending balance;
// updates re-propagate whenever the ending balance or the referenced
// account changes. Update is a merge patch.
type TradingDailyBookService interface {
	List(userID int64) ([]models.TradingDailyBook, error)
	ListAccountsWithBalance(userID int64) ([]models.AccountWithBalance, error)
	Get(userID, bookID int64) (*models.TradingDailyBook, error)
	Create(userID int64, payload models.TradingDailyBookCreate) (*models.TradingDailyBook, error)
	Update(userID, bookID int64, patch models.TradingDailyBookPatch) (*models.TradingDailyBook, error)
	Delete(userID, bookID int64) error
}
