package services

import (
	"database/sql"
	"errors"

	"github.com/username/tradingjournal/backend/src/logger"
	"github.com/username/tradingjournal/backend/src/models"
)

type tradingPlanService struct {
	db *sql.DB
}

func NewTradingPlanService(db *sql.DB) TradingPlanService {
	return &tradingPlanService{db: db}
}

const planColumns = `id, user_id, day, account_balance, daily_target, required_lots, rounded_lots,
	risk_amount, risk_percentage, sl_pips, tp_pips, status, reason, plan_date`

func scanPlan(scan func(dest ...any) error) (models.TradingPlan, error) {
	var p models.TradingPlan
	var reason sql.NullString
	err := scan(
		&p.ID, &p.UserID, &p.Day, &p.AccountBalance, &p.DailyTarget,
		&p.RequiredLots, &p.RoundedLots, &p.RiskAmount, &p.RiskPercentage,
		&p.SLPips, &p.TPPips, &p.Status, &reason, &p.PlanDate,
	)
	p.Reason = reason.String
	return p, err
}

func (s *tradingPlanService) List(userID int64) ([]models.TradingPlan, error) {
	rows, err := s.db.Query(`SELECT `+planColumns+` FROM trading_plans WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []models.TradingPlan{}
	for rows.Next() {
		p, err := scanPlan(rows.Scan)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (s *tradingPlanService) Get(userID, planID int64) (*models.TradingPlan, error) {
	row := s.db.QueryRow(`SELECT `+planColumns+` FROM trading_plans WHERE id = ? AND user_id = ?`, planID, userID)
	p, err := scanPlan(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *tradingPlanService) Create(userID int64, payload models.TradingPlanPayload) (*models.TradingPlan, error) {
	res, err := s.db.Exec(`
	INSERT INTO trading_plans (user_id, day, account_balance, daily_target, required_lots, rounded_lots,
		risk_amount, risk_percentage, sl_pips, tp_pips, status, reason, plan_date)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, payload.Day, payload.AccountBalance, payload.DailyTarget,
		payload.RequiredLots, payload.RoundedLots, payload.RiskAmount, payload.RiskPercentage,
		payload.SLPips, payload.TPPips, payload.Status, payload.Reason, payload.PlanDate,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	logger.L.Info("Trading plan created", "userID", userID, "planID", id)
	return s.Get(userID, id)
}

func (s *tradingPlanService) Update(userID, planID int64, payload models.TradingPlanPayload) (*models.TradingPlan, error) {
	res, err := s.db.Exec(`
	UPDATE trading_plans SET day = ?, account_balance = ?, daily_target = ?, required_lots = ?,
		rounded_lots = ?, risk_amount = ?, risk_percentage = ?, sl_pips = ?, tp_pips = ?,
		status = ?, reason = ?, plan_date = ?
	WHERE id = ? AND user_id = ?`,
		payload.Day, payload.AccountBalance, payload.DailyTarget, payload.RequiredLots,
		payload.RoundedLots, payload.RiskAmount, payload.RiskPercentage, payload.SLPips, payload.TPPips,
		payload.Status, payload.Reason, payload.PlanDate,
		planID, userID,
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
	return s.Get(userID, planID)
}

func (s *tradingPlanService) Delete(userID, planID int64) error {
	res, err := s.db.Exec(`DELETE FROM trading_plans WHERE id = ? AND user_id = ?`, planID, userID)
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
	logger.L.Info("Trading plan deleted", "userID", userID, "planID", planID)
	return nil
}

// ToggleStatus flips the pending/done flag and changes nothing else.
func (s *tradingPlanService) ToggleStatus(userID, planID int64) (*models.TradingPlan, error) {
	res, err := s.db.Exec(`
	UPDATE trading_plans SET status = NOT status WHERE id = ? AND user_id = ?`, planID, userID)
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
	return s.Get(userID, planID)
}
