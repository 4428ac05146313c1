package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/username/tradingjournal/backend/src/logger"
	"github.com/username/tradingjournal/backend/src/models"
	"github.com/username/tradingjournal/backend/src/security/validation"
	"github.com/username/tradingjournal/backend/src/services"
	"github.com/username/tradingjournal/backend/src/utils"
)

type TradingPlanHandler struct {
	service services.TradingPlanService
}

func NewTradingPlanHandler(service services.TradingPlanService) *TradingPlanHandler {
	return &TradingPlanHandler{service: service}
}

// decodePlanPayload decodes, sanitizes and validates the full-overwrite
// trading plan body. Like accounts, plan updates replace every field.
func decodePlanPayload(r *http.Request) (models.TradingPlanPayload, error) {
	var payload models.TradingPlanPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return payload, errors.New("invalid request body")
	}
	payload.Day = validation.SanitizeText(payload.Day)
	payload.Reason = validation.SanitizeText(payload.Reason)

	if err := validation.ValidateStringNotEmpty(payload.Day, "Day"); err != nil {
		return payload, err
	}
	if err := validation.ValidateDate(payload.PlanDate, "Plan date"); err != nil {
		return payload, err
	}
	if err := validation.ValidateStringMaxLength(payload.Reason, validation.MaxFreeTextLength, "Reason"); err != nil {
		return payload, err
	}
	if err := validation.ValidateNonNegative(payload.RequiredLots, "Required lots"); err != nil {
		return payload, err
	}
	if err := validation.ValidateNonNegative(payload.RoundedLots, "Rounded lots"); err != nil {
		return payload, err
	}
	return payload, nil
}

func (h *TradingPlanHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	plans, err := h.service.List(userID)
	if err != nil {
		logger.L.Error("Failed to list trading plans", "userID", userID, "error", err)
		sendJSONError(w, "Failed to retrieve trading plans", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, plans, http.StatusOK)
}

func (h *TradingPlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	planID, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		sendJSONError(w, "Invalid trading plan ID", http.StatusBadRequest)
		return
	}

	plan, err := h.service.Get(userID, planID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			sendJSONError(w, "Trading plan not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Failed to get trading plan", "userID", userID, "planID", planID, "error", err)
		sendJSONError(w, "Failed to retrieve trading plan", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, plan, http.StatusOK)
}

func (h *TradingPlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	payload, err := decodePlanPayload(r)
	if err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	plan, err := h.service.Create(userID, payload)
	if err != nil {
		logger.L.Error("Failed to create trading plan", "userID", userID, "error", err)
		sendJSONError(w, "Failed to create trading plan", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, plan, http.StatusCreated)
}

func (h *TradingPlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	planID, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		sendJSONError(w, "Invalid trading plan ID", http.StatusBadRequest)
		return
	}

	payload, err := decodePlanPayload(r)
	if err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	plan, err := h.service.Update(userID, planID, payload)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			sendJSONError(w, "Trading plan not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Failed to update trading plan", "userID", userID, "planID", planID, "error", err)
		sendJSONError(w, "Failed to update trading plan", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, plan, http.StatusOK)
}

func (h *TradingPlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	planID, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		sendJSONError(w, "Invalid trading plan ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(userID, planID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			sendJSONError(w, "Trading plan not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Failed to delete trading plan", "userID", userID, "planID", planID, "error", err)
		sendJSONError(w, "Failed to delete trading plan", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleStatus flips a plan between pending and done.
func (h *TradingPlanHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	planID, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		sendJSONError(w, "Invalid trading plan ID", http.StatusBadRequest)
		return
	}

	plan, err := h.service.ToggleStatus(userID, planID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			sendJSONError(w, "Trading plan not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Failed to toggle trading plan status", "userID", userID, "planID", planID, "error", err)
		sendJSONError(w, "Failed to toggle trading plan status", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, plan, http.StatusOK)
}
