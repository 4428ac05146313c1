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

type TradingDailyBookHandler struct {
	service services.TradingDailyBookService
}

func NewTradingDailyBookHandler(service services.TradingDailyBookService) *TradingDailyBookHandler {
	return &TradingDailyBookHandler{service: service}
}

func (h *TradingDailyBookHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	books, err := h.service.List(userID)
	if err != nil {
		logger.L.Error("Failed to list daily book entries", "userID", userID, "error", err)
		sendJSONError(w, "Failed to retrieve daily book entries", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, books, http.StatusOK)
}

// ListAccounts serves the accounts-with-balance projection used by the
// entry-creation dropdown.
func (h *TradingDailyBookHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	accounts, err := h.service.ListAccountsWithBalance(userID)
	if err != nil {
		logger.L.Error("Failed to list accounts with balance", "userID", userID, "error", err)
		sendJSONError(w, "Failed to retrieve accounts", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, accounts, http.StatusOK)
}

func (h *TradingDailyBookHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	bookID, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		sendJSONError(w, "Invalid daily book entry ID", http.StatusBadRequest)
		return
	}

	book, err := h.service.Get(userID, bookID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			sendJSONError(w, "Trading daily book entry not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Failed to get daily book entry", "userID", userID, "bookID", bookID, "error", err)
		sendJSONError(w, "Failed to retrieve daily book entry", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, book, http.StatusOK)
}

func (h *TradingDailyBookHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var payload models.TradingDailyBookCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	payload.Sentiment = validation.SanitizeText(payload.Sentiment)
	payload.Summary = validation.SanitizeText(payload.Summary)
	payload.Remarks = validation.SanitizeText(payload.Remarks)

	if payload.AccountID == 0 {
		sendJSONError(w, "Account ID is required", http.StatusBadRequest)
		return
	}
	if err := validation.ValidateDate(payload.Date, "Date"); err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateNonNegative(payload.Withdraw, "Withdraw"); err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Result != "" && !payload.Result.IsValid() {
		sendJSONError(w, "Invalid result value", http.StatusBadRequest)
		return
	}

	book, err := h.service.Create(userID, payload)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			sendJSONError(w, "Account not found or does not belong to you", http.StatusNotFound)
			return
		}
		logger.L.Error("Failed to create daily book entry", "userID", userID, "error", err)
		sendJSONError(w, "Failed to create daily book entry", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, book, http.StatusCreated)
}

func (h *TradingDailyBookHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	bookID, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		sendJSONError(w, "Invalid daily book entry ID", http.StatusBadRequest)
		return
	}

	var patch models.TradingDailyBookPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if patch.Date != nil {
		if err := validation.ValidateDate(*patch.Date, "Date"); err != nil {
			sendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if patch.Withdraw != nil {
		if err := validation.ValidateNonNegative(*patch.Withdraw, "Withdraw"); err != nil {
			sendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if patch.Result != nil && !patch.Result.IsValid() {
		sendJSONError(w, "Invalid result value", http.StatusBadRequest)
		return
	}
	if patch.Sentiment != nil {
		sanitized := validation.SanitizeText(*patch.Sentiment)
		patch.Sentiment = &sanitized
	}
	if patch.Summary != nil {
		sanitized := validation.SanitizeText(*patch.Summary)
		patch.Summary = &sanitized
	}
	if patch.Remarks != nil {
		sanitized := validation.SanitizeText(*patch.Remarks)
		patch.Remarks = &sanitized
	}

	book, err := h.service.Update(userID, bookID, patch)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNewAccountNotFound):
			sendJSONError(w, "New account not found or does not belong to you", http.StatusNotFound)
		case errors.Is(err, services.ErrNotFound):
			sendJSONError(w, "Trading daily book entry not found", http.StatusNotFound)
		default:
			logger.L.Error("Failed to update daily book entry", "userID", userID, "bookID", bookID, "error", err)
			sendJSONError(w, "Failed to update daily book entry", http.StatusInternalServerError)
		}
		return
	}
	utils.SendJSON(w, book, http.StatusOK)
}

func (h *TradingDailyBookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	bookID, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		sendJSONError(w, "Invalid daily book entry ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(userID, bookID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			sendJSONError(w, "Trading daily book entry not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Failed to delete daily book entry", "userID", userID, "bookID", bookID, "error", err)
		sendJSONError(w, "Failed to delete daily book entry", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
