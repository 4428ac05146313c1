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

type AccountHandler struct {
	service services.AccountService
}

func NewAccountHandler(service services.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// decodeAccountPayload decodes, sanitizes and validates the full-overwrite
// account body. Every field is required; partial account updates are not
// supported.
func decodeAccountPayload(r *http.Request) (models.AccountPayload, error) {
	var payload models.AccountPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return payload, errors.New("invalid request body")
	}
	payload.Name = validation.SanitizeText(payload.Name)
	payload.Purpose = validation.SanitizeText(payload.Purpose)
	payload.Broker = validation.SanitizeText(payload.Broker)

	if err := validation.ValidateStringNotEmpty(payload.Name, "Account name"); err != nil {
		return payload, err
	}
	if err := validation.ValidateStringMaxLength(payload.Name, validation.MaxNameLength, "Account name"); err != nil {
		return payload, err
	}
	if err := validation.ValidateStringMaxLength(payload.Purpose, validation.DefaultMaxStringLength, "Purpose"); err != nil {
		return payload, err
	}
	if err := validation.ValidateStringMaxLength(payload.Broker, validation.MaxNameLength, "Broker"); err != nil {
		return payload, err
	}
	return payload, nil
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	accounts, err := h.service.List(userID)
	if err != nil {
		logger.L.Error("Failed to list accounts", "userID", userID, "error", err)
		sendJSONError(w, "Failed to retrieve accounts", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, accounts, http.StatusOK)
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	accountID, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		sendJSONError(w, "Invalid account ID", http.StatusBadRequest)
		return
	}

	account, err := h.service.Get(userID, accountID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			sendJSONError(w, "Account not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Failed to get account", "userID", userID, "accountID", accountID, "error", err)
		sendJSONError(w, "Failed to retrieve account", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, account, http.StatusOK)
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	payload, err := decodeAccountPayload(r)
	if err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	account, err := h.service.Create(userID, payload)
	if err != nil {
		logger.L.Error("Failed to create account", "userID", userID, "error", err)
		sendJSONError(w, "Failed to create account", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, account, http.StatusCreated)
}

func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	accountID, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		sendJSONError(w, "Invalid account ID", http.StatusBadRequest)
		return
	}

	payload, err := decodeAccountPayload(r)
	if err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	account, err := h.service.Update(userID, accountID, payload)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			sendJSONError(w, "Account not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Failed to update account", "userID", userID, "accountID", accountID, "error", err)
		sendJSONError(w, "Failed to update account", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, account, http.StatusOK)
}

func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	accountID, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		sendJSONError(w, "Invalid account ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(userID, accountID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			sendJSONError(w, "Account not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Failed to delete account", "userID", userID, "accountID", accountID, "error", err)
		sendJSONError(w, "Failed to delete account", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
