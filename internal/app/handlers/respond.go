package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/linemk/vetcent/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/vetcent/internal/service"
)

var validate = validator.New()

// ErrorResponse: тело любого ответа с ошибкой
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func writeDetail(w http.ResponseWriter, logger *slog.Logger, status int, detail string) {
	writeJSON(w, logger, status, ErrorResponse{Detail: detail})
}

// writeServiceError выбирает статус по классу ошибки сервиса.
// Ошибки без класса считаются сбоем хранилища: 500 с исходным текстом.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var rejected *service.Error
	if !errors.As(err, &rejected) {
		logger.Error("request failed", slog.Any("error", err))
		writeDetail(w, logger, http.StatusInternalServerError, err.Error())
		return
	}

	status := http.StatusBadRequest
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	}
	logger.Warn("request rejected", slog.Int("status", status), slog.String("reason", rejected.Reason))
	writeDetail(w, logger, status, rejected.Reason)
}

// decodeRequest читает JSON-тело и проверяет теги validate
func decodeRequest(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s must be a valid UUID", name)
	}
	return id, nil
}

// callerID достаёт id пользователя, который положил JWT middleware
func callerID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	id, ok := jwtmiddleware.FromContext(r.Context())
	if !ok {
		logger.Error("userID not found in context")
		writeDetail(w, logger, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return id, true
}

// ownClinic разрешает работать только со своей корзиной и своими заказами
func ownClinic(w http.ResponseWriter, r *http.Request, logger *slog.Logger, clinicUserID uuid.UUID) bool {
	caller, ok := callerID(w, r, logger)
	if !ok {
		return false
	}
	if caller != clinicUserID {
		logger.Warn("clinic_user_id does not match caller",
			slog.String("callerID", caller.String()),
			slog.String("clinicUserID", clinicUserID.String()),
		)
		writeDetail(w, logger, http.StatusForbidden, "clinic_user_id does not belong to the authenticated user")
		return false
	}
	return true
}
