package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/linemk/vetcent/internal/domain/models"
	"github.com/linemk/vetcent/internal/service"
	"github.com/shopspring/decimal"
)

// CreatePriceRequest: новая строка прайс-листа; stock, delivery_days и is_active необязательны
type CreatePriceRequest struct {
	SupplierID   *uuid.UUID      `json:"supplier_id"`
	ProductID    uuid.UUID       `json:"product_id" validate:"required"`
	Price        decimal.Decimal `json:"price"`
	Stock        *int            `json:"stock"`
	DeliveryDays *int            `json:"delivery_days"`
	IsActive     *bool           `json:"is_active"`
}

// UpdatePriceRequest: частичное обновление, отсутствующие поля не меняются
type UpdatePriceRequest struct {
	Price        *decimal.Decimal `json:"price"`
	Stock        *int             `json:"stock"`
	DeliveryDays *int             `json:"delivery_days"`
	IsActive     *bool            `json:"is_active"`
}

type PriceResponse struct {
	Message string                `json:"message"`
	Item    *models.SupplierPrice `json:"item"`
}

type SupplierPricesResponse struct {
	SupplierID uuid.UUID               `json:"supplier_id"`
	Items      []*models.SupplierPrice `json:"items"`
}

// CreatePriceHandler обрабатывает POST /supplier/prices
func CreatePriceHandler(log *slog.Logger, prices service.PriceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreatePriceHandler"
		logger := log.With(slog.String("op", op))

		caller, ok := callerID(w, r, logger)
		if !ok {
			return
		}

		var req CreatePriceRequest
		if err := decodeRequest(r, &req); err != nil {
			logger.Warn("invalid create price request", slog.Any("error", err))
			writeDetail(w, logger, http.StatusBadRequest, err.Error())
			return
		}

		created, err := prices.CreatePrice(r.Context(), caller, service.CreatePriceInput{
			SupplierID:   req.SupplierID,
			ProductID:    req.ProductID,
			Price:        req.Price,
			Stock:        req.Stock,
			DeliveryDays: req.DeliveryDays,
			IsActive:     req.IsActive,
		})
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, PriceResponse{Message: "created", Item: created})
	}
}

// UpdatePriceHandler обрабатывает PUT /supplier/prices/{id}
func UpdatePriceHandler(log *slog.Logger, prices service.PriceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdatePriceHandler"
		logger := log.With(slog.String("op", op))

		caller, ok := callerID(w, r, logger)
		if !ok {
			return
		}
		priceID, err := uuidParam(r, "id")
		if err != nil {
			writeDetail(w, logger, http.StatusBadRequest, err.Error())
			return
		}

		var req UpdatePriceRequest
		if err := decodeRequest(r, &req); err != nil {
			logger.Warn("invalid update price request", slog.Any("error", err))
			writeDetail(w, logger, http.StatusBadRequest, err.Error())
			return
		}

		updated, err := prices.UpdatePrice(r.Context(), caller, priceID, models.SupplierPriceUpdate{
			Price:        req.Price,
			Stock:        req.Stock,
			DeliveryDays: req.DeliveryDays,
			IsActive:     req.IsActive,
		})
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, PriceResponse{Message: "updated", Item: updated})
	}
}

// DeactivatePriceHandler обрабатывает PATCH /supplier/prices/{id}/deactivate
func DeactivatePriceHandler(log *slog.Logger, prices service.PriceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeactivatePriceHandler"
		logger := log.With(slog.String("op", op))

		caller, ok := callerID(w, r, logger)
		if !ok {
			return
		}
		priceID, err := uuidParam(r, "id")
		if err != nil {
			writeDetail(w, logger, http.StatusBadRequest, err.Error())
			return
		}

		deactivated, err := prices.DeactivatePrice(r.Context(), caller, priceID)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, PriceResponse{Message: "deactivated", Item: deactivated})
	}
}

// MyPricesHandler обрабатывает GET /supplier/my-prices/{supplier_id}
func MyPricesHandler(log *slog.Logger, prices service.PriceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.MyPricesHandler"
		logger := log.With(slog.String("op", op))

		caller, ok := callerID(w, r, logger)
		if !ok {
			return
		}
		supplierID, err := uuidParam(r, "supplier_id")
		if err != nil {
			writeDetail(w, logger, http.StatusBadRequest, err.Error())
			return
		}

		items, err := prices.ListSupplierPrices(r.Context(), caller, supplierID)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, SupplierPricesResponse{SupplierID: supplierID, Items: items})
	}
}
