package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/linemk/vetcent/internal/domain/models"
	"github.com/linemk/vetcent/internal/service"
)

// CartAddRequest: добавление товара поставщика в корзину; quantity по умолчанию 1
type CartAddRequest struct {
	ClinicUserID uuid.UUID `json:"clinic_user_id" validate:"required"`
	ProductID    uuid.UUID `json:"product_id" validate:"required"`
	SupplierID   uuid.UUID `json:"supplier_id" validate:"required"`
	Quantity     *int      `json:"quantity"`
}

// OrderRequest: оформление заказа из черновика клиники
type OrderRequest struct {
	ClinicUserID uuid.UUID `json:"clinic_user_id" validate:"required"`
}

type OrdersResponse struct {
	ClinicUserID uuid.UUID       `json:"clinic_user_id"`
	Orders       []*models.Order `json:"orders"`
}

// AddToCartHandler обрабатывает POST /cart/add
func AddToCartHandler(log *slog.Logger, cart service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AddToCartHandler"
		logger := log.With(slog.String("op", op))

		var req CartAddRequest
		if err := decodeRequest(r, &req); err != nil {
			logger.Warn("invalid cart request", slog.Any("error", err))
			writeDetail(w, logger, http.StatusBadRequest, err.Error())
			return
		}
		if !ownClinic(w, r, logger, req.ClinicUserID) {
			return
		}

		quantity := 1
		if req.Quantity != nil {
			quantity = *req.Quantity
		}

		res, err := cart.AddToCart(r.Context(), service.AddToCartInput{
			ClinicUserID: req.ClinicUserID,
			ProductID:    req.ProductID,
			SupplierID:   req.SupplierID,
			Quantity:     quantity,
		})
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, res)
	}
}

// GetCartHandler обрабатывает GET /cart/{clinic_user_id}
func GetCartHandler(log *slog.Logger, cart service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetCartHandler"
		logger := log.With(slog.String("op", op))

		clinicUserID, err := uuidParam(r, "clinic_user_id")
		if err != nil {
			writeDetail(w, logger, http.StatusBadRequest, err.Error())
			return
		}
		if !ownClinic(w, r, logger, clinicUserID) {
			return
		}

		res, err := cart.GetCart(r.Context(), clinicUserID)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, res)
	}
}

// CreateOrderHandler обрабатывает POST /orders и POST /orders/submit.
// Оба пути ведут в один переход draft -> submitted.
func CreateOrderHandler(log *slog.Logger, cart service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateOrderHandler"
		logger := log.With(slog.String("op", op))

		var req OrderRequest
		if err := decodeRequest(r, &req); err != nil {
			logger.Warn("invalid order request", slog.Any("error", err))
			writeDetail(w, logger, http.StatusBadRequest, err.Error())
			return
		}
		if !ownClinic(w, r, logger, req.ClinicUserID) {
			return
		}

		res, err := cart.CreateOrder(r.Context(), req.ClinicUserID)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, res)
	}
}

// ListOrdersHandler обрабатывает GET /orders/{clinic_user_id}
func ListOrdersHandler(log *slog.Logger, cart service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListOrdersHandler"
		logger := log.With(slog.String("op", op))

		clinicUserID, err := uuidParam(r, "clinic_user_id")
		if err != nil {
			writeDetail(w, logger, http.StatusBadRequest, err.Error())
			return
		}
		if !ownClinic(w, r, logger, clinicUserID) {
			return
		}

		orders, err := cart.ListOrders(r.Context(), clinicUserID)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, OrdersResponse{ClinicUserID: clinicUserID, Orders: orders})
	}
}
