package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/linemk/vetcent/internal/domain/models"
	"github.com/linemk/vetcent/internal/service"
)

type OffersResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Offers    []*models.Offer `json:"offers"`
}

// BestOfferResponse: BestOffer равен null, если активных предложений нет
type BestOfferResponse struct {
	ProductID uuid.UUID     `json:"product_id"`
	BestOffer *models.Offer `json:"best_offer"`
}

// OffersHandler обрабатывает GET /products/{id}/offers
func OffersHandler(log *slog.Logger, offers service.OfferService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.OffersHandler"
		logger := log.With(slog.String("op", op))

		productID, err := uuidParam(r, "id")
		if err != nil {
			writeDetail(w, logger, http.StatusBadRequest, err.Error())
			return
		}

		list, err := offers.ListOffers(r.Context(), productID)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, OffersResponse{ProductID: productID, Offers: list})
	}
}

// BestOfferHandler обрабатывает GET /products/{id}/best-offer
func BestOfferHandler(log *slog.Logger, offers service.OfferService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.BestOfferHandler"
		logger := log.With(slog.String("op", op))

		productID, err := uuidParam(r, "id")
		if err != nil {
			writeDetail(w, logger, http.StatusBadRequest, err.Error())
			return
		}

		best, err := offers.BestOffer(r.Context(), productID)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, BestOfferResponse{ProductID: productID, BestOffer: best})
	}
}
