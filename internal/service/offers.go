package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/linemk/vetcent/internal/domain/models"
	"github.com/linemk/vetcent/internal/storage"
)

// OfferService: предложения поставщиков по товару
type OfferService interface {
	ListOffers(ctx context.Context, productID uuid.UUID) ([]*models.Offer, error)
	// BestOffer возвращает самое дешёвое, а при равной цене самое быстрое предложение; nil, если предложений нет.
	BestOffer(ctx context.Context, productID uuid.UUID) (*models.Offer, error)
}

type offerService struct {
	log       *slog.Logger
	offerRepo storage.OfferStorage
}

func NewOfferService(log *slog.Logger, offerRepo storage.OfferStorage) OfferService {
	return &offerService{log: log, offerRepo: offerRepo}
}

func (s *offerService) ListOffers(ctx context.Context, productID uuid.UUID) ([]*models.Offer, error) {
	const op = "service.OfferService.ListOffers"
	offers, err := s.offerRepo.ListOffers(ctx, productID, 0)
	if err != nil {
		s.log.Error("failed to list offers", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return offers, nil
}

func (s *offerService) BestOffer(ctx context.Context, productID uuid.UUID) (*models.Offer, error) {
	const op = "service.OfferService.BestOffer"
	offers, err := s.offerRepo.ListOffers(ctx, productID, 1)
	if err != nil {
		s.log.Error("failed to get best offer", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(offers) == 0 {
		return nil, nil
	}
	return offers[0], nil
}
