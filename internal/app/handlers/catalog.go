package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/linemk/vetcent/internal/domain/models"
	"github.com/linemk/vetcent/internal/service"
)

// SearchResponse повторяет параметры поиска рядом с найденными товарами
type SearchResponse struct {
	Query      *string           `json:"q"`
	CategoryID *uuid.UUID        `json:"category_id"`
	Brand      *string           `json:"brand"`
	Unit       *string           `json:"unit"`
	Limit      int               `json:"limit"`
	Offset     int               `json:"offset"`
	Items      []*models.Product `json:"items"`
}

// ProductsHandler обрабатывает GET /products
func ProductsHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ProductsHandler"
		logger := log.With(slog.String("op", op))

		products, err := catalog.ListProducts(r.Context())
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, products)
	}
}

// SearchProductsHandler обрабатывает GET /products/search?q&category_id&brand&unit&limit&offset
func SearchProductsHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SearchProductsHandler"
		logger := log.With(slog.String("op", op))

		filter, err := parseProductFilter(r.URL.Query())
		if err != nil {
			logger.Warn("invalid search query", slog.Any("error", err))
			writeDetail(w, logger, http.StatusBadRequest, err.Error())
			return
		}

		products, err := catalog.SearchProducts(r.Context(), filter)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, SearchResponse{
			Query:      optional(filter.Query),
			CategoryID: filter.CategoryID,
			Brand:      optional(filter.Brand),
			Unit:       optional(filter.Unit),
			Limit:      filter.Limit,
			Offset:     filter.Offset,
			Items:      products,
		})
	}
}

func parseProductFilter(q url.Values) (models.ProductFilter, error) {
	filter := models.ProductFilter{
		Query: strings.TrimSpace(q.Get("q")),
		Brand: strings.TrimSpace(q.Get("brand")),
		Unit:  strings.TrimSpace(q.Get("unit")),
		Limit: service.DefaultSearchLimit,
	}

	if raw := strings.TrimSpace(q.Get("category_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, fmt.Errorf("category_id must be a valid UUID")
		}
		filter.CategoryID = &id
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return filter, fmt.Errorf("limit must be an integer")
		}
		filter.Limit = limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return filter, fmt.Errorf("offset must be an integer")
		}
		filter.Offset = offset
	}
	return filter, nil
}

// optional превращает пустую строку в null в ответе
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// CategoriesHandler обрабатывает GET /categories
func CategoriesHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CategoriesHandler"
		logger := log.With(slog.String("op", op))

		categories, err := catalog.ListCategories(r.Context())
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, categories)
	}
}

// BrandsHandler обрабатывает GET /brands
func BrandsHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.BrandsHandler"
		logger := log.With(slog.String("op", op))

		brands, err := catalog.ListBrands(r.Context())
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, brands)
	}
}

// UnitsHandler обрабатывает GET /units
func UnitsHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UnitsHandler"
		logger := log.With(slog.String("op", op))

		units, err := catalog.ListUnits(r.Context())
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, units)
	}
}
