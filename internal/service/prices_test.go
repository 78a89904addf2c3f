package service_test

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/linemk/vetcent/internal/domain/models"
	"github.com/linemk/vetcent/internal/service"
	"github.com/linemk/vetcent/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSupplierRepo struct {
	suppliers map[uuid.UUID]*models.Supplier // ключ: userID
}

var _ storage.SupplierStorage = (*fakeSupplierRepo)(nil)

func (f *fakeSupplierRepo) GetSupplierByUserID(ctx context.Context, userID uuid.UUID) (*models.Supplier, error) {
	s, ok := f.suppliers[userID]
	if !ok {
		return nil, storage.ErrSupplierNotFound
	}
	return s, nil
}

type priceFixture struct {
	svc        service.PriceService
	prices     *fakePriceRepo
	owner      uuid.UUID
	supplier   *models.Supplier
	stranger   uuid.UUID
	competitor *models.Supplier
}

func newPriceFixture() *priceFixture {
	owner, stranger := uuid.New(), uuid.New()
	supplier := &models.Supplier{ID: uuid.New(), UserID: owner, Name: "VetSupply"}
	competitor := &models.Supplier{ID: uuid.New(), UserID: stranger, Name: "Other"}
	prices := newFakePriceRepo()
	suppliers := &fakeSupplierRepo{suppliers: map[uuid.UUID]*models.Supplier{owner: supplier, stranger: competitor}}
	return &priceFixture{
		svc:        service.NewPriceService(testLogger(), prices, suppliers),
		prices:     prices,
		owner:      owner,
		supplier:   supplier,
		stranger:   stranger,
		competitor: competitor,
	}
}

func intPtr(v int) *int { return &v }

func TestPriceService_CreatePrice_Defaults(t *testing.T) {
	f := newPriceFixture()

	created, err := f.svc.CreatePrice(context.Background(), f.owner, service.CreatePriceInput{
		SupplierID: &f.supplier.ID,
		ProductID:  uuid.New(),
		Price:      decimal.RequireFromString("19.99"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, created.Stock)
	assert.Equal(t, 1, created.DeliveryDays)
	assert.True(t, created.IsActive)
	assert.Equal(t, f.supplier.ID, created.SupplierID)
}

func TestPriceService_CreatePrice_Validation(t *testing.T) {
	f := newPriceFixture()

	cases := []struct {
		name string
		in   service.CreatePriceInput
	}{
		{name: "zero price", in: service.CreatePriceInput{SupplierID: &f.supplier.ID, Price: decimal.Zero}},
		{name: "negative price", in: service.CreatePriceInput{SupplierID: &f.supplier.ID, Price: decimal.NewFromInt(-1)}},
		{name: "negative stock", in: service.CreatePriceInput{SupplierID: &f.supplier.ID, Price: decimal.NewFromInt(1), Stock: intPtr(-1)}},
		{name: "zero delivery days", in: service.CreatePriceInput{SupplierID: &f.supplier.ID, Price: decimal.NewFromInt(1), DeliveryDays: intPtr(0)}},
		{name: "missing supplier_id", in: service.CreatePriceInput{Price: decimal.NewFromInt(1)}},
		{name: "price rounds to zero", in: service.CreatePriceInput{SupplierID: &f.supplier.ID, Price: decimal.RequireFromString("0.004")}},
		{name: "more than two decimals", in: service.CreatePriceInput{SupplierID: &f.supplier.ID, Price: decimal.RequireFromString("0.001")}},
		{name: "price too large", in: service.CreatePriceInput{SupplierID: &f.supplier.ID, Price: decimal.New(1, 10)}},
		{name: "stock too large", in: service.CreatePriceInput{SupplierID: &f.supplier.ID, Price: decimal.NewFromInt(1), Stock: intPtr(math.MaxInt32 + 1)}},
		{name: "delivery days too large", in: service.CreatePriceInput{SupplierID: &f.supplier.ID, Price: decimal.NewFromInt(1), DeliveryDays: intPtr(math.MaxInt32 + 1)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.CreatePrice(context.Background(), f.owner, tc.in)
			assert.ErrorIs(t, err, service.ErrInvalidInput)
		})
	}
	assert.Empty(t, f.prices.prices, "rejected input must not be stored")
}

func TestPriceService_CreatePrice_ForeignSupplier(t *testing.T) {
	f := newPriceFixture()

	_, err := f.svc.CreatePrice(context.Background(), f.stranger, service.CreatePriceInput{
		SupplierID: &f.supplier.ID,
		ProductID:  uuid.New(),
		Price:      decimal.NewFromInt(5),
	})
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = f.svc.CreatePrice(context.Background(), uuid.New(), service.CreatePriceInput{
		SupplierID: &f.supplier.ID,
		ProductID:  uuid.New(),
		Price:      decimal.NewFromInt(5),
	})
	assert.ErrorIs(t, err, service.ErrNotSupplier)
	assert.Empty(t, f.prices.prices)
}

func TestPriceService_UpdatePrice(t *testing.T) {
	f := newPriceFixture()
	price := f.prices.add(&models.SupplierPrice{SupplierID: f.supplier.ID, ProductID: uuid.New(), Price: decimal.NewFromInt(10), Stock: 3, DeliveryDays: 2, IsActive: true})

	newStock := 42
	updated, err := f.svc.UpdatePrice(context.Background(), f.owner, price.ID, models.SupplierPriceUpdate{Stock: &newStock})
	require.NoError(t, err)
	assert.Equal(t, 42, updated.Stock)
	assert.True(t, decimal.NewFromInt(10).Equal(updated.Price), "fields not in the patch stay unchanged")
	assert.Equal(t, 2, updated.DeliveryDays)
}

func TestPriceService_CreatePrice_MaxPrice(t *testing.T) {
	f := newPriceFixture()

	created, err := f.svc.CreatePrice(context.Background(), f.owner, service.CreatePriceInput{
		SupplierID: &f.supplier.ID,
		ProductID:  uuid.New(),
		Price:      decimal.RequireFromString("9999999999.99"),
	})
	require.NoError(t, err)
	assert.Equal(t, "9999999999.99", created.Price.String())
}

func TestPriceService_UpdatePrice_Rejected(t *testing.T) {
	f := newPriceFixture()
	price := f.prices.add(&models.SupplierPrice{SupplierID: f.supplier.ID, ProductID: uuid.New(), Price: decimal.NewFromInt(10), Stock: 3, DeliveryDays: 2, IsActive: true})
	zero := decimal.Zero
	stock := 1

	_, err := f.svc.UpdatePrice(context.Background(), f.owner, price.ID, models.SupplierPriceUpdate{})
	assert.ErrorIs(t, err, service.ErrNothingToUpdate)

	_, err = f.svc.UpdatePrice(context.Background(), f.owner, price.ID, models.SupplierPriceUpdate{Price: &zero})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	// 0.015 не округляется молча до 0.02
	fractional := decimal.RequireFromString("0.015")
	_, err = f.svc.UpdatePrice(context.Background(), f.owner, price.ID, models.SupplierPriceUpdate{Price: &fractional})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	assert.True(t, decimal.NewFromInt(10).Equal(price.Price))

	_, err = f.svc.UpdatePrice(context.Background(), f.owner, uuid.New(), models.SupplierPriceUpdate{Stock: &stock})
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = f.svc.UpdatePrice(context.Background(), f.stranger, price.ID, models.SupplierPriceUpdate{Stock: &stock})
	assert.ErrorIs(t, err, service.ErrForbidden)
	assert.Equal(t, 3, price.Stock, "non-owner must not change the row")
}

func TestPriceService_DeactivatePrice(t *testing.T) {
	f := newPriceFixture()
	price := f.prices.add(&models.SupplierPrice{SupplierID: f.supplier.ID, ProductID: uuid.New(), Price: decimal.NewFromInt(10), Stock: 3, DeliveryDays: 2, IsActive: true})

	_, err := f.svc.DeactivatePrice(context.Background(), f.stranger, price.ID)
	assert.ErrorIs(t, err, service.ErrForbidden)
	assert.True(t, price.IsActive)

	deactivated, err := f.svc.DeactivatePrice(context.Background(), f.owner, price.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	_, err = f.svc.DeactivatePrice(context.Background(), f.owner, uuid.New())
	assert.ErrorIs(t, err, service.ErrSupplierPriceNotFound)
}

func TestPriceService_ListSupplierPrices(t *testing.T) {
	f := newPriceFixture()
	f.prices.add(&models.SupplierPrice{SupplierID: f.supplier.ID, ProductID: uuid.New(), Price: decimal.NewFromInt(1), DeliveryDays: 1})
	f.prices.add(&models.SupplierPrice{SupplierID: f.competitor.ID, ProductID: uuid.New(), Price: decimal.NewFromInt(2), DeliveryDays: 1})

	own, err := f.svc.ListSupplierPrices(context.Background(), f.owner, f.supplier.ID)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	_, err = f.svc.ListSupplierPrices(context.Background(), f.owner, f.competitor.ID)
	assert.ErrorIs(t, err, service.ErrForeignSupplierID)
}
