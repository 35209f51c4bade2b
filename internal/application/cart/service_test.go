package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.Product, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*catalog.Product), args.Get(1).(int64), args.Error(2)
}

func activeProduct(t *testing.T, name string, price float64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, decimal.NewFromFloat(price))
	require.NoError(t, err)
	return p
}

func TestService_AddItem(t *testing.T) {
	t.Run("adds existing product with default quantity", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewService(cache.NewInMemoryCartStore(), repo, zap.NewNop())

		p := activeProduct(t, "Widget", 9.99)
		repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		result, err := svc.AddItem(context.Background(), AddItemInput{
			SessionID: "sess-1",
			ProductID: p.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Quantity)
	})

	t.Run("two sequential adds both increment", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewService(cache.NewInMemoryCartStore(), repo, zap.NewNop())

		p := activeProduct(t, "Widget", 9.99)
		repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		first, err := svc.AddItem(context.Background(), AddItemInput{SessionID: "sess-1", ProductID: p.ID})
		require.NoError(t, err)
		second, err := svc.AddItem(context.Background(), AddItemInput{SessionID: "sess-1", ProductID: p.ID})
		require.NoError(t, err)

		assert.Equal(t, int64(1), first.Quantity)
		assert.Equal(t, int64(2), second.Quantity)
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewService(cache.NewInMemoryCartStore(), repo, zap.NewNop())

		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := svc.AddItem(context.Background(), AddItemInput{SessionID: "sess-1", ProductID: id})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRODUCT_NOT_FOUND", domainErr.Code)
	})

	t.Run("rejects inactive product", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewService(cache.NewInMemoryCartStore(), repo, zap.NewNop())

		p := activeProduct(t, "Widget", 9.99)
		require.NoError(t, p.Deactivate())
		repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		_, err := svc.AddItem(context.Background(), AddItemInput{SessionID: "sess-1", ProductID: p.ID})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRODUCT_INACTIVE", domainErr.Code)
	})

	t.Run("rejects missing session", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewService(cache.NewInMemoryCartStore(), repo, zap.NewNop())

		_, err := svc.AddItem(context.Background(), AddItemInput{ProductID: uuid.New()})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "FindByID")
	})
}

func TestService_Get(t *testing.T) {
	t.Run("joins entries with product details and totals", func(t *testing.T) {
		repo := new(MockProductRepository)
		store := cache.NewInMemoryCartStore()
		svc := NewService(store, repo, zap.NewNop())

		p := activeProduct(t, "Widget", 10.00)
		repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		_, err := svc.AddItem(context.Background(), AddItemInput{SessionID: "sess-1", ProductID: p.ID, Quantity: 3})
		require.NoError(t, err)

		info, err := svc.Get(context.Background(), "sess-1")

		require.NoError(t, err)
		require.Len(t, info.Items, 1)
		assert.Equal(t, "Widget", info.Items[0].Name)
		assert.Equal(t, int64(3), info.Items[0].Quantity)
		assert.True(t, info.Total.Equal(decimal.NewFromFloat(30.00)))
	})

	t.Run("skips entries whose product vanished", func(t *testing.T) {
		repo := new(MockProductRepository)
		store := cache.NewInMemoryCartStore()
		svc := NewService(store, repo, zap.NewNop())

		ghostID := uuid.New()
		_, err := store.Add(context.Background(), "sess-1", ghostID, 1)
		require.NoError(t, err)
		repo.On("FindByID", mock.Anything, ghostID).Return(nil, shared.ErrNotFound)

		info, err := svc.Get(context.Background(), "sess-1")

		require.NoError(t, err)
		assert.Empty(t, info.Items)
		assert.True(t, info.Total.IsZero())
	})

	t.Run("empty cart returns empty items", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewService(cache.NewInMemoryCartStore(), repo, zap.NewNop())

		info, err := svc.Get(context.Background(), "sess-1")

		require.NoError(t, err)
		assert.Empty(t, info.Items)
	})
}

func TestService_Clear(t *testing.T) {
	repo := new(MockProductRepository)
	store := cache.NewInMemoryCartStore()
	svc := NewService(store, repo, zap.NewNop())

	p := activeProduct(t, "Widget", 9.99)
	repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

	_, err := svc.AddItem(context.Background(), AddItemInput{SessionID: "sess-1", ProductID: p.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(context.Background(), "sess-1"))

	info, err := svc.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, info.Items)
}
