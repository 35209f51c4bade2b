package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return NewGormProductRepository(gormDB), mock, mockDB
}

func TestGormProductRepository_Create(t *testing.T) {
	repo, mock, mockDB := newMockProductRepository(t)
	defer mockDB.Close()

	p, err := catalog.NewProduct("Widget", decimal.NewFromFloat(9.99))
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO "products"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(context.Background(), p)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProductRepository_Update(t *testing.T) {
	t.Run("updates existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		p, err := catalog.NewProduct("Widget", decimal.NewFromFloat(9.99))
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "products" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Update(context.Background(), p)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when no rows affected", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		p, err := catalog.NewProduct("Widget", decimal.NewFromFloat(9.99))
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "products" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Update(context.Background(), p)

		// A vanished row must surface as not-found, never as a re-insert;
		// any INSERT here would fail the sqlmock expectations.
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindByID(t *testing.T) {
	t.Run("finds existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "version", "name", "description", "price", "image_url", "status"}).
			AddRow(productID, 1, "Widget", "A widget", "9.99", "", "active")

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
			WithArgs(productID, 1).
			WillReturnRows(rows)

		found, err := repo.FindByID(context.Background(), productID)

		require.NoError(t, err)
		assert.Equal(t, productID, found.ID)
		assert.Equal(t, "Widget", found.Name)
		assert.True(t, found.Price.Equal(decimal.NewFromFloat(9.99)))
	})

	t.Run("returns ErrNotFound for unknown id", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "products"`).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByID(context.Background(), uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_FindAll(t *testing.T) {
	t.Run("returns products with total count", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "products"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		rows := sqlmock.NewRows([]string{"id", "version", "name", "description", "price", "image_url", "status"}).
			AddRow(uuid.New(), 1, "Widget", "", "9.99", "", "active").
			AddRow(uuid.New(), 1, "Gadget", "", "19.99", "", "active")

		mock.ExpectQuery(`SELECT \* FROM "products" ORDER BY created_at desc`).
			WillReturnRows(rows)

		products, total, err := repo.FindAll(context.Background(), catalog.ProductFilter{Page: 1, PageSize: 20})

		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, products, 2)
		assert.Equal(t, "Widget", products[0].Name)
		assert.Equal(t, "Gadget", products[1].Name)
	})

	t.Run("applies keyword filter", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE name ILIKE \$1`).
			WithArgs("%wid%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		rows := sqlmock.NewRows([]string{"id", "version", "name", "description", "price", "image_url", "status"}).
			AddRow(uuid.New(), 1, "Widget", "", "9.99", "", "active")

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE name ILIKE \$1 ORDER BY created_at desc`).
			WithArgs("%wid%", 20).
			WillReturnRows(rows)

		products, total, err := repo.FindAll(context.Background(), catalog.ProductFilter{Keyword: "wid", Page: 1, PageSize: 20})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, products, 1)
		assert.Equal(t, "Widget", products[0].Name)
	})
}
