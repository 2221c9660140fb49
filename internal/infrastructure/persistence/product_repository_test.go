package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock) {
	gormDB, mock := newMockGormDB(t)
	return NewGormProductRepository(gormDB), mock
}

func TestGormProductRepository_FindByIDForTenant(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()

	t.Run("finds product", func(t *testing.T) {
		repo, mock := newMockProductRepository(t)

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "version", "created_at", "updated_at", "name", "sku", "unit_price", "stock"}).
			AddRow(productID.String(), tenantID.String(), 1, time.Now(), time.Now(), "Mug", "MUG-1", "12.50", 7)
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID.String(), productID.String(), 1).
			WillReturnRows(rows)

		product, err := repo.FindByIDForTenant(context.Background(), tenantID, productID)

		require.NoError(t, err)
		assert.Equal(t, "MUG-1", product.SKU)
		assert.Equal(t, 7, product.Stock)
		assert.Equal(t, "12.5", product.UnitPrice.String())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMockProductRepository(t)

		mock.ExpectQuery(`SELECT \* FROM "products"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByIDForTenant(context.Background(), tenantID, productID)
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	})
}

func TestGormProductRepository_DecrementIfAvailable(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()
	query := `UPDATE "products" SET "stock"=stock - \$1,"updated_at"=NOW\(\) WHERE tenant_id = \$2 AND id = \$3 AND stock >= \$4`

	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "enough stock", affected: 1, want: true},
		{name: "not enough stock", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockProductRepository(t)

			mock.ExpectExec(query).
				WithArgs(3, tenantID.String(), productID.String(), 3).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			ok, err := repo.DecrementIfAvailable(context.Background(), tenantID, productID, 3)

			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGormProductRepository_Increment(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()

	t.Run("adds units back", func(t *testing.T) {
		repo, mock := newMockProductRepository(t)

		mock.ExpectExec(`UPDATE "products" SET "stock"=stock \+ \$1,"updated_at"=NOW\(\) WHERE tenant_id = \$2 AND id = \$3`).
			WithArgs(2, tenantID.String(), productID.String()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Increment(context.Background(), tenantID, productID, 2))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown product", func(t *testing.T) {
		repo, mock := newMockProductRepository(t)

		mock.ExpectExec(`UPDATE "products"`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Increment(context.Background(), tenantID, productID, 2)
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	})
}

func TestGormProductRepository_Available(t *testing.T) {
	repo, mock := newMockProductRepository(t)

	tenantID := uuid.New()
	productID := uuid.New()
	mock.ExpectQuery(`SELECT "stock" FROM "products" WHERE tenant_id = \$1 AND id = \$2`).
		WithArgs(tenantID.String(), productID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(4))

	stock, err := repo.Available(context.Background(), tenantID, productID)

	require.NoError(t, err)
	assert.Equal(t, 4, stock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProductRepository_Lock(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()
	query := `SELECT "id" FROM "products" WHERE tenant_id = \$1 AND id = \$2 LIMIT \$3 FOR UPDATE`

	t.Run("locks the row", func(t *testing.T) {
		repo, mock := newMockProductRepository(t)

		mock.ExpectQuery(query).
			WithArgs(tenantID.String(), productID.String(), 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(productID.String()))

		require.NoError(t, repo.Lock(context.Background(), tenantID, productID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown product", func(t *testing.T) {
		repo, mock := newMockProductRepository(t)

		mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows([]string{"id"}))

		err := repo.Lock(context.Background(), tenantID, productID)
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	})
}
