package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// newMockOrderRepository creates a GormOrderRepository with a mocked SQL connection
func newMockOrderRepository(t *testing.T) (*GormOrderRepository, sqlmock.Sqlmock, *sql.DB) {
	mdb := testutil.NewMockDB(t)
	return NewGormOrderRepository(mdb.DB), mdb.Mock, mdb.SqlDB
}

func TestGormOrderRepository_FindByOrderNumber(t *testing.T) {
	t.Run("finds existing order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		userID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "order_number", "user_id", "status", "payment_status", "total_amount"}).
			AddRow(orderID, "ORD-20260829-DEADBEEF", userID, "pending", "pending", decimal.NewFromInt(120))

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE order_number = \$1 AND "orders"\."deleted_at" IS NULL ORDER BY .* LIMIT .*`).
			WithArgs("ORD-20260829-DEADBEEF", 1).
			WillReturnRows(rows)
		mock.ExpectQuery(`SELECT \* FROM "order_items" WHERE "order_items"\."order_id" = \$1`).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id"}))
		mock.ExpectQuery(`SELECT \* FROM "order_status_history" WHERE "order_status_history"\."order_id" = \$1.*`).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id"}))

		order, err := repo.FindByOrderNumber(context.Background(), "ORD-20260829-DEADBEEF")

		assert.NoError(t, err)
		assert.NotNil(t, order)
		assert.Equal(t, orderID, order.ID)
		assert.Equal(t, ordering.OrderStatusPending, order.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown order number", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE order_number = \$1 AND "orders"\."deleted_at" IS NULL ORDER BY .* LIMIT .*`).
			WithArgs("ORD-00000000-00000000", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		order, err := repo.FindByOrderNumber(context.Background(), "ORD-00000000-00000000")

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Nil(t, order)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_PlaceOrder_InsufficientStock(t *testing.T) {
	t.Run("rolls back when a stock decrement matches no row", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		cartID := uuid.New()

		mock.ExpectBegin()
		// Conditional update finds no row with enough stock
		mock.ExpectExec(`UPDATE "products" SET "stock_quantity"=stock_quantity - \$1,"updated_at"=\$2 WHERE \(id = \$3 AND stock_quantity >= \$4\) AND "products"\."deleted_at" IS NULL`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		decrements := []ordering.StockDecrement{{ProductID: productID, Quantity: 5}}
		err := repo.PlaceOrder(context.Background(), &ordering.Order{}, decrements, cartID)

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_CountByUser(t *testing.T) {
	t.Run("counts orders for user", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		userID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE user_id = \$1 AND "orders"\."deleted_at" IS NULL`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.CountByUser(context.Background(), userID)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_ExistsByOrderNumber(t *testing.T) {
	t.Run("returns true when order number is taken", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE order_number = \$1 AND "orders"\."deleted_at" IS NULL`).
			WithArgs("ORD-20260829-DEADBEEF").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByOrderNumber(context.Background(), "ORD-20260829-DEADBEEF")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
