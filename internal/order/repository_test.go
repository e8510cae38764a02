package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderColumns = []string{"id", "user_id", "user_info", "items", "total", "status", "created_at"}

func orderRow(rows *sqlmock.Rows, id, userID int, status string, at time.Time) *sqlmock.Rows {
	return rows.AddRow(
		id, userID,
		[]byte(`{"id":2,"name":"Demo","email":"demo@resto.local"}`),
		[]byte(`[{"productId":1,"name":"Margherita","price":9.5,"quantity":2}]`),
		19.0, status, at,
	)
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	at := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	t.Run("All", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, user_id, user_info, items, total, status, created_at FROM orders ORDER BY id`).
			WillReturnRows(orderRow(sqlmock.NewRows(orderColumns), 1, 2, StatusPending, at))

		orders, err := repo.List(ctx, Filter{})
		assert.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "Demo", orders[0].User.Name)
		require.Len(t, orders[0].Items, 1)
		assert.Equal(t, 2, orders[0].Items[0].Quantity)
		assert.Equal(t, at, orders[0].CreatedAt)
	})

	t.Run("ByUserAndStatus", func(t *testing.T) {
		mock.ExpectQuery(`FROM orders WHERE user_id = \$1 AND status = \$2 ORDER BY id`).
			WithArgs(2, StatusReady).
			WillReturnRows(orderRow(sqlmock.NewRows(orderColumns), 4, 2, StatusReady, at))

		orders, err := repo.List(ctx, Filter{UserID: 2, Status: StatusReady})
		assert.NoError(t, err)
		assert.Len(t, orders, 1)
	})

	t.Run("Corrupt items", func(t *testing.T) {
		mock.ExpectQuery(`FROM orders`).
			WillReturnRows(sqlmock.NewRows(orderColumns).
				AddRow(5, 2, []byte(`{}`), []byte(`not json`), 1.0, StatusPending, at))

		_, err := repo.List(ctx, Filter{})
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	at := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	o := Order{
		UserID:    2,
		User:      Customer{ID: 2, Name: "Demo", Email: "demo@resto.local"},
		Items:     []Item{{ProductID: 1, Name: "Margherita", Price: 9.5, Quantity: 2}},
		Total:     19,
		Status:    StatusPending,
		CreatedAt: at,
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO orders`).
			WithArgs(2, sqlmock.AnyArg(), sqlmock.AnyArg(), 19.0, StatusPending, at).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))

		created, err := repo.Create(context.Background(), o)
		assert.NoError(t, err)
		assert.Equal(t, 10, created.ID)
		assert.Equal(t, o.Items, created.Items)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO orders`).WillReturnError(errors.New("db error"))

		_, err := repo.Create(context.Background(), o)
		assert.Error(t, err)
	})
}

func TestRepository_UpdateAndDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	at := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	status := StatusDelivered

	mock.ExpectQuery(`FROM orders WHERE id = \$1`).
		WithArgs(1).
		WillReturnRows(orderRow(sqlmock.NewRows(orderColumns), 1, 2, StatusPending, at))
	mock.ExpectExec(`UPDATE orders SET status = \$1 WHERE id = \$2`).
		WithArgs(StatusDelivered, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.Update(ctx, 1, Patch{Status: &status})
	assert.NoError(t, err)
	assert.Equal(t, StatusDelivered, updated.Status)

	mock.ExpectQuery(`FROM orders WHERE id = \$1`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(orderColumns))
	_, err = repo.Update(ctx, 3, Patch{Status: &status})
	assert.ErrorIs(t, err, ErrOrderNotFound)

	mock.ExpectExec(`DELETE FROM orders WHERE id = \$1`).WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(ctx, 1))

	mock.ExpectExec(`DELETE FROM orders WHERE id = \$1`).WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(ctx, 1), ErrOrderNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilterAndStatus(t *testing.T) {
	o := Order{UserID: 2, Status: StatusPending}

	assert.True(t, Filter{}.Match(o))
	assert.True(t, Filter{UserID: 2}.Match(o))
	assert.False(t, Filter{UserID: 3}.Match(o))
	assert.False(t, Filter{Status: StatusReady}.Match(o))

	assert.True(t, ValidStatus(StatusCancelled))
	assert.False(t, ValidStatus("lost"))
}
