package product

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productColumns = []string{"id", "name", "price", "category", "img", "description", "stock"}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("All", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, price, category, img, description, stock FROM products ORDER BY id`).
			WillReturnRows(sqlmock.NewRows(productColumns).
				AddRow(1, "Margherita", 9.5, "Pizza", "img/margherita.jpg", "Tomato, mozzarella", 20).
				AddRow(2, "Tiramisu", 5.0, "Desserts", "img/tiramisu.jpg", "Coffee, mascarpone", 8))

		products, err := repo.List(ctx, Filter{})
		assert.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, 9.5, products[0].Price)
		assert.Equal(t, "Desserts", products[1].Category)
	})

	t.Run("ByCategory", func(t *testing.T) {
		mock.ExpectQuery(`FROM products WHERE LOWER\(category\) = LOWER\(\$1\) ORDER BY id`).
			WithArgs("pizza").
			WillReturnRows(sqlmock.NewRows(productColumns).
				AddRow(1, "Margherita", 9.5, "Pizza", "", "", 20))

		products, err := repo.List(ctx, Filter{Category: "pizza"})
		assert.NoError(t, err)
		assert.Len(t, products, 1)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`FROM products`).WillReturnError(errors.New("db error"))

		_, err := repo.List(ctx, Filter{})
		assert.Error(t, err)
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`FROM products WHERE id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(productColumns).AddRow(1, "Margherita", 9.5, "Pizza", "", "", 20))

	p, err := repo.GetByID(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, "Margherita", p.Name)

	mock.ExpectQuery(`FROM products WHERE id = \$1`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(productColumns))

	_, err = repo.GetByID(ctx, 2)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(`INSERT INTO products`).
		WithArgs("Lasagna", 12.0, "Pasta", "", "Baked", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	p, err := repo.Create(context.Background(), Product{Name: "Lasagna", Price: 12, Category: "Pasta", Description: "Baked", Stock: 5})
	assert.NoError(t, err)
	assert.Equal(t, 3, p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	price := 11.0

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`FROM products WHERE id = \$1`).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows(productColumns).AddRow(1, "Margherita", 9.5, "Pizza", "", "", 20))
		mock.ExpectExec(`UPDATE products`).
			WithArgs("Margherita", 11.0, "Pizza", "", "", 20, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		p, err := repo.Update(ctx, 1, Patch{Price: &price})
		assert.NoError(t, err)
		assert.Equal(t, 11.0, p.Price)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`FROM products WHERE id = \$1`).
			WithArgs(9).
			WillReturnRows(sqlmock.NewRows(productColumns))

		_, err := repo.Update(ctx, 9, Patch{Price: &price})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(ctx, 1))

	mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).WithArgs(2).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(ctx, 2), ErrProductNotFound)
}

func TestPatchAndCategories(t *testing.T) {
	p := Product{ID: 1, Name: "Margherita", Price: 9.5, Category: "Pizza", Stock: 3}
	name := "Marinara"

	assert.Equal(t, "Marinara", Patch{Name: &name}.Apply(p).Name)
	assert.Equal(t, 9.5, Patch{Name: &name}.Apply(p).Price)

	replaced := PatchFrom(Product{Name: "X"}).Apply(p)
	assert.Equal(t, Product{ID: 1, Name: "X"}, replaced)

	cats := Categories([]Product{{Category: "Pizza"}, {Category: "Pasta"}, {Category: "Pizza"}, {}})
	assert.Equal(t, []string{"Pizza", "Pasta"}, cats)

	assert.True(t, Filter{Category: "PIZZA"}.Match(p))
	assert.False(t, Filter{Category: "Pasta"}.Match(p))
}
