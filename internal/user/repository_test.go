package user

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "name", "email", "password", "role"}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("All", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, email, password, role FROM users ORDER BY id`).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(1, "Admin", "admin@resto.local", "hash", "admin").
				AddRow(2, "Demo", "demo@resto.local", "hash", "customer"))

		users, err := repo.List(ctx, Filter{})
		assert.NoError(t, err)
		assert.Len(t, users, 2)
		assert.Equal(t, RoleAdmin, users[0].Role)
	})

	t.Run("ByEmail", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, email, password, role FROM users WHERE LOWER\(email\) = LOWER\(\$1\) ORDER BY id`).
			WithArgs("demo@resto.local").
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(2, "Demo", "demo@resto.local", "hash", "customer"))

		users, err := repo.List(ctx, Filter{Email: "demo@resto.local"})
		assert.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, 2, users[0].ID)
	})

	t.Run("Empty result is not nil", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM users WHERE`).
			WithArgs("nobody@resto.local").
			WillReturnRows(sqlmock.NewRows(userColumns))

		users, err := repo.List(ctx, Filter{Email: "nobody@resto.local"})
		assert.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM users`).WillReturnError(errors.New("db error"))

		_, err := repo.List(ctx, Filter{})
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, email, password, role FROM users WHERE id = \$1`).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "Admin", "admin@resto.local", "hash", "admin"))

		u, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, "Admin", u.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
			WithArgs(99).
			WillReturnRows(sqlmock.NewRows(userColumns))

		u, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Nil(t, u)
	})
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users \(name, email, password, role\) VALUES \(\$1, \$2, \$3, \$4\) RETURNING id`).
			WithArgs("John", "john@example.com", "hashed", "customer").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

		u, err := repo.Create(ctx, User{Name: "John", Email: "john@example.com", Password: "hashed", Role: RoleCustomer})
		assert.NoError(t, err)
		assert.Equal(t, 7, u.ID)
		assert.Equal(t, "john@example.com", u.Email)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).WillReturnError(errors.New("db error"))

		_, err := repo.Create(ctx, User{Email: "john@example.com"})
		assert.Error(t, err)
	})
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	name := "Johnny"

	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(7, "John", "john@example.com", "hashed", "customer"))
	mock.ExpectExec(`UPDATE users SET name = \$1, email = \$2, password = \$3, role = \$4 WHERE id = \$5`).
		WithArgs("Johnny", "john@example.com", "hashed", "customer", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u, err := repo.Update(ctx, 7, Patch{Name: &name})
	assert.NoError(t, err)
	assert.Equal(t, "Johnny", u.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, repo.Delete(ctx, 7))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).WithArgs(8).WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, repo.Delete(ctx, 8), ErrUserNotFound)
	})
}
