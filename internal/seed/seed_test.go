package seed

import (
	"context"
	"path/filepath"
	"testing"

	"resto-app/internal/jsondb"
	"resto-app/internal/product"
	"resto-app/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	db, err := jsondb.Open(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, Run(ctx, db.Users(), db.Products()))

	users, err := db.Users().List(ctx, user.Filter{})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, user.RoleAdmin, users[0].Role)
	assert.True(t, user.CheckPasswordHash("admin123", users[0].Password))
	assert.True(t, user.CheckPasswordHash("demo123", users[1].Password))

	products, err := db.Products().List(ctx, product.Filter{})
	require.NoError(t, err)
	assert.Len(t, products, len(Menu))

	t.Run("Idempotent", func(t *testing.T) {
		require.NoError(t, Run(ctx, db.Users(), db.Products()))

		users, _ := db.Users().List(ctx, user.Filter{})
		products, _ := db.Products().List(ctx, product.Filter{})
		assert.Len(t, users, 2)
		assert.Len(t, products, len(Menu))
	})
}
