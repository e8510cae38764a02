package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "secret", hash)
}

func TestCheckPasswordHash(t *testing.T) {
	hash, _ := HashPassword("secret")

	assert.True(t, CheckPasswordHash("secret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.False(t, CheckPasswordHash("secret", "secret"))
}

func TestPatchApply(t *testing.T) {
	name := "Alice B."
	role := RoleAdmin
	u := User{ID: 1, Name: "Alice", Email: "a@x.io", Role: RoleCustomer}

	got := Patch{Name: &name, Role: &role}.Apply(u)

	assert.Equal(t, User{ID: 1, Name: "Alice B.", Email: "a@x.io", Role: RoleAdmin}, got)
	assert.Equal(t, u, Patch{}.Apply(u))
}

func TestFilterMatch(t *testing.T) {
	u := User{Email: "Demo@Resto.local"}

	assert.True(t, Filter{}.Match(u))
	assert.True(t, Filter{Email: "demo@resto.local"}.Match(u))
	assert.False(t, Filter{Email: "other@resto.local"}.Match(u))
}
