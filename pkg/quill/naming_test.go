package quill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildNaming(t *testing.T) {
	naming := BuildNaming("users", []string{"id", "name", "email"})

	t.Run("per-column projections", func(t *testing.T) {
		assert.Equal(t, "name", naming.Plain("name"))
		assert.Equal(t, "users.name", naming.Tabled("name"))
		assert.Equal(t, "users_name", naming.Renamed("name"))
		assert.Equal(t, "users.name AS users_name", naming.Aliased("name"))
	})

	t.Run("joined lists preserve declaration order", func(t *testing.T) {
		assert.Equal(t, "id, name, email", naming.AllPlain())
		assert.Equal(t, "users.id, users.name, users.email", naming.AllTabled())
		assert.Equal(t, "users_id, users_name, users_email", naming.AllRenamed())
		assert.Equal(t,
			"users.id AS users_id, users.name AS users_name, users.email AS users_email",
			naming.AllAliased())
	})

	t.Run("table and scope", func(t *testing.T) {
		assert.Equal(t, "users", naming.Table())
		assert.Equal(t, "users", naming.Scope())
		assert.Equal(t, []string{"id", "name", "email"}, naming.Columns())
	})
}

func TestNamingScoped(t *testing.T) {
	naming := BuildNaming("users", []string{"id", "name", "email"})
	owner := naming.Scoped("owner")

	t.Run("alias replaces the table only in the output name", func(t *testing.T) {
		assert.Equal(t, "users.name", owner.Tabled("name"))
		assert.Equal(t, "owner_name", owner.Renamed("name"))
		assert.Equal(t, "users.name AS owner_name", owner.Aliased("name"))
	})

	t.Run("plain and tabled are untouched by scoping", func(t *testing.T) {
		assert.Equal(t, naming.AllPlain(), owner.AllPlain())
		assert.Equal(t, naming.AllTabled(), owner.AllTabled())
	})

	t.Run("joined aliased list", func(t *testing.T) {
		assert.Equal(t,
			"users.id AS owner_id, users.name AS owner_name, users.email AS owner_email",
			owner.AllAliased())
	})

	t.Run("scoping does not mutate the base table", func(t *testing.T) {
		assert.Equal(t, "users_name", naming.Renamed("name"))
		assert.Equal(t, "users", owner.Table())
		assert.Equal(t, "owner", owner.Scope())
	})
}
