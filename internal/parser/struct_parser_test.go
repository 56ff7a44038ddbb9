package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestParseFile(t *testing.T) {
	p := NewStructParser("quill")

	t.Run("full entity declaration", func(t *testing.T) {
		src := `package models

import "github.com/quillsql/quill/pkg/quill"

type User struct {
	ID    quill.Null[string] ` + "`quill:\"column\"`" + `
	Name  quill.Null[string] ` + "`quill:\"column\"`" + `
	Views int64              ` + "`quill:\"column\"`" + `

	Posts []string

	_ struct{} ` + "`quill:\"table:users;alias:owner,creator\"`" + `
}
`
		file := writeSource(t, t.TempDir(), "user.go", src)
		entities, err := p.ParseFile(file)
		require.NoError(t, err)
		require.Len(t, entities, 1)

		e := entities[0]
		assert.Equal(t, "User", e.StructName)
		assert.Equal(t, "users", e.TableName)
		assert.Equal(t, []string{"owner", "creator"}, e.Aliases)

		attributed := e.AttributedFields()
		require.Len(t, attributed, 3)

		id := attributed[0]
		assert.Equal(t, "ID", id.Name)
		assert.Equal(t, "id", id.Column)
		assert.Equal(t, "quill.Null[string]", id.DeclaredType)
		assert.Equal(t, "string", id.InnerType)
		assert.True(t, id.IsNullWrapped)

		views := attributed[2]
		assert.Equal(t, "views", views.Column)
		assert.Equal(t, "int64", views.InnerType)
		assert.False(t, views.IsNullWrapped)
	})

	t.Run("table name defaults to snake case of the struct", func(t *testing.T) {
		src := `package models

import "github.com/quillsql/quill/pkg/quill"

type BlogPost struct {
	ID quill.Null[string] ` + "`quill:\"column\"`" + `
}
`
		file := writeSource(t, t.TempDir(), "post.go", src)
		entities, err := p.ParseFile(file)
		require.NoError(t, err)
		require.Len(t, entities, 1)
		assert.Equal(t, "blog_post", entities[0].TableName)
	})

	t.Run("unattributed fields are kept but not attributed", func(t *testing.T) {
		src := `package models

import "github.com/quillsql/quill/pkg/quill"

type Post struct {
	ID     quill.Null[string] ` + "`quill:\"column\"`" + `
	Author quill.Null[string]
}
`
		file := writeSource(t, t.TempDir(), "post.go", src)
		entities, err := p.ParseFile(file)
		require.NoError(t, err)
		require.Len(t, entities, 1)

		e := entities[0]
		assert.Len(t, e.Fields, 2)
		assert.Len(t, e.AttributedFields(), 1)
	})

	t.Run("structs without quill declarations are skipped", func(t *testing.T) {
		src := `package models

type helper struct {
	Count int
}
`
		file := writeSource(t, t.TempDir(), "helper.go", src)
		entities, err := p.ParseFile(file)
		require.NoError(t, err)
		assert.Empty(t, entities)
	})

	t.Run("malformed field tag defaults the field", func(t *testing.T) {
		src := `package models

import "github.com/quillsql/quill/pkg/quill"

type User struct {
	ID    quill.Null[string] ` + "`quill:\"column\"`" + `
	Email quill.Null[string] ` + "`quill:\"colum\"`" + `
}
`
		file := writeSource(t, t.TempDir(), "user.go", src)
		entities, err := p.ParseFile(file)
		require.NoError(t, err)
		require.Len(t, entities, 1)

		attributed := entities[0].AttributedFields()
		require.Len(t, attributed, 1)
		assert.Equal(t, "ID", attributed[0].Name)
	})

	t.Run("malformed table tag keeps derived defaults", func(t *testing.T) {
		src := `package models

import "github.com/quillsql/quill/pkg/quill"

type User struct {
	ID quill.Null[string] ` + "`quill:\"column\"`" + `

	_ struct{} ` + "`quill:\"table\"`" + `
}
`
		file := writeSource(t, t.TempDir(), "user.go", src)
		entities, err := p.ParseFile(file)
		require.NoError(t, err)
		require.Len(t, entities, 1)
		assert.Equal(t, "user", entities[0].TableName)
	})

	t.Run("helper struct with an unrenderable field does not poison the run", func(t *testing.T) {
		src := `package models

import "github.com/quillsql/quill/pkg/quill"

type callbacks struct {
	OnSave func() error
}

type User struct {
	ID quill.Null[string] ` + "`quill:\"column\"`" + `
}
`
		file := writeSource(t, t.TempDir(), "user.go", src)
		entities, err := p.ParseFile(file)
		require.NoError(t, err)
		require.Len(t, entities, 1)
		assert.Equal(t, "User", entities[0].StructName)
	})

	t.Run("unrenderable attributed field aborts only that entity", func(t *testing.T) {
		src := `package models

import "github.com/quillsql/quill/pkg/quill"

type Hook struct {
	ID quill.Null[string] ` + "`quill:\"column\"`" + `
	Fn func()             ` + "`quill:\"column\"`" + `
}

type User struct {
	ID quill.Null[string] ` + "`quill:\"column\"`" + `
}
`
		file := writeSource(t, t.TempDir(), "models.go", src)
		entities, err := p.ParseFile(file)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "entity Hook")

		require.Len(t, entities, 1)
		assert.Equal(t, "User", entities[0].StructName)
	})

	t.Run("unexported fields are ignored", func(t *testing.T) {
		src := `package models

import "github.com/quillsql/quill/pkg/quill"

type User struct {
	ID       quill.Null[string] ` + "`quill:\"column\"`" + `
	internal string
}
`
		file := writeSource(t, t.TempDir(), "user.go", src)
		entities, err := p.ParseFile(file)
		require.NoError(t, err)
		require.Len(t, entities, 1)
		assert.Len(t, entities[0].Fields, 1)
	})
}

func TestParseDirectory(t *testing.T) {
	t.Run("collects entities across files and skips tests", func(t *testing.T) {
		dir := t.TempDir()
		writeSource(t, dir, "user.go", `package models

import "github.com/quillsql/quill/pkg/quill"

type User struct {
	ID quill.Null[string] `+"`quill:\"column\"`"+`
}
`)
		writeSource(t, dir, "post.go", `package models

import "github.com/quillsql/quill/pkg/quill"

type Post struct {
	ID quill.Null[string] `+"`quill:\"column\"`"+`
}
`)
		writeSource(t, dir, "user_test.go", `package models

import "github.com/quillsql/quill/pkg/quill"

type Ghost struct {
	ID quill.Null[string] `+"`quill:\"column\"`"+`
}
`)

		p := NewStructParser("quill")
		entities, err := p.ParseDirectory(dir)
		require.NoError(t, err)

		names := make([]string, 0, len(entities))
		for _, e := range entities {
			names = append(names, e.StructName)
		}
		assert.ElementsMatch(t, []string{"User", "Post"}, names)
	})

	t.Run("a broken file does not hide the others", func(t *testing.T) {
		dir := t.TempDir()
		writeSource(t, dir, "user.go", `package models

import "github.com/quillsql/quill/pkg/quill"

type User struct {
	ID quill.Null[string] `+"`quill:\"column\"`"+`
}
`)
		writeSource(t, dir, "broken.go", `package models

type Broken struct {
`)

		p := NewStructParser("quill")
		entities, err := p.ParseDirectory(dir)
		require.Error(t, err)
		require.Len(t, entities, 1)
		assert.Equal(t, "User", entities[0].StructName)
	})
}
