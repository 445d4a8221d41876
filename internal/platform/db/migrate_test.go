package db

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_SortedByVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"0003_views.sql":  {Data: []byte("SELECT 3;")},
		"0001_schema.sql": {Data: []byte("CREATE TABLE departments (id SERIAL PRIMARY KEY);")},
		"0002_index.sql":  {Data: []byte("CREATE INDEX ON departments (id);")},
	}

	migrations, err := NewMigrator(nil, fsys).LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 3)

	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "0001_schema.sql", migrations[0].Name)
	assert.Equal(t, "CREATE TABLE departments (id SERIAL PRIMARY KEY);", migrations[0].SQL)
	assert.Equal(t, 2, migrations[1].Version)
	assert.Equal(t, 3, migrations[2].Version)
}

func TestLoadMigrations_SkipsNonMigrationFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"0001_schema.sql":  {Data: []byte("SELECT 1;")},
		"README.md":        {Data: []byte("docs")},
		"schema.sql":       {Data: []byte("no version")},
		"draft_view.sql":   {Data: []byte("non numeric prefix")},
		"nested/0002_x.sql": {Data: []byte("SELECT 2;")},
	}

	migrations, err := NewMigrator(nil, fsys).LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 1)
	assert.Equal(t, "0001_schema.sql", migrations[0].Name)
}

func TestLoadMigrations_DuplicateVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"0001_schema.sql": {Data: []byte("SELECT 1;")},
		"1_other.sql":     {Data: []byte("SELECT 1;")},
	}

	_, err := NewMigrator(nil, fsys).LoadMigrations()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate migration version 1")
}

func TestLoadMigrations_Empty(t *testing.T) {
	migrations, err := NewMigrator(nil, fstest.MapFS{}).LoadMigrations()
	require.NoError(t, err)
	assert.Empty(t, migrations)
}

func TestQuoteSchema(t *testing.T) {
	quoted, err := quoteSchema("public")
	require.NoError(t, err)
	assert.Equal(t, `"public"`, quoted)

	for _, bad := range []string{"", "public; DROP TABLE staff", "1abc", "a-b"} {
		_, err := quoteSchema(bad)
		assert.Error(t, err, "schema %q should be rejected", bad)
	}
}

func TestLoadSeeds_NameOrderWithoutVersions(t *testing.T) {
	fsys := fstest.MapFS{
		"staff.sql":        {Data: []byte("INSERT INTO staff DEFAULT VALUES;")},
		"departments.sql":  {Data: []byte("INSERT INTO departments DEFAULT VALUES;")},
		"README.md":        {Data: []byte("docs")},
		"nested/extra.sql": {Data: []byte("SELECT 1;")},
	}

	seeds, err := NewMigrator(nil, fsys).LoadSeeds()
	require.NoError(t, err)
	require.Len(t, seeds, 2)
	assert.Equal(t, "departments.sql", seeds[0].Name)
	assert.Equal(t, "staff.sql", seeds[1].Name)
	assert.Zero(t, seeds[0].Version)
}

func TestSeed_RejectsBadSchemaBeforeDatabase(t *testing.T) {
	_, err := NewMigrator(nil, fstest.MapFS{}).Seed(context.Background(), "public; DROP TABLE staff")
	assert.Error(t, err)
}
