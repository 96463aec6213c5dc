package db

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/agency-site/migrations"
)

func TestMigrationFiles_SortedAndFiltered(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_index.sql":     {Data: []byte("SELECT 1;")},
		"0001_audit_log.sql": {Data: []byte("SELECT 1;")},
		"README.md":          {Data: []byte("docs")},
		"nested/0003.sql":    {Data: []byte("SELECT 1;")},
	}

	files, err := migrationFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_audit_log.sql", "0002_index.sql"}, files)
}

func TestPending_SkipsApplied(t *testing.T) {
	files := []string{"0001_a.sql", "0002_b.sql", "0003_c.sql"}

	assert.Equal(t, []string{"0002_b.sql", "0003_c.sql"}, pending(files, map[string]bool{"0001_a.sql": true}))
	assert.Empty(t, pending(files, map[string]bool{"0001_a.sql": true, "0002_b.sql": true, "0003_c.sql": true}))
}

func TestEmbeddedMigrations(t *testing.T) {
	files, err := migrationFiles(migrations.FS)
	require.NoError(t, err)
	assert.Contains(t, files, "0001_audit_log.sql")
}
