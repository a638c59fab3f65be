package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/clubfinanzas/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add receipts table", "add_receipts_table"},
		{"Add-Receipts-Table", "add_receipts_table"},
		{"add__debt__index", "add_debt_index"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestListMigrations(t *testing.T) {
	source := fstest.MapFS{
		"000002_users.up.sql":   {Data: []byte("")},
		"000001_clubs.up.sql":   {Data: []byte("")},
		"000001_clubs.down.sql": {Data: []byte("")},
		"README.md":             {Data: []byte("")},
		"notes.sql":             {Data: []byte("")},
	}

	entries, err := ListMigrations(source)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Version: 1, Name: "clubs", HasDown: true}, entries[0])
	assert.Equal(t, Entry{Version: 2, Name: "users", HasDown: false}, entries[1])
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for i, e := range entries {
		assert.Equal(t, uint(i+1), e.Version, "versions must be contiguous")
		assert.True(t, e.HasDown, "migration %d has no down file", e.Version)
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000004_ledger.up.sql"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000004_ledger.down.sql"), nil, 0o644))

	mf, err := CreateMigration(dir, "Add receipts", "stores receipt scans")
	require.NoError(t, err)

	assert.Equal(t, uint(5), mf.Version)
	assert.Equal(t, filepath.Join(dir, "000005_add_receipts.up.sql"), mf.UpPath)
	assert.FileExists(t, mf.DownPath)

	content, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), "stores receipt scans"))

	t.Run("rejects empty names", func(t *testing.T) {
		_, err := CreateMigration(dir, "!!!", "")
		assert.Error(t, err)
	})
}
