package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStubFiles(t *testing.T, dir string, names []string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- test"), 0644))
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"add users table", "add_users_table"},
		{"Add-Users-Table", "add_users_table"},
		{"ADD_USERS_TABLE", "add_users_table"},
		{"add__users__table", "add_users_table"},
		{"Add Users 123", "add_users_123"},
		{"create-product-category", "create_product_category"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.input), "input %q", tt.input)
	}
}

func TestCreateMigration(t *testing.T) {
	t.Run("writes a templated up/down pair", func(t *testing.T) {
		mf, err := CreateMigration(t.TempDir(), "add users table", "Create users table with basic fields")
		require.NoError(t, err)
		require.NotNil(t, mf)

		// Version is the 14-digit YYYYMMDDHHMMSS prefix
		assert.Len(t, mf.Version, 14)
		assert.True(t, strings.HasSuffix(mf.UpPath, ".up.sql"))
		assert.True(t, strings.HasSuffix(mf.DownPath, ".down.sql"))

		upBase := strings.TrimSuffix(filepath.Base(mf.UpPath), ".up.sql")
		downBase := strings.TrimSuffix(filepath.Base(mf.DownPath), ".down.sql")
		assert.Equal(t, upBase, downBase, "both files share the version_name stem")

		up, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(up), "add users table")
		assert.Contains(t, string(up), "Create users table with basic fields")
		assert.Contains(t, string(up), "Write your UP migration SQL here")

		down, err := os.ReadFile(mf.DownPath)
		require.NoError(t, err)
		assert.Contains(t, string(down), "Rollback")
		assert.Contains(t, string(down), "Write your DOWN migration SQL here")
	})

	t.Run("creates a missing migrations directory", func(t *testing.T) {
		nested := filepath.Join(t.TempDir(), "nested", "migrations")

		_, err := CreateMigration(nested, "test", "test migration")
		require.NoError(t, err)

		info, err := os.Stat(nested)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestListMigrations(t *testing.T) {
	t.Run("lists each version once", func(t *testing.T) {
		dir := t.TempDir()
		writeStubFiles(t, dir, []string{
			"000001_init_schema.up.sql",
			"000001_init_schema.down.sql",
			"000002_add_users.up.sql",
			"000002_add_users.down.sql",
			"000003_add_products.up.sql",
			"000003_add_products.down.sql",
		})

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"000001_init_schema", "000002_add_users", "000003_add_products"}, migrations)
	})

	t.Run("empty directory", func(t *testing.T) {
		migrations, err := ListMigrations(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("missing directory is not an error", func(t *testing.T) {
		migrations, err := ListMigrations("/nonexistent/path/to/migrations")
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("ignores files that are not migrations", func(t *testing.T) {
		dir := t.TempDir()
		writeStubFiles(t, dir, []string{
			"000001_init.up.sql",
			"000001_init.down.sql",
			"README.md",
			"config.yaml",
			".gitkeep",
		})

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_init"}, migrations)
	})

	t.Run("ignores directories", func(t *testing.T) {
		dir := t.TempDir()
		writeStubFiles(t, dir, []string{"000001_init.up.sql", "000001_init.down.sql"})
		require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir.up.sql"), 0755))

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Len(t, migrations, 1)
	})
}
