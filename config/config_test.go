package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDefaults(t *testing.T) {
	c := LoadFrom(filepath.Join(t.TempDir(), "missing.json"))

	assert.Equal(t, "8080", c.AppPort)
	assert.Equal(t, "public", c.PublicDir)
	assert.Equal(t, 1, c.BerkasMaxMB)
	assert.Equal(t, 5, c.DosenMaxMB)
	assert.Equal(t, 10, c.PengumumanMaxMB)
	assert.Equal(t, 60, c.OrphanGraceMinutes)
	assert.Zero(t, c.OrphanSweepMinutes)
	assert.False(t, c.CacheEnabled)
	assert.Equal(t, []string{"*"}, c.AllowedOrigins)
	assert.Len(t, c.Identitas, 2)
}

func TestLoadFromJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
		"app": {"AppPort": "9000", "AllowedOrigins": ["https://fkdk.example.ac.id"]},
		"database": {"Driver": "sqlite", "DatabaseURI": "portal.db"},
		"storage": {"PublicDir": "/srv/public", "BerkasMaxMB": 2, "OrphanSweepMinutes": 30},
		"identitas": [
			{"name": "Nama Fakultas", "value": "FKDK"},
			{"name": "", "value": "skipped"},
			{"name": "Alamat", "value": "Jl. Ismail Marzuki"}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	c := LoadFrom(path)
	assert.Equal(t, "9000", c.AppPort)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, "portal.db", c.DatabaseURI)
	assert.Equal(t, "/srv/public", c.PublicDir)
	assert.Equal(t, 2, c.BerkasMaxMB)
	assert.Equal(t, 5, c.DosenMaxMB, "unset ceilings keep their default")
	assert.Equal(t, 30, c.OrphanSweepMinutes)
	assert.Equal(t, []string{"https://fkdk.example.ac.id"}, c.AllowedOrigins)
	assert.Equal(t, []IdentitasEntry{
		{Name: "Nama Fakultas", Value: "FKDK"},
		{Name: "Alamat", Value: "Jl. Ismail Marzuki"},
	}, c.Identitas)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("PUBLIC_DIR", "/var/www/public")
	t.Setenv("DOSEN_MAX_MB", "8")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("PUBLIC_BASE_URL", "https://fkdk.example.ac.id/")
	t.Setenv("CACHE_ENABLED", "true")

	c := LoadFrom(filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, "/var/www/public", c.PublicDir)
	assert.Equal(t, 8, c.DosenMaxMB)
	assert.Equal(t, "postgres", c.DBDriver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.AllowedOrigins)
	assert.Equal(t, "https://fkdk.example.ac.id", c.PublicBaseURL)
	assert.True(t, c.CacheEnabled)
}

func TestMaxBytes(t *testing.T) {
	assert.Equal(t, int64(5*1024*1024), MaxBytes(5))
	assert.Zero(t, MaxBytes(0))
}

func TestOpenDatabaseSqlite(t *testing.T) {
	c := AppConfig{DBDriver: "sqlite", DatabaseURI: filepath.Join(t.TempDir(), "test.db"), LogLevel: "silent"}
	conn, err := OpenDatabase(c)
	require.NoError(t, err)

	type probe struct {
		ID   uint
		Name string
	}
	require.NoError(t, Migrate(conn, &probe{}))
	assert.True(t, conn.Migrator().HasTable(&probe{}))
}

func TestOpenDatabaseUnknownDriver(t *testing.T) {
	_, err := OpenDatabase(AppConfig{DBDriver: "oracle"})
	assert.Error(t, err)
}
