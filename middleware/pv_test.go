package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubg-fkdk/portal/config"
	"github.com/ubg-fkdk/portal/models"
)

func TestIsDownloadPath(t *testing.T) {
	prefixes := []string{"/berkas", "/dosen", "/pengumuman"}
	tests := []struct {
		path string
		want bool
	}{
		{"/berkas/1-2-a.pdf", true},
		{"/dosen/1-2-foto.jpg", true},
		{"/pengumuman/1-2-info.pdf", true},
		{"/api/berkas/abc/download", true},
		{"/api/berkas/abc/preview", false},
		{"/api/berkas", false},
		{"/berkasx/a.pdf", false},
		{"/health", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isDownloadPath(tt.path, prefixes), tt.path)
	}
}

func TestDownloadRecorderIncrementsExistingRow(t *testing.T) {
	db, err := config.OpenDatabase(config.AppConfig{
		DBDriver:    "sqlite",
		DatabaseURI: filepath.Join(t.TempDir(), "pv.db"),
		LogLevel:    "silent",
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db, &models.PageView{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(DownloadRecorder(db, "/berkas"))
	r.GET("/berkas/:name", func(c *gin.Context) { c.String(http.StatusOK, "pdf") })
	r.GET("/missing/:name", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, path := range []string{"/berkas/a.pdf", "/berkas/a.pdf", "/berkas/a.pdf", "/berkas/b.pdf"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing/x", nil))

	var rows []models.PageView
	require.NoError(t, db.Order("path").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "/berkas/a.pdf", rows[0].Path)
	assert.Equal(t, int64(3), rows[0].Count)
	assert.Equal(t, int64(1), rows[1].Count)
	assert.Equal(t, Today(), rows[0].Date)
}
