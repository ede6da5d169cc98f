package routes

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ubg-fkdk/portal/config"
	"github.com/ubg-fkdk/portal/models"
)

type testServer struct {
	r     *gin.Engine
	db    *gorm.DB
	cfg   config.AppConfig
	store Storage
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dir := t.TempDir()
	cfg := config.AppConfig{
		GinMode:            "test",
		GinPath:            filepath.Join(dir, "logs", "gin.log"),
		DBDriver:           "sqlite",
		DatabaseURI:        filepath.Join(dir, "portal.db"),
		PublicDir:          filepath.Join(dir, "public"),
		BerkasMaxMB:        1,
		DosenMaxMB:         5,
		PengumumanMaxMB:    10,
		AllowedOrigins:     []string{"*"},
		RateLimitPerMinute: 100000,
		LogLevel:           "silent",
		Identitas: []config.IdentitasEntry{
			{Name: "Nama Fakultas", Value: "Fakultas Komputer dan Desain"},
			{Name: "Nama Universitas", Value: "Universitas Bumigora"},
		},
	}

	db, err := config.OpenDatabase(cfg)
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db, models.All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store := NewStorage(cfg)
	require.NoError(t, store.Ensure())
	return &testServer{r: SetupRouter(db, cfg), db: db, cfg: cfg, store: store}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	return w
}

func (s *testServer) get(path string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (s *testServer) delete(path string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodDelete, path, nil))
}

// upload posts a multipart form. An empty filename sends the fields only.
func (s *testServer) upload(t *testing.T, path string, fields map[string]string, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return s.do(req)
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

// created asserts a 201 envelope and decodes its data.
func created(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var env envelope
	decode(t, w, &env)
	require.True(t, env.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func filesIn(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func diskPath(s *testServer, publicPath string) string {
	sub := strings.Split(strings.TrimPrefix(publicPath, "/"), "/")[0]
	return filepath.Join(s.cfg.PublicDir, sub, filepath.Base(publicPath))
}
