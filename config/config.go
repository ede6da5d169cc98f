package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// IdentitasEntry is one name/value pair describing the site (faculty name, address, ...).
type IdentitasEntry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// AppConfig holds environment driven configuration values.
// Secrets (database password, redis password) have no defaults and must come from the config file or environment.
type AppConfig struct {
	AppPort string
	// Gin framework configuration
	GinMode string
	GinPath string
	// Database: DBDriver is one of mysql, postgres, sqlite
	DBDriver    string
	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	// Public storage
	PublicDir       string
	PublicBaseURL   string
	BerkasMaxMB     int
	DosenMaxMB      int
	PengumumanMaxMB int
	// Orphan sweeper, zero interval disables it
	OrphanSweepMinutes int
	OrphanGraceMinutes int
	// HTTP
	AllowedOrigins     []string
	RateLimitPerMinute int
	// Redis for list caching
	CacheEnabled    bool
	CacheTTLSeconds int
	RedisHost       string
	RedisPort       int
	RedisDB         int
	RedisPassword   string
	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
	// Site identity served at /api/identitas
	Identitas []IdentitasEntry
}

var cfg AppConfig
var loaded bool

// Load loads the application configuration once during boot.
func Load() AppConfig {
	if loaded {
		return cfg
	}
	cfg = LoadFrom(filepath.Join("config", "config.json"))
	loaded = true
	return cfg
}

// LoadFrom builds a configuration without caching it.
// Precedence: JSON file -> defaults -> .env -> environment variables.
func LoadFrom(path string) AppConfig {
	var c AppConfig
	if err := loadJSONConfig(path, &c); err != nil {
		log.Printf("invalid config file %s: %v", path, err)
	}

	applyDefaults(&c)

	// .env never overrides variables already present in the environment
	_ = godotenv.Load()

	applyEnvOverrides(&c)
	return c
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// MaxBytes converts a megabyte ceiling into bytes (MiB).
func MaxBytes(mb int) int64 {
	return int64(mb) * 1024 * 1024
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// loadJSONConfig reads JSON file into out if present. Returns error only for invalid JSON.
func loadJSONConfig(path string, out *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return nil // silently ignore missing file
	}
	defer f.Close()

	var raw map[string]any
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return err
	}

	getString := func(m map[string]any, key string) string {
		if v, ok := m[key]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
		return ""
	}
	getInt := func(m map[string]any, key string) int {
		if v, ok := m[key]; ok {
			switch t := v.(type) {
			case float64:
				return int(t)
			case int:
				return t
			}
		}
		return 0
	}
	getBool := func(m map[string]any, key string) bool {
		if v, ok := m[key]; ok {
			if b, ok := v.(bool); ok {
				return b
			}
		}
		return false
	}
	getStringSlice := func(m map[string]any, key string) []string {
		if v, ok := m[key]; ok {
			if arr, ok := v.([]any); ok {
				res := make([]string, 0, len(arr))
				for _, it := range arr {
					if s, ok := it.(string); ok {
						res = append(res, s)
					}
				}
				return res
			}
		}
		return nil
	}

	if app, ok := raw["app"].(map[string]any); ok {
		out.AppPort = getString(app, "AppPort")
		if v := getInt(app, "RateLimitPerMinute"); v != 0 {
			out.RateLimitPerMinute = v
		}
		if list := getStringSlice(app, "AllowedOrigins"); len(list) > 0 {
			out.AllowedOrigins = list
		}
	}

	if dbs, ok := raw["database"].(map[string]any); ok {
		out.DBDriver = getString(dbs, "Driver")
		out.DatabaseURI = getString(dbs, "DatabaseURI")
		out.DBHost = getString(dbs, "DBHost")
		out.DBPort = getString(dbs, "DBPort")
		out.DBUser = getString(dbs, "DBUser")
		out.DBPassword = getString(dbs, "DBPassword")
		out.DBName = getString(dbs, "DBName")
	}

	if st, ok := raw["storage"].(map[string]any); ok {
		out.PublicDir = getString(st, "PublicDir")
		out.PublicBaseURL = getString(st, "PublicBaseURL")
		out.BerkasMaxMB = getInt(st, "BerkasMaxMB")
		out.DosenMaxMB = getInt(st, "DosenMaxMB")
		out.PengumumanMaxMB = getInt(st, "PengumumanMaxMB")
		out.OrphanSweepMinutes = getInt(st, "OrphanSweepMinutes")
		out.OrphanGraceMinutes = getInt(st, "OrphanGraceMinutes")
	}

	if rds, ok := raw["redis"].(map[string]any); ok {
		out.CacheEnabled = getBool(rds, "Enabled")
		out.CacheTTLSeconds = getInt(rds, "CacheTTLSeconds")
		out.RedisHost = getString(rds, "RedisHost")
		out.RedisPort = getInt(rds, "RedisPort")
		out.RedisDB = getInt(rds, "RedisDB")
		out.RedisPassword = getString(rds, "RedisPassword")
	}

	if lg, ok := raw["log"].(map[string]any); ok {
		out.LogLevel = getString(lg, "Level")
		out.LogPath = getString(lg, "Path")
		out.GinMode = getString(lg, "GinMode")
		out.GinPath = getString(lg, "GinPath")
		out.LogMaxSizeMB = getInt(lg, "MaxSizeMB")
		out.LogMaxBackups = getInt(lg, "MaxBackups")
		out.LogMaxAgeDays = getInt(lg, "MaxAgeDays")
		out.LogCompress = getBool(lg, "Compress")
	}

	if list, ok := raw["identitas"].([]any); ok {
		for _, it := range list {
			m, ok := it.(map[string]any)
			if !ok {
				continue
			}
			name := getString(m, "name")
			if name == "" {
				continue
			}
			out.Identitas = append(out.Identitas, IdentitasEntry{Name: name, Value: getString(m, "value")})
		}
	}

	return nil
}

// applyDefaults sets sane defaults for zero-value fields.
func applyDefaults(c *AppConfig) {
	if c.AppPort == "" {
		c.AppPort = "8080"
	}
	if c.GinMode == "" {
		c.GinMode = "release"
	}
	if c.GinPath == "" {
		c.GinPath = "logs/go_gin.log"
	}
	if c.DBDriver == "" {
		c.DBDriver = "mysql"
	}
	if c.DBHost == "" {
		c.DBHost = "127.0.0.1"
	}
	if c.DBPort == "" {
		c.DBPort = "3306"
	}
	if c.DBUser == "" {
		c.DBUser = "root"
	}
	if c.DBName == "" {
		c.DBName = "portal"
	}
	if c.PublicDir == "" {
		c.PublicDir = "public"
	}
	if c.BerkasMaxMB == 0 {
		c.BerkasMaxMB = 1
	}
	if c.DosenMaxMB == 0 {
		c.DosenMaxMB = 5
	}
	if c.PengumumanMaxMB == 0 {
		c.PengumumanMaxMB = 10
	}
	if c.OrphanGraceMinutes == 0 {
		c.OrphanGraceMinutes = 60
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.RateLimitPerMinute == 0 {
		c.RateLimitPerMinute = 60
	}
	if c.CacheTTLSeconds == 0 {
		c.CacheTTLSeconds = 3600
	}
	if c.RedisHost == "" {
		c.RedisHost = "127.0.0.1"
	}
	if c.RedisPort == 0 {
		c.RedisPort = 6379
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogMaxSizeMB == 0 {
		c.LogMaxSizeMB = 100
	}
	if c.LogMaxBackups == 0 {
		c.LogMaxBackups = 3
	}
	if c.LogMaxAgeDays == 0 {
		c.LogMaxAgeDays = 7
	}
	if len(c.Identitas) == 0 {
		c.Identitas = []IdentitasEntry{
			{Name: "Nama Fakultas", Value: "Fakultas Komputer dan Desain"},
			{Name: "Nama Universitas", Value: "Universitas Bumigora"},
		}
	}
}

// applyEnvOverrides maps known environment variables onto config values when present.
func applyEnvOverrides(c *AppConfig) {
	if v := getEnv("APP_PORT", ""); v != "" {
		c.AppPort = v
	}
	if v := getEnv("GIN_MODE", ""); v != "" {
		c.GinMode = v
	}
	if v := getEnv("GIN_PATH", ""); v != "" {
		c.GinPath = v
	}
	if v := getEnv("DB_DRIVER", ""); v != "" {
		c.DBDriver = strings.ToLower(v)
	}
	if v := getEnv("DATABASE_URI", ""); v != "" {
		c.DatabaseURI = v
	}
	if v := getEnv("DB_HOST", ""); v != "" {
		c.DBHost = v
	}
	if v := getEnv("DB_PORT", ""); v != "" {
		c.DBPort = v
	}
	if v := getEnv("DB_USER", ""); v != "" {
		c.DBUser = v
	}
	if v := getEnv("DB_PASSWORD", ""); v != "" {
		c.DBPassword = v
	}
	if v := getEnv("DB_NAME", ""); v != "" {
		c.DBName = v
	}
	if v := getEnv("PUBLIC_DIR", ""); v != "" {
		c.PublicDir = v
	}
	if v := getEnv("PUBLIC_BASE_URL", ""); v != "" {
		c.PublicBaseURL = strings.TrimRight(v, "/")
	}
	if v := getEnv("BERKAS_MAX_MB", ""); v != "" {
		c.BerkasMaxMB = mustParseInt(v)
	}
	if v := getEnv("DOSEN_MAX_MB", ""); v != "" {
		c.DosenMaxMB = mustParseInt(v)
	}
	if v := getEnv("PENGUMUMAN_MAX_MB", ""); v != "" {
		c.PengumumanMaxMB = mustParseInt(v)
	}
	if v := getEnv("ORPHAN_SWEEP_MINUTES", ""); v != "" {
		c.OrphanSweepMinutes = mustParseInt(v)
	}
	if v := getEnv("ORPHAN_GRACE_MINUTES", ""); v != "" {
		c.OrphanGraceMinutes = mustParseInt(v)
	}
	if v := getEnv("CORS_ALLOWED_ORIGINS", ""); v != "" {
		c.AllowedOrigins = splitAndTrim(v)
	}
	if v := getEnv("RATE_LIMIT_PER_MINUTE", ""); v != "" {
		c.RateLimitPerMinute = mustParseInt(v)
	}
	if v := getEnv("CACHE_ENABLED", ""); v != "" {
		c.CacheEnabled = v == "true"
	}
	if v := getEnv("CACHE_TTL_SECONDS", ""); v != "" {
		c.CacheTTLSeconds = mustParseInt(v)
	}
	if v := getEnv("REDIS_HOST", ""); v != "" {
		c.RedisHost = v
	}
	if v := getEnv("REDIS_PORT", ""); v != "" {
		c.RedisPort = mustParseInt(v)
	}
	if v := getEnv("REDIS_DB", ""); v != "" {
		c.RedisDB = mustParseInt(v)
	}
	if v := getEnv("REDIS_PASSWORD", ""); v != "" {
		c.RedisPassword = v
	}
	if v := getEnv("LOG_LEVEL", ""); v != "" {
		c.LogLevel = v
	}
	if v := getEnv("LOG_PATH", ""); v != "" {
		c.LogPath = v
	}
	if v := getEnv("LOG_MAX_SIZE_MB", ""); v != "" {
		c.LogMaxSizeMB = mustParseInt(v)
	}
	if v := getEnv("LOG_MAX_BACKUPS", ""); v != "" {
		c.LogMaxBackups = mustParseInt(v)
	}
	if v := getEnv("LOG_MAX_AGE_DAYS", ""); v != "" {
		c.LogMaxAgeDays = mustParseInt(v)
	}
	if v := getEnv("LOG_COMPRESS", ""); v != "" {
		c.LogCompress = v == "true"
	}
}

func mustParseInt(val string) int {
	i, err := strconv.Atoi(val)
	if err != nil {
		log.Fatalf("invalid integer value %s: %v", val, err)
	}
	return i
}

func splitAndTrim(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
