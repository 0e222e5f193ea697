package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string
	Port int

	Remote RemoteConfig
	Sync   SyncConfig
	Notify NotifyConfig
	CORS   CORSConfig
	Log    LogConfig
	Export ExportConfig
}

// RemoteConfig points the client at the tracker backend.
type RemoteConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SyncConfig holds per-resource polling intervals. A zero interval means
// the collection is fetched once on startup and never re-polled.
type SyncConfig struct {
	SubjectsPollInterval time.Duration
	NotesPollInterval    time.Duration
}

// NotifyConfig tunes the transient notification slot.
type NotifyConfig struct {
	TTL time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ExportConfig gates the guide summary export endpoints.
type ExportConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Remote = RemoteConfig{
		BaseURL: strings.TrimRight(v.GetString("TRACKER_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("TRACKER_TIMEOUT"), 10*time.Second),
	}

	cfg.Sync = SyncConfig{
		SubjectsPollInterval: parseDuration(v.GetString("SUBJECTS_POLL_INTERVAL"), 5*time.Second),
		NotesPollInterval:    parseDuration(v.GetString("NOTES_POLL_INTERVAL"), 3*time.Second),
	}

	cfg.Notify = NotifyConfig{
		TTL: parseDuration(v.GetString("NOTIFICATION_TTL"), 3*time.Second),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Export = ExportConfig{
		Enabled: v.GetBool("ENABLE_EXPORT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8090)

	v.SetDefault("TRACKER_BASE_URL", "http://localhost:8000")
	v.SetDefault("TRACKER_TIMEOUT", "10s")

	v.SetDefault("SUBJECTS_POLL_INTERVAL", "5s")
	v.SetDefault("NOTES_POLL_INTERVAL", "3s")
	v.SetDefault("NOTIFICATION_TTL", "3s")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_EXPORT", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
