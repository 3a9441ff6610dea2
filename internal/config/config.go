package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultContactEmail = "info@tigermarine.com"
)

type Config struct {
	AppEnv string
	Port   string

	DatabaseURL string

	MediaRoot        string
	MediaAliasesFile string
	MaxUploadBytes   int64
	MaxUploadFiles   int

	CORSAllowedOrigins []string

	JWTSecret         string
	JWTTTL            time.Duration
	AdminAuthRequired bool

	ResendAPIKey string
	EmailFrom    string
	ContactEmail string

	AdminEmail    string
	AdminPassword string
	AdminName     string
}

func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.AppEnv))
	return env == "prod" || env == "production" || env == "release"
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		AppEnv:            strings.ToLower(strings.TrimSpace(v.GetString("APP_ENV"))),
		Port:              strings.TrimSpace(v.GetString("PORT")),
		DatabaseURL:       strings.TrimSpace(v.GetString("DATABASE_URL")),
		MediaRoot:         strings.TrimSpace(v.GetString("MEDIA_ROOT")),
		MediaAliasesFile:  strings.TrimSpace(v.GetString("MEDIA_ALIASES_FILE")),
		MaxUploadBytes:    v.GetInt64("MAX_UPLOAD_BYTES"),
		MaxUploadFiles:    v.GetInt("MAX_UPLOAD_FILES"),
		JWTSecret:         strings.TrimSpace(v.GetString("JWT_SECRET")),
		AdminAuthRequired: v.GetBool("ADMIN_AUTH_REQUIRED"),
		ResendAPIKey:      strings.TrimSpace(v.GetString("RESEND_API_KEY")),
		EmailFrom:         strings.TrimSpace(v.GetString("EMAIL_FROM")),
		ContactEmail:      strings.TrimSpace(v.GetString("CONTACT_EMAIL")),
		AdminEmail:        strings.TrimSpace(v.GetString("ADMIN_EMAIL")),
		AdminPassword:     v.GetString("ADMIN_PASSWORD"),
		AdminName:         strings.TrimSpace(v.GetString("ADMIN_NAME")),
	}

	ttl, err := time.ParseDuration(strings.TrimSpace(v.GetString("JWT_TTL")))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL value %q: %w", v.GetString("JWT_TTL"), err)
	}
	cfg.JWTTTL = ttl

	for _, o := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("PORT", "3001")
	v.SetDefault("DATABASE_URL", "tigermarine.db")
	v.SetDefault("MEDIA_ROOT", "./public")
	v.SetDefault("MAX_UPLOAD_BYTES", 50*1024*1024)
	v.SetDefault("MAX_UPLOAD_FILES", 20)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173,http://localhost:5174")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("ADMIN_AUTH_REQUIRED", false)
	v.SetDefault("EMAIL_FROM", "Tiger Marine <noreply@tigermarine.com>")
	v.SetDefault("CONTACT_EMAIL", defaultContactEmail)
	v.SetDefault("ADMIN_EMAIL", "admin@tigermarine.com")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("ADMIN_NAME", "Admin User")
}

func validate(cfg *Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.MediaRoot == "" {
		return fmt.Errorf("MEDIA_ROOT must not be empty")
	}
	if cfg.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be > 0")
	}
	if cfg.MaxUploadFiles <= 0 {
		return fmt.Errorf("MAX_UPLOAD_FILES must be > 0")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}

	if cfg.IsProduction() {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if !cfg.AdminAuthRequired {
			return fmt.Errorf("in prod/release ADMIN_AUTH_REQUIRED must be true")
		}
	}
	return nil
}
