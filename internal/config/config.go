// Package config loads typed settings for the API server and the acctl CLI.
// configs/.env is applied to the environment first; viper then layers env
// overrides on top of the defaults below.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port    string `mapstructure:"port"`
	Storage string `mapstructure:"storage"` // postgres or memory
	DB      struct {
		Host            string        `mapstructure:"host"`
		Port            string        `mapstructure:"port"`
		User            string        `mapstructure:"user"`
		Password        string        `mapstructure:"password"`
		Name            string        `mapstructure:"name"`
		SSLMode         string        `mapstructure:"sslmode"`
		MaxOpenConns    int           `mapstructure:"max_open_conns"`
		MaxIdleConns    int           `mapstructure:"max_idle_conns"`
		ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	} `mapstructure:"db"`
	JWT struct {
		Secret string        `mapstructure:"secret"`
		TTL    time.Duration `mapstructure:"ttl"`
	} `mapstructure:"jwt"`
	CORS struct {
		Origins []string `mapstructure:"origins"`
	} `mapstructure:"cors"`
	Admin struct {
		Name     string `mapstructure:"name"`
		Phone    string `mapstructure:"phone"`
		Password string `mapstructure:"password"`
	} `mapstructure:"admin"`
	Client struct {
		APIURL      string        `mapstructure:"api_url"`
		Timeout     time.Duration `mapstructure:"timeout"`
		SessionFile string        `mapstructure:"session_file"`
	} `mapstructure:"client"`
	Logging struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"logging"`
}

// DSN builds the postgres connection URL
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DB.User, c.DB.Password),
		Host:     net.JoinHostPort(c.DB.Host, c.DB.Port),
		Path:     "/" + c.DB.Name,
		RawQuery: url.Values{"sslmode": {c.DB.SSLMode}}.Encode(),
	}
	return u.String()
}

// Load reads configs/.env (if present) and the environment
func Load() (Config, error) {
	if err := godotenv.Load("configs/.env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config error: %w", err)
	}

	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("storage", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "postgres")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("jwt.ttl", "24h")
	v.SetDefault("cors.origins", []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:8081"})
	v.SetDefault("admin.name", "Administrator")
	v.SetDefault("client.api_url", "http://localhost:8080")
	v.SetDefault("client.timeout", "5s")
	v.SetDefault("client.session_file", defaultSessionFile())
	v.SetDefault("logging.level", "info")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// explicit bindings
	_ = v.BindEnv("port", "PORT")
	_ = v.BindEnv("storage", "STORAGE")
	_ = v.BindEnv("db.host", "DB_HOST")
	_ = v.BindEnv("db.port", "DB_PORT")
	_ = v.BindEnv("db.user", "DB_USER")
	_ = v.BindEnv("db.password", "DB_PASSWORD")
	_ = v.BindEnv("db.name", "DB_NAME")
	_ = v.BindEnv("db.sslmode", "DB_SSLMODE")
	_ = v.BindEnv("db.max_open_conns", "DB_MAX_OPEN_CONNS")
	_ = v.BindEnv("db.max_idle_conns", "DB_MAX_IDLE_CONNS")
	_ = v.BindEnv("db.conn_max_lifetime", "DB_CONN_MAX_LIFETIME")
	_ = v.BindEnv("jwt.secret", "JWT_SECRET")
	_ = v.BindEnv("jwt.ttl", "JWT_TTL")
	_ = v.BindEnv("cors.origins", "CORS_ORIGINS")
	_ = v.BindEnv("admin.name", "ADMIN_NAME")
	_ = v.BindEnv("admin.phone", "ADMIN_PHONE")
	_ = v.BindEnv("admin.password", "ADMIN_PASSWORD")
	_ = v.BindEnv("client.api_url", "API_URL")
	_ = v.BindEnv("client.timeout", "API_TIMEOUT")
	_ = v.BindEnv("client.session_file", "SESSION_FILE")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}

	c.CORS.Origins = splitList(strings.Join(c.CORS.Origins, ","))
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	if c.Storage != "postgres" && c.Storage != "memory" {
		return Config{}, fmt.Errorf("config error: unknown STORAGE %q (want postgres or memory)", c.Storage)
	}
	c.Client.APIURL = strings.TrimRight(c.Client.APIURL, "/")
	return c, nil
}

// RequireJWTSecret is checked by the server only; the CLI never signs tokens
func (c Config) RequireJWTSecret() error {
	if c.JWT.Secret == "" {
		return errors.New("config error: JWT_SECRET required")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".acservice-session.json"
	}
	return filepath.Join(dir, "acservice", "session.json")
}
