package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Session SessionConfig `yaml:"session"`
	Storage StorageConfig `yaml:"storage"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	// Service is the service_name field of every log line.
	Service string `yaml:"service"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// CORSOrigins applies to the JSON API only.
	CORSOrigins []string `yaml:"cors_origins"`
}

// BackendConfig points at the REST API that owns posts, comments and users.
type BackendConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	// TokenCookie is the cookie the backend uses for its access token.
	TokenCookie string `yaml:"token_cookie"`
}

type SessionConfig struct {
	// Secret signs session cookies. Read from SESSION_SECRET, never from the YAML file.
	Secret     string        `yaml:"-"`
	CookieName string        `yaml:"cookie_name"`
	TTL        time.Duration `yaml:"ttl"`
	Secure     bool          `yaml:"secure"`
}

// StorageConfig describes the Firebase Storage bucket used for image uploads.
// Uploads are disabled when Bucket is empty.
type StorageConfig struct {
	Bucket          string `yaml:"bucket"`
	CredentialsFile string `yaml:"credentials_file"`
	MaxUploadBytes  int64  `yaml:"max_upload_bytes"`
}

var config *AppConfig

// Default returns the configuration used when config.yaml leaves a field blank.
func Default() AppConfig {
	return AppConfig{
		Logging: LoggingConfig{Level: "info", Service: "kalshield-web"},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Backend: BackendConfig{
			BaseURL:     "http://localhost:3000",
			Timeout:     10 * time.Second,
			TokenCookie: "access_token",
		},
		Session: SessionConfig{
			CookieName: "kalshield_session",
			TTL:        24 * time.Hour,
		},
		Storage: StorageConfig{
			MaxUploadBytes: 2 * 1024 * 1024,
		},
	}
}

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	c, err := Load(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}
	config = &c
}

// Load reads a YAML file over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (AppConfig, error) {
	c := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return AppConfig{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return AppConfig{}, err
	}

	applyEnv(&c)
	fillDefaults(&c)
	return c, nil
}

func applyEnv(c *AppConfig) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SERVICE_NAME"); v != "" {
		c.Logging.Service = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("BACKEND_BASE_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		c.Session.Secret = v
	}
	if v := os.Getenv("FIREBASE_BUCKET"); v != "" {
		c.Storage.Bucket = v
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		c.Storage.CredentialsFile = v
	}
}

func fillDefaults(c *AppConfig) {
	d := Default()
	if c.Logging.Service == "" {
		c.Logging.Service = d.Logging.Service
	}
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = d.Server.ShutdownTimeout
	}
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = d.Backend.BaseURL
	}
	if c.Backend.Timeout <= 0 {
		c.Backend.Timeout = d.Backend.Timeout
	}
	if c.Backend.TokenCookie == "" {
		c.Backend.TokenCookie = d.Backend.TokenCookie
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = d.Session.CookieName
	}
	if c.Session.TTL <= 0 {
		c.Session.TTL = d.Session.TTL
	}
	if c.Storage.MaxUploadBytes <= 0 {
		c.Storage.MaxUploadBytes = d.Storage.MaxUploadBytes
	}
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

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
