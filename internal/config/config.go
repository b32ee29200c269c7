package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Server holds the HTTP server options.
type Server struct {
	Host            string        `validate:"required"`
	Port            int           `validate:"gte=1,lte=65535"`
	ReadTimeout     time.Duration `validate:"gt=0"`
	WriteTimeout    time.Duration `validate:"gt=0"`
	IdleTimeout     time.Duration `validate:"gt=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
	MaxBodyBytes    int64         `validate:"gt=0"`
	MaxUploadBytes  int64         `validate:"gt=0"`
	AllowedOrigins  string        `validate:"required"`
}

// Addr returns the listen address in host:port form.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DB holds the SQLite connection options.
type DB struct {
	Path            string `validate:"required"`
	MaxOpenConns    int    `validate:"gt=0"`
	MaxIdleConns    int    `validate:"gte=0"`
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration `validate:"gt=0"`
	BusyTimeout     time.Duration `validate:"gt=0"`
}

// JWT holds the token signing options.
type JWT struct {
	Issuer     string        `validate:"required"`
	TTL        time.Duration `validate:"gt=0"`
	RefreshTTL time.Duration `validate:"gt=0"`
	JTILength  uint32        `validate:"gt=0"`
}

// CSRF holds the double-submit cookie options.
type CSRF struct {
	CookieName   string        `validate:"required"`
	HeaderName   string        `validate:"required"`
	TokenLength  uint32        `validate:"gt=0"`
	CookieMaxAge time.Duration `validate:"gt=0"`
}

// Argon2 holds the password hashing parameters.
type Argon2 struct {
	Memory     uint32 `validate:"gt=0"`
	Iterations uint32 `validate:"gt=0"`
	Threads    uint8  `validate:"gt=0"`
	SaltLength uint32 `validate:"gt=0"`
	KeyLength  uint32 `validate:"gt=0"`
}

// Media holds where uploaded files live and how they are served.
type Media struct {
	Root string `validate:"required"`
	URL  string `validate:"required"`
}

// Storage selects and configures the upload backend.
type Storage struct {
	Backend       string `validate:"oneof=local s3"`
	Endpoint      string
	Bucket        string
	AccessKey     string
	SecretKey     string
	UseSSL        bool
	PublicBaseURL string
}

// Image holds the product image normalization profile.
type Image struct {
	MaxWidth    int    `validate:"gt=0"`
	Format      string `validate:"oneof=png jpeg"`
	JPEGQuality int    `validate:"gte=1,lte=100"`
}

// Log holds the logging options.
type Log struct {
	Level      string `validate:"required"`
	Output     string `validate:"oneof=console file"`
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type Config struct {
	Env       string `validate:"required"`
	Debug     bool
	SecretKey string `validate:"required"`
	AdminPath string `validate:"required"`

	Server  *Server  `validate:"required"`
	DB      *DB      `validate:"required"`
	JWT     *JWT     `validate:"required"`
	CSRF    *CSRF    `validate:"required"`
	Argon2  *Argon2  `validate:"required"`
	Media   *Media   `validate:"required"`
	Storage *Storage `validate:"required"`
	Image   *Image   `validate:"required"`
	Log     *Log     `validate:"required"`
}

func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("env", c.Env),
		slog.Bool("debug", c.Debug),
		slog.String("admin_path", c.AdminPath),
		slog.Any("server", c.Server),
		slog.Any("db", c.DB),
		slog.Any("jwt", c.JWT),
		slog.Any("media", c.Media),
		slog.String("storage_backend", c.Storage.Backend),
		slog.Any("image", c.Image),
	)
}

// Load builds the configuration from environment variables, falling back to
// development defaults for everything except the secret key outside of debug.
func Load() (*Config, error) {
	slog.Info("Loading config...")

	cfg := &Config{
		Env:       getEnv("ENV", "development"),
		Debug:     getBool("DEBUG", true),
		SecretKey: os.Getenv("SECRET_KEY"),
		AdminPath: strings.Trim(getEnv("ADMIN_PATH", "meu-admin"), "/"),
		Server: &Server{
			Host:            getEnv("HOST", "127.0.0.1"),
			Port:            getInt("PORT", 8000),
			ReadTimeout:     getDuration("READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getDuration("WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getDuration("IDLE_TIMEOUT", time.Minute),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			MaxBodyBytes:    getInt64("MAX_BODY_BYTES", 1<<20),
			MaxUploadBytes:  getInt64("MAX_UPLOAD_BYTES", 10<<20),
			AllowedOrigins:  getEnv("ALLOWED_ORIGINS", "*"),
		},
		DB: &DB{
			Path:            getEnv("DATABASE_PATH", "db.sqlite3"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 5),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 2),
			ConnMaxIdleTime: getDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
			ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", time.Hour),
			PingTimeout:     getDuration("DB_PING_TIMEOUT", 5*time.Second),
			BusyTimeout:     getDuration("DB_BUSY_TIMEOUT", 5*time.Second),
		},
		JWT: &JWT{
			Issuer:     getEnv("JWT_ISSUER", "loja"),
			TTL:        getDuration("JWT_TTL", 15*time.Minute),
			RefreshTTL: getDuration("JWT_REFRESH_TTL", 24*time.Hour),
			JTILength:  getUint32("JWT_JTI_LENGTH", 32),
		},
		CSRF: &CSRF{
			CookieName:   getEnv("CSRF_COOKIE_NAME", "csrf_token"),
			HeaderName:   getEnv("CSRF_HEADER_NAME", "X-CSRF-Token"),
			TokenLength:  getUint32("CSRF_TOKEN_LENGTH", 32),
			CookieMaxAge: getDuration("CSRF_COOKIE_MAX_AGE", 24*time.Hour),
		},
		Argon2: &Argon2{
			Memory:     getUint32("ARGON2_MEMORY", 65536),
			Iterations: getUint32("ARGON2_ITERATIONS", 3),
			Threads:    uint8(getUint32("ARGON2_THREADS", 2)),
			SaltLength: getUint32("ARGON2_SALT_LENGTH", 16),
			KeyLength:  getUint32("ARGON2_KEY_LENGTH", 32),
		},
		Media: &Media{
			Root: getEnv("MEDIA_ROOT", "media"),
			URL:  getEnv("MEDIA_URL", "/media/"),
		},
		Storage: &Storage{
			Backend:       getEnv("STORAGE_BACKEND", "local"),
			Endpoint:      os.Getenv("S3_ENDPOINT"),
			Bucket:        os.Getenv("S3_BUCKET"),
			AccessKey:     os.Getenv("S3_ACCESS_KEY"),
			SecretKey:     os.Getenv("S3_SECRET_KEY"),
			UseSSL:        getBool("S3_USE_SSL", true),
			PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
		},
		Image: &Image{
			MaxWidth:    getInt("IMAGE_MAX_WIDTH", 400),
			Format:      getEnv("IMAGE_FORMAT", "png"),
			JPEGQuality: getInt("IMAGE_JPEG_QUALITY", 60),
		},
		Log: &Log{
			Level:      getEnv("LOG_LEVEL", "INFO"),
			Output:     getEnv("LOG_OUTPUT", "console"),
			File:       getEnv("LOG_FILE", "loja.log"),
			MaxSizeMB:  getInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getInt("LOG_MAX_AGE_DAYS", 28),
		},
	}

	if err := cfg.ensureSecretKey(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	slog.Info("Config loaded.", slog.Any("config", cfg))
	return cfg, nil
}

// ensureSecretKey generates a throwaway key for debug runs so a fresh clone
// starts without any setup. Outside of debug a missing key is fatal.
func (c *Config) ensureSecretKey() error {
	if c.SecretKey != "" {
		return nil
	}

	if !c.Debug {
		return errors.New("SECRET_KEY must be set when DEBUG is false")
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("generate development secret key: %w", err)
	}
	c.SecretKey = "insecure-" + base64.RawURLEncoding.EncodeToString(key)
	slog.Warn("SECRET_KEY is not set, using a generated development key. Sessions will not survive restarts.")

	return nil
}

// Validate checks the struct tags plus the cross-field rules the tags cannot
// express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.Storage.Backend == "s3" {
		if c.Storage.Endpoint == "" || c.Storage.Bucket == "" || c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
			return errors.New("S3_ENDPOINT, S3_BUCKET, S3_ACCESS_KEY and S3_SECRET_KEY must be set when STORAGE_BACKEND is s3")
		}
	}

	if c.Log.Output == "file" && c.Log.File == "" {
		return errors.New("LOG_FILE must be set when LOG_OUTPUT is file")
	}

	if !strings.HasPrefix(c.Media.URL, "/") {
		return errors.New("MEDIA_URL must start with a slash")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("Invalid integer in environment, using fallback.", "key", key, "value", v, "fallback", fallback)
		return fallback
	}
	return n
}

func getInt64(key string, fallback int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		slog.Warn("Invalid integer in environment, using fallback.", "key", key, "value", v, "fallback", fallback)
		return fallback
	}
	return n
}

func getUint32(key string, fallback uint32) uint32 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}

	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		slog.Warn("Invalid integer in environment, using fallback.", "key", key, "value", v, "fallback", fallback)
		return fallback
	}
	return uint32(n)
}

func getBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}

	b, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		slog.Warn("Invalid boolean in environment, using fallback.", "key", key, "value", v, "fallback", fallback)
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("Invalid duration in environment, using fallback.", "key", key, "value", v, "fallback", fallback)
		return fallback
	}
	return d
}
