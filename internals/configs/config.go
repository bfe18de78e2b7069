package configs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	defaultPort           = "5000"
	defaultJWTExpire      = 7 * 24 * time.Hour
	defaultBcryptCost     = 10
	defaultTimezone       = "Asia/Kolkata"
	defaultRequestTimeout = 5 * time.Second
	defaultAllowOrigins   = "http://localhost:5173,http://localhost:3000"
)

// Config holds everything the server and the CLI tools read from the environment.
type Config struct {
	AppEnv         string
	Port           string
	JWTSecret      string
	JWTExpire      time.Duration
	BcryptCost     int
	Timezone       string
	Location       *time.Location
	AllowOrigins   string
	RequestTimeout time.Duration
	Database       DatabaseConfig
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// DSN returns the URL form accepted by both pgx and golang-migrate.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=dayflow",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (c *Config) IsDevelopment() bool { return c.AppEnv == EnvDevelopment }

// =======================
// ENV LOADER
// =======================

// LoadEnv loads .env into the process environment unless running on Railway.
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") != "" {
		log.Println("[INFO] running on Railway, using system ENV")
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Println("[WARN] no .env file found, using system ENV")
		return
	}
	log.Println("✅ .env file loaded")
}

// Load reads .env (when present) and builds a validated Config.
func Load() (*Config, error) {
	LoadEnv()
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		AppEnv:       strings.ToLower(GetEnv("APP_ENV", EnvDevelopment)),
		Port:         GetEnv("PORT", defaultPort),
		JWTSecret:    strings.TrimSpace(GetEnv("JWT_SECRET")),
		Timezone:     GetEnv("TIMEZONE", defaultTimezone),
		AllowOrigins: GetEnv("CORS_ALLOW_ORIGINS", defaultAllowOrigins),
		Database: DatabaseConfig{
			Host:     GetEnv("DB_HOST", "localhost"),
			Port:     GetEnv("DB_PORT", "5432"),
			User:     GetEnv("DB_USER", "postgres"),
			Password: GetEnv("DB_PASSWORD"),
			Name:     GetEnv("DB_NAME", "dayflow"),
			SSLMode:  GetEnv("DB_SSLMODE", "disable"),
		},
	}

	var err error
	if cfg.JWTExpire, err = ParseExpire(GetEnv("JWT_EXPIRE"), defaultJWTExpire); err != nil {
		return nil, fmt.Errorf("config: JWT_EXPIRE: %w", err)
	}
	if cfg.RequestTimeout, err = ParseExpire(GetEnv("REQUEST_TIMEOUT"), defaultRequestTimeout); err != nil {
		return nil, fmt.Errorf("config: REQUEST_TIMEOUT: %w", err)
	}
	if cfg.BcryptCost, err = intEnv("BCRYPT_COST", defaultBcryptCost); err != nil {
		return nil, err
	}
	if cfg.Database.MaxOpenConns, err = intEnv("DB_MAX_OPEN_CONNS", 20); err != nil {
		return nil, err
	}
	if cfg.Database.MaxIdleConns, err = intEnv("DB_MAX_IDLE_CONNS", 10); err != nil {
		return nil, err
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validateAndNormalize() error {
	switch c.AppEnv {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("config: APP_ENV must be %q or %q", EnvDevelopment, EnvProduction)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET must be set")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("config: BCRYPT_COST must be between 4 and 31")
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("config: TIMEZONE %q: %w", c.Timezone, err)
	}
	c.Location = loc
	return nil
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func intEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(GetEnv(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

// ParseExpire accepts Go durations ("36h") and the day suffix used by the
// web client's env files ("7d"). Empty input yields def.
func ParseExpire(raw string, def time.Duration) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	if days, ok := strings.CutSuffix(raw, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid day count %q", raw)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %q", raw)
	}
	return d, nil
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger(cfg *Config) gormLogger.Interface {
	level := gormLogger.Warn
	if cfg != nil && cfg.IsDevelopment() {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	clone := *l
	clone.LogLevel = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error && !isRecordNotFound(err):
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
