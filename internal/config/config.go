package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config хранит все параметры запуска приложения.
type Config struct {
	Env               string
	LogLevel          string
	HTTPPort          string
	APIBaseURL        string
	APITimeout        time.Duration
	AdminUsername     string
	AdminPasswordHash string
	JWTSecret         string
	SessionTTL        time.Duration
	AllowedOrigins    []string
	RateLimitLimit    int64
	RateLimitPeriod   time.Duration
	MaxResumeSizeMB   int64
	ResumeSpoolPath   string
	PageSize          int
	ToastTTL          time.Duration
	DatabaseURL       string
	MigrationsPath    string
}

// Load читает переменные окружения и возвращает готовую конфигурацию.
func Load() (*Config, error) {
	// Загружаем .env только если он существует, иначе используем системные переменные.
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("config: .env не найден, используем переменные окружения: %v", err)
	}

	env := getEnv("APP_ENV", "development")

	defaultLevel := "info"
	if env == "development" {
		defaultLevel = "debug"
	}

	cfg := &Config{
		Env:             env,
		LogLevel:        getEnv("LOG_LEVEL", defaultLevel),
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		APIBaseURL:      strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:5005/api"), "/"),
		AdminUsername:   getEnv("ADMIN_USERNAME", "admin"),
		ResumeSpoolPath: getEnv("RESUME_SPOOL_PATH", "./storage/resumes"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
	}

	// Секрет для подписи токенов сессии админки
	jwtSecret := getEnv("JWT_SECRET", "")
	passwordHash := getEnv("ADMIN_PASSWORD_HASH", "")

	if env == "production" {
		if len(jwtSecret) < 32 {
			return nil, fmt.Errorf("config: JWT_SECRET обязателен и должен быть не менее 32 символов в production")
		}
		if passwordHash == "" {
			return nil, fmt.Errorf("config: ADMIN_PASSWORD_HASH обязателен в production")
		}
	} else {
		if jwtSecret == "" {
			jwtSecret = "super-secret-development-only-change-in-production"
			log.Printf("config: WARNING - используется дефолтный JWT_SECRET, измените в production!")
		}
		if passwordHash == "" {
			hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
			if err != nil {
				return nil, fmt.Errorf("config: не удалось захешировать дефолтный пароль: %w", err)
			}
			passwordHash = string(hash)
			log.Printf("config: WARNING - используется дефолтный пароль администратора, задайте ADMIN_PASSWORD_HASH!")
		}
	}

	cfg.JWTSecret = jwtSecret
	cfg.AdminPasswordHash = passwordHash

	// CORS allowed origins
	originsStr := getEnv("CORS_ALLOWED_ORIGINS", "")
	if originsStr == "" {
		if env == "production" {
			return nil, fmt.Errorf("config: CORS_ALLOWED_ORIGINS обязателен в production")
		}
		cfg.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	} else {
		cfg.AllowedOrigins = splitList(originsStr)
	}

	var err error
	if cfg.APITimeout, err = parseDuration("API_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = parseDuration("SESSION_TTL", "12h"); err != nil {
		return nil, err
	}
	if cfg.RateLimitPeriod, err = parseDuration("RATE_LIMIT_PERIOD", "1m"); err != nil {
		return nil, err
	}
	if cfg.ToastTTL, err = parseDuration("TOAST_TTL", "3s"); err != nil {
		return nil, err
	}
	if cfg.RateLimitLimit, err = parseInt64("RATE_LIMIT_LIMIT", "10"); err != nil {
		return nil, err
	}
	if cfg.MaxResumeSizeMB, err = parseInt64("MAX_RESUME_MB", "5"); err != nil {
		return nil, err
	}

	pageSize, err := parseInt64("PAGE_SIZE", "10")
	if err != nil {
		return nil, err
	}
	if pageSize < 1 {
		return nil, fmt.Errorf("config: PAGE_SIZE должен быть положительным, получено %d", pageSize)
	}
	cfg.PageSize = int(pageSize)

	return cfg, nil
}

// IsProduction сообщает, запущено ли приложение в production окружении.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AuditEnabled сообщает, настроена ли база для журнала действий администратора.
func (c *Config) AuditEnabled() bool {
	return c.DatabaseURL != ""
}

// getEnv возвращает значение переменной окружения или дефолт.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// splitList разбивает список через запятую и убирает пробелы.
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseDuration читает длительность из окружения.
func parseDuration(key, fallback string) (time.Duration, error) {
	v := getEnv(key, fallback)
	dur, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: не удалось распарсить длительность %s=%q: %w", key, v, err)
	}
	return dur, nil
}

// parseInt64 читает целое число из окружения.
func parseInt64(key, fallback string) (int64, error) {
	v := getEnv(key, fallback)
	num, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: не удалось распарсить число %s=%q: %w", key, v, err)
	}
	return num, nil
}
