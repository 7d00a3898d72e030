package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Catalog CatalogConfig
	Redis   RedisConfig
	Quiz    QuizConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	catalog, err := loadCatalogConfig()
	if err != nil {
		return nil, err
	}

	redis, err := loadRedisConfig()
	if err != nil {
		return nil, err
	}

	quiz, err := loadQuizConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:  server,
		Log:     loadLogConfig(),
		Catalog: catalog,
		Redis:   redis,
		Quiz:    quiz,
	}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// LogConfig 描述日志级别与输出格式。
type LogConfig struct {
	Level  string
	Format string
}

func loadLogConfig() LogConfig {
	return LogConfig{
		Level:  getEnvOrDefault("LOG_LEVEL", "info"),
		Format: strings.ToLower(getEnvOrDefault("LOG_FORMAT", "json")),
	}
}

// CatalogConfig 描述品种目录的来源。
type CatalogConfig struct {
	URL      string
	File     string
	Timeout  time.Duration
	Retries  int
	CacheTTL time.Duration
	UseSeed  bool
}

// RemoteEnabled 表示是否配置了远程目录服务。
func (c CatalogConfig) RemoteEnabled() bool {
	return c.URL != ""
}

func loadCatalogConfig() (CatalogConfig, error) {
	timeout, err := parseDurationEnv("CATALOG_TIMEOUT", 5*time.Second)
	if err != nil {
		return CatalogConfig{}, err
	}

	ttl, err := parseDurationEnv("CATALOG_CACHE_TTL", time.Hour)
	if err != nil {
		return CatalogConfig{}, err
	}

	useSeed, err := parseBoolEnv("CATALOG_USE_SEED", true)
	if err != nil {
		return CatalogConfig{}, err
	}

	retries := 3
	if override, err := parseOptionalIntEnv("CATALOG_RETRIES"); err != nil {
		return CatalogConfig{}, err
	} else if override != nil {
		if *override < 0 {
			retries = 0
		} else {
			retries = *override
		}
	}

	return CatalogConfig{
		URL:      strings.TrimRight(getEnvOrDefault("CATALOG_URL", ""), "/"),
		File:     getEnvOrDefault("CATALOG_FILE", ""),
		Timeout:  timeout,
		Retries:  retries,
		CacheTTL: ttl,
		UseSeed:  useSeed,
	}, nil
}

// RedisConfig 描述目录缓存使用的 Redis。
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled 表示是否启用 Redis 缓存。
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

func loadRedisConfig() (RedisConfig, error) {
	db := 0
	if override, err := parseOptionalIntEnv("REDIS_DB"); err != nil {
		return RedisConfig{}, err
	} else if override != nil {
		db = *override
	}

	return RedisConfig{
		Addr:     getEnvOrDefault("REDIS_ADDR", ""),
		Password: strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
		DB:       db,
	}, nil
}

// QuizConfig 描述问卷节奏与默认题库。
type QuizConfig struct {
	PacingDelay time.Duration
	QuestionSet string
}

func loadQuizConfig() (QuizConfig, error) {
	delay, err := parseDurationEnv("QUIZ_PACING_DELAY", 500*time.Millisecond)
	if err != nil {
		return QuizConfig{}, err
	}
	if delay < 0 {
		return QuizConfig{}, fmt.Errorf("invalid QUIZ_PACING_DELAY value %s: must not be negative", delay)
	}

	return QuizConfig{
		PacingDelay: delay,
		QuestionSet: getEnvOrDefault("QUIZ_QUESTION_SET", "classic"),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

// parseDurationEnv 接受 "750ms" 这样的时长，也接受纯数字（毫秒）。
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
