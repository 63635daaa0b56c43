package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	HTTPPort       string
	VocabularyFile string
	SQLitePath     string
	MigrationsDir  string
	Telegram       TelegramConfig
	Database       DatabaseConfig
	Redis          RedisConfig
	OpenAI         OpenAIConfig
}

// TelegramConfig holds the optional Telegram display settings
type TelegramConfig struct {
	BotToken string
	ChatID   int64
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// RedisConfig holds redis connection settings
type RedisConfig struct {
	Address  string
	Password string
	Key      string
}

// OpenAIConfig holds settings for generated vocabularies
type OpenAIConfig struct {
	APIKey string
	Model  string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		VocabularyFile: getEnv("VOCABULARY_FILE", "public/lingo-starter.json"),
		SQLitePath:     os.Getenv("SQLITE_PATH"),
		MigrationsDir:  getEnv("MIGRATIONS_DIR", "migrations"),
		Telegram: TelegramConfig{
			BotToken: os.Getenv("BOT_TOKEN"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "lingo"),
			User:     getEnv("DB_USER", "lingo"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Redis: RedisConfig{
			Address:  os.Getenv("REDIS_ADDRESS"),
			Password: os.Getenv("REDIS_PASSWORD"),
			Key:      getEnv("REDIS_KEY", "lingo:wordsets"),
		},
		OpenAI: OpenAIConfig{
			APIKey: os.Getenv("OPENAI_API_KEY"),
			Model:  os.Getenv("OPENAI_MODEL"),
		},
	}

	chatID := os.Getenv("TELEGRAM_CHAT_ID")
	if chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID must be an integer: %w", err)
		}
		cfg.Telegram.ChatID = id
	}

	// Telegram display needs both values
	if cfg.Telegram.BotToken != "" && chatID == "" {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID is required when BOT_TOKEN is set")
	}
	if cfg.Telegram.BotToken == "" && chatID != "" {
		return nil, fmt.Errorf("BOT_TOKEN is required when TELEGRAM_CHAT_ID is set")
	}

	return cfg, nil
}

// TelegramEnabled reports whether the Telegram display is configured
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != ""
}

// PostgresEnabled reports whether the postgres provider can be used
func (c *Config) PostgresEnabled() bool {
	return c.Database.Password != ""
}

// RedisEnabled reports whether the redis provider can be used
func (c *Config) RedisEnabled() bool {
	return c.Redis.Address != ""
}

// OpenAIEnabled reports whether the openai provider can be used
func (c *Config) OpenAIEnabled() bool {
	return c.OpenAI.APIKey != ""
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
