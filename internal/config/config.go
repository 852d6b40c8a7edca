// Package config читает и хранит конфигурацию приложения.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration оборачивает time.Duration для разбора строк вида "30s" из YAML.
type Duration time.Duration

// UnmarshalYAML разбирает длительность в формате time.ParseDuration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("неверный формат длительности %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std возвращает значение как time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config представляет конфигурацию приложения, загружаемую из YAML
// с переопределением из переменных окружения.
type Config struct {
	API struct {
		Supabase struct {
			URL        string   `yaml:"url"`
			Key        string   `yaml:"key"`
			Bucket     string   `yaml:"bucket"`
			Timeout    Duration `yaml:"timeout"`
			RetryCount int      `yaml:"retry_count"`
			RetryWait  Duration `yaml:"retry_wait"`
		} `yaml:"supabase"`
		Telegram struct {
			Token   string   `yaml:"token"`
			Timeout Duration `yaml:"timeout"`
		} `yaml:"telegram"`
	} `yaml:"api"`

	RefData struct {
		CacheTTL Duration `yaml:"cache_ttl"`
	} `yaml:"refdata"`

	Logging struct {
		File    string   `yaml:"file"`
		MaxSize int64    `yaml:"max_size"`
		MaxAge  Duration `yaml:"max_age"`
	} `yaml:"logging"`

	Bot struct {
		ConsentFile   string   `yaml:"consent_file"`
		MinNameLen    int      `yaml:"min_name_len"`
		MaxExperience int      `yaml:"max_experience"`
		StatsInterval Duration `yaml:"stats_interval"`
	} `yaml:"bot"`
}

// NewConfig создает конфигурацию с безопасными значениями по умолчанию.
func NewConfig() *Config {
	cfg := &Config{}

	cfg.API.Supabase.Bucket = "storage"
	cfg.API.Supabase.Timeout = Duration(30 * time.Second)
	cfg.API.Supabase.RetryCount = 3
	cfg.API.Supabase.RetryWait = Duration(500 * time.Millisecond)
	cfg.API.Telegram.Timeout = Duration(10 * time.Second)

	cfg.RefData.CacheTTL = Duration(5 * time.Minute)

	cfg.Logging.File = "logs/bot.log"
	cfg.Logging.MaxSize = 10 * 1024 * 1024
	cfg.Logging.MaxAge = Duration(30 * 24 * time.Hour)

	cfg.Bot.ConsentFile = "privacy_policy.txt"
	cfg.Bot.MinNameLen = 2
	cfg.Bot.MaxExperience = 50
	cfg.Bot.StatsInterval = Duration(15 * time.Minute)

	return cfg
}

// LoadFile дополняет конфигурацию значениями из YAML-файла.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("ошибка разбора файла конфигурации: %w", err)
	}
	return nil
}

// ApplyEnv переопределяет чувствительные параметры из окружения.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("TELEGRAM_TOKEN"); v != "" {
		c.API.Telegram.Token = v
	}
	if v := os.Getenv("SUPABASE_URL"); v != "" {
		c.API.Supabase.URL = v
	}
	if v := os.Getenv("SUPABASE_KEY"); v != "" {
		c.API.Supabase.Key = v
	}
	if v := os.Getenv("SUPABASE_BUCKET"); v != "" {
		c.API.Supabase.Bucket = v
	}
	if v := os.Getenv("CONSENT_FILE"); v != "" {
		c.Bot.ConsentFile = v
	}
}

// Validate проверяет обязательные поля конфигурации.
func (c *Config) Validate() error {
	if c.API.Telegram.Token == "" {
		return fmt.Errorf("не указан токен Telegram")
	}
	if c.API.Supabase.URL == "" {
		return fmt.Errorf("не указан адрес Supabase")
	}
	if c.API.Supabase.Key == "" {
		return fmt.Errorf("не указан ключ Supabase")
	}
	return nil
}
