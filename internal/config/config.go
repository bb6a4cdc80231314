package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultSystemPrompt = "คุณคือผู้รับฟังที่เข้าใจและเห็นอกเห็นใจนักเรียนที่ต้องการปลดปล่อยความรู้สึก " +
	"ตอบกลับด้วยข้อความสั้นๆ อบอุ่น และให้กำลังใจ (ไม่เกิน 2-3 ประโยค) ที่ทำให้พวกเขารู้สึกว่ามีคนรับฟังและเข้าใจ " +
	"ใช้น้ำเสียงที่อ่อนโยน เข้าใจ และให้กำลังใจ ใช้อีโมจิอย่างเป็นธรรมชาติและเหมาะสม (2-3 ตัว) " +
	"เพื่อให้ข้อความดูอบอุ่นและเป็นกันเองและให้คำแนะนำอย่างเหมาะสมและทำตามได้จริง"

type Config struct {
	Port string

	ProviderKey     string
	ProviderBaseURL string
	Model           string
	SystemPrompt    string
	MaxTokens       int
	Temperature     float32
	Referer         string
	AppTitle        string
	ProviderTimeout time.Duration

	ErrorLogPath       string
	ErrorLogMaxSizeMB  int
	ErrorLogMaxBackups int

	LogLevel  string
	LogFormat string

	TelegramToken  string
	AllowedUserIDs []int64

	ServerURL string

	// Set while loading and reported by the caller once logging is up.
	EnvFileErr     error
	SkippedUserIDs []string
}

// Configured reports whether a provider key is available.
func (c Config) Configured() bool {
	return c.ProviderKey != ""
}

func Load(path string) (Config, error) {
	envErr := godotenv.Load(path)

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		Port:               v.GetString("port"),
		ProviderKey:        strings.TrimSpace(v.GetString("openrouter_api_key")),
		ProviderBaseURL:    strings.TrimRight(v.GetString("openrouter_base_url"), "/"),
		Model:              v.GetString("comfort_model"),
		SystemPrompt:       v.GetString("comfort_system_prompt"),
		MaxTokens:          v.GetInt("comfort_max_tokens"),
		Temperature:        float32(v.GetFloat64("comfort_temperature")),
		Referer:            v.GetString("http_referer"),
		AppTitle:           v.GetString("app_title"),
		ProviderTimeout:    time.Duration(v.GetInt("provider_timeout_seconds")) * time.Second,
		ErrorLogPath:       v.GetString("error_log_path"),
		ErrorLogMaxSizeMB:  v.GetInt("error_log_max_size_mb"),
		ErrorLogMaxBackups: v.GetInt("error_log_max_backups"),
		LogLevel:           v.GetString("log_level"),
		LogFormat:          v.GetString("log_format"),
		TelegramToken:      strings.TrimSpace(v.GetString("telegram_bot_token")),
		ServerURL:          strings.TrimRight(v.GetString("relief_server_url"), "/"),
		EnvFileErr:         envErr,
	}
	cfg.AllowedUserIDs, cfg.SkippedUserIDs = parseIDs(v.GetString("allowed_telegram_user_ids"))

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "3000")
	v.SetDefault("openrouter_api_key", "")
	v.SetDefault("openrouter_base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("comfort_model", "mistralai/devstral-2512:free")
	v.SetDefault("comfort_system_prompt", DefaultSystemPrompt)
	v.SetDefault("comfort_max_tokens", 100)
	v.SetDefault("comfort_temperature", 0.7)
	v.SetDefault("http_referer", "https://relief-wine.vercel.app/")
	v.SetDefault("app_title", "Student Relief Website")
	v.SetDefault("provider_timeout_seconds", 30)
	v.SetDefault("error_log_path", "server_error.log")
	v.SetDefault("error_log_max_size_mb", 10)
	v.SetDefault("error_log_max_backups", 3)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("telegram_bot_token", "")
	v.SetDefault("allowed_telegram_user_ids", "")
	v.SetDefault("relief_server_url", "http://localhost:3000")
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("port is required")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("COMFORT_MAX_TOKENS must be positive, got %d", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("COMFORT_TEMPERATURE must be within [0, 2], got %v", c.Temperature)
	}
	if c.ProviderTimeout < 0 {
		return errors.New("PROVIDER_TIMEOUT_SECONDS must not be negative")
	}
	return nil
}

func parseIDs(raw string) (ids []int64, skipped []string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids = make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			skipped = append(skipped, p)
			continue
		}
		ids = append(ids, v)
	}
	return ids, skipped
}
