package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Server    ServerConfig    `yaml:"server"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	Email     EmailConfig     `yaml:"email"`
	Redis     RedisConfig     `yaml:"redis"`
	Upload    UploadConfig    `yaml:"upload"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url"` // full DSN, wins over the individual fields
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Expiry string `yaml:"expiry"`
}

type ServerConfig struct {
	Port        int      `yaml:"port"`
	Host        string   `yaml:"host"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type AnthropicConfig struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	MaxTokens int    `yaml:"max_tokens"`
}

type EmailConfig struct {
	ResendAPIKey     string `yaml:"resend_api_key"`
	MailerSendAPIKey string `yaml:"mailersend_api_key"`
	FromEmail        string `yaml:"from_email"`
	FromName         string `yaml:"from_name"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"` // empty disables cross-instance fan-out
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type UploadConfig struct {
	Dir        string `yaml:"dir"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	PublicPath string `yaml:"public_path"`
}

var AppConfig *Config

func LoadConfig() error {
	// Try to find config file in different locations
	configPaths := []string{
		"secret/app.yaml",
		"app.yaml",
		"config/app.yaml",
		"./app.yaml",
	}

	var configPath string
	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			configPath = path
			break
		}
	}

	config := &Config{}
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to read config file %s: %v", configPath, err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config: %v", err)
		}
	}

	setDefaults(config)
	applyEnvOverrides(config)

	AppConfig = config
	if configPath == "" {
		return fmt.Errorf("config file not found in any of the expected locations: %v", configPaths)
	}
	return nil
}

func setDefaults(config *Config) {
	// Database defaults
	if config.Database.Host == "" {
		config.Database.Host = "localhost"
	}
	if config.Database.Port == 0 {
		config.Database.Port = 5432
	}
	if config.Database.User == "" {
		config.Database.User = "studygroup_user"
	}
	if config.Database.Password == "" {
		config.Database.Password = "studygroup_password"
	}
	if config.Database.Name == "" {
		config.Database.Name = "studygroup_db"
	}
	if config.Database.SSLMode == "" {
		config.Database.SSLMode = "disable"
	}

	// JWT defaults
	if config.JWT.Secret == "" {
		config.JWT.Secret = "study-group-dev-secret-change-in-production"
	}
	if config.JWT.Expiry == "" {
		config.JWT.Expiry = "24h"
	}

	// Server defaults
	if config.Server.Port == 0 {
		config.Server.Port = 5000
	}
	if config.Server.Host == "" {
		config.Server.Host = "0.0.0.0"
	}
	if len(config.Server.CORSOrigins) == 0 {
		config.Server.CORSOrigins = []string{"http://localhost:5173"}
	}

	// Anthropic defaults
	if config.Anthropic.Model == "" {
		config.Anthropic.Model = "claude-3-5-sonnet-20241022"
	}
	if config.Anthropic.BaseURL == "" {
		config.Anthropic.BaseURL = "https://api.anthropic.com"
	}
	if config.Anthropic.MaxTokens == 0 {
		config.Anthropic.MaxTokens = 1000
	}

	// Email defaults
	if config.Email.FromEmail == "" {
		config.Email.FromEmail = "no-reply@studygroup.local"
	}
	if config.Email.FromName == "" {
		config.Email.FromName = "Virtual Study Group"
	}

	// Upload defaults
	if config.Upload.Dir == "" {
		config.Upload.Dir = "uploads"
	}
	if config.Upload.MaxSizeMB == 0 {
		config.Upload.MaxSizeMB = 20
	}
	if config.Upload.PublicPath == "" {
		config.Upload.PublicPath = "/uploads"
	}
}

// applyEnvOverrides lets the environment win over YAML, matching the
// deployment convention where secrets come from the process environment.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		config.Database.URL = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		config.Database.Host = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		config.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		config.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		config.Database.Name = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.JWT.Secret = v
	}
	if v := os.Getenv("CLIENT_URL"); v != "" {
		config.Server.CORSOrigins = []string{v}
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		config.Anthropic.APIKey = v
	}
	if v := os.Getenv("RESEND_API_KEY"); v != "" {
		config.Email.ResendAPIKey = v
	}
	if v := os.Getenv("MAILERSEND_API_KEY"); v != "" {
		config.Email.MailerSendAPIKey = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		config.Redis.Addr = v
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		config.Upload.Dir = v
	}
	if v := os.Getenv("PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil && port > 0 {
			config.Server.Port = port
		}
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		// Try to load config if not already loaded
		if err := LoadConfig(); err != nil {
			// If loading fails, create a default config
			config := &Config{}
			setDefaults(config)
			applyEnvOverrides(config)
			AppConfig = config
		}
	}
	return AppConfig
}

// Helper functions for backward compatibility
func GetEnv(key, defaultValue string) string {
	config := GetConfig()

	switch key {
	case "DATABASE_URL":
		return config.Database.URL
	case "DB_HOST":
		return config.Database.Host
	case "DB_PORT":
		return fmt.Sprintf("%d", config.Database.Port)
	case "DB_USER":
		return config.Database.User
	case "DB_PASSWORD":
		return config.Database.Password
	case "DB_NAME":
		return config.Database.Name
	case "DB_SSLMODE":
		return config.Database.SSLMode
	case "JWT_SECRET":
		return config.JWT.Secret
	case "JWT_EXPIRY":
		return config.JWT.Expiry
	case "PORT":
		return fmt.Sprintf("%d", config.Server.Port)
	case "CORS_ORIGIN":
		if len(config.Server.CORSOrigins) > 0 {
			return config.Server.CORSOrigins[0]
		}
		return "http://localhost:5173"
	case "UPLOAD_DIR":
		return config.Upload.Dir
	default:
		if value := os.Getenv(key); value != "" {
			return value
		}
		return defaultValue
	}
}
