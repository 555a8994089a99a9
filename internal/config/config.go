package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dgarciab/admision/internal/app/models"
)

// Config structure represents the application configuration
type Config struct {
	App struct {
		Environment string `yaml:"environment" env:"APP_ENV"`
	} `yaml:"app"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	SMTP struct {
		Host      string `yaml:"host" env:"SMTP_HOST"`
		Port      int    `yaml:"port" env:"SMTP_PORT"`
		Username  string `yaml:"username" env:"SMTP_USERNAME"`
		Password  string `yaml:"password" env:"SMTP_PASSWORD"`
		FromName  string `yaml:"from_name" env:"SMTP_FROM_NAME"`
		FromEmail string `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
	} `yaml:"smtp"`

	Admission struct {
		MaxStudentsPerGuardian int `yaml:"max_students_per_guardian" env:"ADMISSION_MAX_STUDENTS_PER_GUARDIAN"`
		MinGroupSize           int `yaml:"min_group_size" env:"ADMISSION_MIN_GROUP_SIZE"`
		MaxGroupSize           int `yaml:"max_group_size" env:"ADMISSION_MAX_GROUP_SIZE"`
		MaxLoginAttempts       int `yaml:"max_login_attempts" env:"ADMISSION_MAX_LOGIN_ATTEMPTS"`
	} `yaml:"admission"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load default config with sane defaults
	config := &Config{}
	setDefaults(config)

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		err = yaml.Unmarshal(file, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	// Validate config
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.App.Environment = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "admision"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.SMTP.Port = 587
	config.SMTP.FromName = "Admissions Office"
	config.SMTP.FromEmail = "admissions@school.edu.co"

	config.Admission.MaxStudentsPerGuardian = models.MaxStudentsPerGuardian
	config.Admission.MinGroupSize = models.MinGroupSize
	config.Admission.MaxGroupSize = models.MaxGroupSize
	config.Admission.MaxLoginAttempts = models.MaxLoginAttempts

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.Admission.MaxStudentsPerGuardian < 1 {
		return fmt.Errorf("max_students_per_guardian must be at least 1")
	}

	if config.Admission.MinGroupSize < 1 {
		return fmt.Errorf("min_group_size must be at least 1")
	}

	if config.Admission.MaxGroupSize < config.Admission.MinGroupSize {
		return fmt.Errorf("max_group_size must not be below min_group_size")
	}

	if config.Admission.MaxLoginAttempts < 1 {
		return fmt.Errorf("max_login_attempts must be at least 1")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
