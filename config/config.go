// Package config loads and validates application configuration from
// environment variables. Required variables, defaults, and parse failures are
// collected into a single error so a misconfigured deployment reports every
// problem at once instead of failing one variable at a time.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DBConfig holds PostgreSQL connection settings for the application pool.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// MailConfig holds outbound mail settings. An empty APIKey leaves the mailer
// in log-only mode, which is what local development and the test suite use.
type MailConfig struct {
	APIKey    string
	Sender    string
	QueueSize int
	Workers   int
}

// AppConfig is the top-level configuration structure.
type AppConfig struct {
	DB     *DBConfig
	Server *ServerConfig
	Mail   *MailConfig
}

// getRequiredEnv reads a required variable, recording an error when unset.
func getRequiredEnv(key string, errs *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// getOptionalEnv reads an optional variable with a string default.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getOptionalEnvInt reads an optional variable parsed as an int. The default
// is used when the variable is unset; parse failures are recorded.
func getOptionalEnvInt(key string, defaultValue int, errs *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// clampPoolSize keeps the connection pool size within [5, 100].
func clampPoolSize(size int, varName string, errs *[]string) int {
	if size < 5 {
		*errs = append(*errs, fmt.Sprintf("pool size for %s (%d) is less than minimum 5, clamping to 5", varName, size))
		return 5
	}
	if size > 100 {
		*errs = append(*errs, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100, clamping to 100", varName, size))
		return 100
	}
	return size
}

// LoadConfig builds an AppConfig from the environment. It returns a single
// aggregated error listing everything that was missing or malformed.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	dbUser := getRequiredEnv("DB_USER", &errs)
	dbPassword := getRequiredEnv("DB_PASSWORD", &errs)
	dbName := getRequiredEnv("DB_NAME", &errs)
	dbHost := getOptionalEnv("DB_HOST", "localhost")
	dbPort := getOptionalEnvInt("DB_PORT", 5432, &errs)
	poolSize := clampPoolSize(getOptionalEnvInt("DB_POOL_SIZE", 10, &errs), "DB_POOL_SIZE", &errs)

	dbConfig := &DBConfig{
		Host:     dbHost,
		Port:     dbPort,
		User:     dbUser,
		Password: dbPassword,
		DBName:   dbName,
		MaxSize:  poolSize,
	}

	serverConfig := &ServerConfig{
		Port: getOptionalEnv("PORT", "8080"),
	}

	mailConfig := &MailConfig{
		APIKey:    getOptionalEnv("MAIL_API_KEY", ""),
		Sender:    getOptionalEnv("MAIL_SENDER", "hello@example.com"),
		QueueSize: getOptionalEnvInt("MAIL_QUEUE_SIZE", 32, &errs),
		Workers:   getOptionalEnvInt("MAIL_WORKERS", 2, &errs),
	}
	if mailConfig.QueueSize < 1 {
		errs = append(errs, fmt.Sprintf("MAIL_QUEUE_SIZE (%d) must be at least 1", mailConfig.QueueSize))
	}
	if mailConfig.Workers < 1 {
		errs = append(errs, fmt.Sprintf("MAIL_WORKERS (%d) must be at least 1", mailConfig.Workers))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return &AppConfig{
		DB:     dbConfig,
		Server: serverConfig,
		Mail:   mailConfig,
	}, nil
}
