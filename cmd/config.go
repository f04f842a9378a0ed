package cmd

import "time"

// Config carries every runtime setting the application needs. Values are
// loaded from the environment in main.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr string

	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string
	LLMTimeout time.Duration

	JWTSecret string
	JWTTTL    time.Duration

	AdminEmail          string
	StaleOrderThreshold time.Duration
}
