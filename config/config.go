package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	JWTSecret      string
	SessionSecret  string
	Port           string
	Env            string
	RazorpayKey    string
	RazorpaySecret string
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SMTPFrom       string
}

// LoadConfig loads configuration from environment variables. A missing .env
// file is not fatal so the binary can run with plain environment variables.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	config := &Config{
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         os.Getenv("DB_PORT"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		Port:           os.Getenv("PORT"),
		Env:            os.Getenv("ENV"),
		RazorpayKey:    os.Getenv("RAZORPAY_KEY"),
		RazorpaySecret: os.Getenv("RAZORPAY_SECRET"),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       os.Getenv("SMTP_PORT"),
		SMTPUsername:   os.Getenv("SMTP_USERNAME"),
		SMTPPassword:   os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:       os.Getenv("SMTP_FROM"),
	}

	if config.Port == "" {
		config.Port = "8080"
	}

	return config, nil
}
