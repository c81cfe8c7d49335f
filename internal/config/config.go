package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string
	JWTSecret  string

	// eSewa gateway
	EsewaBaseURL     string
	EsewaFormURL     string
	EsewaProductCode string
	EsewaSecretKey   string
	SuccessURL       string
	FailureURL       string

	// VerifyCallbackSignature gates the HMAC check on inbound callback
	// payloads. The gateway cross-check stays the trust anchor either way.
	VerifyCallbackSignature bool

	Verbose bool
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		AppPort:    os.Getenv("APP_PORT"),
		AppEnv:     os.Getenv("APP_ENV"),
		JWTSecret:  os.Getenv("SECRET_KEY"),

		EsewaBaseURL:     os.Getenv("ESEWA_BASE_URL"),
		EsewaFormURL:     os.Getenv("ESEWA_FORM_URL"),
		EsewaProductCode: os.Getenv("ESEWA_PRODUCT_CODE"),
		EsewaSecretKey:   os.Getenv("ESEWA_SECRET_KEY"),
		SuccessURL:       os.Getenv("ESEWA_SUCCESS_URL"),
		FailureURL:       os.Getenv("ESEWA_FAILURE_URL"),

		VerifyCallbackSignature: os.Getenv("ESEWA_VERIFY_CALLBACK_SIGNATURE") != "false",

		Verbose: os.Getenv("VERBOSE") == "true",
	}

	if cfg.EsewaProductCode == "" || cfg.EsewaSecretKey == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}
