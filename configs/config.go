package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port       string `validate:"required,numeric"`
	CORSOrigin string `validate:"required,url"`
	LogDir     string

	DBDriver            string `validate:"oneof=postgres sqlite"`
	DBServer            string `validate:"required_if=DBDriver postgres"`
	DBPort              int    `validate:"min=1,max=65535"`
	DBName              string `validate:"required"`
	DBEncrypt           bool
	DBTrustServerCert   bool
	DBTrustedConnection bool
	DBUser              string `validate:"required_if=DBTrustedConnection false DBDriver postgres"`
	DBPassword          string
	DBCreateSchema      bool
}

// LoadConfig membaca .env (jika ada) lalu environment variable.
func LoadConfig() Config {
	// Muat file .env
	if err := godotenv.Load(); err != nil {
		// Hanya log jika tidak dalam mode test
		if os.Getenv("GO_ENV") != "test" {
			log.Println("No .env file found, using environment only")
		}
	}

	dbPort, err := strconv.Atoi(os.Getenv("DB_PORT"))
	if err != nil {
		dbPort = 5432
	}

	return Config{
		Port:       getEnv("PORT", "5000"),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),
		LogDir:     os.Getenv("LOG_DIR"),

		DBDriver:            getEnv("DB_DRIVER", DriverPostgres),
		DBServer:            os.Getenv("DB_SERVER"),
		DBPort:              dbPort,
		DBName:              os.Getenv("DB_NAME"),
		DBEncrypt:           getBool("DB_ENCRYPT", false),
		DBTrustServerCert:   getBool("DB_TRUST_SERVER_CERTIFICATE", false),
		DBTrustedConnection: getBool("DB_TRUSTED_CONNECTION", true),
		DBUser:              os.Getenv("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBCreateSchema:      getBool("DB_CREATE_SCHEMA", false),
	}
}

// Validate checks the loaded values before anything is opened.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
