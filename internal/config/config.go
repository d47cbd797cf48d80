package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv            string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSSLMode         string
	JwtSecret         string
	JwtExpiresMinutes int
	GatewayAddr       string
	AuthAddr          string
	EmployeeAddr      string
	AttendanceAddr    string
	UploadAddr        string
	AuthURL           string
	EmployeeURL       string
	AttendanceURL     string
	UploadURL         string
	CloudinaryName    string
	CloudinaryKey     string
	CloudinarySecret  string
	AllowedOriginsRaw string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppEnv:            getEnv("APP_ENV", "local"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBSSLMode:         getEnv("DB_SSLMODE", "disable"),
		JwtSecret:         os.Getenv("JWT_SECRET"),
		JwtExpiresMinutes: getEnvInt("JWT_EXPIRES_MINUTES", 1440),
		GatewayAddr:       getEnv("GATEWAY_ADDR", ":3000"),
		AuthAddr:          getEnv("AUTH_ADDR", ":3001"),
		EmployeeAddr:      getEnv("EMPLOYEE_ADDR", ":3002"),
		AttendanceAddr:    getEnv("ATTENDANCE_ADDR", ":3003"),
		UploadAddr:        getEnv("UPLOAD_ADDR", ":3004"),
		AuthURL:           getEnv("AUTH_URL", "http://localhost:3001"),
		EmployeeURL:       getEnv("EMPLOYEE_URL", "http://localhost:3002"),
		AttendanceURL:     getEnv("ATTENDANCE_URL", "http://localhost:3003"),
		UploadURL:         getEnv("UPLOAD_URL", "http://localhost:3004"),
		CloudinaryName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryKey:     os.Getenv("CLOUDINARY_API_KEY"),
		CloudinarySecret:  os.Getenv("CLOUDINARY_API_SECRET"),
		AllowedOriginsRaw: getEnv("ALLOWED_ORIGINS", ""),
	}

	missing := []string{}
	if cfg.DBUser == "" {
		missing = append(missing, "DB_USER")
	}
	if cfg.DBName == "" {
		missing = append(missing, "DB_NAME")
	}
	if cfg.JwtSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return cfg, errors.New("missing env: " + strings.Join(missing, ", "))
	}

	return cfg, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
