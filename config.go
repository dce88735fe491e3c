package main

import (
	"os"

	"github.com/apex/log"
	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr   string
	StoreBackend string // csv, postgres or memory
	ReportCSV    string
	UserCSV      string
	DatabaseURL  string
	SessionKey   string
}

func loadConfig() Config {
	// .env is optional; deployments usually set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Info("Loaded configuration from .env")
	}

	return Config{
		ListenAddr:   getEnv("LISTEN_ADDR", ":8084"),
		StoreBackend: getEnv("STORE_BACKEND", "csv"),
		ReportCSV:    getEnv("CSV_REPORT_FILE", "data/laporan.csv"),
		UserCSV:      getEnv("CSV_USER_FILE", "data/users.csv"),
		DatabaseURL:  getEnv("DATABASE_URL", "host=localhost port=5432 user=postgres password=1 dbname=laporan sslmode=disable"),
		SessionKey:   getEnv("SESSION_KEY", "your-secret-key-change-this"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
