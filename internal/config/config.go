package config

import "os"

type env struct {
	ServerAddr  string
	Environment string
}

// Env holds process configuration read once at startup.
var Env = newEnv()

func newEnv() *env {
	return &env{
		ServerAddr:  getEnv("SERVER_ADDR", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return fallback
}
