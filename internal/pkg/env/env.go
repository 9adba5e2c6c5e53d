package env

import (
	"os"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
)

var Env map[string]string

// GetEnv returns the value from the loaded .env file, then the OS environment, then def.
func GetEnv(key, def string) string {
	if val, ok := Env[key]; ok {
		return val
	}
	// Docker and tests configure through the OS environment only
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// SetupEnvFile loads the first .env file found. A missing file is not fatal:
// the dashboard runs fine on defaults and OS variables.
func SetupEnvFile() {
	envFiles := []string{
		".env",          // Current directory
		"../../.env",    // From cmd/cowin to project root
		"../../../.env", // Fallback for deeper nesting
	}

	for _, envFile := range envFiles {
		loaded, err := godotenv.Read(envFile)
		if err == nil {
			Env = loaded
			return
		}
	}

	log.Warn("[Env] No .env file found, using OS environment and defaults")
	Env = map[string]string{}
}

func IsDev() bool {
	return GetEnv("APP_ENV", "prod") == "dev"
}
