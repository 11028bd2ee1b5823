package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

var (
	MAIN_ROUTES   string
	APP_PORT      string
	JWTSecret     string
	JWTExpiration int

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBDSN      string

	StorageDriver string
	UploadDir     string
	GCSBucket     string

	PDFFontDir string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	LogsDirectory string

	AdminUsername string
	AdminEmail    string
	AdminPassword string

	// Location drives the reference-code year and the dashboard windows.
	Location *time.Location

	allowedOrigins map[string]bool
)

// LoadConfig reads .env and initialises the configuration variables.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Server
	MAIN_ROUTES = getEnv("MAIN_ROUTES", "/api/v1")
	APP_PORT = getEnv("APP_PORT", "9000")
	Location = loadLocation(getEnv("APP_TIMEZONE", "Europe/Prague"))

	// JWT
	JWTSecret = getEnv("JWT_SECRET", "jafa_logistika_secret")
	JWTExpiration = getEnvAsInt("JWT_EXPIRATION", 86400)

	// Database
	DBDriver = getEnv("DB_DRIVER", "postgres")
	DBHost = getEnv("DB_HOST", "localhost")
	DBPort = getEnv("DB_PORT", "5432")
	DBUser = getEnv("DB_USER", "jafa")
	DBPassword = getEnv("DB_PASSWORD", "")
	DBName = getEnv("DB_NAME", "logistika")
	DBDSN = getEnv("DB_DSN", "")

	// File storage
	StorageDriver = getEnv("STORAGE_DRIVER", "local")
	UploadDir = getEnv("UPLOAD_DIR", "./media")
	GCSBucket = getEnv("GCS_BUCKET", "")

	PDFFontDir = getEnv("PDF_FONT_DIR", "")

	// Mail
	SMTPHost = getEnv("SMTP_HOST", "")
	SMTPPort = getEnvAsInt("SMTP_PORT", 587)
	SMTPUser = getEnv("SMTP_USER", "")
	SMTPPassword = getEnv("SMTP_PASSWORD", "")
	SMTPFrom = getEnv("SMTP_FROM", "dispecink@jafa.cz")

	LogsDirectory = getEnv("LOGS_DIRECTORY", "")

	AdminUsername = getEnv("ADMIN_USERNAME", "")
	AdminEmail = getEnv("ADMIN_EMAIL", "")
	AdminPassword = getEnv("ADMIN_PASSWORD", "")

	loadAllowedOrigins()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Warning: unknown APP_TIMEZONE %q, falling back to UTC", name)
		return time.UTC
	}
	return loc
}

// Now returns the current time in the configured location.
func Now() time.Time {
	if Location == nil {
		return time.Now()
	}
	return time.Now().In(Location)
}

func loadAllowedOrigins() {
	allowedOrigins = make(map[string]bool)
	originsStr := getEnv("ALLOWED_ORIGINS", "")

	if originsStr == "" {
		allowedOrigins = map[string]bool{
			"http://127.0.0.1:3000": true,
			"http://localhost:3000": true,
		}
		return
	}

	for _, origin := range strings.Split(originsStr, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
}

// MailEnabled reports whether an SMTP relay is configured.
func MailEnabled() bool {
	return SMTPHost != "" && getEnvAsBool("SMTP_ENABLED", true)
}

func SetupCORS(app *fiber.App) {
	app.Use(func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		if allowedOrigins[origin] {
			c.Set("Access-Control-Allow-Origin", origin)
			c.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			c.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
			c.Set("Access-Control-Allow-Credentials", "true")
			c.Set("Access-Control-Expose-Headers", "Content-Disposition")
		}

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	})
}
