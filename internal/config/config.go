package config

import (
	"os"
)

// DefaultDataFile is the bundled location of the portfolio document when no
// override path is configured.
const DefaultDataFile = "data/portfolio.json"

type Config struct {
	Port        string
	Environment string
	CORSOrigins string

	// Auth. The fallbacks are intentionally insecure defaults for local
	// development; production deployments must set all three.
	AdminUsername string
	AdminPassword string
	JWTSecret     string

	// Persistence. A present BlobToken selects the remote object backing;
	// otherwise the local file at DataFile is used.
	DataFile   string
	BlobToken  string
	BlobAPIURL string

	// Uploaded images
	UploadDir string

	// Contact-form relay
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPass     string
	ContactEmail string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		JWTSecret:     getEnv("JWT_SECRET", "fallback-secret-key"),

		DataFile:   getEnv("PORTFOLIO_DATA_FILE", DefaultDataFile),
		BlobToken:  getEnv("BLOB_READ_WRITE_TOKEN", ""),
		BlobAPIURL: getEnv("BLOB_API_URL", "https://blob.vercel-storage.com"),

		UploadDir: getEnv("UPLOAD_DIR", "public/uploads"),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPass:     getEnv("SMTP_PASS", ""),
		ContactEmail: getEnv("CONTACT_EMAIL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
