package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	AppEnv string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret      string
	JWTExpireHours string

	// API Gateway URL
	APIGatewayURL string

	// Admin bootstrap
	AdminEmail    string
	AdminPassword string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       string

	// OTP
	OTPExpiryMinutes string
	OTPBypassCode    string

	// Email Configuration
	EmailFrom     string
	EmailFromName string
	EmailBCC      string
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPUseTLS    bool

	// WhatsApp gateway
	WhatsAppGatewayURL   string
	WhatsAppAPIKey       string
	WhatsAppSenderNumber string
	WhatsAppInviteTpl    string

	// Rate Limiting
	RateLimitMaxRequests          string
	RateLimitTimeWindowSeconds    string
	RateLimitBlockDurationMinutes string

	// OTP Rate Limiting
	OTPRateLimitMaxAttempts   string
	OTPRateLimitWindowSeconds string
	OTPRateLimitBlockMinutes  string

	// Frontend URL
	FrontendURL string

	// Service URLs (Dynamic based on environment)
	AuthServiceURL         string
	CoreServiceURL         string
	InviteServiceURL       string
	NotificationServiceURL string
	MediaServiceURL        string

	// MinIO Configuration
	MinIOServerURL    string
	MinIORootUser     string
	MinIORootPassword string
	MinIOUseSSL       bool
	MinIOBucketName   string

	// Presigned URL lifetime
	PresignExpiryMinutes string
}

var cfg *Config

// LoadConfig loads configuration from environment variables
func LoadConfig() {
	envPaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	envLoaded := false
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Printf("✅ Environment loaded from: %s", path)
			envLoaded = true
			break
		}
	}

	if !envLoaded {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg = &Config{
		// Environment
		AppEnv: getEnv("APP_ENV", "development"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "fundpitch"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key-change-this"),
		JWTExpireHours: getEnv("JWT_EXPIRE_HOURS", "72"),

		// API Gateway URL
		APIGatewayURL: getEnv("API_GATEWAY_URL", "http://localhost:8000"),

		// Admin bootstrap
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@fundpitch.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),

		// Redis
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnv("REDIS_DB", "0"),

		// OTP
		OTPExpiryMinutes: getEnv("OTP_EXPIRY_MINUTES", "5"),
		OTPBypassCode:    getEnv("OTP_BYPASS_CODE", "000000"),

		// Email Configuration
		EmailFrom:     getEnv("EMAIL_FROM", "noreply@fundpitch.com"),
		EmailFromName: getEnv("EMAIL_FROM_NAME", "FundPitch"),
		EmailBCC:      getEnv("EMAIL_BCC", "records@fundpitch.com"),
		SMTPHost:      getEnv("SMTP_HOST", "smtp.example.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:    getEnvAsBool("SMTP_USE_TLS", false),

		// WhatsApp gateway
		WhatsAppGatewayURL:   getEnv("WHATSAPP_GATEWAY_URL", "https://api.gateway.example.com/v1/messages"),
		WhatsAppAPIKey:       getEnv("WHATSAPP_API_KEY", ""),
		WhatsAppSenderNumber: getEnv("WHATSAPP_SENDER_NUMBER", ""),
		WhatsAppInviteTpl:    getEnv("WHATSAPP_INVITE_TEMPLATE", "fundpitch_invite"),

		// Rate Limiting
		RateLimitMaxRequests:          getEnv("RATE_LIMIT_MAX_REQUESTS", "100"),
		RateLimitTimeWindowSeconds:    getEnv("RATE_LIMIT_TIME_WINDOW_SECONDS", "60"),
		RateLimitBlockDurationMinutes: getEnv("RATE_LIMIT_BLOCK_DURATION_MINUTES", "15"),

		// OTP Rate Limiting
		OTPRateLimitMaxAttempts:   getEnv("OTP_RATE_LIMIT_MAX_ATTEMPTS", "5"),
		OTPRateLimitWindowSeconds: getEnv("OTP_RATE_LIMIT_WINDOW_SECONDS", "300"),
		OTPRateLimitBlockMinutes:  getEnv("OTP_RATE_LIMIT_BLOCK_MINUTES", "30"),

		// Frontend URL
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		// Service URLs - Environment-based configuration
		AuthServiceURL:         getEnv("AUTH_SERVICE_URL", "http://localhost:8001"),
		CoreServiceURL:         getEnv("CORE_SERVICE_URL", "http://localhost:8002"),
		InviteServiceURL:       getEnv("INVITE_SERVICE_URL", "http://localhost:8003"),
		NotificationServiceURL: getEnv("NOTIFICATION_SERVICE_URL", "http://localhost:8004"),
		MediaServiceURL:        getEnv("MEDIA_SERVICE_URL", "http://localhost:8005"),

		// MinIO Configuration
		MinIOServerURL:    getEnv("MINIO_SERVER_URL", "http://localhost:9000"),
		MinIORootUser:     getEnv("MINIO_ROOT_USER", "minioadmin"),
		MinIORootPassword: getEnv("MINIO_ROOT_PASSWORD", "minioadmin"),
		MinIOUseSSL:       getEnvAsBool("MINIO_USE_SSL", false),
		MinIOBucketName:   getEnv("MINIO_BUCKET_NAME", "fundpitch-media"),

		// Presigned URL lifetime
		PresignExpiryMinutes: getEnv("PRESIGN_EXPIRY_MINUTES", "15"),
	}

	log.Println("✅ Configuration loaded successfully")
}

// GetConfig returns the current configuration
func GetConfig() *Config {
	if cfg == nil {
		LoadConfig()
	}
	return cfg
}

// IsProduction reports whether the app runs in production mode. The OTP
// bypass code is only honored when this returns false.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GetOTPExpiryMinutes returns the OTP expiry as integer minutes
func (c *Config) GetOTPExpiryMinutes() int {
	if value, err := strconv.Atoi(c.OTPExpiryMinutes); err == nil {
		return value
	}
	return 5
}

// GetPresignExpiryMinutes returns the presigned URL lifetime as integer minutes
func (c *Config) GetPresignExpiryMinutes() int {
	if value, err := strconv.Atoi(c.PresignExpiryMinutes); err == nil {
		return value
	}
	return 15
}

// GetRateLimitMaxRequests returns the rate limit max requests as integer
func (c *Config) GetRateLimitMaxRequests() int {
	if value, err := strconv.Atoi(c.RateLimitMaxRequests); err == nil {
		return value
	}
	return 100
}

// GetRateLimitTimeWindowSeconds returns the rate limit time window as integer
func (c *Config) GetRateLimitTimeWindowSeconds() int {
	if value, err := strconv.Atoi(c.RateLimitTimeWindowSeconds); err == nil {
		return value
	}
	return 60
}

// GetRateLimitBlockDurationMinutes returns the rate limit block duration as integer
func (c *Config) GetRateLimitBlockDurationMinutes() int {
	if value, err := strconv.Atoi(c.RateLimitBlockDurationMinutes); err == nil {
		return value
	}
	return 15
}

// GetOTPRateLimit returns OTP endpoint rate limit knobs as integers
func (c *Config) GetOTPRateLimit() (maxAttempts, windowSeconds, blockMinutes int) {
	maxAttempts, windowSeconds, blockMinutes = 5, 300, 30
	if v, err := strconv.Atoi(c.OTPRateLimitMaxAttempts); err == nil {
		maxAttempts = v
	}
	if v, err := strconv.Atoi(c.OTPRateLimitWindowSeconds); err == nil {
		windowSeconds = v
	}
	if v, err := strconv.Atoi(c.OTPRateLimitBlockMinutes); err == nil {
		blockMinutes = v
	}
	return
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
