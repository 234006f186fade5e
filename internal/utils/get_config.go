package utils

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort             string `yaml:"APP_PORT"`
	AppTimezone         string `yaml:"APP_TIMEZONE"`
	CORSOrigins         string `yaml:"CORS_ORIGINS"`
	RateLimitMax        string `yaml:"RATE_LIMIT_MAX"`
	RequestTimeout      string `yaml:"REQUEST_TIMEOUT"`
	ExpirySweepInterval string `yaml:"EXPIRY_SWEEP_INTERVAL"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBSSLMode  string `yaml:"DB_SSLMODE"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`
	JWTTTL    string `yaml:"JWT_TTL"`
	IsProd    bool   `yaml:"IsProd"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`
	SupportEmail     string `yaml:"SUPPORT_EMAIL"`

	// AWS S3 configuration
	AWSS3Bucket    string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region    string `yaml:"AWS_S3_REGION"`
	AWSAccessKey   string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey   string `yaml:"AWS_SECRET_KEY"`
	AWSS3Endpoint  string `yaml:"AWS_S3_ENDPOINT"`
	AWSS3LinkTTL   string `yaml:"AWS_S3_LINK_TTL"`
	AWSS3PublicURL string `yaml:"AWS_S3_PUBLIC_URL"`

	// Reverse geocoding
	GeocoderURL       string `yaml:"GEOCODER_URL"`
	GeocoderUserAgent string `yaml:"GEOCODER_USER_AGENT"`
	GeocoderCacheSize string `yaml:"GEOCODER_CACHE_SIZE"`
	GeocoderCacheTTL  string `yaml:"GEOCODER_CACHE_TTL"`
}

var (
	config     Config
	configOnce sync.Once
)

var defaults = map[string]string{
	"APP_PORT":              "5000",
	"APP_TIMEZONE":          "Asia/Kolkata",
	"CORS_ORIGINS":          "http://localhost:5173",
	"RATE_LIMIT_MAX":        "20",
	"REQUEST_TIMEOUT":       "10s",
	"EXPIRY_SWEEP_INTERVAL": "5m",
	"DB_HOST":               "localhost",
	"DB_PORT":               "5432",
	"DB_NAME":               "maitri_dhatri",
	"DB_SSLMODE":            "disable",
	"JWT_TTL":               "168h",
	"AWS_S3_LINK_TTL":       "15m",
	"GEOCODER_URL":          "https://nominatim.openstreetmap.org",
	"GEOCODER_USER_AGENT":   "maitri-dhatri-backend",
	"GEOCODER_CACHE_SIZE":   "1024",
	"GEOCODER_CACHE_TTL":    "24h",
}

// LoadConfig reads config.yaml (or $CONFIG_PATH), then lets .env and the
// process environment override individual keys. Safe to call repeatedly.
func LoadConfig() {
	configOnce.Do(func() {
		loadConfig()
	})
}

func loadConfig() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	file, err := os.ReadFile(path)
	if err != nil {
		log.Warnf("Error reading YAML file: %s", err)
	} else if err := yaml.Unmarshal(file, &config); err != nil {
		log.Warnf("Error parsing YAML file: %s", err)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("Error loading .env file: %s", err)
	}

	for key, field := range config.fields() {
		if value, ok := os.LookupEnv(key); ok {
			*field = value
		}
		if *field == "" {
			*field = defaults[key]
		}
	}
	if value, ok := os.LookupEnv("IS_PROD"); ok {
		config.IsProd, _ = strconv.ParseBool(value)
	}
}

func (c *Config) fields() map[string]*string {
	return map[string]*string{
		"APP_PORT":              &c.AppPort,
		"APP_TIMEZONE":          &c.AppTimezone,
		"CORS_ORIGINS":          &c.CORSOrigins,
		"RATE_LIMIT_MAX":        &c.RateLimitMax,
		"REQUEST_TIMEOUT":       &c.RequestTimeout,
		"EXPIRY_SWEEP_INTERVAL": &c.ExpirySweepInterval,
		"DB_USER":               &c.DBUser,
		"DB_NAME":               &c.DBName,
		"DB_PASSWORD":           &c.DBPassword,
		"DB_PORT":               &c.DBPort,
		"DB_HOST":               &c.DBHost,
		"DB_SSLMODE":            &c.DBSSLMode,
		"JWT_SECRET":            &c.JWTSecret,
		"JWT_TTL":               &c.JWTTTL,
		"SMTP_HOST":             &c.SMTPHost,
		"SMTP_PORT":             &c.SMTPPort,
		"SMTP_SENDER_NAME":      &c.SMTPSenderName,
		"SMTP_AUTH_EMAIL":       &c.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD":    &c.SMTPAuthPassword,
		"SUPPORT_EMAIL":         &c.SupportEmail,
		"AWS_S3_BUCKET":         &c.AWSS3Bucket,
		"AWS_S3_REGION":         &c.AWSS3Region,
		"AWS_ACCESS_KEY":        &c.AWSAccessKey,
		"AWS_SECRET_KEY":        &c.AWSSecretKey,
		"AWS_S3_ENDPOINT":       &c.AWSS3Endpoint,
		"AWS_S3_LINK_TTL":       &c.AWSS3LinkTTL,
		"AWS_S3_PUBLIC_URL":     &c.AWSS3PublicURL,
		"GEOCODER_URL":          &c.GeocoderURL,
		"GEOCODER_USER_AGENT":   &c.GeocoderUserAgent,
		"GEOCODER_CACHE_SIZE":   &c.GeocoderCacheSize,
		"GEOCODER_CACHE_TTL":    &c.GeocoderCacheTTL,
	}
}

func GetConfig(key string) string {
	LoadConfig()
	if key == "IsProd" {
		return strconv.FormatBool(config.IsProd)
	}
	if field, ok := config.fields()[key]; ok {
		return *field
	}
	return ""
}

func GetConfigInt(key string) int {
	value, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		fallback, _ := strconv.Atoi(defaults[key])
		return fallback
	}
	return value
}

func GetConfigDuration(key string) time.Duration {
	value, err := time.ParseDuration(GetConfig(key))
	if err != nil {
		fallback, _ := time.ParseDuration(defaults[key])
		return fallback
	}
	return value
}

func GetConfigList(key string) []string {
	var out []string
	for _, item := range strings.Split(GetConfig(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
