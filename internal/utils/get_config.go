package utils

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

const DefaultConfigPath = "config.yaml"

type Config struct {
	// Application
	AppPort  string `yaml:"APP_PORT"`
	LogLevel string `yaml:"LOG_LEVEL"`

	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER"`
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBPath     string `yaml:"DB_PATH"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	SMTPHost          string `yaml:"SMTP_HOST"`
	SMTPPort          string `yaml:"SMTP_PORT"`
	SMTPSenderName    string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail     string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword  string `yaml:"SMTP_AUTH_PASSWORD"`
	ReportNotifyEmail string `yaml:"REPORT_NOTIFY_EMAIL"`

	// AWS S3 configuration
	AWSS3Bucket    string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region    string `yaml:"AWS_S3_REGION"`
	AWSAccessKey   string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey   string `yaml:"AWS_SECRET_KEY"`
	AWSS3PublicURL string `yaml:"AWS_S3_PUBLIC_URL"`
}

var config = defaultConfig()

func defaultConfig() Config {
	return Config{
		AppPort:  "8080",
		LogLevel: "info",
		DBDriver: "postgres",
		DBPath:   "recipe-hub.db",
	}
}

// LoadConfig reads the YAML file at path over the defaults. A missing file keeps the defaults.
func LoadConfig(path string) {
	if path == "" {
		path = DefaultConfigPath
	}

	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	loaded := defaultConfig()
	if err := yaml.Unmarshal(file, &loaded); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}
	config = loaded

	// Set environment variables for keys that should be accessible via os.Getenv
	os.Setenv("JWT_SECRET", config.JWTSecret)
	os.Setenv("AWS_S3_BUCKET", config.AWSS3Bucket)
	os.Setenv("AWS_S3_REGION", config.AWSS3Region)
	os.Setenv("AWS_ACCESS_KEY", config.AWSAccessKey)
	os.Setenv("AWS_SECRET_KEY", config.AWSSecretKey)
}

func GetConfig(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "LOG_LEVEL":
		return config.LogLevel
	case "DB_DRIVER":
		return config.DBDriver
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_PATH":
		return config.DBPath
	case "JWT_SECRET":
		return config.JWTSecret
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "REPORT_NOTIFY_EMAIL":
		return config.ReportNotifyEmail
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "AWS_S3_PUBLIC_URL":
		return config.AWSS3PublicURL
	default:
		return ""
	}
}
