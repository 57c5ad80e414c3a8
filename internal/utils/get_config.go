package utils

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server configuration
	AppURL     string `yaml:"APP_URL"`
	ServerPort string `yaml:"SERVER_PORT"`
	LogFile    string `yaml:"LOG_FILE"`
	RateLimit  int    `yaml:"RATE_LIMIT"`

	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER"`
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBPath     string `yaml:"DB_PATH"`

	// JWT configuration
	JWTSecret   string `yaml:"JWT_SECRET"`
	JWTTTLHours int    `yaml:"JWT_TTL_HOURS"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// Image storage configuration
	StorageDriver string `yaml:"STORAGE_DRIVER"`
	MediaRoot     string `yaml:"MEDIA_ROOT"`
	AWSS3Bucket   string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region   string `yaml:"AWS_S3_REGION"`
	AWSAccessKey  string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey  string `yaml:"AWS_SECRET_KEY"`

	// Recipe limits
	RecipeMinCookingTime int `yaml:"RECIPE_MIN_COOKING_TIME"`
	IngredientMinAmount  int `yaml:"INGREDIENT_MIN_AMOUNT"`
}

var config = defaultConfig()

func defaultConfig() Config {
	return Config{
		AppURL:               "http://localhost:8080",
		ServerPort:           "8080",
		LogFile:              "./logs/app.log",
		RateLimit:            20,
		DBDriver:             "postgres",
		DBPath:               "foodgram.db",
		JWTTTLHours:          24,
		StorageDriver:        "local",
		MediaRoot:            "./media",
		RecipeMinCookingTime: 1,
		IngredientMinAmount:  1,
	}
}

// LoadConfig reads the YAML file at path on top of the defaults. A missing
// file is not fatal: environment variables may still carry every key.
func LoadConfig(path string) {
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
}

// GetConfig returns the configured value for key. An environment variable
// with the same name takes precedence over the file.
func GetConfig(key string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	switch key {
	case "APP_URL":
		return config.AppURL
	case "SERVER_PORT":
		return config.ServerPort
	case "LOG_FILE":
		return config.LogFile
	case "RATE_LIMIT":
		return strconv.Itoa(config.RateLimit)
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
	case "JWT_TTL_HOURS":
		return strconv.Itoa(config.JWTTTLHours)
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
	case "STORAGE_DRIVER":
		return config.StorageDriver
	case "MEDIA_ROOT":
		return config.MediaRoot
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "RECIPE_MIN_COOKING_TIME":
		return strconv.Itoa(config.RecipeMinCookingTime)
	case "INGREDIENT_MIN_AMOUNT":
		return strconv.Itoa(config.IngredientMinAmount)
	default:
		return ""
	}
}

// GetConfigInt parses an integer key, falling back when it is unset or
// malformed.
func GetConfigInt(key string, fallback int) int {
	v, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		return fallback
	}
	return v
}
