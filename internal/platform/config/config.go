package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string
	JWTKey  []byte
	JWTExp  time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	DBConnectAttempts int
	DBConnectBackoff  time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CORSAllowedOrigins []string

	LeaderboardCacheTTL time.Duration
	LeaderboardSize     int

	PracticeDefaultMinutes int
	PracticeProblemCount   int

	SeedOnStartup bool

	LogFile  string
	LogDebug bool
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:           getEnv("API_PORT", "8080"),
		JWTKey:            []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp:            time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 72)) * time.Hour,
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "botadmin"),
		DBPassword:        getEnv("DB_PASSWORD", "password"),
		DBName:            getEnv("DB_NAME", "playex_db"),
		DBSslMode:         getEnv("DB_SSLMODE", "disable"),
		DBConnectAttempts: getEnvAsInt("DB_CONNECT_ATTEMPTS", 10),
		DBConnectBackoff:  time.Duration(getEnvAsInt("DB_CONNECT_BACKOFF_SECONDS", 2)) * time.Second,
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),

		CORSAllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ","),

		LeaderboardCacheTTL: time.Duration(getEnvAsInt("LEADERBOARD_CACHE_TTL_SECONDS", 30)) * time.Second,
		LeaderboardSize:     getEnvAsInt("LEADERBOARD_SIZE", 20),

		PracticeDefaultMinutes: getEnvAsInt("PRACTICE_DEFAULT_MINUTES", 15),
		PracticeProblemCount:   getEnvAsInt("PRACTICE_PROBLEM_COUNT", 5),

		SeedOnStartup: getEnvAsBool("SEED_ON_STARTUP", true),

		LogFile:  getEnv("LOG_FILE", "logs/app.log"),
		LogDebug: getEnvAsBool("LOG_DEBUG", false),
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}
