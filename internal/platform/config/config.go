package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort     string
	JWTKey      []byte
	JWTExp      time.Duration
	FrontendURL string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	Judge JudgeConfig

	PasswordResetTTL time.Duration
	LeaderboardLimit int
	ActivityDays     int

	LogLevel  string
	LogFormat string
}

// JudgeConfig holds the credentials and endpoint of the external judge.
type JudgeConfig struct {
	BaseURL string
	APIKey  string
	Host    string
	Timeout time.Duration
}

// Load reads an optional .env file and then the process environment. It
// reports whether a .env file was found so the caller can log it.
func Load() (*Config, bool) {
	envFileLoaded := godotenv.Load() == nil

	judgeHost := getEnv("JUDGE0_HOST", "judge0-ce.p.rapidapi.com")
	cfg := &Config{
		APIPort:     getEnv("API_PORT", "5000"),
		JWTKey:      []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp:      time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 72)) * time.Hour,
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "user"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "codearena"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		Judge: JudgeConfig{
			BaseURL: getEnv("JUDGE0_BASE_URL", "https://"+judgeHost),
			APIKey:  getEnv("JUDGE0_API_KEY", ""),
			Host:    judgeHost,
			Timeout: time.Duration(getEnvAsInt("JUDGE_TIMEOUT_SECONDS", 30)) * time.Second,
		},

		PasswordResetTTL: time.Duration(getEnvAsInt("PASSWORD_RESET_TTL_MINUTES", 30)) * time.Minute,
		LeaderboardLimit: getEnvAsInt("LEADERBOARD_LIMIT", 100),
		ActivityDays:     getEnvAsInt("DASHBOARD_ACTIVITY_DAYS", 30),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	cfg.DBConnStr = "host=" + cfg.DBHost +
		" port=" + cfg.DBPort +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" sslmode=" + cfg.DBSslMode

	return cfg, envFileLoaded
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
