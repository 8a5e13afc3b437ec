package utils

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Mongo      MongoConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Pagination PaginationConfig
	RateLimit  RateLimitConfig
	CORS       CORSConfig
	Admin      AdminConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type MongoConfig struct {
	URI            string
	Database       string
	TimeoutSeconds int
	Transactions   bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type PaginationConfig struct {
	DefaultLimit int
	MaxLimit     int
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// AdminConfig describes the account created at startup when it does not exist yet.
type AdminConfig struct {
	Username string
	Password string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "eventmate")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "eventmate")
	viper.SetDefault("MONGO_TIMEOUT_SECONDS", 10)
	viper.SetDefault("MONGO_TRANSACTIONS", false)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("JWT_EXPIRY_HOURS", 2)
	viper.SetDefault("PAGINATION_DEFAULT_LIMIT", 10)
	viper.SetDefault("PAGINATION_MAX_LIMIT", 100)
	viper.SetDefault("RATE_LIMIT_RPS", 5)
	viper.SetDefault("RATE_LIMIT_BURST", 10)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	// .env is optional in containers where everything comes from the environment
	if err := viper.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Mongo: MongoConfig{
			URI:            viper.GetString("MONGO_URI"),
			Database:       viper.GetString("MONGO_DB"),
			TimeoutSeconds: viper.GetInt("MONGO_TIMEOUT_SECONDS"),
			Transactions:   viper.GetBool("MONGO_TRANSACTIONS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Pagination: PaginationConfig{
			DefaultLimit: viper.GetInt("PAGINATION_DEFAULT_LIMIT"),
			MaxLimit:     viper.GetInt("PAGINATION_MAX_LIMIT"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Admin: AdminConfig{
			Username: viper.GetString("ADMIN_USERNAME"),
			Password: viper.GetString("ADMIN_PASSWORD"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
