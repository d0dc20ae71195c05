package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	S3          S3Config          `mapstructure:"s3"`
	JWT         JWTConfig         `mapstructure:"jwt"`
	Spoonacular SpoonacularConfig `mapstructure:"spoonacular"`
	Cognito     CognitoConfig     `mapstructure:"cognito"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Admin       AdminConfig       `mapstructure:"admin"`
}

type ServerConfig struct {
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// JWTConfig defines JWT specific configuration.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// SpoonacularConfig points the meal-plan pipeline at the upstream recipe
// service.
type SpoonacularConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	APIKey         string        `mapstructure:"api_key"`
	ImageBaseURL   string        `mapstructure:"image_base_url"`
	DetailCacheTTL time.Duration `mapstructure:"detail_cache_ttl"`
}

// CognitoConfig configures the identity-provider admin client.
type CognitoConfig struct {
	Region          string `mapstructure:"region"`
	UserPoolID      string `mapstructure:"user_pool_id"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

// CacheConfig selects the key-value cache backend.
type CacheConfig struct {
	Backend       string `mapstructure:"backend"` // "memory" or "redis"
	RedisAddress  string `mapstructure:"redis_address"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
}

// AdminConfig is deployment configuration, not logic: accounts registering
// with one of these emails are seeded into the admin group. Authorization
// itself is always the group claim.
type AdminConfig struct {
	SeedEmails []string `mapstructure:"seed_emails"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Environment variable handling: server.address -> SERVER_ADDRESS etc.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	// Defaults
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "pulsefit")
	viper.SetDefault("s3.use_ssl", true)
	viper.SetDefault("jwt.expiration", "1h")
	viper.SetDefault("spoonacular.base_url", "https://api.spoonacular.com")
	viper.SetDefault("spoonacular.image_base_url", "https://spoonacular.com/recipeImages/")
	viper.SetDefault("spoonacular.detail_cache_ttl", "15m")
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.redis_address", "localhost:6379")

	err = viper.ReadInConfig()
	// Config file is optional; env vars and defaults may be enough.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
