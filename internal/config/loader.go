package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/BulkSecurityGeneratorProject/parking-api/internal/db"
)

// Config aggregates every tunable of the server.
type Config struct {
	ServerPort     int
	Database       db.Config
	JWTSecret      string
	TokenValidity  time.Duration
	AllowedOrigins []string
	MigrationsPath string
}

// Default returns the configuration used when no config file or environment
// overrides are present.
func Default() Config {
	return Config{
		ServerPort:     8080,
		Database:       db.DefaultConfig(),
		JWTSecret:      "change-me-in-production",
		TokenValidity:  24 * time.Hour,
		AllowedOrigins: []string{"http://localhost:3000"},
		MigrationsPath: "./migrations",
	}
}

// Load reads config.yaml from configPath and applies environment overrides
// with the PARKING prefix, e.g. PARKING_DATABASE_HOST.
func Load(configPath string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("PARKING")

	v.BindEnv("server.port")
	v.BindEnv("database.host")
	v.BindEnv("database.port")
	v.BindEnv("database.user")
	v.BindEnv("database.password")
	v.BindEnv("database.dbname")
	v.BindEnv("database.sslmode")
	v.BindEnv("security.jwt_secret")
	v.BindEnv("security.token_validity")
	v.BindEnv("migrations.path")

	if err := v.ReadInConfig(); err != nil {
		// Config file not found? Just log it, use defaults + env
		fmt.Println("No config.yaml found, using defaults and env vars")
	} else {
		fmt.Println("Loaded config.yaml")
	}

	if v.IsSet("server.port") {
		cfg.ServerPort = v.GetInt("server.port")
	}
	if v.IsSet("database.host") {
		cfg.Database.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		cfg.Database.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		cfg.Database.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		cfg.Database.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		cfg.Database.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		cfg.Database.SSLMode = v.GetString("database.sslmode")
	}
	if v.IsSet("security.jwt_secret") {
		cfg.JWTSecret = v.GetString("security.jwt_secret")
	}
	if v.IsSet("security.token_validity") {
		cfg.TokenValidity = v.GetDuration("security.token_validity")
	}
	if v.IsSet("cors.allowed_origins") {
		cfg.AllowedOrigins = v.GetStringSlice("cors.allowed_origins")
	}
	if v.IsSet("migrations.path") {
		cfg.MigrationsPath = v.GetString("migrations.path")
	}

	return cfg, nil
}
