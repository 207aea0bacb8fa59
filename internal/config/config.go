package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Mongo
		Auth
		Logging
	}

	HTTP struct {
		Port    int32
		Host    string
		GinMode string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver string // sqlite or mongo
		Path   string
	}
	Mongo struct {
		URI            string
		Database       string
		ConnectTimeout time.Duration
	}
	Auth struct {
		JWTSecret   string
		TokenExpiry time.Duration
		BcryptCost  int
	}
	Logging struct {
		Level  string
		Format string // text or json
	}
)

// LoadEnvFile exports the variables in path into the process environment.
// Variables that are already set win, and a missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("shutdown_timeout_in_seconds", 5)

	v.SetDefault("database_driver", DriverSQLite)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("mongo_database", "library")
	v.SetDefault("mongo_connect_timeout", "10s")

	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_expiry", "24h")
	v.SetDefault("bcrypt_cost", bcrypt.DefaultCost)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	return &Config{
		HTTP: HTTP{
			Port:    v.GetInt32("PORT"),
			Host:    v.GetString("HOST"),
			GinMode: v.GetString("GIN_MODE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver: v.GetString("DATABASE_DRIVER"),
			Path:   v.GetString("DATABASE_PATH"),
		},
		Mongo: Mongo{
			URI:            v.GetString("MONGO_URI"),
			Database:       v.GetString("MONGO_DATABASE"),
			ConnectTimeout: v.GetDuration("MONGO_CONNECT_TIMEOUT"),
		},
		Auth: Auth{
			JWTSecret:   v.GetString("JWT_SECRET"),
			TokenExpiry: v.GetDuration("JWT_EXPIRY"),
			BcryptCost:  v.GetInt("BCRYPT_COST"),
		},
		Logging: Logging{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must be set"))
	}
	if c.Auth.TokenExpiry <= 0 {
		errs = append(errs, fmt.Errorf("JWT_EXPIRY must be positive, got %s", c.Auth.TokenExpiry))
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost))
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.HTTP.Port))
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			errs = append(errs, errors.New("DATABASE_PATH must be set for the sqlite driver"))
		}
	case DriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			errs = append(errs, errors.New("MONGO_URI and MONGO_DATABASE must be set for the mongo driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DATABASE_DRIVER %q (expected %s or %s)", c.Database.Driver, DriverSQLite, DriverMongo))
	}

	return errors.Join(errs...)
}
