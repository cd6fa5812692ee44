package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Port        string     `mapstructure:"PORT" validate:"required"`
	StoreDriver string     `mapstructure:"STORE_DRIVER" validate:"required,oneof=postgres memory"`
	Db          DbConfig   `mapstructure:",squash" validate:"-"`
	Nats        NatsConfig `mapstructure:",squash"`
	Jwt         JwtConfig  `mapstructure:",squash"`
}

type DbConfig struct {
	Host     string `mapstructure:"DB_HOST" validate:"required"`
	Port     string `mapstructure:"DB_PORT" validate:"required"`
	Username string `mapstructure:"DB_USERNAME" validate:"required"`
	Password string `mapstructure:"DB_PASSWORD" validate:"required"`
	DbName   string `mapstructure:"DB_DBNAME" validate:"required"`
	SSLMode  string `mapstructure:"DB_SSLMODE"`
}

// NatsConfig leaves Url empty to run without a broker; stock changes are then only logged.
type NatsConfig struct {
	Url            string        `mapstructure:"NATS_URL"`
	StreamName     string        `mapstructure:"NATS_STREAM" validate:"required"`
	PublishTimeout time.Duration `mapstructure:"NATS_PUBLISH_TIMEOUT" validate:"gt=0"`
}

// Subject is where stock changes are published, e.g. "inventory.updates".
func (c NatsConfig) Subject() string {
	return fmt.Sprintf("%s.updates", strings.ToLower(c.StreamName))
}

// JwtConfig enables bearer auth on write routes when SecretKey is set.
type JwtConfig struct {
	SecretKey string `mapstructure:"JWT_SECRETKEY"`
}

func InitConfig(ctx context.Context) (*Config, error) {
	var cfg Config

	viper.Reset()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetConfigType("env")

	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}

	_, err := os.Stat(envFile)
	if !os.IsNotExist(err) {
		viper.SetConfigFile(envFile)

		if err := viper.ReadInConfig(); err != nil {
			slog.WarnContext(ctx, "[InitConfig] ReadInConfig warning, continuing with env vars only", "error", err)
		} else {
			slog.InfoContext(ctx, "[InitConfig] Successfully loaded config file", "file", envFile)
		}
	} else {
		slog.InfoContext(ctx, "[InitConfig] No config file found, using environment variables")
	}

	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("NATS_STREAM", "inventory")
	viper.SetDefault("NATS_PUBLISH_TIMEOUT", "2s")

	envVars := []string{
		"PORT",
		"STORE_DRIVER",
		"DB_HOST",
		"DB_PORT",
		"DB_USERNAME",
		"DB_PASSWORD",
		"DB_DBNAME",
		"DB_SSLMODE",
		"NATS_URL",
		"NATS_STREAM",
		"NATS_PUBLISH_TIMEOUT",
		"JWT_SECRETKEY",
	}

	// Unmarshal only sees keys viper knows about
	for _, key := range envVars {
		viper.BindEnv(key)
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		slog.ErrorContext(ctx, "[InitConfig] Unmarshal", "failed bind config", err)
		return nil, err
	}

	slog.InfoContext(ctx, "[InitConfig] Configuration after binding",
		"PORT", cfg.Port,
		"STORE_DRIVER", cfg.StoreDriver,
		"DB_HOST", cfg.Db.Host,
		"DB_PORT", cfg.Db.Port,
		"DB_USERNAME", cfg.Db.Username,
		"DB_DBNAME", cfg.Db.DbName,
		"DB_SSLMODE", cfg.Db.SSLMode,
		"NATS_URL", cfg.Nats.Url,
		"NATS_STREAM", cfg.Nats.StreamName,
		"JWT_ENABLED", cfg.Jwt.SecretKey != "")

	validate := validator.New()
	if err := validateStruct(ctx, validate, cfg); err != nil {
		return nil, err
	}

	if cfg.StoreDriver == StoreDriverPostgres {
		if err := validateStruct(ctx, validate, cfg.Db); err != nil {
			return nil, err
		}
	}

	slog.InfoContext(ctx, "[InitConfig] Config loaded successfully")
	return &cfg, nil
}

func validateStruct(ctx context.Context, validate *validator.Validate, s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if ok {
		for _, validationErr := range validationErrs {
			slog.ErrorContext(ctx, "[InitConfig] Validation error",
				"field", validationErr.Field(),
				"namespace", validationErr.Namespace(),
				"tag", validationErr.Tag(),
				"value", validationErr.Value())
		}
	} else {
		slog.ErrorContext(ctx, "[InitConfig] Validation", "error", err)
	}
	return err
}
