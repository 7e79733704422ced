package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port     string `mapstructure:"PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DBDriver          string        `mapstructure:"DB_DRIVER"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME"`

	MongoURL string `mapstructure:"MONGO_URL"`
	MongoDB  string `mapstructure:"MONGO_DB"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	FCMCredentialsFile string  `mapstructure:"FCM_CREDENTIALS_FILE"`
	FCMCredentialsJSON string  `mapstructure:"FCM_CREDENTIALS_JSON"`
	FCMSendRPS         float64 `mapstructure:"FCM_SEND_RPS"`
	FCMSendBurst       int     `mapstructure:"FCM_SEND_BURST"`

	CloudinaryURL    string `mapstructure:"CLOUDINARY_URL"`
	CloudinaryFolder string `mapstructure:"CLOUDINARY_FOLDER"`

	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`
}

var envKeys = []string{
	"PORT", "ENV", "LOG_LEVEL",
	"DB_DRIVER", "DATABASE_URL", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME",
	"MONGO_URL", "MONGO_DB",
	"JWT_SECRET", "JWT_TTL",
	"FCM_CREDENTIALS_FILE", "FCM_CREDENTIALS_JSON", "FCM_SEND_RPS", "FCM_SEND_BURST",
	"CLOUDINARY_URL", "CLOUDINARY_FOLDER",
	"CORS_ORIGINS",
}

// Load reads .env (if present) and the process environment. Values already
// set in the environment win over .env.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("MONGO_DB", "asha")
	v.SetDefault("JWT_TTL", "168h")
	v.SetDefault("FCM_SEND_RPS", 20)
	v.SetDefault("FCM_SEND_BURST", 40)
	v.SetDefault("CLOUDINARY_FOLDER", "asha_profiles")
	v.SetDefault("CORS_ORIGINS", "*")

	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.CORSOrigins = splitList(strings.Join(cfg.CORSOrigins, ","))

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// ValidateDatabase checks what migrate cannot run without.
func (c *Config) ValidateDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.DBDriver != "postgres" && c.DBDriver != "mysql" {
		return fmt.Errorf("DB_DRIVER must be \"postgres\" or \"mysql\", got %q", c.DBDriver)
	}
	return nil
}

// Validate checks what serve cannot run without.
func (c *Config) Validate() error {
	if err := c.ValidateDatabase(); err != nil {
		return err
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL)
	}
	if c.FCMSendRPS <= 0 || c.FCMSendBurst <= 0 {
		return fmt.Errorf("FCM_SEND_RPS and FCM_SEND_BURST must be positive")
	}
	return nil
}
