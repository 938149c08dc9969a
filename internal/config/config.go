package config

import (
	"crypto/rand"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	pkgcfg "github.com/Skotchmaster/magazin/pkg/config"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env         string
	ServiceName string
	ServerPort  int
	LogLevel    string

	DatabaseURL string
	SeedDemo    bool

	SessionSecret []byte
	SessionMaxAge time.Duration
	SessionSecure bool

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	// GeneratedSecret is set when SessionSecret was generated at startup.
	GeneratedSecret bool
}

func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// LoadDotEnv loads path into the environment when it exists. Variables
// already set win.
func LoadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load %s: %v", path, err)
	}
}

func Load() (Config, error) {
	cfg := Config{
		Env:         pkgcfg.EnvDefault("APP_ENV", EnvDevelopment),
		ServiceName: pkgcfg.EnvDefault("SERVICE_NAME", "magazin"),
		ServerPort:  pkgcfg.EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    pkgcfg.EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: pkgcfg.EnvDefault("DATABASE_URL", "magazin.db"),
		SeedDemo:    pkgcfg.EnvBoolDefault("SEED_DEMO", false),

		SessionSecret: []byte(os.Getenv("SESSION_SECRET")),
		SessionMaxAge: pkgcfg.EnvDurationDefault("SESSION_MAX_AGE", 30*24*time.Hour),
		SessionSecure: pkgcfg.EnvBoolDefault("SESSION_SECURE", false),

		KafkaBrokers: pkgcfg.CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    pkgcfg.EnvDefault("ES_INDEX", "products"),
	}

	if cfg.Env != EnvDevelopment && cfg.Env != EnvProduction {
		return Config{}, fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, cfg.Env)
	}

	if len(cfg.SessionSecret) == 0 {
		if cfg.IsProduction() {
			return Config{}, pkgcfg.NonEmptyBytes(cfg.SessionSecret, "SESSION_SECRET")
		}
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return Config{}, fmt.Errorf("generate session secret: %w", err)
		}
		cfg.SessionSecret = secret
		cfg.GeneratedSecret = true
	}

	if cfg.IsProduction() && len(cfg.SessionSecret) < 32 {
		return Config{}, fmt.Errorf("SESSION_SECRET must be at least 32 bytes in production")
	}

	if err := pkgcfg.NonEmpty(cfg.DatabaseURL, "DATABASE_URL"); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
