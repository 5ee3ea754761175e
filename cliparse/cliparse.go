package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// Supported database types
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	AdminKeySalt   string
	SlugSalt       string
	MaxPreferences int
	TieBreakSeed   int64 // 0 = fresh random seed per run
	EnvFile        string
}

// ParseFlags builds a Config from CLI flags, then environment variables,
// then the env file, then defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("quickly-group", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")
	fs.StringVar(&cfg.SlugSalt, "slug-salt", "", "Share slug salt (prefer env)")

	// Allocation
	fs.IntVar(&cfg.MaxPreferences, "max-prefs", 0, "Default preference list cap for new cohorts")
	fs.Int64Var(&cfg.TieBreakSeed, "seed", 0, "Fixed tie-break seed (0 = random per run)")

	fs.StringVar(&cfg.EnvFile, "env-file", "", "Path to a .env file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	env, err := loadEnvFile(cfg.EnvFile)
	if err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := env.get("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = env.get("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = env.get("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.MaxPreferences == 0 {
		if s := env.get("MAX_PREFERENCES"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 {
				return Config{}, errors.New("invalid MAX_PREFERENCES env variable")
			}
			cfg.MaxPreferences = n
		} else {
			cfg.MaxPreferences = 3
		}
	}
	if cfg.MaxPreferences < 1 {
		return Config{}, errors.New("max preferences must be at least 1")
	}

	if cfg.TieBreakSeed == 0 {
		if s := env.get("TIE_BREAK_SEED"); s != "" {
			seed, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return Config{}, errors.New("invalid TIE_BREAK_SEED env variable")
			}
			cfg.TieBreakSeed = seed
		}
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = env.get("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	if cfg.SlugSalt == "" {
		cfg.SlugSalt = env.get("SLUG_SALT")
	}
	if cfg.SlugSalt == "" {
		return Config{}, errors.New("SLUG_SALT required")
	}

	return cfg, nil
}

// envSource reads the process environment first, then the env file
type envSource map[string]string

func (e envSource) get(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return e[key]
}

// loadEnvFile reads path, or .env when path is empty. A missing default
// file is not an error.
func loadEnvFile(path string) (envSource, error) {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return envSource{}, nil
		}
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return envSource(values), nil
}
