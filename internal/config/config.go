package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/guerrinflorian/lexiflood-backend/internal/game"
)

type Config struct {
	Port           int
	Env            string
	LogLevel       zerolog.Level
	AllowedOrigins []string
	DatabaseURL    string
	DictionaryPath string
	Rules          game.Rules
}

func (c Config) Production() bool {
	return c.Env == "production"
}

// Load reads an optional .env file and then the process environment.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the config from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:           8080,
		Env:            "development",
		LogLevel:       zerolog.InfoLevel,
		AllowedOrigins: []string{"*"},
		DatabaseURL:    strings.TrimSpace(getenv("DATABASE_URL")),
		DictionaryPath: strings.TrimSpace(getenv("DICTIONARY_PATH")),
		Rules:          game.DefaultRules(),
	}
	var errs []error

	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			errs = append(errs, fmt.Errorf("PORT: invalid port %q", v))
		} else {
			cfg.Port = port
		}
	}
	if v := getenv("APP_ENV"); v != "" {
		cfg.Env = strings.ToLower(v)
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		level, err := zerolog.ParseLevel(strings.ToLower(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
		} else {
			cfg.LogLevel = level
		}
	}
	if v := getenv("ALLOWED_ORIGINS"); v != "" {
		origins := make([]string, 0)
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
		cfg.AllowedOrigins = origins
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"ROUND_DURATION", &cfg.Rules.RoundDuration},
		{"LETTER_INTERVAL", &cfg.Rules.LetterInterval},
		{"INTERMISSION_DURATION", &cfg.Rules.Intermission},
		{"START_GRACE", &cfg.Rules.StartGrace},
		{"ABANDON_AFTER", &cfg.Rules.AbandonAfter},
	}
	for _, d := range durations {
		v := getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil || parsed < 0 {
			errs = append(errs, fmt.Errorf("%s: invalid duration %q", d.key, v))
			continue
		}
		*d.dst = parsed
	}
	if cfg.Rules.LetterInterval <= 0 {
		errs = append(errs, errors.New("LETTER_INTERVAL: must be positive"))
	}

	if v := getenv("INITIAL_LETTERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errs = append(errs, fmt.Errorf("INITIAL_LETTERS: invalid count %q", v))
		} else {
			cfg.Rules.InitialLetters = n
		}
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}
