package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/agalitsyn/flagutils"
	"github.com/agalitsyn/secret"

	"github.com/agalitsyn/todo-weather/internal/errlog"
	"github.com/agalitsyn/todo-weather/internal/weather"
	"github.com/agalitsyn/todo-weather/version"
)

const EnvPrefix = "TODO_APP"

type Config struct {
	Debug   bool
	NoColor bool

	Log struct {
		Level string
	}

	DBPath       string
	ErrorLogPath string

	Weather struct {
		BaseURL string
		APIKey  secret.String
		Units   string
	}
}

func (c Config) String() string {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stdout, err)
		os.Exit(0)
	}
	return string(b)
}

func (c Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info":
	default:
		return fmt.Errorf("unknown log level %q, want debug or info", c.Log.Level)
	}
	if c.Weather.APIKey.Unmask() == "" {
		return errors.New("weather api key is required, set -weather-api-key or " + EnvPrefix + "_WEATHER_API_KEY")
	}
	if !weather.ValidUnits(c.Weather.Units) {
		return fmt.Errorf("unknown weather units %q, want metric, imperial or standard", c.Weather.Units)
	}
	return nil
}

// fileConfig is the optional TOML config file.
type fileConfig struct {
	LogLevel string `toml:"log_level"`
	DB       string `toml:"db"`
	ErrorLog string `toml:"error_log"`
	NoColor  bool   `toml:"no_color"`

	Weather struct {
		APIKey  string `toml:"api_key"`
		BaseURL string `toml:"base_url"`
		Units   string `toml:"units"`
	} `toml:"weather"`
}

func ParseFlags() Config {
	var cfg Config

	printVersion := flag.Bool("version", false, "Show version.")
	configPath := flag.String("config", "todo.toml", "Path to optional TOML config file.")
	logLevel := flag.String("log-level", "info", "Log level (debug | info).")
	noColor := flag.Bool("no-color", false, "Disable colored output.")
	dbPath := flag.String("db", "todoapp.db", "Path to sqlite database file.")
	errorLogPath := flag.String("error-log", errlog.DefaultPath, "Path to error log file.")
	apiKey := flag.String("weather-api-key", "", "OpenWeatherMap API key.")
	baseURL := flag.String("weather-base-url", weather.DefaultBaseURL, "OpenWeatherMap current weather endpoint.")
	units := flag.String("weather-units", weather.UnitsMetric, "Weather units (metric | imperial | standard).")

	flagutils.Prefix = EnvPrefix
	flagutils.Parse()
	flag.Parse()

	if *printVersion {
		fmt.Fprintln(os.Stdout, version.String())
		os.Exit(0)
	}

	cfg.Log.Level = *logLevel
	cfg.NoColor = *noColor
	cfg.DBPath = *dbPath
	cfg.ErrorLogPath = *errorLogPath
	cfg.Weather.APIKey = secret.NewString(*apiKey)
	cfg.Weather.BaseURL = *baseURL
	cfg.Weather.Units = *units

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})
	if err := applyConfigFile(&cfg, *configPath, explicit); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg.Debug = cfg.Log.Level == "debug"
	return cfg
}

// applyConfigFile fills cfg from the TOML file at path. Values given as flags
// or environment variables are kept. A missing file is not an error.
func applyConfigFile(cfg *Config, path string, explicit map[string]bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("could not read config file: %w", err)
	}

	var fc fileConfig
	if _, err := toml.Decode(string(data), &fc); err != nil {
		return fmt.Errorf("could not parse config file %s: %w", path, err)
	}

	set := func(flagName, value string, dst *string) {
		if value != "" && !explicit[flagName] {
			*dst = value
		}
	}
	set("log-level", fc.LogLevel, &cfg.Log.Level)
	set("db", fc.DB, &cfg.DBPath)
	set("error-log", fc.ErrorLog, &cfg.ErrorLogPath)
	set("weather-base-url", fc.Weather.BaseURL, &cfg.Weather.BaseURL)
	set("weather-units", fc.Weather.Units, &cfg.Weather.Units)

	if fc.Weather.APIKey != "" && !explicit["weather-api-key"] {
		cfg.Weather.APIKey = secret.NewString(fc.Weather.APIKey)
	}
	if fc.NoColor && !explicit["no-color"] {
		cfg.NoColor = true
	}
	return nil
}
