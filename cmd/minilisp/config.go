package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/cbarrick/minilisp/lang/eval"
)

// Config holds the driver's ambient settings (SPEC_FULL.md §6): the
// prompt string, the evaluator's recursion-depth cap, and the logger's
// level/format. None of this is part of the language itself — it
// configures cmd/minilisp only.
type Config struct {
	Prompt    string `yaml:"prompt"`
	MaxDepth  int    `yaml:"max_depth"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func defaultConfig() Config {
	return Config{
		Prompt:    ">>> ",
		MaxDepth:  eval.DefaultMaxDepth,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// loadConfig resolves settings with precedence environment variable, then
// config file, then built-in default (SPEC_FULL.md §6). The config file
// path comes from $MINILISP_CONFIG, defaulting to .minilisp.yaml in the
// working directory; its absence is not an error.
func loadConfig() (Config, error) {
	cfg := defaultConfig()

	path := os.Getenv("MINILISP_CONFIG")
	if path == "" {
		path = ".minilisp.yaml"
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if v, ok := os.LookupEnv("MINILISP_PROMPT"); ok {
		cfg.Prompt = v
	}
	if v, ok := os.LookupEnv("MINILISP_MAX_DEPTH"); ok {
		n, err := cast.ToIntE(v)
		if err != nil {
			return cfg, err
		}
		cfg.MaxDepth = n
	}
	if v, ok := os.LookupEnv("MINILISP_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}

	return cfg, nil
}

// newLogger builds a logrus.Logger per cfg, defaulting to text output and
// info level on any unrecognized setting rather than failing startup.
func newLogger(cfg Config) *logrus.Logger {
	logger := logrus.New()

	if cfg.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
