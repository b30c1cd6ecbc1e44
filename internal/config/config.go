package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/faizmokh/mood/internal/history"
	"github.com/faizmokh/mood/internal/kv"
	"github.com/faizmokh/mood/internal/moodlog"
)

const (
	// EnvPrefix namespaces environment overrides, e.g. MOOD_BACKEND.
	EnvPrefix = "MOOD"
	// FileName is the config file looked up in the base path and the working
	// directory (config.yaml, config.toml, ...).
	FileName = "config"

	DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"
)

// Config holds runtime settings.
type Config struct {
	Home       string
	Backend    string
	Key        string
	Window     int
	Log        LogConfig
	Newsletter NewsletterConfig
}

// LogConfig controls diagnostics.
type LogConfig struct {
	Level string
	// File is relative to Home and only used by the TUI.
	File string
}

// NewsletterConfig points at the email-dispatch service.
type NewsletterConfig struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
	Timeout    time.Duration
}

// Load reads configuration for the data directory home. Values come from
// defaults, then a config file, then MOOD_* environment variables. A missing
// config file is fine; an unreadable one is an error.
func Load(home string) (Config, error) {
	v := viper.New()
	v.SetDefault("backend", "file")
	v.SetDefault("key", moodlog.DefaultKey)
	v.SetDefault("window", history.DefaultWindow)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "mood.log")
	v.SetDefault("newsletter.endpoint", DefaultEndpoint)
	v.SetDefault("newsletter.timeout", 10*time.Second)

	v.SetConfigName(FileName)
	if home != "" {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Home:    home,
		Backend: strings.ToLower(strings.TrimSpace(v.GetString("backend"))),
		Key:     strings.TrimSpace(v.GetString("key")),
		Window:  v.GetInt("window"),
		Log: LogConfig{
			Level: v.GetString("log.level"),
			File:  v.GetString("log.file"),
		},
		Newsletter: NewsletterConfig{
			Endpoint:   v.GetString("newsletter.endpoint"),
			ServiceID:  v.GetString("newsletter.service_id"),
			TemplateID: v.GetString("newsletter.template_id"),
			PublicKey:  v.GetString("newsletter.public_key"),
			Timeout:    v.GetDuration("newsletter.timeout"),
		},
	}
	if cfg.Key == "" {
		cfg.Key = moodlog.DefaultKey
	}
	if err := kv.ValidateKey(cfg.Key); err != nil {
		return Config{}, fmt.Errorf("config key: %w", err)
	}
	if cfg.Window <= 0 {
		cfg.Window = history.DefaultWindow
	}
	return cfg, nil
}
