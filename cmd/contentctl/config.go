package main

import (
	"fmt"
	"nutzy-site/infrastructure/pocketbase"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config shares its variable names with the server so one .env serves both.
type Config struct {
	PocketBaseURL      string        `envconfig:"POCKETBASE_URL"`
	PocketBaseUsername string        `envconfig:"POCKETBASE_USERNAME"`
	PocketBasePassword string        `envconfig:"POCKETBASE_PASSWORD"`
	PocketBaseAuthPath string        `envconfig:"POCKETBASE_AUTH_PATH" default:"/api/admins/auth-with-password"`
	RemoteTimeout      time.Duration `envconfig:"REMOTE_TIMEOUT" default:"10s"`
	BlogCollection     string        `envconfig:"BLOG_COLLECTION" default:"blog_posts"`
	EventCollection    string        `envconfig:"EVENT_COLLECTION" default:"events"`
	BadgerFilepath     string        `envconfig:"BADGER_FILEPATH"`
	SiteURL            string        `envconfig:"SITE_URL" default:"https://nutzy.nl"`
	LogLevel           string        `envconfig:"LOG_LEVEL" default:"WARN"`
	// CONTENTCTL_COLOURS enables coloured table headers
	Colours bool `envconfig:"CONTENTCTL_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}

func (c Config) PocketBase() (pocketbase.Config, error) {
	if c.PocketBaseURL == "" {
		return pocketbase.Config{}, fmt.Errorf("POCKETBASE_URL is not set")
	}
	return pocketbase.Config{
		BaseURL:  c.PocketBaseURL,
		Identity: c.PocketBaseUsername,
		Password: c.PocketBasePassword,
		AuthPath: c.PocketBaseAuthPath,
		Timeout:  c.RemoteTimeout,
	}, nil
}
