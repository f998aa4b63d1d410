package internal

import (
	"fmt"
	"nutzy-site/infrastructure/pocketbase"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// Config is read from the environment; a .env file in the working directory is loaded first
// and never overrides variables that are already set.
type Config struct {
	PocketBaseURL      string        `env:"POCKETBASE_URL,required=true"`
	PocketBaseUsername string        `env:"POCKETBASE_USERNAME,required=true"`
	PocketBasePassword string        `env:"POCKETBASE_PASSWORD,required=true"`
	PocketBaseAuthPath string        `env:"POCKETBASE_AUTH_PATH,default=/api/admins/auth-with-password"`
	RemoteTimeout      time.Duration `env:"REMOTE_TIMEOUT,default=10s"`
	BlogCollection     string        `env:"BLOG_COLLECTION,default=blog_posts"`
	EventCollection    string        `env:"EVENT_COLLECTION,default=events"`

	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	BadgerFilepath  string        `env:"BADGER_FILEPATH,required=true"`
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL,default=5m"`
	HealthInterval  time.Duration `env:"HEALTH_INTERVAL,default=15s"`
	ClaimTTL        time.Duration `env:"NEWSLETTER_CLAIM_TTL,default=2m"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	TraceStdout     bool          `env:"TRACE_STDOUT,default=false"`

	SiteURL         string `env:"SITE_URL,default=https://nutzy.nl"`
	Host            string `env:"HOST,default=0.0.0.0"`
	Port            int    `env:"PORT,default=8080"`
	SpamTerms       string `env:"SPAM_TERMS"`
	CharReplacement string `env:"CHARACTER_REPLACEMENT,default=*"`
}

// LoadConfig reads .env, if any, then the environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	return config, nil
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c Config) PocketBase() pocketbase.Config {
	return pocketbase.Config{
		BaseURL:  c.PocketBaseURL,
		Identity: c.PocketBaseUsername,
		Password: c.PocketBasePassword,
		AuthPath: c.PocketBaseAuthPath,
		Timeout:  c.RemoteTimeout,
	}
}

// BlockedTerms splits SPAM_TERMS on commas.
func (c Config) BlockedTerms() []string {
	var terms []string
	for _, term := range strings.Split(c.SpamTerms, ",") {
		if term = strings.TrimSpace(term); term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
