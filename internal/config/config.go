// config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DefaultMongoURI    = "mongodb://127.0.0.1:27017/ewaste"
	DefaultMongoDBName = "ewaste"
)

type Config struct {
	APIURL      string        `envconfig:"ADMIN_API_URL" default:"http://localhost:3000"`
	SessionFile string        `envconfig:"ADMIN_SESSION_FILE"`
	HTTPTimeout time.Duration `envconfig:"ADMIN_HTTP_TIMEOUT" default:"0s"`

	MongoURI    string `envconfig:"MONGODB_URI" default:"mongodb://127.0.0.1:27017/ewaste"`
	MongoDBName string `envconfig:"MONGO_DB_NAME"`

	RabbitURL      string `envconfig:"RABBIT_URL"`
	EventsExchange string `envconfig:"USER_EVENTS_EXCHANGE" default:"user_events"`

	FakeBackendPort string `envconfig:"FAKE_BACKEND_PORT" default:"3000"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads an optional .env file from the working directory and then the
// process environment. Values already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if cfg.SessionFile == "" {
		cfg.SessionFile = defaultSessionFile()
	}
	if cfg.MongoDBName == "" {
		cfg.MongoDBName = databaseFromURI(cfg.MongoURI)
	}
	return &cfg, nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".ewaste-admin", "session.json")
	}
	return filepath.Join(home, ".ewaste-admin", "session.json")
}

// databaseFromURI extracts the path segment of a mongodb:// URI, which the
// marketplace uses to select its database.
func databaseFromURI(uri string) string {
	rest := uri
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+3:]
	}
	i := strings.Index(rest, "/")
	if i < 0 {
		return DefaultMongoDBName
	}
	name := rest[i+1:]
	if j := strings.IndexAny(name, "?#"); j >= 0 {
		name = name[:j]
	}
	if name == "" {
		return DefaultMongoDBName
	}
	return name
}
