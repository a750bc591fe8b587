package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taskboardhq/taskboard-api/shared/mailer"
)

// Config holds every process-level setting. It is parsed once in main and
// passed down to constructors; nothing reads the environment after startup.
type Config struct {
	Environment string   `env:"APP_ENV" envDefault:"development"`
	Port        int      `env:"PORT" envDefault:"8000"`
	FrontendURL string   `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	Mongo MongoConfig
	Token TokenConfig
	SMTP  mailer.Config
}

// MongoConfig holds the document-store connection settings.
type MongoConfig struct {
	URI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	Database string `env:"MONGO_DATABASE" envDefault:"taskboard"`
}

// TokenConfig holds identity-token signing settings.
type TokenConfig struct {
	Secret    string        `env:"JWT_SECRET,required"`
	ExpiresIn time.Duration `env:"JWT_EXPIRES_IN" envDefault:"168h"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// IsDevelopment reports whether the process runs in development mode.
// Error responses include internal detail only in this mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
