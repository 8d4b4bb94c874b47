// internal/config/config.go
package config

import (
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries everything the binaries need from the environment. A .env
// file is honored when present so local runs don't need exported variables.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"` // text|json
	AppBaseURL  string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	CompanyName string `env:"COMPANY_NAME" envDefault:"Quartzline Trading"`

	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD,required"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBName     string `env:"DB_NAME,required"`

	// Empty Postmark token selects the dev sender, which logs instead of
	// delivering. Deliberate so local environments can never send mail.
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"no-reply@example.com"`
	ReplyToEmail         string `env:"REPLY_TO_EMAIL" envDefault:"sales@example.com"`

	AMQPURL           string `env:"AMQP_URL"`
	DispatchBatchSize int    `env:"DISPATCH_BATCH_SIZE" envDefault:"10"`
}

var (
	loadOnce sync.Once
	loaded   Config
	loadErr  error
)

// Load parses the environment once and caches the result for the process
// lifetime.
func Load() (Config, error) {
	loadOnce.Do(func() {
		// Missing .env is fine; OS environment still applies.
		_ = godotenv.Load()
		loadErr = env.Parse(&loaded)
		if loadErr != nil {
			loadErr = fmt.Errorf("parse environment: %w", loadErr)
		}
	})
	return loaded, loadErr
}

// DSN builds the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
