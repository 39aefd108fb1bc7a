// internal/config/config.go
package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppConfig
	TwilioConfig
	MongoConfig
	WorkerConfig
}

type AppConfig struct {
	Port     string `envconfig:"APP_PORT" default:"8080"`
	LogLevel string `envconfig:"APP_LOG_LEVEL" default:"info"`
}

type TwilioConfig struct {
	SID   string `envconfig:"TWILIO_SID"`
	Token string `envconfig:"TWILIO_TOKEN"`
	From  string `envconfig:"TWILIO_FROM"` // "+52..." or "whatsapp:+52...", normalized by the gateway
}

type MongoConfig struct {
	MongoURI string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDB  string `envconfig:"MONGO_DB" default:"wasender"`
}

type WorkerConfig struct {
	CronSecret        string  `envconfig:"CRON_SECRET"`                       // shared secret for the schedule trigger endpoint
	BatchSize         int     `envconfig:"WORKER_BATCH_SIZE" default:"25"`    // due schedules claimed per invocation
	ContactLimit      int     `envconfig:"WORKER_CONTACT_LIMIT" default:"50"` // contacts per schedule per invocation
	SendRatePerSecond float64 `envconfig:"SEND_RATE_PER_SECOND" default:"1"`  // gateway pacing inside the contact loop
	FallbackMode      string  `envconfig:"WEBHOOK_FALLBACK_MODE" default:"minimal"`
}

// Load reads configuration from the environment. Callers load .env first if
// they want file-based overrides.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
