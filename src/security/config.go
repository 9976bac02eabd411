package security

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// WebhookToken is the shared secret the MT5 Expert Advisor sends with
	// every alert. Empty disables the webhook endpoint.
	WebhookToken string `envconfig:"MT5_WEBHOOK_TOKEN" default:""`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
