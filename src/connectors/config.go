package connectors

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// NotifyWebhookURL receives a JSON summary whenever a trade is logged
	// through the MT5 webhook. Empty disables notifications.
	NotifyWebhookURL string        `envconfig:"NOTIFY_WEBHOOK_URL" default:""`
	NotifyTimeout    time.Duration `envconfig:"NOTIFY_TIMEOUT" default:"10s"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
