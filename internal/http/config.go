package http

import (
	"time"
)

type Config struct {
	Address string        `envconfig:"HTTP_ADDRESS" default:"localhost:8080"`
	Timeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
}

type AuthConfig struct {
	// Secret signs session tokens. The default only suits local runs.
	Secret   string        `envconfig:"AUTH_SECRET" default:"insecure-local-secret"`
	TokenTTL time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"30m"`
}
