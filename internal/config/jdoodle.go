package config

import (
	"os"
	"time"
)

type JDoodleConfig struct {
	ClientID     string
	ClientSecret string
	URL          string
	Timeout      time.Duration
}

func NewJDoodleConfig() *JDoodleConfig {
	return &JDoodleConfig{
		ClientID:     os.Getenv("JDOODLE_CLIENT_ID"),
		ClientSecret: os.Getenv("JDOODLE_CLIENT_SECRET"),
		URL:          getEnv("JDOODLE_URL", "https://api.jdoodle.com/v1/execute"),
		Timeout:      getSecondsEnv("JDOODLE_TIMEOUT_SEC", 15),
	}
}

func (c *JDoodleConfig) HasCredentials() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}
