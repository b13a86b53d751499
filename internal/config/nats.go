package config

type NatsConfig struct {
	Url     string
	Subject string
}

func NewNatsConfig() *NatsConfig {
	return &NatsConfig{
		Url:     getEnv("NATS_URL", ""),
		Subject: getEnv("NATS_SUBJECT", "algotutor.solve.completed"),
	}
}

func (c *NatsConfig) Enabled() bool {
	return c.Url != ""
}
