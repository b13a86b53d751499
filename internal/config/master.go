package config

type AppConfig struct {
	DebugMode            bool
	HTTPPort             int
	MaxDescriptionLength int
	LLMConfig            *LLMConfig
	JDoodleConfig        *JDoodleConfig
	QuotaConfig          *QuotaConfig
	RedisConfig          *RedisConfig
	PostgresConfig       *PostgresConfig
	NatsConfig           *NatsConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:            getBoolEnv("DEBUG") || getBoolEnv("DEBUG_MODE"),
		HTTPPort:             getPositiveIntEnv("HTTP_PORT", 5000),
		MaxDescriptionLength: getPositiveIntEnv("MAX_DESCRIPTION_LENGTH", 1000),
		LLMConfig:            NewLLMConfig(),
		JDoodleConfig:        NewJDoodleConfig(),
		QuotaConfig:          NewQuotaConfig(),
		RedisConfig:          NewRedisConfig(),
		PostgresConfig:       NewPostgresConfig(),
		NatsConfig:           NewNatsConfig(),
	}
}
