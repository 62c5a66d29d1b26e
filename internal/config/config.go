package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio. Las credenciales son
// las capturadas del tráfico del cliente móvil (el login interactivo queda
// fuera de alcance).
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	HingeBaseURL string `env:"HINGE_BASE_URL" envDefault:"https://prod-api.hingeaws.net"`
	MediaBaseURL string `env:"MEDIA_BASE_URL" envDefault:"https://media.hingenexus.com"`
	AppVersion   string `env:"APP_VERSION" envDefault:"9.105.0"`

	BearerToken string `env:"BEARER_TOKEN,required"`
	SessionID   string `env:"SESSION_ID"`
	UserID      string `env:"USER_ID,required"`
	DeviceID    string `env:"DEVICE_ID"`
	InstallID   string `env:"INSTALL_ID"`

	// Filtros del feed de recomendaciones del cliente móvil.
	FeedActiveToday bool `env:"FEED_ACTIVE_TODAY" envDefault:"false"`
	FeedNewHere     bool `env:"FEED_NEW_HERE" envDefault:"false"`

	// Sink de persistencia: archivo JSON local por defecto; con
	// DATABASE_URL seteado se usa Postgres.
	StorePath   string `env:"STORE_PATH" envDefault:"saved_profiles.json"`
	DatabaseURL string `env:"DATABASE_URL"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
