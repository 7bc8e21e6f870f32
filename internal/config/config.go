package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Agents   AgentsConfig   `mapstructure:"agents" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AgentsConfig holds the base URLs of the external stage agent services the
// orchestrator drives. Every pipeline stage is a separate service.
type AgentsConfig struct {
	DiscoveryURL  string `mapstructure:"discovery_url" validate:"required,url"`
	ContentURL    string `mapstructure:"content_url" validate:"required,url"`
	AvatarURL     string `mapstructure:"avatar_url" validate:"required,url"`
	ProductionURL string `mapstructure:"production_url" validate:"required,url"`
	PublisherURL  string `mapstructure:"publisher_url" validate:"required,url"`
}
