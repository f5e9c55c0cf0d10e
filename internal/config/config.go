package config

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// DatabaseConfig selects the storage backend and tunes its connection pool.
// URL is a postgres connection string or a go-sqlite3 DSN such as file:grindboard.db.
type DatabaseConfig struct {
	Driver                 string `mapstructure:"driver" validate:"required,oneof=sqlite postgres"`
	URL                    string `mapstructure:"url" validate:"required"`
	MaxOpenConns           int    `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=0"`
	AutoMigrate            bool   `mapstructure:"auto_migrate"`
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	// Strategy is "jwt" for signed access/refresh tokens or "opaque" for
	// database-backed session tokens.
	Strategy string `mapstructure:"strategy" validate:"required,oneof=jwt opaque"`
	// JWTSecret signs tokens under the jwt strategy and may be empty otherwise.
	JWTSecret                   string `mapstructure:"jwt_secret" validate:"required_if=Strategy jwt,omitempty,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	// MaxTokensPerUser caps live opaque tokens per user. Issuing a new token
	// evicts the oldest ones beyond the cap.
	MaxTokensPerUser int    `mapstructure:"max_tokens_per_user" validate:"required,gte=1"`
	AutoRegister     bool   `mapstructure:"auto_register"`
	PasswordScheme   string `mapstructure:"password_scheme" validate:"required,oneof=pbkdf2 bcrypt"`
}
