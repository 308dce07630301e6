// Package config loads and validates beankit application configuration.
//
// LoadConfig uses Viper to read config.yml from the standard locations
// (cmd/<service>/, config/, the working directory), loads a .env file with
// godotenv and lets environment variables override file values:
//
//	SESSION_TIMEOUT=10m    -> session.timeout
//	ADMIN_ENABLED=true     -> admin.enabled
//
// Validation uses go-playground/validator struct tags and reports every
// failed field in one INVALID_CONFIG error.
//
//	cfg, err := config.Load("orders")
package config
