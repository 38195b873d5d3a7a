package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL                 string `mapstructure:"DATABASE_URL"`
	JWTSecret                   string `mapstructure:"JWT_SECRET"`
	ChatRateLimit               int    `mapstructure:"CHAT_RATE_LIMIT"`
	ChatRateWindowSeconds       int    `mapstructure:"CHAT_RATE_WINDOW_SECONDS"`
	PresenceOnlineWindowSeconds int    `mapstructure:"PRESENCE_ONLINE_WINDOW_SECONDS"`
}

var AppConfig *Config

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.SetDefault("CHAT_RATE_LIMIT", 10)
	viper.SetDefault("CHAT_RATE_WINDOW_SECONDS", 10)
	viper.SetDefault("PRESENCE_ONLINE_WINDOW_SECONDS", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
