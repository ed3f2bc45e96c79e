package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort    int    `mapstructure:"http_port"`
	LogLevel    string `mapstructure:"log_level"`
	DatabaseURL string `mapstructure:"database_url"`
	JwtSecret   string `mapstructure:"jwt_secret"`

	// TMDb settings for the catalog backfill. These are read once here
	// and handed to the tmdb client as an explicit config struct.
	TmdbBaseURL      string `mapstructure:"tmdb_base_url"`
	TmdbAccessToken  string `mapstructure:"tmdb_access_token"`
	TmdbImageBaseURL string `mapstructure:"tmdb_image_base_url"`
	TmdbPageLimit    int    `mapstructure:"tmdb_page_limit"`
}

var AppConfig Config

func InitConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variable overrides
	viper.SetEnvPrefix("MOVIESAPP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("http_port", 8080)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("jwt_secret", "default-very-insecure-secret-key") // CHANGE THIS IN PRODUCTION
	viper.SetDefault("tmdb_base_url", "https://api.themoviedb.org/3")
	viper.SetDefault("tmdb_image_base_url", "https://image.tmdb.org/t/p/w500")
	viper.SetDefault("tmdb_page_limit", 5)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Println("Config file not found, using defaults and environment variables.")
		} else {
			panic(fmt.Errorf("fatal error reading config file: %w", err))
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		panic(fmt.Errorf("unable to decode config into struct: %w", err))
	}
}
