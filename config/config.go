package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server     Server
	Database   Database
	Cloudinary Cloudinary
	Sweep      Sweep
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Cloudinary struct {
	URL    string
	Folder string
}

// Sweep controls the background expiry job. Disabled by default: expiry is
// detected lazily at submit time, the sweep only closes the
// candidate-never-submits hole.
type Sweep struct {
	Enabled bool
	Cron    string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("CLOUDINARY_FOLDER", "assessment_uploads")
	viper.SetDefault("EXPIRY_SWEEP_ENABLED", false)
	viper.SetDefault("EXPIRY_SWEEP_CRON", "@every 5m")

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Cloudinary.URL = viper.GetString("CLOUDINARY_URL")
	config.Cloudinary.Folder = viper.GetString("CLOUDINARY_FOLDER")

	config.Sweep.Enabled = viper.GetBool("EXPIRY_SWEEP_ENABLED")
	config.Sweep.Cron = viper.GetString("EXPIRY_SWEEP_CRON")

	log.Info().Str("port", config.Server.Port).Str("db_host", config.Database.Host).Msg("Config loaded")
	return &config, nil
}
