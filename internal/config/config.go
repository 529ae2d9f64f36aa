package config

import (
	"os"

	"github.com/boxyard/inventory-service/internal/utils"
)

const AppName = "inventory-service"

type Config struct {
	AppName string
	AppPort string
	AppUrl  string
	Env     string

	DBUrl string

	// GeocoderAPIKey is optional: when empty, postal-code searches use the
	// deterministic offline fallback coordinate.
	GeocoderAPIKey string
}

func LoadConfig() *Config {
	utils.Logger.Info("Loading config for app: ", AppName)

	env := os.Getenv("ENV")
	if env == "" {
		utils.Logger.Fatal("ENV env var is missing")
	}
	appURL := os.Getenv("APP_URL_FROM_ANYWHERE")
	if appURL == "" {
		utils.Logger.Fatal("APP_URL_FROM_ANYWHERE env var is missing")
	}
	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		utils.Logger.Fatal("DATABASE_URL env var is missing")
	}

	geocoderKey := os.Getenv("GEOCODER_API_KEY")
	if geocoderKey == "" {
		utils.Logger.Warn("GEOCODER_API_KEY not set; postal-code searches will use the offline fallback coordinate")
	}

	utils.Logger.Infof("Loaded config for %s (%s)", AppName, env)

	return &Config{
		AppName:        AppName,
		AppPort:        appPort,
		AppUrl:         appURL,
		Env:            env,
		DBUrl:          dbURL,
		GeocoderAPIKey: geocoderKey,
	}
}
