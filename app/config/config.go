package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/marketsim/go-market/models"
)

// Config captures everything the binaries read from the environment.
type Config struct {
	Addr        string
	DatabaseURL string
	Profile     models.Profile
}

// Load reads an optional .env file and builds the config so main stays
// lean. A missing .env is not an error.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() Config {
	addr := os.Getenv("MARKET_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	profile := models.ProfileStrict
	if os.Getenv("MARKET_PROFILE") == string(models.ProfileLenient) {
		profile = models.ProfileLenient
	}

	return Config{
		Addr:        addr,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Profile:     profile,
	}
}
