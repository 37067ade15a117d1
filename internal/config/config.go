package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config is the process configuration, read from the environment. A .env
// file in the working directory is loaded first when present.
type Config struct {
	DiscordToken  string `env:"DISCORD_TOKEN,required"`
	CommandPrefix string `env:"COMMAND_PREFIX" envDefault:"."`
	SoundsDir     string `env:"SOUNDS_DIR" envDefault:"sounds"`
	GreetingSound string `env:"GREETING_SOUND" envDefault:"Aloooo.mp3"`
	YouTubeProxy  string `env:"YOUTUBE_PROXY"`
	LogFile       string `env:"LOG_FILE"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from .env and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Str("module", "config").
			Msg("no .env file found, using system environment")
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
