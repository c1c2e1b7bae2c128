package config

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/subosito/gotenv"
)

// envFiles are loaded in order; variables already present in the environment are never overridden.
var envFiles = []string{".env.local", ".env"}

// LoadEnvFiles loads the dotenv files that exist in the working directory.
func LoadEnvFiles() {
	for _, file := range envFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}

		if err := gotenv.Load(file); err != nil {
			log.Warn().Err(err).Str("file", file).Msg("Failed to load env file")
		}
	}
}
