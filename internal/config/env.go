package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// ErrNoEnvFile is returned when a directory has no .env file.
var ErrNoEnvFile = errors.New("no .env file found")

// loadEnvFile loads environment variables from the first .env or .env.local
// file found in dir. Existing process environment variables are not overwritten.
func loadEnvFile(dir string) error {
	for _, name := range []string{".env", ".env.local"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		slog.Debug("Loaded environment variables", "path", path)
		return nil
	}
	return fmt.Errorf("%w in %s", ErrNoEnvFile, dir)
}
