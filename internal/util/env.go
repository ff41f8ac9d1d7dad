package util

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file if one exists next to the binary.
// A missing file is not an error, real deployments set env directly.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}
