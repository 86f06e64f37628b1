package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-raytracer/pkg/output"
)

// Config holds runtime settings shared by the CLI and the web server
type Config struct {
	Scene     string
	Width     int
	Height    int
	OutputDir string
	Scale     int
	Port      int
	S3        output.S3Config
}

// Load reads envFile (if it exists) into the environment, then builds a Config
// from RT_* variables. Variables already set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		Scene:     getEnv("RT_SCENE", "default"),
		OutputDir: getEnv("RT_OUTPUT_DIR", "output"),
		S3: output.S3Config{
			Bucket:    os.Getenv("RT_S3_BUCKET"),
			Region:    getEnv("RT_S3_REGION", "us-east-1"),
			Endpoint:  os.Getenv("RT_S3_ENDPOINT"),
			AccessKey: os.Getenv("RT_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("RT_S3_SECRET_KEY"),
			Prefix:    getEnv("RT_S3_PREFIX", "renders"),
		},
	}

	var err error
	if cfg.Width, err = getEnvInt("RT_WIDTH", 400); err != nil {
		return Config{}, err
	}
	if cfg.Height, err = getEnvInt("RT_HEIGHT", 225); err != nil {
		return Config{}, err
	}
	if cfg.Scale, err = getEnvInt("RT_SCALE", 1); err != nil {
		return Config{}, err
	}
	if cfg.Port, err = getEnvInt("RT_PORT", 8080); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
