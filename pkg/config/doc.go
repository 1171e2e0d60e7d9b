// Package config loads typed configuration from environment variables,
// optionally seeded from .env files.
//
// Parsing is done by github.com/caarlos0/env/v11 using struct tags, dotenv
// files are read with github.com/joho/godotenv. Each struct type is parsed
// once and cached; Reload and ResetCache exist for tests.
package config
