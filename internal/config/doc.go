// Package config provides environment-based configuration.
//
// Loads from .env file (godotenv), maps to Config struct via go-simpler/env struct tags.
// Every backend setting has a localhost fallback so a dev setup runs with zero config.
package config
