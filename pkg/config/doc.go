// Package config loads configuration structs from environment variables.
//
// It combines godotenv (development .env support) with caarlos0/env struct
// tag parsing. Each package in this module defines its own Config struct
// with env tags; this package is the single loading mechanism.
package config
