// Package config loads people store configuration from the environment.
// An optional .env style file is loaded first so that it can supply unset variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/madkins23/go-people/mdb"
	"github.com/madkins23/go-people/person"
)

// DefaultEnvFile is loaded by Load when no file is specified.
const DefaultEnvFile = "sample.env"

// DefaultDatabase is the database name used when MONGO_DATABASE is not set.
const DefaultDatabase = "people"

var ErrNoURI = errors.New("MONGO_URI is not set")

// Config holds application configuration
type Config struct {
	MongoDB MongoDBConfig
	Log     LogConfig
}

// MongoDBConfig holds the MongoDB connection settings.
type MongoDBConfig struct {
	URI               string
	Database          string
	Collection        string
	Timeout           time.Duration
	CollectionTimeout time.Duration
}

// LogConfig holds the logging settings.
type LogConfig struct {
	Level string
}

// Load configuration from environment variables after loading envFile.
// A missing env file is not an error, variables already set are never overridden.
// An empty envFile is replaced by DefaultEnvFile.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("MONGO_DATABASE", DefaultDatabase)
	v.SetDefault("MONGO_COLLECTION", person.DefaultCollection)
	v.SetDefault("MONGO_TIMEOUT", 10)
	v.SetDefault("MONGO_COLLECTION_TIMEOUT", 1)
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		MongoDB: MongoDBConfig{
			URI:               strings.TrimSpace(v.GetString("MONGO_URI")),
			Database:          v.GetString("MONGO_DATABASE"),
			Collection:        v.GetString("MONGO_COLLECTION"),
			Timeout:           time.Duration(v.GetInt("MONGO_TIMEOUT")) * time.Second,
			CollectionTimeout: time.Duration(v.GetInt("MONGO_COLLECTION_TIMEOUT")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	if cfg.MongoDB.URI == "" {
		return nil, ErrNoURI
	}

	return cfg, nil
}

// AccessConfig converts the MongoDB settings into an mdb.Config.
func (c *Config) AccessConfig(ctx context.Context) *mdb.Config {
	return &mdb.Config{
		Ctx:     ctx,
		Options: options.Client().ApplyURI(c.MongoDB.URI),
		Timeout: mdb.Timeout{
			Connect:    c.MongoDB.Timeout,
			Collection: c.MongoDB.CollectionTimeout,
		},
	}
}

// SetupLogging sets the global zerolog level from the configuration
// and sends the global logger to a console writer on stderr.
// Unknown levels fall back to info.
func (c *Config) SetupLogging() {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(c.Log.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
