package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"

	"github.com/madkins23/go-people/config"
	"github.com/madkins23/go-people/mdb"
)

func main() {
	envFile := flag.String("env", config.DefaultEnvFile, "environment file to load")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: dbping [--env file] [dbname]")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %s\n", err)
		os.Exit(1)
	}
	cfg.SetupLogging()

	dbName := cfg.MongoDB.Database
	if flag.NArg() > 0 {
		dbName = flag.Arg(0)
	}

	access, err := mdb.Connect(dbName, cfg.AccessConfig(context.Background()))
	if err != nil {
		log.Error().Err(err).Str("db", dbName).Msg("Unable to connect")
		os.Exit(1)
	}
	defer access.DisconnectOrPanic()
}
