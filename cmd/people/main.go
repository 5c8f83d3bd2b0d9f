// Command people runs a single person store operation and prints the result as JSON.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"

	"github.com/madkins23/go-people/config"
	"github.com/madkins23/go-people/mdb"
	"github.com/madkins23/go-people/metrics"
	"github.com/madkins23/go-people/person"
)

func main() {
	envFile := flag.String("env", config.DefaultEnvFile, "environment file to load")
	showMetrics := flag.Bool("metrics", false, "print operation metrics after the run")
	flag.Usage = usage
	flag.Parse()

	cmd, err := parseCommand(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errUsage) {
			flag.Usage()
		}
		os.Exit(2)
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %s\n", err)
		os.Exit(1)
	}
	cfg.SetupLogging()

	registry := prometheus.NewRegistry()
	metrics.RegisterCollectors(registry)

	if err = execute(cfg, cmd); err != nil {
		log.Error().Err(err).Str("op", cmd.op).Bool("network", mdb.IsNetwork(err)).Msg("Operation failed")
		os.Exit(1)
	}

	if *showMetrics {
		if err = writeMetrics(registry, os.Stdout); err != nil {
			log.Error().Err(err).Msg("Unable to write metrics")
			os.Exit(1)
		}
	}
}

func execute(cfg *config.Config, cmd *command) error {
	ctx := context.Background()
	access, err := mdb.Connect(cfg.MongoDB.Database, cfg.AccessConfig(ctx))
	if err != nil {
		return err
	}
	defer func() {
		if err := access.Disconnect(); err != nil {
			log.Warn().Err(err).Msg("Disconnect")
		}
	}()

	store, err := person.NewStore(access, cfg.MongoDB.Collection)
	if err != nil {
		return err
	}

	return cmd.run(ctx, store, os.Stdin, os.Stdout)
}

func writeMetrics(gatherer prometheus.Gatherer, out io.Writer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	encoder := expfmt.NewEncoder(out, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: people [--env file] [--metrics] <operation> [args...]")
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %s\n", operations[name].usage)
	}
	flag.PrintDefaults()
}
