// Command moviesinfo serves the movie-info API over a configurable store,
// relays change events from Kafka and exposes the flux demo endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/kbukum/fluxkit/bootstrap"
	"github.com/kbukum/fluxkit/config"
	"github.com/kbukum/fluxkit/version"
)

const serviceName = "moviesinfo"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet(serviceName, flag.ContinueOnError)
	configFile := fs.String("config", "", "path to config.yml")
	envFile := fs.String("env", "", "path to .env")
	showVersion := fs.Bool("version", false, "print build information and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *showVersion {
		fmt.Println(serviceName, version.Get())
		return nil
	}

	var opts []config.LoaderOption
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	if *envFile != "" {
		opts = append(opts, config.WithEnvFile(*envFile))
	}
	cfg, err := config.Load[Config](serviceName, opts...)
	if err != nil {
		return err
	}

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}
	in, err := registerInfra(app)
	if err != nil {
		return err
	}
	app.OnConfigure(configure(in))
	return app.Run(context.Background())
}
