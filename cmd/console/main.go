// Command console is a terminal front end for the admin API. It drives the
// same list-view controllers and settings form the web console uses.
//
// Usage:
//
//	console [-config path] [-yes] <resource> <command> [flags] [args]
//
// Resources are bookings, providers, services, reviews, settings and report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/simp-lee/svcadmin/internal/client"
	"github.com/simp-lee/svcadmin/internal/config"
	"github.com/simp-lee/svcadmin/internal/console"
	"github.com/simp-lee/svcadmin/internal/listview"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	yes := flag.Bool("yes", false, "skip confirmation prompts")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	logr, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		log.Fatal("failed to set up logger: ", err)
	}
	defer logr.Close()

	var creds client.CredentialProvider
	switch {
	case cfg.Console.Token != "":
		creds = client.StaticToken(cfg.Console.Token)
	case cfg.Console.Email != "":
		creds = client.NewLoginProvider(cfg.Console.Email, cfg.Console.Password)
	}

	api, err := client.New(client.Config{
		BaseURL:     cfg.Console.BaseURL,
		Timeout:     config.Duration(cfg.Console.RequestTimeout, 15*time.Second),
		Credentials: creds,
		Logger:      logr.Logger,
	})
	if err != nil {
		log.Fatal("failed to create api client: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := &environment{
		api: api,
		opts: console.Options{
			PageSize: cfg.Console.PageSize,
			Debounce: config.Duration(cfg.Console.SearchDebounce, listview.DefaultDebounce),
			Logger:   logr.Logger,
		},
		out:     os.Stdout,
		in:      os.Stdin,
		confirm: !*yes,
	}
	if err := env.run(ctx, flag.Args()); err != nil {
		stop()
		logr.Close()
		log.Fatal(err)
	}
}
