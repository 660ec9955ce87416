package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"github.com/evanjholt/insidertrack/internal/api"
	"github.com/evanjholt/insidertrack/internal/config"
	"github.com/evanjholt/insidertrack/internal/db"
	"github.com/evanjholt/insidertrack/internal/logging"
	"github.com/evanjholt/insidertrack/internal/seed"
	"github.com/evanjholt/insidertrack/internal/store"
)

func main() {
	var cfg *config.Config

	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "print the version",
	}

	app := &cli.App{
		Name:    "insidertrack",
		Usage:   "Canadian insider trading tracker API",
		Version: api.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to YAML config file",
				Value:   "",
			},
			&cli.StringFlag{
				Name:        "loglevel",
				Aliases:     []string{"l"},
				Usage:       "log level (debug, info, warn, error)",
				Value:       "",
				DefaultText: "from config",
			},
		},

		Before: func(c *cli.Context) error {
			// .env is optional.
			_ = godotenv.Load()

			loaded, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			if lvl := c.String("loglevel"); lvl != "" {
				loaded.Logging.Level = lvl
			}
			cfg = loaded
			logging.Setup(cfg.Logging)
			return nil
		},

		Commands: []*cli.Command{
			{
				Name:    "serve",
				Aliases: []string{"s"},
				Usage:   "start the HTTP server",
				Action: func(c *cli.Context) error {
					return serve(cfg)
				},
			},
			{
				Name:  "seed",
				Usage: "populate the database with sample data",
				Action: func(c *cli.Context) error {
					gdb, err := openDatabase(cfg)
					if err != nil {
						return err
					}
					return seed.Database(c.Context, gdb)
				},
			},
		},
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	sort.Sort(cli.CommandsByName(app.Commands))

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	gdb, err := db.Open(cfg.Database.Driver, cfg.DSN())
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

func serve(cfg *config.Config) error {
	gdb, err := openDatabase(cfg)
	if err != nil {
		return err
	}

	if cfg.Seed.OnStartup {
		if err := seed.Database(context.Background(), gdb); err != nil {
			return err
		}
	}

	users := store.NewUserStore()
	users.Seed(seed.Users())
	items := store.NewItemStore(users)
	items.Seed(seed.Items())

	handler := api.NewRouter(gdb, users, items)
	handler = api.LoggingMiddleware(handler)
	handler = api.RateLimitMiddleware(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)(handler)
	handler = api.CORSMiddleware(handler)
	handler = api.RequestIDMiddleware(handler)
	handler = api.RecoverMiddleware(handler)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Addr).Infoln("server listening")
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		log.WithField("signal", sig.String()).Infoln("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	}
}
