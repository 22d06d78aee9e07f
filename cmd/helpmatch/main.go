// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/helpmatch"
	"github.com/poiesic/helpmatch/config"
	"github.com/urfave/cli/v2"
)

// runtimeEnv carries what commands share: output streams, the loaded
// configuration and the way a database is opened.
type runtimeEnv struct {
	stdout       io.Writer
	stderr       io.Writer
	cfg          *config.Config
	openDatabase func(cfg *config.Config) (*helpmatch.Database, error)
}

func main() {
	env := &runtimeEnv{
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		openDatabase: openDatabase,
	}
	if err := newApp(env).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openDatabase(cfg *config.Config) (*helpmatch.Database, error) {
	opts := []helpmatch.DatabaseOption{helpmatch.WithAIConfig(cfg.AI())}
	if cfg.Database.InMemory {
		opts = append(opts, helpmatch.WithInMemory())
	}
	return helpmatch.NewDatabase(cfg.Database.Path, opts...)
}

func newApp(env *runtimeEnv) *cli.App {
	return &cli.App{
		Name:      "helpmatch",
		Usage:     "Match volunteers to help requests",
		Writer:    env.stdout,
		ErrWriter: env.stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file (default: ./helpmatch.yaml if present)",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory (overrides database.path)",
			},
		},
		Before: func(c *cli.Context) error {
			if err := setupLogger(c, env.stderr); err != nil {
				return err
			}
			return env.loadConfig(c)
		},
		Commands: []*cli.Command{
			{
				Name:      "match",
				Usage:     "Rank volunteers for a help request",
				ArgsUsage: "<request-id>",
				Action:    env.matchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of candidates to return (default: matching.top_k)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the outcome as JSON",
					},
					&cli.BoolFlag{
						Name:  "explain",
						Usage: "Log every scoring stage",
					},
					&cli.BoolFlag{
						Name:  "csv",
						Usage: "Read volunteers and requests from the data.* CSV files instead of the database",
					},
				},
			},
			{
				Name:   "import",
				Usage:  "Load volunteers and help requests from CSV files",
				Action: env.importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "volunteers",
						Usage: "Volunteer CSV file (default: data.volunteers)",
					},
					&cli.StringFlag{
						Name:  "requests",
						Usage: "Help request CSV file (default: data.requests)",
					},
				},
			},
			{
				Name:   "export",
				Usage:  "Write volunteers and help requests to CSV files",
				Action: env.exportCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "volunteers",
						Usage: "Volunteer CSV file (default: data.volunteers)",
					},
					&cli.StringFlag{
						Name:  "requests",
						Usage: "Help request CSV file (default: data.requests)",
					},
				},
			},
			{
				Name:   "add-volunteer",
				Usage:  "Register a volunteer and print its ID",
				Action: env.addVolunteerCommand,
				Flags:  volunteerFlags(),
			},
			{
				Name:   "add-request",
				Usage:  "Register a help request and print its ID",
				Action: env.addRequestCommand,
				Flags:  requestFlags(),
			},
			{
				Name:   "reembed",
				Usage:  "Refresh cached embeddings for every volunteer",
				Action: env.reembedCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of volunteers to process in each batch (default: reembed.batch_size)",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N volunteers (default: reembed.report_interval)",
					},
				},
			},
		},
	}
}

func (env *runtimeEnv) loadConfig(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("db") {
		cfg.Database.Path = c.String("db")
		cfg.Database.InMemory = false
	}
	env.cfg = cfg
	return nil
}

func setupLogger(c *cli.Context, out io.Writer) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
