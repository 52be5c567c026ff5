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
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/venturematch"
	"github.com/poiesic/venturematch/catalog"
	"github.com/poiesic/venturematch/config"
	"github.com/poiesic/venturematch/core"
	"github.com/poiesic/venturematch/metrics"
	"github.com/poiesic/venturematch/query"
)

const configKey = "config"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "venturematch",
		Usage: "Investor and startup recommendations from a portfolio dataset",
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
				Usage:   "Path to YAML config file (default $" + config.ConfigPathEnvVar + ")",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "labels",
				Usage:  "Print the label vocabulary of a dataset",
				Action: labelsCommand,
				Flags: []cli.Flag{
					datasetFlag(),
					workersFlag(),
				},
			},
			{
				Name:   "build",
				Usage:  "Build a catalog from a dataset and save it in a database",
				Action: buildCommand,
				Flags: []cli.Flag{
					datasetFlag(),
					dbFlag(),
					workersFlag(),
					metricsFileFlag(),
				},
			},
			{
				Name:   "recommend",
				Usage:  "Recommend investors or startups",
				Action: recommendCommand,
				Flags: []cli.Flag{
					dbFlag(),
					datasetFlag(),
					workersFlag(),
					metricsFileFlag(),
					&cli.StringFlag{
						Name:    "request",
						Aliases: []string{"r"},
						Usage:   "Path to a JSON request; replaces the query flags",
					},
					&cli.StringFlag{
						Name:    "type",
						Aliases: []string{"t"},
						Usage:   "Recommender (content, collaborative, hybrid, startup_similarity)",
						Value:   string(core.RecommenderContent),
					},
					&cli.StringSliceFlag{
						Name:  "industry",
						Usage: "Industry of interest (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "stage",
						Usage: "Funding stage of interest (repeatable)",
					},
					&cli.StringFlag{Name: "location", Usage: "Location"},
					&cli.StringFlag{Name: "team-size", Usage: "Team size, e.g. 11-50"},
					&cli.StringFlag{Name: "founded-year", Usage: "Founding year"},
					&cli.StringFlag{Name: "business-model", Usage: "Business model, e.g. B2B"},
					&cli.StringFlag{Name: "revenue-stage", Usage: "Revenue stage"},
					&cli.StringFlag{Name: "customer-segment", Usage: "Customer segment"},
					&cli.Float64Flag{
						Name:  "activity-weight",
						Usage: "Hybrid weight of the content score",
						Value: core.DefaultBlendWeight,
					},
					&cli.Float64Flag{
						Name:  "investment-weight",
						Usage: "Hybrid weight of the collaborative score",
						Value: core.DefaultBlendWeight,
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   core.DefaultLimit,
					},
				},
			},
			{
				Name:   "dropdowns",
				Usage:  "Print the industries, stages and locations a client can offer",
				Action: dropdownsCommand,
				Flags: []cli.Flag{
					dbFlag(),
					datasetFlag(),
					workersFlag(),
				},
			},
		},
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "db",
		Aliases: []string{"d"},
		Usage:   "Path to BadgerDB database directory",
	}
}

func datasetFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "dataset",
		Usage: "Path to the investors JSON dataset",
	}
}

func workersFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "workers",
		Usage: "Catalog build workers (0 = one per CPU)",
	}
}

func metricsFileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "metrics-file",
		Usage: "Write Prometheus metrics to this file when done",
	}
}

// setup loads the configuration and installs the default logger. An explicit
// --log-level wins over the configured level.
func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	levelStr := cfg.Log.Level
	if c.IsSet("log-level") {
		levelStr = strings.ToLower(c.String("log-level"))
	}
	level, err := config.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[configKey] = cfg
	return nil
}

// settings returns the loaded configuration with command flags applied.
func settings(c *cli.Context) *config.Config {
	cfg, ok := c.App.Metadata[configKey].(*config.Config)
	if !ok {
		cfg = config.Default()
	}
	out := *cfg

	if c.IsSet("db") {
		out.Storage.Path = c.String("db")
	}
	if c.IsSet("dataset") {
		out.Catalog.Dataset = c.String("dataset")
	}
	if c.IsSet("workers") {
		out.Catalog.Workers = c.Int("workers")
	}
	if c.IsSet("metrics-file") {
		out.Metrics.Textfile = c.String("metrics-file")
	}
	return &out
}

// readOnly drops the configured database when the command names a dataset
// without --db, so querying a dataset never overwrites a stored snapshot.
func readOnly(c *cli.Context, cfg *config.Config) *config.Config {
	if c.IsSet("dataset") && !c.IsSet("db") {
		cfg.Storage.Path = ""
	}
	return cfg
}

// openEngine opens an engine with an installed catalog: the snapshot stored
// in the database, or a catalog built from the dataset.
func openEngine(ctx context.Context, cfg *config.Config, observer *metrics.Observer) (*venturematch.Engine, error) {
	if cfg.Storage.Path == "" && cfg.Catalog.Dataset == "" {
		return nil, fmt.Errorf("database path or dataset is required")
	}

	opts := []venturematch.Option{venturematch.WithConfig(cfg)}
	if observer != nil {
		opts = append(opts, venturematch.WithObserver(observer))
	}
	e, err := venturematch.Open(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open engine: %w", err)
	}

	if cfg.Storage.Path == "" {
		if _, err := e.BuildFile(ctx, cfg.Catalog.Dataset); err != nil {
			e.Close()
			return nil, fmt.Errorf("failed to build catalog: %w", err)
		}
		return e, nil
	}

	if _, err := e.Catalog(); errors.Is(err, catalog.ErrNoCatalog) {
		e.Close()
		return nil, fmt.Errorf("no catalog in %s, run build first: %w", cfg.Storage.Path, err)
	}
	return e, nil
}

func newObserver(cfg *config.Config) *metrics.Observer {
	if cfg.Metrics.Textfile == "" {
		return nil
	}
	return metrics.NewObserver()
}

func writeMetrics(cfg *config.Config, observer *metrics.Observer) error {
	if observer == nil {
		return nil
	}
	if err := observer.WriteToTextfile(cfg.Metrics.Textfile); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

func printJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func labelsCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg := settings(c)
	if cfg.Catalog.Dataset == "" {
		return fmt.Errorf("dataset path is required")
	}
	cfg.Storage.Path = ""

	e, err := openEngine(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer e.Close()

	labels, err := e.Labels()
	if err != nil {
		return err
	}
	return printJSON(c, labels)
}

func buildCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg := settings(c)
	if cfg.Catalog.Dataset == "" {
		return fmt.Errorf("dataset path is required")
	}
	if cfg.Storage.Path == "" {
		return fmt.Errorf("database path is required")
	}

	observer := newObserver(cfg)
	opts := []venturematch.Option{venturematch.WithConfig(cfg)}
	if observer != nil {
		opts = append(opts, venturematch.WithObserver(observer))
	}
	e, err := venturematch.Open(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer e.Close()

	built, err := e.BuildFile(ctx, cfg.Catalog.Dataset)
	if err != nil {
		return fmt.Errorf("failed to build catalog: %w", err)
	}

	fmt.Fprintf(c.App.ErrWriter, "Database: %s\n", cfg.Storage.Path)
	fmt.Fprintf(c.App.ErrWriter, "Fingerprint: %s\n", built.Fingerprint())
	fmt.Fprintf(c.App.ErrWriter, "Investors: %d\n", len(built.Investors()))
	fmt.Fprintf(c.App.ErrWriter, "Startups: %d\n", len(built.Startups()))

	return writeMetrics(cfg, observer)
}

func recommendCommand(c *cli.Context) error {
	ctx := context.Background()

	req, err := requestFromFlags(c)
	if err != nil {
		return err
	}

	cfg := readOnly(c, settings(c))
	observer := newObserver(cfg)
	e, err := openEngine(ctx, cfg, observer)
	if err != nil {
		return err
	}
	defer e.Close()

	resp, err := e.RecommendRequest(ctx, req)
	if err != nil {
		return err
	}
	if err := printJSON(c, map[string]any{"recommendations": resp.Records()}); err != nil {
		return err
	}
	return writeMetrics(cfg, observer)
}

// requestFromFlags reads --request, or assembles a request from the query
// flags. Hybrid weights are only sent when set.
func requestFromFlags(c *cli.Context) (*query.Request, error) {
	if path := c.String("request"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open request: %w", err)
		}
		defer f.Close()
		return query.Decode(f)
	}

	req := &query.Request{
		Industries:      c.StringSlice("industry"),
		Stages:          c.StringSlice("stage"),
		Type:            c.String("type"),
		Location:        c.String("location"),
		TeamSize:        c.String("team-size"),
		FoundedYear:     c.String("founded-year"),
		BusinessModel:   c.String("business-model"),
		RevenueStage:    c.String("revenue-stage"),
		CustomerSegment: c.String("customer-segment"),
		Limit:           c.Int("limit"),
	}
	if c.IsSet("activity-weight") {
		w := c.Float64("activity-weight")
		req.ActivityWeight = &w
	}
	if c.IsSet("investment-weight") {
		w := c.Float64("investment-weight")
		req.InvestmentWeight = &w
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// dropdowns is the subset of the vocabulary a search form offers.
type dropdowns struct {
	Industries []string `json:"industries"`
	Stages     []string `json:"stages"`
	Locations  []string `json:"locations"`
}

func dropdownsCommand(c *cli.Context) error {
	ctx := context.Background()

	e, err := openEngine(ctx, readOnly(c, settings(c)), nil)
	if err != nil {
		return err
	}
	defer e.Close()

	labels, err := e.Labels()
	if err != nil {
		return err
	}
	return printJSON(c, dropdowns{
		Industries: nonNil(labels.Industries),
		Stages:     nonNil(labels.Stages),
		Locations:  nonNil(labels.Locations),
	})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
