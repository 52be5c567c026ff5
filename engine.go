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


// Package venturematch wires the catalog, snapshot storage, recommenders and
// metrics into a single Engine.
package venturematch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/poiesic/venturematch/canon"
	"github.com/poiesic/venturematch/catalog"
	"github.com/poiesic/venturematch/config"
	"github.com/poiesic/venturematch/core"
	"github.com/poiesic/venturematch/metrics"
	"github.com/poiesic/venturematch/query"
	"github.com/poiesic/venturematch/recommend"
	"github.com/poiesic/venturematch/storage"
	"github.com/poiesic/venturematch/storage/badger"
	"github.com/poiesic/venturematch/vocab"
)

// Catalog sources reported to metrics.
const (
	sourceDataset  = "dataset"
	sourceSnapshot = "snapshot"
)

// Engine owns the active catalog and answers recommendation queries.
// Recommendations never block on reloads; a reload swaps the catalog
// atomically once the replacement is complete.
type Engine struct {
	backend     *badger.Backend
	repo        storage.CatalogRepository
	holder      *catalog.Holder
	recommender *recommend.Recommender
	observer    *metrics.Observer
	canon       *canon.Canonicalizer
	workers     int
	logger      *slog.Logger
}

// Option configures an Engine.
type Option func(*engineOptions) error

type engineOptions struct {
	storagePath  string
	inMemory     bool
	workers      int
	locationMode canon.LocationMode
	recommend    recommend.Config
	observer     *metrics.Observer
	logger       *slog.Logger
}

// WithStorage persists catalog snapshots in a BadgerDB directory.
func WithStorage(path string) Option {
	return func(o *engineOptions) error {
		o.storagePath = path
		o.inMemory = false
		return nil
	}
}

// WithInMemoryStorage keeps catalog snapshots in an in-memory BadgerDB.
func WithInMemoryStorage() Option {
	return func(o *engineOptions) error {
		o.storagePath = ""
		o.inMemory = true
		return nil
	}
}

// WithWorkers sets the catalog build worker pool size.
// Default is runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(o *engineOptions) error {
		if n < 0 {
			return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidOption, n)
		}
		o.workers = n
		return nil
	}
}

// WithLocationMode sets how catalogs built by the engine canonicalize
// locations. Catalogs loaded from storage keep the mode they were built with.
func WithLocationMode(mode canon.LocationMode) Option {
	return func(o *engineOptions) error {
		if _, err := canon.ParseLocationMode(string(mode)); err != nil {
			return err
		}
		o.locationMode = mode
		return nil
	}
}

// WithRecommendConfig replaces the default recommender configuration.
func WithRecommendConfig(cfg recommend.Config) Option {
	return func(o *engineOptions) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		o.recommend = cfg
		return nil
	}
}

// WithObserver records recommendation and catalog metrics in observer.
func WithObserver(observer *metrics.Observer) Option {
	return func(o *engineOptions) error {
		o.observer = observer
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *engineOptions) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// WithConfig applies the storage, catalog and recommender sections of cfg.
func WithConfig(cfg *config.Config) Option {
	return func(o *engineOptions) error {
		if cfg == nil {
			return nil
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if cfg.Storage.Path != "" {
			o.storagePath = cfg.Storage.Path
			o.inMemory = false
		}
		o.workers = cfg.Catalog.Workers
		o.locationMode = canon.LocationMode(cfg.Catalog.LocationMode)
		o.recommend = cfg.Recommend
		return nil
	}
}

// Open creates an Engine. With storage configured, the last saved snapshot
// is loaded if one exists; otherwise the engine starts without a catalog
// until Build or Reload installs one.
func Open(ctx context.Context, opts ...Option) (*Engine, error) {
	options := &engineOptions{
		locationMode: canon.LocationCity,
		recommend:    recommend.DefaultConfig(),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	cn, err := canon.New(canon.WithLocationMode(options.locationMode))
	if err != nil {
		return nil, err
	}

	e := &Engine{
		holder:   catalog.NewHolder(nil),
		observer: options.observer,
		canon:    cn,
		workers:  options.workers,
		logger:   options.logger,
	}

	var monitor recommend.Monitor
	if e.observer != nil {
		monitor = e.observer
	}
	e.recommender, err = recommend.NewRecommender(e.holder,
		recommend.WithConfig(options.recommend),
		recommend.WithMonitor(monitor),
		recommend.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	if options.storagePath == "" && !options.inMemory {
		return e, nil
	}

	e.backend, err = badger.OpenBackend(options.storagePath, options.inMemory, options.logger)
	if err != nil {
		return nil, err
	}
	e.repo, err = badger.NewCatalogRepository(e.backend)
	if err != nil {
		e.backend.Close()
		return nil, err
	}

	if err := e.Reload(ctx); err != nil && !errors.Is(err, storage.ErrNotFound) {
		e.Close()
		return nil, err
	}
	return e, nil
}

// Close closes the snapshot storage, if any.
func (e *Engine) Close() error {
	if e.repo != nil {
		if err := e.repo.Close(); err != nil {
			e.logger.Error("error closing catalog repository", "err", err)
			return err
		}
	}
	if e.backend != nil {
		if err := e.backend.Close(); err != nil {
			e.logger.Error("error closing backend storage", "err", err)
			return err
		}
	}
	return nil
}

// Build builds a catalog from a raw dataset, persists it when storage is
// configured and installs it.
func (e *Engine) Build(ctx context.Context, r io.Reader) (*catalog.Catalog, error) {
	started := time.Now()
	c, err := e.build(ctx, r)
	e.observeBuild(sourceDataset, time.Since(started), err)
	if err != nil {
		return nil, err
	}

	if e.repo != nil {
		if err := e.repo.SaveSnapshot(ctx, storage.NewSnapshot(c)); err != nil {
			e.logger.Error("error saving catalog snapshot", "err", err)
			return nil, err
		}
	}

	e.install(c)
	return c, nil
}

// BuildFile is Build reading the dataset from path.
func (e *Engine) BuildFile(ctx context.Context, path string) (*catalog.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return e.Build(ctx, f)
}

func (e *Engine) build(ctx context.Context, r io.Reader) (*catalog.Catalog, error) {
	dataset, err := catalog.LoadDataset(r)
	if err != nil {
		return nil, err
	}

	opts := []catalog.BuildOption{
		catalog.WithBuildCanonicalizer(e.canon),
		catalog.WithLogger(e.logger),
	}
	if e.workers > 0 {
		opts = append(opts, catalog.WithPoolSize(e.workers))
	}
	b, err := catalog.NewBuilder(opts...)
	if err != nil {
		return nil, err
	}
	defer b.Release()

	return b.Build(ctx, dataset)
}

// Reload installs the snapshot saved in storage.
// Returns storage.ErrNotFound if nothing has been saved, and ErrNoStorage
// if the engine has no storage.
func (e *Engine) Reload(ctx context.Context) error {
	if e.repo == nil {
		return ErrNoStorage
	}

	started := time.Now()
	c, err := e.loadSnapshot(ctx)
	if !errors.Is(err, storage.ErrNotFound) {
		e.observeBuild(sourceSnapshot, time.Since(started), err)
	}
	if err != nil {
		return err
	}

	e.install(c)
	return nil
}

func (e *Engine) loadSnapshot(ctx context.Context) (*catalog.Catalog, error) {
	snap, err := e.repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Catalog()
}

func (e *Engine) install(c *catalog.Catalog) {
	old := e.holder.Store(c)
	if e.observer != nil {
		e.observer.ObserveCatalog(c)
	}

	attrs := []any{
		"fingerprint", c.Fingerprint(),
		"investors", len(c.Investors()),
		"startups", len(c.Startups()),
	}
	if old != nil {
		attrs = append(attrs, "replaced", old.Fingerprint())
	}
	e.logger.Info("catalog installed", attrs...)
}

func (e *Engine) observeBuild(source string, elapsed time.Duration, err error) {
	if e.observer != nil {
		e.observer.ObserveBuild(source, elapsed, err)
	}
}

// Catalog returns the active catalog, or catalog.ErrNoCatalog.
func (e *Engine) Catalog() (*catalog.Catalog, error) {
	return e.holder.Load()
}

// Labels returns the vocabulary of the active catalog, e.g. to populate
// dropdowns in a client.
func (e *Engine) Labels() (vocab.Labels, error) {
	c, err := e.holder.Load()
	if err != nil {
		return vocab.Labels{}, err
	}
	return c.Vocabulary().Labels(), nil
}

// Recommend answers q against the active catalog.
func (e *Engine) Recommend(ctx context.Context, q *core.Query) (*core.Response, error) {
	return e.recommender.Recommend(ctx, q)
}

// RecommendRequest validates a request and answers it.
func (e *Engine) RecommendRequest(ctx context.Context, req *query.Request) (*core.Response, error) {
	if req == nil {
		return nil, query.ErrInvalidRequest
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	q := req.ToQuery()
	return e.Recommend(ctx, &q)
}

// Recommender returns the engine's recommender.
func (e *Engine) Recommender() *recommend.Recommender {
	return e.recommender
}

// Observer returns the metrics observer, or nil.
func (e *Engine) Observer() *metrics.Observer {
	return e.observer
}
