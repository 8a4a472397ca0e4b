package core

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"

	"github.com/dmitrijs2005/courtside/internal/client/config"
	"github.com/dmitrijs2005/courtside/internal/client/gateway"
	"github.com/dmitrijs2005/courtside/internal/client/models"
	"github.com/dmitrijs2005/courtside/internal/client/normalize"
	"github.com/dmitrijs2005/courtside/internal/client/session"
	"github.com/dmitrijs2005/courtside/internal/client/storage"
	"github.com/dmitrijs2005/courtside/internal/client/store"
	"github.com/dmitrijs2005/courtside/internal/logging"
)

// Core holds the wired client components.
type Core struct {
	Config     *config.Config
	Logger     logging.Logger
	Normalizer *normalize.Normalizer
	Gateway    *gateway.Gateway
	Session    *session.Session
	Auth       *session.Manager

	Articles   *store.Store[models.Article]
	Threads    *store.Store[models.Thread]
	Categories *store.Store[models.Category]
	Profiles   *store.Store[models.Profile]
	Feeds      *Feeds
	Admin      *Admin

	db *sql.DB
}

type options struct {
	logger     logging.Logger
	httpClient *http.Client
}

type Option func(*options)

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithHTTPClient replaces the gateway's HTTP client; the configured request
// timeout is not applied to it.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// New opens the session database, wires every component and restores the
// persisted session. A failed restore is logged, not returned.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Core, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.New(os.Stderr, cfg.LogLevel)
	}

	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("session storage: %w", err)
	}

	c := &Core{
		Config:     cfg,
		Logger:     o.logger,
		Normalizer: normalize.New(cfg.ServerOrigin),
		Session:    session.New(),
		db:         db,
	}

	gwOpts := []gateway.Option{
		gateway.WithTimeout(cfg.RequestTimeout),
		gateway.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
		gateway.WithRenewSkew(cfg.RenewSkew),
		gateway.WithLogger(o.logger),
	}
	if o.httpClient != nil {
		gwOpts = append(gwOpts, gateway.WithHTTPClient(o.httpClient))
	}
	c.Gateway = gateway.New(cfg.BaseURL(), c.Session, gwOpts...)

	c.Auth = session.NewManager(c.Session, c.Gateway, storage.NewSQLiteSessionStore(db), c.Normalizer, o.logger)
	c.Gateway.SetRenewer(c.Auth)

	c.buildStores()

	if err := c.Auth.Restore(ctx); err != nil {
		o.logger.Warn(ctx, "session restore failed", "error", err)
	}
	return c, nil
}

func (c *Core) storeOptions() []store.Option {
	return []store.Option{
		store.WithLogger(c.Logger),
		store.WithNormalizer(c.Normalizer),
		store.WithBulkConcurrency(c.Config.BulkConcurrency),
	}
}

func (c *Core) buildStores() {
	n := c.Normalizer
	opts := c.storeOptions()

	c.Articles = store.New(c.Gateway, c.Session, store.Config[models.Article]{
		Name: "articles", Path: "/articles", Decode: n.Article, EntityKeys: []string{"article"},
	}, opts...)
	c.Threads = store.New(c.Gateway, c.Session, store.Config[models.Thread]{
		Name: "threads", Path: "/community/threads", Decode: n.Thread, EntityKeys: []string{"thread"},
	}, opts...)
	c.Categories = store.New(c.Gateway, c.Session, store.Config[models.Category]{
		Name: "categories", Path: "/categories", Decode: n.Category, EntityKeys: []string{"category"},
	}, opts...)
	c.Profiles = store.New(c.Gateway, c.Session, store.Config[models.Profile]{
		Name: "profiles", Path: "/users", ItemPath: "/users/profile", Decode: n.Profile, EntityKeys: []string{"user", "profile"},
	}, opts...)

	c.Feeds = newFeeds(c, opts)
	c.Admin = newAdmin(c, opts)
}

// Close releases the session database.
func (c *Core) Close() error {
	return c.db.Close()
}
