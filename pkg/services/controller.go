package services

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/kerbaras/holocron/pkg/config"
	"github.com/kerbaras/holocron/pkg/data"
	"github.com/kerbaras/holocron/pkg/integrations"
	"github.com/kerbaras/holocron/pkg/sources"
	"github.com/kerbaras/holocron/pkg/utils"
)

// Library is the bookmark store the controller needs.
type Library interface {
	SaveEntry(entry *data.Entry) error
	GetEntry(url string) (*data.Entry, error)
	ListEntries(kind data.Kind) ([]*data.Entry, error)
	DeleteEntry(url string) error
	Close() error
}

// Controller wires the API client, the library and the exporter for the CLI
// and the TUI. The library is opened on first use.
type Controller struct {
	cfg      *config.Config
	client   *sources.Client
	exporter integrations.Exporter
	logger   *slog.Logger

	mu      sync.Mutex
	library Library
	openLib func() (Library, error)
}

func NewController(cfg *config.Config, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = utils.NewDiscardLogger()
	}
	api := utils.NewAPI(cfg.BaseURL, utils.WithTimeout(cfg.Timeout))
	client := sources.NewClient(api,
		sources.WithLogger(logger),
		sources.WithMaxConcurrency(cfg.MaxConcurrency),
	)
	return &Controller{
		cfg:      cfg,
		client:   client,
		exporter: integrations.NewDossierBuilder(cfg.ExportDir),
		logger:   logger,
		openLib: func() (Library, error) {
			return data.OpenRepository(cfg.LibraryPath)
		},
	}
}

// NewControllerWith builds a controller from existing parts. A nil library
// falls back to the configured library path.
func NewControllerWith(cfg *config.Config, client *sources.Client, library Library, exporter integrations.Exporter) *Controller {
	c := &Controller{
		cfg:      cfg,
		client:   client,
		exporter: exporter,
		logger:   client.Logger(),
		library:  library,
		openLib: func() (Library, error) {
			return data.OpenRepository(cfg.LibraryPath)
		},
	}
	return c
}

func (c *Controller) Client() *sources.Client {
	return c.client
}

func (c *Controller) Config() *config.Config {
	return c.cfg
}

// NewList returns a fresh list state for kind, sized by the configured page size.
func (c *Controller) NewList(kind data.Kind) (Browser, error) {
	return NewBrowser(kind, c.client, c.cfg.PageSize(kind))
}

// NewDetails returns a fresh detail state for kind.
func (c *Controller) NewDetails(kind data.Kind) (Viewer, error) {
	return NewDetails(kind, c.client)
}

func (c *Controller) lib() (Library, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.library != nil {
		return c.library, nil
	}
	l, err := c.openLib()
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}
	c.library = l
	return l, nil
}

// Save bookmarks a resource. Saving the same resource again updates its note.
func (c *Controller) Save(kind data.Kind, res data.Resource, note string) (*data.Entry, error) {
	if res == nil {
		return nil, fmt.Errorf("nothing to save")
	}
	l, err := c.lib()
	if err != nil {
		return nil, err
	}
	entry := &data.Entry{
		Kind: kind,
		URL:  res.ResourceURL(),
		Name: res.DisplayName(),
		Note: note,
	}
	if err := l.SaveEntry(entry); err != nil {
		return nil, err
	}
	c.logger.Info("saved to library", "kind", string(kind), "url", entry.URL)
	return entry, nil
}

// Saved reports whether url is in the library.
func (c *Controller) Saved(url string) (bool, error) {
	l, err := c.lib()
	if err != nil {
		return false, err
	}
	e, err := l.GetEntry(url)
	if err != nil {
		return false, err
	}
	return e != nil, nil
}

func (c *Controller) Remove(url string) error {
	l, err := c.lib()
	if err != nil {
		return err
	}
	if err := l.DeleteEntry(url); err != nil {
		return err
	}
	c.logger.Info("removed from library", "url", url)
	return nil
}

// Library lists saved entries, newest first. An empty kind lists every kind.
func (c *Controller) Library(kind data.Kind) ([]*data.Entry, error) {
	l, err := c.lib()
	if err != nil {
		return nil, err
	}
	return l.ListEntries(kind)
}

func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.library == nil {
		return nil
	}
	err := c.library.Close()
	c.library = nil
	return err
}
