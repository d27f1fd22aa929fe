package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kerbaras/holocron/pkg/data"
)

// Show loads the detail of one resource and waits for it to settle. A
// not-found or failed load is returned as an error carrying the state's
// message.
func (c *Controller) Show(ctx context.Context, kind data.Kind, id string) (data.Record, error) {
	viewer, err := c.NewDetails(kind)
	if err != nil {
		return nil, err
	}
	viewer.Load(ctx, id)

	if viewer.Status() != StatusLoaded {
		return nil, errors.New(viewer.Err())
	}
	return viewer.Record(), nil
}

// Export loads a resource with its references and writes it as a dossier.
func (c *Controller) Export(ctx context.Context, kind data.Kind, id string) (string, error) {
	record, err := c.Show(ctx, kind, id)
	if err != nil {
		return "", err
	}
	return c.ExportRecord(record)
}

// ExportRecord writes an already loaded record.
func (c *Controller) ExportRecord(record data.Record) (string, error) {
	if c.exporter == nil {
		return "", fmt.Errorf("no exporter configured")
	}
	path, err := c.exporter.Export(record)
	if err != nil {
		return "", fmt.Errorf("failed to export: %w", err)
	}
	c.logger.Info("exported dossier", "path", path)
	return path, nil
}
