package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kerbaras/holocron/pkg/config"
	"github.com/kerbaras/holocron/pkg/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLibrary struct {
	saveFunc   func(entry *data.Entry) error
	getFunc    func(url string) (*data.Entry, error)
	listFunc   func(kind data.Kind) ([]*data.Entry, error)
	deleteFunc func(url string) error
	closed     bool
}

func (m *mockLibrary) SaveEntry(entry *data.Entry) error {
	if m.saveFunc != nil {
		return m.saveFunc(entry)
	}
	return nil
}

func (m *mockLibrary) GetEntry(url string) (*data.Entry, error) {
	if m.getFunc != nil {
		return m.getFunc(url)
	}
	return nil, nil
}

func (m *mockLibrary) ListEntries(kind data.Kind) ([]*data.Entry, error) {
	if m.listFunc != nil {
		return m.listFunc(kind)
	}
	return nil, nil
}

func (m *mockLibrary) DeleteEntry(url string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(url)
	}
	return nil
}

func (m *mockLibrary) Close() error {
	m.closed = true
	return nil
}

type mockExporter struct {
	exportFunc func(record data.Record) (string, error)
}

func (m *mockExporter) Export(record data.Record) (string, error) {
	if m.exportFunc != nil {
		return m.exportFunc(record)
	}
	return "", nil
}

func testConfig(t *testing.T, f *swapiFixture) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.BaseURL = f.base
	cfg.LibraryPath = filepath.Join(dir, "library.db")
	cfg.ExportDir = filepath.Join(dir, "exports")
	return cfg
}

func TestNewController(t *testing.T) {
	f := newSwapiFixture(t)
	cfg := testConfig(t, f)

	controller := NewController(cfg, nil)
	defer controller.Close()

	if controller.Client() == nil {
		t.Fatal("Controller client not initialized")
	}
	if controller.Client().BaseURL() != f.base {
		t.Errorf("Expected base URL %s, got %s", f.base, controller.Client().BaseURL())
	}
	if controller.Config() != cfg {
		t.Error("Controller config not set")
	}
	if _, err := os.Stat(cfg.LibraryPath); !os.IsNotExist(err) {
		t.Error("Library should not be opened before first use")
	}
}

func TestControllerNewListUsesConfiguredPageSize(t *testing.T) {
	f := newSwapiFixture(t)
	cfg := testConfig(t, f)
	cfg.PageSizes[string(data.KindPeople)] = 5

	controller := NewController(cfg, nil)
	browser, err := controller.NewList(data.KindPeople)
	require.NoError(t, err)

	browser.Load(context.Background())
	assert.Equal(t, 4, browser.TotalPages())
	assert.Len(t, browser.PageResources(), 5)

	_, err = controller.NewList(data.Kind("droids"))
	assert.Error(t, err)
}

func TestControllerShow(t *testing.T) {
	f := newSwapiFixture(t)
	controller := NewController(testConfig(t, f), nil)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		record, err := controller.Show(ctx, data.KindPeople, "1")
		require.NoError(t, err)
		assert.Equal(t, "Luke Skywalker", record.Primary().DisplayName())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := controller.Show(ctx, data.KindPlanets, "99")
		require.Error(t, err)
		assert.Equal(t, "Planet details not found.", err.Error())
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := controller.Show(ctx, data.Kind("droids"), "1")
		assert.Error(t, err)
	})
}

func TestControllerLibrary(t *testing.T) {
	f := newSwapiFixture(t)
	controller := NewController(testConfig(t, f), nil)
	defer controller.Close()

	record, err := controller.Show(context.Background(), data.KindFilms, "1")
	require.NoError(t, err)

	entry, err := controller.Save(data.KindFilms, record.Primary(), "the first one")
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, f.url("films/1"), entry.URL)
	assert.Equal(t, "A New Hope", entry.Name)

	saved, err := controller.Saved(entry.URL)
	require.NoError(t, err)
	assert.True(t, saved)

	entries, err := controller.Library(data.KindFilms)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "the first one", entries[0].Note)

	entries, err = controller.Library(data.KindPeople)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, controller.Remove(entry.URL))
	saved, err = controller.Saved(entry.URL)
	require.NoError(t, err)
	assert.False(t, saved)
}

func TestControllerSaveErrors(t *testing.T) {
	f := newSwapiFixture(t)
	lib := &mockLibrary{
		saveFunc: func(entry *data.Entry) error {
			return errors.New("disk full")
		},
	}
	controller := NewControllerWith(testConfig(t, f), f.client(), lib, &mockExporter{})

	_, err := controller.Save(data.KindPeople, nil, "")
	assert.Error(t, err)

	_, err = controller.Save(data.KindPeople, data.Person{Name: "Luke Skywalker", URL: "u"}, "")
	assert.EqualError(t, err, "disk full")

	require.NoError(t, controller.Close())
	assert.True(t, lib.closed)
}

func TestControllerLibraryOpenError(t *testing.T) {
	f := newSwapiFixture(t)
	cfg := testConfig(t, f)

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	cfg.LibraryPath = filepath.Join(blocker, "library.db")

	controller := NewController(cfg, nil)
	_, err := controller.Library("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open library")
}

func TestControllerExport(t *testing.T) {
	f := newSwapiFixture(t)
	cfg := testConfig(t, f)
	controller := NewController(cfg, nil)

	path, err := controller.Export(context.Background(), data.KindFilms, "1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.ExportDir, "A New Hope.epub"), path)
	_, err = os.Stat(path)
	assert.NoError(t, err)

	_, err = controller.Export(context.Background(), data.KindFilms, "99")
	assert.EqualError(t, err, "Film details not found.")
}

func TestControllerExportRecordWrapsErrors(t *testing.T) {
	f := newSwapiFixture(t)
	var got data.Record
	exporter := &mockExporter{
		exportFunc: func(record data.Record) (string, error) {
			got = record
			return "", errors.New("read-only")
		},
	}
	controller := NewControllerWith(testConfig(t, f), f.client(), &mockLibrary{}, exporter)

	record := PlanetDetail{Planet: &data.Planet{Name: "Tatooine"}}
	_, err := controller.ExportRecord(record)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to export")
	assert.Contains(t, err.Error(), "read-only")
	assert.Equal(t, record, got)
}
