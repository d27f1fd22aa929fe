package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kerbaras/holocron/pkg/data"
	"github.com/kerbaras/holocron/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilmDetailsLoad(t *testing.T) {
	f := newSwapiFixture(t)
	details := NewFilmDetails(f.client())

	details.Load(context.Background(), "1")

	assert.Equal(t, StatusLoaded, details.Status())
	assert.False(t, details.Loading())
	assert.Empty(t, details.Err())

	d := details.Value()
	require.NotNil(t, d.Film)
	assert.Equal(t, "A New Hope", d.Film.DisplayName())
	assert.Len(t, d.Characters, 2, "the missing and null characters are dropped")
	assert.LessOrEqual(t, len(d.Characters), len(d.Film.Characters))
	require.Len(t, d.Planets, 1)
	assert.Equal(t, "Tatooine", d.Planets[0].DisplayName())
	assert.Empty(t, d.Starships)
	assert.Empty(t, d.Vehicles)
	assert.Empty(t, d.Species)

	rec := details.Record()
	require.NotNil(t, rec.Primary())
	assert.Equal(t, "A New Hope", rec.Primary().DisplayName())

	var titles []string
	for _, g := range rec.Related() {
		titles = append(titles, g.Title)
	}
	assert.Equal(t, []string{"Characters", "Planets", "Starships", "Vehicles", "Species"}, titles)
	assert.Equal(t, data.KindPeople, rec.Related()[0].Kind)
}

func TestPersonDetailsLoad(t *testing.T) {
	f := newSwapiFixture(t)
	details := NewPersonDetails(f.client())

	details.Load(context.Background(), "1")

	require.Equal(t, StatusLoaded, details.Status())
	d := details.Value()
	require.NotNil(t, d.Homeworld)
	assert.Equal(t, "Tatooine", d.Homeworld.DisplayName())
	require.Len(t, d.Films, 1)
	assert.Equal(t, "A New Hope", d.Films[0].DisplayName())
	assert.Empty(t, d.Vehicles, "failed vehicle is dropped silently")

	related := details.Record().Related()
	assert.Equal(t, "Homeworld", related[0].Title)
	assert.Len(t, related[0].Items, 1)
}

func TestPlanetDetailsLoad(t *testing.T) {
	f := newSwapiFixture(t)
	details := NewPlanetDetails(f.client())

	details.Load(context.Background(), "1")

	require.Equal(t, StatusLoaded, details.Status())
	assert.Len(t, details.Value().Residents, 2)
	assert.Len(t, details.Value().Films, 1)
}

func TestDetailsNotFound(t *testing.T) {
	f := newSwapiFixture(t)

	tests := []struct {
		kind data.Kind
		msg  string
	}{
		{data.KindFilms, "Film details not found."},
		{data.KindPeople, "Person details not found."},
		{data.KindPlanets, "Planet details not found."},
		{data.KindSpecies, "Species details not found."},
		{data.KindStarships, "Starship details not found."},
		{data.KindVehicles, "Vehicle details not found."},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			viewer, err := NewDetails(tt.kind, f.client())
			require.NoError(t, err)

			viewer.Load(context.Background(), "99")

			assert.Equal(t, StatusNotFound, viewer.Status())
			assert.Equal(t, tt.msg, viewer.Err())
			assert.False(t, viewer.Loading())
			assert.Nil(t, viewer.Record().Primary())
			for _, g := range viewer.Record().Related() {
				assert.Empty(t, g.Items, g.Title)
			}
		})
	}
}

func TestDetailsNullBodyIsNotFound(t *testing.T) {
	f := newSwapiFixture(t)
	details := NewFilmDetails(f.client())

	details.Load(context.Background(), "0")

	assert.Equal(t, StatusNotFound, details.Status())
	assert.Equal(t, "Film details not found.", details.Err())
	assert.Nil(t, details.Value().Film)
}

func TestDetailsResolvesFieldsConcurrently(t *testing.T) {
	f := newSwapiFixture(t)
	details := NewFilmDetails(f.client(sources.WithMaxConcurrency(0)))

	start := time.Now()
	details.Load(context.Background(), "7")
	elapsed := time.Since(start)

	require.Equal(t, StatusLoaded, details.Status())
	d := details.Value()
	assert.Len(t, d.Characters, 2)
	assert.Len(t, d.Planets, 1)
	assert.Len(t, d.Starships, 1)
	assert.Len(t, d.Vehicles, 1)
	assert.Len(t, d.Species, 1)

	// Six slow references; run one after another they would take 6*slowDelay.
	assert.Less(t, elapsed, 4*slowDelay, "reference fields should resolve in parallel")
}

func TestDetailsCancelledContextFails(t *testing.T) {
	f := newSwapiFixture(t)
	details := NewFilmDetails(f.client())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	details.Load(ctx, "1")

	assert.Equal(t, StatusFailed, details.Status())
	assert.Equal(t, "Failed to load Film details. Please try again later.", details.Err())
	assert.False(t, details.Loading())
	assert.Nil(t, details.Value().Film)
}

func TestDetailsPanicFails(t *testing.T) {
	f := newSwapiFixture(t)
	details := newDetails[StarshipDetail](f.client(), data.KindStarships, func(ctx context.Context, c *sources.Client, id string) (StarshipDetail, bool, error) {
		panic("boom")
	})

	details.Load(context.Background(), "1")

	assert.Equal(t, StatusFailed, details.Status())
	assert.Equal(t, "Failed to load Starship details. Please try again later.", details.Err())
	assert.False(t, details.Loading())
}

func TestResolveAllRecoversPanics(t *testing.T) {
	f := newSwapiFixture(t)
	var people []data.Person

	err := resolveAll(context.Background(), f.client(),
		func(ctx context.Context, c *sources.Client) { panic("bad field") },
		field(&people, data.Refs{f.url("people/1")}),
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad field")
	assert.Len(t, people, 1, "other fields still resolve")
}

func TestDetailsLoadSupersedesPrevious(t *testing.T) {
	f := newSwapiFixture(t)
	details := NewPersonDetails(f.client())

	done := make(chan struct{})
	go func() {
		defer close(done)
		details.Load(context.Background(), "slow")
	}()

	select {
	case <-f.started:
	case <-time.After(2 * time.Second):
		t.Fatal("slow request never started")
	}

	details.Load(context.Background(), "1")
	<-done

	assert.Equal(t, StatusLoaded, details.Status())
	assert.False(t, details.Loading())
	require.NotNil(t, details.Value().Person)
	assert.Equal(t, "Luke Skywalker", details.Value().Person.DisplayName())
}

func TestDetailsCancel(t *testing.T) {
	f := newSwapiFixture(t)
	details := NewPersonDetails(f.client())

	done := make(chan struct{})
	go func() {
		defer close(done)
		details.Load(context.Background(), "slow")
	}()

	select {
	case <-f.started:
	case <-time.After(2 * time.Second):
		t.Fatal("slow request never started")
	}
	assert.True(t, details.Loading())

	details.Cancel()
	<-done

	assert.Equal(t, StatusIdle, details.Status())
	assert.False(t, details.Loading())
	assert.Empty(t, details.Err())
	assert.Nil(t, details.Value().Person)
}

func TestDetailsReloadClearsPreviousValue(t *testing.T) {
	f := newSwapiFixture(t)
	details := NewFilmDetails(f.client())

	details.Load(context.Background(), "1")
	require.Equal(t, StatusLoaded, details.Status())

	details.Load(context.Background(), "99")
	assert.Equal(t, StatusNotFound, details.Status())
	assert.Nil(t, details.Value().Film)
	assert.Empty(t, details.Value().Characters)
}

func TestNewDetailsKinds(t *testing.T) {
	f := newSwapiFixture(t)

	for _, k := range data.Kinds {
		viewer, err := NewDetails(k, f.client())
		require.NoError(t, err)
		assert.Equal(t, k, viewer.Kind())
		assert.Equal(t, StatusIdle, viewer.Status())
	}

	_, err := NewDetails(data.Kind("droids"), f.client())
	assert.Error(t, err)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "loaded", StatusLoaded.String())
	assert.Equal(t, "not found", StatusNotFound.String())
	assert.Equal(t, "failed", StatusFailed.String())
}

func TestResolveAllJoinsErrors(t *testing.T) {
	f := newSwapiFixture(t)

	err := resolveAll(context.Background(), f.client(),
		func(ctx context.Context, c *sources.Client) { panic("one") },
		func(ctx context.Context, c *sources.Client) { panic(errors.New("two")) },
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "one")
	assert.Contains(t, err.Error(), "two")
}
