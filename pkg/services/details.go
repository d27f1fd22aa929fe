package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/kerbaras/holocron/pkg/data"
	"github.com/kerbaras/holocron/pkg/sources"
)

// Status is the lifecycle state of a detail screen.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusNotFound
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusNotFound:
		return "not found"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Viewer is the non-generic view of a Details state machine that the
// presentation layer binds to.
type Viewer interface {
	Kind() data.Kind
	Load(ctx context.Context, id string)
	Cancel()
	Loading() bool
	Err() string
	Status() Status
	Record() data.Record
}

// loader fetches the primary resource and resolves its references. found is
// false when the primary resource does not exist; err reports a structural
// failure.
type loader[V any] func(ctx context.Context, c *sources.Client, id string) (value V, found bool, err error)

// Details loads one resource and its references into a single state. A new
// Load supersedes any load still in flight; the superseded load's result is
// discarded when it completes.
type Details[V data.Record] struct {
	client *sources.Client
	kind   data.Kind
	load   loader[V]
	logger *slog.Logger

	mu      sync.Mutex
	value   V
	status  Status
	loading bool
	err     string
	gen     uint64
	cancel  context.CancelFunc
}

func newDetails[V data.Record](client *sources.Client, kind data.Kind, load loader[V]) *Details[V] {
	return &Details[V]{
		client: client,
		kind:   kind,
		load:   load,
		logger: client.Logger(),
	}
}

// Load runs the full lifecycle for id and returns once the state is settled.
func (d *Details[V]) Load(ctx context.Context, id string) {
	ctx, gen := d.begin(ctx)
	logger := d.logger.With("kind", string(d.kind), "id", id, "load_id", uuid.NewString())
	logger.Debug("loading details")

	value, found, err := d.run(ctx, id)
	d.finish(gen, value, found, err, logger)
}

func (d *Details[V]) begin(parent context.Context) (context.Context, uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		d.cancel()
	}
	d.gen++
	var zero V
	d.value = zero
	d.err = ""
	d.status = StatusLoading
	d.loading = true

	ctx, cancel := context.WithCancel(parent)
	d.cancel = cancel
	return ctx, d.gen
}

func (d *Details[V]) run(ctx context.Context, id string) (value V, found bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while loading: %v", r)
		}
	}()

	value, found, err = d.load(ctx, d.client, id)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	return value, found, err
}

func (d *Details[V]) finish(gen uint64, value V, found bool, err error, logger *slog.Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if gen != d.gen {
		logger.Debug("discarding superseded load")
		return
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.loading = false

	switch {
	case err != nil:
		d.status = StatusFailed
		d.err = fmt.Sprintf("Failed to load %s details. Please try again later.", d.kind.Singular())
		logger.Error("failed to load details", "error", err)
	case !found:
		d.status = StatusNotFound
		d.err = fmt.Sprintf("%s details not found.", d.kind.Singular())
	default:
		d.value = value
		d.status = StatusLoaded
	}
}

// Cancel abandons the load in flight, if any. Its result will be discarded.
func (d *Details[V]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel == nil {
		return
	}
	d.cancel()
	d.cancel = nil
	d.gen++
	d.loading = false
	d.status = StatusIdle
}

func (d *Details[V]) Kind() data.Kind {
	return d.kind
}

func (d *Details[V]) Value() V {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}

func (d *Details[V]) Record() data.Record {
	return d.Value()
}

func (d *Details[V]) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

func (d *Details[V]) Err() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

func (d *Details[V]) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// job resolves one reference field into its destination.
type job func(ctx context.Context, c *sources.Client)

func field[T any](dst *[]T, refs data.Refs) job {
	return func(ctx context.Context, c *sources.Client) {
		*dst = Resolve[T](ctx, c, refs)
	}
}

func single[T any](dst **T, ref data.Text) job {
	return func(ctx context.Context, c *sources.Client) {
		*dst = ResolveOne[T](ctx, c, ref)
	}
}

// resolveAll starts every job before waiting for any of them, so the total
// latency is that of the slowest field.
func resolveAll(ctx context.Context, c *sources.Client, jobs ...job) error {
	errs := make([]error, len(jobs))
	var wg sync.WaitGroup
	for i, j := range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("reference resolution panicked: %v", r)
				}
			}()
			j(ctx, c)
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}

func group[T data.Resource](title string, kind data.Kind, items []T) data.Group {
	return data.Group{Title: title, Kind: kind, Items: data.Resources(items)}
}

func optional[T data.Resource](item *T) []T {
	if item == nil {
		return nil
	}
	return []T{*item}
}

// NewDetails returns the detail state machine for kind.
func NewDetails(kind data.Kind, client *sources.Client) (Viewer, error) {
	switch kind {
	case data.KindFilms:
		return NewFilmDetails(client), nil
	case data.KindPeople:
		return NewPersonDetails(client), nil
	case data.KindPlanets:
		return NewPlanetDetails(client), nil
	case data.KindSpecies:
		return NewSpeciesDetails(client), nil
	case data.KindStarships:
		return NewStarshipDetails(client), nil
	case data.KindVehicles:
		return NewVehicleDetails(client), nil
	}
	return nil, fmt.Errorf("unknown resource kind %q", kind)
}

type FilmDetail struct {
	Film       *data.Film
	Characters []data.Person
	Planets    []data.Planet
	Starships  []data.Starship
	Vehicles   []data.Vehicle
	Species    []data.Species
}

func (d FilmDetail) Primary() data.Resource {
	if d.Film == nil {
		return nil
	}
	return *d.Film
}

func (d FilmDetail) Related() []data.Group {
	return []data.Group{
		group("Characters", data.KindPeople, d.Characters),
		group("Planets", data.KindPlanets, d.Planets),
		group("Starships", data.KindStarships, d.Starships),
		group("Vehicles", data.KindVehicles, d.Vehicles),
		group("Species", data.KindSpecies, d.Species),
	}
}

func NewFilmDetails(client *sources.Client) *Details[FilmDetail] {
	return newDetails[FilmDetail](client, data.KindFilms, func(ctx context.Context, c *sources.Client, id string) (FilmDetail, bool, error) {
		film := sources.FetchOne[data.Film](ctx, c, data.KindFilms.ItemPath(id))
		if film == nil {
			return FilmDetail{}, false, nil
		}
		d := FilmDetail{Film: film}
		err := resolveAll(ctx, c,
			field(&d.Characters, film.Characters),
			field(&d.Planets, film.Planets),
			field(&d.Starships, film.Starships),
			field(&d.Vehicles, film.Vehicles),
			field(&d.Species, film.Species),
		)
		return d, true, err
	})
}

type PersonDetail struct {
	Person    *data.Person
	Homeworld *data.Planet
	Films     []data.Film
	Species   []data.Species
	Vehicles  []data.Vehicle
	Starships []data.Starship
}

func (d PersonDetail) Primary() data.Resource {
	if d.Person == nil {
		return nil
	}
	return *d.Person
}

func (d PersonDetail) Related() []data.Group {
	return []data.Group{
		group("Homeworld", data.KindPlanets, optional(d.Homeworld)),
		group("Films", data.KindFilms, d.Films),
		group("Species", data.KindSpecies, d.Species),
		group("Vehicles", data.KindVehicles, d.Vehicles),
		group("Starships", data.KindStarships, d.Starships),
	}
}

func NewPersonDetails(client *sources.Client) *Details[PersonDetail] {
	return newDetails[PersonDetail](client, data.KindPeople, func(ctx context.Context, c *sources.Client, id string) (PersonDetail, bool, error) {
		person := sources.FetchOne[data.Person](ctx, c, data.KindPeople.ItemPath(id))
		if person == nil {
			return PersonDetail{}, false, nil
		}
		d := PersonDetail{Person: person}
		err := resolveAll(ctx, c,
			single(&d.Homeworld, person.Homeworld),
			field(&d.Films, person.Films),
			field(&d.Species, person.Species),
			field(&d.Vehicles, person.Vehicles),
			field(&d.Starships, person.Starships),
		)
		return d, true, err
	})
}

type PlanetDetail struct {
	Planet    *data.Planet
	Residents []data.Person
	Films     []data.Film
}

func (d PlanetDetail) Primary() data.Resource {
	if d.Planet == nil {
		return nil
	}
	return *d.Planet
}

func (d PlanetDetail) Related() []data.Group {
	return []data.Group{
		group("Residents", data.KindPeople, d.Residents),
		group("Films", data.KindFilms, d.Films),
	}
}

func NewPlanetDetails(client *sources.Client) *Details[PlanetDetail] {
	return newDetails[PlanetDetail](client, data.KindPlanets, func(ctx context.Context, c *sources.Client, id string) (PlanetDetail, bool, error) {
		planet := sources.FetchOne[data.Planet](ctx, c, data.KindPlanets.ItemPath(id))
		if planet == nil {
			return PlanetDetail{}, false, nil
		}
		d := PlanetDetail{Planet: planet}
		err := resolveAll(ctx, c,
			field(&d.Residents, planet.Residents),
			field(&d.Films, planet.Films),
		)
		return d, true, err
	})
}

type SpeciesDetail struct {
	Species   *data.Species
	Homeworld *data.Planet
	People    []data.Person
	Films     []data.Film
}

func (d SpeciesDetail) Primary() data.Resource {
	if d.Species == nil {
		return nil
	}
	return *d.Species
}

func (d SpeciesDetail) Related() []data.Group {
	return []data.Group{
		group("Homeworld", data.KindPlanets, optional(d.Homeworld)),
		group("People", data.KindPeople, d.People),
		group("Films", data.KindFilms, d.Films),
	}
}

func NewSpeciesDetails(client *sources.Client) *Details[SpeciesDetail] {
	return newDetails[SpeciesDetail](client, data.KindSpecies, func(ctx context.Context, c *sources.Client, id string) (SpeciesDetail, bool, error) {
		species := sources.FetchOne[data.Species](ctx, c, data.KindSpecies.ItemPath(id))
		if species == nil {
			return SpeciesDetail{}, false, nil
		}
		d := SpeciesDetail{Species: species}
		err := resolveAll(ctx, c,
			single(&d.Homeworld, species.Homeworld),
			field(&d.People, species.People),
			field(&d.Films, species.Films),
		)
		return d, true, err
	})
}

type StarshipDetail struct {
	Starship *data.Starship
	Pilots   []data.Person
	Films    []data.Film
}

func (d StarshipDetail) Primary() data.Resource {
	if d.Starship == nil {
		return nil
	}
	return *d.Starship
}

func (d StarshipDetail) Related() []data.Group {
	return []data.Group{
		group("Pilots", data.KindPeople, d.Pilots),
		group("Films", data.KindFilms, d.Films),
	}
}

func NewStarshipDetails(client *sources.Client) *Details[StarshipDetail] {
	return newDetails[StarshipDetail](client, data.KindStarships, func(ctx context.Context, c *sources.Client, id string) (StarshipDetail, bool, error) {
		ship := sources.FetchOne[data.Starship](ctx, c, data.KindStarships.ItemPath(id))
		if ship == nil {
			return StarshipDetail{}, false, nil
		}
		d := StarshipDetail{Starship: ship}
		err := resolveAll(ctx, c,
			field(&d.Pilots, ship.Pilots),
			field(&d.Films, ship.Films),
		)
		return d, true, err
	})
}

type VehicleDetail struct {
	Vehicle *data.Vehicle
	Pilots  []data.Person
	Films   []data.Film
}

func (d VehicleDetail) Primary() data.Resource {
	if d.Vehicle == nil {
		return nil
	}
	return *d.Vehicle
}

func (d VehicleDetail) Related() []data.Group {
	return []data.Group{
		group("Pilots", data.KindPeople, d.Pilots),
		group("Films", data.KindFilms, d.Films),
	}
}

func NewVehicleDetails(client *sources.Client) *Details[VehicleDetail] {
	return newDetails[VehicleDetail](client, data.KindVehicles, func(ctx context.Context, c *sources.Client, id string) (VehicleDetail, bool, error) {
		vehicle := sources.FetchOne[data.Vehicle](ctx, c, data.KindVehicles.ItemPath(id))
		if vehicle == nil {
			return VehicleDetail{}, false, nil
		}
		d := VehicleDetail{Vehicle: vehicle}
		err := resolveAll(ctx, c,
			field(&d.Pilots, vehicle.Pilots),
			field(&d.Films, vehicle.Films),
		)
		return d, true, err
	})
}
