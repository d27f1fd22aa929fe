package data

import (
	"cmp"
	"time"
)

// Resource is one addressable entity returned by the API. Its URL is both its
// identity and the way other resources refer to it.
type Resource interface {
	DisplayName() string
	ResourceURL() string
	Fields() []Field
}

// Field is a labelled attribute for display.
type Field struct {
	Label string
	Value string
}

// Group is one resolved reference field of a loaded resource.
type Group struct {
	Title string
	Kind  Kind
	Items []Resource
}

// Record is a loaded resource together with its resolved references.
type Record interface {
	Primary() Resource
	Related() []Group
}

type Film struct {
	Title        Text   `json:"title"`
	EpisodeID    OptInt `json:"episode_id"`
	OpeningCrawl Text   `json:"opening_crawl"`
	Director     Text   `json:"director"`
	Producer     Text   `json:"producer"`
	ReleaseDate  Text   `json:"release_date"`
	URL          Text   `json:"url"`
	Characters   Refs   `json:"characters"`
	Planets      Refs   `json:"planets"`
	Starships    Refs   `json:"starships"`
	Vehicles     Refs   `json:"vehicles"`
	Species      Refs   `json:"species"`
}

func (f Film) DisplayName() string { return string(f.Title) }
func (f Film) ResourceURL() string { return string(f.URL) }

func (f Film) Fields() []Field {
	return fields(
		"Episode", f.EpisodeID.String(),
		"Director", string(f.Director),
		"Producer", string(f.Producer),
		"Release date", string(f.ReleaseDate),
	)
}

// CompareEpisode orders films by episode number; films without one sort last.
func CompareEpisode(a, b Film) int {
	switch {
	case a.EpisodeID.Valid && b.EpisodeID.Valid:
		return cmp.Compare(a.EpisodeID.Value, b.EpisodeID.Value)
	case a.EpisodeID.Valid:
		return -1
	case b.EpisodeID.Valid:
		return 1
	}
	return 0
}

type Person struct {
	Name      Text `json:"name"`
	Height    Text `json:"height"`
	Mass      Text `json:"mass"`
	HairColor Text `json:"hair_color"`
	SkinColor Text `json:"skin_color"`
	EyeColor  Text `json:"eye_color"`
	BirthYear Text `json:"birth_year"`
	Gender    Text `json:"gender"`
	Homeworld Text `json:"homeworld"`
	URL       Text `json:"url"`
	Films     Refs `json:"films"`
	Species   Refs `json:"species"`
	Vehicles  Refs `json:"vehicles"`
	Starships Refs `json:"starships"`
}

func (p Person) DisplayName() string { return string(p.Name) }
func (p Person) ResourceURL() string { return string(p.URL) }

func (p Person) Fields() []Field {
	return fields(
		"Height", string(p.Height),
		"Mass", string(p.Mass),
		"Hair color", string(p.HairColor),
		"Skin color", string(p.SkinColor),
		"Eye color", string(p.EyeColor),
		"Birth year", string(p.BirthYear),
		"Gender", string(p.Gender),
	)
}

type Planet struct {
	Name           Text `json:"name"`
	RotationPeriod Text `json:"rotation_period"`
	OrbitalPeriod  Text `json:"orbital_period"`
	Diameter       Text `json:"diameter"`
	Climate        Text `json:"climate"`
	Gravity        Text `json:"gravity"`
	Terrain        Text `json:"terrain"`
	SurfaceWater   Text `json:"surface_water"`
	Population     Text `json:"population"`
	URL            Text `json:"url"`
	Residents      Refs `json:"residents"`
	Films          Refs `json:"films"`
}

func (p Planet) DisplayName() string { return string(p.Name) }
func (p Planet) ResourceURL() string { return string(p.URL) }

func (p Planet) Fields() []Field {
	return fields(
		"Climate", string(p.Climate),
		"Terrain", string(p.Terrain),
		"Gravity", string(p.Gravity),
		"Diameter", string(p.Diameter),
		"Population", string(p.Population),
		"Surface water", string(p.SurfaceWater),
		"Rotation period", string(p.RotationPeriod),
		"Orbital period", string(p.OrbitalPeriod),
	)
}

type Species struct {
	Name            Text `json:"name"`
	Classification  Text `json:"classification"`
	Designation     Text `json:"designation"`
	AverageHeight   Text `json:"average_height"`
	AverageLifespan Text `json:"average_lifespan"`
	SkinColors      Text `json:"skin_colors"`
	HairColors      Text `json:"hair_colors"`
	EyeColors       Text `json:"eye_colors"`
	Language        Text `json:"language"`
	Homeworld       Text `json:"homeworld"`
	URL             Text `json:"url"`
	People          Refs `json:"people"`
	Films           Refs `json:"films"`
}

func (s Species) DisplayName() string { return string(s.Name) }
func (s Species) ResourceURL() string { return string(s.URL) }

func (s Species) Fields() []Field {
	return fields(
		"Classification", string(s.Classification),
		"Designation", string(s.Designation),
		"Language", string(s.Language),
		"Average height", string(s.AverageHeight),
		"Average lifespan", string(s.AverageLifespan),
		"Skin colors", string(s.SkinColors),
		"Hair colors", string(s.HairColors),
		"Eye colors", string(s.EyeColors),
	)
}

type Starship struct {
	Name                 Text `json:"name"`
	Model                Text `json:"model"`
	Manufacturer         Text `json:"manufacturer"`
	CostInCredits        Text `json:"cost_in_credits"`
	Length               Text `json:"length"`
	MaxAtmospheringSpeed Text `json:"max_atmosphering_speed"`
	Crew                 Text `json:"crew"`
	Passengers           Text `json:"passengers"`
	CargoCapacity        Text `json:"cargo_capacity"`
	HyperdriveRating     Text `json:"hyperdrive_rating"`
	MGLT                 Text `json:"MGLT"`
	StarshipClass        Text `json:"starship_class"`
	URL                  Text `json:"url"`
	Pilots               Refs `json:"pilots"`
	Films                Refs `json:"films"`
}

func (s Starship) DisplayName() string { return string(s.Name) }
func (s Starship) ResourceURL() string { return string(s.URL) }

func (s Starship) Fields() []Field {
	return fields(
		"Model", string(s.Model),
		"Class", string(s.StarshipClass),
		"Manufacturer", string(s.Manufacturer),
		"Cost (credits)", string(s.CostInCredits),
		"Length", string(s.Length),
		"Crew", string(s.Crew),
		"Passengers", string(s.Passengers),
		"Cargo capacity", string(s.CargoCapacity),
		"Max atmosphering speed", string(s.MaxAtmospheringSpeed),
		"Hyperdrive rating", string(s.HyperdriveRating),
		"MGLT", string(s.MGLT),
	)
}

type Vehicle struct {
	Name                 Text `json:"name"`
	Model                Text `json:"model"`
	Manufacturer         Text `json:"manufacturer"`
	CostInCredits        Text `json:"cost_in_credits"`
	Length               Text `json:"length"`
	MaxAtmospheringSpeed Text `json:"max_atmosphering_speed"`
	Crew                 Text `json:"crew"`
	Passengers           Text `json:"passengers"`
	CargoCapacity        Text `json:"cargo_capacity"`
	VehicleClass         Text `json:"vehicle_class"`
	URL                  Text `json:"url"`
	Pilots               Refs `json:"pilots"`
	Films                Refs `json:"films"`
}

func (v Vehicle) DisplayName() string { return string(v.Name) }
func (v Vehicle) ResourceURL() string { return string(v.URL) }

func (v Vehicle) Fields() []Field {
	return fields(
		"Model", string(v.Model),
		"Class", string(v.VehicleClass),
		"Manufacturer", string(v.Manufacturer),
		"Cost (credits)", string(v.CostInCredits),
		"Length", string(v.Length),
		"Crew", string(v.Crew),
		"Passengers", string(v.Passengers),
		"Cargo capacity", string(v.CargoCapacity),
		"Max atmosphering speed", string(v.MaxAtmospheringSpeed),
	)
}

// fields builds label/value pairs, skipping empty values.
func fields(pairs ...string) []Field {
	out := make([]Field, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		out = append(out, Field{Label: pairs[i], Value: pairs[i+1]})
	}
	return out
}

// Resources converts a typed slice to the Resource interface.
func Resources[T Resource](items []T) []Resource {
	out := make([]Resource, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// Entry is a resource bookmarked in the local library.
type Entry struct {
	ID      string
	Kind    Kind
	URL     string
	Name    string
	Note    string
	SavedAt time.Time
}

func (e Entry) DisplayName() string { return e.Name }
func (e Entry) ResourceURL() string { return e.URL }

func (e Entry) Fields() []Field {
	saved := ""
	if !e.SavedAt.IsZero() {
		saved = e.SavedAt.Local().Format("2006-01-02 15:04")
	}
	return fields(
		"Kind", e.Kind.Singular(),
		"Note", e.Note,
		"Saved", saved,
	)
}
