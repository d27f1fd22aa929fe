package data

import (
	"encoding/json"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilmDecode(t *testing.T) {
	raw := `{
		"title": "A New Hope",
		"episode_id": 4,
		"director": "George Lucas",
		"release_date": "1977-05-25",
		"url": "https://swapi.info/api/films/1",
		"characters": ["https://swapi.info/api/people/1", "https://swapi.info/api/people/2"],
		"planets": ["https://swapi.info/api/planets/1"]
	}`

	var film Film
	require.NoError(t, json.Unmarshal([]byte(raw), &film))

	assert.Equal(t, "A New Hope", film.DisplayName())
	assert.Equal(t, "https://swapi.info/api/films/1", film.ResourceURL())
	assert.Equal(t, Int(4), film.EpisodeID)
	assert.Len(t, film.Characters, 2)
	assert.Len(t, film.Planets, 1)
	assert.Empty(t, film.Starships)
	assert.Empty(t, film.Species)
}

func TestMalformedFieldsAreTolerated(t *testing.T) {
	raw := `{
		"name": "Luke Skywalker",
		"height": 172,
		"mass": null,
		"hair_color": {"unexpected": true},
		"films": "not-a-list",
		"starships": ["https://swapi.info/api/starships/12", 7, null],
		"species": null
	}`

	var person Person
	require.NoError(t, json.Unmarshal([]byte(raw), &person))

	assert.Equal(t, Text("Luke Skywalker"), person.Name)
	assert.Equal(t, Text("172"), person.Height)
	assert.Equal(t, Text(""), person.Mass)
	assert.Equal(t, Text(""), person.HairColor)
	assert.Empty(t, person.Films)
	assert.Equal(t, Refs{"https://swapi.info/api/starships/12"}, person.Starships)
	assert.Empty(t, person.Species)
}

func TestOptInt(t *testing.T) {
	cases := map[string]OptInt{
		`4`:       Int(4),
		`"5"`:     Int(5),
		`null`:    {},
		`"n/a"`:   {},
		`4.5`:     {},
		`[1,2,3]`: {},
	}
	for in, want := range cases {
		var got OptInt
		require.NoError(t, json.Unmarshal([]byte(in), &got), in)
		assert.Equal(t, want, got, in)
	}

	out, err := json.Marshal(struct{ E OptInt }{Int(6)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"E":6}`, string(out))
}

func TestTextKnown(t *testing.T) {
	assert.True(t, Text("arid").Known())
	assert.False(t, Text("unknown").Known())
	assert.False(t, Text("n/a").Known())
	assert.False(t, Text("").Known())
}

func TestCompareEpisode(t *testing.T) {
	films := []Film{
		{Title: "Return of the Jedi", EpisodeID: Int(6)},
		{Title: "Untitled"},
		{Title: "A New Hope", EpisodeID: Int(4)},
		{Title: "The Empire Strikes Back", EpisodeID: Int(5)},
	}
	slices.SortStableFunc(films, CompareEpisode)

	titles := make([]string, len(films))
	for i, f := range films {
		titles[i] = f.DisplayName()
	}
	assert.Equal(t, []string{"A New Hope", "The Empire Strikes Back", "Return of the Jedi", "Untitled"}, titles)
}

func TestFieldsSkipEmptyValues(t *testing.T) {
	planet := Planet{Name: "Tatooine", Climate: "arid", Population: "200000"}

	fields := planet.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, Field{Label: "Climate", Value: "arid"}, fields[0])
	assert.Equal(t, Field{Label: "Population", Value: "200000"}, fields[1])
}

func TestKinds(t *testing.T) {
	perPage := map[Kind]int{KindFilms: 6, KindPeople: 8, KindPlanets: 9, KindSpecies: 9, KindStarships: 9, KindVehicles: 9}
	for kind, want := range perPage {
		assert.Equal(t, want, kind.PerPage(), kind)
	}

	k, err := ParseKind("Person")
	require.NoError(t, err)
	assert.Equal(t, KindPeople, k)

	k, err = ParseKind("starships")
	require.NoError(t, err)
	assert.Equal(t, KindStarships, k)

	_, err = ParseKind("droids")
	assert.Error(t, err)

	assert.Equal(t, "films/4", KindFilms.ItemPath("/4/"))
}

func TestURLHelpers(t *testing.T) {
	assert.Equal(t, "12", IDFromURL("https://swapi.info/api/starships/12"))
	assert.Equal(t, "12", IDFromURL("https://swapi.info/api/starships/12/"))

	k, ok := KindFromURL("https://swapi.info/api/people/1")
	assert.True(t, ok)
	assert.Equal(t, KindPeople, k)

	_, ok = KindFromURL("https://swapi.info/api/droids/1")
	assert.False(t, ok)
}

func TestResources(t *testing.T) {
	people := []Person{{Name: "Leia"}, {Name: "Han"}}
	res := Resources(people)
	require.Len(t, res, 2)
	assert.Equal(t, "Han", res[1].DisplayName())
	assert.Nil(t, One(""))
	assert.Equal(t, Refs{"https://swapi.info/api/planets/1"}, One("https://swapi.info/api/planets/1"))
}

func TestEntryIsResource(t *testing.T) {
	saved := time.Date(2024, 5, 4, 12, 0, 0, 0, time.Local)
	var r Resource = Entry{Kind: KindStarships, URL: "https://swapi.info/api/starships/10", Name: "Millennium Falcon", SavedAt: saved}

	assert.Equal(t, "Millennium Falcon", r.DisplayName())
	assert.Equal(t, "https://swapi.info/api/starships/10", r.ResourceURL())
	assert.Equal(t, []Field{
		{Label: "Kind", Value: "Starship"},
		{Label: "Saved", Value: "2024-05-04 12:00"},
	}, r.Fields(), "empty note is skipped")
}
