package data

import (
	"fmt"
	"net/url"
	"strings"
)

// Kind names one of the API's resource collections. Its value is the endpoint.
type Kind string

const (
	KindFilms     Kind = "films"
	KindPeople    Kind = "people"
	KindPlanets   Kind = "planets"
	KindSpecies   Kind = "species"
	KindStarships Kind = "starships"
	KindVehicles  Kind = "vehicles"
)

// Kinds lists every resource kind in tab order.
var Kinds = []Kind{KindFilms, KindPeople, KindPlanets, KindSpecies, KindStarships, KindVehicles}

var kindInfo = map[Kind]struct {
	singular string
	plural   string
	perPage  int
}{
	KindFilms:     {"Film", "Films", 6},
	KindPeople:    {"Person", "People", 8},
	KindPlanets:   {"Planet", "Planets", 9},
	KindSpecies:   {"Species", "Species", 9},
	KindStarships: {"Starship", "Starships", 9},
	KindVehicles:  {"Vehicle", "Vehicles", 9},
}

// ParseKind accepts the endpoint name, case-insensitively. "person", "film",
// etc. are also accepted.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds {
		if s == string(k) || s == strings.ToLower(kindInfo[k].singular) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown resource kind %q (want one of %s)", s, strings.Join(kindNames(), ", "))
}

func kindNames() []string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return names
}

func (k Kind) Valid() bool {
	_, ok := kindInfo[k]
	return ok
}

func (k Kind) Singular() string {
	return kindInfo[k].singular
}

func (k Kind) Plural() string {
	return kindInfo[k].plural
}

// PerPage is the default page size for the kind's listing.
func (k Kind) PerPage() int {
	return kindInfo[k].perPage
}

// Endpoint is the list endpoint path.
func (k Kind) Endpoint() string {
	return string(k)
}

// ItemPath is the path of one resource.
func (k Kind) ItemPath(id string) string {
	return string(k) + "/" + url.PathEscape(strings.Trim(id, "/"))
}

// IDFromURL returns the last path segment of a resource URL.
func IDFromURL(u string) string {
	u = strings.TrimRight(u, "/")
	if i := strings.LastIndex(u, "/"); i >= 0 {
		return u[i+1:]
	}
	return u
}

// KindFromURL returns the collection segment of a resource URL such as
// https://swapi.info/api/people/1.
func KindFromURL(u string) (Kind, bool) {
	parts := strings.Split(strings.TrimRight(u, "/"), "/")
	if len(parts) < 2 {
		return "", false
	}
	k := Kind(parts[len(parts)-2])
	return k, k.Valid()
}
