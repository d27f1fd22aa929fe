package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kerbaras/holocron/pkg/sources"
	"github.com/kerbaras/holocron/pkg/utils"
)

const slowDelay = 150 * time.Millisecond

var peopleNames = []string{
	"Luke Skywalker", "C-3PO", "R2-D2", "Darth Vader", "Leia Organa", "Owen Lars",
	"Beru Whitesun lars", "R5-D4", "Biggs Darklighter", "Obi-Wan Kenobi",
	"Anakin Skywalker", "Wilhuff Tarkin", "Chewbacca", "Han Solo", "Greedo",
	"Jabba Desilijic Tiure", "Wedge Antilles",
}

// swapiFixture serves a small slice of the API. Paths containing "slow" answer
// after slowDelay and announce themselves on started.
type swapiFixture struct {
	server  *httptest.Server
	base    string
	started chan string

	mu   sync.Mutex
	hits int
}

func newSwapiFixture(t *testing.T) *swapiFixture {
	t.Helper()

	f := &swapiFixture{started: make(chan string, 64)}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	f.base = f.server.URL + "/api/"
	t.Cleanup(f.server.Close)
	return f
}

func (f *swapiFixture) client(opts ...sources.ClientOption) *sources.Client {
	return sources.NewClient(utils.NewAPI(f.base), opts...)
}

func (f *swapiFixture) url(path string) string {
	return f.base + path
}

func (f *swapiFixture) requests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits
}

func (f *swapiFixture) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits++
	f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/api/")
	if strings.Contains(path, "slow") {
		select {
		case f.started <- path:
		default:
		}
		select {
		case <-time.After(slowDelay):
		case <-r.Context().Done():
			return
		}
		fmt.Fprintf(w, `{"name":"Slow %[1]s","title":"Slow %[1]s","url":"%[2]s%[1]s"}`, path, f.base)
		return
	}

	body, ok := f.route(path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if body == "" {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(strings.ReplaceAll(body, "{base}", f.base)))
}

func (f *swapiFixture) route(path string) (string, bool) {
	switch path {
	case "films":
		return `[
			{"title":"Return of the Jedi","episode_id":6,"url":"{base}films/3"},
			{"title":"A New Hope","episode_id":4,"url":"{base}films/1"},
			{"title":"The Empire Strikes Back","episode_id":"5","url":"{base}films/2"}
		]`, true
	case "films/1":
		return `{
			"title":"A New Hope","episode_id":4,"director":"George Lucas",
			"opening_crawl":"It is a period of civil war.",
			"url":"{base}films/1",
			"characters":["{base}people/1","{base}people/2","{base}people/404","{base}people/null"],
			"planets":["{base}planets/1"],
			"starships":[],
			"vehicles":null
		}`, true
	case "films/7":
		return `{
			"title":"Slow Film","episode_id":7,"url":"{base}films/7",
			"characters":["{base}people/slow1","{base}people/slow2"],
			"planets":["{base}planets/slow1"],
			"starships":["{base}starships/slow1"],
			"vehicles":["{base}vehicles/slow1"],
			"species":["{base}species/slow1"]
		}`, true
	case "people":
		items := make([]string, len(peopleNames))
		for i, name := range peopleNames {
			items[i] = fmt.Sprintf(`{"name":%q,"url":"{base}people/%d"}`, name, i+1)
		}
		return "[" + strings.Join(items, ",") + "]", true
	case "people/1":
		return `{
			"name":"Luke Skywalker","height":"172","url":"{base}people/1",
			"homeworld":"{base}planets/1",
			"films":["{base}films/1"],
			"species":[],
			"vehicles":["{base}vehicles/404"],
			"starships":[]
		}`, true
	case "films/0", "people/null":
		return `null`, true
	case "people/2":
		return `{"name":"C-3PO","url":"{base}people/2","homeworld":"{base}planets/1"}`, true
	case "planets":
		return "", true
	case "planets/1":
		return `{
			"name":"Tatooine","population":"200000","url":"{base}planets/1",
			"residents":["{base}people/1","{base}people/2"],
			"films":["{base}films/1"]
		}`, true
	}
	return "", false
}
