// Package swapitest provides an in-process fake of the SWAPI endpoints holocron uses.
package swapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// Server is a fake SWAPI backed by httptest.Server. Resource paths are of the form
// /api/{kind}/{id}/ and every URL in a response points back at the server.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	resources map[string]map[string]any
	failures  map[string]int
	delays    map[string]time.Duration
	requests  map[string]int
}

// NewServer starts a fake seeded with a handful of characters and their relations.
// Callers must Close it.
func NewServer() *Server {
	s := &Server{
		resources: make(map[string]map[string]any),
		failures:  make(map[string]int),
		delays:    make(map[string]time.Duration),
		requests:  make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	s.seed()
	return s
}

// BaseURL is the API root to hand to swapi.WithBaseURL.
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

// ResourceURL returns the absolute URL of kind/id.
func (s *Server) ResourceURL(kind, id string) string {
	return fmt.Sprintf("%s/api/%s/%s/", s.URL, kind, id)
}

// Put stores or replaces a resource; its "url" field is set to ResourceURL(kind, id).
func (s *Server) Put(kind, id string, doc map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc["url"] = s.ResourceURL(kind, id)
	s.resources[resourcePath(kind, id)] = doc
}

// FailWith makes requests for kind/id answer with status.
func (s *Server) FailWith(kind, id string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[resourcePath(kind, id)] = status
}

// Delay holds responses for kind/id for d before answering.
func (s *Server) Delay(kind, id string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays[resourcePath(kind, id)] = d
}

// Requests returns how many requests hit paths under kind (e.g. "films").
func (s *Server) Requests(kind string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for path, n := range s.requests {
		if strings.HasPrefix(path, "/api/"+kind+"/") {
			total += n
		}
	}
	return total
}

// TotalRequests returns the number of requests served.
func (s *Server) TotalRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.requests {
		total += n
	}
	return total
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}

	s.mu.Lock()
	s.requests[path]++
	doc, ok := s.resources[path]
	status, failing := s.failures[path]
	delay := s.delays[path]
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case failing && status == http.StatusOK:
		// 200 with a body that is not JSON.
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	case failing:
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"detail":"forced failure"}`))
	case !ok:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not found"}`))
	default:
		_ = json.NewEncoder(w).Encode(doc)
	}
}

func resourcePath(kind, id string) string {
	return fmt.Sprintf("/api/%s/%s/", kind, id)
}

func (s *Server) refs(kind string, ids ...string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.ResourceURL(kind, id))
	}
	return out
}

func (s *Server) seed() {
	s.Put("people", "1", map[string]any{
		"name":       "Luke Skywalker",
		"height":     "172",
		"mass":       "77",
		"hair_color": "blond",
		"skin_color": "fair",
		"eye_color":  "blue",
		"birth_year": "19BBY",
		"gender":     "male",
		"films":      s.refs("films", "1", "2", "3", "6"),
		"starships":  s.refs("starships", "12", "22"),
		"vehicles":   s.refs("vehicles", "14", "30"),
	})
	s.Put("people", "2", map[string]any{
		"name":       "C-3PO",
		"height":     "167",
		"mass":       "75",
		"hair_color": "n/a",
		"skin_color": "gold",
		"eye_color":  "yellow",
		"birth_year": "112BBY",
		"gender":     "n/a",
		"films":      s.refs("films", "1", "2", "3", "4", "5", "6"),
		"starships":  []string{},
		"vehicles":   []string{},
	})
	// A record with no relations and no sequence keys at all.
	s.Put("people", "99", map[string]any{
		"name":       "Nobody",
		"height":     "unknown",
		"mass":       "unknown",
		"hair_color": "none",
		"skin_color": "grey",
		"eye_color":  "black",
		"birth_year": "unknown",
		"gender":     "none",
	})

	films := []struct {
		id, title, release string
		episode            int
	}{
		{"1", "A New Hope", "1977-05-25", 4},
		{"2", "The Empire Strikes Back", "1980-05-17", 5},
		{"3", "Return of the Jedi", "1983-05-25", 6},
		{"4", "The Phantom Menace", "1999-05-19", 1},
		{"5", "Attack of the Clones", "2002-05-16", 2},
		{"6", "Revenge of the Sith", "2005-05-19", 3},
	}
	for _, f := range films {
		s.Put("films", f.id, map[string]any{
			"title":        f.title,
			"episode_id":   f.episode,
			"director":     "George Lucas",
			"producer":     "Rick McCallum",
			"release_date": f.release,
		})
	}

	s.Put("starships", "12", map[string]any{
		"name":            "X-wing",
		"model":           "T-65 X-wing",
		"manufacturer":    "Incom Corporation",
		"cost_in_credits": "149999",
		"starship_class":  "Starfighter",
	})
	s.Put("starships", "22", map[string]any{
		"name":            "Imperial shuttle",
		"model":           "Lambda-class T-4a shuttle",
		"manufacturer":    "Sienar Fleet Systems",
		"cost_in_credits": "240000",
		"starship_class":  "Armed government transport",
	})
	s.Put("vehicles", "14", map[string]any{
		"name":            "Snowspeeder",
		"model":           "t-47 airspeeder",
		"manufacturer":    "Incom corporation",
		"cost_in_credits": "unknown",
		"vehicle_class":   "airspeeder",
	})
	s.Put("vehicles", "30", map[string]any{
		"name":            "Imperial Speeder Bike",
		"model":           "74-Z speeder bike",
		"manufacturer":    "Aratech Repulsor Company",
		"cost_in_credits": "8000",
		"vehicle_class":   "speeder",
	})
}
