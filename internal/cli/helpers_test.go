package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
)

// fakePokeAPI serves a small catalog in PokeAPI's wire format.
type fakePokeAPI struct {
	server     *httptest.Server
	names      []string
	listHits   atomic.Int32
	detailHits atomic.Int32
}

func newFakePokeAPI(t *testing.T, total int) *fakePokeAPI {
	t.Helper()
	names := []string{"bulbasaur", "ivysaur", "venusaur", "charmander", "charmeleon", "charizard", "squirtle", "wartortle", "blastoise"}
	for id := len(names) + 1; id <= total; id++ {
		names = append(names, fmt.Sprintf("mon-%d", id))
	}
	names = names[:total]

	f := &fakePokeAPI{names: names}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /pokemon", f.handleList)
	mux.HandleFunc("GET /pokemon/{name}", f.handleDetail)
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakePokeAPI) handleList(w http.ResponseWriter, r *http.Request) {
	f.listHits.Add(1)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	end := min(offset+limit, len(f.names))
	start := min(offset, end)
	results := make([]map[string]string, 0, end-start)
	for i := start; i < end; i++ {
		results = append(results, map[string]string{
			"name": f.names[i],
			"url":  fmt.Sprintf("%s/pokemon/%d/", f.server.URL, i+1),
		})
	}

	var next any
	if end < len(f.names) {
		next = fmt.Sprintf("%s/pokemon?offset=%d&limit=%d", f.server.URL, end, limit)
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"count":    len(f.names),
		"next":     next,
		"previous": nil,
		"results":  results,
	})
}

func (f *fakePokeAPI) handleDetail(w http.ResponseWriter, r *http.Request) {
	f.detailHits.Add(1)
	key := r.PathValue("name")
	id := 0
	for i, name := range f.names {
		if name == key || strconv.Itoa(i+1) == key {
			id = i + 1
			break
		}
	}
	if id == 0 {
		http.NotFound(w, r)
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":     id,
		"name":   f.names[id-1],
		"height": 7,
		"weight": 69,
		"types": []any{
			map[string]any{"slot": 1, "type": map[string]string{"name": "grass"}},
			map[string]any{"slot": 2, "type": map[string]string{"name": "poison"}},
		},
		"stats": []any{
			map[string]any{"base_stat": 45, "effort": 0, "stat": map[string]string{"name": "hp"}},
			map[string]any{"base_stat": 65, "effort": 1, "stat": map[string]string{"name": "special-attack"}},
		},
		"abilities": []any{
			map[string]any{"slot": 1, "is_hidden": false, "ability": map[string]string{"name": "overgrow"}},
		},
		"sprites": map[string]any{"front_default": nil, "front_shiny": nil},
	})
}

// setupEnv points the CLI at api and a private home directory.
func setupEnv(t *testing.T, api *fakePokeAPI) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("POKEDEX_HOME", home)
	t.Setenv("POKEDEX_API_BASE_URL", api.server.URL)
	return home
}

// executeCmd runs the root command with args and returns stdout and stderr.
func executeCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd("v0.0.0-test")
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
