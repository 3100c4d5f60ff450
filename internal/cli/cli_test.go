package cli

import (
	"bufio"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestVersionCmd(t *testing.T) {
	setupEnv(t, newFakePokeAPI(t, 1))

	out, _, err := executeCmd(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pokedex ")

	out, _, err = executeCmd(t, "version", "--output", "json")
	require.NoError(t, err)
	var info versionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info.Version)
}

func TestListCmd_Table(t *testing.T) {
	setupEnv(t, newFakePokeAPI(t, 30))

	out, _, err := executeCmd(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "#001")
	assert.Contains(t, out, "Bulbasaur")
	assert.Contains(t, out, "More results available: --offset 20 --limit 20")
}

func TestListCmd_JSONIncludesPagination(t *testing.T) {
	setupEnv(t, newFakePokeAPI(t, 30))

	out, _, err := executeCmd(t, "list", "--output", "json")
	require.NoError(t, err)

	var result listResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Len(t, result.Items, 20)
	assert.Equal(t, 1, result.Items[0].ID)
	assert.True(t, result.Pagination.HasMore)
	require.NotNil(t, result.Pagination.NextOffset)
	assert.Equal(t, 20, *result.Pagination.NextOffset)
}

func TestListCmd_PageModeYAML(t *testing.T) {
	setupEnv(t, newFakePokeAPI(t, 12))

	out, _, err := executeCmd(t, "list", "--page", "3", "--page-size", "5", "--output", "yaml")
	require.NoError(t, err)

	var result listResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &result))
	require.Len(t, result.Items, 2)
	assert.Equal(t, 11, result.Items[0].ID)
	assert.Equal(t, 3, result.Pagination.Page)
	assert.False(t, result.Pagination.HasMore)
	assert.Nil(t, result.Pagination.NextPage)
}

func TestListCmd_SearchWithDetails(t *testing.T) {
	api := newFakePokeAPI(t, 30)
	setupEnv(t, api)

	out, _, err := executeCmd(t, "list", "--query", "SAUR", "--details", "--output", "ndjson", "--sort", "name:desc")
	require.NoError(t, err)

	var rows []listRow
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var row listRow
		require.NoError(t, json.Unmarshal(sc.Bytes(), &row))
		rows = append(rows, row)
	}
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"venusaur", "ivysaur", "bulbasaur"}, []string{rows[0].Name, rows[1].Name, rows[2].Name})
	assert.Equal(t, []string{"grass", "poison"}, rows[0].Types)
	assert.Equal(t, int32(3), api.detailHits.Load())
}

func TestListCmd_SearchByNumber(t *testing.T) {
	setupEnv(t, newFakePokeAPI(t, 30))

	out, _, err := executeCmd(t, "list", "--query", "#004", "--output", "json")
	require.NoError(t, err)
	var result listResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Items, 1)
	assert.Equal(t, "charmander", result.Items[0].Name)
}

func TestListCmd_NoMatches(t *testing.T) {
	setupEnv(t, newFakePokeAPI(t, 30))

	out, _, err := executeCmd(t, "list", "--query", "zzz")
	require.NoError(t, err)
	assert.Contains(t, out, `No Pokémon match "zzz"`)
}

func TestListCmd_CachesPages(t *testing.T) {
	api := newFakePokeAPI(t, 30)
	setupEnv(t, api)

	_, _, err := executeCmd(t, "list")
	require.NoError(t, err)
	_, _, err = executeCmd(t, "list")
	require.NoError(t, err)
	assert.Equal(t, int32(1), api.listHits.Load(), "second run is served from the cache")

	_, _, err = executeCmd(t, "list", "--no-cache")
	require.NoError(t, err)
	assert.Equal(t, int32(2), api.listHits.Load())
}

func TestListCmd_InvalidFlags(t *testing.T) {
	setupEnv(t, newFakePokeAPI(t, 3))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "zero limit", args: []string{"list", "--limit", "0"}, want: "limit must be between"},
		{name: "unknown output", args: []string{"list", "--output", "xml"}, want: "unsupported output format"},
		{name: "page without size", args: []string{"list", "--page", "2"}, want: "page-size must be specified"},
		{name: "bad sort", args: []string{"list", "--sort", "weight"}, want: "invalid sort field"},
		{name: "bad concurrency", args: []string{"list", "--concurrency", "0"}, want: "concurrency must be at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCmd(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestShowCmd(t *testing.T) {
	setupEnv(t, newFakePokeAPI(t, 30))

	out, _, err := executeCmd(t, "show", "Bulbasaur")
	require.NoError(t, err)
	assert.Contains(t, out, "#001 Bulbasaur")
	assert.Contains(t, out, "Grass / Poison")
	assert.Contains(t, out, "0.7 m")
	assert.Contains(t, out, "Sp. Atk")
	assert.Contains(t, out, "Overgrow")

	out, _, err = executeCmd(t, "show", "#004", "--output", "json")
	require.NoError(t, err)
	var d struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, 4, d.ID)
	assert.Equal(t, "charmander", d.Name)
}

func TestShowCmd_Errors(t *testing.T) {
	setupEnv(t, newFakePokeAPI(t, 3))

	_, _, err := executeCmd(t, "show", "missingno")
	require.Error(t, err)
	assert.Equal(t, ExitNotFound, ExitCode(err))
	assert.Contains(t, err.Error(), "Pokémon not found")

	_, _, err = executeCmd(t, "show", "  ")
	require.Error(t, err)
	assert.Equal(t, ExitUsage, ExitCode(err))

	_, _, err = executeCmd(t, "show")
	require.Error(t, err)
}

func TestShowCmd_Unreachable(t *testing.T) {
	api := newFakePokeAPI(t, 3)
	setupEnv(t, api)
	api.server.Close()

	_, _, err := executeCmd(t, "show", "bulbasaur", "--no-cache")
	require.Error(t, err)
	assert.Equal(t, ExitUnavailable, ExitCode(err))
}

func TestBrowseCmd_Plain(t *testing.T) {
	setupEnv(t, newFakePokeAPI(t, 30))

	out, _, err := executeCmd(t, "browse", "--plain")
	require.NoError(t, err)
	lines := nonEmptyLines(out)
	require.Len(t, lines, 20)
	assert.Equal(t, "#001 Bulbasaur", lines[0])

	out, _, err = executeCmd(t, "browse", "--plain", "--pages", "5")
	require.NoError(t, err)
	assert.Len(t, nonEmptyLines(out), 30, "stops when the list is exhausted")

	out, _, err = executeCmd(t, "browse", "--plain", "--query", "char")
	require.NoError(t, err)
	assert.Equal(t, []string{"#004 Charmander", "#005 Charmeleon", "#006 Charizard"}, nonEmptyLines(out))
}

func TestBrowseCmd_PageSizeFromEnvironment(t *testing.T) {
	setupEnv(t, newFakePokeAPI(t, 30))
	t.Setenv("POKEDEX_BROWSER_PAGE_SIZE", "5")

	out, _, err := executeCmd(t, "browse", "--plain", "--pages", "2")
	require.NoError(t, err)
	assert.Len(t, nonEmptyLines(out), 10)
}

func TestCacheCmds(t *testing.T) {
	setupEnv(t, newFakePokeAPI(t, 30))

	_, _, err := executeCmd(t, "list")
	require.NoError(t, err)
	_, _, err = executeCmd(t, "show", "bulbasaur")
	require.NoError(t, err)

	out, _, err := executeCmd(t, "cache", "stats", "--output", "json")
	require.NoError(t, err)
	var report cacheReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.Entries)
	assert.Zero(t, report.Expired)
	assert.Positive(t, report.Bytes)
	assert.NotNil(t, report.Oldest)

	out, _, err = executeCmd(t, "cache", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Entries:")
	assert.Contains(t, out, "TTL:")

	out, _, err = executeCmd(t, "cache", "prune")
	require.NoError(t, err)
	assert.Contains(t, out, "Pruned 0 cache entries")

	out, _, err = executeCmd(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 2 cache entries")

	_, _, err = executeCmd(t, "cache", "stats", "--no-cache")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache is disabled")
}

func TestConfigCmds(t *testing.T) {
	setupEnv(t, newFakePokeAPI(t, 1))

	out, _, err := executeCmd(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")

	_, _, err = executeCmd(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = executeCmd(t, "config", "init", "--force")
	require.NoError(t, err)

	out, _, err = executeCmd(t, "config", "get", "browser.page_size")
	require.NoError(t, err)
	assert.Equal(t, "20\n", out)

	_, _, err = executeCmd(t, "config", "set", "browser.page_size", "30")
	require.NoError(t, err)
	out, _, err = executeCmd(t, "config", "get", "browser.page_size")
	require.NoError(t, err)
	assert.Equal(t, "30\n", out)

	_, _, err = executeCmd(t, "config", "set", "browser.page_size", "0")
	require.Error(t, err)

	_, _, err = executeCmd(t, "config", "get", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")

	out, _, err = executeCmd(t, "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "api.base_url")
	assert.Contains(t, out, "browser.page_size")

	out, _, err = executeCmd(t, "config", "validate", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "Page size: 30")
}

func TestConfigValidate_ReportsInvalidEnvironment(t *testing.T) {
	setupEnv(t, newFakePokeAPI(t, 1))
	t.Setenv("POKEDEX_BROWSER_PAGE_SIZE", "-3")

	_, _, err := executeCmd(t, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")

	_, _, err = executeCmd(t, "list")
	require.Error(t, err, "strict commands refuse an invalid configuration")
	assert.Equal(t, ExitUsage, ExitCode(err))
}

func TestRootCmd_NegativeCacheTTL(t *testing.T) {
	setupEnv(t, newFakePokeAPI(t, 1))

	_, _, err := executeCmd(t, "list", "--cache-ttl", "-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache-ttl must be >= 0")
}
