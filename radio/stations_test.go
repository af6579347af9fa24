package radio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"stations":[
		{"name":"Groove Salad","url":"http://ice1.somafm.com/groovesalad-128-mp3"},
		{"name":"","url":"http://example.com/stream"},
		{"name":"Broken","url":""}
	]}`), 0644))

	table, err := LoadStations(path)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "Groove Salad", table.At(0).Name)
	assert.Equal(t, "http://example.com/stream", table.At(1).Name, "missing name falls back to url")
}

func TestLoadStations_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadStations(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"stations":`), 0644))
	_, err = LoadStations(bad)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"stations":[]}`), 0644))
	_, err = LoadStations(empty)
	assert.ErrorIs(t, err, ErrNoStations)
}

func TestNewTable_Limits(t *testing.T) {
	var stations []Station
	for i := 0; i < MaxStations+5; i++ {
		stations = append(stations, Station{
			Name: strings.Repeat("n", 60),
			URL:  "http://example.com/" + strings.Repeat("u", 100),
		})
	}
	table, err := NewTable(stations)
	require.NoError(t, err)
	assert.Equal(t, MaxStations, table.Len())
	assert.Len(t, []rune(table.At(0).Name), MaxNameLength)
	assert.Len(t, []rune(table.At(0).URL), MaxURLLength)
}

func TestTable_WrapStepsAround(t *testing.T) {
	for count := 1; count <= 7; count++ {
		table := testStations(t, count)
		for start := 0; start < count; start++ {
			i := start
			for n := 0; n < count; n++ {
				i = table.Wrap(i + 1)
				require.True(t, table.Valid(i))
			}
			assert.Equal(t, start, i, "count=%d start=%d", count, start)
		}
		assert.Equal(t, count-1, table.Wrap(-1), "count=%d", count)
		assert.Equal(t, 0, table.Wrap(count), "count=%d", count)
	}
}

func TestTable_AtPanicsOutOfRange(t *testing.T) {
	table := testStations(t, 3)
	assert.Panics(t, func() { table.At(3) })
	assert.Panics(t, func() { table.At(-1) })
}
