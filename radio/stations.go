package radio

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	MaxStations   = 32
	MaxNameLength = 39
	MaxURLLength  = 79
)

var ErrNoStations = errors.New("no stations configured")

type Station struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Table is the fixed, ordered list of preset stations. It is built once at
// startup and never changes afterwards.
type Table struct {
	stations []Station
}

type stationFile struct {
	Stations []Station `json:"stations"`
}

// LoadStations reads a {"stations":[{"name":...,"url":...}]} file.
func LoadStations(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading station list: %w", err)
	}
	var f stationFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing station list %s: %w", path, err)
	}
	return NewTable(f.Stations)
}

// NewTable validates and copies stations. Entries without a URL are dropped,
// long names and URLs are truncated and anything past MaxStations is ignored.
func NewTable(stations []Station) (*Table, error) {
	t := &Table{}
	for i, st := range stations {
		st.Name = strings.TrimSpace(st.Name)
		st.URL = strings.TrimSpace(st.URL)
		if st.URL == "" {
			log.Warn().Int("entry", i).Str("name", st.Name).Msg("skipping station without url")
			continue
		}
		if len(t.stations) == MaxStations {
			log.Warn().Int("max", MaxStations).Int("configured", len(stations)).Msg("too many stations, ignoring the rest")
			break
		}
		if st.Name == "" {
			st.Name = st.URL
		}
		st.Name = truncate(st.Name, MaxNameLength)
		st.URL = truncate(st.URL, MaxURLLength)
		t.stations = append(t.stations, st)
	}
	if len(t.stations) == 0 {
		return nil, ErrNoStations
	}
	return t, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func (t *Table) Len() int {
	return len(t.stations)
}

// Valid reports whether i indexes a station.
func (t *Table) Valid(i int) bool {
	return i >= 0 && i < len(t.stations)
}

// At returns station i. An out of range index is a bug in the caller.
func (t *Table) At(i int) Station {
	if !t.Valid(i) {
		panic(fmt.Sprintf("station index %d out of range [0,%d)", i, len(t.stations)))
	}
	return t.stations[i]
}

// Wrap maps any integer onto [0, Len()).
func (t *Table) Wrap(i int) int {
	n := len(t.stations)
	return ((i % n) + n) % n
}
