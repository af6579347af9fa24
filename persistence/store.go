package persistence

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog/log"
)

const (
	stationKey    = "current_station"
	brightnessKey = "brightness"
)

// Store keeps the radio's small persistent settings, one file per key in
// the XDG data directory. Saves are fire-and-forget: they are queued and
// written by Run, so callers on the UI path never touch the disk.
type Store struct {
	dir     string
	mu      sync.Mutex
	pending map[string]string
	wake    chan struct{}
}

// NewStore creates a Store under $XDG_DATA_HOME/<app>/
func NewStore(app string) (*Store, error) {
	path, err := xdg.DataFile(filepath.Join(app, stationKey))
	if err != nil {
		return nil, fmt.Errorf("failed to get data file path: %w", err)
	}
	return NewStoreAt(filepath.Dir(path)), nil
}

// NewStoreAt creates a Store rooted at dir, which must exist.
func NewStoreAt(dir string) *Store {
	return &Store{
		dir:     dir,
		pending: make(map[string]string),
		wake:    make(chan struct{}, 1),
	}
}

// LoadStation retrieves the last played station index
func (s *Store) LoadStation() (int, bool) {
	return s.loadInt(stationKey)
}

// LoadBrightness retrieves the last screen brightness
func (s *Store) LoadBrightness() (int, bool) {
	return s.loadInt(brightnessKey)
}

// SaveStation schedules the station index to be written
func (s *Store) SaveStation(index int) {
	s.queue(stationKey, strconv.Itoa(index))
}

// SaveBrightness schedules the brightness to be written
func (s *Store) SaveBrightness(level int) {
	s.queue(brightnessKey, strconv.Itoa(level))
}

// Run writes queued values until ctx is cancelled, then flushes.
func (s *Store) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.Flush()
			return
		case <-s.wake:
			s.Flush()
		}
	}
}

// Flush writes all pending values now.
func (s *Store) Flush() {
	s.mu.Lock()
	pending := s.pending
	s.pending = make(map[string]string)
	s.mu.Unlock()

	for key, value := range pending {
		if err := s.save(key, value); err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to save setting")
		}
	}
}

func (s *Store) queue(key, value string) {
	s.mu.Lock()
	s.pending[key] = value
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Store) loadInt(key string) (int, bool) {
	value, err := s.load(key)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("key", key).Msg("failed to load setting")
		}
		return 0, false
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Str("value", value).Msg("ignoring corrupt setting")
		return 0, false
	}
	return i, true
}

func (s *Store) load(key string) (string, error) {
	file, err := os.Open(filepath.Join(s.dir, key))
	if err != nil {
		return "", err
	}
	defer file.Close()

	contents, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(contents)), nil
}

func (s *Store) save(key, value string) error {
	file, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = fmt.Fprintf(file, "%s\n", value)
	return err
}
