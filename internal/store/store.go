// Package store caches fetched ephemeris sets under the data directory so
// render, play, plot, and info can run offline against a prior fetch.
// Layout: one directory per session holding metadata.json and vectors.csv.
package store

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/rmaitra/helioviz/internal/ephem"
)

var ErrNoSessions = errors.New("store: no fetch sessions found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0o755)
}

// BodyRef identifies one body inside a saved session.
type BodyRef struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
}

type SessionMeta struct {
	ID        string    `json:"id"`
	FetchedAt time.Time `json:"fetched_at"`
	Start     time.Time `json:"start"`
	StepDays  int       `json:"step_days"`
	Count     int       `json:"count"`
	Comet     BodyRef   `json:"comet"`
	Planets   []BodyRef `json:"planets"`
}

// Save writes the set into a fresh session directory and returns its ID.
// Nanosecond IDs keep back-to-back saves in distinct directories; a
// collision fails rather than overwriting the earlier session.
func (s *Store) Save(set *ephem.Set) (string, error) {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", err
	}
	sessionID := fmt.Sprintf("fetch_%d", time.Now().UnixNano())
	dir := filepath.Join(s.baseDir, sessionID)
	if err := os.Mkdir(dir, 0o755); err != nil {
		return "", err
	}

	meta := SessionMeta{
		ID:        sessionID,
		FetchedAt: time.Now(),
		Start:     set.Epochs.Start,
		StepDays:  set.Epochs.StepDays,
		Count:     set.Epochs.Count,
		Comet:     BodyRef{Name: set.Comet.Name, Designation: set.Comet.Designation},
	}
	for _, p := range set.Planets {
		meta.Planets = append(meta.Planets, BodyRef{Name: p.Name, Designation: p.Designation})
	}

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(dir, "vectors.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"body", "frame", "x", "y", "z", "missing"}); err != nil {
		return "", err
	}
	for _, b := range set.Bodies() {
		for i, smp := range b.Series {
			row := []string{
				b.Name,
				strconv.Itoa(i),
				strconv.FormatFloat(smp.X, 'g', -1, 64),
				strconv.FormatFloat(smp.Y, 'g', -1, 64),
				strconv.FormatFloat(smp.Z, 'g', -1, 64),
				boolField(smp.Missing),
			}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}

	return sessionID, w.Error()
}

// List returns metadata for every saved session, newest first.
func (s *Store) List() ([]SessionMeta, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SessionMeta{}, nil
		}
		return nil, err
	}

	sessions := make([]SessionMeta, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta SessionMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		sessions = append(sessions, meta)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].FetchedAt.After(sessions[j].FetchedAt)
	})
	return sessions, nil
}

// Latest returns the most recent session ID.
func (s *Store) Latest() (string, error) {
	sessions, err := s.List()
	if err != nil {
		return "", err
	}
	if len(sessions) == 0 {
		return "", ErrNoSessions
	}
	return sessions[0].ID, nil
}

// Load reassembles a saved set. The returned set satisfies the same
// length invariant as a fresh fetch; a truncated vectors.csv fails here
// rather than at render time.
func (s *Store) Load(sessionID string) (*ephem.Set, *SessionMeta, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, sessionID, "metadata.json"))
	if err != nil {
		return nil, nil, err
	}
	var meta SessionMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, sessionID, "vectors.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	series := make(map[string]ephem.Series)
	for i, rec := range records {
		if i == 0 {
			continue // header
		}
		if len(rec) != 6 {
			return nil, nil, fmt.Errorf("store: vectors row %d has %d fields", i, len(rec))
		}
		smp, err := parseRow(rec)
		if err != nil {
			return nil, nil, fmt.Errorf("store: vectors row %d: %w", i, err)
		}
		series[rec[0]] = append(series[rec[0]], smp)
	}

	epochs := ephem.Epochs{Start: meta.Start, StepDays: meta.StepDays, Count: meta.Count}
	comet := ephem.Body{
		Designation: meta.Comet.Designation,
		Name:        meta.Comet.Name,
		Series:      series[meta.Comet.Name],
	}
	planets := make([]ephem.Body, 0, len(meta.Planets))
	for _, ref := range meta.Planets {
		planets = append(planets, ephem.Body{
			Designation: ref.Designation,
			Name:        ref.Name,
			Series:      series[ref.Name],
		})
	}

	set, err := ephem.NewSet(epochs, comet, planets)
	if err != nil {
		return nil, nil, fmt.Errorf("store: session %s corrupt: %w", sessionID, err)
	}
	return set, &meta, nil
}

func parseRow(rec []string) (ephem.Sample, error) {
	if rec[5] == "1" {
		return ephem.Sample{Missing: true}, nil
	}
	var smp ephem.Sample
	var err error
	if smp.X, err = strconv.ParseFloat(rec[2], 64); err != nil {
		return smp, err
	}
	if smp.Y, err = strconv.ParseFloat(rec[3], 64); err != nil {
		return smp, err
	}
	if smp.Z, err = strconv.ParseFloat(rec[4], 64); err != nil {
		return smp, err
	}
	return smp, nil
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
