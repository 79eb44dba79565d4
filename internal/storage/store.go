package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/accretion/internal/dynamo"
	"github.com/san-kum/accretion/internal/physics"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
	eventsFile   = "events.csv"
)

var (
	frameHeader = []string{"tick", "time", "id", "category", "x", "y", "vx", "vy", "mass"}
	eventHeader = []string{"tick", "time", "id", "survivor"}
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Scenario   string             `json:"scenario"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Dt         float64            `json:"dt"`
	Ticks      int                `json:"ticks"`
	Integrator string             `json:"integrator"`
	Bodies     int                `json:"bodies"`
	Width      float64            `json:"width"`
	Height     float64            `json:"height"`
	Survivors  int                `json:"survivors"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes one run directory. ID and Timestamp are filled in when empty;
// Survivors and Metrics are taken from result.
func (s *Store) Save(meta RunMetadata, result *dynamo.Result) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", meta.Scenario, meta.Timestamp.UnixNano())
	}
	meta.Survivors = result.Survivors
	meta.Metrics = make(map[string]float64, len(result.Metrics))
	for name, v := range result.Metrics {
		// json has no NaN or Inf
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		meta.Metrics[name] = v
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeCSV(filepath.Join(runDir, framesFile), frameHeader, frameRows(result.Frames)); err != nil {
		return "", err
	}
	if err := writeCSV(filepath.Join(runDir, eventsFile), eventHeader, eventRows(result.Events)); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns the metadata of every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFrames reads frames.csv back, grouping consecutive rows of one tick
// into a frame.
func (s *Store) LoadFrames(runID string) ([]dynamo.Frame, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}

	frames := make([]dynamo.Frame, 0)
	for line, record := range records {
		if len(record) != len(frameHeader) {
			return nil, fmt.Errorf("%s line %d: expected %d fields, got %d", framesFile, line+2, len(frameHeader), len(record))
		}

		tick, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, line+2, err)
		}
		values, err := parseFloats(record[1], record[4], record[5], record[6], record[7], record[8])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, line+2, err)
		}
		id, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, line+2, err)
		}
		cat, err := physics.ParseCategory(record[3])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, line+2, err)
		}

		if n := len(frames); n == 0 || frames[n-1].Tick != tick {
			frames = append(frames, dynamo.Frame{Tick: tick, Time: values[0]})
		}
		f := &frames[len(frames)-1]
		f.Bodies = append(f.Bodies, dynamo.BodyState{
			ID:       id,
			Category: cat,
			X:        values[1],
			Y:        values[2],
			VX:       values[3],
			VY:       values[4],
			Mass:     values[5],
		})
	}

	return frames, nil
}

func (s *Store) LoadEvents(runID string) ([]dynamo.DestroyEvent, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, eventsFile))
	if err != nil {
		return nil, err
	}

	events := make([]dynamo.DestroyEvent, 0, len(records))
	for line, record := range records {
		if len(record) != len(eventHeader) {
			return nil, fmt.Errorf("%s line %d: expected %d fields, got %d", eventsFile, line+2, len(eventHeader), len(record))
		}
		tick, err1 := strconv.Atoi(record[0])
		t, err2 := strconv.ParseFloat(record[1], 64)
		id, err3 := strconv.Atoi(record[2])
		survivor, err4 := strconv.Atoi(record[3])
		for _, err := range []error{err1, err2, err3, err4} {
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", eventsFile, line+2, err)
			}
		}
		events = append(events, dynamo.DestroyEvent{Tick: tick, Time: t, ID: id, SurvivorID: survivor})
	}

	return events, nil
}

func frameRows(frames []dynamo.Frame) [][]string {
	rows := make([][]string, 0)
	for _, f := range frames {
		tick, t := strconv.Itoa(f.Tick), formatFloat(f.Time)
		for _, b := range f.Bodies {
			rows = append(rows, []string{
				tick, t,
				strconv.Itoa(b.ID),
				b.Category.String(),
				formatFloat(b.X), formatFloat(b.Y),
				formatFloat(b.VX), formatFloat(b.VY),
				formatFloat(b.Mass),
			})
		}
	}
	return rows
}

func eventRows(events []dynamo.DestroyEvent) [][]string {
	rows := make([][]string, len(events))
	for i, e := range events {
		rows[i] = []string{strconv.Itoa(e.Tick), formatFloat(e.Time), strconv.Itoa(e.ID), strconv.Itoa(e.SurvivorID)}
	}
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseFloats(fields ...string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}

// readCSV returns the records after the header row.
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}
	return records[1:], nil
}
