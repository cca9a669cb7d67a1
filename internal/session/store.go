package session

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// frames.csv column order. LoadFrames expects exactly this layout.
var frameHeader = []string{
	"time", "valence", "arousal", "dominance", "energy",
	"blobs", "turbulence", "gravity_x", "merges", "splits",
}

// Store persists recordings under baseDir, one directory per run holding
// metadata.json and frames.csv.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one stored run.
type RunMetadata struct {
	ID        string             `json:"id"`
	Signal    string             `json:"signal"`
	Preset    string             `json:"preset,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Frames    int                `json:"frames"`
	Duration  float64            `json:"duration"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes rec to a fresh run directory and returns the run ID.
func (s *Store) Save(signal, preset string, seed int64, dt float64, rec *Recording) (string, error) {
	runID := fmt.Sprintf("%s_%d", signal, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Signal:    signal,
		Preset:    preset,
		Timestamp: time.Now(),
		Seed:      seed,
		Dt:        dt,
		Frames:    len(rec.Frames),
		Duration:  rec.Duration(),
		Metrics:   rec.Metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "frames.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(frameHeader); err != nil {
		return "", err
	}
	for _, f := range rec.Frames {
		if err := w.Write(frameRow(f)); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns metadata for every readable run, skipping entries whose
// metadata is missing or malformed.
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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFrames reads a run's frame table back. Malformed rows are skipped.
func (s *Store) LoadFrames(runID string) ([]Frame, error) {
	csvPath := filepath.Join(s.baseDir, runID, "frames.csv")
	file, err := os.Open(csvPath)
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
		return []Frame{}, nil
	}

	frames := make([]Frame, 0, len(records)-1)
	for _, record := range records[1:] {
		f, err := parseFrame(record)
		if err != nil {
			continue
		}
		frames = append(frames, f)
	}

	return frames, nil
}

// LoadRecording rebuilds a Recording from a stored run, re-attaching the
// summary metrics from its metadata.
func (s *Store) LoadRecording(runID string) (*Recording, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return nil, err
	}
	return &Recording{Frames: frames, Metrics: meta.Metrics}, nil
}

func frameRow(f Frame) []string {
	return []string{
		strconv.FormatFloat(f.Time, 'f', 6, 64),
		strconv.FormatFloat(f.Valence, 'f', 6, 64),
		strconv.FormatFloat(f.Arousal, 'f', 6, 64),
		strconv.FormatFloat(f.Dominance, 'f', 6, 64),
		strconv.FormatFloat(f.Energy, 'f', 6, 64),
		strconv.Itoa(f.Blobs),
		strconv.FormatFloat(f.Turbulence, 'f', 6, 64),
		strconv.FormatFloat(f.GravityX, 'f', 6, 64),
		strconv.Itoa(f.Merges),
		strconv.Itoa(f.Splits),
	}
}

func parseFrame(record []string) (Frame, error) {
	if len(record) < len(frameHeader) {
		return Frame{}, fmt.Errorf("session: short row: %d fields", len(record))
	}

	vals := make([]float64, len(frameHeader))
	for i := range frameHeader {
		v, err := strconv.ParseFloat(record[i], 64)
		if err != nil {
			return Frame{}, err
		}
		vals[i] = v
	}

	return Frame{
		Time:       vals[0],
		Valence:    vals[1],
		Arousal:    vals[2],
		Dominance:  vals[3],
		Energy:     vals[4],
		Blobs:      int(vals[5]),
		Turbulence: vals[6],
		GravityX:   vals[7],
		Merges:     int(vals[8]),
		Splits:     int(vals[9]),
	}, nil
}
