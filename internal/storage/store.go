package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/orbitsim/internal/sim"
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
	ID          string             `json:"id"`
	Preset      string             `json:"preset"`
	Sun         string             `json:"sun,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
	Gravity     string             `json:"gravity"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Steps       int                `json:"steps"`
	Bodies      []string           `json:"bodies"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Planets splits the run's bodies into the sun and the rest. Runs stored
// without a sun name fall back to the first body.
func (m RunMetadata) Planets() (sun string, rest []string) {
	if len(m.Bodies) == 0 {
		return m.Sun, nil
	}
	sun = m.Bodies[0]
	for _, name := range m.Bodies {
		if m.Sun != "" && strings.EqualFold(name, m.Sun) {
			sun = name
			break
		}
	}
	for _, name := range m.Bodies {
		if name != sun {
			rest = append(rest, name)
		}
	}
	return sun, rest
}

// Save writes metadata.json and states.csv into a new run directory and
// returns the run id. Preset, Sun, Gravity, Dt and Duration are taken from
// meta; the rest is filled from result. On any error the run directory is
// removed.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	if meta.Preset == "" {
		meta.Preset = "custom"
	}
	runID := fmt.Sprintf("%s_%s_%03d", meta.Preset, now.Format("20060102-150405"), now.Nanosecond()/1e6)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Steps = result.StepsTaken
	meta.Bodies = result.Names
	meta.EnergyDrift = result.EnergyDrift
	meta.Metrics = result.Metrics

	if err := writeRun(runDir, meta, result); err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("save run %s: %w", runID, err)
	}
	return runID, nil
}

func writeRun(runDir string, meta RunMetadata, result *sim.Result) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(runDir, "metadata.json"), append(data, '\n'), 0644); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)

	header := []string{"time"}
	for _, name := range result.Names {
		header = append(header, name+"_x", name+"_y")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range result.States {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for _, val := range result.States[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return csvFile.Close()
}

// List returns every readable run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
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

// LoadResult rebuilds the sampled part of a run: names, times and states.
func (s *Store) LoadResult(runID string) (*sim.Result, error) {
	csvPath := filepath.Join(s.baseDir, runID, "states.csv")
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
	if len(records) == 0 {
		return nil, fmt.Errorf("run %s: empty states file", runID)
	}

	header := records[0]
	result := &sim.Result{
		Names:   make([]string, 0, len(header)/2),
		States:  make([][]float64, 0, len(records)-1),
		Times:   make([]float64, 0, len(records)-1),
		Metrics: make(map[string]float64),
	}
	for j := 1; j+1 < len(header); j += 2 {
		result.Names = append(result.Names, strings.TrimSuffix(header[j], "_x"))
	}

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("run %s row %d: %w", runID, i, err)
		}

		state := make([]float64, 0, len(record)-1)
		for j := 1; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("run %s row %d: %w", runID, i, err)
			}
			state = append(state, val)
		}
		result.Times = append(result.Times, t)
		result.States = append(result.States, state)
	}

	if meta, err := s.Load(runID); err == nil {
		result.StepsTaken = meta.Steps
		result.EnergyDrift = meta.EnergyDrift
		for k, v := range meta.Metrics {
			result.Metrics[k] = v
		}
	}

	return result, nil
}

// StatesPath is the CSV file of a run, for export.
func (s *Store) StatesPath(runID string) string {
	return filepath.Join(s.baseDir, runID, "states.csv")
}
