package automation

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/accretion/internal/config"
	"github.com/san-kum/accretion/internal/dynamo"
	"github.com/san-kum/accretion/internal/experiment"
	"github.com/san-kum/accretion/internal/storage"
)

// Script is a YAML sequence of runs executed one after another.
type Script struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one entry of a script. Zero fields keep the value of the preset
// (or the defaults when no preset is named).
type Step struct {
	Name       string  `yaml:"name"`
	Preset     string  `yaml:"preset"`
	Scenario   string  `yaml:"scenario"`
	Integrator string  `yaml:"integrator"`
	Seed       int64   `yaml:"seed"`
	Dt         float64 `yaml:"dt"`
	Ticks      int     `yaml:"ticks"`
	Orbiters   int     `yaml:"orbiters"`
	Damping    float64 `yaml:"damping"`
	// Repeat runs the step with seeds Seed, Seed+1, ...
	Repeat int `yaml:"repeat"`
}

// StepResult is the outcome of one run of a step.
type StepResult struct {
	Step   string
	Seed   int64
	Bodies int
	RunID  string
	Result *dynamo.Result
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("script %s has no steps", path)
	}
	return &script, nil
}

// Config resolves the run configuration of a step.
func (s Step) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		p, err := config.GetPreset(s.Preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	if s.Scenario != "" {
		cfg.Scenario = s.Scenario
	}
	if s.Integrator != "" {
		cfg.Integrator = s.Integrator
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if s.Dt != 0 {
		cfg.Dt = s.Dt
	}
	if s.Ticks != 0 {
		cfg.Ticks = s.Ticks
	}
	if s.Orbiters != 0 {
		cfg.Orbit.OrbiterCount = s.Orbiters
	}
	if s.Damping != 0 {
		cfg.Orbit.VelocityDamping = s.Damping
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s Step) label(i int) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("step-%d", i+1)
}

// RunScript executes every step in order. Progress lines go to progress
// when it is non-nil; each run is saved to st when it is non-nil. Results
// gathered before a failure are returned with the error.
func RunScript(ctx context.Context, script *Script, st *storage.Store, progress io.Writer) ([]StepResult, error) {
	if progress == nil {
		progress = io.Discard
	}
	if st != nil {
		if err := st.Init(); err != nil {
			return nil, err
		}
	}

	results := make([]StepResult, 0, len(script.Steps))
	for i, step := range script.Steps {
		name := step.label(i)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("%s: %w", name, err)
		}

		repeat := max(step.Repeat, 1)
		for r := 0; r < repeat; r++ {
			c := experiment.FromConfig(cfg)
			c.Seed = cfg.Seed + int64(r)

			fmt.Fprintf(progress, "[%d/%d] %s: %s seed %d\n", i+1, len(script.Steps), name, c.Scenario, c.Seed)

			exp := experiment.New(c)
			if err := exp.Setup(experiment.DefaultMetrics(c.Orbit.G, c.Width)); err != nil {
				return results, fmt.Errorf("%s setup: %w", name, err)
			}

			result, err := exp.Run(ctx)
			if err != nil {
				return results, fmt.Errorf("%s run: %w", name, err)
			}

			sr := StepResult{Step: name, Seed: c.Seed, Bodies: exp.InitialBodies(), Result: result}
			if st != nil {
				sr.RunID, err = st.Save(storage.RunMetadata{
					Scenario:   c.Scenario,
					Seed:       c.Seed,
					Dt:         c.Dt,
					Ticks:      result.StepsTaken,
					Integrator: cfg.Integrator,
					Bodies:     exp.InitialBodies(),
					Width:      c.Width,
					Height:     c.Height,
				}, result)
				if err != nil {
					return results, fmt.Errorf("%s save: %w", name, err)
				}
			}
			results = append(results, sr)
		}
	}

	return results, nil
}
