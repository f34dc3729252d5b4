package types

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
)

// ExperimentSetup builds a fresh agent configuration for a run, so that
// every run starts from an empty table and freshly seeded policies
type ExperimentSetup func(run int) *AgentConfig

// Experiment encapsulates the different parameters to configure an agent
type Experiment struct {
	Name  string
	setup ExperimentSetup
}

// NewExperiment creates a new experiment instance
func NewExperiment(name string, setup ExperimentSetup) *Experiment {
	return &Experiment{
		Name:  name,
		setup: setup,
	}
}

// Result of one experiment run handed to the analyzers
type Result struct {
	Run    int
	Name   string
	Stats  *Stats
	Config *AgentConfig
}

// Run the experiment once, training a new agent
func (e *Experiment) Run(ctx context.Context, run int, progress Progress) (*Result, error) {
	config := e.setup(run)
	if progress != nil {
		config.Progress = progress
	}
	agent, err := NewAgent(config)
	if err != nil {
		return nil, fmt.Errorf("experiment %s: %w", e.Name, err)
	}
	stats, err := agent.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("experiment %s: %w", e.Name, err)
	}
	return &Result{
		Run:    run,
		Name:   e.Name,
		Stats:  stats,
		Config: config,
	}, nil
}

// Generic Dataset that contains information after processing the results
type DataSet interface{}

// Analyzer compresses the information in the results to a DataSet
type Analyzer interface {
	Analyze(*Result) error
	// Resulting dataset of the given experiment
	DataSet(name string) DataSet
	// Reset the analyzer between runs
	Reset()
}

// Comparator differentiates between different datasets with associated names
// run, experiment names, datasets
type Comparator func(int, []string, []DataSet) error

func NoopComparator() Comparator {
	return func(int, []string, []DataSet) error { return nil }
}

// ComparisonConfig contains the configuration for the comparison
type ComparisonConfig struct {
	Runs       int    // number of runs
	Episodes   int    // number of episodes, recorded for reference
	RecordPath string // path to store the results
	// where progress lines are written, nil disables them
	Output            io.Writer
	ProgressFrequency int
}

// Comparison contains the different experiments to compare
// The results obtained from the experiments are analyzed
// The analyzed datasets are then compared
type Comparison struct {
	Experiments []*Experiment
	analyzers   map[string]Analyzer
	comparators map[string]Comparator
	cConfig     *ComparisonConfig
}

// NewComparison creates a comparison instance
func NewComparison(config *ComparisonConfig) *Comparison {
	if config.Runs < 1 {
		config.Runs = 1
	}
	return &Comparison{
		Experiments: make([]*Experiment, 0),
		analyzers:   make(map[string]Analyzer),
		comparators: make(map[string]Comparator),
		cConfig:     config,
	}
}

// AddAnalysis adds an analyzer and comparator to the comparison
func (c *Comparison) AddAnalysis(name string, analyzer Analyzer, comparator Comparator) {
	c.analyzers[name] = analyzer
	c.comparators[name] = comparator
}

// Add experiments to compare
func (c *Comparison) AddExperiment(e *Experiment) {
	c.Experiments = append(c.Experiments, e)
}

func (c *Comparison) analysisNames() []string {
	names := make([]string, 0, len(c.analyzers))
	for name := range c.analyzers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// record the configuration of the comparison
func (c *Comparison) recordConfig() error {
	cfg := c.cConfig
	if cfg.RecordPath == "" {
		return nil
	}
	if err := os.MkdirAll(cfg.RecordPath, 0o755); err != nil {
		return err
	}
	experiments := make([]string, 0, len(c.Experiments))
	for _, e := range c.Experiments {
		experiments = append(experiments, e.Name)
	}
	out := map[string]interface{}{
		"runs":        cfg.Runs,
		"episodes":    cfg.Episodes,
		"experiments": experiments,
		"analyzers":   c.analysisNames(),
	}
	bs, err := json.Marshal(out)
	if err != nil {
		return err
	}
	return os.WriteFile(path.Join(cfg.RecordPath, "comparison_config.json"), bs, 0o644)
}

// Run the comparison, every experiment once per run
func (c *Comparison) Run(ctx context.Context) error {
	if err := c.recordConfig(); err != nil {
		return fmt.Errorf("recording comparison config: %w", err)
	}
	names := make([]string, len(c.Experiments))
	for i, e := range c.Experiments {
		names[i] = e.Name
	}

	for run := 0; run < c.cConfig.Runs; run++ {
		for _, e := range c.Experiments {
			var progress *TerminalProgress
			if c.cConfig.Output != nil {
				progress = NewTerminalProgress(c.cConfig.Output, fmt.Sprintf("%s (run %d)", e.Name, run), c.cConfig.ProgressFrequency)
			}
			var result *Result
			var err error
			if progress != nil {
				result, err = e.Run(ctx, run, progress)
				progress.Stop()
			} else {
				result, err = e.Run(ctx, run, nil)
			}
			if err != nil {
				return err
			}
			for _, name := range c.analysisNames() {
				if err := c.analyzers[name].Analyze(result); err != nil {
					return fmt.Errorf("analyzer %s: %w", name, err)
				}
			}
		}
		for _, name := range c.analysisNames() {
			analyzer := c.analyzers[name]
			datasets := make([]DataSet, len(names))
			for i, n := range names {
				datasets[i] = analyzer.DataSet(n)
			}
			if err := c.comparators[name](run, names, datasets); err != nil {
				return fmt.Errorf("comparator %s: %w", name, err)
			}
			analyzer.Reset()
		}
	}
	return nil
}
