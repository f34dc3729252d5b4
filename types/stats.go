package types

import (
	"gonum.org/v1/gonum/stat"
)

// Outcome of an episode
type Outcome int

const (
	// reached a terminal goal state
	OutcomeWon Outcome = iota
	// reached a terminal state that is not a goal
	OutcomeLost
	// stopped by the horizon
	OutcomeTruncated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "truncated"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// ReturnsKey names the per-episode returns in Results
const ReturnsKey = "Returns"

// Stats aggregates per-episode results of training
type Stats struct {
	Returns  []float64 `json:"returns"`
	Lengths  []int     `json:"lengths"`
	Outcomes []Outcome `json:"outcomes"`
}

func NewStats(episodes int) *Stats {
	return &Stats{
		Returns:  make([]float64, 0, episodes),
		Lengths:  make([]int, 0, episodes),
		Outcomes: make([]Outcome, 0, episodes),
	}
}

func (s *Stats) record(epReturn float64, length int, outcome Outcome) {
	s.Returns = append(s.Returns, epReturn)
	s.Lengths = append(s.Lengths, length)
	s.Outcomes = append(s.Outcomes, outcome)
}

// Results returns the collected series keyed by name
func (s *Stats) Results() map[string][]float64 {
	return map[string][]float64{
		ReturnsKey: s.Returns,
	}
}

func (s *Stats) Episodes() int {
	return len(s.Returns)
}

// Count the episodes that ended with the outcome
func (s *Stats) Count(o Outcome) int {
	count := 0
	for _, out := range s.Outcomes {
		if out == o {
			count++
		}
	}
	return count
}

// Summary of a training run
type Summary struct {
	Episodes      int     `json:"episodes"`
	MeanReturn    float64 `json:"mean_return"`
	StdDevReturn  float64 `json:"std_return"`
	MeanLength    float64 `json:"mean_length"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Truncated     int     `json:"truncated"`
	LastWinStreak int     `json:"last_win_streak"`
}

func (s *Stats) Summary() Summary {
	summary := Summary{
		Episodes:  s.Episodes(),
		Wins:      s.Count(OutcomeWon),
		Losses:    s.Count(OutcomeLost),
		Truncated: s.Count(OutcomeTruncated),
	}
	if len(s.Returns) == 0 {
		return summary
	}
	summary.MeanReturn, summary.StdDevReturn = stat.MeanStdDev(s.Returns, nil)
	if len(s.Returns) == 1 {
		summary.StdDevReturn = 0
	}
	lengths := make([]float64, len(s.Lengths))
	for i, l := range s.Lengths {
		lengths[i] = float64(l)
	}
	summary.MeanLength = stat.Mean(lengths, nil)
	for i := len(s.Outcomes) - 1; i >= 0 && s.Outcomes[i] == OutcomeWon; i-- {
		summary.LastWinStreak++
	}
	return summary
}

// MovingAverage of the returns over a trailing window
func (s *Stats) MovingAverage(window int) []float64 {
	return movingAverage(s.Returns, window)
}

func movingAverage(values []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(values))
	for i := range values {
		from := i - window + 1
		if from < 0 {
			from = 0
		}
		out[i] = stat.Mean(values[from:i+1], nil)
	}
	return out
}
