package types

import (
	"fmt"
	"io"
	"os"
	"path"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/zeu5/river-crossing-rl/util"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// ReturnsAnalyzer keeps the moving average of the episode returns of
// each experiment
type ReturnsAnalyzer struct {
	window int
	ds     map[string][]float64
}

var _ Analyzer = &ReturnsAnalyzer{}

func NewReturnsAnalyzer(window int) *ReturnsAnalyzer {
	return &ReturnsAnalyzer{
		window: window,
		ds:     make(map[string][]float64),
	}
}

func (r *ReturnsAnalyzer) Analyze(res *Result) error {
	r.ds[res.Name] = res.Stats.MovingAverage(r.window)
	return nil
}

func (r *ReturnsAnalyzer) DataSet(name string) DataSet {
	return r.ds[name]
}

func (r *ReturnsAnalyzer) Reset() {
	r.ds = make(map[string][]float64)
}

// OutcomeDataSet counts how training episodes ended and how the learnt
// target policy performs afterwards
type OutcomeDataSet struct {
	Summary     Summary `json:"summary"`
	SuccessRate float64 `json:"success_rate"`
	TableSize   int     `json:"table_size"`
}

// OutcomeAnalyzer summarises training and evaluates the target policy
// with `episodes` rollouts of at most `horizon` steps
type OutcomeAnalyzer struct {
	episodes int
	horizon  int
	ds       map[string]*OutcomeDataSet
}

var _ Analyzer = &OutcomeAnalyzer{}

func NewOutcomeAnalyzer(episodes, horizon int) *OutcomeAnalyzer {
	return &OutcomeAnalyzer{
		episodes: episodes,
		horizon:  horizon,
		ds:       make(map[string]*OutcomeDataSet),
	}
}

func (o *OutcomeAnalyzer) Analyze(res *Result) error {
	rate, err := SuccessRate(res.Config.Environment, res.Config.Target, o.episodes, o.horizon)
	if err != nil {
		return err
	}
	o.ds[res.Name] = &OutcomeDataSet{
		Summary:     res.Stats.Summary(),
		SuccessRate: rate,
		TableSize:   res.Config.Table.Len(),
	}
	return nil
}

func (o *OutcomeAnalyzer) DataSet(name string) DataSet {
	return o.ds[name]
}

func (o *OutcomeAnalyzer) Reset() {
	o.ds = make(map[string]*OutcomeDataSet)
}

// OutcomePrinter writes one line per experiment with its outcome dataset
func OutcomePrinter(w io.Writer) Comparator {
	return func(run int, names []string, ds []DataSet) error {
		for i, name := range names {
			d, ok := ds[i].(*OutcomeDataSet)
			if !ok || d == nil {
				continue
			}
			fmt.Fprintf(w, "Run %d, %s: mean return %.2f, wins %d, lost %d, truncated %d, greedy success %.2f, table entries %d\n",
				run, name, d.Summary.MeanReturn, d.Summary.Wins, d.Summary.Losses, d.Summary.Truncated, d.SuccessRate, d.TableSize)
		}
		return nil
	}
}

// JSONComparator records the datasets of a run keyed by experiment name
func JSONComparator(savePath, suffix string) Comparator {
	return func(run int, names []string, ds []DataSet) error {
		data := make(map[string]DataSet)
		for i, name := range names {
			data[name] = ds[i]
		}
		return util.WriteJSON(path.Join(savePath, strconv.Itoa(run)+"_"+suffix+".json"), data)
	}
}

// ReturnsPlotter plots the moving average returns of all experiments on
// a single figure
func ReturnsPlotter(plotPath string) Comparator {
	return func(run int, names []string, ds []DataSet) error {
		if err := os.MkdirAll(plotPath, os.ModePerm); err != nil {
			return err
		}
		p := plot.New()
		p.Title.Text = "Comparison"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "Return (moving average)"
		for i := 0; i < len(names); i++ {
			returns, ok := ds[i].([]float64)
			if !ok || len(returns) == 0 {
				continue
			}
			line, err := plotter.NewLine(seriesXYs(returns))
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(names[i], line)
		}
		return p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_returns.png"))
	}
}

// ReturnsChart renders the moving average returns as an HTML line chart
func ReturnsChart(chartPath string) Comparator {
	return func(run int, names []string, ds []DataSet) error {
		if err := os.MkdirAll(chartPath, os.ModePerm); err != nil {
			return err
		}
		f, err := os.Create(path.Join(chartPath, strconv.Itoa(run)+"_returns.html"))
		if err != nil {
			return err
		}
		defer f.Close()
		return renderReturnsChart(f, names, ds)
	}
}

func renderReturnsChart(w io.Writer, names []string, ds []DataSet) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Episode returns",
		}),
	)
	episodes := 0
	for i := range names {
		if returns, ok := ds[i].([]float64); ok && len(returns) > episodes {
			episodes = len(returns)
		}
	}
	steps := make([]string, episodes)
	for i := range steps {
		steps[i] = strconv.Itoa(i + 1)
	}
	line = line.SetXAxis(steps)
	for i, name := range names {
		returns, ok := ds[i].([]float64)
		if !ok {
			continue
		}
		items := make([]opts.LineData, len(returns))
		for j, r := range returns {
			items[j] = opts.LineData{Value: r}
		}
		line.AddSeries(name, items)
	}
	page := components.NewPage()
	page.AddCharts(line)
	return page.Render(w)
}

// PlotReturns saves the raw and moving average returns of a single
// training run
func PlotReturns(stats *Stats, window int, file string) error {
	p := plot.New()
	p.Title.Text = "Q-learning"
	p.X.Label.Text = "Episode"
	p.Y.Label.Text = "Return"
	if err := plotutil.AddLines(p,
		"Return", seriesXYs(stats.Returns),
		"Moving average", seriesXYs(stats.MovingAverage(window)),
	); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 5*vg.Inch, file)
}

// ChartReturns writes the moving average returns of a single training run
// as an HTML chart
func ChartReturns(stats *Stats, window int, w io.Writer) error {
	return renderReturnsChart(w, []string{"Moving average"}, []DataSet{stats.MovingAverage(window)})
}

func seriesXYs(values []float64) plotter.XYs {
	points := make(plotter.XYs, len(values))
	for i, v := range values {
		points[i] = plotter.XY{
			X: float64(i),
			Y: v,
		}
	}
	return points
}
