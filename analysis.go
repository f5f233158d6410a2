package lsystem

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// GenerationStats describes one generation of a word.
type GenerationStats struct {
	Generation int
	// Length is the number of top-level instructions.
	Length int
	// Size counts every instruction, including those nested in branches.
	Size  int
	Depth int
}

// Growth is the result of AnalyseGrowth.
type Growth struct {
	System      string
	Generations []GenerationStats
}

// AnalyseGrowth measures the first n generations of l. It works on a copy,
// so the current word of l is left untouched.
func (l *LSystem) AnalyseGrowth(n int) Growth {
	probe := NewLSystem(l.axiom, l.rules)
	growth := Growth{System: l.String()}
	for i, word := range probe.Take(n) {
		growth.Generations = append(growth.Generations, GenerationStats{
			Generation: i,
			Length:     len(word),
			Size:       word.Len(),
			Depth:      word.Depth(),
		})
	}
	return growth
}

// Ratios returns the size of each generation divided by the size of the
// previous one. The first entry, and any entry following an empty word, is
// zero.
func (g Growth) Ratios() []float64 {
	ratios := make([]float64, len(g.Generations))
	for i := 1; i < len(g.Generations); i++ {
		prev := g.Generations[i-1].Size
		if prev == 0 {
			continue
		}
		ratios[i] = float64(g.Generations[i].Size) / float64(prev)
	}
	return ratios
}

// AverageRatio is the mean of the non-zero growth ratios.
func (g Growth) AverageRatio() float64 {
	sum, count := 0.0, 0
	for _, r := range g.Ratios() {
		if r == 0 {
			continue
		}
		sum += r
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// RenderChart writes an HTML page with a bar chart of instruction counts
// and growth ratios per generation.
func (g Growth) RenderChart(w io.Writer) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title:    "Growth Analysis",
		Subtitle: "Instruction count over " + strconv.Itoa(len(g.Generations)) + " generations of " + g.System,
	}))

	labels := make([]string, len(g.Generations))
	sizes := make([]opts.BarData, len(g.Generations))
	depths := make([]opts.BarData, len(g.Generations))
	for i, gen := range g.Generations {
		labels[i] = strconv.Itoa(gen.Generation)
		sizes[i] = opts.BarData{Value: gen.Size}
		depths[i] = opts.BarData{Value: gen.Depth}
	}

	ratios := g.Ratios()
	ratioItems := make([]opts.BarData, len(ratios))
	for i, r := range ratios {
		ratioItems[i] = opts.BarData{Value: r}
	}

	title := "Growth ratio (avg " + strconv.FormatFloat(g.AverageRatio(), 'f', 4, 64) + ")"
	bar.SetXAxis(labels).
		AddSeries("Instructions", sizes).
		AddSeries("Branch depth", depths).
		AddSeries(title, ratioItems)
	return bar.Render(w)
}

// GrowthHandler serves the growth chart of the first n generations. A nil
// logger falls back to slog.Default.
func (l *LSystem) GrowthHandler(n int, log *slog.Logger) http.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		growth := l.AnalyseGrowth(n)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := growth.RenderChart(w); err != nil {
			log.Error("Failed to render growth chart.", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		log.Debug("Served growth chart.", "path", r.URL.Path, "generations", n)
	}
}

// ServeGrowth blocks serving the growth chart on addr.
func (l *LSystem) ServeGrowth(addr string, n int, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	mux := http.NewServeMux()
	mux.Handle("/", l.GrowthHandler(n, log))
	log.Info("Serving growth chart.", "addr", addr, "generations", n)
	if err := http.ListenAndServe(addr, mux); err != nil {
		return fmt.Errorf("serve growth chart: %w", err)
	}
	return nil
}
