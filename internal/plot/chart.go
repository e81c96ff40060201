package plot

import (
	"fmt"
	"os"
	"path/filepath"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"

	"tpch-bench/internal/config"
	"tpch-bench/internal/timings"
)

// Chart geometry.
const (
	barWidth   = 14
	barGap     = 4
	groupGap   = 22
	marginLeft = 60
	marginTop  = 40
	plotHeight = 360
)

// ChartOptions controls the rendered chart.
type ChartOptions struct {
	IncludeIO bool
	Limit     int // y-axis cap in seconds
	Style     Style
}

const chartCSS = `
body { font-family: system-ui, sans-serif; margin: 2rem; color: #1a1a2e; }
h1 { font-size: 1.3rem; margin-bottom: 0.1rem; }
p.subtitle { color: #666; font-style: italic; margin-top: 0; }
.legend { display: flex; flex-wrap: wrap; gap: 1rem; margin-top: 0.5rem; }
.legend-item { display: flex; align-items: center; gap: 0.4rem; font-size: 0.85rem; }
.swatch { width: 12px; height: 12px; display: inline-block; border-radius: 2px; }
`

// Render builds the standalone HTML page with the grouped bar chart: one
// group per query, one colored bar per (solution, version).
func Render(entries []Entry, opts ChartOptions) gomponents.Node {
	series, queries := axes(entries)

	groupStep := len(series)*(barWidth+barGap) + groupGap
	width := marginLeft + len(queries)*groupStep + 40
	height := marginTop + plotHeight + 40

	svg := []gomponents.Node{
		gomponents.Attr("width", fmt.Sprint(width)),
		gomponents.Attr("height", fmt.Sprint(height)),
		gomponents.Attr("viewBox", fmt.Sprintf("0 0 %d %d", width, height)),
		gomponents.Attr("xmlns", "http://www.w3.org/2000/svg"),
	}
	svg = append(svg, yAxis(opts.Limit, width)...)
	svg = append(svg, bars(entries, series, queries, opts)...)

	return html.Doctype(
		html.HTML(
			html.Lang("en"),
			html.Head(
				html.Meta(html.Charset("utf-8")),
				html.TitleEl(gomponents.Text("TPC-H benchmark")),
				html.StyleEl(gomponents.Raw(chartCSS)),
			),
			html.Body(
				html.H1(gomponents.Text(title(opts.IncludeIO))),
				html.P(html.Class("subtitle"), gomponents.Text("(lower is better)")),
				gomponents.El("svg", svg...),
				legend(series, opts.Style),
			),
		),
	)
}

func title(includeIO bool) string {
	if includeIO {
		return "Runtime including data read from disk (Parquet)"
	}
	return "Runtime excluding data read from disk"
}

// axes returns the (solution, version) series and the query labels in the
// order PrepData emitted them.
func axes(entries []Entry) (series [][2]string, queries []string) {
	seenSeries := map[[2]string]bool{}
	seenQuery := map[string]bool{}
	for _, e := range entries {
		s := [2]string{e.Solution, e.Version}
		if !seenSeries[s] {
			seenSeries[s] = true
			series = append(series, s)
		}
		if !seenQuery[e.Query] {
			seenQuery[e.Query] = true
			queries = append(queries, e.Query)
		}
	}
	return series, queries
}

func yAxis(limit, width int) []gomponents.Node {
	var nodes []gomponents.Node
	const ticks = 5
	for i := 0; i <= ticks; i++ {
		sec := float64(limit) * float64(i) / ticks
		y := marginTop + plotHeight - int(float64(plotHeight)*float64(i)/ticks)
		nodes = append(nodes,
			gomponents.El("line",
				gomponents.Attr("x1", fmt.Sprint(marginLeft)),
				gomponents.Attr("y1", fmt.Sprint(y)),
				gomponents.Attr("x2", fmt.Sprint(width-20)),
				gomponents.Attr("y2", fmt.Sprint(y)),
				gomponents.Attr("stroke", "#e5e5e5"),
			),
			gomponents.El("text",
				gomponents.Attr("x", fmt.Sprint(marginLeft-8)),
				gomponents.Attr("y", fmt.Sprint(y+4)),
				gomponents.Attr("text-anchor", "end"),
				gomponents.Attr("font-size", "11"),
				gomponents.Text(fmt.Sprintf("%.0fs", sec)),
			),
		)
	}
	return nodes
}

func bars(entries []Entry, series [][2]string, queries []string, opts ChartOptions) []gomponents.Node {
	seriesIdx := map[[2]string]int{}
	for i, s := range series {
		seriesIdx[s] = i
	}
	queryIdx := map[string]int{}
	for i, q := range queries {
		queryIdx[q] = i
	}
	groupStep := len(series)*(barWidth+barGap) + groupGap

	var nodes []gomponents.Node
	for i, q := range queries {
		x := marginLeft + i*groupStep + (len(series)*(barWidth+barGap))/2
		nodes = append(nodes, gomponents.El("text",
			gomponents.Attr("x", fmt.Sprint(x)),
			gomponents.Attr("y", fmt.Sprint(marginTop+plotHeight+16)),
			gomponents.Attr("text-anchor", "middle"),
			gomponents.Attr("font-size", "11"),
			gomponents.Text(q),
		))
	}

	for _, e := range entries {
		si, ok := seriesIdx[[2]string{e.Solution, e.Version}]
		if !ok {
			continue
		}
		qi, ok := queryIdx[e.Query]
		if !ok {
			continue
		}
		sol, _ := opts.Style.Lookup(e.Solution)

		capped := e.Duration
		if capped > float64(opts.Limit) {
			capped = float64(opts.Limit)
		}
		h := int(float64(plotHeight) * capped / float64(opts.Limit))
		x := marginLeft + qi*groupStep + si*(barWidth+barGap)
		y := marginTop + plotHeight - h

		nodes = append(nodes, gomponents.El("rect",
			gomponents.Attr("x", fmt.Sprint(x)),
			gomponents.Attr("y", fmt.Sprint(y)),
			gomponents.Attr("width", fmt.Sprint(barWidth)),
			gomponents.Attr("height", fmt.Sprint(h)),
			gomponents.Attr("fill", sol.Color),
		))

		// Bars over the cap get a label naming the real duration.
		if e.Duration > float64(opts.Limit) {
			nodes = append(nodes, gomponents.El("text",
				gomponents.Attr("x", fmt.Sprint(x+barWidth/2)),
				gomponents.Attr("y", fmt.Sprint(marginTop-8)),
				gomponents.Attr("text-anchor", "middle"),
				gomponents.Attr("font-size", "10"),
				gomponents.Text(fmt.Sprintf("%s took %.0fs", e.Solution, e.Duration)),
			))
		}
	}
	return nodes
}

func legend(series [][2]string, style Style) gomponents.Node {
	items := make([]gomponents.Node, 0, len(series))
	for _, s := range series {
		sol, ok := style.Lookup(s[0])
		if !ok {
			continue
		}
		label := sol.Label
		if s[1] != "" {
			label = fmt.Sprintf("%s (%s)", sol.Label, s[1])
		}
		items = append(items, html.Div(
			html.Class("legend-item"),
			html.Span(html.Class("swatch"), html.StyleAttr("background:"+sol.Color)),
			gomponents.Text(label),
		))
	}
	return html.Div(html.Class("legend"), gomponents.Group(items))
}

// Generate reads the timings log, shapes it, renders the chart, and writes
// it under the plots directory. It returns the written file's path.
func Generate(cfg *config.Settings, stylePath string) (string, error) {
	style, err := LoadStyle(stylePath)
	if err != nil {
		return "", err
	}
	recs, err := timings.Read(cfg.TimingsPath())
	if err != nil {
		return "", err
	}
	entries := PrepData(recs, cfg.IncludeIO, cfg.PlotNQueries, style)

	if err := os.MkdirAll(cfg.PlotsDir, 0o755); err != nil {
		return "", fmt.Errorf("create plots dir: %w", err)
	}
	name := "plot_without_io.html"
	if cfg.IncludeIO {
		name = "plot_with_io.html"
	}
	path := filepath.Join(cfg.PlotsDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create plot file: %w", err)
	}
	defer f.Close()

	node := Render(entries, ChartOptions{IncludeIO: cfg.IncludeIO, Limit: cfg.PlotLimit(), Style: style})
	if err := node.Render(f); err != nil {
		return "", fmt.Errorf("render plot: %w", err)
	}
	return path, nil
}
