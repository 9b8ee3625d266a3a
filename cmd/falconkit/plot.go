package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"
)

// renderHistogram writes the sample counts as an HTML bar chart.
func renderHistogram(w io.Writer, cfg *Config, st sampleStats) error {
	keys := make([]int, 0, len(st.Counts))
	for z := range st.Counts {
		keys = append(keys, z)
	}
	sort.Ints(keys)

	labels := make([]string, 0, len(keys))
	items := make([]opts.BarData, 0, len(keys))
	for _, z := range keys {
		labels = append(labels, strconv.Itoa(z))
		items = append(items, opts.BarData{Value: st.Counts[z]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "SamplerZ histogram",
			Subtitle: fmt.Sprintf("mu=%g sigma=%g mean=%.4f variance=%.4f", cfg.Mu, cfg.Sigma, st.Mean, st.Variance),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "z"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "count"}),
	)
	bar.SetXAxis(labels).AddSeries("samples", items)

	page := components.NewPage().SetPageTitle("falconkit sample")
	page.AddCharts(bar)
	return errors.Wrap(page.Render(w), "render histogram")
}
