package chart

import (
	"fmt"
	"os"
	"sort"

	"github.com/jumbo77/c2dev-700/cmd/internal/simulate"
	"github.com/jumbo77/c2dev-700/simulation"
	"github.com/spf13/cobra"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var OutputFile string
var FrameError bool
var PacketError bool

var ChartRun = func(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("requires at least one RESULTS_JSON")
		return
	}

	//collect the union of Eb/No values across all results files for the x axis

	results := make([]*simulate.Results, len(args))
	ebNos := make(map[float64]bool)
	for i, resultFile := range args {
		var err error
		results[i], err = simulate.Load(resultFile)
		if err != nil {
			fmt.Println(err)
			return
		}
		if results[i] == nil {
			fmt.Printf("results file %v not found\n", resultFile)
			return
		}
		for _, p := range results[i].Points {
			ebNos[p.EbNoDB] = true
		}
	}

	xvalues, xnames := xAxisAndValues(ebNos)

	f, err := os.Create(OutputFile)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Close()

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Results",
			Subtitle: metricName() + " vs Eb/No",
			Left:     "20%",
		}),
		charts.WithLegendOpts(opts.Legend{Show: true,
			Orient: "vertical",
			Right:  "0",
			Top:    "top",
			Type:   "scroll",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "Eb/No (dB)",
			SplitLine: &opts.SplitLine{Show: true},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      metricName(),
			Type:      "log",
			SplitLine: &opts.SplitLine{Show: true},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)

	line.SetXAxis(xnames)

	for i, r := range results {
		line.AddSeries(args[i], series(r, xvalues))
	}

	line.Render(f)
}

func metricName() string {
	switch {
	case FrameError:
		return "FER"
	case PacketError:
		return "PER"
	}
	return "BER"
}

func xAxisAndValues(ebNos map[float64]bool) ([]float64, []string) {
	nums := make([]float64, 0, len(ebNos))
	strs := make([]string, 0, len(ebNos))
	for k := range ebNos {
		nums = append(nums, k)
	}

	sort.Float64s(nums)

	for _, n := range nums {
		strs = append(strs, fmt.Sprintf("%0.2f", n))
	}

	return nums, strs
}

func series(results *simulate.Results, values []float64) []opts.LineData {
	byEbNo := make(map[float64]simulation.PointStats, len(results.Points))
	for _, p := range results.Points {
		byEbNo[p.EbNoDB] = p
	}

	data := make([]opts.LineData, len(values))
	null := opts.LineData{Value: nil}
	for i, v := range values {
		p, has := byEbNo[v]
		if !has {
			data[i] = null
			continue
		}

		switch {
		case FrameError:
			data[i] = opts.LineData{Value: p.FER}
		case PacketError:
			data[i] = opts.LineData{Value: p.PER}
		default:
			data[i] = opts.LineData{Value: p.BER}
		}
	}
	return data
}
