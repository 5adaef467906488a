package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"bmicalc/internal/bmi"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	talib "github.com/markcheno/go-talib"
)

// ErrEmptyHistory is returned when there is nothing to plot.
var ErrEmptyHistory = errors.New("no calculations to plot")

const (
	colorBackground    = "#ffffff"
	colorTextPrimary   = "#1e293b"
	colorTextSecondary = "#64748b"
	colorTrendLine     = "#1E90FF"
	colorSMA           = "#8e44ad"
	colorGuide         = "#94a3b8"

	markerSizePx = 10
)

// TrendOptions 控制趋势图外观。
type TrendOptions struct {
	Title     string
	WidthPx   int
	HeightPx  int
	SMAWindow int // <2 disables the moving average
}

func (o TrendOptions) normalized() TrendOptions {
	if o.Title == "" {
		o.Title = "Your BMI Over Time"
	}
	if o.WidthPx <= 0 {
		o.WidthPx = 720
	}
	if o.HeightPx <= 0 {
		o.HeightPx = 420
	}
	return o
}

// TrendChart plots every adjusted BMI in submission order. Each point is
// drawn in its category color, with the band thresholds as dashed guides
// and a simple moving average once enough points exist.
func TrendChart(results []bmi.Result, o TrendOptions) (*charts.Line, error) {
	if len(results) == 0 {
		return nil, ErrEmptyHistory
	}
	o = o.normalized()
	xAxis := buildXAxis(len(results))
	values := make([]float64, len(results))
	for i, r := range results {
		values[i] = r.AdjustedBMI
	}
	minVal, maxVal := bounds(values)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       o.Title,
			Theme:           types.ThemeWesteros,
			Width:           fmt.Sprintf("%dpx", o.WidthPx),
			Height:          fmt.Sprintf("%dpx", o.HeightPx),
			BackgroundColor: colorBackground,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:      o.Title,
			Left:       "left",
			TitleStyle: &opts.TextStyle{Color: colorTextPrimary, FontSize: 16},
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:      opts.Bool(true),
			Left:      "right",
			TextStyle: &opts.TextStyle{Color: colorTextSecondary},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "Calculations",
			Type:      "category",
			AxisLabel: &opts.AxisLabel{Color: colorTextSecondary},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      "BMI",
			Scale:     opts.Bool(true),
			Min:       round(math.Min(minVal, 18.5)-2, 1),
			Max:       round(math.Max(maxVal, 30)+2, 1),
			AxisLabel: &opts.AxisLabel{Color: colorTextSecondary},
			SplitLine: &opts.SplitLine{
				Show:      opts.Bool(true),
				LineStyle: &opts.LineStyle{Color: colorTextSecondary, Type: "dashed", Opacity: opts.Float(0.3)},
			},
		}),
	)
	line.SetXAxis(xAxis)
	line.AddSeries("BMI", toLineData(values),
		charts.WithLineStyleOpts(opts.LineStyle{Color: colorTrendLine, Width: 2}),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
	)
	for _, guide := range []float64{18.5, 25, 30} {
		line.AddSeries(fmt.Sprintf("%.1f", guide), constantSeries(guide, len(results)),
			charts.WithLineStyleOpts(opts.LineStyle{Color: colorGuide, Width: 1, Type: "dashed"}),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		)
	}
	if sma := movingAverage(values, o.SMAWindow); sma != nil {
		line.AddSeries(fmt.Sprintf("SMA(%d)", o.SMAWindow), sma,
			charts.WithLineStyleOpts(opts.LineStyle{Color: colorSMA, Width: 2}),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false), Smooth: opts.Bool(true)}),
		)
	}
	line.Overlap(categoryMarkers(xAxis, results))
	return line, nil
}

// RenderTrendHTML writes a standalone chart page for results.
func RenderTrendHTML(w io.Writer, results []bmi.Result, o TrendOptions) error {
	line, err := TrendChart(results, o)
	if err != nil {
		return err
	}
	return line.Render(w)
}

// TrendHTML is RenderTrendHTML into a byte slice.
func TrendHTML(results []bmi.Result, o TrendOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderTrendHTML(&buf, results, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// categoryMarkers builds one scatter series per category so each marker
// carries its category color and the legend names the bands.
func categoryMarkers(xAxis []string, results []bmi.Result) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetXAxis(xAxis)
	for _, info := range bmi.Categories() {
		data := make([]opts.ScatterData, len(results))
		present := false
		for i, r := range results {
			if r.Category != info.Category {
				data[i] = opts.ScatterData{Value: nil}
				continue
			}
			present = true
			data[i] = opts.ScatterData{Value: round(r.AdjustedBMI, 2), SymbolSize: markerSizePx}
		}
		if !present {
			continue
		}
		scatter.AddSeries(info.Label, data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: info.Color}),
		)
	}
	return scatter
}

func movingAverage(values []float64, window int) []opts.LineData {
	if window < 2 || len(values) < window {
		return nil
	}
	sma := talib.Sma(values, window)
	out := make([]opts.LineData, len(values))
	for i := range values {
		if i < window-1 || i >= len(sma) || math.IsNaN(sma[i]) {
			out[i] = opts.LineData{Value: nil}
			continue
		}
		out[i] = opts.LineData{Value: round(sma[i], 2)}
	}
	return out
}

func buildXAxis(n int) []string {
	x := make([]string, n)
	for i := range x {
		x[i] = fmt.Sprintf("%d", i+1)
	}
	return x
}

func toLineData(values []float64) []opts.LineData {
	out := make([]opts.LineData, len(values))
	for i, v := range values {
		out[i] = opts.LineData{Value: round(v, 2)}
	}
	return out
}

func constantSeries(v float64, n int) []opts.LineData {
	out := make([]opts.LineData, n)
	for i := range out {
		out[i] = opts.LineData{Value: v}
	}
	return out
}

func round(val float64, decimals int) float64 {
	if decimals <= 0 {
		return math.Round(val)
	}
	scale := math.Pow10(decimals)
	return math.Round(val*scale) / scale
}

func bounds(values []float64) (minVal, maxVal float64) {
	if len(values) == 0 {
		return 0, 0
	}
	minVal, maxVal = values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	return minVal, maxVal
}
