package render

import (
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/ncp-map/aggregator"
)

const (
	logPrefix = "render"

	defaultWidth  = "1000px"
	defaultHeight = "500px"

	scatterMax   = 50
	piecewiseMax = 200
	heatmapMax   = 200
	regionMax    = 2000
)

type Options struct {
	Lang   string
	Width  string
	Height string
	// MapType of the mainland panels
	MapType string
}

// Renderer draws the chart page of an aggregated day
type Renderer struct {
	titles *titles
	opts   Options
}

func New(o Options) (*Renderer, error) {
	if o.Lang == "" {
		o.Lang = "zh"
	}
	if o.Width == "" {
		o.Width = defaultWidth
	}
	if o.Height == "" {
		o.Height = defaultHeight
	}
	if o.MapType == "" {
		o.MapType = "china"
	}

	t, err := newTitles(o.Lang)
	if err != nil {
		return nil, err
	}

	return &Renderer{titles: t, opts: o}, nil
}

// Render writes the page with the trend line, the three mainland panels and
// the designated region map
func (r *Renderer) Render(w io.Writer, summary aggregator.Summary) error {
	pageTitle, err := r.titles.text("page_title", nil)
	if err != nil {
		return err
	}

	line, err := r.trendLine(summary)
	if err != nil {
		return err
	}

	scatter, err := r.mainlandGeo(summary, "scatter_title", types.ChartScatter, opts.VisualMap{
		Calculable: true,
		Max:        scatterMax,
	})
	if err != nil {
		return err
	}

	piecewise, err := r.mainlandGeo(summary, "piecewise_title", types.ChartScatter, opts.VisualMap{
		Type: "piecewise",
		Max:  piecewiseMax,
	})
	if err != nil {
		return err
	}

	heatmap, err := r.mainlandGeo(summary, "heatmap_title", types.ChartHeatMap, opts.VisualMap{
		Calculable: true,
		Max:        heatmapMax,
	})
	if err != nil {
		return err
	}

	region, err := r.regionMap(summary)
	if err != nil {
		return err
	}

	page := components.NewPage()
	page.PageTitle = pageTitle
	page.AddCharts(line, scatter, piecewise, heatmap, region)

	return page.Render(w)
}

// RenderFile renders the page into a file
func (r *Renderer) RenderFile(file string, summary aggregator.Summary) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	if err := r.Render(f, summary); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"file":   file,
		"day":    summary.Day,
	}).Info("chart page rendered")
	return nil
}

func (r *Renderer) initialization() charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		Width:  r.opts.Width,
		Height: r.opts.Height,
	})
}

func (r *Renderer) trendLine(summary aggregator.Summary) (*charts.Line, error) {
	title, err := r.titles.text("trend_title", nil)
	if err != nil {
		return nil, err
	}

	subtitle, err := r.titles.text("trend_subtitle", map[string]interface{}{
		"Date": summary.Day,
		"Days": summary.Series.Len(),
	})
	if err != nil {
		return nil, err
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		r.initialization(),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
	)
	line.SetXAxis(summary.Series.Dates)

	series := []struct {
		id     string
		values []int
	}{
		{"trend_confirm", summary.Series.Confirm},
		{"trend_dead", summary.Series.Dead},
		{"trend_heal", summary.Series.Heal},
	}
	for _, s := range series {
		name, err := r.titles.text(s.id, nil)
		if err != nil {
			return nil, err
		}
		line.AddSeries(name, lineData(s.values))
	}

	return line, nil
}

func (r *Renderer) mainlandGeo(summary aggregator.Summary, titleID, chartType string, visual opts.VisualMap) (*charts.Geo, error) {
	title, err := r.titles.text(titleID, nil)
	if err != nil {
		return nil, err
	}

	subtitle, err := r.titles.text("mainland_subtitle", map[string]interface{}{
		"Date":   summary.Day,
		"Cities": summary.Cities(),
		"Region": summary.Region,
		"Total":  summary.Partition.Totals.Mainland,
	})
	if err != nil {
		return nil, err
	}

	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		r.initialization(),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithGeoComponentOpts(opts.GeoComponent{Map: r.opts.MapType}),
		charts.WithVisualMapOpts(visual),
	)
	geo.AddSeries("", chartType, geoData(summary.Partition.MainlandConfirm, summary.Partition.Index))

	return geo, nil
}

func (r *Renderer) regionMap(summary aggregator.Summary) (*charts.Map, error) {
	data := map[string]interface{}{
		"Date":   summary.Day,
		"Region": summary.Region,
		"Cities": len(summary.RegionMap),
		"Total":  summary.Partition.Totals.Region,
	}

	title, err := r.titles.text("region_title", data)
	if err != nil {
		return nil, err
	}

	subtitle, err := r.titles.text("region_subtitle", data)
	if err != nil {
		return nil, err
	}

	m := charts.NewMap()
	m.RegisterMapType(summary.Region)
	m.SetGlobalOptions(
		r.initialization(),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Max:        regionMax,
		}),
	)
	m.AddSeries(summary.Region, mapData(summary.RegionMap))

	return m, nil
}

func lineData(values []int) []opts.LineData {
	items := make([]opts.LineData, 0, len(values))
	for _, v := range values {
		items = append(items, opts.LineData{Value: v})
	}
	return items
}

// geoData places each count on its coordinate, names missing from the index
// cannot be drawn and are left out
func geoData(values []aggregator.NameValue, index aggregator.RegionIndex) []opts.GeoData {
	items := make([]opts.GeoData, 0, len(values))
	for _, v := range values {
		pos, ok := index[v.Name]
		if !ok {
			log.WithFields(log.Fields{
				"prefix": logPrefix,
				"name":   v.Name,
			}).Warn("no coordinate in index")
			continue
		}

		items = append(items, opts.GeoData{
			Name:  v.Name,
			Value: []float64{pos[0], pos[1], float64(v.Value)},
		})
	}
	return items
}

func mapData(values []aggregator.NameValue) []opts.MapData {
	items := make([]opts.MapData, 0, len(values))
	for _, v := range values {
		items = append(items, opts.MapData{Name: v.Name, Value: v.Value})
	}
	return items
}
