// Command hrdiagram renders a Hertzsprung-Russell diagram from the star
// catalog: luminosity against effective temperature, colored by spectral
// class, with the temperature axis inverted in the astronomical convention.
package main

import (
	"context"
	"flag"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"latent-stars/internal/astro"
	"latent-stars/internal/catalog"
	"latent-stars/internal/logger"
	"latent-stars/internal/viewerconfig"
)

// classOrder fixes the legend order, hottest class first.
var classOrder = []byte{'O', 'B', 'A', 'F', 'G', 'K', 'M', 'D', 'N', 'C', 'R', 'P', 'S', 'W'}

func main() {
	dataset := flag.String("dataset", "", "dataset path or URL, overrides the configured sources")
	out := flag.String("o", "hr_diagram.png", "output image path")
	title := flag.String("title", "H-R Diagram", "plot title")
	flag.Parse()

	log := logger.New(nil)

	sources := viewerconfig.Default().DatasetSources
	if *dataset != "" {
		sources = []string{*dataset}
	}
	stars, err := catalog.Fetch(context.Background(), sources, log)
	if err != nil {
		log.Error("load catalog", "error", err)
		os.Exit(1)
	}

	byClass := groupByClass(stars)

	p := plot.New()
	p.Title.Text = *title
	p.X.Label.Text = "Temperature (K)"
	p.Y.Label.Text = "Luminosity (L / Lsun)"
	p.X.Scale = plot.InvertedScale{Normalizer: plot.LogScale{}}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	for _, class := range classOrder {
		pts, ok := byClass[class]
		if !ok {
			continue
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			log.Error("build scatter", "class", string(class), "error", err)
			os.Exit(1)
		}
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(1)
		scatter.GlyphStyle.Color = classColor(string(class))
		p.Add(scatter)
		p.Legend.Add(string(class), scatter)
	}
	if pts, ok := byClass[0]; ok {
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			log.Error("build scatter", "class", "unknown", "error", err)
			os.Exit(1)
		}
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(1)
		scatter.GlyphStyle.Color = color.Gray{Y: 128}
		p.Add(scatter)
	}

	if err := p.Save(8*vg.Inch, 6*vg.Inch, *out); err != nil {
		log.Error("save plot", "error", err)
		os.Exit(1)
	}
	log.Info("diagram saved", "path", *out, "stars", len(stars))
}

// groupByClass buckets the plot points by primary spectral class. Log-scale
// axes cannot host NaN rows, so non-finite records are dropped here (the
// interactive viewer passes them through instead). Empty and unrecognized
// classes both land in the gray bucket under byte 0.
func groupByClass(stars []catalog.Star) map[byte]plotter.XYs {
	known := make(map[byte]bool, len(classOrder))
	for _, c := range classOrder {
		known[c] = true
	}
	byClass := make(map[byte]plotter.XYs)
	for _, s := range stars {
		if !s.Finite() {
			continue
		}
		class := astro.PrimaryClass(s.Spect)
		if !known[class] {
			class = 0
		}
		byClass[class] = append(byClass[class], plotter.XY{
			X: float64(astro.Temperature(s.Spect)),
			Y: float64(astro.Luminosity(s.AbsMag) / astro.SunLuminosityW),
		})
	}
	return byClass
}

func classColor(class string) color.Color {
	c := astro.ClassColor(class)
	return color.RGBA{
		R: uint8(c[0] * 255),
		G: uint8(c[1] * 255),
		B: uint8(c[2] * 255),
		A: 255,
	}
}
