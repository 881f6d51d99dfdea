// Package chart lays out the salary bar chart rendered by the graph view.
package chart

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"employee-portal/models"
)

const (
	DefaultLimit = 10
	Title        = "Employee Salary Comparison (Top 10)"
	SeriesLabel  = "Salary (₹)"

	// Viewport of the generated SVG, in user units.
	Width       = 960
	Height      = 500
	MarginLeft  = 90
	MarginRight = 20
	MarginTop   = 60
	MarginBot   = 90
	tickCount   = 5
)

type Bar struct {
	Label  string
	Value  float64
	X      float64
	Y      float64
	Width  float64
	Height float64
	// LabelX is the centre of the bar, used for the rotated axis label.
	LabelX float64
}

type Tick struct {
	Value float64
	Label string
	Y     float64
}

type Chart struct {
	Title       string
	SeriesLabel string
	Width       int
	Height      int
	PlotLeft    float64
	PlotRight   float64
	PlotTop     float64
	PlotBottom  float64
	Max         float64
	Bars        []Bar
	Ticks       []Tick
}

// Empty reports whether there is nothing to plot.
func (c Chart) Empty() bool {
	return len(c.Bars) == 0
}

// Build charts the first limit records in the order they were fetched.
func Build(records []models.Employee, limit int) Chart {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(records) > limit {
		records = records[:limit]
	}

	c := Chart{
		Title:       Title,
		SeriesLabel: SeriesLabel,
		Width:       Width,
		Height:      Height,
		PlotLeft:    MarginLeft,
		PlotRight:   Width - MarginRight,
		PlotTop:     MarginTop,
		PlotBottom:  Height - MarginBot,
	}

	maxValue := 0.0
	for _, r := range records {
		if v := barValue(r.Salary); v > maxValue {
			maxValue = v
		}
	}
	c.Max = niceCeiling(maxValue)

	plotHeight := c.PlotBottom - c.PlotTop
	for i := 0; i <= tickCount; i++ {
		v := c.Max / tickCount * float64(i)
		c.Ticks = append(c.Ticks, Tick{
			Value: v,
			Label: FormatRupees(v),
			Y:     c.PlotBottom - plotHeight*(v/c.Max),
		})
	}

	if len(records) == 0 {
		return c
	}

	slot := (c.PlotRight - c.PlotLeft) / float64(len(records))
	barWidth := slot * 0.7
	for i, r := range records {
		label := r.Name
		if label == "" {
			label = "Unknown"
		}
		value := barValue(r.Salary)
		h := plotHeight * (value / c.Max)
		x := c.PlotLeft + slot*float64(i) + (slot-barWidth)/2
		c.Bars = append(c.Bars, Bar{
			Label:  label,
			Value:  value,
			X:      x,
			Y:      c.PlotBottom - h,
			Width:  barWidth,
			Height: h,
			LabelX: x + barWidth/2,
		})
	}
	return c
}

// barValue is the plotted height of a salary. Negative and non-finite
// amounts plot as zero.
func barValue(s models.Salary) float64 {
	v := s.Float()
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// niceCeiling rounds v up to 1, 2, 2.5 or 5 times a power of ten so the
// ticks land on readable values. Zero and negative input give 1. Values too
// close to the float64 limit to round up are returned unchanged.
func niceCeiling(v float64) float64 {
	if v <= 0 {
		return 1
	}
	magnitude := math.Pow(10, math.Floor(math.Log10(v)))
	for _, step := range []float64{1, 2, 2.5, 5, 10} {
		candidate := step * magnitude
		if math.IsInf(candidate, 0) {
			return v
		}
		if candidate >= v {
			return candidate
		}
	}
	return v
}

// FormatRupees formats v with a rupee sign and comma thousands separators,
// keeping at most three fraction digits.
func FormatRupees(v float64) string {
	return "₹" + FormatNumber(v)
}

var printer = message.NewPrinter(language.English)

// FormatNumber groups the integer part of v in thousands.
func FormatNumber(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}
