package scenes

import (
	"fmt"
	"math"

	"github.com/san-kum/deepshow/internal/canvas"
	"github.com/san-kum/deepshow/internal/draw"
)

// Period is a band of the day with its own pressure set-point.
type Period struct {
	Name       string
	Start, End float64 // hours
	SetPoint   float64 // MPa
}

// Set-points used by the time-of-day schedule.
var (
	Valley      = Period{Name: "Valley", SetPoint: 0.28}
	MorningPeak = Period{Name: "Morning peak", Start: 6, End: 9, SetPoint: 0.42}
	EveningPeak = Period{Name: "Evening peak", Start: 16, End: 21, SetPoint: 0.45}
	DaytimeFlat = Period{Name: "Daytime", Start: 9, End: 16, SetPoint: 0.34}
)

// gaugeFull is the full-scale reading of the schedule gauges in MPa.
const gaugeFull = 0.6

func smoothstep(x float64) float64 {
	x = math.Max(0, math.Min(1, x))
	return x * x * (3 - 2*x)
}

// band is 1 inside [start, end] and blends to 0 over an hour on each side.
func band(hour, start, end float64) float64 {
	return smoothstep(hour-start+1) * smoothstep(end+1-hour)
}

// SetPointAt returns the scheduled outlet pressure in MPa at the given hour.
func SetPointAt(hour float64) float64 {
	hour = math.Mod(hour, 24)
	if hour < 0 {
		hour += 24
	}
	p := Valley.SetPoint
	for _, b := range []Period{DaytimeFlat, MorningPeak, EveningPeak} {
		p = math.Max(p, Valley.SetPoint+(b.SetPoint-Valley.SetPoint)*band(hour, b.Start, b.End))
	}
	return p
}

// PeriodAt returns the schedule period containing hour.
func PeriodAt(hour float64) Period {
	for _, b := range []Period{MorningPeak, EveningPeak, DaytimeFlat} {
		if hour >= b.Start && hour < b.End {
			return b
		}
	}
	return Valley
}

// Schedule shows the 24 hour set-point profile with a cursor sweeping one
// day per 15 seconds, and gauges for the three operating points.
func Schedule(s canvas.Surface, w, h, t float64) {
	f := newFrame(s, w, h, t)
	k := f.k

	x, y, cw, ch := -520.0, -330.0, 1040.0, 260.0
	draw.Panel(s, f.u(x), f.u(y), f.u(cw), f.u(ch), draw.Colors.Neon, 2*k)
	f.text("Pressure set-point over 24 h", x+20, y+30, canvas.SansBold, 18, draw.Colors.Neon, canvas.AlignLeft)

	plotX, plotY, plotW, plotH := x+40, y+50, cw-80, ch-90
	hourX := func(hr float64) float64 { return plotX + hr/24*plotW }
	mpaY := func(p float64) float64 { return plotY + plotH - (p-0.2)/0.3*plotH }

	for _, b := range []Period{MorningPeak, EveningPeak} {
		canvas.FillRect(s, f.u(hourX(b.Start)), f.u(plotY), f.u(hourX(b.End)-hourX(b.Start)), f.u(plotH),
			canvas.Fade(draw.Colors.Orange, 0.15))
	}

	for hr := 0; hr <= 24; hr += 3 {
		hx := hourX(float64(hr))
		canvas.Line(s, f.u(hx), f.u(plotY+plotH), f.u(hx), f.u(plotY+plotH+5), draw.Colors.Steel, k)
		f.text(fmt.Sprintf("%02d", hr), hx, plotY+plotH+22, canvas.Mono, 12, draw.Colors.Steel, canvas.AlignCenter)
	}

	s.SetStrokeColor(draw.Colors.Neon)
	s.SetLineWidth(3 * k)
	for i := 0; i <= 96; i++ {
		hr := float64(i) / 4
		px, py := f.u(hourX(hr)), f.u(mpaY(SetPointAt(hr)))
		if i == 0 {
			s.MoveTo(px, py)
		} else {
			s.LineTo(px, py)
		}
	}
	s.Stroke()

	now := draw.Phase(t/15) * 24
	cur := SetPointAt(now)
	nx := f.u(hourX(now))
	canvas.Line(s, nx, f.u(plotY), nx, f.u(plotY+plotH), canvas.Fade(draw.Colors.White, 0.6), k)
	canvas.FillCircle(s, nx, f.u(mpaY(cur)), 6*k, draw.Colors.White)

	hh, mm := int(now), int((now-math.Floor(now))*60)
	f.text(fmt.Sprintf("%02d:%02d  %.2f MPa", hh, mm, cur), x+cw-20, y+30, canvas.MonoBold, 16, draw.Colors.White, canvas.AlignRight)

	active := PeriodAt(now)
	for i, p := range []Period{MorningPeak, EveningPeak, Valley} {
		color := draw.Colors.Neon
		if p.Name == active.Name {
			color = draw.Colors.Orange
		}
		cx := f.at(-330+float64(i)*330, 140)
		draw.Gauge(s, cx.X, cx.Y, f.u(85), p.SetPoint/gaugeFull, p.Name, fmt.Sprintf("%.2f MPa", p.SetPoint), color, k)
	}

	if f.after(4) {
		f.indicator(-110, 320, "ANNUAL SAVINGS", "23%")
	}
}
