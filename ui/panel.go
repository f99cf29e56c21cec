package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Params are the values the panel edits.
type Params struct {
	Count       int
	Amplitude   float64
	Damping     float64
	Scale       float64
	StrokeAlpha float64
	LineWidth   float64
}

// Action is what the user asked for this frame.
type Action struct {
	Changed    bool // a slider moved; field params need regenerating
	Restyled   bool // only visual settings changed
	Regenerate bool
	Download   bool
	Preset     bool // params were reset to Preset()
	Recolour   bool // cycle to the next colour palette
}

// Preset returns the values the controls start from when no config is given.
func Preset() Params {
	return Params{
		Count:       800,
		Amplitude:   5.3,
		Damping:     0.21,
		Scale:       0.8,
		StrokeAlpha: 1,
		LineWidth:   0.9,
	}
}

// slider describes one bound value.
type slider struct {
	label    string
	min, max float32
	step     float32
	format   string
	get      func(*Params) float64
	set      func(*Params, float64)
	visual   bool
}

var sliders = []slider{
	{"count", 100, 5000, 100, "%.0f",
		func(p *Params) float64 { return float64(p.Count) },
		func(p *Params, v float64) { p.Count = int(v) }, false},
	{"amplitude", 1, 20, 0.1, "%.1f",
		func(p *Params) float64 { return p.Amplitude },
		func(p *Params, v float64) { p.Amplitude = v }, false},
	{"damping", 0.1, 1, 0.01, "%.2f",
		func(p *Params) float64 { return p.Damping },
		func(p *Params, v float64) { p.Damping = v }, false},
	{"scale", 0.1, 3, 0.1, "%.1f",
		func(p *Params) float64 { return p.Scale },
		func(p *Params, v float64) { p.Scale = v }, false},
	{"stroke alpha", 0.1, 1, 0.01, "%.2f",
		func(p *Params) float64 { return p.StrokeAlpha },
		func(p *Params, v float64) { p.StrokeAlpha = v }, true},
	{"line width", 0.5, 5, 0.1, "%.1f",
		func(p *Params) float64 { return p.LineWidth },
		func(p *Params, v float64) { p.LineWidth = v }, true},
}

// Panel renders the flow field controls.
type Panel struct {
	Theme   Theme
	x, y    int32
	width   int32
	visible bool
	status  string
}

// NewPanel creates a panel anchored at (x, y).
func NewPanel(x, y, width int32) *Panel {
	return &Panel{
		Theme:   DefaultTheme(),
		x:       x,
		y:       y,
		width:   width,
		visible: true,
	}
}

// Toggle switches panel visibility.
func (p *Panel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// SetStatus sets the line shown under the buttons.
func (p *Panel) SetStatus(s string) {
	p.status = s
}

// Draw renders the panel, applies slider edits to params and reports actions.
func (p *Panel) Draw(params *Params) Action {
	var act Action
	if !p.visible {
		return act
	}

	t := p.Theme
	rowHeight := t.LineHeight + t.SliderHeight + 6
	height := t.Padding*3 + t.LineHeight*2 + int32(len(sliders))*rowHeight + 60 + t.LineHeight

	rl.DrawRectangle(p.x, p.y, p.width, height, t.PanelBg)
	rl.DrawRectangleLines(p.x, p.y, p.width, height, t.PanelBorder)

	x := float32(p.x + t.Padding)
	y := p.y + t.Padding
	rl.DrawText("Flow Field Controls", int32(x), y, t.HeaderFontSize, t.SectionHeader)
	y += t.LineHeight + 4

	sliderWidth := float32(p.width - t.Padding*2 - 50)
	for _, s := range sliders {
		rl.DrawText(s.label, int32(x), y, t.FontSize, t.LabelColor)
		y += t.LineHeight

		cur := float32(s.get(params))
		next := gui.SliderBar(
			rl.Rectangle{X: x, Y: float32(y), Width: sliderWidth, Height: float32(t.SliderHeight)},
			"", "",
			cur, s.min, s.max,
		)
		next = snap(next, s.min, s.step)
		moved := math.Abs(float64(next-cur)) >= float64(s.step)/2
		if !moved {
			next = cur
		}
		rl.DrawText(fmt.Sprintf(s.format, next), int32(x+sliderWidth+8), y+2, t.FontSize, t.ValueColor)

		if moved {
			s.set(params, float64(next))
			if s.visual {
				act.Restyled = true
			} else {
				act.Changed = true
			}
		}
		y += t.SliderHeight + 6
	}

	y += t.Padding
	buttonWidth := (float32(p.width) - float32(t.Padding*3)) / 2
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: buttonWidth, Height: 26}, "Regenerate") {
		act.Regenerate = true
	}
	if gui.Button(rl.Rectangle{X: x + buttonWidth + float32(t.Padding), Y: float32(y), Width: buttonWidth, Height: 26}, "Download Points") {
		act.Download = true
	}
	y += 30
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: buttonWidth, Height: 26}, "Preset") {
		*params = Preset()
		act.Preset = true
		act.Changed = true
		act.Restyled = true
	}
	if gui.Button(rl.Rectangle{X: x + buttonWidth + float32(t.Padding), Y: float32(y), Width: buttonWidth, Height: 26}, "Colours") {
		act.Recolour = true
		act.Restyled = true
	}
	y += 30

	if p.status != "" {
		rl.DrawText(p.status, int32(x), y, t.FontSize, t.LabelColor)
	}

	return act
}

// snap rounds v to the nearest step above min.
func snap(v, min, step float32) float32 {
	if step <= 0 {
		return v
	}
	return min + float32(math.Round(float64((v-min)/step)))*step
}
