package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flowfield/telemetry"
)

// HUDData holds the values shown in the heads-up display.
type HUDData struct {
	Stats        telemetry.FieldStats
	Seed         uint64
	FPS          int32
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders field statistics in the top right corner.
type HUD struct {
	Theme Theme
	width int32
}

// NewHUD creates a new HUD.
func NewHUD() *HUD {
	return &HUD{Theme: DefaultTheme(), width: 240}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	t := h.Theme
	x := data.ScreenWidth - h.width - t.Padding
	y := t.Padding
	s := data.Stats

	lines := []string{
		fmt.Sprintf("Generation: %d | FPS: %d", s.Generation, data.FPS),
		fmt.Sprintf("Seed: %d", data.Seed),
		fmt.Sprintf("Lines: %d x %d steps", s.Particles, s.Steps),
		fmt.Sprintf("Kept: %d (%.1f%%)", s.RetainedPoints, s.RetentionRatio*100),
		fmt.Sprintf("Fragmented: %d | Empty: %d", s.FragmentedLines, s.EmptyLines),
		fmt.Sprintf("Path p50/p90: %.0f / %.0f", s.PathLengthP50, s.PathLengthP90),
	}

	height := t.Padding*2 + t.LineHeight*int32(len(lines))
	rl.DrawRectangle(x, y, h.width, height, t.PanelBg)
	rl.DrawRectangleLines(x, y, h.width, height, t.PanelBorder)

	ty := y + t.Padding
	for i, line := range lines {
		c := t.LabelColor
		if i == 0 {
			c = t.ValueColor
		}
		rl.DrawText(line, x+t.Padding, ty, t.FontSize, c)
		ty += t.LineHeight
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders phase timings.
type PerfPanel struct {
	x, y int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders average time per phase and its share of the total.
func (p *PerfPanel) Draw(perf *telemetry.PerfStats) {
	x := p.x
	y := p.y
	total := perf.Total()

	rl.DrawText("Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Total: %s", total.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, name := range perf.SortedNames() {
		avg := perf.Avg(name)
		pct := float64(0)
		if total > 0 {
			pct = float64(avg) / float64(total) * 100
		}

		color := rl.LightGray
		if pct > 60 {
			color = rl.Red
		} else if pct > 30 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
