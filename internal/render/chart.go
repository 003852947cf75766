package render

import (
	"fmt"
	"math"

	"github.com/sweeney/fusion-panel/internal/display"
)

type chartState struct {
	label      string
	samples    []float64
	hasReactor bool
	scale      func(float64) (float64, string)
}

// drawChart renders one bar-chart panel: a label row, then bottom-anchored
// columns filling the rest of the band. Samples are max-pooled into the
// column buckets so spikes survive downsampling.
func drawChart(surf display.Surface, pal Palette, color display.Color, top, height, w int, st chartState) {
	if height < 1 {
		return
	}

	surf.SetForeground(pal.Label)
	surf.SetBackground(display.Black)
	label := st.label
	if n := len(st.samples); n > 0 {
		v, unit := st.scale(st.samples[n-1])
		label = fmt.Sprintf("%s  %.2f %s", st.label, v, unit)
	}
	surf.Write(1, top, label)

	if !st.hasReactor {
		surf.SetForeground(pal.Unknown)
		surf.Write(1, top+1, "no reactor adapter installed")
		return
	}

	usable := height - 1
	n := len(st.samples)
	if usable < 1 || n == 0 {
		return
	}

	globalMax := 0.0
	for _, s := range st.samples {
		if s > globalMax {
			globalMax = s
		}
	}
	if globalMax <= 0 {
		return
	}

	bottom := top + height - 1
	surf.SetForeground(color)
	for col := 0; col < w; col++ {
		// Floor bucket boundaries; a bucket narrower than one sample
		// stretches its sample across the column.
		start := col * n / w
		end := (col + 1) * n / w
		if end <= start {
			end = start + 1
		}

		colMax := 0.0
		for _, s := range st.samples[start:end] {
			if s > colMax {
				colMax = s
			}
		}

		colH := int(math.Round(float64(usable) * colMax / globalMax))
		if colH <= 0 {
			continue
		}
		surf.Fill(col, bottom-colH+1, 1, colH, '█')
	}
}
