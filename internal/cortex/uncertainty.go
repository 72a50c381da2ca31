package cortex

import (
	"noetica/internal/geom"
)

// Field is the uncertainty grid. Diffusion reads from the current buffer and
// writes to the back buffer, then swaps; the read/write separation is an
// explicit contract rather than a serialized deep copy.
type Field struct {
	cols   int
	rows   int
	retain float64
	cur    []float64
	next   []float64
}

func NewField(cols, rows int, retain float64, initial float64) *Field {
	f := &Field{
		cols:   cols,
		rows:   rows,
		retain: retain,
		cur:    make([]float64, cols*rows),
		next:   make([]float64, cols*rows),
	}
	for i := range f.cur {
		f.cur[i] = initial
	}
	return f
}

func (f *Field) At(col, row int) float64 {
	return f.cur[row*f.cols+col]
}

func (f *Field) set(col, row int, v float64) {
	f.cur[row*f.cols+col] = geom.Clamp01(v)
}

func (f *Field) Cols() int { return f.cols }
func (f *Field) Rows() int { return f.rows }

// Diffuse moves every cell toward the mean of its 8 neighbors, weighted
// retain/(1-retain). A uniform grid is an exact fixed point.
func (f *Field) Diffuse() {
	for row := 0; row < f.rows; row++ {
		for col := 0; col < f.cols; col++ {
			sum := 0.0
			count := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					x, y := col+dx, row+dy
					if x < 0 || x >= f.cols || y < 0 || y >= f.rows {
						continue
					}
					sum += f.cur[y*f.cols+x]
					count++
				}
			}
			v := f.cur[row*f.cols+col]
			f.next[row*f.cols+col] = f.retain*v + (1-f.retain)*(sum/float64(count))
		}
	}
	f.cur, f.next = f.next, f.cur
}

// perturbField pushes cells near each thread toward that thread's
// uncertainty, scaled by inverse distance in cell units.
func (c *Cortex) perturbField() {
	cellW := c.cfg.Width / float64(c.field.cols)
	cellH := c.cfg.Height / float64(c.field.rows)
	for _, t := range c.threads {
		col := int(t.Pos.X / cellW)
		row := int(t.Pos.Y / cellH)
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				x, y := col+dx, row+dy
				if x < 0 || x >= c.field.cols || y < 0 || y >= c.field.rows {
					continue
				}
				d := 1.0
				if dx != 0 || dy != 0 {
					d = 2.0
				}
				cell := c.field.At(x, y)
				c.field.set(x, y, cell+(t.Uncertainty-cell)*c.cfg.PerturbWeight/d)
			}
		}
	}
}
