package geom

import "math"

type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// ClampLen limits the vector magnitude to max, preserving direction.
func (v Vec2) ClampLen(max float64) Vec2 {
	if max <= 0 {
		return Vec2{}
	}
	l := v.Len()
	if l <= max {
		return v
	}
	return v.Scale(max / l)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 keeps normalized scalars inside [0,1] after every mutation.
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

func Dist(a, b Vec2) float64 {
	return a.Sub(b).Len()
}

// TorusDist measures distance on a wrapping field of the given extent.
func TorusDist(a, b Vec2, w, h float64) float64 {
	dx := math.Abs(a.X - b.X)
	dy := math.Abs(a.Y - b.Y)
	if dx > w/2 {
		dx = w - dx
	}
	if dy > h/2 {
		dy = h - dy
	}
	return math.Hypot(dx, dy)
}

// TorusDelta is the shortest vector from a to b on a wrapping field.
func TorusDelta(a, b Vec2, w, h float64) Vec2 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	if dx > w/2 {
		dx -= w
	} else if dx < -w/2 {
		dx += w
	}
	if dy > h/2 {
		dy -= h
	} else if dy < -h/2 {
		dy += h
	}
	return Vec2{X: dx, Y: dy}
}

// Wrap maps a position onto a toroidal field of the given extent.
func Wrap(p Vec2, w, h float64) Vec2 {
	p.X = math.Mod(p.X, w)
	if p.X < 0 {
		p.X += w
	}
	p.Y = math.Mod(p.Y, h)
	if p.Y < 0 {
		p.Y += h
	}
	return p
}

// Bounce clamps a position to the field and reflects the velocity component
// that crossed the boundary.
func Bounce(p, v Vec2, w, h float64) (Vec2, Vec2) {
	if p.X < 0 {
		p.X = 0
		v.X = -v.X
	} else if p.X > w {
		p.X = w
		v.X = -v.X
	}
	if p.Y < 0 {
		p.Y = 0
		v.Y = -v.Y
	} else if p.Y > h {
		p.Y = h
		v.Y = -v.Y
	}
	return p, v
}
