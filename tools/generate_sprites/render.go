package main

import (
	"image"
	"image/color"
	"math"
)

// ==================== LIGHTING ====================

var lightDir = vec3{-0.5, -0.7, 0.5}

type vec3 struct{ x, y, z float64 }

func (v vec3) normalize() vec3 {
	l := math.Sqrt(v.x*v.x + v.y*v.y + v.z*v.z)
	if l == 0 {
		return vec3{0, 0, 1}
	}
	return vec3{v.x / l, v.y / l, v.z / l}
}
func (v vec3) dot(o vec3) float64 { return v.x*o.x + v.y*o.y + v.z*o.z }

// Material is the surface a creature body part is shaded with
type Material struct {
	BaseColor color.RGBA
	Roughness float64
	AO        float64
}

func shade(mat Material, normal vec3, ao float64) color.RGBA {
	light := lightDir.normalize()
	n := normal.normalize()
	diffuse := math.Max(0, n.dot(light))
	halfDir := vec3{light.x, light.y, light.z + 1}.normalize()
	specPower := 2.0 + (1.0-mat.Roughness)*60.0
	specular := math.Pow(math.Max(0, n.dot(halfDir)), specPower) * (1.0 - mat.Roughness) * 0.6
	ambient := 0.25 + 0.1*n.z
	aoFactor := ao*mat.AO + (1.0 - mat.AO)
	total := (ambient + diffuse*0.65) * aoFactor
	r := clampF64(float64(mat.BaseColor.R)/255*total+specular, 0, 1)
	g := clampF64(float64(mat.BaseColor.G)/255*total+specular*0.95, 0, 1)
	b := clampF64(float64(mat.BaseColor.B)/255*total+specular*0.9, 0, 1)
	return color.RGBA{cu8(r * 255), cu8(g * 255), cu8(b * 255), mat.BaseColor.A}
}

// ==================== NOISE ====================

func fbm(x, y float64, octaves int, persistence, seed float64) float64 {
	total, amp, freq, maxV := 0.0, 1.0, 1.0, 0.0
	for i := 0; i < octaves; i++ {
		total += valueNoise(x*freq+seed*17.3, y*freq+seed*31.7) * amp
		maxV += amp
		amp *= persistence
		freq *= 2.0
	}
	return total / maxV
}

func valueNoise(x, y float64) float64 {
	ix, iy := int(math.Floor(x)), int(math.Floor(y))
	fx, fy := x-math.Floor(x), y-math.Floor(y)
	fx = fx * fx * (3.0 - 2.0*fx)
	fy = fy * fy * (3.0 - 2.0*fy)
	return lerp64(lerp64(hashF(ix, iy), hashF(ix+1, iy), fx), lerp64(hashF(ix, iy+1), hashF(ix+1, iy+1), fx), fy)
}

func hashF(x, y int) float64 {
	h := x*374761393 + y*668265263
	h = (h ^ (h >> 13)) * 1274126177
	h = h ^ (h >> 16)
	return float64(h&0x7FFFFFFF) / float64(0x7FFFFFFF)
}

func lerp64(a, b, t float64) float64 { return a*(1-t) + b*t }

// ==================== UTILITIES ====================

func cu8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clampF64(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func spxBlend(img *image.RGBA, x, y int, c color.RGBA) {
	b := img.Bounds()
	if x < b.Min.X || y < b.Min.Y || x >= b.Max.X || y >= b.Max.Y || c.A == 0 {
		return
	}
	ex := img.RGBAAt(x, y)
	if ex.A == 0 {
		img.SetRGBA(x, y, c)
		return
	}
	a := float64(c.A) / 255.0
	img.SetRGBA(x, y, color.RGBA{
		cu8(float64(ex.R)*(1-a) + float64(c.R)*a),
		cu8(float64(ex.G)*(1-a) + float64(c.G)*a),
		cu8(float64(ex.B)*(1-a) + float64(c.B)*a),
		cu8(math.Max(float64(ex.A), float64(c.A))),
	})
}

func drawSoftShadow(img *image.RGBA, cx, cy, rx, ry int, intensity float64) {
	for py := cy - ry*2; py <= cy+ry*2; py++ {
		for px := cx - rx*2; px <= cx+rx*2; px++ {
			dx, dy := float64(px-cx)/float64(rx), float64(py-cy)/float64(ry)
			d2 := dx*dx + dy*dy
			if d2 < 4.0 {
				spxBlend(img, px, py, color.RGBA{0, 0, 0, cu8(intensity * 255 * math.Exp(-d2*1.2))})
			}
		}
	}
}

func darken(c color.RGBA, amt float64) color.RGBA {
	f := 1.0 - clampF64(amt, 0, 0.9)
	return color.RGBA{cu8(float64(c.R) * f), cu8(float64(c.G) * f), cu8(float64(c.B) * f), c.A}
}

// ==================== DRAWING PRIMITIVES ====================

func lineAA(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx, dy := math.Abs(float64(x1-x0)), math.Abs(float64(y1-y0))
	steps := int(math.Max(dx, dy))
	if steps == 0 {
		spxBlend(img, x0, y0, c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := float64(x0) + t*float64(x1-x0)
		y := float64(y0) + t*float64(y1-y0)
		ix, iy := int(x), int(y)
		fx, fy := x-float64(ix), y-float64(iy)
		spxBlend(img, ix, iy, color.RGBA{c.R, c.G, c.B, cu8(float64(c.A) * (1 - fx) * (1 - fy))})
		spxBlend(img, ix+1, iy, color.RGBA{c.R, c.G, c.B, cu8(float64(c.A) * fx * (1 - fy))})
		spxBlend(img, ix, iy+1, color.RGBA{c.R, c.G, c.B, cu8(float64(c.A) * (1 - fx) * fy)})
		spxBlend(img, ix+1, iy+1, color.RGBA{c.R, c.G, c.B, cu8(float64(c.A) * fx * fy)})
	}
}

func thickLine(img *image.RGBA, x0, y0, x1, y1 int, thick float64, c color.RGBA) {
	dx, dy := float64(x1-x0), float64(y1-y0)
	l := math.Sqrt(dx*dx + dy*dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l, dx/l
	for t := -thick / 2; t <= thick/2; t += 0.5 {
		lineAA(img, x0+int(nx*t), y0+int(ny*t), x1+int(nx*t), y1+int(ny*t), c)
	}
}

func fCircle(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	for py := cy - r - 1; py <= cy+r+1; py++ {
		for px := cx - r - 1; px <= cx+r+1; px++ {
			d := math.Sqrt(float64((px-cx)*(px-cx) + (py-cy)*(py-cy)))
			if d <= float64(r)+0.5 {
				a := c.A
				if d > float64(r)-0.5 {
					a = cu8(float64(c.A) * (float64(r) + 0.5 - d))
				}
				spxBlend(img, px, py, color.RGBA{c.R, c.G, c.B, a})
			}
		}
	}
}

// shadedEllipse fills an ellipse lit as the front half of an ellipsoid,
// with fur noise breaking up the surface
func shadedEllipse(img *image.RGBA, cx, cy, rx, ry int, mat Material, seed float64) {
	for py := cy - ry - 1; py <= cy+ry+1; py++ {
		for px := cx - rx - 1; px <= cx+rx+1; px++ {
			dx, dy := float64(px-cx)/float64(rx), float64(py-cy)/float64(ry)
			d := dx*dx + dy*dy
			if d > 1.0 {
				continue
			}
			nz := math.Sqrt(1 - d)
			fur := fbm(float64(px)*0.15, float64(py)*0.15, 3, 0.5, seed)
			c := shade(mat, vec3{dx, dy, nz}, 0.6+0.4*fur)
			if d > 0.85 {
				c.A = cu8(float64(c.A) * (1.0 - d) / 0.15)
			}
			spxBlend(img, px, py, c)
		}
	}
}

func fTriangle(img *image.RGBA, x0, y0, x1, y1, x2, y2 int, c color.RGBA) {
	minX, maxX := min(x0, x1, x2), max(x0, x1, x2)
	minY, maxY := min(y0, y1, y2), max(y0, y1, y2)
	edge := func(ax, ay, bx, by, px, py int) int { return (bx-ax)*(py-ay) - (by-ay)*(px-ax) }
	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			w0 := edge(x1, y1, x2, y2, px, py)
			w1 := edge(x2, y2, x0, y0, px, py)
			w2 := edge(x0, y0, x1, y1, px, py)
			if (w0 >= 0 && w1 >= 0 && w2 >= 0) || (w0 <= 0 && w1 <= 0 && w2 <= 0) {
				spxBlend(img, px, py, c)
			}
		}
	}
}
