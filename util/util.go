package util

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Lerp blends a towards b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// GenerateLut samples curve into a symmetric ramp that rises over the first
// half of the table and falls over the second.
func GenerateLut(length int, curve func(float64) float64) []float64 {
	lut := make([]float64, length)
	if length < 2 {
		return lut
	}
	increment := 1.0 / float64(length/2)
	for i, j := 0, length-1; i < length/2; i, j = i+1, j-1 {
		value := float64(i) * increment
		lut[i] = curve(value)
		lut[j] = curve(value)
	}
	if length%2 == 1 {
		lut[length/2] = curve(1)
	}
	return lut
}

// GenerateRamp samples curve across [0,1] into a table of length entries.
func GenerateRamp(length int, curve func(float64) float64) []float64 {
	lut := make([]float64, length)
	for i := range lut {
		x := 0.0
		if length > 1 {
			x = float64(i) / float64(length-1)
		}
		lut[i] = curve(x)
	}
	return lut
}

func Sub(a, b f64.Vec3) f64.Vec3 {
	return f64.Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func Add(a, b f64.Vec3) f64.Vec3 {
	return f64.Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func Scale(a f64.Vec3, k float64) f64.Vec3 {
	return f64.Vec3{a[0] * k, a[1] * k, a[2] * k}
}

func Dot(a, b f64.Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func Cross(a, b f64.Vec3) f64.Vec3 {
	return f64.Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func Length(a f64.Vec3) float64 {
	return math.Sqrt(Dot(a, a))
}

// Normalize returns a unit vector along a, or the zero vector.
func Normalize(a f64.Vec3) f64.Vec3 {
	l := Length(a)
	if l == 0 {
		return f64.Vec3{}
	}
	return f64.Vec3{a[0] / l, a[1] / l, a[2] / l}
}
