package geo

import "math"

// vec2 is a 2D point on the local tangent plane, x east and y north.
type vec2 struct {
	x float64
	y float64
}

// rotatePoint rotates p clockwise around origin by angle radians.
func rotatePoint(origin, p vec2, angle float64) vec2 {
	cos := math.Cos(angle)
	sin := math.Sin(angle)

	return vec2{
		x: (p.x-origin.x)*cos + (p.y-origin.y)*sin + origin.x,
		y: (p.y-origin.y)*cos - (p.x-origin.x)*sin + origin.y,
	}
}

// headingToPoint rotates the unit north vector clockwise by a heading in
// degrees: 0° points north, 90° east, 180° south, 270° west.
func headingToPoint(heading float64) vec2 {
	return rotatePoint(vec2{}, vec2{x: 0, y: 1}, heading*math.Pi/180)
}
