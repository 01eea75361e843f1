package texwrap

// Vec2 is a 2D vector in the float32 layout immediate-mode GUI libraries
// use for sizes and positions (ImVec2).
type Vec2 struct {
	X, Y float32
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Fit returns the largest vector with the aspect ratio of v that fits
// inside bounds. Returns the zero vector if v has a zero component.
func (v Vec2) Fit(bounds Vec2) Vec2 {
	if v.X == 0 || v.Y == 0 {
		return Vec2{}
	}
	s := bounds.X / v.X
	if sy := bounds.Y / v.Y; sy < s {
		s = sy
	}
	return v.Mul(s)
}

// IsZero returns true if the vector is the zero vector.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}
