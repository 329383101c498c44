package gun

import "math"

// cosEpsilon rejects rays within rounding distance of parallel to the
// screen plane. cos(pi/2) in float64 lands around 6e-17, well below this.
const cosEpsilon = 1e-9

// Pointer is a normalized screen position in [0,1]x[0,1]. The zero value
// is the "nothing emitted yet" sentinel.
type Pointer struct {
	U     float64 `json:"u"`
	V     float64 `json:"v"`
	Valid bool    `json:"valid"`
}

// ProjectionStrategy maps a pose onto calibrated screen space. ok is false
// when the ray misses the screen or the geometry is degenerate this tick.
type ProjectionStrategy interface {
	Project(pose Pose, cal Calibration) (u, v float64, ok bool)
}

// PlaneProjector intersects the aiming ray with the calibrated depth plane
// using the controller's pitch and yaw. This is the formulation a photodiode
// gun effectively implements: each axis is an independent right triangle
// between the plane distance and the aiming angle.
type PlaneProjector struct{}

// Project computes where the ray crosses the plane and normalizes into the
// calibrated rectangle.
func (PlaneProjector) Project(pose Pose, cal Calibration) (float64, float64, bool) {
	pitch, yaw := pose.Orientation.Angles()
	normal := math.Abs(pose.Position.Z - cal.Depth)

	offX, ok := lateralOffset(normal, yaw)
	if !ok {
		return 0, 0, false
	}
	offY, ok := lateralOffset(normal, pitch)
	if !ok {
		return 0, 0, false
	}

	// Positive yaw aims toward -X, positive pitch toward +Y.
	x := pose.Position.X - offX
	y := pose.Position.Y + offY

	u := (x - cal.X0) / (cal.X1 - cal.X0)
	v := (y - cal.Y0) / (cal.Y1 - cal.Y0)
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return 0, 0, false
	}
	return u, v, true
}

// lateralOffset solves the right triangle formed by the perpendicular plane
// distance and the aiming angle for the offset along one screen axis,
// sign-matched to the angle. It fails when the ray is parallel to or behind
// the plane, or when rounding pushes the radicand negative.
func lateralOffset(normal, angle float64) (float64, bool) {
	cos := math.Cos(angle)
	if cos < cosEpsilon {
		return 0, false
	}
	hyp := normal / cos
	radicand := hyp*hyp - normal*normal
	if radicand < 0 {
		return 0, false
	}
	off := math.Sqrt(radicand)
	if angle < 0 {
		off = -off
	}
	return off, true
}

// Projector runs a ProjectionStrategy and suppresses redundant or invalid
// results, so downstream only ever sees changed on-screen positions.
type Projector struct {
	strategy ProjectionStrategy
	pointer  Pointer
}

// NewProjector returns a projector using the canonical PlaneProjector.
func NewProjector() *Projector {
	return NewProjectorWithStrategy(PlaneProjector{})
}

// NewProjectorWithStrategy returns a projector using the given strategy.
func NewProjectorWithStrategy(s ProjectionStrategy) *Projector {
	return &Projector{strategy: s}
}

// Pointer returns the last emitted position. Pointer.Valid is false until
// the first successful update.
func (p *Projector) Pointer() Pointer {
	return p.pointer
}

// Update projects one pose against the calibrated geometry. It returns the
// current pointer and whether it changed this tick. Misses, degenerate rays
// and exact repeats all leave the previous pointer untouched.
func (p *Projector) Update(pose Pose, cal Calibration) (Pointer, bool) {
	u, v, ok := p.strategy.Project(pose, cal)
	if !ok {
		return p.pointer, false
	}
	if p.pointer.Valid && p.pointer.U == u && p.pointer.V == v {
		return p.pointer, false
	}
	p.pointer = Pointer{U: u, V: v, Valid: true}
	return p.pointer, true
}
