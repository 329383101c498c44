// Package gun implements the aim-to-screen core of go-lightgun: pose
// geometry, trigger edge classification, screen calibration, and projection
// of the aiming ray onto the calibrated screen plane.
package gun

import "math"

// Vec3 is a position in tracking-space units.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Quat is a unit orientation quaternion.
type Quat struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// Pose is a rigid-body sample for the tracked controller at an instant.
type Pose struct {
	Position    Vec3 `json:"position"`
	Orientation Quat `json:"orientation"`
}

// Forward returns the aiming direction: the local -Z axis rotated by the
// quaternion. Tracking runtimes point the grip's -Z down the barrel.
func (q Quat) Forward() Vec3 {
	return Vec3{
		X: -2 * (q.X*q.Z + q.W*q.Y),
		Y: 2 * (q.W*q.X - q.Y*q.Z),
		Z: 2*(q.X*q.X+q.Y*q.Y) - 1,
	}
}

// Angles decomposes the aiming direction into pitch and yaw in radians,
// discarding roll. Rolling the controller does not change where a
// point-source beam lands on the screen, so only these two matter.
// Pitch is positive aiming up (+Y), yaw is positive aiming left (-X).
func (q Quat) Angles() (pitch, yaw float64) {
	f := q.Forward()
	pitch = math.Asin(clamp(f.Y, -1, 1))
	yaw = math.Atan2(-f.X, -f.Z)
	return pitch, yaw
}

// clamp restricts v to the range [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
