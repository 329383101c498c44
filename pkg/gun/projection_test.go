package gun

import (
	"math"
	"testing"
)

// testCal is the reference screen from the calibration scenario: corners
// (-1, 1) and (1, -1) on the z=5 plane.
var testCal = Calibration{X0: -1, Y0: 1, X1: 1, Y1: -1, Depth: 5}

func TestPlaneProjector_Center(t *testing.T) {
	var p PlaneProjector

	u, v, ok := p.Project(poseAt(0, 0, 10), testCal)
	if !ok {
		t.Fatal("Expected a hit aiming at the screen center")
	}
	if math.Abs(u-0.5) > 1e-9 || math.Abs(v-0.5) > 1e-9 {
		t.Errorf("Expected (0.5, 0.5), got (%v, %v)", u, v)
	}
}

func TestPlaneProjector_YawOffset(t *testing.T) {
	var p PlaneProjector

	// Three units from the plane, aiming left so the ray lands half a
	// unit toward -X: x = -0.5, u = 0.25.
	pose := Pose{
		Position:    Vec3{Z: 8},
		Orientation: quatYaw(math.Atan(0.5 / 3)),
	}

	u, v, ok := p.Project(pose, testCal)
	if !ok {
		t.Fatal("Expected a hit")
	}
	if math.Abs(u-0.25) > 1e-9 {
		t.Errorf("Expected u=0.25, got %v", u)
	}
	if math.Abs(v-0.5) > 1e-9 {
		t.Errorf("Expected v=0.5, got %v", v)
	}
}

func TestPlaneProjector_PitchOffset(t *testing.T) {
	var p PlaneProjector

	// Aiming up lands half a unit toward +Y: y = 0.5, and with the
	// rectangle's inverted y span that is v = 0.25.
	pose := Pose{
		Position:    Vec3{Z: 8},
		Orientation: quatPitch(math.Atan(0.5 / 3)),
	}

	u, v, ok := p.Project(pose, testCal)
	if !ok {
		t.Fatal("Expected a hit")
	}
	if math.Abs(v-0.25) > 1e-9 {
		t.Errorf("Expected v=0.25, got %v", v)
	}
	if math.Abs(u-0.5) > 1e-9 {
		t.Errorf("Expected u=0.5, got %v", u)
	}
}

func TestPlaneProjector_ParallelRay(t *testing.T) {
	var p PlaneProjector

	tests := []struct {
		name string
		q    Quat
	}{
		{"yaw +90", quatYaw(math.Pi / 2)},
		{"yaw -90", quatYaw(-math.Pi / 2)},
		{"pitch +90", quatPitch(math.Pi / 2)},
		{"pitch -90", quatPitch(-math.Pi / 2)},
		{"behind", quatYaw(math.Pi)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pose := Pose{Position: Vec3{Z: 8}, Orientation: tt.q}
			if _, _, ok := p.Project(pose, testCal); ok {
				t.Error("Expected no intersection")
			}
		})
	}
}

func TestPlaneProjector_OffScreen(t *testing.T) {
	var p PlaneProjector

	// Lands at x = 1.1, just past the right edge.
	pose := Pose{
		Position:    Vec3{Z: 8},
		Orientation: quatYaw(-math.Atan(1.1 / 3)),
	}

	if _, _, ok := p.Project(pose, testCal); ok {
		t.Error("Expected off-screen ray to be discarded")
	}
}

func TestProjector_Idempotent(t *testing.T) {
	p := NewProjector()
	pose := poseAt(0, 0, 10)

	ptr, updated := p.Update(pose, testCal)
	if !updated {
		t.Fatal("Expected first update to emit")
	}
	if math.Abs(ptr.U-0.5) > 1e-9 || math.Abs(ptr.V-0.5) > 1e-9 {
		t.Errorf("Expected (0.5, 0.5), got (%v, %v)", ptr.U, ptr.V)
	}

	// Same pose again: exactly one emission, not two.
	if _, updated := p.Update(pose, testCal); updated {
		t.Error("Expected identical pose to be suppressed")
	}
}

func TestProjector_MissRetainsPointer(t *testing.T) {
	p := NewProjector()

	if p.Pointer().Valid {
		t.Fatal("Expected no pointer before the first hit")
	}

	p.Update(poseAt(0, 0, 10), testCal)
	before := p.Pointer()

	// A parallel ray discards the tick and leaves the pointer alone.
	miss := Pose{Position: Vec3{Z: 10}, Orientation: quatYaw(math.Pi / 2)}
	ptr, updated := p.Update(miss, testCal)
	if updated {
		t.Error("Expected no update from a parallel ray")
	}
	if ptr != before {
		t.Errorf("Pointer changed on a miss: %+v -> %+v", before, ptr)
	}
}

// fixedStrategy always reports the same hit, for exercising the projector's
// suppression logic in isolation.
type fixedStrategy struct {
	u, v float64
	ok   bool
}

func (s fixedStrategy) Project(Pose, Calibration) (float64, float64, bool) {
	return s.u, s.v, s.ok
}

func TestProjector_CustomStrategy(t *testing.T) {
	p := NewProjectorWithStrategy(fixedStrategy{u: 0.3, v: 0.7, ok: true})

	if _, updated := p.Update(Pose{}, Calibration{}); !updated {
		t.Error("Expected first strategy hit to emit")
	}
	if _, updated := p.Update(Pose{}, Calibration{}); updated {
		t.Error("Expected repeated strategy hit to be suppressed")
	}
}
