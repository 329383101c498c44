package bridge

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/openlightgun/go-lightgun/pkg/gun"
	"github.com/openlightgun/go-lightgun/pkg/sink"
	"github.com/openlightgun/go-lightgun/pkg/source"
)

var (
	press   = gun.ButtonState{Pressed: true, Changed: true}
	release = gun.ButtonState{Pressed: false, Changed: true}
	held    = gun.ButtonState{Pressed: true, Changed: false}
)

func aimAt(x, y, z float64) gun.Pose {
	return gun.Pose{Position: gun.Vec3{X: x, Y: y, Z: z}, Orientation: gun.Quat{W: 1}}
}

// aimAway points the gun parallel to the screen so no tick projects.
func aimAway() gun.Pose {
	return gun.Pose{
		Position:    gun.Vec3{Z: 10},
		Orientation: gun.Quat{Y: math.Sin(math.Pi / 4), W: math.Cos(math.Pi / 4)},
	}
}

func fire(state gun.ButtonState) gun.ButtonSample {
	return gun.ButtonSample{Fire: state}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.PollInterval = 0
	return cfg
}

func newTestBridge(t *testing.T, src source.Source, snk sink.Sink) *Bridge {
	t.Helper()
	b, err := New(testConfig(), src, snk, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

// queueCalibration scripts the two corner captures of the reference screen,
// leaving the trigger released afterwards.
func queueCalibration(src *source.Mock) {
	src.QueueSample(aimAt(-1, 1, 5), fire(press))
	src.QueueSample(aimAt(-1, 1, 5), fire(release))
	src.QueueSample(aimAt(1, -1, 5), fire(press))
	// Release with the gun aimed away so the tick carries no position.
	src.QueueSample(aimAway(), fire(release))
}

func TestBridge_CalibrationThenCenterShot(t *testing.T) {
	src := source.NewMock()
	src.QueueSample(aimAt(-1, 1, 5), fire(press))
	src.QueueSample(aimAt(-1, 1, 5), fire(held)) // hold must not capture
	src.QueueSample(aimAt(-1, 1, 5), fire(release))
	src.QueueSample(aimAt(1, -1, 5), fire(press))
	// First active tick: trigger release maps to a primary release, and the
	// fresh pointer lands dead center.
	src.QueueSample(aimAt(0, 0, 10), fire(release))

	rec := sink.NewRecording()
	b := newTestBridge(t, src, rec)

	if err := b.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []sink.Event{
		{Kind: sink.EventAxis, Axis: sink.AxisX, Value: 960},
		{Kind: sink.EventAxis, Axis: sink.AxisY, Value: 540},
		{Kind: sink.EventButton, Button: sink.ButtonPrimary, Pressed: false},
		{Kind: sink.EventSync},
	}
	if len(rec.Events) != len(want) {
		t.Fatalf("Expected %d events, got %d: %+v", len(want), len(rec.Events), rec.Events)
	}
	for i, ev := range rec.Events {
		if ev != want[i] {
			t.Errorf("Event %d: got %+v, want %+v", i, ev, want[i])
		}
	}

	state := b.State()
	if state.Phase != "active" {
		t.Errorf("Expected phase active, got %s", state.Phase)
	}
	if !state.Pointer.Valid || state.Pointer.U != 0.5 || state.Pointer.V != 0.5 {
		t.Errorf("Expected pointer (0.5, 0.5), got %+v", state.Pointer)
	}
}

func TestBridge_PedalMapsToSecondary(t *testing.T) {
	src := source.NewMock()
	queueCalibration(src)
	// Pedal press with nothing else changing and the gun aimed away from
	// the screen: one secondary press, one sync, no position events.
	src.QueueSample(aimAway(), gun.ButtonSample{Pedal: press})

	rec := sink.NewRecording()
	b := newTestBridge(t, src, rec)

	if err := b.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []sink.Event{
		{Kind: sink.EventButton, Button: sink.ButtonPrimary, Pressed: false},
		{Kind: sink.EventSync},
		{Kind: sink.EventButton, Button: sink.ButtonSecondary, Pressed: true},
		{Kind: sink.EventSync},
	}
	if len(rec.Events) != len(want) {
		t.Fatalf("Expected %d events, got %d: %+v", len(want), len(rec.Events), rec.Events)
	}
	for i, ev := range rec.Events {
		if ev != want[i] {
			t.Errorf("Event %d: got %+v, want %+v", i, ev, want[i])
		}
	}
	if rec.Count(sink.EventAxis) != 0 {
		t.Error("Expected no absolute-position events")
	}
}

func TestBridge_PointerEmittedOncePerPosition(t *testing.T) {
	src := source.NewMock()
	queueCalibration(src)
	src.QueueSample(aimAt(0, 0, 10), gun.ButtonSample{})
	src.QueueSample(aimAt(0, 0, 10), gun.ButtonSample{}) // identical pose

	rec := sink.NewRecording()
	b := newTestBridge(t, src, rec)

	if err := b.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := rec.Count(sink.EventAxis); got != 2 {
		t.Errorf("Expected exactly one x/y pair, got %d axis events", got)
	}
}

func TestBridge_QuitChordStopsLoop(t *testing.T) {
	src := source.NewMock()
	src.QueueSample(aimAt(-1, 1, 5), gun.ButtonSample{Fire: press, Pause: press})
	// Never reached if the chord works.
	src.QueueSample(aimAt(1, -1, 5), fire(press))
	src.QueueSample(aimAt(1, -1, 5), fire(press))

	b := newTestBridge(t, src, sink.NewRecording())

	if err := b.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	state := b.State()
	if state.Ticks != 1 {
		t.Errorf("Expected the loop to stop after 1 tick, ran %d", state.Ticks)
	}
	// The chord tick still did its work: the fire edge captured a corner.
	if state.Phase != "recording_second_corner" {
		t.Errorf("Expected recording_second_corner, got %s", state.Phase)
	}
}

func TestBridge_NotFocusedSkipsTick(t *testing.T) {
	src := source.NewMock()
	src.QueueStatus(source.StatusNotFocused)
	src.QueueSample(aimAt(-1, 1, 5), fire(press))

	b := newTestBridge(t, src, sink.NewRecording())

	if err := b.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	state := b.State()
	if state.Ticks != 1 {
		t.Errorf("Expected only the focused tick to count, got %d", state.Ticks)
	}
	if state.Phase != "recording_second_corner" {
		t.Errorf("Expected the sample after the skip to calibrate, got %s", state.Phase)
	}
}

func TestBridge_SessionEndIsGraceful(t *testing.T) {
	b := newTestBridge(t, source.NewMock(), sink.NewRecording())

	if err := b.Run(context.Background()); err != nil {
		t.Errorf("Expected nil on session end, got %v", err)
	}
}

func TestBridge_DegenerateCalibrationIsFatal(t *testing.T) {
	src := source.NewMock()
	src.QueueSample(aimAt(-1, 1, 5), fire(press))
	src.QueueSample(aimAt(-1, 1, 5), fire(release))
	src.QueueSample(aimAt(-1, 5, 5), fire(press)) // same x as the first corner

	b := newTestBridge(t, src, sink.NewRecording())

	err := b.Run(context.Background())
	if !errors.Is(err, gun.ErrDegenerateScreen) {
		t.Errorf("Expected ErrDegenerateScreen, got %v", err)
	}
}

func TestBridge_SinkFailureIsFatal(t *testing.T) {
	src := source.NewMock()
	queueCalibration(src)
	src.QueueSample(aimAt(0, 0, 10), gun.ButtonSample{})

	rec := sink.NewRecording()
	rec.FailAfter = 2 // dies partway through the position batch
	b := newTestBridge(t, src, rec)

	if err := b.Run(context.Background()); err == nil {
		t.Error("Expected a sink write failure to end the run with an error")
	}
}

func TestBridge_SourceErrorIsFatal(t *testing.T) {
	src := source.NewMock()
	src.QueueError(errors.New("runtime lost"))

	b := newTestBridge(t, src, sink.NewRecording())

	if err := b.Run(context.Background()); err == nil {
		t.Error("Expected a source error to end the run with an error")
	}
}

func TestBridge_OnStateCallback(t *testing.T) {
	src := source.NewMock()
	src.QueueSample(aimAt(-1, 1, 5), fire(press))

	b := newTestBridge(t, src, sink.NewRecording())
	var snapshots []State
	b.OnState = func(s State) { snapshots = append(snapshots, s) }

	if err := b.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(snapshots) != 1 {
		t.Fatalf("Expected 1 snapshot, got %d", len(snapshots))
	}
	if snapshots[0].Phase != "recording_second_corner" {
		t.Errorf("Unexpected snapshot phase %s", snapshots[0].Phase)
	}
}

func TestNew_RejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 0

	if _, err := New(cfg, source.NewMock(), sink.NewRecording(), nil); err == nil {
		t.Error("Expected invalid config to be rejected")
	}
}
