// Package bridge runs the per-tick control loop that turns tracked poses
// into virtual light gun input: poll the tracker, classify button edges,
// calibrate or project, and batch events into the sink.
package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/openlightgun/go-lightgun/pkg/gun"
	"github.com/openlightgun/go-lightgun/pkg/sink"
	"github.com/openlightgun/go-lightgun/pkg/source"
)

// buttonMap routes controller edges to sink buttons.
var buttonMap = map[gun.Button]sink.Button{
	gun.ButtonFire:  sink.ButtonPrimary,
	gun.ButtonPedal: sink.ButtonSecondary,
	gun.ButtonPause: sink.ButtonTertiary,
}

// State is an observer snapshot of the bridge, published after each tick.
type State struct {
	Phase   string      `json:"phase"`
	Pointer gun.Pointer `json:"pointer"`
	Ticks   uint64      `json:"ticks"`
}

// Bridge owns all per-run state. Everything is touched only by the single
// goroutine inside Run; no locking is needed.
type Bridge struct {
	cfg        Config
	src        source.Source
	snk        sink.Sink
	calibrator *gun.Calibrator
	projector  *gun.Projector
	logger     *slog.Logger
	ticks      uint64

	// OnState, when set, receives a snapshot after every tick. Used by
	// the status dashboard. Must not block.
	OnState func(State)
}

// New creates a bridge over the given source and sink.
func New(cfg Config, src source.Source, snk sink.Sink, logger *slog.Logger) (*Bridge, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("bridge config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{
		cfg:        cfg,
		src:        src,
		snk:        snk,
		calibrator: gun.NewCalibrator(),
		projector:  gun.NewProjector(),
		logger:     logger.With("component", "bridge"),
	}, nil
}

// State returns the current observer snapshot.
func (b *Bridge) State() State {
	return State{
		Phase:   b.calibrator.Phase().String(),
		Pointer: b.projector.Pointer(),
		Ticks:   b.ticks,
	}
}

// Run executes the polling loop until the tracking session ends, the
// fire+pause quit chord is held, the context is cancelled, or something
// fatal happens. A nil return is a normal shutdown.
func (b *Bridge) Run(ctx context.Context) error {
	b.logger.Info("bridge running",
		"width", b.cfg.Width, "height", b.cfg.Height,
		"poll_interval", b.cfg.PollInterval)
	b.logger.Info("aim at the first screen corner and pull the trigger")

	running := true
	for running {
		if err := ctx.Err(); err != nil {
			return err
		}

		sample, status, err := b.src.Poll(ctx)
		if err != nil {
			return fmt.Errorf("tracker poll: %w", err)
		}
		switch status {
		case source.StatusNotFocused:
			// Nothing to compute or emit this tick.
			time.Sleep(b.cfg.PollInterval)
			continue
		case source.StatusSessionEnding:
			b.logger.Info("tracking session ending")
			return nil
		}

		if err := b.tick(sample, &running); err != nil {
			return err
		}
		time.Sleep(b.cfg.PollInterval)
	}

	b.logger.Info("quit chord held, shutting down")
	return nil
}

// tick evaluates one sample: leaf components first, then the mapper.
func (b *Bridge) tick(sample source.Sample, running *bool) error {
	fire := gun.ClassifyEdge(sample.Buttons.Fire)

	wrote := false
	if !b.calibrator.Active() {
		captured, err := b.calibrator.Advance(fire, sample.Pose)
		if err != nil {
			return fmt.Errorf("calibration failed: %w", err)
		}
		if captured {
			b.logCapture(sample.Pose)
		}
	} else {
		var err error
		wrote, err = b.mapOutputs(sample)
		if err != nil {
			return err
		}
	}

	// Quit chord: fire and pause held together, level not edge, checked
	// every tick regardless of calibration state.
	if sample.Buttons.Fire.Pressed && sample.Buttons.Pause.Pressed {
		*running = false
	}

	if wrote {
		if err := b.snk.Sync(); err != nil {
			return fmt.Errorf("sink sync: %w", err)
		}
	}

	b.ticks++
	if b.OnState != nil {
		b.OnState(b.State())
	}
	return nil
}

// mapOutputs translates the tick's pointer update and button edges into
// sink events, reporting whether anything was written.
func (b *Bridge) mapOutputs(sample source.Sample) (bool, error) {
	wrote := false

	if ptr, updated := b.projector.Update(sample.Pose, b.calibrator.Calibration()); updated {
		x := int32(math.Round(ptr.U * float64(b.cfg.Width)))
		y := int32(math.Round(ptr.V * float64(b.cfg.Height)))
		if err := b.snk.SetAxis(sink.AxisX, x); err != nil {
			return false, fmt.Errorf("sink axis x: %w", err)
		}
		if err := b.snk.SetAxis(sink.AxisY, y); err != nil {
			return false, fmt.Errorf("sink axis y: %w", err)
		}
		wrote = true
	}

	for _, btn := range []gun.Button{gun.ButtonFire, gun.ButtonPedal, gun.ButtonPause} {
		edge := gun.ClassifyEdge(sample.Buttons.Get(btn))
		if edge == gun.EdgeNone {
			continue
		}
		if err := b.snk.SetButton(buttonMap[btn], edge == gun.EdgePressed); err != nil {
			return false, fmt.Errorf("sink button %v: %w", btn, err)
		}
		wrote = true
	}

	return wrote, nil
}

func (b *Bridge) logCapture(pose gun.Pose) {
	p := pose.Position
	if b.calibrator.Active() {
		cal := b.calibrator.Calibration()
		b.logger.Info("calibration complete",
			"x0", cal.X0, "y0", cal.Y0, "x1", cal.X1, "y1", cal.Y1, "depth", cal.Depth)
		return
	}
	b.logger.Info("corner recorded, aim at the opposite corner and pull the trigger",
		"x", p.X, "y", p.Y, "z", p.Z)
}
