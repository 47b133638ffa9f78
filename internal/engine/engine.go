package engine

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/zxo1/PrintPath/internal/gcode"
	"github.com/zxo1/PrintPath/internal/logging"
	"github.com/zxo1/PrintPath/internal/mode"
)

// ProcessingResult is the outcome of one run: the rewritten file, the camera
// positions for preview rendering and the non-fatal warnings collected along
// the way.
type ProcessingResult struct {
	Lines    []string
	Points   []mode.SnapshotPoint
	Metadata gcode.Metadata
	Warnings []gcode.Warning
}

// Engine orchestrates one processing run: metadata extraction, settings
// merge, mode invocation and, when the mode only reports placements,
// expansion through the firmware generator. It holds no per-run state, so
// one Engine serves any number of sequential runs.
type Engine struct {
	registry *mode.Registry
	logger   logging.Logger

	// OTEL metrics
	runs      metric.Int64Counter
	snapshots metric.Int64Counter
	warnings  metric.Int64Counter
}

// New creates an Engine backed by the given mode registry.
// Uses the global OTel meter for metrics (no-op if not configured).
func New(registry *mode.Registry, logger logging.Logger) (*Engine, error) {
	e := &Engine{
		registry: registry,
		logger:   logger,
	}

	m := meter()

	var err error
	e.runs, err = m.Int64Counter(
		"engine.runs",
		metric.WithDescription("Total processing runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating runs counter: %w", err)
	}
	e.snapshots, err = m.Int64Counter(
		"engine.snapshots",
		metric.WithDescription("Total snapshot points produced"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating snapshots counter: %w", err)
	}
	e.warnings, err = m.Int64Counter(
		"engine.warnings",
		metric.WithDescription("Total non-fatal warnings raised during processing"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating warnings counter: %w", err)
	}
	return e, nil
}

// ListModes describes every available mode.
func (e *Engine) ListModes() []mode.ModeInfo {
	return e.registry.List()
}

// RejectedScripts returns the script modes excluded during discovery.
func (e *Engine) RejectedScripts() []mode.RejectedScript {
	return e.registry.Rejected()
}

// Process runs one mode over the file. settings carries the merged global
// configuration; the file's metadata fields are layered on top before the
// mode sees them, and the mode's own schema defaults are resolved by the
// registry. The input slice is never mutated.
func (e *Engine) Process(lines []string, settings mode.Settings, modeName string) (ProcessingResult, error) {
	merged := settings.Clone()
	if merged == nil {
		merged = mode.Settings{}
	}
	bed := merged.BedDimensions()

	meta := gcode.ExtractMetadata(lines, bed)
	merged["min_x"] = meta.Min.X
	merged["max_x"] = meta.Max.X
	merged["min_y"] = meta.Min.Y
	merged["max_y"] = meta.Max.Y
	merged["min_z_print"] = meta.MinZ
	merged["max_z"] = meta.MaxZ
	merged["total_layers"] = meta.TotalLayers

	e.logger.Info("processing file",
		"mode", modeName,
		"lines", len(lines),
		"layers", meta.TotalLayers,
	)

	res, err := e.registry.Invoke(modeName, merged, lines)
	if err != nil {
		e.logger.Error("mode invocation failed", "mode", modeName, "error", err)
		return ProcessingResult{}, err
	}

	out := ProcessingResult{
		Lines:    res.Lines,
		Points:   res.Points,
		Metadata: meta,
	}
	if res.NeedsGeneration() {
		out.Lines, out.Points = e.expandPlacements(lines, res.Placements, merged)
	}
	out.Warnings = collectWarnings(lines)

	ctx := context.Background()
	e.runs.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", modeName)))
	e.snapshots.Add(ctx, int64(len(out.Points)), metric.WithAttributes(attribute.String("mode", modeName)))
	e.warnings.Add(ctx, int64(len(out.Warnings)))

	e.logger.Info("processing complete",
		"mode", modeName,
		"snapshots", len(out.Points),
		"warnings", len(out.Warnings),
	)
	return out, nil
}

// expandPlacements turns raw snapshot placements into injected blocks. The
// tracker replays the file so each block returns the head to the exact
// position it held at the placement line.
func (e *Engine) expandPlacements(lines []string, placements []mode.Placement, settings mode.Settings) ([]string, []mode.SnapshotPoint) {
	gen := mode.GeneratorFromSettings(settings)

	byLine := make(map[int][]mode.Placement, len(placements))
	for _, p := range placements {
		byLine[p.After] = append(byLine[p.After], p)
	}

	tracker := gcode.NewMotionTracker()
	out := make([]string, 0, len(lines))
	points := make([]mode.SnapshotPoint, 0, len(placements))

	for i, raw := range lines {
		pos := tracker.Advance(raw)
		out = append(out, raw)
		for _, p := range byLine[i] {
			out = append(out, gen.SnapshotBlock(pos, p.Point.X, p.Point.Y, p.Point.Z, pos.Layer)...)
			points = append(points, mode.SnapshotPoint{
				X: p.Point.X,
				Y: p.Point.Y,
				Z: gen.LiftedZ(p.Point.Z),
			})
		}
	}
	return out, points
}

// collectWarnings replays the file through a fresh tracker to gather the
// parse and positioning warnings modes do not report themselves.
func collectWarnings(lines []string) []gcode.Warning {
	tracker := gcode.NewMotionTracker()
	for _, raw := range lines {
		tracker.Advance(raw)
	}
	return tracker.Warnings()
}
