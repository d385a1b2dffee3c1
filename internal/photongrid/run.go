package photongrid

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const presetPrefix = "preset:"

// presetLayout wraps a built-in preset in a Layout with default outputs.
func presetLayout(name string) (*Layout, error) {
	mk, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q", name)
	}
	p, err := mk()
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		Width:  p.Grid.W,
		Height: p.Grid.H,
		Source: SourceCfg{X: p.Source.Pos.X, Y: p.Source.Pos.Y, Direction: p.Source.Dir.String()},
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &Layout{Grid: p.Grid, Source: p.Source, Options: cfg.Options(), Config: cfg}, nil
}

// Run loads a layout file (or "preset:<name>"), traces it and writes the
// report plus whichever outputs the package flags select.
func Run(cfgPath string) error {
	var (
		layout *Layout
		err    error
		name   string
	)
	if strings.HasPrefix(cfgPath, presetPrefix) {
		name = strings.TrimPrefix(cfgPath, presetPrefix)
		layout, err = presetLayout(name)
	} else {
		name = strings.TrimSuffix(filepath.Base(cfgPath), filepath.Ext(cfgPath))
		layout, err = LoadLayout(cfgPath)
	}
	if err != nil {
		return err
	}
	for _, fe := range layout.FieldErrors {
		DebugLog("Field file problem: %v", fe)
	}
	cfg := layout.Config

	opts := layout.Options
	opts.KeepSegments = PNG || GIF || View
	start := time.Now()
	res := Trace(layout.Grid, layout.Source, opts)
	DebugLog("Segments: %d, steps: %d, time: %s", res.Stats.Created, res.Stats.Steps, time.Since(start))

	for _, d := range res.Detectors {
		logger.Info().
			Str("detector", d.ID).
			Str("pos", d.Pos.String()).
			Float64("intensity", d.Intensity).
			Int("hits", len(d.Hits)).
			Msg("detector reading")
	}
	e := res.Energy()
	logger.Info().
		Float64("detected", e.Detected).
		Float64("lost", e.Lost).
		Float64("expired", e.Expired).
		Msg("energy")
	if err := res.CheckConservation(ConservationTol); err != nil {
		logger.Warn().Err(err).Msg("power does not balance")
	}

	rep := NewReport(name, res)
	if Sweep {
		n := SweepN
		if n <= 0 {
			n = cfg.SweepSteps
		}
		rep.Sweep = SweepPhase(layout.Grid, layout.Source, layout.Options, PhaseSteps(n))
		DebugLog("Phase sweep: %d points", len(rep.Sweep))
	}
	out := cfg.ReportOut
	if strings.EqualFold(ReportFormat, "msgpack") && strings.HasSuffix(out, ".json") {
		out = strings.TrimSuffix(out, ".json") + ".msgpack"
	}
	if err := WriteReport(rep, out, ReportFormat); err != nil {
		return err
	}
	logger.Info().Str("id", rep.ID).Str("path", out).Msg("report written")

	if PNG {
		if err := SavePNG(layout.Grid, res, cfg.PNGOut, cfg.CellPx, cfg.Gamma); err != nil {
			return err
		}
		DebugLog("Saved PNG: %s", cfg.PNGOut)
	}
	if GIF {
		if err := SaveGIF(layout.Grid, res, cfg.GIFOut, cfg.CellPx, cfg.GIFDelay, cfg.Gamma); err != nil {
			return err
		}
		DebugLog("Saved animated GIF: %s", cfg.GIFOut)
	}
	if View {
		return ShowView(layout.Grid, res)
	}
	return nil
}
