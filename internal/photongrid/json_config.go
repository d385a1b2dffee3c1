package photongrid

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type SourceCfg struct {
	X         int    `json:"x" hcl:"x"`
	Y         int    `json:"y" hcl:"y"`
	Direction string `json:"direction" hcl:"direction"`
	Disabled  bool   `json:"disabled,omitempty" hcl:"disabled,optional"`
}

type ComponentCfg struct {
	Kind         string `json:"kind" hcl:"kind,label"`
	ID           string `json:"id,omitempty" hcl:"id,optional"`
	X            int    `json:"x" hcl:"x"`
	Y            int    `json:"y" hcl:"y"`
	Orientation  string `json:"orientation,omitempty" hcl:"orientation,optional"`
	Reflectivity Real   `json:"reflectivity,omitempty" hcl:"reflectivity,optional"`
	Loss         Real   `json:"loss,omitempty" hcl:"loss,optional"`
}

// Config describes one layout: the board, its field files, the source and the
// placed components, plus trace bounds and output paths.
type Config struct {
	Width        int            `json:"width" hcl:"width"`
	Height       int            `json:"height" hcl:"height"`
	MaxSteps     int            `json:"maxSteps,omitempty" hcl:"max_steps,optional"`
	Epsilon      Real           `json:"epsilon,omitempty" hcl:"epsilon,optional"`
	MaxSegments  int            `json:"maxSegments,omitempty" hcl:"max_segments,optional"`
	PhasePerStep Real           `json:"phasePerStep,omitempty" hcl:"phase_per_step,optional"`
	BlockedFile  string         `json:"blockedFile,omitempty" hcl:"blocked_file,optional"`
	GoldFile     string         `json:"goldFile,omitempty" hcl:"gold_file,optional"`
	Blocked      [][]int        `json:"blocked,omitempty" hcl:"blocked,optional"`
	Gold         [][]int        `json:"gold,omitempty" hcl:"gold,optional"`
	Source       SourceCfg      `json:"source" hcl:"source,block"`
	Components   []ComponentCfg `json:"components,omitempty" hcl:"component,block"`
	PNGOut       string         `json:"pngOut,omitempty" hcl:"png_out,optional"`
	GIFOut       string         `json:"gifOut,omitempty" hcl:"gif_out,optional"`
	GIFDelay     int            `json:"gifDelay,omitempty" hcl:"gif_delay,optional"`
	CellPx       int            `json:"cellPx,omitempty" hcl:"cell_px,optional"`
	Gamma        Real           `json:"gamma,omitempty" hcl:"gamma,optional"`
	ReportOut    string         `json:"reportOut,omitempty" hcl:"report_out,optional"`
	SweepSteps   int            `json:"sweepSteps,omitempty" hcl:"sweep_steps,optional"`
}

// Layout is a built Config: a grid ready to trace.
type Layout struct {
	Grid        *Grid
	Source      SourceDef
	Options     TraceOptions
	Config      *Config
	FieldErrors []*ConfigurationError
}

// Options returns the trace bounds configured for the layout.
func (c *Config) Options() TraceOptions {
	return TraceOptions{
		MaxSteps:     c.MaxSteps,
		Epsilon:      c.Epsilon,
		MaxSegments:  c.MaxSegments,
		PhasePerStep: c.PhasePerStep,
	}
}

func (sc SourceCfg) Build() (SourceDef, error) {
	dir, err := ParseDirection(sc.Direction)
	if err != nil {
		return SourceDef{}, err
	}
	src, err := NewSource(Point{sc.X, sc.Y}, dir)
	if err != nil {
		return SourceDef{}, err
	}
	src.Enabled = !sc.Disabled
	return src, nil
}

func (cc ComponentCfg) Build() (Component, error) {
	kind, err := ParseKind(cc.Kind)
	if err != nil {
		return Component{}, err
	}
	o, err := ParseOrientation(cc.Orientation)
	if err != nil {
		return Component{}, err
	}
	c := Component{ID: cc.ID, Kind: kind, Pos: Point{cc.X, cc.Y}, Orientation: o, Reflectivity: cc.Reflectivity, Loss: cc.Loss}
	if kind == PartialMirror && cc.Reflectivity == 0 {
		c.Reflectivity = 0.5
	}
	return c, nil
}

func cellList(name string, xs [][]int) ([]Point, error) {
	out := make([]Point, 0, len(xs))
	for i, xy := range xs {
		if len(xy) != 2 {
			return nil, fmt.Errorf("%s[%d]: want [x, y], got %v", name, i, xy)
		}
		out = append(out, Point{xy[0], xy[1]})
	}
	return out, nil
}

// Build creates the grid: fields first (blocked over gold), then the source
// cell, then components in file order. Field file paths are relative to baseDir.
func (c *Config) Build(baseDir string) (*Layout, error) {
	g, err := NewGrid(c.Width, c.Height)
	if err != nil {
		return nil, err
	}
	l := &Layout{Grid: g, Options: c.Options(), Config: c}

	blocked, err := cellList("blocked", c.Blocked)
	if err != nil {
		return nil, err
	}
	gold, err := cellList("gold", c.Gold)
	if err != nil {
		return nil, err
	}
	for _, f := range []struct {
		path string
		dst  *[]Point
	}{{c.BlockedFile, &blocked}, {c.GoldFile, &gold}} {
		if f.path == "" {
			continue
		}
		path := f.path
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		cells, bad, err := LoadFieldFile(path, c.Width, c.Height)
		if err != nil {
			return nil, err
		}
		*f.dst = append(*f.dst, cells...)
		l.FieldErrors = append(l.FieldErrors, bad...)
	}
	for _, err := range ApplyFields(g, blocked, gold) {
		logger.Warn().Err(err).Msg("field not applied")
	}

	if l.Source, err = c.Source.Build(); err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	if g.InBounds(l.Source.Pos) {
		if err := g.PlaceComponent(Component{Kind: Source, Pos: l.Source.Pos}); err != nil {
			return nil, fmt.Errorf("source: %w", err)
		}
	}
	for i, cc := range c.Components {
		comp, err := cc.Build()
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		if err := g.PlaceComponent(comp); err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
	}
	DebugLog("Built layout %dx%d with %d components, source %+v", c.Width, c.Height, g.Len(), l.Source)
	return l, nil
}

func (c *Config) applyDefaults() error {
	if c.Width <= 0 {
		c.Width = GridW
	}
	if c.Height <= 0 {
		c.Height = GridH
	}
	if c.PNGOut == "" {
		c.PNGOut = PNGOut
	}
	if c.GIFOut == "" {
		c.GIFOut = GIFOut
	}
	if c.GIFDelay <= 0 {
		c.GIFDelay = GIFDelay
	}
	if c.CellPx <= 0 {
		c.CellPx = CellPx
	}
	if c.Gamma <= 0 {
		c.Gamma = Gamma
	}
	if c.ReportOut == "" {
		c.ReportOut = ReportOut
	}
	if c.SweepSteps <= 0 {
		c.SweepSteps = SweepSteps
	}
	if c.Source.Direction == "" {
		return fmt.Errorf("config has no source direction")
	}
	if !isFinite(c.PhasePerStep) || !isFinite(c.Epsilon) {
		return fmt.Errorf("phasePerStep and epsilon must be finite")
	}
	return nil
}

// resolveOutputs makes output paths set in a layout file relative to its
// directory, like field files. Unset outputs fall back to the working
// directory defaults.
func (c *Config) resolveOutputs(baseDir string) {
	for _, p := range []*string{&c.PNGOut, &c.GIFOut, &c.ReportOut} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(baseDir, *p)
		}
	}
}

func loadJSONConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &cfg, nil
}

func loadConfig(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		cfg, err = loadHCLConfig(path)
	} else {
		cfg, err = loadJSONConfig(path)
	}
	if err != nil {
		return nil, err
	}
	cfg.resolveOutputs(filepath.Dir(path))
	if err := cfg.applyDefaults(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	DebugLog("Loaded config from %s: size=(%d, %d), components=%d, phase/step=%f", path, cfg.Width, cfg.Height, len(cfg.Components), cfg.PhasePerStep)
	return cfg, nil
}

// LoadLayout reads a JSON or HCL layout file and builds it.
func LoadLayout(path string) (*Layout, error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	return cfg.Build(filepath.Dir(path))
}
