package photongrid

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

type DetectorSummary struct {
	ID        string `json:"id" msgpack:"id"`
	X         int    `json:"x" msgpack:"x"`
	Y         int    `json:"y" msgpack:"y"`
	Re        Real   `json:"re" msgpack:"re"`
	Im        Real   `json:"im" msgpack:"im"`
	Intensity Real   `json:"intensity" msgpack:"intensity"`
	Hits      int    `json:"hits" msgpack:"hits"`
}

type PortSummary struct {
	X        int    `json:"x" msgpack:"x"`
	Y        int    `json:"y" msgpack:"y"`
	Dir      string `json:"dir" msgpack:"dir"`
	Boundary bool   `json:"boundary" msgpack:"boundary"`
	Element  bool   `json:"element,omitempty" msgpack:"element,omitempty"`
	Power    Real   `json:"power" msgpack:"power"`
	Events   int    `json:"events" msgpack:"events"`
}

type GoldSummary struct {
	X        int  `json:"x" msgpack:"x"`
	Y        int  `json:"y" msgpack:"y"`
	Exposure Real `json:"exposure" msgpack:"exposure"`
}

// Report is the serializable summary of one run.
type Report struct {
	ID        string            `json:"id" msgpack:"id"`
	Layout    string            `json:"layout" msgpack:"layout"`
	CreatedAt time.Time         `json:"createdAt" msgpack:"created_at"`
	Width     int               `json:"width" msgpack:"width"`
	Height    int               `json:"height" msgpack:"height"`
	Detectors []DetectorSummary `json:"detectors" msgpack:"detectors"`
	Ports     []PortSummary     `json:"ports,omitempty" msgpack:"ports,omitempty"`
	Gold      []GoldSummary     `json:"gold,omitempty" msgpack:"gold,omitempty"`
	Energy    EnergyReport      `json:"energy" msgpack:"energy"`
	Stats     TraceStats        `json:"stats" msgpack:"stats"`
	Events    map[string]int    `json:"events,omitempty" msgpack:"events,omitempty"`
	Sweep     []SweepPoint      `json:"sweep,omitempty" msgpack:"sweep,omitempty"`
}

// NewReport summarizes res under a fresh run ID.
func NewReport(layout string, res *TraceResult) *Report {
	rep := &Report{
		ID:        uuid.New().String(),
		Layout:    layout,
		CreatedAt: time.Now().UTC(),
		Energy:    res.Energy(),
		Stats:     res.Stats,
	}
	if res.Raw != nil {
		rep.Width, rep.Height = res.Raw.W, res.Raw.H
		rep.Events = res.Raw.Log.Counts()
	}
	for _, d := range res.Detectors {
		rep.Detectors = append(rep.Detectors, DetectorSummary{
			ID:        d.ID,
			X:         d.Pos.X,
			Y:         d.Pos.Y,
			Re:        real(d.Amplitude),
			Im:        imag(d.Amplitude),
			Intensity: d.Intensity,
			Hits:      len(d.Hits),
		})
	}
	for _, p := range res.Ports {
		rep.Ports = append(rep.Ports, PortSummary{
			X:        p.Port.Pos.X,
			Y:        p.Port.Pos.Y,
			Dir:      p.Port.Dir.String(),
			Boundary: p.Port.Boundary,
			Element:  p.Port.Element,
			Power:    p.Power,
			Events:   p.Events,
		})
	}
	for p, e := range res.Gold {
		rep.Gold = append(rep.Gold, GoldSummary{X: p.X, Y: p.Y, Exposure: e})
	}
	sort.Slice(rep.Gold, func(i, j int) bool {
		a, b := rep.Gold[i], rep.Gold[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return rep
}

// WriteReport writes rep as "json" (indented) or "msgpack".
func WriteReport(rep *Report, path, format string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(format) {
	case "", "json":
		data, err = json.MarshalIndent(rep, "", "  ")
	case "msgpack", "mp":
		data, err = msgpack.Marshal(rep)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadReport loads a report written by WriteReport.
func ReadReport(path, format string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rep Report
	switch strings.ToLower(format) {
	case "", "json":
		err = json.Unmarshal(data, &rep)
	case "msgpack", "mp":
		err = msgpack.Unmarshal(data, &rep)
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &rep, nil
}
