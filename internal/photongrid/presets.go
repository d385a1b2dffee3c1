package photongrid

import "fmt"

// Preset is a named ready-made layout.
type Preset struct {
	Name   string
	Grid   *Grid
	Source SourceDef
}

type placement struct {
	id   string
	kind Kind
	x, y int
	o    Orientation
}

func buildPreset(name string, w, h int, src SourceDef, parts []placement) (*Preset, error) {
	g, err := NewGrid(w, h)
	if err != nil {
		return nil, err
	}
	if err := g.PlaceComponent(Component{ID: "source", Kind: Source, Pos: src.Pos}); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	for _, p := range parts {
		if err := g.PlaceComponent(Component{ID: p.id, Kind: p.kind, Pos: Point{p.x, p.y}, Orientation: p.o}); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return &Preset{Name: name, Grid: g, Source: src}, nil
}

// MachZehnder is a balanced interferometer on a 10x8 grid. With no
// propagation phase all power reaches D2 (south) and D1 (east) stays dark.
//
//	. . M1- - - M2. .
//	. . |       | . .
//	S - BS1 - - BS2- D1
//	            |
//	            D2
func MachZehnder() (*Preset, error) {
	return buildPreset("mach_zehnder", 10, 8, SourceDef{Pos: Point{0, 4}, Dir: East, Enabled: true}, []placement{
		{"BS1", BeamSplitter, 2, 4, Slash},
		{"M1", Mirror, 2, 1, Slash},
		{"M2", Mirror, 6, 1, Backslash},
		{"BS2", BeamSplitter, 6, 4, Backslash},
		{"D1", Detector, 8, 4, NoOrientation},
		{"D2", Detector, 6, 6, NoOrientation},
	})
}

// AsymmetricMachZehnder lengthens the upper arm by 12 cells with a detour,
// so a nonzero PhasePerStep shifts power between D1 and D2.
func AsymmetricMachZehnder() (*Preset, error) {
	return buildPreset("asymmetric_mach_zehnder", 12, 8, SourceDef{Pos: Point{0, 4}, Dir: East, Enabled: true}, []placement{
		{"BS1", BeamSplitter, 2, 4, Slash},
		{"M1", Mirror, 2, 1, Slash},
		{"M2", Mirror, 10, 1, Backslash},
		{"M3", Mirror, 10, 3, Slash},
		{"M4", Mirror, 7, 3, Slash},
		{"BS2", BeamSplitter, 7, 4, Backslash},
		{"D1", Detector, 9, 4, NoOrientation},
		{"D2", Detector, 7, 6, NoOrientation},
	})
}

// Presets lists the built-in layouts by name.
var Presets = map[string]func() (*Preset, error){
	"mach_zehnder":            MachZehnder,
	"asymmetric_mach_zehnder": AsymmetricMachZehnder,
}
