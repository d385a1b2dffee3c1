package photongrid

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadFieldFile reads a blocked/gold field file. A missing file yields an
// empty set, as the game starts without one.
func LoadFieldFile(path string, w, h int) ([]Point, []*ConfigurationError, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info().Str("file", path).Msg("no field file found")
			return nil, nil, nil
		}
		return nil, nil, err
	}
	defer f.Close()
	return ParseFields(f, path, w, h)
}

// ParseFields parses one "x,y" cell per line. Blank lines and lines starting
// with '#' are ignored. Malformed and out-of-range lines are skipped with a
// warning and reported as ConfigurationErrors. Duplicates are kept once.
func ParseFields(r io.Reader, name string, w, h int) ([]Point, []*ConfigurationError, error) {
	var (
		cells []Point
		bad   []*ConfigurationError
		seen  = make(map[Point]struct{})
	)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		p, err := parseCell(text)
		if err == nil && (p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h) {
			err = ErrOutOfRange
		}
		if err != nil {
			ce := &ConfigurationError{File: name, Line: line, Text: text, Err: err}
			logger.Warn().Str("file", name).Int("line", line).Str("text", text).Err(err).Msg("skipping field line")
			bad = append(bad, ce)
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		cells = append(cells, p)
	}
	if err := sc.Err(); err != nil {
		return cells, bad, fmt.Errorf("read %s: %w", name, err)
	}
	DebugLog("Loaded %d cells from %s (%d skipped)", len(cells), name, len(bad))
	return cells, bad, nil
}

func parseCell(text string) (Point, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 2 {
		return Point{}, ErrMalformedLine
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Point{}, ErrMalformedLine
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Point{}, ErrMalformedLine
	}
	return Point{x, y}, nil
}

// ApplyFields classifies cells on g. Blocked wins over gold for a cell listed
// in both sets. Cells that cannot be reclassified (for example a blocked cell
// under a component) are returned as errors and skipped.
func ApplyFields(g *Grid, blocked, gold []Point) []error {
	var errs []error
	isBlocked := make(map[Point]struct{}, len(blocked))
	for _, p := range blocked {
		if err := g.SetClass(p, Blocked); err != nil {
			errs = append(errs, err)
			continue
		}
		isBlocked[p] = struct{}{}
	}
	for _, p := range gold {
		if _, ok := isBlocked[p]; ok {
			continue
		}
		if g.Classify(p) == Blocked {
			continue
		}
		if err := g.SetClass(p, Gold); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
