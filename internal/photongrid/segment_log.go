package photongrid

import (
	"sort"
	"sync"
)

type Category uint8

const (
	Detect   Category = iota // segment reached a detector
	Absorb                   // segment entered a blocked cell
	Exit                     // segment left the grid
	Split                    // segment branched into two children
	Expire                   // step ceiling or amplitude floor reached
	Overflow                 // segment budget exhausted
)

type SegmentEvent struct {
	Name      string
	Category  Category
	SegmentID int
	Pos       Point
	Dir       Direction
	Amplitude complex128
	Steps     int
}

// SegmentLog collects terminal events of one trace, keyed by event name.
type SegmentLog struct {
	mu     sync.Mutex
	events map[string][]SegmentEvent
}

func newSegmentLog() *SegmentLog {
	return &SegmentLog{events: make(map[string][]SegmentEvent)}
}

func (l *SegmentLog) log(name string, category Category, s *BeamSegment) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events[name] = append(l.events[name], SegmentEvent{
		Name:      name,
		Category:  category,
		SegmentID: s.ID,
		Pos:       s.Pos,
		Dir:       s.Dir,
		Amplitude: s.Amplitude,
		Steps:     s.Steps,
	})
}

// Events returns the events recorded under name.
func (l *SegmentLog) Events(name string) []SegmentEvent {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]SegmentEvent(nil), l.events[name]...)
}

// Counts returns the number of events per name.
func (l *SegmentLog) Counts() map[string]int {
	out := make(map[string]int)
	if l == nil {
		return out
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, v := range l.events {
		out[k] = len(v)
	}
	return out
}

func (l *SegmentLog) stats() {
	counts := l.Counts()
	names := make([]string, 0, len(counts))
	for k := range counts {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		logger.Debug().Str("event", k).Int("count", counts[k]).Msg("segment events")
	}
}
