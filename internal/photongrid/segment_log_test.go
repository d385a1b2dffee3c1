package photongrid

import "testing"

func TestSegmentLog(t *testing.T) {
	l := newSegmentLog()
	l.log("detected", Detect, &BeamSegment{ID: 1})
	l.log("detected", Detect, &BeamSegment{ID: 2})
	l.log("exited_grid", Exit, &BeamSegment{ID: 3})
	if len(l.Events("detected")) != 2 || len(l.Events("exited_grid")) != 1 {
		t.Fatalf("unexpected log sizes: %+v", l.Counts())
	}
	if c := l.Counts(); c["detected"] != 2 || c["exited_grid"] != 1 {
		t.Fatalf("unexpected counts: %+v", c)
	}
}

func TestNilSegmentLog(t *testing.T) {
	var l *SegmentLog
	l.log("detected", Detect, &BeamSegment{})
	if l.Events("detected") != nil || len(l.Counts()) != 0 {
		t.Fatal("nil log should record nothing")
	}
}

func TestSegmentQueueFIFO(t *testing.T) {
	var q segmentQueue
	for i := 0; i < 3000; i++ {
		q.push(&BeamSegment{ID: i})
		if i%2 == 1 {
			s, ok := q.pop()
			if !ok || s.ID != i/2 {
				t.Fatalf("pop %d: got %+v, %v", i/2, s, ok)
			}
		}
	}
	next := 1500
	for q.len() > 0 {
		s, _ := q.pop()
		if s.ID != next {
			t.Fatalf("got %d, want %d", s.ID, next)
		}
		next++
	}
	if _, ok := q.pop(); ok {
		t.Fatal("empty queue popped")
	}
}
