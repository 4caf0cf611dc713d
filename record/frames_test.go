package record

import "testing"

func makePoints(timestamp string, start float64, bins int) []Point {
	points := make([]Point, bins)
	for i := range points {
		points[i] = Point{
			Timestamp:      timestamp,
			TimeSinceStart: start,
			FrequencyHz:    float64(i) * 1e3,
			MagnitudeDB:    -80 + float64(i),
		}
	}
	return points
}

func TestFramesRegroup(t *testing.T) {
	points := append(makePoints("t0", 0.0, 4), makePoints("t1", 0.5, 4)...)

	frames, err := Frames(points, 4)
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("frames = %d, want 2", len(frames))
	}
	for i, f := range frames {
		if len(f.FreqHz) != 4 || len(f.MagnitudeDB) != 4 {
			t.Fatalf("frame %d has %d/%d bins", i, len(f.FreqHz), len(f.MagnitudeDB))
		}
		if f.Truncated {
			t.Fatalf("frame %d flagged truncated", i)
		}
	}
	if frames[0].Timestamp != "t0" || frames[1].Timestamp != "t1" {
		t.Fatalf("timestamps %q, %q", frames[0].Timestamp, frames[1].Timestamp)
	}
	if frames[1].TimeSinceStart != 0.5 {
		t.Fatalf("TimeSinceStart = %v, want 0.5", frames[1].TimeSinceStart)
	}
	if frames[0].MagnitudeDB[3] != -77 {
		t.Fatalf("magnitude = %v, want -77", frames[0].MagnitudeDB[3])
	}
}

func TestFramesShortBurstTruncated(t *testing.T) {
	points := append(makePoints("t0", 0.0, 4), makePoints("t1", 0.5, 2)...)

	frames, err := Frames(points, 4)
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("frames = %d, want 2", len(frames))
	}
	if frames[0].Truncated {
		t.Fatalf("full frame flagged truncated")
	}
	if !frames[1].Truncated || len(frames[1].FreqHz) != 2 {
		t.Fatalf("short frame not recovered: truncated=%v bins=%d", frames[1].Truncated, len(frames[1].FreqHz))
	}
}

func TestFramesLongBurstCut(t *testing.T) {
	frames, err := Frames(makePoints("t0", 0.0, 6), 4)
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(frames))
	}
	if !frames[0].Truncated || len(frames[0].FreqHz) != 4 {
		t.Fatalf("long frame not cut: truncated=%v bins=%d", frames[0].Truncated, len(frames[0].FreqHz))
	}
}

func TestFramesValidation(t *testing.T) {
	if _, err := Frames(nil, 0); err == nil {
		t.Fatalf("expected error for zero frame length")
	}
	frames, err := Frames(nil, 4)
	if err != nil || frames != nil {
		t.Fatalf("empty input: %v, %v", frames, err)
	}
}

func TestMismatchTracker(t *testing.T) {
	tr := NewMismatchTracker()
	if !tr.ShouldReport("t0") {
		t.Fatalf("first sighting suppressed")
	}
	if tr.ShouldReport("t0") {
		t.Fatalf("repeat sighting reported")
	}
	if !tr.ShouldReport("t1") {
		t.Fatalf("new timestamp suppressed")
	}
	if tr.Count() != 2 {
		t.Fatalf("Count = %d, want 2", tr.Count())
	}
}
