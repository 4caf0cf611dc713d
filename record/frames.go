package record

import "fmt"

// Frame is one regrouped burst spectrum.
type Frame struct {
	FreqHz         []float64
	MagnitudeDB    []float64
	Timestamp      string
	TimeSinceStart float64

	// Truncated marks a frame that was shorter than the expected length and
	// was recovered by truncation.
	Truncated bool
}

// Frames regroups a flat point log into per-burst frames of frameLen bins.
// Bursts are delimited by their Timestamp field. A burst shorter than
// frameLen is kept and flagged Truncated; a longer one is cut down to
// frameLen and flagged as well.
func Frames(points []Point, frameLen int) ([]Frame, error) {
	if frameLen <= 0 {
		return nil, fmt.Errorf("record: frame length must be > 0: %d", frameLen)
	}
	var frames []Frame
	for start := 0; start < len(points); {
		end := start
		for end < len(points) && points[end].Timestamp == points[start].Timestamp {
			end++
		}
		burst := points[start:end]

		f := Frame{
			Timestamp:      burst[0].Timestamp,
			TimeSinceStart: burst[0].TimeSinceStart,
		}
		if len(burst) != frameLen {
			f.Truncated = true
			if len(burst) > frameLen {
				burst = burst[:frameLen]
			}
		}
		f.FreqHz = make([]float64, len(burst))
		f.MagnitudeDB = make([]float64, len(burst))
		for i, p := range burst {
			f.FreqHz[i] = p.FrequencyHz
			f.MagnitudeDB[i] = p.MagnitudeDB
		}
		frames = append(frames, f)
		start = end
	}
	return frames, nil
}

// MismatchTracker reports each distinct offending timestamp once, so a
// recurring shape problem does not flood the log.
type MismatchTracker struct {
	seen map[string]bool
}

// NewMismatchTracker returns an empty tracker.
func NewMismatchTracker() *MismatchTracker {
	return &MismatchTracker{seen: make(map[string]bool)}
}

// ShouldReport records the timestamp and reports whether it is new.
func (t *MismatchTracker) ShouldReport(timestamp string) bool {
	if t.seen[timestamp] {
		return false
	}
	t.seen[timestamp] = true
	return true
}

// Count returns the number of distinct timestamps recorded.
func (t *MismatchTracker) Count() int {
	return len(t.seen)
}
