// Package record reads and writes the CSV capture format used for spectrum
// and raw sample logs.
//
// Values round trip bit for bit: floats are written with strconv's shortest
// 'g' representation, which ParseFloat recovers exactly.
package record

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Point is one spectrum bin of a logged burst.
type Point struct {
	Timestamp      string
	TimeSinceStart float64
	FrequencyHz    float64
	MagnitudeDB    float64
}

// RawSample is one time-domain sample of a logged burst.
type RawSample struct {
	Timestamp      string
	TimeSinceStart float64
	Index          int
	Value          float64
}

var (
	pointHeader = []string{"Timestamp", "Time Since Start (s)", "Frequency (Hz)", "Magnitude (dBFS)"}
	rawHeader   = []string{"Timestamp", "Time Since Start (s)", "Index", "Value"}
)

// ErrHeaderMismatch reports a CSV stream whose header row does not match the
// expected capture format.
var ErrHeaderMismatch = errors.New("record: unexpected CSV header")

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WritePoints writes spectrum points with the capture header.
func WritePoints(w io.Writer, points []Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(pointHeader); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			p.Timestamp,
			formatFloat(p.TimeSinceStart),
			formatFloat(p.FrequencyHz),
			formatFloat(p.MagnitudeDB),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadPoints reads spectrum points written by WritePoints.
func ReadPoints(r io.Reader) ([]Point, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(pointHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, err
	}
	if !headerEqual(header, pointHeader) {
		return nil, fmt.Errorf("%w: %q", ErrHeaderMismatch, header)
	}

	var points []Point
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return points, nil
		}
		if err != nil {
			return nil, err
		}
		p := Point{Timestamp: row[0]}
		if p.TimeSinceStart, err = strconv.ParseFloat(row[1], 64); err != nil {
			return nil, fmt.Errorf("record: time since start: %w", err)
		}
		if p.FrequencyHz, err = strconv.ParseFloat(row[2], 64); err != nil {
			return nil, fmt.Errorf("record: frequency: %w", err)
		}
		if p.MagnitudeDB, err = strconv.ParseFloat(row[3], 64); err != nil {
			return nil, fmt.Errorf("record: magnitude: %w", err)
		}
		points = append(points, p)
	}
}

// WriteRaw writes raw samples with the capture header.
func WriteRaw(w io.Writer, samples []RawSample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rawHeader); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			s.Timestamp,
			formatFloat(s.TimeSinceStart),
			strconv.Itoa(s.Index),
			formatFloat(s.Value),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadRaw reads raw samples written by WriteRaw.
func ReadRaw(r io.Reader) ([]RawSample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(rawHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, err
	}
	if !headerEqual(header, rawHeader) {
		return nil, fmt.Errorf("%w: %q", ErrHeaderMismatch, header)
	}

	var samples []RawSample
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return samples, nil
		}
		if err != nil {
			return nil, err
		}
		s := RawSample{Timestamp: row[0]}
		if s.TimeSinceStart, err = strconv.ParseFloat(row[1], 64); err != nil {
			return nil, fmt.Errorf("record: time since start: %w", err)
		}
		if s.Index, err = strconv.Atoi(row[2]); err != nil {
			return nil, fmt.Errorf("record: index: %w", err)
		}
		if s.Value, err = strconv.ParseFloat(row[3], 64); err != nil {
			return nil, fmt.Errorf("record: value: %w", err)
		}
		samples = append(samples, s)
	}
}

func headerEqual(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
