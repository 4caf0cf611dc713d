// Package spectral computes summary statistics over dBFS spectra.
package spectral

import (
	"math"
	"sort"

	"github.com/starbelt/radar-dsp/dsp/core"
)

// Stats holds summary statistics computed from a spectrum in dBFS.
type Stats struct {
	BinCount int

	PeakDB     float64
	PeakBin    int
	PeakFreqHz float64

	MinDB  float64
	MinBin int

	// MeanDB is the power-domain average of the spectrum. Bins are converted
	// to linear power, averaged, and converted back, so a single strong bin
	// dominates the way it does in a real power measurement.
	MeanDB float64

	// NoiseFloorDB is the median bin level, a robust floor estimate in the
	// presence of a few strong targets.
	NoiseFloorDB float64

	// DynamicRangeDB is PeakDB minus NoiseFloorDB.
	DynamicRangeDB float64
}

// Calculate computes statistics from a spectrum in dBFS. freqHz supplies the
// bin frequencies for PeakFreqHz and may be nil; when present it must match
// the spectrum length.
func Calculate(spectrumDB, freqHz []float64) Stats {
	n := len(spectrumDB)
	if n == 0 {
		return Stats{
			PeakDB:       math.Inf(-1),
			MinDB:        math.Inf(-1),
			MeanDB:       math.Inf(-1),
			NoiseFloorDB: math.Inf(-1),
		}
	}

	var s Stats
	s.BinCount = n
	s.PeakDB = spectrumDB[0]
	s.MinDB = spectrumDB[0]

	sumPower := 0.0
	for i, v := range spectrumDB {
		sumPower += core.DBPowerToLinear(v)
		if v > s.PeakDB {
			s.PeakDB = v
			s.PeakBin = i
		}
		if v < s.MinDB {
			s.MinDB = v
			s.MinBin = i
		}
	}
	s.MeanDB = core.LinearPowerToDB(sumPower / float64(n))
	s.NoiseFloorDB = Median(spectrumDB)
	s.DynamicRangeDB = s.PeakDB - s.NoiseFloorDB

	if len(freqHz) == n {
		s.PeakFreqHz = freqHz[s.PeakBin]
	}

	return s
}

// Median returns the median of the values. Even lengths average the two
// middle values. An empty input returns -Inf.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return math.Inf(-1)
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// CountDetections returns the number of set bins in a detection mask.
func CountDetections(mask []bool) int {
	count := 0
	for _, hit := range mask {
		if hit {
			count++
		}
	}
	return count
}

// CountAbove returns the number of bins strictly above thresholdDB.
func CountAbove(spectrumDB []float64, thresholdDB float64) int {
	count := 0
	for _, v := range spectrumDB {
		if v > thresholdDB {
			count++
		}
	}
	return count
}
