// Package rangedoppler forms two-dimensional range-Doppler maps from
// coherent chirp matrices.
//
// The pipeline optionally cancels static clutter with a 2- or 3-pulse MTI
// canceller, applies a 2-D Fourier transform over the (chirp, range) axes,
// centers both frequency axes, and clamps the log-magnitude output to a
// display range. Axis metadata maps bins to meters and m/s through the
// radar package.
package rangedoppler
