// Sonarium - Music Streaming Recommendation and Embedding-Space Navigation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sonarium

package embedding

import "math"

// Vectors are stored as float32 rows; all arithmetic accumulates in float64
// so long dot products do not lose precision.

// slerpEpsilon bounds sin(omega) below which spherical interpolation would
// divide by near-zero and the linear branch is used instead.
const slerpEpsilon = 1e-6

// Dot returns the inner product of a and b. The caller guarantees equal
// lengths.
func Dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// Norm returns the L2 norm of v.
func Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// CosineDistance returns 1 - cos(a, b), in [0, 2]. A zero-magnitude vector
// has undefined cosine similarity; it is treated as similarity 0, giving
// distance 1 to everything.
func CosineDistance(a, b []float32) float64 {
	na, nb := Norm(a), Norm(b)
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - Dot(a, b)/(na*nb)
}

// Centroid returns the dimension-wise arithmetic mean of the given vectors.
// The result is not renormalized; cosine queries normalize internally.
// Returns nil for an empty input.
func Centroid(vectors [][]float32) []float32 {
	if len(vectors) == 0 {
		return nil
	}

	dim := len(vectors[0])
	acc := make([]float64, dim)
	for _, v := range vectors {
		for i, x := range v {
			acc[i] += float64(x)
		}
	}

	mean := make([]float32, dim)
	n := float64(len(vectors))
	for i, sum := range acc {
		mean[i] = float32(sum / n)
	}
	return mean
}

// Arc interpolates between two embedding points along the great circle
// through them. Construction decides once whether the spherical formula is
// numerically safe; near-parallel and near-antiparallel endpoints fall back
// to straight linear interpolation.
type Arc struct {
	a, b     []float32
	omega    float64
	sinOmega float64
	linear   bool
}

// NewArc prepares interpolation from a to b. The endpoints need not be
// unit-normalized.
func NewArc(a, b []float32) Arc {
	na, nb := Norm(a), Norm(b)
	if na == 0 || nb == 0 {
		return Arc{a: a, b: b, linear: true}
	}

	// Clamp before arccos: accumulated rounding can push the ratio just
	// outside [-1, 1].
	cosOmega := Dot(a, b) / (na * nb)
	cosOmega = math.Max(-1, math.Min(1, cosOmega))

	omega := math.Acos(cosOmega)
	sinOmega := math.Sin(omega)

	return Arc{
		a:        a,
		b:        b,
		omega:    omega,
		sinOmega: sinOmega,
		linear:   sinOmega < slerpEpsilon,
	}
}

// At returns the interpolated point at parameter t in [0, 1].
// At(0) reproduces a and At(1) reproduces b up to rounding.
func (arc Arc) At(t float64) []float32 {
	out := make([]float32, len(arc.a))

	if arc.linear {
		for i := range out {
			out[i] = float32((1-t)*float64(arc.a[i]) + t*float64(arc.b[i]))
		}
		return out
	}

	wa := math.Sin((1-t)*arc.omega) / arc.sinOmega
	wb := math.Sin(t*arc.omega) / arc.sinOmega
	for i := range out {
		out[i] = float32(wa*float64(arc.a[i]) + wb*float64(arc.b[i]))
	}
	return out
}

// Linear reports whether the arc degenerated to linear interpolation.
func (arc Arc) Linear() bool {
	return arc.linear
}
