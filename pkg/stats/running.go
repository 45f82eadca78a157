// Package stats implements single-pass (online) mean and variance
// accumulation that can be merged across independently computed partitions.
//
// The update rule is Welford's method; the merge rule is the pairwise
// combination of Chan, Golub and LeVeque. Both carry only (mean, m2, n),
// never the raw observations, so merging partial results from any
// partitioning of a stream is mathematically equivalent to one sequential
// pass over the whole stream (up to floating-point rounding).
package stats

import "math"

// Running accumulates mean and sum of squared deviations over a stream of
// observations. The zero value is an empty accumulator ready for use.
type Running struct {
	mean float64
	m2   float64
	n    uint64
}

// Observe folds one observation into the accumulator.
func (r *Running) Observe(x float64) {
	r.n++
	delta := x - r.mean
	r.mean += delta / float64(r.n)
	r.m2 += delta * (x - r.mean)
}

// Merge folds another accumulator into the receiver. Merge is commutative
// and associative, so the result is independent of how the observations
// were partitioned.
func (r *Running) Merge(other Running) {
	if other.n == 0 {
		return
	}
	if r.n == 0 {
		*r = other
		return
	}
	na, nb := float64(r.n), float64(other.n)
	n := na + nb
	delta := other.mean - r.mean
	r.mean = (na*r.mean + nb*other.mean) / n
	r.m2 += other.m2 + delta*delta*na*nb/n
	r.n += other.n
}

// Count reports the number of observations folded in so far.
func (r *Running) Count() uint64 { return r.n }

// Mean reports the running mean, or 0 for an empty accumulator.
func (r *Running) Mean() float64 { return r.mean }

// SumSqDev reports the running sum of squared deviations from the mean.
func (r *Running) SumSqDev() float64 { return r.m2 }

// Variance reports the population variance (SumSqDev / Count), or 0 for an
// empty accumulator.
func (r *Running) Variance() float64 {
	if r.n == 0 {
		return 0
	}
	return r.m2 / float64(r.n)
}

// StdDev reports the population standard deviation.
func (r *Running) StdDev() float64 { return math.Sqrt(r.Variance()) }
