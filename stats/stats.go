// Copyright 2024 Fortio Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package stats provides a running mean/variance accumulator, used by the
// analysis package to turn a segment's historical segment-time samples
// into a normal-distribution approximation for PB-probability estimation.
// Adapted from fortio's periodic/results latency Counter: same running-sum
// math, pared down to what pb_chance needs (no histogram/percentile
// buckets, since the engine never surfaces a latency distribution).
package stats

import (
	"math"

	"fortio.org/log"
)

// Counter accumulates count/min/max/sum/sum-of-squares for a stream of
// samples (here, a segment's historical segment-time values, in seconds)
// and derives mean and standard deviation from them.
type Counter struct {
	Count        int64
	Min          float64
	Max          float64
	Sum          float64
	sumOfSquares float64
}

// Record records one data point.
func (c *Counter) Record(v float64) {
	c.RecordN(v, 1)
}

// RecordN records the same value N times.
func (c *Counter) RecordN(v float64, n int) {
	isFirst := c.Count == 0
	c.Count += int64(n)
	switch {
	case isFirst:
		c.Min = v
		c.Max = v
	case v < c.Min:
		c.Min = v
	case v > c.Max:
		c.Max = v
	}
	s := v * float64(n)
	c.Sum += s
	c.sumOfSquares += s * v
}

// Avg returns the arithmetic mean, or 0 if no samples were recorded.
func (c *Counter) Avg() float64 {
	if c.Count == 0 {
		return 0
	}
	return c.Sum / float64(c.Count)
}

// StdDev returns the population standard deviation, or 0 if fewer than one
// sample was recorded.
func (c *Counter) StdDev() float64 {
	if c.Count == 0 {
		return 0
	}
	fC := float64(c.Count)
	sigma := (c.sumOfSquares - c.Sum*c.Sum/fC) / fC
	if sigma < 0 {
		// Guards against a tiny negative value from floating point error
		// when all samples are equal.
		sigma = 0
	}
	return math.Sqrt(sigma)
}

// Log outputs the accumulated stats to the logger.
func (c *Counter) Log(msg string) {
	log.Debugf("%s : count %d avg %.8g +/- %.4g min %g max %g sum %.9g",
		msg, c.Count, c.Avg(), c.StdDev(), c.Min, c.Max, c.Sum)
}

// Reset clears the counter back to its original no-data state.
func (c *Counter) Reset() {
	var empty Counter
	*c = empty
}

// NormalCDF returns the probability that a normal-distributed variable with
// this counter's mean and standard deviation is less than or equal to x. A
// zero-variance counter (one sample, or all samples equal) degenerates to a
// step function at the mean.
func (c *Counter) NormalCDF(x float64) float64 {
	return CDF(c.Avg(), c.StdDev(), x)
}

// CDF returns the standard normal CDF at x for a distribution with the given
// mean and standard deviation, the building block pb_chance uses once it has
// summed per-segment means and variances into one aggregate distribution (a
// Counter only ever holds one segment's own samples, not a combined one).
func CDF(mean, stdDev, x float64) float64 {
	if stdDev == 0 {
		if x >= mean {
			return 1
		}
		return 0
	}
	return 0.5 * (1 + math.Erf((x-mean)/(stdDev*math.Sqrt2)))
}
