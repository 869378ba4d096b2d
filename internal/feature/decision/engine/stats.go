package engine

import "math"

// mean returns the arithmetic mean of xs, or 0 for an empty slice.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// tail returns the last n elements of xs, or nil when xs is shorter than n.
func tail(xs []float64, n int) []float64 {
	if len(xs) < n {
		return nil
	}
	return xs[len(xs)-n:]
}

// windowMean is the mean of the last n points, falling back to the overall mean
// when the history is shorter than the window.
func windowMean(xs []float64, n int) float64 {
	if w := tail(xs, n); w != nil {
		return mean(w)
	}
	return mean(xs)
}

// relChange returns (to-from)/from. ok is false when from is zero so callers
// skip the rule instead of dividing by zero.
func relChange(from, to float64) (float64, bool) {
	if from == 0 {
		return 0, false
	}
	return (to - from) / from, true
}

func minMax(xs []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range xs {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

func valueOr(p *float64, def float64) float64 {
	if p == nil || math.IsNaN(*p) {
		return def
	}
	return *p
}
