package report

import "lagscope-backend/internal/analysis"

// SampleCount returns how many aligned samples the metrics carry: the series
// are index-aligned, so the shortest of timestamps/memory/cpu bounds them.
func SampleCount(m analysis.PerformanceMetrics) int {
	n := len(m.Timestamps)
	if len(m.MemoryUsage) < n {
		n = len(m.MemoryUsage)
	}
	if len(m.CPUUsage) < n {
		n = len(m.CPUUsage)
	}
	return n
}

// TrailingWindow returns a copy of the metrics restricted to the last n
// aligned samples. n <= 0 or n beyond the sample count keeps all samples.
// Scalar fields and lag spikes pass through unchanged; the input is never
// mutated.
func TrailingWindow(m analysis.PerformanceMetrics, n int) analysis.PerformanceMetrics {
	aligned := SampleCount(m)
	if n <= 0 || n > aligned {
		n = aligned
	}

	out := m
	out.Timestamps = tailString(m.Timestamps, n)
	out.MemoryUsage = tailFloat(m.MemoryUsage, n)
	out.CPUUsage = tailFloat(m.CPUUsage, n)
	out.FPS = tailFloat(m.FPS, n)
	out.LagSpikes = append([]analysis.LagSpike(nil), m.LagSpikes...)
	return out
}

func tailFloat(s []float64, n int) []float64 {
	if n > len(s) {
		n = len(s)
	}
	out := make([]float64, n)
	copy(out, s[len(s)-n:])
	return out
}

func tailString(s []string, n int) []string {
	if n > len(s) {
		n = len(s)
	}
	out := make([]string, n)
	copy(out, s[len(s)-n:])
	return out
}
