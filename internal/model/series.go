package model

import (
	"math"
	"sort"
	"time"
)

// Point is a single daily observation: closing price and traded volume in USD.
type Point struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
	Volume    float64   `json:"volume"`
}

// Series is a time-ordered set of points.
type Series []Point

// SortByTime sorts the series ascending by timestamp. The sort is stable so
// duplicate timestamps keep their upstream order until Dedupe drops them.
func (s Series) SortByTime() {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Timestamp.Before(s[j].Timestamp)
	})
}

// Dedupe returns the series with duplicate timestamps removed, keeping the
// first occurrence. Assumes the series is already sorted.
func (s Series) Dedupe() Series {
	if len(s) < 2 {
		return s
	}
	out := s[:1]
	for _, p := range s[1:] {
		if p.Timestamp.Equal(out[len(out)-1].Timestamp) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ForwardFill replaces NaN values with the most recent preceding observation.
// Rows before the first complete observation are dropped.
func (s Series) ForwardFill() Series {
	out := make(Series, 0, len(s))
	for _, p := range s {
		if math.IsNaN(p.Value) || math.IsNaN(p.Volume) {
			if len(out) == 0 {
				continue
			}
			prev := out[len(out)-1]
			if math.IsNaN(p.Value) {
				p.Value = prev.Value
			}
			if math.IsNaN(p.Volume) {
				p.Volume = prev.Volume
			}
		}
		out = append(out, p)
	}
	return out
}

// Timestamps returns the timestamp column.
func (s Series) Timestamps() []time.Time {
	out := make([]time.Time, len(s))
	for i, p := range s {
		out[i] = p.Timestamp
	}
	return out
}

// Values returns the price column.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Volumes returns the volume column.
func (s Series) Volumes() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Volume
	}
	return out
}
