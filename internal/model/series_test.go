package model

import (
	"math"
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestSortByTime(t *testing.T) {
	s := Series{
		{Timestamp: day(2), Value: 3},
		{Timestamp: day(0), Value: 1},
		{Timestamp: day(1), Value: 2},
	}
	s.SortByTime()
	for i, want := range []float64{1, 2, 3} {
		if s[i].Value != want {
			t.Errorf("row %d value = %v, want %v", i, s[i].Value, want)
		}
	}
}

func TestDedupeKeepsFirst(t *testing.T) {
	s := Series{
		{Timestamp: day(0), Value: 1},
		{Timestamp: day(0), Value: 99},
		{Timestamp: day(1), Value: 2},
	}
	out := s.Dedupe()
	if len(out) != 2 {
		t.Fatalf("Dedupe() returned %d rows, want 2", len(out))
	}
	if out[0].Value != 1 {
		t.Errorf("first duplicate kept value %v, want 1", out[0].Value)
	}
}

func TestForwardFill(t *testing.T) {
	tests := []struct {
		name     string
		in       Series
		wantLen  int
		wantLast float64
	}{
		{
			name: "fills NaN from prior row",
			in: Series{
				{Timestamp: day(0), Value: 1, Volume: 10},
				{Timestamp: day(1), Value: math.NaN(), Volume: 20},
			},
			wantLen:  2,
			wantLast: 1,
		},
		{
			name: "drops leading NaN rows",
			in: Series{
				{Timestamp: day(0), Value: math.NaN(), Volume: math.NaN()},
				{Timestamp: day(1), Value: 5, Volume: 50},
			},
			wantLen:  1,
			wantLast: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.in.ForwardFill()
			if len(out) != tt.wantLen {
				t.Fatalf("ForwardFill() returned %d rows, want %d", len(out), tt.wantLen)
			}
			if got := out[len(out)-1].Value; got != tt.wantLast {
				t.Errorf("last value = %v, want %v", got, tt.wantLast)
			}
			for _, p := range out {
				if math.IsNaN(p.Value) || math.IsNaN(p.Volume) {
					t.Errorf("NaN survived forward-fill at %v", p.Timestamp)
				}
			}
		})
	}
}

func TestColumnAccessors(t *testing.T) {
	s := Series{
		{Timestamp: day(0), Value: 1, Volume: 10},
		{Timestamp: day(1), Value: 2, Volume: 20},
	}
	if got := s.Values(); got[0] != 1 || got[1] != 2 {
		t.Errorf("Values() = %v", got)
	}
	if got := s.Volumes(); got[0] != 10 || got[1] != 20 {
		t.Errorf("Volumes() = %v", got)
	}
	if got := s.Timestamps(); !got[0].Equal(day(0)) || !got[1].Equal(day(1)) {
		t.Errorf("Timestamps() = %v", got)
	}
}
