package anomaly

import (
	"math"
	"sync"
	"testing"
	"time"

	"cryptosentinel/internal/model"
)

func generateSeries(n int, generator func(int) model.Point) model.Series {
	series := make(model.Series, n)
	for i := 0; i < n; i++ {
		series[i] = generator(i)
	}
	return series
}

func flatPoint(i int) model.Point {
	return model.Point{
		Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
		Value:     100 + float64(i%3),
		Volume:    1e9 + float64(i%5)*1e6,
	}
}

func TestDetectEmptySeries(t *testing.T) {
	d := NewDetector(DefaultConfig())

	res, err := d.Detect(nil)
	if err != nil {
		t.Fatalf("Detect(nil) error = %v, want nil", err)
	}
	if len(res.Series) != 0 || len(res.Anomalies) != 0 {
		t.Errorf("Detect(nil) = %d series rows, %d anomalies, want 0 and 0", len(res.Series), len(res.Anomalies))
	}
}

func TestDetectBelowMinSamples(t *testing.T) {
	d := NewDetector(DefaultConfig())
	series := generateSeries(10, flatPoint)

	res, err := d.Detect(series)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(res.Series) != 10 {
		t.Errorf("cleaned series has %d rows, want 10", len(res.Series))
	}
	if len(res.Anomalies) != 0 {
		t.Errorf("short series produced %d anomalies, want 0", len(res.Anomalies))
	}
}

func TestDetectPreservesRowCount(t *testing.T) {
	d := NewDetector(DefaultConfig())
	series := generateSeries(60, flatPoint)

	res, err := d.Detect(series)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(res.Series) != len(series) {
		t.Errorf("cleaned series has %d rows, want %d", len(res.Series), len(series))
	}
	if len(res.Flags) != len(res.Series) {
		t.Errorf("flags has %d entries, want %d", len(res.Flags), len(res.Series))
	}
}

func TestDetectAnomaliesAreSubset(t *testing.T) {
	d := NewDetector(DefaultConfig())
	series := generateSeries(60, flatPoint)

	res, err := d.Detect(series)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	byTime := make(map[time.Time]bool, len(res.Series))
	for _, p := range res.Series {
		byTime[p.Timestamp] = true
	}
	for _, a := range res.Anomalies {
		if !byTime[a.Timestamp] {
			t.Errorf("anomaly at %v is not part of the cleaned series", a.Timestamp)
		}
	}
}

func TestDetectDeterministic(t *testing.T) {
	d := NewDetector(DefaultConfig())
	series := generateSeries(80, func(i int) model.Point {
		p := flatPoint(i)
		p.Value += math.Sin(float64(i)) * 5
		p.Volume += math.Cos(float64(i)) * 1e7
		return p
	})

	first, err := d.Detect(series)
	if err != nil {
		t.Fatalf("first Detect() error = %v", err)
	}
	second, err := d.Detect(series)
	if err != nil {
		t.Fatalf("second Detect() error = %v", err)
	}

	if len(first.Flags) != len(second.Flags) {
		t.Fatalf("flag counts differ: %d vs %d", len(first.Flags), len(second.Flags))
	}
	for i := range first.Flags {
		if first.Flags[i] != second.Flags[i] {
			t.Errorf("flag %d differs between runs: %v vs %v", i, first.Flags[i], second.Flags[i])
		}
	}
}

// Overlapping detections must not race each other or disturb the fixed-seed
// labels; every concurrent run has to agree with a serial baseline.
func TestDetectConcurrent(t *testing.T) {
	d := NewDetector(DefaultConfig())
	series := generateSeries(80, func(i int) model.Point {
		p := flatPoint(i)
		p.Value += math.Sin(float64(i)) * 5
		p.Volume += math.Cos(float64(i)) * 1e7
		return p
	})

	baseline, err := d.Detect(series)
	if err != nil {
		t.Fatalf("baseline Detect() error = %v", err)
	}

	const workers = 8
	results := make([]Result, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			results[w], errs[w] = d.Detect(series)
		}(w)
	}
	wg.Wait()

	for w := 0; w < workers; w++ {
		if errs[w] != nil {
			t.Fatalf("concurrent Detect() %d error = %v", w, errs[w])
		}
		if len(results[w].Flags) != len(baseline.Flags) {
			t.Fatalf("run %d flag count = %d, want %d", w, len(results[w].Flags), len(baseline.Flags))
		}
		for i := range baseline.Flags {
			if results[w].Flags[i] != baseline.Flags[i] {
				t.Errorf("run %d flag %d = %v, baseline %v", w, i, results[w].Flags[i], baseline.Flags[i])
			}
		}
	}
}

func TestDetectFlagsObviousOutlier(t *testing.T) {
	d := NewDetector(DefaultConfig())
	series := generateSeries(100, flatPoint)
	// One day far outside the flat band, in both price and volume.
	outlierDay := series[50].Timestamp
	series[50].Value = 100000
	series[50].Volume = 1e12

	res, err := d.Detect(series)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	found := false
	for _, a := range res.Anomalies {
		if a.Timestamp.Equal(outlierDay) {
			found = true
		}
	}
	if !found {
		t.Errorf("injected outlier at %v was not flagged; anomalies: %v", outlierDay, res.Anomalies.Timestamps())
	}
}

func TestDetectForwardFillsMissingVolume(t *testing.T) {
	d := NewDetector(DefaultConfig())
	series := generateSeries(30, flatPoint)
	series[29].Volume = math.NaN()

	res, err := d.Detect(series)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(res.Series) != 30 {
		t.Fatalf("cleaned series has %d rows, want 30", len(res.Series))
	}
	last := res.Series[29]
	if math.IsNaN(last.Volume) {
		t.Error("NaN volume survived forward-fill")
	}
	if last.Volume != res.Series[28].Volume {
		t.Errorf("filled volume = %v, want prior row's %v", last.Volume, res.Series[28].Volume)
	}
}

func TestDetectSortsUnorderedInput(t *testing.T) {
	d := NewDetector(DefaultConfig())
	series := generateSeries(40, flatPoint)
	// Shuffle a few rows out of order.
	series[3], series[20] = series[20], series[3]
	series[7], series[35] = series[35], series[7]

	res, err := d.Detect(series)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	for i := 1; i < len(res.Series); i++ {
		if !res.Series[i-1].Timestamp.Before(res.Series[i].Timestamp) {
			t.Fatalf("cleaned series not strictly increasing at %d: %v then %v",
				i, res.Series[i-1].Timestamp, res.Series[i].Timestamp)
		}
	}
}
