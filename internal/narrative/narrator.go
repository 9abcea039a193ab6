// Package narrative turns a rendered chart into plain-language commentary by
// way of an external multimodal model.
package narrative

import (
	"context"
	"time"
)

// Request carries everything the narrator needs: the asset under analysis,
// the dates flagged as anomalous, and the rendered chart image.
type Request struct {
	Asset        string
	AnomalyDates []time.Time
	ImagePNG     []byte
}

// Narrator describes a chart image in plain language. Implementations talk
// to an external model; tests substitute fakes.
type Narrator interface {
	Describe(ctx context.Context, req Request) (string, error)
}
