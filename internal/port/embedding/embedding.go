package embedding

import (
	"context"
	"errors"
)

// ErrUnavailable signals that the vector oracle could not produce an
// embedding. It is never reported as an empty vector.
var ErrUnavailable = errors.New("embedding unavailable")

// Embedder turns free text into a fixed-length numeric embedding.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}
