package mock

import (
	"context"

	"github.com/fwojciec/contactx"
)

var _ contactx.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of contactx.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, text string) (*contactx.ExtractionResult, error)
}

func (e *Extractor) Extract(ctx context.Context, text string) (*contactx.ExtractionResult, error) {
	return e.ExtractFn(ctx, text)
}
