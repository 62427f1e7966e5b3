package mock

import (
	"context"

	"github.com/fwojciec/contactx"
)

var _ contactx.PreferenceService = (*PreferenceService)(nil)

// PreferenceService is a mock implementation of contactx.PreferenceService.
type PreferenceService struct {
	LoadFn func(ctx context.Context) (contactx.Theme, error)
	SaveFn func(ctx context.Context, theme contactx.Theme) error
}

func (s *PreferenceService) Load(ctx context.Context) (contactx.Theme, error) {
	return s.LoadFn(ctx)
}

func (s *PreferenceService) Save(ctx context.Context, theme contactx.Theme) error {
	return s.SaveFn(ctx, theme)
}
