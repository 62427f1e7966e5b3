package mock

import "github.com/fwojciec/contactx"

var _ contactx.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of contactx.Renderer.
type Renderer struct {
	RenderFn func(d *contactx.Detail) (string, error)
}

func (r *Renderer) Render(d *contactx.Detail) (string, error) {
	return r.RenderFn(d)
}
