package mock

import "github.com/fwojciec/contactx"

var _ contactx.Converter = (*Converter)(nil)

// Converter is a mock implementation of contactx.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
