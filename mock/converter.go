package mock

import "github.com/fwojciec/tanaclip"

var _ tanaclip.Converter = (*Converter)(nil)

// Converter is a mock implementation of tanaclip.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
