package mock

import "github.com/fwojciec/tanaclip"

var _ tanaclip.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of tanaclip.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*tanaclip.ExtractResult, error)
}

func (e *ContentExtractor) Extract(html string) (*tanaclip.ExtractResult, error) {
	return e.ExtractFn(html)
}
