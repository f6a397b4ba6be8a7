// Package bloom provides URL deduplication for batch clipping.
package bloom

import (
	"net/url"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter remembers which pages have been seen. Two URLs that differ only by
// fragment, host case, a leading "www." or a trailing slash count as the same
// page. Bloom filter hits are confirmed against the exact set of keys, so a
// distinct URL is never reported as seen. It is safe for concurrent use.
type Filter struct {
	mu   sync.Mutex
	f    *bloom.BloomFilter
	keys map[string]struct{}
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f:    bloom.NewWithEstimates(n, fpRate),
		keys: make(map[string]struct{}, n),
	}
}

// Seen records rawURL and reports whether it had been seen before.
func (f *Filter) Seen(rawURL string) bool {
	key := Key(rawURL)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.f.TestAndAddString(key) {
		if _, ok := f.keys[key]; ok {
			return true
		}
	}
	f.keys[key] = struct{}{}
	return false
}

// Key returns the normalized form of rawURL used for deduplication.
// Unparsable input is returned trimmed.
func Key(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = ""
	return u.String()
}
