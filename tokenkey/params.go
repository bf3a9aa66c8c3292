package tokenkey

import (
	"net/http"
	"slices"
)

// Params maps header names to optional header values.
//
// A nil value marks the header as absent: the entry exists in the mapping but
// no header is sent for it. An empty string is sent as an empty header value.
type Params map[string]*string

// String returns a pointer to s, for building Params values inline.
func String(s string) *string { return &s }

// Value returns the value stored under name and whether it is present and non-nil.
func (p Params) Value(name string) (string, bool) {
	v, ok := p[name]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}

// Names returns the header names in sorted order, including absent ones.
func (p Params) Names() []string {
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Clone returns a copy of p whose values do not alias p's.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		if v != nil {
			out[k] = String(*v)
		} else {
			out[k] = nil
		}
	}
	return out
}

// Header converts p to request headers. Absent values are skipped.
func (p Params) Header() http.Header {
	h := make(http.Header, len(p))
	for k, v := range p {
		if v == nil {
			continue
		}
		h.Set(k, *v)
	}
	return h
}
