package querystate

import (
	"net/url"
	"strings"
)

type pair struct {
	key   string
	value string
}

// Params is an ordered list of query parameters.
//
// url.Values sorts keys on Encode, which would reorder the visitor's URL on every
// round trip. Params keeps the original order and behaves like the browser's
// URLSearchParams: Set overwrites the first occurrence and drops the rest, or
// appends when the key is missing.
type Params struct {
	pairs []pair
}

// ParseParams parses a raw query string. A leading '?' is ignored.
// Segments that fail to unescape are kept verbatim.
func ParseParams(raw string) Params {
	raw = strings.TrimPrefix(raw, "?")
	var p Params
	for _, seg := range strings.Split(raw, "&") {
		if seg == "" {
			continue
		}
		key, value, _ := strings.Cut(seg, "=")
		p.pairs = append(p.pairs, pair{key: unescape(key), value: unescape(value)})
	}
	return p
}

func unescape(s string) string {
	out, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return out
}

// Get returns the first value for key, or "".
func (p Params) Get(key string) string {
	for _, kv := range p.pairs {
		if kv.key == key {
			return kv.value
		}
	}
	return ""
}

// Has reports whether key is present, even with an empty value.
func (p Params) Has(key string) bool {
	for _, kv := range p.pairs {
		if kv.key == key {
			return true
		}
	}
	return false
}

// Set replaces the value of the first occurrence of key and removes the others.
// A missing key is appended.
func (p *Params) Set(key, value string) {
	out := p.pairs[:0:0]
	found := false
	for _, kv := range p.pairs {
		if kv.key != key {
			out = append(out, kv)
			continue
		}
		if !found {
			out = append(out, pair{key: key, value: value})
			found = true
		}
	}
	if !found {
		out = append(out, pair{key: key, value: value})
	}
	p.pairs = out
}

// Del removes every occurrence of key.
func (p *Params) Del(key string) {
	out := p.pairs[:0:0]
	for _, kv := range p.pairs {
		if kv.key != key {
			out = append(out, kv)
		}
	}
	p.pairs = out
}

// Clone returns an independent copy.
func (p Params) Clone() Params {
	out := make([]pair, len(p.pairs))
	copy(out, p.pairs)
	return Params{pairs: out}
}

// Len returns the number of key/value pairs.
func (p Params) Len() int { return len(p.pairs) }

// Encode serializes the params in their current order, form-encoded.
func (p Params) Encode() string {
	if len(p.pairs) == 0 {
		return ""
	}
	var b strings.Builder
	for i, kv := range p.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.value))
	}
	return b.String()
}

// Values converts to url.Values. Order is lost.
func (p Params) Values() url.Values {
	v := url.Values{}
	for _, kv := range p.pairs {
		v.Add(kv.key, kv.value)
	}
	return v
}

// RawQuery is a query string passed on exactly as received.
type RawQuery string

// Encode returns the query without a leading '?'.
func (q RawQuery) Encode() string { return strings.TrimPrefix(string(q), "?") }
